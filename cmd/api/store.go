package main

import (
	"log"

	"property-marketplace/internal/config"
	"property-marketplace/internal/database"
	"property-marketplace/internal/listing"
)

// withDatabaseEnv fills unset connection settings from the environment
func withDatabaseEnv(cfg config.DatabaseConfig) config.DatabaseConfig {
	cfg.Type = getEnvOrConfig(cfg.Type, "DB_TYPE", "postgres")

	cfg.Postgres.Host = getEnvOrConfig(cfg.Postgres.Host, "DB_HOST", "db")
	cfg.Postgres.User = getEnvOrConfig(cfg.Postgres.User, "DB_USER", "marketplace_user")
	cfg.Postgres.Password = getEnvOrConfig(cfg.Postgres.Password, "DB_PASSWORD", "marketplace_pass")
	cfg.Postgres.Database = getEnvOrConfig(cfg.Postgres.Database, "DB_NAME", "marketplace_db")
	if cfg.Postgres.Port == 0 {
		cfg.Postgres.Port = 5432
	}

	cfg.MySQL.Host = getEnvOrConfig(cfg.MySQL.Host, "DB_HOST", "mysql")
	cfg.MySQL.User = getEnvOrConfig(cfg.MySQL.User, "DB_USER", "marketplace_user")
	cfg.MySQL.Password = getEnvOrConfig(cfg.MySQL.Password, "DB_PASSWORD", "marketplace_pass")
	cfg.MySQL.Database = getEnvOrConfig(cfg.MySQL.Database, "DB_NAME", "marketplace_db")
	if cfg.MySQL.Port == 0 {
		cfg.MySQL.Port = 3306
	}

	cfg.Mongo.URI = getEnvOrConfig(cfg.Mongo.URI, "MONGODB_URI", "mongodb://mongo:27017")
	cfg.Mongo.Database = getEnvOrConfig(cfg.Mongo.Database, "MONGODB_DATABASE", "marketplace")
	return cfg
}

// openListingStore opens the configured database. The returned close
// function is safe to call when no store is configured.
func openListingStore(cfg *config.Config) (listing.Source, func(), error) {
	store, err := database.Open(withDatabaseEnv(cfg.Database))
	if err != nil {
		return nil, func() {}, err
	}
	if store == nil {
		return nil, func() {}, nil
	}
	return store, func() {
		if err := store.Close(); err != nil {
			log.Printf("Warning: Failed to close listing store: %v", err)
		}
	}, nil
}
