package database

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"property-marketplace/internal/config"
	"property-marketplace/internal/models"
	"property-marketplace/internal/normalize"
)

// Store is a listing store that supports moderation
type Store interface {
	ListRaw(ctx context.Context, q Query) ([]normalize.RawRecord, error)
	GetRaw(ctx context.Context, id string) (normalize.RawRecord, error)
	UpdateStatus(ctx context.Context, id string, status models.ListingStatus) error
	Delete(ctx context.Context, id string) error
	Close() error
}

// Open connects to the store selected by cfg.Type and prepares its schema.
// Type "none" returns a nil store.
func Open(cfg config.DatabaseConfig) (Store, error) {
	switch cfg.Type {
	case "none", "":
		log.Println("No listing database configured")
		return nil, nil

	case "mysql":
		log.Println("Using MySQL with GORM")
		m := cfg.MySQL
		gdb, err := NewGormDB(m.Host, portString(m.Port), m.User, m.Password, m.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MySQL: %w", err)
		}
		if err := gdb.InitSchema(); err != nil {
			gdb.Close()
			return nil, fmt.Errorf("failed to initialize schema: %w", err)
		}
		return gdb, nil

	case "postgres":
		log.Println("Using PostgreSQL")
		p := cfg.Postgres
		db, err := NewDB(p.Host, portString(p.Port), p.User, p.Password, p.Database, p.SSLMode)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := db.InitSchema(); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to initialize schema: %w", err)
		}
		return db, nil

	case "mongo":
		log.Println("Using MongoDB")
		m, err := NewMongoStore(cfg.Mongo.URI, cfg.Mongo.Database)
		if err != nil {
			return nil, err
		}
		return m, nil
	}
	return nil, fmt.Errorf("unknown database type %q", cfg.Type)
}

func portString(port int) string {
	if port <= 0 {
		return ""
	}
	return strconv.Itoa(port)
}
