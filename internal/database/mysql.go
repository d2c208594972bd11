package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"property-marketplace/internal/models"
	"property-marketplace/internal/normalize"
)

type GormDB struct {
	db *gorm.DB
}

func NewGormDB(host, port, user, password, dbname string) (*GormDB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local&clientFoundRows=true",
		user, password, host, port, dbname)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		NowFunc: func() time.Time {
			return time.Now().Local()
		},
	})
	if err != nil {
		return nil, err
	}

	// Test connection
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}

	return &GormDB{db: db}, nil
}

func (gdb *GormDB) Close() error {
	sqlDB, err := gdb.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// InitSchema creates tables using GORM AutoMigrate
func (gdb *GormDB) InitSchema() error {
	return gdb.db.AutoMigrate(&models.ListingRow{})
}

// SaveListing upserts a listing row by id, keeping the original creation
// time and moderation status of an existing row
func (gdb *GormDB) SaveListing(ctx context.Context, row models.ListingRow) error {
	if row.Status == "" {
		row.Status = string(models.StatusPending)
	}

	return gdb.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.ListingRow
		result := tx.Where("id = ?", row.ID).First(&existing)

		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return tx.Create(&row).Error
		} else if result.Error != nil {
			return result.Error
		}

		row.CreatedAt = existing.CreatedAt
		row.Status = existing.Status
		return tx.Save(&row).Error
	})
}

// ListRaw returns matching rows, newest first, as raw records
func (gdb *GormDB) ListRaw(ctx context.Context, q Query) ([]normalize.RawRecord, error) {
	tx := gdb.db.WithContext(ctx).Model(&models.ListingRow{})
	if len(q.Statuses) > 0 {
		tx = tx.Where("LOWER(status) IN ?", lowerStatuses(q.Statuses))
	}
	if q.City != "" {
		tx = tx.Where("LOWER(city) LIKE ?", "%"+strings.ToLower(q.City)+"%")
	}
	tx = tx.Order("created_at DESC")
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}

	rows, err := tx.Rows()
	if err != nil {
		return nil, fmt.Errorf("failed to query listings: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// GetRaw retrieves one listing by id
func (gdb *GormDB) GetRaw(ctx context.Context, id string) (normalize.RawRecord, error) {
	rows, err := gdb.db.WithContext(ctx).Model(&models.ListingRow{}).Where("id = ?", id).Limit(1).Rows()
	if err != nil {
		return nil, fmt.Errorf("failed to query listing %s: %w", id, err)
	}
	defer rows.Close()

	records, err := scanRecords(rows)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNotFound
	}
	return records[0], nil
}

// UpdateStatus changes the moderation status of a listing
func (gdb *GormDB) UpdateStatus(ctx context.Context, id string, status models.ListingStatus) error {
	result := gdb.db.WithContext(ctx).Model(&models.ListingRow{}).
		Where("id = ?", id).
		Update("status", string(status))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a listing
func (gdb *GormDB) Delete(ctx context.Context, id string) error {
	result := gdb.db.WithContext(ctx).Where("id = ?", id).Delete(&models.ListingRow{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
