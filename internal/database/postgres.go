package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"property-marketplace/internal/models"
	"property-marketplace/internal/normalize"
)

type DB struct {
	conn *sql.DB
}

func NewDB(host, port, user, password, dbname, sslmode string) (*DB, error) {
	if sslmode == "" {
		sslmode = "disable"
	}
	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode)

	conn, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	if err := conn.Ping(); err != nil {
		return nil, err
	}

	return &DB{conn: conn}, nil
}

// NewDBFromConn wraps an existing connection pool
func NewDBFromConn(conn *sql.DB) *DB {
	return &DB{conn: conn}
}

func (db *DB) Close() error {
	return db.conn.Close()
}

// InitSchema creates the properties table if it doesn't exist
func (db *DB) InitSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS properties (
		id VARCHAR(64) PRIMARY KEY,
		property_type VARCHAR(40),
		posting_type VARCHAR(10),
		property_title TEXT,
		description TEXT,

		price VARCHAR(40),
		maintenance_charges VARCHAR(40),
		built_up_area DECIMAL(12, 2),
		carpet_area DECIMAL(12, 2),

		bhk_type VARCHAR(20),
		property_status VARCHAR(30),
		property_age VARCHAR(20),
		total_floors INTEGER,
		your_floor INTEGER,
		facing_direction VARCHAR(20),
		furnishing_type VARCHAR(30),

		city VARCHAR(100),
		locality VARCHAR(200),
		society_name VARCHAR(200),
		landmark VARCHAR(200),
		pincode VARCHAR(10),
		map_link TEXT,

		amenities JSONB NOT NULL DEFAULT '[]',
		furnishings JSONB NOT NULL DEFAULT '[]',
		additional_rooms JSONB NOT NULL DEFAULT '[]',
		car_parking VARCHAR(50),
		bike_parking VARCHAR(10),

		rera_approved BOOLEAN NOT NULL DEFAULT FALSE,
		rera_number VARCHAR(50),
		registry_available BOOLEAN NOT NULL DEFAULT FALSE,
		loan_available BOOLEAN NOT NULL DEFAULT FALSE,
		tax_paid BOOLEAN NOT NULL DEFAULT FALSE,

		main_image TEXT,
		primary_image TEXT,
		other_images TEXT,
		floor_plan TEXT,

		owner_name VARCHAR(100),
		owner_mobile VARCHAR(20),
		owner_whatsapp VARCHAR(20),
		owner_email VARCHAR(100),
		posted_by VARCHAR(10),

		attributes JSONB NOT NULL DEFAULT '{}',

		status VARCHAR(20) NOT NULL DEFAULT 'Pending',
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_properties_created_at ON properties(created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_properties_status ON properties(LOWER(status));
	CREATE INDEX IF NOT EXISTS idx_properties_city ON properties(LOWER(city));
	CREATE INDEX IF NOT EXISTS idx_properties_property_type ON properties(property_type);
	`
	_, err := db.conn.Exec(query)
	return err
}

// SaveListing upserts a listing row by id. The original creation time and
// moderation status are kept on update.
func (db *DB) SaveListing(ctx context.Context, row models.ListingRow) error {
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now()
	}
	if row.Status == "" {
		row.Status = string(models.StatusPending)
	}
	query := `
	INSERT INTO properties (
		id, property_type, posting_type, property_title, description,
		price, maintenance_charges, built_up_area, carpet_area,
		bhk_type, property_status, property_age, total_floors, your_floor, facing_direction, furnishing_type,
		city, locality, society_name, landmark, pincode, map_link,
		amenities, furnishings, additional_rooms, car_parking, bike_parking,
		rera_approved, rera_number, registry_available, loan_available, tax_paid,
		main_image, primary_image, other_images, floor_plan,
		owner_name, owner_mobile, owner_whatsapp, owner_email, posted_by,
		attributes, status, created_at, updated_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20,
		$21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31, $32, $33, $34, $35, $36, $37, $38, $39, $40,
		$41, $42, $43, $44, NOW())
	ON CONFLICT (id) DO UPDATE SET
		property_type = EXCLUDED.property_type,
		posting_type = EXCLUDED.posting_type,
		property_title = EXCLUDED.property_title,
		description = EXCLUDED.description,
		price = EXCLUDED.price,
		maintenance_charges = EXCLUDED.maintenance_charges,
		built_up_area = EXCLUDED.built_up_area,
		carpet_area = EXCLUDED.carpet_area,
		bhk_type = EXCLUDED.bhk_type,
		property_status = EXCLUDED.property_status,
		property_age = EXCLUDED.property_age,
		total_floors = EXCLUDED.total_floors,
		your_floor = EXCLUDED.your_floor,
		facing_direction = EXCLUDED.facing_direction,
		furnishing_type = EXCLUDED.furnishing_type,
		city = EXCLUDED.city,
		locality = EXCLUDED.locality,
		society_name = EXCLUDED.society_name,
		landmark = EXCLUDED.landmark,
		pincode = EXCLUDED.pincode,
		map_link = EXCLUDED.map_link,
		amenities = EXCLUDED.amenities,
		furnishings = EXCLUDED.furnishings,
		additional_rooms = EXCLUDED.additional_rooms,
		car_parking = EXCLUDED.car_parking,
		bike_parking = EXCLUDED.bike_parking,
		rera_approved = EXCLUDED.rera_approved,
		rera_number = EXCLUDED.rera_number,
		registry_available = EXCLUDED.registry_available,
		loan_available = EXCLUDED.loan_available,
		tax_paid = EXCLUDED.tax_paid,
		main_image = EXCLUDED.main_image,
		primary_image = EXCLUDED.primary_image,
		other_images = EXCLUDED.other_images,
		floor_plan = EXCLUDED.floor_plan,
		owner_name = EXCLUDED.owner_name,
		owner_mobile = EXCLUDED.owner_mobile,
		owner_whatsapp = EXCLUDED.owner_whatsapp,
		owner_email = EXCLUDED.owner_email,
		posted_by = EXCLUDED.posted_by,
		attributes = EXCLUDED.attributes,
		updated_at = NOW()
	`
	_, err := db.conn.ExecContext(ctx, query,
		row.ID, row.PropertyType, row.PostingType, row.PropertyTitle, row.Description,
		row.Price, row.MaintenanceCharges, row.BuiltUpArea, row.CarpetArea,
		row.BHKType, row.PropertyStatus, row.PropertyAge, row.TotalFloors, row.YourFloor, row.FacingDirection, row.FurnishingType,
		row.City, row.Locality, row.SocietyName, row.Landmark, row.Pincode, row.MapLink,
		jsonText(row.Amenities, "[]"), jsonText(row.Furnishings, "[]"), jsonText(row.AdditionalRooms, "[]"), row.CarParking, row.BikeParking,
		row.ReraApproved, row.ReraNumber, row.RegistryAvailable, row.LoanAvailable, row.TaxPaid,
		row.MainImage, row.PrimaryImage, row.OtherImages, row.FloorPlan,
		row.OwnerName, row.OwnerMobile, row.OwnerWhatsapp, row.OwnerEmail, row.PostedBy,
		jsonText(row.Attributes, "{}"), row.Status, row.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save listing %s: %w", row.ID, err)
	}
	return nil
}

// ListRaw returns matching rows, newest first, as raw records
func (db *DB) ListRaw(ctx context.Context, q Query) ([]normalize.RawRecord, error) {
	var (
		where []string
		args  []any
	)
	if len(q.Statuses) > 0 {
		args = append(args, pq.Array(lowerStatuses(q.Statuses)))
		where = append(where, fmt.Sprintf("LOWER(status) = ANY($%d)", len(args)))
	}
	if q.City != "" {
		args = append(args, "%"+q.City+"%")
		where = append(where, fmt.Sprintf("city ILIKE $%d", len(args)))
	}

	query := "SELECT * FROM properties"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC"
	if q.Limit > 0 {
		args = append(args, q.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query listings: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// GetRaw retrieves one listing by id
func (db *DB) GetRaw(ctx context.Context, id string) (normalize.RawRecord, error) {
	rows, err := db.conn.QueryContext(ctx, "SELECT * FROM properties WHERE id = $1", id)
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
func (db *DB) UpdateStatus(ctx context.Context, id string, status models.ListingStatus) error {
	res, err := db.conn.ExecContext(ctx,
		"UPDATE properties SET status = $1, updated_at = NOW() WHERE id = $2", string(status), id)
	return affectedOne(res, err)
}

// Delete removes a listing
func (db *DB) Delete(ctx context.Context, id string) error {
	res, err := db.conn.ExecContext(ctx, "DELETE FROM properties WHERE id = $1", id)
	return affectedOne(res, err)
}

func affectedOne(res sql.Result, err error) error {
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func jsonText(b []byte, empty string) string {
	if len(b) == 0 {
		return empty
	}
	return string(b)
}
