package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/brandsift/brandsift/models"
)

// BrandRepository persists analyzed brands in PostgreSQL.
type BrandRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewBrandRepository creates a new PostgreSQL brand repository.
func NewBrandRepository(db *sql.DB, logger *slog.Logger) *BrandRepository {
	return &BrandRepository{
		db:     db,
		logger: logger,
	}
}

const brandColumns = `id, url, brand_name, description, raw_description, enhanced, created_at, updated_at`

// Create inserts a new brand and fills its ID and timestamps.
func (r *BrandRepository) Create(ctx context.Context, brand *models.Brand) error {
	query := `
		INSERT INTO brands (url, brand_name, description, raw_description, enhanced)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		brand.URL,
		nullString(brand.BrandName),
		nullString(brand.Description),
		nullString(brand.RawDescription),
		brand.Enhanced,
	).Scan(&brand.ID, &brand.CreatedAt, &brand.UpdatedAt)
	if err != nil {
		r.logger.Error("failed to insert brand", "error", err, "url", brand.URL)
		return fmt.Errorf("failed to insert brand: %w", err)
	}

	r.logger.Debug("brand created", "brand_id", brand.ID, "url", brand.URL)
	return nil
}

// GetByID retrieves a brand by its UUID. Returns sql.ErrNoRows when absent.
func (r *BrandRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Brand, error) {
	query := `SELECT ` + brandColumns + ` FROM brands WHERE id = $1`

	brand, err := scanBrand(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			r.logger.Debug("brand not found", "brand_id", id)
			return nil, sql.ErrNoRows
		}
		r.logger.Error("failed to query brand", "error", err, "brand_id", id)
		return nil, fmt.Errorf("failed to query brand: %w", err)
	}

	return brand, nil
}

// List returns brands ordered by creation time, newest first.
func (r *BrandRepository) List(ctx context.Context, limit, offset int) ([]*models.Brand, error) {
	query := `
		SELECT ` + brandColumns + `
		FROM brands
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error("failed to list brands", "error", err)
		return nil, fmt.Errorf("failed to list brands: %w", err)
	}
	defer rows.Close()

	brands := make([]*models.Brand, 0)
	for rows.Next() {
		brand, err := scanBrand(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan brand: %w", err)
		}
		brands = append(brands, brand)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate brands: %w", err)
	}

	return brands, nil
}

// Update modifies brand_name and/or description; nil fields keep their
// current value. Returns the updated row, or sql.ErrNoRows when absent.
func (r *BrandRepository) Update(ctx context.Context, id uuid.UUID, brandName, description *string) (*models.Brand, error) {
	query := `
		UPDATE brands
		SET brand_name  = COALESCE($2, brand_name),
		    description = COALESCE($3, description),
		    updated_at  = NOW()
		WHERE id = $1
		RETURNING ` + brandColumns

	brand, err := scanBrand(r.db.QueryRowContext(ctx, query, id, nullString(brandName), nullString(description)))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		r.logger.Error("failed to update brand", "error", err, "brand_id", id)
		return nil, fmt.Errorf("failed to update brand: %w", err)
	}

	r.logger.Debug("brand updated", "brand_id", id)
	return brand, nil
}

// Delete removes a brand. Returns sql.ErrNoRows when absent.
func (r *BrandRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM brands WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("failed to delete brand", "error", err, "brand_id", id)
		return fmt.Errorf("failed to delete brand: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	r.logger.Debug("brand deleted", "brand_id", id)
	return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanBrand reads one brands row, converting nullable columns to pointers.
func scanBrand(row rowScanner) (*models.Brand, error) {
	brand := &models.Brand{}
	var brandName, description, rawDescription sql.NullString

	err := row.Scan(
		&brand.ID,
		&brand.URL,
		&brandName,
		&description,
		&rawDescription,
		&brand.Enhanced,
		&brand.CreatedAt,
		&brand.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if brandName.Valid {
		brand.BrandName = &brandName.String
	}
	if description.Valid {
		brand.Description = &description.String
	}
	if rawDescription.Valid {
		brand.RawDescription = &rawDescription.String
	}

	return brand, nil
}

// nullString converts a *string to its sql.NullString equivalent.
func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
