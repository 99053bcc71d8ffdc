package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/yayasan-cendekia/hrops-backend-go/internal/domain/office"
	"github.com/yayasan-cendekia/hrops-backend-go/internal/pkg/database"
)

type officeLocationRepository struct {
	db *database.DB
}

func NewOfficeLocationRepository(db *database.DB) office.OfficeLocationRepository {
	return &officeLocationRepository{db: db}
}

func (r *officeLocationRepository) Create(ctx context.Context, loc office.OfficeLocation) (office.OfficeLocation, error) {
	q := r.db.Querier(ctx)

	query := `
		INSERT INTO office_locations (name, latitude, longitude, radius_meters)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query, loc.Name, loc.Latitude, loc.Longitude, loc.RadiusMeters).
		Scan(&loc.ID, &loc.CreatedAt, &loc.UpdatedAt)
	if err != nil {
		return office.OfficeLocation{}, fmt.Errorf("failed to create office location: %w", err)
	}
	return loc, nil
}

func (r *officeLocationRepository) GetByID(ctx context.Context, id string) (office.OfficeLocation, error) {
	q := r.db.Querier(ctx)

	query := `
		SELECT id, name, latitude, longitude, radius_meters, created_at, updated_at
		FROM office_locations
		WHERE id = $1
	`

	var loc office.OfficeLocation
	err := q.QueryRow(ctx, query, id).Scan(
		&loc.ID, &loc.Name, &loc.Latitude, &loc.Longitude, &loc.RadiusMeters,
		&loc.CreatedAt, &loc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return office.OfficeLocation{}, office.ErrOfficeNotFound
		}
		return office.OfficeLocation{}, fmt.Errorf("failed to get office location: %w", err)
	}
	return loc, nil
}

func (r *officeLocationRepository) List(ctx context.Context) ([]office.OfficeLocation, error) {
	q := r.db.Querier(ctx)

	rows, err := q.Query(ctx, `
		SELECT id, name, latitude, longitude, radius_meters, created_at, updated_at
		FROM office_locations
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list office locations: %w", err)
	}
	defer rows.Close()

	var result []office.OfficeLocation
	for rows.Next() {
		var loc office.OfficeLocation
		err := rows.Scan(
			&loc.ID, &loc.Name, &loc.Latitude, &loc.Longitude, &loc.RadiusMeters,
			&loc.CreatedAt, &loc.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan office location row: %w", err)
		}
		result = append(result, loc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate office location rows: %w", err)
	}

	return result, nil
}

func (r *officeLocationRepository) Update(ctx context.Context, loc office.OfficeLocation) error {
	q := r.db.Querier(ctx)

	tag, err := q.Exec(ctx, `
		UPDATE office_locations
		SET name = $2, latitude = $3, longitude = $4, radius_meters = $5, updated_at = NOW()
		WHERE id = $1
	`, loc.ID, loc.Name, loc.Latitude, loc.Longitude, loc.RadiusMeters)
	if err != nil {
		return fmt.Errorf("failed to update office location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return office.ErrOfficeNotFound
	}
	return nil
}
