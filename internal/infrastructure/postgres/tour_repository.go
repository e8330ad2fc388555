package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Turismo-api/internal/domain/entity"
	"github.com/jhoicas/Turismo-api/internal/domain/repository"
)

var _ repository.TourRepository = (*TourRepo)(nil)

// TourRepo implementación del puerto TourRepository sobre PostgreSQL.
type TourRepo struct {
	pool *pgxpool.Pool
}

// NewTourRepository construye el adaptador de persistencia para tours.
func NewTourRepository(pool *pgxpool.Pool) *TourRepo {
	return &TourRepo{pool: pool}
}

const tourColumns = `id, name, duration, max_group_size, difficulty, price,
	summary, description, created_at, updated_at`

// Create persiste una excursión nueva.
func (r *TourRepo) Create(ctx context.Context, tour *entity.Tour) error {
	query := `
		INSERT INTO tours (id, name, duration, max_group_size, difficulty, price, summary, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.pool.Exec(ctx, query,
		tour.ID, tour.Name, tour.Duration, tour.MaxGroupSize, tour.Difficulty,
		tour.Price, tour.Summary, tour.Description, tour.CreatedAt, tour.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert tour: %w", err)
	}
	return nil
}

// FindByID obtiene una excursión por ID (nil si no existe).
func (r *TourRepo) FindByID(ctx context.Context, id string) (*entity.Tour, error) {
	query := `SELECT ` + tourColumns + ` FROM tours WHERE id = $1`
	var t entity.Tour
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.Name, &t.Duration, &t.MaxGroupSize, &t.Difficulty, &t.Price,
		&t.Summary, &t.Description, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tour: %w", err)
	}
	return &t, nil
}

// List lista el catálogo con paginación.
func (r *TourRepo) List(ctx context.Context, limit, offset int) ([]*entity.Tour, error) {
	query := `SELECT ` + tourColumns + ` FROM tours ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list tours: %w", err)
	}
	defer rows.Close()
	var list []*entity.Tour
	for rows.Next() {
		var t entity.Tour
		if err := rows.Scan(
			&t.ID, &t.Name, &t.Duration, &t.MaxGroupSize, &t.Difficulty, &t.Price,
			&t.Summary, &t.Description, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan tour: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// Update actualiza una excursión.
func (r *TourRepo) Update(ctx context.Context, tour *entity.Tour) error {
	query := `
		UPDATE tours SET name = $2, duration = $3, max_group_size = $4, difficulty = $5,
			price = $6, summary = $7, description = $8, updated_at = now()
		WHERE id = $1`
	_, err := r.pool.Exec(ctx, query,
		tour.ID, tour.Name, tour.Duration, tour.MaxGroupSize, tour.Difficulty,
		tour.Price, tour.Summary, tour.Description,
	)
	if err != nil {
		return fmt.Errorf("update tour: %w", err)
	}
	return nil
}

// Delete elimina una excursión por ID.
func (r *TourRepo) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM tours WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete tour: %w", err)
	}
	return nil
}
