package repository

import (
	"context"

	"github.com/jhoicas/Turismo-api/internal/domain/entity"
)

// TourRepository define el puerto de persistencia para Tour.
type TourRepository interface {
	Create(ctx context.Context, tour *entity.Tour) error
	FindByID(ctx context.Context, id string) (*entity.Tour, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Tour, error)
	Update(ctx context.Context, tour *entity.Tour) error
	Delete(ctx context.Context, id string) error
}
