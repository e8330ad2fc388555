package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateTourRequest alta de una excursión en el catálogo.
type CreateTourRequest struct {
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	Duration     int             `json:"duration" validate:"required,min=1"`
	MaxGroupSize int             `json:"max_group_size" validate:"required,min=1"`
	Difficulty   string          `json:"difficulty" validate:"required,oneof=easy medium difficult"`
	Price        decimal.Decimal `json:"price" validate:"required"`
	Summary      string          `json:"summary" validate:"required,max=500"`
	Description  string          `json:"description" validate:"omitempty"`
}

// UpdateTourRequest edición parcial de una excursión.
type UpdateTourRequest struct {
	Name         string           `json:"name"`
	Duration     int              `json:"duration"`
	MaxGroupSize int              `json:"max_group_size"`
	Difficulty   string           `json:"difficulty"`
	Price        *decimal.Decimal `json:"price"`
	Summary      string           `json:"summary"`
	Description  string           `json:"description"`
}

// TourResponse salida de una excursión.
type TourResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Duration     int             `json:"duration"`
	MaxGroupSize int             `json:"max_group_size"`
	Difficulty   string          `json:"difficulty"`
	Price        decimal.Decimal `json:"price"`
	Summary      string          `json:"summary"`
	Description  string          `json:"description"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
