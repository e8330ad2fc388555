package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Dificultades válidas para Tour.
const (
	DifficultyEasy      = "easy"
	DifficultyMedium    = "medium"
	DifficultyDifficult = "difficult"
)

// Tour representa una excursión publicada en el catálogo.
type Tour struct {
	ID           string
	Name         string
	Duration     int // días
	MaxGroupSize int
	Difficulty   string // easy, medium, difficult
	Price        decimal.Decimal
	Summary      string
	Description  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
