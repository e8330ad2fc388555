package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Turismo-api/internal/application/dto"
	"github.com/jhoicas/Turismo-api/internal/domain"
	"github.com/jhoicas/Turismo-api/internal/domain/entity"
	"github.com/jhoicas/Turismo-api/internal/domain/repository"
)

// TourUseCase catálogo de excursiones.
type TourUseCase struct {
	tourRepo repository.TourRepository
}

// NewTourUseCase construye el caso de uso de tours.
func NewTourUseCase(tourRepo repository.TourRepository) *TourUseCase {
	return &TourUseCase{tourRepo: tourRepo}
}

// Create da de alta una excursión.
func (uc *TourUseCase) Create(ctx context.Context, in dto.CreateTourRequest) (*dto.TourResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: el nombre es requerido", domain.ErrInvalidInput)
	}
	if !validDifficulty(in.Difficulty) {
		return nil, fmt.Errorf("%w: dificultad desconocida %q", domain.ErrInvalidInput, in.Difficulty)
	}
	if in.Price.IsNegative() {
		return nil, fmt.Errorf("%w: el precio no puede ser negativo", domain.ErrInvalidInput)
	}
	now := time.Now()
	tour := &entity.Tour{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(in.Name),
		Duration:     in.Duration,
		MaxGroupSize: in.MaxGroupSize,
		Difficulty:   in.Difficulty,
		Price:        in.Price,
		Summary:      in.Summary,
		Description:  in.Description,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.tourRepo.Create(ctx, tour); err != nil {
		return nil, err
	}
	resp := toTourResponse(tour)
	return &resp, nil
}

// GetByID devuelve una excursión por ID.
func (uc *TourUseCase) GetByID(ctx context.Context, id string) (*dto.TourResponse, error) {
	tour, err := uc.tourRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tour == nil {
		return nil, domain.ErrNotFound
	}
	resp := toTourResponse(tour)
	return &resp, nil
}

// List lista el catálogo con paginación.
func (uc *TourUseCase) List(ctx context.Context, limit, offset int) ([]dto.TourResponse, error) {
	tours, err := uc.tourRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TourResponse, 0, len(tours))
	for _, t := range tours {
		out = append(out, toTourResponse(t))
	}
	return out, nil
}

// Update edición parcial de una excursión.
func (uc *TourUseCase) Update(ctx context.Context, id string, in dto.UpdateTourRequest) (*dto.TourResponse, error) {
	tour, err := uc.tourRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tour == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != "" {
		tour.Name = strings.TrimSpace(in.Name)
	}
	if in.Duration > 0 {
		tour.Duration = in.Duration
	}
	if in.MaxGroupSize > 0 {
		tour.MaxGroupSize = in.MaxGroupSize
	}
	if in.Difficulty != "" {
		if !validDifficulty(in.Difficulty) {
			return nil, fmt.Errorf("%w: dificultad desconocida %q", domain.ErrInvalidInput, in.Difficulty)
		}
		tour.Difficulty = in.Difficulty
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, fmt.Errorf("%w: el precio no puede ser negativo", domain.ErrInvalidInput)
		}
		tour.Price = *in.Price
	}
	if in.Summary != "" {
		tour.Summary = in.Summary
	}
	if in.Description != "" {
		tour.Description = in.Description
	}
	if err := uc.tourRepo.Update(ctx, tour); err != nil {
		return nil, err
	}
	resp := toTourResponse(tour)
	return &resp, nil
}

// Delete elimina una excursión del catálogo.
func (uc *TourUseCase) Delete(ctx context.Context, id string) error {
	tour, err := uc.tourRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if tour == nil {
		return domain.ErrNotFound
	}
	return uc.tourRepo.Delete(ctx, id)
}

func validDifficulty(d string) bool {
	switch d {
	case entity.DifficultyEasy, entity.DifficultyMedium, entity.DifficultyDifficult:
		return true
	}
	return false
}

func toTourResponse(t *entity.Tour) dto.TourResponse {
	return dto.TourResponse{
		ID:           t.ID,
		Name:         t.Name,
		Duration:     t.Duration,
		MaxGroupSize: t.MaxGroupSize,
		Difficulty:   t.Difficulty,
		Price:        t.Price,
		Summary:      t.Summary,
		Description:  t.Description,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}
