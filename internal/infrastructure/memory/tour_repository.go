package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/Turismo-api/internal/domain/entity"
	"github.com/jhoicas/Turismo-api/internal/domain/repository"
)

var _ repository.TourRepository = (*TourRepo)(nil)

// TourRepo almacén de tours en memoria, seguro para uso concurrente.
type TourRepo struct {
	mu    sync.RWMutex
	tours map[string]*entity.Tour
}

// NewTourRepository construye el almacén vacío.
func NewTourRepository() *TourRepo {
	return &TourRepo{tours: make(map[string]*entity.Tour)}
}

// Create inserta la excursión.
func (r *TourRepo) Create(_ context.Context, tour *entity.Tour) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *tour
	r.tours[tour.ID] = &cp
	return nil
}

// FindByID devuelve la excursión o nil.
func (r *TourRepo) FindByID(_ context.Context, id string) (*entity.Tour, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tours[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

// List lista ordenado por fecha de creación descendente.
func (r *TourRepo) List(_ context.Context, limit, offset int) ([]*entity.Tour, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var all []*entity.Tour
	for _, t := range r.tours {
		cp := *t
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

// Update reemplaza la excursión.
func (r *TourRepo) Update(_ context.Context, tour *entity.Tour) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *tour
	cp.UpdatedAt = time.Now()
	r.tours[tour.ID] = &cp
	return nil
}

// Delete elimina la excursión.
func (r *TourRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tours, id)
	return nil
}
