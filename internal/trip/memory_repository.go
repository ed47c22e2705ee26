package trip

import (
	"context"
	"sort"
	"sync"
)

// InMemoryRepository is an in-memory implementation of Repository,
// intended for testing. Production uses PostgresRepository.
type InMemoryRepository struct {
	mu    sync.RWMutex
	trips map[string]*Trip
}

// NewInMemoryRepository creates a new in-memory trip repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{trips: make(map[string]*Trip)}
}

// Create persists a newly planned trip.
func (r *InMemoryRepository) Create(_ context.Context, trip *Trip) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cpy := *trip
	r.trips[trip.ID] = &cpy
	return nil
}

// GetByUserAndID retrieves a trip owned by the given user.
func (r *InMemoryRepository) GetByUserAndID(_ context.Context, userID, tripID string) (*Trip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.trips[tripID]
	if !ok || t.CreatedBy != userID {
		return nil, ErrTripNotFound
	}

	cpy := *t
	return &cpy, nil
}

// ListByUser retrieves the user's trips, most recently created first.
func (r *InMemoryRepository) ListByUser(_ context.Context, userID string, opts ListOptions) ([]*Trip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var trips []*Trip
	for _, t := range r.trips {
		if t.CreatedBy == userID {
			cpy := *t
			trips = append(trips, &cpy)
		}
	}

	sort.Slice(trips, func(i, j int) bool {
		return trips[i].CreatedAt.After(trips[j].CreatedAt)
	})

	limit := opts.Limit
	if limit <= 0 {
		limit = 20
	}
	if len(trips) > limit {
		trips = trips[:limit]
	}

	return trips, nil
}
