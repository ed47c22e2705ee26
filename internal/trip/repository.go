package trip

import "context"

// ListOptions contains options for listing trips.
type ListOptions struct {
	Limit int
}

// Repository defines the interface for trip persistence.
type Repository interface {
	// Create persists a newly planned trip.
	Create(ctx context.Context, trip *Trip) error

	// GetByUserAndID retrieves a trip owned by the given user.
	// Returns ErrTripNotFound if it does not exist or belongs to someone else.
	GetByUserAndID(ctx context.Context, userID, tripID string) (*Trip, error)

	// ListByUser retrieves the user's trips, most recently created first.
	ListByUser(ctx context.Context, userID string, opts ListOptions) ([]*Trip, error)
}
