package lead

import (
	"context"
	"errors"
)

// ErrNotFound covers both a truly absent lead and a lead owned by a
// different business; callers cannot tell the two apart.
var ErrNotFound = errors.New("lead not found")

// Patch is the set of externally mutable lead fields. Only non-nil
// fields are applied; a nil field leaves the stored value untouched.
type Patch struct {
	Status  *Status
	Message *string
}

func (p Patch) IsEmpty() bool {
	return p.Status == nil && p.Message == nil
}

// Repository is the port for lead persistence. Every method takes the
// owning business id; implementations must never return another
// tenant's record.
type Repository interface {
	Create(ctx context.Context, l Lead) error
	// Get returns ErrNotFound for an absent (id, businessID) pair.
	Get(ctx context.Context, id, businessID string) (Lead, error)
	// List returns the business's leads most-recent-first. A non-empty
	// status narrows the result; limit bounds the page size.
	List(ctx context.Context, businessID string, status Status, limit int) ([]Lead, error)
	// Update applies the patch plus an updated_at refresh and returns
	// the stored lead. Updating an absent key is ErrNotFound.
	Update(ctx context.Context, id, businessID string, patch Patch) (Lead, error)
	// Delete is idempotent; deleting an absent lead is not an error.
	Delete(ctx context.Context, id, businessID string) error
}
