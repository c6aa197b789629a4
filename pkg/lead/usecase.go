package lead

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	defaultListLimit = 100
	maxListLimit     = 1000
)

// UseCase is the tenant-scoped application layer over leads. The
// businessID argument always comes from the caller's resolved identity,
// never from a request payload.
type UseCase interface {
	Create(ctx context.Context, input CreateInput, businessID string) (Lead, error)
	Get(ctx context.Context, id, businessID string) (Lead, error)
	List(ctx context.Context, businessID string, status Status, limit int) ([]Lead, error)
	Update(ctx context.Context, id, businessID string, patch Patch) (Lead, error)
	Delete(ctx context.Context, id, businessID string) error
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) UseCase {
	return &service{repo: repo, now: time.Now}
}

func (s *service) Create(ctx context.Context, input CreateInput, businessID string) (Lead, error) {
	if err := input.Validate(); err != nil {
		return Lead{}, err
	}

	now := s.now().UTC()
	l := Lead{
		ID:         uuid.New().String(),
		BusinessID: businessID,
		FirstName:  input.FirstName,
		LastName:   input.LastName,
		Email:      input.Email,
		Phone:      input.Phone,
		Company:    input.Company,
		Message:    input.Message,
		Source:     Source(input.Source),
		Status:     StatusNew,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.Create(ctx, l); err != nil {
		return Lead{}, err
	}
	return l, nil
}

func (s *service) Get(ctx context.Context, id, businessID string) (Lead, error) {
	return s.repo.Get(ctx, id, businessID)
}

func (s *service) List(ctx context.Context, businessID string, status Status, limit int) ([]Lead, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return s.repo.List(ctx, businessID, status, limit)
}

func (s *service) Update(ctx context.Context, id, businessID string, patch Patch) (Lead, error) {
	if patch.Status != nil && !patch.Status.Valid() {
		verr := newValidationError()
		verr.Fields["status"] = "must be one of: new, contacted, qualified, converted, lost"
		return Lead{}, verr
	}

	// Confirm tenant ownership before touching the record.
	if _, err := s.repo.Get(ctx, id, businessID); err != nil {
		return Lead{}, err
	}
	return s.repo.Update(ctx, id, businessID, patch)
}

func (s *service) Delete(ctx context.Context, id, businessID string) error {
	if _, err := s.repo.Get(ctx, id, businessID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id, businessID)
}
