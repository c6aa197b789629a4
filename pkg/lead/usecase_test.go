package lead

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memRepo is an in-memory Repository keyed by (id, business_id),
// mirroring the store's tenant-scoped access rules.
type memRepo struct {
	leads map[string]Lead
	now   func() time.Time
}

func newMemRepo() *memRepo {
	return &memRepo{leads: make(map[string]Lead), now: time.Now}
}

func key(id, businessID string) string { return id + "|" + businessID }

func (r *memRepo) Create(_ context.Context, l Lead) error {
	r.leads[key(l.ID, l.BusinessID)] = l
	return nil
}

func (r *memRepo) Get(_ context.Context, id, businessID string) (Lead, error) {
	l, ok := r.leads[key(id, businessID)]
	if !ok {
		return Lead{}, ErrNotFound
	}
	return l, nil
}

func (r *memRepo) List(_ context.Context, businessID string, status Status, limit int) ([]Lead, error) {
	var out []Lead
	for _, l := range r.leads {
		if l.BusinessID != businessID {
			continue
		}
		if status != "" && l.Status != status {
			continue
		}
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memRepo) Update(_ context.Context, id, businessID string, patch Patch) (Lead, error) {
	l, ok := r.leads[key(id, businessID)]
	if !ok {
		return Lead{}, ErrNotFound
	}
	if patch.Status != nil {
		l.Status = *patch.Status
	}
	if patch.Message != nil {
		l.Message = *patch.Message
	}
	l.UpdatedAt = r.now().UTC()
	r.leads[key(id, businessID)] = l
	return l, nil
}

func (r *memRepo) Delete(_ context.Context, id, businessID string) error {
	delete(r.leads, key(id, businessID))
	return nil
}

func newTestService(repo Repository) *service {
	return NewService(repo).(*service)
}

func TestCreate_SetsDefaultsAndTenant(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)

	created, err := svc.Create(context.Background(), validInput(), "biz_abc123def456")
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "biz_abc123def456", created.BusinessID)
	assert.Equal(t, StatusNew, created.Status)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	got, err := svc.Get(context.Background(), created.ID, "biz_abc123def456")
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestCreate_InvalidInput(t *testing.T) {
	svc := newTestService(newMemRepo())

	in := validInput()
	in.Phone = "123"

	_, err := svc.Create(context.Background(), in, "biz_abc123def456")

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "phone")
}

func TestGet_CrossTenantIsNotFound(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)

	created, err := svc.Create(context.Background(), validInput(), "biz_tenant_a")
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), created.ID, "biz_tenant_b")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdate_CrossTenantIsNotFound(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)

	created, err := svc.Create(context.Background(), validInput(), "biz_tenant_a")
	require.NoError(t, err)

	status := StatusContacted
	_, err = svc.Update(context.Background(), created.ID, "biz_tenant_b", Patch{Status: &status})
	assert.ErrorIs(t, err, ErrNotFound)

	// The record is untouched for its owner.
	got, err := svc.Get(context.Background(), created.ID, "biz_tenant_a")
	require.NoError(t, err)
	assert.Equal(t, StatusNew, got.Status)
}

func TestUpdate_InvalidStatus(t *testing.T) {
	svc := newTestService(newMemRepo())

	status := Status("archived")
	_, err := svc.Update(context.Background(), "some-id", "biz_tenant_a", Patch{Status: &status})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "status")
}

func TestUpdate_PartialPatch(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)

	created, err := svc.Create(context.Background(), validInput(), "biz_tenant_a")
	require.NoError(t, err)

	status := StatusQualified
	updated, err := svc.Update(context.Background(), created.ID, "biz_tenant_a", Patch{Status: &status})
	require.NoError(t, err)

	assert.Equal(t, StatusQualified, updated.Status)
	// Message was not part of the patch and must survive.
	assert.Equal(t, created.Message, updated.Message)
}

func TestUpdate_EmptyPatchOnlyRefreshesUpdatedAt(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)
	svc.now = func() time.Time { return time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC) }
	repo.now = func() time.Time { return time.Date(2026, 8, 1, 10, 0, 1, 0, time.UTC) }

	created, err := svc.Create(context.Background(), validInput(), "biz_tenant_a")
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, "biz_tenant_a", Patch{})
	require.NoError(t, err)

	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
	updated.UpdatedAt = created.UpdatedAt
	assert.Equal(t, created, updated)
}

func TestDelete_ConfirmsOwnership(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)

	created, err := svc.Create(context.Background(), validInput(), "biz_tenant_a")
	require.NoError(t, err)

	err = svc.Delete(context.Background(), created.ID, "biz_tenant_b")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, svc.Delete(context.Background(), created.ID, "biz_tenant_a"))

	// Deleting a lead that is already gone surfaces as not found.
	err = svc.Delete(context.Background(), created.ID, "biz_tenant_a")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestList_ScopedAndBounded(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)

	for i := 0; i < 5; i++ {
		_, err := svc.Create(context.Background(), validInput(), "biz_tenant_a")
		require.NoError(t, err)
	}
	_, err := svc.Create(context.Background(), validInput(), "biz_tenant_b")
	require.NoError(t, err)

	leads, err := svc.List(context.Background(), "biz_tenant_a", "", 3)
	require.NoError(t, err)
	assert.Len(t, leads, 3)
	for _, l := range leads {
		assert.Equal(t, "biz_tenant_a", l.BusinessID)
	}
}

func TestList_DefaultAndMaxLimit(t *testing.T) {
	captured := &limitCapturingRepo{}
	svc := newTestService(captured)

	_, err := svc.List(context.Background(), "biz_tenant_a", "", 0)
	require.NoError(t, err)
	assert.Equal(t, defaultListLimit, captured.limit)

	_, err = svc.List(context.Background(), "biz_tenant_a", "", 5000)
	require.NoError(t, err)
	assert.Equal(t, maxListLimit, captured.limit)
}

type limitCapturingRepo struct {
	memRepo
	limit int
}

func (r *limitCapturingRepo) List(_ context.Context, _ string, _ Status, limit int) ([]Lead, error) {
	r.limit = limit
	return nil, nil
}

func TestList_StatusFilterDelegated(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)

	created, err := svc.Create(context.Background(), validInput(), "biz_tenant_a")
	require.NoError(t, err)
	status := StatusContacted
	_, err = svc.Update(context.Background(), created.ID, "biz_tenant_a", Patch{Status: &status})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), validInput(), "biz_tenant_a")
	require.NoError(t, err)

	leads, err := svc.List(context.Background(), "biz_tenant_a", StatusContacted, 0)
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, created.ID, leads[0].ID)
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{"phone": "x", "email": "y"}}
	assert.Equal(t, "invalid lead: email, phone", err.Error())
	assert.False(t, errors.Is(err, ErrNotFound))
}
