package task

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memRepo keeps tasks in insertion order, so reverse order matches
// "most recently created first" without relying on timestamp resolution.
type memRepo struct {
	mu    sync.Mutex
	tasks []Task
}

func (r *memRepo) Create(ctx context.Context, t Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks = append(r.tasks, t)
	return nil
}

func (r *memRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var res []Task
	for i := len(r.tasks) - 1; i >= 0; i-- {
		if r.tasks[i].OwnerID == ownerID {
			res = append(res, r.tasks[i])
		}
	}
	return res, nil
}

func (r *memRepo) GetByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tasks {
		if t.ID == id && t.OwnerID == ownerID {
			return t, nil
		}
	}
	return Task{}, ErrNotFound
}

func (r *memRepo) UpdateForOwner(ctx context.Context, t Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.tasks {
		if r.tasks[i].ID == t.ID && r.tasks[i].OwnerID == t.OwnerID {
			r.tasks[i] = t
			return nil
		}
	}
	return ErrNotFound
}

func (r *memRepo) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.tasks {
		if r.tasks[i].ID == id && r.tasks[i].OwnerID == ownerID {
			r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func setup() (UseCase, *memRepo) {
	repo := &memRepo{}
	return NewService(repo), repo
}

func TestCreate_TrimsAndDefaults(t *testing.T) {
	svc, _ := setup()
	owner := uuid.New()

	created, err := svc.Create(context.Background(), owner, "  Buy milk  ", "")
	require.NoError(t, err)

	assert.Equal(t, "Buy milk", created.Title)
	assert.Equal(t, "", created.Description)
	assert.False(t, created.Completed)
	assert.Equal(t, owner, created.OwnerID)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	ts, err := svc.List(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, ts, 1)
	assert.Equal(t, created.ID, ts[0].ID)
}

func TestCreate_TitleRequired(t *testing.T) {
	svc, repo := setup()
	owner := uuid.New()

	for _, title := range []string{"", "   ", "\t\n"} {
		_, err := svc.Create(context.Background(), owner, title, "desc")
		var ve ErrValidation
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "Title is required", ve.Error())
	}
	assert.Empty(t, repo.tasks, "no record may be persisted on validation failure")
}

func TestCreate_TitleTooLong(t *testing.T) {
	svc, _ := setup()

	_, err := svc.Create(context.Background(), uuid.New(), strings.Repeat("a", MaxTitleLen+1), "")
	var ve ErrValidation
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Title cannot be more than 100 characters", ve.Error())

	// Exactly at the bound passes.
	_, err = svc.Create(context.Background(), uuid.New(), strings.Repeat("a", MaxTitleLen), "")
	assert.NoError(t, err)
}

func TestCreate_DescriptionTooLong(t *testing.T) {
	svc, _ := setup()

	_, err := svc.Create(context.Background(), uuid.New(), "ok", strings.Repeat("d", MaxDescriptionLen+1))
	var ve ErrValidation
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Description cannot be more than 500 characters", ve.Error())
}

func TestList_MostRecentFirst(t *testing.T) {
	svc, _ := setup()
	owner := uuid.New()

	first, err := svc.Create(context.Background(), owner, "first", "")
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), owner, "second", "")
	require.NoError(t, err)

	ts, err := svc.List(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, ts, 2)
	assert.Equal(t, second.ID, ts[0].ID)
	assert.Equal(t, first.ID, ts[1].ID)
}

func TestList_ScopedToOwner(t *testing.T) {
	svc, _ := setup()
	u1, u2 := uuid.New(), uuid.New()

	_, err := svc.Create(context.Background(), u1, "mine", "")
	require.NoError(t, err)

	ts, err := svc.List(context.Background(), u2)
	require.NoError(t, err)
	assert.Empty(t, ts)
}

func TestUpdate_PartialFields(t *testing.T) {
	svc, _ := setup()
	owner := uuid.New()
	created, err := svc.Create(context.Background(), owner, "title", "desc")
	require.NoError(t, err)

	done := true
	updated, err := svc.Update(context.Background(), owner, created.ID, Patch{Completed: &done})
	require.NoError(t, err)

	assert.Equal(t, "title", updated.Title)
	assert.Equal(t, "desc", updated.Description)
	assert.True(t, updated.Completed)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))
}

func TestUpdate_CompletedIdempotent(t *testing.T) {
	svc, _ := setup()
	owner := uuid.New()
	created, err := svc.Create(context.Background(), owner, "title", "")
	require.NoError(t, err)

	done := true
	once, err := svc.Update(context.Background(), owner, created.ID, Patch{Completed: &done})
	require.NoError(t, err)
	twice, err := svc.Update(context.Background(), owner, created.ID, Patch{Completed: &done})
	require.NoError(t, err)

	// Only UpdatedAt may differ between the two attempts.
	once.UpdatedAt = twice.UpdatedAt
	assert.Equal(t, once, twice)
}

func TestUpdate_ForeignOwnerIsNotFound(t *testing.T) {
	svc, _ := setup()
	u1, u2 := uuid.New(), uuid.New()
	created, err := svc.Create(context.Background(), u1, "title", "desc")
	require.NoError(t, err)

	title := "hijacked"
	_, err = svc.Update(context.Background(), u2, created.ID, Patch{Title: &title})
	assert.ErrorIs(t, err, ErrNotFound)

	// Target unchanged.
	ts, err := svc.List(context.Background(), u1)
	require.NoError(t, err)
	require.Len(t, ts, 1)
	assert.Equal(t, "title", ts[0].Title)
}

func TestUpdate_TitleValidated(t *testing.T) {
	svc, _ := setup()
	owner := uuid.New()
	created, err := svc.Create(context.Background(), owner, "title", "")
	require.NoError(t, err)

	empty := "   "
	_, err = svc.Update(context.Background(), owner, created.ID, Patch{Title: &empty})
	var ve ErrValidation
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Title is required", ve.Error())

	ts, _ := svc.List(context.Background(), owner)
	require.Len(t, ts, 1)
	assert.Equal(t, "title", ts[0].Title)
}

func TestUpdate_TrimsFields(t *testing.T) {
	svc, _ := setup()
	owner := uuid.New()
	created, err := svc.Create(context.Background(), owner, "title", "")
	require.NoError(t, err)

	title, desc := "  new title  ", "  new desc  "
	updated, err := svc.Update(context.Background(), owner, created.ID, Patch{Title: &title, Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "new title", updated.Title)
	assert.Equal(t, "new desc", updated.Description)
}

func TestDelete_SecondDeleteIsNotFound(t *testing.T) {
	svc, _ := setup()
	owner := uuid.New()
	created, err := svc.Create(context.Background(), owner, "title", "")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), owner, created.ID))
	err = svc.Delete(context.Background(), owner, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete_ForeignOwnerIsNotFound(t *testing.T) {
	svc, _ := setup()
	u1, u2 := uuid.New(), uuid.New()
	created, err := svc.Create(context.Background(), u1, "title", "")
	require.NoError(t, err)

	err = svc.Delete(context.Background(), u2, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	ts, _ := svc.List(context.Background(), u1)
	assert.Len(t, ts, 1)
}

func TestUpdate_UnknownID(t *testing.T) {
	svc, _ := setup()
	done := true
	_, err := svc.Update(context.Background(), uuid.New(), uuid.New(), Patch{Completed: &done})
	assert.True(t, errors.Is(err, ErrNotFound))
}
