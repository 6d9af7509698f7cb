package task

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Task belongs to exactly one owner for its whole lifetime; there is no
// sharing or transfer. OwnerID is always derived from the authenticated
// principal, never from client input.
type Task struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"userId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Repository is the persistence port for tasks. Every lookup and mutation
// filters by both task id and owner id: a task id alone never authorizes
// access, and "missing" is indistinguishable from "owned by someone else".
type Repository interface {
	Create(ctx context.Context, t Task) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]Task, error)
	GetByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (Task, error)
	UpdateForOwner(ctx context.Context, t Task) error
	DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error
}
