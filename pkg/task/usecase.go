package task

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	MaxTitleLen       = 100
	MaxDescriptionLen = 500
)

// ErrNotFound covers both a nonexistent task and a task owned by another
// user, deliberately: existence of foreign tasks must not leak.
var ErrNotFound = errors.New("task not found")

// ErrValidation простая ошибка валидации.
type ErrValidation string

func (e ErrValidation) Error() string { return string(e) }

// Patch carries the optional fields of a partial update; nil means
// "leave unchanged".
type Patch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

// UseCase инкапсулирует операции над задачами владельца.
type UseCase interface {
	Create(ctx context.Context, ownerID uuid.UUID, title, description string) (Task, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]Task, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, p Patch) (Task, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) UseCase { return &service{repo: repo} }

func (s *service) Create(ctx context.Context, ownerID uuid.UUID, title, description string) (Task, error) {
	title, err := normalizeTitle(title)
	if err != nil {
		return Task{}, err
	}
	description, err = normalizeDescription(description)
	if err != nil {
		return Task{}, err
	}
	now := time.Now().UTC()
	t := Task{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		Completed:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return Task{}, err
	}
	return t, nil
}

func (s *service) List(ctx context.Context, ownerID uuid.UUID) ([]Task, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *service) Update(ctx context.Context, ownerID, id uuid.UUID, p Patch) (Task, error) {
	t, err := s.repo.GetByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return Task{}, err
	}
	if p.Title != nil {
		title, err := normalizeTitle(*p.Title)
		if err != nil {
			return Task{}, err
		}
		t.Title = title
	}
	if p.Description != nil {
		description, err := normalizeDescription(*p.Description)
		if err != nil {
			return Task{}, err
		}
		t.Description = description
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	t.UpdatedAt = time.Now().UTC()
	// A concurrent delete between the read above and this write surfaces
	// as ErrNotFound; last writer wins otherwise.
	if err := s.repo.UpdateForOwner(ctx, t); err != nil {
		return Task{}, err
	}
	return t, nil
}

func (s *service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.repo.DeleteForOwner(ctx, ownerID, id)
}

func normalizeTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", ErrValidation("Title is required")
	}
	if utf8.RuneCountInString(title) > MaxTitleLen {
		return "", ErrValidation("Title cannot be more than 100 characters")
	}
	return title, nil
}

func normalizeDescription(description string) (string, error) {
	description = strings.TrimSpace(description)
	if utf8.RuneCountInString(description) > MaxDescriptionLen {
		return "", ErrValidation("Description cannot be more than 500 characters")
	}
	return description, nil
}
