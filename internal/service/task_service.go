package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	dom "github.com/hicham722/taskflow/internal/domain"
	"github.com/hicham722/taskflow/internal/repo"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/singleflight"

	"github.com/hicham722/taskflow/internal/cache"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation")
)

type TaskService struct {
	repo  repo.TaskRepo
	cache *cache.TaskCache
	sf    singleflight.Group
}

// NewTaskService creates a TaskService. If c is nil, caching is disabled.
func NewTaskService(r repo.TaskRepo, c *cache.TaskCache) *TaskService {
	return &TaskService{repo: r, cache: c}
}

// normalize trims free-text fields, applies defaults and checks the
// task invariants. Status defaults to Upcoming; it is never derived
// from the due date.
func normalize(t dom.Task) (dom.Task, error) {
	t.Title = strings.TrimSpace(t.Title)
	t.Description = strings.TrimSpace(t.Description)
	t.Notes = strings.TrimSpace(t.Notes)
	t.UserID = strings.TrimSpace(t.UserID)

	if t.Title == "" {
		return dom.Task{}, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if !dom.ValidCategory(t.Category) {
		return dom.Task{}, fmt.Errorf("%w: unknown category %q", ErrValidation, t.Category)
	}
	if t.Amount < 0 {
		return dom.Task{}, fmt.Errorf("%w: amount must be >= 0", ErrValidation)
	}
	if _, err := time.Parse(dom.DateLayout, t.DueDate); err != nil {
		return dom.Task{}, fmt.Errorf("%w: dueDate must be a calendar date (YYYY-MM-DD)", ErrValidation)
	}
	if t.Status == "" {
		t.Status = dom.StatusUpcoming
	}
	if !dom.ValidStatus(t.Status) {
		return dom.Task{}, fmt.Errorf("%w: unknown status %q", ErrValidation, t.Status)
	}
	return t, nil
}

// Create stores a new task under a server-assigned identifier.
func (s *TaskService) Create(ctx context.Context, t dom.Task) (dom.Task, error) {
	t, err := normalize(t)
	if err != nil {
		return dom.Task{}, err
	}
	t.ID = uuid.NewString()
	out, err := s.repo.Create(ctx, t)
	if err != nil {
		return dom.Task{}, err
	}
	s.invalidateCache(ctx, out.UserID)
	return out, nil
}

// List returns tasks, newest first, optionally filtered by owner.
func (s *TaskService) List(ctx context.Context, userID string) ([]dom.Task, error) {
	if s.cache != nil {
		key := "list:" + userID
		v, err, _ := s.sf.Do(key, func() (interface{}, error) {
			if list, err := s.cache.GetList(ctx, userID); err == nil && list != nil {
				return list, nil
			}
			list, err := s.repo.List(ctx, userID)
			if err != nil {
				return nil, err
			}
			_ = s.cache.SetList(ctx, userID, list)
			return list, nil
		})
		if err != nil {
			return nil, err
		}
		return v.([]dom.Task), nil
	}
	return s.repo.List(ctx, userID)
}

// Replace overwrites the task with id wholesale; there are no partial patches.
func (s *TaskService) Replace(ctx context.Context, id string, t dom.Task) (dom.Task, error) {
	t, err := normalize(t)
	if err != nil {
		return dom.Task{}, err
	}
	out, err := s.repo.Replace(ctx, id, t)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Task{}, ErrNotFound
		}
		return dom.Task{}, err
	}
	s.invalidateCache(ctx, out.UserID)
	return out, nil
}

// Delete removes the task with id.
func (s *TaskService) Delete(ctx context.Context, id string) error {
	out, err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	s.invalidateCache(ctx, out.UserID)
	return nil
}

func (s *TaskService) invalidateCache(ctx context.Context, userID string) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, userID)
	}
}
