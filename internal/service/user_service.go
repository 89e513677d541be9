package service

import (
	"context"
	"fmt"
	"strings"

	dom "github.com/hicham722/taskflow/internal/domain"
	"github.com/hicham722/taskflow/internal/repo"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/hicham722/taskflow/internal/cache"
)

// UserService handles the mocked identity flow: login is an upsert keyed
// by email, and the admin view derives task aggregates per query.
type UserService struct {
	repo  repo.UserRepo
	cache *cache.TaskCache
	sf    singleflight.Group
}

// NewUserService returns a new UserService. If c is nil, caching is disabled.
func NewUserService(repo repo.UserRepo, c *cache.TaskCache) *UserService {
	return &UserService{repo: repo, cache: c}
}

// Sync upserts the identity and refreshes its last-login timestamp.
func (s *UserService) Sync(ctx context.Context, name, email, avatar string) (dom.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" {
		return dom.User{}, fmt.Errorf("%w: name and email are required", ErrValidation)
	}
	u, err := s.repo.Upsert(ctx, uuid.NewString(), name, email, avatar)
	if err != nil {
		return dom.User{}, err
	}
	if s.cache != nil {
		// last_login changed, so the admin ordering is stale.
		_ = s.cache.InvalidateAdminStats(ctx)
	}
	return u, nil
}

// AdminStats returns every user with derived task aggregates.
func (s *UserService) AdminStats(ctx context.Context) ([]dom.UserStat, error) {
	if s.cache != nil {
		v, err, _ := s.sf.Do("adminstats", func() (interface{}, error) {
			if list, err := s.cache.GetAdminStats(ctx); err == nil && list != nil {
				return list, nil
			}
			list, err := s.repo.ListWithStats(ctx)
			if err != nil {
				return nil, err
			}
			_ = s.cache.SetAdminStats(ctx, list)
			return list, nil
		})
		if err != nil {
			return nil, err
		}
		return v.([]dom.UserStat), nil
	}
	return s.repo.ListWithStats(ctx)
}
