package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hicham722/taskflow/internal/dto"
)

// StatusError is a non-2xx response. The coordinator treats it the same
// as a transport failure, but callers outside the sync path can inspect it.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api: status %d: %s", e.Code, e.Message)
}

// API is the typed HTTP client for the TaskFlow service.
type API struct {
	base string
	hc   *http.Client
}

// NewAPI returns a client for the service at base, e.g. "http://localhost:8080".
func NewAPI(base string, timeout time.Duration) *API {
	return &API{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: timeout},
	}
}

func (a *API) ListTasks(ctx context.Context, userID string) ([]dto.Task, error) {
	path := "/api/tasks"
	if userID != "" {
		path += "?userId=" + url.QueryEscape(userID)
	}
	var out []dto.Task
	if err := a.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *API) CreateTask(ctx context.Context, p dto.TaskPayload) (dto.Task, error) {
	var out dto.Task
	if err := a.do(ctx, http.MethodPost, "/api/tasks", p, &out); err != nil {
		return dto.Task{}, err
	}
	return out, nil
}

func (a *API) ReplaceTask(ctx context.Context, id string, p dto.TaskPayload) (dto.Task, error) {
	var out dto.Task
	if err := a.do(ctx, http.MethodPut, "/api/tasks/"+url.PathEscape(id), p, &out); err != nil {
		return dto.Task{}, err
	}
	return out, nil
}

func (a *API) DeleteTask(ctx context.Context, id string) error {
	return a.do(ctx, http.MethodDelete, "/api/tasks/"+url.PathEscape(id), nil, nil)
}

func (a *API) SyncUser(ctx context.Context, req dto.SyncUserRequest) (dto.User, error) {
	var out dto.User
	if err := a.do(ctx, http.MethodPost, "/api/users/sync", req, &out); err != nil {
		return dto.User{}, err
	}
	return out, nil
}

func (a *API) AdminUsers(ctx context.Context) ([]dto.UserStat, error) {
	var out []dto.UserStat
	if err := a.do(ctx, http.MethodGet, "/api/admin/users", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *API) do(ctx context.Context, method, path string, body, out any) error {
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: encode body: %w", err)
		}
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.base+path, rd)
	if err != nil {
		return fmt.Errorf("api: new request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.hc.Do(req)
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var er dto.ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&er)
		return &StatusError{Code: resp.StatusCode, Message: er.Message}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("api: decode response: %w", err)
	}
	return nil
}
