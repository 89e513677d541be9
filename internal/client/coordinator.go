// Package client holds the sync coordinator: it routes task operations
// between the remote API and the local mirror, degrading to mirror-only
// mode on any transport failure and converging the mirror to the last
// successful remote read.
package client

import (
	"context"
	"errors"

	"github.com/hicham722/taskflow/internal/domain"
	"github.com/hicham722/taskflow/internal/dto"
	"github.com/hicham722/taskflow/internal/mirror"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ErrNotFound is returned for operations naming an identifier that is
// absent from the in-memory collection while offline.
var ErrNotFound = errors.New("task not found")

// Mode is the coordinator's explicit connectivity state.
type Mode int

const (
	Online Mode = iota
	Offline
)

func (m Mode) String() string {
	if m == Online {
		return "online"
	}
	return "offline"
}

// TaskAPI is the remote surface the coordinator needs. *API implements it.
type TaskAPI interface {
	ListTasks(ctx context.Context, userID string) ([]dto.Task, error)
	CreateTask(ctx context.Context, p dto.TaskPayload) (dto.Task, error)
	ReplaceTask(ctx context.Context, id string, p dto.TaskPayload) (dto.Task, error)
	DeleteTask(ctx context.Context, id string) error
	SyncUser(ctx context.Context, req dto.SyncUserRequest) (dto.User, error)
	AdminUsers(ctx context.Context) ([]dto.UserStat, error)
}

// Coordinator owns the in-memory task collection for the session. It is
// not safe for concurrent use; all operations run on one caller at a time,
// mirroring the single event thread of the UI it serves.
type Coordinator struct {
	api      TaskAPI
	store    *mirror.Store
	log      *logrus.Entry
	newID    func() string
	mode     Mode
	user     *dto.User
	tasks    []dto.Task
	onChange []func([]dto.Task)
}

// New builds a coordinator. The stored identity, if any, is picked up from
// the mirror so a reload stays logged in.
func New(api TaskAPI, store *mirror.Store, log *logrus.Logger) *Coordinator {
	c := &Coordinator{
		api:   api,
		store: store,
		log:   log.WithField("component", "sync"),
		newID: uuid.NewString,
		mode:  Online,
	}
	if u, ok := store.LoadUser(); ok {
		c.user = &u
	}
	return c
}

// OnChange registers a hook called after every successful change to the
// collection (stats recompute, reminder check). Hooks observe the
// collection only after both it and the mirror are updated.
func (c *Coordinator) OnChange(fn func(tasks []dto.Task)) {
	c.onChange = append(c.onChange, fn)
}

// Mode reports the current connectivity state.
func (c *Coordinator) Mode() Mode { return c.mode }

// User returns the current identity, if logged in.
func (c *Coordinator) User() (dto.User, bool) {
	if c.user == nil {
		return dto.User{}, false
	}
	return *c.user, true
}

// Tasks returns a copy of the in-memory collection.
func (c *Coordinator) Tasks() []dto.Task {
	out := make([]dto.Task, len(c.tasks))
	copy(out, c.tasks)
	return out
}

// Login upserts the identity remotely. On transport failure the local
// identity is kept and the session starts offline.
func (c *Coordinator) Login(ctx context.Context, name, email, avatar string) (dto.User, error) {
	u, err := c.api.SyncUser(ctx, dto.SyncUserRequest{Name: name, Email: email, Avatar: avatar})
	if err != nil {
		c.setMode(Offline, "user sync failed", err)
		u = dto.User{Name: name, Email: email, Avatar: avatar}
	} else {
		c.setMode(Online, "user sync succeeded", nil)
	}
	if err := c.store.SaveUser(u); err != nil {
		return dto.User{}, err
	}
	c.user = &u
	return u, nil
}

// Logout clears the identity and the in-memory collection. The mirrored
// task snapshot stays; only Reset wipes it.
func (c *Coordinator) Logout() error {
	c.user = nil
	c.tasks = nil
	return c.store.DeleteUser()
}

// AdminUsers lists users with task aggregates. The admin view has no
// mirror: it is online only, and the error surfaces to the caller
// without touching the task collection.
func (c *Coordinator) AdminUsers(ctx context.Context) ([]dto.UserStat, error) {
	return c.api.AdminUsers(ctx)
}

// List refreshes the collection from the remote store. On success the
// mirror is overwritten wholesale with the fetched collection (full
// replace, not merge). On any failure the coordinator flips offline and
// loads whatever the mirror last held. Transport errors never escape.
func (c *Coordinator) List(ctx context.Context) []dto.Task {
	var owner string
	if c.user != nil {
		owner = c.user.Email
	}
	remote, err := c.api.ListTasks(ctx, owner)
	if err != nil {
		c.setMode(Offline, "list failed", err)
		local, ok := c.store.LoadTasks()
		if !ok {
			local = []dto.Task{}
		}
		c.tasks = local
		c.notify()
		return c.Tasks()
	}
	c.setMode(Online, "list succeeded", nil)
	if remote == nil {
		remote = []dto.Task{}
	}
	c.tasks = remote
	c.persist()
	c.notify()
	return c.Tasks()
}

// Create adds a task. Online, the server assigns the identifier; offline
// (or after a failed remote attempt) a client-generated one is used and
// the write lands in the mirror, so a single failure loses nothing.
func (c *Coordinator) Create(ctx context.Context, p dto.TaskPayload) (dto.Task, error) {
	if c.mode == Online {
		t, err := c.api.CreateTask(ctx, p)
		if err == nil {
			c.tasks = append([]dto.Task{t}, c.tasks...)
			c.persist()
			c.notify()
			return t, nil
		}
		c.setMode(Offline, "create failed", err)
	}
	t := payloadToTask(p)
	t.ID = c.newID()
	c.tasks = append([]dto.Task{t}, c.tasks...)
	c.persist()
	c.notify()
	return t, nil
}

// Update replaces the task wholesale. Same online/offline branching as
// Create; the in-memory record is swapped for the server's copy when the
// remote write succeeds.
func (c *Coordinator) Update(ctx context.Context, id string, p dto.TaskPayload) (dto.Task, error) {
	if c.indexOf(id) < 0 {
		return dto.Task{}, ErrNotFound
	}
	if c.mode == Online {
		t, err := c.api.ReplaceTask(ctx, id, p)
		if err == nil {
			c.replace(t)
			return t, nil
		}
		c.setMode(Offline, "update failed", err)
	}
	t := payloadToTask(p)
	t.ID = id
	c.replace(t)
	return t, nil
}

// Delete removes the task. Confirmation is the caller's job; a declined
// confirmation must simply not call this. Offline deletes touch only the
// collection and the mirror.
func (c *Coordinator) Delete(ctx context.Context, id string) error {
	if c.mode == Online {
		if err := c.api.DeleteTask(ctx, id); err != nil {
			c.setMode(Offline, "delete failed", err)
		}
	}
	i := c.indexOf(id)
	if i < 0 {
		return nil
	}
	c.tasks = append(c.tasks[:i], c.tasks[i+1:]...)
	c.persist()
	c.notify()
	return nil
}

func (c *Coordinator) replace(t dto.Task) {
	if i := c.indexOf(t.ID); i >= 0 {
		c.tasks[i] = t
	}
	c.persist()
	c.notify()
}

func (c *Coordinator) indexOf(id string) int {
	for i := range c.tasks {
		if c.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (c *Coordinator) persist() {
	if err := c.store.SaveTasks(c.tasks); err != nil {
		c.log.WithError(err).Warn("mirror write failed")
	}
}

func (c *Coordinator) notify() {
	for _, fn := range c.onChange {
		fn(c.Tasks())
	}
}

func (c *Coordinator) setMode(m Mode, reason string, err error) {
	if c.mode == m {
		return
	}
	entry := c.log.WithFields(logrus.Fields{
		"from":   c.mode.String(),
		"to":     m.String(),
		"reason": reason,
	})
	if err != nil {
		entry = entry.WithError(err)
	}
	entry.Info("mode transition")
	c.mode = m
}

func payloadToTask(p dto.TaskPayload) dto.Task {
	status := p.Status
	if status == "" {
		status = string(domain.StatusUpcoming)
	}
	return dto.Task{
		Title:       p.Title,
		Description: p.Description,
		Category:    p.Category,
		Amount:      p.Amount,
		DueDate:     p.DueDate.String(),
		Status:      status,
		Notes:       p.Notes,
		Reminder:    p.Reminder,
		UserID:      p.UserID,
	}
}
