package client

import (
	"context"
	"errors"
	"io"
	"reflect"
	"testing"

	"github.com/hicham722/taskflow/internal/dto"
	"github.com/hicham722/taskflow/internal/mirror"
	"github.com/hicham722/taskflow/internal/stats"

	"github.com/sirupsen/logrus"
)

var errUnreachable = errors.New("connection refused")

// fakeAPI is an in-memory remote store. Setting down makes every call
// fail like a transport error.
type fakeAPI struct {
	down    bool
	tasks   []dto.Task
	nextID  int
	calls   []string
	deleted []string
}

func (f *fakeAPI) record(op string) { f.calls = append(f.calls, op) }

func (f *fakeAPI) ListTasks(ctx context.Context, userID string) ([]dto.Task, error) {
	f.record("list")
	if f.down {
		return nil, errUnreachable
	}
	out := make([]dto.Task, len(f.tasks))
	copy(out, f.tasks)
	return out, nil
}

func (f *fakeAPI) CreateTask(ctx context.Context, p dto.TaskPayload) (dto.Task, error) {
	f.record("create")
	if f.down {
		return dto.Task{}, errUnreachable
	}
	f.nextID++
	t := payloadToTask(p)
	t.ID = string(rune('a' + f.nextID - 1))
	f.tasks = append([]dto.Task{t}, f.tasks...)
	return t, nil
}

func (f *fakeAPI) ReplaceTask(ctx context.Context, id string, p dto.TaskPayload) (dto.Task, error) {
	f.record("replace")
	if f.down {
		return dto.Task{}, errUnreachable
	}
	t := payloadToTask(p)
	t.ID = id
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks[i] = t
			return t, nil
		}
	}
	return dto.Task{}, &StatusError{Code: 404, Message: "task not found"}
}

func (f *fakeAPI) DeleteTask(ctx context.Context, id string) error {
	f.record("delete")
	if f.down {
		return errUnreachable
	}
	f.deleted = append(f.deleted, id)
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeAPI) SyncUser(ctx context.Context, req dto.SyncUserRequest) (dto.User, error) {
	f.record("sync")
	if f.down {
		return dto.User{}, errUnreachable
	}
	return dto.User{ID: "u1", Name: req.Name, Email: req.Email, Avatar: req.Avatar}, nil
}

func (f *fakeAPI) AdminUsers(ctx context.Context) ([]dto.UserStat, error) {
	f.record("admin")
	if f.down {
		return nil, errUnreachable
	}
	return []dto.UserStat{
		{User: dto.User{ID: "u1", Name: "Ada", Email: "ada@example.com"}, TotalTasks: 3, CompletedTasks: 1, TotalSpent: 900},
	}, nil
}

func newTestCoordinator(t *testing.T, api *fakeAPI) (*Coordinator, *mirror.Store) {
	t.Helper()

	store, err := mirror.Open(t.TempDir())
	if err != nil {
		t.Fatalf("mirror open: %v", err)
	}
	log := logrus.New()
	log.SetOutput(io.Discard)
	c := New(api, store, log)
	n := 0
	c.newID = func() string { n++; return "local-" + string(rune('0'+n)) }
	return c, store
}

func mustPayload(t *testing.T, title string) dto.TaskPayload {
	t.Helper()

	due, err := dto.NewDueDate("2026-04-01")
	if err != nil {
		t.Fatalf("due date: %v", err)
	}
	return dto.TaskPayload{Title: title, Category: "Personal", DueDate: due, Status: "Upcoming"}
}

func TestListFailureFlipsOfflineAndLoadsMirror(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{down: true}
	c, store := newTestCoordinator(t, api)
	if err := store.SaveTasks([]dto.Task{{ID: "m1", Title: "from mirror"}}); err != nil {
		t.Fatalf("seed mirror: %v", err)
	}

	got := c.List(context.Background())

	if c.Mode() != Offline {
		t.Fatalf("expected offline mode after failed list, got %v", c.Mode())
	}
	if len(got) != 1 || got[0].ID != "m1" {
		t.Fatalf("collection must equal the last mirror snapshot, got %v", got)
	}
}

func TestListFailureWithEmptyMirrorYieldsEmptyCollection(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{down: true}
	c, _ := newTestCoordinator(t, api)

	got := c.List(context.Background())

	if c.Mode() != Offline {
		t.Fatalf("expected offline mode, got %v", c.Mode())
	}
	if len(got) != 0 {
		t.Fatalf("expected empty collection with no mirror, got %v", got)
	}
}

func TestListSuccessOverwritesMirrorWholesale(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{tasks: []dto.Task{{ID: "r1", Title: "remote"}}}
	c, store := newTestCoordinator(t, api)
	if err := store.SaveTasks([]dto.Task{{ID: "stale", Title: "old snapshot"}}); err != nil {
		t.Fatalf("seed mirror: %v", err)
	}

	got := c.List(context.Background())

	if c.Mode() != Online {
		t.Fatalf("expected online mode, got %v", c.Mode())
	}
	if len(got) != 1 || got[0].ID != "r1" {
		t.Fatalf("collection must match remote, got %v", got)
	}
	snap, ok := store.LoadTasks()
	if !ok || len(snap) != 1 || snap[0].ID != "r1" {
		t.Fatalf("mirror must be a full replace of the fetch, got %v", snap)
	}
}

func TestCreateFailureRetriesLocally(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{}
	c, store := newTestCoordinator(t, api)
	c.List(context.Background()) // online

	api.down = true
	task, err := c.Create(context.Background(), mustPayload(t, "written once"))
	if err != nil {
		t.Fatalf("a failed remote create must degrade, not error: %v", err)
	}

	if c.Mode() != Offline {
		t.Fatalf("expected offline after failed create, got %v", c.Mode())
	}
	if task.ID == "" {
		t.Fatal("offline create must assign a client identifier")
	}
	snap, ok := store.LoadTasks()
	if !ok || len(snap) != 1 || snap[0].Title != "written once" {
		t.Fatalf("the write must land in the mirror, got %v", snap)
	}
}

func TestOfflineCreateDroppedByNextSync(t *testing.T) {
	t.Parallel()

	// Documented gap: an offline-created task is not pushed when the
	// client goes back online; the next successful list overwrites the
	// mirror with the server copy.
	api := &fakeAPI{down: true}
	c, store := newTestCoordinator(t, api)

	c.List(context.Background())
	if _, err := c.Create(context.Background(), mustPayload(t, "offline only")); err != nil {
		t.Fatalf("offline create: %v", err)
	}

	api.down = false
	api.tasks = []dto.Task{{ID: "r1", Title: "remote"}}
	got := c.List(context.Background())

	if len(got) != 1 || got[0].ID != "r1" {
		t.Fatalf("expected the server copy to win, got %v", got)
	}
	snap, _ := store.LoadTasks()
	for _, s := range snap {
		if s.Title == "offline only" {
			t.Fatal("mirror must have been overwritten by the server copy")
		}
	}
}

func TestUpdateOnlineMergesServerRecord(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{tasks: []dto.Task{{ID: "r1", Title: "before"}}}
	c, _ := newTestCoordinator(t, api)
	c.List(context.Background())

	got, err := c.Update(context.Background(), "r1", mustPayload(t, "after"))
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if got.Title != "after" {
		t.Fatalf("expected the server's record, got %+v", got)
	}
	if tasks := c.Tasks(); tasks[0].Title != "after" {
		t.Fatalf("collection must hold the merged record, got %+v", tasks)
	}
}

func TestUpdateUnknownIDOffline(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{down: true}
	c, _ := newTestCoordinator(t, api)
	c.List(context.Background())

	if _, err := c.Update(context.Background(), "ghost", mustPayload(t, "x")); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestIdenticalReplaceLeavesStatsUnchanged(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{tasks: []dto.Task{
		{ID: "r1", Title: "rent", Amount: 900, DueDate: "2026-04-01", Category: "Finance", Status: "Upcoming"},
		{ID: "r2", Title: "done", DueDate: "2026-04-01", Category: "Work", Status: "Completed"},
	}}
	c, _ := newTestCoordinator(t, api)
	c.List(context.Background())

	before := stats.Compute(c.Tasks())

	same := c.Tasks()[0].Payload()
	if _, err := c.Update(context.Background(), "r1", same); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	after := stats.Compute(c.Tasks())
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("identical replace changed stats: %+v != %+v", before, after)
	}
}

func TestDeclinedDeleteIssuesNoCall(t *testing.T) {
	t.Parallel()

	// Confirmation lives in the caller: when it is declined, Delete is
	// simply never invoked. The collection and remote store stay put.
	api := &fakeAPI{tasks: []dto.Task{{ID: "r1", Title: "keep me"}}}
	c, _ := newTestCoordinator(t, api)
	c.List(context.Background())

	confirmed := false
	if confirmed {
		_ = c.Delete(context.Background(), "r1")
	}

	if len(api.deleted) != 0 {
		t.Fatalf("no delete call may be issued, got %v", api.deleted)
	}
	if tasks := c.Tasks(); len(tasks) != 1 {
		t.Fatalf("collection must be unchanged, got %v", tasks)
	}
}

func TestDeleteOfflineTouchesOnlyLocalState(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{down: true}
	c, store := newTestCoordinator(t, api)
	if err := store.SaveTasks([]dto.Task{{ID: "m1"}, {ID: "m2"}}); err != nil {
		t.Fatalf("seed mirror: %v", err)
	}
	c.List(context.Background())

	if err := c.Delete(context.Background(), "m1"); err != nil {
		t.Fatalf("offline delete: %v", err)
	}

	if len(api.deleted) != 0 {
		t.Fatal("offline delete must not reach the API")
	}
	snap, _ := store.LoadTasks()
	if len(snap) != 1 || snap[0].ID != "m2" {
		t.Fatalf("mirror must reflect the delete, got %v", snap)
	}
}

func TestModeTransitions(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{}
	c, _ := newTestCoordinator(t, api)

	c.List(context.Background())
	if c.Mode() != Online {
		t.Fatalf("expected online, got %v", c.Mode())
	}

	api.down = true
	c.List(context.Background())
	if c.Mode() != Offline {
		t.Fatalf("expected offline, got %v", c.Mode())
	}

	api.down = false
	c.List(context.Background())
	if c.Mode() != Online {
		t.Fatalf("expected recovery to online, got %v", c.Mode())
	}
}

func TestAdminUsersPassesThroughAggregates(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{}
	c, _ := newTestCoordinator(t, api)

	list, err := c.AdminUsers(context.Background())
	if err != nil {
		t.Fatalf("AdminUsers failed: %v", err)
	}
	if len(list) != 1 || list[0].Email != "ada@example.com" || list[0].TotalTasks != 3 {
		t.Fatalf("expected the server aggregates, got %+v", list)
	}
}

func TestAdminUsersHasNoOfflineFallback(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{tasks: []dto.Task{{ID: "r1"}}}
	c, _ := newTestCoordinator(t, api)
	c.List(context.Background())

	api.down = true
	if _, err := c.AdminUsers(context.Background()); !errors.Is(err, errUnreachable) {
		t.Fatalf("the admin view must surface the error, got %v", err)
	}
	if c.Mode() != Online {
		t.Fatalf("a failed admin listing must not flip the sync mode, got %v", c.Mode())
	}
	if tasks := c.Tasks(); len(tasks) != 1 {
		t.Fatalf("task collection must be untouched, got %v", tasks)
	}
}

func TestLoginFailureKeepsLocalIdentity(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{down: true}
	c, store := newTestCoordinator(t, api)

	u, err := c.Login(context.Background(), "Ada", "ada@example.com", "")
	if err != nil {
		t.Fatalf("login must degrade, not error: %v", err)
	}
	if c.Mode() != Offline {
		t.Fatalf("expected offline after failed sync, got %v", c.Mode())
	}
	if u.Email != "ada@example.com" {
		t.Fatalf("local identity must be kept, got %+v", u)
	}
	if saved, ok := store.LoadUser(); !ok || saved.Email != "ada@example.com" {
		t.Fatalf("identity must be mirrored, got %+v ok=%v", saved, ok)
	}
}

func TestChangeHookSeesConsistentState(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{}
	c, store := newTestCoordinator(t, api)

	var seen [][]dto.Task
	c.OnChange(func(tasks []dto.Task) {
		// The mirror must already hold what the hook observes.
		snap, _ := store.LoadTasks()
		if len(snap) != len(tasks) {
			t.Errorf("hook ran before the mirror was written: %d vs %d", len(snap), len(tasks))
		}
		seen = append(seen, tasks)
	})

	c.List(context.Background())
	if _, err := c.Create(context.Background(), mustPayload(t, "x")); err != nil {
		t.Fatalf("create: %v", err)
	}

	if len(seen) != 2 {
		t.Fatalf("expected a hook call per change, got %d", len(seen))
	}
}
