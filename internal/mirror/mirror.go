// Package mirror is the on-device fallback snapshot: the last known task
// collection and the logged-in identity, each stored under a fixed-name
// entry and overwritten wholesale on every write. It has no authority over
// the remote store; whichever side wrote last wins.
package mirror

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hicham722/taskflow/internal/dto"
)

const (
	userEntry  = "taskflow_user"
	tasksEntry = "taskflow_tasks"
)

// Store keeps the mirror entries as JSON files in a single directory.
type Store struct {
	dir string
}

// Open prepares the mirror directory.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mirror dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// SaveTasks replaces the task snapshot wholesale.
func (s *Store) SaveTasks(tasks []dto.Task) error {
	if tasks == nil {
		tasks = []dto.Task{}
	}
	return s.write(tasksEntry, tasks)
}

// LoadTasks returns the last snapshot. Missing or corrupt entries read as
// absent, never as an error.
func (s *Store) LoadTasks() ([]dto.Task, bool) {
	var tasks []dto.Task
	if !s.read(tasksEntry, &tasks) {
		return nil, false
	}
	return tasks, true
}

// SaveUser replaces the stored identity.
func (s *Store) SaveUser(u dto.User) error {
	return s.write(userEntry, u)
}

// LoadUser returns the stored identity, if any.
func (s *Store) LoadUser() (dto.User, bool) {
	var u dto.User
	if !s.read(userEntry, &u) || u.Email == "" {
		return dto.User{}, false
	}
	return u, true
}

// DeleteUser removes the stored identity (logout).
func (s *Store) DeleteUser() error {
	err := os.Remove(s.path(userEntry))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Reset wipes both entries. Destructive and irreversible.
func (s *Store) Reset() error {
	for _, entry := range []string{userEntry, tasksEntry} {
		if err := os.Remove(s.path(entry)); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

func (s *Store) path(entry string) string {
	return filepath.Join(s.dir, entry+".json")
}

func (s *Store) write(entry string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	// Temp file + rename, so a crash mid-write never leaves a torn entry.
	tmp, err := os.CreateTemp(s.dir, entry+".*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path(entry))
}

func (s *Store) read(entry string, v any) bool {
	b, err := os.ReadFile(s.path(entry))
	if err != nil {
		return false
	}
	// Corrupt JSON is treated as absence of state.
	return json.Unmarshal(b, v) == nil
}
