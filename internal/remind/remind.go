// Package remind emits one-time notifications for tasks flagged with a
// reminder whose due date is tomorrow. Evaluation is driven by collection
// changes, not a wall-clock timer, so a reminder can wait until some state
// change occurs — a known gap kept from the observed behavior.
package remind

import (
	"fmt"
	"time"

	"github.com/hicham722/taskflow/internal/domain"
	"github.com/hicham722/taskflow/internal/dto"
)

// Permission mirrors the three-state notification permission model.
type Permission int

const (
	PermissionDefault Permission = iota // not asked yet
	PermissionGranted
	PermissionDenied
)

// Notifier is the delivery port. Implementations decide what a
// "notification" is (desktop popup, terminal line, test fake).
type Notifier interface {
	Permission() Permission
	// RequestPermission asks the user once and returns the outcome.
	RequestPermission() Permission
	Notify(title, body string)
}

// Checker tracks which task identifiers were already notified this
// session. The seen set is in-memory only and resets with the process.
type Checker struct {
	notifier  Notifier
	seen      map[string]struct{}
	requested bool
}

// NewChecker returns a Checker delivering through n.
func NewChecker(n Notifier) *Checker {
	return &Checker{notifier: n, seen: make(map[string]struct{})}
}

// Check scans the collection and notifies for every reminder-flagged task
// due tomorrow that has not been announced yet this session. If permission
// was denied, nothing is emitted and no error is raised.
func (c *Checker) Check(tasks []dto.Task, now time.Time) {
	perm := c.notifier.Permission()
	if perm == PermissionDefault && !c.requested {
		c.requested = true
		perm = c.notifier.RequestPermission()
	}
	if perm != PermissionGranted {
		return
	}

	tomorrow := now.AddDate(0, 0, 1).Format(domain.DateLayout)
	for _, t := range tasks {
		if !t.Reminder || t.DueDate != tomorrow {
			continue
		}
		if _, ok := c.seen[t.ID]; ok {
			continue
		}
		c.seen[t.ID] = struct{}{}
		c.notifier.Notify(
			"Reminder: "+t.Title,
			fmt.Sprintf("This task is due tomorrow (%s)!", t.DueDate),
		)
	}
}
