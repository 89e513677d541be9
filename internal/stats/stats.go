// Package stats derives dashboard numbers and filtered views from the
// in-memory task collection. Everything here is a pure function,
// recomputed whenever the collection changes.
package stats

import (
	"math"
	"time"

	"github.com/hicham722/taskflow/internal/domain"
	"github.com/hicham722/taskflow/internal/dto"
)

// Dashboard is the derived stats block.
type Dashboard struct {
	TotalTasks      int
	CompletedTasks  int
	PendingPayments int
	Progress        float64
}

// Compute returns the dashboard stats for the collection. Progress is 0
// when the collection is empty, otherwise completed/total*100.
func Compute(tasks []dto.Task) Dashboard {
	d := Dashboard{TotalTasks: len(tasks)}
	for _, t := range tasks {
		if t.Status == string(domain.StatusCompleted) {
			d.CompletedTasks++
		} else if t.Amount > 0 {
			d.PendingPayments++
		}
	}
	if d.TotalTasks > 0 {
		d.Progress = float64(d.CompletedTasks) / float64(d.TotalTasks) * 100
	}
	return d
}

// Filter selects one mutually exclusive view of the collection.
type Filter string

const (
	FilterAll     Filter = "all"
	FilterToday   Filter = "today"
	FilterOverdue Filter = "overdue"
	FilterWeek    Filter = "week"
	FilterMonth   Filter = "month"
)

// Apply returns the tasks matching f relative to now. Unknown filters
// behave like FilterAll.
//
// The week window uses the absolute distance between the due date and now,
// so it also matches tasks overdue by up to 7 days, not only upcoming
// ones. That is the documented behavior and is kept as-is.
func Apply(tasks []dto.Task, f Filter, now time.Time) []dto.Task {
	if f == FilterAll || f == "" {
		return tasks
	}
	today := now.Format(domain.DateLayout)

	out := make([]dto.Task, 0, len(tasks))
	for _, t := range tasks {
		switch f {
		case FilterToday:
			if t.DueDate == today {
				out = append(out, t)
			}
		case FilterOverdue:
			// Status only; the due date is not consulted.
			if t.Status == string(domain.StatusOverdue) {
				out = append(out, t)
			}
		case FilterWeek:
			due, err := time.Parse(domain.DateLayout, t.DueDate)
			if err != nil {
				continue
			}
			days := math.Ceil(math.Abs(due.Sub(now).Hours()) / 24)
			if days <= 7 {
				out = append(out, t)
			}
		case FilterMonth:
			due, err := time.Parse(domain.DateLayout, t.DueDate)
			if err != nil {
				continue
			}
			if due.Month() == now.Month() && due.Year() == now.Year() {
				out = append(out, t)
			}
		default:
			out = append(out, t)
		}
	}
	return out
}
