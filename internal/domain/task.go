package domain

import "time"

// Category is the fixed set of task categories.
type Category string

const (
	CategoryPersonal Category = "Personal"
	CategoryWork     Category = "Work"
	CategoryFinance  Category = "Finance"
	CategoryShopping Category = "Shopping"
	CategoryHealth   Category = "Health"
)

// ValidCategory reports whether c is one of the known categories.
func ValidCategory(c Category) bool {
	switch c {
	case CategoryPersonal, CategoryWork, CategoryFinance, CategoryShopping, CategoryHealth:
		return true
	}
	return false
}

// Status is the task lifecycle state. It is supplied by the client and
// never derived from the due date.
type Status string

const (
	StatusUpcoming  Status = "Upcoming"
	StatusCompleted Status = "Completed"
	StatusOverdue   Status = "Overdue"
)

// ValidStatus reports whether s is one of the known statuses.
func ValidStatus(s Status) bool {
	switch s {
	case StatusUpcoming, StatusCompleted, StatusOverdue:
		return true
	}
	return false
}

// DateLayout is the calendar-date format used for due dates, no time component.
const DateLayout = "2006-01-02"

// Task is the domain entity for a user-owned work item.
// It does not depend on Gin, Postgres or Redis.
type Task struct {
	ID          string
	Title       string
	Description string
	Category    Category
	Amount      float64
	DueDate     string // YYYY-MM-DD
	Status      Status
	Notes       string
	Reminder    bool
	UserID      string

	CreatedAt time.Time
	UpdatedAt time.Time
}
