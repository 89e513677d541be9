package dto

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DueDate validates a calendar date from JSON ("2006-01-02", no time part).
type DueDate struct{ s string }

// NewDueDate validates s as a calendar date.
func NewDueDate(s string) (DueDate, error) {
	s = strings.TrimSpace(s)
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return DueDate{}, fmt.Errorf("dueDate: use a calendar date (YYYY-MM-DD)")
	}
	return DueDate{s: s}, nil
}

func (d *DueDate) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fmt.Errorf("dueDate is required")
	}
	if _, err := time.Parse("2006-01-02", raw); err != nil {
		return fmt.Errorf("dueDate: use a calendar date (YYYY-MM-DD)")
	}
	d.s = raw
	return nil
}

func (d DueDate) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.s)
}

// String returns the validated YYYY-MM-DD value.
func (d DueDate) String() string { return d.s }

// TaskPayload is the JSON body for POST /tasks and PUT /tasks/:id.
// Mutation is full-record replacement, so create and replace share it.
type TaskPayload struct {
	Title       string  `json:"title" binding:"required,min=1,max=120"`
	Description string  `json:"description" binding:"max=1000"`
	Category    string  `json:"category" binding:"required"`
	Amount      float64 `json:"amount" binding:"gte=0"`
	DueDate     DueDate `json:"dueDate" binding:"required"`
	Status      string  `json:"status"`
	Notes       string  `json:"notes" binding:"max=2000"`
	Reminder    bool    `json:"reminder"`
	UserID      string  `json:"userId"`
}

// Task is the wire representation of a task. The client-side packages
// (sync coordinator, mirror, stats, reminders) operate on it directly.
type Task struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	DueDate     string  `json:"dueDate"`
	Status      string  `json:"status"`
	Notes       string  `json:"notes,omitempty"`
	Reminder    bool    `json:"reminder"`
	UserID      string  `json:"userId,omitempty"`

	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// Payload converts a wire task back into a request body, for replays of
// locally-held records through the create/replace endpoints.
func (t Task) Payload() TaskPayload {
	return TaskPayload{
		Title:       t.Title,
		Description: t.Description,
		Category:    t.Category,
		Amount:      t.Amount,
		DueDate:     DueDate{s: t.DueDate},
		Status:      t.Status,
		Notes:       t.Notes,
		Reminder:    t.Reminder,
		UserID:      t.UserID,
	}
}
