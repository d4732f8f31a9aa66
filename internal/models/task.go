package models

import (
	"time"

	"github.com/kodama-kanban/kodama/internal/types"
)

// Task is a single card on the board.
//
// The json tags define the persisted document shape: optional fields are
// omitted when unset so a stored task round-trips to the same value.
type Task struct {
	ID        types.TaskID `json:"id"`
	Content   string       `json:"content"`
	Completed bool         `json:"completed"`
	Priority  Priority     `json:"priority"`
	Tags      []Tag        `json:"tags"`
	DueDate   *time.Time   `json:"dueDate,omitempty"`

	// EmailReminder is the intended recipient address. ReminderSent records
	// that a send was triggered, not that delivery succeeded.
	EmailReminder string `json:"emailReminder,omitempty"`
	ReminderSent  bool   `json:"reminderSent,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// HasTag reports whether the task carries a tag with the given id.
func (t *Task) HasTag(id types.TagID) bool {
	for _, tag := range t.Tags {
		if tag.ID == id {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the task.
func (t Task) Clone() Task {
	out := t
	if t.Tags != nil {
		out.Tags = make([]Tag, len(t.Tags))
		copy(out.Tags, t.Tags)
	}
	if t.DueDate != nil {
		due := *t.DueDate
		out.DueDate = &due
	}
	return out
}
