package models

import "github.com/kodama-kanban/kodama/internal/types"

// Tag is a reusable colored label attachable to any task.
// Tasks hold a value copy of the tag as it looked at attach time; UpdateTag
// and DeleteTag on the store walk all tasks to keep the copies in sync.
type Tag struct {
	ID    types.TagID `json:"id"`
	Name  string      `json:"name"`
	Color string      `json:"color"` // Hex color code (e.g., "#f2c4c4")
}
