package store

import (
	"time"

	"github.com/google/uuid"

	"github.com/kodama-kanban/kodama/internal/models"
	"github.com/kodama-kanban/kodama/internal/types"
)

// Fresh boards start with three columns, three tags, and a few example tasks.

func seedTags() []models.Tag {
	return []models.Tag{
		{ID: types.TagID(uuid.NewString()), Name: "Work", Color: "#f6e7a3"},
		{ID: types.TagID(uuid.NewString()), Name: "Personal", Color: "#b0d8b2"},
		{ID: types.TagID(uuid.NewString()), Name: "Urgent", Color: "#f2c4c4"},
	}
}

// seedLists builds the default columns. Seed tasks embed copies of tags from
// the given collection; when the collection is shorter than the seed expects
// (a stored tag document next to a missing list document) the affected tasks
// simply start untagged, keeping every embedded tag resolvable.
func seedLists(tags []models.Tag, now time.Time) []models.TaskList {
	pick := func(indexes ...int) []models.Tag {
		picked := []models.Tag{}
		for _, i := range indexes {
			if i < len(tags) {
				picked = append(picked, tags[i])
			}
		}
		return picked
	}

	newTask := func(content string, priority models.Priority, taskTags []models.Tag) models.Task {
		return models.Task{
			ID:        types.TaskID(uuid.NewString()),
			Content:   content,
			Priority:  priority,
			Tags:      taskTags,
			CreatedAt: now,
			UpdatedAt: now,
		}
	}

	return []models.TaskList{
		{
			ID:   types.ListID(uuid.NewString()),
			Name: "To Do",
			Tasks: []models.Task{
				newTask("Meet Totoro in the forest", models.PriorityMedium, pick(1)),
				newTask("Help Kiki with deliveries", models.PriorityLow, pick(0)),
			},
		},
		{
			ID:   types.ListID(uuid.NewString()),
			Name: "In Progress",
			Tasks: []models.Task{
				newTask("Visit the bathhouse with No-Face", models.PriorityHigh, pick(2, 1)),
			},
		},
		{
			ID:    types.ListID(uuid.NewString()),
			Name:  "Completed",
			Tasks: []models.Task{},
		},
	}
}
