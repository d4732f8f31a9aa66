package models

import "github.com/kodama-kanban/kodama/internal/types"

// TaskList is a named board column holding an ordered sequence of tasks.
// Task order within the list is the board order and is what MoveTask edits.
type TaskList struct {
	ID    types.ListID `json:"id"`
	Name  string       `json:"name"`
	Tasks []Task       `json:"tasks"`
}

// FindTask returns the index of the task with the given id, or -1.
func (l *TaskList) FindTask(id types.TaskID) int {
	for i := range l.Tasks {
		if l.Tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of the list and its tasks.
func (l TaskList) Clone() TaskList {
	out := l
	if l.Tasks != nil {
		out.Tasks = make([]Task, len(l.Tasks))
		for i := range l.Tasks {
			out.Tasks[i] = l.Tasks[i].Clone()
		}
	}
	return out
}

// CloneLists deep-copies a board snapshot.
func CloneLists(lists []TaskList) []TaskList {
	if lists == nil {
		return nil
	}
	out := make([]TaskList, len(lists))
	for i := range lists {
		out[i] = lists[i].Clone()
	}
	return out
}

// CloneTags copies a tag collection.
func CloneTags(tags []Tag) []Tag {
	if tags == nil {
		return nil
	}
	out := make([]Tag, len(tags))
	copy(out, tags)
	return out
}
