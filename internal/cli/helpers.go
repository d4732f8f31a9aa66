package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/kodama-kanban/kodama/internal/models"
	"github.com/kodama-kanban/kodama/internal/types"
)

// ResolveList finds a list by id or name, reporting through the formatter
// when it doesn't exist.
func ResolveList(c *CLI, formatter *OutputFormatter, ref string) (models.TaskList, bool) {
	list, ok := c.Store.FindList(ref)
	if !ok {
		names := make([]string, 0)
		for _, l := range c.Store.Lists() {
			names = append(names, l.Name)
		}
		_ = formatter.ErrorWithSuggestion("LIST_NOT_FOUND",
			fmt.Sprintf("list %q not found", ref),
			"Available lists: "+strings.Join(names, ", "))
		return models.TaskList{}, false
	}
	return list, true
}

// ResolveTask finds a task by id, unique id prefix, or exact content match.
// listRef narrows the search to one list when non-empty.
func ResolveTask(c *CLI, formatter *OutputFormatter, listRef, taskRef string) (types.ListID, models.Task, bool) {
	var lists []models.TaskList
	if listRef != "" {
		list, ok := ResolveList(c, formatter, listRef)
		if !ok {
			return "", models.Task{}, false
		}
		lists = []models.TaskList{list}
	} else {
		lists = c.Store.Lists()
	}

	type match struct {
		listID types.ListID
		task   models.Task
	}
	var matches []match
	for _, list := range lists {
		for _, task := range list.Tasks {
			id := string(task.ID)
			if id == taskRef || strings.HasPrefix(id, taskRef) || strings.EqualFold(task.Content, taskRef) {
				matches = append(matches, match{listID: list.ID, task: task})
			}
		}
	}

	switch len(matches) {
	case 1:
		return matches[0].listID, matches[0].task, true
	case 0:
		_ = formatter.ErrorWithSuggestion("TASK_NOT_FOUND",
			fmt.Sprintf("task %q not found", taskRef),
			"Use 'kodama list show' to see tasks and their ids")
		return "", models.Task{}, false
	default:
		_ = formatter.ErrorWithSuggestion("TASK_AMBIGUOUS",
			fmt.Sprintf("task %q matches %d tasks", taskRef, len(matches)),
			"Use a longer id prefix to disambiguate")
		return "", models.Task{}, false
	}
}

// ResolveTag finds a tag by id or name.
func ResolveTag(c *CLI, formatter *OutputFormatter, ref string) (models.Tag, bool) {
	tag, ok := c.Store.FindTag(ref)
	if !ok {
		_ = formatter.ErrorWithSuggestion("TAG_NOT_FOUND",
			fmt.Sprintf("tag %q not found", ref),
			"Use 'kodama tag list' to see available tags")
		return models.Tag{}, false
	}
	return tag, true
}

// ParseDate parses a due date in YYYY-MM-DD form.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}

// ShortID returns the first eight characters of an id, the form shown in
// human-readable output.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
