package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kodama-kanban/kodama/internal/store"
)

func setupTestCLI(t *testing.T) *CLI {
	t.Helper()
	return &CLI{Store: store.New(nil, nil)}
}

func TestResolveList(t *testing.T) {
	c := setupTestCLI(t)
	formatter := &OutputFormatter{Quiet: true}

	// By exact name, case-insensitively.
	list, ok := ResolveList(c, formatter, "to do")
	require.True(t, ok)
	assert.Equal(t, "To Do", list.Name)

	// By id.
	byID, ok := ResolveList(c, formatter, string(list.ID))
	require.True(t, ok)
	assert.Equal(t, list.ID, byID.ID)

	_, ok = ResolveList(c, formatter, "nonexistent")
	assert.False(t, ok)
}

func TestResolveTask(t *testing.T) {
	c := setupTestCLI(t)
	formatter := &OutputFormatter{Quiet: true}
	seeded := c.Store.Lists()
	target := seeded[0].Tasks[0]

	// Full id, anywhere on the board.
	listID, task, ok := ResolveTask(c, formatter, "", string(target.ID))
	require.True(t, ok)
	assert.Equal(t, seeded[0].ID, listID)
	assert.Equal(t, target.ID, task.ID)

	// Unique id prefix.
	_, task, ok = ResolveTask(c, formatter, "", string(target.ID)[:8])
	require.True(t, ok)
	assert.Equal(t, target.ID, task.ID)

	// Exact content match, case-insensitively.
	_, task, ok = ResolveTask(c, formatter, "", "meet totoro in the forest")
	require.True(t, ok)
	assert.Equal(t, target.ID, task.ID)

	// Narrowed to a list that doesn't hold the task.
	_, _, ok = ResolveTask(c, formatter, "Completed", string(target.ID))
	assert.False(t, ok)

	_, _, ok = ResolveTask(c, formatter, "", "no such task")
	assert.False(t, ok)
}

func TestResolveTaskAmbiguousPrefix(t *testing.T) {
	c := setupTestCLI(t)
	formatter := &OutputFormatter{Quiet: true}
	listID := c.Store.Lists()[0].ID

	// Two tasks with identical content make a content reference ambiguous.
	_, err := c.Store.AddTask(context.Background(), listID, "duplicate errand")
	require.NoError(t, err)
	_, err = c.Store.AddTask(context.Background(), listID, "duplicate errand")
	require.NoError(t, err)

	_, _, ok := ResolveTask(c, formatter, "", "duplicate errand")
	assert.False(t, ok, "Ambiguous references should not resolve")
}

func TestResolveTag(t *testing.T) {
	c := setupTestCLI(t)
	formatter := &OutputFormatter{Quiet: true}

	tag, ok := ResolveTag(c, formatter, "work")
	require.True(t, ok)
	assert.Equal(t, "Work", tag.Name)

	byID, ok := ResolveTag(c, formatter, string(tag.ID))
	require.True(t, ok)
	assert.Equal(t, tag.ID, byID.ID)

	_, ok = ResolveTag(c, formatter, "nonexistent")
	assert.False(t, ok)
}

func TestParseDate(t *testing.T) {
	parsed, err := ParseDate("2025-07-01")
	require.NoError(t, err)
	assert.Equal(t, 2025, parsed.Year())
	assert.Equal(t, 7, int(parsed.Month()))
	assert.Equal(t, 1, parsed.Day())

	for _, bad := range []string{"", "07/01/2025", "2025-13-01", "tomorrow"} {
		_, err := ParseDate(bad)
		assert.Error(t, err, "ParseDate(%q) should fail", bad)
	}
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "abcd1234", ShortID("abcd1234-5678-90ab"))
	assert.Equal(t, "short", ShortID("short"))
	assert.Equal(t, "", ShortID(""))
}
