// Package styles holds the lipgloss styles shared by the CLI commands.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/kodama-kanban/kodama/internal/models"
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7aa2f7"))

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#565f89"))

	SuccessStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#9ece6a"))

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#f7768e"))

	DoneStyle = lipgloss.NewStyle().
			Strikethrough(true).
			Foreground(lipgloss.Color("#565f89"))

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3b4261")).
			Padding(0, 1)
)

var priorityColors = map[models.Priority]string{
	models.PriorityLow:    "#9ece6a",
	models.PriorityMedium: "#e0af68",
	models.PriorityHigh:   "#f7768e",
}

// PriorityBadge renders a priority in its semantic color.
func PriorityBadge(p models.Priority) string {
	color, ok := priorityColors[p]
	if !ok {
		color = "#c0caf5"
	}
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(color)).
		Render(string(p))
}

// TagChip renders a tag as "[name]" in the tag's own color.
func TagChip(tag models.Tag) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(tag.Color)).
		Bold(true).
		Render("[" + tag.Name + "]")
}
