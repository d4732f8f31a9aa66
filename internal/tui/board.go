// Package tui implements the interactive kanban board, built on
// bubbletea. The board is a thin view over the store: every key that
// mutates state calls a store operation and re-reads the snapshot, so
// the screen always reflects what was persisted.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kodama-kanban/kodama/internal/config"
	"github.com/kodama-kanban/kodama/internal/models"
	"github.com/kodama-kanban/kodama/internal/store"
	"github.com/kodama-kanban/kodama/internal/types"
)

// mode is the board's interaction state.
type mode int

const (
	modeNormal mode = iota
	modeInput
	modeConfirm
	modeTagPicker
	modeHelp
)

// inputAction says what the text input commits to.
type inputAction int

const (
	inputAddTask inputAction = iota
	inputEditTask
	inputCreateList
	inputRenameList
)

// confirmAction says what y confirms.
type confirmAction int

const (
	confirmDeleteTask confirmAction = iota
	confirmDeleteList
)

// Board is the root bubbletea model.
type Board struct {
	store  *store.Store
	keys   config.KeyMappings
	theme  Theme
	styles *Styles

	lists []models.TaskList
	tags  []models.Tag

	listIdx int
	cursors map[types.ListID]int

	width  int
	height int

	mode          mode
	inputAction   inputAction
	confirmAction confirmAction
	input         textinput.Model
	inputPrompt   string
	editTaskID    types.TaskID
	tagCursor     int

	status string
}

// NewBoard creates the board model over an already-loaded store.
func NewBoard(st *store.Store, cfg *config.Config) *Board {
	input := textinput.New()
	input.CharLimit = 200
	input.Width = 40

	b := &Board{
		store:   st,
		keys:    cfg.KeyMappings,
		theme:   TokyoNight,
		styles:  NewStyles(TokyoNight),
		cursors: make(map[types.ListID]int),
		input:   input,
	}
	b.refresh()
	return b
}

func (b *Board) Init() tea.Cmd {
	return nil
}

// refresh re-reads the store snapshot and clamps cursors.
func (b *Board) refresh() {
	b.lists = b.store.Lists()
	b.tags = b.store.Tags()

	if b.listIdx >= len(b.lists) {
		b.listIdx = len(b.lists) - 1
	}
	if b.listIdx < 0 {
		b.listIdx = 0
	}
	for _, list := range b.lists {
		cursor := b.cursors[list.ID]
		if cursor >= len(list.Tasks) {
			cursor = len(list.Tasks) - 1
		}
		if cursor < 0 {
			cursor = 0
		}
		b.cursors[list.ID] = cursor
	}
}

func (b *Board) currentList() *models.TaskList {
	if len(b.lists) == 0 {
		return nil
	}
	return &b.lists[b.listIdx]
}

func (b *Board) currentTask() *models.Task {
	list := b.currentList()
	if list == nil || len(list.Tasks) == 0 {
		return nil
	}
	cursor := b.cursors[list.ID]
	if cursor >= len(list.Tasks) {
		return nil
	}
	return &list.Tasks[cursor]
}

func (b *Board) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height
		return b, nil

	case tea.KeyMsg:
		switch b.mode {
		case modeInput:
			return b.updateInput(msg)
		case modeConfirm:
			return b.updateConfirm(msg)
		case modeTagPicker:
			return b.updateTagPicker(msg)
		case modeHelp:
			b.mode = modeNormal
			return b, nil
		default:
			return b.updateNormal(msg)
		}
	}
	return b, nil
}

func (b *Board) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := context.Background()
	b.status = ""

	switch msg.String() {
	case b.keys.Quit, "ctrl+c":
		return b, tea.Quit

	case b.keys.ShowHelp:
		b.mode = modeHelp

	case b.keys.PrevList:
		if b.listIdx > 0 {
			b.listIdx--
		}

	case b.keys.NextList:
		if b.listIdx < len(b.lists)-1 {
			b.listIdx++
		}

	case b.keys.PrevTask:
		if list := b.currentList(); list != nil && b.cursors[list.ID] > 0 {
			b.cursors[list.ID]--
		}

	case b.keys.NextTask:
		if list := b.currentList(); list != nil && b.cursors[list.ID] < len(list.Tasks)-1 {
			b.cursors[list.ID]++
		}

	case b.keys.AddTask:
		if b.currentList() == nil {
			b.status = "Create a list first"
			break
		}
		b.openInput(inputAddTask, "New task", "")

	case b.keys.EditTask:
		task := b.currentTask()
		if task == nil {
			break
		}
		b.editTaskID = task.ID
		b.openInput(inputEditTask, "Edit task", task.Content)

	case b.keys.DeleteTask:
		if task := b.currentTask(); task != nil {
			b.confirmAction = confirmDeleteTask
			b.mode = modeConfirm
		}

	case b.keys.ToggleDone:
		list, task := b.currentList(), b.currentTask()
		if list == nil || task == nil {
			break
		}
		if err := b.store.ToggleTaskCompletion(ctx, list.ID, task.ID); err != nil {
			b.status = err.Error()
		}
		b.refresh()

	case b.keys.CyclePriority:
		list, task := b.currentList(), b.currentTask()
		if list == nil || task == nil {
			break
		}
		if err := b.store.SetTaskPriority(ctx, list.ID, task.ID, task.Priority.Next()); err != nil {
			b.status = err.Error()
		}
		b.refresh()

	case b.keys.EditTags:
		if b.currentTask() == nil {
			break
		}
		if len(b.tags) == 0 {
			b.status = "No tags yet; create one with: kodama tag create"
			break
		}
		b.tagCursor = 0
		b.mode = modeTagPicker

	case b.keys.MoveTaskLeft:
		b.moveTaskToList(ctx, b.listIdx-1)

	case b.keys.MoveTaskRight:
		b.moveTaskToList(ctx, b.listIdx+1)

	case b.keys.MoveTaskUp:
		b.moveTaskWithin(ctx, -1)

	case b.keys.MoveTaskDown:
		b.moveTaskWithin(ctx, 1)

	case b.keys.CreateList:
		b.openInput(inputCreateList, "New list", "")

	case b.keys.RenameList:
		if list := b.currentList(); list != nil {
			b.openInput(inputRenameList, "Rename list", list.Name)
		}

	case b.keys.DeleteList:
		if b.currentList() != nil {
			b.confirmAction = confirmDeleteList
			b.mode = modeConfirm
		}
	}
	return b, nil
}

// moveTaskToList moves the selected task to the top of another column.
func (b *Board) moveTaskToList(ctx context.Context, destIdx int) {
	list, task := b.currentList(), b.currentTask()
	if list == nil || task == nil || destIdx < 0 || destIdx >= len(b.lists) {
		return
	}
	dest := b.lists[destIdx]
	if err := b.store.MoveTask(ctx, list.ID, b.cursors[list.ID], dest.ID, len(dest.Tasks)); err != nil {
		b.status = err.Error()
		return
	}
	b.listIdx = destIdx
	b.cursors[dest.ID] = len(dest.Tasks)
	b.refresh()
}

// moveTaskWithin reorders the selected task inside its column.
func (b *Board) moveTaskWithin(ctx context.Context, delta int) {
	list, task := b.currentList(), b.currentTask()
	if list == nil || task == nil {
		return
	}
	from := b.cursors[list.ID]
	to := from + delta
	if to < 0 || to >= len(list.Tasks) {
		return
	}
	if err := b.store.MoveTask(ctx, list.ID, from, list.ID, to); err != nil {
		b.status = err.Error()
		return
	}
	b.cursors[list.ID] = to
	b.refresh()
}

func (b *Board) openInput(action inputAction, prompt, initial string) {
	b.inputAction = action
	b.inputPrompt = prompt
	b.input.SetValue(initial)
	b.input.CursorEnd()
	b.input.Focus()
	b.mode = modeInput
}

func (b *Board) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		b.input.Blur()
		b.mode = modeNormal
		return b, nil

	case "enter":
		value := strings.TrimSpace(b.input.Value())
		b.input.Blur()
		b.mode = modeNormal
		if value == "" {
			return b, nil
		}
		b.commitInput(value)
		return b, nil
	}

	var cmd tea.Cmd
	b.input, cmd = b.input.Update(msg)
	return b, cmd
}

func (b *Board) commitInput(value string) {
	ctx := context.Background()

	switch b.inputAction {
	case inputAddTask:
		list := b.currentList()
		if list == nil {
			return
		}
		if _, err := b.store.AddTask(ctx, list.ID, value); err != nil {
			b.status = err.Error()
			return
		}
		b.refresh()
		b.cursors[list.ID] = len(b.lists[b.listIdx].Tasks) - 1

	case inputEditTask:
		list := b.currentList()
		if list == nil {
			return
		}
		task, ok := b.store.GetTask(list.ID, b.editTaskID)
		if !ok {
			return
		}
		task.Content = value
		if err := b.store.UpdateTask(ctx, list.ID, task); err != nil {
			b.status = err.Error()
		}
		b.refresh()

	case inputCreateList:
		created, err := b.store.AddTaskList(ctx, value)
		if err != nil {
			b.status = err.Error()
			return
		}
		b.refresh()
		for i, list := range b.lists {
			if list.ID == created.ID {
				b.listIdx = i
			}
		}

	case inputRenameList:
		list := b.currentList()
		if list == nil {
			return
		}
		if err := b.store.UpdateTaskList(ctx, list.ID, value); err != nil {
			b.status = err.Error()
		}
		b.refresh()
	}
}

func (b *Board) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := context.Background()
	defer func() { b.mode = modeNormal }()

	if s := msg.String(); s != "y" && s != "Y" && s != "enter" {
		return b, nil
	}

	switch b.confirmAction {
	case confirmDeleteTask:
		list, task := b.currentList(), b.currentTask()
		if list == nil || task == nil {
			return b, nil
		}
		if err := b.store.DeleteTask(ctx, list.ID, task.ID); err != nil {
			b.status = err.Error()
		}

	case confirmDeleteList:
		list := b.currentList()
		if list == nil {
			return b, nil
		}
		delete(b.cursors, list.ID)
		if err := b.store.DeleteTaskList(ctx, list.ID); err != nil {
			b.status = err.Error()
		}
	}

	b.refresh()
	return b, nil
}

func (b *Board) updateTagPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := context.Background()

	switch msg.String() {
	case "esc", b.keys.EditTags:
		b.mode = modeNormal

	case b.keys.PrevTask, "up":
		if b.tagCursor > 0 {
			b.tagCursor--
		}

	case b.keys.NextTask, "down":
		if b.tagCursor < len(b.tags)-1 {
			b.tagCursor++
		}

	case " ", "enter":
		list, task := b.currentList(), b.currentTask()
		if list == nil || task == nil || b.tagCursor >= len(b.tags) {
			break
		}
		tag := b.tags[b.tagCursor]
		var err error
		if task.HasTag(tag.ID) {
			err = b.store.RemoveTagFromTask(ctx, list.ID, task.ID, tag.ID)
		} else {
			err = b.store.AddTagToTask(ctx, list.ID, task.ID, tag)
		}
		if err != nil {
			b.status = err.Error()
		}
		b.refresh()
	}
	return b, nil
}

// ==== RENDERING ====

func (b *Board) View() string {
	if b.width == 0 {
		return "Loading board..."
	}

	var sections []string
	sections = append(sections, b.viewTitle())

	switch b.mode {
	case modeHelp:
		sections = append(sections, b.viewHelp())
	default:
		sections = append(sections, b.viewColumns())
	}

	switch b.mode {
	case modeInput:
		prompt := b.styles.Title.Render(b.inputPrompt)
		sections = append(sections, prompt, b.styles.Input.Render(b.input.View()))
	case modeConfirm:
		sections = append(sections, b.viewConfirm())
	case modeTagPicker:
		sections = append(sections, b.viewTagPicker())
	}

	if b.status != "" {
		sections = append(sections, b.styles.Status.Render(b.status))
	}
	sections = append(sections, b.viewFooter())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (b *Board) viewTitle() string {
	total := 0
	for _, list := range b.lists {
		total += len(list.Tasks)
	}
	return b.styles.Title.Render("kodama") +
		b.styles.TitleMuted.Render(fmt.Sprintf("  %d tasks across %d lists", total, len(b.lists)))
}

func (b *Board) viewColumns() string {
	if len(b.lists) == 0 {
		return b.styles.Status.Render(fmt.Sprintf("No lists. Press %s to create one.", b.keys.CreateList))
	}

	colWidth := b.width/len(b.lists) - 4
	if colWidth < 20 {
		colWidth = 20
	}
	if colWidth > 40 {
		colWidth = 40
	}

	columns := make([]string, 0, len(b.lists))
	for i, list := range b.lists {
		columns = append(columns, b.viewColumn(list, colWidth, i == b.listIdx))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, columns...)
}

func (b *Board) viewColumn(list models.TaskList, width int, focused bool) string {
	var rows []string
	rows = append(rows,
		b.styles.ColumnTitle.Render(list.Name)+
			b.styles.ColumnCount.Render(fmt.Sprintf(" (%d)", len(list.Tasks))))
	rows = append(rows, "")

	if len(list.Tasks) == 0 {
		rows = append(rows, b.styles.TitleMuted.Render("empty"))
	}

	cursor := b.cursors[list.ID]
	for i, task := range list.Tasks {
		rows = append(rows, b.viewTaskRow(task, width, focused && i == cursor))
	}

	style := b.styles.Column
	if focused {
		style = b.styles.ColumnFocused
	}
	return style.Width(width).Render(strings.Join(rows, "\n"))
}

func (b *Board) viewTaskRow(task models.Task, width int, selected bool) string {
	checkbox := "[ ]"
	if task.Completed {
		checkbox = "[x]"
	}
	mark := lipgloss.NewStyle().
		Foreground(priorityColor(b.theme, string(task.Priority))).
		Render("●")

	content := task.Content
	if maxLen := width - 8; maxLen > 3 && len(content) > maxLen {
		content = content[:maxLen-1] + "…"
	}

	line := fmt.Sprintf("%s %s %s", checkbox, mark, content)
	switch {
	case selected:
		line = b.styles.TaskSelected.Render(line)
	case task.Completed:
		line = b.styles.TaskDone.Render(line)
	default:
		line = b.styles.Task.Render(line)
	}

	var extras []string
	for _, tag := range task.Tags {
		chip := lipgloss.NewStyle().Foreground(lipgloss.Color(tag.Color)).Render("#" + tag.Name)
		extras = append(extras, chip)
	}
	if task.DueDate != nil {
		extras = append(extras, b.styles.TaskDue.Render("due "+task.DueDate.Format("Jan 2")))
	}
	if task.EmailReminder != "" {
		bell := "@"
		if task.ReminderSent {
			bell = "@sent"
		}
		extras = append(extras, b.styles.TaskReminder.Render(bell))
	}
	if len(extras) > 0 {
		line += "\n    " + strings.Join(extras, " ")
	}
	return line
}

func (b *Board) viewConfirm() string {
	switch b.confirmAction {
	case confirmDeleteList:
		if list := b.currentList(); list != nil {
			return b.styles.Confirm.Render(
				fmt.Sprintf("Delete list %q and its %d tasks? (y/n)", list.Name, len(list.Tasks)))
		}
	case confirmDeleteTask:
		if task := b.currentTask(); task != nil {
			return b.styles.Confirm.Render(fmt.Sprintf("Delete task %q? (y/n)", task.Content))
		}
	}
	return ""
}

func (b *Board) viewTagPicker() string {
	task := b.currentTask()
	if task == nil {
		return ""
	}

	var rows []string
	rows = append(rows, b.styles.ColumnTitle.Render("Tags"))
	for i, tag := range b.tags {
		marker := "[ ]"
		if task.HasTag(tag.ID) {
			marker = "[x]"
		}
		name := lipgloss.NewStyle().Foreground(lipgloss.Color(tag.Color)).Render(tag.Name)
		row := fmt.Sprintf("%s %s", marker, name)
		if i == b.tagCursor {
			row = b.styles.TaskSelected.Render(row)
		}
		rows = append(rows, row)
	}
	return b.styles.Input.Render(strings.Join(rows, "\n"))
}

func (b *Board) viewHelp() string {
	k := b.keys
	bindings := [][2]string{
		{k.PrevList + "/" + k.NextList, "switch list"},
		{k.PrevTask + "/" + k.NextTask, "move cursor"},
		{k.AddTask, "add task"},
		{k.EditTask, "edit task"},
		{k.DeleteTask, "delete task"},
		{keyLabel(k.ToggleDone), "toggle done"},
		{k.CyclePriority, "cycle priority"},
		{k.EditTags, "edit tags"},
		{k.MoveTaskLeft + "/" + k.MoveTaskRight, "move task between lists"},
		{k.MoveTaskUp + "/" + k.MoveTaskDown, "reorder task"},
		{k.CreateList, "create list"},
		{k.RenameList, "rename list"},
		{k.DeleteList, "delete list"},
		{k.Quit, "quit"},
	}

	var rows []string
	for _, binding := range bindings {
		rows = append(rows,
			b.styles.HelpKey.Render(fmt.Sprintf("%8s", binding[0]))+"  "+
				b.styles.HelpDesc.Render(binding[1]))
	}
	rows = append(rows, "", b.styles.HelpDesc.Render("press any key to close"))
	return b.styles.Help.Render(strings.Join(rows, "\n"))
}

func (b *Board) viewFooter() string {
	switch b.mode {
	case modeInput:
		return b.styles.Status.Render("enter save · esc cancel")
	case modeTagPicker:
		return b.styles.Status.Render("space toggle · esc close")
	case modeNormal:
		return b.styles.Status.Render(fmt.Sprintf("%s help · %s quit", b.keys.ShowHelp, b.keys.Quit))
	}
	return ""
}

// keyLabel makes non-printing bindings readable in help text.
func keyLabel(key string) string {
	if key == " " {
		return "space"
	}
	return key
}
