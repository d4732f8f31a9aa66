// Package store holds the canonical board state and provides the only
// sanctioned mutation surface over it. Every operation leaves the state
// consistent: task and tag ids stay unique, embedded tag copies never dangle,
// and list/task ordering survives everything that does not explicitly
// reorder. Operations targeting an unknown list, task, or tag id are silent
// no-ops; only structurally invalid arguments return errors.
package store

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kodama-kanban/kodama/internal/mailer"
	"github.com/kodama-kanban/kodama/internal/models"
	"github.com/kodama-kanban/kodama/internal/storage"
	"github.com/kodama-kanban/kodama/internal/types"
)

var hexColorRegex = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Store owns the board state: the ordered task lists and the flat tag
// collection. All access goes through its methods; a single mutex serializes
// the compound read-then-write operations (move, cascade deletes) that would
// not be atomic under interleaving.
//
// Every successful mutation is written through to the persister. Persistence
// failures are logged and otherwise ignored: in-memory state stays
// authoritative for the session.
type Store struct {
	mu    sync.Mutex
	lists []models.TaskList
	tags  []models.Tag

	persister storage.Persister // nil disables persistence
	sender    mailer.Sender     // nil disables reminder delivery
	now       func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the timestamp source. Tests use this to make
// createdAt/updatedAt deterministic.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New creates a store preloaded with the default seed state.
func New(persister storage.Persister, sender mailer.Sender, opts ...Option) *Store {
	s := &Store{
		persister: persister,
		sender:    sender,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.tags = seedTags()
	s.lists = seedLists(s.tags, s.now())
	return s
}

// Open loads persisted state from docs, falling back to the default seed for
// each document that is absent, and persists the resulting state so a fresh
// board is durable immediately.
func Open(ctx context.Context, docs storage.Store, sender mailer.Sender, opts ...Option) (*Store, error) {
	s := &Store{
		persister: docs,
		sender:    sender,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	tags, ok, err := docs.LoadTags(ctx)
	if err != nil {
		return nil, err
	}
	seeded := !ok
	if !ok {
		tags = seedTags()
	}

	lists, ok, err := docs.LoadLists(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		lists = seedLists(tags, s.now())
		seeded = true
	}

	s.tags = tags
	s.lists = lists
	if seeded {
		s.mu.Lock()
		s.persistLocked(ctx)
		s.mu.Unlock()
	}
	return s, nil
}

// ============================================================================
// READS
// ============================================================================

// Lists returns a deep copy of the ordered task lists.
func (s *Store) Lists() []models.TaskList {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.CloneLists(s.lists)
}

// Tags returns a copy of the tag collection.
func (s *Store) Tags() []models.Tag {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.CloneTags(s.tags)
}

// FindList resolves a list by id or (case-insensitive) name.
func (s *Store) FindList(ref string) (models.TaskList, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.lists {
		if string(s.lists[i].ID) == ref || strings.EqualFold(s.lists[i].Name, ref) {
			return s.lists[i].Clone(), true
		}
	}
	return models.TaskList{}, false
}

// FindTag resolves a tag by id or (case-insensitive) name.
func (s *Store) FindTag(ref string) (models.Tag, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, tag := range s.tags {
		if string(tag.ID) == ref || strings.EqualFold(tag.Name, ref) {
			return tag, true
		}
	}
	return models.Tag{}, false
}

// GetTask returns a copy of the task at (listID, taskID).
func (s *Store) GetTask(listID types.ListID, taskID types.TaskID) (models.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if task := s.findTaskLocked(listID, taskID); task != nil {
		return task.Clone(), true
	}
	return models.Task{}, false
}

// LocateTask searches every list for the task id and returns the owning
// list's id alongside a copy of the task.
func (s *Store) LocateTask(taskID types.TaskID) (types.ListID, models.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.lists {
		if idx := s.lists[i].FindTask(taskID); idx >= 0 {
			return s.lists[i].ID, s.lists[i].Tasks[idx].Clone(), true
		}
	}
	return "", models.Task{}, false
}

// ============================================================================
// LIST OPERATIONS
// ============================================================================

// AddTaskList appends a new empty list to the end of the board.
func (s *Store) AddTaskList(ctx context.Context, name string) (models.TaskList, error) {
	if strings.TrimSpace(name) == "" {
		return models.TaskList{}, ErrEmptyName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list := models.TaskList{
		ID:    types.ListID(uuid.NewString()),
		Name:  name,
		Tasks: []models.Task{},
	}
	s.lists = append(s.lists, list)
	s.persistLocked(ctx)
	return list.Clone(), nil
}

// UpdateTaskList renames the list with the given id.
func (s *Store) UpdateTaskList(ctx context.Context, id types.ListID, name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.findListLocked(id)
	if list == nil {
		return nil
	}
	list.Name = name
	s.persistLocked(ctx)
	return nil
}

// DeleteTaskList removes the list and all its tasks. Tags referenced only by
// the deleted tasks stay in the tag collection.
func (s *Store) DeleteTaskList(ctx context.Context, id types.ListID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lists {
		if s.lists[i].ID == id {
			s.lists = append(s.lists[:i], s.lists[i+1:]...)
			s.persistLocked(ctx)
			return nil
		}
	}
	return nil
}

// ============================================================================
// TASK OPERATIONS
// ============================================================================

// AddTask appends a new task to the named list. The returned task is nil
// when the list does not exist.
func (s *Store) AddTask(ctx context.Context, listID types.ListID, content string) (*models.Task, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.findListLocked(listID)
	if list == nil {
		return nil, nil
	}

	now := s.now()
	task := models.Task{
		ID:        types.TaskID(uuid.NewString()),
		Content:   content,
		Priority:  models.DefaultPriority,
		Tags:      []models.Tag{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	list.Tasks = append(list.Tasks, task)
	s.persistLocked(ctx)

	out := task.Clone()
	return &out, nil
}

// UpdateTask replaces the task with matching id inside the named list.
// CreatedAt is taken from the stored task, never from the replacement;
// UpdatedAt is forced to now.
func (s *Store) UpdateTask(ctx context.Context, listID types.ListID, updated models.Task) error {
	if strings.TrimSpace(updated.Content) == "" {
		return ErrEmptyContent
	}
	if !updated.Priority.Valid() {
		return ErrInvalidPriority
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.findListLocked(listID)
	if list == nil {
		return nil
	}
	idx := list.FindTask(updated.ID)
	if idx < 0 {
		return nil
	}

	replacement := updated.Clone()
	replacement.CreatedAt = list.Tasks[idx].CreatedAt
	replacement.UpdatedAt = s.now()
	if replacement.Tags == nil {
		replacement.Tags = []models.Tag{}
	}
	list.Tasks[idx] = replacement
	s.persistLocked(ctx)
	return nil
}

// DeleteTask removes the task from the named list.
func (s *Store) DeleteTask(ctx context.Context, listID types.ListID, taskID types.TaskID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.findListLocked(listID)
	if list == nil {
		return nil
	}
	idx := list.FindTask(taskID)
	if idx < 0 {
		return nil
	}
	list.Tasks = append(list.Tasks[:idx], list.Tasks[idx+1:]...)
	s.persistLocked(ctx)
	return nil
}

// ToggleTaskCompletion flips the task's completed flag.
func (s *Store) ToggleTaskCompletion(ctx context.Context, listID types.ListID, taskID types.TaskID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	task := s.findTaskLocked(listID, taskID)
	if task == nil {
		return nil
	}
	task.Completed = !task.Completed
	task.UpdatedAt = s.now()
	s.persistLocked(ctx)
	return nil
}

// MoveTask removes the task at sourceIndex in the source list and inserts it
// at destinationIndex in the destination list (possibly the same list).
// Out-of-range indices are clamped rather than rejected: the indices come
// from a drag gesture against a render that may be a beat behind the state.
func (s *Store) MoveTask(ctx context.Context, sourceListID types.ListID, sourceIndex int, destListID types.ListID, destIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	source := s.findListLocked(sourceListID)
	dest := s.findListLocked(destListID)
	if source == nil || dest == nil {
		return nil
	}
	if len(source.Tasks) == 0 {
		return nil
	}

	sourceIndex = clamp(sourceIndex, 0, len(source.Tasks)-1)
	task := source.Tasks[sourceIndex]
	source.Tasks = append(source.Tasks[:sourceIndex], source.Tasks[sourceIndex+1:]...)

	destIndex = clamp(destIndex, 0, len(dest.Tasks))
	task.UpdatedAt = s.now()
	dest.Tasks = append(dest.Tasks[:destIndex], append([]models.Task{task}, dest.Tasks[destIndex:]...)...)

	s.persistLocked(ctx)
	return nil
}

// SetTaskPriority sets the task's priority level.
func (s *Store) SetTaskPriority(ctx context.Context, listID types.ListID, taskID types.TaskID, priority models.Priority) error {
	if !priority.Valid() {
		return ErrInvalidPriority
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task := s.findTaskLocked(listID, taskID)
	if task == nil {
		return nil
	}
	task.Priority = priority
	task.UpdatedAt = s.now()
	s.persistLocked(ctx)
	return nil
}

// SetTaskDueDate sets or clears (nil) the task's due date.
func (s *Store) SetTaskDueDate(ctx context.Context, listID types.ListID, taskID types.TaskID, dueDate *time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	task := s.findTaskLocked(listID, taskID)
	if task == nil {
		return nil
	}
	if dueDate != nil {
		due := *dueDate
		task.DueDate = &due
	} else {
		task.DueDate = nil
	}
	task.UpdatedAt = s.now()
	s.persistLocked(ctx)
	return nil
}

// SetTaskEmailReminder sets or clears (empty string) the task's reminder
// address. The sent flag always resets, so re-pointing a reminder arms it
// again.
func (s *Store) SetTaskEmailReminder(ctx context.Context, listID types.ListID, taskID types.TaskID, email string) error {
	if email != "" && !mailer.ValidAddress(email) {
		return ErrInvalidEmail
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task := s.findTaskLocked(listID, taskID)
	if task == nil {
		return nil
	}
	task.EmailReminder = email
	task.ReminderSent = false
	task.UpdatedAt = s.now()
	s.persistLocked(ctx)
	return nil
}

// SendEmailReminder marks the task's reminder as sent and hands
// (recipient, content) to the delivery collaborator. Marking is unconditional
// on invocation: delivery failure is logged, never reflected back into state.
// Tasks without a reminder address are a no-op.
func (s *Store) SendEmailReminder(ctx context.Context, listID types.ListID, taskID types.TaskID) error {
	s.mu.Lock()

	task := s.findTaskLocked(listID, taskID)
	if task == nil || task.EmailReminder == "" {
		s.mu.Unlock()
		return nil
	}
	task.ReminderSent = true
	task.UpdatedAt = s.now()
	recipient, content := task.EmailReminder, task.Content
	s.persistLocked(ctx)
	s.mu.Unlock()

	// Delivery happens outside the lock: the dialer may block and must not
	// stall other operations.
	if s.sender != nil {
		if err := s.sender.SendReminder(recipient, content); err != nil {
			slog.Error("reminder delivery failed", "recipient", recipient, "error", err)
		}
	}
	return nil
}

// ============================================================================
// TAG OPERATIONS
// ============================================================================

// AddTag appends a new tag to the tag collection.
func (s *Store) AddTag(ctx context.Context, name, color string) (models.Tag, error) {
	if strings.TrimSpace(name) == "" {
		return models.Tag{}, ErrEmptyName
	}
	if !hexColorRegex.MatchString(color) {
		return models.Tag{}, ErrInvalidColor
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tag := models.Tag{
		ID:    types.TagID(uuid.NewString()),
		Name:  name,
		Color: color,
	}
	s.tags = append(s.tags, tag)
	s.persistLocked(ctx)
	return tag, nil
}

// UpdateTag renames/recolors the tag and propagates the change into the
// embedded copy held by every task that references it, refreshing those
// tasks' UpdatedAt.
func (s *Store) UpdateTag(ctx context.Context, id types.TagID, name, color string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	if !hexColorRegex.MatchString(color) {
		return ErrInvalidColor
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var found bool
	for i := range s.tags {
		if s.tags[i].ID == id {
			s.tags[i].Name = name
			s.tags[i].Color = color
			found = true
			break
		}
	}
	if !found {
		return nil
	}

	now := s.now()
	s.forEachTaskLocked(func(task *models.Task) {
		touched := false
		for i := range task.Tags {
			if task.Tags[i].ID == id {
				task.Tags[i].Name = name
				task.Tags[i].Color = color
				touched = true
			}
		}
		if touched {
			task.UpdatedAt = now
		}
	})

	s.persistLocked(ctx)
	return nil
}

// DeleteTag removes the tag from the collection and from every task that
// holds it. Only tasks that actually held the tag get a fresh UpdatedAt.
func (s *Store) DeleteTag(ctx context.Context, id types.TagID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var found bool
	for i := range s.tags {
		if s.tags[i].ID == id {
			s.tags = append(s.tags[:i], s.tags[i+1:]...)
			found = true
			break
		}
	}

	now := s.now()
	touchedAny := false
	s.forEachTaskLocked(func(task *models.Task) {
		kept := task.Tags[:0]
		touched := false
		for _, tag := range task.Tags {
			if tag.ID == id {
				touched = true
				continue
			}
			kept = append(kept, tag)
		}
		if touched {
			task.Tags = kept
			task.UpdatedAt = now
			touchedAny = true
		}
	})

	if found || touchedAny {
		s.persistLocked(ctx)
	}
	return nil
}

// AddTagToTask appends a copy of the tag to the task's tag sequence, unless
// a tag with that id is already attached; the duplicate case is a complete
// no-op, including the timestamp.
func (s *Store) AddTagToTask(ctx context.Context, listID types.ListID, taskID types.TaskID, tag models.Tag) error {
	if tag.ID == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task := s.findTaskLocked(listID, taskID)
	if task == nil {
		return nil
	}
	if task.HasTag(tag.ID) {
		return nil
	}
	task.Tags = append(task.Tags, tag)
	task.UpdatedAt = s.now()
	s.persistLocked(ctx)
	return nil
}

// RemoveTagFromTask removes any tag with the given id from the task.
func (s *Store) RemoveTagFromTask(ctx context.Context, listID types.ListID, taskID types.TaskID, tagID types.TagID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	task := s.findTaskLocked(listID, taskID)
	if task == nil {
		return nil
	}
	for i := range task.Tags {
		if task.Tags[i].ID == tagID {
			task.Tags = append(task.Tags[:i], task.Tags[i+1:]...)
			task.UpdatedAt = s.now()
			s.persistLocked(ctx)
			return nil
		}
	}
	return nil
}

// ============================================================================
// INTERNALS
// ============================================================================

func (s *Store) findListLocked(id types.ListID) *models.TaskList {
	for i := range s.lists {
		if s.lists[i].ID == id {
			return &s.lists[i]
		}
	}
	return nil
}

func (s *Store) findTaskLocked(listID types.ListID, taskID types.TaskID) *models.Task {
	list := s.findListLocked(listID)
	if list == nil {
		return nil
	}
	if idx := list.FindTask(taskID); idx >= 0 {
		return &list.Tasks[idx]
	}
	return nil
}

func (s *Store) forEachTaskLocked(fn func(task *models.Task)) {
	for i := range s.lists {
		for j := range s.lists[i].Tasks {
			fn(&s.lists[i].Tasks[j])
		}
	}
}

// persistLocked writes the current snapshot through to durable storage.
// Failures are logged only: the write is off the critical path of
// correctness and in-memory state stays authoritative for the session.
func (s *Store) persistLocked(ctx context.Context) {
	if s.persister == nil {
		return
	}
	if err := s.persister.SaveSnapshot(ctx, s.lists, s.tags); err != nil {
		slog.Error("failed to persist board state", "error", err)
	}
}

func clamp(v, low, high int) int {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}
