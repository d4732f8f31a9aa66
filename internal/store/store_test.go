package store

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/kodama-kanban/kodama/internal/models"
	"github.com/kodama-kanban/kodama/internal/types"
)

// fakeClock hands out strictly increasing timestamps so updatedAt
// changes are observable between operations.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

// memPersister records snapshots so tests can verify write-through.
type memPersister struct {
	saves int
	lists []models.TaskList
	tags  []models.Tag
	err   error
}

func (p *memPersister) SaveSnapshot(ctx context.Context, lists []models.TaskList, tags []models.Tag) error {
	if p.err != nil {
		return p.err
	}
	p.saves++
	p.lists = models.CloneLists(lists)
	p.tags = models.CloneTags(tags)
	return nil
}

// fakeSender records reminder deliveries.
type fakeSender struct {
	recipients []string
	contents   []string
	err        error
}

func (f *fakeSender) SendReminder(recipient, taskContent string) error {
	f.recipients = append(f.recipients, recipient)
	f.contents = append(f.contents, taskContent)
	return f.err
}

func setupStore(t *testing.T) (*Store, *memPersister, *fakeSender) {
	t.Helper()
	persister := &memPersister{}
	sender := &fakeSender{}
	s := New(persister, sender, WithClock(newFakeClock().Now))
	return s, persister, sender
}

func ctxb() context.Context {
	return context.Background()
}

// ==== SEED ====

func TestSeedState(t *testing.T) {
	s, _, _ := setupStore(t)

	lists := s.Lists()
	if len(lists) != 3 {
		t.Fatalf("Expected 3 seed lists, got %d", len(lists))
	}
	names := []string{lists[0].Name, lists[1].Name, lists[2].Name}
	want := []string{"To Do", "In Progress", "Completed"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("Seed list names = %v, want %v", names, want)
	}
	if len(lists[0].Tasks) != 2 || len(lists[1].Tasks) != 1 || len(lists[2].Tasks) != 0 {
		t.Errorf("Unexpected seed task distribution: %d/%d/%d",
			len(lists[0].Tasks), len(lists[1].Tasks), len(lists[2].Tasks))
	}

	tags := s.Tags()
	if len(tags) != 3 {
		t.Fatalf("Expected 3 seed tags, got %d", len(tags))
	}

	// Every embedded tag must resolve to a collection tag.
	byID := map[types.TagID]bool{}
	for _, tag := range tags {
		byID[tag.ID] = true
	}
	for _, list := range lists {
		for _, task := range list.Tasks {
			for _, tag := range task.Tags {
				if !byID[tag.ID] {
					t.Errorf("Task %q embeds unknown tag %q", task.Content, tag.Name)
				}
			}
		}
	}
}

func TestSnapshotsAreIsolated(t *testing.T) {
	s, _, _ := setupStore(t)

	lists := s.Lists()
	lists[0].Name = "mutated"
	lists[0].Tasks[0].Content = "mutated"
	lists[0].Tasks[0].Tags = append(lists[0].Tasks[0].Tags, models.Tag{ID: "x", Name: "x"})

	fresh := s.Lists()
	if fresh[0].Name == "mutated" || fresh[0].Tasks[0].Content == "mutated" {
		t.Error("Mutating a returned snapshot leaked into the store")
	}
}

// ==== LISTS ====

func TestAddTaskList(t *testing.T) {
	s, persister, _ := setupStore(t)
	savesBefore := persister.saves

	list, err := s.AddTaskList(ctxb(), "Backlog")
	if err != nil {
		t.Fatalf("AddTaskList failed: %v", err)
	}
	if list.ID == "" {
		t.Error("New list should have an id")
	}
	if list.Tasks == nil || len(list.Tasks) != 0 {
		t.Error("New list should start with an empty task slice")
	}

	lists := s.Lists()
	if lists[len(lists)-1].Name != "Backlog" {
		t.Error("New list should be appended at the end")
	}
	if persister.saves != savesBefore+1 {
		t.Errorf("Expected one persist, got %d", persister.saves-savesBefore)
	}
}

func TestAddTaskListEmptyName(t *testing.T) {
	s, persister, _ := setupStore(t)
	savesBefore := persister.saves

	if _, err := s.AddTaskList(ctxb(), "   "); !errors.Is(err, ErrEmptyName) {
		t.Errorf("Expected ErrEmptyName, got %v", err)
	}
	if persister.saves != savesBefore {
		t.Error("Rejected operation should not persist")
	}
}

func TestUpdateTaskList(t *testing.T) {
	s, _, _ := setupStore(t)
	lists := s.Lists()

	if err := s.UpdateTaskList(ctxb(), lists[0].ID, "Inbox"); err != nil {
		t.Fatalf("UpdateTaskList failed: %v", err)
	}
	if got := s.Lists()[0].Name; got != "Inbox" {
		t.Errorf("List name = %q, want Inbox", got)
	}

	// Renaming a list must not touch its tasks.
	if !reflect.DeepEqual(s.Lists()[0].Tasks, lists[0].Tasks) {
		t.Error("Rename changed the list's tasks")
	}
}

func TestDeleteTaskListCascades(t *testing.T) {
	s, _, _ := setupStore(t)
	lists := s.Lists()
	taskID := lists[0].Tasks[0].ID
	tagsBefore := s.Tags()

	if err := s.DeleteTaskList(ctxb(), lists[0].ID); err != nil {
		t.Fatalf("DeleteTaskList failed: %v", err)
	}
	if len(s.Lists()) != 2 {
		t.Fatalf("Expected 2 lists after delete, got %d", len(s.Lists()))
	}
	if _, _, ok := s.LocateTask(taskID); ok {
		t.Error("Task of deleted list should be gone")
	}

	// The tag collection is independent of list membership.
	if !reflect.DeepEqual(s.Tags(), tagsBefore) {
		t.Error("Deleting a list must not change the tag collection")
	}
}

func TestUnknownListOperationsAreNoOps(t *testing.T) {
	s, persister, _ := setupStore(t)
	before := s.Lists()
	savesBefore := persister.saves

	if err := s.UpdateTaskList(ctxb(), "missing", "X"); err != nil {
		t.Errorf("Unknown list rename should not error, got %v", err)
	}
	if err := s.DeleteTaskList(ctxb(), "missing"); err != nil {
		t.Errorf("Unknown list delete should not error, got %v", err)
	}
	task, err := s.AddTask(ctxb(), "missing", "orphan")
	if err != nil || task != nil {
		t.Errorf("AddTask to unknown list = (%v, %v), want (nil, nil)", task, err)
	}

	if !reflect.DeepEqual(s.Lists(), before) {
		t.Error("Unknown-id operations must leave state unchanged")
	}
	if persister.saves != savesBefore {
		t.Error("Unknown-id operations must not persist")
	}
}

// ==== TASKS ====

func TestAddTaskDefaults(t *testing.T) {
	s, _, _ := setupStore(t)
	listID := s.Lists()[0].ID

	task, err := s.AddTask(ctxb(), listID, "Write a letter")
	if err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}
	if task == nil {
		t.Fatal("AddTask returned nil task for existing list")
	}
	if task.ID == "" {
		t.Error("New task should have an id")
	}
	if task.Priority != models.PriorityMedium {
		t.Errorf("New task priority = %q, want medium", task.Priority)
	}
	if task.Completed {
		t.Error("New task should start incomplete")
	}
	if task.Tags == nil || len(task.Tags) != 0 {
		t.Error("New task should start with an empty tag slice")
	}
	if !task.CreatedAt.Equal(task.UpdatedAt) {
		t.Error("New task should have createdAt == updatedAt")
	}

	list, _ := s.FindList(string(listID))
	if list.Tasks[len(list.Tasks)-1].ID != task.ID {
		t.Error("New task should land at the end of the list")
	}
}

func TestAddTaskEmptyContent(t *testing.T) {
	s, _, _ := setupStore(t)
	listID := s.Lists()[0].ID

	if _, err := s.AddTask(ctxb(), listID, ""); !errors.Is(err, ErrEmptyContent) {
		t.Errorf("Expected ErrEmptyContent, got %v", err)
	}
}

func TestUpdateTaskPreservesCreatedAt(t *testing.T) {
	s, _, _ := setupStore(t)
	listID := s.Lists()[0].ID
	original := s.Lists()[0].Tasks[0]

	replacement := original.Clone()
	replacement.Content = "Meet Totoro at the bus stop"
	replacement.CreatedAt = time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)
	replacement.UpdatedAt = time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)

	if err := s.UpdateTask(ctxb(), listID, replacement); err != nil {
		t.Fatalf("UpdateTask failed: %v", err)
	}

	got, ok := s.GetTask(listID, original.ID)
	if !ok {
		t.Fatal("Updated task not found")
	}
	if got.Content != "Meet Totoro at the bus stop" {
		t.Errorf("Content = %q", got.Content)
	}
	if !got.CreatedAt.Equal(original.CreatedAt) {
		t.Error("UpdateTask must keep the stored createdAt")
	}
	if !got.UpdatedAt.After(original.UpdatedAt) {
		t.Error("UpdateTask must advance updatedAt past the previous value")
	}
}

func TestUpdateTaskValidation(t *testing.T) {
	s, _, _ := setupStore(t)
	listID := s.Lists()[0].ID
	task := s.Lists()[0].Tasks[0]

	bad := task.Clone()
	bad.Content = " "
	if err := s.UpdateTask(ctxb(), listID, bad); !errors.Is(err, ErrEmptyContent) {
		t.Errorf("Expected ErrEmptyContent, got %v", err)
	}

	bad = task.Clone()
	bad.Priority = "critical"
	if err := s.UpdateTask(ctxb(), listID, bad); !errors.Is(err, ErrInvalidPriority) {
		t.Errorf("Expected ErrInvalidPriority, got %v", err)
	}
}

func TestDeleteTask(t *testing.T) {
	s, _, _ := setupStore(t)
	listID := s.Lists()[0].ID
	first := s.Lists()[0].Tasks[0]
	second := s.Lists()[0].Tasks[1]

	if err := s.DeleteTask(ctxb(), listID, first.ID); err != nil {
		t.Fatalf("DeleteTask failed: %v", err)
	}

	tasks := s.Lists()[0].Tasks
	if len(tasks) != 1 || tasks[0].ID != second.ID {
		t.Error("Remaining task order wrong after delete")
	}

	// Deleting again is a no-op.
	if err := s.DeleteTask(ctxb(), listID, first.ID); err != nil {
		t.Errorf("Repeated delete should not error, got %v", err)
	}
	if len(s.Lists()[0].Tasks) != 1 {
		t.Error("Repeated delete changed state")
	}
}

func TestToggleTaskCompletion(t *testing.T) {
	s, _, _ := setupStore(t)
	listID := s.Lists()[0].ID
	task := s.Lists()[0].Tasks[0]

	if err := s.ToggleTaskCompletion(ctxb(), listID, task.ID); err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	got, _ := s.GetTask(listID, task.ID)
	if !got.Completed {
		t.Error("First toggle should mark completed")
	}
	if !got.UpdatedAt.After(task.UpdatedAt) {
		t.Error("Toggle should refresh updatedAt")
	}

	if err := s.ToggleTaskCompletion(ctxb(), listID, task.ID); err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	got, _ = s.GetTask(listID, task.ID)
	if got.Completed {
		t.Error("Second toggle should mark incomplete again")
	}
}

// ==== MOVE ====

func totalTasks(lists []models.TaskList) int {
	n := 0
	for _, list := range lists {
		n += len(list.Tasks)
	}
	return n
}

func TestMoveTaskBetweenLists(t *testing.T) {
	s, _, _ := setupStore(t)
	lists := s.Lists()
	source, dest := lists[0], lists[2]
	moved := source.Tasks[0]
	countBefore := totalTasks(lists)

	if err := s.MoveTask(ctxb(), source.ID, 0, dest.ID, 0); err != nil {
		t.Fatalf("MoveTask failed: %v", err)
	}

	after := s.Lists()
	if totalTasks(after) != countBefore {
		t.Error("Move changed the total task count")
	}
	if len(after[0].Tasks) != 1 {
		t.Errorf("Source list has %d tasks, want 1", len(after[0].Tasks))
	}
	if len(after[2].Tasks) != 1 || after[2].Tasks[0].ID != moved.ID {
		t.Error("Task should be at index 0 of the destination list")
	}
	if !after[2].Tasks[0].UpdatedAt.After(moved.UpdatedAt) {
		t.Error("Move should refresh the task's updatedAt")
	}
}

func TestMoveTaskWithinList(t *testing.T) {
	s, _, _ := setupStore(t)
	listID := s.Lists()[0].ID
	before := s.Lists()[0].Tasks

	if err := s.MoveTask(ctxb(), listID, 0, listID, 1); err != nil {
		t.Fatalf("MoveTask failed: %v", err)
	}

	after := s.Lists()[0].Tasks
	if after[0].ID != before[1].ID || after[1].ID != before[0].ID {
		t.Error("In-list move should swap the two tasks")
	}
}

func TestMoveTaskClampsIndices(t *testing.T) {
	s, _, _ := setupStore(t)
	lists := s.Lists()
	source, dest := lists[0], lists[2]
	last := source.Tasks[len(source.Tasks)-1]

	// Source index far past the end clamps to the last task; destination
	// index far past the end clamps to an append.
	if err := s.MoveTask(ctxb(), source.ID, 99, dest.ID, 99); err != nil {
		t.Fatalf("MoveTask failed: %v", err)
	}

	after := s.Lists()
	destTasks := after[2].Tasks
	if len(destTasks) != 1 || destTasks[0].ID != last.ID {
		t.Error("Out-of-range indices should clamp, not drop the move")
	}

	// Negative indices clamp to zero.
	if err := s.MoveTask(ctxb(), dest.ID, -5, source.ID, -5); err != nil {
		t.Fatalf("MoveTask failed: %v", err)
	}
	if s.Lists()[0].Tasks[0].ID != last.ID {
		t.Error("Negative destination index should insert at the front")
	}
}

func TestMoveTaskUnknownListsNoOp(t *testing.T) {
	s, _, _ := setupStore(t)
	before := s.Lists()

	if err := s.MoveTask(ctxb(), "missing", 0, before[0].ID, 0); err != nil {
		t.Errorf("Unknown source should not error, got %v", err)
	}
	if err := s.MoveTask(ctxb(), before[0].ID, 0, "missing", 0); err != nil {
		t.Errorf("Unknown destination should not error, got %v", err)
	}
	if !reflect.DeepEqual(s.Lists(), before) {
		t.Error("Moves involving unknown lists must leave state unchanged")
	}
}

func TestMoveTaskEmptySourceNoOp(t *testing.T) {
	s, _, _ := setupStore(t)
	lists := s.Lists()
	empty := lists[2]
	before := s.Lists()

	if err := s.MoveTask(ctxb(), empty.ID, 0, lists[0].ID, 0); err != nil {
		t.Errorf("Move from empty list should not error, got %v", err)
	}
	if !reflect.DeepEqual(s.Lists(), before) {
		t.Error("Move from empty list must leave state unchanged")
	}
}

// ==== TASK ATTRIBUTES ====

func TestSetTaskPriority(t *testing.T) {
	s, _, _ := setupStore(t)
	listID := s.Lists()[0].ID
	task := s.Lists()[0].Tasks[0]

	if err := s.SetTaskPriority(ctxb(), listID, task.ID, models.PriorityHigh); err != nil {
		t.Fatalf("SetTaskPriority failed: %v", err)
	}
	got, _ := s.GetTask(listID, task.ID)
	if got.Priority != models.PriorityHigh {
		t.Errorf("Priority = %q, want high", got.Priority)
	}

	if err := s.SetTaskPriority(ctxb(), listID, task.ID, "urgent"); !errors.Is(err, ErrInvalidPriority) {
		t.Errorf("Expected ErrInvalidPriority, got %v", err)
	}
}

func TestSetTaskDueDate(t *testing.T) {
	s, _, _ := setupStore(t)
	listID := s.Lists()[0].ID
	task := s.Lists()[0].Tasks[0]
	due := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	if err := s.SetTaskDueDate(ctxb(), listID, task.ID, &due); err != nil {
		t.Fatalf("SetTaskDueDate failed: %v", err)
	}
	got, _ := s.GetTask(listID, task.ID)
	if got.DueDate == nil || !got.DueDate.Equal(due) {
		t.Error("Due date not stored")
	}

	// Clearing.
	if err := s.SetTaskDueDate(ctxb(), listID, task.ID, nil); err != nil {
		t.Fatalf("SetTaskDueDate(nil) failed: %v", err)
	}
	got, _ = s.GetTask(listID, task.ID)
	if got.DueDate != nil {
		t.Error("Due date should be cleared")
	}
}

// ==== REMINDERS ====

func TestSetTaskEmailReminder(t *testing.T) {
	s, _, _ := setupStore(t)
	listID := s.Lists()[0].ID
	task := s.Lists()[0].Tasks[0]

	if err := s.SetTaskEmailReminder(ctxb(), listID, task.ID, "not-an-address"); !errors.Is(err, ErrInvalidEmail) {
		t.Errorf("Expected ErrInvalidEmail, got %v", err)
	}

	if err := s.SetTaskEmailReminder(ctxb(), listID, task.ID, "mei@example.com"); err != nil {
		t.Fatalf("SetTaskEmailReminder failed: %v", err)
	}
	got, _ := s.GetTask(listID, task.ID)
	if got.EmailReminder != "mei@example.com" || got.ReminderSent {
		t.Error("Reminder should be set and unsent")
	}

	// Clearing with an empty address is always allowed.
	if err := s.SetTaskEmailReminder(ctxb(), listID, task.ID, ""); err != nil {
		t.Fatalf("Clearing reminder failed: %v", err)
	}
	got, _ = s.GetTask(listID, task.ID)
	if got.EmailReminder != "" {
		t.Error("Reminder address should be cleared")
	}
}

func TestSetReminderResetsSentFlag(t *testing.T) {
	s, _, _ := setupStore(t)
	listID := s.Lists()[0].ID
	task := s.Lists()[0].Tasks[0]

	if err := s.SetTaskEmailReminder(ctxb(), listID, task.ID, "mei@example.com"); err != nil {
		t.Fatal(err)
	}
	if err := s.SendEmailReminder(ctxb(), listID, task.ID); err != nil {
		t.Fatal(err)
	}
	got, _ := s.GetTask(listID, task.ID)
	if !got.ReminderSent {
		t.Fatal("Reminder should be marked sent")
	}

	// Re-pointing the reminder arms it again.
	if err := s.SetTaskEmailReminder(ctxb(), listID, task.ID, "satsuki@example.com"); err != nil {
		t.Fatal(err)
	}
	got, _ = s.GetTask(listID, task.ID)
	if got.ReminderSent {
		t.Error("Changing the address should reset the sent flag")
	}
}

func TestSendEmailReminder(t *testing.T) {
	s, _, sender := setupStore(t)
	listID := s.Lists()[0].ID
	task := s.Lists()[0].Tasks[0]

	// No address: complete no-op, sender untouched.
	if err := s.SendEmailReminder(ctxb(), listID, task.ID); err != nil {
		t.Fatalf("SendEmailReminder failed: %v", err)
	}
	if len(sender.recipients) != 0 {
		t.Error("No-address send should not reach the sender")
	}
	got, _ := s.GetTask(listID, task.ID)
	if got.ReminderSent {
		t.Error("No-address send should not mark sent")
	}

	if err := s.SetTaskEmailReminder(ctxb(), listID, task.ID, "mei@example.com"); err != nil {
		t.Fatal(err)
	}
	if err := s.SendEmailReminder(ctxb(), listID, task.ID); err != nil {
		t.Fatalf("SendEmailReminder failed: %v", err)
	}

	if len(sender.recipients) != 1 || sender.recipients[0] != "mei@example.com" {
		t.Errorf("Sender recipients = %v", sender.recipients)
	}
	if sender.contents[0] != task.Content {
		t.Errorf("Sender content = %q, want task content", sender.contents[0])
	}
	got, _ = s.GetTask(listID, task.ID)
	if !got.ReminderSent {
		t.Error("Send should mark the reminder sent")
	}
}

func TestSendEmailReminderDeliveryFailureStaysMarked(t *testing.T) {
	s, _, sender := setupStore(t)
	sender.err = errors.New("smtp down")
	listID := s.Lists()[0].ID
	task := s.Lists()[0].Tasks[0]

	if err := s.SetTaskEmailReminder(ctxb(), listID, task.ID, "mei@example.com"); err != nil {
		t.Fatal(err)
	}
	if err := s.SendEmailReminder(ctxb(), listID, task.ID); err != nil {
		t.Fatalf("Delivery failure must not surface as an error, got %v", err)
	}
	got, _ := s.GetTask(listID, task.ID)
	if !got.ReminderSent {
		t.Error("Sent flag records the attempt, not delivery success")
	}
}

// ==== TAGS ====

func TestAddTagValidation(t *testing.T) {
	s, _, _ := setupStore(t)

	if _, err := s.AddTag(ctxb(), "", "#aabbcc"); !errors.Is(err, ErrEmptyName) {
		t.Errorf("Expected ErrEmptyName, got %v", err)
	}
	for _, color := range []string{"aabbcc", "#abc", "#gggggg", "#aabbccdd", ""} {
		if _, err := s.AddTag(ctxb(), "Garden", color); !errors.Is(err, ErrInvalidColor) {
			t.Errorf("Color %q: expected ErrInvalidColor, got %v", color, err)
		}
	}

	tag, err := s.AddTag(ctxb(), "Garden", "#AaBbCc")
	if err != nil {
		t.Fatalf("AddTag failed: %v", err)
	}
	if tag.ID == "" {
		t.Error("New tag should have an id")
	}
	if len(s.Tags()) != 4 {
		t.Errorf("Expected 4 tags, got %d", len(s.Tags()))
	}
}

func TestUpdateTagPropagates(t *testing.T) {
	s, _, _ := setupStore(t)

	// Seed task "Visit the bathhouse with No-Face" carries Urgent and Personal.
	urgent, ok := s.FindTag("Urgent")
	if !ok {
		t.Fatal("Seed tag Urgent missing")
	}
	listID, tagged, ok := s.LocateTask(s.Lists()[1].Tasks[0].ID)
	if !ok {
		t.Fatal("Seed task missing")
	}
	untagged := s.Lists()[0].Tasks[1] // carries Work only

	if err := s.UpdateTag(ctxb(), urgent.ID, "Critical", "#ff0000"); err != nil {
		t.Fatalf("UpdateTag failed: %v", err)
	}

	renamed, ok := s.FindTag("Critical")
	if !ok || renamed.Color != "#ff0000" {
		t.Error("Tag collection should hold the renamed tag")
	}

	got, _ := s.GetTask(listID, tagged.ID)
	var embedded *models.Tag
	for i := range got.Tags {
		if got.Tags[i].ID == urgent.ID {
			embedded = &got.Tags[i]
		}
	}
	if embedded == nil || embedded.Name != "Critical" || embedded.Color != "#ff0000" {
		t.Error("Embedded tag copy should be updated in place")
	}
	if !got.UpdatedAt.After(tagged.UpdatedAt) {
		t.Error("Tasks holding the tag should get a fresh updatedAt")
	}

	gotUntagged, _ := s.GetTask(s.Lists()[0].ID, untagged.ID)
	if !gotUntagged.UpdatedAt.Equal(untagged.UpdatedAt) {
		t.Error("Tasks without the tag must keep their updatedAt")
	}
}

func TestDeleteTagCascades(t *testing.T) {
	s, _, _ := setupStore(t)

	personal, ok := s.FindTag("Personal")
	if !ok {
		t.Fatal("Seed tag Personal missing")
	}
	// Personal is on two seed tasks; "Help Kiki with deliveries" has Work only.
	withTag := s.Lists()[0].Tasks[0]
	withoutTag := s.Lists()[0].Tasks[1]

	if err := s.DeleteTag(ctxb(), personal.ID); err != nil {
		t.Fatalf("DeleteTag failed: %v", err)
	}

	if _, ok := s.FindTag("Personal"); ok {
		t.Error("Deleted tag should be gone from the collection")
	}
	for _, list := range s.Lists() {
		for _, task := range list.Tasks {
			if task.HasTag(personal.ID) {
				t.Errorf("Task %q still holds the deleted tag", task.Content)
			}
		}
	}

	gotWith, _ := s.GetTask(s.Lists()[0].ID, withTag.ID)
	if !gotWith.UpdatedAt.After(withTag.UpdatedAt) {
		t.Error("Tasks that held the tag should get a fresh updatedAt")
	}
	gotWithout, _ := s.GetTask(s.Lists()[0].ID, withoutTag.ID)
	if !gotWithout.UpdatedAt.Equal(withoutTag.UpdatedAt) {
		t.Error("Tasks that never held the tag must keep their updatedAt")
	}
}

func TestDeleteUnknownTagNoOp(t *testing.T) {
	s, persister, _ := setupStore(t)
	before := s.Lists()
	tagsBefore := s.Tags()
	savesBefore := persister.saves

	if err := s.DeleteTag(ctxb(), "missing"); err != nil {
		t.Errorf("Unknown tag delete should not error, got %v", err)
	}
	if !reflect.DeepEqual(s.Lists(), before) || !reflect.DeepEqual(s.Tags(), tagsBefore) {
		t.Error("Unknown tag delete must leave state unchanged")
	}
	if persister.saves != savesBefore {
		t.Error("Unknown tag delete must not persist")
	}
}

func TestAddTagToTask(t *testing.T) {
	s, _, _ := setupStore(t)
	listID := s.Lists()[0].ID
	task := s.Lists()[0].Tasks[1] // Work only
	work, _ := s.FindTag("Work")
	urgent, _ := s.FindTag("Urgent")

	if err := s.AddTagToTask(ctxb(), listID, task.ID, urgent); err != nil {
		t.Fatalf("AddTagToTask failed: %v", err)
	}
	got, _ := s.GetTask(listID, task.ID)
	if !got.HasTag(urgent.ID) {
		t.Error("Tag should be attached")
	}
	if got.Tags[len(got.Tags)-1].ID != urgent.ID {
		t.Error("New tag should append at the end of the task's tags")
	}

	// Attaching an already-present tag is a complete no-op, timestamp included.
	afterFirst, _ := s.GetTask(listID, task.ID)
	if err := s.AddTagToTask(ctxb(), listID, task.ID, work); err != nil {
		t.Fatalf("Duplicate AddTagToTask failed: %v", err)
	}
	afterDup, _ := s.GetTask(listID, task.ID)
	if !reflect.DeepEqual(afterFirst, afterDup) {
		t.Error("Duplicate tag attach must change nothing, including updatedAt")
	}
}

func TestRemoveTagFromTask(t *testing.T) {
	s, _, _ := setupStore(t)
	listID := s.Lists()[1].ID
	task := s.Lists()[1].Tasks[0] // Urgent + Personal
	urgent, _ := s.FindTag("Urgent")
	personal, _ := s.FindTag("Personal")

	if err := s.RemoveTagFromTask(ctxb(), listID, task.ID, urgent.ID); err != nil {
		t.Fatalf("RemoveTagFromTask failed: %v", err)
	}
	got, _ := s.GetTask(listID, task.ID)
	if got.HasTag(urgent.ID) {
		t.Error("Removed tag should be gone")
	}
	if !got.HasTag(personal.ID) {
		t.Error("Other tags must survive the removal")
	}

	// Tag stays in the collection.
	if _, ok := s.FindTag("Urgent"); !ok {
		t.Error("Detaching from a task must not delete the tag itself")
	}

	// Removing a tag that is not attached is a no-op.
	before, _ := s.GetTask(listID, task.ID)
	if err := s.RemoveTagFromTask(ctxb(), listID, task.ID, urgent.ID); err != nil {
		t.Fatal(err)
	}
	after, _ := s.GetTask(listID, task.ID)
	if !reflect.DeepEqual(before, after) {
		t.Error("Removing an absent tag must change nothing")
	}
}

// ==== PERSISTENCE BEHAVIOR ====

func TestPersistenceFailureDoesNotSurface(t *testing.T) {
	persister := &memPersister{err: errors.New("disk full")}
	s := New(persister, nil, WithClock(newFakeClock().Now))

	list, err := s.AddTaskList(ctxb(), "Backlog")
	if err != nil {
		t.Fatalf("Persistence failure must not fail the operation, got %v", err)
	}
	if _, ok := s.FindList(string(list.ID)); !ok {
		t.Error("In-memory state stays authoritative when persistence fails")
	}
}

func TestEveryMutationPersists(t *testing.T) {
	s, persister, _ := setupStore(t)
	listID := s.Lists()[0].ID
	taskID := s.Lists()[0].Tasks[0].ID

	savesBefore := persister.saves
	if err := s.ToggleTaskCompletion(ctxb(), listID, taskID); err != nil {
		t.Fatal(err)
	}
	if persister.saves != savesBefore+1 {
		t.Fatalf("Expected one persist, got %d", persister.saves-savesBefore)
	}

	// The snapshot handed to the persister reflects the mutation.
	var persisted *models.Task
	for i := range persister.lists {
		if idx := persister.lists[i].FindTask(taskID); idx >= 0 {
			persisted = &persister.lists[i].Tasks[idx]
		}
	}
	if persisted == nil || !persisted.Completed {
		t.Error("Persisted snapshot should contain the toggled task")
	}
}

// ==== OPEN / SEED FALLBACK ====

type fakeDocs struct {
	memPersister
	lists   []models.TaskList
	listsOK bool
	tags    []models.Tag
	tagsOK  bool
}

func (f *fakeDocs) LoadLists(ctx context.Context) ([]models.TaskList, bool, error) {
	return f.lists, f.listsOK, nil
}

func (f *fakeDocs) LoadTags(ctx context.Context) ([]models.Tag, bool, error) {
	return f.tags, f.tagsOK, nil
}

func TestOpenLoadsPersistedState(t *testing.T) {
	docs := &fakeDocs{
		lists: []models.TaskList{
			{ID: "l1", Name: "Only", Tasks: []models.Task{}},
		},
		listsOK: true,
		tags: []models.Tag{
			{ID: "t1", Name: "Solo", Color: "#112233"},
		},
		tagsOK: true,
	}

	s, err := Open(ctxb(), docs, nil)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if len(s.Lists()) != 1 || s.Lists()[0].Name != "Only" {
		t.Error("Open should use the persisted lists, not the seed")
	}
	if len(s.Tags()) != 1 || s.Tags()[0].Name != "Solo" {
		t.Error("Open should use the persisted tags, not the seed")
	}
	if docs.saves != 0 {
		t.Error("Opening fully persisted state should not rewrite it")
	}
}

func TestOpenSeedsMissingDocuments(t *testing.T) {
	// Tags document exists but the lists document is missing: only the lists
	// fall back to the seed, built over the stored tags.
	docs := &fakeDocs{
		tags: []models.Tag{
			{ID: "t1", Name: "Solo", Color: "#112233"},
		},
		tagsOK: true,
	}

	s, err := Open(ctxb(), docs, nil)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if len(s.Tags()) != 1 {
		t.Error("Stored tag document should survive a missing list document")
	}
	if len(s.Lists()) != 3 {
		t.Error("Missing list document should fall back to the seed columns")
	}
	for _, list := range s.Lists() {
		for _, task := range list.Tasks {
			for _, tag := range task.Tags {
				if tag.ID != "t1" {
					t.Errorf("Seed task embeds tag %q not in the stored collection", tag.Name)
				}
			}
		}
	}
	if docs.saves == 0 {
		t.Error("Seeding should persist the resulting state")
	}
}

func TestOpenFreshSeedsEverything(t *testing.T) {
	docs := &fakeDocs{}

	s, err := Open(ctxb(), docs, nil)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if len(s.Lists()) != 3 || len(s.Tags()) != 3 {
		t.Error("Fresh open should produce the full seed board")
	}
	if docs.saves == 0 {
		t.Error("Fresh open should persist the seed immediately")
	}
}
