package types

// ID type aliases give the opaque uuid strings flowing through the store a
// domain meaning. A ListID is never comparable to a TaskID by accident, and
// call sites document which entity they address.

// ListID identifies a task list (a board column).
type ListID string

// TaskID identifies a task within the board.
type TaskID string

// TagID identifies a tag in the tag collection.
type TagID string

func (id ListID) String() string {
	return string(id)
}

func (id TaskID) String() string {
	return string(id)
}

func (id TagID) String() string {
	return string(id)
}
