package classattr

import (
	"fmt"

	"github.com/google/uuid"
)

// Receiver identifies who performed an attribute access.
// Instance is nil for class-level access; Class is always the class the name
// was resolved against.
type Receiver struct {
	Instance *Instance
	Class    *Class
}

// Self returns the value handed to bound accessor functions: the instance
// when present, otherwise the class.
func (r Receiver) Self() any {
	if r.Instance != nil {
		return r.Instance
	}
	return r.Class
}

// Cell is a unit of shared, descriptor-governed storage. A single Cell may be
// installed on many classes; every holder reads and writes the same state.
//
// Cells are compared by identity: two classes belong to the same sharing
// group for a name exactly when that name resolves to the same Cell on both.
type Cell interface {
	// Read returns the current value for the given receiver.
	Read(r Receiver) (any, error)

	// Write stores a new value. The Cell object itself is never replaced;
	// state is mutated in place so all holders observe the update.
	Write(r Receiver, value any) error

	// Delete removes the attribute, when the Cell supports deletion.
	Delete(r Receiver) error

	// Doc returns the documentation string, if any.
	Doc() string

	// ID returns the stable identity used in logs and diagnostics.
	ID() uuid.UUID
}

// ValueCell holds one mutable slot shared by every class and instance it is
// installed on. Reads return the slot, writes replace it unconditionally.
type ValueCell struct {
	id    uuid.UUID
	value any
	doc   string
}

// NewValue creates a ValueCell holding the given initial value.
func NewValue(value any, doc string) *ValueCell {
	return &ValueCell{
		id:    uuid.New(),
		value: value,
		doc:   doc,
	}
}

// Read returns the stored value. The receiver is ignored; every member of
// the sharing group sees the same slot.
func (c *ValueCell) Read(Receiver) (any, error) {
	return c.value, nil
}

// Write replaces the stored value in place. It never fails and performs no
// validation.
func (c *ValueCell) Write(_ Receiver, value any) error {
	c.value = value
	return nil
}

// Delete always fails: a ValueCell has no deletion behavior.
func (c *ValueCell) Delete(Receiver) error {
	return fmt.Errorf("%w: value cell has no deleter", ErrNotDeletable)
}

// Doc returns the documentation string.
func (c *ValueCell) Doc() string { return c.doc }

// ID returns the cell identity.
func (c *ValueCell) ID() uuid.UUID { return c.id }

func (c *ValueCell) String() string {
	return fmt.Sprintf("ValueCell(%v)", c.value)
}
