package classattr

import "errors"

// Attribute access errors.
var (
	// ErrUnreadable is returned when reading an accessor with no getter.
	ErrUnreadable = errors.New("unreadable attribute")

	// ErrNotWritable is returned when writing an accessor with no setter.
	ErrNotWritable = errors.New("can't set attribute")

	// ErrNotDeletable is returned when deleting an attribute with no deleter.
	ErrNotDeletable = errors.New("can't delete attribute")

	// ErrAttributeNotFound is returned when a name resolves to nothing on a
	// class, its bases, or an instance.
	ErrAttributeNotFound = errors.New("attribute not found")
)
