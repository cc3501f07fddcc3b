package classattr

import (
	"fmt"
	"sort"
)

// Attrs is the attribute table handed to class construction: name → plain
// value, function, or Cell.
type Attrs map[string]any

// Object is the common attribute-access surface shared by classes and
// instances. All reads and writes funnel through these entry points; there is
// no direct field access to bypass a governing Cell.
type Object interface {
	Get(name string) (any, error)
	Set(name string, value any) error
	Delete(name string) error
}

// Class is a handle to a constructed class: a name, an ordered base list, an
// attribute table, and (when built through an Authority) the governance that
// makes class-level assignment route through shared Cells.
//
// An ungoverned Class (built with NewClass) reproduces default object-model
// behavior: Cells in its table serve instance access, but class-level Set
// plain-overwrites them. Adapt converts such a class into a governed one.
type Class struct {
	name      string
	doc       string
	bases     []*Class
	authority *Authority

	// attrs is the plain attribute table. Once a name is governed it never
	// appears here: a freshly assigned plain value would silently shadow the
	// shared Cell instead of updating it.
	attrs map[string]any

	// cells holds descriptor placements. These serve instance-level access
	// and, on ungoverned classes, instance access only.
	cells map[string]Cell
}

// NewClass constructs a class without an Authority. Cells in attrs behave as
// instance descriptors, but `cls.Set(name, v)` on a cell-bearing name
// replaces the cell — the exact gap this package exists to close. Use an
// Authority (or Adapt) for governed construction.
func NewClass(name string, bases []*Class, attrs Attrs) *Class {
	c := &Class{
		name:  name,
		bases: append([]*Class(nil), bases...),
		attrs: make(map[string]any),
		cells: make(map[string]Cell),
	}
	for k, v := range attrs {
		c.setOwn(k, v)
	}
	return c
}

// Name returns the class name.
func (c *Class) Name() string { return c.name }

// Doc returns the class documentation string.
func (c *Class) Doc() string { return c.doc }

// WithDoc sets the class documentation string.
func (c *Class) WithDoc(doc string) *Class {
	c.doc = doc
	return c
}

// Bases returns the direct base classes in declaration order.
func (c *Class) Bases() []*Class {
	return append([]*Class(nil), c.bases...)
}

// Authority returns the governing Authority, or nil for ungoverned classes.
func (c *Class) Authority() *Authority { return c.authority }

func (c *Class) String() string {
	return fmt.Sprintf("Class(%s)", c.name)
}

// New creates an instance of the class with an empty instance dictionary.
func (c *Class) New() *Instance {
	return &Instance{
		class: c,
		attrs: make(map[string]any),
	}
}

// Get resolves a class-level read. A Cell held by the governing Authority
// wins over the class's own table; otherwise the lookup walks the class and
// its bases in method-resolution order.
func (c *Class) Get(name string) (any, error) {
	if cell := c.governingCell(name); cell != nil {
		return cell.Read(Receiver{Class: c})
	}
	for _, k := range c.mro() {
		if cell, ok := k.cells[name]; ok {
			return cell.Read(Receiver{Class: c})
		}
		if v, ok := k.attrs[name]; ok {
			return v, nil
		}
	}
	return nil, fmt.Errorf("%w: %s.%s", ErrAttributeNotFound, c.name, name)
}

// MustGet is like Get but panics on error. Use when the attribute is known
// to exist and be readable.
func (c *Class) MustGet(name string) any {
	v, err := c.Get(name)
	if err != nil {
		panic(fmt.Sprintf("classattr: %v", err))
	}
	return v
}

// Set performs a class-level write. When the governing Authority holds a Cell
// for the name, the write funnels through the Cell — this is the behavior
// the default object model lacks. Otherwise the class's own table is written.
func (c *Class) Set(name string, value any) error {
	if cell := c.governingCell(name); cell != nil {
		return cell.Write(Receiver{Class: c}, value)
	}
	c.setOwn(name, value)
	return nil
}

// Delete removes a class-level attribute, routing through the governing Cell
// when one exists.
func (c *Class) Delete(name string) error {
	if cell := c.governingCell(name); cell != nil {
		return cell.Delete(Receiver{Class: c})
	}
	if _, ok := c.cells[name]; ok {
		delete(c.cells, name)
		return nil
	}
	if _, ok := c.attrs[name]; ok {
		delete(c.attrs, name)
		return nil
	}
	return fmt.Errorf("%w: %s.%s", ErrAttributeNotFound, c.name, name)
}

// AttrNames returns the sorted names present in the class's own table,
// including descriptor placements. Inherited and Authority-held names are
// not listed.
func (c *Class) AttrNames() []string {
	names := make([]string, 0, len(c.attrs)+len(c.cells))
	for k := range c.attrs {
		names = append(names, k)
	}
	for k := range c.cells {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// governingCell resolves the Cell that intercepts class-level access: the
// governing Authority's own table first, then its parent chain. Ungoverned
// classes have no interception.
func (c *Class) governingCell(name string) Cell {
	if c.authority == nil {
		return nil
	}
	return c.authority.cell(name)
}

// resolveCell finds the Cell serving instance-level access: the first
// descriptor placement along the method-resolution order.
func (c *Class) resolveCell(name string) Cell {
	for _, k := range c.mro() {
		if cell, ok := k.cells[name]; ok {
			return cell
		}
	}
	return nil
}

// mro returns the method-resolution order: the class itself, then bases
// depth-first left to right, deduplicated. Diamond hierarchies with
// conflicting cell kinds are best-effort.
func (c *Class) mro() []*Class {
	seen := make(map[*Class]bool)
	var order []*Class
	var walk func(k *Class)
	walk = func(k *Class) {
		if k == nil || seen[k] {
			return
		}
		seen[k] = true
		order = append(order, k)
		for _, b := range k.bases {
			walk(b)
		}
	}
	walk(c)
	return order
}

// setOwn writes directly into the class's own table, modeling plain
// assignment: cells land as descriptor placements, everything else as plain
// values. The two maps act as one dictionary, so a write to one clears the
// other.
func (c *Class) setOwn(name string, value any) {
	if cell, ok := value.(Cell); ok {
		c.cells[name] = cell
		delete(c.attrs, name)
		return
	}
	c.attrs[name] = value
	delete(c.cells, name)
}

// removeOwn deletes a name from the class's own table. Absence is normal.
func (c *Class) removeOwn(name string) {
	delete(c.attrs, name)
	delete(c.cells, name)
}

// ownTable returns a copy of the class's own attribute table, descriptor
// placements included.
func (c *Class) ownTable() Attrs {
	table := make(Attrs, len(c.attrs)+len(c.cells))
	for k, v := range c.attrs {
		table[k] = v
	}
	for k, v := range c.cells {
		table[k] = v
	}
	return table
}

// Instance is a handle to an instance of a Class. It holds its own attribute
// dictionary; Cell placements on the class take precedence over it for both
// reads and writes, matching data-descriptor semantics.
type Instance struct {
	class *Class
	attrs map[string]any
}

// Class returns the instance's class.
func (i *Instance) Class() *Class { return i.class }

func (i *Instance) String() string {
	return fmt.Sprintf("Instance(%s)", i.class.name)
}

// Get resolves an instance-level read: class-hierarchy Cells first, then the
// instance dictionary, then plain class attributes.
func (i *Instance) Get(name string) (any, error) {
	if cell := i.class.resolveCell(name); cell != nil {
		return cell.Read(Receiver{Instance: i, Class: i.class})
	}
	if v, ok := i.attrs[name]; ok {
		return v, nil
	}
	for _, k := range i.class.mro() {
		if v, ok := k.attrs[name]; ok {
			return v, nil
		}
	}
	return nil, fmt.Errorf("%w: %s().%s", ErrAttributeNotFound, i.class.name, name)
}

// MustGet is like Get but panics on error.
func (i *Instance) MustGet(name string) any {
	v, err := i.Get(name)
	if err != nil {
		panic(fmt.Sprintf("classattr: %v", err))
	}
	return v
}

// Set performs an instance-level write, funneling through a class-hierarchy
// Cell when one governs the name.
func (i *Instance) Set(name string, value any) error {
	if cell := i.class.resolveCell(name); cell != nil {
		return cell.Write(Receiver{Instance: i, Class: i.class}, value)
	}
	i.attrs[name] = value
	return nil
}

// Delete removes an instance attribute, routing through a governing Cell's
// deleter when one exists.
func (i *Instance) Delete(name string) error {
	if cell := i.class.resolveCell(name); cell != nil {
		return cell.Delete(Receiver{Instance: i, Class: i.class})
	}
	if _, ok := i.attrs[name]; ok {
		delete(i.attrs, name)
		return nil
	}
	return fmt.Errorf("%w: %s().%s", ErrAttributeNotFound, i.class.name, name)
}
