package classattr

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/google/uuid"
)

// Authority is the registration authority governing a family of classes: the
// metaclass analogue. It holds, in its own table, the same Cell objects
// installed on the classes it constructs, so that class-level reads and
// writes funnel through the Cell instead of plain storage.
//
// Distinct Authorities never interoperate: classes built under different
// Authorities form disjoint sharing groups even for the same attribute name.
// An Authority derived from a governed class (NewAuthority with that class)
// resolves names it does not hold itself through the parent chain, until a
// redeclaration places its own Cell.
type Authority struct {
	id     uuid.UUID
	parent *Authority
	cells  map[string]Cell
	logger *slog.Logger
}

// NewAuthority creates a fresh Authority. When inherit is a governed class,
// the new Authority chains to that class's Authority so undeclared names keep
// resolving to the parent's Cells; its own placements shadow the parent and
// start disjoint sharing groups. Pass nil for a standalone Authority.
//
// Every call returns a distinct Authority, even for the same inherit class.
func NewAuthority(inherit *Class) *Authority {
	a := &Authority{
		id:     uuid.New(),
		cells:  make(map[string]Cell),
		logger: slog.Default(),
	}
	if inherit != nil {
		a.parent = inherit.authority
	}
	return a
}

// WithLogger sets the logger used for construction-time diagnostics.
// Reconciliation failures during Build never abort construction; they are
// reported here at debug level instead.
func (a *Authority) WithLogger(logger *slog.Logger) *Authority {
	if logger != nil {
		a.logger = logger
	}
	return a
}

// ID returns the authority identity.
func (a *Authority) ID() uuid.UUID { return a.id }

func (a *Authority) String() string {
	return fmt.Sprintf("Authority(%s)", a.id)
}

// cell resolves a name against the authority's own table, then the parent
// chain. Own placements shadow inherited ones.
func (a *Authority) cell(name string) Cell {
	for cur := a; cur != nil; cur = cur.parent {
		if c, ok := cur.cells[name]; ok {
			return c
		}
	}
	return nil
}

// Cell returns the Cell governing a name under this authority, or nil.
// Useful for diagnostics and tests.
func (a *Authority) Cell(name string) Cell {
	return a.cell(name)
}

// Build runs a class-construction event: it partitions the attribute table
// into cell-governed and plain entries, strips governed names so ordinary
// construction never sees them, constructs the class over the stripped table,
// and reconciles every governed entry against the authority's Cells.
//
// Build never fails. Failures while resolving or writing a reconciled value
// (typically accessor functions referencing a class still being defined)
// leave the prior state intact and are logged at debug level.
func (a *Authority) Build(name string, bases []*Class, attrs Attrs) *Class {
	// Partition: an attribute is cell-governed when its value is a Cell, or
	// when any base's authority already holds a Cell under the same name.
	governed := make(map[string]any)
	plain := make(Attrs)
	for k, v := range attrs {
		if a.isGoverned(k, v, bases) {
			governed[k] = v
		} else {
			plain[k] = v
		}
	}

	// Construct over the stripped table. A governed name must never land in
	// the class's own table as a plain value: it would shadow the shared
	// Cell instead of updating it.
	cls := NewClass(name, bases, plain)
	cls.authority = a

	// Deterministic reconcile order keeps the debug log stable.
	names := make([]string, 0, len(governed))
	for k := range governed {
		names = append(names, k)
	}
	sort.Strings(names)

	for _, attrName := range names {
		a.reconcile(cls, attrName, governed[attrName])
	}
	return cls
}

// isGoverned reports whether an attribute participates in cell governance.
func (a *Authority) isGoverned(name string, value any, bases []*Class) bool {
	if _, ok := value.(Cell); ok {
		return true
	}
	for _, b := range bases {
		if b.authority != nil && b.authority.cell(name) != nil {
			return true
		}
	}
	// A name this authority already governs stays governed even when no base
	// carries it.
	return a.cell(name) != nil
}

// reconcile merges one governed declaration into the authority's state.
func (a *Authority) reconcile(cls *Class, name string, incoming any) {
	existing, ok := a.cells[name]
	if !ok {
		// First declaration under this authority. Plain values are coerced
		// into a ValueCell so future redeclarations update it in place.
		cell, isCell := incoming.(Cell)
		if !isCell {
			cell = NewValue(incoming, "")
		}
		a.place(cls, name, cell)
		return
	}

	if incoming, isCell := incoming.(Cell); isCell && incoming != existing {
		// Fork: a new Cell replaces the group's Cell at the most specific
		// base that owns it, upgrading that base and everything built on it.
		target := cls
		for i := len(cls.bases) - 1; i >= 0; i-- {
			b := cls.bases[i]
			if b.authority == a {
				if _, owns := b.cells[name]; owns {
					target = b
					break
				}
			}
		}
		a.place(target, name, incoming)
		existing = incoming
	}

	// Resolve the effective new value and write it through the Cell. A read
	// or write may fail (or panic) when accessor functions reference the
	// class being defined; prior state is left untouched in that case.
	effective := incoming
	if cell, isCell := incoming.(Cell); isCell {
		v, err := a.tryRead(cell, cls)
		if err != nil {
			a.logger.Debug("classattr: skipping reconcile, cell value unresolvable",
				"authority", a.id, "class", cls.name, "attribute", name, "error", err)
			return
		}
		effective = v
	}
	if err := a.tryWrite(existing, cls, effective); err != nil {
		a.logger.Debug("classattr: reconcile write failed, keeping prior value",
			"authority", a.id, "class", cls.name, "attribute", name, "error", err)
	}
}

// tryRead reads a cell against a class, converting panics in user accessor
// functions into errors so construction never aborts.
func (a *Authority) tryRead(cell Cell, cls *Class) (v any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in accessor: %v", r)
		}
	}()
	return cell.Read(Receiver{Class: cls})
}

// tryWrite writes through a cell against a class with the same panic guard.
func (a *Authority) tryWrite(cell Cell, cls *Class, value any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in accessor: %v", r)
		}
	}()
	return cell.Write(Receiver{Class: cls}, value)
}
