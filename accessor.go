package classattr

import (
	"fmt"
	"reflect"

	"github.com/google/uuid"
)

// AccessorCell is a computed attribute backed by up to three user-supplied
// functions. Each function's declared parameter count is inspected once when
// it is attached; the count decides the calling convention:
//
//   - getter: 0 params → called with no arguments; ≥1 → called with the
//     instance (if present) else the class
//   - setter: ≤1 params → called with the value only; >1 → receiver, value
//   - deleter: 0 params → no arguments; >0 → receiver
//
// Like a ValueCell, an AccessorCell installed on several classes is shared:
// whatever state the accessor functions close over is common to the group.
type AccessorCell struct {
	id  uuid.UUID
	doc string

	fget, fset, fdel                reflect.Value
	fgetArity, fsetArity, fdelArity int
}

// NewAccessor creates an AccessorCell from up to three functions. Any of
// fget, fset, fdel may be nil; the corresponding operation then fails with
// ErrUnreadable, ErrNotWritable, or ErrNotDeletable.
func NewAccessor(fget, fset, fdel any, doc string) *AccessorCell {
	p := &AccessorCell{
		id:  uuid.New(),
		doc: doc,
	}
	if fget != nil {
		p.Getter(fget)
	}
	if fset != nil {
		p.Setter(fset)
	}
	if fdel != nil {
		p.Deleter(fdel)
	}
	return p
}

// Property is shorthand for an AccessorCell with only a getter attached,
// mirroring decorator-style usage: attach the rest fluently.
//
//	cell := classattr.Property(getCount).Setter(setCount)
func Property(fget any) *AccessorCell {
	return NewAccessor(fget, nil, nil, "")
}

// Getter attaches (or replaces) the read function and recomputes its arity.
// Returns the cell for fluent chaining.
func (p *AccessorCell) Getter(fget any) *AccessorCell {
	p.fget, p.fgetArity = inspectFunc(fget)
	return p
}

// Setter attaches (or replaces) the write function and recomputes its arity.
func (p *AccessorCell) Setter(fset any) *AccessorCell {
	p.fset, p.fsetArity = inspectFunc(fset)
	return p
}

// Deleter attaches (or replaces) the delete function and recomputes its arity.
func (p *AccessorCell) Deleter(fdel any) *AccessorCell {
	p.fdel, p.fdelArity = inspectFunc(fdel)
	return p
}

// WithDoc sets the documentation string.
func (p *AccessorCell) WithDoc(doc string) *AccessorCell {
	p.doc = doc
	return p
}

// Read dispatches to the getter by arity.
func (p *AccessorCell) Read(r Receiver) (any, error) {
	if !p.fget.IsValid() {
		return nil, fmt.Errorf("%w: no getter", ErrUnreadable)
	}
	if p.fgetArity > 0 {
		return callAccessor(p.fget, r.Self())
	}
	return callAccessor(p.fget)
}

// Write dispatches to the setter by arity. The setter's arity threshold is 1
// rather than 0 because the value being set occupies one parameter slot.
func (p *AccessorCell) Write(r Receiver, value any) error {
	if !p.fset.IsValid() {
		return fmt.Errorf("%w: no setter", ErrNotWritable)
	}
	var err error
	if p.fsetArity > 1 {
		_, err = callAccessor(p.fset, r.Self(), value)
	} else {
		_, err = callAccessor(p.fset, value)
	}
	return err
}

// Delete dispatches to the deleter by arity.
func (p *AccessorCell) Delete(r Receiver) error {
	if !p.fdel.IsValid() {
		return fmt.Errorf("%w: no deleter", ErrNotDeletable)
	}
	var err error
	if p.fdelArity > 0 {
		_, err = callAccessor(p.fdel, r.Self())
	} else {
		_, err = callAccessor(p.fdel)
	}
	return err
}

// Doc returns the documentation string.
func (p *AccessorCell) Doc() string { return p.doc }

// ID returns the cell identity.
func (p *AccessorCell) ID() uuid.UUID { return p.id }

func (p *AccessorCell) String() string {
	return fmt.Sprintf("AccessorCell(getter=%v, setter=%v, deleter=%v)",
		p.fget.IsValid(), p.fset.IsValid(), p.fdel.IsValid())
}

// inspectFunc resolves a user-supplied accessor to a callable value and its
// declared parameter count. Non-function values yield an invalid Value, which
// the corresponding operation reports as absent.
func inspectFunc(fn any) (reflect.Value, int) {
	if fn == nil {
		return reflect.Value{}, 0
	}
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func {
		return reflect.Value{}, 0
	}
	return v, v.Type().NumIn()
}

// callAccessor invokes fn with the given arguments, validating the signature
// first so a mismatch surfaces as an error instead of a reflect panic.
// The first return value (if any) is the result; extra returns are ignored.
func callAccessor(fn reflect.Value, args ...any) (any, error) {
	t := fn.Type()
	if t.IsVariadic() {
		if len(args) < t.NumIn()-1 {
			return nil, fmt.Errorf("accessor expects at least %d arguments, got %d", t.NumIn()-1, len(args))
		}
	} else if t.NumIn() != len(args) {
		return nil, fmt.Errorf("accessor expects %d arguments, got %d", t.NumIn(), len(args))
	}

	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		var pt reflect.Type
		if t.IsVariadic() && i >= t.NumIn()-1 {
			pt = t.In(t.NumIn() - 1).Elem()
		} else {
			pt = t.In(i)
		}
		if arg == nil {
			in[i] = reflect.Zero(pt)
			continue
		}
		av := reflect.ValueOf(arg)
		if !av.Type().AssignableTo(pt) {
			return nil, fmt.Errorf("accessor argument %d: %s is not assignable to %s", i, av.Type(), pt)
		}
		in[i] = av
	}

	out := fn.Call(in)
	if len(out) == 0 {
		return nil, nil
	}
	return out[0].Interface(), nil
}
