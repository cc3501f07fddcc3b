package classattr

// place installs a Cell on both a target class and the authority, so that
// instance-level access (via the class) and class-level access (via the
// authority) funnel through the same Cell.
//
// The assignments in the final step must be plain: an inherited Cell under
// the same name — on the authority's parent chain or on the target's direct
// bases — would otherwise intercept them and turn the installation into a
// value write. Interfering Cells are therefore suspended first and restored
// unconditionally on exit.
func (a *Authority) place(target *Class, name string, cell Cell) {
	// Remove any existing attribute directly on the authority and the
	// target. Absence is the normal case, not an error.
	delete(a.cells, name)
	target.removeOwn(name)

	restore := a.suspendInterfering(target, name)
	defer restore()

	// With interference cleared these writes reach storage directly: the
	// cell lands in the target's table as a descriptor placement, and in the
	// authority's table where it governs class-level access.
	if err := target.Set(name, cell); err != nil {
		// Set cannot fail here: suspension removed every governing cell.
		panic("classattr: placement assignment intercepted: " + err.Error())
	}
	a.cells[name] = cell
}

// suspended records one temporarily removed attribute for restoration.
type suspended struct {
	authority *Authority
	class     *Class
	name      string
	cell      Cell
}

// suspendInterfering removes same-named Cells from the authority's parent
// chain and from each direct base of the target, remembering them. The
// returned function restores every removal and must run on every exit path.
func (a *Authority) suspendInterfering(target *Class, name string) func() {
	var removed []suspended

	for p := a.parent; p != nil; p = p.parent {
		if c, ok := p.cells[name]; ok {
			removed = append(removed, suspended{authority: p, name: name, cell: c})
			delete(p.cells, name)
		}
	}
	for _, b := range target.bases {
		if c, ok := b.cells[name]; ok {
			removed = append(removed, suspended{class: b, name: name, cell: c})
			delete(b.cells, name)
		}
	}

	return func() {
		for _, s := range removed {
			if s.authority != nil {
				s.authority.cells[s.name] = s.cell
			}
			if s.class != nil {
				s.class.cells[s.name] = s.cell
			}
		}
	}
}
