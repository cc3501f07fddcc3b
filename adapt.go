package classattr

// Adapt converts an ordinary class into an equivalent governed class, letting
// existing class definitions opt in to shared attributes without being built
// through an Authority from the start.
//
// Already-governed classes are returned unchanged, so Adapt is idempotent.
// Otherwise a fresh Authority is keyed off the input class and an equivalent
// class is reconstructed through it — same name, same bases, a copy of the
// same attribute table — so the Authority's partition and reconcile steps run
// over the table and every Cell ends up governed. Name and documentation
// metadata are carried over.
func Adapt(cls *Class) *Class {
	if cls == nil {
		return nil
	}
	if cls.authority != nil {
		return cls
	}

	authority := NewAuthority(cls)
	out := authority.Build(cls.name, cls.Bases(), cls.ownTable())
	out.doc = cls.doc
	return out
}
