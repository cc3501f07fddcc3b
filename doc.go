// Package classattr provides class-scoped shared attributes: a single stored
// value (or computed accessor) read and written identically through a class,
// a subclass, or any instance — including class-level assignment, which in
// the default object model silently replaces a descriptor instead of writing
// through it.
//
// # Overview
//
// classattr models "class" and "instance" as explicit handles whose attribute
// access funnels through Get/Set/Delete entry points. A Registration
// Authority intercepts class construction, strips descriptor-bearing
// attributes (Cells) from the table, and installs each Cell on both the class
// and the Authority itself. Both "read via class", "read via instance",
// "write via class", and "write via instance" then resolve to the same Cell,
// so every member of a sharing group observes every update.
//
// # Quick Start
//
// Declare a shared value and watch it propagate:
//
//	auth := classattr.NewAuthority(nil)
//	A := auth.Build("A", nil, classattr.Attrs{
//	    "value": classattr.NewValue(1, "shared counter"),
//	})
//
//	a := A.New()
//	A.Set("value", 2)          // class-level write funnels through the cell
//	v, _ := a.Get("value")     // v == 2: the instance sees it immediately
//
// Subclasses built under the same Authority keep sharing:
//
//	B := auth.Build("B", []*classattr.Class{A}, classattr.Attrs{
//	    "hello": classattr.NewValue("World", ""),
//	})
//	B.New().Set("value", 9)    // A.Get("value") == 9
//
// # Accessors
//
// An AccessorCell computes its value through user functions, attached fluently
// the way the built-in property builder works. The declared parameter count of
// each function, inspected once at attach time, decides whether it receives
// the accessing instance or class:
//
//	var count int
//	cell := classattr.Property(func() any { return count }).
//	    Setter(func(v any) { count = v.(int) })
//
//	C := auth.Build("C", nil, classattr.Attrs{"count": cell})
//
// A getter declared with one parameter receives the instance when accessed
// through an instance, else the class.
//
// # Forking
//
// Redeclaring a name with a new Cell under a new Authority disconnects the
// sharing group: writes on one side are invisible to the other.
//
//	derived := classattr.NewAuthority(A)
//	D := derived.Build("D", []*classattr.Class{A}, classattr.Attrs{
//	    "value": classattr.NewValue(0, ""),
//	})
//	D.Set("value", 7)          // A.Get("value") is unchanged
//
// # Adapting Existing Classes
//
// Classes built without an Authority reproduce the default object model:
// class-level assignment replaces their Cells. Adapt rebuilds such a class
// under a fresh Authority, preserving name and documentation metadata:
//
//	Plain := classattr.NewClass("Plain", nil, classattr.Attrs{
//	    "value": classattr.NewValue(1, ""),
//	})
//	Governed := classattr.Adapt(Plain)
//	Governed.Set("value", 2)   // writes through the cell, not over it
//
// # Concurrency
//
// All state — Cells, Authorities, class and instance tables — is unsynchronized
// mutable shared state. The package is designed for single-threaded use;
// callers that share it across goroutines must provide their own
// synchronization.
package classattr
