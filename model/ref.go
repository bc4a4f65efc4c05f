package model

// Ref is either a value declared in place or a reference that points elsewhere in the
// document and carries an inlined copy of what it resolved to.
type Ref[T any] struct {
	pointer string
	value   T
}

// Direct wraps a value declared in place.
func Direct[T any](v T) Ref[T] {
	return Ref[T]{value: v}
}

// Indirect wraps a reference together with its resolved payload.
func Indirect[T any](pointer string, resolved T) Ref[T] {
	return Ref[T]{pointer: pointer, value: resolved}
}

// IsReference reports whether the value was reached through a pointer.
func (r Ref[T]) IsReference() bool {
	return r.pointer != ""
}

// Pointer returns the reference target, e.g. "#/components/examples/Pet".
func (r Ref[T]) Pointer() string {
	return r.pointer
}

// Resolve returns the value, following one level of indirection.
func (r Ref[T]) Resolve() T {
	return r.value
}
