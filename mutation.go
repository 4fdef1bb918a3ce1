package pageloader

// Mutation is an optional override carried by a LoadResult. Replace overwrites
// the engine-owned value, DoNotReplace defers to the engine's default for that
// field. The zero value is DoNotReplace.
type Mutation[T any] struct {
	value   T
	replace bool
}

// Replace builds a Mutation that overwrites the target value with v.
func Replace[T any](v T) Mutation[T] {
	return Mutation[T]{value: v, replace: true}
}

// DoNotReplace builds a Mutation that leaves the target to its default.
func DoNotReplace[T any]() Mutation[T] {
	return Mutation[T]{}
}

// Value returns the payload and true for Replace, the zero value and false
// otherwise.
func (m Mutation[T]) Value() (T, bool) {
	return m.value, m.replace
}

func (m Mutation[T]) IsReplace() bool {
	return m.replace
}

// Or returns the payload for Replace and fallback for DoNotReplace.
func (m Mutation[T]) Or(fallback T) T {
	if m.replace {
		return m.value
	}

	return fallback
}
