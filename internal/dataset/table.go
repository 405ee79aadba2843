package dataset

// Table maps atomic numbers to a value with one explicit rule for numbers
// the table does not list.
type Table[V any] struct {
	values   map[int]V
	fallback func(n int) (V, bool)
}

// NewTable builds a table. A nil fallback means missing numbers are absent.
func NewTable[V any](values map[int]V, fallback func(n int) (V, bool)) *Table[V] {
	return &Table[V]{values: values, fallback: fallback}
}

// Lookup returns the listed value, else whatever the fallback resolves.
// The boolean is false when the value is absent.
func (t *Table[V]) Lookup(n int) (V, bool) {
	if v, ok := t.values[n]; ok {
		return v, true
	}
	if t.fallback != nil {
		return t.fallback(n)
	}
	var zero V
	return zero, false
}

// Get is Lookup without the presence flag.
func (t *Table[V]) Get(n int) V {
	v, _ := t.Lookup(n)
	return v
}

// Ptr returns a pointer to the resolved value, or nil when absent.
func (t *Table[V]) Ptr(n int) *V {
	v, ok := t.Lookup(n)
	if !ok {
		return nil
	}
	return &v
}

// Listed reports whether n has an explicit entry.
func (t *Table[V]) Listed(n int) bool {
	_, ok := t.values[n]
	return ok
}

// Default returns a fallback that always resolves to v.
func Default[V any](v V) func(int) (V, bool) {
	return func(int) (V, bool) { return v, true }
}
