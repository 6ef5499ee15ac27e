package wheel

import "encoding/json"

// Optional holds a computed value that may be unavailable.
//
// The engine uses it for every result that depends on data the caller may not
// have supplied (a price, an option history, a non-zero denominator). An
// unavailable value is not a zero: a zero unrealized P&L means break-even, an
// unavailable one means "cannot tell".
type Optional[T any] struct {
	value T
	ok    bool
}

// Some returns an available value.
func Some[T any](v T) Optional[T] { return Optional[T]{value: v, ok: true} }

// None returns an unavailable value.
func None[T any]() Optional[T] { return Optional[T]{} }

// Get returns the value and whether it is available.
func (o Optional[T]) Get() (T, bool) { return o.value, o.ok }

// IsSet reports whether the value is available.
func (o Optional[T]) IsSet() bool { return o.ok }

// Or returns the value if available, def otherwise.
func (o Optional[T]) Or(def T) T {
	if o.ok {
		return o.value
	}
	return def
}

// MarshalJSON encodes an unavailable value as null.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.ok {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}
