// SPDX-License-Identifier: MPL-2.0

package manifest

type (
	// Value is one node of the decoded manifest tree. The zero value
	// behaves like an absent node: every narrowing accessor reports false.
	Value struct {
		raw any
	}

	// Table is a string-keyed mapping of manifest values. Keys are unique;
	// TOML guarantees that at parse time.
	Table struct {
		entries map[string]any
	}
)

// Get returns the value stored under key and whether the key exists.
func (t Table) Get(key string) (Value, bool) {
	raw, ok := t.entries[key]
	if !ok {
		return Value{}, false
	}
	return Value{raw: raw}, true
}

// Len returns the number of entries in the table.
func (t Table) Len() int { return len(t.entries) }

// AsString narrows the value to a string.
func (v Value) AsString() (string, bool) {
	s, ok := v.raw.(string)
	return s, ok
}

// AsInteger narrows the value to a 64-bit integer.
func (v Value) AsInteger() (int64, bool) {
	switch n := v.raw.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	default:
		return 0, false
	}
}

// AsBool narrows the value to a boolean.
func (v Value) AsBool() (bool, bool) {
	b, ok := v.raw.(bool)
	return b, ok
}

// AsTable narrows the value to a nested table.
func (v Value) AsTable() (Table, bool) {
	m, ok := v.raw.(map[string]any)
	if !ok {
		return Table{}, false
	}
	return Table{entries: m}, true
}

// AsArray narrows the value to an ordered sequence of values. Element order
// is the manifest order; asset resolution depends on that.
func (v Value) AsArray() ([]Value, bool) {
	raw, ok := v.raw.([]any)
	if !ok {
		return nil, false
	}
	values := make([]Value, len(raw))
	for i, elem := range raw {
		values[i] = Value{raw: elem}
	}
	return values, true
}
