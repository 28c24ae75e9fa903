package dict

import (
	"sort"
)

// Dictionary is a tree of nodes where every node is exactly one of: empty,
// a scalar value, or a map of string keys to child nodes. Scalar kinds are
// bool, int64, uint64, float64, string and []float64.
//
// A Dictionary is not safe for concurrent use.
type Dictionary struct {
	value  any
	childs map[string]*Dictionary
}

// New returns an empty dictionary.
func New() *Dictionary {
	return &Dictionary{}
}

// IsValue returns true if the node holds a scalar value.
func (d *Dictionary) IsValue() bool {
	return d.value != nil
}

// IsMap returns true if the node is a map, including the empty one.
func (d *Dictionary) IsMap() bool {
	return d.value == nil
}

// IsEmpty returns true if the node holds neither a value nor any key.
func (d *Dictionary) IsEmpty() bool {
	return d.value == nil && len(d.childs) == 0
}

// Len returns the number of keys in the node, zero for value nodes.
func (d *Dictionary) Len() int {
	return len(d.childs)
}

// Keys returns the node's keys in sorted order.
func (d *Dictionary) Keys() []string {
	keys := make([]string, 0, len(d.childs))
	for key := range d.childs {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Has returns true if the node has a child at the given key.
func (d *Dictionary) Has(key string) bool {
	_, ok := d.childs[key]
	return ok
}

// Child returns the child at key, or false if there is none.
func (d *Dictionary) Child(key string) (*Dictionary, bool) {
	child, ok := d.childs[key]
	return child, ok
}

// At returns the child at key, creating an empty one if needed. It fails
// with a TypeError when called on a value node.
func (d *Dictionary) At(key string) (*Dictionary, error) {
	if d.IsValue() {
		return nil, &TypeError{Expected: "map", Actual: kindName(d.value)}
	}
	if child, ok := d.childs[key]; ok {
		return child, nil
	}
	if d.childs == nil {
		d.childs = make(map[string]*Dictionary)
	}
	child := New()
	d.childs[key] = child
	return child, nil
}

// Set stores a scalar value at key, replacing whatever was there. Integers
// and floats are normalized (signed to int64, unsigned to int64 when it
// fits, float32 to float64). Unstorable values fail with ErrUnsupportedType.
func (d *Dictionary) Set(key string, value any) error {
	if d.IsValue() {
		return &TypeError{Expected: "map", Actual: kindName(d.value)}
	}
	v, ok := normalize(value)
	if !ok {
		return ErrUnsupportedType
	}
	if d.childs == nil {
		d.childs = make(map[string]*Dictionary)
	}
	d.childs[key] = &Dictionary{value: v}
	return nil
}

// SetValue turns the node itself into a scalar holding the given value.
// It fails on nodes that already have keys.
func (d *Dictionary) SetValue(value any) error {
	if len(d.childs) > 0 {
		return &TypeError{Expected: "value", Actual: "map"}
	}
	v, ok := normalize(value)
	if !ok {
		return ErrUnsupportedType
	}
	d.value = v
	return nil
}

// Value returns the scalar stored at key.
func (d *Dictionary) Value(key string) (any, error) {
	child, ok := d.childs[key]
	if !ok {
		return nil, &KeyError{Key: key}
	}
	if !child.IsValue() {
		return nil, &TypeError{Path: key, Expected: "value", Actual: "map"}
	}
	return child.value, nil
}

// Raw returns the scalar held by a value node, nil for map nodes.
func (d *Dictionary) Raw() any {
	return d.value
}

// Bool returns the boolean stored at key.
func (d *Dictionary) Bool(key string) (bool, error) {
	v, err := d.Value(key)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, &TypeError{Path: key, Expected: "bool", Actual: kindName(v)}
	}
	return b, nil
}

// Int returns the signed integer stored at key.
func (d *Dictionary) Int(key string) (int64, error) {
	v, err := d.Value(key)
	if err != nil {
		return 0, err
	}
	i, ok := v.(int64)
	if !ok {
		return 0, &TypeError{Path: key, Expected: "int64", Actual: kindName(v)}
	}
	return i, nil
}

// Uint returns the unsigned integer stored at key. Values in int64 range are
// stored signed, so Uint only matches values beyond that range.
func (d *Dictionary) Uint(key string) (uint64, error) {
	v, err := d.Value(key)
	if err != nil {
		return 0, err
	}
	u, ok := v.(uint64)
	if !ok {
		return 0, &TypeError{Path: key, Expected: "uint64", Actual: kindName(v)}
	}
	return u, nil
}

// Float returns the float stored at key.
func (d *Dictionary) Float(key string) (float64, error) {
	v, err := d.Value(key)
	if err != nil {
		return 0, err
	}
	f, ok := v.(float64)
	if !ok {
		return 0, &TypeError{Path: key, Expected: "float64", Actual: kindName(v)}
	}
	return f, nil
}

// Str returns the string stored at key.
func (d *Dictionary) Str(key string) (string, error) {
	v, err := d.Value(key)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", &TypeError{Path: key, Expected: "string", Actual: kindName(v)}
	}
	return s, nil
}

// Floats returns the numeric array stored at key.
func (d *Dictionary) Floats(key string) ([]float64, error) {
	v, err := d.Value(key)
	if err != nil {
		return nil, err
	}
	fs, ok := v.([]float64)
	if !ok {
		return nil, &TypeError{Path: key, Expected: "[]float64", Actual: kindName(v)}
	}
	return fs, nil
}

// BoolOr returns the boolean at key, or fallback when the key is absent or
// holds a different kind.
func (d *Dictionary) BoolOr(key string, fallback bool) bool {
	if b, err := d.Bool(key); err == nil {
		return b
	}
	return fallback
}

// IntOr returns the signed integer at key, or fallback when the key is
// absent or holds a different kind.
func (d *Dictionary) IntOr(key string, fallback int64) int64 {
	if i, err := d.Int(key); err == nil {
		return i
	}
	return fallback
}

// FloatOr returns the float at key, or fallback when the key is absent or
// holds a different kind.
func (d *Dictionary) FloatOr(key string, fallback float64) float64 {
	if f, err := d.Float(key); err == nil {
		return f
	}
	return fallback
}

// StrOr returns the string at key, or fallback when the key is absent or
// holds a different kind.
func (d *Dictionary) StrOr(key string, fallback string) string {
	if s, err := d.Str(key); err == nil {
		return s
	}
	return fallback
}

// Remove deletes the child at key. Removing an absent key is a no-op.
func (d *Dictionary) Remove(key string) {
	delete(d.childs, key)
}

// Clear removes all keys and any value, leaving the node empty.
func (d *Dictionary) Clear() {
	d.value = nil
	d.childs = nil
}

// Copy returns a deep copy of the dictionary.
func (d *Dictionary) Copy() *Dictionary {
	out := &Dictionary{value: copyValue(d.value)}
	if d.childs != nil {
		out.childs = make(map[string]*Dictionary, len(d.childs))
		for key, child := range d.childs {
			out.childs[key] = child.Copy()
		}
	}
	return out
}

// Interface exports the tree as plain Go values: map[string]any for map
// nodes (empty map for the empty node), the scalar itself for value nodes.
func (d *Dictionary) Interface() any {
	if d.IsValue() {
		return copyValue(d.value)
	}
	out := make(map[string]any, len(d.childs))
	for key, child := range d.childs {
		out[key] = child.Interface()
	}
	return out
}

// copyValue copies a normalized scalar; only []float64 needs real work.
func copyValue(v any) any {
	if fs, ok := v.([]float64); ok {
		out := make([]float64, len(fs))
		copy(out, fs)
		return out
	}
	return v
}
