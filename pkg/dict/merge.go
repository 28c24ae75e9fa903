package dict

// Merge performs a shallow last-write-wins union: every top-level key of
// other replaces the whole corresponding entry of d. Children are deep
// copied so later mutation of other does not leak into d. Both nodes must
// be maps.
func (d *Dictionary) Merge(other *Dictionary) error {
	if d.IsValue() {
		return &TypeError{Expected: "map", Actual: kindName(d.value)}
	}
	if other.IsValue() {
		return &TypeError{Expected: "map", Actual: kindName(other.value)}
	}
	if len(other.childs) == 0 {
		return nil
	}
	if d.childs == nil {
		d.childs = make(map[string]*Dictionary, len(other.childs))
	}
	for key, child := range other.childs {
		d.childs[key] = child.Copy()
	}
	return nil
}

// Update performs a deep upsert: unknown keys of other are deep copied into
// d, known map keys recurse, and known value keys are overwritten only by a
// value of the same kind. A kind change or a map/value shape conflict fails
// with a TypeError carrying the key path; entries updated before the failing
// key keep their new values.
func (d *Dictionary) Update(other *Dictionary) error {
	if d.IsValue() {
		if !other.IsValue() {
			return &TypeError{Expected: kindName(d.value), Actual: "map"}
		}
		if kindName(d.value) != kindName(other.value) {
			return &TypeError{Expected: kindName(d.value), Actual: kindName(other.value)}
		}
		d.value = copyValue(other.value)
		return nil
	}
	if other.IsValue() {
		return &TypeError{Expected: "map", Actual: kindName(other.value)}
	}
	for _, key := range other.Keys() {
		child := other.childs[key]
		existing, ok := d.childs[key]
		if !ok {
			if d.childs == nil {
				d.childs = make(map[string]*Dictionary, len(other.childs))
			}
			d.childs[key] = child.Copy()
			continue
		}
		if existing.IsEmpty() && child.IsValue() {
			existing.value = copyValue(child.value)
			continue
		}
		if err := existing.Update(child); err != nil {
			return typeErrorAt(key, err)
		}
	}
	return nil
}

// Extend inserts keys of other that d does not have yet, deep copied.
// Existing keys are left untouched and returned so the caller can report
// them. Both nodes must be maps.
func (d *Dictionary) Extend(other *Dictionary) ([]string, error) {
	if d.IsValue() {
		return nil, &TypeError{Expected: "map", Actual: kindName(d.value)}
	}
	if other.IsValue() {
		return nil, &TypeError{Expected: "map", Actual: kindName(other.value)}
	}
	var skipped []string
	for _, key := range other.Keys() {
		if _, ok := d.childs[key]; ok {
			skipped = append(skipped, key)
			continue
		}
		if d.childs == nil {
			d.childs = make(map[string]*Dictionary, len(other.childs))
		}
		d.childs[key] = other.childs[key].Copy()
	}
	return skipped, nil
}

// Difference returns the entries of d that are missing from or different in
// other. Map children recurse and empty sub-results are pruned, so the
// result holds exactly the paths one would have to Update in other to make
// it match d. Comparing two value nodes returns a copy of d when they
// differ, nil when they are equal.
func (d *Dictionary) Difference(other *Dictionary) *Dictionary {
	if d.IsValue() || other.IsValue() {
		if valuesEqual(d, other) {
			return nil
		}
		return d.Copy()
	}
	out := New()
	for key, child := range d.childs {
		counterpart, ok := other.childs[key]
		if !ok {
			if out.childs == nil {
				out.childs = make(map[string]*Dictionary)
			}
			out.childs[key] = child.Copy()
			continue
		}
		if diff := child.Difference(counterpart); diff != nil && !diff.IsEmpty() {
			if out.childs == nil {
				out.childs = make(map[string]*Dictionary)
			}
			out.childs[key] = diff
		}
	}
	return out
}

func valuesEqual(a, b *Dictionary) bool {
	if a.IsValue() != b.IsValue() {
		return false
	}
	if !a.IsValue() {
		return true
	}
	af, aok := a.value.([]float64)
	bf, bok := b.value.([]float64)
	if aok || bok {
		if !aok || !bok || len(af) != len(bf) {
			return false
		}
		for i := range af {
			if af[i] != bf[i] {
				return false
			}
		}
		return true
	}
	return a.value == b.value
}
