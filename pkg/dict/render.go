package dict

import (
	"strconv"
	"strings"
)

// String renders the dictionary on a single line, keys sorted:
//
//	{"name": "example", "position": [0.1, 0, 100], "temperature": 28}
//
// The rendering is deterministic, so identical dictionaries always render
// to identical bytes.
func (d *Dictionary) String() string {
	var b strings.Builder
	d.render(&b)
	return b.String()
}

func (d *Dictionary) render(b *strings.Builder) {
	if d.IsValue() {
		renderValue(b, d.value)
		return
	}
	b.WriteByte('{')
	for i, key := range d.Keys() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Quote(key))
		b.WriteString(": ")
		d.childs[key].render(b)
	}
	b.WriteByte('}')
}

func renderValue(b *strings.Builder, v any) {
	switch x := v.(type) {
	case bool:
		if x {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case int64:
		b.WriteString(strconv.FormatInt(x, 10))
	case uint64:
		b.WriteString(strconv.FormatUint(x, 10))
	case float64:
		b.WriteString(strconv.FormatFloat(x, 'g', -1, 64))
	case string:
		b.WriteString(strconv.Quote(x))
	case []float64:
		b.WriteByte('[')
		for i, f := range x {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
		}
		b.WriteByte(']')
	}
}
