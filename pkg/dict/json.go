package dict

import (
	"encoding/json"
	"io"
)

// MarshalJSON encodes the dictionary as a JSON object with sorted keys.
// Value nodes encode as their scalar.
func (d *Dictionary) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Interface())
}

// WriteJSON writes the JSON encoding of the dictionary followed by a
// newline.
func (d *Dictionary) WriteJSON(w io.Writer) error {
	data, err := d.MarshalJSON()
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
