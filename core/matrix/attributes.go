package matrix

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// KeySeparator joins attribute values into a combination key.
const KeySeparator = "-"

// Attribute is one facet label paired with the selected value.
type Attribute struct {
	Label string
	Value string
}

// Attributes is an ordered label → value mapping, one entry per facet in
// FacetSet order. It encodes to a JSON object whose keys keep that order.
type Attributes []Attribute

// Values returns the attribute values in order.
func (a Attributes) Values() []string {
	out := make([]string, len(a))
	for i, attr := range a {
		out[i] = attr.Value
	}
	return out
}

// Key joins the values with KeySeparator.
func (a Attributes) Key() string {
	return strings.Join(a.Values(), KeySeparator)
}

// Get returns the value stored under label.
func (a Attributes) Get(label string) (string, bool) {
	for _, attr := range a {
		if attr.Label == label {
			return attr.Value, true
		}
	}
	return "", false
}

// ValueSet returns the attribute values as a set, ignoring labels.
func (a Attributes) ValueSet() map[string]struct{} {
	set := make(map[string]struct{}, len(a))
	for _, attr := range a {
		set[attr.Value] = struct{}{}
	}
	return set
}

// Clone copies the slice.
func (a Attributes) Clone() Attributes {
	if a == nil {
		return nil
	}
	return append(Attributes(nil), a...)
}

// MarshalJSON writes the attributes as an object in declaration order.
func (a Attributes) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, attr := range a {
		if i > 0 {
			buf.WriteByte(',')
		}
		label, err := json.Marshal(attr.Label)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(attr.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(label)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object and keeps the key order of the document.
func (a *Attributes) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*a = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("attributes: expected object, got %v", tok)
	}

	out := Attributes{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		label, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("attributes: expected string key, got %v", keyTok)
		}
		var value string
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("attributes: value for %q: %w", label, err)
		}
		out = append(out, Attribute{Label: label, Value: value})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*a = out
	return nil
}
