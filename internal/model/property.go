package model

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// PropertyValue is either a string or a number.
type PropertyValue struct {
	str   string
	num   float64
	isNum bool
}

// StringValue wraps s as a property value.
func StringValue(s string) PropertyValue { return PropertyValue{str: s} }

// NumberValue wraps f as a property value.
func NumberValue(f float64) PropertyValue { return PropertyValue{num: f, isNum: true} }

// ParsePropertyValue stores numeric input as a number and anything else as
// a trimmed string.
func ParsePropertyValue(s string) PropertyValue {
	s = strings.TrimSpace(s)
	if s != "" {
		if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return NumberValue(f)
		}
	}
	return StringValue(s)
}

// IsNumber reports whether v holds a number.
func (v PropertyValue) IsNumber() bool { return v.isNum }

// Number returns the numeric value and whether v holds one.
func (v PropertyValue) Number() (float64, bool) { return v.num, v.isNum }

func (v PropertyValue) String() string {
	if v.isNum {
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	}
	return v.str
}

func (v PropertyValue) MarshalJSON() ([]byte, error) {
	if v.isNum {
		return strconv.AppendFloat(nil, v.num, 'f', -1, 64), nil
	}
	return json.Marshal(v.str)
}

// UnmarshalJSON accepts strings and numbers. Other scalars are kept as
// their textual form.
func (v *PropertyValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*v = StringValue("")
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decoding property value: %w", err)
		}
		*v = StringValue(s)
	case data[0] == '{' || data[0] == '[':
		return fmt.Errorf("decoding property value: unsupported %s", string(data[:1]))
	default:
		if f, err := strconv.ParseFloat(string(data), 64); err == nil {
			*v = NumberValue(f)
			return nil
		}
		*v = StringValue(string(data))
	}
	return nil
}

// Property is one key/value pair on an item.
type Property struct {
	Key   string
	Value PropertyValue
}

// Properties is an ordered set of item properties. It encodes as a JSON
// object whose member order follows insertion order.
type Properties []Property

// Get returns the value stored under key.
func (p Properties) Get(key string) (PropertyValue, bool) {
	for _, prop := range p {
		if prop.Key == key {
			return prop.Value, true
		}
	}
	return PropertyValue{}, false
}

// Set replaces the value under key, or appends a new entry.
func (p Properties) Set(key string, value PropertyValue) Properties {
	for i := range p {
		if p[i].Key == key {
			p[i].Value = value
			return p
		}
	}
	return append(p, Property{Key: key, Value: value})
}

// Clone returns an independent copy.
func (p Properties) Clone() Properties {
	if p == nil {
		return nil
	}
	out := make(Properties, len(p))
	copy(out, p)
	return out
}

func (p Properties) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, prop := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(prop.Key)
		if err != nil {
			return nil, err
		}
		val, err := prop.Value.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object member by member to keep key order.
// A repeated key keeps its first position and its last value.
func (p *Properties) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*p = nil
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("decoding properties: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("decoding properties: expected object")
	}
	var out Properties
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("decoding properties: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("decoding properties: expected key")
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("decoding property %q: %w", key, err)
		}
		var v PropertyValue
		if err := v.UnmarshalJSON(raw); err != nil {
			return err
		}
		out = out.Set(key, v)
	}
	*p = out
	return nil
}
