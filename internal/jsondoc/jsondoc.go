// Package jsondoc provides an order-preserving JSON object tree.
//
// Configuration files edited here are owned by third-party tools and may
// contain keys this program knows nothing about. A plain map loses key
// order and a fixed struct loses unknown fields, so documents are held as
// ordered key/value trees: parse, edit the one subtree we own, and write
// everything else back exactly as found (values verbatim, formatting
// normalized).
package jsondoc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Object is a JSON object whose keys keep their appearance order.
// Values are one of: *Object, []any, json.Number, string, bool, nil.
type Object struct {
	keys   []string
	values map[string]any
}

// New creates an empty object.
func New() *Object {
	return &Object{values: make(map[string]any)}
}

// Len returns the number of keys.
func (o *Object) Len() int {
	return len(o.keys)
}

// Keys returns the keys in appearance order. The slice is a copy.
func (o *Object) Keys() []string {
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

// Has reports whether the key exists.
func (o *Object) Has(key string) bool {
	_, ok := o.values[key]
	return ok
}

// Get returns the value for key.
func (o *Object) Get(key string) (any, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Set stores a value. A new key is appended; an existing key keeps its
// position.
func (o *Object) Set(key string, value any) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// Delete removes a key. Unknown keys are ignored.
func (o *Object) Delete(key string) {
	if _, ok := o.values[key]; !ok {
		return
	}
	delete(o.values, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
}

// GetString returns the string value for key, or "" if absent or not a
// string.
func (o *Object) GetString(key string) string {
	s, _ := o.values[key].(string)
	return s
}

// GetBool returns the bool value for key, or false if absent or not a bool.
func (o *Object) GetBool(key string) bool {
	b, _ := o.values[key].(bool)
	return b
}

// GetNumber returns the numeric value for key.
func (o *Object) GetNumber(key string) (json.Number, bool) {
	n, ok := o.values[key].(json.Number)
	return n, ok
}

// GetInt returns the value for key as an int, or 0 if absent or not
// an integral number.
func (o *Object) GetInt(key string) int {
	n, ok := o.values[key].(json.Number)
	if !ok {
		return 0
	}
	i, err := n.Int64()
	if err != nil {
		return 0
	}
	return int(i)
}

// GetFloat returns the value for key as a float64, or 0 if absent or not a
// number.
func (o *Object) GetFloat(key string) float64 {
	n, ok := o.values[key].(json.Number)
	if !ok {
		return 0
	}
	f, err := n.Float64()
	if err != nil {
		return 0
	}
	return f
}

// GetObject returns the nested object for key, or nil if absent or not an
// object.
func (o *Object) GetObject(key string) *Object {
	obj, _ := o.values[key].(*Object)
	return obj
}

// GetArray returns the array for key, or nil if absent or not an array.
func (o *Object) GetArray(key string) []any {
	arr, _ := o.values[key].([]any)
	return arr
}

// EnsureObject returns the nested object for key, creating and attaching an
// empty one when the key is absent or holds a non-object value.
func (o *Object) EnsureObject(key string) *Object {
	if obj, ok := o.values[key].(*Object); ok {
		return obj
	}
	obj := New()
	o.Set(key, obj)
	return obj
}

// Clone returns a deep copy.
func (o *Object) Clone() *Object {
	out := New()
	for _, k := range o.keys {
		out.Set(k, cloneValue(o.values[k]))
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case *Object:
		return t.Clone()
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		// json.Number, string, bool, nil are immutable.
		return v
	}
}

// SortedKeys returns the keys in lexical order. Useful for deterministic
// iteration where appearance order does not matter.
func (o *Object) SortedKeys() []string {
	out := o.Keys()
	sort.Strings(out)
	return out
}

// --- Parse ---

// Parse decodes data into an ordered object tree. Empty or
// whitespace-only input is an error; callers that want "missing file means
// empty document" semantics check for that before parsing. Numeric literals
// are kept as json.Number so they re-serialize byte-identically. Trailing
// non-whitespace content after the document is rejected.
func Parse(data []byte) (*Object, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	delim, ok := tok.(json.Delim)
	if !ok || delim != '{' {
		return nil, fmt.Errorf("document root is %v, want object", tok)
	}

	obj, err := parseObject(dec)
	if err != nil {
		return nil, err
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("trailing content after document")
	}
	return obj, nil
}

// parseObject consumes tokens after the opening '{' up to and including the
// matching '}'.
func parseObject(dec *json.Decoder) (*Object, error) {
	obj := New()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decode key: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("object key is %v, want string", tok)
		}
		val, err := parseValue(dec)
		if err != nil {
			return nil, err
		}
		obj.Set(key, val)
	}
	if _, err := dec.Token(); err != nil { // closing '}'
		return nil, fmt.Errorf("decode object end: %w", err)
	}
	return obj, nil
}

func parseArray(dec *json.Decoder) ([]any, error) {
	arr := []any{}
	for dec.More() {
		val, err := parseValue(dec)
		if err != nil {
			return nil, err
		}
		arr = append(arr, val)
	}
	if _, err := dec.Token(); err != nil { // closing ']'
		return nil, fmt.Errorf("decode array end: %w", err)
	}
	return arr, nil
}

func parseValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("decode value: %w", err)
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return parseObject(dec)
		case '[':
			return parseArray(dec)
		}
		return nil, fmt.Errorf("unexpected delimiter %v", t)
	default:
		// string, json.Number, bool, nil
		return tok, nil
	}
}

// --- Marshal ---

// Marshal serializes the tree with two-space indentation and keys in
// preserved order. The output carries no trailing newline; writers append
// one.
func (o *Object) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeObject(&buf, o, 0); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

const indentUnit = "  "

func encodeObject(buf *bytes.Buffer, o *Object, depth int) error {
	if o.Len() == 0 {
		buf.WriteString("{}")
		return nil
	}
	buf.WriteString("{\n")
	inner := strings.Repeat(indentUnit, depth+1)
	for i, k := range o.keys {
		buf.WriteString(inner)
		keyJSON, err := json.Marshal(k)
		if err != nil {
			return err
		}
		buf.Write(keyJSON)
		buf.WriteString(": ")
		if err := encodeValue(buf, o.values[k], depth+1); err != nil {
			return err
		}
		if i < len(o.keys)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString(strings.Repeat(indentUnit, depth))
	buf.WriteByte('}')
	return nil
}

func encodeArray(buf *bytes.Buffer, arr []any, depth int) error {
	if len(arr) == 0 {
		buf.WriteString("[]")
		return nil
	}
	buf.WriteString("[\n")
	inner := strings.Repeat(indentUnit, depth+1)
	for i, v := range arr {
		buf.WriteString(inner)
		if err := encodeValue(buf, v, depth+1); err != nil {
			return err
		}
		if i < len(arr)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString(strings.Repeat(indentUnit, depth))
	buf.WriteByte(']')
	return nil
}

func encodeValue(buf *bytes.Buffer, v any, depth int) error {
	switch t := v.(type) {
	case nil:
		buf.WriteString("null")
	case *Object:
		return encodeObject(buf, t, depth)
	case []any:
		return encodeArray(buf, t, depth)
	case json.Number:
		buf.WriteString(t.String())
	case string:
		s, err := json.Marshal(t)
		if err != nil {
			return err
		}
		buf.Write(s)
	case bool:
		if t {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	default:
		return fmt.Errorf("unsupported value type %T", v)
	}
	return nil
}
