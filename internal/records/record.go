package records

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
)

// ErrNotObject is returned when a record is decoded from a JSON value that is not an object.
var ErrNotObject = errors.New("record: expected JSON object")

// Field is a single key/value pair of a Record. Value holds compact JSON.
type Field struct {
	Key   string
	Value json.RawMessage
}

// Record is a free-form player record: string keys mapped to JSON values,
// usually strings. Keys keep the order in which they were added or decoded.
// Copies of a Record may share storage; Set and SetRaw never write into
// shared storage, so mutating one copy leaves the others unchanged.
type Record struct {
	fields []Field
}

// NewRecord builds a record from alternating key/value strings.
// A trailing key without a value is ignored.
func NewRecord(pairs ...string) Record {
	var r Record
	for i := 0; i+1 < len(pairs); i += 2 {
		r.putOwned(pairs[i], encodeString(pairs[i+1]))
	}
	return r
}

// Clone returns a record with its own field storage.
func (r Record) Clone() Record {
	if r.fields == nil {
		return Record{}
	}
	return Record{fields: r.Fields()}
}

// Len returns the number of fields.
func (r Record) Len() int {
	return len(r.fields)
}

// Keys returns the keys in order.
func (r Record) Keys() []string {
	keys := make([]string, 0, len(r.fields))
	for _, f := range r.fields {
		keys = append(keys, f.Key)
	}
	return keys
}

// Fields returns a copy of the fields in order.
func (r Record) Fields() []Field {
	out := make([]Field, len(r.fields))
	copy(out, r.fields)
	return out
}

// Get returns the value for key. String values are unquoted; any other JSON
// value is returned as its JSON text.
func (r Record) Get(key string) (string, bool) {
	raw, ok := r.Raw(key)
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, true
	}
	return string(raw), true
}

// Raw returns the JSON text stored for key.
func (r Record) Raw(key string) (json.RawMessage, bool) {
	if i := r.index(key); i >= 0 {
		return r.fields[i].Value, true
	}
	return nil, false
}

// Set stores a string value, replacing any existing value in place.
func (r *Record) Set(key, value string) {
	r.put(key, encodeString(value))
}

// SetRaw stores a JSON value, replacing any existing value in place.
func (r *Record) SetRaw(key string, value json.RawMessage) error {
	var buf bytes.Buffer
	if err := json.Compact(&buf, value); err != nil {
		return fmt.Errorf("record: invalid value for %q: %w", key, err)
	}
	r.put(key, buf.Bytes())
	return nil
}

// Equal reports whether both records hold the same keys with the same values.
// Key order is ignored.
func (r Record) Equal(other Record) bool {
	if len(r.fields) != len(other.fields) {
		return false
	}
	for _, f := range r.fields {
		v, ok := other.Raw(f.Key)
		if !ok || !sameJSON(f.Value, v) {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the record as a JSON object in key order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(encodeString(f.Key))
		buf.WriteByte(':')
		if len(f.Value) == 0 {
			buf.WriteString("null")
			continue
		}
		buf.Write(f.Value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, keeping key order. For duplicate keys
// the first position is kept and the last value wins.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return ErrNotObject
	}

	decoded := Record{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("record: unexpected key token %v", keyTok)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return err
		}
		var compact bytes.Buffer
		if err := json.Compact(&compact, value); err != nil {
			return fmt.Errorf("record: invalid value for %q: %w", key, err)
		}
		decoded.putOwned(key, compact.Bytes())
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return errors.New("record: unexpected data after object")
	}

	*r = decoded
	return nil
}

// put stores value in fresh field storage so copies sharing the old slice
// are not affected.
func (r *Record) put(key string, value json.RawMessage) {
	fields := make([]Field, len(r.fields), len(r.fields)+1)
	copy(fields, r.fields)
	if i := r.index(key); i >= 0 {
		fields[i].Value = value
	} else {
		fields = append(fields, Field{Key: key, Value: value})
	}
	r.fields = fields
}

// putOwned writes in place. Only for records not yet visible to callers.
func (r *Record) putOwned(key string, value json.RawMessage) {
	if i := r.index(key); i >= 0 {
		r.fields[i].Value = value
		return
	}
	r.fields = append(r.fields, Field{Key: key, Value: value})
}

func (r Record) index(key string) int {
	for i, f := range r.fields {
		if f.Key == key {
			return i
		}
	}
	return -1
}

// encodeString quotes s as JSON without HTML escaping.
func encodeString(s string) []byte {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	return bytes.TrimRight(buf.Bytes(), "\n")
}

func sameJSON(a, b json.RawMessage) bool {
	if bytes.Equal(a, b) {
		return true
	}
	var av, bv any
	if json.Unmarshal(a, &av) != nil || json.Unmarshal(b, &bv) != nil {
		return false
	}
	return reflect.DeepEqual(av, bv)
}
