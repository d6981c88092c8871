package mongodb

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	IdField        = "_id"
	CreatedAtField = "createdAt"
	UpdatedAtField = "updatedAt"
)

// ProtectedFields are owned by the store. Values sent by clients for these
// keys are dropped before insert or update.
var ProtectedFields = []string{"id", IdField, CreatedAtField, UpdatedAtField}

// Document is a schema-free record that keeps its fields in insertion
// order. The store assigns "_id", which is written as "id" in JSON.
type Document bson.D

var (
	ErrNotAnObject  = errors.New("document must be a JSON object")
	ErrDuplicateKey = errors.New("duplicate field name")
)

// ParseDocument decodes a JSON object, keeping fields in the order they were
// sent. Objects become primitive.D and arrays primitive.A at any depth.
// Integers become int32 or int64 and other numbers float64. Keys are taken
// literally, so "$oid" or "$date" stay plain field names. A key repeated
// within one object is rejected with ErrDuplicateKey.
func ParseDocument(data []byte) (Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, ErrNotAnObject
	}

	d, err := readObject(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("unexpected data after the document")
	}

	return Document(d), nil
}

func readObject(dec *json.Decoder) (primitive.D, error) {
	d := primitive.D{}
	seen := make(map[string]struct{})

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateKey, key)
		}
		seen[key] = struct{}{}

		value, err := readValue(dec)
		if err != nil {
			return nil, err
		}
		d = append(d, primitive.E{Key: key, Value: value})
	}

	// closing brace
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return d, nil
}

func readArray(dec *json.Decoder) (primitive.A, error) {
	a := primitive.A{}
	for dec.More() {
		value, err := readValue(dec)
		if err != nil {
			return nil, err
		}
		a = append(a, value)
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return a, nil
}

func readValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return readObject(dec)
		case '[':
			return readArray(dec)
		}
		return nil, fmt.Errorf("unexpected delimiter %v", t)
	case json.Number:
		return parseNumber(t)
	default:
		// string, bool or nil
		return t, nil
	}
}

func parseNumber(n json.Number) (any, error) {
	if i, err := n.Int64(); err == nil {
		if i >= math.MinInt32 && i <= math.MaxInt32 {
			return int32(i), nil
		}
		return i, nil
	}

	f, err := n.Float64()
	if err != nil {
		return nil, fmt.Errorf("number %s out of range: %w", n, err)
	}
	return f, nil
}

func (d Document) Get(key string) (any, bool) {
	for _, e := range d {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

// Id returns the hex form of the document's ObjectID, or "" when unset.
func (d Document) Id() string {
	v, _ := d.Get(IdField)
	if oid, ok := v.(primitive.ObjectID); ok {
		return oid.Hex()
	}
	return ""
}

// Without returns a copy of d minus the given keys.
func (d Document) Without(keys ...string) Document {
	out := make(Document, 0, len(d))
	for _, e := range d {
		if !slices.Contains(keys, e.Key) {
			out = append(out, e)
		}
	}
	return out
}

func (d Document) Map() map[string]any {
	m := make(map[string]any, len(d))
	for _, e := range d {
		m[e.Key] = e.Value
	}
	return m
}

func (d Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := writeFields(&buf, primitive.D(d), true); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeFields(buf *bytes.Buffer, d primitive.D, top bool) error {
	buf.WriteByte('{')
	for i, e := range d {
		if i > 0 {
			buf.WriteByte(',')
		}
		key := e.Key
		if top && key == IdField {
			key = "id"
		}
		if err := writeJSON(buf, key); err != nil {
			return err
		}
		buf.WriteByte(':')
		if err := writeValue(buf, e.Value); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

func writeMap(buf *bytes.Buffer, m map[string]any) error {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	d := make(primitive.D, 0, len(m))
	for _, k := range keys {
		d = append(d, primitive.E{Key: k, Value: m[k]})
	}
	return writeFields(buf, d, false)
}

func writeArray(buf *bytes.Buffer, a []any) error {
	buf.WriteByte('[')
	for i, v := range a {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeValue(buf, v); err != nil {
			return err
		}
	}
	buf.WriteByte(']')
	return nil
}

func writeValue(buf *bytes.Buffer, v any) error {
	switch v := v.(type) {
	case nil, primitive.Null, primitive.Undefined:
		buf.WriteString("null")
	case primitive.D:
		return writeFields(buf, v, false)
	case Document:
		return writeFields(buf, primitive.D(v), false)
	case primitive.M:
		return writeMap(buf, map[string]any(v))
	case map[string]any:
		return writeMap(buf, v)
	case primitive.A:
		return writeArray(buf, []any(v))
	case []any:
		return writeArray(buf, v)
	case primitive.ObjectID:
		return writeJSON(buf, v.Hex())
	case primitive.DateTime:
		return writeJSON(buf, v.Time().UTC().Format(time.RFC3339Nano))
	case time.Time:
		return writeJSON(buf, v.UTC().Format(time.RFC3339Nano))
	case primitive.Decimal128:
		return writeJSON(buf, v.String())
	case float64:
		// JSON has no NaN or infinities
		if math.IsNaN(v) || math.IsInf(v, 0) {
			buf.WriteString("null")
			return nil
		}
		return writeJSON(buf, v)
	default:
		return writeJSON(buf, v)
	}
	return nil
}

func writeJSON(buf *bytes.Buffer, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}
