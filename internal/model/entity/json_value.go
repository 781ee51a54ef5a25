package entity

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

type JSONKind int

const (
	JSONNull JSONKind = iota
	JSONObject
	JSONArray
	JSONString
	JSONNumber
	JSONBool
)

func (k JSONKind) String() string {
	switch k {
	case JSONObject:
		return "object"
	case JSONArray:
		return "array"
	case JSONString:
		return "string"
	case JSONNumber:
		return "number"
	case JSONBool:
		return "boolean"
	default:
		return "null"
	}
}

// JSONValue is an optional JSON document. The zero value (and the literal null)
// is absent and maps to SQL NULL.
type JSONValue struct {
	raw json.RawMessage
}

var nullLiteral = []byte("null")

// NewJSONValue marshals v. A nil v yields the absent value.
func NewJSONValue(v any) (JSONValue, error) {
	if v == nil {
		return JSONValue{}, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return JSONValue{}, err
	}
	return RawJSONValue(b), nil
}

// RawJSONValue wraps already-encoded JSON. Invalid or empty input yields the absent value.
func RawJSONValue(b []byte) JSONValue {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, nullLiteral) || !json.Valid(b) {
		return JSONValue{}
	}
	return JSONValue{raw: append(json.RawMessage(nil), b...)}
}

// MustJSONValue is NewJSONValue for values that always marshal.
func MustJSONValue(v any) JSONValue {
	jv, err := NewJSONValue(v)
	if err != nil {
		panic(err)
	}
	return jv
}

func (j JSONValue) IsNull() bool {
	return len(j.raw) == 0
}

func (j JSONValue) Kind() JSONKind {
	if j.IsNull() {
		return JSONNull
	}
	switch j.raw[0] {
	case '{':
		return JSONObject
	case '[':
		return JSONArray
	case '"':
		return JSONString
	case 't', 'f':
		return JSONBool
	default:
		return JSONNumber
	}
}

// Raw returns the encoded document, or nil when absent.
func (j JSONValue) Raw() json.RawMessage {
	if j.IsNull() {
		return nil
	}
	return j.raw
}

// Decode unmarshals the document into out. Absent values leave out untouched.
func (j JSONValue) Decode(out any) error {
	if j.IsNull() {
		return nil
	}
	return json.Unmarshal(j.raw, out)
}

func (j JSONValue) MarshalJSON() ([]byte, error) {
	if j.IsNull() {
		return nullLiteral, nil
	}
	return j.raw, nil
}

func (j *JSONValue) UnmarshalJSON(b []byte) error {
	if !json.Valid(b) {
		return errors.New("invalid JSON document")
	}
	*j = RawJSONValue(b)
	return nil
}

func (j JSONValue) Value() (driver.Value, error) {
	if j.IsNull() {
		return nil, nil
	}
	return string(j.raw), nil
}

func (j *JSONValue) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*j = JSONValue{}
	case []byte:
		*j = RawJSONValue(v)
	case string:
		*j = RawJSONValue([]byte(v))
	default:
		return fmt.Errorf("cannot scan %T into JSONValue", value)
	}
	return nil
}

func (JSONValue) GormDataType() string {
	return "json"
}

func (JSONValue) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	switch db.Dialector.Name() {
	case "postgres":
		return "JSONB"
	case "sqlserver":
		return "NVARCHAR(MAX)"
	default:
		return "JSON"
	}
}
