package domain

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ValueKind tags the variant held by a FieldValue.
type ValueKind uint8

const (
	KindText ValueKind = iota + 1
	KindNumber
	KindDate
	KindBoolean
)

func (k ValueKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	case KindDate:
		return "date"
	case KindBoolean:
		return "boolean"
	default:
		return "invalid"
	}
}

// FieldValue is a typed custom field value: exactly one of text, number,
// date or boolean. The zero FieldValue holds nothing.
type FieldValue struct {
	kind    ValueKind
	text    string
	number  decimal.Decimal
	date    time.Time
	boolean bool
}

func TextValue(s string) FieldValue            { return FieldValue{kind: KindText, text: s} }
func NumberValue(d decimal.Decimal) FieldValue { return FieldValue{kind: KindNumber, number: d} }
func DateValue(t time.Time) FieldValue         { return FieldValue{kind: KindDate, date: t} }
func BoolValue(b bool) FieldValue              { return FieldValue{kind: KindBoolean, boolean: b} }

// Kind returns the variant tag; zero for an empty value.
func (v FieldValue) Kind() ValueKind { return v.kind }

// IsZero reports whether v holds no value.
func (v FieldValue) IsZero() bool { return v.kind == 0 }

func (v FieldValue) Text() (string, bool)            { return v.text, v.kind == KindText }
func (v FieldValue) Number() (decimal.Decimal, bool) { return v.number, v.kind == KindNumber }
func (v FieldValue) Date() (time.Time, bool)         { return v.date, v.kind == KindDate }
func (v FieldValue) Bool() (bool, bool)              { return v.boolean, v.kind == KindBoolean }

// Interface returns the underlying Go value for display and export.
func (v FieldValue) Interface() interface{} {
	switch v.kind {
	case KindText:
		return v.text
	case KindNumber:
		return v.number
	case KindDate:
		return v.date
	case KindBoolean:
		return v.boolean
	default:
		return nil
	}
}

func (v FieldValue) String() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindNumber:
		return v.number.String()
	case KindDate:
		return v.date.Format(time.RFC3339Nano)
	case KindBoolean:
		if v.boolean {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}

// Equal compares kind and payload.
func (v FieldValue) Equal(o FieldValue) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindText:
		return v.text == o.text
	case KindNumber:
		return v.number.Equal(o.number)
	case KindDate:
		return v.date.Equal(o.date)
	case KindBoolean:
		return v.boolean == o.boolean
	default:
		return true
	}
}

// MarshalJSON encodes text as a string, number as a bare JSON number, date
// as an RFC 3339 string and boolean as a JSON bool.
func (v FieldValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindText:
		return json.Marshal(v.text)
	case KindNumber:
		return []byte(v.number.String()), nil
	case KindDate:
		return json.Marshal(v.date.Format(time.RFC3339Nano))
	case KindBoolean:
		return json.Marshal(v.boolean)
	default:
		return []byte("null"), nil
	}
}

var trueWords = map[string]bool{"true": true, "1": true, "yes": true, "on": true}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseISODate parses the ISO-8601 forms accepted for date fields. Values
// without a zone are taken as UTC.
func ParseISODate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%q is not an ISO-8601 date", s)
}

// CoerceFieldValue converts submitted text into the typed value for t.
// Callers treat an empty raw string as "unset" before calling.
func CoerceFieldValue(t FieldType, raw string) (FieldValue, error) {
	switch t {
	case FieldTypeText, FieldTypeSelect:
		return TextValue(raw), nil
	case FieldTypeNumber:
		n, err := decimal.NewFromString(strings.TrimSpace(raw))
		if err != nil {
			return FieldValue{}, fmt.Errorf("%w: %q is not a number", ErrTypeCoercion, raw)
		}
		return NumberValue(n), nil
	case FieldTypeBoolean:
		return BoolValue(trueWords[strings.ToLower(strings.TrimSpace(raw))]), nil
	case FieldTypeDate:
		d, err := ParseISODate(raw)
		if err != nil {
			return FieldValue{}, fmt.Errorf("%w: %v", ErrTypeCoercion, err)
		}
		return DateValue(d), nil
	default:
		return FieldValue{}, fmt.Errorf("%w: %q", ErrInvalidFieldType, t)
	}
}

// DecodeFieldValue reads a stored JSON value as type t. JSON null decodes to
// the zero FieldValue.
func DecodeFieldValue(raw json.RawMessage, t FieldType) (FieldValue, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return FieldValue{}, nil
	}
	switch t {
	case FieldTypeText, FieldTypeSelect:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			// Pre-typed rows may hold numbers or bools under a text field.
			return TextValue(string(raw)), nil
		}
		return TextValue(s), nil
	case FieldTypeNumber:
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return CoerceFieldValue(t, s)
		}
		n, err := decimal.NewFromString(string(raw))
		if err != nil {
			return FieldValue{}, fmt.Errorf("%w: stored %s is not a number", ErrTypeCoercion, raw)
		}
		return NumberValue(n), nil
	case FieldTypeBoolean:
		var b bool
		if err := json.Unmarshal(raw, &b); err == nil {
			return BoolValue(b), nil
		}
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return FieldValue{}, fmt.Errorf("%w: stored %s is not a boolean", ErrTypeCoercion, raw)
		}
		return CoerceFieldValue(t, s)
	case FieldTypeDate:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return FieldValue{}, fmt.Errorf("%w: stored %s is not a date", ErrTypeCoercion, raw)
		}
		return CoerceFieldValue(t, s)
	default:
		return FieldValue{}, fmt.Errorf("%w: %q", ErrInvalidFieldType, t)
	}
}

// InferFieldValue decodes a stored value with no live definition by its JSON
// shape: strings as text, numbers as number, bools as boolean.
func InferFieldValue(raw json.RawMessage) (FieldValue, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return FieldValue{}, nil
	}
	switch raw[0] {
	case 'n':
		return FieldValue{}, nil
	case '"':
		return DecodeFieldValue(raw, FieldTypeText)
	case 't', 'f':
		return DecodeFieldValue(raw, FieldTypeBoolean)
	case '{', '[':
		return TextValue(string(raw)), nil
	default:
		return DecodeFieldValue(raw, FieldTypeNumber)
	}
}

// FieldValues is the custom_fields JSONB mapping of one entity, keyed by field
// name. Values stay raw until read against a definition.
type FieldValues map[string]json.RawMessage

// Set stores v under name; the zero FieldValue removes the key.
func (fv FieldValues) Set(name string, v FieldValue) error {
	if v.IsZero() {
		delete(fv, name)
		return nil
	}
	b, err := v.MarshalJSON()
	if err != nil {
		return err
	}
	fv[name] = b
	return nil
}

// Has reports whether name holds a non-null value.
func (fv FieldValues) Has(name string) bool {
	raw, ok := fv[name]
	return ok && !bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// Clone returns a shallow copy safe to mutate.
func (fv FieldValues) Clone() FieldValues {
	out := make(FieldValues, len(fv))
	for k, v := range fv {
		out[k] = v
	}
	return out
}

// Value implements driver.Valuer.
func (fv FieldValues) Value() (driver.Value, error) {
	if fv == nil {
		return "{}", nil
	}
	b, err := json.Marshal(map[string]json.RawMessage(fv))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner. NULL scans to an empty mapping.
func (fv *FieldValues) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*fv = FieldValues{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("FieldValues.Scan: unsupported type %T", src)
	}
	out := FieldValues{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("FieldValues.Scan: %w", err)
	}
	if out == nil {
		out = FieldValues{}
	}
	*fv = out
	return nil
}
