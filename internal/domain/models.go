package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FieldDefinition describes an admin-defined custom attribute of an entity type.
// (EntityType, FieldName) is unique and immutable after creation.
type FieldDefinition struct {
	ID                uuid.UUID  `db:"id" json:"id"`
	EntityType        EntityType `db:"entity_type" json:"entity_type"`
	FieldName         string     `db:"field_name" json:"field_name"`
	DisplayName       string     `db:"display_name" json:"display_name"`
	FieldType         FieldType  `db:"field_type" json:"field_type"`
	Required          bool       `db:"required" json:"required"`
	Searchable        bool       `db:"searchable" json:"searchable"`
	Enabled           bool       `db:"enabled" json:"enabled"`
	FieldOrder        int        `db:"field_order" json:"field_order"`
	Options           StringList `db:"options" json:"options"`
	DefaultValue      *string    `db:"default_value" json:"default_value"`
	ValidationPattern *string    `db:"validation_pattern" json:"validation_pattern"`
	HelpText          *string    `db:"help_text" json:"help_text"`
	CreatedAt         time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time  `db:"updated_at" json:"updated_at"`
}

// State returns the lifecycle state of a live definition.
func (f *FieldDefinition) State() FieldState {
	if f.Enabled {
		return FieldStateEnabled
	}
	return FieldStateDisabled
}

// Snapshot captures every attribute for history records.
func (f *FieldDefinition) Snapshot() FieldSnapshot {
	s := f.MutableSnapshot()
	s.EntityType = f.EntityType
	s.FieldName = f.FieldName
	return s
}

// MutableSnapshot captures the attributes an update may change.
func (f *FieldDefinition) MutableSnapshot() FieldSnapshot {
	var opts []string
	if len(f.Options) > 0 {
		opts = append([]string(nil), f.Options...)
	}
	return FieldSnapshot{
		DisplayName:       f.DisplayName,
		FieldType:         f.FieldType,
		Required:          f.Required,
		Searchable:        f.Searchable,
		Enabled:           f.Enabled,
		FieldOrder:        f.FieldOrder,
		Options:           opts,
		DefaultValue:      f.DefaultValue,
		ValidationPattern: f.ValidationPattern,
		HelpText:          f.HelpText,
	}
}

// FieldSnapshot is the JSON shape stored in history old/new values.
type FieldSnapshot struct {
	EntityType        EntityType `json:"entity_type,omitempty"`
	FieldName         string     `json:"field_name,omitempty"`
	DisplayName       string     `json:"display_name"`
	FieldType         FieldType  `json:"field_type"`
	Required          bool       `json:"required"`
	Searchable        bool       `json:"searchable"`
	Enabled           bool       `json:"enabled"`
	FieldOrder        int        `json:"field_order"`
	Options           []string   `json:"options"`
	DefaultValue      *string    `json:"default_value"`
	ValidationPattern *string    `json:"validation_pattern"`
	HelpText          *string    `json:"help_text"`
}

// FieldDefinitionHistory is one audit record of a definition change.
// OldValues is nil for creates, NewValues is nil for deletes.
type FieldDefinitionHistory struct {
	ID                uuid.UUID  `db:"id" json:"id"`
	FieldDefinitionID uuid.UUID  `db:"field_definition_id" json:"field_definition_id"`
	ChangeType        ChangeType `db:"change_type" json:"change_type"`
	ChangedBy         *int64     `db:"changed_by" json:"changed_by"`
	OldValues         NullJSON   `db:"old_values" json:"old_values"`
	NewValues         NullJSON   `db:"new_values" json:"new_values"`
	ChangedAt         time.Time  `db:"changed_at" json:"changed_at"`
}

// LegacyFieldValue is a row of the normalized field_data table that predates
// the custom_fields JSON column. At most one Value* column is set.
type LegacyFieldValue struct {
	ID                int64               `db:"id"`
	FieldDefinitionID uuid.UUID           `db:"field_definition_id"`
	EntityID          int64               `db:"entity_id"`
	ValueText         *string             `db:"value_text"`
	ValueNumber       decimal.NullDecimal `db:"value_number"`
	ValueDate         *time.Time          `db:"value_date"`
	ValueBoolean      *bool               `db:"value_boolean"`
}

// Company is the seller record. Its state code decides intra- vs inter-state supply.
type Company struct {
	ID        int64       `db:"id" json:"id"`
	Name      string      `db:"name" json:"name"`
	Address   string      `db:"address" json:"address"`
	GSTNumber string      `db:"gst_number" json:"gst_number"`
	StateCode string      `db:"state_code" json:"state_code"`
	Custom    FieldValues `db:"custom_fields" json:"custom_fields"`
	CreatedAt time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt time.Time   `db:"updated_at" json:"updated_at"`
}

// Customer is the buyer record. Guests may have no state code.
type Customer struct {
	ID        int64       `db:"id" json:"id"`
	Name      string      `db:"name" json:"name"`
	Email     *string     `db:"email" json:"email"`
	GSTNumber *string     `db:"gst_number" json:"gst_number"`
	StateCode *string     `db:"state_code" json:"state_code"`
	IsGuest   bool        `db:"is_guest" json:"is_guest"`
	Custom    FieldValues `db:"custom_fields" json:"custom_fields"`
	CreatedAt time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt time.Time   `db:"updated_at" json:"updated_at"`
}

// StringList is a JSONB-backed ordered list of strings.
type StringList []string

// Value implements driver.Valuer. An empty list is stored as NULL.
func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return nil, nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("StringList.Scan: unsupported type %T", src)
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("StringList.Scan: %w", err)
	}
	*l = out
	return nil
}

// NullJSON is a nullable JSONB document. An empty value is stored as NULL and
// encodes as JSON null.
type NullJSON []byte

// NewNullJSON marshals v into a NullJSON.
func NewNullJSON(v interface{}) (NullJSON, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return NullJSON(b), nil
}

// MarshalJSON implements json.Marshaler.
func (j NullJSON) MarshalJSON() ([]byte, error) {
	if len(j) == 0 {
		return []byte("null"), nil
	}
	return j, nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (j *NullJSON) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*j = nil
		return nil
	}
	*j = append((*j)[:0], b...)
	return nil
}

// Value implements driver.Valuer.
func (j NullJSON) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return string(j), nil
}

// Scan implements sql.Scanner.
func (j *NullJSON) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*j = nil
	case []byte:
		*j = append(NullJSON(nil), v...)
	case string:
		*j = NullJSON(v)
	default:
		return fmt.Errorf("NullJSON.Scan: unsupported type %T", src)
	}
	return nil
}
