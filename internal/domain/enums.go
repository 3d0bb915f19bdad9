package domain

import "strings"

// UserRole defines the role hierarchy.
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleManager UserRole = "manager"
	RoleUser    UserRole = "user"
)

// FieldType is the value type of a custom field.
type FieldType string

const (
	FieldTypeText    FieldType = "text"
	FieldTypeNumber  FieldType = "number"
	FieldTypeDate    FieldType = "date"
	FieldTypeBoolean FieldType = "boolean"
	FieldTypeSelect  FieldType = "select"
)

// ParseFieldType validates a field type tag.
func ParseFieldType(s string) (FieldType, error) {
	switch t := FieldType(strings.ToLower(strings.TrimSpace(s))); t {
	case FieldTypeText, FieldTypeNumber, FieldTypeDate, FieldTypeBoolean, FieldTypeSelect:
		return t, nil
	default:
		return "", ErrInvalidFieldType
	}
}

// EntityType identifies which kind of record a custom field belongs to.
type EntityType string

const (
	EntityProduct  EntityType = "product"
	EntityCustomer EntityType = "customer"
	EntityCompany  EntityType = "company"
	EntityCategory EntityType = "category"
	EntityUser     EntityType = "user"
	EntityBill     EntityType = "bill"
	EntityBillItem EntityType = "bill_item"
)

// entityTables maps each known entity type to the table holding its
// custom_fields column.
var entityTables = map[EntityType]string{
	EntityProduct:  "products",
	EntityCustomer: "customers",
	EntityCompany:  "companies",
	EntityCategory: "categories",
	EntityUser:     "users",
	EntityBill:     "bills",
	EntityBillItem: "bill_items",
}

// EntityTypes lists the known entity types in a stable order.
var EntityTypes = []EntityType{
	EntityProduct, EntityCustomer, EntityCompany, EntityCategory, EntityUser, EntityBill, EntityBillItem,
}

// Known reports whether t is a registered entity type.
func (t EntityType) Known() bool {
	_, ok := entityTables[t]
	return ok
}

// Table returns the table backing the entity type, or "" if unknown.
func (t EntityType) Table() string {
	return entityTables[t]
}

// ChangeType is the kind of change recorded in field definition history.
type ChangeType string

const (
	ChangeCreate ChangeType = "create"
	ChangeUpdate ChangeType = "update"
	ChangeDelete ChangeType = "delete"
)

// FieldState is the lifecycle state of a field definition.
type FieldState string

const (
	FieldStateEnabled  FieldState = "active-enabled"
	FieldStateDisabled FieldState = "active-disabled"
)
