package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"gstbill/internal/domain"
	"gstbill/internal/port"
)

const (
	maxFieldNameLength     = 50
	defaultMigrateBatch    = 500
	maxDisplayNameLength   = 200
	maxSelectOptionsLength = 200
)

var fieldNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// DefineFieldInput is the DTO for creating a field definition.
type DefineFieldInput struct {
	EntityType        string   `json:"entity_type" binding:"required"`
	FieldName         string   `json:"field_name" binding:"required"`
	DisplayName       string   `json:"display_name" binding:"required"`
	FieldType         string   `json:"field_type" binding:"required"`
	Required          bool     `json:"required"`
	Searchable        bool     `json:"searchable"`
	Enabled           *bool    `json:"enabled"`
	FieldOrder        int      `json:"field_order"`
	Options           []string `json:"options"`
	DefaultValue      *string  `json:"default_value"`
	ValidationPattern *string  `json:"validation_pattern"`
	HelpText          *string  `json:"help_text"`
	ActorID           *int64   `json:"-"`
}

// UpdateFieldInput is the DTO for a partial definition update. Nil fields are
// left unchanged; an empty string clears an optional text attribute.
type UpdateFieldInput struct {
	DisplayName       *string  `json:"display_name"`
	FieldType         *string  `json:"field_type"`
	Required          *bool    `json:"required"`
	Searchable        *bool    `json:"searchable"`
	Enabled           *bool    `json:"enabled"`
	FieldOrder        *int     `json:"field_order"`
	Options           []string `json:"options"`
	DefaultValue      *string  `json:"default_value"`
	ValidationPattern *string  `json:"validation_pattern"`
	HelpText          *string  `json:"help_text"`
}

// FieldService defines the dynamic field store contract.
type FieldService interface {
	DefineField(ctx context.Context, input DefineFieldInput) (*domain.FieldDefinition, error)
	UpdateField(ctx context.Context, fieldID uuid.UUID, input UpdateFieldInput, actorID *int64) (*domain.FieldDefinition, error)
	ToggleField(ctx context.Context, fieldID uuid.UUID, actorID *int64) (*domain.FieldDefinition, error)
	ReorderFields(ctx context.Context, entityType domain.EntityType, fieldIDs []uuid.UUID, actorID *int64) ([]domain.FieldDefinition, error)
	DeleteField(ctx context.Context, fieldID uuid.UUID, actorID *int64) error
	GetField(ctx context.Context, fieldID uuid.UUID) (*domain.FieldDefinition, error)
	ListFields(ctx context.Context, entityType domain.EntityType, enabledOnly bool) ([]domain.FieldDefinition, error)
	ListHistory(ctx context.Context, fieldID uuid.UUID, offset, limit int) ([]domain.FieldDefinitionHistory, int, error)

	SetFieldValue(ctx context.Context, entityType domain.EntityType, entityID int64, fieldName, raw string) error
	SetFieldValues(ctx context.Context, entityType domain.EntityType, entityID int64, values map[string]string) error
	GetFieldValue(ctx context.Context, entityType domain.EntityType, entityID int64, fieldName string) (domain.FieldValue, bool, error)
	GetAllFieldValues(ctx context.Context, entityType domain.EntityType, entityID int64) (map[string]domain.FieldValue, error)

	MigrateLegacyValues(ctx context.Context) (int, error)
	SeedDefaults(ctx context.Context) (int, error)
}

type fieldService struct {
	store        port.FieldStore
	tx           port.Transactor
	logger       *zap.Logger
	migrateBatch int
}

// NewFieldService creates a new FieldService implementation. migrateBatch
// bounds how many legacy rows are read per query; zero selects the default.
func NewFieldService(store port.FieldStore, tx port.Transactor, logger *zap.Logger, migrateBatch int) FieldService {
	if migrateBatch <= 0 {
		migrateBatch = defaultMigrateBatch
	}
	return &fieldService{store: store, tx: tx, logger: logger, migrateBatch: migrateBatch}
}

func (s *fieldService) DefineField(ctx context.Context, input DefineFieldInput) (*domain.FieldDefinition, error) {
	entityType := domain.EntityType(strings.TrimSpace(input.EntityType))
	if !entityType.Known() {
		return nil, domain.NewFieldError(domain.ErrUnknownEntity, entityType, input.FieldName, "entity type is not registered")
	}
	name := strings.TrimSpace(input.FieldName)
	if err := validateFieldName(name); err != nil {
		return nil, domain.NewFieldError(err, entityType, name, "")
	}
	fieldType, err := domain.ParseFieldType(input.FieldType)
	if err != nil {
		return nil, domain.NewFieldError(err, entityType, name, fmt.Sprintf("%q", input.FieldType))
	}

	def := &domain.FieldDefinition{
		EntityType:        entityType,
		FieldName:         name,
		DisplayName:       strings.TrimSpace(input.DisplayName),
		FieldType:         fieldType,
		Required:          input.Required,
		Searchable:        input.Searchable,
		Enabled:           input.Enabled == nil || *input.Enabled,
		FieldOrder:        input.FieldOrder,
		Options:           input.Options,
		DefaultValue:      optionalText(input.DefaultValue),
		ValidationPattern: optionalText(input.ValidationPattern),
		HelpText:          optionalText(input.HelpText),
	}
	if err := normalizeDefinition(def); err != nil {
		return nil, err
	}

	err = s.tx.WithinTx(ctx, func(st port.FieldStore) error {
		if _, err := st.Definitions().GetByName(ctx, entityType, name); err == nil {
			return domain.NewFieldError(domain.ErrDuplicateField, entityType, name, "")
		} else if !errors.Is(err, domain.ErrFieldNotFound) {
			return err
		}
		if err := st.Definitions().Create(ctx, def); err != nil {
			if errors.Is(err, domain.ErrDuplicateField) {
				return domain.NewFieldError(domain.ErrDuplicateField, entityType, name, "")
			}
			return err
		}
		snap := def.Snapshot()
		s.recordHistory(ctx, st, def.ID, domain.ChangeCreate, input.ActorID, nil, &snap)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("field defined",
		zap.String("entity_type", string(def.EntityType)),
		zap.String("field_name", def.FieldName),
		zap.String("field_type", string(def.FieldType)),
		zap.Bool("enabled", def.Enabled))
	return def, nil
}

func (s *fieldService) UpdateField(ctx context.Context, fieldID uuid.UUID, input UpdateFieldInput, actorID *int64) (*domain.FieldDefinition, error) {
	return s.mutateField(ctx, fieldID, actorID, func(def *domain.FieldDefinition) error {
		if input.DisplayName != nil {
			def.DisplayName = strings.TrimSpace(*input.DisplayName)
		}
		if input.FieldType != nil {
			t, err := domain.ParseFieldType(*input.FieldType)
			if err != nil {
				return domain.NewFieldError(err, def.EntityType, def.FieldName, fmt.Sprintf("%q", *input.FieldType))
			}
			def.FieldType = t
		}
		if input.Required != nil {
			def.Required = *input.Required
		}
		if input.Searchable != nil {
			def.Searchable = *input.Searchable
		}
		if input.Enabled != nil {
			def.Enabled = *input.Enabled
		}
		if input.FieldOrder != nil {
			def.FieldOrder = *input.FieldOrder
		}
		if input.Options != nil {
			def.Options = input.Options
		}
		if input.DefaultValue != nil {
			def.DefaultValue = optionalText(input.DefaultValue)
		}
		if input.ValidationPattern != nil {
			def.ValidationPattern = optionalText(input.ValidationPattern)
		}
		if input.HelpText != nil {
			def.HelpText = optionalText(input.HelpText)
		}
		return nil
	})
}

func (s *fieldService) ToggleField(ctx context.Context, fieldID uuid.UUID, actorID *int64) (*domain.FieldDefinition, error) {
	return s.mutateField(ctx, fieldID, actorID, func(def *domain.FieldDefinition) error {
		def.Enabled = !def.Enabled
		return nil
	})
}

// mutateField applies fn to the stored definition and persists it with an
// update history entry, all in one unit of work. No-op changes write nothing.
func (s *fieldService) mutateField(ctx context.Context, fieldID uuid.UUID, actorID *int64, fn func(*domain.FieldDefinition) error) (*domain.FieldDefinition, error) {
	var updated *domain.FieldDefinition
	err := s.tx.WithinTx(ctx, func(st port.FieldStore) error {
		def, err := st.Definitions().GetByID(ctx, fieldID)
		if err != nil {
			return err
		}
		changed, err := s.applyUpdate(ctx, st, def, actorID, fn)
		if err != nil {
			return err
		}
		if changed {
			s.logger.Info("field updated",
				zap.String("entity_type", string(def.EntityType)),
				zap.String("field_name", def.FieldName),
				zap.String("state", string(def.State())))
		}
		updated = def
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *fieldService) applyUpdate(ctx context.Context, st port.FieldStore, def *domain.FieldDefinition, actorID *int64, fn func(*domain.FieldDefinition) error) (bool, error) {
	before := def.MutableSnapshot()
	if err := fn(def); err != nil {
		return false, err
	}
	if err := normalizeDefinition(def); err != nil {
		return false, err
	}
	after := def.MutableSnapshot()
	if reflect.DeepEqual(before, after) {
		return false, nil
	}
	if err := st.Definitions().Update(ctx, def); err != nil {
		return false, err
	}
	s.recordHistory(ctx, st, def.ID, domain.ChangeUpdate, actorID, &before, &after)
	return true, nil
}

func (s *fieldService) ReorderFields(ctx context.Context, entityType domain.EntityType, fieldIDs []uuid.UUID, actorID *int64) ([]domain.FieldDefinition, error) {
	if !entityType.Known() {
		return nil, domain.NewFieldError(domain.ErrUnknownEntity, entityType, "", "entity type is not registered")
	}
	if len(lo.Uniq(fieldIDs)) != len(fieldIDs) {
		return nil, domain.NewFieldError(domain.ErrInvalidFieldDefinition, entityType, "", "field ids repeat")
	}

	var reordered []domain.FieldDefinition
	err := s.tx.WithinTx(ctx, func(st port.FieldStore) error {
		for i, id := range fieldIDs {
			def, err := st.Definitions().GetByID(ctx, id)
			if err != nil {
				return err
			}
			if def.EntityType != entityType {
				return domain.NewFieldError(domain.ErrFieldNotFound, entityType, def.FieldName,
					fmt.Sprintf("field belongs to %s", def.EntityType))
			}
			order := i
			if _, err := s.applyUpdate(ctx, st, def, actorID, func(d *domain.FieldDefinition) error {
				d.FieldOrder = order
				return nil
			}); err != nil {
				return err
			}
		}
		defs, err := st.Definitions().List(ctx, entityType, false)
		if err != nil {
			return err
		}
		reordered = defs
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reordered, nil
}

func (s *fieldService) DeleteField(ctx context.Context, fieldID uuid.UUID, actorID *int64) error {
	var (
		def     *domain.FieldDefinition
		removed int64
	)
	err := s.tx.WithinTx(ctx, func(st port.FieldStore) error {
		var err error
		def, err = st.Definitions().GetByID(ctx, fieldID)
		if err != nil {
			return err
		}
		removed, err = st.Entities().RemoveKey(ctx, def.EntityType, def.FieldName)
		if err != nil {
			return err
		}
		if err := st.Definitions().Delete(ctx, def.ID); err != nil {
			return err
		}
		snap := def.Snapshot()
		s.recordHistory(ctx, st, def.ID, domain.ChangeDelete, actorID, &snap, nil)
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("field deleted",
		zap.String("entity_type", string(def.EntityType)),
		zap.String("field_name", def.FieldName),
		zap.Int64("values_removed", removed))
	return nil
}

func (s *fieldService) GetField(ctx context.Context, fieldID uuid.UUID) (*domain.FieldDefinition, error) {
	return s.store.Definitions().GetByID(ctx, fieldID)
}

func (s *fieldService) ListFields(ctx context.Context, entityType domain.EntityType, enabledOnly bool) ([]domain.FieldDefinition, error) {
	if !entityType.Known() {
		return nil, domain.NewFieldError(domain.ErrUnknownEntity, entityType, "", "entity type is not registered")
	}
	return s.store.Definitions().List(ctx, entityType, enabledOnly)
}

func (s *fieldService) ListHistory(ctx context.Context, fieldID uuid.UUID, offset, limit int) ([]domain.FieldDefinitionHistory, int, error) {
	return s.store.History().ListByField(ctx, fieldID, offset, limit)
}

// recordHistory appends an audit entry. History is best-effort: a failed
// append is logged and the surrounding change still commits.
func (s *fieldService) recordHistory(ctx context.Context, st port.FieldStore, fieldID uuid.UUID, change domain.ChangeType, actorID *int64, before, after *domain.FieldSnapshot) {
	entry := &domain.FieldDefinitionHistory{
		FieldDefinitionID: fieldID,
		ChangeType:        change,
		ChangedBy:         actorID,
	}
	var err error
	if before != nil {
		if entry.OldValues, err = domain.NewNullJSON(before); err != nil {
			s.logger.Warn("field history snapshot failed", zap.String("field_id", fieldID.String()), zap.Error(err))
			return
		}
	}
	if after != nil {
		if entry.NewValues, err = domain.NewNullJSON(after); err != nil {
			s.logger.Warn("field history snapshot failed", zap.String("field_id", fieldID.String()), zap.Error(err))
			return
		}
	}
	if err := st.History().Append(ctx, entry); err != nil {
		s.logger.Warn("field history append failed",
			zap.String("field_id", fieldID.String()),
			zap.String("change_type", string(change)),
			zap.Error(err))
	}
}

func (s *fieldService) SetFieldValue(ctx context.Context, entityType domain.EntityType, entityID int64, fieldName, raw string) error {
	return s.SetFieldValues(ctx, entityType, entityID, map[string]string{fieldName: raw})
}

func (s *fieldService) SetFieldValues(ctx context.Context, entityType domain.EntityType, entityID int64, values map[string]string) error {
	if !entityType.Known() {
		return domain.NewFieldError(domain.ErrUnknownEntity, entityType, "", "entity type is not registered")
	}
	names := lo.Keys(values)
	sort.Strings(names)

	return s.tx.WithinTx(ctx, func(st port.FieldStore) error {
		defs := make(map[string]*domain.FieldDefinition, len(names))
		for _, name := range names {
			def, err := st.Definitions().GetByName(ctx, entityType, name)
			if err != nil {
				if errors.Is(err, domain.ErrFieldNotFound) {
					return domain.NewFieldError(domain.ErrUnknownField, entityType, name, "")
				}
				return err
			}
			if !def.Enabled {
				return domain.NewFieldError(domain.ErrUnknownField, entityType, name, "field is disabled")
			}
			defs[name] = def
		}

		current, err := st.Entities().Load(ctx, entityType, entityID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.NewFieldError(domain.ErrUnknownEntity, entityType, "", fmt.Sprintf("entity %d does not exist", entityID))
			}
			return err
		}

		next := current.Clone()
		for _, name := range names {
			def := defs[name]
			raw := values[name]
			if raw == "" {
				delete(next, name)
				continue
			}
			v, err := coerceForDefinition(def, raw)
			if err != nil {
				return err
			}
			if err := next.Set(name, v); err != nil {
				return fmt.Errorf("fieldService.SetFieldValues: %w", err)
			}
		}

		return st.Entities().Save(ctx, entityType, entityID, next)
	})
}

func (s *fieldService) GetFieldValue(ctx context.Context, entityType domain.EntityType, entityID int64, fieldName string) (domain.FieldValue, bool, error) {
	values, err := s.loadValues(ctx, entityType, entityID)
	if err != nil {
		return domain.FieldValue{}, false, err
	}
	if !values.Has(fieldName) {
		return domain.FieldValue{}, false, nil
	}

	var def *domain.FieldDefinition
	def, err = s.store.Definitions().GetByName(ctx, entityType, fieldName)
	if err != nil && !errors.Is(err, domain.ErrFieldNotFound) {
		return domain.FieldValue{}, false, err
	}
	v, err := s.decodeStored(def, fieldName, values[fieldName])
	if err != nil {
		return domain.FieldValue{}, false, err
	}
	return v, !v.IsZero(), nil
}

func (s *fieldService) GetAllFieldValues(ctx context.Context, entityType domain.EntityType, entityID int64) (map[string]domain.FieldValue, error) {
	values, err := s.loadValues(ctx, entityType, entityID)
	if err != nil {
		return nil, err
	}
	defs, err := s.store.Definitions().List(ctx, entityType, false)
	if err != nil {
		return nil, err
	}
	byName := lo.KeyBy(defs, func(d domain.FieldDefinition) string { return d.FieldName })

	out := make(map[string]domain.FieldValue, len(values))
	for name, raw := range values {
		var def *domain.FieldDefinition
		if d, ok := byName[name]; ok {
			def = &d
		}
		v, err := s.decodeStored(def, name, raw)
		if err != nil {
			return nil, err
		}
		if !v.IsZero() {
			out[name] = v
		}
	}
	return out, nil
}

func (s *fieldService) loadValues(ctx context.Context, entityType domain.EntityType, entityID int64) (domain.FieldValues, error) {
	if !entityType.Known() {
		return nil, domain.NewFieldError(domain.ErrUnknownEntity, entityType, "", "entity type is not registered")
	}
	values, err := s.store.Entities().Load(ctx, entityType, entityID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewFieldError(domain.ErrUnknownEntity, entityType, "", fmt.Sprintf("entity %d does not exist", entityID))
		}
		return nil, err
	}
	return values, nil
}

// decodeStored types a stored value via its definition. Keys without a
// definition, and values written before a type change, decode by JSON shape.
func (s *fieldService) decodeStored(def *domain.FieldDefinition, name string, raw []byte) (domain.FieldValue, error) {
	if def == nil {
		return domain.InferFieldValue(raw)
	}
	v, err := domain.DecodeFieldValue(raw, def.FieldType)
	if err != nil && errors.Is(err, domain.ErrTypeCoercion) {
		s.logger.Debug("stored value does not match field type",
			zap.String("field_name", name),
			zap.String("field_type", string(def.FieldType)))
		return domain.InferFieldValue(raw)
	}
	return v, err
}

// defaultField is a field definition created by SeedDefaults.
type defaultField struct {
	entityType  domain.EntityType
	name        string
	displayName string
	fieldType   domain.FieldType
	order       int
	enabled     bool
	helpText    string
}

var defaultFields = []defaultField{
	{domain.EntityProduct, "serial_number", "Serial Number", domain.FieldTypeText, 1, true, "Product serial number or SKU"},
	{domain.EntityProduct, "width", "Width (cm)", domain.FieldTypeNumber, 2, true, "Product width in centimeters"},
	{domain.EntityProduct, "length", "Length (cm)", domain.FieldTypeNumber, 3, true, "Product length in centimeters"},
	{domain.EntityProduct, "height", "Height (cm)", domain.FieldTypeNumber, 4, true, "Product height in centimeters"},
	{domain.EntityProduct, "weight", "Weight (kg)", domain.FieldTypeNumber, 5, true, "Product weight in kilograms"},
	{domain.EntityProduct, "color", "Color", domain.FieldTypeText, 6, false, "Product color"},
	{domain.EntityProduct, "material", "Material", domain.FieldTypeText, 7, false, "Product material"},
	{domain.EntityCustomer, "website", "Website", domain.FieldTypeText, 1, false, ""},
	{domain.EntityCustomer, "notes", "Notes", domain.FieldTypeText, 2, false, ""},
}

func (s *fieldService) SeedDefaults(ctx context.Context) (int, error) {
	created := 0
	for _, f := range defaultFields {
		_, err := s.store.Definitions().GetByName(ctx, f.entityType, f.name)
		if err == nil {
			continue
		}
		if !errors.Is(err, domain.ErrFieldNotFound) {
			return created, err
		}

		enabled := f.enabled
		input := DefineFieldInput{
			EntityType:  string(f.entityType),
			FieldName:   f.name,
			DisplayName: f.displayName,
			FieldType:   string(f.fieldType),
			Enabled:     &enabled,
			FieldOrder:  f.order,
		}
		if f.helpText != "" {
			help := f.helpText
			input.HelpText = &help
		}
		if _, err := s.DefineField(ctx, input); err != nil {
			if errors.Is(err, domain.ErrDuplicateField) {
				continue
			}
			return created, err
		}
		created++
	}
	return created, nil
}

type entityKey struct {
	entityType domain.EntityType
	entityID   int64
}

func (s *fieldService) MigrateLegacyValues(ctx context.Context) (int, error) {
	defs := map[uuid.UUID]*domain.FieldDefinition{}
	missing := map[uuid.UUID]bool{}
	migrated := 0
	var after int64

	for {
		rows, err := s.store.Legacy().ListAfter(ctx, after, s.migrateBatch)
		if err != nil {
			return migrated, err
		}
		if len(rows) == 0 {
			break
		}
		after = rows[len(rows)-1].ID

		pending := map[entityKey]map[string]domain.FieldValue{}
		var order []entityKey
		for i := range rows {
			row := &rows[i]
			def, ok := defs[row.FieldDefinitionID]
			if !ok && !missing[row.FieldDefinitionID] {
				def, err = s.store.Definitions().GetByID(ctx, row.FieldDefinitionID)
				if err != nil {
					if !errors.Is(err, domain.ErrFieldNotFound) {
						return migrated, err
					}
					missing[row.FieldDefinitionID] = true
				} else {
					defs[row.FieldDefinitionID] = def
					ok = true
				}
			}
			if !ok {
				s.logger.Warn("legacy value skipped: definition missing",
					zap.Int64("row_id", row.ID),
					zap.String("field_definition_id", row.FieldDefinitionID.String()))
				continue
			}

			v, err := legacyValue(row, def.FieldType)
			if err != nil {
				s.logger.Warn("legacy value skipped: not coercible",
					zap.Int64("row_id", row.ID),
					zap.String("field_name", def.FieldName),
					zap.Error(err))
				continue
			}
			if v.IsZero() {
				continue
			}

			key := entityKey{def.EntityType, row.EntityID}
			if _, seen := pending[key]; !seen {
				pending[key] = map[string]domain.FieldValue{}
				order = append(order, key)
			}
			pending[key][def.FieldName] = v
		}

		for _, key := range order {
			n, err := s.mergeLegacy(ctx, key, pending[key])
			if err != nil {
				return migrated, err
			}
			migrated += n
		}

		if len(rows) < s.migrateBatch {
			break
		}
	}

	s.logger.Info("legacy field values migrated", zap.Int("count", migrated))
	return migrated, nil
}

func (s *fieldService) mergeLegacy(ctx context.Context, key entityKey, values map[string]domain.FieldValue) (int, error) {
	n := 0
	err := s.tx.WithinTx(ctx, func(st port.FieldStore) error {
		current, err := st.Entities().Load(ctx, key.entityType, key.entityID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				s.logger.Warn("legacy values skipped: entity missing",
					zap.String("entity_type", string(key.entityType)),
					zap.Int64("entity_id", key.entityID))
				return nil
			}
			return err
		}
		next := current.Clone()
		for name, v := range values {
			if err := next.Set(name, v); err != nil {
				return err
			}
		}
		if err := st.Entities().Save(ctx, key.entityType, key.entityID, next); err != nil {
			return err
		}
		n = len(values)
		return nil
	})
	return n, err
}

// legacyValue reads the column matching the declared type. A value stored in
// another column is coerced from its text form. Empty text counts as unset.
func legacyValue(row *domain.LegacyFieldValue, t domain.FieldType) (domain.FieldValue, error) {
	switch t {
	case domain.FieldTypeText, domain.FieldTypeSelect:
		if row.ValueText != nil && *row.ValueText != "" {
			return domain.TextValue(*row.ValueText), nil
		}
	case domain.FieldTypeNumber:
		if row.ValueNumber.Valid {
			return domain.NumberValue(row.ValueNumber.Decimal), nil
		}
	case domain.FieldTypeDate:
		if row.ValueDate != nil {
			return domain.DateValue(*row.ValueDate), nil
		}
	case domain.FieldTypeBoolean:
		if row.ValueBoolean != nil {
			return domain.BoolValue(*row.ValueBoolean), nil
		}
	default:
		return domain.FieldValue{}, fmt.Errorf("%w: %q", domain.ErrInvalidFieldType, t)
	}

	var text string
	switch {
	case row.ValueText != nil && *row.ValueText != "":
		text = *row.ValueText
	case row.ValueNumber.Valid:
		text = row.ValueNumber.Decimal.String()
	case row.ValueDate != nil:
		text = row.ValueDate.Format(time.RFC3339)
	case row.ValueBoolean != nil:
		text = fmt.Sprint(*row.ValueBoolean)
	}
	if text == "" {
		return domain.FieldValue{}, nil
	}
	return domain.CoerceFieldValue(t, text)
}

func validateFieldName(name string) error {
	if name == "" || len(name) > maxFieldNameLength || !fieldNamePattern.MatchString(name) {
		return domain.ErrInvalidFieldName
	}
	return nil
}

// normalizeDefinition checks the mutable attributes of def and drops options
// from non-select types.
func normalizeDefinition(def *domain.FieldDefinition) error {
	invalid := func(reason string) error {
		return domain.NewFieldError(domain.ErrInvalidFieldDefinition, def.EntityType, def.FieldName, reason)
	}

	if def.DisplayName == "" {
		return invalid("display name is required")
	}
	if utf8.RuneCountInString(def.DisplayName) > maxDisplayNameLength {
		return invalid("display name is too long")
	}

	if def.FieldType == domain.FieldTypeSelect {
		opts := lo.Uniq(lo.Compact(lo.Map(def.Options, func(o string, _ int) string {
			return strings.TrimSpace(o)
		})))
		if len(opts) == 0 {
			return invalid("select fields need at least one option")
		}
		if len(opts) > maxSelectOptionsLength {
			return invalid("too many options")
		}
		def.Options = opts
	} else {
		def.Options = nil
	}

	if def.ValidationPattern != nil {
		if _, err := compilePattern(*def.ValidationPattern); err != nil {
			return invalid(fmt.Sprintf("validation pattern: %v", err))
		}
	}

	if def.DefaultValue != nil {
		if _, err := coerceForDefinition(def, *def.DefaultValue); err != nil {
			return invalid(fmt.Sprintf("default value: %v", err))
		}
	}
	return nil
}

// coerceForDefinition turns submitted text into the definition's typed value,
// enforcing select options and the validation pattern.
func coerceForDefinition(def *domain.FieldDefinition, raw string) (domain.FieldValue, error) {
	coercion := func(reason string) error {
		return domain.NewFieldError(domain.ErrTypeCoercion, def.EntityType, def.FieldName, reason)
	}

	if def.FieldType == domain.FieldTypeSelect && !lo.Contains(def.Options, raw) {
		return domain.FieldValue{}, coercion(fmt.Sprintf("%q is not one of the options", raw))
	}
	if def.ValidationPattern != nil {
		re, err := compilePattern(*def.ValidationPattern)
		if err != nil {
			return domain.FieldValue{}, coercion("validation pattern does not compile")
		}
		if !re.MatchString(raw) {
			return domain.FieldValue{}, coercion(fmt.Sprintf("%q does not match %s", raw, *def.ValidationPattern))
		}
	}

	v, err := domain.CoerceFieldValue(def.FieldType, raw)
	if err != nil {
		return domain.FieldValue{}, coercion(strings.TrimPrefix(err.Error(), domain.ErrTypeCoercion.Error()+": "))
	}
	return v, nil
}

// compilePattern anchors a validation pattern so it must match the whole value.
func compilePattern(p string) (*regexp.Regexp, error) {
	return regexp.Compile(`^(?:` + p + `)$`)
}

func optionalText(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
