package dashboard

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const sectionOrderSchemaURL = "section-order.json"

// OrderValidator checks a raw persisted section order before it is trusted.
type OrderValidator interface {
	Validate(raw []byte) (SectionOrder, error)
}

// JSONSchemaValidator validates stored orders against a JSON schema describing
// a four-item permutation of the known sections.
type JSONSchemaValidator struct {
	once     sync.Once
	compiled *jsonschema.Schema
	err      error
}

// NewJSONSchemaValidator builds a validator backed by jsonschema v5.
func NewJSONSchemaValidator() *JSONSchemaValidator {
	return &JSONSchemaValidator{}
}

// Validate decodes raw and ensures it is a permutation of the dashboard sections.
func (v *JSONSchemaValidator) Validate(raw []byte) (SectionOrder, error) {
	schema, err := v.schema()
	if err != nil {
		return nil, err
	}
	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("dashboard: decode section order: %w", err)
	}
	if err := schema.Validate(payload); err != nil {
		return nil, fmt.Errorf("dashboard: section order failed validation: %w", err)
	}
	var order SectionOrder
	if err := json.Unmarshal(raw, &order); err != nil {
		return nil, fmt.Errorf("dashboard: decode section order: %w", err)
	}
	return order, nil
}

func (v *JSONSchemaValidator) schema() (*jsonschema.Schema, error) {
	v.once.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(sectionOrderSchemaURL, strings.NewReader(sectionOrderSchema())); err != nil {
			v.err = fmt.Errorf("dashboard: load section order schema: %w", err)
			return
		}
		v.compiled, v.err = compiler.Compile(sectionOrderSchemaURL)
		if v.err != nil {
			v.err = fmt.Errorf("dashboard: compile section order schema: %w", v.err)
		}
	})
	return v.compiled, v.err
}

func sectionOrderSchema() string {
	enum, _ := json.Marshal(defaultSectionOrder.Strings())
	return fmt.Sprintf(`{
	"type": "array",
	"minItems": %d,
	"maxItems": %d,
	"uniqueItems": true,
	"items": {"type": "string", "enum": %s}
}`, len(defaultSectionOrder), len(defaultSectionOrder), enum)
}
