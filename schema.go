package formstate

import (
	"github.com/goliatone/go-formstate/valuetree"
)

// FormSchema is a renderer-facing description of the form: its steps in
// order and one descriptor per registered field. The document is
// JSON-serialisable.
type FormSchema struct {
	ID     string        `json:"id"`
	Steps  []SchemaStep  `json:"steps,omitempty"`
	Fields []SchemaField `json:"fields"`
}

// SchemaStep describes a step entry in a schema document.
type SchemaStep struct {
	Name    string `json:"name"`
	Label   string `json:"label,omitempty"`
	Order   int    `json:"order"`
	Enabled bool   `json:"enabled"`
}

// SchemaField describes one registered field: its dotted path, owning step,
// the display type inferred from the current value, and its validation
// surface (messages only, handlers are opaque).
type SchemaField struct {
	Name            string   `json:"name"`
	Step            string   `json:"step,omitempty"`
	Type            string   `json:"type"`
	Required        bool     `json:"required"`
	RequiredMessage string   `json:"requiredMessage,omitempty"`
	Validations     []string `json:"validations,omitempty"`
}

// Schema derives the current schema document from the registries.
func (s *Store) Schema() FormSchema {
	s.mu.Lock()
	defer s.mu.Unlock()

	schema := FormSchema{
		ID:     s.form.id,
		Fields: []SchemaField{},
	}
	for _, step := range s.steps {
		schema.Steps = append(schema.Steps, SchemaStep{
			Name:    step.name,
			Label:   step.label,
			Order:   step.order,
			Enabled: step.isEnabled,
		})
	}
	for _, fieldID := range s.fieldOrder {
		field := s.fields[fieldID]
		descriptor := SchemaField{
			Name:     field.descriptor.Name,
			Step:     field.descriptor.StepName,
			Type:     valuetree.TypeName(field.value),
			Required: field.descriptor.Required != nil,
		}
		if field.descriptor.Required != nil {
			descriptor.RequiredMessage = field.descriptor.Required.Message
		}
		for _, validation := range field.descriptor.Validations {
			descriptor.Validations = append(descriptor.Validations, validation.Message)
		}
		schema.Fields = append(schema.Fields, descriptor)
	}
	return schema
}
