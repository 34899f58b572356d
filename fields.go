package formstate

import (
	"slices"
	"time"

	"github.com/goliatone/go-formstate/valuetree"
)

// RegisterField creates or refreshes the field registered under fieldID. The
// starting value is resolved through a fixed precedence chain, first
// non-nil entry wins:
//
//  1. pending external value for the field name
//  2. explicit descriptor value
//  3. previous in-memory value for this exact fieldID
//  4. kept value from a persisted unregistration
//  5. configured initial value
//  6. store-level default value
//  7. descriptor default value
//  8. nil
//
// The winning tree entry is consumed so a second field aliasing the same
// name does not resolve it again.
func (s *Store) RegisterField(fieldID string, descriptor FieldDescriptor) {
	start := time.Now()
	s.mu.Lock()

	field, exists := s.fields[fieldID]
	if !exists {
		field = &fieldState{
			id:         fieldID,
			isPristine: true,
		}
		s.fields[fieldID] = field
		s.fieldOrder = append(s.fieldOrder, fieldID)
	}
	previousValue := field.value
	field.descriptor = descriptor

	value := descriptor.Value
	if external, ok := valuetree.Get(s.externalValues, descriptor.Name); ok && external != nil {
		value = external
		valuetree.Omit(s.externalValues, descriptor.Name)
	} else if value == nil && exists && previousValue != nil {
		value = previousValue
	} else if value == nil {
		if kept, ok := valuetree.Get(s.keepValues, descriptor.Name); ok && kept != nil {
			value = kept
			valuetree.Omit(s.keepValues, descriptor.Name)
		} else if initial, ok := valuetree.Get(s.initialValues, descriptor.Name); ok && initial != nil {
			value = initial
			valuetree.Omit(s.initialValues, descriptor.Name)
		} else if fallback, ok := valuetree.Get(s.defaultValues, descriptor.Name); ok && fallback != nil {
			value = fallback
			valuetree.Omit(s.defaultValues, descriptor.Name)
		} else {
			value = descriptor.DefaultValue
		}
	}
	field.applyValue(value)

	s.mu.Unlock()
	s.logAction("field.register", descriptor.Name, start, nil)
}

// UnregisterField removes the field unless options ask to persist it. When
// KeepValue is set the current value is written to the kept-values tree
// first, regardless of Persist, so a future registration under the same name
// restores it.
func (s *Store) UnregisterField(fieldID string, options UnregisterOptions) {
	start := time.Now()
	s.mu.Lock()
	field, ok := s.fields[fieldID]
	if !ok {
		s.mu.Unlock()
		return
	}
	name := field.descriptor.Name
	if options.KeepValue {
		s.keepValues = valuetree.Set(s.keepValues, name, field.value)
	}
	if !options.Persist {
		delete(s.fields, fieldID)
		s.fieldOrder = slices.DeleteFunc(s.fieldOrder, func(id string) bool {
			return id == fieldID
		})
	}
	s.mu.Unlock()
	s.logAction("field.unregister", name, start, nil)
}

// UpdateField replaces the field's descriptor in place, keeping its value
// and flags, and re-evaluates the error lists against the new validations.
func (s *Store) UpdateField(fieldID string, descriptor FieldDescriptor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	field, ok := s.fields[fieldID]
	if !ok {
		return
	}
	field.descriptor = descriptor
	field.applyValue(field.value)
}

// SetFieldValue resolves the updater against the previous value, writes the
// result, and re-runs the synchronous validations. External errors are
// cleared and the field leaves its pristine state. The descriptor's change
// callback fires after the write with the new raw and formatted values; this
// is the only place the store talks to the debounce/async-validation
// collaborator.
func (s *Store) SetFieldValue(fieldID string, value Updater[any]) {
	s.mu.Lock()
	field, ok := s.fields[fieldID]
	if !ok {
		s.mu.Unlock()
		return
	}
	field.applyValue(value.resolve(field.value))
	field.externalErrors = nil
	field.isPristine = false
	callback := field.descriptor.OnValueChange
	newValue, formatted := field.value, field.formattedValue
	s.mu.Unlock()

	if callback != nil {
		callback(newValue, formatted)
	}
}

// SetFieldTouched flips the touched flag without re-validating.
func (s *Store) SetFieldTouched(fieldID string, touched bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if field, ok := s.fields[fieldID]; ok {
		field.isTouched = touched
	}
}

// SetFieldValidating records an async-validation transition reported by the
// external scheduler. The store only mirrors the boolean.
func (s *Store) SetFieldValidating(fieldID string, validating bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if field, ok := s.fields[fieldID]; ok {
		field.isValidating = validating
	}
}

// SetFieldDebouncing records a debounce transition reported by the external
// scheduler.
func (s *Store) SetFieldDebouncing(fieldID string, debouncing bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if field, ok := s.fields[fieldID]; ok {
		field.isDebouncing = debouncing
	}
}

// SetFieldAsyncErrors replaces the async-validation error list for the
// field, typically once the external scheduler settles.
func (s *Store) SetFieldAsyncErrors(fieldID string, messages []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if field, ok := s.fields[fieldID]; ok {
		field.validationsAsyncErrors = slices.Clone(messages)
	}
}

// SetValues injects a value tree from outside the form. Every registered
// field whose name resolves in the tree is overwritten and re-validated;
// consumed entries are removed and the remainder is merged into the
// external-values tree so late-registering fields still pick them up.
func (s *Store) SetValues(values valuetree.Tree, options SetValuesOptions) {
	start := time.Now()
	s.mu.Lock()

	remaining := valuetree.Clone(values)
	var consumed []string
	for _, fieldID := range s.fieldOrder {
		field := s.fields[fieldID]
		value, ok := valuetree.Get(remaining, field.descriptor.Name)
		if !ok {
			continue
		}
		field.applyValue(value)
		field.externalErrors = nil
		if !options.KeepPristine {
			field.isPristine = false
		}
		consumed = append(consumed, field.descriptor.Name)
	}
	for _, name := range consumed {
		valuetree.Omit(remaining, name)
	}
	s.externalValues = valuetree.Merge(s.externalValues, remaining)

	s.mu.Unlock()
	s.logAction("form.setValues", "", start, nil)
}

// RestoreValues injects a value tree without dirtying pristine state. It is
// the entry point draft restoration uses: restored fields read as untouched.
func (s *Store) RestoreValues(values valuetree.Tree) {
	s.SetValues(values, SetValuesOptions{KeepPristine: true})
}

// SetErrors injects external error messages (e.g. a server response). Only
// string leaves are honored; each one replaces the matching field's external
// error list. Malformed entries are ignored.
func (s *Store) SetErrors(errors valuetree.Tree) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, fieldID := range s.fieldOrder {
		field := s.fields[fieldID]
		value, ok := valuetree.Get(errors, field.descriptor.Name)
		if !ok {
			continue
		}
		if message, ok := value.(string); ok {
			field.externalErrors = []string{message}
		}
	}
}

// SetDefaultValues merges defaults for fields that have no better value
// source. The tree feeds both the registration chain (store-level defaults)
// and the reset chain (reset defaults).
func (s *Store) SetDefaultValues(values valuetree.Tree) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.defaultValues = valuetree.Merge(s.defaultValues, values)
	s.resetDefaultValues = valuetree.Merge(s.resetDefaultValues, values)
}

// resetField applies the reset facets in scope to one field. The reset value
// resolves initial > reset-default > descriptor default. Facets outside the
// scope keep their current state.
func (s *Store) resetField(field *fieldState, scope resetScope) {
	if scope.includes(ResetValues) {
		value := field.descriptor.DefaultValue
		if initial, ok := valuetree.Get(s.initialValues, field.descriptor.Name); ok && initial != nil {
			value = initial
		} else if fallback, ok := valuetree.Get(s.resetDefaultValues, field.descriptor.Name); ok && fallback != nil {
			value = fallback
		}
		field.applyValue(value)
		field.externalErrors = nil
		field.validationsAsyncErrors = nil
	}
	if scope.includes(ResetPristine) {
		field.isPristine = true
	}
	if scope.includes(ResetTouched) {
		field.isTouched = false
	}
	if scope.includes(ResetValidating) {
		field.isValidating = false
	}
	if scope.includes(ResetDebouncing) {
		field.isDebouncing = false
	}
}
