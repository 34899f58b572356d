package formstate

import "reflect"

// evaluateFieldErrors runs the required check and every synchronous
// validation against value. The two lists are independent: validations run
// even when the required check failed, so both can be populated at once.
func evaluateFieldErrors(value, formattedValue any, required *RequiredCheck, validations []Validation) (requiredErrors, validationsErrors []string) {
	requiredErrors = []string{}
	validationsErrors = []string{}

	if required != nil && !passesRequired(value, required) {
		requiredErrors = append(requiredErrors, required.Message)
	}
	for _, validation := range validations {
		if validation.Handler == nil {
			continue
		}
		if !validation.Handler(value, formattedValue) {
			validationsErrors = append(validationsErrors, validation.Message)
		}
	}
	return requiredErrors, validationsErrors
}

func passesRequired(value any, required *RequiredCheck) bool {
	if required.Check != nil {
		return required.Check(value)
	}
	return !isEmptyValue(value)
}

// isEmptyValue is the default required-check predicate: nil, empty strings,
// and empty slices/maps count as missing. Zero numbers and false do not.
func isEmptyValue(value any) bool {
	if value == nil {
		return true
	}
	switch typed := value.(type) {
	case string:
		return typed == ""
	case []any:
		return len(typed) == 0
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
