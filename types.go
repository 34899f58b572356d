package formstate

// Updater carries either a literal replacement or a function of the previous
// value. Mutators resolve it before writing, which lets callers express
// relative updates (toggles, increments, key splices) without reading state
// first.
type Updater[T any] struct {
	value T
	fn    func(T) T
}

// Literal wraps a replacement value.
func Literal[T any](value T) Updater[T] {
	return Updater[T]{value: value}
}

// Transform wraps a function of the previous value.
func Transform[T any](fn func(T) T) Updater[T] {
	return Updater[T]{fn: fn}
}

func (u Updater[T]) resolve(previous T) T {
	if u.fn != nil {
		return u.fn(previous)
	}
	return u.value
}

// RequiredCheck marks a field as required. A nil Check falls back to the
// built-in emptiness test (nil, empty string, empty slice).
type RequiredCheck struct {
	Message string
	Check   func(value any) bool
}

// Validation is one synchronous validator: Handler returns true when the
// value passes, otherwise Message is appended to the field's validation
// errors.
type Validation struct {
	Message string
	Handler func(value, formattedValue any) bool
}

// FieldDescriptor configures a field at registration time.
type FieldDescriptor struct {
	// Name is the dotted path of the field inside the form value tree. It
	// is not required to be unique: several mounted fields may alias one
	// name.
	Name     string
	StepName string

	// Value, when non-nil, seeds the field ahead of kept/initial/default
	// resolution.
	Value        any
	DefaultValue any

	// FormatValue derives the formatted value; identity when nil.
	FormatValue func(value any) any

	Required    *RequiredCheck
	Validations []Validation

	// OnValueChange is invoked after every SetFieldValue write with the new
	// raw and formatted values. This is the hook the debounce/async
	// validation scheduler attaches to.
	OnValueChange func(value, formattedValue any)
}

// StepDescriptor configures a step at registration time.
type StepDescriptor struct {
	Label string
	Order int
	// Enabled defaults to true when nil.
	Enabled *bool
}

// StepPatch updates a subset of a registered step's attributes.
type StepPatch struct {
	Label   *string
	Order   *int
	Enabled *bool
}

// UnregisterOptions controls what survives a field unregistration.
type UnregisterOptions struct {
	// Persist keeps the registry entry alive (the field stays part of the
	// form even though its view is gone).
	Persist bool
	// KeepValue stores the field's current value in the kept-values tree so
	// a later registration under the same name restores it.
	KeepValue bool
}

// SetValuesOptions controls external value injection.
type SetValuesOptions struct {
	// KeepPristine leaves the pristine flag untouched on overwritten fields.
	KeepPristine bool
}

type fieldState struct {
	id         string
	descriptor FieldDescriptor

	value          any
	formattedValue any

	isTouched    bool
	isPristine   bool
	isValidating bool
	isDebouncing bool

	externalErrors         []string
	requiredErrors         []string
	validationsErrors      []string
	validationsAsyncErrors []string
}

func (f *fieldState) formatValue(value any) any {
	if f.descriptor.FormatValue == nil {
		return value
	}
	return f.descriptor.FormatValue(value)
}

// applyValue writes value and recomputes the formatted value and the
// synchronous error lists. formattedValue is always derived from the current
// value, never set directly.
func (f *fieldState) applyValue(value any) {
	f.value = value
	f.formattedValue = f.formatValue(value)
	f.requiredErrors, f.validationsErrors = evaluateFieldErrors(
		f.value, f.formattedValue, f.descriptor.Required, f.descriptor.Validations)
}

func (f *fieldState) isValid() bool {
	return len(f.externalErrors) == 0 &&
		len(f.requiredErrors) == 0 &&
		len(f.validationsErrors) == 0 &&
		len(f.validationsAsyncErrors) == 0
}

func (f *fieldState) isProcessing() bool {
	return f.isValidating || f.isDebouncing
}

type stepState struct {
	name        string
	label       string
	order       int
	isEnabled   bool
	isSubmitted bool
	isVisited   bool
}

type formState struct {
	id              string
	resetKey        int
	isSubmitted     bool
	isReady         bool
	isConnected     bool
	currentStepName string
	initialStepName string
}
