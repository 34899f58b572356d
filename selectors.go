package formstate

import (
	"slices"

	"github.com/goliatone/go-formstate/valuetree"
)

// FieldView is the immutable, consumer-facing snapshot of one field.
type FieldView struct {
	ID       string
	Name     string
	StepName string

	Value          any
	FormattedValue any

	IsValid      bool
	IsPristine   bool
	IsTouched    bool
	IsValidating bool
	IsDebouncing bool
	IsProcessing bool
	IsReady      bool
	IsSubmitted  bool

	// ErrorMessages concatenates the four error categories in fixed
	// priority order: external, required, validations, async validations.
	ErrorMessages []string
	// ErrorMessage is the first entry of ErrorMessages, "" when valid.
	ErrorMessage string
	// ShouldDisplayError suppresses errors while processing or while the
	// field is pristine and untouched, unless the owning step or the form
	// has been submitted.
	ShouldDisplayError bool

	ResetKey int
}

// StepView is the immutable snapshot of one step.
type StepView struct {
	Name  string
	Label string
	// Index is the step's position among enabled steps, -1 when disabled.
	Index        int
	IsCurrent    bool
	IsEnabled    bool
	IsValid      bool
	IsPristine   bool
	IsValidating bool
	IsSubmitted  bool
	IsVisited    bool
}

// FormView is the immutable snapshot of the whole form.
type FormView struct {
	ID       string
	ResetKey int

	IsValid      bool
	IsPristine   bool
	IsValidating bool
	IsSubmitted  bool
	IsReady      bool
	IsConnected  bool

	CurrentStepName string
	// CurrentStep is nil when the current step name matches no registered
	// step (e.g. after unregistering it).
	CurrentStep *StepView
	Steps       []StepView
	IsFirstStep bool
	IsLastStep  bool
}

// Form returns the aggregate form snapshot.
func (s *Store) Form() FormView {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := FormView{
		ID:              s.form.id,
		ResetKey:        s.form.resetKey,
		IsValid:         true,
		IsPristine:      true,
		IsSubmitted:     s.form.isSubmitted,
		IsReady:         s.form.isReady,
		IsConnected:     s.form.isConnected,
		CurrentStepName: s.form.currentStepName,
	}
	for _, fieldID := range s.fieldOrder {
		field := s.fields[fieldID]
		view.IsValid = view.IsValid && field.isValid()
		view.IsPristine = view.IsPristine && field.isPristine
		view.IsValidating = view.IsValidating || field.isValidating
	}
	for _, step := range s.steps {
		view.Steps = append(view.Steps, s.stepViewLocked(step))
	}
	if step := s.stepByName(s.form.currentStepName); step != nil {
		current := s.stepViewLocked(step)
		view.CurrentStep = &current
		enabled := s.enabledSteps()
		if len(enabled) > 0 {
			view.IsFirstStep = enabled[0].name == step.name
			view.IsLastStep = enabled[len(enabled)-1].name == step.name
		}
	}
	return view
}

// Field returns the snapshot of the field registered under fieldID.
func (s *Store) Field(fieldID string) (FieldView, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	field, ok := s.fields[fieldID]
	if !ok {
		return FieldView{}, false
	}
	return s.fieldViewLocked(field), true
}

// FieldByName returns the snapshot of the first registered field aliasing
// name.
func (s *Store) FieldByName(name string) (FieldView, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, fieldID := range s.fieldOrder {
		if field := s.fields[fieldID]; field.descriptor.Name == name {
			return s.fieldViewLocked(field), true
		}
	}
	return FieldView{}, false
}

// Fields returns snapshots of every registered field in registration order.
func (s *Store) Fields() []FieldView {
	s.mu.Lock()
	defer s.mu.Unlock()
	views := make([]FieldView, 0, len(s.fieldOrder))
	for _, fieldID := range s.fieldOrder {
		views = append(views, s.fieldViewLocked(s.fields[fieldID]))
	}
	return views
}

// Step returns the snapshot of the named step.
func (s *Store) Step(name string) (StepView, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	step := s.stepByName(name)
	if step == nil {
		return StepView{}, false
	}
	return s.stepViewLocked(step), true
}

// Steps returns snapshots of every step, sorted by order.
func (s *Store) Steps() []StepView {
	s.mu.Lock()
	defer s.mu.Unlock()
	views := make([]StepView, 0, len(s.steps))
	for _, step := range s.steps {
		views = append(views, s.stepViewLocked(step))
	}
	return views
}

// Values returns the flattened form value tree.
func (s *Store) Values() valuetree.Tree {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flattenValuesLocked()
}

func (s *Store) fieldViewLocked(field *fieldState) FieldView {
	messages := make([]string, 0,
		len(field.externalErrors)+len(field.requiredErrors)+
			len(field.validationsErrors)+len(field.validationsAsyncErrors))
	messages = append(messages, field.externalErrors...)
	messages = append(messages, field.requiredErrors...)
	messages = append(messages, field.validationsErrors...)
	messages = append(messages, field.validationsAsyncErrors...)

	valid := field.isValid()
	processing := field.isProcessing()
	submitted := s.form.isSubmitted
	if step := s.stepByName(field.descriptor.StepName); step != nil {
		submitted = submitted || step.isSubmitted
	}

	view := FieldView{
		ID:             field.id,
		Name:           field.descriptor.Name,
		StepName:       field.descriptor.StepName,
		Value:          valuetree.CloneValue(field.value),
		FormattedValue: valuetree.CloneValue(field.formattedValue),
		IsValid:        valid,
		IsPristine:     field.isPristine,
		IsTouched:      field.isTouched,
		IsValidating:   field.isValidating,
		IsDebouncing:   field.isDebouncing,
		IsProcessing:   processing,
		IsReady:        !processing,
		IsSubmitted:    submitted,
		ErrorMessages:  messages,
		ResetKey:       s.form.resetKey,
	}
	if len(messages) > 0 {
		view.ErrorMessage = messages[0]
	}
	view.ShouldDisplayError = !processing && !valid &&
		((field.isTouched && !field.isPristine) || submitted)
	return view
}

func (s *Store) stepViewLocked(step *stepState) StepView {
	view := StepView{
		Name:        step.name,
		Label:       step.label,
		Index:       -1,
		IsCurrent:   s.form.currentStepName == step.name,
		IsEnabled:   step.isEnabled,
		IsValid:     true,
		IsPristine:  true,
		IsSubmitted: step.isSubmitted || s.form.isSubmitted,
		IsVisited:   step.isVisited,
	}
	if step.isEnabled {
		view.Index = slices.IndexFunc(s.enabledSteps(), func(candidate *stepState) bool {
			return candidate.name == step.name
		})
	}
	for _, fieldID := range s.fieldOrder {
		field := s.fields[fieldID]
		if field.descriptor.StepName != step.name {
			continue
		}
		view.IsValid = view.IsValid && field.isValid()
		view.IsPristine = view.IsPristine && field.isPristine
		view.IsValidating = view.IsValidating || field.isValidating
	}
	return view
}
