package formstate

import (
	"time"

	"github.com/goliatone/go-formstate/pkg/activity"
	"github.com/goliatone/go-formstate/valuetree"
)

// Submit marks the form submitted and, when the form is ready, connected,
// and no field is processing, invokes exactly one of the valid/invalid
// callbacks followed by the unconditional submit callback. A submit
// attempted while async validation is in flight is swallowed, not queued:
// the submitted flag flips but no callback fires.
func (s *Store) Submit() {
	start := time.Now()
	s.mu.Lock()

	s.form.isSubmitted = true
	if !s.form.isReady || !s.form.isConnected || s.anyFieldProcessingLocked() {
		s.mu.Unlock()
		s.logAction("form.submit", "aborted", start, nil)
		return
	}
	valid := s.allFieldsValidLocked()
	values := s.flattenValuesLocked()
	formID := s.form.id
	cfg := s.cfg
	s.mu.Unlock()

	if valid {
		if cfg.onValidSubmit != nil {
			cfg.onValidSubmit(values)
		}
	} else if cfg.onInvalidSubmit != nil {
		cfg.onInvalidSubmit(values)
	}
	if cfg.onSubmit != nil {
		cfg.onSubmit(values)
	}
	s.logAction("form.submit", "", start, nil)
	s.emit(activity.BuildFormSubmittedEvent(activity.FormEventInput{FormID: formID}, valid))
}

// SubmitStep marks the current step submitted. It aborts while the step is
// processing or invalid; otherwise the last enabled step delegates to
// Submit and any other step advances to the next enabled one.
func (s *Store) SubmitStep() {
	start := time.Now()
	s.mu.Lock()

	step := s.stepByName(s.form.currentStepName)
	if step == nil {
		s.mu.Unlock()
		return
	}
	step.isSubmitted = true

	processing, valid := false, true
	for _, fieldID := range s.fieldOrder {
		field := s.fields[fieldID]
		if field.descriptor.StepName != step.name {
			continue
		}
		processing = processing || field.isProcessing()
		valid = valid && field.isValid()
	}
	if processing || !valid {
		s.mu.Unlock()
		s.logAction("step.submit", "aborted", start, nil)
		return
	}

	enabled := s.enabledSteps()
	isLast := len(enabled) > 0 && enabled[len(enabled)-1].name == step.name
	s.mu.Unlock()
	s.logAction("step.submit", step.name, start, nil)

	if isLast {
		s.Submit()
		return
	}
	s.NextStep()
}

// Reset returns the form to its baseline, facet by facet. Initial values are
// recomputed from configuration first, then every field resolves its reset
// value (initial > reset-default > descriptor default), collection key
// sequences are realigned with the fresh initial values, step flags clear,
// and the current step returns to the configured starting point. Each part
// only runs when its facet is in scope; the resetKey facet bumps the
// monotonic remount counter.
func (s *Store) Reset(options ...ResetOption) {
	start := time.Now()
	scope := buildResetScope(options)
	s.mu.Lock()

	s.initialValues = s.resolveInitialValues()
	if scope.includes(ResetValues) {
		// Pending injected and kept values would otherwise resurface on the
		// next registration with pre-reset data.
		s.externalValues = valuetree.Tree{}
		s.keepValues = valuetree.Tree{}
	}
	for _, fieldID := range s.fieldOrder {
		s.resetField(s.fields[fieldID], scope)
	}
	if scope.includes(ResetValues) {
		s.resyncCollectionsLocked(s.initialValues)
	}
	if scope.includes(ResetSubmitted) {
		s.form.isSubmitted = false
		for _, step := range s.steps {
			step.isSubmitted = false
		}
	}
	if scope.includes(ResetVisited) {
		for _, step := range s.steps {
			step.isVisited = false
		}
	}
	if scope.includes(ResetCurrentStep) {
		s.form.initialStepName = s.cfg.initialStepName
		target := s.stepByName(s.form.initialStepName)
		if target == nil && len(s.steps) > 0 {
			target = s.steps[0]
		}
		if target != nil {
			s.form.currentStepName = target.name
			target.isVisited = true
		} else {
			s.form.currentStepName = ""
		}
	}
	if scope.includes(ResetKey) {
		s.form.resetKey++
	}
	formID := s.form.id

	s.mu.Unlock()
	s.logAction("form.reset", "", start, nil)
	s.emit(activity.BuildFormResetEvent(activity.FormEventInput{FormID: formID}))
}

// SetReady updates the readiness gate. A rising edge observed while the
// connection gate is already open re-syncs the form through an implicit
// reset that skips the resetKey facet, so collaborators are not forced to
// remount.
func (s *Store) SetReady(ready bool) {
	s.mu.Lock()
	rising := !s.form.isReady && ready
	s.form.isReady = ready
	otherOpen := s.form.isConnected
	s.mu.Unlock()

	if rising && otherOpen {
		s.Reset(ResetExclude(ResetKey))
	}
}

// SetConnected updates the connection gate, with the same rising-edge reset
// behavior as SetReady.
func (s *Store) SetConnected(connected bool) {
	s.mu.Lock()
	rising := !s.form.isConnected && connected
	s.form.isConnected = connected
	otherOpen := s.form.isReady
	s.mu.Unlock()

	if rising && otherOpen {
		s.Reset(ResetExclude(ResetKey))
	}
}

func (s *Store) anyFieldProcessingLocked() bool {
	for _, fieldID := range s.fieldOrder {
		if s.fields[fieldID].isProcessing() {
			return true
		}
	}
	return false
}

func (s *Store) allFieldsValidLocked() bool {
	for _, fieldID := range s.fieldOrder {
		if !s.fields[fieldID].isValid() {
			return false
		}
	}
	return true
}

// flattenValuesLocked builds the form value tree from every registered
// field, in registration order so later aliases win.
func (s *Store) flattenValuesLocked() valuetree.Tree {
	tree := valuetree.Tree{}
	for _, fieldID := range s.fieldOrder {
		field := s.fields[fieldID]
		tree = valuetree.Set(tree, field.descriptor.Name, valuetree.CloneValue(field.value))
	}
	return tree
}
