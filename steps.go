package formstate

import (
	"slices"
	"sort"
	"time"

	"github.com/goliatone/go-formstate/pkg/activity"
)

// RegisterStep inserts a step and re-sorts the step list by order. The sort
// is stable so ties preserve registration order. The first step to register
// becomes current when no current step is set, which makes registration
// order (not list position) decide the starting step for asynchronously
// mounting steps.
func (s *Store) RegisterStep(name string, descriptor StepDescriptor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stepByName(name) != nil {
		return
	}
	enabled := true
	if descriptor.Enabled != nil {
		enabled = *descriptor.Enabled
	}
	step := &stepState{
		name:      name,
		label:     descriptor.Label,
		order:     descriptor.Order,
		isEnabled: enabled,
	}
	s.steps = append(s.steps, step)
	s.sortSteps()
	if s.form.currentStepName == "" {
		s.form.currentStepName = name
		step.isVisited = true
	}
}

// UpdateStep merges the patch into the matching step and re-sorts, since the
// order may have changed. Unknown names are a no-op.
func (s *Store) UpdateStep(name string, patch StepPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	step := s.stepByName(name)
	if step == nil {
		return
	}
	if patch.Label != nil {
		step.label = *patch.Label
	}
	if patch.Order != nil {
		step.order = *patch.Order
	}
	if patch.Enabled != nil {
		step.isEnabled = *patch.Enabled
	}
	s.sortSteps()
}

// UnregisterStep removes the step. The current step name is deliberately not
// reassigned: an orphaned current step reads as "no step" until the next
// navigation.
func (s *Store) UnregisterStep(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.steps = slices.DeleteFunc(s.steps, func(step *stepState) bool {
		return step.name == name
	})
}

// GoToStep navigates to the named step. Disabled or unknown targets leave
// the current step unchanged.
func (s *Store) GoToStep(name string) {
	start := time.Now()
	s.mu.Lock()
	step := s.stepByName(name)
	if step == nil || !step.isEnabled {
		s.mu.Unlock()
		return
	}
	s.form.currentStepName = name
	step.isVisited = true
	formID := s.form.id
	s.mu.Unlock()
	s.logAction("step.goTo", name, start, nil)
	s.emit(activity.BuildStepNavigatedEvent(activity.FormEventInput{FormID: formID, Step: name}))
}

// NextStep advances within the enabled, order-sorted sequence. No-op on the
// last enabled step.
func (s *Store) NextStep() {
	s.navigateRelative(1)
}

// PrevStep steps back within the enabled, order-sorted sequence. No-op on
// the first enabled step.
func (s *Store) PrevStep() {
	s.navigateRelative(-1)
}

func (s *Store) navigateRelative(offset int) {
	s.mu.Lock()
	target := s.relativeStepLocked(offset)
	s.mu.Unlock()
	if target != "" {
		s.GoToStep(target)
	}
}

// relativeStepLocked resolves the enabled step offset positions away from
// the current one, or "" at a boundary.
func (s *Store) relativeStepLocked(offset int) string {
	enabled := s.enabledSteps()
	index := slices.IndexFunc(enabled, func(step *stepState) bool {
		return step.name == s.form.currentStepName
	})
	if index < 0 {
		return ""
	}
	next := index + offset
	if next < 0 || next >= len(enabled) {
		return ""
	}
	return enabled[next].name
}

func (s *Store) stepByName(name string) *stepState {
	for _, step := range s.steps {
		if step.name == name {
			return step
		}
	}
	return nil
}

func (s *Store) enabledSteps() []*stepState {
	var enabled []*stepState
	for _, step := range s.steps {
		if step.isEnabled {
			enabled = append(enabled, step)
		}
	}
	return enabled
}

func (s *Store) sortSteps() {
	sort.SliceStable(s.steps, func(i, j int) bool {
		return s.steps[i].order < s.steps[j].order
	})
}
