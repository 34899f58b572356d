package formstate

// ResetElement names one independently togglable facet of a reset.
type ResetElement string

const (
	ResetValues      ResetElement = "values"
	ResetPristine    ResetElement = "pristine"
	ResetTouched     ResetElement = "touched"
	ResetValidating  ResetElement = "validating"
	ResetDebouncing  ResetElement = "debouncing"
	ResetSubmitted   ResetElement = "submitted"
	ResetVisited     ResetElement = "visited"
	ResetCurrentStep ResetElement = "currentStep"
	ResetKey         ResetElement = "resetKey"
)

// ResetOption narrows the facets a reset applies to. Without options every
// facet is reset.
type ResetOption func(*resetScope)

type resetScope struct {
	only    map[ResetElement]struct{}
	exclude map[ResetElement]struct{}
}

// ResetOnly restricts the reset to the listed facets.
func ResetOnly(elements ...ResetElement) ResetOption {
	return func(scope *resetScope) {
		if scope.only == nil {
			scope.only = map[ResetElement]struct{}{}
		}
		for _, element := range elements {
			scope.only[element] = struct{}{}
		}
	}
}

// ResetExclude removes the listed facets from the reset.
func ResetExclude(elements ...ResetElement) ResetOption {
	return func(scope *resetScope) {
		if scope.exclude == nil {
			scope.exclude = map[ResetElement]struct{}{}
		}
		for _, element := range elements {
			scope.exclude[element] = struct{}{}
		}
	}
}

func buildResetScope(options []ResetOption) resetScope {
	scope := resetScope{}
	for _, option := range options {
		if option != nil {
			option(&scope)
		}
	}
	return scope
}

func (s resetScope) includes(element ResetElement) bool {
	if _, excluded := s.exclude[element]; excluded {
		return false
	}
	if s.only == nil {
		return true
	}
	_, ok := s.only[element]
	return ok
}
