package formstate

import (
	"github.com/google/uuid"

	"github.com/goliatone/go-formstate/pkg/activity"
	"github.com/goliatone/go-formstate/valuetree"
)

// Option configures a Store at construction time.
type Option func(*storeConfig)

type storeConfig struct {
	id         string
	generateID func() string

	initialValues   func() valuetree.Tree
	initialStepName string

	onSubmit        func(values valuetree.Tree)
	onValidSubmit   func(values valuetree.Tree)
	onInvalidSubmit func(values valuetree.Tree)

	logger        Logger
	activityHooks activity.Hooks

	ready     bool
	connected bool
}

func applyOptions(options []Option) storeConfig {
	cfg := storeConfig{
		generateID: uuid.NewString,
		ready:      true,
		connected:  true,
	}
	for _, option := range options {
		if option != nil {
			option(&cfg)
		}
	}
	return cfg
}

// WithID fixes the form identifier instead of generating one.
func WithID(id string) Option {
	return func(cfg *storeConfig) {
		cfg.id = id
	}
}

// WithIDGenerator replaces the unique-id source used for the form id and
// collection item keys.
func WithIDGenerator(generate func() string) Option {
	return func(cfg *storeConfig) {
		if generate != nil {
			cfg.generateID = generate
		}
	}
}

// WithInitialValues supplies a static initial value tree. The tree is cloned
// on every resolution so resets always start from the configured state.
func WithInitialValues(values valuetree.Tree) Option {
	return WithInitialValuesProvider(func() valuetree.Tree {
		return values
	})
}

// WithInitialValuesProvider supplies initial values lazily. The provider is
// re-invoked on every reset, which lets callers feed values that change over
// the form's lifetime.
func WithInitialValuesProvider(provider func() valuetree.Tree) Option {
	return func(cfg *storeConfig) {
		cfg.initialValues = provider
	}
}

// WithInitialStep names the step a reset returns to (and so the starting step
// once reset). Until then the first registered step is current. Defaults to
// the first registered step in order.
func WithInitialStep(name string) Option {
	return func(cfg *storeConfig) {
		cfg.initialStepName = name
	}
}

// WithOnSubmit registers the unconditional submit callback.
func WithOnSubmit(fn func(values valuetree.Tree)) Option {
	return func(cfg *storeConfig) {
		cfg.onSubmit = fn
	}
}

// WithOnValidSubmit registers the callback invoked when a submitted form is
// valid. Mutually exclusive with the invalid callback per submission.
func WithOnValidSubmit(fn func(values valuetree.Tree)) Option {
	return func(cfg *storeConfig) {
		cfg.onValidSubmit = fn
	}
}

// WithOnInvalidSubmit registers the callback invoked when a submitted form
// is invalid.
func WithOnInvalidSubmit(fn func(values valuetree.Tree)) Option {
	return func(cfg *storeConfig) {
		cfg.onInvalidSubmit = fn
	}
}

// WithLogger attaches an action logger to the store.
func WithLogger(logger Logger) Option {
	return func(cfg *storeConfig) {
		if logger == nil {
			cfg.logger = noopLogger{}
			return
		}
		cfg.logger = logger
	}
}

// WithActivityHooks attaches lifecycle activity hooks. Hooks are cloned and
// nil entries dropped.
func WithActivityHooks(hooks activity.Hooks) Option {
	normalized := cloneActivityHooks(hooks)
	return func(cfg *storeConfig) {
		cfg.activityHooks = normalized
	}
}

// WithReady sets the initial readiness gate. Collaborator-driven mounts
// start unready and flip the gate once their side is wired up.
func WithReady(ready bool) Option {
	return func(cfg *storeConfig) {
		cfg.ready = ready
	}
}

// WithConnected sets the initial connection gate.
func WithConnected(connected bool) Option {
	return func(cfg *storeConfig) {
		cfg.connected = connected
	}
}

func cloneActivityHooks(hooks activity.Hooks) activity.Hooks {
	if len(hooks) == 0 {
		return nil
	}
	normalized := make([]activity.Hook, 0, len(hooks))
	for _, hook := range hooks {
		if hook == nil {
			continue
		}
		normalized = append(normalized, hook)
	}
	if len(normalized) == 0 {
		return nil
	}
	return activity.Hooks(normalized)
}
