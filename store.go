package formstate

import (
	"context"
	"sync"

	"github.com/goliatone/go-formstate/pkg/activity"
	"github.com/goliatone/go-formstate/valuetree"
)

// Store is the single-writer state container behind one form instance. All
// mutations happen through its action methods; readers receive immutable
// snapshots through the selector methods. The store never runs asynchronous
// validation itself: collaborators report validating/debouncing transitions
// through the dedicated setters.
type Store struct {
	mu  sync.Mutex
	cfg storeConfig

	form   formState
	fields map[string]*fieldState
	// fieldOrder preserves registration order so flattened value trees and
	// aggregate rollups stay deterministic.
	fieldOrder []string
	steps      []*stepState

	// collections maps a collection field name to its ordered item keys.
	// Keys are identity, not position: they survive sibling inserts and
	// removals.
	collections map[string][]string

	// Value trees with distinct provenance, strongest first at
	// registration: external, kept, initial, default. resetDefaultValues
	// only participates in resets.
	externalValues     valuetree.Tree
	keepValues         valuetree.Tree
	defaultValues      valuetree.Tree
	resetDefaultValues valuetree.Tree
	initialValues      valuetree.Tree

	// effects queues deferred writes that must land after the current
	// action commits (the collection insert's paired value write). Drained
	// by the action that enqueued them, after its state is visible.
	effects []func()
}

// New constructs a form store. Without options the form is ready and
// connected, carries a generated id, and has no initial values.
func New(options ...Option) *Store {
	cfg := applyOptions(options)
	store := &Store{
		cfg:                cfg,
		fields:             map[string]*fieldState{},
		collections:        map[string][]string{},
		externalValues:     valuetree.Tree{},
		keepValues:         valuetree.Tree{},
		defaultValues:      valuetree.Tree{},
		resetDefaultValues: valuetree.Tree{},
	}
	store.form = formState{
		id:              cfg.id,
		isReady:         cfg.ready,
		isConnected:     cfg.connected,
		initialStepName: cfg.initialStepName,
	}
	if store.form.id == "" {
		store.form.id = cfg.generateID()
	}
	store.initialValues = store.resolveInitialValues()
	return store
}

// ID returns the form identifier.
func (s *Store) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form.id
}

func (s *Store) resolveInitialValues() valuetree.Tree {
	if s.cfg.initialValues == nil {
		return valuetree.Tree{}
	}
	return valuetree.Clone(s.cfg.initialValues())
}

// enqueueEffect defers fn until the current action has committed. Must be
// called with the lock held.
func (s *Store) enqueueEffect(fn func()) {
	s.effects = append(s.effects, fn)
}

// drainEffects runs pending effects in FIFO order. Effects call back into
// exported actions, so the lock must not be held. Effects enqueued while
// draining are picked up by the same loop.
func (s *Store) drainEffects() {
	for {
		s.mu.Lock()
		if len(s.effects) == 0 {
			s.mu.Unlock()
			return
		}
		next := s.effects[0]
		s.effects = s.effects[1:]
		s.mu.Unlock()
		next()
	}
}

func (s *Store) generateKey() string {
	return s.cfg.generateID()
}

// emit fans a lifecycle event out to the configured activity hooks.
func (s *Store) emit(event activity.Event) {
	if !s.cfg.activityHooks.Enabled() {
		return
	}
	_ = s.cfg.activityHooks.Notify(context.Background(), event)
}
