package activity

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestHooksNotifyFansOut(t *testing.T) {
	first := &CaptureHook{}
	second := &CaptureHook{}
	hooks := Hooks{first, nil, second}

	if !hooks.Enabled() {
		t.Fatalf("hooks with entries should be enabled")
	}

	event := Event{
		Verb:       " form.submitted ",
		ObjectType: "form",
		ObjectID:   " wizard ",
		Metadata:   map[string]any{"valid": true},
	}
	if err := hooks.Notify(context.Background(), event); err != nil {
		t.Fatalf("notify: %v", err)
	}

	for _, capture := range []*CaptureHook{first, second} {
		if len(capture.Events) != 1 {
			t.Fatalf("expected 1 event, got %d", len(capture.Events))
		}
		got := capture.Events[0]
		if got.Verb != "form.submitted" || got.ObjectID != "wizard" {
			t.Fatalf("event should be normalized, got %+v", got)
		}
		if got.OccurredAt.IsZero() {
			t.Fatalf("timestamp should be defaulted")
		}
	}
}

func TestHooksNotifySkipsIncompleteEvents(t *testing.T) {
	capture := &CaptureHook{}
	hooks := Hooks{capture}

	cases := []Event{
		{ObjectType: "form", ObjectID: "x"},
		{Verb: "form.reset", ObjectID: "x"},
		{Verb: "form.reset", ObjectType: "form"},
	}
	for _, event := range cases {
		if err := hooks.Notify(context.Background(), event); err != nil {
			t.Fatalf("notify: %v", err)
		}
	}
	if len(capture.Events) != 0 {
		t.Fatalf("incomplete events must be dropped, got %d", len(capture.Events))
	}
}

func TestHooksNotifyJoinsErrors(t *testing.T) {
	firstErr := errors.New("first failed")
	secondErr := errors.New("second failed")
	hooks := Hooks{&CaptureHook{Err: firstErr}, &CaptureHook{Err: secondErr}}

	err := hooks.Notify(context.Background(), Event{
		Verb: "form.reset", ObjectType: "form", ObjectID: "x",
	})
	if !errors.Is(err, firstErr) || !errors.Is(err, secondErr) {
		t.Fatalf("expected both errors joined, got %v", err)
	}
}

func TestNormalizeEventClonesMetadata(t *testing.T) {
	metadata := map[string]any{"step": "review"}
	normalized := NormalizeEvent(Event{Metadata: metadata})

	normalized.Metadata["step"] = "mutated"
	if metadata["step"] != "review" {
		t.Fatalf("normalization must not share the caller's map")
	}
}

func TestEmitterAppliesDefaultChannel(t *testing.T) {
	capture := &CaptureHook{}
	emitter := NewEmitter(Hooks{capture}, Config{Enabled: true})

	event := Event{Verb: "form.submitted", ObjectType: "form", ObjectID: "x"}
	if err := emitter.Emit(context.Background(), event); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if len(capture.Events) != 1 || capture.Events[0].Channel != "forms" {
		t.Fatalf("expected default channel, got %+v", capture.Events)
	}

	event.Channel = "audit"
	if err := emitter.Emit(context.Background(), event); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if capture.Events[1].Channel != "audit" {
		t.Fatalf("explicit channel must win, got %q", capture.Events[1].Channel)
	}
}

func TestEmitterDisabled(t *testing.T) {
	capture := &CaptureHook{}

	emitter := NewEmitter(Hooks{capture}, Config{Enabled: false})
	if emitter.Enabled() {
		t.Fatalf("disabled config should disable the emitter")
	}
	if err := emitter.Emit(context.Background(), Event{
		Verb: "form.reset", ObjectType: "form", ObjectID: "x",
	}); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if len(capture.Events) != 0 {
		t.Fatalf("disabled emitter must not notify")
	}

	if NewEmitter(nil, Config{Enabled: true}).Enabled() {
		t.Fatalf("no hooks, nothing to enable")
	}
}

func TestBuildFormEvents(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	input := FormEventInput{
		FormID:     "wizard",
		Step:       "review",
		Channel:    "forms",
		OccurredAt: now,
	}

	submitted := BuildFormSubmittedEvent(input, false)
	if submitted.Verb != "form.submitted" || submitted.ObjectType != "form" {
		t.Fatalf("unexpected event: %+v", submitted)
	}
	if submitted.ObjectID != "wizard" || submitted.OccurredAt != now {
		t.Fatalf("input fields not carried: %+v", submitted)
	}
	if submitted.Metadata["valid"] != false || submitted.Metadata["step"] != "review" {
		t.Fatalf("unexpected metadata: %v", submitted.Metadata)
	}

	reset := BuildFormResetEvent(FormEventInput{})
	if reset.Verb != "form.reset" {
		t.Fatalf("unexpected verb: %q", reset.Verb)
	}
	if reset.ObjectID != "form" {
		t.Fatalf("missing form ids fall back to the object type, got %q", reset.ObjectID)
	}
	if reset.Metadata != nil {
		t.Fatalf("no step, no metadata; got %v", reset.Metadata)
	}

	navigated := BuildStepNavigatedEvent(FormEventInput{FormID: "wizard", Step: "account"})
	if navigated.Verb != "step.navigated" || navigated.Metadata["step"] != "account" {
		t.Fatalf("unexpected event: %+v", navigated)
	}
}

func TestBuildFormEventDoesNotMutateInputMetadata(t *testing.T) {
	metadata := map[string]any{"source": "test"}
	event := BuildFormSubmittedEvent(FormEventInput{FormID: "x", Metadata: metadata}, true)

	if _, ok := event.Metadata["valid"]; !ok {
		t.Fatalf("expected valid flag in event metadata")
	}
	if _, ok := metadata["valid"]; ok {
		t.Fatalf("builder must not write into the caller's map")
	}
}
