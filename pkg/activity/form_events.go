package activity

import (
	"strings"
	"time"
)

// FormEventInput describes the common fields for form lifecycle events.
type FormEventInput struct {
	ActorID    string
	UserID     string
	TenantID   string
	FormID     string
	Channel    string
	Step       string
	Metadata   map[string]any
	OccurredAt time.Time
}

// BuildFormSubmittedEvent constructs a normalized event for a form
// submission. valid records which submit callback fired.
func BuildFormSubmittedEvent(input FormEventInput, valid bool) Event {
	event := buildFormEvent("form.submitted", input)
	event.Metadata = ensureMetadata(event.Metadata)
	event.Metadata["valid"] = valid
	return event
}

// BuildFormResetEvent constructs a normalized event for a form reset.
func BuildFormResetEvent(input FormEventInput) Event {
	return buildFormEvent("form.reset", input)
}

// BuildStepNavigatedEvent constructs a normalized event for a step change.
func BuildStepNavigatedEvent(input FormEventInput) Event {
	return buildFormEvent("step.navigated", input)
}

func buildFormEvent(verb string, input FormEventInput) Event {
	metadata := cloneMap(input.Metadata)
	if input.Step != "" {
		metadata = ensureMetadata(metadata)
		metadata["step"] = input.Step
	}

	objectID := strings.TrimSpace(input.FormID)
	if objectID == "" {
		objectID = "form"
	}

	return Event{
		Verb:       verb,
		ActorID:    strings.TrimSpace(input.ActorID),
		UserID:     strings.TrimSpace(input.UserID),
		TenantID:   strings.TrimSpace(input.TenantID),
		ObjectType: "form",
		ObjectID:   objectID,
		Channel:    strings.TrimSpace(input.Channel),
		Metadata:   metadata,
		OccurredAt: input.OccurredAt,
	}
}

func ensureMetadata(meta map[string]any) map[string]any {
	if meta == nil {
		return map[string]any{}
	}
	return meta
}
