// Package draft defines persistence-facing contracts for saving and
// restoring in-progress form value trees. Store implementations only load
// and save one snapshot per Ref; Manager orchestrates capture from and
// restore into a form store, leaving the injection semantics to the core
// formstate primitives.
package draft

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goliatone/go-formstate/valuetree"
)

// ErrETagMismatch indicates a concurrent draft write was detected.
var ErrETagMismatch = errors.New("draft: etag mismatch")

// Ref identifies one persisted draft for one form.
type Ref struct {
	FormID string
	// Owner scopes the draft to a user or session; optional.
	Owner string
}

// Identifier returns the canonical storage key for the reference.
func (r Ref) Identifier() (string, error) {
	if r.FormID == "" {
		return "", fmt.Errorf("draft: form id is required")
	}
	if r.Owner == "" {
		return fmt.Sprintf("form/%s", r.FormID), nil
	}
	return fmt.Sprintf("form/%s/%s", r.Owner, r.FormID), nil
}

// Meta is storage-owned metadata used for audit and concurrency control.
type Meta struct {
	SnapshotID string            `json:"snapshot_id,omitempty"`
	ETag       string            `json:"etag,omitempty"`
	UpdatedAt  time.Time         `json:"updated_at,omitempty"`
	Extra      map[string]string `json:"extra,omitempty"`
}

// Store loads/saves one draft value tree per reference.
type Store interface {
	Load(ctx context.Context, ref Ref) (values valuetree.Tree, meta Meta, ok bool, err error)
	Save(ctx context.Context, ref Ref, values valuetree.Tree, meta Meta) (Meta, error)
}

// Target is the slice of the form store a Manager drives. *formstate.Store
// satisfies it.
type Target interface {
	Values() valuetree.Tree
	RestoreValues(values valuetree.Tree)
}

// Manager captures drafts from and restores drafts into a form store.
type Manager struct {
	Store Store
}

// Restore loads the draft for ref and injects it into target without
// dirtying pristine state. Missing drafts are not an error; the boolean
// reports whether one was applied.
func (m Manager) Restore(ctx context.Context, ref Ref, target Target) (bool, error) {
	if m.Store == nil {
		return false, fmt.Errorf("draft: store is required")
	}
	if target == nil {
		return false, fmt.Errorf("draft: target is required")
	}
	values, _, ok, err := m.Store.Load(ctx, ref)
	if err != nil {
		return false, fmt.Errorf("draft: load %q: %w", ref.FormID, err)
	}
	if !ok {
		return false, nil
	}
	target.RestoreValues(values)
	return true, nil
}

// Capture saves the target's current value tree under ref. A non-empty
// meta.ETag must match the stored one or the save is rejected with
// ErrETagMismatch.
func (m Manager) Capture(ctx context.Context, ref Ref, target Target, meta Meta) (Meta, error) {
	if m.Store == nil {
		return Meta{}, fmt.Errorf("draft: store is required")
	}
	if target == nil {
		return Meta{}, fmt.Errorf("draft: target is required")
	}

	_, storedMeta, ok, err := m.Store.Load(ctx, ref)
	if err != nil {
		return Meta{}, fmt.Errorf("draft: load %q: %w", ref.FormID, err)
	}
	if !ok {
		storedMeta = Meta{}
	}
	if meta.ETag != "" && storedMeta.ETag != "" && meta.ETag != storedMeta.ETag {
		return storedMeta, fmt.Errorf("%w: expected %q, got %q", ErrETagMismatch, storedMeta.ETag, meta.ETag)
	}

	saveMeta := mergeMeta(storedMeta, meta)
	savedMeta, err := m.Store.Save(ctx, ref, target.Values(), saveMeta)
	if err != nil {
		return storedMeta, fmt.Errorf("draft: save %q: %w", ref.FormID, err)
	}
	return savedMeta, nil
}

func mergeMeta(base, override Meta) Meta {
	out := base
	if override.SnapshotID != "" {
		out.SnapshotID = override.SnapshotID
	}
	if override.ETag != "" {
		out.ETag = override.ETag
	}
	if !override.UpdatedAt.IsZero() {
		out.UpdatedAt = override.UpdatedAt
	}
	if override.Extra != nil {
		out.Extra = override.Extra
	}
	return out
}
