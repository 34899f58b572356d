package draft

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/goliatone/go-formstate/valuetree"
)

type fakeTarget struct {
	values   valuetree.Tree
	restored []valuetree.Tree
}

func (t *fakeTarget) Values() valuetree.Tree { return t.values }

func (t *fakeTarget) RestoreValues(values valuetree.Tree) {
	t.restored = append(t.restored, values)
}

func TestRefIdentifier(t *testing.T) {
	cases := []struct {
		ref  Ref
		want string
		err  bool
	}{
		{Ref{FormID: "signup"}, "form/signup", false},
		{Ref{FormID: "signup", Owner: "user-1"}, "form/user-1/signup", false},
		{Ref{}, "", true},
	}
	for _, tc := range cases {
		got, err := tc.ref.Identifier()
		if tc.err {
			if err == nil {
				t.Fatalf("expected error for %+v", tc.ref)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("Identifier(%+v) = %q, %v; want %q", tc.ref, got, err, tc.want)
		}
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	ref := Ref{FormID: "signup", Owner: "user-1"}
	values := valuetree.Tree{"profile": map[string]any{"email": "a@b.c"}}

	if _, _, ok, err := store.Load(ctx, ref); err != nil || ok {
		t.Fatalf("expected empty load, got ok=%v err=%v", ok, err)
	}

	saved, err := store.Save(ctx, ref, values, Meta{ETag: "v1"})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.ETag != "v1" {
		t.Fatalf("unexpected meta: %+v", saved)
	}

	loaded, meta, ok, err := store.Load(ctx, ref)
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if meta.ETag != "v1" {
		t.Fatalf("unexpected meta: %+v", meta)
	}
	if diff := cmp.Diff(values, loaded); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}

	// Stored trees are detached from caller mutations.
	loaded["profile"].(map[string]any)["email"] = "mutated"
	reloaded, _, _, _ := store.Load(ctx, ref)
	if reloaded["profile"].(map[string]any)["email"] != "a@b.c" {
		t.Fatalf("stored tree should be isolated from loaded copies")
	}

	// Owners do not share drafts.
	if _, _, ok, _ := store.Load(ctx, Ref{FormID: "signup"}); ok {
		t.Fatalf("unscoped ref must not see the owner's draft")
	}
}

func TestManagerRestore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	manager := Manager{Store: store}
	ref := Ref{FormID: "signup"}
	target := &fakeTarget{}

	applied, err := manager.Restore(ctx, ref, target)
	if err != nil || applied {
		t.Fatalf("missing drafts are not an error: applied=%v err=%v", applied, err)
	}
	if len(target.restored) != 0 {
		t.Fatalf("nothing should be applied")
	}

	values := valuetree.Tree{"email": "a@b.c"}
	if _, err := store.Save(ctx, ref, values, Meta{}); err != nil {
		t.Fatalf("save: %v", err)
	}

	applied, err = manager.Restore(ctx, ref, target)
	if err != nil || !applied {
		t.Fatalf("expected restore: applied=%v err=%v", applied, err)
	}
	if diff := cmp.Diff(values, target.restored[0]); diff != "" {
		t.Fatalf("restored values mismatch (-want +got):\n%s", diff)
	}
}

func TestManagerCaptureETagGuard(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	manager := Manager{Store: store}
	ref := Ref{FormID: "signup"}
	target := &fakeTarget{values: valuetree.Tree{"email": "a@b.c"}}

	// First capture against an empty store always succeeds.
	meta, err := manager.Capture(ctx, ref, target, Meta{ETag: "v1"})
	if err != nil {
		t.Fatalf("capture: %v", err)
	}
	if meta.ETag != "v1" {
		t.Fatalf("unexpected meta: %+v", meta)
	}

	// Matching etag updates in place.
	target.values = valuetree.Tree{"email": "b@b.c"}
	if _, err := manager.Capture(ctx, ref, target, Meta{ETag: "v1"}); err != nil {
		t.Fatalf("matching etag capture: %v", err)
	}

	// A stale etag is rejected.
	_, err = manager.Capture(ctx, ref, target, Meta{ETag: "v0"})
	if !errors.Is(err, ErrETagMismatch) {
		t.Fatalf("expected ErrETagMismatch, got %v", err)
	}

	// The rejected write must not land.
	values, _, _, _ := store.Load(ctx, ref)
	if values["email"] != "b@b.c" {
		t.Fatalf("stale capture must not overwrite, got %v", values)
	}
}

func TestManagerRequiresStoreAndTarget(t *testing.T) {
	ctx := context.Background()
	ref := Ref{FormID: "signup"}

	if _, err := (Manager{}).Restore(ctx, ref, &fakeTarget{}); err == nil {
		t.Fatalf("expected missing store error")
	}
	if _, err := (Manager{Store: NewMemoryStore()}).Restore(ctx, ref, nil); err == nil {
		t.Fatalf("expected missing target error")
	}
	if _, err := (Manager{}).Capture(ctx, ref, &fakeTarget{}, Meta{}); err == nil {
		t.Fatalf("expected missing store error")
	}
}
