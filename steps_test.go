package formstate

import "testing"

func registerWizardSteps(store *Store) {
	store.RegisterStep("account", StepDescriptor{Label: "Account", Order: 0})
	store.RegisterStep("profile", StepDescriptor{Label: "Profile", Order: 1})
	store.RegisterStep("review", StepDescriptor{Label: "Review", Order: 2})
}

func TestRegisterStepSortsByOrderStable(t *testing.T) {
	store := New()
	store.RegisterStep("c", StepDescriptor{Order: 2})
	store.RegisterStep("a", StepDescriptor{Order: 0})
	store.RegisterStep("b1", StepDescriptor{Order: 1})
	store.RegisterStep("b2", StepDescriptor{Order: 1})

	var names []string
	for _, step := range store.Steps() {
		names = append(names, step.Name)
	}
	want := []string{"a", "b1", "b2", "c"}
	for i, name := range want {
		if names[i] != name {
			t.Fatalf("step order = %v, want %v", names, want)
		}
	}
}

func TestFirstRegisteredStepBecomesCurrent(t *testing.T) {
	store := New()
	store.RegisterStep("later", StepDescriptor{Order: 5})
	store.RegisterStep("earlier", StepDescriptor{Order: 0})

	form := store.Form()
	if form.CurrentStepName != "later" {
		t.Fatalf("registration order decides the starting step, got %q", form.CurrentStepName)
	}
	step, _ := store.Step("later")
	if !step.IsVisited {
		t.Fatalf("the starting step counts as visited")
	}
}

func TestInitialStepAppliesOnResetOnly(t *testing.T) {
	store := New(WithInitialStep("profile"))
	registerWizardSteps(store)

	if got := store.Form().CurrentStepName; got != "account" {
		t.Fatalf("before reset the first registrant is current, got %q", got)
	}

	store.Reset()
	if got := store.Form().CurrentStepName; got != "profile" {
		t.Fatalf("reset must land on the configured initial step, got %q", got)
	}
	step, _ := store.Step("profile")
	if !step.IsVisited {
		t.Fatalf("the step a reset lands on counts as visited")
	}
}

func TestRegisterStepIgnoresDuplicates(t *testing.T) {
	store := New()
	store.RegisterStep("account", StepDescriptor{Label: "First", Order: 0})
	store.RegisterStep("account", StepDescriptor{Label: "Second", Order: 9})

	step, _ := store.Step("account")
	if step.Label != "First" || len(store.Steps()) != 1 {
		t.Fatalf("duplicate registration should be a no-op, got %+v", step)
	}
}

func TestGoToStepSkipsDisabledAndUnknownTargets(t *testing.T) {
	store := New()
	registerWizardSteps(store)
	disabled := false
	store.UpdateStep("review", StepPatch{Enabled: &disabled})

	store.GoToStep("review")
	if store.Form().CurrentStepName != "account" {
		t.Fatalf("disabled target should not become current")
	}
	store.GoToStep("missing")
	if store.Form().CurrentStepName != "account" {
		t.Fatalf("unknown target should not become current")
	}

	store.GoToStep("profile")
	form := store.Form()
	if form.CurrentStepName != "profile" || !form.CurrentStep.IsVisited {
		t.Fatalf("navigation should land and mark visited: %+v", form.CurrentStep)
	}
}

func TestNextPrevStepNavigateEnabledSequence(t *testing.T) {
	store := New()
	registerWizardSteps(store)
	disabled := false
	store.UpdateStep("profile", StepPatch{Enabled: &disabled})

	store.NextStep()
	if got := store.Form().CurrentStepName; got != "review" {
		t.Fatalf("NextStep should skip disabled steps, got %q", got)
	}

	store.NextStep()
	if got := store.Form().CurrentStepName; got != "review" {
		t.Fatalf("NextStep on the last enabled step is a no-op, got %q", got)
	}

	store.PrevStep()
	if got := store.Form().CurrentStepName; got != "account" {
		t.Fatalf("PrevStep should skip disabled steps, got %q", got)
	}

	store.PrevStep()
	if got := store.Form().CurrentStepName; got != "account" {
		t.Fatalf("PrevStep on the first enabled step is a no-op, got %q", got)
	}
}

func TestUpdateStepReordersSequence(t *testing.T) {
	store := New()
	registerWizardSteps(store)

	order := -1
	store.UpdateStep("review", StepPatch{Order: &order})
	if store.Steps()[0].Name != "review" {
		t.Fatalf("order patch should re-sort the sequence")
	}
}

func TestUnregisterStepLeavesCurrentDangling(t *testing.T) {
	store := New()
	registerWizardSteps(store)
	store.GoToStep("profile")

	store.UnregisterStep("profile")
	form := store.Form()
	if form.CurrentStepName != "profile" {
		t.Fatalf("current step name stays until the next navigation, got %q",
			form.CurrentStepName)
	}
	if form.CurrentStep != nil {
		t.Fatalf("dangling current step should resolve to no step view")
	}

	// Relative navigation from a dangling step is a no-op.
	store.NextStep()
	if store.Form().CurrentStepName != "profile" {
		t.Fatalf("relative navigation has no anchor after unregistration")
	}
}

func TestStepViewIndexCountsEnabledSteps(t *testing.T) {
	store := New()
	registerWizardSteps(store)
	disabled := false
	store.UpdateStep("profile", StepPatch{Enabled: &disabled})

	account, _ := store.Step("account")
	profile, _ := store.Step("profile")
	review, _ := store.Step("review")
	if account.Index != 0 || review.Index != 1 {
		t.Fatalf("enabled indexes = %d/%d, want 0/1", account.Index, review.Index)
	}
	if profile.Index != -1 {
		t.Fatalf("disabled steps report index -1, got %d", profile.Index)
	}
}
