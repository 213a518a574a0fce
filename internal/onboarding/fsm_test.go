package onboarding

import (
	"math/rand"
	"strings"
	"testing"
	"time"
)

func newTestFSM(now *time.Time) *FSM {
	f := NewFSM()
	f.Rand = rand.New(rand.NewSource(1))
	f.Now = func() time.Time { return *now }
	return f
}

func TestFullOnboardingFlow(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	f := newTestFSM(&now)

	if err := f.StartOnboarding(1); err != nil {
		t.Fatalf("StartOnboarding: %v", err)
	}
	if state, _ := f.StateOf(1); state != StateAwaitingHandle {
		t.Fatalf("expected awaiting_handle, got %s", state)
	}

	code, err := f.SubmitHandle(1)
	if err != nil {
		t.Fatalf("SubmitHandle: %v", err)
	}
	if !strings.HasPrefix(code, "HT-") {
		t.Errorf("unexpected code format: %s", code)
	}
	if state, _ := f.StateOf(1); state != StateAwaitingBioUpdate {
		t.Fatalf("expected awaiting_bio_update, got %s", state)
	}
	if f.Code(1) != code {
		t.Errorf("code not retained")
	}

	if err := f.ConfirmBioUpdated(1); err != nil {
		t.Fatalf("ConfirmBioUpdated: %v", err)
	}

	for i := 1; i < ProfileSteps; i++ {
		done, err := f.SubmitProfileAnswer(1)
		if err != nil {
			t.Fatalf("SubmitProfileAnswer step %d: %v", i, err)
		}
		if done {
			t.Fatalf("flow finished early at step %d", i)
		}
	}

	done, err := f.SubmitProfileAnswer(1)
	if err != nil {
		t.Fatalf("final SubmitProfileAnswer: %v", err)
	}
	if !done {
		t.Fatalf("expected flow to finish")
	}
	if state, _ := f.StateOf(1); state != StateIdle {
		t.Errorf("expected idle after completion, got %s", state)
	}
}

func TestOutOfOrderMessagesRejected(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	f := newTestFSM(&now)

	if _, err := f.SubmitHandle(1); err == nil {
		t.Errorf("expected error submitting handle while idle")
	}
	if err := f.ConfirmBioUpdated(1); err == nil {
		t.Errorf("expected error confirming bio while idle")
	}

	if err := f.StartOnboarding(1); err != nil {
		t.Fatalf("StartOnboarding: %v", err)
	}
	if err := f.StartOnboarding(1); err == nil {
		t.Errorf("expected error restarting an active flow")
	}
}

func TestStalledFlowTimesOutToIdle(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	f := newTestFSM(&now)

	if err := f.StartOnboarding(1); err != nil {
		t.Fatalf("StartOnboarding: %v", err)
	}

	now = now.Add(DefaultTimeout + time.Minute)

	if state, _ := f.StateOf(1); state != StateIdle {
		t.Fatalf("expected idle after timeout, got %s", state)
	}
	// A fresh flow can start again.
	if err := f.StartOnboarding(1); err != nil {
		t.Errorf("expected restart after timeout, got %v", err)
	}
}

func TestSimulatedVerifier(t *testing.T) {
	v := NewSimulatedVerifier()
	v.SetBio("amina_k", "creator | coffee | HT-001234")

	ok, err := v.BioContainsCode("Amina_K", "HT-001234")
	if err != nil || !ok {
		t.Errorf("expected code to verify, got ok=%v err=%v", ok, err)
	}

	ok, _ = v.BioContainsCode("amina_k", "HT-999999")
	if ok {
		t.Errorf("wrong code must not verify")
	}

	ok, _ = v.BioContainsCode("amina_k", "")
	if ok {
		t.Errorf("empty code must not verify")
	}
}
