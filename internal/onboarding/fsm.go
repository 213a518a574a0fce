// internal/onboarding/fsm.go
package onboarding

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// State of a participant's chat onboarding flow.
type State string

const (
	StateIdle                  State = "idle"
	StateAwaitingHandle        State = "awaiting_handle"
	StateAwaitingBioUpdate     State = "awaiting_bio_update"
	StateAwaitingProfileAnswer State = "awaiting_profile_answer"
)

// ProfileSteps is the number of persona questions asked during profiling.
const ProfileSteps = 3

// DefaultTimeout returns a stalled flow to idle so the participant can
// start over instead of being stuck waiting for a message that never comes.
const DefaultTimeout = 15 * time.Minute

type session struct {
	state     State
	step      int
	code      string
	updatedAt time.Time
}

// FSM tracks each participant's onboarding conversation explicitly, keyed
// by participant id, instead of ad hoc per-chat listeners.
type FSM struct {
	mu       sync.Mutex
	sessions map[int]*session

	Timeout time.Duration
	Now     func() time.Time
	Rand    *rand.Rand
}

func NewFSM() *FSM {
	return &FSM{
		sessions: make(map[int]*session),
		Timeout:  DefaultTimeout,
		Now:      time.Now,
		Rand:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// current returns the live session, expiring it back to idle first.
func (f *FSM) current(participantID int) *session {
	s, ok := f.sessions[participantID]
	if !ok {
		s = &session{state: StateIdle}
		f.sessions[participantID] = s
	} else if s.state != StateIdle && f.Now().Sub(s.updatedAt) > f.Timeout {
		s.state = StateIdle
		s.step = 0
		s.code = ""
	}
	return s
}

func (f *FSM) set(s *session, state State) {
	s.state = state
	s.updatedAt = f.Now()
}

// StateOf reports the participant's current state and profiling step.
func (f *FSM) StateOf(participantID int) (State, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := f.current(participantID)
	return s.state, s.step
}

// StartOnboarding moves an idle participant to awaiting their handle.
func (f *FSM) StartOnboarding(participantID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	s := f.current(participantID)
	if s.state != StateIdle {
		return fmt.Errorf("participant %d already in flow: %s", participantID, s.state)
	}
	f.set(s, StateAwaitingHandle)
	return nil
}

// SubmitHandle consumes the handle message and hands back a verification
// code the participant must place in their bio.
func (f *FSM) SubmitHandle(participantID int) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	s := f.current(participantID)
	if s.state != StateAwaitingHandle {
		return "", fmt.Errorf("participant %d not awaiting handle: %s", participantID, s.state)
	}
	s.code = fmt.Sprintf("HT-%06d", f.Rand.Intn(1000000))
	f.set(s, StateAwaitingBioUpdate)
	return s.code, nil
}

// Code returns the pending verification code, empty if none.
func (f *FSM) Code(participantID int) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current(participantID).code
}

// ConfirmBioUpdated completes verification and moves into profiling.
func (f *FSM) ConfirmBioUpdated(participantID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	s := f.current(participantID)
	if s.state != StateAwaitingBioUpdate {
		return fmt.Errorf("participant %d not awaiting bio update: %s", participantID, s.state)
	}
	s.code = ""
	s.step = 1
	f.set(s, StateAwaitingProfileAnswer)
	return nil
}

// SubmitProfileAnswer advances the profiling questionnaire one step.
// Returns true once the final answer lands and the flow is back to idle.
func (f *FSM) SubmitProfileAnswer(participantID int) (done bool, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	s := f.current(participantID)
	if s.state != StateAwaitingProfileAnswer {
		return false, fmt.Errorf("participant %d not awaiting profile answer: %s", participantID, s.state)
	}
	if s.step >= ProfileSteps {
		s.step = 0
		f.set(s, StateIdle)
		return true, nil
	}
	s.step++
	f.set(s, StateAwaitingProfileAnswer)
	return false, nil
}

// Reset drops the participant back to idle unconditionally.
func (f *FSM) Reset(participantID int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	s := f.current(participantID)
	s.step = 0
	s.code = ""
	f.set(s, StateIdle)
}
