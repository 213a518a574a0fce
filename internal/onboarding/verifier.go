// internal/onboarding/verifier.go
package onboarding

import (
	"strings"
	"sync"
)

// Verifier checks whether a handle's public bio contains the verification
// code. The real implementation would fetch the profile from the social
// API; that capability lives outside this service.
type Verifier interface {
	BioContainsCode(handle, code string) (bool, error)
}

// SimulatedVerifier matches codes against an in-memory bio table. Used in
// development and tests while real bio fetching is unavailable.
type SimulatedVerifier struct {
	mu   sync.RWMutex
	bios map[string]string
}

func NewSimulatedVerifier() *SimulatedVerifier {
	return &SimulatedVerifier{bios: make(map[string]string)}
}

// SetBio records the bio text the simulated fetch will return for a handle.
func (v *SimulatedVerifier) SetBio(handle, bio string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.bios[strings.ToLower(handle)] = bio
}

func (v *SimulatedVerifier) BioContainsCode(handle, code string) (bool, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	bio := v.bios[strings.ToLower(handle)]
	return code != "" && strings.Contains(bio, code), nil
}

var _ Verifier = (*SimulatedVerifier)(nil)
