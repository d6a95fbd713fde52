package fontloader

import (
	"sync"
	"sync/atomic"
)

// Policy controls whether fonts get registered with the graphics
// environment. Policy is safe for concurrent use.
type Policy struct {
	skipRegistration atomic.Bool // zero value means: do register
	warningShown     atomic.Bool
}

// NewPolicy creates a policy with font registration switched on.
func NewPolicy() *Policy {
	return &Policy{}
}

var defaultPolicy *Policy

var defaultPolicyCreation sync.Once

// DefaultPolicy is the application-wide registration policy.
func DefaultPolicy() *Policy {
	defaultPolicyCreation.Do(func() {
		defaultPolicy = NewPolicy()
	})
	return defaultPolicy
}

// RegisterFonts switches registration of fonts on or off for all loaders
// using the default policy.
func RegisterFonts(b bool) {
	DefaultPolicy().SetShouldRegisterFonts(b)
}

// SetShouldRegisterFonts switches registration on or off. It takes effect
// for all subsequently created fonts.
func (p *Policy) SetShouldRegisterFonts(b bool) {
	p.skipRegistration.Store(!b)
}

// ShouldRegisterFonts returns true if fonts should be registered.
func (p *Policy) ShouldRegisterFonts() bool {
	return !p.skipRegistration.Load()
}

// WarningShown returns true if the warning about the graphics environment
// not supporting registration has been issued.
func (p *Policy) WarningShown() bool {
	return p.warningShown.Load()
}

// claimWarning returns true exactly once per policy.
func (p *Policy) claimWarning() bool {
	return p.warningShown.CompareAndSwap(false, true)
}
