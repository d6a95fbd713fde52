/*
Package hostenv abstracts the graphics environment fonts are handed to.

A graphics environment is able to decode outline font data and derive
sized typecases from it. Some environments are additionally able to
register fonts, i.e. to make them known to native text rendering by name.
This is an optional capability, expressed by interface FontRegisterer;
clients should probe for it with a type assertion.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package hostenv

import (
	"errors"
	"sync"

	"github.com/npillmayer/mathfont/core/font"
	"github.com/npillmayer/mathfont/core/font/fontregistry"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'tyse.fonts'
func tracer() tracing.Trace {
	return tracing.Select("tyse.fonts")
}

// ErrUnsupported is returned by environments which implement FontRegisterer
// but find themselves unable to register fonts at all.
var ErrUnsupported = errors.New("font registration not supported by graphics environment")

// Environment is the host service for creating fonts.
type Environment interface {
	// CreateFont decodes font data of a given outline format.
	CreateFont(format font.Format, data []byte) (*font.ScalableFont, error)
	// DeriveFont derives a typecase of a given point size.
	DeriveFont(sf *font.ScalableFont, size float64) (*font.TypeCase, error)
}

// FontRegisterer is implemented by environments which support registration
// of fonts. RegisterFont returns false if the environment declined to
// register the font.
type FontRegisterer interface {
	RegisterFont(tc *font.TypeCase) (bool, error)
}

// --- Local environment -----------------------------------------------------

// Local is a graphics environment residing in the local process. Registered
// fonts are stored in a font registry, where native text rendering looks
// them up by name.
type Local struct {
	registry *fontregistry.Registry
	dpi      float64
}

var _ FontRegisterer = (*Local)(nil)

// Option configures a Local environment.
type Option func(*Local)

// WithRegistry sets the registry fonts get registered with. The default is
// the application-wide global registry.
func WithRegistry(reg *fontregistry.Registry) Option {
	return func(l *Local) {
		l.registry = reg
	}
}

// WithDPI sets the resolution of derived typecases.
func WithDPI(dpi float64) Option {
	return func(l *Local) {
		l.dpi = dpi
	}
}

// NewLocal creates a local graphics environment.
func NewLocal(opts ...Option) *Local {
	l := &Local{dpi: 72}
	for _, opt := range opts {
		opt(l)
	}
	if l.registry == nil {
		l.registry = fontregistry.GlobalRegistry()
	}
	return l
}

var localEnv *Local

var localEnvCreation sync.Once

// LocalGraphicsEnvironment returns the application-wide local graphics
// environment, operating on the global font registry.
func LocalGraphicsEnvironment() *Local {
	localEnvCreation.Do(func() {
		localEnv = NewLocal()
	})
	return localEnv
}

// CreateFont is part of interface Environment.
func (l *Local) CreateFont(format font.Format, data []byte) (*font.ScalableFont, error) {
	return font.Decode(format, data)
}

// DeriveFont is part of interface Environment.
func (l *Local) DeriveFont(sf *font.ScalableFont, size float64) (*font.TypeCase, error) {
	return sf.PrepareCase(size, l.dpi)
}

// RegisterFont is part of interface FontRegisterer. A font is refused if a
// different font has already been registered under the same name.
func (l *Local) RegisterFont(tc *font.TypeCase) (bool, error) {
	if tc == nil {
		return false, errors.New("cannot register null typecase")
	}
	ok := l.registry.Register(tc)
	tracer().Debugf("registration of %s accepted = %v", tc, ok)
	return ok, nil
}

// Registry returns the font registry of a local environment.
func (l *Local) Registry() *fontregistry.Registry {
	return l.registry
}

// --- Headless environment --------------------------------------------------

// Headless is a graphics environment without support for font registration,
// as found on older or display-less hosts. It does not implement FontRegisterer.
type Headless struct {
	DPI float64
}

// CreateFont is part of interface Environment.
func (h Headless) CreateFont(format font.Format, data []byte) (*font.ScalableFont, error) {
	return font.Decode(format, data)
}

// DeriveFont is part of interface Environment.
func (h Headless) DeriveFont(sf *font.ScalableFont, size float64) (*font.TypeCase, error) {
	return sf.PrepareCase(size, h.DPI)
}
