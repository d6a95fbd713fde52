package fontloader

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/npillmayer/mathfont/core"
	"github.com/npillmayer/mathfont/core/font"
	"github.com/npillmayer/mathfont/core/font/hostenv"
	"github.com/npillmayer/mathfont/core/locate/resources"
)

// Loader creates typecases from font resources. Loader is safe for
// concurrent use.
type Loader struct {
	env         hostenv.Environment
	policy      *Policy
	origins     *ProvenanceTable
	format      font.Format
	size        float64
	observe     func(error)
	unsupported atomic.Bool // graphics environment cannot register fonts
}

// Option configures a Loader.
type Option func(*Loader)

// WithPolicy sets the registration policy. Default is DefaultPolicy().
func WithPolicy(p *Policy) Option {
	return func(l *Loader) {
		l.policy = p
	}
}

// WithProvenance sets the provenance table. Default is GlobalProvenance().
func WithProvenance(pt *ProvenanceTable) Option {
	return func(l *Loader) {
		l.origins = pt
	}
}

// WithFormat sets the outline format font data is expected to be in.
func WithFormat(f font.Format) Option {
	return func(l *Loader) {
		l.format = f
	}
}

// WithSize sets the point size fonts will be scaled to.
func WithSize(size float64) Option {
	return func(l *Loader) {
		if size > 0 {
			l.size = size
		}
	}
}

// WithDiagnostics sets a function to receive every problem the loader
// encounters. Problems are coded core errors (see core.Code).
func WithDiagnostics(observe func(error)) Option {
	return func(l *Loader) {
		l.observe = observe
	}
}

// NewLoader creates a loader operating on a graphics environment. If env
// is nil, the local graphics environment is used.
func NewLoader(env hostenv.Environment, opts ...Option) *Loader {
	c := DefaultConfig()
	l := &Loader{
		env:    env,
		format: c.Format,
		size:   c.PointSize(),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.env == nil {
		l.env = hostenv.LocalGraphicsEnvironment()
	}
	if l.policy == nil {
		l.policy = DefaultPolicy()
	}
	if l.origins == nil {
		l.origins = GlobalProvenance()
	}
	return l
}

// NewLoaderFromConfig creates a loader from a configuration. The setting for
// font registration is applied to the loader's policy.
func NewLoaderFromConfig(env hostenv.Environment, c Config, opts ...Option) *Loader {
	opts = append([]Option{WithFormat(c.Format), WithSize(c.PointSize())}, opts...)
	l := NewLoader(env, opts...)
	l.policy.SetShouldRegisterFonts(c.RegisterFonts)
	tracer().Debugf("font loader with %s", c)
	return l
}

var defaultLoader *Loader

var defaultLoaderCreation sync.Once

// DefaultLoader returns a loader operating on the local graphics
// environment, using the default policy and the global provenance table.
func DefaultLoader() *Loader {
	defaultLoaderCreation.Do(func() {
		defaultLoader = NewLoader(nil)
	})
	return defaultLoader
}

// Load creates a typecase from a font reference, using the default loader.
func Load(ref resources.FontReference) (*font.TypeCase, error) {
	return DefaultLoader().Load(ref)
}

// Policy returns the loader's registration policy.
func (l *Loader) Policy() *Policy {
	return l.policy
}

// Provenance returns the loader's provenance table.
func (l *Loader) Provenance() *ProvenanceTable {
	return l.origins
}

// Size returns the point size fonts are scaled to.
func (l *Loader) Size() float64 {
	return l.size
}

// Load resolves a font reference and creates a typecase from it.
// If the font cannot be found, Load returns nil; it will return an error
// only if closing the font stream fails.
func (l *Loader) Load(ref resources.FontReference) (*font.TypeCase, error) {
	stream, err := resources.Resolve(ref)
	if err != nil { // traced by resolver, if appropriate
		l.notify(err)
		return nil, nil
	}
	return l.CreateFont(stream, ref.Origin())
}

// CreateFont creates a typecase from a stream of font data. The font is
// scaled to the loader's point size, registered with the graphics
// environment if the policy says so, and its origin is recorded.
//
// CreateFont takes ownership of stream and closes it. If stream is nil or
// does not contain a valid font, CreateFont returns nil. The only error
// returned is a failure to close the stream (code core.EINTERNAL), in which
// case the typecase is nil as well.
func (l *Loader) CreateFont(stream io.ReadCloser, origin string) (tc *font.TypeCase, err error) {
	if stream == nil {
		tracer().Debugf("no stream for font %s", origin)
		return nil, nil
	}
	in := &onceCloser{rc: stream}
	defer func() {
		if cerr := in.Close(); cerr != nil {
			err = core.WrapError(cerr, core.EINTERNAL, "closing font stream of %s failed", origin)
			l.report(err)
			tc = nil
		}
	}()
	data, rerr := io.ReadAll(in)
	if rerr != nil {
		l.report(core.WrapError(rerr, core.EINVALID, "cannot read the font: %s", origin))
		return nil, nil
	}
	sf, derr := l.env.CreateFont(l.format, data)
	if derr != nil {
		l.report(core.WrapError(derr, core.EINVALID, "cannot create the font: %s", origin))
		return nil, nil
	}
	if sf.Filepath == "" {
		sf.Filepath = origin
	}
	scaled, serr := l.env.DeriveFont(sf, l.size)
	if serr != nil {
		l.report(core.WrapError(serr, core.EINVALID, "cannot scale the font %s to %.2fpt", origin, l.size))
		return nil, nil
	}
	l.origins.RecordOrigin(scaled, origin)
	if l.policy.ShouldRegisterFonts() {
		l.register(scaled)
	}
	return scaled, nil
}

func (l *Loader) register(tc *font.TypeCase) {
	if l.unsupported.Load() {
		return
	}
	registerer, ok := l.env.(hostenv.FontRegisterer)
	if !ok {
		l.unsupported.Store(true)
		l.warnUnsupported(hostenv.ErrUnsupported)
		return
	}
	accepted, err := tryRegister(registerer, tc)
	switch {
	case errors.Is(err, hostenv.ErrUnsupported):
		l.unsupported.Store(true)
		l.warnUnsupported(err)
	case err != nil:
		l.warnUnsupported(err)
	case !accepted:
		l.report(core.Error(core.EREFUSED, "cannot register the font %s",
			tc.ScalableFontParent().Fontname))
	}
}

// tryRegister calls the graphics environment, turning panics into errors.
func tryRegister(r hostenv.FontRegisterer, tc *font.TypeCase) (accepted bool, err error) {
	defer func() {
		if x := recover(); x != nil {
			accepted = false
			err = core.ErrorWithCode(fmt.Errorf("font registration panicked: %v", x), core.EINTERNAL)
		}
	}()
	return r.RegisterFont(tc)
}

func (l *Loader) warnUnsupported(cause error) {
	if !l.policy.claimWarning() {
		return
	}
	l.report(core.WrapError(cause, core.EUNSUPPORTED,
		"could not register fonts with graphics environment; fonts are usable for layout only"))
}

// report traces a problem and hands it to the diagnostics observer.
func (l *Loader) report(err error) {
	tracer().Errorf("%v", err)
	l.notify(err)
}

func (l *Loader) notify(err error) {
	if l.observe != nil {
		l.observe(err)
	}
}

// onceCloser makes sure a stream is closed no more than once.
type onceCloser struct {
	rc     io.ReadCloser
	closed bool
}

func (oc *onceCloser) Read(p []byte) (int, error) {
	return oc.rc.Read(p)
}

func (oc *onceCloser) Close() error {
	if oc.closed {
		return nil
	}
	oc.closed = true
	return oc.rc.Close()
}
