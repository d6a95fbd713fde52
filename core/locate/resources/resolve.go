package resources

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"

	"github.com/npillmayer/mathfont/core"
)

type resourceType int

// resource types
const (
	unknownResourceType resourceType = iota
	fontResourceType
)

// NotFound returns an application error for a missing resource.
func NotFound(res string, rtype resourceType, cause error) error {
	if cause == nil {
		cause = fmt.Errorf("resource missing: %v", res)
	}
	var s string
	switch rtype {
	case fontResourceType:
		s = fmt.Sprintf("font not found: %s", res)
	default:
		s = fmt.Sprintf("resource not found: %s", res)
	}
	return core.WrapError(cause, core.EMISSING, s)
}

// FontReference identifies where the bytes of a font come from.
// It is implemented by FilePath, ResourceName and OpenStream.
type FontReference interface {
	// Origin is the name a font will be remembered by.
	Origin() string
	open() (io.ReadCloser, error)
}

// FilePath references a font file in the file system.
type FilePath string

// Origin is part of interface FontReference.
func (p FilePath) Origin() string {
	return string(p)
}

func (p FilePath) open() (io.ReadCloser, error) {
	f, err := os.Open(string(p))
	if err == nil {
		err = checkRegular(f)
	}
	if err != nil {
		err = NotFound(string(p), fontResourceType, err)
		tracer().Errorf("%v", err)
		return nil, err
	}
	return bufferedFile{Reader: bufio.NewReader(f), file: f}, nil
}

// checkRegular closes f if it is not a regular file, e.g. a directory.
func checkRegular(f fs.File) error {
	info, err := f.Stat()
	if err == nil && !info.Mode().IsRegular() {
		err = fmt.Errorf("%s is not a regular file", info.Name())
	}
	if err != nil {
		f.Close()
	}
	return err
}

type bufferedFile struct {
	*bufio.Reader
	file *os.File
}

func (bf bufferedFile) Close() error {
	return bf.file.Close()
}

// ResourceName references a font relative to a resource context, usually
// an embedded file system packaged with an application. Name is resolved
// relative to directory Dir of FS.
type ResourceName struct {
	FS   fs.FS
	Dir  string
	Name string
}

// Origin is part of interface FontReference.
func (r ResourceName) Origin() string {
	return r.Name
}

// A missing resource is legitimate (e.g., optional font variants) and
// will be traced on debug level only.
func (r ResourceName) open() (io.ReadCloser, error) {
	if r.FS == nil {
		tracer().Debugf("no resource context for %s", r.Name)
		return nil, NotFound(r.Name, fontResourceType, errors.New("no resource context"))
	}
	name := r.Name
	if r.Dir != "" {
		name = path.Join(r.Dir, r.Name)
	}
	f, err := r.FS.Open(name)
	if err == nil {
		err = checkRegular(f)
	}
	if err != nil {
		tracer().Debugf("resource %s is absent", name)
		return nil, NotFound(name, fontResourceType, err)
	}
	return f, nil
}

// OpenStream references an already opened stream of font data. If R
// implements io.Closer, it will be closed after the font has been created.
type OpenStream struct {
	R    io.Reader
	Name string
}

// Origin is part of interface FontReference.
func (s OpenStream) Origin() string {
	return s.Name
}

func (s OpenStream) open() (io.ReadCloser, error) {
	if s.R == nil {
		return nil, NotFound(s.Name, fontResourceType, errors.New("null stream"))
	}
	if rc, ok := s.R.(io.ReadCloser); ok {
		return rc, nil
	}
	return io.NopCloser(s.R), nil
}

// Resolve opens the stream of bytes a font reference points to. If the
// font cannot be found, Resolve returns an error with code core.EMISSING.
// Ownership of the stream passes to the caller.
func Resolve(ref FontReference) (io.ReadCloser, error) {
	if ref == nil {
		return nil, NotFound("<nil>", unknownResourceType, nil)
	}
	tracer().Debugf("resolving font %s", ref.Origin())
	return ref.open()
}
