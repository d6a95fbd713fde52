package resources

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/npillmayer/mathfont/core"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveMissingFile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.resources")
	defer teardown()
	//
	missing := filepath.Join(t.TempDir(), "cmr10.ttf")
	stream, err := Resolve(FilePath(missing))
	assert.Nil(t, stream)
	require.Error(t, err)
	assert.Equal(t, core.EMISSING, core.Code(err))
	assert.Contains(t, core.UserMessage(err), "cmr10.ttf")
	//
	dir := t.TempDir()
	stream, err = Resolve(FilePath(dir))
	assert.Nil(t, stream, "a directory is not a font file")
	require.Error(t, err)
	assert.Equal(t, core.EMISSING, core.Code(err))
}

func TestResolveFile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.resources")
	defer teardown()
	//
	fontpath := filepath.Join(t.TempDir(), "font.bin")
	require.NoError(t, os.WriteFile(fontpath, []byte("not really a font"), 0644))
	stream, err := Resolve(FilePath(fontpath))
	require.NoError(t, err)
	defer stream.Close()
	content, err := io.ReadAll(stream)
	require.NoError(t, err)
	assert.Equal(t, "not really a font", string(content))
}

func TestResolveResourceName(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.resources")
	defer teardown()
	//
	fsys := fstest.MapFS{
		"fonts/cmr10.ttf": &fstest.MapFile{Data: []byte{0, 1, 0, 0}},
	}
	stream, err := Resolve(ResourceName{FS: fsys, Dir: "fonts", Name: "cmr10.ttf"})
	require.NoError(t, err)
	stream.Close()
	//
	stream, err = Resolve(ResourceName{FS: fsys, Dir: "fonts", Name: "cmbx10.ttf"})
	assert.Nil(t, stream)
	assert.Equal(t, core.EMISSING, core.Code(err))
	//
	stream, err = Resolve(ResourceName{FS: fsys, Name: "fonts"})
	assert.Nil(t, stream, "a directory is not a font resource")
	assert.Equal(t, core.EMISSING, core.Code(err))
	//
	_, err = Resolve(ResourceName{Name: "cmr10.ttf"})
	assert.Equal(t, core.EMISSING, core.Code(err), "missing context is an absent resource")
}

type closingReader struct {
	io.Reader
	closed int
}

func (c *closingReader) Close() error {
	c.closed++
	return nil
}

func TestResolveOpenStream(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.resources")
	defer teardown()
	//
	cr := &closingReader{Reader: bytes.NewReader([]byte("x"))}
	stream, err := Resolve(OpenStream{R: cr, Name: "stream"})
	require.NoError(t, err)
	assert.Same(t, cr, stream, "closable streams are passed through unchanged")
	//
	stream, err = Resolve(OpenStream{R: bytes.NewReader(nil), Name: "plain"})
	require.NoError(t, err)
	assert.NoError(t, stream.Close())
	//
	_, err = Resolve(nil)
	assert.Error(t, err)
}
