package fontloader

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/npillmayer/mathfont/core"
	"github.com/npillmayer/mathfont/core/dimen"
	"github.com/npillmayer/mathfont/core/font"
	"github.com/npillmayer/schuko"
)

// Configuration keys
const (
	KeyPixelsPerPoint = "font.pixels-per-point"
	KeyScaleFactor    = "font.scale-factor"
	KeySize           = "font.size"
	KeyRegister       = "font.register"
	KeyFormat         = "font.format"
	KeyDPI            = "font.dpi"
)

// Config holds the parameters a loader creates fonts with.
type Config struct {
	PixelsPerPoint  float64     // supplied by the layout engine
	FontScaleFactor float64     // supplied by the layout engine
	Size            dimen.Dimen // explicit font size, overrides the product of the above
	RegisterFonts   bool
	Format          font.Format
	DPI             float64
}

// DefaultConfig returns the configuration used for formula rendering
// without any client settings.
func DefaultConfig() Config {
	return Config{
		PixelsPerPoint:  1.0,
		FontScaleFactor: 100.0,
		RegisterFonts:   true,
		Format:          font.TrueType,
		DPI:             72,
	}
}

// PointSize returns the size fonts will be scaled to.
func (c Config) PointSize() float64 {
	if c.Size > 0 {
		return c.Size.PrinterPoints()
	}
	return c.PixelsPerPoint * c.FontScaleFactor
}

// ConfigFrom reads a loader configuration from an application configuration.
// Keys not set keep their default values.
func ConfigFrom(conf schuko.Configuration) (Config, error) {
	c := DefaultConfig()
	if conf == nil {
		return c, nil
	}
	var err error
	if c.PixelsPerPoint, err = positive(conf, KeyPixelsPerPoint, c.PixelsPerPoint); err != nil {
		return c, err
	}
	if c.FontScaleFactor, err = positive(conf, KeyScaleFactor, c.FontScaleFactor); err != nil {
		return c, err
	}
	if c.DPI, err = positive(conf, KeyDPI, c.DPI); err != nil {
		return c, err
	}
	if s := strings.TrimSpace(conf.GetString(KeySize)); s != "" {
		if c.Size, err = dimen.ParseDimen(s); err != nil || c.Size <= 0 {
			return c, core.WrapError(err, core.EINVALID, "configuration %s: invalid font size %q", KeySize, s)
		}
	}
	if s := strings.TrimSpace(conf.GetString(KeyRegister)); s != "" {
		if c.RegisterFonts, err = strconv.ParseBool(s); err != nil {
			return c, core.WrapError(err, core.EINVALID, "configuration %s: not a boolean: %q", KeyRegister, s)
		}
	}
	if c.Format, err = font.ParseFormat(conf.GetString(KeyFormat)); err != nil {
		return c, core.WrapError(err, core.EINVALID, "configuration %s: %v", KeyFormat, err)
	}
	return c, nil
}

func positive(conf schuko.Configuration, key string, dflt float64) (float64, error) {
	s := strings.TrimSpace(conf.GetString(key))
	if s == "" {
		return dflt, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return dflt, core.WrapError(err, core.EINVALID,
			"configuration %s: expected positive number, is %q", key, s)
	}
	return v, nil
}

func (c Config) String() string {
	return fmt.Sprintf("config(%.2fpt, %s, register=%v, %.0fdpi)", c.PointSize(), c.Format,
		c.RegisterFonts, c.DPI)
}
