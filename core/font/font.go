/*
Package font is for typeface and font handling.

There is a certain confusion in the nomenclature of typesetting. We will
stick to the following definitions:

* A "scalable font" is a font decoded from an outline font file, i.e. a
variant of a typeface with a certain weight, slant, etc.  An example is
"Computer Modern Roman".

* A "typecase" is a scaled font, i.e. a font in a certain size, ready to
be handed to a layout engine. The name is reminiscent of the wooden boxes
of typesetters in the era of metal type.
An example is "Computer Modern Roman 12pt".

Please note that Go (Golang) does use the terms "font" and "face"
differently–actually more or less in an opposite manner.

----------------------------------------------------------------------

BSD License

Copyright (c) 2017-21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software nor the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE. */
package font

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/npillmayer/schuko/tracing"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// tracer traces with key 'tyse.fonts'
func tracer() tracing.Trace {
	return tracing.Select("tyse.fonts")
}

// Format is the outline format a client requests when decoding font data.
type Format int

// Outline formats understood by the decoder.
const (
	TrueType    Format = iota // TrueType outlines (glyf table)
	OpenTypeCFF               // OpenType with CFF outlines
)

func (f Format) String() string {
	switch f {
	case TrueType:
		return "TrueType"
	case OpenTypeCFF:
		return "OpenType/CFF"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ParseFormat maps a configuration string to a format. Unknown names
// result in an error.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "truetype", "ttf":
		return TrueType, nil
	case "opentype", "otf", "cff":
		return OpenTypeCFF, nil
	}
	return TrueType, fmt.Errorf("unknown font format: %q", s)
}

// ErrFormatMismatch is returned if font data does not match the requested
// outline format.
var ErrFormatMismatch = errors.New("font data does not match requested format")

// ScalableFont is a decoded outline font, not yet scaled to a size.
type ScalableFont struct {
	Fontname string
	Filepath string     // file path or resource name
	Binary   []byte     // raw data
	SFNT     *sfnt.Font // the font's container
}

// TypeCase is a scalable font prepared for a given point size.
type TypeCase struct {
	scalableFontParent *ScalableFont
	font               xfont.Face // Go uses 'face' and 'font' in an inverse manner
	size               float64
	dpi                float64
}

// ParseOpenTypeFont decodes font data without checking for a particular
// outline format.
func ParseOpenTypeFont(fbytes []byte) (f *ScalableFont, err error) {
	f = &ScalableFont{Binary: fbytes}
	f.SFNT, err = sfnt.Parse(f.Binary)
	if err != nil {
		return nil, err
	}
	f.Fontname, _ = f.SFNT.Name(nil, sfnt.NameIDFull)
	return
}

// Decode decodes font data, requiring the data to carry outlines of
// format `format`.
func Decode(format Format, fbytes []byte) (*ScalableFont, error) {
	if len(fbytes) < 4 {
		return nil, fmt.Errorf("font data too short (%d bytes)", len(fbytes))
	}
	tag := binary.BigEndian.Uint32(fbytes)
	switch format {
	case TrueType:
		if tag != 0x00010000 && tag != 0x74727565 { // 'true'
			return nil, fmt.Errorf("%w: expected %s", ErrFormatMismatch, format)
		}
	case OpenTypeCFF:
		if tag != 0x4f54544f { // 'OTTO'
			return nil, fmt.Errorf("%w: expected %s", ErrFormatMismatch, format)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrFormatMismatch, format)
	}
	return ParseOpenTypeFont(fbytes)
}

// PrepareCase derives a typecase at a point size, with glyphs rendered
// at the given resolution. A non-positive DPI selects 72 dpi, where one
// point equals one pixel.
func (sf *ScalableFont) PrepareCase(fontsize float64, dpi float64) (*TypeCase, error) {
	if sf == nil || sf.SFNT == nil {
		return nil, errors.New("cannot prepare typecase for null font")
	}
	if fontsize <= 0 {
		return nil, fmt.Errorf("font size must be positive, is %g", fontsize)
	}
	if dpi <= 0 {
		dpi = 72
	}
	options := &opentype.FaceOptions{
		Size:    fontsize,
		DPI:     dpi,
		Hinting: xfont.HintingNone,
	}
	f, err := opentype.NewFace(sf.SFNT, options)
	if err != nil {
		return nil, err
	}
	tracer().Debugf("prepared typecase %s at %.2fpt", sf.Fontname, fontsize)
	return &TypeCase{
		scalableFontParent: sf,
		font:               f,
		size:               fontsize,
		dpi:                dpi,
	}, nil
}

// ScalableFontParent returns the font a typecase has been derived from.
func (tc *TypeCase) ScalableFontParent() *ScalableFont {
	return tc.scalableFontParent
}

// PtSize returns the point size of a typecase.
func (tc *TypeCase) PtSize() float64 {
	return tc.size
}

// DPI returns the resolution a typecase renders at.
func (tc *TypeCase) DPI() float64 {
	return tc.dpi
}

// Face returns the Go font face for measuring and drawing glyphs.
func (tc *TypeCase) Face() xfont.Face {
	return tc.font
}

func (tc *TypeCase) String() string {
	if tc == nil || tc.scalableFontParent == nil {
		return "typecase(null)"
	}
	return fmt.Sprintf("typecase(%s@%.2fpt)", tc.scalableFontParent.Fontname, tc.size)
}

// --- Fallback font ---------------------------------------------------------

// FallbackFont returns a font to be used if everything else failes. It is
// always present. Currently we use Go Sans.
func FallbackFont() *ScalableFont {
	fallbackFontLoading.Do(func() {
		fallbackFont = loadFallbackFont()
	})
	return fallbackFont
}

var fallbackFontLoading sync.Once

// fallbackFont is a font that is used if everything else failes.
// Currently we use Go Sans.
var fallbackFont *ScalableFont

func loadFallbackFont() *ScalableFont {
	var err error
	gofont := &ScalableFont{
		Fontname: "Go Sans",
		Filepath: "internal",
		Binary:   goregular.TTF,
	}
	gofont.SFNT, err = sfnt.Parse(gofont.Binary)
	if err != nil {
		panic("cannot load default font") // this cannot happen
	}
	return gofont
}
