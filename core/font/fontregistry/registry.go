package fontregistry

import (
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/derekparker/trie"
	"github.com/npillmayer/mathfont/core/font"
	"github.com/npillmayer/schuko/tracing"
	xfont "golang.org/x/image/font"
	"golang.org/x/text/cases"
)

// Registry is a type for holding information about fonts registered with
// a graphics environment. Fonts are registered under their normalized name
// and are retrievable as typecases of any size.
type Registry struct {
	sync.Mutex
	fonts     map[string]*font.ScalableFont
	typecases map[string]*font.TypeCase
	names     *trie.Trie
}

var globalFontRegistry *Registry

var globalRegistryCreation sync.Once

// GlobalRegistry is an application-wide singleton to hold information about
// registered fonts and typecases.
func GlobalRegistry() *Registry {
	globalRegistryCreation.Do(func() {
		globalFontRegistry = NewRegistry()
	})
	return globalFontRegistry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	fr := &Registry{
		fonts:     make(map[string]*font.ScalableFont),
		typecases: make(map[string]*font.TypeCase),
		names:     trie.New(),
	}
	return fr
}

// StoreFont pushes a font into the registry if it isn't contained yet.
//
// The font will be stored using the normalized font name as a key. If this
// key is already associated with a different font, that font will not be
// overridden and StoreFont returns false. Storing the same font twice is
// not an error.
func (fr *Registry) StoreFont(normalizedName string, f *font.ScalableFont) bool {
	if f == nil {
		tracer().Errorf("registry cannot store null font")
		return false
	}
	fr.Lock()
	defer fr.Unlock()
	if present, ok := fr.fonts[normalizedName]; ok {
		if present != f {
			tracer().Debugf("registry already holds a font %s", normalizedName)
			return false
		}
		return true
	}
	tracer().Debugf("registry stores font %s as %s", f.Fontname, normalizedName)
	fr.fonts[normalizedName] = f
	fr.names.Add(normalizedName, f)
	return true
}

// Register stores the parent font of a typecase under its normalized name
// and caches the typecase at its size. Register returns false if a
// different font is already registered under the same name.
func (fr *Registry) Register(tc *font.TypeCase) bool {
	if tc == nil || tc.ScalableFontParent() == nil {
		tracer().Errorf("registry cannot register null typecase")
		return false
	}
	sf := tc.ScalableFontParent()
	style, weight := GuessStyleAndWeight(sf.Fontname)
	normalizedName := NormalizeFontname(sf.Fontname, style, weight)
	if !fr.StoreFont(normalizedName, sf) {
		return false
	}
	tname := appendSize(normalizedName, float32(tc.PtSize()))
	fr.Lock()
	defer fr.Unlock()
	if _, ok := fr.typecases[tname]; !ok {
		fr.typecases[tname] = tc
	}
	return true
}

// TypeCase returns a concrete typecase with a given font and size.
// If a suitable typecase has already been cached, TypeCase will return the cached
// typecase. If a suitable font has previously been stored under key
// `normalizedName`, a typecase will be derived from this font.
//
// If no typecase can be produced, TypeCase will derive one from a system-wide
// fallback font and return it, together with an error message.
func (fr *Registry) TypeCase(normalizedName string, size float32) (*font.TypeCase, error) {
	tracer().Debugf("registry searches for font %s at %.2f", normalizedName, size)
	tname := appendSize(normalizedName, size)
	fr.Lock()
	defer fr.Unlock()
	if t, ok := fr.typecases[tname]; ok {
		tracer().Infof("registry found font %s", tname)
		return t, nil
	}
	if f, ok := fr.fonts[normalizedName]; ok {
		t, err := f.PrepareCase(float64(size), 0)
		if err != nil {
			return nil, err
		}
		tracer().Infof("font registry has font %s, caches at %.2f", normalizedName, size)
		fr.typecases[tname] = t
		return t, nil
	}
	tracer().Infof("registry does not contain font %s", normalizedName)
	err := errors.New("font " + normalizedName + " not found in registry")
	//
	// store typecase from fallback font, if not present yet, and return it
	tname = appendSize("fallback", size)
	if t, ok := fr.typecases[tname]; ok {
		return t, err
	}
	f := font.FallbackFont()
	t, perr := f.PrepareCase(float64(size), 0)
	if perr != nil {
		return nil, perr
	}
	tracer().Infof("font registry caches fallback font at %.2f", size)
	fr.typecases[tname] = t
	return t, err
}

// Contains returns true if a font is registered under a normalized name.
func (fr *Registry) Contains(normalizedName string) bool {
	fr.Lock()
	defer fr.Unlock()
	_, ok := fr.fonts[normalizedName]
	return ok
}

// FontsWithPrefix returns the normalized names of all registered fonts
// starting with prefix, in lexical order.
func (fr *Registry) FontsWithPrefix(prefix string) []string {
	fr.Lock()
	defer fr.Unlock()
	names := fr.names.PrefixSearch(prefix)
	sort.Strings(names)
	return names
}

// LogFontList is a helper function to dump the list of known fonts and typecases
// in a registry to the trace-file (log-level Info). The tracer's level is
// switched temporarily, so do not call it while fonts are being registered
// from other goroutines.
func (fr *Registry) LogFontList() {
	fr.Lock()
	defer fr.Unlock()
	level := tracer().GetTraceLevel()
	tracer().SetTraceLevel(tracing.LevelInfo)
	tracer().Infof("--- registered fonts ---")
	for k, v := range fr.fonts {
		tracer().Infof("font [%s] = %v", k, v.Fontname)
	}
	for k, v := range fr.typecases {
		tracer().Infof("typecase [%s] = %v", k, v.ScalableFontParent().Fontname)
	}
	tracer().Infof("------------------------")
	tracer().SetTraceLevel(level)
}

// NormalizeFontname creates a registry key from a font name, a style and
// a weight.
func NormalizeFontname(fname string, style xfont.Style, weight xfont.Weight) string {
	fname = strings.TrimSpace(fname)
	fname = strings.ReplaceAll(fname, " ", "_")
	if dot := strings.LastIndex(fname, "."); dot > 0 {
		fname = fname[:dot]
	}
	fname = cases.Fold().String(fname)
	switch style {
	case xfont.StyleItalic, xfont.StyleOblique:
		if !strings.Contains(fname, "italic") && !strings.Contains(fname, "oblique") {
			fname += "-italic"
		}
	}
	switch weight {
	case xfont.WeightLight, xfont.WeightExtraLight:
		if !strings.Contains(fname, "light") {
			fname += "-light"
		}
	case xfont.WeightBold, xfont.WeightExtraBold, xfont.WeightSemiBold:
		if !strings.Contains(fname, "bold") {
			fname += "-bold"
		}
	}
	return fname
}

func appendSize(fname string, size float32) string {
	fname = fmt.Sprintf("%s-%.2f", fname, size)
	return fname
}

// GuessStyleAndWeight trys to guess a font's style and weight from the
// font's name or file name.
func GuessStyleAndWeight(fontfilename string) (xfont.Style, xfont.Weight) {
	fontfilename = path.Base(fontfilename)
	ext := path.Ext(fontfilename)
	fontfilename = strings.ToLower(fontfilename[:len(fontfilename)-len(ext)])
	s := strings.Split(fontfilename, "-")
	if len(s) > 1 {
		switch s[len(s)-1] {
		case "light", "xlight":
			return xfont.StyleNormal, xfont.WeightLight
		case "normal", "medium", "regular", "r":
			return xfont.StyleNormal, xfont.WeightNormal
		case "bold", "b":
			return xfont.StyleNormal, xfont.WeightBold
		case "xbold", "black":
			return xfont.StyleNormal, xfont.WeightExtraBold
		}
	}
	style, weight := xfont.StyleNormal, xfont.WeightNormal
	if strings.Contains(fontfilename, "italic") {
		style = xfont.StyleItalic
	}
	if strings.Contains(fontfilename, "light") {
		weight = xfont.WeightLight
	}
	if strings.Contains(fontfilename, "bold") {
		weight = xfont.WeightBold
	}
	return style, weight
}
