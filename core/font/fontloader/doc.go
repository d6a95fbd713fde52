/*
Package fontloader loads outline fonts for formula rendering.

A Loader resolves a font reference to a stream of bytes, decodes the font
with the help of a graphics environment, scales it to the point size
required for formulas and tries to register it with the environment.
Every font handed out is remembered together with the name it was loaded
from (its provenance).

Loading is best effort: missing or malformed fonts result in no font,
never in an error. The only error a Loader reports to its clients is a
failure to close a font stream, as this indicates an unreliable I/O layer.

	loader := fontloader.NewLoader(hostenv.LocalGraphicsEnvironment())
	tc, err := loader.Load(resources.FilePath("fonts/cmr10.ttf"))
	if err != nil {
		panic(err) // I/O layer broken
	}
	if tc == nil {
		// font not available, degrade gracefully
	}

Registration of fonts may be switched off process-wide with
RegisterFonts(false).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package fontloader

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'tyse.fonts'
func tracer() tracing.Trace {
	return tracing.Select("tyse.fonts")
}
