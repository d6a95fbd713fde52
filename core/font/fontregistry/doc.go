/*
Package fontregistry manages the table of fonts registered with a graphics
environment. Registered fonts may be looked up by name, as typecases of
arbitrary size, or by name prefix (e.g., all fonts of the Computer Modern
family starting with "cm").

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package fontregistry

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'tyse.fonts'
func tracer() tracing.Trace {
	return tracing.Select("tyse.fonts")
}
