/*
Package resources resolves font resources for an application.

Fonts may be referenced by file path, by name relative to a resource
context (usually an embedded file system), or as an already opened stream.
Function Resolve turns any of these references into an open stream of
bytes.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package resources

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'tyse.resources'.
func tracer() tracing.Trace {
	return tracing.Select("tyse.resources")
}
