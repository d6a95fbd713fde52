package fontloader

import (
	"sync"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/npillmayer/mathfont/core/font"
	"github.com/npillmayer/schuko/tracing"
)

// ProvenanceTable remembers for every typecase the name it has been loaded
// from. Entries are never removed. ProvenanceTable is safe for concurrent use.
type ProvenanceTable struct {
	sync.RWMutex
	origins *linkedhashmap.Map // *font.TypeCase → string, in order of creation
}

// Origin is an entry of a provenance table.
type Origin struct {
	TypeCase *font.TypeCase
	Name     string
}

// NewProvenanceTable creates an empty provenance table.
func NewProvenanceTable() *ProvenanceTable {
	return &ProvenanceTable{origins: linkedhashmap.New()}
}

var globalProvenance *ProvenanceTable

var globalProvenanceCreation sync.Once

// GlobalProvenance is the application-wide provenance table.
func GlobalProvenance() *ProvenanceTable {
	globalProvenanceCreation.Do(func() {
		globalProvenance = NewProvenanceTable()
	})
	return globalProvenance
}

// RecordOrigin remembers the origin of a typecase. An origin, once
// recorded, will not be overwritten.
func (pt *ProvenanceTable) RecordOrigin(tc *font.TypeCase, name string) {
	if tc == nil {
		return
	}
	pt.Lock()
	defer pt.Unlock()
	if _, found := pt.origins.Get(tc); found {
		return
	}
	pt.origins.Put(tc, name)
}

// LookupOrigin returns the name a typecase has been loaded from.
func (pt *ProvenanceTable) LookupOrigin(tc *font.TypeCase) (string, bool) {
	pt.RLock()
	defer pt.RUnlock()
	name, found := pt.origins.Get(tc)
	if !found {
		return "", false
	}
	return name.(string), true
}

// Len returns the number of entries.
func (pt *ProvenanceTable) Len() int {
	pt.RLock()
	defer pt.RUnlock()
	return pt.origins.Size()
}

// Origins returns all entries in the order they have been recorded.
func (pt *ProvenanceTable) Origins() []Origin {
	pt.RLock()
	defer pt.RUnlock()
	list := make([]Origin, 0, pt.origins.Size())
	it := pt.origins.Iterator()
	for it.Next() {
		list = append(list, Origin{
			TypeCase: it.Key().(*font.TypeCase),
			Name:     it.Value().(string),
		})
	}
	return list
}

// LogOrigins dumps the table to the trace (log-level Info).
// It switches the level of the shared 'tyse.fonts' tracer for the duration
// of the dump, and is meant for diagnostics while no fonts are being loaded
// concurrently.
func (pt *ProvenanceTable) LogOrigins() {
	level := tracer().GetTraceLevel()
	tracer().SetTraceLevel(tracing.LevelInfo)
	tracer().Infof("--- loaded fonts ---")
	for i, o := range pt.Origins() {
		tracer().Infof("#%d %s loaded from %s", i, o.TypeCase, o.Name)
	}
	tracer().Infof("--------------------")
	tracer().SetTraceLevel(level)
}
