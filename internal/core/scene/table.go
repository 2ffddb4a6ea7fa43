// Package scene holds the ordered scene sequence of a host document and the
// conversions between normalized progress and (scene, time-in-scene) pairs.
package scene

import (
	"errors"
	"strings"
)

var (
	// ErrSceneNotFound is returned by lookups naming a scene that is not in the table
	ErrSceneNotFound = errors.New("scene not found")
	// ErrEmptyTable is returned when a lookup needs at least one scene
	ErrEmptyTable = errors.New("scene table is empty")
)

// Info describes one scene of the host document
type Info struct {
	Name     string
	Duration float64 // seconds
	Layouts  any     // host-defined, stored but never interpreted
}

// Position is a resolved location inside the scene sequence
type Position struct {
	Index int
	Name  string
	Time  float64 // seconds since the scene start
}

// Table is an immutable, ordered scene sequence. The total length is always
// the sum of the scene durations. A nil *Table behaves as an empty table.
type Table struct {
	scenes []Info
	starts []float64
	total  float64
	index  map[string]int
}

// NewTable builds a table from scenes in document order. Negative durations
// are treated as zero. When a name repeats, lookups by name resolve to the
// first occurrence.
func NewTable(scenes []Info) *Table {
	t := &Table{
		scenes: make([]Info, len(scenes)),
		starts: make([]float64, len(scenes)),
		index:  make(map[string]int, len(scenes)),
	}

	for i, s := range scenes {
		if s.Duration < 0 {
			s.Duration = 0
		}
		t.scenes[i] = s
		t.starts[i] = t.total
		t.total += s.Duration
		if _, exists := t.index[s.Name]; !exists {
			t.index[s.Name] = i
		}
	}

	return t
}

// IsIgnored reports whether name carries the ignore marker prefix. An empty
// marker ignores nothing.
func IsIgnored(name, marker string) bool {
	return marker != "" && strings.HasPrefix(name, marker)
}

// Len returns the number of scenes
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.scenes)
}

// TotalLength returns the sum of all scene durations in seconds
func (t *Table) TotalLength() float64 {
	if t == nil {
		return 0
	}
	return t.total
}

// Scenes returns a copy of the scene sequence
func (t *Table) Scenes() []Info {
	if t == nil {
		return nil
	}
	out := make([]Info, len(t.scenes))
	copy(out, t.scenes)
	return out
}

// At returns the scene at index i
func (t *Table) At(i int) (Info, bool) {
	if t == nil || i < 0 || i >= len(t.scenes) {
		return Info{}, false
	}
	return t.scenes[i], true
}

// Index returns the position of the named scene in the sequence
func (t *Table) Index(name string) (int, bool) {
	if t == nil {
		return 0, false
	}
	i, ok := t.index[name]
	return i, ok
}

// Lookup returns the named scene
func (t *Table) Lookup(name string) (Info, error) {
	i, ok := t.Index(name)
	if !ok {
		return Info{}, ErrSceneNotFound
	}
	return t.scenes[i], nil
}

// StartTime returns the cumulative timeline time at which the named scene begins
func (t *Table) StartTime(name string) (float64, error) {
	i, ok := t.Index(name)
	if !ok {
		return 0, ErrSceneNotFound
	}
	return t.starts[i], nil
}
