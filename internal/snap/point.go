package snap

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/penwyp/go-sticky-scroll/internal/core/geometry"
	"github.com/penwyp/go-sticky-scroll/internal/core/scene"
	"github.com/penwyp/go-sticky-scroll/internal/util"
)

// Tolerance is the distance, in pixels, from which a point attracts the scroll
// position: Before applies while the position is above the point, After once
// it has scrolled past it
type Tolerance struct {
	Before float64 `yaml:"before" json:"before"`
	After  float64 `yaml:"after" json:"after"`
}

// Time is a time inside a scene, or the scene end
type Time struct {
	Seconds float64
	End     bool
}

// End marks the end of a scene
var End = Time{End: true}

// At builds a time in seconds
func At(seconds float64) Time {
	return Time{Seconds: seconds}
}

// ParseTime accepts "end" or a number of seconds
func ParseTime(s string) (Time, error) {
	raw := strings.TrimSpace(strings.ToLower(s))
	if raw == "end" {
		return End, nil
	}
	if raw == "" {
		return Time{}, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return Time{}, fmt.Errorf("invalid snap time %q: %w", s, err)
	}
	return Time{Seconds: v}, nil
}

// Resolve returns the time in seconds for a scene of the given duration
func (t Time) Resolve(duration float64) float64 {
	if t.End {
		return duration
	}
	return t.Seconds
}

// String renders the time in the form ParseTime accepts
func (t Time) String() string {
	if t.End {
		return "end"
	}
	return strconv.FormatFloat(t.Seconds, 'f', -1, 64)
}

// MarshalText implements encoding.TextMarshaler
func (t Time) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (t *Time) UnmarshalText(text []byte) error {
	parsed, err := ParseTime(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// UnmarshalJSON accepts both `"end"` and bare numbers
func (t *Time) UnmarshalJSON(data []byte) error {
	return t.UnmarshalText(bytes.Trim(data, `"`))
}

// PointSpec is a configured snap location before layout resolution
type PointSpec struct {
	Scene     string     `yaml:"scene" json:"scene"`
	Time      Time       `yaml:"time" json:"time"`
	Tolerance *Tolerance `yaml:"tolerance,omitempty" json:"tolerance,omitempty"`
}

// Point is a snap location with its derived progress and scroll position.
// Derived fields reflect the layout and scene table at resolution time.
type Point struct {
	Scene     string
	Time      Time
	Progress  float64
	ScrollY   float64
	Tolerance Tolerance
}

// ResolvePoints derives progress and scroll position for every PointSpec.
// Points naming unknown scenes are skipped with a warning.
func ResolvePoints(specs []PointSpec, table *scene.Table, geom geometry.Geometry, fallback Tolerance) []Point {
	points := make([]Point, 0, len(specs))
	for _, spec := range specs {
		info, err := table.Lookup(spec.Scene)
		if err != nil {
			util.LogWarnf("Skipping snap point for scene %q: %v", spec.Scene, err)
			continue
		}

		tolerance := fallback
		if spec.Tolerance != nil {
			tolerance = *spec.Tolerance
		}

		progress := table.ProgressFromSceneTime(info.Name, spec.Time.Resolve(info.Duration))
		points = append(points, Point{
			Scene:     info.Name,
			Time:      spec.Time,
			Progress:  progress,
			ScrollY:   geom.ScrollPositionFromProgress(progress),
			Tolerance: tolerance,
		})
	}
	return points
}
