package geometry

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidOffset is returned for offsets that are neither numbers, "NN%" nor "NNpx"
var ErrInvalidOffset = errors.New("invalid offset")

// OffsetUnit says how an Offset value is interpreted
type OffsetUnit int

const (
	// UnitFraction is a fraction of the scrollable range
	UnitFraction OffsetUnit = iota
	// UnitPercent is a percentage of the scrollable range
	UnitPercent
	// UnitPixels is an absolute pixel distance
	UnitPixels
)

// Offset is added to a computed scroll position before any animation
type Offset struct {
	Value float64
	Unit  OffsetUnit
}

// FractionOffset builds an offset expressed as a fraction of the scrollable range
func FractionOffset(f float64) Offset {
	return Offset{Value: f, Unit: UnitFraction}
}

// PixelOffset builds an absolute pixel offset
func PixelOffset(px float64) Offset {
	return Offset{Value: px, Unit: UnitPixels}
}

// ParseOffset parses "0.1", "10%" or "-80px"
func ParseOffset(s string) (Offset, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return Offset{}, nil
	}

	unit := UnitFraction
	number := raw
	switch {
	case strings.HasSuffix(raw, "%"):
		unit = UnitPercent
		number = strings.TrimSuffix(raw, "%")
	case strings.HasSuffix(strings.ToLower(raw), "px"):
		unit = UnitPixels
		number = raw[:len(raw)-2]
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(number), 64)
	if err != nil {
		return Offset{}, fmt.Errorf("%w %q", ErrInvalidOffset, s)
	}
	return Offset{Value: value, Unit: unit}, nil
}

// Pixels resolves the offset against the given geometry
func (o Offset) Pixels(g Geometry) float64 {
	switch o.Unit {
	case UnitPercent:
		return o.Value / 100 * g.ScrollableRange()
	case UnitPixels:
		return o.Value
	default:
		return o.Value * g.ScrollableRange()
	}
}

// String renders the offset in the form ParseOffset accepts
func (o Offset) String() string {
	v := strconv.FormatFloat(o.Value, 'f', -1, 64)
	switch o.Unit {
	case UnitPercent:
		return v + "%"
	case UnitPixels:
		return v + "px"
	default:
		return v
	}
}
