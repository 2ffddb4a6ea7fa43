// Package easing provides the interpolation curves used by scroll animations.
package easing

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownEasing is returned when parsing an unrecognized easing name
var ErrUnknownEasing = errors.New("unknown easing")

// Kind names an easing curve
type Kind string

const (
	Linear Kind = "linear"
	In     Kind = "in"
	Out    Kind = "out"
	InOut  Kind = "inout"
)

// Func maps elapsed fraction t in [0, 1] to eased progress in [0, 1]
type Func func(t float64) float64

// Parse resolves an easing name. Common aliases such as "ease-in-out" are accepted.
func Parse(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "linear":
		return Linear, nil
	case "in", "ease-in", "easein":
		return In, nil
	case "out", "ease-out", "easeout":
		return Out, nil
	case "inout", "in-out", "ease-in-out", "easeinout", "":
		return InOut, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownEasing, name)
	}
}

// Func returns the curve for k; unknown kinds fall back to linear
func (k Kind) Func() Func {
	switch k {
	case In:
		return easeIn
	case Out:
		return easeOut
	case InOut:
		return easeInOut
	default:
		return linear
	}
}

// Apply evaluates the curve at t, clamping t to [0, 1]
func (k Kind) Apply(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return k.Func()(t)
}

func linear(t float64) float64 {
	return t
}

func easeIn(t float64) float64 {
	return t * t
}

func easeOut(t float64) float64 {
	return t * (2 - t)
}

func easeInOut(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return -1 + (4-2*t)*t
}
