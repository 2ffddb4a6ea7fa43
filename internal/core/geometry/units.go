package geometry

import (
	"fmt"
	"strconv"
	"strings"
)

// SubstituteViewportUnit rewrites a percentage height ("100%") to the given
// viewport unit ("100vh"). Other heights are returned unchanged.
func SubstituteViewportUnit(height, unit string) string {
	if unit == "" || !strings.HasSuffix(height, "%") {
		return height
	}
	return strings.TrimSuffix(height, "%") + unit
}

// ParseLength resolves a CSS-like length to pixels. Supported forms are bare
// numbers and the px, vh, svh, lvh, dvh and % suffixes; the viewport relative
// units and percentages resolve against viewportHeight.
func ParseLength(s string, viewportHeight float64) (float64, error) {
	raw := strings.ToLower(strings.TrimSpace(s))
	if raw == "" {
		return 0, fmt.Errorf("empty length")
	}

	scale := 1.0
	for _, suffix := range []string{"svh", "lvh", "dvh", "vh", "px", "%"} {
		if strings.HasSuffix(raw, suffix) {
			raw = strings.TrimSuffix(raw, suffix)
			if suffix != "px" {
				scale = viewportHeight / 100
			}
			break
		}
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid length %q: %w", s, err)
	}
	return v * scale, nil
}
