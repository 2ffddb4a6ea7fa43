package formatter

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/penwyp/go-sticky-scroll/internal/host/sim"
)

// Summary condenses a simulation trace
type Summary struct {
	Scenario     string
	Elapsed      time.Duration
	Counts       map[string]int
	Edges        []string
	FinalScene   string
	FinalTime    float64
	FinalScrollY float64
}

// Summarize builds a summary of events
func Summarize(scenario string, events []sim.Event) Summary {
	s := Summary{Scenario: scenario, Counts: make(map[string]int)}

	for _, e := range events {
		s.Counts[e.Kind]++
		if e.At > s.Elapsed {
			s.Elapsed = e.At
		}

		switch e.Kind {
		case sim.KindBehavior:
			s.Edges = append(s.Edges, e.Detail)
		case sim.KindSeek:
			s.FinalScene = e.Scene
			s.FinalTime = e.Time
		}
		s.FinalScrollY = e.ScrollY
	}

	return s
}

// SummaryFormatter is responsible for formatting and outputting summary reports.
type SummaryFormatter struct{}

// NewSummaryFormatter creates a new instance of SummaryFormatter.
func NewSummaryFormatter() *SummaryFormatter {
	return &SummaryFormatter{}
}

// Format writes the summary report
func (f *SummaryFormatter) Format(w io.Writer, s Summary) error {
	var b strings.Builder

	b.WriteString(strings.Repeat("=", 60) + "\n")
	b.WriteString("Sticky Scroll Simulation Summary\n")
	b.WriteString(strings.Repeat("=", 60) + "\n\n")

	if s.Scenario != "" {
		fmt.Fprintf(&b, "Scenario: %s\n", s.Scenario)
	}
	fmt.Fprintf(&b, "Elapsed: %s\n\n", formatOffset(s.Elapsed))

	if len(s.Counts) == 0 {
		b.WriteString("No events recorded\n\n")
		b.WriteString(strings.Repeat("=", 60) + "\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	b.WriteString("Events:\n")
	kinds := make([]string, 0, len(s.Counts))
	for kind := range s.Counts {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	for _, kind := range kinds {
		fmt.Fprintf(&b, "  %-10s %d\n", kind+":", s.Counts[kind])
	}
	b.WriteString("\n")

	if len(s.Edges) > 0 {
		fmt.Fprintf(&b, "Edges: %s\n\n", strings.Join(s.Edges, ", "))
	}

	b.WriteString("Final State:\n")
	if s.FinalScene != "" {
		fmt.Fprintf(&b, "  Scene:    %s @ %ss\n", s.FinalScene, formatFloat(s.FinalTime, 3))
	}
	fmt.Fprintf(&b, "  Scroll Y: %s\n\n", formatFloat(s.FinalScrollY, 0))
	b.WriteString(strings.Repeat("=", 60) + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}
