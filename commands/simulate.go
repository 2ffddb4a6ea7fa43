package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/penwyp/go-sticky-scroll/internal/config"
	"github.com/penwyp/go-sticky-scroll/internal/host/sim"
	"github.com/penwyp/go-sticky-scroll/internal/presentation/formatter"
)

const outputSummary = "summary"

var (
	simOutput     string
	simSmooth     bool
	simKinds      []string
	simTraceLimit int
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <scenario.yaml>",
	Short: "Run a scenario script on virtual time and print the trace",
	Long: `Runs the scenario's input script against a simulated document and window on a
virtual clock. Every scroll dispatch, scene change, pause, seek and edge
behavior is recorded and printed.

Event kinds: action, scroll, show, pause, seek, behavior`,
	Args: cobra.ExactArgs(1),
	RunE: runSimulate,
}

func init() {
	rootCmd.AddCommand(simulateCmd)

	simulateCmd.Flags().StringVarP(&simOutput, "output", "o", formatter.FormatTable,
		"Output format (table, json, csv, summary)")
	simulateCmd.Flags().BoolVar(&simSmooth, "smooth", false,
		"Use the smooth scroll backend")
	simulateCmd.Flags().StringSliceVar(&simKinds, "kinds", nil,
		"Only print these event kinds (comma separated)")
	simulateCmd.Flags().IntVar(&simTraceLimit, "trace-limit", 0,
		"Keep at most this many events (0 = unlimited)")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	sc, err := sim.ReadScenario(expandPath(args[0]))
	if err != nil {
		return err
	}

	base := config.Defaults()
	if simSmooth {
		base.UseSmoothScroll = true
	}

	host, err := sim.Run(sc, sim.HostConfig{Options: base, TraceLimit: simTraceLimit}, time.Unix(0, 0))
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	return writeTrace(cmd.OutOrStdout(), sc.Name, host.Trace.Filter(simKinds...), simOutput)
}

func writeTrace(w io.Writer, name string, events []sim.Event, output string) error {
	if output == outputSummary {
		return formatter.NewSummaryFormatter().Format(w, formatter.Summarize(name, events))
	}

	f, err := formatter.NewFormatter(output)
	if err != nil {
		return err
	}
	return f.Format(w, formatter.TraceReport(name, events))
}
