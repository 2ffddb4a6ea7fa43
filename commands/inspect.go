package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/penwyp/go-sticky-scroll/internal/config"
	"github.com/penwyp/go-sticky-scroll/internal/core/runloop"
	"github.com/penwyp/go-sticky-scroll/internal/host/sim"
	"github.com/penwyp/go-sticky-scroll/internal/presentation/formatter"
	"github.com/penwyp/go-sticky-scroll/internal/snap"
)

var inspectOutput string

var inspectCmd = &cobra.Command{
	Use:   "inspect <scenario.yaml>",
	Short: "Print the scene table and resolved snap points of a scenario",
	Long: `Runs setup for the scenario's document and prints every scene with its
cumulative start time, progress interval and start scroll position, followed
by the configured snap points resolved against the layout.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().StringVarP(&inspectOutput, "output", "o", formatter.FormatTable,
		"Output format (table, json, csv)")
}

// inspection is the JSON form of the inspect output
type inspection struct {
	Scenario   string                  `json:"scenario"`
	Total      float64                 `json:"totalLength"`
	Scenes     []formatter.SceneRecord `json:"scenes"`
	SnapPoints []formatter.SnapRecord  `json:"snapPoints"`
}

func runInspect(cmd *cobra.Command, args []string) error {
	sc, err := sim.ReadScenario(expandPath(args[0]))
	if err != nil {
		return err
	}

	f, err := formatter.NewFormatter(inspectOutput)
	if err != nil {
		return err
	}

	sched := runloop.NewManual(time.Unix(0, 0), time.Second)
	host, err := sim.NewHost(sc, sched, sim.HostConfig{Options: config.Defaults()})
	if err != nil {
		return err
	}

	table := host.Controller.Table()
	geom := host.Win.Geometry()
	points := snap.ResolvePoints(host.Options.SnapPoints, table, geom, host.Options.SnapTolerance)

	scenes := formatter.SceneReport(fmt.Sprintf("Scenes (total %.2fs)", table.TotalLength()), table, geom)
	snaps := formatter.SnapReport("Snap points", points)

	out := cmd.OutOrStdout()
	if inspectOutput == formatter.FormatJSON {
		return f.Format(out, formatter.Report{Records: inspection{
			Scenario:   sc.Name,
			Total:      table.TotalLength(),
			Scenes:     scenes.Records.([]formatter.SceneRecord),
			SnapPoints: snaps.Records.([]formatter.SnapRecord),
		}})
	}

	if err := f.Format(out, scenes); err != nil {
		return err
	}
	if len(points) == 0 {
		return nil
	}
	if inspectOutput == formatter.FormatTable {
		fmt.Fprintln(out)
	}
	return f.Format(out, snaps)
}
