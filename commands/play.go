package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/penwyp/go-sticky-scroll/internal/application/player"
)

var (
	playWatch       bool
	playSmooth      bool
	playRefreshRate float64
	playStep        float64
	playRowHeight   float64
)

var playCmd = &cobra.Command{
	Use:   "play <scenario.yaml>",
	Short: "Scroll through a scenario interactively",
	Long: `Opens a live status view of the scenario. The terminal height becomes the
viewport height and the keyboard scrolls the simulated window.

Keys:
  ↑/k ↓/j        scroll
  PgUp/b PgDn    page
  1-9            animate to scene
  f / u          focus the current scene / clear focus
  s              toggle snapping
  h              help
  q              quit`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().BoolVarP(&playWatch, "watch", "w", false,
		"Reload the scenario when the file changes")
	playCmd.Flags().BoolVar(&playSmooth, "smooth", false,
		"Use the smooth scroll backend")
	playCmd.Flags().Float64Var(&playRefreshRate, "refresh-per-second", 10,
		"Display refresh rate (1-60 Hz)")
	playCmd.Flags().Float64Var(&playStep, "step", 40,
		"Pixels scrolled per arrow key")
	playCmd.Flags().Float64Var(&playRowHeight, "row-height", 20,
		"Pixels of viewport per terminal row")
}

func runPlay(cmd *cobra.Command, args []string) error {
	if playRefreshRate < 1 || playRefreshRate > 60 {
		return fmt.Errorf("refresh-per-second must be between 1 and 60")
	}

	cfg := &player.PlayConfig{
		ScenarioPath: expandPath(args[0]),
		Watch:        playWatch,
		Smooth:       playSmooth,
		RefreshRate:  playRefreshRate,
		ScrollStep:   playStep,
		RowHeight:    playRowHeight,
	}

	orchestrator, err := player.NewOrchestrator(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	return orchestrator.Run(ctx)
}
