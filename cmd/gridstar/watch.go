package main

import (
	"errors"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/katalvlaran/gridstar/astar"
	"github.com/katalvlaran/gridstar/gridgraph"
	"github.com/katalvlaran/gridstar/internal/tui"
)

func (a *app) watchCmd() *cobra.Command {
	var (
		fps    int
		paused bool
		save   bool
	)
	cmd := &cobra.Command{
		Use:   "watch [layout]",
		Short: "Animate a search one expansion per frame",
		Long: `Open the step viewer on a layout (default from config: viewer.default_layout).
The search advances by one expansion every frame.

Controls:
  Space/P   - Pause or resume
  N         - Single step (pauses)
  R         - Restart the search
  +/-       - Double or halve the frame rate
  ?         - Toggle full help
  Q/Ctrl+C  - Quit

Examples:
  gridstar watch
  gridstar watch maze-20 --fps 10
  gridstar watch ./grid.yaml --paused`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return errors.New("watch needs an interactive terminal; use 'gridstar solve' instead")
			}
			ref := a.cfg.Viewer.DefaultLayout
			if len(args) == 1 {
				ref = args[0]
			}
			l, err := a.resolveLayout(ref)
			if err != nil {
				return err
			}
			var began time.Time
			opts, err := a.searchOptions(astar.WithOnStart(func(_, _ gridgraph.Cell) { began = time.Now() }))
			if err != nil {
				return err
			}
			s, err := l.Session(opts...)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("fps") {
				fps = a.cfg.Viewer.FPS
			}

			var onFinish func(astar.Result)
			if save {
				onFinish = func(res astar.Result) {
					if err := a.saveRun(l.Name, res, time.Since(began)); err != nil {
						a.logger.Error("save run", "err", err)
					}
				}
			}

			m := tui.New(s, tui.Config{
				Name:     l.Name,
				FPS:      fps,
				Paused:   paused,
				Logger:   a.logger,
				OnFinish: onFinish,
			})
			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			_, err = p.Run()
			if errors.Is(err, tea.ErrProgramKilled) {
				return nil
			}
			return err
		},
	}
	cmd.Flags().IntVar(&fps, "fps", 30, "Expansions per second")
	cmd.Flags().BoolVar(&paused, "paused", false, "Start paused")
	cmd.Flags().BoolVar(&save, "save", false, "Record each finished run in the history database")

	return cmd
}
