package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) historyCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history [layout]",
		Short: "Show recorded runs",
		Long: `List runs recorded with 'solve --save' or 'watch --save', newest first.
With a layout name, only that layout's runs are listed, followed by a summary.

Examples:
  gridstar history
  gridstar history maze-20 --limit 5`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			if len(args) == 1 {
				name = args[0]
			}
			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.Runs(name, limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(a.out, "No runs recorded yet.")
				fmt.Fprintln(a.out)
				fmt.Fprintln(a.out, "Use 'gridstar solve <layout> --save' to record one.")
				return nil
			}

			fmt.Fprintf(a.out, "  %-8s  %-16s  %-10s  %-10s  %9s  %8s  %10s  %s\n",
				"ID", "Layout", "Heuristic", "Status", "Cost", "Expanded", "Duration", "Date")
			for _, r := range runs {
				cost := "-"
				if r.Status == "succeeded" {
					cost = fmt.Sprintf("%.3f", r.Cost)
				}
				fmt.Fprintf(a.out, "  %-8s  %-16s  %-10s  %-10s  %9s  %8d  %10s  %s\n",
					r.ID[:min(8, len(r.ID))], r.Layout, r.Heuristic, r.Status, cost, r.Expanded,
					r.Duration, r.CreatedAt.Format("2006-01-02 15:04"))
			}

			if name == "" {
				return nil
			}
			st, err := store.Stats(name)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out)
			fmt.Fprintf(a.out, "%s: %d runs, %d succeeded, avg %.1f expanded", st.Layout, st.Runs, st.Succeeded, st.AvgExpanded)
			if st.Succeeded > 0 {
				fmt.Fprintf(a.out, ", best cost %.3f", st.BestCost)
			}
			fmt.Fprintln(a.out)
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show")

	return cmd
}
