package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/gridstar/layout"
)

func (a *app) layoutsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layouts",
		Short: "Manage saved layouts",
		Long: `List builtin and saved layouts, save layout files into the database,
print a layout, or delete a saved one. Saved layouts can be passed by name to
solve and watch.

Examples:
  gridstar layouts list
  gridstar layouts save ./grid.yaml
  gridstar layouts show maze-20
  gridstar layouts delete grid`,
	}
	cmd.AddCommand(a.layoutsListCmd(), a.layoutsSaveCmd(), a.layoutsShowCmd(), a.layoutsDeleteCmd())

	return cmd
}

func (a *app) layoutsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List builtin and saved layouts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(a.out, "Builtin layouts:")
			fmt.Fprintln(a.out)
			for _, name := range layout.BuiltinNames() {
				l, err := layout.Builtin(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(a.out, "  %-16s %3dx%-3d  %d obstacles\n", name, l.Width, l.Height, len(l.Obstacles))
			}

			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Close()
			saved, err := store.ListLayouts()
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out)
			if len(saved) == 0 {
				fmt.Fprintln(a.out, "No saved layouts. Use 'gridstar layouts save <file>' to add one.")
				return nil
			}
			fmt.Fprintln(a.out, "Saved layouts:")
			fmt.Fprintln(a.out)
			for _, info := range saved {
				fmt.Fprintf(a.out, "  %-16s %3dx%-3d  %d obstacles  %s\n", info.Name, info.Width, info.Height,
					info.Obstacles, info.UpdatedAt.Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
}

func (a *app) layoutsSaveCmd() *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "save <file>",
		Short: "Save a layout file into the database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := layout.Load(args[0])
			if err != nil {
				return err
			}
			if name != "" {
				l.Name = name
			}
			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Close()
			if err := store.SaveLayout(l); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Saved layout %q (%dx%d, %d obstacles)\n", l.Name, l.Width, l.Height, len(l.Obstacles))
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Name to save under (default: the layout's name)")

	return cmd
}

func (a *app) layoutsShowCmd() *cobra.Command {
	var asYAML bool
	cmd := &cobra.Command{
		Use:   "show <layout>",
		Short: "Print a layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := a.resolveLayout(args[0])
			if err != nil {
				return err
			}
			if asYAML {
				data, err := layout.Marshal(l)
				if err != nil {
					return err
				}
				_, err = a.out.Write(data)
				return err
			}
			s, err := l.Session()
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s: %dx%d, %d-connected, density %.2f, start %v, goal %v\n\n",
				l.Name, l.Width, l.Height, l.Conn.Degree(), l.Density(), l.Start, l.Goal)
			fmt.Fprint(a.out, layout.Render(s.Grid(), s))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Print as layout YAML")

	return cmd
}

func (a *app) layoutsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a saved layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Close()
			if err := store.DeleteLayout(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Deleted layout %q\n", args[0])
			return nil
		},
	}
}
