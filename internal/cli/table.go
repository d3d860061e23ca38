package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewTableCommand creates the table command.
func NewTableCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		path  string
		empty bool
	)

	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print a table",
		Long:  "Print the table loaded from --table, the standard rack, or with --empty a table without balls.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng := rootOpts.engine
			t, err := LoadTable(eng, path)
			if err != nil {
				return err
			}
			if empty {
				t = eng.NewTable()
			}

			out := cmd.OutOrStdout()
			if rootOpts.Format == "json" {
				return writeJSON(out, t.State())
			}
			_, err = fmt.Fprint(out, t.String())
			return err
		},
	}

	cmd.Flags().StringVarP(&path, "table", "t", "", "YAML table file (default: standard rack)")
	cmd.Flags().BoolVar(&empty, "empty", false, "print a table with no balls")

	return cmd
}

// NewSVGCommand creates the svg command.
func NewSVGCommand(rootOpts *RootOptions) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "svg",
		Short: "Render a table as SVG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := LoadTable(rootOpts.engine, path)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), rootOpts.engine.SVG(t))
			return err
		},
	}

	cmd.Flags().StringVarP(&path, "table", "t", "", "YAML table file (default: standard rack)")

	return cmd
}
