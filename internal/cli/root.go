package cli

import (
	"fmt"

	"github.com/playmatatu/poolsim/internal/config"
	"github.com/playmatatu/poolsim/internal/game"
	"github.com/spf13/cobra"
)

// RootOptions holds global flags and the engine shared by all commands.
type RootOptions struct {
	Format string // "json" | "text"

	engine *game.Engine
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the poolsim CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "poolsim",
		Short: "poolsim - pool table physics simulator",
		Long: `Simulate shots on a pool table with a deterministic event-driven engine.

Physical constants come from the environment (TABLE_LENGTH, DRAG, SIM_RATE, ...)
or a .env file, as for the server.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			eng, err := game.NewEngine(config.Load().Physics())
			if err != nil {
				return err
			}
			opts.engine = eng
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewTableCommand(opts))
	cmd.AddCommand(NewSegmentCommand(opts))
	cmd.AddCommand(NewShootCommand(opts))
	cmd.AddCommand(NewSVGCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
