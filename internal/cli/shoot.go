package cli

import (
	"fmt"
	"io"

	"github.com/playmatatu/poolsim/internal/game"
	"github.com/spf13/cobra"
)

// NewSegmentCommand creates the segment command.
func NewSegmentCommand(rootOpts *RootOptions) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "segment",
		Short: "Advance a table to its next event",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := LoadTable(rootOpts.engine, path)
			if err != nil {
				return err
			}
			next, ev := rootOpts.engine.Segment(t)

			out := cmd.OutOrStdout()
			if rootOpts.Format == "json" {
				resp := map[string]interface{}{"event": ev}
				if next != nil {
					resp["table"] = next.State()
				}
				return writeJSON(out, resp)
			}
			fmt.Fprintln(out, describeEvent(ev))
			if next != nil {
				fmt.Fprint(out, next.String())
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "table", "t", "", "YAML table file (default: standard rack)")

	return cmd
}

// NewShootCommand creates the shoot command.
func NewShootCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		path        string
		vx, vy      float64
		frames      bool
		maxSegments int
	)

	cmd := &cobra.Command{
		Use:   "shoot",
		Short: "Strike the cue ball and simulate until the table is at rest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng := rootOpts.engine
			t, err := LoadTable(eng, path)
			if err != nil {
				return err
			}

			shot, err := eng.Shoot(t, game.Coordinate{X: vx, Y: vy}, game.ShotOptions{
				Frames:      frames,
				MaxSegments: maxSegments,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if rootOpts.Format == "json" {
				return writeJSON(out, shot)
			}
			return printShot(eng, out, shot)
		},
	}

	cmd.Flags().StringVarP(&path, "table", "t", "", "YAML table file (default: standard rack)")
	cmd.Flags().Float64Var(&vx, "vx", 0, "cue ball x velocity (mm/s)")
	cmd.Flags().Float64Var(&vy, "vy", -1000, "cue ball y velocity (mm/s)")
	cmd.Flags().BoolVar(&frames, "frames", false, "include sampled frames in json output")
	cmd.Flags().IntVar(&maxSegments, "max-segments", 1000, "abort after this many segments (0 = unbounded)")

	return cmd
}

func printShot(eng *game.Engine, w io.Writer, shot *game.Shot) error {
	fmt.Fprintf(w, "shot %s velocity (%.1f,%.1f)\n", shot.ID, shot.Velocity.X, shot.Velocity.Y)
	for i, seg := range shot.Segments {
		fmt.Fprintf(w, "segment %d: %s\n", i+1, describeEvent(seg.Event))
	}

	final, err := eng.TableFromState(shot.Final)
	if err != nil {
		return err
	}
	fmt.Fprint(w, final.String())
	if len(shot.Pocketed) > 0 {
		fmt.Fprintf(w, "pocketed: %v\n", shot.Pocketed)
	}
	if shot.TimedOut {
		fmt.Fprintln(w, "warning: segment horizon reached with balls still rolling")
	}
	return nil
}

func describeEvent(ev game.Event) string {
	switch ev.Kind {
	case game.EventStop:
		return fmt.Sprintf("t=%.4f ball %d stopped", ev.Time, ev.Ball)
	case game.EventCollision:
		if ev.TargetBall != nil {
			return fmt.Sprintf("t=%.4f ball %d hit ball %d", ev.Time, ev.Ball, *ev.TargetBall)
		}
		return fmt.Sprintf("t=%.4f ball %d hit %s", ev.Time, ev.Ball, ev.Target)
	case game.EventTimeout:
		return "no event before the segment horizon"
	default:
		return "nothing rolling"
	}
}
