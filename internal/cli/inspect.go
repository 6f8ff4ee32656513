package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cris-achiardi/figma-plugins-sub000/pkg/render"
	"github.com/cris-achiardi/figma-plugins-sub000/pkg/snapshot"
)

// newInspectCmd creates the inspect command.
func newInspectCmd() *cobra.Command {
	var (
		format   string
		out      string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "inspect <snapshot.json>",
		Short: "Render the snapshot node tree as a diagram",
		Long: `Inspect renders the snapshot's node hierarchy as a Graphviz diagram
without rebuilding it, which is useful for understanding a snapshot before
restoring it. Vector-like nodes are drawn dashed because they only
reconstruct faithfully through markup import.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			snap, err := snapshot.ParseFile(args[0])
			if err != nil {
				return err
			}
			logger.Debug("snapshot parsed", "file", args[0], "nodes", snap.Document.Count())

			dot := render.ToDOT(snap, render.Options{Detailed: detailed})

			switch format {
			case "dot":
				if out == "" {
					fmt.Print(dot)
					return nil
				}
				if err := os.WriteFile(out, []byte(dot), 0o644); err != nil {
					return fmt.Errorf("write output: %w", err)
				}
			case "svg", "png":
				if out == "" {
					out = outputPath(args[0], format)
				}
				track := newProgress(logger)
				var data []byte
				if format == "svg" {
					data, err = render.ToSVG(ctx, dot)
				} else {
					data, err = render.ToPNG(ctx, dot)
				}
				if err != nil {
					return err
				}
				if err := os.WriteFile(out, data, 0o644); err != nil {
					return fmt.Errorf("write output: %w", err)
				}
				track.done(fmt.Sprintf("Rendered %s", format))
			default:
				return fmt.Errorf("unknown format %q (want dot, svg, or png)", format)
			}

			printSuccess("Inspected %s", snapshotLabel(snap, args[0]))
			printFile(out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "dot", "output format: dot, svg, or png")
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (defaults to stdout for dot)")
	cmd.Flags().BoolVarP(&detailed, "detailed", "d", false, "include geometry and attribute counts in labels")

	return cmd
}

// outputPath derives an output filename from the input path and format.
func outputPath(input, format string) string {
	base := strings.TrimSuffix(input, ".json")
	return base + "." + format
}
