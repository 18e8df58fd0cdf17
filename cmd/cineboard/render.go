package main

import (
	"fmt"
	"image/png"
	"os"

	"github.com/spf13/cobra"

	"cineboard/pkg/board"
	"cineboard/pkg/engine"
	"cineboard/pkg/geom"
	"cineboard/pkg/render"
)

func renderCmd() *cobra.Command {
	var (
		width   int
		height  int
		out     string
		scale   float64
		offsetX float64
		offsetY float64
	)

	cmd := &cobra.Command{
		Use:   "render <board.json>",
		Short: "Render a board file to a PNG image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := board.Load(args[0])
			if err != nil {
				return err
			}

			eng := engine.New(
				engine.WithNodes(snap.Nodes),
				engine.WithEdges(snap.Edges),
				engine.WithLogger(logger),
			)
			eng.SetViewScale(scale)

			r, err := render.NewRenderer(width, height)
			if err != nil {
				return err
			}
			vp := geom.Viewport{Scale: scale, OffsetX: offsetX, OffsetY: offsetY}
			img := r.Render(eng, vp)

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("creating %s: %w", out, err)
			}
			defer f.Close()
			if err := png.Encode(f, img); err != nil {
				return fmt.Errorf("encoding %s: %w", out, err)
			}

			fmt.Printf("rendered %d nodes, %d edges to %s (%dx%d)\n",
				len(eng.Nodes()), len(eng.Edges()), out, width, height)
			return nil
		},
	}

	cmd.Flags().IntVarP(&width, "width", "w", 1280, "Output width in pixels")
	cmd.Flags().IntVarP(&height, "height", "H", 800, "Output height in pixels")
	cmd.Flags().StringVarP(&out, "out", "o", "board.png", "Output PNG path")
	cmd.Flags().Float64Var(&scale, "scale", 1.0, "Viewport zoom factor")
	cmd.Flags().Float64Var(&offsetX, "offset-x", 0, "Viewport X offset in pixels")
	cmd.Flags().Float64Var(&offsetY, "offset-y", 0, "Viewport Y offset in pixels")
	return cmd
}
