package main

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/spf13/cobra"

	"cineboard/pkg/board"
	"cineboard/pkg/engine"
	"cineboard/pkg/render"
)

func openCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open [board.json]",
		Short: "Open a board in an interactive window",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig(cfgPath)

			boardPath := "board.json"
			opts := []engine.Option{engine.WithLogger(logger)}
			if len(args) == 1 {
				boardPath = args[0]
				snap, err := board.Load(boardPath)
				if err != nil {
					return err
				}
				opts = append(opts, engine.WithNodes(snap.Nodes), engine.WithEdges(snap.Edges))
			}
			eng := engine.New(opts...)

			rend, err := render.NewRenderer(cfg.Window.Width, cfg.Window.Height)
			if err != nil {
				return err
			}

			a := app.New()
			w := a.NewWindow(cfg.Window.Title)
			w.Resize(fyne.NewSize(float32(cfg.Window.Width), float32(cfg.Window.Height)))

			surface := newBoardSurface(eng, rend, cfg)
			status := widget.NewLabel("")
			surface.onFrame = func() {
				status.SetText(fmt.Sprintf("%d nodes  %d edges  %s  zoom %.0f%%",
					len(eng.Nodes()), len(eng.Edges()), eng.Mode(), surface.vp.Scale*100))
			}

			createAt := func(create func(x, y float64)) func() {
				return func() {
					x, y := surface.worldCenter()
					create(x, y)
					surface.redraw()
				}
			}
			toolbar := container.NewHBox(
				widget.NewButton("Note", createAt(eng.CreateNoteAt)),
				widget.NewButton("Column", createAt(eng.CreateColumnAt)),
				widget.NewButton("Prompt", createAt(eng.CreatePromptAt)),
				widget.NewSeparator(),
				widget.NewButton("Undo", func() { eng.Undo(); surface.redraw() }),
				widget.NewButton("Redo", func() { eng.Redo(); surface.redraw() }),
				widget.NewSeparator(),
				widget.NewButton("Save", func() {
					if err := board.Save(boardPath, eng.Snapshot()); err != nil {
						status.SetText("save failed: " + err.Error())
						return
					}
					status.SetText("saved " + boardPath)
				}),
			)

			w.SetContent(container.NewBorder(toolbar, status, nil, nil, surface))
			w.Canvas().SetOnTypedKey(surface.typedKey)
			w.ShowAndRun()
			return nil
		},
	}
}
