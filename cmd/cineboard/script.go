package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cineboard/pkg/board"
	"cineboard/pkg/engine"
	"cineboard/pkg/script"
)

func scriptCmd() *cobra.Command {
	var (
		boardPath string
		savePath  string
	)

	cmd := &cobra.Command{
		Use:   "script <scenario.js>",
		Short: "Run a JavaScript scenario against a board",
		Long: "Runs a scenario through the same gesture pipeline the desktop\n" +
			"surface uses, so scripted drags, drops, and keystrokes behave\n" +
			"exactly like interactive ones.",
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			opts := []engine.Option{engine.WithLogger(logger)}
			if boardPath != "" {
				snap, err := board.Load(boardPath)
				if err != nil {
					bad.Fprintf(os.Stderr, "FAIL ")
					fmt.Fprintln(os.Stderr, err)
					os.Exit(1)
				}
				opts = append(opts, engine.WithNodes(snap.Nodes), engine.WithEdges(snap.Edges))
			}
			eng := engine.New(opts...)

			runner := script.New(eng, script.WithLogger(logger))
			err := runner.RunFile(args[0])
			for _, line := range runner.Output() {
				fmt.Println("  " + line)
			}
			if err != nil {
				bad.Printf("FAIL %s\n", args[0])
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			good.Printf("PASS %s\n", args[0])
			fmt.Printf("  %d nodes, %d edges\n", len(eng.Nodes()), len(eng.Edges()))

			if savePath != "" {
				if err := board.Save(savePath, eng.Snapshot()); err != nil {
					fmt.Fprintln(os.Stderr, err)
					os.Exit(1)
				}
				fmt.Printf("  saved board to %s\n", savePath)
			}
		},
	}

	cmd.Flags().StringVarP(&boardPath, "board", "b", "", "Board file to load before the scenario runs")
	cmd.Flags().StringVarP(&savePath, "save", "s", "", "Write the resulting board to this path")
	return cmd
}
