package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"paneboard/internal/layout"
	"paneboard/internal/ui"
)

const (
	fallbackWidth  = 80
	fallbackHeight = 24
)

func newRenderCmd(opts *rootOptions) *cobra.Command {
	var (
		profileName   string
		width, height int
	)
	cmd := &cobra.Command{
		Use:   "render [descriptor|-]",
		Short: "Print one frame of a board",
		Long: `Renders a single frame without taking over the terminal. The size defaults
to the terminal's, or 80x24 when stdout is not a terminal. cmd panes are not
started.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, _, err := parseResolved(cmd, opts, args, profileName)
			if err != nil {
				return err
			}
			defer tree.Destroy()
			tree.Update()

			w, h := terminalSize()
			if width > 0 {
				w = width
			}
			if height > 0 {
				h = height
			}
			board := ui.NewBoard(tree)
			board.Relayout(layout.Rect{W: w, H: h})
			fmt.Fprintln(cmd.OutOrStdout(), board.Render(0))
			return nil
		},
	}
	cmd.Flags().StringVarP(&profileName, "profile", "p", "", "render a saved profile")
	cmd.Flags().IntVar(&width, "width", 0, "frame width in cells")
	cmd.Flags().IntVar(&height, "height", 0, "frame height in cells")
	return cmd
}

func terminalSize() (int, int) {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return fallbackWidth, fallbackHeight
	}
	w, h, err := term.GetSize(fd)
	if err != nil || w <= 0 || h <= 0 {
		return fallbackWidth, fallbackHeight
	}
	return w, h
}
