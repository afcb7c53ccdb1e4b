package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"paneboard/internal/logging"
	"paneboard/internal/ui/textutil"
	"paneboard/internal/widgets"
)

func newModulesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "modules",
		Short: "List the content modules a descriptor can name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := newRegistry(opts.cfg, nil, logging.NewNop())
			if err != nil {
				return err
			}
			names := reg.Names()
			col := 0
			for _, n := range names {
				col = max(col, textutil.VisualWidth(n))
			}
			for _, n := range names {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", textutil.PadRightVisual(n, col), widgets.Summaries[n])
			}
			return nil
		},
	}
}
