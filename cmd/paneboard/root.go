package main

import (
	"github.com/spf13/cobra"

	"paneboard/internal/config"
)

// rootOptions is shared by every subcommand. cfg is loaded before any of them runs.
type rootOptions struct {
	configPath string
	cfg        config.Config
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "paneboard",
		Short: "Tiling dashboard of panes described by a layout descriptor",
		Long: `paneboard mounts a layout descriptor such as

  {Dh30%(clock:)[(md:# notes)(dummy:)]}

and shows it full-screen. Splits, tabs and content panes can be rearranged
interactively and saved back as named profiles.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			opts.cfg = cfg
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default ~/.config/paneboard/config.toml)")

	cmd.AddCommand(
		newRunCmd(opts),
		newValidateCmd(opts),
		newFmtCmd(opts),
		newInspectCmd(opts),
		newRenderCmd(opts),
		newModulesCmd(opts),
		newProfilesCmd(opts),
	)
	return cmd
}
