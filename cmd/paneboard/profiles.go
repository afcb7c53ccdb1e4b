package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"paneboard/internal/layout"
	"paneboard/internal/logging"
	"paneboard/internal/profile"
)

func newProfilesCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "profiles",
		Aliases: []string{"profile"},
		Short:   "Manage saved boards",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List saved profiles",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withStore(opts, func(store profile.Store) error {
					names, err := store.List(contextOrBackground(cmd))
					if err != nil {
						return err
					}
					for _, n := range names {
						fmt.Fprintln(cmd.OutOrStdout(), n)
					}
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "show NAME",
			Short: "Print a profile's descriptor",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withStore(opts, func(store profile.Store) error {
					desc, err := store.Load(contextOrBackground(cmd), args[0])
					if err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), desc)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "save NAME DESCRIPTOR|-",
			Short: "Save a descriptor under a name",
			Long:  "Parses the descriptor first; nothing is written if it does not parse.",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				src, err := resolveDescriptor(cmd, opts, args[1:], "")
				if err != nil {
					return err
				}
				reg, err := newRegistry(opts.cfg, nil, logging.NewNop())
				if err != nil {
					return err
				}
				tree, err := layout.Parse(src.Descriptor, reg)
				if err != nil {
					showErrorPosition(cmd.ErrOrStderr(), src.Descriptor, err)
					return err
				}
				tree.Destroy()
				return withStore(opts, func(store profile.Store) error {
					if err := store.Save(contextOrBackground(cmd), args[0], src.Descriptor); err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", profile.Normalize(args[0]))
					return nil
				})
			},
		},
		&cobra.Command{
			Use:     "rm NAME",
			Aliases: []string{"delete"},
			Short:   "Delete a profile",
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withStore(opts, func(store profile.Store) error {
					if err := store.Delete(contextOrBackground(cmd), args[0]); err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", profile.Normalize(args[0]))
					return nil
				})
			},
		},
	)
	return cmd
}

func withStore(opts *rootOptions, fn func(profile.Store) error) error {
	store, closeStore, err := openStore(opts.cfg.Profile)
	if err != nil {
		return err
	}
	defer closeStore()
	return fn(store)
}
