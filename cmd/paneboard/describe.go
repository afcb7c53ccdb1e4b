package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"paneboard/internal/layout"
	"paneboard/internal/logging"
)

// parseResolved parses the descriptor a command was pointed at with inert
// modules. The caller destroys the tree.
func parseResolved(cmd *cobra.Command, opts *rootOptions, args []string, profileFlag string) (*layout.Tree, descriptorSource, error) {
	src, err := resolveDescriptor(cmd, opts, args, profileFlag)
	if err != nil {
		return nil, src, err
	}
	reg, err := newRegistry(opts.cfg, nil, logging.NewNop())
	if err != nil {
		return nil, src, err
	}
	state, err := loadState(opts.cfg.State)
	if err != nil {
		return nil, src, err
	}
	tree, err := layout.Parse(src.Descriptor, reg, dataOption(state)...)
	if err != nil {
		showErrorPosition(cmd.ErrOrStderr(), src.Descriptor, err)
		return nil, src, err
	}
	return tree, src, nil
}

// showErrorPosition points at the offending column of a single-line descriptor.
func showErrorPosition(w io.Writer, descriptor string, err error) {
	var syn *layout.SyntaxError
	if !errors.As(err, &syn) || strings.ContainsAny(descriptor, "\r\n") || syn.Offset > len(descriptor) {
		return
	}
	col := runewidth.StringWidth(descriptor[:syn.Offset])
	fmt.Fprintf(w, "  %s\n  %s^\n", descriptor, strings.Repeat(" ", col))
}

func newValidateCmd(opts *rootOptions) *cobra.Command {
	var profileName string
	cmd := &cobra.Command{
		Use:   "validate [descriptor|-]",
		Short: "Check that a descriptor parses",
		Long: `Parses a descriptor and reports the first error with its offset.
Without an argument the configured profile (or --profile) is checked.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, _, err := parseResolved(cmd, opts, args, profileName)
			if err != nil {
				return err
			}
			defer tree.Destroy()
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d panes\n", len(tree.Leaves()))
			return nil
		},
	}
	cmd.Flags().StringVarP(&profileName, "profile", "p", "", "check a saved profile")
	return cmd
}

func newFmtCmd(opts *rootOptions) *cobra.Command {
	var profileName string
	cmd := &cobra.Command{
		Use:   "fmt [descriptor|-]",
		Short: "Print a descriptor in canonical form",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, _, err := parseResolved(cmd, opts, args, profileName)
			if err != nil {
				return err
			}
			defer tree.Destroy()
			out, err := tree.Serialize()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&profileName, "profile", "p", "", "format a saved profile")
	return cmd
}

func newInspectCmd(opts *rootOptions) *cobra.Command {
	var (
		profileName string
		format      string
	)
	cmd := &cobra.Command{
		Use:   "inspect [descriptor|-]",
		Short: "Dump the parsed tree as YAML or JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "yaml" && format != "json" {
				return fmt.Errorf("unknown format %q (want yaml or json)", format)
			}
			tree, _, err := parseResolved(cmd, opts, args, profileName)
			if err != nil {
				return err
			}
			defer tree.Destroy()
			return writeSnapshot(cmd.OutOrStdout(), tree.Snapshot(), format)
		},
	}
	cmd.Flags().StringVarP(&profileName, "profile", "p", "", "inspect a saved profile")
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format: yaml or json")
	return cmd
}

func writeSnapshot(w io.Writer, snap layout.Snapshot, format string) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(snap); err != nil {
		return err
	}
	return enc.Close()
}
