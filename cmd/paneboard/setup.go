package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"paneboard/internal/config"
	"paneboard/internal/layout"
	"paneboard/internal/module"
	"paneboard/internal/profile"
	"paneboard/internal/pty"
	"paneboard/internal/widgets"
)

// newRegistry registers the built-in modules. A nil runner leaves cmd panes
// inert, which is what every command except run wants.
func newRegistry(cfg config.Config, runner pty.Runner, logger *slog.Logger) (*module.Registry, error) {
	reg := module.NewRegistry()
	err := widgets.Register(reg, widgets.Deps{
		PTY:           runner,
		Logger:        logger,
		MarkdownStyle: cfg.UI.MarkdownStyle,
		Shell:         cfg.UI.Shell,
	})
	if err != nil {
		return nil, fmt.Errorf("register modules: %w", err)
	}
	return reg, nil
}

// openStore opens the configured profile store. The returned func releases it.
func openStore(cfg config.ProfileConfig) (profile.Store, func() error, error) {
	switch cfg.Store {
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		return profile.NewRedisStore(client, cfg.RedisKey), client.Close, nil
	default:
		s, err := profile.NewFileStore(cfg.Dir)
		if err != nil {
			return nil, nil, fmt.Errorf("profile dir: %w", err)
		}
		return s, func() error { return nil }, nil
	}
}

// loadState reads the device-state mirror. It returns nil when none is configured.
func loadState(cfg config.StateConfig) (*widgets.MapState, error) {
	if cfg.File == "" {
		return nil, nil
	}
	values, err := widgets.LoadStateFile(cfg.File)
	if err != nil {
		return nil, err
	}
	return widgets.NewMapState(values), nil
}

// dataOption passes state to the tree only when it exists, so a nil
// *MapState never shows up as a StateSource.
func dataOption(state *widgets.MapState) []layout.Option {
	if state == nil {
		return nil
	}
	return []layout.Option{layout.WithData(state)}
}

// descriptorSource says where a descriptor came from.
type descriptorSource struct {
	Descriptor string
	// Profile is the profile it was loaded from, empty for literals and the default layout.
	Profile string
}

// resolveDescriptor picks the descriptor a command works on: a literal
// argument, "-" for stdin, or the profile named by profileFlag (falling back
// to profile.name). A missing configured profile falls back to the default
// layout; a missing profile named on the command line is an error.
func resolveDescriptor(cmd *cobra.Command, opts *rootOptions, args []string, profileFlag string) (descriptorSource, error) {
	if len(args) > 0 {
		if args[0] != "-" {
			return descriptorSource{Descriptor: args[0]}, nil
		}
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return descriptorSource{}, fmt.Errorf("read stdin: %w", err)
		}
		return descriptorSource{Descriptor: strings.TrimRight(string(b), "\r\n")}, nil
	}

	name := profileFlag
	explicit := name != ""
	if !explicit {
		name = opts.cfg.Profile.Name
	}
	store, closeStore, err := openStore(opts.cfg.Profile)
	if err != nil {
		return descriptorSource{}, err
	}
	defer closeStore()

	desc, err := store.Load(contextOrBackground(cmd), name)
	switch {
	case err == nil:
		return descriptorSource{Descriptor: desc, Profile: profile.Normalize(name)}, nil
	case errors.Is(err, profile.ErrNotFound) && !explicit:
		return descriptorSource{Descriptor: opts.cfg.Layout.Default, Profile: profile.Normalize(name)}, nil
	default:
		return descriptorSource{}, err
	}
}

// contextOrBackground tolerates commands executed without a context.
func contextOrBackground(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
