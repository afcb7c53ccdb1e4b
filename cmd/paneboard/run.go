package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"paneboard/internal/layout"
	"paneboard/internal/logging"
	"paneboard/internal/metrics"
	"paneboard/internal/profile"
	"paneboard/internal/pty"
	"paneboard/internal/trace"
	"paneboard/internal/ui"
	"paneboard/internal/widgets"
)

const shutdownTimeout = 5 * time.Second

type runFlags struct {
	profile   string
	authoring bool
}

func newRunCmd(opts *rootOptions) *cobra.Command {
	var flags runFlags
	cmd := &cobra.Command{
		Use:   "run [descriptor|-]",
		Short: "Show a board full-screen",
		Long: `Mounts a descriptor and shows it full-screen. Without an argument the
configured profile (or --profile) is loaded; when it does not exist yet the
default layout from the config is shown and SPC w saves it under that name.

Press SPC e to toggle authoring mode and SPC to see the available keys.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("authoring") {
				opts.cfg.Layout.Authoring = flags.authoring
			}
			s, err := startSession(cmd, opts, args, flags.profile, &pty.CreackPTY{})
			if err != nil {
				return err
			}
			defer s.Close()

			p := tea.NewProgram(s.Model.AsTeaModel(), tea.WithAltScreen(), tea.WithMouseCellMotion())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("run board: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&flags.profile, "profile", "p", "", "profile to load (default from config)")
	cmd.Flags().BoolVarP(&flags.authoring, "authoring", "a", false, "start in authoring mode")
	return cmd
}

// session is everything a running board owns. Close releases it in reverse
// order of acquisition.
type session struct {
	Model  *ui.AppModel
	Tree   *layout.Tree
	Server *metrics.Server
	State  *widgets.MapState
	closers []func(context.Context) error
}

func (s *session) onClose(fn func(context.Context) error) {
	s.closers = append(s.closers, fn)
}

func (s *session) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		errs = append(errs, s.closers[i](ctx))
	}
	return errors.Join(errs...)
}

// startSession wires logging, tracing, metrics, the profile store, the state
// mirror and the module registry around a freshly mounted tree.
func startSession(cmd *cobra.Command, opts *rootOptions, args []string, profileName string, runner pty.Runner) (_ *session, err error) {
	cfg := opts.cfg
	s := &session{}
	defer func() {
		if err != nil {
			s.Close()
		}
	}()

	logger, logCloser, err := logging.Open(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return nil, err
	}
	s.onClose(func(context.Context) error { return logCloser.Close() })

	ctx := contextOrBackground(cmd)
	provider, err := trace.NewProvider(ctx)
	if err != nil {
		return nil, fmt.Errorf("tracing: %w", err)
	}
	s.onClose(provider.Shutdown)

	collector := metrics.NewCollector()
	status := metrics.NewBoard(collector)
	if cfg.HTTP.Addr != "" {
		s.Server = metrics.NewServer(cfg.HTTP.Addr, collector, status, logger)
		if err := s.Server.Start(); err != nil {
			return nil, fmt.Errorf("status server: %w", err)
		}
		s.onClose(s.Server.Stop)
	}

	reg, err := newRegistry(cfg, runner, logger)
	if err != nil {
		return nil, err
	}
	store, closeStore, err := openStore(cfg.Profile)
	if err != nil {
		return nil, err
	}
	s.onClose(func(context.Context) error { return closeStore() })

	s.State, err = loadState(cfg.State)
	if err != nil {
		return nil, err
	}
	if s.State != nil {
		watchCtx, stop := context.WithCancel(context.Background())
		go watchState(watchCtx, cfg.State.File, s.State, cfg.UI.Tick, logger)
		s.onClose(func(context.Context) error { stop(); return nil })
	}

	src, err := resolveDescriptor(cmd, opts, args, profileName)
	if err != nil {
		return nil, err
	}
	mountOpts := append(dataOption(s.State),
		layout.WithAuthoring(cfg.Layout.Authoring),
		layout.WithLogger(logger),
		layout.WithTracer(provider.Tracer()),
		layout.WithObserver(collector),
	)
	s.Tree, err = layout.Mount(src.Descriptor, reg, mountOpts...)
	if err != nil {
		showErrorPosition(cmd.ErrOrStderr(), src.Descriptor, err)
		return nil, err
	}
	s.onClose(func(context.Context) error { s.Tree.Destroy(); return nil })

	name := src.Profile
	if name == "" {
		name = profile.Normalize(cfg.Profile.Name)
	}
	logger.Info("board mounted", "tree", s.Tree.ID(), "profile", name, "panes", len(s.Tree.Leaves()))
	s.Model = ui.NewAppModel(s.Tree, ui.Options{
		Registry:  reg,
		Store:     store,
		Status:    status,
		Logger:    logger,
		Profile:   name,
		Tick:      cfg.UI.Tick,
		Summaries: widgets.Summaries,
	})
	return s, nil
}

// watchState re-reads the state file every interval. A read error keeps the
// previous values.
func watchState(ctx context.Context, path string, state *widgets.MapState, every time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			values, err := widgets.LoadStateFile(path)
			if err != nil {
				logger.Warn("reload state", "path", path, "err", err)
				continue
			}
			state.Replace(values)
		}
	}
}

