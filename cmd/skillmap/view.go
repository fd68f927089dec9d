package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phanxgames/skillmap"
	"github.com/phanxgames/skillmap/internal/config"
	"github.com/phanxgames/skillmap/internal/watch"
)

var (
	viewWatch      bool
	viewFPS        bool
	viewDebug      bool
	viewScript     string
	viewExitScript bool
)

var viewCmd = &cobra.Command{
	Use:   "view [source]",
	Short: "Open the skill map window",
	Long: `Loads a skills document from a URL or a local file and opens the map.
The source defaults to the configured one. With --watch a local file is
reloaded whenever it changes on disk.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		applyViewFlags(cmd, cfg)
		log := newLogger(os.Stderr, cfg.LogLevel, verbose)

		source := cfg.Source
		if len(args) > 0 {
			source = args[0]
		}

		m := skillmap.NewMap(mapOptions(cfg, log))

		timeout, err := cfg.LoadTimeout()
		if err != nil {
			return err
		}
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		// A failed load is shown in the window; keep going.
		_ = m.Load(ctx, source)

		if cfg.View.Watch {
			stop, err := startWatch(source, m, log)
			if err != nil {
				return err
			}
			defer stop()
		}

		if cfg.View.Script != "" {
			data, err := os.ReadFile(cfg.View.Script)
			if err != nil {
				return fmt.Errorf("reading test script: %w", err)
			}
			runner, err := skillmap.LoadTestScript(data)
			if err != nil {
				return err
			}
			m.SetTestRunner(runner)
		}

		return skillmap.Run(m, skillmap.RunConfig{
			Title:              cfg.View.Title,
			Width:              cfg.View.Width,
			Height:             cfg.View.Height,
			Resizable:          cfg.View.Resizable,
			ExitWhenScriptDone: viewExitScript,
		})
	},
}

func init() {
	viewCmd.Flags().BoolVarP(&viewWatch, "watch", "w", false, "reload the source file when it changes")
	viewCmd.Flags().BoolVar(&viewFPS, "fps", false, "show the FPS counter")
	viewCmd.Flags().BoolVar(&viewDebug, "debug", false, "enable debug checks and per-frame stats")
	viewCmd.Flags().StringVar(&viewScript, "script", "", "YAML test script to replay")
	viewCmd.Flags().BoolVar(&viewExitScript, "exit-after-script", false, "quit once the test script finishes")
	rootCmd.AddCommand(viewCmd)
}

// applyViewFlags overlays flags the user set explicitly onto cfg.
func applyViewFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("watch") {
		cfg.View.Watch = viewWatch
	}
	if flags.Changed("fps") {
		cfg.View.ShowFPS = viewFPS
	}
	if flags.Changed("debug") {
		cfg.View.Debug = viewDebug
	}
	if flags.Changed("script") {
		cfg.View.Script = viewScript
	}
}

// mapOptions translates the view and layout config into map options.
func mapOptions(cfg *config.Config, log *slog.Logger) skillmap.MapOptions {
	l := cfg.Layout
	return skillmap.MapOptions{
		Logger: log,
		Layout: skillmap.LayoutOptions{
			CellSize:      l.CellSize,
			CellMargin:    l.CellMargin,
			IslandPadding: l.IslandPadding,
			TitleHeight:   l.TitleHeight,
			IslandGap:     l.IslandGap,
			IslandsPerRow: l.IslandsPerRow,
		},
		KeyStep:          cfg.View.KeyStep,
		MinScale:         cfg.View.MinScale,
		MaxScale:         cfg.View.MaxScale,
		InitialScale:     cfg.View.InitialScale,
		WheelSensitivity: cfg.View.WheelSensitivity,
		ShowFPS:          cfg.View.ShowFPS,
		Debug:            cfg.View.Debug,
		ScreenshotDir:    cfg.View.ScreenshotDir,
	}
}

var errWatchRemote = errors.New("--watch needs a local file source")

func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// startWatch reloads m from source on every change. The returned func stops
// the watcher.
func startWatch(source string, m *skillmap.Map, log *slog.Logger) (func(), error) {
	if isRemote(source) {
		return nil, errWatchRemote
	}
	w, err := watch.New(strings.TrimPrefix(source, "file://"), watch.Options{
		OnChange: m.Reload,
		Logger:   log,
	})
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Warn("file watcher stopped", "err", err)
		}
	}()
	log.Debug("watching skills document", "path", w.Path())
	return func() {
		cancel()
		w.Close()
	}, nil
}
