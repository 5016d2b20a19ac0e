package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
	"libdb.so/pixsketch"
	"libdb.so/pixsketch/internal/periphboard"
	"libdb.so/pixsketch/internal/simdev"
	"libdb.so/pixsketch/internal/window"
)

var (
	config  = "pixsketch.toml"
	backend = ""
	verbose = false
)

func init() {
	pflag.StringVarP(&config, "config", "c", config, "configuration file")
	pflag.StringVarP(&backend, "backend", "b", backend, "backend to run on: headless, window or periph")
	pflag.BoolVarP(&verbose, "verbose", "v", verbose, "verbose output")
}

func main() {
	pflag.Parse()

	logLevel := slog.LevelWarn
	if verbose {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := readConfig()
	if err != nil {
		return err
	}

	if backend != "" {
		cfg.Backend = pixsketch.Backend(backend)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	out, err := pixsketch.OpenExport(cfg.Export)
	if err != nil {
		return err
	}
	defer out.Close()

	switch cfg.Backend {
	case pixsketch.HeadlessBackend:
		err = runHeadless(ctx, cfg, out)
	case pixsketch.WindowBackend:
		err = runWindow(ctx, cfg, out)
	case pixsketch.PeriphBackend:
		err = runPeriph(ctx, cfg, out)
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("sketcher failed: %w", err)
	}

	return nil
}

// runHeadless runs on in-memory devices until the script on stdin ends.
func runHeadless(ctx context.Context, cfg *pixsketch.Config, out io.Writer) error {
	board := simdev.NewBoard(int16(cfg.Width), int16(cfg.Height))
	board.Switch.Set(cfg.Export.Enabled)

	s, err := pixsketch.NewSketcher(board.Devices(out), slog.Default())
	if err != nil {
		return fmt.Errorf("failed to create sketcher: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errg, ctx := errgroup.WithContext(ctx)
	errg.Go(func() error {
		return s.Run(ctx, cfg.Timing)
	})
	errg.Go(func() error {
		defer cancel()
		return simdev.NewConsole(board, s, os.Stdout, slog.Default()).Run(ctx, os.Stdin)
	})

	return errg.Wait()
}

func runWindow(ctx context.Context, cfg *pixsketch.Config, out io.Writer) error {
	board := window.NewBoard(int16(cfg.Width), int16(cfg.Height))
	board.Switch.Set(cfg.Export.Enabled)

	s, err := pixsketch.NewSketcher(board.Devices(out), slog.Default())
	if err != nil {
		return fmt.Errorf("failed to create sketcher: %w", err)
	}

	return window.Run(ctx, board, cfg.Window.Scale, slog.Default(), func(ctx context.Context) error {
		return s.Run(ctx, cfg.Timing)
	})
}

func runPeriph(ctx context.Context, cfg *pixsketch.Config, out io.Writer) error {
	board, err := periphboard.Open(cfg.Periph, cfg.Width, cfg.Height, slog.Default())
	if err != nil {
		return err
	}
	defer board.Close()

	s, err := pixsketch.NewSketcher(board.Devices(out, cfg.Export.Enabled), slog.Default())
	if err != nil {
		return fmt.Errorf("failed to create sketcher: %w", err)
	}

	return s.Run(ctx, cfg.Timing)
}

// readConfig reads the configuration file. A missing file is fine as long as
// it was not asked for explicitly.
func readConfig() (*pixsketch.Config, error) {
	f, err := os.Open(config)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !pflag.CommandLine.Changed("config") {
			return pixsketch.DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	return pixsketch.ParseConfig(f)
}
