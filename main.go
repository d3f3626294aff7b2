package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nstehr/colinatole/agent"
	"github.com/nstehr/colinatole/config"
	"github.com/nstehr/colinatole/fleet"
	"github.com/nstehr/colinatole/ipc"
	"github.com/nstehr/colinatole/turnlog"
)

const banner = `
 ▄████▄   ▒█████   ██▓     ██▓ ███▄    █  ▄▄▄     ▄▄▄█████▓ ▒█████   ██▓    ▓█████
▒██▀ ▀█  ▒██▒  ██▒▓██▒    ▓██▒ ██ ▀█   █ ▒████▄   ▓  ██▒ ▓▒▒██▒  ██▒▓██▒    ▓█   ▀
▒▓█    ▄ ▒██░  ██▒▒██░    ▒██▒▓██  ▀█ ██▒▒██  ▀█▄ ▒ ▓██░ ▒░▒██░  ██▒▒██░    ▒███
▒▓▓▄ ▄██▒▒██   ██░▒██░    ░██░▓██▒  ▐▌██▒░██▄▄▄▄██░ ▓██▓ ░ ▒██   ██░▒██░    ▒▓█  ▄
▒ ▓███▀ ░░ ████▓▒░░██████▒░██░▒██░   ▓██░ ▓█   ▓██▒ ▒██▒ ░ ░ ████▓▒░░██████▒░▒████▒

Reservation-Driven Fleet Control`

var (
	configFile string
	logDir     string
	logLevel   string
	recordDir  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "colinatole [seed]",
		Short: "Halite III fleet bot",
		Long: `Plays one Halite III match over stdin/stdout. The optional seed makes
the random navigation fallback reproducible.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runPlay,
	}
	rootCmd.Flags().StringVarP(&configFile, "config", "c", "", "Path to a YAML tuning file")
	rootCmd.Flags().StringVar(&logDir, "log-dir", ".", "Directory for the per-player log file")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn or error")
	rootCmd.Flags().StringVar(&recordDir, "record", "", "Directory to write a compressed turn log to")

	rootCmd.AddCommand(newReportCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runPlay(cmd *cobra.Command, args []string) error {
	level, err := parseLevel(logLevel)
	if err != nil {
		return err
	}
	// stdout carries the protocol; log to stderr until we know our id.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	tuning := config.Default()
	if configFile != "" {
		if tuning, err = config.Load(configFile); err != nil {
			return fmt.Errorf("load tuning: %w", err)
		}
	}

	seed := time.Now().UnixNano()
	if len(args) == 1 {
		if seed, err = strconv.ParseInt(args[0], 10, 64); err != nil {
			return fmt.Errorf("invalid seed %q: %w", args[0], err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	conn := ipc.NewConnection(os.Stdin, os.Stdout)
	if err := conn.Handshake(); err != nil {
		return err
	}
	myID := conn.Game.MyID

	logFile, err := openLog(logDir, myID)
	if err != nil {
		return err
	}
	defer logFile.Close()
	slog.SetDefault(slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: level})))
	slog.Info(banner)
	slog.Info("starting colinatole", "player", myID, "seed", seed, "config", configFile)

	ctrl, err := fleet.NewController(tuning, rand.New(rand.NewSource(seed)))
	if err != nil {
		return err
	}

	var rec agent.Recorder
	if recordDir != "" {
		path := filepath.Join(recordDir, fmt.Sprintf("turns-%d.jsonl.zst", myID))
		r, err := turnlog.Create(path)
		if err != nil {
			return fmt.Errorf("open turn log: %w", err)
		}
		defer func() {
			if err := r.Close(); err != nil {
				slog.Error("failed to close turn log", "path", path, "error", err)
			}
			slog.Info("turn log written", "path", path, "turns", r.Rows())
		}()
		rec = r
	}

	a := agent.New(conn, ctrl, tuning.Agent, rec)
	if err := a.Run(ctx); err != nil {
		slog.Error("match aborted", "error", err)
		return err
	}
	slog.Info("shutting down")
	return nil
}

func openLog(dir string, id int) (*os.File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("log dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("bot-%d.log", id))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	return f, nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(s))); err != nil {
		return 0, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}
