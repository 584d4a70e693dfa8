package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/zephyrtronium/scicalc"
	"github.com/zephyrtronium/scicalc/internal/config"
	"github.com/zephyrtronium/scicalc/internal/console"
	"github.com/zephyrtronium/scicalc/internal/logging"
	"github.com/zephyrtronium/scicalc/internal/metrics"
)

var rootCmd = &cobra.Command{
	Use:   "scicalc",
	Short: "scicalc is a scientific calculator",
	Long: `scicalc evaluates calculator input such as "5! + sin(30) - 2^3".
With no command, it reads expressions interactively, one per line.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		defer a.close()
		return repl(cmd.InOrStdin(), a.con, a.calc)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "YAML configuration file")
	rootCmd.PersistentFlags().String("mode", "deg", "trig mode, deg or rad")
	rootCmd.PersistentFlags().String("log-level", "warn", "minimum level to log to stderr")
	rootCmd.PersistentFlags().String("metrics-addr", "", "address to serve Prometheus metrics on")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")
}

// app is what every command runs against.
type app struct {
	calc *scicalc.Calculator
	con  *console.Console
	log  *slog.Logger
	srv  *http.Server
}

// loadConfig reads the config file named by flags and applies flags which
// were set explicitly on top of it.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	flags := cmd.Flags()
	path, _ := flags.GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if flags.Changed("mode") {
		cfg.Mode, _ = flags.GetString("mode")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("metrics-addr") {
		cfg.MetricsAddr, _ = flags.GetString("metrics-addr")
	}
	if flags.Changed("no-color") {
		cfg.NoColor, _ = flags.GetBool("no-color")
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func setup(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	level, _ := cfg.Level()
	mode, _ := cfg.TrigMode()
	logger := logging.New(level)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	a := &app{log: logger}
	a.calc = scicalc.New(
		scicalc.WithLogger(logger),
		scicalc.WithObserver(metrics.New(reg)),
		scicalc.WithMode(mode),
	)
	interactive := console.IsInteractive(os.Stdin)
	a.con = console.New(cmd.OutOrStdout(), interactive, !cfg.NoColor)
	if cfg.MetricsAddr != "" {
		a.srv = serveMetrics(cfg.MetricsAddr, reg, logger)
	}
	logger.Debug("calculator ready", "mode", mode, "interactive", interactive)
	return a, nil
}

// serveMetrics starts an HTTP listener for Prometheus scrapes.
func serveMetrics(addr string, reg *prometheus.Registry, logger *slog.Logger) *http.Server {
	srv := &http.Server{
		Addr:              addr,
		Handler:           metrics.Handler(reg),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info("serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics listener failed", "error", err)
		}
	}()
	return srv
}

func (a *app) close() {
	if a.srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := a.srv.Shutdown(ctx); err != nil {
		a.log.Warn("metrics listener shutdown", "error", err)
	}
}
