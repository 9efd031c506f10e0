package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/xtding233/parabola/internal/config"
	"github.com/xtding233/parabola/internal/logging"
	"github.com/xtding233/parabola/internal/render"
	"github.com/xtding233/parabola/internal/session"
	"github.com/xtding233/parabola/internal/share"
)

type options struct {
	configPath    string
	configTimeout time.Duration
	url           string
	a, b, c       float64
	width         int
	dark          bool
	logLevel      string
	logFile       string
	metricsOut    string
}

// app is one loaded configuration plus a started session.
type app struct {
	cfg      config.Config
	log      *slog.Logger
	registry *prometheus.Registry
	session  *session.Session
	logClose func() error
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:          "parabola",
		Short:        "Explore y = ax² + bx + c: vertex, roots, derivation and chart",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if isTerminal(cmd.OutOrStdout()) {
				return runTUI(cmd, opts)
			}
			return runExplain(cmd, opts)
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", os.Getenv("PARABOLA_CONFIG"), "config file or http(s) URL (YAML); built-in defaults when empty")
	pf.DurationVar(&opts.configTimeout, "config-timeout", 5*time.Second, "timeout for loading the config")
	pf.StringVar(&opts.url, "url", "", "share link to start from (?a=&b=&c=)")
	pf.Float64Var(&opts.a, "a", 0, "coefficient a (overrides the link and defaults)")
	pf.Float64Var(&opts.b, "b", 0, "coefficient b")
	pf.Float64Var(&opts.c, "c", 0, "coefficient c")
	pf.IntVar(&opts.width, "width", 0, "chart width in pixels (min 800)")
	pf.BoolVar(&opts.dark, "dark", false, "start in dark mode")
	pf.StringVar(&opts.logLevel, "log-level", "info", "debug, info, warn or error")
	pf.StringVar(&opts.logFile, "log-file", "", "append logs to this file")
	pf.StringVar(&opts.metricsOut, "metrics-out", "", "write session metrics in Prometheus text format on exit")

	root.AddCommand(
		newTUICmd(opts),
		newRenderCmd(opts),
		newExplainCmd(opts),
		newShareCmd(opts),
	)
	return root
}

// newApp loads the config (falling back to built-in defaults on any error),
// resolves the starting triple and starts a session.
func newApp(cmd *cobra.Command, opts *options, logOut io.Writer) (*app, error) {
	a := &app{registry: prometheus.NewRegistry(), logClose: func() error { return nil }}
	if opts.logFile != "" {
		f, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		logOut, a.logClose = f, f.Close
	}
	a.log, _ = logging.New(logOut, opts.logLevel)

	ctx, cancel := context.WithTimeout(cmd.Context(), opts.configTimeout)
	defer cancel()
	cfg, err := config.Load(ctx, opts.configPath, &http.Client{Timeout: opts.configTimeout})
	if err != nil {
		a.log.Warn("using built-in configuration", slog.String("error", err.Error()))
	}
	a.cfg = cfg
	a.log.Debug("config loaded", slog.String("version", cfg.Version))

	initial := config.Resolve(cfg, share.Overrides(opts.url))
	fl := cmd.Flags()
	if fl.Changed("a") {
		initial.A = opts.a
	}
	if fl.Changed("b") {
		initial.B = opts.b
	}
	if fl.Changed("c") {
		initial.C = opts.c
	}

	a.session = session.New(cfg, render.NewChartRenderer(),
		session.WithMetrics(session.NewMetrics(a.registry)),
		session.WithLogger(a.log),
		session.WithWidth(opts.width),
		session.WithDark(opts.dark),
	)
	a.session.Start(initial)
	return a, nil
}

func (a *app) close(opts *options) error {
	a.session.Close()
	var err error
	if opts.metricsOut != "" {
		if err = prometheus.WriteToTextfile(opts.metricsOut, a.registry); err != nil {
			a.log.Error("write metrics", slog.String("error", err.Error()))
		}
	}
	if cerr := a.logClose(); err == nil {
		err = cerr
	}
	return err
}
