package server

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/hashicorp/go-hclog"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"

	"github.com/readable-research/readable/internal/api"
	"github.com/readable-research/readable/internal/cmd/base"
	"github.com/readable-research/readable/internal/config"
	"github.com/readable-research/readable/internal/server"
	"github.com/readable-research/readable/pkg/papers"
)

type Command struct {
	*base.Command

	flagAddr     string
	flagConfig   string
	flagLogLevel string
}

func (c *Command) Synopsis() string {
	return "Run the server"
}

func (c *Command) Help() string {
	return `Usage: readable server -config=config.hcl

  Run the Readable Research API using an explicit configuration file.` +
		c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("server", flag.ContinueOnError))

	f.StringVar(
		&c.flagAddr, "addr", "",
		"Address to listen on. Overrides server.addr from the config file.",
	)
	f.StringVar(
		&c.flagConfig, "config", "", "Path to config file",
	)
	f.StringVar(
		&c.flagLogLevel, "log-level", "",
		"Log level (trace, debug, info, warn, error). Overrides log_level from the config file.",
	)

	return f
}

func (c *Command) Run(args []string) int {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	if c.flagConfig == "" {
		c.UI.Error("config flag is required")
		return 1
	}

	cfg, err := config.NewConfig(c.flagConfig)
	if err != nil {
		c.UI.Error(fmt.Sprintf("error parsing config file: %v", err))
		return 1
	}

	return c.RunWithConfig(cfg)
}

// RunWithConfig runs the server until it receives SIGINT or SIGTERM. Flags
// already parsed into c override values in cfg.
func (c *Command) RunWithConfig(cfg *config.Config) int {
	if c.flagAddr != "" {
		cfg.Server.Addr = c.flagAddr
	}
	if c.flagLogLevel != "" {
		cfg.LogLevel = c.flagLogLevel
	}
	if err := cfg.Validate(); err != nil {
		c.UI.Error(fmt.Sprintf("invalid configuration: %v", err))
		return 1
	}

	log := c.configureLogger(cfg)

	store, err := papers.OpenDir(cfg.Papers.Dir)
	if err != nil {
		c.UI.Error(fmt.Sprintf("error initializing paper store: %v", err))
		return 1
	}

	if cfg.Datadog.Enabled {
		tracer.Start(
			tracer.WithService(cfg.Datadog.Service),
			tracer.WithEnv(cfg.Datadog.Env),
		)
		defer tracer.Stop()
	}

	ln, err := net.Listen("tcp", cfg.Server.Addr)
	if err != nil {
		c.UI.Error(fmt.Sprintf("error listening on %s: %v", cfg.Server.Addr, err))
		return 1
	}

	srv := server.Server{
		Config: cfg,
		Logger: log,
		Papers: store,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("listening", "addr", ln.Addr().String(), "papers_dir", store.Root())
	if err := Serve(ctx, srv, ln); err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	log.Info("server stopped")

	return 0
}

// configureLogger applies the configured level and format to the command's
// logger.
func (c *Command) configureLogger(cfg *config.Config) hclog.Logger {
	level := hclog.LevelFromString(cfg.LogLevel)

	if cfg.LogFormat == "json" {
		c.Log = hclog.New(&hclog.LoggerOptions{
			Name:       c.Log.Name(),
			Level:      level,
			JSONFormat: true,
		})
	} else {
		c.Log.SetLevel(level)
	}

	return c.Log
}

// Serve serves the API on ln until ctx is done, then shuts down gracefully
// within the configured shutdown timeout.
func Serve(ctx context.Context, srv server.Server, ln net.Listener) error {
	timeouts := srv.Config.Server.Timeouts()

	httpSrv := &http.Server{
		Handler:      api.NewHandler(srv),
		ReadTimeout:  timeouts.Read,
		WriteTimeout: timeouts.Write,
		IdleTimeout:  timeouts.Idle,
		ErrorLog: srv.Logger.StandardLogger(&hclog.StandardLoggerOptions{
			InferLevels: true,
		}),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpSrv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("error serving HTTP: %w", err)
	case <-ctx.Done():
	}

	srv.Logger.Info("shutting down server", "timeout", timeouts.Shutdown)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}
	return nil
}
