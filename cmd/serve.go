package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/pinkpantherking/calassist/internal/instrumentation"
	"github.com/pinkpantherking/calassist/internal/logging"
	"github.com/pinkpantherking/calassist/internal/server"
)

func newServeCmd() *cobra.Command {
	var (
		metricsEnabled bool
		metricsAddr    string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run as an MCP server over stdio",
		Long: `Serve exposes the scheduling and calendar tools to MCP clients over
stdio. All diagnostic output goes to stderr; stdout carries the protocol.

With --metrics-enabled a Prometheus endpoint and health probes are served
on a separate port.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(metricsEnabled, metricsAddr)
		},
	}

	cmd.Flags().BoolVar(&metricsEnabled, "metrics-enabled", false, "Serve Prometheus metrics and health probes")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", server.DefaultMetricsAddr, "Listen address for the metrics server")

	return cmd
}

func runServe(metricsEnabled bool, metricsAddr string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// stdout belongs to the MCP transport.
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version
	provider, err := instrumentation.NewProvider(ctx, instrConfig)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := provider.Shutdown(shutdownCtx); err != nil {
			logger.Warn("instrumentation shutdown failed", logging.Err(err))
		}
	}()

	sc, err := server.NewServerContext(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := sc.Shutdown(); err != nil {
			logger.Warn("server context shutdown failed", logging.Err(err))
		}
	}()

	if provider.Enabled() {
		auditLogger := instrumentation.NewAuditLoggerWithConfig(logger, instrConfig.AuditLogging)
		sc.SetInstrumentation(provider.Metrics(), auditLogger)
	}

	registry, err := buildToolRegistry(sc, logger)
	if err != nil {
		return err
	}

	mcpSrv := mcpserver.NewMCPServer("calassist", version,
		mcpserver.WithToolCapabilities(true),
	)
	registry.AttachTo(mcpSrv)

	health := server.NewHealthChecker(sc)

	if metricsEnabled {
		metricsServer, err := server.NewMetricsServer(server.MetricsServerConfig{
			Addr:                    metricsAddr,
			Enabled:                 true,
			InstrumentationProvider: provider,
			HealthChecker:           health,
		})
		if err != nil {
			return err
		}
		go func() {
			if err := metricsServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server failed", logging.Err(err))
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), server.DefaultShutdownTimeout)
			defer cancel()
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				logger.Warn("metrics server shutdown failed", logging.Err(err))
			}
		}()
	}

	health.SetReady(true)
	logger.Info("serving MCP over stdio",
		slog.String("version", version),
		slog.Int("tools", len(registry.Definitions())))

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- mcpserver.ServeStdio(mcpSrv)
	}()

	select {
	case <-ctx.Done():
		health.SetReady(false)
		logger.Info("shutdown signal received")
		return nil
	case err := <-serveErr:
		health.SetReady(false)
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	}
}
