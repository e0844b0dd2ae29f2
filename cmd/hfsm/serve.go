package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/aretw0/hfsm"
	httpAdapter "github.com/aretw0/hfsm/pkg/adapters/http"
	"github.com/aretw0/hfsm/pkg/observability"
	"github.com/aretw0/hfsm/pkg/runner"
)

var serveCmd = &cobra.Command{
	Use:   "serve <definition>...",
	Short: "Drive machines behind the debug HTTP server",
	Long: `Compiles each definition, drives every machine on its own ticker and exposes them over HTTP:
inspection, Mermaid graphs, live event streams (SSE), triggers and Prometheus metrics.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := settings(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("addr") {
			cfg.HTTPAddr, _ = cmd.Flags().GetString("addr")
		}

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector())
		metrics, err := observability.NewMetrics(reg)
		if err != nil {
			return err
		}

		eng := engine(cmd, cfg, logger, hfsm.WithLifecycleHooks(
			metrics.Hooks().Merge(observability.LoggingHooks(logger)),
		))
		if err := metrics.TrackRegistry(eng.Registry()); err != nil {
			return err
		}

		persist, closeSinks := sinks(cfg, logger)
		defer closeSinks()

		server := httpAdapter.NewServer(
			httpAdapter.WithLogger(logger),
			httpAdapter.WithVersion(hfsm.Version),
			httpAdapter.WithGatherer(reg),
		)

		var drivers []*runner.Driver
		defer func() {
			for _, d := range drivers {
				if err := d.Close(); err != nil {
					logger.Warn("failed to destroy machine", "machine", d.Name(), "err", err)
				}
			}
		}()
		for _, name := range args {
			c, err := eng.Load(name)
			if err != nil {
				return err
			}
			d := eng.Drive(c,
				runner.WithInterval(cfg.Interval),
				runner.WithSinks(append(persist, server)...),
			)
			server.Add(d)
			drivers = append(drivers, d)
		}

		sm := runner.NewSignalManager(cmd.Context())
		defer sm.Stop()
		ctx := sm.Context()

		var wg sync.WaitGroup
		driverErrors := make(chan error, len(drivers))
		for _, d := range drivers {
			wg.Add(1)
			go func(d *runner.Driver) {
				defer wg.Done()
				if err := d.Run(ctx); err != nil {
					driverErrors <- fmt.Errorf("machine %s: %w", d.Name(), err)
				}
			}(d)
		}

		srv := &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           server.Handler(),
			ReadHeaderTimeout: 5 * time.Second,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("starting hfsm server", "addr", srv.Addr, "machines", len(drivers))
			serverErrors <- srv.ListenAndServe()
		}()

		var runErr error
		select {
		case err := <-serverErrors:
			if !errors.Is(err, http.ErrServerClosed) {
				runErr = fmt.Errorf("server error: %w", err)
			}
		case err := <-driverErrors:
			runErr = err
		case <-ctx.Done():
			logger.Info("shutdown requested")
		}

		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("graceful shutdown did not complete", "timeout", 5*time.Second, "err", err)
			_ = srv.Close()
		}

		sm.Stop()
		wg.Wait()
		logger.Info("hfsm server stopped")
		return runErr
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", "", "Listen address; overrides HFSM_HTTP_ADDR")
}
