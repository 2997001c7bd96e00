package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/super-spinner/config"
	"github.com/lixenwraith/super-spinner/logging"
	"github.com/lixenwraith/super-spinner/metrics"
	"github.com/lixenwraith/super-spinner/mockapi"
)

const shutdownTimeout = 5 * time.Second

var (
	configFlag    = flag.String("config", "spinner.yaml", "Path to YAML config, missing file uses defaults")
	addrFlag      = flag.String("addr", "", "Override listen address")
	failFlag      = flag.Int("fail-first", -1, "Fail the first n requests with 503")
	scriptFlag    = flag.String("script", "", "Comma-separated spin results served in order")
	metricsFlag   = flag.String("metrics", "", "Serve process metrics on this address")
	latencyFlag   = flag.Duration("latency", 0, "Added latency per request")
	allowOriginsF = flag.String("origins", "", "Comma-separated CORS origins")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "spinner-server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(*configFlag)
	if err != nil {
		return err
	}
	mock := cfg.Server.Mock
	if *failFlag >= 0 {
		mock.FailFirst = *failFlag
	}
	if *latencyFlag > 0 {
		mock.Latency = *latencyFlag
	}
	var script []int
	if *scriptFlag != "" {
		if script, err = mockapi.ParseInts(*scriptFlag); err != nil {
			return fmt.Errorf("script: %w", err)
		}
	}
	if *allowOriginsF != "" {
		mock.AllowedOrigins = mockapi.SplitList(*allowOriginsF)
	}
	addr := cfg.Server.Addr
	if *addrFlag != "" {
		addr = *addrFlag
	}

	logCfg := cfg.Log
	logCfg.App = "spinner-server"
	logCfg.Console = true
	logger, err := logging.New(logCfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	srv, err := mockapi.New(mock, logger)
	if err != nil {
		return err
	}
	if script != nil {
		srv.SetScript(script)
		logger.Info("scripted results", zap.Ints("script", script))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)

	servers := []*http.Server{{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}}
	if *metricsFlag != "" {
		servers = append(servers, &http.Server{
			Addr:              *metricsFlag,
			Handler:           metrics.Router(metrics.New(true)),
			ReadHeaderTimeout: 5 * time.Second,
		})
	}

	for _, hs := range servers {
		g.Go(func() error {
			logger.Info("listening", zap.String("addr", hs.Addr))
			if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("serve %s: %w", hs.Addr, err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return hs.Shutdown(shutdownCtx)
		})
	}

	err = g.Wait()
	values, spins, faults := srv.Stats()
	logger.Info("stopped",
		zap.Int64("values", values),
		zap.Int64("spins", spins),
		zap.Int64("faults", faults),
	)
	return err
}
