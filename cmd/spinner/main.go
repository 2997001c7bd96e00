package main

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
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/super-spinner/audio"
	"github.com/lixenwraith/super-spinner/config"
	"github.com/lixenwraith/super-spinner/core"
	"github.com/lixenwraith/super-spinner/engine"
	"github.com/lixenwraith/super-spinner/event"
	"github.com/lixenwraith/super-spinner/logging"
	"github.com/lixenwraith/super-spinner/metrics"
	"github.com/lixenwraith/super-spinner/mockapi"
	"github.com/lixenwraith/super-spinner/network"
	"github.com/lixenwraith/super-spinner/reel"
	"github.com/lixenwraith/super-spinner/service"
	"github.com/lixenwraith/super-spinner/spinner"
	"github.com/lixenwraith/super-spinner/view"
)

var (
	configFlag  = flag.String("config", "spinner.yaml", "Path to YAML config, missing file uses defaults")
	mockFlag    = flag.Bool("mock", false, "Serve an embedded mock platform and point the client at it")
	muteFlag    = flag.Bool("mute", false, "Disable audio")
	levelFlag   = flag.String("log-level", "", "Override log level")
	metricsFlag = flag.String("metrics", "", "Override metrics listen address")
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "spinner: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(*configFlag)
	if err != nil {
		return err
	}
	if *muteFlag {
		cfg.Audio.Enabled = false
	}
	if *levelFlag != "" {
		cfg.Log.Level = *levelFlag
	}
	if *metricsFlag != "" {
		cfg.Metrics.Addr = *metricsFlag
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Sync()

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()
	ctx, cancel := context.WithCancel(sigCtx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	if *mockFlag {
		addr, err := serveMock(gctx, g, cfg.Server.Mock, logger)
		if err != nil {
			return err
		}
		cfg.API = *network.LocalConfig("http://" + addr)
	}

	hub := service.NewHub(logger)
	netSvc := network.NewService(logger)
	audioSvc := audio.NewService(logger)
	metricsSvc := metrics.NewService(logger)
	for _, reg := range []struct {
		svc  service.Service
		args []any
	}{
		{netSvc, []any{cfg.Network()}},
		{audioSvc, []any{cfg.AudioConfig()}},
		{metricsSvc, []any{cfg.Metrics.Addr}},
	} {
		if err := hub.Register(reg.svc, reg.args...); err != nil {
			return err
		}
	}
	if err := hub.InitAll(); err != nil {
		return err
	}
	if err := hub.StartAll(); err != nil {
		hub.StopAll()
		return err
	}
	defer hub.StopAll()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	screen.EnableMouse()
	core.SetCrashReset(screen.Fini)
	defer func() {
		core.SetCrashReset(nil)
		screen.Fini()
	}()

	strip := reel.NewStrip(cfg.Reel)
	ui := view.New(screen, strip, cfg.UI.Window)

	sinks := spinner.Sinks{ui, metrics.NewSink(metricsSvc.Metrics())}
	if s := audioSvc.Sink(); s != nil {
		sinks = append(sinks, s)
	}

	client := netSvc.Client()
	orch, err := spinner.New(strip, client, sinks, cfg.Spin, spinner.WithLogger(logger))
	if err != nil {
		return err
	}
	defer orch.Close()

	boot, err := spinner.NewBootstrap(client, orch, sinks, cfg.Bootstrap, spinner.WithLogger(logger))
	if err != nil {
		return err
	}
	defer boot.Close()

	queue := event.NewQueue()
	loop := engine.NewLoop(queue, time.Second/time.Duration(cfg.UI.FrameRate), engine.WithLogger(logger))
	loop.Handle(func(*engine.Loop, event.GameEvent) { orch.Tap() }, event.EventTap)
	loop.Handle(func(l *engine.Loop, _ event.GameEvent) { l.Stop() }, event.EventQuit)
	loop.Handle(func(*engine.Loop, event.GameEvent) { ui.Resize() }, event.EventResize)
	loop.Handle(func(*engine.Loop, event.GameEvent) {
		if m := audioSvc.Manager(); m != nil {
			ui.SetMuted(m.ToggleMute())
		}
	}, event.EventMuteToggle)
	loop.AddUpdater(boot)
	loop.AddUpdater(orch)
	loop.SetRender(ui.Draw)

	input := view.NewInput(screen, queue, logger)
	input.Start()
	defer input.Stop()

	boot.Start()
	ui.Draw()

	g.Go(func() error {
		defer cancel()
		return loop.Run(gctx)
	})

	logger.Info("spinner running", zap.String("api", cfg.API.BaseURL))
	return g.Wait()
}

// serveMock starts the mock platform on a loopback port and returns its address
func serveMock(ctx context.Context, g *errgroup.Group, cfg mockapi.Config, logger *zap.Logger) (string, error) {
	srv, err := mockapi.New(cfg, logger)
	if err != nil {
		return "", err
	}
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", fmt.Errorf("listen mock: %w", err)
	}
	httpSrv := &http.Server{Handler: srv.Handler(), ReadHeaderTimeout: 5 * time.Second}

	g.Go(func() error {
		if err := httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})
	return ln.Addr().String(), nil
}
