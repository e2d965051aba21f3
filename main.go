package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/soar/PadMouse/internal/action"
	"github.com/soar/PadMouse/internal/config"
	"github.com/soar/PadMouse/internal/control"
	"github.com/soar/PadMouse/internal/dispatch"
	"github.com/soar/PadMouse/internal/hub"
	"github.com/soar/PadMouse/internal/inject"
	"github.com/soar/PadMouse/internal/loop"
	"github.com/soar/PadMouse/internal/profile"
	"github.com/soar/PadMouse/internal/sdlpad"
	"github.com/soar/PadMouse/internal/server"
	"github.com/soar/PadMouse/internal/tray"
	"github.com/soar/PadMouse/internal/velocity"
)

var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

func main() {
	cfg, err := config.Load(os.Args[0], os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	// Create cancellable context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, shutdownSignals...)

	var inj action.Injector = inject.Logger{}
	if !cfg.Output.DryRun {
		u, err := inject.Open(inject.Options{
			Path:         cfg.Output.Device,
			Name:         cfg.Output.Name,
			ScreenWidth:  cfg.Output.ScreenWidth,
			ScreenHeight: cfg.Output.ScreenHeight,
		})
		if err != nil {
			log.Fatalf("Output device error: %v", err)
		}
		defer u.Close()
		inj = u
	} else {
		log.Println("Dry run: actions are logged, not injected")
	}

	integrator, err := velocity.New(cfg.Velocity)
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	store := control.NewStore()
	engine := dispatch.New(store, inj, dispatch.Options{
		Hysteresis:      cfg.Dispatch.Hysteresis,
		ActiveThreshold: cfg.Dispatch.ActiveThreshold,
		Verbose:         cfg.Verbose,
	})
	profile.Apply(engine, profile.Options{
		ScreenWidth:  cfg.Output.ScreenWidth,
		ScreenHeight: cfg.Output.ScreenHeight,
		PointerStick: cfg.Stick,
		Quit:         cancel,
	})

	paused := &atomic.Bool{}
	setPaused := func(p bool) {
		paused.Store(p)
		log.Printf("Output paused: %v", p)
	}

	// Optional live monitor
	var (
		frames     chan loop.Frame
		srv        *server.Server
		monitorURL string
	)
	serverErrCh := make(chan error, 1)
	if cfg.Monitor.Enabled {
		frames = make(chan loop.Frame, 256)

		h := hub.NewHub()
		go h.Run(ctx)

		broadcaster := hub.NewBroadcaster(h, frames, paused)
		go broadcaster.Run(ctx)
		setPaused = broadcaster.SetPaused

		srv, err = server.New(h, broadcaster, cfg.Monitor.Addr)
		if err != nil {
			log.Fatalf("Monitor error: %v", err)
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				serverErrCh <- err
			}
		}()
		monitorURL = "http://" + cfg.Monitor.Addr
	}

	stickX, stickY := cfg.StickAxes()
	reader := sdlpad.NewReader(cfg.Verbose)
	runner := loop.New(loop.Config{
		Source:     reader,
		Engine:     engine,
		Store:      store,
		Integrator: integrator,
		Injector:   inj,
		StickX:     stickX,
		StickY:     stickY,
		Paused:     paused,
		Frames:     frames,
	})

	// The reader must be opened, polled and closed on one locked thread, so
	// the whole loop lives in its own goroutine.
	loopDone := make(chan error, 1)
	go func() {
		if err := reader.Open(); err != nil {
			loopDone <- err
			return
		}
		defer reader.Close()
		runner.Run(ctx)
		loopDone <- nil
	}()

	// Channel for tray-triggered shutdown
	shutdownRequested := make(chan struct{})

	var t *tray.Tray
	if cfg.Tray {
		t = tray.New(tray.Options{
			MonitorURL: monitorURL,
			SetPaused:  setPaused,
			Shutdown: func() {
				close(shutdownRequested)
			},
		})
		go t.Run()
	}

	log.Printf("PadMouse started (stick=%s, %d Hz)", cfg.Stick, cfg.Velocity.TickRate)
	log.Println("Press Ctrl+C, or hold Start and press Select, to exit")

	// Wait for shutdown signal, tray request, quit combo or a failure
	var loopErr error
	loopExited := false
	select {
	case <-sigCh:
		log.Println("Shutting down...")
	case <-shutdownRequested:
		log.Println("Shutdown requested from tray")
	case <-ctx.Done():
	case err := <-serverErrCh:
		log.Printf("Monitor server error: %v", err)
	case loopErr = <-loopDone:
		loopExited = true
	}
	cancel()

	if !loopExited {
		loopErr = <-loopDone
	}
	if loopErr != nil {
		log.Printf("Device source error: %v", loopErr)
	}

	if t != nil {
		t.Quit()
	}

	if srv != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Monitor server shutdown error: %v", err)
		}
	}

	log.Println("PadMouse stopped")
}
