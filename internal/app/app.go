// Package app wires the installation together: roster, radio, scheduler,
// journal and control surface. It acts as the facade for the whole system.
package app

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lcalzada-xor/ghostfield/internal/adapters/display"
	"github.com/lcalzada-xor/ghostfield/internal/adapters/radio"
	"github.com/lcalzada-xor/ghostfield/internal/adapters/reporting"
	"github.com/lcalzada-xor/ghostfield/internal/adapters/storage"
	"github.com/lcalzada-xor/ghostfield/internal/adapters/web"
	"github.com/lcalzada-xor/ghostfield/internal/config"
	"github.com/lcalzada-xor/ghostfield/internal/core/domain"
	"github.com/lcalzada-xor/ghostfield/internal/core/ports"
	"github.com/lcalzada-xor/ghostfield/internal/core/services/scheduler"
	"github.com/lcalzada-xor/ghostfield/internal/roster"
	"github.com/lcalzada-xor/ghostfield/internal/telemetry"
)

// Application holds the core components of the installation.
type Application struct {
	Config    *config.Config
	RunID     string
	Roster    domain.Roster
	Plan      domain.ChannelPlan
	Scheduler *scheduler.Scheduler
	WebServer *web.Server
	Store     *storage.SQLiteAdapter

	radio          ports.Radio
	monitorEnabled bool
}

// New creates an Application and bootstraps its components.
func New(cfg *config.Config) (*Application, error) {
	app := &Application{
		Config: cfg,
		RunID:  uuid.NewString(),
	}

	if err := app.bootstrap(); err != nil {
		return nil, fmt.Errorf("application bootstrap failed: %w", err)
	}

	return app, nil
}

func (app *Application) bootstrap() error {
	telemetry.InitMetrics()

	if err := app.loadRoster(); err != nil {
		return err
	}

	if err := app.initStorage(); err != nil {
		return err
	}

	if err := app.initRadio(); err != nil {
		return err
	}

	return app.initScheduler()
}

// loadRoster resolves the roster and channel plan: a roster file when
// configured, the built-in set otherwise. A -channels flag overrides the
// plan either way.
func (app *Application) loadRoster() error {
	if app.Config.RosterPath != "" {
		f, err := roster.LoadFile(app.Config.RosterPath)
		if err != nil {
			return fmt.Errorf("roster load failed: %w", err)
		}
		r, err := f.Roster(roster.Filter{})
		if err != nil {
			return fmt.Errorf("roster invalid: %w", err)
		}
		plan, err := f.ChannelPlan(roster.Filter{})
		if err != nil {
			return fmt.Errorf("channel plan invalid: %w", err)
		}
		app.Roster = r
		app.Plan = plan
		log.Printf("Loaded roster of %d networks from %s", r.Len(), app.Config.RosterPath)
	} else {
		app.Roster = domain.DefaultRoster()
		app.Plan = domain.DefaultChannelPlan()
		log.Printf("Using built-in roster of %d networks", app.Roster.Len())
	}

	if len(app.Config.Channels) > 0 {
		plan, err := domain.NewChannelPlan(app.Config.Channels)
		if err != nil {
			return fmt.Errorf("channel override invalid: %w", err)
		}
		app.Plan = plan
	}
	return nil
}

func (app *Application) initStorage() error {
	if app.Config.DBPath == "" {
		log.Println("Burst journal disabled")
		return nil
	}

	store, err := storage.NewSQLiteAdapter(app.Config.DBPath)
	if err != nil {
		return fmt.Errorf("failed to init burst journal: %w", err)
	}
	app.Store = store

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := store.StartRun(ctx, app.RunID, app.Config.Interface, app.Roster.Len()); err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	return nil
}

func (app *Application) initRadio() error {
	if app.Config.MockMode {
		log.Println("Mock Mode Active: transmitting into the void")
		app.radio = radio.NewMockRadio()
		return nil
	}

	if err := radio.EnableMonitorMode(app.Config.Interface); err != nil {
		return fmt.Errorf("failed to enable monitor mode on %s: %w", app.Config.Interface, err)
	}
	app.monitorEnabled = true
	time.Sleep(2 * time.Second) // Settle time

	tx, err := radio.NewTransmitter(app.Config.Interface)
	if err != nil {
		return fmt.Errorf("failed to open radio on %s: %w", app.Config.Interface, err)
	}
	app.radio = tx
	return nil
}

func (app *Application) initScheduler() error {
	var sink ports.BurstSink
	if app.Store != nil {
		sink = app.Store
	}
	app.WebServer = web.NewServer(app.Config.Addr, nil, app.Roster, app.Plan,
		sink, reporting.NewPDFExporter(), app.Config.APITokenHash)

	displays := []ports.Display{display.NewLogDisplay(), app.WebServer.WSManager}
	if sink != nil {
		displays = append(displays, display.NewJournalDisplay(context.Background(), app.RunID, sink))
	}

	sched, err := scheduler.New(app.Roster, app.Plan, app.radio, display.NewFanOut(displays...),
		scheduler.WallClock{}, scheduler.Options{
			BeaconInterval: app.Config.BeaconInterval,
			FramePacing:    app.Config.FramePacing,
			LiveTimestamps: app.Config.LiveTimestamps,
		})
	if err != nil {
		return err
	}
	app.Scheduler = sched
	app.WebServer.Controller = sched
	return nil
}

// Run starts the transmission loop and the control server, blocking until
// ctx is cancelled or a component fails.
func (app *Application) Run(ctx context.Context) error {
	slog.Info("Starting ghostfield", "run_id", app.RunID, "networks", app.Roster.Len(), "channels", app.Plan.All())

	errChan := make(chan error, 2)

	go func() {
		if err := app.WebServer.Run(ctx); err != nil {
			errChan <- fmt.Errorf("web server error: %w", err)
		}
	}()

	go func() {
		if err := app.Scheduler.Run(ctx, scheduler.DefaultPollEvery); err != nil {
			errChan <- fmt.Errorf("scheduler error: %w", err)
		}
	}()

	slog.Info("Ghostfield transmitting. Press Ctrl+C to terminate.")

	select {
	case <-ctx.Done():
		slog.Info("Termination signal received")
	case err := <-errChan:
		app.cleanup()
		return err
	}

	return app.cleanup()
}

func (app *Application) cleanup() error {
	slog.Info("Cleaning up resources...")

	if app.radio != nil {
		app.radio.Close()
	}
	if app.Store != nil {
		app.Store.Close()
	}
	return nil
}

// RestoreNetwork reverts the interface changes made at startup.
func (app *Application) RestoreNetwork() {
	if !app.monitorEnabled {
		return
	}
	log.Println("Restoring interface...")
	radio.DisableMonitorMode(app.Config.Interface)
}
