package app

import (
	"facegate/internal/access"
	"facegate/internal/config"
	"facegate/internal/logger"
	"facegate/internal/repository"
	"facegate/internal/repository/sqlite"
	"facegate/internal/services/alert"
	"facegate/internal/services/camera"
	"facegate/internal/services/dashboard"
	"facegate/internal/services/display"
	"facegate/internal/services/storage"
	"facegate/internal/services/telemetry"
	"facegate/internal/services/vision"
)

// App wires configuration, collaborators and the access controller.
// Every capability degrades independently: a failed camera or missing model
// leaves the loop running in a skip or always-deny mode instead of exiting.
type App struct {
	config     *config.Config
	logger     *logger.Logger
	controller *access.Controller
	dashboard  *dashboard.Service
	db         *sqlite.DB
	camera     *camera.Device
	engine     *vision.Engine
	stop       chan struct{}
}

// NewApp resolves capability flags into concrete or no-op collaborators and
// builds the controller.
func NewApp() *App {
	cfg := config.Load()
	log := logger.NewLogger(cfg)

	a := &App{
		config: cfg,
		logger: log,
		stop:   make(chan struct{}),
	}

	deps := access.Collaborators{
		Engine:    a.setupEngine(),
		Camera:    a.setupCamera(),
		Storage:   a.setupStorage(),
		Telemetry: a.setupTelemetry(),
		Alerter:   a.setupAlerter(),
		Display:   a.setupDisplay(),
		Events:    a.setupEventLog(),
		Publisher: a.setupDashboard(),
	}

	a.controller = access.NewController(cfg, log, deps)
	return a
}

func (a *App) setupEngine() access.Engine {
	engine, err := vision.NewEngine(a.config, a.logger)
	if err != nil {
		a.logger.Error("Vision engine init failed, cycles will be skipped: %v", err)
		return vision.Unavailable{Reason: err}
	}
	a.engine = engine
	return engine
}

func (a *App) setupCamera() access.Camera {
	device, err := camera.Open(a.config.CameraDevice, a.logger)
	if err != nil {
		a.logger.Error("Camera init failed, cycles will be skipped: %v", err)
		return camera.Unavailable{Reason: err}
	}
	a.camera = device
	return device
}

func (a *App) setupStorage() access.Storage {
	if !a.config.StorageEnabled {
		a.logger.Warning("Persistent storage disabled")
		return storage.Disabled{}
	}
	return storage.NewDisk()
}

func (a *App) setupTelemetry() access.Telemetry {
	if !a.config.TelemetryEnabled {
		a.logger.Warning("Telemetry disabled")
		return telemetry.Disabled{}
	}
	return telemetry.NewThingSpeak(a.config, a.logger)
}

func (a *App) setupAlerter() access.Alerter {
	if !a.config.AlertEnabled {
		a.logger.Warning("Intruder alerting disabled")
		return alert.Disabled{}
	}
	return alert.NewEmail(a.config, a.logger)
}

func (a *App) setupDisplay() access.Display {
	if !a.config.DisplayEnabled {
		return display.Disabled{}
	}
	return display.NewConsole()
}

func (a *App) setupEventLog() access.EventLog {
	if !a.config.StorageEnabled {
		return repository.Disabled{}
	}

	db, err := sqlite.New(a.config.DatabasePath)
	if err != nil {
		a.logger.Error("Event database init failed, history disabled: %v", err)
		return repository.Disabled{}
	}
	a.db = db
	return sqlite.NewEventRepository(db)
}

func (a *App) setupDashboard() access.Publisher {
	if !a.config.DashboardEnabled {
		return dashboard.Disabled{}
	}
	a.dashboard = dashboard.NewService(a.config, a.logger)
	return a.dashboard
}

// Run enrolls the reference face and drives the recognition loop until Stop.
func (a *App) Run() error {
	if a.dashboard != nil {
		go func() {
			if err := a.dashboard.Run(a.stop); err != nil {
				a.logger.Error("Dashboard server stopped: %v", err)
			}
		}()
	}

	a.controller.Enroll()
	a.controller.Show("Present your face", "to authorize")

	a.logger.Info("Starting recognition loop (delay %s)", a.config.CycleDelay)
	a.controller.Run(a.stop)
	return nil
}

// Stop ends the recognition loop.
func (a *App) Stop() {
	close(a.stop)
}

// Close releases long-lived resources.
func (a *App) Close() error {
	a.controller.Close()
	if a.camera != nil {
		a.camera.Close()
	}
	if a.engine != nil {
		a.engine.Close()
	}
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}
