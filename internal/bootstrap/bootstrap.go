// Package bootstrap wires the module graph for the dwell binary.
package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cdr.dev/slog/v3"
	"cdr.dev/slog/v3/sloggers/sloghuman"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/coder/quartz"

	focusinadapter "dwell/internal/modules/focus/adapter/in"
	focusoutadapter "dwell/internal/modules/focus/adapter/out"
	focusdto "dwell/internal/modules/focus/dto"
	focusin "dwell/internal/modules/focus/port/in"
	focusservice "dwell/internal/modules/focus/service"
	focususecase "dwell/internal/modules/focus/usecase"
	goalinadapter "dwell/internal/modules/goal/adapter/in"
	goaloutadapter "dwell/internal/modules/goal/adapter/out"
	goalin "dwell/internal/modules/goal/port/in"
	goalservice "dwell/internal/modules/goal/service"
	goalusecase "dwell/internal/modules/goal/usecase"
	reportinadapter "dwell/internal/modules/report/adapter/in"
	reportoutadapter "dwell/internal/modules/report/adapter/out"
	reportservice "dwell/internal/modules/report/service"
	reportusecase "dwell/internal/modules/report/usecase"
	screeninadapter "dwell/internal/modules/screen/adapter/in"
	screenoutadapter "dwell/internal/modules/screen/adapter/out"
	screenin "dwell/internal/modules/screen/port/in"
	screenservice "dwell/internal/modules/screen/service"
	screenusecase "dwell/internal/modules/screen/usecase"
	sensorinadapter "dwell/internal/modules/sensor/adapter/in"
	sensoroutadapter "dwell/internal/modules/sensor/adapter/out"
	sensorin "dwell/internal/modules/sensor/port/in"
	sensorservice "dwell/internal/modules/sensor/service"
	sensorusecase "dwell/internal/modules/sensor/usecase"
	soundinadapter "dwell/internal/modules/sound/adapter/in"
	soundoutadapter "dwell/internal/modules/sound/adapter/out"
	sounddto "dwell/internal/modules/sound/dto"
	soundin "dwell/internal/modules/sound/port/in"
	soundservice "dwell/internal/modules/sound/service"
	soundusecase "dwell/internal/modules/sound/usecase"
	"dwell/internal/platform/config"
	"dwell/internal/platform/pidfile"
	"dwell/internal/platform/storage"
	uiapp "dwell/internal/ui/app"
)

// App holds the wired modules. The daemon drives the usecases directly; CLI
// commands go through the handlers.
type App struct {
	Sensor sensorin.Usecase
	Screen screenin.Usecase
	Focus  focusin.Usecase
	Sound  soundin.Usecase
	Goal   goalin.Usecase

	SensorCLI sensorinadapter.CLIHandler
	ScreenCLI screeninadapter.CLIHandler
	FocusCLI  focusinadapter.CLIHandler
	SoundCLI  soundinadapter.CLIHandler
	GoalCLI   goalinadapter.CLIHandler
	ReportCLI reportinadapter.CLIHandler

	cfg    config.Config
	logger slog.Logger
	db     *sql.DB
}

// New opens the shared database and wires every module. The caller owns the
// returned App and must Close it.
func New(cfg config.Config) (*App, error) {
	logger := slog.Make(sloghuman.Sink(os.Stderr))
	clk := quartz.NewReal()

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sensorUC := sensorusecase.NewInteractor(sensorservice.NewSensorService(
		sensoroutadapter.NewFileManifestStore(cfg.ProviderManifest),
		sensoroutadapter.NewGRPCHost(),
	))

	settingStore, err := goaloutadapter.NewSQLiteSettingStore(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("new setting store: %w", err)
	}
	goalUC := goalusecase.NewInteractor(goalservice.NewGoalService(settingStore))

	// Sound thresholds are settings, read once at wiring time. Changing them
	// takes a daemon restart.
	thresholdCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	thresholdDB, err := goalUC.SoundThresholdDB(thresholdCtx)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("read sound threshold: %w", err)
	}
	thresholdDuration, err := goalUC.SoundThresholdDuration(thresholdCtx)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("read sound threshold duration: %w", err)
	}

	dayStore, err := screenoutadapter.NewSQLiteDayStore(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("new day store: %w", err)
	}
	screenUC := screenusecase.NewInteractor(screenservice.NewScreenService(
		logger.Named("screen"),
		clk,
		dayStore,
		screenoutadapter.NewSensorPresenceSource(sensorUC, cfg.Sound.SilenceFloor),
		screenservice.Options{
			IdleThreshold:      time.Duration(cfg.Screen.IdleThresholdSeconds) * time.Second,
			CheckpointInterval: time.Duration(cfg.Screen.CheckpointSeconds) * time.Second,
			MinSegmentSeconds:  cfg.Screen.MinSegmentSeconds,
		},
	))

	focusStore, err := focusoutadapter.NewSQLiteSessionStore(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("new focus session store: %w", err)
	}
	focusUC := focususecase.NewInteractor(focusservice.NewFocusService(
		logger.Named("focus"),
		clk,
		focusStore,
		focusoutadapter.NewSensorForegroundSource(logger.Named("foreground"), clk, sensorUC, time.Second),
		focusoutadapter.NewSensorIdleProbe(sensorUC, cfg.Sound.SilenceFloor),
		focusservice.Options{
			PollInterval:       time.Duration(cfg.Focus.PollSeconds) * time.Second,
			CheckpointInterval: time.Duration(cfg.Focus.CheckpointSeconds) * time.Second,
			MinSessionSeconds:  cfg.Focus.MinSessionSeconds,
			IdleIgnore:         time.Duration(cfg.Focus.IdleIgnoreSeconds) * time.Second,
		},
	))

	soundStore, err := soundoutadapter.NewSQLiteSessionStore(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("new sound session store: %w", err)
	}
	soundUC := soundusecase.NewInteractor(soundservice.NewSoundService(
		logger.Named("sound"),
		clk,
		soundStore,
		soundoutadapter.NewSensorAudioSource(sensorUC),
		soundservice.Options{
			PollInterval:        time.Duration(cfg.Sound.PollSeconds) * time.Second,
			CheckpointInterval:  time.Duration(cfg.Sound.CheckpointSeconds) * time.Second,
			MinListeningSeconds: cfg.Sound.MinSessionSeconds,
			SilenceFloor:        cfg.Sound.SilenceFloor,
			ThresholdDB:         thresholdDB,
			ThresholdDuration:   thresholdDuration,
		},
	))

	reportUC := reportusecase.NewInteractor(reportservice.NewReportService(
		clk,
		reportoutadapter.NewSQLiteHistoryReader(db),
	))

	return &App{
		Sensor: sensorUC,
		Screen: screenUC,
		Focus:  focusUC,
		Sound:  soundUC,
		Goal:   goalUC,

		SensorCLI: sensorinadapter.NewCLIHandler(sensorUC),
		ScreenCLI: screeninadapter.NewCLIHandler(screenUC),
		FocusCLI:  focusinadapter.NewCLIHandler(focusUC),
		SoundCLI:  soundinadapter.NewCLIHandler(soundUC),
		GoalCLI:   goalinadapter.NewCLIHandler(goalUC),
		ReportCLI: reportinadapter.NewCLIHandler(reportUC),

		cfg:    cfg,
		logger: logger,
		db:     db,
	}, nil
}

func (a *App) Close() error {
	return a.db.Close()
}

func (a *App) Logger() slog.Logger { return a.logger }

// Run starts the trackers and blocks until ctx is canceled or a termination
// signal arrives. SIGUSR1 pauses the screen tracker, SIGUSR2 resumes it;
// a service manager maps OS suspend and session lock onto these.
func (a *App) Run(ctx context.Context) error {
	pf := pidfile.New(a.cfg.DataDir)
	if err := pf.Acquire(); err != nil {
		return err
	}
	defer pf.Release()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := a.Sensor.Start(runCtx); err != nil {
		return fmt.Errorf("start sensor host: %w", err)
	}
	defer a.Sensor.Stop()

	a.Screen.OnStateChange(func(state string) {
		a.logger.Debug(runCtx, "tracking state changed", slog.F("state", state))
	})
	a.Focus.OnSwitch(func(sw focusdto.Switch) {
		a.logger.Debug(runCtx, "focus switched", slog.F("app", sw.AppName))
	})
	a.Sound.OnAlert(func(alert sounddto.Alert) {
		settingCtx, settingCancel := context.WithTimeout(runCtx, 5*time.Second)
		enabled, err := a.Goal.NotificationsEnabled(settingCtx)
		settingCancel()
		if err != nil {
			// An unreadable setting never swallows an exposure alert.
			enabled = true
		}
		if !enabled {
			return
		}
		a.logger.Warn(runCtx, "harmful sound exposure",
			slog.F("device", alert.DeviceName),
			slog.F("estimated_max_db", alert.EstimatedMaxDB),
			slog.F("harmful_seconds", alert.HarmfulSeconds),
		)
	})

	if err := a.Screen.Start(runCtx); err != nil {
		return fmt.Errorf("start screen tracker: %w", err)
	}
	if err := a.Focus.Start(runCtx); err != nil {
		a.stopTrackers()
		return fmt.Errorf("start focus tracker: %w", err)
	}
	if err := a.Sound.Start(runCtx); err != nil {
		a.stopTrackers()
		return fmt.Errorf("start sound tracker: %w", err)
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGUSR1, syscall.SIGUSR2)
	defer signal.Stop(sigs)

	a.logger.Info(runCtx, "tracking", slog.F("db", a.cfg.DBPath), slog.F("pid_file", pf.Path()))

	for {
		select {
		case <-ctx.Done():
			return a.stopTrackers()
		case sig := <-sigs:
			switch sig {
			case syscall.SIGUSR1:
				if err := a.Screen.Pause(runCtx); err != nil {
					a.logger.Error(runCtx, "pause screen tracker", slog.Error(err))
				}
			case syscall.SIGUSR2:
				if err := a.Screen.Resume(runCtx); err != nil {
					a.logger.Error(runCtx, "resume screen tracker", slog.Error(err))
				}
			default:
				a.logger.Info(runCtx, "shutting down", slog.F("signal", sig.String()))
				return a.stopTrackers()
			}
		}
	}
}

// stopTrackers performs the final checkpoint of every tracker. Each Stop gets
// a fresh context so a canceled run context cannot skip persistence.
func (a *App) stopTrackers() error {
	stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return errors.Join(
		a.Sound.Stop(stopCtx),
		a.Focus.Stop(stopCtx),
		a.Screen.Stop(stopCtx),
	)
}

// RunTUI starts the dashboard over the shared database. It reads beside a
// live daemon; tracker state arrives through checkpointed rows.
func RunTUI(app *App) error {
	model := uiapp.NewModel(app.ReportCLI, app.GoalCLI)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}

// ReportApp is the read-only wiring used by commands that run beside a live
// daemon without taking write locks.
type ReportApp struct {
	ReportCLI reportinadapter.CLIHandler

	db *sql.DB
}

// NewReporting opens the database read-only. It fails until a daemon run has
// created the schema.
func NewReporting(cfg config.Config) (*ReportApp, error) {
	db, err := storage.OpenReadOnly(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open database read-only: %w", err)
	}
	reportUC := reportusecase.NewInteractor(reportservice.NewReportService(
		quartz.NewReal(),
		reportoutadapter.NewSQLiteHistoryReader(db),
	))
	return &ReportApp{ReportCLI: reportinadapter.NewCLIHandler(reportUC), db: db}, nil
}

func (a *ReportApp) Close() error {
	return a.db.Close()
}
