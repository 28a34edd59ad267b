package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	tea "github.com/charmbracelet/bubbletea"
	hclog "github.com/hashicorp/go-hclog"

	commandinadapter "sprintbell/internal/modules/command/adapter/in"
	commandoutadapter "sprintbell/internal/modules/command/adapter/out"
	commandin "sprintbell/internal/modules/command/port/in"
	commandservice "sprintbell/internal/modules/command/service"
	commandusecase "sprintbell/internal/modules/command/usecase"
	daemoninadapter "sprintbell/internal/modules/daemon/adapter/in"
	daemonoutadapter "sprintbell/internal/modules/daemon/adapter/out"
	daemonservice "sprintbell/internal/modules/daemon/service"
	daemonusecase "sprintbell/internal/modules/daemon/usecase"
	effectsinadapter "sprintbell/internal/modules/effects/adapter/in"
	effectsoutadapter "sprintbell/internal/modules/effects/adapter/out"
	effectsdomain "sprintbell/internal/modules/effects/domain"
	effectsin "sprintbell/internal/modules/effects/port/in"
	effectsout "sprintbell/internal/modules/effects/port/out"
	effectsservice "sprintbell/internal/modules/effects/service"
	effectsusecase "sprintbell/internal/modules/effects/usecase"
	prefinadapter "sprintbell/internal/modules/preferences/adapter/in"
	prefoutadapter "sprintbell/internal/modules/preferences/adapter/out"
	prefservice "sprintbell/internal/modules/preferences/service"
	prefusecase "sprintbell/internal/modules/preferences/usecase"
	sessionloginadapter "sprintbell/internal/modules/sessionlog/adapter/in"
	sessionlogoutadapter "sprintbell/internal/modules/sessionlog/adapter/out"
	sessionlogin "sprintbell/internal/modules/sessionlog/port/in"
	sessionlogservice "sprintbell/internal/modules/sessionlog/service"
	sessionlogusecase "sprintbell/internal/modules/sessionlog/usecase"
	subgoalinadapter "sprintbell/internal/modules/subgoal/adapter/in"
	subgoaloutadapter "sprintbell/internal/modules/subgoal/adapter/out"
	subgoalin "sprintbell/internal/modules/subgoal/port/in"
	subgoalservice "sprintbell/internal/modules/subgoal/service"
	subgoalusecase "sprintbell/internal/modules/subgoal/usecase"
	timerinadapter "sprintbell/internal/modules/timer/adapter/in"
	timeroutadapter "sprintbell/internal/modules/timer/adapter/out"
	timerin "sprintbell/internal/modules/timer/port/in"
	timerservice "sprintbell/internal/modules/timer/service"
	timerusecase "sprintbell/internal/modules/timer/usecase"
	"sprintbell/internal/platform/clock"
	"sprintbell/internal/platform/config"
	"sprintbell/internal/platform/id"
	"sprintbell/internal/platform/kv"
	"sprintbell/internal/platform/logging"
	uiapp "sprintbell/internal/ui/app"
)

type App struct {
	Config config.Config
	Logger hclog.Logger

	TimerCLI   timerinadapter.CLIHandler
	GoalsCLI   subgoalinadapter.CLIHandler
	PrefsCLI   prefinadapter.CLIHandler
	LogsCLI    sessionloginadapter.CLIHandler
	EffectsCLI effectsinadapter.CLIHandler
	CommandCLI commandinadapter.CLIHandler
	DaemonCLI  daemoninadapter.CLIHandler

	timer    timerin.Usecase
	goals    subgoalin.Usecase
	logs     sessionlogin.Usecase
	commands commandin.Usecase
	manager  *timerservice.Manager
	closers  []io.Closer
}

// New wires every module against the SQLite store at cfg.DBPath. The timer is
// built but not restored; call RestoreTimer in the process that owns it.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	logger, logCloser, err := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		return nil, fmt.Errorf("new logger: %w", err)
	}
	app := &App{Config: cfg, Logger: logger, closers: []io.Closer{logCloser}}

	clk := clock.SystemClock{}
	ids := id.UUID{}

	store, err := kv.NewSQLiteStore(cfg.DBPath, clk)
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}
	app.closers = append(app.closers, store)

	prefUC := prefusecase.NewInteractor(prefservice.NewPreferenceService(
		prefoutadapter.NewKVPreferenceStore(store, logger.Named("preferences")),
		prefoutadapter.NewKVDataStore(store),
		logger.Named("preferences"),
	))
	if validation, err := prefUC.ValidateData(ctx); err != nil {
		logger.Warn("validate stored data failed", "error", err)
	} else if !validation.Valid {
		logger.Warn("stored data repaired", "subgoals_reset", validation.SubGoalsReset, "timer_discarded", validation.TimerDiscarded)
	}

	goalsUC := subgoalusecase.NewInteractor(subgoalservice.NewSubGoalService(
		subgoaloutadapter.NewKVSubGoalStore(store, ids, logger.Named("subgoal")),
		clk,
		ids,
		logger.Named("subgoal"),
	))

	projector, err := sessionlogoutadapter.NewSQLiteStatsProjector(cfg.DBPath)
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("new stats projector: %w", err)
	}
	app.closers = append(app.closers, projector)
	journal := sessionlogoutadapter.NewJSONLJournal(sessionlogoutadapter.JournalOptions{
		Dir:          cfg.LogDir,
		MaxFiles:     cfg.MaxLogFiles,
		MaxFileBytes: cfg.MaxLogFileBytes,
	}, clk, logger.Named("journal"))
	logsUC := sessionlogusecase.NewInteractor(sessionlogservice.NewSessionLogService(
		journal,
		projector,
		clk,
		ids,
		logger.Named("sessionlog"),
		sessionlogservice.Options{AppVersion: cfg.AppVersion, Platform: cfg.Platform},
	))

	effectsUC := effectsusecase.NewInteractor(effectsservice.NewEffectsService(
		notifierBackends(cfg, clk, logger),
		[]effectsout.Player{
			effectsoutadapter.NewCommandPlayer(cfg.SoundCommand, effectsoutadapter.ExecRunner),
			effectsoutadapter.NewBellPlayer(os.Stderr),
		},
		effectsoutadapter.NewPreferenceSettings(prefUC),
		logger.Named("effects"),
	))

	launch, err := prefUC.MarkLaunched(ctx, cfg.AppVersion)
	if err != nil {
		logger.Warn("record launch failed", "error", err)
	} else if launch.FirstLaunch {
		requestPermission(ctx, effectsUC, logger)
	}

	effects := timeroutadapter.NewEffectsAdapter(effectsUC)
	manager := timerservice.NewManager(timerservice.Deps{
		Snapshots:   timeroutadapter.NewKVSnapshotStore(store),
		Preferences: timeroutadapter.NewPreferenceAdapter(prefUC),
		Goals:       timeroutadapter.NewGoalAdapter(goalsUC),
		Recorder:    timeroutadapter.NewRecorderAdapter(logsUC),
		Sound:       effects,
		Notifier:    effects,
		Scheduler:   timeroutadapter.NewTickerScheduler(),
		Clock:       clk,
		Logger:      logger.Named("timer"),
	}, timerservice.Options{SnapshotEvery: cfg.SnapshotEvery, RestoreGrace: cfg.RestoreGrace})
	timerUC := timerusecase.NewInteractor(manager)

	commandUC := commandusecase.NewInteractor(commandservice.NewDispatcher(
		commandoutadapter.NewTimerAdapter(timerUC),
		commandoutadapter.NewGoalAdapter(goalsUC),
		logger.Named("command"),
	))

	daemonUC := daemonusecase.NewInteractor(daemonservice.NewDaemonService(daemonservice.Deps{
		Store:    daemonoutadapter.NewFileDaemonStore(cfg.PIDPath, cfg.SocketPath, daemonLogPath(cfg)),
		Server:   daemonoutadapter.NewJSONRPCServer(),
		Client:   daemonoutadapter.NewJSONRPCClient(),
		Timer:    timerUC,
		Goals:    goalsUC,
		Commands: commandUC,
		Clock:    clk,
		Logger:   logger.Named("daemon"),
	}))

	app.timer = timerUC
	app.goals = goalsUC
	app.logs = logsUC
	app.commands = commandUC
	app.manager = manager

	app.TimerCLI = timerinadapter.NewCLIHandler(timerUC)
	app.GoalsCLI = subgoalinadapter.NewCLIHandler(goalsUC)
	app.PrefsCLI = prefinadapter.NewCLIHandler(prefUC)
	app.LogsCLI = sessionloginadapter.NewCLIHandler(logsUC)
	app.EffectsCLI = effectsinadapter.NewCLIHandler(effectsUC)
	app.CommandCLI = commandinadapter.NewCLIHandler(commandUC)
	app.DaemonCLI = daemoninadapter.NewCLIHandler(daemonUC)
	return app, nil
}

// RestoreTimer loads the saved countdown into this process.
func (a *App) RestoreTimer(ctx context.Context) error {
	state, err := a.manager.Restore(ctx)
	if err != nil {
		return fmt.Errorf("restore timer: %w", err)
	}
	a.Logger.Debug("timer restored", "remaining", state.RemainingSeconds, "title", state.Title)
	return nil
}

// Shutdown saves the countdown and waits for pending completion effects.
func (a *App) Shutdown(ctx context.Context) {
	if a.manager != nil {
		a.manager.Shutdown(ctx)
	}
}

func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// RunTUI owns the countdown in-process for the lifetime of the terminal UI.
func RunTUI(ctx context.Context, app *App) error {
	if err := app.RestoreTimer(ctx); err != nil {
		return err
	}
	defer app.Shutdown(context.Background())
	model := uiapp.NewModel(app.timer, app.goals, app.logs, app.commands)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func notifierBackends(cfg config.Config, clk clock.Clock, logger hclog.Logger) []effectsout.Backend {
	var backends []effectsout.Backend
	for _, name := range cfg.Notifiers {
		switch name {
		case effectsdomain.BackendPlugin:
			backends = append(backends, effectsoutadapter.NewPluginBackend(cfg.NotifierPlugin, logger.Named("notifier")))
		case effectsdomain.BackendSystem:
			backends = append(backends, effectsoutadapter.NewSystemBackend(runtime.GOOS, effectsoutadapter.ExecRunner, exec.LookPath))
		case effectsdomain.BackendConsole:
			backends = append(backends, effectsoutadapter.NewConsoleBackend(os.Stderr, clk))
		default:
			logger.Warn("unknown notifier backend ignored", "name", name)
		}
	}
	return backends
}

func requestPermission(ctx context.Context, effects effectsin.Usecase, logger hclog.Logger) {
	if !effects.RequestPermission(ctx) {
		logger.Info("notification permission not granted")
	}
}

func daemonLogPath(cfg config.Config) string {
	return filepath.Join(filepath.Dir(cfg.PIDPath), "daemon.log")
}
