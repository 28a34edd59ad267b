package usecase_test

import (
	"context"
	"path/filepath"
	"reflect"
	"sync"
	"testing"
	"time"

	commandout "sprintbell/internal/modules/command/adapter/out"
	"sprintbell/internal/modules/command/service"
	"sprintbell/internal/modules/command/usecase"
	prefout "sprintbell/internal/modules/preferences/adapter/out"
	prefservice "sprintbell/internal/modules/preferences/service"
	prefusecase "sprintbell/internal/modules/preferences/usecase"
	sessionlogout "sprintbell/internal/modules/sessionlog/adapter/out"
	sessionlogservice "sprintbell/internal/modules/sessionlog/service"
	sessionlogusecase "sprintbell/internal/modules/sessionlog/usecase"
	subgoalout "sprintbell/internal/modules/subgoal/adapter/out"
	subgoalservice "sprintbell/internal/modules/subgoal/service"
	subgoalusecase "sprintbell/internal/modules/subgoal/usecase"
	timerout "sprintbell/internal/modules/timer/adapter/out"
	timerdomain "sprintbell/internal/modules/timer/domain"
	timerservice "sprintbell/internal/modules/timer/service"
	timerusecase "sprintbell/internal/modules/timer/usecase"
	"sprintbell/internal/platform/id"
	"sprintbell/internal/platform/kv"
	"sprintbell/internal/platform/logging"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

type idleScheduler struct{}

func (idleScheduler) Every(time.Duration, func()) func() { return func() {} }

type quietEffects struct{}

func (quietEffects) PlayCompletion(context.Context)           {}
func (quietEffects) RequestPermission(context.Context) bool { return true }
func (quietEffects) IsEnabled(context.Context) bool         { return false }
func (quietEffects) NotifyCompletion(context.Context, timerdomain.CompletionSummary) error {
	return nil
}

func TestStartURLDuringSessionLogsPreviousGoals(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clk := &fakeClock{now: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)}
	logger := logging.Discard()
	store := kv.NewMemoryStore()
	ids := id.UUID{}

	prefs := prefusecase.NewInteractor(prefservice.NewPreferenceService(prefout.NewKVPreferenceStore(store, logger), prefout.NewKVDataStore(store), logger))
	goals := subgoalusecase.NewInteractor(subgoalservice.NewSubGoalService(subgoalout.NewKVSubGoalStore(store, ids, logger), clk, ids, logger))
	journal := sessionlogout.NewJSONLJournal(sessionlogout.JournalOptions{Dir: filepath.Join(t.TempDir(), "SessionLogs"), MaxFiles: 5, MaxFileBytes: 1 << 20}, clk, logger)
	logs := sessionlogusecase.NewInteractor(sessionlogservice.NewSessionLogService(journal, nil, clk, ids, logger, sessionlogservice.Options{AppVersion: "1.0.0", Platform: "Linux"}))

	manager := timerservice.NewManager(timerservice.Deps{
		Snapshots:   timerout.NewKVSnapshotStore(store),
		Preferences: timerout.NewPreferenceAdapter(prefs),
		Goals:       timerout.NewGoalAdapter(goals),
		Recorder:    timerout.NewRecorderAdapter(logs),
		Sound:       quietEffects{},
		Notifier:    quietEffects{},
		Scheduler:   idleScheduler{},
		Clock:       clk,
		Logger:      logger,
	}, timerservice.Options{SnapshotEvery: 10, RestoreGrace: time.Minute})
	if _, err := manager.Restore(ctx); err != nil {
		t.Fatalf("restore: %v", err)
	}
	commands := usecase.NewInteractor(service.NewDispatcher(
		commandout.NewTimerAdapter(timerusecase.NewInteractor(manager)),
		commandout.NewGoalAdapter(goals),
		logger,
	))

	if _, err := commands.Open(ctx, "sprintbell://start?mins=25&title=First&goals=old-a,old-b"); err != nil {
		t.Fatalf("open first: %v", err)
	}
	clk.Advance(30 * time.Second)
	if _, err := commands.Open(ctx, "sprintbell://start?mins=25&title=Second&goals=new-x"); err != nil {
		t.Fatalf("open second: %v", err)
	}

	records, err := logs.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected one interrupted record, got %d", len(records))
	}
	r := records[0]
	if r.Title != "First" || r.Outcome != "interrupted" {
		t.Fatalf("unexpected record: %+v", r)
	}
	if !reflect.DeepEqual(r.PendingSubGoalTexts, []string{"old-a", "old-b"}) || len(r.CompletedSubGoalTexts) != 0 {
		t.Fatalf("record must carry the first session's goals, got pending=%v completed=%v", r.PendingSubGoalTexts, r.CompletedSubGoalTexts)
	}

	list, err := goals.List(ctx)
	if err != nil {
		t.Fatalf("list goals: %v", err)
	}
	if len(list.Goals) != 1 || list.Goals[0].Text != "new-x" {
		t.Fatalf("second start must install its own goals: %+v", list.Goals)
	}
	if state := manager.State(); !state.IsRunning || state.Title != "Second" {
		t.Fatalf("second session must be running: %+v", state)
	}
}
