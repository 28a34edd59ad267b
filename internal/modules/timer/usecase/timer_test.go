package usecase_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

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
	"sprintbell/internal/modules/timer/domain"
	"sprintbell/internal/modules/timer/dto"
	"sprintbell/internal/modules/timer/service"
	"sprintbell/internal/modules/timer/usecase"
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

type manualScheduler struct {
	mu sync.Mutex
	fn func()
}

func (s *manualScheduler) Every(_ time.Duration, fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fn = fn
	return func() {}
}

func (s *manualScheduler) fire() {
	s.mu.Lock()
	fn := s.fn
	s.mu.Unlock()
	fn()
}

type quietEffects struct{}

func (quietEffects) PlayCompletion(context.Context)           {}
func (quietEffects) RequestPermission(context.Context) bool { return true }
func (quietEffects) IsEnabled(context.Context) bool         { return false }
func (quietEffects) NotifyCompletion(context.Context, domain.CompletionSummary) error {
	return nil
}

func TestTimerSessionFlowsThroughGoalsPreferencesAndJournal(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dir := t.TempDir()
	clk := &fakeClock{now: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)}
	sched := &manualScheduler{}
	logger := logging.Discard()
	store := kv.NewMemoryStore()
	ids := id.UUID{}

	prefs := prefusecase.NewInteractor(prefservice.NewPreferenceService(prefout.NewKVPreferenceStore(store, logger), prefout.NewKVDataStore(store), logger))
	goals := subgoalusecase.NewInteractor(subgoalservice.NewSubGoalService(subgoalout.NewKVSubGoalStore(store, ids, logger), clk, ids, logger))
	journal := sessionlogout.NewJSONLJournal(sessionlogout.JournalOptions{Dir: filepath.Join(dir, "SessionLogs"), MaxFiles: 5, MaxFileBytes: 1 << 20}, clk, logger)
	logs := sessionlogusecase.NewInteractor(sessionlogservice.NewSessionLogService(journal, nil, clk, ids, logger, sessionlogservice.Options{AppVersion: "1.0.0", Platform: "Linux"}))

	manager := service.NewManager(service.Deps{
		Snapshots:   timerout.NewKVSnapshotStore(store),
		Preferences: timerout.NewPreferenceAdapter(prefs),
		Goals:       timerout.NewGoalAdapter(goals),
		Recorder:    timerout.NewRecorderAdapter(logs),
		Sound:       quietEffects{},
		Notifier:    quietEffects{},
		Scheduler:   sched,
		Clock:       clk,
		Logger:      logger,
	}, service.Options{SnapshotEvery: 10, RestoreGrace: time.Minute})
	if _, err := manager.Restore(ctx); err != nil {
		t.Fatalf("restore: %v", err)
	}
	timer := usecase.NewInteractor(manager)

	if _, err := goals.Add(ctx, "outline"); err != nil {
		t.Fatalf("add goal: %v", err)
	}
	if _, err := goals.Add(ctx, "draft"); err != nil {
		t.Fatalf("add goal: %v", err)
	}
	if _, err := goals.Toggle(ctx, "1"); err != nil {
		t.Fatalf("toggle goal: %v", err)
	}

	state, err := timer.Reset(ctx, dto.ResetInput{DurationSeconds: 120, Title: "Deep Work"})
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if state.DisplayText != "02:00 • Deep Work ⏸" || state.Phase != "idle" {
		t.Fatalf("unexpected reset output: %+v", state)
	}
	timer.Start(ctx)
	for i := 0; i < 120; i++ {
		clk.Advance(time.Second)
		sched.fire()
	}
	manager.WaitEffects()

	final := timer.State(ctx)
	if final.Phase != "completed" || final.DisplayText != "00:00 • Deep Work ✅" {
		t.Fatalf("unexpected final state: %+v", final)
	}
	records, err := logs.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected one journal record, got %d", len(records))
	}
	r := records[0]
	if r.Outcome != "completed" || r.CompletionPercentage != 1 || r.CompletedSubGoals != 1 || r.TotalSubGoals != 2 {
		t.Fatalf("unexpected journal record: %+v", r)
	}
	if r.ActualDurationSeconds == nil || *r.ActualDurationSeconds != 120 {
		t.Fatalf("unexpected actual duration: %v", r.ActualDurationSeconds)
	}

	current, err := prefs.Get(ctx)
	if err != nil {
		t.Fatalf("get prefs: %v", err)
	}
	if current.DefaultDuration != 120 || current.LastUsedTitle != "Deep Work" {
		t.Fatalf("reset must remember duration and title: %+v", current)
	}

	next, err := timer.NewSession(ctx, dto.NewSessionInput{})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if next.RemainingSeconds != 120 || next.Title != "Deep Work" {
		t.Fatalf("new session must reuse remembered defaults: %+v", next)
	}
	list, err := goals.List(ctx)
	if err != nil {
		t.Fatalf("list goals: %v", err)
	}
	if len(list.Goals) != 0 {
		t.Fatalf("new session must clear goals, got %d", len(list.Goals))
	}
}
