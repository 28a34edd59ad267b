package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	"sprintbell/internal/modules/timer/domain"
	timerout "sprintbell/internal/modules/timer/port/out"
	"sprintbell/internal/platform/clock"
	apperrors "sprintbell/internal/platform/errors"
)

const effectTimeout = 15 * time.Second

type Options struct {
	TickInterval  time.Duration
	SnapshotEvery int
	RestoreGrace  time.Duration
}

type Deps struct {
	Snapshots   timerout.SnapshotStore
	Preferences timerout.PreferenceStore
	Goals       timerout.GoalBoard
	Recorder    timerout.SessionRecorder
	Sound       timerout.Sound
	Notifier    timerout.Notifier
	Scheduler   timerout.Scheduler
	Clock       clock.Clock
	Logger      hclog.Logger
}

// Manager owns the single countdown. Every mutation, including scheduled ticks,
// runs under mu. Completion effects run on their own goroutines.
type Manager struct {
	mu         sync.Mutex
	state      domain.State
	cancelTick func()
	generation uint64
	// cleared is set by completion and reset by the next snapshot write.
	cleared bool

	subMu       sync.Mutex
	subscribers map[int]chan domain.Event
	nextSub     int

	effects sync.WaitGroup
	deps    Deps
	opts    Options
	logger  hclog.Logger
}

func NewManager(deps Deps, opts Options) *Manager {
	if opts.TickInterval <= 0 {
		opts.TickInterval = time.Second
	}
	if opts.SnapshotEvery <= 0 {
		opts.SnapshotEvery = 10
	}
	if deps.Logger == nil {
		deps.Logger = hclog.NewNullLogger()
	}
	return &Manager{
		subscribers: map[int]chan domain.Event{},
		deps:        deps,
		opts:        opts,
		logger:      deps.Logger,
	}
}

// Restore loads the durable snapshot, or preference defaults when there is none.
// The countdown is never resumed.
func (m *Manager) Restore(ctx context.Context) (domain.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap, err := m.deps.Snapshots.Load(ctx)
	switch {
	case err == nil:
		m.state = domain.Restore(snap, m.deps.Clock.Now(), m.opts.RestoreGrace)
		if snap.IsRunning {
			m.logger.Info("restored interrupted countdown", "saved_remaining", snap.RemainingSeconds, "remaining", m.state.RemainingSeconds)
		}
	case errors.Is(err, apperrors.ErrNoSnapshot):
		m.state, err = m.defaultState(ctx)
		if err != nil {
			return domain.State{}, err
		}
	default:
		m.logger.Warn("timer snapshot unreadable, starting fresh", "error", err)
		m.state, err = m.defaultState(ctx)
		if err != nil {
			return domain.State{}, err
		}
	}
	m.publish(domain.EventRestored, nil)
	return m.state.Clone(), nil
}

func (m *Manager) State() domain.State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Clone()
}

func (m *Manager) DisplayText() string {
	return domain.DisplayText(m.State())
}

// Start is a no-op while already running. Starting at zero completes on the first tick.
func (m *Manager) Start(ctx context.Context) domain.State {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.IsRunning {
		return m.state.Clone()
	}
	now := m.deps.Clock.Now()
	m.state.IsRunning = true
	m.state.SessionStartTime = &now
	m.generation++
	gen := m.generation
	m.cancelTick = m.deps.Scheduler.Every(m.opts.TickInterval, func() { m.tick(gen) })
	m.saveSnapshot(ctx)
	m.logger.Info("timer started", "remaining", m.state.RemainingSeconds, "title", m.state.Title)
	m.publish(domain.EventStarted, nil)
	return m.state.Clone()
}

func (m *Manager) Stop(ctx context.Context) domain.State {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := m.halt(ctx, true)
	m.saveSnapshot(ctx)
	m.publish(domain.EventStopped, result)
	return m.state.Clone()
}

// Toggle backs the pause command: stop when running, otherwise start.
func (m *Manager) Toggle(ctx context.Context) domain.State {
	m.mu.Lock()
	running := m.state.IsRunning
	m.mu.Unlock()
	if running {
		return m.Stop(ctx)
	}
	return m.Start(ctx)
}

func (m *Manager) Reset(ctx context.Context, durationSeconds int, title string) (domain.State, error) {
	if durationSeconds < 0 {
		return domain.State{}, fmt.Errorf("duration must not be negative: %w", apperrors.ErrInvalidInput)
	}
	title = strings.TrimSpace(title)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.halt(ctx, true)
	m.state = domain.NewState(durationSeconds, title)
	m.saveSnapshot(ctx)
	m.remember(ctx)
	m.logger.Info("timer reset", "duration", durationSeconds, "title", title)
	m.publish(domain.EventReset, nil)
	return m.state.Clone(), nil
}

// StartNewSession logs the running session as interrupted, then prepares a fresh
// countdown without starting it. Nil arguments fall back to preference defaults.
func (m *Manager) StartNewSession(ctx context.Context, durationSeconds *int, title *string, clearSubGoals bool) (domain.State, error) {
	if durationSeconds != nil && *durationSeconds < 0 {
		return domain.State{}, fmt.Errorf("duration must not be negative: %w", apperrors.ErrInvalidInput)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	duration, name, err := m.deps.Preferences.Defaults(ctx)
	if err != nil {
		m.logger.Warn("read preference defaults failed", "error", err)
		duration, name = domain.FallbackDurationSeconds, domain.FallbackTitle
	}
	if durationSeconds != nil {
		duration = *durationSeconds
	}
	if title != nil && strings.TrimSpace(*title) != "" {
		name = strings.TrimSpace(*title)
	}

	// the interrupted record must capture sub-goals before they are cleared
	m.halt(ctx, true)
	m.state = domain.NewState(duration, name)
	if clearSubGoals {
		if err := m.deps.Goals.ResetForNewSession(ctx, false); err != nil {
			m.logger.Warn("reset sub-goals failed", "error", err)
		}
	}
	m.saveSnapshot(ctx)
	m.remember(ctx)
	m.logger.Info("new session prepared", "duration", duration, "title", name, "cleared_goals", clearSubGoals)
	m.publish(domain.EventNewSession, nil)
	return m.state.Clone(), nil
}

// ForceSave writes a snapshot unless the last transition was a completion,
// which leaves no durable timer state behind.
func (m *Manager) ForceSave(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.cleared {
		m.saveSnapshot(ctx)
	}
}

// Shutdown saves a final snapshot without logging the session, stops ticking,
// waits for in-flight effects and closes every subscription. A completed
// session is not written back.
func (m *Manager) Shutdown(ctx context.Context) {
	m.mu.Lock()
	if !m.cleared {
		m.saveSnapshot(ctx)
	}
	m.cancel()
	m.mu.Unlock()

	done := make(chan struct{})
	go func() {
		m.effects.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		m.logger.Warn("shutdown before completion effects finished", "error", ctx.Err())
	}

	m.subMu.Lock()
	defer m.subMu.Unlock()
	for id, ch := range m.subscribers {
		close(ch)
		delete(m.subscribers, id)
	}
}

// WaitEffects blocks until dispatched completion effects have returned.
func (m *Manager) WaitEffects() {
	m.effects.Wait()
}

// Subscribe returns a buffered event stream. Events are dropped for a subscriber
// whose buffer is full.
func (m *Manager) Subscribe(buffer int) (<-chan domain.Event, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan domain.Event, buffer)
	m.subMu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subscribers[id] = ch
	m.subMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			m.subMu.Lock()
			defer m.subMu.Unlock()
			if existing, ok := m.subscribers[id]; ok {
				close(existing)
				delete(m.subscribers, id)
			}
		})
	}
}

func (m *Manager) tick(gen uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.state.IsRunning || gen != m.generation {
		return
	}
	ctx := context.Background()
	if m.state.RemainingSeconds > 0 {
		m.state.RemainingSeconds--
	}
	if m.state.RemainingSeconds == 0 {
		m.complete(ctx)
		return
	}
	if m.state.RemainingSeconds%m.opts.SnapshotEvery == 0 {
		m.saveSnapshot(ctx)
	}
	m.publish(domain.EventTick, nil)
}

func (m *Manager) complete(ctx context.Context) {
	now := m.deps.Clock.Now()
	completed, pending := m.goalSummary(ctx)
	result := domain.SessionResult{
		Title:                  m.state.Title,
		PlannedDurationSeconds: m.state.TotalDurationSeconds,
		ActualDurationSeconds:  m.elapsed(now),
		StartTime:              m.startTime(now),
		EndTime:                now,
		WasCompleted:           true,
		CompletedGoals:         completed,
		PendingGoals:           pending,
	}
	m.deps.Recorder.Record(ctx, result)

	summary := domain.CompletionSummary{
		Title:                  result.Title,
		ActualDurationSeconds:  result.ActualDurationSeconds,
		PlannedDurationSeconds: result.PlannedDurationSeconds,
		CompletedGoals:         len(completed),
		TotalGoals:             len(completed) + len(pending),
	}
	m.dispatch(func(ctx context.Context) {
		m.deps.Sound.PlayCompletion(ctx)
	})
	m.dispatch(func(ctx context.Context) {
		if !m.deps.Notifier.IsEnabled(ctx) {
			return
		}
		if err := m.deps.Notifier.NotifyCompletion(ctx, summary); err != nil {
			m.logger.Warn("completion notification failed", "error", err)
		}
	})

	m.halt(ctx, false)
	if err := m.deps.Snapshots.Clear(ctx); err != nil {
		m.logger.Warn("clear timer snapshot failed", "error", err)
	}
	m.cleared = true
	m.logger.Info("timer completed", "title", result.Title, "actual", result.ActualDurationSeconds)
	m.publish(domain.EventCompleted, &result)
}

// halt cancels ticking and ends the in-progress session, logging it as
// interrupted when logInterrupted is set.
func (m *Manager) halt(ctx context.Context, logInterrupted bool) *domain.SessionResult {
	m.cancel()
	m.state.IsRunning = false
	start := m.state.SessionStartTime
	m.state.SessionStartTime = nil
	if start == nil || !logInterrupted {
		return nil
	}
	now := m.deps.Clock.Now()
	completed, pending := m.goalSummary(ctx)
	result := domain.SessionResult{
		Title:                  m.state.Title,
		PlannedDurationSeconds: m.state.TotalDurationSeconds,
		ActualDurationSeconds:  durationSeconds(now.Sub(*start)),
		StartTime:              *start,
		EndTime:                now,
		WasInterrupted:         true,
		CompletedGoals:         completed,
		PendingGoals:           pending,
	}
	m.deps.Recorder.Record(ctx, result)
	m.logger.Info("session interrupted", "title", result.Title, "actual", result.ActualDurationSeconds)
	return &result
}

func (m *Manager) cancel() {
	if m.cancelTick != nil {
		m.cancelTick()
		m.cancelTick = nil
	}
	m.generation++
}

func (m *Manager) elapsed(now time.Time) int {
	if m.state.SessionStartTime == nil {
		return 0
	}
	return durationSeconds(now.Sub(*m.state.SessionStartTime))
}

func (m *Manager) startTime(now time.Time) time.Time {
	if m.state.SessionStartTime == nil {
		return now
	}
	return *m.state.SessionStartTime
}

func (m *Manager) goalSummary(ctx context.Context) ([]string, []string) {
	completed, pending, err := m.deps.Goals.Summary(ctx)
	if err != nil {
		m.logger.Warn("read sub-goal summary failed", "error", err)
		return []string{}, []string{}
	}
	return completed, pending
}

func (m *Manager) defaultState(ctx context.Context) (domain.State, error) {
	duration, title, err := m.deps.Preferences.Defaults(ctx)
	if err != nil {
		return domain.State{}, fmt.Errorf("load timer defaults: %w", err)
	}
	return domain.NewState(duration, title), nil
}

func (m *Manager) saveSnapshot(ctx context.Context) {
	m.cleared = false
	snap := domain.SnapshotOf(m.state, m.deps.Clock.Now())
	if err := m.deps.Snapshots.Save(ctx, snap); err != nil {
		m.logger.Warn("save timer snapshot failed", "remaining", snap.RemainingSeconds, "error", err)
	}
}

func (m *Manager) remember(ctx context.Context) {
	if err := m.deps.Preferences.Remember(ctx, m.state.TotalDurationSeconds, m.state.Title); err != nil {
		m.logger.Warn("remember last used session failed", "error", err)
	}
}

func (m *Manager) dispatch(fn func(ctx context.Context)) {
	m.effects.Add(1)
	go func() {
		defer m.effects.Done()
		ctx, cancel := context.WithTimeout(context.Background(), effectTimeout)
		defer cancel()
		fn(ctx)
	}()
}

// publish must be called with mu held so events leave in mutation order.
func (m *Manager) publish(kind domain.EventKind, result *domain.SessionResult) {
	event := domain.Event{Kind: kind, State: m.state.Clone(), Result: result, At: m.deps.Clock.Now()}
	m.subMu.Lock()
	defer m.subMu.Unlock()
	for id, ch := range m.subscribers {
		select {
		case ch <- event:
		default:
			m.logger.Debug("dropping timer event for slow subscriber", "subscriber", id, "kind", kind)
		}
	}
}

func durationSeconds(d time.Duration) int {
	if d < 0 {
		return 0
	}
	return int(math.Round(d.Seconds()))
}
