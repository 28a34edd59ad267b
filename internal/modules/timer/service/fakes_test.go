package service_test

import (
	"context"
	"sync"
	"time"

	"sprintbell/internal/modules/timer/domain"
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

type fakeScheduler struct {
	mu        sync.Mutex
	fns       []func()
	cancelled []bool
}

func (f *fakeScheduler) Every(_ time.Duration, fn func()) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	idx := len(f.fns)
	f.fns = append(f.fns, fn)
	f.cancelled = append(f.cancelled, false)
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.cancelled[idx] = true
	}
}

// fire invokes the most recent callback, whether or not it was cancelled.
func (f *fakeScheduler) fire() {
	f.mu.Lock()
	fn := f.fns[len(f.fns)-1]
	f.mu.Unlock()
	fn()
}

func (f *fakeScheduler) active() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.cancelled {
		if !c {
			n++
		}
	}
	return n
}

type fakePrefs struct {
	mu       sync.Mutex
	duration int
	title    string
	remember int
}

func (f *fakePrefs) Defaults(context.Context) (int, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.duration, f.title, nil
}

func (f *fakePrefs) Remember(_ context.Context, duration int, title string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if duration > 0 {
		f.duration = duration
	}
	f.title = title
	f.remember++
	return nil
}

type fakeGoals struct {
	mu        sync.Mutex
	completed []string
	pending   []string
	resets    int
}

func (f *fakeGoals) Summary(context.Context) ([]string, []string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string{}, f.completed...), append([]string{}, f.pending...), nil
}

func (f *fakeGoals) ResetForNewSession(_ context.Context, keepCompleted bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resets++
	if !keepCompleted {
		f.completed, f.pending = nil, nil
	}
	return nil
}

type recordingRecorder struct {
	mu      sync.Mutex
	results []domain.SessionResult
}

func (r *recordingRecorder) Record(_ context.Context, result domain.SessionResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, result)
}

func (r *recordingRecorder) all() []domain.SessionResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.SessionResult{}, r.results...)
}

type recordingEffects struct {
	mu        sync.Mutex
	sounds    int
	summaries []domain.CompletionSummary
	disabled  bool
}

func (r *recordingEffects) PlayCompletion(context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sounds++
}

func (r *recordingEffects) RequestPermission(context.Context) bool { return true }

func (r *recordingEffects) IsEnabled(context.Context) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return !r.disabled
}

func (r *recordingEffects) NotifyCompletion(_ context.Context, summary domain.CompletionSummary) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.summaries = append(r.summaries, summary)
	return nil
}
