package usecase_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	sessionlogout "sprintbell/internal/modules/sessionlog/adapter/out"
	"sprintbell/internal/modules/sessionlog/dto"
	sessionlogin "sprintbell/internal/modules/sessionlog/port/in"
	"sprintbell/internal/modules/sessionlog/service"
	"sprintbell/internal/modules/sessionlog/usecase"
	"sprintbell/internal/platform/logging"
	"sprintbell/internal/platform/markdown"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

type fakeID struct{ n int }

func (f *fakeID) New() string {
	f.n++
	return fmt.Sprintf("sess-%d", f.n)
}

func newUsecase(t *testing.T, clk *fakeClock) (sessionlogin.Usecase, string) {
	t.Helper()
	dir := t.TempDir()
	projector, err := sessionlogout.NewSQLiteStatsProjector(filepath.Join(dir, "sprintbell.db"))
	if err != nil {
		t.Fatalf("new projector: %v", err)
	}
	t.Cleanup(func() { _ = projector.Close() })
	logger := logging.Discard()
	journal := sessionlogout.NewJSONLJournal(sessionlogout.JournalOptions{Dir: filepath.Join(dir, "SessionLogs"), MaxFiles: 5, MaxFileBytes: 1 << 20}, clk, logger)
	svc := service.NewSessionLogService(journal, projector, clk, &fakeID{}, logger, service.Options{AppVersion: "1.0.0", Platform: "Linux"})
	return usecase.NewInteractor(svc), dir
}

func intPtr(v int) *int { return &v }

func TestLogSessionStampsAndProjectsRecords(t *testing.T) {
	t.Parallel()
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.Local)
	clk := &fakeClock{now: start.Add(25 * time.Minute)}
	uc, _ := newUsecase(t, clk)
	ctx := context.Background()

	end := clk.now
	done := uc.LogSession(ctx, dto.LogInput{
		Title: "Write", PlannedDurationSeconds: 1500, ActualDurationSeconds: intPtr(1500),
		StartTime: start, EndTime: &end, WasCompleted: true,
		CompletedGoals: []string{"outline", "draft"}, PendingGoals: []string{"review"},
	})
	if done.SessionID != "sess-1" || done.Outcome != "completed" || !done.LoggedAt.Equal(clk.now) {
		t.Fatalf("unexpected record: %+v", done)
	}
	if done.TotalSubGoals != 3 || done.CompletedSubGoals != 2 {
		t.Fatalf("unexpected goal counts: %+v", done)
	}

	clk.now = clk.now.Add(10 * time.Minute)
	stopped := clk.now
	uc.LogSession(ctx, dto.LogInput{
		Title: "Read", PlannedDurationSeconds: 1500, ActualDurationSeconds: intPtr(300),
		StartTime: stopped.Add(-5 * time.Minute), EndTime: &stopped, WasInterrupted: true,
	})

	stats, err := uc.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Sessions != 2 || stats.Completed != 1 || stats.Interrupted != 1 || stats.FocusedSeconds != 1800 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	recent, err := uc.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 2 || recent[0].Title != "Read" {
		t.Fatalf("expected newest first, got %+v", recent)
	}
	if files := uc.Files(ctx); len(files) != 1 || files[0].Path != uc.CurrentLogFilePath() {
		t.Fatalf("unexpected files: %+v", files)
	}
}

func TestReindexRebuildsProjectionFromJournal(t *testing.T) {
	t.Parallel()
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.Local)
	clk := &fakeClock{now: start}
	uc, dir := newUsecase(t, clk)
	ctx := context.Background()
	uc.LogSession(ctx, dto.LogInput{Title: "A", PlannedDurationSeconds: 60, ActualDurationSeconds: intPtr(60), StartTime: start, WasCompleted: true})

	other, err := sessionlogout.NewSQLiteStatsProjector(filepath.Join(dir, "sprintbell.db"))
	if err != nil {
		t.Fatalf("open projector: %v", err)
	}
	if err := other.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	_ = other.Close()

	if stats, _ := uc.Stats(ctx); stats.Sessions != 0 {
		t.Fatalf("expected emptied projection, got %+v", stats)
	}
	n, err := uc.Reindex(ctx)
	if err != nil || n != 1 {
		t.Fatalf("reindex = %d, %v", n, err)
	}
	if stats, _ := uc.Stats(ctx); stats.Sessions != 1 || stats.Completed != 1 {
		t.Fatalf("unexpected stats after reindex: %+v", stats)
	}
}

func TestWriteReportPreservesUserNotes(t *testing.T) {
	t.Parallel()
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.Local)
	clk := &fakeClock{now: day.Add(10 * time.Hour)}
	uc, dir := newUsecase(t, clk)
	ctx := context.Background()
	uc.LogSession(ctx, dto.LogInput{Title: "Morning | block", PlannedDurationSeconds: 1500, ActualDurationSeconds: intPtr(1500), StartTime: day.Add(9 * time.Hour), WasCompleted: true})
	uc.LogSession(ctx, dto.LogInput{Title: "Yesterday", PlannedDurationSeconds: 1500, ActualDurationSeconds: intPtr(60), StartTime: day.Add(-2 * time.Hour), WasInterrupted: true})

	preview, err := uc.Report(ctx, day)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if !strings.Contains(preview, "Morning \\| block") || strings.Contains(preview, "Yesterday") {
		t.Fatalf("report must include only the day's sessions: %s", preview)
	}

	reports := filepath.Join(dir, "reports")
	path, err := uc.WriteReport(ctx, day, reports)
	if err != nil {
		t.Fatalf("write report: %v", err)
	}
	raw, _ := os.ReadFile(path)
	edited := strings.Replace(string(raw), "# Focus sessions 2026-03-02\n", "# Focus sessions 2026-03-02\n\nGood energy today.\n", 1)
	if err := os.WriteFile(path, []byte(edited), 0o644); err != nil {
		t.Fatalf("edit report: %v", err)
	}

	uc.LogSession(ctx, dto.LogInput{Title: "Afternoon", PlannedDurationSeconds: 900, ActualDurationSeconds: intPtr(900), StartTime: day.Add(14 * time.Hour), WasCompleted: true})
	if _, err := uc.WriteReport(ctx, day, reports); err != nil {
		t.Fatalf("rewrite report: %v", err)
	}
	raw, _ = os.ReadFile(path)
	doc, err := markdown.Parse(string(raw))
	if err != nil {
		t.Fatalf("parse report: %v", err)
	}
	if doc.Meta["sessions"] != 2 || doc.Meta["completed"] != 2 {
		t.Fatalf("unexpected report meta: %#v", doc.Meta)
	}
	if !strings.Contains(doc.Body, "Good energy today.") || !strings.Contains(doc.Body, "Afternoon") {
		t.Fatalf("report lost notes or new rows: %s", doc.Body)
	}
}
