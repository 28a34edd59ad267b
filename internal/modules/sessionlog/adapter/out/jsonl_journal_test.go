package out_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	sessionlogout "sprintbell/internal/modules/sessionlog/adapter/out"
	"sprintbell/internal/modules/sessionlog/domain"
	"sprintbell/internal/platform/logging"
)

type fixedClock struct{ now time.Time }

func (f fixedClock) Now() time.Time { return f.now }

func record(id string, start time.Time) domain.SessionRecord {
	actual := 60
	return domain.NewRecord(domain.RecordParams{
		SessionID:              id,
		Title:                  "Focus " + id,
		PlannedDurationSeconds: 60,
		ActualDurationSeconds:  &actual,
		StartTime:              start,
		LoggedAt:               start.Add(time.Minute),
		WasCompleted:           true,
		Platform:               "Linux",
	})
}

func TestAppendCreatesDailyFileAndReadsNewestFirst(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.Local)
	journal := sessionlogout.NewJSONLJournal(sessionlogout.JournalOptions{Dir: dir, MaxFiles: 5, MaxFileBytes: 1 << 20}, fixedClock{now: now}, logging.Discard())
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		if err := journal.Append(ctx, record(fmt.Sprintf("s-%d", i), now)); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}
	if journal.CurrentPath() != filepath.Join(dir, domain.FileNameFor(now)) {
		t.Fatalf("unexpected current path: %s", journal.CurrentPath())
	}
	raw, err := os.ReadFile(journal.CurrentPath())
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if lines := strings.Count(string(raw), "\n"); lines != 3 {
		t.Fatalf("expected 3 lines, got %d", lines)
	}

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write foreign file: %v", err)
	}
	f, err := os.OpenFile(journal.CurrentPath(), os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	_, _ = f.WriteString("{not json\n")
	_ = f.Close()

	records, err := journal.Read(ctx, 2)
	if err != nil {
		t.Fatalf("read records: %v", err)
	}
	if len(records) != 2 || records[0].SessionID != "s-3" || records[1].SessionID != "s-2" {
		t.Fatalf("unexpected records: %+v", records)
	}
	files, _ := journal.Files(ctx)
	if len(files) != 1 {
		t.Fatalf("only .jsonl files must be listed, got %+v", files)
	}
}

func TestRotationKeepsAtMostMaxFiles(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.Local)
	for i := 1; i <= 5; i++ {
		day := now.AddDate(0, 0, -i)
		path := filepath.Join(dir, domain.FileNameFor(day))
		if err := os.WriteFile(path, []byte("{}\n"), 0o644); err != nil {
			t.Fatalf("seed old log: %v", err)
		}
		if err := os.Chtimes(path, day, day); err != nil {
			t.Fatalf("chtimes: %v", err)
		}
	}
	current := filepath.Join(dir, domain.FileNameFor(now))
	if err := os.WriteFile(current, []byte(strings.Repeat("x", 64)+"\n"), 0o644); err != nil {
		t.Fatalf("seed current log: %v", err)
	}

	journal := sessionlogout.NewJSONLJournal(sessionlogout.JournalOptions{Dir: dir, MaxFiles: 5, MaxFileBytes: 32}, fixedClock{now: now}, logging.Discard())
	ctx := context.Background()
	if err := journal.Append(ctx, record("s-new", now)); err != nil {
		t.Fatalf("append: %v", err)
	}

	files, _ := journal.Files(ctx)
	if len(files) > 5 {
		t.Fatalf("expected at most 5 files after rotation, got %d", len(files))
	}
	if _, err := os.Stat(current); err != nil {
		t.Fatalf("current file must survive rotation: %v", err)
	}
	oldest := filepath.Join(dir, domain.FileNameFor(now.AddDate(0, 0, -5)))
	if _, err := os.Stat(oldest); !os.IsNotExist(err) {
		t.Fatalf("oldest file must be rotated away, stat err=%v", err)
	}
	raw, _ := os.ReadFile(current)
	if !strings.Contains(string(raw), `"sessionId":"s-new"`) {
		t.Fatalf("new record must be appended to the current file")
	}
}

func TestRotationFailureStillAppends(t *testing.T) {
	t.Parallel()
	if os.Geteuid() == 0 {
		t.Skip("root ignores directory permissions")
	}
	dir := t.TempDir()
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.Local)
	for i := 1; i <= 3; i++ {
		day := now.AddDate(0, 0, -i)
		path := filepath.Join(dir, domain.FileNameFor(day))
		if err := os.WriteFile(path, []byte("{}\n"), 0o644); err != nil {
			t.Fatalf("seed old log: %v", err)
		}
		if err := os.Chtimes(path, day, day); err != nil {
			t.Fatalf("chtimes: %v", err)
		}
	}
	current := filepath.Join(dir, domain.FileNameFor(now))
	if err := os.WriteFile(current, []byte(strings.Repeat("x", 64)+"\n"), 0o644); err != nil {
		t.Fatalf("seed current log: %v", err)
	}
	// old files cannot be removed, the current one can still be appended to
	if err := os.Chmod(dir, 0o555); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	journal := sessionlogout.NewJSONLJournal(sessionlogout.JournalOptions{Dir: dir, MaxFiles: 2, MaxFileBytes: 32}, fixedClock{now: now}, logging.Discard())
	if err := journal.Append(context.Background(), record("s-kept", now)); err != nil {
		t.Fatalf("append must survive a failed rotation: %v", err)
	}
	raw, err := os.ReadFile(current)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(raw), `"sessionId":"s-kept"`) {
		t.Fatalf("record must be appended after a failed rotation")
	}
}

func TestFilesOnMissingDirIsEmpty(t *testing.T) {
	t.Parallel()
	journal := sessionlogout.NewJSONLJournal(sessionlogout.JournalOptions{Dir: filepath.Join(t.TempDir(), "missing"), MaxFiles: 5, MaxFileBytes: 1}, fixedClock{now: time.Now()}, logging.Discard())
	files, err := journal.Files(context.Background())
	if err != nil || len(files) != 0 {
		t.Fatalf("expected empty list, got %v %v", files, err)
	}
}
