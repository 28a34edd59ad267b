package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	"sprintbell/internal/modules/sessionlog/domain"
	sessionlogout "sprintbell/internal/modules/sessionlog/port/out"
	"sprintbell/internal/platform/clock"
	"sprintbell/internal/platform/id"
	"sprintbell/internal/platform/markdown"
)

var reportBlock = markdown.Block{Name: "sessions"}

type Options struct {
	AppVersion string
	Platform   string
}

type SessionLogService struct {
	journal   sessionlogout.Journal
	projector sessionlogout.StatsProjector
	clock     clock.Clock
	ids       id.Generator
	logger    hclog.Logger
	opts      Options
}

// NewSessionLogService accepts a nil projector; Stats then scans the journal.
func NewSessionLogService(journal sessionlogout.Journal, projector sessionlogout.StatsProjector, clock clock.Clock, ids id.Generator, logger hclog.Logger, opts Options) *SessionLogService {
	return &SessionLogService{journal: journal, projector: projector, clock: clock, ids: ids, logger: logger, opts: opts}
}

// Log stamps and writes a record. Write and projection failures are logged, never returned.
func (s *SessionLogService) Log(ctx context.Context, params domain.RecordParams) domain.SessionRecord {
	if params.SessionID == "" {
		params.SessionID = s.ids.New()
	}
	params.LoggedAt = s.clock.Now()
	if params.AppVersion == nil && s.opts.AppVersion != "" {
		version := s.opts.AppVersion
		params.AppVersion = &version
	}
	if params.Platform == "" {
		params.Platform = s.opts.Platform
	}
	record := domain.NewRecord(params)

	if err := s.journal.Append(ctx, record); err != nil {
		s.logger.Error("log session failed", "session_id", record.SessionID, "error", err)
		return record
	}
	s.logger.Info("session logged", "session_id", record.SessionID, "outcome", record.Outcome(), "duration", record.FormattedDuration())
	if s.projector != nil {
		if err := s.projector.Upsert(ctx, record); err != nil {
			s.logger.Warn("project session failed", "session_id", record.SessionID, "error", err)
		}
	}
	return record
}

func (s *SessionLogService) Files(ctx context.Context) []domain.LogFile {
	files, err := s.journal.Files(ctx)
	if err != nil {
		s.logger.Warn("list session logs failed", "error", err)
		return []domain.LogFile{}
	}
	return files
}

func (s *SessionLogService) CurrentPath() string {
	return s.journal.CurrentPath()
}

func (s *SessionLogService) Recent(ctx context.Context, limit int) ([]domain.SessionRecord, error) {
	return s.journal.Read(ctx, limit)
}

func (s *SessionLogService) Stats(ctx context.Context) (domain.Stats, error) {
	if s.projector != nil {
		return s.projector.Stats(ctx)
	}
	records, err := s.journal.Read(ctx, 0)
	if err != nil {
		return domain.Stats{}, err
	}
	return domain.Summarize(records), nil
}

// Reindex rebuilds the stats projection from the journal and returns the record count.
func (s *SessionLogService) Reindex(ctx context.Context) (int, error) {
	if s.projector == nil {
		return 0, nil
	}
	records, err := s.journal.Read(ctx, 0)
	if err != nil {
		return 0, err
	}
	if err := s.projector.Reset(ctx); err != nil {
		return 0, err
	}
	for _, record := range records {
		if err := s.projector.Upsert(ctx, record); err != nil {
			return 0, err
		}
	}
	s.logger.Info("session projection rebuilt", "records", len(records))
	return len(records), nil
}

// Report renders the day's sessions as a standalone markdown document.
func (s *SessionLogService) Report(ctx context.Context, day time.Time) (string, error) {
	doc, err := s.report(ctx, day, markdown.Document{Body: fmt.Sprintf("# Focus sessions %s\n", day.Format("2006-01-02"))})
	if err != nil {
		return "", err
	}
	return doc.Render()
}

// WriteReport regenerates <dir>/<date>.md in place. Notes written outside the
// generated block and extra frontmatter keys are preserved.
func (s *SessionLogService) WriteReport(ctx context.Context, day time.Time, dir string) (string, error) {
	path := filepath.Join(dir, day.Format("2006-01-02")+".md")
	base := markdown.Document{Body: fmt.Sprintf("# Focus sessions %s\n", day.Format("2006-01-02"))}
	if existing, err := os.ReadFile(path); err == nil {
		parsed, err := markdown.Parse(string(existing))
		if err != nil {
			return "", fmt.Errorf("parse existing report: %w", err)
		}
		base = parsed
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("read existing report: %w", err)
	}

	doc, err := s.report(ctx, day, base)
	if err != nil {
		return "", err
	}
	rendered, err := doc.Render()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}

func (s *SessionLogService) report(ctx context.Context, day time.Time, doc markdown.Document) (markdown.Document, error) {
	records, err := s.journal.Read(ctx, 0)
	if err != nil {
		return markdown.Document{}, err
	}
	daily := domain.OnDay(records, day)
	doc.Merge(domain.ReportMeta(day, domain.Summarize(daily)))
	doc.Body = reportBlock.Replace(doc.Body, domain.ReportTable(daily, day.Location()))
	return doc, nil
}
