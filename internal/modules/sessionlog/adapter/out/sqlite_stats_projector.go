package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"sprintbell/internal/modules/sessionlog/domain"

	_ "modernc.org/sqlite"
)

type SQLiteStatsProjector struct {
	db *sql.DB
}

func NewSQLiteStatsProjector(dbPath string) (*SQLiteStatsProjector, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	p := &SQLiteStatsProjector{db: db}
	if err := p.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return p, nil
}

func (p *SQLiteStatsProjector) ensureSchema(ctx context.Context) error {
	const ddl = `
PRAGMA busy_timeout = 5000;
CREATE TABLE IF NOT EXISTS sessions (
  session_id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  planned_seconds INTEGER NOT NULL,
  actual_seconds INTEGER,
  start_time TEXT NOT NULL,
  end_time TEXT,
  outcome TEXT NOT NULL,
  completion_percentage REAL NOT NULL,
  subgoal_completion_rate REAL NOT NULL,
  effectiveness REAL NOT NULL,
  total_subgoals INTEGER NOT NULL,
  completed_subgoals INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sessions_start ON sessions(start_time);
CREATE INDEX IF NOT EXISTS idx_sessions_outcome ON sessions(outcome);
`
	if _, err := p.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create sessions table: %w", err)
	}
	return nil
}

func (p *SQLiteStatsProjector) Upsert(ctx context.Context, r domain.SessionRecord) error {
	const stmt = `
INSERT INTO sessions (
  session_id, title, planned_seconds, actual_seconds, start_time, end_time, outcome,
  completion_percentage, subgoal_completion_rate, effectiveness, total_subgoals, completed_subgoals
)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(session_id) DO UPDATE SET
  title = excluded.title,
  planned_seconds = excluded.planned_seconds,
  actual_seconds = excluded.actual_seconds,
  start_time = excluded.start_time,
  end_time = excluded.end_time,
  outcome = excluded.outcome,
  completion_percentage = excluded.completion_percentage,
  subgoal_completion_rate = excluded.subgoal_completion_rate,
  effectiveness = excluded.effectiveness,
  total_subgoals = excluded.total_subgoals,
  completed_subgoals = excluded.completed_subgoals;
`
	var actual sql.NullInt64
	if r.ActualDurationSeconds != nil {
		actual = sql.NullInt64{Int64: int64(*r.ActualDurationSeconds), Valid: true}
	}
	var end sql.NullString
	if r.EndTime != nil {
		end = sql.NullString{String: r.EndTime.UTC().Format(time.RFC3339), Valid: true}
	}
	_, err := p.db.ExecContext(ctx, stmt,
		r.SessionID, r.Title, r.PlannedDurationSeconds, actual,
		r.StartTime.UTC().Format(time.RFC3339), end, r.Outcome(),
		r.CompletionPercentage, r.SubGoalCompletionRate, r.EffectivenessScore(),
		r.TotalSubGoals, r.CompletedSubGoals,
	)
	if err != nil {
		return fmt.Errorf("upsert session %s: %w", r.SessionID, err)
	}
	return nil
}

func (p *SQLiteStatsProjector) Stats(ctx context.Context) (domain.Stats, error) {
	row := p.db.QueryRowContext(ctx, `
SELECT
  COUNT(*),
  COALESCE(SUM(CASE WHEN outcome = 'completed' THEN 1 ELSE 0 END), 0),
  COALESCE(SUM(CASE WHEN outcome = 'interrupted' THEN 1 ELSE 0 END), 0),
  COALESCE(SUM(actual_seconds), 0),
  COALESCE(AVG(completion_percentage), 0),
  COALESCE(AVG(effectiveness), 0)
FROM sessions;
`)
	stats := domain.Stats{}
	if err := row.Scan(&stats.Sessions, &stats.Completed, &stats.Interrupted, &stats.FocusedSeconds, &stats.AverageCompletion, &stats.AverageEffectiveness); err != nil {
		return domain.Stats{}, fmt.Errorf("query session stats: %w", err)
	}
	return stats, nil
}

func (p *SQLiteStatsProjector) Reset(ctx context.Context) error {
	if _, err := p.db.ExecContext(ctx, `DELETE FROM sessions;`); err != nil {
		return fmt.Errorf("reset session projection: %w", err)
	}
	return nil
}

func (p *SQLiteStatsProjector) Close() error {
	return p.db.Close()
}
