package domain

import "time"

const (
	FilePrefix    = "sessions-"
	FileExtension = ".jsonl"
)

// FileNameFor names the log file for the local calendar day of t.
func FileNameFor(t time.Time) string {
	return FilePrefix + t.Format("2006-01-02") + FileExtension
}

type LogFile struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Stats aggregates the projected session table.
type Stats struct {
	Sessions             int
	Completed            int
	Interrupted          int
	FocusedSeconds       int
	AverageCompletion    float64
	AverageEffectiveness float64
}
