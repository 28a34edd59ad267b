package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Summarize computes Stats over an in-memory slice of records.
func Summarize(records []SessionRecord) Stats {
	stats := Stats{Sessions: len(records)}
	if len(records) == 0 {
		return stats
	}
	var completion, effectiveness float64
	for _, r := range records {
		switch r.Outcome() {
		case OutcomeCompleted:
			stats.Completed++
		case OutcomeInterrupted:
			stats.Interrupted++
		}
		if r.ActualDurationSeconds != nil {
			stats.FocusedSeconds += *r.ActualDurationSeconds
		}
		completion += r.CompletionPercentage
		effectiveness += r.EffectivenessScore()
	}
	stats.AverageCompletion = completion / float64(len(records))
	stats.AverageEffectiveness = effectiveness / float64(len(records))
	return stats
}

// OnDay keeps records that started on day's calendar date in day's location.
func OnDay(records []SessionRecord, day time.Time) []SessionRecord {
	want := day.Format("2006-01-02")
	out := []SessionRecord{}
	for _, r := range records {
		if r.StartTime.In(day.Location()).Format("2006-01-02") == want {
			out = append(out, r)
		}
	}
	return out
}

// ReportMeta is the frontmatter of a daily report.
func ReportMeta(day time.Time, stats Stats) map[string]any {
	return map[string]any{
		"date":                  day.Format("2006-01-02"),
		"sessions":              stats.Sessions,
		"completed":             stats.Completed,
		"interrupted":           stats.Interrupted,
		"focused_minutes":       stats.FocusedSeconds / 60,
		"average_effectiveness": round2(stats.AverageEffectiveness),
	}
}

// ReportTable renders records oldest first as a markdown table.
func ReportTable(records []SessionRecord, loc *time.Location) string {
	b := strings.Builder{}
	b.WriteString("| Start | Title | Outcome | Duration | Goals | Effectiveness |\n")
	b.WriteString("|---|---|---|---|---|---|\n")
	for i := len(records) - 1; i >= 0; i-- {
		r := records[i]
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %d/%d | %d%% |\n",
			r.StartTime.In(loc).Format("15:04"),
			strings.ReplaceAll(r.Title, "|", "\\|"),
			r.Outcome(),
			r.FormattedDuration(),
			r.CompletedSubGoals, r.TotalSubGoals,
			int(math.Round(r.EffectivenessScore()*100)),
		)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
