package domain

import (
	"strconv"
	"time"
)

type SubGoal struct {
	ID          string    `json:"id"`
	Text        string    `json:"text"`
	IsCompleted bool      `json:"isCompleted"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Summary splits goal texts by completion, in list order.
type Summary struct {
	Completed []string
	Pending   []string
}

type List []SubGoal

func (l List) Clone() List {
	out := make(List, len(l))
	copy(out, l)
	return out
}

func (l List) CompletedCount() int {
	n := 0
	for _, g := range l {
		if g.IsCompleted {
			n++
		}
	}
	return n
}

func (l List) TotalCount() int { return len(l) }

// ProgressFraction is 0 for an empty list.
func (l List) ProgressFraction() float64 {
	if len(l) == 0 {
		return 0
	}
	return float64(l.CompletedCount()) / float64(len(l))
}

func (l List) AllCompleted() bool {
	return len(l) > 0 && l.CompletedCount() == len(l)
}

func (l List) Summary() Summary {
	s := Summary{Completed: []string{}, Pending: []string{}}
	for _, g := range l {
		if g.IsCompleted {
			s.Completed = append(s.Completed, g.Text)
		} else {
			s.Pending = append(s.Pending, g.Text)
		}
	}
	return s
}

// Index resolves ref as an exact id, or as a 1-based position for CLI use.
func (l List) Index(ref string) (int, bool) {
	for i, g := range l {
		if g.ID == ref {
			return i, true
		}
	}
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(l) {
		return n - 1, true
	}
	return -1, false
}
