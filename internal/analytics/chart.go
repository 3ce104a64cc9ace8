package analytics

import (
	"time"

	"github.com/sadopc/ritual/internal/store"
)

// TimeFrame selects how far back a chart window reaches.
type TimeFrame int

const (
	FrameWeek  TimeFrame = iota // last 7 days
	FrameMonth                  // last 30 days
	FrameAll                    // earliest record -> today
)

func (f TimeFrame) String() string {
	switch f {
	case FrameWeek:
		return "7 days"
	case FrameMonth:
		return "30 days"
	default:
		return "All"
	}
}

// Window is an inclusive day range.
type Window struct {
	From time.Time
	To   time.Time
}

// Days returns the number of calendar days in the window.
func (w Window) Days() int {
	return int(w.To.Sub(w.From).Hours()/24) + 1
}

// DailyPoint is one chart entry. The daily series has exactly one point per
// calendar day in the window, zero-filled where no records exist.
type DailyPoint struct {
	Date      string
	Total     int
	Completed int
	Missed    int     // Total - Completed
	Rate      float64 // Completed/Total*100, 0 when Total is 0
}

// TypeBreakdown aggregates records by task type over the whole window.
type TypeBreakdown struct {
	Type      store.TaskType
	Total     int
	Completed int
}

// ResolveWindow turns a time frame into a concrete inclusive day range
// ending today. FrameAll starts at the earliest record date; with no
// records it collapses to today only.
func ResolveWindow(frame TimeFrame, records []store.TaskRecord, today time.Time) Window {
	end := dayStart(today)
	switch frame {
	case FrameWeek:
		return Window{From: end.AddDate(0, 0, -6), To: end}
	case FrameMonth:
		return Window{From: end.AddDate(0, 0, -29), To: end}
	}

	earliest := ""
	for _, r := range records {
		if earliest == "" || r.Date < earliest {
			earliest = r.Date
		}
	}
	if earliest == "" || earliest > store.DayKey(end) {
		return Window{From: end, To: end}
	}
	from, err := time.Parse(dayLayout, earliest)
	if err != nil {
		return Window{From: end, To: end}
	}
	return Window{From: from, To: end}
}

// ComputeChartSeries buckets records into the daily completion series and
// the per-type breakdown for one window. Records outside the window are
// ignored; days without records still get a zeroed point.
func ComputeChartSeries(records []store.TaskRecord, w Window) ([]DailyPoint, []TypeBreakdown) {
	fromKey := store.DayKey(w.From)
	toKey := store.DayKey(w.To)

	days := make(map[string]dayTally)
	types := make(map[store.TaskType]*TypeBreakdown)
	for _, r := range records {
		if r.Date < fromKey || r.Date > toKey {
			continue
		}
		t := days[r.Date]
		t.total++
		b := types[r.Type]
		if b == nil {
			b = &TypeBreakdown{Type: r.Type}
			types[r.Type] = b
		}
		b.Total++
		if r.Status == store.StatusCompleted {
			t.completed++
			b.Completed++
		}
		days[r.Date] = t
	}

	var daily []DailyPoint
	for d := w.From; store.DayKey(d) <= toKey; d = d.AddDate(0, 0, 1) {
		key := store.DayKey(d)
		t := days[key]
		p := DailyPoint{
			Date:      key,
			Total:     t.total,
			Completed: t.completed,
			Missed:    t.total - t.completed,
		}
		if t.total > 0 {
			p.Rate = float64(t.completed) / float64(t.total) * 100
		}
		daily = append(daily, p)
	}

	// Emit breakdowns in canonical type order so the view is stable.
	var byType []TypeBreakdown
	for _, tt := range store.TaskTypes {
		if b, ok := types[tt]; ok {
			byType = append(byType, *b)
		}
	}

	return daily, byType
}

// DayCompletions adapts a daily series into the scorer's input.
func DayCompletions(daily []DailyPoint) []DayCompletion {
	out := make([]DayCompletion, len(daily))
	for i, p := range daily {
		out[i] = DayCompletion{Completed: p.Completed, Total: p.Total}
	}
	return out
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
