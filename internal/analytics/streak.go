// Package analytics computes streaks, consistency scores and chart series
// from task record snapshots. Every function is pure: records are taken by
// value, nothing is mutated, and repeated calls with the same input yield
// the same result.
package analytics

import (
	"time"

	"github.com/sadopc/ritual/internal/store"
)

// Rule decides when a day counts as a streak day. The two rules feed
// different user-facing numbers and must not be unified: the app-wide
// streak uses RuleAnyCompleted, a challenge-scoped streak uses
// RuleAllCompleted.
type Rule int

const (
	// RuleAllCompleted qualifies a day only when it has records and every
	// one of them is completed (a "perfect day").
	RuleAllCompleted Rule = iota
	// RuleAnyCompleted qualifies a day when at least one record is completed.
	RuleAnyCompleted
)

// StreakResult holds the three streak numbers for one record snapshot.
type StreakResult struct {
	Current int // consecutive qualifying days ending today
	Best    int // longest qualifying run anywhere in history
	Total   int // qualifying days overall, contiguous or not
}

const dayLayout = "2006-01-02"

type dayTally struct {
	total     int
	completed int
}

// ComputeStreak walks the day-bucketed record history and returns the
// current streak (backward from today, broken by the first non-qualifying
// day), the best streak and the total count of qualifying days. Days with
// no records do not qualify and break runs. Records dated after today are
// ignored entirely.
func ComputeStreak(records []store.TaskRecord, today time.Time, rule Rule) StreakResult {
	todayKey := store.DayKey(today)
	days := tallyByDay(records, todayKey)
	if len(days) == 0 {
		return StreakResult{}
	}

	earliest := ""
	for d := range days {
		if earliest == "" || d < earliest {
			earliest = d
		}
	}

	var res StreakResult

	// Current: backward walk from today, stop on the first miss. Never
	// look past the earliest recorded day.
	for d := today; store.DayKey(d) >= earliest; d = d.AddDate(0, 0, -1) {
		if !qualifies(days[store.DayKey(d)], rule) {
			break
		}
		res.Current++
	}

	// Best: forward walk earliest -> today, reset on miss.
	start, err := time.Parse(dayLayout, earliest)
	if err != nil {
		return res
	}
	run := 0
	for d := start; store.DayKey(d) <= todayKey; d = d.AddDate(0, 0, 1) {
		if qualifies(days[store.DayKey(d)], rule) {
			run++
			if run > res.Best {
				res.Best = run
			}
		} else {
			run = 0
		}
	}

	// Total: every qualifying day, regardless of contiguity.
	for _, tally := range days {
		if qualifies(tally, rule) {
			res.Total++
		}
	}

	return res
}

// FilterByChallenge returns the records belonging to one challenge.
// Records without a challenge are always excluded from challenge scope.
func FilterByChallenge(records []store.TaskRecord, challengeID int64) []store.TaskRecord {
	var out []store.TaskRecord
	for _, r := range records {
		if r.ChallengeID != nil && *r.ChallengeID == challengeID {
			out = append(out, r)
		}
	}
	return out
}

// tallyByDay buckets records by date, dropping anything after the clamp day.
func tallyByDay(records []store.TaskRecord, clamp string) map[string]dayTally {
	days := make(map[string]dayTally)
	for _, r := range records {
		if r.Date > clamp {
			continue
		}
		t := days[r.Date]
		t.total++
		if r.Status == store.StatusCompleted {
			t.completed++
		}
		days[r.Date] = t
	}
	return days
}

func qualifies(t dayTally, rule Rule) bool {
	if t.total == 0 {
		return false
	}
	if rule == RuleAnyCompleted {
		return t.completed > 0
	}
	return t.completed == t.total
}
