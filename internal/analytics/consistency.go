package analytics

import "math"

// DayCompletion is one day's completed/total pair in a scoring window.
type DayCompletion struct {
	Completed int
	Total     int
}

// Tier maps a consistency score onto a qualitative band. The boundaries
// (40/70/90) are the contract; the messages are presentation.
type Tier int

const (
	TierStarting Tier = iota
	TierGood
	TierGreat
	TierOutstanding
)

func (t Tier) Message() string {
	switch t {
	case TierOutstanding:
		return "Outstanding, you're unstoppable"
	case TierGreat:
		return "Great work, keep the momentum"
	case TierGood:
		return "Good progress, stay on it"
	default:
		return "Just getting started"
	}
}

// Consistency is the 0-100 score plus its tier.
type Consistency struct {
	Score float64
	Tier  Tier
}

// ComputeConsistency blends average completion (up to 50 points), streak
// strength relative to the nominal duration (up to 20) and day-to-day
// regularity (up to 30, from the inverse of the completion-rate stddev)
// into a single 0-100 score. When nominalDurationDays is zero the window
// length is used instead. An empty window, or a window with no tasks at
// all, scores 0.
func ComputeConsistency(days []DayCompletion, currentStreak, nominalDurationDays int) Consistency {
	if len(days) == 0 {
		return Consistency{Score: 0, Tier: TierStarting}
	}

	anyTasks := false
	rates := make([]float64, len(days))
	for i, d := range days {
		if d.Total > 0 {
			anyTasks = true
			rates[i] = float64(d.Completed) / float64(d.Total) * 100
		}
	}
	if !anyTasks {
		return Consistency{Score: 0, Tier: TierStarting}
	}

	base := 0.5 * mean(rates)

	duration := nominalDurationDays
	if duration <= 0 {
		duration = len(days)
	}
	streakFactor := float64(currentStreak) / float64(duration) * 20
	if streakFactor > 20 {
		streakFactor = 20
	}

	normStdDev := stdDev(rates) / 100
	if normStdDev > 1 {
		normStdDev = 1
	}
	regularity := 30 * (1 - normStdDev)

	score := base + streakFactor + regularity
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	return Consistency{Score: score, Tier: tierFor(score)}
}

func tierFor(score float64) Tier {
	switch {
	case score >= 90:
		return TierOutstanding
	case score >= 70:
		return TierGreat
	case score >= 40:
		return TierGood
	default:
		return TierStarting
	}
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// stdDev is the population standard deviation.
func stdDev(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := mean(xs)
	variance := 0.0
	for _, x := range xs {
		variance += (x - m) * (x - m)
	}
	return math.Sqrt(variance / float64(len(xs)))
}
