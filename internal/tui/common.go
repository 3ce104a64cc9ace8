package tui

import (
	"fmt"
	"time"

	"github.com/sadopc/ritual/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewToday viewState = iota
	viewChallenges
	viewAnalytics
	viewPhotos
	viewSettings
)

var viewNames = []string{"Today", "Challenges", "Analytics", "Photos", "Settings"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func statusIcon(s store.Status) string {
	switch s {
	case store.StatusCompleted:
		return "✓"
	case store.StatusInProgress:
		return "◐"
	case store.StatusMissed:
		return "✗"
	case store.StatusFailed:
		return "!"
	default:
		return "○"
	}
}

func formatRate(rate float64) string {
	return fmt.Sprintf("%.0f%%", rate)
}

func todayKey() string {
	return store.DayKey(time.Now())
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
