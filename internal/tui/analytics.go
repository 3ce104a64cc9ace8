package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/ritual/internal/analytics"
	"github.com/sadopc/ritual/internal/store"
)

// analyticsModel renders streaks, the consistency score and the daily
// completion chart for a time frame, app-wide or scoped to one challenge.
type analyticsModel struct {
	store  *store.Store
	width  int
	height int

	frame      analytics.TimeFrame
	challenges []store.Challenge
	scope      int // index into challenges+1; 0 = all

	daily  []analytics.DailyPoint
	byType []analytics.TypeBreakdown
	streak analytics.StreakResult
	score  analytics.Consistency
	window analytics.Window

	chart barchart.Model
}

func newAnalyticsModel(s *store.Store) analyticsModel {
	return analyticsModel{
		store: s,
		chart: barchart.New(60, 12),
	}
}

func (a *analyticsModel) setSize(w, h int) {
	a.width = w
	a.height = h
}

type analyticsDataMsg struct {
	challenges []store.Challenge
	daily      []analytics.DailyPoint
	byType     []analytics.TypeBreakdown
	streak     analytics.StreakResult
	score      analytics.Consistency
	window     analytics.Window
}

func (a analyticsModel) refresh() tea.Cmd {
	frame := a.frame
	scope := a.scope
	return func() tea.Msg {
		challenges, _ := a.store.ListChallenges(false)

		records, _ := a.store.ListRecords(store.RecordFilter{})
		now := time.Now()

		// Challenge scope narrows the snapshot and switches to the strict
		// all-completed streak rule; the app-wide number keeps the looser
		// any-completed rule. These are different figures on purpose.
		rule := analytics.RuleAnyCompleted
		nominal := 0
		if scope > 0 && scope <= len(challenges) {
			ch := challenges[scope-1]
			records = analytics.FilterByChallenge(records, ch.ID)
			rule = analytics.RuleAllCompleted
			nominal = ch.DurationDays
		}

		window := analytics.ResolveWindow(frame, records, now)
		daily, byType := analytics.ComputeChartSeries(records, window)
		streak := analytics.ComputeStreak(records, now, rule)
		if nominal == 0 {
			nominal = window.Days()
		}
		score := analytics.ComputeConsistency(analytics.DayCompletions(daily), streak.Current, nominal)

		return analyticsDataMsg{
			challenges: challenges,
			daily:      daily,
			byType:     byType,
			streak:     streak,
			score:      score,
			window:     window,
		}
	}
}

func (a analyticsModel) update(msg tea.Msg) (analyticsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case analyticsDataMsg:
		a.challenges = msg.challenges
		a.daily = msg.daily
		a.byType = msg.byType
		a.streak = msg.streak
		a.score = msg.score
		a.window = msg.window
		a.buildChart()
		return a, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Right):
			a.frame = (a.frame + 1) % 3
			return a, a.refresh()
		case key.Matches(msg, keys.Left):
			a.frame = (a.frame + 2) % 3
			return a, a.refresh()
		case key.Matches(msg, keys.Filter):
			a.scope = (a.scope + 1) % (len(a.challenges) + 1)
			return a, a.refresh()
		}
	}
	return a, nil
}

func (a *analyticsModel) buildChart() {
	chartWidth := a.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 10
	if a.height > 32 {
		chartHeight = 14
	}

	a.chart = barchart.New(chartWidth, chartHeight)

	completedStyle := lipgloss.NewStyle().Foreground(colorSuccess)
	missedStyle := lipgloss.NewStyle().Foreground(colorError)

	var bars []barchart.BarData
	for _, p := range a.daily {
		d, _ := time.Parse("2006-01-02", p.Date)
		label := d.Format("02")
		if len(a.daily) <= 7 {
			label = d.Format("Mon 02")
		}

		values := []barchart.BarValue{
			{Name: "done", Value: float64(p.Completed), Style: completedStyle},
			{Name: "missed", Value: float64(p.Missed), Style: missedStyle},
		}
		if p.Total == 0 {
			values = []barchart.BarValue{{Name: "", Value: 0, Style: lipgloss.NewStyle().Foreground(colorSubtle)}}
		}

		bars = append(bars, barchart.BarData{
			Label:  label,
			Values: values,
		})
	}

	a.chart.PushAll(bars)
	a.chart.Draw()
}

func (a analyticsModel) view() string {
	w := a.width - 4

	// Frame tabs
	var tabs []string
	for f := analytics.FrameWeek; f <= analytics.FrameAll; f++ {
		if f == a.frame {
			tabs = append(tabs, activeTabStyle.Render(f.String()))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(f.String()))
		}
	}
	frameTabs := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	scopeLabel := "All challenges"
	if a.scope > 0 && a.scope <= len(a.challenges) {
		ch := a.challenges[a.scope-1]
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(ch.Color)).Render("●")
		scopeLabel = fmt.Sprintf("%s %s", dot, ch.Name)
	}

	dateLabel := mutedStyle.Render(fmt.Sprintf("%s — %s",
		a.window.From.Format("Jan 02"), a.window.To.Format("Jan 02, 2006")))

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Analytics"), "  ", frameTabs, "  ", highlightStyle.Render(scopeLabel), "  ", dateLabel,
	)

	statsRow := lipgloss.JoinHorizontal(lipgloss.Top,
		a.renderStreakPanel(),
		" ",
		a.renderScorePanel(),
	)

	chartView := a.chart.View()
	breakdown := a.renderTypeBreakdown(w)
	nav := mutedStyle.Render("  ←/→: time frame  c: cycle challenge")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", statsRow, "", chartView, "", breakdown, "", nav,
		),
	)
}

func (a analyticsModel) renderStreakPanel() string {
	current := streakStyle.Render(fmt.Sprintf("%d", a.streak.Current))
	rows := []string{
		titleStyle.Render("Streak"),
		fmt.Sprintf("  current  %s", current),
		fmt.Sprintf("  best     %d", a.streak.Best),
		fmt.Sprintf("  perfect  %d days", a.streak.Total),
	}
	return strings.Join(rows, "\n")
}

func (a analyticsModel) renderScorePanel() string {
	score := scoreStyle.Render(fmt.Sprintf("%.0f", a.score.Score))
	rows := []string{
		titleStyle.Render("Consistency"),
		fmt.Sprintf("  score  %s / 100", score),
		"  " + mutedStyle.Render(a.score.Tier.Message()),
	}
	return strings.Join(rows, "\n")
}

func (a analyticsModel) renderTypeBreakdown(w int) string {
	if len(a.byType) == 0 {
		return mutedStyle.Render("  No records in this period")
	}

	var rows []string
	header := mutedStyle.Render(fmt.Sprintf("  %-14s %8s %10s %8s", "Type", "Total", "Completed", "Rate"))
	rows = append(rows, header)
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(w-6, 44))))

	for _, b := range a.byType {
		rate := 0.0
		if b.Total > 0 {
			rate = float64(b.Completed) / float64(b.Total) * 100
		}
		rows = append(rows, fmt.Sprintf("  %-14s %8d %10d %8s",
			b.Type, b.Total, b.Completed, formatRate(rate),
		))
	}

	return strings.Join(rows, "\n")
}
