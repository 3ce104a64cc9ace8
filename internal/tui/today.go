package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/ritual/internal/analytics"
	"github.com/sadopc/ritual/internal/store"
)

// todayModel is the daily checklist: the day's task records, generated on
// load, plus the app-wide streak.
type todayModel struct {
	store  *store.Store
	width  int
	height int

	date      string
	records   []store.TaskRecord
	taskNames map[int64]string
	targets   map[int64]string
	streak    analytics.StreakResult
	cursor    int

	formActive bool
	form       *huh.Form
	formNote   *string
	notingID   int64
}

func newTodayModel(s *store.Store) todayModel {
	note := ""
	return todayModel{
		store:    s,
		date:     todayKey(),
		formNote: &note,
	}
}

func (m todayModel) Init() tea.Cmd {
	return m.loadData()
}

func (m *todayModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type todayDataMsg struct {
	date      string
	records   []store.TaskRecord
	taskNames map[int64]string
	targets   map[int64]string
	streak    analytics.StreakResult
}

func (m todayModel) loadData() tea.Cmd {
	return func() tea.Msg {
		date := todayKey()
		m.store.GenerateDay(date)
		records, _ := m.store.ListDayRecords(date)

		tasks, _ := m.store.ListAllTasks(true)
		names := make(map[int64]string, len(tasks))
		targets := make(map[int64]string, len(tasks))
		for _, t := range tasks {
			names[t.ID] = t.Name
			targets[t.ID] = t.Target
		}

		// App-wide streak counts any completed task as a streak day. The
		// stricter all-completed rule belongs to challenge scope on the
		// Analytics view; the two numbers are deliberately different.
		rule := analytics.RuleAnyCompleted
		if v, err := m.store.GetSetting("streak_rule"); err == nil && v == "all" {
			rule = analytics.RuleAllCompleted
		}
		history, _ := m.store.ListRecords(store.RecordFilter{})
		streak := analytics.ComputeStreak(history, time.Now(), rule)

		return todayDataMsg{
			date:      date,
			records:   records,
			taskNames: names,
			targets:   targets,
			streak:    streak,
		}
	}
}

func (m todayModel) update(msg tea.Msg) (todayModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case todayDataMsg:
		m.date = msg.date
		m.records = msg.records
		m.taskNames = msg.taskNames
		m.targets = msg.targets
		m.streak = msg.streak
		if m.cursor >= len(m.records) {
			m.cursor = max(0, len(m.records)-1)
		}
		return m, nil

	case tickMsg:
		// Reload when the calendar day rolls over under us.
		if todayKey() != m.date {
			return m, m.loadData()
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.records)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Toggle), key.Matches(msg, keys.Enter):
			return m.toggleCurrent()
		case key.Matches(msg, keys.Miss):
			return m.markCurrent(store.StatusMissed)
		case key.Matches(msg, keys.Edit):
			return m.showNoteForm()
		}
	}
	return m, nil
}

func (m todayModel) showNoteForm() (todayModel, tea.Cmd) {
	if len(m.records) == 0 {
		return m, nil
	}
	r := m.records[m.cursor]
	*m.formNote = r.Note
	m.notingID = r.ID

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Note").Value(m.formNote),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m todayModel) updateForm(msg tea.Msg) (todayModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		m.store.SetRecordNote(m.notingID, *m.formNote)
		return m, m.loadData()
	}

	return m, cmd
}

func (m todayModel) toggleCurrent() (todayModel, tea.Cmd) {
	if len(m.records) == 0 {
		return m, nil
	}
	r := m.records[m.cursor]
	next := store.StatusCompleted
	if r.Status == store.StatusCompleted {
		next = store.StatusNotStarted
	}
	return m.markCurrent(next)
}

func (m todayModel) markCurrent(status store.Status) (todayModel, tea.Cmd) {
	if len(m.records) == 0 {
		return m, nil
	}
	r := m.records[m.cursor]
	if err := m.store.SetRecordStatus(r.ID, status); err != nil {
		return m, func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
	}
	return m, m.loadData()
}

func (m todayModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := titleStyle.Render("Record Note")
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View())
		return panelStyle.Width(w).Render(content)
	}

	header := m.renderHeaderPanel(w)
	checklist := m.renderChecklist(w)

	return lipgloss.JoinVertical(lipgloss.Left, header, checklist)
}

func (m todayModel) renderHeaderPanel(w int) string {
	date, _ := time.Parse("2006-01-02", m.date)
	title := titleStyle.Render(date.Format("Monday, Jan 2"))

	done := 0
	for _, r := range m.records {
		if r.Status == store.StatusCompleted {
			done++
		}
	}
	progress := fmt.Sprintf("%d/%d done", done, len(m.records))
	if len(m.records) > 0 && done == len(m.records) {
		progress = successStyle.Render(progress + "  perfect day")
	} else {
		progress = highlightStyle.Render(progress)
	}

	flame := streakStyle.Render(fmt.Sprintf("🔥 %d day streak", m.streak.Current))

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, "   ", flame),
		progress,
	)
	return panelStyle.Width(w).Render(content)
}

func (m todayModel) renderChecklist(w int) string {
	title := titleStyle.Render("Tasks")

	if len(m.records) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("Nothing scheduled. Press 2 to set up a challenge."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	for i, r := range m.records {
		icon := statusIcon(r.Status)
		switch r.Status {
		case store.StatusCompleted:
			icon = successStyle.Render(icon)
		case store.StatusMissed, store.StatusFailed:
			icon = errorStyle.Render(icon)
		default:
			icon = mutedStyle.Render(icon)
		}

		name := m.taskNames[r.TaskID]
		if name == "" {
			name = "?"
		}
		target := ""
		if t := m.targets[r.TaskID]; t != "" {
			target = mutedStyle.Render("  " + t)
		}
		note := ""
		if r.Note != "" {
			note = mutedStyle.Render("  · " + r.Note)
		}

		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, fmt.Sprintf("%s%s %s%s%s", cursor, icon, style.Render(name), target, note))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  space: toggle  m: missed  e: note  ↑/↓: move"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
