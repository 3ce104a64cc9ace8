package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/ritual/internal/store"
)

var challengeColors = []string{"#6C63FF", "#2EC4B6", "#FF6B6B", "#F39C12", "#2ECC71", "#E74C3C", "#9B59B6", "#3498DB"}

type challengesModel struct {
	store  *store.Store
	width  int
	height int

	challenges   []store.Challenge
	tasks        []store.Task
	cursor       int
	taskCursor   int
	showArchived bool
	viewingTasks bool // true = viewing tasks of selected challenge

	formActive bool
	form       *huh.Form
	formType   string // "challenge", "edit_challenge", "task"

	// Form field pointers (survive value copies)
	formName     *string
	formDesc     *string
	formDuration *string
	formColor    *string
	formTaskType *string
	formTarget   *string

	editingID int64 // challenge ID being edited
}

func newChallengesModel(s *store.Store) challengesModel {
	name, desc, dur, color := "", "", "75", challengeColors[0]
	taskType, target := string(store.TypeCustom), ""
	return challengesModel{
		store:        s,
		formName:     &name,
		formDesc:     &desc,
		formDuration: &dur,
		formColor:    &color,
		formTaskType: &taskType,
		formTarget:   &target,
	}
}

func (c *challengesModel) setSize(w, h int) {
	c.width = w
	c.height = h
}

type challengesDataMsg struct {
	challenges []store.Challenge
}

type challengeTasksMsg struct {
	tasks []store.Task
}

func (c challengesModel) refresh() tea.Cmd {
	return func() tea.Msg {
		challenges, _ := c.store.ListChallenges(c.showArchived)
		return challengesDataMsg{challenges: challenges}
	}
}

func (c challengesModel) refreshTasks() tea.Cmd {
	if c.cursor >= len(c.challenges) {
		return nil
	}
	cid := c.challenges[c.cursor].ID
	return func() tea.Msg {
		tasks, _ := c.store.ListTasks(&cid, false)
		return challengeTasksMsg{tasks: tasks}
	}
}

func (c challengesModel) update(msg tea.Msg) (challengesModel, tea.Cmd) {
	if c.formActive && c.form != nil {
		return c.updateForm(msg)
	}

	switch msg := msg.(type) {
	case challengesDataMsg:
		c.challenges = msg.challenges
		if c.cursor >= len(c.challenges) {
			c.cursor = max(0, len(c.challenges)-1)
		}
		return c, nil

	case challengeTasksMsg:
		c.tasks = msg.tasks
		if c.taskCursor >= len(c.tasks) {
			c.taskCursor = max(0, len(c.tasks)-1)
		}
		return c, nil

	case tea.KeyMsg:
		if c.viewingTasks {
			return c.updateTaskView(msg)
		}
		return c.updateChallengeList(msg)
	}
	return c, nil
}

func (c challengesModel) updateChallengeList(msg tea.KeyMsg) (challengesModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if c.cursor > 0 {
			c.cursor--
		}
	case key.Matches(msg, keys.Down):
		if c.cursor < len(c.challenges)-1 {
			c.cursor++
		}
	case key.Matches(msg, keys.Enter):
		if len(c.challenges) > 0 {
			c.viewingTasks = true
			c.taskCursor = 0
			return c, c.refreshTasks()
		}
	case key.Matches(msg, keys.New):
		return c.showNewChallengeForm()
	case key.Matches(msg, keys.Edit):
		if len(c.challenges) > 0 {
			return c.showEditChallengeForm()
		}
	case key.Matches(msg, keys.Delete):
		if len(c.challenges) > 0 {
			ch := c.challenges[c.cursor]
			c.store.ArchiveChallenge(ch.ID)
			return c, c.refresh()
		}
	}
	return c, nil
}

func (c challengesModel) updateTaskView(msg tea.KeyMsg) (challengesModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Back):
		c.viewingTasks = false
		return c, nil
	case key.Matches(msg, keys.Up):
		if c.taskCursor > 0 {
			c.taskCursor--
		}
	case key.Matches(msg, keys.Down):
		if c.taskCursor < len(c.tasks)-1 {
			c.taskCursor++
		}
	case key.Matches(msg, keys.New):
		return c.showNewTaskForm()
	case key.Matches(msg, keys.Delete):
		if len(c.tasks) > 0 {
			task := c.tasks[c.taskCursor]
			c.store.ArchiveTask(task.ID)
			return c, c.refreshTasks()
		}
	}
	return c, nil
}

func colorOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], len(challengeColors))
	for i, col := range challengeColors {
		opts[i] = huh.NewOption(fmt.Sprintf("● %s", col), col)
	}
	return opts
}

func typeOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], len(store.TaskTypes))
	for i, tt := range store.TaskTypes {
		opts[i] = huh.NewOption(string(tt), string(tt))
	}
	return opts
}

func (c challengesModel) showNewChallengeForm() (challengesModel, tea.Cmd) {
	*c.formName = ""
	*c.formDesc = ""
	*c.formColor = challengeColors[0]
	*c.formDuration = "75"
	if v, err := c.store.GetSetting("default_duration"); err == nil {
		*c.formDuration = v
	}
	c.formType = "challenge"

	c.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Challenge Name").Value(c.formName),
			huh.NewInput().Title("Description").Value(c.formDesc),
			huh.NewInput().Title("Duration (days)").Value(c.formDuration),
			huh.NewSelect[string]().Title("Color").Options(colorOptions()...).Value(c.formColor),
		),
	).WithShowHelp(true).WithShowErrors(true)

	c.formActive = true
	return c, c.form.Init()
}

func (c challengesModel) showEditChallengeForm() (challengesModel, tea.Cmd) {
	ch := c.challenges[c.cursor]
	*c.formName = ch.Name
	*c.formDesc = ch.Description
	*c.formColor = ch.Color
	*c.formDuration = strconv.Itoa(ch.DurationDays)
	c.formType = "edit_challenge"
	c.editingID = ch.ID

	c.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Challenge Name").Value(c.formName),
			huh.NewInput().Title("Description").Value(c.formDesc),
			huh.NewInput().Title("Duration (days)").Value(c.formDuration),
			huh.NewSelect[string]().Title("Color").Options(colorOptions()...).Value(c.formColor),
		),
	).WithShowHelp(true).WithShowErrors(true)

	c.formActive = true
	return c, c.form.Init()
}

func (c challengesModel) showNewTaskForm() (challengesModel, tea.Cmd) {
	*c.formName = ""
	*c.formTaskType = string(store.TypeCustom)
	*c.formTarget = ""
	c.formType = "task"

	c.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Task Name").Value(c.formName),
			huh.NewSelect[string]().Title("Type").Options(typeOptions()...).Value(c.formTaskType),
			huh.NewInput().Title("Target (e.g. 2L, 10 pages)").Value(c.formTarget),
		),
	).WithShowHelp(true).WithShowErrors(true)

	c.formActive = true
	return c, c.form.Init()
}

func (c challengesModel) updateForm(msg tea.Msg) (challengesModel, tea.Cmd) {
	// Check for escape to cancel form
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			c.formActive = false
			c.form = nil
			return c, nil
		}
	}

	form, cmd := c.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		c.form = f
	}

	if c.form.State == huh.StateCompleted {
		c.formActive = false
		switch c.formType {
		case "challenge":
			if *c.formName != "" {
				duration := parseDuration(*c.formDuration)
				c.store.CreateChallenge(*c.formName, *c.formDesc, duration, todayKey(), *c.formColor)
			}
			return c, c.refresh()
		case "edit_challenge":
			if *c.formName != "" {
				duration := parseDuration(*c.formDuration)
				c.store.UpdateChallenge(c.editingID, *c.formName, *c.formDesc, duration, *c.formColor)
			}
			return c, c.refresh()
		case "task":
			if *c.formName != "" && c.cursor < len(c.challenges) {
				cid := c.challenges[c.cursor].ID
				c.store.CreateTask(&cid, *c.formName, store.TaskType(*c.formTaskType), *c.formTarget)
			}
			return c, c.refreshTasks()
		}
	}

	return c, cmd
}

func parseDuration(s string) int {
	d, err := strconv.Atoi(s)
	if err != nil || d < 1 {
		return 75
	}
	return d
}

func (c challengesModel) view() string {
	if c.formActive && c.form != nil {
		title := titleStyle.Render("New Challenge")
		if c.formType == "edit_challenge" {
			title = titleStyle.Render("Edit Challenge")
		} else if c.formType == "task" {
			title = titleStyle.Render("New Task")
		}
		formView := c.form.View()
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", formView)
		return panelStyle.Width(c.width - 4).Render(content)
	}

	if c.viewingTasks {
		return c.renderTaskView()
	}
	return c.renderChallengeList()
}

func (c challengesModel) renderChallengeList() string {
	w := c.width - 4
	title := titleStyle.Render("Challenges")

	if len(c.challenges) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No challenges yet. Press n to create one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	header := mutedStyle.Render(fmt.Sprintf("  %-3s %-24s %-12s %s", "", "Name", "Progress", "Duration"))
	rows = append(rows, header)

	for i, ch := range c.challenges {
		colorDot := lipgloss.NewStyle().Foreground(lipgloss.Color(ch.Color)).Render("●")
		day := store.ChallengeDay(&ch, todayKey())
		progress := fmt.Sprintf("day %d/%d", min(day, ch.DurationDays), ch.DurationDays)
		if day > ch.DurationDays {
			progress = "finished"
		}
		cursor := "  "
		style := normalItemStyle
		if i == c.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		row := style.Render(fmt.Sprintf("%s%s %-24s %-12s %dd", cursor, colorDot, ch.Name, progress, ch.DurationDays))
		rows = append(rows, row)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  e: edit  d: archive  enter: tasks  esc: back"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (c challengesModel) renderTaskView() string {
	w := c.width - 4
	ch := c.challenges[c.cursor]
	colorDot := lipgloss.NewStyle().Foreground(lipgloss.Color(ch.Color)).Render("●")
	title := titleStyle.Render(fmt.Sprintf("%s %s — Tasks", colorDot, ch.Name))

	if len(c.tasks) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No tasks. Press n to add one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	for i, task := range c.tasks {
		cursor := "  "
		style := normalItemStyle
		if i == c.taskCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		target := ""
		if task.Target != "" {
			target = mutedStyle.Render(" [" + task.Target + "]")
		}
		typeTag := mutedStyle.Render(fmt.Sprintf(" (%s)", task.Type))
		rows = append(rows, style.Render(fmt.Sprintf("%s%s", cursor, task.Name))+typeTag+target)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new task  d: archive  esc: back"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
