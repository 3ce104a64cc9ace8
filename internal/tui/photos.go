package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/ritual/internal/store"
)

// photosModel lists registered progress photos. The app only tracks file
// paths; capture happens elsewhere.
type photosModel struct {
	store  *store.Store
	width  int
	height int

	photos         []store.ProgressPhoto
	challengeNames map[int64]string
	cursor         int

	formActive bool
	form       *huh.Form

	formPath *string
	formNote *string
}

func newPhotosModel(s *store.Store) photosModel {
	path, note := "", ""
	return photosModel{
		store:    s,
		formPath: &path,
		formNote: &note,
	}
}

func (p *photosModel) setSize(w, h int) {
	p.width = w
	p.height = h
}

type photosDataMsg struct {
	photos         []store.ProgressPhoto
	challengeNames map[int64]string
}

func (p photosModel) refresh() tea.Cmd {
	return func() tea.Msg {
		photos, _ := p.store.ListPhotos(nil)
		challenges, _ := p.store.ListChallenges(true)
		names := make(map[int64]string, len(challenges))
		for _, c := range challenges {
			names[c.ID] = c.Name
		}
		return photosDataMsg{photos: photos, challengeNames: names}
	}
}

func (p photosModel) update(msg tea.Msg) (photosModel, tea.Cmd) {
	if p.formActive && p.form != nil {
		return p.updateForm(msg)
	}

	switch msg := msg.(type) {
	case photosDataMsg:
		p.photos = msg.photos
		p.challengeNames = msg.challengeNames
		if p.cursor >= len(p.photos) {
			p.cursor = max(0, len(p.photos)-1)
		}
		return p, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if p.cursor > 0 {
				p.cursor--
			}
		case key.Matches(msg, keys.Down):
			if p.cursor < len(p.photos)-1 {
				p.cursor++
			}
		case key.Matches(msg, keys.New):
			return p.showForm()
		case key.Matches(msg, keys.Delete):
			if len(p.photos) > 0 {
				p.store.DeletePhoto(p.photos[p.cursor].ID)
				return p, p.refresh()
			}
		}
	}
	return p, nil
}

func (p photosModel) showForm() (photosModel, tea.Cmd) {
	*p.formPath = ""
	*p.formNote = ""

	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Photo file path").Value(p.formPath),
			huh.NewInput().Title("Note").Value(p.formNote),
		),
	).WithShowHelp(true).WithShowErrors(true)

	p.formActive = true
	return p, p.form.Init()
}

func (p photosModel) updateForm(msg tea.Msg) (photosModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			p.formActive = false
			p.form = nil
			return p, nil
		}
	}

	form, cmd := p.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		p.form = f
	}

	if p.form.State == huh.StateCompleted {
		p.formActive = false
		if *p.formPath != "" {
			p.store.AddPhoto(nil, todayKey(), *p.formPath, *p.formNote)
		}
		return p, p.refresh()
	}

	return p, cmd
}

func (p photosModel) view() string {
	w := p.width - 4

	if p.formActive && p.form != nil {
		title := titleStyle.Render("Register Photo")
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", p.form.View())
		return panelStyle.Width(w).Render(content)
	}

	title := titleStyle.Render("Progress Photos")

	if len(p.photos) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No photos yet. Press n to register one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	for i, photo := range p.photos {
		cursor := "  "
		style := normalItemStyle
		if i == p.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		challenge := ""
		if photo.ChallengeID != nil {
			if name, ok := p.challengeNames[*photo.ChallengeID]; ok {
				challenge = mutedStyle.Render(" (" + name + ")")
			}
		}
		note := ""
		if photo.Note != "" {
			note = mutedStyle.Render("  " + photo.Note)
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%s  %s", cursor, photo.Date, photo.FilePath))+challenge+note)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: register  d: delete"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
