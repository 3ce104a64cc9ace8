package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/ritual/internal/analytics"
	"github.com/sadopc/ritual/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func seedChallenge(t *testing.T, s *store.Store) (*store.Challenge, *store.Task) {
	t.Helper()
	ch, err := s.CreateChallenge("75 Hard", "", 75, todayKey(), "#FF0000")
	if err != nil {
		t.Fatal(err)
	}
	task, err := s.CreateTask(&ch.ID, "Workout", store.TypeWorkout, "45 min")
	if err != nil {
		t.Fatal(err)
	}
	return ch, task
}

// ============================================================
// Today model
// ============================================================

func TestTodayMarkCompleted(t *testing.T) {
	s := newTestStore(t)
	seedChallenge(t, s)

	s.GenerateDay(todayKey())
	records, _ := s.ListDayRecords(todayKey())
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	m := newTodayModel(s)
	m.records = records

	m, _ = m.markCurrent(store.StatusCompleted)

	got, _ := s.GetRecord(records[0].ID)
	if got.Status != store.StatusCompleted {
		t.Fatalf("status = %s, want completed", got.Status)
	}
	if got.CompletedAt == nil {
		t.Fatal("completing should stamp CompletedAt")
	}
}

func TestTodayToggleBackToNotStarted(t *testing.T) {
	s := newTestStore(t)
	seedChallenge(t, s)

	s.GenerateDay(todayKey())
	records, _ := s.ListDayRecords(todayKey())
	s.SetRecordStatus(records[0].ID, store.StatusCompleted)
	records, _ = s.ListDayRecords(todayKey())

	m := newTodayModel(s)
	m.records = records

	// Toggling a completed record reverts it
	m, _ = m.toggleCurrent()

	got, _ := s.GetRecord(records[0].ID)
	if got.Status != store.StatusNotStarted {
		t.Fatalf("status = %s, want not_started", got.Status)
	}
	if got.CompletedAt != nil {
		t.Fatal("reverting should clear CompletedAt")
	}
}

func TestTodayMarkMissed(t *testing.T) {
	s := newTestStore(t)
	seedChallenge(t, s)

	s.GenerateDay(todayKey())
	records, _ := s.ListDayRecords(todayKey())

	m := newTodayModel(s)
	m.records = records

	m, _ = m.markCurrent(store.StatusMissed)

	got, _ := s.GetRecord(records[0].ID)
	if got.Status != store.StatusMissed {
		t.Fatalf("status = %s, want missed", got.Status)
	}
}

func TestTodayMarkWithNoRecords(t *testing.T) {
	s := newTestStore(t)
	m := newTodayModel(s)

	// No records: should be a no-op, not a panic
	m, cmd := m.markCurrent(store.StatusCompleted)
	if cmd != nil {
		t.Fatal("mark with no records should return nil cmd")
	}
	_ = m
}

func TestTodayNoteForm(t *testing.T) {
	s := newTestStore(t)
	seedChallenge(t, s)

	s.GenerateDay(todayKey())
	records, _ := s.ListDayRecords(todayKey())
	s.SetRecordNote(records[0].ID, "felt strong")
	records, _ = s.ListDayRecords(todayKey())

	m := newTodayModel(s)
	m.records = records

	m, cmd := m.showNoteForm()
	if !m.formActive {
		t.Fatal("note form should be active")
	}
	if cmd == nil {
		t.Fatal("form init should return a cmd")
	}
	if *m.formNote != "felt strong" {
		t.Fatalf("form should prefill the existing note, got %q", *m.formNote)
	}
	if m.notingID != records[0].ID {
		t.Fatal("form should target the selected record")
	}
}

func TestTodayNoteFormWithNoRecords(t *testing.T) {
	s := newTestStore(t)
	m := newTodayModel(s)

	m, cmd := m.showNoteForm()
	if m.formActive || cmd != nil {
		t.Fatal("note form with no records should be a no-op")
	}
}

func TestTodayCursorClampOnReload(t *testing.T) {
	s := newTestStore(t)
	m := newTodayModel(s)
	m.cursor = 5

	m, _ = m.update(todayDataMsg{date: todayKey()})
	if m.cursor != 0 {
		t.Fatalf("cursor should clamp to 0 on empty reload, got %d", m.cursor)
	}
}

func TestTodayViewRenders(t *testing.T) {
	s := newTestStore(t)
	seedChallenge(t, s)

	s.GenerateDay(todayKey())
	records, _ := s.ListDayRecords(todayKey())

	m := newTodayModel(s)
	m.setSize(120, 40)
	m.records = records
	m.taskNames = map[int64]string{records[0].TaskID: "Workout"}
	m.targets = map[int64]string{records[0].TaskID: "45 min"}

	out := m.view()
	if !strings.Contains(out, "Workout") {
		t.Fatal("view should list the task name")
	}
	if !strings.Contains(out, "45 min") {
		t.Fatal("view should show the target")
	}
}

func TestTodayPerfectDayBadge(t *testing.T) {
	s := newTestStore(t)
	seedChallenge(t, s)

	s.GenerateDay(todayKey())
	records, _ := s.ListDayRecords(todayKey())
	s.SetRecordStatus(records[0].ID, store.StatusCompleted)
	records, _ = s.ListDayRecords(todayKey())

	m := newTodayModel(s)
	m.setSize(120, 40)
	m.records = records
	m.taskNames = map[int64]string{records[0].TaskID: "Workout"}

	out := m.view()
	if !strings.Contains(out, "perfect day") {
		t.Fatal("completing every task should show the perfect day badge")
	}
}

// ============================================================
// Challenges model
// ============================================================

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"75", 75},
		{"30", 30},
		{"1", 1},
		{"0", 75},
		{"-5", 75},
		{"invalid", 75},
		{"", 75},
	}
	for _, tt := range tests {
		got := parseDuration(tt.in)
		if got != tt.want {
			t.Errorf("parseDuration(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestChallengesCursorClamp(t *testing.T) {
	s := newTestStore(t)
	c := newChallengesModel(s)
	c.cursor = 3

	c, _ = c.update(challengesDataMsg{})
	if c.cursor != 0 {
		t.Fatalf("cursor should clamp to 0, got %d", c.cursor)
	}
}

func TestChallengesViewEmpty(t *testing.T) {
	s := newTestStore(t)
	c := newChallengesModel(s)
	c.setSize(120, 40)

	out := c.view()
	if !strings.Contains(out, "No challenges yet") {
		t.Fatal("empty list should show the hint")
	}
}

func TestChallengesViewListsProgress(t *testing.T) {
	s := newTestStore(t)
	ch, _ := seedChallenge(t, s)

	c := newChallengesModel(s)
	c.setSize(120, 40)
	c.challenges = []store.Challenge{*ch}

	out := c.view()
	if !strings.Contains(out, "75 Hard") {
		t.Fatal("view should list the challenge name")
	}
	if !strings.Contains(out, "day 1/75") {
		t.Fatal("view should show day progress for a challenge starting today")
	}
}

// ============================================================
// Analytics model
// ============================================================

func TestAnalyticsFrameCycling(t *testing.T) {
	s := newTestStore(t)
	a := newAnalyticsModel(s)

	if a.frame != analytics.FrameWeek {
		t.Fatal("default frame should be week")
	}

	a, cmd := a.update(tea.KeyMsg{Type: tea.KeyRight})
	if a.frame != analytics.FrameMonth {
		t.Fatalf("frame = %v, want month", a.frame)
	}
	if cmd == nil {
		t.Fatal("frame change should trigger a refresh")
	}

	a, _ = a.update(tea.KeyMsg{Type: tea.KeyRight})
	if a.frame != analytics.FrameAll {
		t.Fatalf("frame = %v, want all", a.frame)
	}

	a, _ = a.update(tea.KeyMsg{Type: tea.KeyRight})
	if a.frame != analytics.FrameWeek {
		t.Fatal("frame should wrap back to week")
	}

	a, _ = a.update(tea.KeyMsg{Type: tea.KeyLeft})
	if a.frame != analytics.FrameAll {
		t.Fatal("left should cycle backwards")
	}
}

func TestAnalyticsScopeCycling(t *testing.T) {
	s := newTestStore(t)
	ch, _ := seedChallenge(t, s)

	a := newAnalyticsModel(s)
	a.challenges = []store.Challenge{*ch}

	if a.scope != 0 {
		t.Fatal("default scope should be all")
	}

	a, _ = a.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}})
	if a.scope != 1 {
		t.Fatalf("scope = %d, want 1", a.scope)
	}

	a, _ = a.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}})
	if a.scope != 0 {
		t.Fatal("scope should wrap back to all")
	}
}

func TestAnalyticsViewRenders(t *testing.T) {
	s := newTestStore(t)
	a := newAnalyticsModel(s)
	a.setSize(120, 40)

	out := a.view()
	if !strings.Contains(out, "Analytics") {
		t.Fatal("view should have a title")
	}
	if !strings.Contains(out, "All challenges") {
		t.Fatal("default scope label should be all challenges")
	}
	if !strings.Contains(out, "Consistency") {
		t.Fatal("view should show the consistency panel")
	}
}

// ============================================================
// Photos model
// ============================================================

func TestPhotosCursorClamp(t *testing.T) {
	s := newTestStore(t)
	p := newPhotosModel(s)
	p.cursor = 4

	p, _ = p.update(photosDataMsg{})
	if p.cursor != 0 {
		t.Fatalf("cursor should clamp to 0, got %d", p.cursor)
	}
}

func TestPhotosViewEmpty(t *testing.T) {
	s := newTestStore(t)
	p := newPhotosModel(s)
	p.setSize(120, 40)

	out := p.view()
	if !strings.Contains(out, "No photos yet") {
		t.Fatal("empty list should show the hint")
	}
}

func TestPhotosViewLists(t *testing.T) {
	s := newTestStore(t)
	photo, err := s.AddPhoto(nil, "2026-03-01", "/photos/day1.jpg", "day one")
	if err != nil {
		t.Fatal(err)
	}

	p := newPhotosModel(s)
	p.setSize(120, 40)
	p.photos = []store.ProgressPhoto{*photo}

	out := p.view()
	if !strings.Contains(out, "/photos/day1.jpg") {
		t.Fatal("view should list the photo path")
	}
	if !strings.Contains(out, "day one") {
		t.Fatal("view should show the note")
	}
}

// ============================================================
// Settings model
// ============================================================

func TestSettingsGetValFallback(t *testing.T) {
	s := newTestStore(t)
	sm := newSettingsModel(s)

	if v := sm.getVal("week_start", "sunday"); v != "monday" {
		t.Fatalf("seeded week_start = %q, want monday", v)
	}
	if v := sm.getVal("no_such_key", "fallback"); v != "fallback" {
		t.Fatalf("missing key should return fallback, got %q", v)
	}
}

func TestSettingsSave(t *testing.T) {
	s := newTestStore(t)
	sm := newSettingsModel(s)
	*sm.weekStart = "sunday"
	*sm.rolloverHour = "4"
	*sm.defaultDuration = "30"
	*sm.streakRule = "all"

	sm.saveSettings()

	if v, _ := s.GetSetting("week_start"); v != "sunday" {
		t.Fatalf("week_start = %q, want sunday", v)
	}
	if v, _ := s.GetSetting("day_rollover_hour"); v != "4" {
		t.Fatalf("day_rollover_hour = %q, want 4", v)
	}
	if v, _ := s.GetSetting("default_duration"); v != "30" {
		t.Fatalf("default_duration = %q, want 30", v)
	}
	if v, _ := s.GetSetting("streak_rule"); v != "all" {
		t.Fatalf("streak_rule = %q, want all", v)
	}
}

func TestSettingsViewLists(t *testing.T) {
	s := newTestStore(t)
	sm := newSettingsModel(s)
	sm.setSize(120, 40)
	settings, _ := s.GetAllSettings()
	sm.settings = settings

	out := sm.view()
	if !strings.Contains(out, "week_start") {
		t.Fatal("view should list the seeded settings")
	}
}

// ============================================================
// View state
// ============================================================

func TestViewNames(t *testing.T) {
	if len(viewNames) != 5 {
		t.Fatalf("expected 5 view names, got %d", len(viewNames))
	}
	expected := []string{"Today", "Challenges", "Analytics", "Photos", "Settings"}
	for i, name := range expected {
		if viewNames[i] != name {
			t.Fatalf("viewNames[%d] = %q, want %q", i, viewNames[i], name)
		}
	}
}

func TestViewStateConstants(t *testing.T) {
	if viewToday != 0 || viewChallenges != 1 || viewAnalytics != 2 || viewPhotos != 3 || viewSettings != 4 {
		t.Fatal("view state constants out of order")
	}
}

// ============================================================
// App model
// ============================================================

func TestNewApp(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)

	if app.activeView != viewToday {
		t.Fatal("default view should be today")
	}
	if app.showHelp {
		t.Fatal("help should be hidden by default")
	}
	if app.exportPicking {
		t.Fatal("export picker should be hidden by default")
	}
}

func TestAppIsFormActiveDefault(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)

	if app.isFormActive() {
		t.Fatal("no forms should be active initially")
	}
}

func TestAppViewStates(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	app.width = 120
	app.height = 40

	// Test all views render without panic
	views := []viewState{viewToday, viewChallenges, viewAnalytics, viewPhotos, viewSettings}
	for _, v := range views {
		app.activeView = v
		output := app.View()
		if output == "" {
			t.Fatalf("view %d rendered empty", v)
		}
	}
}

func TestAppRenderHeaderContainsAllTabs(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	app.width = 120
	app.height = 40

	header := app.renderHeader()
	for _, name := range viewNames {
		if !strings.Contains(header, name) {
			t.Fatalf("header missing tab %q", name)
		}
	}
}

func TestAppLoadingState(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	// Width 0 means not yet sized
	output := app.View()
	if output != "Loading..." {
		t.Fatalf("expected 'Loading...', got %q", output)
	}
}

func TestAppStatusMessage(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	app.width = 120
	app.height = 40
	app.status = "test status"

	footer := app.renderFooter()
	if !strings.Contains(footer, "test status") {
		t.Fatal("footer should contain status message")
	}
}

func TestAppExportPickerCursor(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	app.width = 120
	app.height = 40
	app.exportPicking = true

	model, _ := app.updateExportPicker(tea.KeyMsg{Type: tea.KeyDown})
	app = model.(App)
	if app.exportCursor != 1 {
		t.Fatalf("cursor = %d, want 1", app.exportCursor)
	}

	model, _ = app.updateExportPicker(tea.KeyMsg{Type: tea.KeyDown})
	app = model.(App)
	if app.exportCursor != 1 {
		t.Fatal("cursor should not go past last format")
	}

	model, _ = app.updateExportPicker(tea.KeyMsg{Type: tea.KeyEsc})
	app = model.(App)
	if app.exportPicking {
		t.Fatal("esc should close the picker")
	}
}

// ============================================================
// Helper functions
// ============================================================

func TestStatusIcon(t *testing.T) {
	tests := []struct {
		status store.Status
		want   string
	}{
		{store.StatusCompleted, "✓"},
		{store.StatusInProgress, "◐"},
		{store.StatusMissed, "✗"},
		{store.StatusFailed, "!"},
		{store.StatusNotStarted, "○"},
	}
	for _, tt := range tests {
		got := statusIcon(tt.status)
		if got != tt.want {
			t.Errorf("statusIcon(%s) = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestFormatRate(t *testing.T) {
	tests := []struct {
		rate float64
		want string
	}{
		{0, "0%"},
		{50, "50%"},
		{75.4, "75%"},
		{100, "100%"},
	}
	for _, tt := range tests {
		got := formatRate(tt.rate)
		if got != tt.want {
			t.Errorf("formatRate(%v) = %q, want %q", tt.rate, got, tt.want)
		}
	}
}

func TestMinMax(t *testing.T) {
	if min(3, 5) != 3 {
		t.Fatal("min(3,5) should be 3")
	}
	if min(5, 3) != 3 {
		t.Fatal("min(5,3) should be 3")
	}
	if max(3, 5) != 5 {
		t.Fatal("max(3,5) should be 5")
	}
	if max(5, 3) != 5 {
		t.Fatal("max(5,3) should be 5")
	}
}

// ============================================================
// Key bindings
// ============================================================

func TestKeyMapShortHelp(t *testing.T) {
	bindings := keys.ShortHelp()
	if len(bindings) == 0 {
		t.Fatal("short help should have bindings")
	}
}

func TestKeyMapFullHelp(t *testing.T) {
	groups := keys.FullHelp()
	if len(groups) == 0 {
		t.Fatal("full help should have groups")
	}
	for i, g := range groups {
		if len(g) == 0 {
			t.Fatalf("full help group %d is empty", i)
		}
	}
}

// ============================================================
// Styles (smoke test, just verify they don't panic)
// ============================================================

func TestStylesRender(t *testing.T) {
	styles := []struct {
		name string
		fn   func() string
	}{
		{"activeTab", func() string { return activeTabStyle.Render("test") }},
		{"inactiveTab", func() string { return inactiveTabStyle.Render("test") }},
		{"panel", func() string { return panelStyle.Render("test") }},
		{"activePanel", func() string { return activePanelStyle.Render("test") }},
		{"score", func() string { return scoreStyle.Render("test") }},
		{"streak", func() string { return streakStyle.Render("test") }},
		{"title", func() string { return titleStyle.Render("test") }},
		{"success", func() string { return successStyle.Render("test") }},
		{"warning", func() string { return warningStyle.Render("test") }},
		{"error", func() string { return errorStyle.Render("test") }},
		{"muted", func() string { return mutedStyle.Render("test") }},
		{"highlight", func() string { return highlightStyle.Render("test") }},
		{"header", func() string { return headerStyle.Render("test") }},
		{"footer", func() string { return footerStyle.Render("test") }},
		{"selectedItem", func() string { return selectedItemStyle.Render("test") }},
		{"normalItem", func() string { return normalItemStyle.Render("test") }},
	}

	for _, s := range styles {
		result := s.fn()
		if result == "" {
			t.Fatalf("style %q rendered empty", s.name)
		}
	}
}
