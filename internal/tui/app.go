// Package tui provides the interactive Bubble Tea dashboard for atlas.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/atlas/internal/app"
	"github.com/theirongolddev/atlas/internal/cli"
	"github.com/theirongolddev/atlas/internal/logger"
	"github.com/theirongolddev/atlas/internal/pipeline"
	"github.com/theirongolddev/atlas/internal/tui/components"
	"github.com/theirongolddev/atlas/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
)

// SnapshotMsg carries a freshly derived dashboard snapshot.
type SnapshotMsg struct {
	Snapshot app.Snapshot
	Err      error
	Message  string
	LoadTime time.Duration
}

// App is the root Bubble Tea model.
type App struct {
	core *app.App
	opts app.SnapshotOptions
	log  zerolog.Logger
	ctx  context.Context

	// Data
	snap     app.Snapshot
	month    string
	loaded   bool
	busy     bool
	loadErr  error
	loadTime time.Duration
	message  string

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	activity  activityState

	// Profile form (first run and edits)
	setupForm *huh.Form
	setupVals *ProfileValues

	spinner spinner.Model
}

const (
	minTerminalWidth = 80
	compactWidth     = 110
	maxContentWidth  = 160
	minContentHeight = 5
)

// NewApp creates the dashboard model over an opened application core.
func NewApp(ctx context.Context, core *app.App, month string, opts app.SnapshotOptions) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	if month == "" {
		month = core.CurrentMonth()
	}

	return App{
		core:    core,
		opts:    opts,
		log:     logger.Component(logger.FromContext(ctx), "tui"),
		ctx:     ctx,
		month:   month,
		busy:    true,
		spinner: sp,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		loadCmd(a.ctx, a.core, a.month, a.opts, true),
		a.spinner.Tick,
	)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp || a.setupForm != nil {
			return a, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			if a.activeTab == tabActivity {
				a.activity.move(-1, len(a.activityRows()))
			}
		case tea.MouseButtonWheelDown:
			if a.activeTab == tabActivity {
				a.activity.move(1, len(a.activityRows()))
			}
		case tea.MouseButtonLeft:
			if msg.Action == tea.MouseActionPress && msg.Y == 0 {
				if tab := a.tabAtX(msg.X); tab >= 0 {
					a.activeTab = tab
				}
			}
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			return a, tea.Quit
		}

		if a.setupForm != nil {
			return a.updateSetupForm(msg)
		}

		if !a.loaded {
			if key == "q" {
				return a, tea.Quit
			}
			return a, nil
		}

		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		if a.activeTab == tabActivity {
			if model, cmd, ok := a.updateActivity(key); ok {
				return model, cmd
			}
		}

		switch key {
		case "q":
			return a, tea.Quit
		case "r":
			if !a.busy {
				a.busy = true
				return a, loadCmd(a.ctx, a.core, a.month, a.opts, true)
			}
		case "[", "h":
			return a.stepMonth(-1), nil
		case "]", "l":
			return a.stepMonth(1), nil
		case "t":
			a.month = a.core.CurrentMonth()
			return a.refresh(), nil
		case "e":
			if a.activeTab == tabProfile && !a.busy {
				return a.openSetupForm()
			}
		case "left", "shift+tab":
			a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		case "right", "tab":
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		default:
			if r := []rune(key); len(r) == 1 {
				if idx := components.TabIdxByKey(r[0]); idx >= 0 {
					a.activeTab = idx
				}
			}
		}
		return a, nil

	case SnapshotMsg:
		a.busy = false
		a.loadTime = msg.LoadTime
		a.message = msg.Message
		if msg.Err != nil {
			a.log.Error().Err(msg.Err).Msg("refresh failed")
			a.loadErr = msg.Err
			if a.loaded {
				a.message = msg.Err.Error()
			}
			return a, nil
		}
		a.loadErr = nil
		a.snap = msg.Snapshot
		a.activity.clamp(len(a.activityRows()))

		firstLoad := !a.loaded
		a.loaded = true
		if firstLoad && a.snap.Profile == nil {
			return a.openSetupForm()
		}
		return a, nil

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	// Forward unhandled messages to the form (cursor blinks, etc.)
	if a.setupForm != nil {
		return a.updateSetupForm(msg)
	}

	return a, nil
}

func (a App) openSetupForm() (tea.Model, tea.Cmd) {
	a.setupVals = ProfileValuesFrom(a.snap.Profile)
	a.setupForm = NewProfileForm(a.setupVals)
	if a.width > 0 {
		a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
	}
	return a, a.setupForm.Init()
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		vals := a.setupVals
		a.setupForm = nil
		a.setupVals = nil
		a.busy = true
		return a, saveProfileCmd(a.ctx, a.core, vals, a.month, a.opts)
	case huh.StateAborted:
		a.setupForm = nil
		a.setupVals = nil
		return a, nil
	}

	return a, cmd
}

// stepMonth moves the selected month and re-derives the snapshot from the
// already loaded state.
func (a App) stepMonth(delta int) App {
	if a.busy {
		return a
	}
	a.month = pipeline.ShiftMonth(a.month, delta)
	return a.refresh()
}

func (a App) refresh() App {
	if a.busy {
		return a
	}
	a.snap = a.core.Snapshot(a.month, a.opts)
	a.activity = activityState{}
	return a
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if a.setupForm != nil {
		return a.setupForm.View()
	}
	if !a.loaded {
		return a.viewLoading()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)
	msg := fmt.Sprintf("\n  Terminal too narrow (%d cols)\n\n  atlas needs at least %d columns.\n",
		a.width, minTerminalWidth)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)
	logoStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	subtitleStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	errStyle := lipgloss.NewStyle().Foreground(t.Expense).Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ atlas"))
	b.WriteString(subtitleStyle.Render(" · personal ledger"))
	b.WriteString("\n\n")
	if a.loadErr != nil {
		b.WriteString(errStyle.Render("Could not open the ledger: " + a.loadErr.Error()))
		b.WriteString("\n")
		b.WriteString(subtitleStyle.Render("Press q to quit"))
	} else {
		b.WriteString(a.spinner.View())
		b.WriteString(subtitleStyle.Render(" Loading ledger..."))
	}

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)
	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Transfer).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	sections := []struct {
		title    string
		bindings []struct{ key, desc string }
	}{
		{"Navigation", []struct{ key, desc string }{
			{"o a c p", "Jump to tab"},
			{"← → tab", "Previous / Next tab"},
			{"[ ] h l", "Previous / Next month"},
			{"t", "Back to this month"},
			{"j k", "Move in activity"},
		}},
		{"Actions", []struct{ key, desc string }{
			{"f", "Activity: all months / selected month"},
			{"x", "Activity: delete (press twice)"},
			{"e", "Profile: edit"},
			{"r", "Reload from disk"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, s := range sections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(s.title))
		b.WriteString("\n")
		for _, bind := range s.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-8s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	greetStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Background).Bold(true)
	header := components.RenderTabBar(a.activeTab, w) + "\n" +
		lipgloss.PlaceHorizontal(w, lipgloss.Left, greetStyle.Render(" "+a.snap.Greeting),
			lipgloss.WithWhitespaceBackground(t.Background))

	message := a.message
	if a.busy {
		message = "working..."
	}
	statusBar := components.RenderStatusBar(w, cli.FormatMonth(a.snap.YearMonth), message)

	contentH := max(h-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	var content string
	switch a.activeTab {
	case tabOverview:
		content = a.renderOverviewTab(cw)
	case tabActivity:
		content = a.renderActivityTab(cw, contentH)
	case tabCategories:
		content = a.renderCategoriesTab(cw)
	case tabProfile:
		content = a.renderProfileTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Commands ───────────────────────────────────────────────────

// loadCmd re-reads the stored state when reload is set, then derives the
// snapshot for month.
func loadCmd(ctx context.Context, core *app.App, month string, opts app.SnapshotOptions, reload bool) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		if reload {
			if err := core.Reload(ctx); err != nil {
				return SnapshotMsg{Err: err, LoadTime: time.Since(start)}
			}
		}
		return SnapshotMsg{
			Snapshot: core.Snapshot(month, opts),
			LoadTime: time.Since(start),
		}
	}
}

func saveProfileCmd(ctx context.Context, core *app.App, vals *ProfileValues, month string, opts app.SnapshotOptions) tea.Cmd {
	return func() tea.Msg {
		in, err := vals.Input()
		if err == nil {
			_, err = core.SaveProfile(ctx, in)
		}
		if err != nil {
			return SnapshotMsg{Snapshot: core.Snapshot(month, opts), Err: err}
		}
		return SnapshotMsg{Snapshot: core.Snapshot(month, opts), Message: "profile saved"}
	}
}

func removeCmd(ctx context.Context, core *app.App, id, month string, opts app.SnapshotOptions) tea.Cmd {
	return func() tea.Msg {
		removed, err := core.Ledger.Remove(ctx, id)
		if err != nil {
			return SnapshotMsg{Snapshot: core.Snapshot(month, opts), Err: err}
		}
		msg := "nothing removed"
		if removed {
			msg = "transaction deleted"
		}
		return SnapshotMsg{Snapshot: core.Snapshot(month, opts), Message: msg}
	}
}

// ─── Helpers ────────────────────────────────────────────────────

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with the background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = lipgloss.PlaceHorizontal(w, lipgloss.Left, line, lipgloss.WithWhitespaceBackground(bg))
	}
	return strings.Join(lines, "\n")
}

// tabAtX returns the tab index under column x of the tab bar, or -1.
func (a App) tabAtX(x int) int {
	pos := 1 // leading space
	for i, tab := range components.Tabs {
		w := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+w {
			return i
		}
		pos += w + 1
	}
	return -1
}
