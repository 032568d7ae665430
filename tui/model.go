package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ghostcat/ghostcat/common"
	"github.com/ghostcat/ghostcat/config"
	"github.com/ghostcat/ghostcat/dpi"
	"github.com/ghostcat/ghostcat/ratbag"
)

// dispatchMsg carries a bus delivery onto the update loop.
type dispatchMsg func()

// resolution is what a row needs beyond dpi.Resolution.
// *ratbag.Resolution implements it.
type resolution interface {
	dpi.Resolution
	DPI() ratbag.DPI
	SupportedDPIs() []uint32
	SetDPI(ctx context.Context, d ratbag.DPI) error
}

type options struct {
	Title       string
	Profile     dpi.Profile
	Resolutions []resolution
	Buttons     []dpi.Button
	Events      dpi.EventSource
	Config      *config.Config
	Commit      func(ctx context.Context) error
	Logger      common.Logger
}

// row is one resolution line; it is the Revealer handed to the page.
type row struct {
	res      resolution
	expanded bool
}

// ToggleRevealer implements dpi.Revealer.
func (r *row) ToggleRevealer() {
	r.expanded = !r.expanded
}

// Model is the Bubble Tea model for one profile's resolutions.
type Model struct {
	title  string
	rows   []*row
	page   *dpi.Page
	sched  *scheduler
	commit func(ctx context.Context) error

	states map[int]dpi.RowState
	labels map[int]string

	cursor   int
	keys     keyMap
	help     help.Model
	status   string
	err      error
	quitting bool
}

func newModel(opts options) *Model {
	m := emptyModel()
	m.bind(opts)
	return m
}

func emptyModel() *Model {
	return &Model{
		sched:  newScheduler(),
		states: make(map[int]dpi.RowState),
		labels: make(map[int]string),
		keys:   defaultKeyMap(),
		help:   help.New(),
	}
}

// bind builds the page. It must run before the program starts.
func (m *Model) bind(opts options) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	m.title = opts.Title
	m.commit = opts.Commit

	sorted := append([]resolution(nil), opts.Resolutions...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Index() < sorted[j].Index() })

	resolutions := make([]dpi.Resolution, len(sorted))
	m.rows = make([]*row, len(sorted))
	for i, r := range sorted {
		resolutions[i] = r
		m.rows[i] = &row{res: r}
	}

	m.page = dpi.NewPage(dpi.Config{
		Profile:       opts.Profile,
		Resolutions:   resolutions,
		Buttons:       opts.Buttons,
		Events:        opts.Events,
		Scheduler:     m.sched,
		View:          m,
		Labels:        m,
		PollInterval:  cfg.PollInterval(),
		PollTimeout:   cfg.PollTimeout(),
		InitialActive: cfg.InitialActive,
		UpdatePolicy:  cfg.UpdatePolicy,
		Logger:        opts.Logger,
		OnHardwareChange: func(r dpi.Resolution) {
			m.status = fmt.Sprintf("Resolution %d activated on the device", r.Index())
		},
	})
}

// Render implements dpi.View.
func (m *Model) Render(states []dpi.RowState) {
	for _, st := range states {
		m.states[st.Index] = st
	}
}

// AddLabel implements dpi.LabelSurface.
func (m *Model) AddLabel(buttonIndex int, text string) {
	m.labels[buttonIndex] = text
}

// RemoveLabel implements dpi.LabelSurface.
func (m *Model) RemoveLabel(buttonIndex int) {
	delete(m.labels, buttonIndex)
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.sched.drain()...)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case dispatchMsg:
		msg()

	case tickMsg:
		cmds = append(cmds, m.sched.fire(msg))

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width

	case tea.KeyMsg:
		if cmd := m.handleKey(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	cmds = append(cmds, m.sched.drain()...)
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.page.Close()
		return tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	}

	r := m.selected()
	if r == nil {
		return nil
	}
	index := r.res.Index()

	switch {
	case key.Matches(msg, m.keys.Active):
		if st := m.states[index]; !st.ActiveSensitive {
			m.status = fmt.Sprintf("Resolution %d cannot be activated now", index)
			return nil
		}
		m.report(m.page.RequestActive(index), fmt.Sprintf("Resolution %d requested", index))

	case key.Matches(msg, m.keys.Shift):
		if st := m.states[index]; !st.ShiftSensitive {
			m.status = fmt.Sprintf("Resolution %d cannot be the shift target now", index)
			return nil
		}
		m.report(m.page.RequestShiftTarget(index), fmt.Sprintf("Shift target set to %d", index))

	case key.Matches(msg, m.keys.Disable):
		if st := m.states[index]; !st.DisableSensitive {
			m.status = "The active resolution cannot be disabled"
			return nil
		}
		m.report(m.page.ToggleDisabled(index), fmt.Sprintf("Resolution %d toggled", index))

	case key.Matches(msg, m.keys.Expand):
		m.page.ActivateRow(r)

	case key.Matches(msg, m.keys.DPIUp):
		m.stepDPI(r.res, 1)

	case key.Matches(msg, m.keys.DPIDown):
		m.stepDPI(r.res, -1)

	case key.Matches(msg, m.keys.Commit):
		if m.commit == nil {
			return nil
		}
		ctx, cancel := context.WithTimeout(context.Background(), common.CallTimeout)
		defer cancel()
		m.report(m.commit(ctx), "Changes written to the device")
	}
	return nil
}

func (m *Model) selected() *row {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return m.rows[m.cursor]
}

func (m *Model) report(err error, ok string) {
	m.err = err
	if err != nil {
		m.status = ""
		return
	}
	m.status = ok
}

// stepDPI moves r to the neighbouring supported value.
func (m *Model) stepDPI(r resolution, dir int) {
	next, ok := stepValue(r.SupportedDPIs(), r.DPI().X, dir)
	if !ok {
		return
	}
	d := r.DPI()
	d.X, d.Y = next, next

	ctx, cancel := context.WithTimeout(context.Background(), common.CallTimeout)
	defer cancel()
	m.report(r.SetDPI(ctx, d), fmt.Sprintf("Resolution %d set to %s", r.Index(), d))
}

// stepValue returns the value dir steps from current in the sorted list.
// A current value not in the list snaps to the nearest neighbour.
func stepValue(values []uint32, current uint32, dir int) (uint32, bool) {
	if len(values) == 0 {
		return 0, false
	}
	sorted := append([]uint32(nil), values...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	pos := sort.Search(len(sorted), func(i int) bool { return sorted[i] >= current })
	exact := pos < len(sorted) && sorted[pos] == current

	var next int
	switch {
	case dir > 0 && exact:
		next = pos + 1
	case dir > 0:
		next = pos
	default:
		next = pos - 1
	}
	if next < 0 || next >= len(sorted) {
		return 0, false
	}
	return sorted[next], true
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")

	for i, r := range m.rows {
		b.WriteString(m.renderRow(i, r))
		b.WriteString("\n")
		if r.expanded {
			b.WriteString(detailStyle.Render(m.renderDetails(r)))
			b.WriteString("\n")
		}
	}

	if len(m.labels) > 0 {
		b.WriteString(labelsStyle.Render(m.renderLabels()))
		b.WriteString("\n")
	}

	switch {
	case m.err != nil:
		b.WriteString(statusStyle.Render(errorStyle.Render(m.err.Error())))
	case m.status != "":
		b.WriteString(statusStyle.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) renderRow(i int, r *row) string {
	st := m.states[r.res.Index()]

	cursor := "  "
	if i == m.cursor {
		cursor = cursorStyle.Render("> ")
	}

	text := fmt.Sprintf("%d  %s", r.res.Index(), r.res.DPI())
	if r.res.IsDisabled() {
		text = disabledStyle.Render(text)
	}

	var badges []string
	if st.ActiveVisible {
		badges = append(badges, activeBadge.Render("● active"))
	}
	if st.ShiftVisible {
		badges = append(badges, shiftBadge.Render("⇧ shift"))
	}

	line := lipgloss.JoinHorizontal(lipgloss.Top, cursor, text)
	if len(badges) > 0 {
		line += "  " + strings.Join(badges, " ")
	}
	return rowStyle.Render(line)
}

func (m *Model) renderDetails(r *row) string {
	values := r.res.SupportedDPIs()
	parts := make([]string, len(values))
	current := r.res.DPI().X
	for i, v := range values {
		if v == current {
			parts[i] = fmt.Sprintf("[%d]", v)
		} else {
			parts[i] = fmt.Sprintf("%d", v)
		}
	}
	if len(parts) == 0 {
		return "no supported values reported"
	}
	return "supported: " + strings.Join(parts, " ")
}

func (m *Model) renderLabels() string {
	indices := make([]int, 0, len(m.labels))
	for idx := range m.labels {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	lines := make([]string, len(indices))
	for i, idx := range indices {
		lines[i] = fmt.Sprintf("Button %d: %s", idx, m.labels[idx])
	}
	return strings.Join(lines, "\n")
}

// pollInterval returns the interval of the live poll registration.
func (m *Model) pollInterval() time.Duration {
	for _, e := range m.sched.entries {
		return e.interval
	}
	return 0
}
