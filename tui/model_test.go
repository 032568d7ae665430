package tui

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ghostcat/ghostcat/common"
	"github.com/ghostcat/ghostcat/config"
	"github.com/ghostcat/ghostcat/dpi"
	"github.com/ghostcat/ghostcat/ratbag"
)

type fakeProfile struct{ active bool }

func (p *fakeProfile) ID() string     { return "/profile/hidraw0/p0" }
func (p *fakeProfile) IsActive() bool { return p.active }

type fakeResolution struct {
	index    int
	active   bool
	disabled bool
	shift    bool
	live     bool
	dpi      ratbag.DPI
	values   []uint32

	setActiveErr error
	setActive    int
	setDPI       []ratbag.DPI
}

func (r *fakeResolution) ID() string             { return "/resolution/hidraw0/p0/r" + string(rune('0'+r.index)) }
func (r *fakeResolution) Index() int             { return r.index }
func (r *fakeResolution) IsActive() bool         { return r.active }
func (r *fakeResolution) IsDisabled() bool       { return r.disabled }
func (r *fakeResolution) IsDpiShiftTarget() bool { return r.shift }
func (r *fakeResolution) DPI() ratbag.DPI        { return r.dpi }
func (r *fakeResolution) SupportedDPIs() []uint32 {
	return r.values
}

func (r *fakeResolution) LiveIsActive(context.Context) (bool, error) { return r.live, nil }

func (r *fakeResolution) SetActive(context.Context) error {
	r.setActive++
	return r.setActiveErr
}

func (r *fakeResolution) SetDpiShiftTarget(context.Context) error { return nil }

func (r *fakeResolution) SetDisabled(_ context.Context, disabled bool) error {
	r.disabled = disabled
	return nil
}

func (r *fakeResolution) SetDPI(_ context.Context, d ratbag.DPI) error {
	r.setDPI = append(r.setDPI, d)
	return nil
}

type fakeButton struct {
	index   int
	special ratbag.Special
}

func (b *fakeButton) ID() string                    { return "/button/hidraw0/p0/b" }
func (b *fakeButton) Index() int                    { return b.index }
func (b *fakeButton) ActionType() ratbag.ActionType { return ratbag.ActionSpecial }
func (b *fakeButton) Special() ratbag.Special       { return b.special }

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testModel(t *testing.T) (*Model, []*fakeResolution) {
	t.Helper()
	values := []uint32{400, 800, 1600, 3200}
	res := []*fakeResolution{
		{index: 0, dpi: ratbag.DPI{X: 800, Y: 800}, values: values},
		{index: 1, active: true, dpi: ratbag.DPI{X: 1600, Y: 1600}, values: values},
		{index: 2, shift: true, dpi: ratbag.DPI{X: 400, Y: 400}, values: values},
	}
	opts := options{
		Title:   "Test Mouse · Profile 1",
		Profile: &fakeProfile{active: true},
		Buttons: []dpi.Button{&fakeButton{index: 5, special: ratbag.SpecialResolutionCycleUp}},
		Config:  config.DefaultConfig(),
		Logger:  nopLogger{},
	}
	// Hand them over out of order; the model sorts by index.
	for i := len(res) - 1; i >= 0; i-- {
		opts.Resolutions = append(opts.Resolutions, res[i])
	}
	return newModel(opts), res
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelInitialState(t *testing.T) {
	m, _ := testModel(t)

	if got := m.page.ActiveIndex(); got != 1 {
		t.Errorf("ActiveIndex() = %d, want 1", got)
	}
	if !m.states[1].ActiveVisible || m.states[0].ActiveVisible {
		t.Errorf("active indicator states = %+v", m.states)
	}
	if !m.states[2].ShiftVisible {
		t.Errorf("row 2 ShiftVisible = false, want true")
	}
	if got, ok := m.labels[5]; !ok || got != ratbag.SpecialResolutionCycleUp.String() {
		t.Errorf("labels[5] = %q, %v", got, ok)
	}
	for i, r := range m.rows {
		if r.res.Index() != i {
			t.Errorf("rows[%d].Index() = %d", i, r.res.Index())
		}
	}
	if got := m.pollInterval(); got != common.PollInterval {
		t.Errorf("pollInterval() = %v, want %v", got, common.PollInterval)
	}
}

func TestModelInitSchedulesPoll(t *testing.T) {
	m, _ := testModel(t)

	if cmd := m.Init(); cmd == nil {
		t.Fatal("Init() = nil, want a tick command")
	}
	if cmds := m.sched.drain(); len(cmds) != 0 {
		t.Errorf("drain() after Init = %d commands, want 0", len(cmds))
	}
}

func TestModelSetActive(t *testing.T) {
	m, res := testModel(t)

	m.Update(runes("a"))
	if res[0].setActive != 1 {
		t.Fatalf("SetActive calls = %d, want 1", res[0].setActive)
	}
	if got := m.page.ActiveIndex(); got != 0 {
		t.Errorf("ActiveIndex() = %d, want 0", got)
	}
	if !m.states[0].ActiveVisible || m.states[1].ActiveVisible {
		t.Errorf("states after set active = %+v", m.states)
	}

	// Already active: the key is refused before reaching the daemon.
	m.Update(runes("a"))
	if res[0].setActive != 1 {
		t.Errorf("SetActive calls = %d, want 1", res[0].setActive)
	}
}

func TestModelSetActiveFailureRollsBack(t *testing.T) {
	m, res := testModel(t)
	res[0].setActiveErr = errors.New("device busy")

	m.Update(runes("a"))
	if got := m.page.ActiveIndex(); got != 1 {
		t.Errorf("ActiveIndex() = %d, want 1 after rollback", got)
	}
	if m.err == nil {
		t.Error("err = nil, want the call error")
	}
	if !strings.Contains(m.View(), "device busy") {
		t.Error("View() does not show the error")
	}
}

func TestModelDisableRefusedOnActive(t *testing.T) {
	m, res := testModel(t)

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(runes("d"))
	if res[1].disabled {
		t.Error("active resolution was disabled")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(runes("d"))
	if !res[2].disabled {
		t.Error("resolution 2 not disabled")
	}
}

func TestModelExpandRows(t *testing.T) {
	m, _ := testModel(t)
	enter := tea.KeyMsg{Type: tea.KeyEnter}

	m.Update(enter)
	if !m.rows[0].expanded {
		t.Fatal("row 0 not expanded")
	}
	if !strings.Contains(m.View(), "[800]") {
		t.Error("View() missing details of the expanded row")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(enter)
	if m.rows[0].expanded || !m.rows[1].expanded {
		t.Errorf("expanded = %v, %v; want false, true", m.rows[0].expanded, m.rows[1].expanded)
	}

	m.Update(enter)
	if m.rows[1].expanded {
		t.Error("row 1 still expanded after second activation")
	}
}

func TestModelStepDPI(t *testing.T) {
	m, res := testModel(t)

	m.Update(runes("+"))
	if len(res[0].setDPI) != 1 || res[0].setDPI[0].X != 1600 {
		t.Fatalf("SetDPI calls = %+v, want one call with 1600", res[0].setDPI)
	}
	m.Update(runes("-"))
	if len(res[0].setDPI) != 2 || res[0].setDPI[1].X != 400 {
		t.Errorf("SetDPI calls = %+v, want second call with 400", res[0].setDPI)
	}
}

func TestModelPollTick(t *testing.T) {
	m, res := testModel(t)
	m.Init()
	res[2].live = true

	for id := range m.sched.entries {
		m.Update(tickMsg{id: id})
	}

	if got := m.page.ActiveIndex(); got != 2 {
		t.Errorf("ActiveIndex() = %d, want 2", got)
	}
	if !strings.Contains(m.status, "activated on the device") {
		t.Errorf("status = %q", m.status)
	}
}

func TestModelQuit(t *testing.T) {
	m, _ := testModel(t)

	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("quit returned no command")
	}
	if !m.page.Closed() {
		t.Error("page not closed on quit")
	}
	if m.sched.active() != 0 {
		t.Errorf("active schedules = %d, want 0", m.sched.active())
	}
	if m.View() != "" {
		t.Error("View() not empty after quit")
	}
}

func TestModelDispatch(t *testing.T) {
	m, _ := testModel(t)
	called := false

	m.Update(dispatchMsg(func() { called = true }))
	if !called {
		t.Error("dispatched function not run")
	}
}

func TestStepValue(t *testing.T) {
	values := []uint32{1600, 400, 800}
	tests := []struct {
		name    string
		current uint32
		dir     int
		want    uint32
		wantOK  bool
	}{
		{"up", 400, 1, 800, true},
		{"down", 800, -1, 400, true},
		{"top", 1600, 1, 0, false},
		{"bottom", 400, -1, 0, false},
		{"snap up", 600, 1, 800, true},
		{"snap down", 600, -1, 400, true},
		{"above range", 3200, -1, 1600, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := stepValue(values, tt.current, tt.dir)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("stepValue(%d, %d) = %d, %v; want %d, %v", tt.current, tt.dir, got, ok, tt.want, tt.wantOK)
			}
		})
	}

	if _, ok := stepValue(nil, 400, 1); ok {
		t.Error("stepValue(nil) ok = true")
	}
}

func TestSchedulerLifecycle(t *testing.T) {
	s := newScheduler()
	calls := 0
	keep := true
	cancel := s.Every(time.Second, func() bool {
		calls++
		return keep
	})

	if cmds := s.drain(); len(cmds) != 1 {
		t.Fatalf("drain() = %d commands, want 1", len(cmds))
	}
	if cmd := s.fire(tickMsg{id: 1}); cmd == nil {
		t.Error("fire() = nil while callback keeps the schedule")
	}

	keep = false
	if cmd := s.fire(tickMsg{id: 1}); cmd != nil {
		t.Error("fire() returned a tick after the callback stopped")
	}
	if s.active() != 0 {
		t.Errorf("active() = %d, want 0", s.active())
	}

	cancel()
	cancel()
	if cmd := s.fire(tickMsg{id: 1}); cmd != nil || calls != 2 {
		t.Errorf("fire() after stop ran callback: calls = %d", calls)
	}
}

func TestSchedulerCancel(t *testing.T) {
	s := newScheduler()
	calls := 0
	cancel := s.Every(time.Second, func() bool {
		calls++
		return true
	})
	s.drain()

	cancel()
	if cmd := s.fire(tickMsg{id: 1}); cmd != nil {
		t.Error("fire() after cancel returned a tick")
	}
	if calls != 0 {
		t.Errorf("calls = %d, want 0", calls)
	}
}

func TestDispatcherReleasedByCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := tea.NewProgram(emptyModel(), tea.WithContext(ctx), tea.WithInput(nil), tea.WithOutput(io.Discard))
	dispatch := dispatcher(p)

	// The program never runs, as when loading the device fails.
	cancel()

	done := make(chan struct{})
	go func() {
		dispatch(func() {})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("dispatch still blocked after cancel")
	}
}
