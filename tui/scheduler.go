package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// tickMsg fires one scheduled callback.
type tickMsg struct {
	id int
}

type scheduled struct {
	interval  time.Duration
	fn        func() bool
	cancelled bool
}

// scheduler implements dpi.Scheduler on top of tea.Tick. Every only
// registers the callback; the model turns new registrations into tick
// commands after each update.
type scheduler struct {
	next    int
	entries map[int]*scheduled
	fresh   []int
}

func newScheduler() *scheduler {
	return &scheduler{entries: make(map[int]*scheduled)}
}

// Every implements dpi.Scheduler.
func (s *scheduler) Every(interval time.Duration, fn func() bool) func() {
	s.next++
	id := s.next
	entry := &scheduled{interval: interval, fn: fn}
	s.entries[id] = entry
	s.fresh = append(s.fresh, id)

	return func() {
		if entry.cancelled {
			return
		}
		entry.cancelled = true
		delete(s.entries, id)
	}
}

// drain returns a tick command for every registration since the last call.
func (s *scheduler) drain() []tea.Cmd {
	var cmds []tea.Cmd
	for _, id := range s.fresh {
		if entry, ok := s.entries[id]; ok {
			cmds = append(cmds, tick(id, entry.interval))
		}
	}
	s.fresh = nil
	return cmds
}

// fire runs the callback for msg and returns the next tick, or nil once
// the callback is done or cancelled.
func (s *scheduler) fire(msg tickMsg) tea.Cmd {
	entry, ok := s.entries[msg.id]
	if !ok || entry.cancelled {
		return nil
	}
	if !entry.fn() {
		entry.cancelled = true
		delete(s.entries, msg.id)
		return nil
	}
	if entry.cancelled {
		return nil
	}
	return tick(msg.id, entry.interval)
}

// active returns the number of live registrations.
func (s *scheduler) active() int {
	return len(s.entries)
}

func tick(id int, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return tickMsg{id: id}
	})
}
