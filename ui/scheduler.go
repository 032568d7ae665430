package ui

import (
	"sync"
	"time"

	"github.com/diamondburned/gotk4/pkg/glib/v2"
)

// glibScheduler runs periodic callbacks on the GTK main loop.
type glibScheduler struct{}

// Every schedules fn every interval. The source is removed when fn returns
// false or cancel is called, whichever comes first.
func (glibScheduler) Every(interval time.Duration, fn func() bool) func() {
	var (
		mu     sync.Mutex
		active = true
	)

	tick := func() bool {
		mu.Lock()
		if !active {
			mu.Unlock()
			return false
		}
		mu.Unlock()

		if fn() {
			return true
		}
		mu.Lock()
		active = false
		mu.Unlock()
		return false
	}

	var id glib.SourceHandle
	if interval%time.Second == 0 {
		id = glib.TimeoutSecondsAdd(uint(interval/time.Second), tick)
	} else {
		id = glib.TimeoutAdd(uint(interval/time.Millisecond), tick)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			mu.Lock()
			defer mu.Unlock()
			if active {
				active = false
				glib.SourceRemove(id)
			}
		})
	}
}
