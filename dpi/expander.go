package dpi

// Expander keeps at most one row expanded.
type Expander struct {
	last Revealer
}

// Activate handles a row activation: activating the expanded row
// collapses it, activating any other row collapses the previous one and
// expands the new one.
func (e *Expander) Activate(row Revealer) {
	if row == e.last {
		e.last = nil
		row.ToggleRevealer()
		return
	}
	if e.last != nil {
		e.last.ToggleRevealer()
	}
	e.last = row
	row.ToggleRevealer()
}

// Expanded returns the currently expanded row, or nil.
func (e *Expander) Expanded() Revealer {
	return e.last
}
