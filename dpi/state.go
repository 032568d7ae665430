package dpi

// RowState is the visual state of one resolution row.
type RowState struct {
	Index int
	// ActiveVisible shows the "active" indicator.
	ActiveVisible bool
	// ActiveSensitive enables the set-active toggle.
	ActiveSensitive bool
	// DisableSensitive enables the disable toggle.
	DisableSensitive bool
	// ShiftSensitive enables the set-shift-target toggle.
	ShiftSensitive bool
	// ShiftVisible shows the "shift target" indicator.
	ShiftVisible bool
}

// rowInput is what computeRowStates needs to know about one row.
type rowInput struct {
	index    int
	disabled bool
}

// computeRowStates derives every row's state from the cached indices, the
// profile activity flag and per-row disabled flags. It has no side effects.
func computeRowStates(rows []rowInput, activeIndex, shiftIndex int, profileActive bool) []RowState {
	states := make([]RowState, 0, len(rows))
	for _, row := range rows {
		isActive := row.index == activeIndex
		isShift := row.index == shiftIndex

		st := RowState{
			Index:          row.index,
			ShiftSensitive: !isShift && !row.disabled,
			ShiftVisible:   isShift,
		}
		if profileActive {
			st.ActiveVisible = isActive
			st.ActiveSensitive = !isActive && !row.disabled
			st.DisableSensitive = !isActive
		} else {
			st.ActiveVisible = false
			st.ActiveSensitive = false
			st.DisableSensitive = true
		}
		states = append(states, st)
	}
	return states
}
