package state

// SetCursor records the focused row out of rows rendered rows.
func (l *Level) SetCursor(row, rows int) {
	switch {
	case rows <= 0:
		l.Cursor = 0
	case row < 0:
		l.Cursor = 0
	case row >= rows:
		l.Cursor = rows - 1
	default:
		l.Cursor = row
	}
}

// EnsureCursorVisible adjusts the viewport offset so the cursor row stays
// visible when at most maxVisible of rows rows fit on screen.
func (l *Level) EnsureCursorVisible(rows, maxVisible int) {
	if rows == 0 || maxVisible <= 0 {
		l.ViewportOffset = 0
		return
	}
	l.SetCursor(l.Cursor, rows)
	maxOffset := rows - maxVisible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if l.ViewportOffset > maxOffset {
		l.ViewportOffset = maxOffset
	}
	if l.ViewportOffset < 0 {
		l.ViewportOffset = 0
	}
	if l.Cursor < l.ViewportOffset {
		l.ViewportOffset = l.Cursor
	}
	if upper := l.ViewportOffset + maxVisible - 1; l.Cursor > upper {
		l.ViewportOffset = l.Cursor - maxVisible + 1
	}
}
