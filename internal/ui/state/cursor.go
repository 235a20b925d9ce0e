package state

// The cursor indexes Items, the filtered view. Single steps wrap around the
// ends. Page steps stop at an end first and wrap only from there, so paging
// never skips the first or last word.

// MoveCursorUp moves the cursor one item up, wrapping to the bottom.
func (l *List) MoveCursorUp() bool {
	return l.step(-1)
}

// MoveCursorDown moves the cursor one item down, wrapping to the top.
func (l *List) MoveCursorDown() bool {
	return l.step(1)
}

// MoveCursorHome moves the cursor to the first item.
func (l *List) MoveCursorHome() bool {
	return l.moveTo(0)
}

// MoveCursorEnd moves the cursor to the last item.
func (l *List) MoveCursorEnd() bool {
	return l.moveTo(len(l.Items) - 1)
}

// MoveCursorPageUp moves up by page items. A page below one means the whole
// list.
func (l *List) MoveCursorPageUp(page int) bool {
	return l.page(-1, page)
}

// MoveCursorPageDown moves down by page items.
func (l *List) MoveCursorPageDown(page int) bool {
	return l.page(1, page)
}

// MoveCursorToRow puts the cursor on the item shown at row of the viewport.
func (l *List) MoveCursorToRow(row, maxVisible int) bool {
	idx, ok := l.ItemAtRow(row, maxVisible)
	if !ok {
		return false
	}
	return l.moveTo(idx)
}

// ItemAtRow maps a zero-based viewport row to an index into Items.
func (l *List) ItemAtRow(row, maxVisible int) (int, bool) {
	if row < 0 || (maxVisible > 0 && row >= maxVisible) {
		return -1, false
	}
	idx := l.ViewportOffset + row
	if idx >= len(l.Items) {
		return -1, false
	}
	return idx, true
}

// EnsureCursorVisible clamps the cursor and scrolls the viewport by the
// smallest amount that keeps it on screen. maxVisible <= 0 shows every item.
func (l *List) EnsureCursorVisible(maxVisible int) {
	n := len(l.Items)
	if n == 0 {
		l.Cursor, l.ViewportOffset = 0, 0
		return
	}
	l.Cursor = clamp(l.Cursor, 0, n-1)
	if maxVisible <= 0 || maxVisible >= n {
		l.ViewportOffset = 0
		return
	}
	top := clamp(l.ViewportOffset, 0, n-maxVisible)
	switch {
	case l.Cursor < top:
		top = l.Cursor
	case l.Cursor >= top+maxVisible:
		top = l.Cursor - maxVisible + 1
	}
	l.ViewportOffset = top
}

func (l *List) step(dir int) bool {
	n := len(l.Items)
	if n == 0 {
		return l.moveTo(0)
	}
	cur := clamp(l.Cursor, 0, n-1)
	return l.moveTo((cur + dir + n) % n)
}

func (l *List) page(dir, page int) bool {
	n := len(l.Items)
	if n == 0 {
		return l.moveTo(0)
	}
	if page < 1 || page > n {
		page = n
	}
	last := n - 1
	cur := clamp(l.Cursor, 0, last)
	switch {
	case dir > 0 && cur == last:
		return l.moveTo(0)
	case dir < 0 && cur == 0:
		return l.moveTo(last)
	}
	return l.moveTo(cur + dir*page)
}

// moveTo places the cursor on idx, clamped to Items, and reports whether it
// moved. An empty list parks the cursor at zero.
func (l *List) moveTo(idx int) bool {
	old := l.Cursor
	if len(l.Items) == 0 {
		l.Cursor = 0
		return false
	}
	l.Cursor = clamp(idx, 0, len(l.Items)-1)
	return l.Cursor != old
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
