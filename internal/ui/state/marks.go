package state

// Marks are keyed by item ID, so a word stays marked while the filter hides
// it. They only ever name items in Full.

// ToggleMark flips the mark on the item under the cursor and reports whether
// that item is now marked.
func (l *List) ToggleMark() bool {
	item, ok := l.Current()
	if !ok {
		return false
	}
	if l.IsMarked(item.ID) {
		delete(l.Marks, item.ID)
		return false
	}
	if l.Marks == nil {
		l.Marks = make(map[string]struct{})
	}
	l.Marks[item.ID] = struct{}{}
	return true
}

// IsMarked reports whether the item with id is marked.
func (l *List) IsMarked(id string) bool {
	_, ok := l.Marks[id]
	return ok
}

// MarkCount returns the number of marked items, hidden ones included.
func (l *List) MarkCount() int {
	return len(l.Marks)
}

// ClearMarks unmarks everything and reports whether anything was marked.
func (l *List) ClearMarks() bool {
	if len(l.Marks) == 0 {
		return false
	}
	clear(l.Marks)
	return true
}

// MarkedItems returns the marked items in the order of Full.
func (l *List) MarkedItems() []Item {
	if len(l.Marks) == 0 {
		return nil
	}
	items := make([]Item, 0, len(l.Marks))
	for _, item := range l.Full {
		if l.IsMarked(item.ID) {
			items = append(items, item)
		}
	}
	return items
}

func (l *List) pruneMarks() {
	for id := range l.Marks {
		if l.FullIndex(id) < 0 {
			delete(l.Marks, id)
		}
	}
}
