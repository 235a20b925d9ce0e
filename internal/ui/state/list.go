package state

// List holds the filterable word list shown by the demo: the full item set,
// the visible subset, the filter query, the cursor and the scroll offset.
type List struct {
	Items          []Item
	Full           []Item
	Filter         string
	FilterCursor   int
	Cursor         int
	LastCursor     int
	Marks          map[string]struct{}
	ViewportOffset int
}

// NewList constructs a List over items.
func NewList(items []Item) *List {
	l := &List{
		LastCursor: -1,
		Marks:      make(map[string]struct{}),
	}
	l.UpdateItems(items)
	return l
}

// Current returns the item under the cursor.
func (l *List) Current() (Item, bool) {
	if l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return Item{}, false
	}
	return l.Items[l.Cursor], true
}

// FullIndex returns the position of id in Full, or -1.
func (l *List) FullIndex(id string) int {
	for i, item := range l.Full {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// IndexOf returns the visible index for a given item identifier.
func (l *List) IndexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, item := range l.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// UpdateItems replaces the list contents while preserving marks and
// the scroll offset where possible.
func (l *List) UpdateItems(items []Item) {
	prevOffset := l.ViewportOffset
	l.Full = CloneItems(items)
	l.pruneMarks()
	l.applyFilter()
	if len(l.Items) == 0 {
		l.ViewportOffset = 0
		return
	}
	if prevOffset < 0 {
		prevOffset = 0
	}
	if prevOffset > len(l.Items)-1 {
		l.ViewportOffset = 0
		return
	}
	l.ViewportOffset = prevOffset
}
