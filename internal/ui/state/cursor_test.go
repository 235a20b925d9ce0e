package state

import "testing"

func newTestList(words ...string) *List {
	return NewList(ItemsFromWords(words))
}

func TestMoveCursorWraps(t *testing.T) {
	l := newTestList("a", "b", "c")
	if !l.MoveCursorUp() {
		t.Fatalf("expected wrap to bottom")
	}
	if l.Cursor != 2 {
		t.Fatalf("expected cursor 2, got %d", l.Cursor)
	}
	if !l.MoveCursorDown() {
		t.Fatalf("expected wrap to top")
	}
	if l.Cursor != 0 {
		t.Fatalf("expected cursor 0, got %d", l.Cursor)
	}
	if newTestList().MoveCursorDown() {
		t.Fatalf("expected no movement for empty list")
	}
}

func TestMoveCursorHome(t *testing.T) {
	l := newTestList("a", "b", "c")
	l.Cursor = 2
	if !l.MoveCursorHome() {
		t.Fatalf("expected move when items exist")
	}
	if l.Cursor != 0 {
		t.Fatalf("expected cursor 0, got %d", l.Cursor)
	}

	empty := newTestList()
	empty.Cursor = 5
	if empty.MoveCursorHome() {
		t.Fatalf("expected no movement for empty level")
	}
	if empty.Cursor != 0 {
		t.Fatalf("expected cursor reset to 0, got %d", empty.Cursor)
	}
}

func TestMoveCursorEnd(t *testing.T) {
	l := newTestList("a", "b", "c")
	l.Cursor = 0
	if !l.MoveCursorEnd() {
		t.Fatalf("expected movement to end")
	}
	if l.Cursor != 2 {
		t.Fatalf("expected cursor 2, got %d", l.Cursor)
	}

	empty := newTestList()
	if empty.MoveCursorEnd() {
		t.Fatalf("expected no movement for empty level")
	}
	if empty.Cursor != 0 {
		t.Fatalf("expected cursor reset to 0, got %d", empty.Cursor)
	}
}

func TestMoveCursorPaging(t *testing.T) {
	l := newTestList("a", "b", "c", "d", "e")
	steps := []struct {
		down   bool
		page   int
		cursor int
	}{
		{true, 2, 2},
		{true, 2, 4},
		{true, 2, 0},  // at the end: wrap
		{false, 2, 4}, // at the start: wrap
		{false, 2, 2},
		{false, 10, 0},
		{true, 0, 4}, // zero page is the whole list
	}
	for i, step := range steps {
		if step.down {
			l.MoveCursorPageDown(step.page)
		} else {
			l.MoveCursorPageUp(step.page)
		}
		if l.Cursor != step.cursor {
			t.Fatalf("step %d: expected cursor %d, got %d", i, step.cursor, l.Cursor)
		}
	}
	if newTestList().MoveCursorPageDown(2) {
		t.Fatal("expected no movement for empty list")
	}
}

func TestItemAtRow(t *testing.T) {
	l := newTestList("a", "b", "c", "d", "e")
	l.ViewportOffset = 2
	if idx, ok := l.ItemAtRow(1, 2); !ok || idx != 3 {
		t.Fatalf("expected row 1 to map to 3, got %d/%v", idx, ok)
	}
	if _, ok := l.ItemAtRow(2, 2); ok {
		t.Fatal("expected row past the viewport to miss")
	}
	if _, ok := l.ItemAtRow(-1, 2); ok {
		t.Fatal("expected negative row to miss")
	}
	if _, ok := l.ItemAtRow(3, 0); ok {
		t.Fatal("expected row past the last item to miss")
	}
	if !l.MoveCursorToRow(0, 2) || l.Cursor != 2 {
		t.Fatalf("expected cursor on row 0 item, got %d", l.Cursor)
	}
}

func TestEnsureCursorVisibleAdjustsViewport(t *testing.T) {
	l := newTestList("a", "b", "c", "d", "e")
	l.Cursor = 4
	l.ViewportOffset = 0
	l.EnsureCursorVisible(2)
	if l.ViewportOffset != 3 {
		t.Fatalf("expected offset 3, got %d", l.ViewportOffset)
	}

	l.Cursor = -1
	l.EnsureCursorVisible(2)
	if l.Cursor != 0 {
		t.Fatalf("expected cursor normalized to 0, got %d", l.Cursor)
	}

	l.ViewportOffset = 4
	l.EnsureCursorVisible(0)
	if l.ViewportOffset != 0 {
		t.Fatalf("expected offset reset when maxVisible <= 0, got %d", l.ViewportOffset)
	}

	l.ViewportOffset = 4
	l.Cursor = 1
	l.EnsureCursorVisible(3)
	if l.ViewportOffset != 1 {
		t.Fatalf("expected offset aligned with cursor, got %d", l.ViewportOffset)
	}
}
