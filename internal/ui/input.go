package ui

import (
	"github.com/atomicstack/tealoop/internal/logging/events"
	"github.com/atomicstack/tealoop/mvu"
)

func (m *Model) handleKeyMsg(msg mvu.Msg) mvu.Cmd {
	key := msg.(mvu.KeyMsg)
	events.UI.Key(key.String())

	switch key.String() {
	case "ctrl+c":
		return mvu.Quit
	case "esc":
		if m.list.ClearFilter() {
			events.Filter.Cleared()
			m.list.EnsureCursorVisible(m.maxVisibleItems())
			return nil
		}
		return mvu.Quit
	case "up", "ctrl+k":
		m.list.MoveCursorUp()
	case "down", "ctrl+j":
		m.list.MoveCursorDown()
	case "pgup":
		m.list.MoveCursorPageUp(m.maxVisibleItems())
	case "pgdown":
		m.list.MoveCursorPageDown(m.maxVisibleItems())
	case "home":
		m.list.MoveCursorHome()
	case "end":
		m.list.MoveCursorEnd()
	case "enter":
		return m.printSelection()
	case "ctrl+t":
		m.list.ToggleMark()
	case "tab":
		return m.toggleHeartbeat()
	case "ctrl+x":
		return m.cancelAllTimers()
	case "ctrl+p":
		return m.togglePause()
	case "ctrl+r":
		return m.runDate()
	case "ctrl+e":
		return m.openEditor()
	case "ctrl+z":
		return mvu.Suspend
	case "ctrl+l":
		return mvu.ClearScreen
	default:
		m.handleTextInput(key)
	}
	m.list.EnsureCursorVisible(m.maxVisibleItems())
	return nil
}

// handleTextInput edits the filter query. It reports whether the key
// changed anything.
func (m *Model) handleTextInput(key mvu.KeyMsg) bool {
	switch key.String() {
	case "ctrl+u":
		if !m.list.ClearFilter() {
			return false
		}
		events.Filter.Cleared()
	case "ctrl+w":
		if !m.list.DeleteFilterWordBackward() {
			return false
		}
		events.Filter.WordBackspace(m.list.Filter)
	case "backspace", "ctrl+h":
		if !m.list.DeleteFilterRuneBackward() {
			return false
		}
		events.Filter.Backspace(m.list.Filter)
	case "left":
		return m.list.MoveFilterCursorRuneBackward()
	case "right":
		return m.list.MoveFilterCursorRuneForward()
	default:
		if key.Ctrl || key.Alt {
			return false
		}
		if key.Type != mvu.KeyRunes && key.Type != mvu.KeySpace {
			return false
		}
		if !m.list.InsertFilterText(string(key.Runes)) {
			return false
		}
		events.Filter.Append(m.list.Filter)
	}
	m.errMsg = ""
	return true
}

func (m *Model) handlePasteMsg(msg mvu.Msg) mvu.Cmd {
	if m.list.InsertFilterText(string(msg.(mvu.PasteMsg))) {
		events.Filter.Append(m.list.Filter)
		m.list.EnsureCursorVisible(m.maxVisibleItems())
	}
	return nil
}

func (m *Model) handleMouseMsg(msg mvu.Msg) mvu.Cmd {
	mouse := msg.(mvu.MouseMsg)
	m.lastMouse = mouse.String()
	switch mouse.Button {
	case mvu.MouseWheelUp:
		m.list.MoveCursorUp()
	case mvu.MouseWheelDown:
		m.list.MoveCursorDown()
	case mvu.MouseButtonLeft:
		if mouse.Action != mvu.MouseActionPress {
			return nil
		}
		m.list.MoveCursorToRow(mouse.Y-listTopRow, m.maxVisibleItems())
	}
	m.list.EnsureCursorVisible(m.maxVisibleItems())
	return nil
}
