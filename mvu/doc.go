// Package mvu is a Model-View-Update runtime for terminal programs.
//
// An application supplies a Model. The Program owns it: messages from the
// keyboard, the mouse, OS signals and finished commands arrive on one
// channel and are handed to Model.Update strictly in arrival order, on a
// single goroutine. Update returns the next Cmd, which the Program runs on
// its own goroutine; whatever message the Cmd returns is fed back into the
// same channel. After every update the Program renders Model.View at a
// bounded frame rate.
//
// The Program also owns the terminal. Raw mode, the alternate screen, mouse
// and focus reporting, bracketed paste and cursor visibility are switched
// through control commands such as EnterAltScreen, and are returned to
// their pre-program state on every exit path, including panics and kills.
//
// Message types are open: any Go value is a Msg, and Update tells them apart
// with a type switch.
//
//	type model struct{ n int }
//
//	type tickMsg time.Time
//
//	func (m model) Init() mvu.Cmd { return mvu.Tick(time.Second, func(t time.Time) mvu.Msg { return tickMsg(t) }) }
//
//	func (m model) Update(msg mvu.Msg) (mvu.Model, mvu.Cmd) {
//		switch msg.(type) {
//		case tickMsg:
//			m.n++
//			return m, m.Init()
//		case mvu.KeyMsg:
//			return m, mvu.Quit
//		}
//		return m, nil
//	}
//
//	func (m model) View() string { return fmt.Sprintf("%d ticks", m.n) }
package mvu
