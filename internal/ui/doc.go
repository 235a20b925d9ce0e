// Package ui contains the demo Model that exercises the tealoop runtime.
//
// Message flow:
//   - The runtime calls Model.Update with every message. Update looks the
//     message type up in a typed handler registry so each message kind is
//     handled by a focused function (keys, mouse, paste, timers, process
//     results).
//   - Key handling (input.go) drives the word list cursor and the filter
//     query, and maps control keys onto runtime commands: quit, suspend,
//     clear screen, interactive exec and background processes.
//   - Timers (commands.go) show both styles the runtime offers: the
//     countdown re-arms a one-shot Tick from Update, while the heartbeat is
//     a repeating EveryWithID timer toggled with CancelTimer.
//
// State ownership:
//   - The word list lives in internal/ui/state.List, which tracks items,
//     fuzzy filtering, marks and the viewport.
//   - Background actions run through internal/ui/command so every action is
//     traced from queue to result.
//
// Harness runs the model without a terminal so tests can drive it
// synchronously.
package ui
