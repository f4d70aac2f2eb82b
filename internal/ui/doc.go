// Package ui contains the Bubble Tea program that hosts the pull menu.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a focused
//     function.
//   - Mouse presses, drags and releases over the content viewport become
//     gesture samples for the pull controller (input.go). The controller
//     answers with header commands, which the header view (header.go) turns
//     into a label strip, a progress bar and a spinner.
//   - Deferred work requested by the controller or the menu order (minimize,
//     reorder notification) is scheduled as tea.Tick commands; the resulting
//     taskMsg runs the callback inside Update, so every state change happens on
//     the Bubble Tea goroutine (backend.go).
//
// Refresh flow:
//   - The controller's refresh listener queues a feed load through the
//     command bus. When the load finishes, feedLoadedMsg completes the refresh,
//     swaps the viewport content and records the refresh in the store.
//   - The debounced reorder notification persists the label order.
package ui
