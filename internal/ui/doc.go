// Package ui contains the Bubble Tea program that hosts the popup menu.
// The Model type focuses on message orchestration while the navigation engine
// in internal/nav owns focus movement through the menu tree.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a focused
//     function.
//   - Key presses map onto engine operations through the key map. Keys that
//     match no binding are offered to every entry's shortcut matcher.
//   - Activations reach the Model through nav.Activator and are queued on the
//     command bus (internal/ui/command); the resulting menu.ActionResult
//     decides whether the popup quits.
//
// State ownership:
//   - The engine holds the focus path. Focus and submenu-open markers live in a
//     focus.MarkerSet written by the focus adapter and read by the renderer.
//   - Submenu column offsets are recorded by the placement hook that runs
//     before a submenu is marked open.
//
// Backend interactions:
//   - A backend.Watcher streams reloaded menu definitions; the Model swaps the
//     tree between operations and re-focuses the record that held focus.
package ui
