// Package seesaw owns the seesaw state and the drop lifecycle.
//
// A drop creates a falling object. Two tasks race to land it: a
// frame-rate collision check against the (possibly tilted) bar and a
// fallback timer that forces the landing after the fall duration. The
// first one to call [Controller.Attach] wins; the second is a no-op.
// Aggregates are recomputed over attached objects only, so a falling
// object does not move the bar until it lands.
//
// The controller never renders or stores anything itself. It calls into
// a [Presenter], a [Store] and a [Cue], which lets the whole lifecycle
// run headless in tests.
//
// # Thread Safety
//
// Controller methods are safe for concurrent use. Collaborators are
// invoked without the controller lock held, except [Store] which is
// called under the lock so snapshots are persisted in order.
package seesaw
