// Package present turns controller notifications into something a front
// end can draw.
//
// [Queue] implements seesaw.Presenter by buffering events on a channel so
// timer goroutines never wait on a render loop. [Scene] folds those
// events into a drawable model: resting objects, falling objects with
// their animation clock, the eased bar angle and the event log.
package present
