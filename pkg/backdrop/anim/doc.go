// Package anim drives the backdrop's scroll animation.
//
// A [Controller] is a two-state machine (Stopped, Running). While running it
// holds exactly one pending frame request on a host-supplied [Scheduler];
// each frame advances the scroll offset by a fixed speed, wraps it back to
// zero once it reaches the viewport width, paints, and re-arms only if the
// controller is still running. Stopping cancels the pending request, and any
// callback that still fires afterwards is ignored.
//
// Two schedulers ship with the package: [ManualScheduler] for tests and
// headless frame export, and [Loop], a single-goroutine event loop that fires
// frames on a fixed interval and serializes work posted from other
// goroutines.
package anim
