// Package lifecycle ties one backdrop visualization to a host view.
//
// A [Manager] owns the generated graph and the animation controller of one
// instance. [Manager.Mount] resolves the view's drawing surface, registers a
// resize observer, runs one synchronous resize-and-generate pass and starts
// the animation. Every later resize notification resizes the surface to the
// view's content box and regenerates the whole graph for the new bounds.
// [Manager.Unmount] stops the animation, disconnects the observer and drops
// the resource record; callbacks that still arrive afterwards are ignored.
//
// A view without a surface is not an error: Mount logs at debug level and
// leaves the manager unmounted.
//
// [Viewport] is a ready-made [View] for hosts that learn their size
// explicitly, such as a terminal window or an HTTP endpoint.
//
// Managers are not safe for concurrent use. Hosts serialize every call,
// including the scheduler's frame callbacks and resize notifications.
package lifecycle
