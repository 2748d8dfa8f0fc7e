// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

/*
Package core provides the surface lifecycle state machine and the
synchronization protocol between host callbacks and the engine thread.

# States

Lifecycle implements state object design pattern. Every state embeds a
default that rejects all operations with ErrNotAllowed and overrides the
operations it allows:

	type LifecycleState interface {
		Create() error
		Start() error
		SurfaceAvailable(SurfaceDescriptor) error
		SurfaceResized(width, height int) error
		SurfaceLost() error
		Pause() error
		Resume() error
		Stop() error
		Destroy() error
		FocusChanged(focused bool) error
	}

After an allowed operation the next state is derived from the recorded
facts, in order of precedence:

	Destroyed > Created > Stopped > SurfaceMissing > Paused > SurfacePendingResize > Ready

# Surface lease

The engine thread calls AwaitWork in its loop. Ready work leases the
current surface generation to the engine thread. When the host loses or
replaces the surface, AwaitWork reports SurfaceLost and the engine thread
answers with ReleaseSurface once its graphics context is gone.

[host]   l.SurfaceLost()
[host]   // blocked until the engine thread releases the surface

[engine] w := l.AwaitWork() // w.SurfaceLost
[engine] // release graphics context
[engine] l.ReleaseSurface()

[host]   // not blocked

EngineExited releases any pending rendezvous so that a host callback never
waits for an engine thread that is gone.
*/
package core
