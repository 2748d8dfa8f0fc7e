// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/orx/orx/glue/core/statejson"
	"github.com/orx/orx/glue/metrics"
)

// Lifecycle is the surface lifecycle state machine shared by host callback
// goroutines and the engine thread. All facts are guarded by one mutex whose
// condition variable is broadcast after every mutation.
type Lifecycle struct {
	mu   sync.Mutex
	cond *sync.Cond

	currentState      LifecycleState
	stateLastModified time.Time

	created      bool
	stopped      bool
	destroyed    bool
	foreground   bool
	surface      *SurfaceDescriptor
	dirty        bool
	backgrounded bool
	notices      []Notice

	lastGeneration uint64
	// generation of the surface the engine thread holds, 0 when none
	leasedGeneration uint64
	engineExited     bool

	CreatedState              LifecycleState
	SurfaceMissingState       LifecycleState
	SurfacePendingResizeState LifecycleState
	PausedState               LifecycleState
	ReadyState                LifecycleState
	StoppedState              LifecycleState
	DestroyedState            LifecycleState
}

// NewLifecycle returns a lifecycle in the Created state.
func NewLifecycle() *Lifecycle {
	l := &Lifecycle{}
	l.cond = sync.NewCond(&l.mu)

	l.CreatedState = &CreatedState{lifecycle: l}
	l.SurfaceMissingState = &SurfaceMissingState{aliveState{lifecycle: l}}
	l.SurfacePendingResizeState = &SurfacePendingResizeState{aliveState{lifecycle: l}}
	l.PausedState = &PausedState{aliveState{lifecycle: l}}
	l.ReadyState = &ReadyState{aliveState{lifecycle: l}}
	l.StoppedState = &StoppedState{aliveState{lifecycle: l}}
	l.DestroyedState = &DestroyedState{}

	l.currentState = l.CreatedState
	l.stateLastModified = time.Now()
	return l
}

// GetState returns the current state object.
func (l *Lifecycle) GetState() LifecycleState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.currentState
}

// Surface returns a copy of the current descriptor.
func (l *Lifecycle) Surface() (SurfaceDescriptor, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.surface == nil {
		return SurfaceDescriptor{}, false
	}
	return *l.surface, true
}

// Create delegates to state implementation.
func (l *Lifecycle) Create() error {
	return l.apply("Create", func(s LifecycleState) error { return s.Create() })
}

// Start delegates to state implementation.
func (l *Lifecycle) Start() error {
	return l.apply("Start", func(s LifecycleState) error { return s.Start() })
}

// SurfaceAvailable stores d as a new surface generation, replacing any
// previous surface.
func (l *Lifecycle) SurfaceAvailable(d SurfaceDescriptor) error {
	return l.apply("SurfaceAvailable", func(s LifecycleState) error { return s.SurfaceAvailable(d) })
}

// SurfaceResized replaces the surface dimensions. It returns ErrNotAllowed
// when no surface is attached.
func (l *Lifecycle) SurfaceResized(width, height int) error {
	return l.apply("SurfaceResized", func(s LifecycleState) error { return s.SurfaceResized(width, height) })
}

// SurfaceLost discards the surface and blocks until the engine thread no
// longer holds it, or has exited.
func (l *Lifecycle) SurfaceLost() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var generation uint64
	if l.surface != nil {
		generation = l.surface.generation
	}
	if err := l.applyUnsafe("SurfaceLost", func(s LifecycleState) error { return s.SurfaceLost() }); err != nil {
		return err
	}
	l.awaitSurfaceReleaseUnsafe(generation)
	return nil
}

// Pause delegates to state implementation.
func (l *Lifecycle) Pause() error {
	return l.apply("Pause", func(s LifecycleState) error { return s.Pause() })
}

// Resume delegates to state implementation. Reaching Ready queues a
// foreground notice only when a background notice was queued before it, so
// the engine always sees the two in pairs. Resume after Stop and Start
// without an intervening Pause from Ready queues nothing.
func (l *Lifecycle) Resume() error {
	return l.apply("Resume", func(s LifecycleState) error { return s.Resume() })
}

// Stop delegates to state implementation.
func (l *Lifecycle) Stop() error {
	return l.apply("Stop", func(s LifecycleState) error { return s.Stop() })
}

// FocusChanged queues a focus notice for the engine.
func (l *Lifecycle) FocusChanged(focused bool) error {
	return l.apply("FocusChanged", func(s LifecycleState) error { return s.FocusChanged(focused) })
}

// Destroy transitions to Destroyed and wakes every waiter. A surface still
// attached is lost first, with the same rendezvous as SurfaceLost.
// Destroy is idempotent.
func (l *Lifecycle) Destroy() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.surface != nil && l.currentState != l.DestroyedState {
		generation := l.surface.generation
		if err := l.applyUnsafe("SurfaceLost", func(s LifecycleState) error { return s.SurfaceLost() }); err == nil {
			l.awaitSurfaceReleaseUnsafe(generation)
		}
	}

	err := l.applyUnsafe("Destroy", func(s LifecycleState) error { return s.Destroy() })
	l.cond.Broadcast()
	return err
}

// AwaitWork blocks the engine thread until there is something to act on:
// the lifecycle was destroyed, the leased surface was lost, notices are
// pending, or rendering is legal. Ready work leases the current surface.
func (l *Lifecycle) AwaitWork() Work {
	l.mu.Lock()
	defer l.mu.Unlock()

	for !l.hasWorkUnsafe() {
		l.cond.Wait()
	}

	work := Work{State: l.currentState.Name()}
	if l.destroyed {
		return work
	}

	work.Notices = l.notices
	l.notices = nil

	if l.leasedSurfaceLostUnsafe() {
		work.SurfaceLost = true
		return work
	}

	if l.currentState == l.ReadyState {
		surface := *l.surface
		work.Surface = &surface
		work.Resized = l.dirty
		l.dirty = false
		l.leasedGeneration = surface.generation
	}
	return work
}

// ReleaseSurface acknowledges that the engine thread dropped every reference
// to the leased surface.
func (l *Lifecycle) ReleaseSurface() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.leasedGeneration = 0
	l.cond.Broadcast()
}

// EngineExited records that the engine thread terminated. Pending and
// future surface rendezvous return immediately.
func (l *Lifecycle) EngineExited() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.engineExited = true
	l.leasedGeneration = 0
	l.cond.Broadcast()
}

// GetLifecycleDescription returns lifecycle description object for debugging purposes
func (l *Lifecycle) GetLifecycleDescription() statejson.LifecycleDescription {
	l.mu.Lock()
	defer l.mu.Unlock()
	res := statejson.LifecycleDescription{
		State: statejson.StateDescription{
			Name:         string(l.currentState.Name()),
			LastModified: l.stateLastModified.UnixNano() / int64(time.Millisecond),
		},
		Foreground:     l.foreground,
		SurfaceDirty:   l.dirty,
		LeasedSurface:  l.leasedGeneration,
		PendingNotices: len(l.notices),
	}
	if l.surface != nil {
		res.Surface = &statejson.SurfaceDescription{
			Width:      l.surface.Width,
			Height:     l.surface.Height,
			Generation: l.surface.generation,
		}
		if l.surface.Handle != nil {
			res.Surface.Name = l.surface.Handle.Name()
		}
	}
	return res
}

func (l *Lifecycle) apply(operation string, fn func(LifecycleState) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.applyUnsafe(operation, fn)
}

func (l *Lifecycle) applyUnsafe(operation string, fn func(LifecycleState) error) error {
	if err := fn(l.currentState); err != nil {
		metrics.LifecycleRejectedTotal.WithLabelValues(string(l.currentState.Name()), operation).Inc()
		return err
	}
	l.setStateUnsafe(l.deriveStateUnsafe())

	if l.currentState == l.ReadyState && l.backgrounded {
		l.backgrounded = false
		l.queueNoticeUnsafe(Notice{Kind: NoticeForeground})
	}

	l.cond.Broadcast()
	return nil
}

func (l *Lifecycle) deriveStateUnsafe() LifecycleState {
	switch {
	case l.destroyed:
		return l.DestroyedState
	case !l.created:
		return l.CreatedState
	case l.stopped:
		return l.StoppedState
	case l.surface == nil:
		return l.SurfaceMissingState
	case !l.foreground:
		return l.PausedState
	case !l.surface.HasValidSize():
		return l.SurfacePendingResizeState
	default:
		return l.ReadyState
	}
}

func (l *Lifecycle) setStateUnsafe(state LifecycleState) {
	if state == l.currentState {
		return
	}
	from := l.currentState.Name()
	l.currentState = state
	l.stateLastModified = time.Now()

	metrics.LifecycleTransitionsTotal.WithLabelValues(string(from), string(state.Name())).Inc()
	log.WithFields(log.Fields{"from": from, "to": state.Name()}).Debug("Lifecycle transition")
}

func (l *Lifecycle) storeSurfaceUnsafe(d SurfaceDescriptor) {
	l.lastGeneration++
	d.generation = l.lastGeneration
	l.surface = &d
	l.dirty = false
	log.WithField("surface", d.String()).Debug("Surface available")
}

func (l *Lifecycle) resizeSurfaceUnsafe(width, height int) error {
	if l.surface == nil {
		return ErrNotAllowed
	}
	resized := l.surface.withSize(width, height)
	l.surface = &resized
	l.dirty = true
	return nil
}

func (l *Lifecycle) discardSurfaceUnsafe() error {
	if l.surface == nil {
		return ErrNotAllowed
	}
	log.WithField("surface", l.surface.String()).Debug("Surface lost")
	l.surface = nil
	l.dirty = false
	return nil
}

func (l *Lifecycle) queueNoticeUnsafe(n Notice) {
	l.notices = append(l.notices, n)
}

func (l *Lifecycle) leasedSurfaceLostUnsafe() bool {
	if l.leasedGeneration == 0 {
		return false
	}
	return l.surface == nil || l.surface.generation != l.leasedGeneration
}

func (l *Lifecycle) hasWorkUnsafe() bool {
	return l.destroyed ||
		l.leasedSurfaceLostUnsafe() ||
		len(l.notices) > 0 ||
		l.currentState == l.ReadyState
}

func (l *Lifecycle) awaitSurfaceReleaseUnsafe(generation uint64) {
	if generation == 0 || l.leasedGeneration != generation || l.engineExited {
		return
	}
	start := time.Now()
	for l.leasedGeneration == generation && !l.engineExited {
		l.cond.Wait()
	}
	metrics.SurfaceRendezvousSeconds.Observe(time.Since(start).Seconds())
}
