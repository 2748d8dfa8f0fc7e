// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package enginethread runs the engine on a dedicated goroutine that owns
// the graphics context.
package enginethread

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/orx/orx/glue/core"
	"github.com/orx/orx/glue/core/statejson"
	"github.com/orx/orx/glue/fatalerror"
	"github.com/orx/orx/glue/input"
	"github.com/orx/orx/glue/interop"
	"github.com/orx/orx/glue/metrics"
)

// ErrAlreadyStarted is returned by Start after the first call.
var ErrAlreadyStarted = errors.New("engine thread already started")

// Thread drives one engine through init, the step loop and exit.
type Thread struct {
	lifecycle *core.Lifecycle
	engine    interop.Engine
	graphics  interop.GraphicsProvider
	queue     *input.Queue

	limiter      *rate.Limiter
	onTerminated func(error)

	started atomic.Bool
	phase   atomic.Int32
	frames  atomic.Uint64

	mu                sync.Mutex
	phaseLastModified time.Time
	contextID         string
	err               error

	done chan struct{}

	// owned by the engine goroutine
	ctx         interop.GraphicsContext
	initialized bool
}

// New returns an engine thread that has not been started.
func New(lifecycle *core.Lifecycle, engine interop.Engine, graphics interop.GraphicsProvider, queue *input.Queue) *Thread {
	return &Thread{
		lifecycle:         lifecycle,
		engine:            engine,
		graphics:          graphics,
		queue:             queue,
		phaseLastModified: time.Now(),
		done:              make(chan struct{}),
	}
}

// SetFrameLimit caps the step rate. Zero or negative means unlimited.
func (t *Thread) SetFrameLimit(fps float64) *Thread {
	if fps > 0 {
		t.limiter = rate.NewLimiter(rate.Limit(fps), 1)
	} else {
		t.limiter = nil
	}
	return t
}

// SetOnTerminated registers a callback invoked on the engine goroutine
// after it exited. err is nil for a normal exit.
func (t *Thread) SetOnTerminated(fn func(err error)) *Thread {
	t.onTerminated = fn
	return t
}

// Start launches the engine goroutine.
func (t *Thread) Start() error {
	if !t.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}
	t.setPhase(WaitingForReady)
	go t.run()
	return nil
}

// Started reports whether Start was called.
func (t *Thread) Started() bool {
	return t.started.Load()
}

// Done is closed once the engine thread exited.
func (t *Thread) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the engine thread exited or ctx is done.
func (t *Thread) Wait(ctx context.Context) error {
	select {
	case <-t.done:
		return t.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Err returns the fatal error that stopped the engine thread, if any.
func (t *Thread) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

// Phase returns the current phase.
func (t *Thread) Phase() Phase {
	return Phase(t.phase.Load())
}

// GetEngineDescription returns engine thread description object for debugging purposes
func (t *Thread) GetEngineDescription() statejson.EngineDescription {
	t.mu.Lock()
	defer t.mu.Unlock()
	return statejson.EngineDescription{
		Phase: statejson.StateDescription{
			Name:         t.Phase().String(),
			LastModified: t.phaseLastModified.UnixNano() / int64(time.Millisecond),
		},
		ContextID: t.contextID,
		Frames:    t.frames.Load(),
	}
}

func (t *Thread) setPhase(p Phase) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if Phase(t.phase.Load()) == p {
		return
	}
	t.phase.Store(int32(p))
	t.phaseLastModified = time.Now()
	metrics.EnginePhase.Set(float64(p))
	log.WithField("phase", p).Debug("Engine thread phase")
}

func (t *Thread) run() {
	err := t.loop()
	t.teardown(err)
}

func (t *Thread) loop() error {
	for {
		work := t.lifecycle.AwaitWork()

		if work.State == core.DestroyedStateName {
			return nil
		}

		if t.initialized {
			t.deliverNotices(work.Notices)
		}

		if work.SurfaceLost {
			t.releaseContext("surface_lost")
			t.lifecycle.ReleaseSurface()
			continue
		}

		if work.State != core.ReadyStateName {
			if !t.initialized {
				t.setPhase(WaitingForReady)
			}
			continue
		}

		if err := t.prepareContext(work); err != nil {
			return err
		}

		if !t.initialized {
			if err := t.initEngine(work.Surface); err != nil {
				return err
			}
		}

		exit, err := t.step()
		if err != nil || exit {
			return err
		}

		t.pace()
	}
}

func (t *Thread) prepareContext(work core.Work) error {
	surface := work.Surface
	if t.ctx == nil {
		ctx, err := t.graphics.NewContext(surface.Handle, surface.Width, surface.Height)
		if err != nil {
			return fatalerror.New(fatalerror.GraphicsContextError, err)
		}
		t.ctx = ctx
		t.setContextID(ctx.ID())
		metrics.GraphicsContextCreatedTotal.Inc()
		log.WithFields(log.Fields{"context": ctx.ID(), "surface": surface.String()}).Info("Graphics context created")

		if aware, ok := t.engine.(interop.GraphicsAware); ok && t.initialized {
			aware.OnContextCreated(ctx)
		}
		return nil
	}

	if work.Resized {
		if err := t.ctx.ResizeSurface(surface.Handle, surface.Width, surface.Height); err != nil {
			return fatalerror.New(fatalerror.GraphicsContextError, err)
		}
		metrics.GraphicsSurfaceRecreatedTotal.Inc()
		log.WithFields(log.Fields{"context": t.ctx.ID(), "surface": surface.String()}).Debug("Drawing surface recreated")

		if aware, ok := t.engine.(interop.ResizeAware); ok && t.initialized {
			aware.OnResize(surface.Width, surface.Height)
		}
	}
	return nil
}

func (t *Thread) initEngine(surface *core.SurfaceDescriptor) error {
	t.setPhase(Initializing)
	if err := t.engine.Init(surface.Handle, surface.Width, surface.Height); err != nil {
		return fatalerror.New(fatalerror.EngineInitError, err)
	}
	t.initialized = true
	if aware, ok := t.engine.(interop.GraphicsAware); ok {
		aware.OnContextCreated(t.ctx)
	}
	t.setPhase(Stepping)
	return nil
}

func (t *Thread) step() (bool, error) {
	for _, ev := range t.queue.Drain() {
		t.engine.OnInputEvent(ev)
	}

	result, err := t.engine.Step()
	if err != nil {
		return false, fatalerror.New(fatalerror.EngineStepError, err)
	}
	t.frames.Add(1)
	metrics.EngineFramesTotal.Inc()
	if result == interop.StepExit {
		log.Info("Engine requested exit")
		return true, nil
	}

	if err := t.ctx.Present(); err != nil {
		return false, fatalerror.New(fatalerror.GraphicsPresentError, err)
	}
	return false, nil
}

func (t *Thread) deliverNotices(notices []core.Notice) {
	for _, n := range notices {
		switch n.Kind {
		case core.NoticeBackground:
			t.engine.OnBackground()
		case core.NoticeForeground:
			t.engine.OnForeground()
		case core.NoticeFocus:
			t.engine.OnFocusChanged(n.Focused)
		}
	}
}

func (t *Thread) pace() {
	if t.limiter == nil {
		return
	}
	// the engine thread is only cancelled through the lifecycle
	_ = t.limiter.Wait(context.Background())
}

func (t *Thread) releaseContext(reason string) {
	if t.ctx == nil {
		return
	}
	if aware, ok := t.engine.(interop.GraphicsAware); ok && t.initialized {
		aware.OnContextLost()
	}
	log.WithFields(log.Fields{"context": t.ctx.ID(), "reason": reason}).Info("Graphics context released")
	t.ctx.Release()
	t.ctx = nil
	t.setContextID("")
	metrics.GraphicsContextReleasedTotal.WithLabelValues(reason).Inc()
}

func (t *Thread) setContextID(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.contextID = id
}

func (t *Thread) teardown(err error) {
	t.setPhase(TearingDown)
	if t.initialized {
		t.engine.Exit()
	}

	reason := "teardown"
	if err != nil {
		reason = "failure"
		var fatal *fatalerror.Error
		errorType := fatalerror.Unknown
		if errors.As(err, &fatal) {
			errorType = fatal.Type
		}
		metrics.EngineFatalTotal.WithLabelValues(string(errorType)).Inc()
		log.WithError(err).WithField("errorType", errorType).Error("Engine thread terminated")
	}
	t.releaseContext(reason)
	t.lifecycle.EngineExited()

	t.mu.Lock()
	t.err = err
	t.mu.Unlock()

	t.setPhase(Exited)
	close(t.done)

	if t.onTerminated != nil {
		t.onTerminated(err)
	}
}
