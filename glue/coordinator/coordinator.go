// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package coordinator maps host callbacks onto the surface lifecycle and
// the engine thread.
package coordinator

import (
	"context"
	"errors"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/orx/orx/glue/core"
	"github.com/orx/orx/glue/core/statejson"
	"github.com/orx/orx/glue/enginethread"
	"github.com/orx/orx/glue/input"
	"github.com/orx/orx/glue/interop"
)

// Coordinator implements interop.HostCallbacks. Lifecycle callbacks are
// applied one at a time in delivery order; input callbacks only normalize
// and enqueue.
type Coordinator struct {
	lifecycle *core.Lifecycle
	thread    *enginethread.Thread
	queue     *input.Queue
	toolkit   interop.Toolkit

	rotation       interop.RotationProvider
	surfaceScale   float32
	maxControllers int

	mu sync.Mutex
}

var _ interop.HostCallbacks = (*Coordinator)(nil)

// New wires a coordinator. When the engine thread terminates the toolkit is
// asked to finish the application.
func New(lifecycle *core.Lifecycle, thread *enginethread.Thread, queue *input.Queue, toolkit interop.Toolkit) *Coordinator {
	c := &Coordinator{
		lifecycle:      lifecycle,
		thread:         thread,
		queue:          queue,
		toolkit:        toolkit,
		surfaceScale:   1,
		maxControllers: input.MaxControllers,
	}
	thread.SetOnTerminated(c.onEngineTerminated)
	return c
}

// SetRotationProvider sets the source of the display rotation used to
// orient accelerometer values.
func (c *Coordinator) SetRotationProvider(p interop.RotationProvider) *Coordinator {
	c.rotation = p
	return c
}

// SetSurfaceScale sets the factor applied to pointer coordinates.
func (c *Coordinator) SetSurfaceScale(scale float32) *Coordinator {
	if scale > 0 {
		c.surfaceScale = scale
	}
	return c
}

// SetMaxControllers sets the number of controller slots.
func (c *Coordinator) SetMaxControllers(n int) *Coordinator {
	if n > 0 {
		c.maxControllers = n
	}
	return c
}

// Run delivers toolkit callbacks until the toolkit returns.
func (c *Coordinator) Run(ctx context.Context) error {
	return c.toolkit.Run(ctx, c)
}

// Wait blocks until the engine thread exited and returns its fatal error.
// It returns immediately if the host never started the thread.
func (c *Coordinator) Wait(ctx context.Context) error {
	if !c.thread.Started() {
		return nil
	}
	return c.thread.Wait(ctx)
}

// ControllerSlots returns the controller device ids the engine should see.
func (c *Coordinator) ControllerSlots(devices []input.DeviceInfo) []int {
	return input.ControllerDeviceIDs(devices, c.maxControllers)
}

// GetInternalStateDescription returns the lifecycle and engine thread state for debugging purposes
func (c *Coordinator) GetInternalStateDescription() statejson.InternalStateDescription {
	lifecycle := c.lifecycle.GetLifecycleDescription()
	engine := c.thread.GetEngineDescription()
	res := statejson.InternalStateDescription{
		Lifecycle: &lifecycle,
		Engine:    &engine,
	}
	if err := c.thread.Err(); err != nil {
		res.FirstFatalError = err.Error()
	}
	return res
}

// OnCreate starts the engine thread, which waits for Ready before touching
// the engine.
func (c *Coordinator) OnCreate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.absorb("Create", c.lifecycle.Create())
	c.startThreadUnsafe()
}

func (c *Coordinator) OnStart() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.absorb("Start", c.lifecycle.Start())
	c.startThreadUnsafe()
}

func (c *Coordinator) OnResume() {
	c.apply("Resume", c.lifecycle.Resume)
}

func (c *Coordinator) OnPause() {
	c.apply("Pause", c.lifecycle.Pause)
}

func (c *Coordinator) OnStop() {
	c.apply("Stop", c.lifecycle.Stop)
}

// OnDestroy blocks until the engine thread released the surface, when one
// is still attached.
func (c *Coordinator) OnDestroy() {
	c.apply("Destroy", c.lifecycle.Destroy)
}

func (c *Coordinator) OnSurfaceCreated(surface interop.Surface, width, height int) {
	d := core.NewSurfaceDescriptor(surface, width, height)
	c.apply("SurfaceAvailable", func() error { return c.lifecycle.SurfaceAvailable(d) })
}

func (c *Coordinator) OnSurfaceChanged(width, height int) {
	c.apply("SurfaceResized", func() error { return c.lifecycle.SurfaceResized(width, height) })
}

// OnSurfaceDestroyed blocks until the engine thread released the surface.
func (c *Coordinator) OnSurfaceDestroyed() {
	c.apply("SurfaceLost", c.lifecycle.SurfaceLost)
}

func (c *Coordinator) OnWindowFocusChanged(focused bool) {
	c.apply("FocusChanged", func() error { return c.lifecycle.FocusChanged(focused) })
}

func (c *Coordinator) OnTouch(ev input.RawMotion) {
	c.queue.Push(input.NormalizeTouch(ev, c.surfaceScale)...)
}

// OnKey reports whether the host should consider the key handled.
func (c *Coordinator) OnKey(ev input.RawKey) bool {
	c.queue.Push(input.NormalizeKey(ev)...)
	return input.KeyConsumed(ev)
}

func (c *Coordinator) OnGenericMotion(ev input.RawAxes) {
	c.queue.Push(input.NormalizeAxes(ev)...)
}

func (c *Coordinator) OnAccelerometer(values [3]float32) {
	rotation := input.Rotation0
	if c.rotation != nil {
		rotation = c.rotation.Rotation()
	}
	c.queue.Push(input.NormalizeAccelerometer(values, rotation))
}

func (c *Coordinator) OnInputDeviceAdded(deviceID int) {
	c.queue.Push(input.NormalizeDevice(deviceID, input.DeviceAdded))
}

func (c *Coordinator) OnInputDeviceChanged(deviceID int) {
	c.queue.Push(input.NormalizeDevice(deviceID, input.DeviceChanged))
}

func (c *Coordinator) OnInputDeviceRemoved(deviceID int) {
	c.queue.Push(input.NormalizeDevice(deviceID, input.DeviceRemoved))
}

func (c *Coordinator) apply(operation string, fn func() error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.absorb(operation, fn())
}

func (c *Coordinator) startThreadUnsafe() {
	if c.thread.Started() {
		return
	}
	if err := c.thread.Start(); err != nil {
		log.WithError(err).Warn("Failed to start engine thread")
	}
}

func (c *Coordinator) absorb(operation string, err error) {
	if err == nil {
		return
	}
	fields := log.Fields{"operation": operation, "state": c.lifecycle.GetState().Name()}
	if errors.Is(err, core.ErrNotAllowed) {
		log.WithFields(fields).Debug("Host callback absorbed")
		return
	}
	log.WithFields(fields).WithError(err).Warn("Host callback failed")
}

func (c *Coordinator) onEngineTerminated(err error) {
	if err != nil {
		log.WithError(err).Error("Engine thread failed, finishing application")
	} else {
		log.Info("Engine thread exited, finishing application")
	}
	if c.toolkit != nil {
		c.toolkit.Finish(err)
	}
}
