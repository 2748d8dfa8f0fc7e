// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package interop

import (
	"context"
	"image"

	"github.com/orx/orx/glue/input"
)

// Surface is an opaque host drawing surface. The glue never inspects it
// beyond handing it to the graphics provider and the engine.
type Surface interface {
	Name() string
}

// FrameSink is a surface that accepts presented frames from a CPU
// graphics context.
type FrameSink interface {
	Surface
	Present(frame image.Image) error
}

// StepResult tells the engine thread whether to keep stepping.
type StepResult int

const (
	StepContinue StepResult = iota
	StepExit
)

func (r StepResult) String() string {
	if r == StepExit {
		return "Exit"
	}
	return "Continue"
}

// Engine is the contract the engine thread drives. Every method is called
// from the engine thread only.
type Engine interface {
	// Init is called once the first time rendering becomes legal.
	Init(surface Surface, width, height int) error
	// Step advances the simulation by one frame.
	Step() (StepResult, error)
	// Exit is called exactly once when Init succeeded.
	Exit()

	OnInputEvent(ev input.Event)
	OnFocusChanged(focused bool)
	OnBackground()
	OnForeground()
}

// GraphicsAware engines are told when the graphics context they draw into
// is created or lost so they can save and restore GPU state.
type GraphicsAware interface {
	OnContextCreated(ctx GraphicsContext)
	OnContextLost()
}

// ResizeAware engines are told when the drawing surface changed size.
type ResizeAware interface {
	OnResize(width, height int)
}

// GraphicsProvider creates graphics contexts against host surfaces.
type GraphicsProvider interface {
	NewContext(surface Surface, width, height int) (GraphicsContext, error)
}

// GraphicsContext is owned by the engine thread from creation to Release.
type GraphicsContext interface {
	ID() string
	// ResizeSurface recreates the drawing surface without recreating the
	// context.
	ResizeSurface(surface Surface, width, height int) error
	Present() error
	Release()
}

// HostCallbacks is the set of callbacks a toolkit delivers. Lifecycle
// callbacks are strictly ordered; input callbacks may arrive from any
// goroutine.
type HostCallbacks interface {
	OnCreate()
	OnStart()
	OnResume()
	OnPause()
	OnStop()
	OnDestroy()

	OnSurfaceCreated(surface Surface, width, height int)
	OnSurfaceChanged(width, height int)
	OnSurfaceDestroyed()
	OnWindowFocusChanged(focused bool)

	OnTouch(ev input.RawMotion)
	OnKey(ev input.RawKey) bool
	OnGenericMotion(ev input.RawAxes)
	OnAccelerometer(values [3]float32)
	OnInputDeviceAdded(deviceID int)
	OnInputDeviceChanged(deviceID int)
	OnInputDeviceRemoved(deviceID int)
}

// Toolkit is the host windowing environment. Run delivers callbacks until
// ctx is done or the host window goes away. Finish asks the host to close
// the application window after the engine terminated.
type Toolkit interface {
	Run(ctx context.Context, callbacks HostCallbacks) error
	Finish(err error)
}

// RotationProvider reports the current display rotation.
type RotationProvider interface {
	Rotation() input.Rotation
}
