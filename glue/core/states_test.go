// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orx/orx/glue/testdata/fakegfx"
)

func descriptor(name string, width, height int) SurfaceDescriptor {
	return NewSurfaceDescriptor(fakegfx.NewSurface(name), width, height)
}

func newCreatedLifecycle(t *testing.T) *Lifecycle {
	l := NewLifecycle()
	require.NoError(t, l.Create())
	return l
}

func newReadyLifecycle(t *testing.T) *Lifecycle {
	l := newCreatedLifecycle(t)
	require.NoError(t, l.SurfaceAvailable(descriptor("main", 800, 480)))
	require.NoError(t, l.Resume())
	require.Equal(t, l.ReadyState, l.GetState())
	return l
}

func TestLifecycleStateTransitionsFromCreatedState(t *testing.T) {
	l := NewLifecycle()
	assert.Equal(t, l.CreatedState, l.GetState())
	// Created -> Start
	assert.Equal(t, ErrNotAllowed, l.Start())
	assert.Equal(t, l.CreatedState, l.GetState())
	// Created -> Resume
	assert.Equal(t, ErrNotAllowed, l.Resume())
	assert.Equal(t, l.CreatedState, l.GetState())
	// Created -> SurfaceAvailable
	assert.Equal(t, ErrNotAllowed, l.SurfaceAvailable(descriptor("main", 1, 1)))
	assert.Equal(t, l.CreatedState, l.GetState())
	// Created -> SurfaceMissing
	assert.NoError(t, l.Create())
	assert.Equal(t, l.SurfaceMissingState, l.GetState())
}

func TestLifecycleStateTransitionsFromSurfaceMissingState(t *testing.T) {
	l := newCreatedLifecycle(t)
	// SurfaceMissing -> Create
	assert.Equal(t, ErrNotAllowed, l.Create())
	// resize without a surface is absorbed
	assert.Equal(t, ErrNotAllowed, l.SurfaceResized(800, 480))
	assert.Equal(t, l.SurfaceMissingState, l.GetState())
	// SurfaceMissing -> SurfaceLost
	assert.Equal(t, ErrNotAllowed, l.SurfaceLost())
	assert.Equal(t, l.SurfaceMissingState, l.GetState())
	// foreground without surface stays SurfaceMissing
	assert.NoError(t, l.Resume())
	assert.Equal(t, l.SurfaceMissingState, l.GetState())
	// SurfaceMissing -> Ready
	assert.NoError(t, l.SurfaceAvailable(descriptor("main", 800, 480)))
	assert.Equal(t, l.ReadyState, l.GetState())
}

func TestLifecycleStateTransitionsFromPausedState(t *testing.T) {
	l := newCreatedLifecycle(t)
	// surface while in background retains the descriptor
	assert.NoError(t, l.SurfaceAvailable(descriptor("main", 800, 480)))
	assert.Equal(t, l.PausedState, l.GetState())
	d, ok := l.Surface()
	require.True(t, ok)
	assert.Equal(t, 800, d.Width)
	// Paused -> Paused
	assert.NoError(t, l.Pause())
	assert.Equal(t, l.PausedState, l.GetState())
	// Paused -> Ready
	assert.NoError(t, l.Resume())
	assert.Equal(t, l.ReadyState, l.GetState())
}

func TestLifecycleStateTransitionsFromReadyState(t *testing.T) {
	l := newReadyLifecycle(t)
	// Ready -> SurfacePendingResize
	assert.NoError(t, l.SurfaceResized(0, 0))
	assert.Equal(t, l.SurfacePendingResizeState, l.GetState())
	// SurfacePendingResize -> Ready
	assert.NoError(t, l.SurfaceResized(640, 360))
	assert.Equal(t, l.ReadyState, l.GetState())
	// Ready -> Paused
	assert.NoError(t, l.Pause())
	assert.Equal(t, l.PausedState, l.GetState())
	// Paused -> SurfaceMissing
	assert.NoError(t, l.SurfaceLost())
	assert.Equal(t, l.SurfaceMissingState, l.GetState())
}

func TestLifecycleStateTransitionsFromStoppedState(t *testing.T) {
	l := newReadyLifecycle(t)
	require.NoError(t, l.Pause())
	// Paused -> Stopped
	assert.NoError(t, l.Stop())
	assert.Equal(t, l.StoppedState, l.GetState())
	// Stopped -> Resume
	assert.Equal(t, ErrNotAllowed, l.Resume())
	assert.Equal(t, l.StoppedState, l.GetState())
	// surface loss while stopped
	assert.NoError(t, l.SurfaceLost())
	assert.Equal(t, l.StoppedState, l.GetState())
	// Stopped -> SurfaceMissing
	assert.NoError(t, l.Start())
	assert.Equal(t, l.SurfaceMissingState, l.GetState())
}

func TestLifecycleStateTransitionsFromDestroyedState(t *testing.T) {
	l := newReadyLifecycle(t)
	assert.NoError(t, l.Destroy())
	assert.Equal(t, l.DestroyedState, l.GetState())
	// Destroy is idempotent
	assert.NoError(t, l.Destroy())
	assert.Equal(t, l.DestroyedState, l.GetState())

	assert.Equal(t, ErrNotAllowed, l.Create())
	assert.Equal(t, ErrNotAllowed, l.Start())
	assert.Equal(t, ErrNotAllowed, l.Resume())
	assert.Equal(t, ErrNotAllowed, l.Pause())
	assert.Equal(t, ErrNotAllowed, l.Stop())
	assert.Equal(t, ErrNotAllowed, l.SurfaceAvailable(descriptor("late", 1, 1)))
	assert.Equal(t, ErrNotAllowed, l.SurfaceResized(1, 1))
	assert.Equal(t, ErrNotAllowed, l.SurfaceLost())
	assert.Equal(t, ErrNotAllowed, l.FocusChanged(true))
	assert.Equal(t, l.DestroyedState, l.GetState())
}

func TestDestroyBeforeCreate(t *testing.T) {
	l := NewLifecycle()
	assert.NoError(t, l.Destroy())
	assert.Equal(t, l.DestroyedState, l.GetState())
}

func TestResumeWithInvalidDimensionsPendsResize(t *testing.T) {
	l := newCreatedLifecycle(t)
	require.NoError(t, l.SurfaceAvailable(descriptor("main", 0, 0)))
	assert.NoError(t, l.Resume())
	assert.Equal(t, l.SurfacePendingResizeState, l.GetState())
}

func TestSurfaceGenerations(t *testing.T) {
	l := newCreatedLifecycle(t)
	require.NoError(t, l.SurfaceAvailable(descriptor("a", 10, 10)))
	first, _ := l.Surface()

	require.NoError(t, l.SurfaceResized(20, 20))
	resized, _ := l.Surface()
	assert.Equal(t, first.Generation(), resized.Generation())
	assert.Equal(t, 20, resized.Width)
	assert.Equal(t, 10, first.Width, "descriptors are values")

	require.NoError(t, l.SurfaceAvailable(descriptor("b", 10, 10)))
	replaced, _ := l.Surface()
	assert.Greater(t, replaced.Generation(), first.Generation())
}
