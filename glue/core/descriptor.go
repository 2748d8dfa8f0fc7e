// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"fmt"

	"github.com/orx/orx/glue/interop"
)

// SurfaceDescriptor is an immutable view of the host surface. Resizes and
// recreations produce a new value; the generation changes only when the
// underlying surface is replaced.
type SurfaceDescriptor struct {
	Handle interop.Surface
	Width  int
	Height int

	generation uint64
}

// NewSurfaceDescriptor returns a descriptor for a surface not yet handed to
// a Lifecycle.
func NewSurfaceDescriptor(handle interop.Surface, width, height int) SurfaceDescriptor {
	return SurfaceDescriptor{Handle: handle, Width: width, Height: height}
}

// Generation identifies the surface instance. Zero means the descriptor was
// never stored by a Lifecycle.
func (d SurfaceDescriptor) Generation() uint64 {
	return d.generation
}

// HasValidSize reports whether both dimensions are positive.
func (d SurfaceDescriptor) HasValidSize() bool {
	return d.Width > 0 && d.Height > 0
}

func (d SurfaceDescriptor) withSize(width, height int) SurfaceDescriptor {
	d.Width, d.Height = width, height
	return d
}

func (d SurfaceDescriptor) String() string {
	name := "<nil>"
	if d.Handle != nil {
		name = d.Handle.Name()
	}
	return fmt.Sprintf("%s#%d(%dx%d)", name, d.generation, d.Width, d.Height)
}
