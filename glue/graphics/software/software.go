// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package software implements a CPU graphics provider on top of gg. Frames
// are presented to surfaces that implement interop.FrameSink.
package software

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gogpu/gg"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/orx/orx/glue/interop"
)

// ErrInvalidSize is returned for non-positive surface dimensions.
var ErrInvalidSize = errors.New("surface dimensions must be positive")

// Provider creates software graphics contexts.
type Provider struct {
	snapshotPath string
}

// NewProvider returns a provider. When snapshotPath is not empty, every
// context writes its last frame there as PNG on Release.
func NewProvider(snapshotPath string) *Provider {
	return &Provider{snapshotPath: snapshotPath}
}

// NewContext implements interop.GraphicsProvider.
func (p *Provider) NewContext(surface interop.Surface, width, height int) (interop.GraphicsContext, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	if surface == nil {
		return nil, errors.New("no surface")
	}
	return &Context{
		id:           uuid.New().String(),
		surface:      surface,
		canvas:       gg.NewContext(width, height),
		snapshotPath: p.snapshotPath,
	}, nil
}

// Context is a gg canvas bound to a host surface.
type Context struct {
	id           string
	surface      interop.Surface
	canvas       *gg.Context
	snapshotPath string
	released     bool
}

// Canvas returns the drawing context the engine renders into.
func (c *Context) Canvas() *gg.Context {
	return c.canvas
}

// ID implements interop.GraphicsContext.
func (c *Context) ID() string {
	return c.id
}

// ResizeSurface reallocates the canvas pixels for the new size and rebinds
// the surface.
func (c *Context) ResizeSurface(surface interop.Surface, width, height int) error {
	if err := c.canvas.Resize(width, height); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSize, err)
	}
	c.surface = surface
	return nil
}

// Present hands the current canvas image to the surface.
func (c *Context) Present() error {
	if c.released {
		return errors.New("present on released context")
	}
	sink, ok := c.surface.(interop.FrameSink)
	if !ok {
		return nil
	}
	return sink.Present(c.canvas.Image())
}

// Release closes the canvas. It is safe to call more than once.
func (c *Context) Release() {
	if c.released {
		return
	}
	c.released = true
	if c.snapshotPath != "" {
		if err := c.writeSnapshot(); err != nil {
			log.WithError(err).WithField("path", c.snapshotPath).Warn("Failed to write frame snapshot")
		}
	}
	if err := c.canvas.Close(); err != nil {
		log.WithError(err).WithField("context", c.id).Warn("Failed to close canvas")
	}
	c.surface = nil
}

func (c *Context) writeSnapshot() error {
	f, err := os.Create(filepath.Clean(c.snapshotPath))
	if err != nil {
		return err
	}
	if err := c.canvas.EncodePNG(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
