// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package fakegfx provides an in-memory graphics provider and surface for
// tests.
package fakegfx

import (
	"fmt"
	"image"
	"sync"

	"github.com/orx/orx/glue/interop"
)

// Surface is a named host surface that counts presented frames.
type Surface struct {
	ID string

	mu     sync.Mutex
	frames int
}

// NewSurface returns a surface with the given name.
func NewSurface(id string) *Surface {
	return &Surface{ID: id}
}

// Name implements interop.Surface.
func (s *Surface) Name() string { return s.ID }

// Present implements interop.FrameSink.
func (s *Surface) Present(image.Image) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames++
	return nil
}

// Frames returns the number of frames presented to the surface.
func (s *Surface) Frames() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}

// Provider records every context it creates.
type Provider struct {
	mu       sync.Mutex
	contexts []*Context

	// NewContextErr, when set, is returned by NewContext.
	NewContextErr error
	// ResizeErr and PresentErr are copied into created contexts.
	ResizeErr  error
	PresentErr error
}

// NewContext implements interop.GraphicsProvider.
func (p *Provider) NewContext(surface interop.Surface, width, height int) (interop.GraphicsContext, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.NewContextErr != nil {
		return nil, p.NewContextErr
	}
	ctx := &Context{
		id:         fmt.Sprintf("ctx-%d", len(p.contexts)+1),
		surface:    surface,
		width:      width,
		height:     height,
		resizeErr:  p.ResizeErr,
		presentErr: p.PresentErr,
	}
	p.contexts = append(p.contexts, ctx)
	return ctx, nil
}

// Contexts returns the contexts created so far.
func (p *Provider) Contexts() []*Context {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*Context(nil), p.contexts...)
}

// Context is a graphics context that records calls.
type Context struct {
	id         string
	resizeErr  error
	presentErr error

	mu       sync.Mutex
	surface  interop.Surface
	width    int
	height   int
	resizes  int
	presents int
	releases int
}

// ID implements interop.GraphicsContext.
func (c *Context) ID() string { return c.id }

// ResizeSurface implements interop.GraphicsContext.
func (c *Context) ResizeSurface(surface interop.Surface, width, height int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.resizeErr != nil {
		return c.resizeErr
	}
	c.surface, c.width, c.height = surface, width, height
	c.resizes++
	return nil
}

// Present implements interop.GraphicsContext.
func (c *Context) Present() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.presentErr != nil {
		return c.presentErr
	}
	c.presents++
	if sink, ok := c.surface.(interop.FrameSink); ok {
		return sink.Present(image.NewRGBA(image.Rect(0, 0, c.width, c.height)))
	}
	return nil
}

// Release implements interop.GraphicsContext.
func (c *Context) Release() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.releases++
}

// Size returns the current drawing surface size.
func (c *Context) Size() (int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.width, c.height
}

// Resizes returns the number of drawing surface recreations.
func (c *Context) Resizes() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.resizes
}

// Presents returns the number of successful presents.
func (c *Context) Presents() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.presents
}

// Releases returns how many times Release was called.
func (c *Context) Releases() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.releases
}
