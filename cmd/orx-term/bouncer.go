// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/gogpu/gg"
	log "github.com/sirupsen/logrus"

	"github.com/orx/orx/glue/graphics/software"
	"github.com/orx/orx/glue/input"
	"github.com/orx/orx/glue/interop"
)

var (
	focusedBackground   = gg.RGB(0.08, 0.09, 0.14)
	unfocusedBackground = gg.RGB(0.18, 0.18, 0.18)
)

// bouncer is a demo engine: a ball bouncing inside the surface. Pointer
// presses move the ball, arrow keys push it and 'q' quits.
type bouncer struct {
	canvas *gg.Context

	width, height float64
	x, y          float64
	vx, vy        float64
	radius        float64
	background    gg.RGBA
	quit          bool
}

var (
	_ interop.Engine        = (*bouncer)(nil)
	_ interop.GraphicsAware = (*bouncer)(nil)
	_ interop.ResizeAware   = (*bouncer)(nil)
)

func newBouncer() *bouncer {
	return &bouncer{vx: 1.5, vy: 1, background: focusedBackground}
}

func (b *bouncer) Init(surface interop.Surface, width, height int) error {
	b.resize(width, height)
	b.x, b.y = b.width/2, b.height/2
	log.WithFields(log.Fields{"surface": surface.Name(), "width": width, "height": height}).Info("Demo engine initialized")
	return nil
}

func (b *bouncer) Step() (interop.StepResult, error) {
	if b.quit {
		return interop.StepExit, nil
	}

	b.x += b.vx
	b.y += b.vy
	if b.x < b.radius || b.x > b.width-b.radius {
		b.vx = -b.vx
		b.x = clamp(b.x, b.radius, b.width-b.radius)
	}
	if b.y < b.radius || b.y > b.height-b.radius {
		b.vy = -b.vy
		b.y = clamp(b.y, b.radius, b.height-b.radius)
	}

	if b.canvas == nil {
		return interop.StepContinue, nil
	}
	b.canvas.ClearWithColor(b.background)
	b.canvas.SetRGB(0.95, 0.55, 0.2)
	b.canvas.DrawCircle(b.x, b.y, b.radius)
	if err := b.canvas.Fill(); err != nil {
		return interop.StepContinue, err
	}
	return interop.StepContinue, nil
}

func (b *bouncer) Exit() {
	log.Info("Demo engine exited")
}

func (b *bouncer) OnInputEvent(ev input.Event) {
	switch e := ev.(type) {
	case input.Pointer:
		if e.Phase != input.PointerUp {
			b.x, b.y = float64(e.X), float64(e.Y)
		}
	case input.Key:
		if e.Action != input.ButtonDown {
			return
		}
		switch e.Unicode {
		case 'q', 'Q':
			b.quit = true
		case '+':
			b.radius++
		case '-':
			b.radius = max(1, b.radius-1)
		}
	}
}

func (b *bouncer) OnFocusChanged(focused bool) {
	if focused {
		b.background = focusedBackground
	} else {
		b.background = unfocusedBackground
	}
}

func (b *bouncer) OnBackground() { log.Debug("Demo engine in background") }
func (b *bouncer) OnForeground() { log.Debug("Demo engine in foreground") }

func (b *bouncer) OnContextCreated(ctx interop.GraphicsContext) {
	if sc, ok := ctx.(*software.Context); ok {
		b.canvas = sc.Canvas()
	}
}

func (b *bouncer) OnContextLost() {
	b.canvas = nil
}

func (b *bouncer) OnResize(width, height int) {
	b.resize(width, height)
	b.x = clamp(b.x, b.radius, b.width-b.radius)
	b.y = clamp(b.y, b.radius, b.height-b.radius)
}

func (b *bouncer) resize(width, height int) {
	b.width, b.height = float64(width), float64(height)
	b.radius = max(2, min(b.width, b.height)/8)
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		return lo
	}
	return max(lo, min(v, hi))
}
