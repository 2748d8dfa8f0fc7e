// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package terminal implements a host toolkit on a tcell screen. Each cell
// shows two vertically stacked pixels with the upper half block glyph, so a
// W x H terminal is a W x 2H surface.
package terminal

import (
	"context"
	"fmt"
	"image"
	"sync"

	"github.com/gdamore/tcell/v2"
	log "github.com/sirupsen/logrus"

	"github.com/orx/orx/glue/input"
	"github.com/orx/orx/glue/interop"
)

const halfBlock = '▀'

// Toolkit drives host callbacks from terminal events.
type Toolkit struct {
	screen tcell.Screen

	mu         sync.Mutex
	generation int
	pressed    bool
	finishErr  error
	finished   chan struct{}
	finishOnce sync.Once
}

var (
	_ interop.Toolkit          = (*Toolkit)(nil)
	_ interop.RotationProvider = (*Toolkit)(nil)
)

// New returns a toolkit on the process terminal.
func New() (*Toolkit, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewWithScreen(screen), nil
}

// NewWithScreen returns a toolkit on an existing, not yet initialized,
// screen.
func NewWithScreen(screen tcell.Screen) *Toolkit {
	return &Toolkit{screen: screen, finished: make(chan struct{})}
}

// Rotation implements interop.RotationProvider. Terminals do not rotate.
func (t *Toolkit) Rotation() input.Rotation {
	return input.Rotation0
}

// Finish asks Run to wind the application down. Only the first call counts.
func (t *Toolkit) Finish(err error) {
	t.finishOnce.Do(func() {
		t.mu.Lock()
		t.finishErr = err
		t.mu.Unlock()
		close(t.finished)
	})
}

// Run initializes the screen, brings the application to the foreground and
// delivers terminal events until Escape or Ctrl-C, Finish or ctx
// cancellation. It returns the error passed to Finish.
func (t *Toolkit) Run(ctx context.Context, cb interop.HostCallbacks) error {
	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer t.screen.Fini()
	t.screen.EnableMouse()
	t.screen.EnableFocus()
	t.screen.HideCursor()

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
		case <-t.finished:
		case <-stop:
			return
		}
		_ = t.screen.PostEvent(tcell.NewEventInterrupt(nil))
	}()

	cb.OnCreate()
	cb.OnStart()
	width, height := t.screen.Size()
	cb.OnSurfaceCreated(t.newSurface(), width, height*2)
	cb.OnResume()
	cb.OnWindowFocusChanged(true)

	t.eventLoop(cb)

	cb.OnPause()
	cb.OnSurfaceDestroyed()
	cb.OnStop()
	cb.OnDestroy()

	t.mu.Lock()
	defer t.mu.Unlock()
	return t.finishErr
}

func (t *Toolkit) eventLoop(cb interop.HostCallbacks) {
	for {
		ev := t.screen.PollEvent()
		switch e := ev.(type) {
		case nil, *tcell.EventInterrupt:
			return
		case *tcell.EventResize:
			width, height := e.Size()
			log.WithFields(log.Fields{"width": width, "height": height}).Debug("Terminal resized")
			cb.OnSurfaceChanged(width, height*2)
		case *tcell.EventFocus:
			cb.OnWindowFocusChanged(e.Focused)
		case *tcell.EventKey:
			if e.Key() == tcell.KeyEscape || e.Key() == tcell.KeyCtrlC {
				return
			}
			for _, k := range rawKeys(e) {
				cb.OnKey(k)
			}
		case *tcell.EventMouse:
			if m, ok := t.rawMotion(e); ok {
				cb.OnTouch(m)
			}
		}
	}
}

// hostKeyCodes translates tcell keys into host key codes.
var hostKeyCodes = map[tcell.Key]int{
	tcell.KeyUp:         input.KeyCodeDpadUp,
	tcell.KeyDown:       input.KeyCodeDpadDown,
	tcell.KeyLeft:       input.KeyCodeDpadLeft,
	tcell.KeyRight:      input.KeyCodeDpadRight,
	tcell.KeyTab:        input.KeyCodeTab,
	tcell.KeyBacktab:    input.KeyCodeTab,
	tcell.KeyEnter:      input.KeyCodeEnter,
	tcell.KeyBackspace:  input.KeyCodeDel,
	tcell.KeyBackspace2: input.KeyCodeDel,
	tcell.KeyDelete:     input.KeyCodeForwardDel,
	tcell.KeyPgUp:       input.KeyCodePageUp,
	tcell.KeyPgDn:       input.KeyCodePageDown,
	tcell.KeyHome:       input.KeyCodeMoveHome,
	tcell.KeyEnd:        input.KeyCodeMoveEnd,
	tcell.KeyInsert:     input.KeyCodeInsert,
}

// hostKeyCode returns the host key code for a non-rune tcell key. Control
// letters map to the letter keys; anything else is KeyCodeUnknown.
func hostKeyCode(k tcell.Key) int {
	if code, ok := hostKeyCodes[k]; ok {
		return code
	}
	switch {
	case k >= tcell.KeyF1 && k <= tcell.KeyF12:
		return input.KeyCodeF1 + int(k-tcell.KeyF1)
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		return input.KeyCodeA + int(k-tcell.KeyCtrlA)
	}
	return input.KeyCodeUnknown
}

// rawKeys maps a terminal key press. Terminals report no key releases, so
// special keys produce a down and up pair; printable runes use the
// multiple-characters form.
func rawKeys(e *tcell.EventKey) []input.RawKey {
	if e.Key() == tcell.KeyRune {
		return []input.RawKey{{
			Source:     input.SourceKeyboard,
			Code:       input.KeyCodeUnknown,
			Action:     input.KeyActionMultiple,
			Characters: string(e.Rune()),
		}}
	}
	code := hostKeyCode(e.Key())
	return []input.RawKey{
		{Source: input.SourceKeyboard, Code: code, Action: input.KeyActionDown, Unicode: e.Rune()},
		{Source: input.SourceKeyboard, Code: code, Action: input.KeyActionUp, Unicode: e.Rune()},
	}
}

func (t *Toolkit) rawMotion(e *tcell.EventMouse) (input.RawMotion, bool) {
	x, y := e.Position()
	down := e.Buttons()&tcell.Button1 != 0

	t.mu.Lock()
	wasDown := t.pressed
	t.pressed = down
	t.mu.Unlock()

	var action input.MotionAction
	switch {
	case down && !wasDown:
		action = input.MotionDown
	case down:
		action = input.MotionMove
	case wasDown:
		action = input.MotionUp
	default:
		return input.RawMotion{}, false
	}

	return input.RawMotion{
		Source: input.SourceMouse,
		Action: action,
		Pointers: []input.PointerSample{{
			X:        float32(x),
			Y:        float32(y * 2),
			Pressure: 1,
		}},
	}, true
}

func (t *Toolkit) newSurface() *Surface {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.generation++
	return &Surface{name: fmt.Sprintf("terminal#%d", t.generation), screen: t.screen}
}

// Surface presents frames on the terminal screen.
type Surface struct {
	name   string
	screen tcell.Screen
}

var _ interop.FrameSink = (*Surface)(nil)

// Name implements interop.Surface.
func (s *Surface) Name() string {
	return s.name
}

// Present draws frame with two pixels per cell, clipped to the screen.
func (s *Surface) Present(frame image.Image) error {
	bounds := frame.Bounds()
	cols, rows := s.screen.Size()
	cols = min(cols, bounds.Dx())
	rows = min(rows, (bounds.Dy()+1)/2)

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			px := bounds.Min.X + x
			top := toColor(frame, px, bounds.Min.Y+2*y)
			bottom := tcell.ColorDefault
			if 2*y+1 < bounds.Dy() {
				bottom = toColor(frame, px, bounds.Min.Y+2*y+1)
			}
			style := tcell.StyleDefault.Foreground(top).Background(bottom)
			s.screen.SetContent(x, y, halfBlock, nil, style)
		}
	}
	s.screen.Show()
	return nil
}

func toColor(img image.Image, x, y int) tcell.Color {
	r, g, b, _ := img.At(x, y).RGBA()
	return tcell.NewRGBColor(int32(r>>8), int32(g>>8), int32(b>>8))
}
