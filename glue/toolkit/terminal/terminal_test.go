// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package terminal

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"sync"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/orx/orx/glue/input"
	"github.com/orx/orx/glue/interop"
)

type recordingCallbacks struct {
	mu      sync.Mutex
	calls   []string
	touches []input.RawMotion
	keys    []input.RawKey
	surface interop.Surface
}

func (r *recordingCallbacks) record(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *recordingCallbacks) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func (r *recordingCallbacks) OnCreate()  { r.record("create") }
func (r *recordingCallbacks) OnStart()   { r.record("start") }
func (r *recordingCallbacks) OnResume()  { r.record("resume") }
func (r *recordingCallbacks) OnPause()   { r.record("pause") }
func (r *recordingCallbacks) OnStop()    { r.record("stop") }
func (r *recordingCallbacks) OnDestroy() { r.record("destroy") }

func (r *recordingCallbacks) OnSurfaceCreated(surface interop.Surface, width, height int) {
	r.mu.Lock()
	r.surface = surface
	r.mu.Unlock()
	r.record("surface-created:%dx%d", width, height)
}

func (r *recordingCallbacks) OnSurfaceChanged(width, height int) {
	r.record("surface-changed:%dx%d", width, height)
}

func (r *recordingCallbacks) OnSurfaceDestroyed()               { r.record("surface-destroyed") }
func (r *recordingCallbacks) OnWindowFocusChanged(focused bool) { r.record("focus:%t", focused) }

func (r *recordingCallbacks) OnTouch(ev input.RawMotion) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.touches = append(r.touches, ev)
}

func (r *recordingCallbacks) OnKey(ev input.RawKey) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keys = append(r.keys, ev)
	return true
}

func (r *recordingCallbacks) OnGenericMotion(input.RawAxes) {}
func (r *recordingCallbacks) OnAccelerometer([3]float32)    {}
func (r *recordingCallbacks) OnInputDeviceAdded(int)        {}
func (r *recordingCallbacks) OnInputDeviceChanged(int)      {}
func (r *recordingCallbacks) OnInputDeviceRemoved(int)      {}

func (r *recordingCallbacks) Touches() []input.RawMotion {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]input.RawMotion(nil), r.touches...)
}

func (r *recordingCallbacks) Keys() []input.RawKey {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]input.RawKey(nil), r.keys...)
}

func startToolkit(t *testing.T, ctx context.Context) (tcell.SimulationScreen, *Toolkit, *recordingCallbacks, <-chan error) {
	screen := tcell.NewSimulationScreen("UTF-8")
	tk := NewWithScreen(screen)
	cb := &recordingCallbacks{}
	done := make(chan error, 1)
	go func() { done <- tk.Run(ctx, cb) }()

	require.Eventually(t, func() bool {
		calls := cb.Calls()
		return len(calls) >= 5
	}, 2*time.Second, time.Millisecond)
	return screen, tk, cb, done
}

func awaitRun(t *testing.T, done <-chan error) error {
	select {
	case err := <-done:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("toolkit did not return")
	}
	return nil
}

var shutdownCalls = []string{"pause", "surface-destroyed", "stop", "destroy"}

func TestRunStartupAndEscapeShutdown(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	screen, _, cb, done := startToolkit(t, context.Background())
	width, height := screen.Size()

	screen.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)
	assert.NoError(t, awaitRun(t, done))

	want := append([]string{
		"create",
		"start",
		fmt.Sprintf("surface-created:%dx%d", width, height*2),
		"resume",
		"focus:true",
	}, shutdownCalls...)
	assert.Equal(t, want, cb.Calls())
}

func TestFinishStopsRunWithError(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	_, tk, cb, done := startToolkit(t, context.Background())
	cause := errors.New("engine failed")
	tk.Finish(cause)
	tk.Finish(nil)

	assert.Equal(t, cause, awaitRun(t, done))
	calls := cb.Calls()
	assert.Equal(t, shutdownCalls, calls[len(calls)-len(shutdownCalls):])
}

func TestContextCancellationStopsRun(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	ctx, cancel := context.WithCancel(context.Background())
	_, _, _, done := startToolkit(t, ctx)
	cancel()
	assert.NoError(t, awaitRun(t, done))
}

func TestResizeFocusKeysAndMouse(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	screen, _, cb, done := startToolkit(t, context.Background())

	screen.SetSize(40, 12)
	require.NoError(t, screen.PostEvent(tcell.NewEventResize(40, 12)))
	require.NoError(t, screen.PostEvent(tcell.NewEventFocus(false)))
	screen.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)
	screen.InjectKey(tcell.KeyEnter, '\r', tcell.ModNone)
	screen.InjectMouse(3, 2, tcell.Button1, tcell.ModNone)
	screen.InjectMouse(4, 2, tcell.Button1, tcell.ModNone)
	screen.InjectMouse(4, 2, tcell.ButtonNone, tcell.ModNone)
	screen.InjectMouse(9, 9, tcell.ButtonNone, tcell.ModNone)

	require.Eventually(t, func() bool { return len(cb.Touches()) == 3 }, 2*time.Second, time.Millisecond)
	screen.InjectKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)
	require.NoError(t, awaitRun(t, done))

	assert.Contains(t, cb.Calls(), "surface-changed:40x24")
	assert.Contains(t, cb.Calls(), "focus:false")

	keys := cb.Keys()
	require.Len(t, keys, 3)
	assert.Equal(t, input.KeyActionMultiple, keys[0].Action)
	assert.Equal(t, "x", keys[0].Characters)
	assert.Equal(t, input.KeyActionDown, keys[1].Action)
	assert.Equal(t, input.KeyActionUp, keys[2].Action)
	assert.Equal(t, input.KeyCodeEnter, keys[1].Code)

	touches := cb.Touches()
	assert.Equal(t, input.MotionDown, touches[0].Action)
	assert.Equal(t, input.PointerSample{X: 3, Y: 4, Pressure: 1}, touches[0].Pointers[0])
	assert.Equal(t, input.MotionMove, touches[1].Action)
	assert.Equal(t, input.MotionUp, touches[2].Action)
}

func TestHostKeyCodesAvoidReservedCodes(t *testing.T) {
	tests := []struct {
		key  tcell.Key
		want int
	}{
		{tcell.KeyUp, input.KeyCodeDpadUp},
		{tcell.KeyEnter, input.KeyCodeEnter},
		{tcell.KeyBackspace2, input.KeyCodeDel},
		{tcell.KeyF1, input.KeyCodeF1},
		{tcell.KeyF12, input.KeyCodeF12},
		{tcell.KeyCtrlA, input.KeyCodeA},
		{tcell.KeyCtrlD, input.KeyCodeA + 3},
		{tcell.KeyCtrlX, input.KeyCodeA + 23},
		{tcell.KeyCtrlY, input.KeyCodeA + 24},
		{tcell.KeyNUL, input.KeyCodeUnknown},
	}
	for _, tt := range tests {
		code := hostKeyCode(tt.key)
		assert.Equal(t, tt.want, code, tcell.KeyNames[tt.key])
		assert.NotEqual(t, input.KeyCodeBack, code)
		assert.NotEqual(t, input.KeyCodeVolumeUp, code)
		assert.NotEqual(t, input.KeyCodeVolumeDown, code)
	}

	for _, k := range rawKeys(tcell.NewEventKey(tcell.KeyCtrlX, 0, tcell.ModCtrl)) {
		assert.True(t, input.KeyConsumed(k))
		events := input.NormalizeKey(k)
		require.Len(t, events, 1)
		assert.IsType(t, input.Key{}, events[0])
	}
}

func TestSurfacePresentsHalfBlocks(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(4, 2)

	frame := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		frame.Set(x, 0, color.RGBA{R: 255, A: 255})
		frame.Set(x, 1, color.RGBA{B: 255, A: 255})
	}

	s := &Surface{name: "terminal#1", screen: screen}
	require.NoError(t, s.Present(frame))

	cells, width, _ := screen.GetContents()
	require.Equal(t, 4, width)
	assert.Equal(t, []rune{halfBlock}, cells[0].Runes)
	fg, bg, _ := cells[0].Style.Decompose()
	assert.Equal(t, tcell.NewRGBColor(255, 0, 0), fg)
	assert.Equal(t, tcell.NewRGBColor(0, 0, 255), bg)
}

func TestRotation(t *testing.T) {
	assert.Equal(t, input.Rotation0, NewWithScreen(tcell.NewSimulationScreen("UTF-8")).Rotation())
}
