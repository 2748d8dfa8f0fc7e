// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package mockengine provides engine doubles for tests.
package mockengine

import (
	"fmt"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/orx/orx/glue/input"
	"github.com/orx/orx/glue/interop"
)

// MockEngine is a testify mock of interop.Engine.
type MockEngine struct {
	mock.Mock
}

func (m *MockEngine) Init(surface interop.Surface, width, height int) error {
	args := m.Called(surface, width, height)
	return args.Error(0)
}

func (m *MockEngine) Step() (interop.StepResult, error) {
	args := m.Called()
	return args.Get(0).(interop.StepResult), args.Error(1)
}

func (m *MockEngine) Exit()                       { m.Called() }
func (m *MockEngine) OnInputEvent(ev input.Event) { m.Called(ev) }
func (m *MockEngine) OnFocusChanged(focused bool) { m.Called(focused) }
func (m *MockEngine) OnBackground()               { m.Called() }
func (m *MockEngine) OnForeground()               { m.Called() }

// Size is a viewport size passed to Init or OnResize.
type Size struct {
	Width, Height int
}

// Recorder is an engine that records every call. It implements
// interop.GraphicsAware and interop.ResizeAware.
type Recorder struct {
	// InitErr and StepErr are returned by Init and Step.
	InitErr error
	StepErr error
	// ExitAfter makes Step return StepExit on that step; 0 never exits.
	ExitAfter int

	mu      sync.Mutex
	inits   []Size
	steps   int
	exits   int
	events  []input.Event
	batches [][]input.Event
	notices []string
	pending []input.Event
	stepped chan struct{}
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{stepped: make(chan struct{}, 1)}
}

func (r *Recorder) Init(_ interop.Surface, width, height int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inits = append(r.inits, Size{width, height})
	return r.InitErr
}

func (r *Recorder) Step() (interop.StepResult, error) {
	r.mu.Lock()
	r.steps++
	steps := r.steps
	if len(r.pending) > 0 {
		r.batches = append(r.batches, r.pending)
		r.pending = nil
	}
	r.mu.Unlock()

	select {
	case r.stepped <- struct{}{}:
	default:
	}

	if r.StepErr != nil {
		return interop.StepContinue, r.StepErr
	}
	if r.ExitAfter > 0 && steps >= r.ExitAfter {
		return interop.StepExit, nil
	}
	return interop.StepContinue, nil
}

func (r *Recorder) Exit() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.exits++
}

func (r *Recorder) OnInputEvent(ev input.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	r.pending = append(r.pending, ev)
}

func (r *Recorder) OnFocusChanged(focused bool) { r.notice(fmt.Sprintf("focus:%t", focused)) }
func (r *Recorder) OnBackground()               { r.notice("background") }
func (r *Recorder) OnForeground()               { r.notice("foreground") }

func (r *Recorder) OnContextCreated(ctx interop.GraphicsContext) {
	r.notice("context-created:" + ctx.ID())
}

func (r *Recorder) OnContextLost() { r.notice("context-lost") }

func (r *Recorder) OnResize(width, height int) {
	r.notice(fmt.Sprintf("resize:%dx%d", width, height))
}

func (r *Recorder) notice(n string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

// Stepped receives a value after a step, dropping signals nobody waited for.
func (r *Recorder) Stepped() <-chan struct{} {
	return r.stepped
}

// Inits returns the sizes passed to Init.
func (r *Recorder) Inits() []Size {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Size(nil), r.inits...)
}

// Steps returns the number of steps.
func (r *Recorder) Steps() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.steps
}

// Exits returns how many times Exit was called.
func (r *Recorder) Exits() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.exits
}

// Events returns every delivered input event in order.
func (r *Recorder) Events() []input.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]input.Event(nil), r.events...)
}

// Batches returns the input events grouped by the step that followed them.
func (r *Recorder) Batches() [][]input.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([][]input.Event(nil), r.batches...)
}

// Notices returns notifications in order: background, foreground,
// focus:<bool>, context-created:<id>, context-lost, resize:<w>x<h>.
func (r *Recorder) Notices() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.notices...)
}
