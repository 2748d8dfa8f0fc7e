// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import "errors"

// ErrNotAllowed returned on illegal state transition
var ErrNotAllowed = errors.New("State transition is not allowed")

// LifecycleState is lifecycle state machine interface. A state only decides
// whether an operation is legal and records the resulting facts; the
// Lifecycle derives the next state from those facts.
type LifecycleState interface {
	Create() error
	Start() error
	SurfaceAvailable(SurfaceDescriptor) error
	SurfaceResized(width, height int) error
	SurfaceLost() error
	Pause() error
	Resume() error
	Stop() error
	Destroy() error
	FocusChanged(focused bool) error
	Name() StateName
}

type disallowEveryTransitionByDefault struct{}

func (s *disallowEveryTransitionByDefault) Create() error                            { return ErrNotAllowed }
func (s *disallowEveryTransitionByDefault) Start() error                             { return ErrNotAllowed }
func (s *disallowEveryTransitionByDefault) SurfaceAvailable(SurfaceDescriptor) error { return ErrNotAllowed }
func (s *disallowEveryTransitionByDefault) SurfaceResized(int, int) error            { return ErrNotAllowed }
func (s *disallowEveryTransitionByDefault) SurfaceLost() error                       { return ErrNotAllowed }
func (s *disallowEveryTransitionByDefault) Pause() error                             { return ErrNotAllowed }
func (s *disallowEveryTransitionByDefault) Resume() error                            { return ErrNotAllowed }
func (s *disallowEveryTransitionByDefault) Stop() error                              { return ErrNotAllowed }
func (s *disallowEveryTransitionByDefault) Destroy() error                           { return ErrNotAllowed }
func (s *disallowEveryTransitionByDefault) FocusChanged(bool) error                  { return ErrNotAllowed }

// CreatedState is the initial state: the host has not created the
// application yet.
type CreatedState struct {
	disallowEveryTransitionByDefault
	lifecycle *Lifecycle
}

// Name ...
func (s *CreatedState) Name() StateName {
	return CreatedStateName
}

// Create transitions to SurfaceMissing.
func (s *CreatedState) Create() error {
	s.lifecycle.created = true
	return nil
}

// Destroy ...
func (s *CreatedState) Destroy() error {
	s.lifecycle.destroyed = true
	return nil
}

// aliveState holds the operations legal in every state between Create and
// Destroy.
type aliveState struct {
	disallowEveryTransitionByDefault
	lifecycle *Lifecycle
}

func (s *aliveState) Start() error {
	s.lifecycle.stopped = false
	return nil
}

func (s *aliveState) SurfaceAvailable(d SurfaceDescriptor) error {
	s.lifecycle.storeSurfaceUnsafe(d)
	return nil
}

func (s *aliveState) SurfaceResized(width, height int) error {
	return s.lifecycle.resizeSurfaceUnsafe(width, height)
}

func (s *aliveState) SurfaceLost() error {
	return s.lifecycle.discardSurfaceUnsafe()
}

func (s *aliveState) Pause() error {
	s.lifecycle.foreground = false
	return nil
}

func (s *aliveState) Resume() error {
	s.lifecycle.foreground = true
	return nil
}

func (s *aliveState) Stop() error {
	s.lifecycle.stopped = true
	return nil
}

func (s *aliveState) Destroy() error {
	s.lifecycle.destroyed = true
	return nil
}

func (s *aliveState) FocusChanged(focused bool) error {
	s.lifecycle.queueNoticeUnsafe(Notice{Kind: NoticeFocus, Focused: focused})
	return nil
}

// SurfaceMissingState means no host surface is attached.
type SurfaceMissingState struct {
	aliveState
}

// Name ...
func (s *SurfaceMissingState) Name() StateName {
	return SurfaceMissingStateName
}

// PausedState means a surface is attached but the application is in the
// background.
type PausedState struct {
	aliveState
}

// Name ...
func (s *PausedState) Name() StateName {
	return PausedStateName
}

// SurfacePendingResizeState means the application is foregrounded with a
// surface whose dimensions are not yet valid.
type SurfacePendingResizeState struct {
	aliveState
}

// Name ...
func (s *SurfacePendingResizeState) Name() StateName {
	return SurfacePendingResizeStateName
}

// ReadyState means rendering is legal.
type ReadyState struct {
	aliveState
}

// Name ...
func (s *ReadyState) Name() StateName {
	return ReadyStateName
}

// Pause leaves Ready and tells the engine it is entering the background.
func (s *ReadyState) Pause() error {
	s.lifecycle.foreground = false
	s.lifecycle.queueNoticeUnsafe(Notice{Kind: NoticeBackground})
	s.lifecycle.backgrounded = true
	return nil
}

// StoppedState means the application is no longer visible. Resume is not
// legal until the host starts the application again.
type StoppedState struct {
	aliveState
}

// Name ...
func (s *StoppedState) Name() StateName {
	return StoppedStateName
}

// Resume ...
func (s *StoppedState) Resume() error {
	return ErrNotAllowed
}

// DestroyedState is terminal.
type DestroyedState struct {
	disallowEveryTransitionByDefault
}

// Name ...
func (s *DestroyedState) Name() StateName {
	return DestroyedStateName
}

// Destroy is idempotent.
func (s *DestroyedState) Destroy() error {
	return nil
}
