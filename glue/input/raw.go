// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package input

// MotionAction is the masked action of a host motion event.
type MotionAction int

const (
	MotionDown MotionAction = iota
	MotionUp
	MotionMove
	MotionCancel
	MotionOutside
	MotionPointerDown
	MotionPointerUp
	MotionHoverMove
	MotionScroll
)

// KeyAction is the action of a host key event.
type KeyAction int

const (
	KeyActionDown KeyAction = iota
	KeyActionUp
	KeyActionMultiple
)

// PointerSample is one pointer of a host motion event.
type PointerSample struct {
	ID       int
	X, Y     float32
	Pressure float32
}

// RawMotion is a pointer motion event as delivered by the host.
type RawMotion struct {
	DeviceID int
	Source   Source
	Action   MotionAction
	// ActionIndex selects the pointer the action applies to for
	// down/up style actions.
	ActionIndex int
	Pointers    []PointerSample
}

// RawKey is a key event as delivered by the host.
type RawKey struct {
	DeviceID    int
	Source      Source
	Code        int
	Action      KeyAction
	RepeatCount int
	Unicode     rune
	// Characters holds the text of a KeyActionMultiple event with an
	// unknown key code.
	Characters string
}

// RawAxes is a generic motion event from a joystick-class device. Flat holds
// the per-axis dead zone reported by the device.
type RawAxes struct {
	DeviceID int
	Source   Source
	Action   MotionAction
	Values   [AxisCount]float32
	Flat     [AxisCount]float32
}

// Rotation is the display rotation reported by the host.
type Rotation int

const (
	Rotation0 Rotation = iota
	Rotation90
	Rotation180
	Rotation270
)
