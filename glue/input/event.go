// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package input

import "fmt"

// AxisCount is the number of controller axes carried by a ControllerAxis event.
const AxisCount = 8

// Event is an engine-agnostic input event. The concrete types are Pointer,
// Key, Accelerometer, ControllerAxis, ControllerButton and DeviceConnectivity.
type Event interface {
	isEvent()
}

// PointerPhase is the phase of a single pointer contact.
type PointerPhase int

const (
	PointerDown PointerPhase = iota
	PointerMove
	PointerUp
)

func (p PointerPhase) String() string {
	switch p {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	}
	return fmt.Sprintf("PointerPhase(%d)", int(p))
}

// ButtonAction is the action of a key or controller button.
type ButtonAction int

const (
	ButtonDown ButtonAction = iota
	ButtonUp
)

func (a ButtonAction) String() string {
	if a == ButtonDown {
		return "down"
	}
	return "up"
}

// Connectivity describes a device list change.
type Connectivity int

const (
	DeviceAdded Connectivity = iota
	DeviceChanged
	DeviceRemoved
)

func (c Connectivity) String() string {
	switch c {
	case DeviceAdded:
		return "added"
	case DeviceChanged:
		return "changed"
	case DeviceRemoved:
		return "removed"
	}
	return fmt.Sprintf("Connectivity(%d)", int(c))
}

// Pointer is a single touch or mouse contact.
type Pointer struct {
	ID       int
	X, Y     float32
	Pressure float32
	Phase    PointerPhase
}

// Key is a keyboard or dpad key transition. Unicode is 0 for non-printable keys.
type Key struct {
	Code    int
	Action  ButtonAction
	Unicode rune
}

// Accelerometer carries screen-oriented acceleration in m/s².
type Accelerometer struct {
	X, Y, Z float32
}

// ControllerAxis carries the full axis snapshot of one controller.
type ControllerAxis struct {
	DeviceID int
	Axes     [AxisCount]float32
}

// ControllerButton is a game controller button transition.
type ControllerButton struct {
	DeviceID int
	Code     int
	Action   ButtonAction
}

// DeviceConnectivity reports an input device being added, changed or removed.
type DeviceConnectivity struct {
	DeviceID int
	Change   Connectivity
}

func (Pointer) isEvent()            {}
func (Key) isEvent()                {}
func (Accelerometer) isEvent()      {}
func (ControllerAxis) isEvent()     {}
func (ControllerButton) isEvent()   {}
func (DeviceConnectivity) isEvent() {}
