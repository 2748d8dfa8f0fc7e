// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package input

import "math"

// NormalizeTouch maps a pointer motion event to pointer events. Coordinates
// are multiplied by scale. Move and cancel expand to every active pointer;
// cancel is reported as up.
func NormalizeTouch(m RawMotion, scale float32) []Event {
	if len(m.Pointers) == 0 {
		return nil
	}

	switch m.Action {
	case MotionDown, MotionPointerDown:
		return actionPointer(m, scale, PointerDown)
	case MotionUp, MotionPointerUp:
		return actionPointer(m, scale, PointerUp)
	case MotionMove:
		return allPointers(m, scale, PointerMove)
	case MotionCancel:
		return allPointers(m, scale, PointerUp)
	default:
		return nil
	}
}

func actionPointer(m RawMotion, scale float32, phase PointerPhase) []Event {
	idx := m.ActionIndex
	if idx < 0 || idx >= len(m.Pointers) {
		idx = 0
	}
	return []Event{pointerEvent(m.Pointers[idx], scale, phase)}
}

func allPointers(m RawMotion, scale float32, phase PointerPhase) []Event {
	events := make([]Event, 0, len(m.Pointers))
	for _, p := range m.Pointers {
		events = append(events, pointerEvent(p, scale, phase))
	}
	return events
}

func pointerEvent(p PointerSample, scale float32, phase PointerPhase) Pointer {
	return Pointer{
		ID:       p.ID,
		X:        p.X * scale,
		Y:        p.Y * scale,
		Pressure: p.Pressure,
		Phase:    phase,
	}
}

// NormalizeKey routes a host key event. Controller sources produce
// ControllerButton events (BACK always counts as a keyboard key and repeats
// are dropped); keyboard and dpad sources produce Key events. Events from
// other sources are ignored.
func NormalizeKey(k RawKey) []Event {
	if k.Code != KeyCodeBack && IsController(k.Source) {
		if k.RepeatCount != 0 {
			return nil
		}
		switch k.Action {
		case KeyActionDown:
			return []Event{ControllerButton{DeviceID: k.DeviceID, Code: k.Code, Action: ButtonDown}}
		case KeyActionUp:
			return []Event{ControllerButton{DeviceID: k.DeviceID, Code: k.Code, Action: ButtonUp}}
		}
		return nil
	}

	if !IsTextInput(k.Source) {
		return nil
	}

	switch k.Action {
	case KeyActionDown:
		return []Event{Key{Code: k.Code, Action: ButtonDown, Unicode: k.Unicode & CombiningAccentMask}}
	case KeyActionUp:
		return []Event{Key{Code: k.Code, Action: ButtonUp}}
	case KeyActionMultiple:
		if k.Code != KeyCodeUnknown {
			return nil
		}
		var events []Event
		for _, r := range k.Characters {
			events = append(events,
				Key{Code: KeyCodeUnknown, Action: ButtonDown, Unicode: r & CombiningAccentMask},
				Key{Code: KeyCodeUnknown, Action: ButtonUp})
		}
		return events
	}
	return nil
}

// KeyConsumed reports whether the host should treat a routed key event as
// handled. Volume keys are left to the host.
func KeyConsumed(k RawKey) bool {
	if k.Code == KeyCodeVolumeUp || k.Code == KeyCodeVolumeDown {
		return false
	}
	if k.Code != KeyCodeBack && IsController(k.Source) {
		return k.RepeatCount == 0
	}
	return IsTextInput(k.Source)
}

// NormalizeAxes maps a joystick move to a ControllerAxis event with values
// inside the dead zone clamped to zero.
func NormalizeAxes(a RawAxes) []Event {
	if !IsJoystick(a.Source) || a.Action != MotionMove {
		return nil
	}
	ev := ControllerAxis{DeviceID: a.DeviceID}
	for i, v := range a.Values {
		ev.Axes[i] = ApplyDeadZone(v, a.Flat[i])
	}
	return []Event{ev}
}

// ApplyDeadZone returns 0 when |v| is within flat, v otherwise.
func ApplyDeadZone(v, flat float32) float32 {
	if float32(math.Abs(float64(v))) <= flat {
		return 0
	}
	return v
}

type axisSwap struct {
	negateX, negateY float32
	xSrc, ySrc       int
}

// canonical device axes to screen axes, indexed by Rotation
var axisSwaps = [...]axisSwap{
	Rotation0:   {-1, 1, 0, 1},
	Rotation90:  {1, 1, 1, 0},
	Rotation180: {1, -1, 0, 1},
	Rotation270: {-1, -1, 1, 0},
}

// NormalizeAccelerometer converts canonical sensor values to screen
// orientation for the given display rotation.
func NormalizeAccelerometer(values [3]float32, rotation Rotation) Event {
	if rotation < Rotation0 || rotation > Rotation270 {
		rotation = Rotation0
	}
	as := axisSwaps[rotation]
	return Accelerometer{
		X: as.negateX * values[as.xSrc],
		Y: as.negateY * values[as.ySrc],
		Z: values[2],
	}
}

// NormalizeDevice maps a device list change.
func NormalizeDevice(deviceID int, change Connectivity) Event {
	return DeviceConnectivity{DeviceID: deviceID, Change: change}
}
