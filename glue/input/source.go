// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package input

// Source is the bitmask of input sources a host reports for an event or device.
// Values follow the host's class/source encoding: the low byte holds the
// source class, the upper bits the concrete source.
type Source uint32

// Source classes.
const (
	SourceClassButton    Source = 0x00000001
	SourceClassPointer   Source = 0x00000002
	SourceClassTrackball Source = 0x00000004
	SourceClassPosition  Source = 0x00000008
	SourceClassJoystick  Source = 0x00000010
)

// Concrete sources.
const (
	SourceKeyboard    Source = 0x00000100 | SourceClassButton
	SourceDpad        Source = 0x00000200 | SourceClassButton
	SourceGamepad     Source = 0x00000400 | SourceClassButton
	SourceTouchscreen Source = 0x00001000 | SourceClassPointer
	SourceMouse       Source = 0x00002000 | SourceClassPointer
	SourceJoystick    Source = 0x01000000 | SourceClassJoystick
)

// Has reports whether every bit of flag is set in s.
func (s Source) Has(flag Source) bool {
	return s&flag == flag
}

// IsJoystick reports whether the source includes a joystick.
func IsJoystick(s Source) bool { return s.Has(SourceJoystick) }

// IsGamepad reports whether the source includes gamepad buttons.
func IsGamepad(s Source) bool { return s.Has(SourceGamepad) }

// IsController reports whether the source belongs to a game controller.
func IsController(s Source) bool { return IsJoystick(s) || IsGamepad(s) }

// IsKeyboard reports whether the source includes a keyboard.
func IsKeyboard(s Source) bool { return s.Has(SourceKeyboard) }

// IsDpad reports whether the source includes a directional pad.
func IsDpad(s Source) bool { return s.Has(SourceDpad) }

// IsTextInput reports whether key events from the source are keyboard keys.
func IsTextInput(s Source) bool { return IsKeyboard(s) || IsDpad(s) }

// Host key codes with routing significance.
const (
	KeyCodeUnknown    = 0
	KeyCodeBack       = 4
	KeyCodeVolumeUp   = 24
	KeyCodeVolumeDown = 25
)

// Host key codes for keys a desktop toolkit reports without a character.
const (
	KeyCodeDpadUp     = 19
	KeyCodeDpadDown   = 20
	KeyCodeDpadLeft   = 21
	KeyCodeDpadRight  = 22
	KeyCodeA          = 29
	KeyCodeTab        = 61
	KeyCodeEnter      = 66
	KeyCodeDel        = 67
	KeyCodePageUp     = 92
	KeyCodePageDown   = 93
	KeyCodeForwardDel = 112
	KeyCodeMoveHome   = 122
	KeyCodeMoveEnd    = 123
	KeyCodeInsert     = 124
	KeyCodeF1         = 131
	KeyCodeF12        = 142
)

// CombiningAccentMask strips the combining accent flag from host unicode values.
const CombiningAccentMask = 0x7fffffff

// MaxControllers is the number of controller slots the engine exposes.
const MaxControllers = 16

// DeviceInfo describes an input device attached to the host.
type DeviceInfo struct {
	ID      int
	Sources Source
}

// ControllerDeviceIDs returns the ids of game controllers among devices, in
// host order, limited to max entries.
func ControllerDeviceIDs(devices []DeviceInfo, max int) []int {
	ids := make([]int, 0, len(devices))
	for _, d := range devices {
		if len(ids) >= max {
			break
		}
		if IsController(d.Sources) {
			ids = append(ids, d.ID)
		}
	}
	return ids
}
