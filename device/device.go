// SPDX-License-Identifier: Unlicense OR MIT

// Package device describes the identifiers and classification types
// used to address per-device state in the pointer verifier: device
// identifiers, input sources and their coarse source classes, and the
// small flag set carried alongside a motion event.
package device

import "fmt"

// ID identifies an input device. Distinct IDs have fully independent
// state in the verifier; there is no cross-device coupling.
type ID int32

func (d ID) String() string {
	return fmt.Sprintf("DeviceId(%d)", int32(d))
}

// Source classifies the input device that produced an event.
type Source uint32

// Sources recognized by the verifier. Only the classification into
// [Class] matters to the verifier; the specific source value is kept
// only for diagnostics.
const (
	SourceUnknown Source = iota
	SourceTouchscreen
	SourceMouse
	SourceStylus
	SourceTrackball
	SourceMouseRelative
	SourceTouchpad
	SourceJoystick
)

// Class is a coarse grouping of [Source] values.
type Class uint32

const (
	// ClassPointer covers sources whose motion events are addressed
	// by on-screen position: touchscreens, mice, styli, trackballs,
	// and touchpads. Only this class is verified; all others are
	// accepted unconditionally by [verify.Verifier.ProcessMovement].
	ClassPointer Class = 1 << iota
	ClassJoystick
	ClassNone
)

// Class reports the [Class] that s belongs to. SourceMouseRelative is
// deliberately excluded from ClassPointer: it is emitted during pointer
// capture and carries no meaningful on-screen position, so the source
// examples that originated this behavior (relative-mouse pass-through)
// must keep bypassing verification.
func (s Source) Class() Class {
	switch s {
	case SourceTouchscreen, SourceMouse, SourceStylus, SourceTrackball, SourceTouchpad:
		return ClassPointer
	case SourceJoystick:
		return ClassJoystick
	default:
		return ClassNone
	}
}

// IsFromClass reports whether s belongs to class.
func (s Source) IsFromClass(class Class) bool {
	return s.Class()&class != 0
}

func (s Source) String() string {
	switch s {
	case SourceTouchscreen:
		return "Touchscreen"
	case SourceMouse:
		return "Mouse"
	case SourceStylus:
		return "Stylus"
	case SourceTrackball:
		return "Trackball"
	case SourceMouseRelative:
		return "MouseRelative"
	case SourceTouchpad:
		return "Touchpad"
	case SourceJoystick:
		return "Joystick"
	default:
		return "Unknown"
	}
}

// Flag is a single bit in a [FlagSet].
type Flag uint32

const (
	// FlagCanceled marks a Cancel event as invalidating the
	// in-progress gesture. It is the only flag with verifier-visible
	// semantics; all others pass through untouched.
	FlagCanceled Flag = 1 << iota
)

// FlagSet is a set of motion event flags.
type FlagSet uint32

// Contains reports whether fs has f set.
func (fs FlagSet) Contains(f Flag) bool {
	return fs&FlagSet(f) != 0
}
