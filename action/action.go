// SPDX-License-Identifier: Unlicense OR MIT

// Package action implements the verifier's view of a motion event's
// action: a tagged [Action] value decoded from the packed 32-bit action
// word carried by the platform input ABI.
package action

import "fmt"

// Kind enumerates the logical actions the verifier understands.
type Kind uint8

const (
	// Unknown is the sentinel decoding for an action word the verifier
	// does not recognize. Events carrying it cause no state mutation, for
	// forward compatibility with action codes introduced after this
	// verifier was built. They are still subject to the checks that apply
	// to every action: at least one pointer, no action button, and a
	// declared button state equal to the device's confirmed state.
	Unknown Kind = iota
	Down
	Up
	Move
	Cancel
	Outside
	HoverEnter
	HoverMove
	HoverExit
	Scroll
	PointerDown
	PointerUp
	ButtonPress
	ButtonRelease
)

func (k Kind) String() string {
	switch k {
	case Down:
		return "DOWN"
	case Up:
		return "UP"
	case Move:
		return "MOVE"
	case Cancel:
		return "CANCEL"
	case Outside:
		return "OUTSIDE"
	case HoverEnter:
		return "HOVER_ENTER"
	case HoverMove:
		return "HOVER_MOVE"
	case HoverExit:
		return "HOVER_EXIT"
	case Scroll:
		return "SCROLL"
	case PointerDown:
		return "POINTER_DOWN"
	case PointerUp:
		return "POINTER_UP"
	case ButtonPress:
		return "BUTTON_PRESS"
	case ButtonRelease:
		return "BUTTON_RELEASE"
	default:
		return "UNKNOWN"
	}
}

// Action is a tagged variant of the logical action carried by a motion
// event. Index is only meaningful when Kind is PointerDown or
// PointerUp, where it selects a pointer from the event's descriptor
// sequence.
type Action struct {
	Kind  Kind
	Index int
}

func (a Action) String() string {
	switch a.Kind {
	case PointerDown, PointerUp:
		return fmt.Sprintf("%s(index=%d)", a.Kind, a.Index)
	default:
		return a.Kind.String()
	}
}

// indexShift is AMOTION_EVENT_ACTION_POINTER_INDEX_SHIFT: the bit
// position at which the pointer index is packed for PointerDown and
// PointerUp action words.
const indexShift = 8

// kindMask isolates the low byte of a packed action word, which holds
// the action kind.
const kindMask = 0x000000ff

// Packed kind constants, matching the platform input ABI.
const (
	rawDown uint32 = iota
	rawUp
	rawMove
	rawCancel
	rawOutside
	rawPointerDown
	rawPointerUp
	rawHoverMove
	rawScroll
	rawHoverEnter
	rawHoverExit
	rawButtonPress
	rawButtonRelease
)

// Decode unpacks a raw 32-bit action word into its tagged [Action]. The
// low byte (kindMask) holds the action kind; for PointerDown and
// PointerUp, the bits above indexShift hold the pointer index. An
// unrecognized kind decodes to Unknown.
func Decode(raw uint32) Action {
	switch raw & kindMask {
	case rawDown:
		return Action{Kind: Down}
	case rawUp:
		return Action{Kind: Up}
	case rawMove:
		return Action{Kind: Move}
	case rawCancel:
		return Action{Kind: Cancel}
	case rawOutside:
		return Action{Kind: Outside}
	case rawPointerDown:
		return Action{Kind: PointerDown, Index: int(raw >> indexShift)}
	case rawPointerUp:
		return Action{Kind: PointerUp, Index: int(raw >> indexShift)}
	case rawHoverMove:
		return Action{Kind: HoverMove}
	case rawScroll:
		return Action{Kind: Scroll}
	case rawHoverEnter:
		return Action{Kind: HoverEnter}
	case rawHoverExit:
		return Action{Kind: HoverExit}
	case rawButtonPress:
		return Action{Kind: ButtonPress}
	case rawButtonRelease:
		return Action{Kind: ButtonRelease}
	default:
		return Action{Kind: Unknown}
	}
}
