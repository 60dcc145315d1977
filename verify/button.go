// SPDX-License-Identifier: Unlicense OR MIT

package verify

import (
	"fmt"

	"github.com/input-verify/pointerverify/action"
	"github.com/input-verify/pointerverify/button"
)

// buttonState tracks the confirmed and pending button sets for a single
// device.
//
// confirmed holds every button opened by a BUTTON_PRESS and not yet
// closed by a BUTTON_RELEASE. pending holds the buttons announced by the
// immediately preceding DOWN event's declared state that must still be
// confirmed by subsequent BUTTON_PRESS events: a DOWN is allowed to
// declare buttons that haven't had their own BUTTON_PRESS yet, as long
// as BUTTON_PRESS events for them follow immediately.
type buttonState struct {
	confirmed button.Set
	pending   button.Set
}

// step validates a on a copy of bs and returns the resulting state. Like
// [pointerState.step], it never mutates bs: a failing step leaves the
// caller free to discard the result and keep the previous state.
func (bs buttonState) step(name string, a action.Action, actionButton, declared button.Set) (buttonState, error) {
	if !bs.pending.Empty() {
		if a.Kind != action.ButtonPress || !bs.pending.Contains(actionButton) {
			return bs, fmt.Errorf("%s: after DOWN event, expected BUTTON_PRESS event(s) for %s, but got %s with action button %s",
				name, bs.pending, a.Kind, actionButton)
		}
		bs.pending = bs.pending.Diff(actionButton)
	}

	var expected button.Set
	switch a.Kind {
	case action.Down:
		missing := bs.confirmed.Diff(declared)
		if !missing.Empty() {
			return bs, fmt.Errorf("%s: DOWN event button state is missing %s", name, missing)
		}
		bs.pending = declared.Diff(bs.confirmed)
		// Extra buttons are valid on DOWN; the consistency check below is
		// bypassed for this action.
		expected = declared

	case action.ButtonPress:
		if bs.confirmed.Contains(actionButton) {
			return bs, fmt.Errorf("%s: duplicate BUTTON_PRESS; button state already contains %s", name, actionButton)
		}
		expected = bs.confirmed.Union(actionButton)

	case action.ButtonRelease:
		if !bs.confirmed.Contains(actionButton) {
			return bs, fmt.Errorf("%s: invalid BUTTON_RELEASE; button state doesn't contain %s", name, actionButton)
		}
		expected = bs.confirmed.Diff(actionButton)

	default:
		expected = bs.confirmed
	}

	if a.Kind != action.Down && declared != expected {
		return bs, fmt.Errorf("%s: expected %s button state to be %s, but was %s", name, a.Kind, expected, declared)
	}

	// DOWN defers the commit of confirmed state until the pending buttons
	// it introduced are worked down to empty by subsequent BUTTON_PRESS
	// events; committing eagerly would mask a dropped BUTTON_PRESS.
	if a.Kind != action.Down {
		bs.confirmed = declared
	}
	return bs, nil
}
