// SPDX-License-Identifier: Unlicense OR MIT

package verify

import (
	"fmt"

	"github.com/input-verify/pointerverify/action"
	"github.com/input-verify/pointerverify/button"
	"github.com/input-verify/pointerverify/device"
)

// checkWellFormed performs the event-local checks that hold regardless
// of any per-device history: pointer count, the pairing of an action
// button with a button action, the flag requirements of CANCEL, the
// index bound of parametric actions, and the single-button requirement
// of BUTTON_PRESS/BUTTON_RELEASE.
func checkWellFormed(name string, a action.Action, actionButton button.Set, pp []PointerDescriptor, flags device.FlagSet) error {
	if len(pp) < 1 {
		return fmt.Errorf("%s: invalid %s event: no pointers", name, a.Kind)
	}
	if !actionButton.Empty() && a.Kind != action.ButtonPress && a.Kind != action.ButtonRelease {
		return fmt.Errorf("%s: invalid %s event: has action button %s but is not a button action", name, a.Kind, actionButton)
	}
	switch a.Kind {
	case action.Down, action.HoverEnter, action.HoverExit, action.HoverMove, action.Up:
		if len(pp) != 1 {
			return fmt.Errorf("%s: invalid %s event: there are %d pointers in the event", name, a.Kind, len(pp))
		}
	case action.Cancel:
		if !flags.Contains(device.FlagCanceled) {
			return fmt.Errorf("%s: for ACTION_CANCEL, must set FLAG_CANCELED", name)
		}
	case action.PointerDown, action.PointerUp:
		if a.Index >= len(pp) {
			return fmt.Errorf("%s: got %s, but event has %d pointer(s)", name, a.Kind, len(pp))
		}
	case action.ButtonPress, action.ButtonRelease:
		if n := actionButton.Len(); n != 1 {
			return fmt.Errorf("%s: invalid %s event: must specify a single action button, not %d action buttons", name, a.Kind, n)
		}
	}
	return nil
}
