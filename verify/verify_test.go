// SPDX-License-Identifier: Unlicense OR MIT

package verify

import (
	"testing"

	"github.com/input-verify/pointerverify/button"
	"github.com/input-verify/pointerverify/device"
)

const (
	rawDown           uint32 = 0
	rawUp             uint32 = 1
	rawMove           uint32 = 2
	rawCancel         uint32 = 3
	rawOutside        uint32 = 4
	rawPointerDown    uint32 = 5
	rawPointerUp      uint32 = 6
	rawHoverMove      uint32 = 7
	rawScroll         uint32 = 8
	rawHoverEnter     uint32 = 9
	rawHoverExit      uint32 = 10
	rawButtonPress    uint32 = 11
	rawButtonRelease  uint32 = 12
	pointerIndexShift        = 8
)

func pointerAction(raw uint32, index int) uint32 {
	return raw | uint32(index<<pointerIndexShift)
}

func descs(ids ...PointerID) []PointerDescriptor {
	pp := make([]PointerDescriptor, len(ids))
	for i, id := range ids {
		pp[i] = PointerDescriptor{ID: id}
	}
	return pp
}

func mustOK(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("expected ok, got error: %v", err)
	}
}

func mustErr(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error, got ok")
	}
}

func TestSingleFingerTap(t *testing.T) {
	v := New("Test", false)
	d := device.ID(1)
	mustOK(t, v.ProcessMovement(d, device.SourceTouchscreen, rawDown, 0, descs(0), 0, 0))
	mustOK(t, v.ProcessMovement(d, device.SourceTouchscreen, rawMove, 0, descs(0), 0, 0))
	mustOK(t, v.ProcessMovement(d, device.SourceTouchscreen, rawUp, 0, descs(0), 0, 0))
}

func TestTwoFingerPinch(t *testing.T) {
	v := New("Test", false)
	d := device.ID(1)
	mustOK(t, v.ProcessMovement(d, device.SourceTouchscreen, rawDown, 0, descs(0), 0, 0))
	mustOK(t, v.ProcessMovement(d, device.SourceTouchscreen, pointerAction(rawPointerDown, 1), 0, descs(0, 1), 0, 0))
	mustOK(t, v.ProcessMovement(d, device.SourceTouchscreen, pointerAction(rawPointerUp, 0), 0, descs(0, 1), 0, 0))
	mustOK(t, v.ProcessMovement(d, device.SourceTouchscreen, rawUp, 0, descs(1), 0, 0))
}

func TestInterleavedDevices(t *testing.T) {
	v := New("Test", false)
	d1, d2 := device.ID(1), device.ID(2)
	mustOK(t, v.ProcessMovement(d1, device.SourceTouchscreen, rawDown, 0, descs(0), 0, 0))
	mustOK(t, v.ProcessMovement(d2, device.SourceTouchscreen, rawDown, 0, descs(0), 0, 0))
	mustOK(t, v.ProcessMovement(d1, device.SourceTouchscreen, rawMove, 0, descs(0), 0, 0))
	mustOK(t, v.ProcessMovement(d2, device.SourceTouchscreen, rawMove, 0, descs(0), 0, 0))
	mustOK(t, v.ProcessMovement(d1, device.SourceTouchscreen, rawUp, 0, descs(0), 0, 0))
	mustOK(t, v.ProcessMovement(d2, device.SourceTouchscreen, rawUp, 0, descs(0), 0, 0))
}

func TestMouseChord(t *testing.T) {
	v := New("Test", false)
	d := device.ID(1)
	state := button.NewSet(button.Primary, button.Secondary)
	mustOK(t, v.ProcessMovement(d, device.SourceMouse, rawDown, 0, descs(0), 0, state))
	mustOK(t, v.ProcessMovement(d, device.SourceMouse, rawButtonPress, button.NewSet(button.Primary), descs(0), 0, button.NewSet(button.Primary)))
	mustOK(t, v.ProcessMovement(d, device.SourceMouse, rawButtonPress, button.NewSet(button.Secondary), descs(0), 0, state))
	mustOK(t, v.ProcessMovement(d, device.SourceMouse, rawMove, 0, descs(0), 0, state))
}

func TestMalformedChordMissingButtonPress(t *testing.T) {
	v := New("Test", false)
	d := device.ID(1)
	mustOK(t, v.ProcessMovement(d, device.SourceMouse, rawDown, 0, descs(0), 0, button.NewSet(button.Primary)))
	mustErr(t, v.ProcessMovement(d, device.SourceMouse, rawMove, 0, descs(0), 0, button.NewSet(button.Primary)))
}

func TestRelativeMousePassThrough(t *testing.T) {
	v := New("Test", false)
	d := device.ID(2)
	mustOK(t, v.ProcessMovement(d, device.SourceMouseRelative, rawMove, 0, descs(0), 0, 0))
}

func TestBoundary_EmptyPointerSequence(t *testing.T) {
	v := New("Test", false)
	mustErr(t, v.ProcessMovement(device.ID(1), device.SourceTouchscreen, rawDown, 0, nil, 0, 0))
}

func TestBoundary_CancelWithoutFlag(t *testing.T) {
	v := New("Test", false)
	d := device.ID(1)
	mustOK(t, v.ProcessMovement(d, device.SourceTouchscreen, rawDown, 0, descs(0), 0, 0))
	mustErr(t, v.ProcessMovement(d, device.SourceTouchscreen, rawCancel, 0, descs(0), 0, 0))
}

func TestBoundary_CancelWithFlag(t *testing.T) {
	v := New("Test", false)
	d := device.ID(1)
	mustOK(t, v.ProcessMovement(d, device.SourceTouchscreen, rawDown, 0, descs(0), 0, 0))
	mustOK(t, v.ProcessMovement(d, device.SourceTouchscreen, rawCancel, 0, descs(0), device.FlagSet(device.FlagCanceled), 0))
}

func TestBoundary_PointerDownOutOfRange(t *testing.T) {
	v := New("Test", false)
	d := device.ID(1)
	mustOK(t, v.ProcessMovement(d, device.SourceTouchscreen, rawDown, 0, descs(0), 0, 0))
	mustErr(t, v.ProcessMovement(d, device.SourceTouchscreen, pointerAction(rawPointerDown, 5), 0, descs(0, 1), 0, 0))
}

func TestBoundary_UpWithoutDown(t *testing.T) {
	v := New("Test", false)
	mustErr(t, v.ProcessMovement(device.ID(1), device.SourceTouchscreen, rawUp, 0, descs(0), 0, 0))
}

func TestBoundary_DoubleHoverEnter(t *testing.T) {
	v := New("Test", false)
	d := device.ID(1)
	mustOK(t, v.ProcessMovement(d, device.SourceTouchscreen, rawHoverEnter, 0, descs(0), 0, 0))
	mustErr(t, v.ProcessMovement(d, device.SourceTouchscreen, rawHoverEnter, 0, descs(0), 0, 0))
}

func TestBoundary_HoverSequenceThenReenter(t *testing.T) {
	v := New("Test", false)
	d := device.ID(1)
	mustOK(t, v.ProcessMovement(d, device.SourceTouchscreen, rawHoverEnter, 0, descs(0), 0, 0))
	mustOK(t, v.ProcessMovement(d, device.SourceTouchscreen, rawHoverMove, 0, descs(0), 0, 0))
	mustOK(t, v.ProcessMovement(d, device.SourceTouchscreen, rawHoverExit, 0, descs(0), 0, 0))
	mustOK(t, v.ProcessMovement(d, device.SourceTouchscreen, rawHoverEnter, 0, descs(0), 0, 0))
}

func TestBoundary_HoverMoveWithoutEnter(t *testing.T) {
	v := New("Test", false)
	d := device.ID(1)
	mustOK(t, v.ProcessMovement(d, device.SourceTouchscreen, rawHoverMove, 0, descs(0), 0, 0))
	mustOK(t, v.ProcessMovement(d, device.SourceTouchscreen, rawHoverExit, 0, descs(0), 0, 0))
}

func TestBoundary_MoveAfterPointerDownCountMismatch(t *testing.T) {
	v := New("Test", false)
	d := device.ID(1)
	mustOK(t, v.ProcessMovement(d, device.SourceTouchscreen, rawDown, 0, descs(0), 0, 0))
	mustOK(t, v.ProcessMovement(d, device.SourceTouchscreen, pointerAction(rawPointerDown, 1), 0, descs(0, 1), 0, 0))
	mustErr(t, v.ProcessMovement(d, device.SourceTouchscreen, rawMove, 0, descs(0), 0, 0))
}

func TestBoundary_ButtonPressZeroActionButtons(t *testing.T) {
	v := New("Test", false)
	mustErr(t, v.ProcessMovement(device.ID(1), device.SourceMouse, rawButtonPress, 0, descs(0), 0, 0))
}

func TestBoundary_ButtonPressTwoActionButtons(t *testing.T) {
	v := New("Test", false)
	both := button.NewSet(button.Back, button.Forward)
	mustErr(t, v.ProcessMovement(device.ID(1), device.SourceMouse, rawButtonPress, both, descs(0), 0, both))
}

func TestBoundary_ButtonPressAlreadyHeld(t *testing.T) {
	v := New("Test", false)
	d := device.ID(1)
	back := button.NewSet(button.Back)
	mustOK(t, v.ProcessMovement(d, device.SourceMouse, rawButtonPress, back, descs(0), 0, back))
	mustErr(t, v.ProcessMovement(d, device.SourceMouse, rawButtonPress, back, descs(0), 0, back))
}

func TestBoundary_ButtonReleaseNotHeld(t *testing.T) {
	v := New("Test", false)
	back := button.NewSet(button.Back)
	mustErr(t, v.ProcessMovement(device.ID(1), device.SourceMouse, rawButtonRelease, back, descs(0), 0, 0))
}

func TestBoundary_NonButtonActionWithActionButton(t *testing.T) {
	v := New("Test", false)
	mustErr(t, v.ProcessMovement(device.ID(1), device.SourceMouse, rawHoverEnter, button.NewSet(button.Primary), descs(0), 0, 0))
}

func TestBoundary_NonButtonActionWrongDeclaredState(t *testing.T) {
	v := New("Test", false)
	d := device.ID(1)
	mustOK(t, v.ProcessMovement(d, device.SourceMouse, rawHoverEnter, 0, descs(0), 0, 0))
	mustErr(t, v.ProcessMovement(d, device.SourceMouse, rawHoverMove, 0, descs(0), 0, button.NewSet(button.Back)))
}

func TestBoundary_DownMissingAlreadyHeldButton(t *testing.T) {
	v := New("Test", false)
	d := device.ID(1)
	back := button.NewSet(button.Back)
	mustOK(t, v.ProcessMovement(d, device.SourceMouse, rawButtonPress, back, descs(0), 0, back))
	mustErr(t, v.ProcessMovement(d, device.SourceMouse, rawDown, 0, descs(0), 0, 0))
}

func TestBoundary_DownWidenedStateNotFollowedByButtonPress(t *testing.T) {
	v := New("Test", false)
	d := device.ID(1)
	primary := button.NewSet(button.Primary)
	mustOK(t, v.ProcessMovement(d, device.SourceMouse, rawDown, 0, descs(0), 0, primary))
	mustErr(t, v.ProcessMovement(d, device.SourceMouse, rawMove, 0, descs(0), 0, primary))
}

func TestBoundary_UpStillContainsUnreleasedButton(t *testing.T) {
	v := New("Test", false)
	d := device.ID(1)
	primary := button.NewSet(button.Primary)
	mustOK(t, v.ProcessMovement(d, device.SourceMouse, rawDown, 0, descs(0), 0, primary))
	mustOK(t, v.ProcessMovement(d, device.SourceMouse, rawButtonPress, primary, descs(0), 0, primary))
	mustErr(t, v.ProcessMovement(d, device.SourceMouse, rawUp, 0, descs(0), 0, 0))
}

func TestDownWithButtonPressChordAndMove(t *testing.T) {
	v := New("Test", false)
	d := device.ID(1)
	primary, secondary := button.NewSet(button.Primary), button.NewSet(button.Secondary)
	both := primary.Union(secondary)
	mustOK(t, v.ProcessMovement(d, device.SourceMouse, rawDown, 0, descs(0), 0, both))
	mustOK(t, v.ProcessMovement(d, device.SourceMouse, rawButtonPress, primary, descs(0), 0, primary))
	mustOK(t, v.ProcessMovement(d, device.SourceMouse, rawButtonPress, secondary, descs(0), 0, both))
	mustOK(t, v.ProcessMovement(d, device.SourceMouse, rawMove, 0, descs(0), 0, both))
}

func TestResetDeviceClearsState(t *testing.T) {
	v := New("Test", false)
	d := device.ID(1)
	mustOK(t, v.ProcessMovement(d, device.SourceTouchscreen, rawDown, 0, descs(0), 0, 0))
	v.ResetDevice(d)
	// A fresh DOWN should succeed exactly as it would for a never-seen device.
	mustOK(t, v.ProcessMovement(d, device.SourceTouchscreen, rawDown, 0, descs(0), 0, 0))
}

func TestFailedStepDoesNotMutateState(t *testing.T) {
	v := New("Test", false)
	d := device.ID(1)
	mustOK(t, v.ProcessMovement(d, device.SourceTouchscreen, rawDown, 0, descs(0), 0, 0))
	// PointerUp with mismatched touching set fails; the prior DOWN's
	// touching state must survive untouched, so a correct UP still works.
	mustErr(t, v.ProcessMovement(d, device.SourceTouchscreen, pointerAction(rawPointerUp, 0), 0, descs(0, 1), 0, 0))
	mustOK(t, v.ProcessMovement(d, device.SourceTouchscreen, rawUp, 0, descs(0), 0, 0))
}

func TestButtonVerifierFailureDoesNotLeakIntoPointerState(t *testing.T) {
	v := New("Test", false)
	d := device.ID(1)
	// Press Back first, then send a DOWN that fails to mention it: the
	// DOWN must be rejected by the button step before the pointer step
	// ever runs, so no touching pointer gets created for it.
	back := button.NewSet(button.Back)
	mustOK(t, v.ProcessMovement(d, device.SourceMouse, rawButtonPress, back, descs(0), 0, back))
	mustErr(t, v.ProcessMovement(d, device.SourceMouse, rawDown, 0, descs(0), 0, 0))
	// Pointer state must remain untouched: no touching pointer was
	// created by the rejected DOWN, so ACTION_UP should fail too. The UP
	// declares Back as still held so that the button step accepts it and
	// the rejection comes from the pointer step.
	mustErr(t, v.ProcessMovement(d, device.SourceMouse, rawUp, 0, descs(0), 0, back))
}

func TestSnapshotDevicesIsSortedAndReflectsActivity(t *testing.T) {
	v := New("Test", false)
	mustOK(t, v.ProcessMovement(device.ID(5), device.SourceTouchscreen, rawDown, 0, descs(0), 0, 0))
	mustOK(t, v.ProcessMovement(device.ID(1), device.SourceTouchscreen, rawDown, 0, descs(0), 0, 0))
	mustOK(t, v.ProcessMovement(device.ID(3), device.SourceTouchscreen, rawDown, 0, descs(0), 0, 0))

	got := v.snapshotDevices()
	want := []device.ID{1, 3, 5}
	if len(got) != len(want) {
		t.Fatalf("snapshotDevices() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("snapshotDevices() = %v, want %v", got, want)
		}
	}

	v.ResetDevice(device.ID(3))
	got = v.snapshotDevices()
	if len(got) != 2 || got[0] != 1 || got[1] != 5 {
		t.Errorf("snapshotDevices() after ResetDevice = %v, want [1 5]", got)
	}

	if s := v.String(); s == "" {
		t.Errorf("String() returned empty string")
	}
}
