// SPDX-License-Identifier: Unlicense OR MIT

// Package verify implements the event-stream verifier: a per-process
// object that owns per-device state machines tracking touching
// pointers, hovering pointers, and logical button state, and validates
// each incoming motion event against the history of events previously
// observed on the same device.
package verify

import (
	"fmt"
	"log"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/input-verify/pointerverify/action"
	"github.com/input-verify/pointerverify/button"
	"github.com/input-verify/pointerverify/device"
)

// deviceState is the composed per-device state: a button sub-state
// machine and a pointer (touch + hover) sub-state machine. The two are
// composed, not inherited, so each can be tested and reasoned about
// independently.
type deviceState struct {
	button  buttonState
	pointer pointerState
}

// Verifier validates a stream of motion events. It owns all per-device
// state exclusively; mutation requires exclusive access to the
// Verifier, and a single instance must not be shared across goroutines
// without external synchronization. Verifier never blocks and performs
// no I/O beyond the optional log line emitted by ProcessMovement.
type Verifier struct {
	name      string
	shouldLog bool
	logger    *log.Logger

	devices map[device.ID]deviceState
}

// New constructs a Verifier with empty per-device state. name is
// included in every diagnostic message, to distinguish verifiers when a
// process runs more than one (for example, one per input pipeline
// stage). When shouldLog is true, New's Verifier logs a line describing
// each event it processes, before running the event through its
// state-machine steps.
func New(name string, shouldLog bool) *Verifier {
	return &Verifier{
		name:      name,
		shouldLog: shouldLog,
		logger:    log.Default(),
		devices:   make(map[device.ID]deviceState),
	}
}

// SetLogger overrides the destination of ProcessMovement's log lines.
// It has no effect unless the Verifier was constructed with
// shouldLog=true.
func (v *Verifier) SetLogger(l *log.Logger) {
	v.logger = l
}

// ProcessMovement validates a single motion event against the history
// previously observed for device. It returns nil if the event is
// consistent with that history, or an error naming the violated rule
// otherwise.
//
// Events from sources outside [device.ClassPointer] (for example,
// MOUSE_RELATIVE during pointer capture) are accepted unconditionally,
// without consulting or mutating any per-device state.
//
// A failing event never leaves a partial mutation behind: ProcessMovement
// computes the full next state for the device before committing it, and
// commits only if every step — the event-local well-formedness checks,
// the button state machine, and the pointer state machine — succeeds.
func (v *Verifier) ProcessMovement(
	dev device.ID,
	source device.Source,
	actionRaw uint32,
	actionButton button.Set,
	pp []PointerDescriptor,
	flags device.FlagSet,
	buttonState button.Set,
) error {
	if !source.IsFromClass(device.ClassPointer) {
		return nil
	}

	a := action.Decode(actionRaw)

	if v.shouldLog {
		plural := "s"
		if len(pp) == 1 {
			plural = ""
		}
		v.logger.Printf("%s: processing %s for device %s (%d pointer%s)", v.name, a.Kind, dev, len(pp), plural)
	}

	if err := checkWellFormed(v.name, a, actionButton, pp, flags); err != nil {
		return err
	}

	state := v.devices[dev]

	nextButton, err := state.button.step(v.name, a, actionButton, buttonState)
	if err != nil {
		return err
	}
	nextPointer, err := state.pointer.step(v.name, a, pp)
	if err != nil {
		return err
	}

	v.devices[dev] = deviceState{button: nextButton, pointer: nextPointer}
	return nil
}

// ResetDevice erases all state the Verifier has accumulated for dev.
// Subsequent events from dev are expected to start a new gesture, as if
// dev had never been mentioned before.
func (v *Verifier) ResetDevice(dev device.ID) {
	delete(v.devices, dev)
}

// snapshotDevices returns the ids of every device the Verifier currently
// holds state for, sorted for deterministic diagnostic output. It is
// used by tests and by String to avoid depending on Go's randomized map
// iteration order.
func (v *Verifier) snapshotDevices() []device.ID {
	ids := maps.Keys(v.devices)
	slices.Sort(ids)
	return ids
}

// String summarizes the Verifier's current device coverage. It is meant
// for logging and test failure messages, not for parsing.
func (v *Verifier) String() string {
	return fmt.Sprintf("Verifier(%s, devices=%v)", v.name, v.snapshotDevices())
}
