// SPDX-License-Identifier: Unlicense OR MIT

package verify

import (
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/input-verify/pointerverify/action"
)

// PointerID identifies a single pointer (finger contact or mouse/stylus
// presence) for the lifetime of its touch or hover.
type PointerID int32

// PointerDescriptor carries the identifier of one pointer participating
// in a gesture. Position within the enclosing descriptor slice is the
// index a [action.Action] of kind PointerDown or PointerUp refers to.
type PointerDescriptor struct {
	ID PointerID
}

// pointerState tracks the touching and hovering identifier sets for a
// single device. A nil map means the corresponding gesture is absent;
// touching is never present and empty at the same time.
type pointerState struct {
	touching map[PointerID]struct{}
	hovering map[PointerID]struct{}
}

func sortedIDs(m map[PointerID]struct{}) []PointerID {
	ids := make([]PointerID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func touchingMatches(touching map[PointerID]struct{}, pp []PointerDescriptor) bool {
	if touching == nil || len(touching) != len(pp) {
		return false
	}
	for _, p := range pp {
		if _, ok := touching[p.ID]; !ok {
			return false
		}
	}
	return true
}

// step validates a on a copy of ps and returns the resulting state. On
// error, the returned state is meaningless and must be discarded by the
// caller: this method never mutates ps itself, so a failing step can
// never leak a partial mutation.
func (ps pointerState) step(name string, a action.Action, pp []PointerDescriptor) (pointerState, error) {
	switch a.Kind {
	case action.Down:
		if ps.touching != nil {
			return ps, fmt.Errorf("%s: invalid DOWN event - pointers already down: %v", name, sortedIDs(ps.touching))
		}
		ps.touching = map[PointerID]struct{}{pp[0].ID: {}}

	case action.PointerDown:
		if ps.touching == nil {
			return ps, fmt.Errorf("%s: received POINTER_DOWN but no pointers are currently down", name)
		}
		if len(ps.touching) != len(pp)-1 {
			return ps, fmt.Errorf("%s: there are currently %d touching pointers, but the incoming POINTER_DOWN event has %d",
				name, len(ps.touching), len(pp))
		}
		pid := pp[a.Index].ID
		if _, ok := ps.touching[pid]; ok {
			return ps, fmt.Errorf("%s: pointer with id=%d already present in the touching set", name, pid)
		}
		touching := copyIDs(ps.touching)
		touching[pid] = struct{}{}
		ps.touching = touching

	case action.Move:
		if !touchingMatches(ps.touching, pp) {
			return ps, fmt.Errorf("%s: ACTION_MOVE touching pointers don't match (touching: %v)", name, sortedIDs(ps.touching))
		}

	case action.PointerUp:
		if !touchingMatches(ps.touching, pp) {
			return ps, fmt.Errorf("%s: ACTION_POINTER_UP touching pointers don't match (touching: %v)", name, sortedIDs(ps.touching))
		}
		touching := copyIDs(ps.touching)
		delete(touching, pp[a.Index].ID)
		if len(touching) == 0 {
			touching = nil
		}
		ps.touching = touching

	case action.Up:
		if ps.touching == nil {
			return ps, fmt.Errorf("%s: received ACTION_UP but no pointers are currently down", name)
		}
		if len(ps.touching) != 1 {
			return ps, fmt.Errorf("%s: got ACTION_UP, but touching pointers are %v", name, sortedIDs(ps.touching))
		}
		pid := pp[0].ID
		if _, ok := ps.touching[pid]; !ok {
			return ps, fmt.Errorf("%s: got ACTION_UP, but pointer id=%d is not touching (touching: %v)", name, pid, sortedIDs(ps.touching))
		}
		ps.touching = nil

	case action.Cancel:
		if !touchingMatches(ps.touching, pp) {
			return ps, fmt.Errorf("%s: got ACTION_CANCEL, but the touching pointers don't match (touching: %v)", name, sortedIDs(ps.touching))
		}
		ps.touching = nil

	case action.HoverEnter:
		if ps.hovering != nil {
			return ps, fmt.Errorf("%s: invalid HOVER_ENTER event - pointers already hovering: %v", name, sortedIDs(ps.hovering))
		}
		ps.hovering = map[PointerID]struct{}{pp[0].ID: {}}

	case action.HoverMove:
		// Permissive: a HOVER_MOVE without a prior HOVER_ENTER starts a
		// new hovering pointer, for compatibility with producers that
		// skip HOVER_ENTER.
		hovering := copyIDs(ps.hovering)
		hovering[pp[0].ID] = struct{}{}
		ps.hovering = hovering

	case action.HoverExit:
		pid := pp[0].ID
		if ps.hovering == nil {
			return ps, fmt.Errorf("%s: invalid HOVER_EXIT event - no pointers are hovering", name)
		}
		if _, ok := ps.hovering[pid]; !ok {
			return ps, fmt.Errorf("%s: invalid HOVER_EXIT event - pointer id=%d is not hovering (hovering: %v)", name, pid, sortedIDs(ps.hovering))
		}
		if len(ps.hovering) != 1 {
			return ps, fmt.Errorf("%s: removed hovering pointer id=%d, but pointers are still hovering: %v", name, pid, sortedIDs(ps.hovering))
		}
		ps.hovering = nil
	}
	return ps, nil
}

func copyIDs(m map[PointerID]struct{}) map[PointerID]struct{} {
	out := make(map[PointerID]struct{}, len(m)+1)
	for id := range m {
		out[id] = struct{}{}
	}
	return out
}
