// SPDX-License-Identifier: Unlicense OR MIT

// Package button implements the fixed finite domain of pointer buttons
// and a bitset type over that domain with set-algebra operations.
package button

import (
	"strings"
)

// Button is a single named pointer button.
type Button uint32

const (
	Primary Button = 1 << iota
	Secondary
	Tertiary
	Back
	Forward
)

var allButtons = []Button{Primary, Secondary, Tertiary, Back, Forward}

func (b Button) String() string {
	switch b {
	case Primary:
		return "Primary"
	case Secondary:
		return "Secondary"
	case Tertiary:
		return "Tertiary"
	case Back:
		return "Back"
	case Forward:
		return "Forward"
	default:
		return "Unknown"
	}
}

// Set is a set over the [Button] domain.
type Set uint32

// NewSet returns the set containing exactly the given buttons.
func NewSet(bs ...Button) Set {
	var s Set
	for _, b := range bs {
		s |= Set(b)
	}
	return s
}

// Union returns the set of buttons present in s or other.
func (s Set) Union(other Set) Set {
	return s | other
}

// Diff returns the set of buttons present in s but not in other.
func (s Set) Diff(other Set) Set {
	return s &^ other
}

// Contains reports whether s contains every button in other.
func (s Set) Contains(other Set) bool {
	return s&other == other
}

// Len reports the number of buttons in s.
func (s Set) Len() int {
	n := 0
	for s != 0 {
		s &= s - 1
		n++
	}
	return n
}

// Empty reports whether s has no buttons.
func (s Set) Empty() bool {
	return s == 0
}

// Buttons returns the members of s in a stable, sorted order, suitable
// for deterministic diagnostic formatting.
func (s Set) Buttons() []Button {
	var out []Button
	for _, b := range allButtons {
		if s.Contains(NewSet(b)) {
			out = append(out, b)
		}
	}
	return out
}

func (s Set) String() string {
	bs := s.Buttons()
	names := make([]string, len(bs))
	for i, b := range bs {
		names[i] = b.String()
	}
	return "{" + strings.Join(names, ", ") + "}"
}
