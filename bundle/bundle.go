// SPDX-License-Identifier: Unlicense OR MIT

// Package bundle implements a PersistableBundle-style key/value
// container: a flat map from string keys to typed scalar or vector
// values, with deep-clone, equality, and parcel (de)serialization.
//
// Bundle is an independent collaborator of the event verifier: it
// shares no state with, and is not imported by, package verify. It
// exists at the boundary the verifier's specification describes but
// does not itself depend on.
package bundle

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidKey is returned by every Put/vector-Put method when key
// contains a NUL byte. No downstream logic can recover from a NUL in a
// key, so it is reported immediately without touching the bundle.
var ErrInvalidKey = errors.New("bundle: key must not contain NUL")

type valueKind uint8

const (
	kindBool valueKind = iota
	kindInt32
	kindInt64
	kindDouble
	kindString
	kindBundle
	kindBoolVector
	kindInt32Vector
	kindInt64Vector
	kindDoubleVector
	kindStringVector
)

type value struct {
	kind   valueKind
	b      bool
	i32    int32
	i64    int64
	f64    float64
	s      string
	bundle *Bundle

	bv []bool
	iv []int32
	lv []int64
	dv []float64
	sv []string
}

// Bundle is a flat, ordered-by-insertion map of string keys to typed
// values.
type Bundle struct {
	order []string
	data  map[string]value
}

// New returns an empty Bundle.
func New() *Bundle {
	return &Bundle{data: make(map[string]value)}
}

func validateKey(key string) error {
	if strings.IndexByte(key, 0) != -1 {
		return ErrInvalidKey
	}
	return nil
}

func (b *Bundle) put(key string, v value) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if _, exists := b.data[key]; !exists {
		b.order = append(b.order, key)
	}
	b.data[key] = v
	return nil
}

// Len reports the number of entries in b.
func (b *Bundle) Len() int {
	return len(b.data)
}

// Remove deletes key from b, if present.
func (b *Bundle) Remove(key string) {
	if _, ok := b.data[key]; !ok {
		return
	}
	delete(b.data, key)
	for i, k := range b.order {
		if k == key {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
}

// Clone returns a deep copy of b.
func (b *Bundle) Clone() *Bundle {
	out := New()
	out.order = append([]string(nil), b.order...)
	for k, v := range b.data {
		out.data[k] = v.clone()
	}
	return out
}

func (v value) clone() value {
	cv := v
	cv.bv = append([]bool(nil), v.bv...)
	cv.iv = append([]int32(nil), v.iv...)
	cv.lv = append([]int64(nil), v.lv...)
	cv.dv = append([]float64(nil), v.dv...)
	cv.sv = append([]string(nil), v.sv...)
	if v.bundle != nil {
		cv.bundle = v.bundle.Clone()
	}
	return cv
}

// Equal reports whether b and other contain the same keys mapped to
// equal values, irrespective of insertion order.
func (b *Bundle) Equal(other *Bundle) bool {
	if other == nil {
		return b == nil
	}
	if len(b.data) != len(other.data) {
		return false
	}
	for k, v := range b.data {
		ov, ok := other.data[k]
		if !ok || !v.equal(ov) {
			return false
		}
	}
	return true
}

func (v value) equal(o value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case kindBool:
		return v.b == o.b
	case kindInt32:
		return v.i32 == o.i32
	case kindInt64:
		return v.i64 == o.i64
	case kindDouble:
		return v.f64 == o.f64
	case kindString:
		return v.s == o.s
	case kindBundle:
		return v.bundle.Equal(o.bundle)
	case kindBoolVector:
		return equalSlice(v.bv, o.bv)
	case kindInt32Vector:
		return equalSlice(v.iv, o.iv)
	case kindInt64Vector:
		return equalSlice(v.lv, o.lv)
	case kindDoubleVector:
		return equalSlice(v.dv, o.dv)
	case kindStringVector:
		return equalSlice(v.sv, o.sv)
	default:
		return false
	}
}

func equalSlice[T comparable](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (b *Bundle) get(key string, kind valueKind) (value, bool) {
	v, ok := b.data[key]
	if !ok || v.kind != kind {
		return value{}, false
	}
	return v, true
}

// --- scalar accessors ---

func (b *Bundle) PutBool(key string, v bool) error { return b.put(key, value{kind: kindBool, b: v}) }
func (b *Bundle) GetBool(key string) (bool, bool) {
	v, ok := b.get(key, kindBool)
	return v.b, ok
}

func (b *Bundle) PutInt32(key string, v int32) error {
	return b.put(key, value{kind: kindInt32, i32: v})
}
func (b *Bundle) GetInt32(key string) (int32, bool) {
	v, ok := b.get(key, kindInt32)
	return v.i32, ok
}

func (b *Bundle) PutInt64(key string, v int64) error {
	return b.put(key, value{kind: kindInt64, i64: v})
}
func (b *Bundle) GetInt64(key string) (int64, bool) {
	v, ok := b.get(key, kindInt64)
	return v.i64, ok
}

func (b *Bundle) PutDouble(key string, v float64) error {
	return b.put(key, value{kind: kindDouble, f64: v})
}
func (b *Bundle) GetDouble(key string) (float64, bool) {
	v, ok := b.get(key, kindDouble)
	return v.f64, ok
}

func (b *Bundle) PutString(key string, v string) error {
	return b.put(key, value{kind: kindString, s: v})
}
func (b *Bundle) GetString(key string) (string, bool) {
	v, ok := b.get(key, kindString)
	return v.s, ok
}

func (b *Bundle) PutBundle(key string, v *Bundle) error {
	return b.put(key, value{kind: kindBundle, bundle: v})
}
func (b *Bundle) GetBundle(key string) (*Bundle, bool) {
	v, ok := b.get(key, kindBundle)
	return v.bundle, ok
}

// --- vector accessors ---

func (b *Bundle) PutBoolVector(key string, v []bool) error {
	return b.put(key, value{kind: kindBoolVector, bv: append([]bool(nil), v...)})
}
func (b *Bundle) GetBoolVector(key string) ([]bool, bool) {
	v, ok := b.get(key, kindBoolVector)
	return v.bv, ok
}

func (b *Bundle) PutInt32Vector(key string, v []int32) error {
	return b.put(key, value{kind: kindInt32Vector, iv: append([]int32(nil), v...)})
}
func (b *Bundle) GetInt32Vector(key string) ([]int32, bool) {
	v, ok := b.get(key, kindInt32Vector)
	return v.iv, ok
}

func (b *Bundle) PutInt64Vector(key string, v []int64) error {
	return b.put(key, value{kind: kindInt64Vector, lv: append([]int64(nil), v...)})
}
func (b *Bundle) GetInt64Vector(key string) ([]int64, bool) {
	v, ok := b.get(key, kindInt64Vector)
	return v.lv, ok
}

func (b *Bundle) PutDoubleVector(key string, v []float64) error {
	return b.put(key, value{kind: kindDoubleVector, dv: append([]float64(nil), v...)})
}
func (b *Bundle) GetDoubleVector(key string) ([]float64, bool) {
	v, ok := b.get(key, kindDoubleVector)
	return v.dv, ok
}

func (b *Bundle) PutStringVector(key string, v []string) error {
	return b.put(key, value{kind: kindStringVector, sv: append([]string(nil), v...)})
}
func (b *Bundle) GetStringVector(key string) ([]string, bool) {
	v, ok := b.get(key, kindStringVector)
	return v.sv, ok
}

// VectorSize mirrors the native two-call size-probe protocol: a caller
// that mirrors the platform ABI calls VectorSize first to learn how
// large a buffer it needs, then calls the matching GetXVector to fill
// it. Go's slice semantics make the second call self-sufficient, but
// the probe entry point is kept so the shape of the wire protocol stays
// visible to such callers.
func (b *Bundle) VectorSize(key string) (int, bool) {
	v, ok := b.data[key]
	if !ok {
		return 0, false
	}
	switch v.kind {
	case kindBoolVector:
		return len(v.bv), true
	case kindInt32Vector:
		return len(v.iv), true
	case kindInt64Vector:
		return len(v.lv), true
	case kindDoubleVector:
		return len(v.dv), true
	case kindStringVector:
		return len(v.sv), true
	default:
		return 0, false
	}
}

func (v value) String() string {
	switch v.kind {
	case kindBool:
		return fmt.Sprintf("%t", v.b)
	case kindInt32:
		return fmt.Sprintf("%d", v.i32)
	case kindInt64:
		return fmt.Sprintf("%d", v.i64)
	case kindDouble:
		return fmt.Sprintf("%g", v.f64)
	case kindString:
		return v.s
	case kindBundle:
		return fmt.Sprintf("Bundle(%d entries)", v.bundle.Len())
	case kindBoolVector:
		return fmt.Sprint(v.bv)
	case kindInt32Vector:
		return fmt.Sprint(v.iv)
	case kindInt64Vector:
		return fmt.Sprint(v.lv)
	case kindDoubleVector:
		return fmt.Sprint(v.dv)
	case kindStringVector:
		return fmt.Sprint(v.sv)
	default:
		return fmt.Sprintf("value(kind=%d)", v.kind)
	}
}
