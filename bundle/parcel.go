// SPDX-License-Identifier: Unlicense OR MIT

package bundle

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// WriteTo serializes b to a parcel byte stream, in insertion order. It
// satisfies io.WriterTo.
func (b *Bundle) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	writeUint32(&buf, uint32(len(b.order)))
	for _, key := range b.order {
		v := b.data[key]
		writeString(&buf, key)
		buf.WriteByte(byte(v.kind))
		if err := writeValue(&buf, v); err != nil {
			return 0, err
		}
	}
	n, err := w.Write(buf.Bytes())
	return int64(n), err
}

// ReadFrom deserializes a parcel byte stream produced by WriteTo into b,
// replacing its current contents. It satisfies io.ReaderFrom.
func (b *Bundle) ReadFrom(r io.Reader) (int64, error) {
	br := &countingReader{r: r}
	count, err := readUint32(br)
	if err != nil {
		return br.n, err
	}
	data := make(map[string]value, count)
	order := make([]string, 0, count)
	for i := uint32(0); i < count; i++ {
		key, err := readString(br)
		if err != nil {
			return br.n, err
		}
		kindByte, err := br.readByte()
		if err != nil {
			return br.n, err
		}
		v, err := readValue(br, valueKind(kindByte))
		if err != nil {
			return br.n, err
		}
		if _, exists := data[key]; !exists {
			order = append(order, key)
		}
		data[key] = v
	}
	b.order = order
	b.data = data
	return br.n, nil
}

func writeValue(buf *bytes.Buffer, v value) error {
	switch v.kind {
	case kindBool:
		if v.b {
			buf.WriteByte(1)
		} else {
			buf.WriteByte(0)
		}
	case kindInt32:
		writeUint32(buf, uint32(v.i32))
	case kindInt64:
		writeUint64(buf, uint64(v.i64))
	case kindDouble:
		writeUint64(buf, math.Float64bits(v.f64))
	case kindString:
		writeString(buf, v.s)
	case kindBundle:
		var sub bytes.Buffer
		if v.bundle == nil {
			v.bundle = New()
		}
		if _, err := v.bundle.WriteTo(&sub); err != nil {
			return err
		}
		writeUint32(buf, uint32(sub.Len()))
		buf.Write(sub.Bytes())
	case kindBoolVector:
		writeUint32(buf, uint32(len(v.bv)))
		for _, e := range v.bv {
			if e {
				buf.WriteByte(1)
			} else {
				buf.WriteByte(0)
			}
		}
	case kindInt32Vector:
		writeUint32(buf, uint32(len(v.iv)))
		for _, e := range v.iv {
			writeUint32(buf, uint32(e))
		}
	case kindInt64Vector:
		writeUint32(buf, uint32(len(v.lv)))
		for _, e := range v.lv {
			writeUint64(buf, uint64(e))
		}
	case kindDoubleVector:
		writeUint32(buf, uint32(len(v.dv)))
		for _, e := range v.dv {
			writeUint64(buf, math.Float64bits(e))
		}
	case kindStringVector:
		writeUint32(buf, uint32(len(v.sv)))
		for _, e := range v.sv {
			writeString(buf, e)
		}
	default:
		return fmt.Errorf("bundle: unknown value kind %d", v.kind)
	}
	return nil
}

func readValue(r *countingReader, kind valueKind) (value, error) {
	v := value{kind: kind}
	switch kind {
	case kindBool:
		bt, err := r.readByte()
		v.b = bt != 0
		return v, err
	case kindInt32:
		u, err := readUint32(r)
		v.i32 = int32(u)
		return v, err
	case kindInt64:
		u, err := readUint64(r)
		v.i64 = int64(u)
		return v, err
	case kindDouble:
		u, err := readUint64(r)
		v.f64 = math.Float64frombits(u)
		return v, err
	case kindString:
		s, err := readString(r)
		v.s = s
		return v, err
	case kindBundle:
		size, err := readUint32(r)
		if err != nil {
			return v, err
		}
		sub := make([]byte, size)
		if _, err := io.ReadFull(r, sub); err != nil {
			return v, err
		}
		child := New()
		if _, err := child.ReadFrom(bytes.NewReader(sub)); err != nil {
			return v, err
		}
		v.bundle = child
		return v, nil
	case kindBoolVector:
		n, err := readUint32(r)
		if err != nil {
			return v, err
		}
		v.bv = make([]bool, n)
		for i := range v.bv {
			bt, err := r.readByte()
			if err != nil {
				return v, err
			}
			v.bv[i] = bt != 0
		}
		return v, nil
	case kindInt32Vector:
		n, err := readUint32(r)
		if err != nil {
			return v, err
		}
		v.iv = make([]int32, n)
		for i := range v.iv {
			u, err := readUint32(r)
			if err != nil {
				return v, err
			}
			v.iv[i] = int32(u)
		}
		return v, nil
	case kindInt64Vector:
		n, err := readUint32(r)
		if err != nil {
			return v, err
		}
		v.lv = make([]int64, n)
		for i := range v.lv {
			u, err := readUint64(r)
			if err != nil {
				return v, err
			}
			v.lv[i] = int64(u)
		}
		return v, nil
	case kindDoubleVector:
		n, err := readUint32(r)
		if err != nil {
			return v, err
		}
		v.dv = make([]float64, n)
		for i := range v.dv {
			u, err := readUint64(r)
			if err != nil {
				return v, err
			}
			v.dv[i] = math.Float64frombits(u)
		}
		return v, nil
	case kindStringVector:
		n, err := readUint32(r)
		if err != nil {
			return v, err
		}
		v.sv = make([]string, n)
		for i := range v.sv {
			s, err := readString(r)
			if err != nil {
				return v, err
			}
			v.sv[i] = s
		}
		return v, nil
	default:
		return v, fmt.Errorf("bundle: unknown value kind %d in parcel", kind)
	}
}

func writeUint32(buf *bytes.Buffer, v uint32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	buf.Write(tmp[:])
}

func writeUint64(buf *bytes.Buffer, v uint64) {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	buf.Write(tmp[:])
}

func writeString(buf *bytes.Buffer, s string) {
	writeUint32(buf, uint32(len(s)))
	buf.WriteString(s)
}

// countingReader wraps an io.Reader to track total bytes consumed, so
// ReadFrom can report its io.ReaderFrom byte count even on error.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

func (c *countingReader) readByte() (byte, error) {
	var b [1]byte
	if _, err := io.ReadFull(c, b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}

func readUint32(r io.Reader) (uint32, error) {
	var tmp [4]byte
	if _, err := io.ReadFull(r, tmp[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(tmp[:]), nil
}

func readUint64(r io.Reader) (uint64, error) {
	var tmp [8]byte
	if _, err := io.ReadFull(r, tmp[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(tmp[:]), nil
}

func readString(r io.Reader) (string, error) {
	n, err := readUint32(r)
	if err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}
