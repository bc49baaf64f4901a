package wire

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// encoder accumulates a deterministic binary payload. Zero value is usable.
type encoder struct {
	buf bytes.Buffer
}

func (e *encoder) Bytes() []byte { return e.buf.Bytes() }

func (e *encoder) PutUint8(v uint8) { e.buf.WriteByte(v) }

func (e *encoder) PutBool(v bool) {
	if v {
		e.buf.WriteByte(1)
	} else {
		e.buf.WriteByte(0)
	}
}

// PutUvarint writes v as an unsigned little-endian variable-length integer
// (standard LEB128, per encoding/binary.PutUvarint).
func (e *encoder) PutUvarint(v uint64) {
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(tmp[:], v)
	e.buf.Write(tmp[:n])
}

func (e *encoder) PutInt32(v int32)     { e.PutUvarint(zigzag32(v)) }
func (e *encoder) PutInt64(v int64)     { e.PutUvarint(zigzag64(v)) }
func (e *encoder) PutFloat64(v float64) { e.PutUvarint(math.Float64bits(v)) }

func (e *encoder) PutBytes(b []byte) {
	e.PutUvarint(uint64(len(b)))
	e.buf.Write(b)
}

func (e *encoder) PutString(s string) { e.PutBytes([]byte(s)) }

func zigzag32(v int32) uint64 { return uint64(uint32((v << 1) ^ (v >> 31))) }
func zigzag64(v int64) uint64 { return uint64((v << 1) ^ (v >> 63)) }
func unzigzag32(v uint64) int32 {
	u := uint32(v)
	return int32((u >> 1) ^ -(u & 1))
}
func unzigzag64(v uint64) int64 {
	return int64((v >> 1) ^ -(v & 1))
}

// decoder reads fields in declaration order from a payload. Any short read
// is reported as ErrDeserialization.
type decoder struct {
	buf []byte
	pos int
}

func newDecoder(payload []byte) *decoder { return &decoder{buf: payload} }

func (d *decoder) err(what string) error {
	return fmt.Errorf("%w: %s truncated at offset %d", ErrDeserialization, what, d.pos)
}

func (d *decoder) GetUint8() (uint8, error) {
	if d.pos >= len(d.buf) {
		return 0, d.err("uint8")
	}
	v := d.buf[d.pos]
	d.pos++
	return v, nil
}

func (d *decoder) GetBool() (bool, error) {
	v, err := d.GetUint8()
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

func (d *decoder) GetUvarint() (uint64, error) {
	v, n := binary.Uvarint(d.buf[d.pos:])
	if n <= 0 {
		return 0, d.err("uvarint")
	}
	d.pos += n
	return v, nil
}

func (d *decoder) GetInt32() (int32, error) {
	v, err := d.GetUvarint()
	if err != nil {
		return 0, err
	}
	return unzigzag32(v), nil
}

func (d *decoder) GetInt64() (int64, error) {
	v, err := d.GetUvarint()
	if err != nil {
		return 0, err
	}
	return unzigzag64(v), nil
}

func (d *decoder) GetFloat64() (float64, error) {
	v, err := d.GetUvarint()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

func (d *decoder) GetBytes() ([]byte, error) {
	n, err := d.GetUvarint()
	if err != nil {
		return nil, err
	}
	if n > MaxMessageSize || d.pos+int(n) > len(d.buf) {
		return nil, d.err("bytes")
	}
	v := d.buf[d.pos : d.pos+int(n)]
	d.pos += int(n)
	return v, nil
}

func (d *decoder) GetString() (string, error) {
	b, err := d.GetBytes()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Done reports whether every byte of the payload has been consumed. Trailing
// bytes after a successful decode indicate a malformed or truncated frame.
func (d *decoder) Done() bool { return d.pos == len(d.buf) }
