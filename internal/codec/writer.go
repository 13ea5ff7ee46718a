// Package codec implements the deterministic big-endian binary encoding
// shared by every wire and store type: keys, values, events, instructions,
// transactions, proofs and their containing submission/query envelopes.
// Encoding order is always enum tag (u8) then fields in declared order.
package codec

import (
	"bytes"
	"encoding/binary"
	"errors"
)

// Decode error taxonomy: malformed bytes, unknown tags, and
// out-of-range lengths are rejected at the boundary and never propagate
// past it.
var (
	ErrEndOfBuffer  = errors.New("codec: end of buffer")
	ErrUnknownTag   = errors.New("codec: unknown enum tag")
	ErrLengthCap    = errors.New("codec: length exceeds cap")
	ErrTrailingData = errors.New("codec: trailing bytes after decode")
)

const (
	MaxNameLength          = 32
	MaxPayloadLength       = 256
	MaxSubmissionTxCount   = 128
	MaxProofOps            = 500
	MaxProofNodes          = 500
	MaxLeaderboardEntries  = 10
	MaxTournamentPlayers   = 1000
)

// Writer accumulates a deterministic big-endian encoding.
type Writer struct {
	buf bytes.Buffer
}

func NewWriter() *Writer { return &Writer{} }

func (w *Writer) Bytes() []byte { return w.buf.Bytes() }

func (w *Writer) WriteU8(v uint8)   { w.buf.WriteByte(v) }
func (w *Writer) WriteBool(v bool) {
	if v {
		w.buf.WriteByte(1)
	} else {
		w.buf.WriteByte(0)
	}
}

func (w *Writer) WriteU16(v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	w.buf.Write(b[:])
}

func (w *Writer) WriteU32(v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	w.buf.Write(b[:])
}

func (w *Writer) WriteU64(v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	w.buf.Write(b[:])
}

func (w *Writer) WriteI64(v int64) { w.WriteU64(uint64(v)) }

// WriteBytesFixed writes a length-free fixed-size byte slice verbatim
// (signatures, public keys, digests).
func (w *Writer) WriteBytesFixed(b []byte) { w.buf.Write(b) }

// WriteBytes writes a u32-length-prefixed byte slice.
func (w *Writer) WriteBytes(b []byte) {
	w.WriteU32(uint32(len(b)))
	w.buf.Write(b)
}

// WriteString writes a u32-length-prefixed UTF-8 string.
func (w *Writer) WriteString(s string) { w.WriteBytes([]byte(s)) }

// Reader consumes a deterministic big-endian encoding, rejecting unknown
// tags and capped lengths without partial construction.
type Reader struct {
	buf []byte
	pos int
}

func NewReader(b []byte) *Reader { return &Reader{buf: b} }

func (r *Reader) Remaining() int { return len(r.buf) - r.pos }

func (r *Reader) need(n int) error {
	if r.Remaining() < n {
		return ErrEndOfBuffer
	}
	return nil
}

func (r *Reader) ReadU8() (uint8, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	v := r.buf[r.pos]
	r.pos++
	return v, nil
}

func (r *Reader) ReadBool() (bool, error) {
	v, err := r.ReadU8()
	return v != 0, err
}

func (r *Reader) ReadU16() (uint16, error) {
	if err := r.need(2); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint16(r.buf[r.pos:])
	r.pos += 2
	return v, nil
}

func (r *Reader) ReadU32() (uint32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint32(r.buf[r.pos:])
	r.pos += 4
	return v, nil
}

func (r *Reader) ReadU64() (uint64, error) {
	if err := r.need(8); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint64(r.buf[r.pos:])
	r.pos += 8
	return v, nil
}

func (r *Reader) ReadI64() (int64, error) {
	v, err := r.ReadU64()
	return int64(v), err
}

func (r *Reader) ReadBytesFixed(n int) ([]byte, error) {
	if err := r.need(n); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, r.buf[r.pos:r.pos+n])
	r.pos += n
	return out, nil
}

// ReadBytes reads a u32-length-prefixed byte slice, rejecting lengths over
// cap before allocating.
func (r *Reader) ReadBytes(cap uint32) ([]byte, error) {
	n, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	if n > cap {
		return nil, ErrLengthCap
	}
	return r.ReadBytesFixed(int(n))
}

func (r *Reader) ReadString(cap uint32) (string, error) {
	b, err := r.ReadBytes(cap)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ReadVecLen reads and validates a u32 vector length against cap, without
// allocating the backing slice (callers loop and append).
func (r *Reader) ReadVecLen(cap uint32) (uint32, error) {
	n, err := r.ReadU32()
	if err != nil {
		return 0, err
	}
	if n > cap {
		return 0, ErrLengthCap
	}
	return n, nil
}

// Finish rejects trailing bytes after a top-level decode.
func (r *Reader) Finish() error {
	if r.Remaining() != 0 {
		return ErrTrailingData
	}
	return nil
}
