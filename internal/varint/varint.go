// Package varint implements the unsigned base-128 integer encoding used by
// Sponge schematic block data.
package varint

import (
	"errors"
	"fmt"
)

// MaxLen is the maximum encoded length of a 32-bit value.
const MaxLen = 5

var (
	// ErrTruncated is returned when the input ends inside a varint.
	ErrTruncated = errors.New("varint extends beyond data")
	// ErrTooLong is returned when a varint does not fit in 32 bits.
	ErrTooLong = errors.New("varint too long")
)

// Append appends the encoding of v to dst and returns the extended slice.
// Append(nil, v) is the shortest encoding of v: 1 to MaxLen bytes.
func Append(dst []byte, v uint32) []byte {
	for v >= 0x80 {
		dst = append(dst, byte(v)|0x80)
		v >>= 7
	}
	return append(dst, byte(v))
}

// Decode reads a single varint from the start of data.
// Returns the value and the number of bytes read.
func Decode(data []byte) (uint32, int, error) {
	var value uint32
	for i := 0; i < MaxLen; i++ {
		if i >= len(data) {
			return 0, 0, ErrTruncated
		}
		b := data[i]
		if i == MaxLen-1 && b > 0x0F {
			return 0, 0, ErrTooLong
		}
		value |= uint32(b&0x7F) << (7 * i)
		if b&0x80 == 0 {
			return value, i + 1, nil
		}
	}
	return 0, 0, ErrTooLong
}

// DecodeArray decodes exactly count varints from data. Trailing bytes are an error.
func DecodeArray(data []byte, count int) ([]uint32, error) {
	values := make([]uint32, count)
	offset := 0
	for i := range count {
		v, n, err := Decode(data[offset:])
		if err != nil {
			return nil, fmt.Errorf("decode varint %d: %w", i, err)
		}
		values[i] = v
		offset += n
	}
	if offset != len(data) {
		return nil, fmt.Errorf("%d trailing bytes after %d varints", len(data)-offset, count)
	}
	return values, nil
}
