package shortvec

import (
	"math"

	"github.com/pkg/errors"
)

// MaxEncodedSize is the largest number of bytes a shortvec length occupies
const MaxEncodedSize = 3

var (
	ErrLenTooLarge = errors.Errorf("len exceeds %d", math.MaxUint16)
	ErrTruncated   = errors.New("shortvec: truncated length")
	ErrInvalid     = errors.Errorf("shortvec: encoding exceeds %d bytes", MaxEncodedSize)
)

// AppendLen appends the compact-u16 encoding of len to dst. Each byte carries
// 7 bits of the value, least significant first, with the high bit set on every
// byte but the last.
func AppendLen(dst []byte, len int) ([]byte, error) {
	if len < 0 || len > math.MaxUint16 {
		return dst, ErrLenTooLarge
	}

	for len >= 0x80 {
		dst = append(dst, byte(len&0x7f)|0x80)
		len >>= 7
	}
	return append(dst, byte(len)), nil
}

// DecodeLen decodes a shortvec encoded length from src at *offset, advancing
// the offset past it.
func DecodeLen(src []byte, offset *int) (int, error) {
	var val int
	for i := 0; ; i++ {
		if i == MaxEncodedSize {
			return 0, ErrInvalid
		}
		if *offset+i >= len(src) {
			return 0, ErrTruncated
		}

		b := src[*offset+i]
		val |= int(b&0x7f) << (i * 7)

		if b&0x80 == 0 {
			*offset += i + 1
			return val, nil
		}
	}
}
