// Package codec converts between the ledger's native representations
// (hex digit strings, arbitrary-precision integers) and the fixed-width
// byte buffers, native integers and base58 text used by decoded messages.
//
// Every function is pure and safe for concurrent use.
package codec

import (
	"encoding/hex"
	"errors"
	"math/big"
	"strings"

	"github.com/btcsuite/btcutil/base58"
)

// MaxSafeInteger is the largest integer a float64 represents exactly
// (2^53 - 1). Narrowed fields never exceed it so that they survive a
// round trip through JSON consumers.
const MaxSafeInteger = 1<<53 - 1

var maxSafe = new(big.Int).SetUint64(MaxSafeInteger)

var errEmptyPrefixed = errors.New("no hex digits after 0x prefix")

// HexSegmentsToBytes decodes each hex segment in order and returns the
// concatenation. A single leading "0x" or "0X" per segment is accepted.
func HexSegmentsToBytes(segments []string) ([]byte, error) {
	size := 0
	for _, s := range segments {
		size += len(s) / 2
	}

	out := make([]byte, 0, size)
	for i, s := range segments {
		digits := s
		if strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") {
			digits = digits[2:]
			if digits == "" {
				return nil, &MalformedHexError{Index: i, Segment: s, Err: errEmptyPrefixed}
			}
		}
		b, err := hex.DecodeString(digits)
		if err != nil {
			return nil, &MalformedHexError{Index: i, Segment: s, Err: err}
		}
		out = append(out, b...)
	}
	return out, nil
}

// BytesToBase58 encodes b with the Bitcoin base58 alphabet. Leading zero
// bytes are kept as leading '1' characters; an empty buffer yields "".
func BytesToBase58(b []byte) string {
	return base58.Encode(b)
}

// ErrInvalidBase58 is returned by Base58ToBytes for text outside the alphabet.
var ErrInvalidBase58 = errors.New("invalid base58 string")

// Base58ToBytes is the inverse of BytesToBase58.
func Base58ToBytes(s string) ([]byte, error) {
	b := base58.Decode(s)
	if len(b) == 0 && s != "" {
		return nil, ErrInvalidBase58
	}
	return b, nil
}

// BytesToBigInt interprets b as a big-endian unsigned integer.
func BytesToBigInt(b []byte) *big.Int {
	return new(big.Int).SetBytes(b)
}

// BigIntToFixedBytes returns the big-endian encoding of v left-padded with
// zeros to exactly width bytes. v must not be nil.
func BigIntToFixedBytes(v *big.Int, width int) ([]byte, error) {
	if v.Sign() < 0 {
		return nil, &OverflowError{Width: width, Length: (v.BitLen() + 7) / 8, Negative: true}
	}
	length := (v.BitLen() + 7) / 8
	if width < 0 || length > width {
		return nil, &OverflowError{Width: width, Length: length}
	}
	return v.FillBytes(make([]byte, width)), nil
}

// NarrowToSafeInteger converts v to a uint64, failing when v is negative
// or greater than MaxSafeInteger. v must not be nil.
func NarrowToSafeInteger(v *big.Int) (uint64, error) {
	if v.Sign() < 0 || v.Cmp(maxSafe) > 0 {
		return 0, &PrecisionLossError{Value: new(big.Int).Set(v)}
	}
	return v.Uint64(), nil
}
