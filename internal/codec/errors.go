package codec

import (
	"fmt"
	"math/big"
)

// MalformedHexError reports a hash segment that is not valid hex.
type MalformedHexError struct {
	Index   int    // position of the segment in the input sequence
	Segment string // the offending segment as received
	Err     error  // underlying encoding/hex error
}

func (e *MalformedHexError) Error() string {
	return fmt.Sprintf("malformed hex segment %d (%q): %v", e.Index, e.Segment, e.Err)
}

func (e *MalformedHexError) Unwrap() error { return e.Err }

// OverflowError reports a value whose minimal big-endian encoding does not
// fit in a fixed-width buffer.
type OverflowError struct {
	Width    int
	Length   int
	Negative bool
}

func (e *OverflowError) Error() string {
	if e.Negative {
		return fmt.Sprintf("negative value cannot be encoded into %d bytes", e.Width)
	}
	return fmt.Sprintf("value needs %d bytes, exceeds fixed width of %d", e.Length, e.Width)
}

// PrecisionLossError reports an integer outside [0, MaxSafeInteger].
type PrecisionLossError struct {
	Value *big.Int
}

func (e *PrecisionLossError) Error() string {
	return fmt.Sprintf("value %s is outside the safe integer range [0, %d]", e.Value, uint64(MaxSafeInteger))
}
