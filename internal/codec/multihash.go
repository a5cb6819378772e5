package codec

import (
	"github.com/multiformats/go-multihash"
)

// MultihashInfo describes the self-describing prefix of a content address.
type MultihashInfo struct {
	Code         uint64
	Name         string
	DigestLength int
}

// DescribeMultihash reports the hash function and digest length carried by
// b when b parses as a well-formed multihash. Decoding never depends on the
// result; content addresses are otherwise treated as opaque bytes.
func DescribeMultihash(b []byte) (MultihashInfo, bool) {
	decoded, err := multihash.Decode(b)
	if err != nil {
		return MultihashInfo{}, false
	}
	return MultihashInfo{
		Code:         decoded.Code,
		Name:         decoded.Name,
		DigestLength: decoded.Length,
	}, true
}
