package dto

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"math/big"
	"strings"

	"github.com/pkg/errors"

	"timelock-node/internal/codec"
	"timelock-node/internal/message"
)

// ErrBadTuple is returned for JSON that is not a 10-slot message tuple.
var ErrBadTuple = errors.New("invalid message tuple")

// ParseDataArray reads a JSON array in contract slot order into a
// message.DataArray. Integer slots accept JSON numbers or strings in
// plain decimal (leading zeros allowed, no separators) or 0x-prefixed
// hex; the two content slots are arrays of hex segments.
func ParseDataArray(raw []byte) (message.DataArray, error) {
	var data message.DataArray

	var slots []json.RawMessage
	if err := json.Unmarshal(raw, &slots); err != nil {
		return data, errors.Wrap(ErrBadTuple, err.Error())
	}
	if len(slots) != len(data) {
		return data, errors.Wrapf(ErrBadTuple, "expected %d slots, got %d", len(data), len(slots))
	}

	var creator string
	if err := json.Unmarshal(slots[0], &creator); err != nil {
		return data, slotError(0, err)
	}
	data[0] = creator

	for i := 1; i <= 7; i++ {
		v, err := parseBigInt(slots[i])
		if err != nil {
			return data, slotError(i, err)
		}
		data[i] = v
	}

	for i := 8; i <= 9; i++ {
		var segments []string
		if err := json.Unmarshal(slots[i], &segments); err != nil {
			return data, slotError(i, err)
		}
		if segments == nil {
			return data, slotError(i, errors.New("segments must be an array"))
		}
		data[i] = segments
	}

	return data, nil
}

func slotError(i int, err error) error {
	return errors.Wrapf(ErrBadTuple, "slot %d (%s): %v", i, message.FieldName(i), err)
}

func parseBigInt(raw json.RawMessage) (*big.Int, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}

	var text string
	switch t := v.(type) {
	case json.Number:
		text = t.String()
	case string:
		text = strings.TrimSpace(t)
	default:
		return nil, errors.Errorf("want integer or string, got %T", v)
	}

	base, digits := 10, text
	if strings.HasPrefix(text, "0x") || strings.HasPrefix(text, "0X") {
		base, digits = 16, text[2:]
		// SetString would take a sign after the prefix
		if digits == "" || digits[0] == '+' || digits[0] == '-' {
			return nil, errors.Errorf("%q is not a hex integer", text)
		}
	}

	n, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return nil, errors.Errorf("%q is not an integer", text)
	}
	return n, nil
}

// MultihashResponse describes the descriptor bytes of a content address.
type MultihashResponse struct {
	Code         uint64 `json:"code"`
	Name         string `json:"name,omitempty"`
	DigestLength int    `json:"digestLength"`
}

// MessageResponse is the JSON rendering of a decoded message.
type MessageResponse struct {
	Creator                     string             `json:"creator"`
	MinFragments                uint64             `json:"minFragments"`
	TotalFragments              uint64             `json:"totalFragments"`
	RevealBlock                 uint64             `json:"revealBlock"`
	RevealPeriod                uint64             `json:"revealPeriod"`
	RevealSecret                string             `json:"revealSecret"`
	HashOfRevealSecret          string             `json:"hashOfRevealSecret"`
	TimeLockReward              string             `json:"timeLockReward"` // decimal; may exceed 2^53
	EncryptedMessage            string             `json:"encryptedMessage"`
	EncryptedFragments          string             `json:"encryptedFragments"`
	EncryptedMessageMultihash   *MultihashResponse `json:"encryptedMessageMultihash,omitempty"`
	EncryptedFragmentsMultihash *MultihashResponse `json:"encryptedFragmentsMultihash,omitempty"`
}

// NewMessageResponse renders m. When describe is set, content addresses
// that parse as multihashes get their descriptor attached.
func NewMessageResponse(m *message.Message, describe bool) MessageResponse {
	secret := m.RevealSecret()
	commitment := m.HashOfRevealSecret()

	resp := MessageResponse{
		Creator:            m.Creator(),
		MinFragments:       m.MinFragments(),
		TotalFragments:     m.TotalFragments(),
		RevealBlock:        m.RevealBlock(),
		RevealPeriod:       m.RevealPeriod(),
		RevealSecret:       "0x" + hex.EncodeToString(secret[:]),
		HashOfRevealSecret: "0x" + hex.EncodeToString(commitment[:]),
		TimeLockReward:     m.TimeLockReward().String(),
		EncryptedMessage:   m.EncryptedMessage(),
		EncryptedFragments: m.EncryptedFragments(),
	}
	if describe {
		resp.EncryptedMessageMultihash = describeAddress(m.EncryptedMessage())
		resp.EncryptedFragmentsMultihash = describeAddress(m.EncryptedFragments())
	}
	return resp
}

func describeAddress(address string) *MultihashResponse {
	raw, err := codec.Base58ToBytes(address)
	if err != nil {
		return nil
	}
	info, ok := codec.DescribeMultihash(raw)
	if !ok {
		return nil
	}
	return &MultihashResponse{Code: info.Code, Name: info.Name, DigestLength: info.DigestLength}
}
