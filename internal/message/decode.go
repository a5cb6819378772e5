package message

import (
	"math/big"

	"timelock-node/internal/codec"
)

// DataArray is the positional tuple returned by the contract's message
// getter. The slot order is part of the contract ABI and must not change
// without a protocol version bump.
type DataArray [10]any

// Field names of the DataArray slots, in order.
var fieldNames = [10]string{
	"creator",
	"minFragments",
	"totalFragments",
	"revealBlock",
	"revealPeriod",
	"revealSecret",
	"hashOfRevealSecret",
	"timeLockReward",
	"encryptedMessage",
	"encryptedFragments",
}

// FieldName returns the name of DataArray slot i.
func FieldName(i int) string { return fieldNames[i] }

// ContractMessage holds the tuple slots under their names, still in ledger
// representation.
type ContractMessage struct {
	Creator            string
	MinFragments       *big.Int
	TotalFragments     *big.Int
	RevealBlock        *big.Int
	RevealPeriod       *big.Int
	RevealSecret       *big.Int
	HashOfRevealSecret *big.Int
	TimeLockReward     *big.Int
	EncryptedMessage   []string
	EncryptedFragments []string
}

// Decode checks the slot types of data and decodes it into a Message.
func Decode(data DataArray) (*Message, error) {
	cm, err := toContractMessage(data)
	if err != nil {
		return nil, err
	}
	return FromContract(cm)
}

func toContractMessage(data DataArray) (ContractMessage, error) {
	var cm ContractMessage

	creator, ok := data[0].(string)
	if !ok {
		return cm, &TupleShapeError{Index: 0, Field: fieldNames[0], Want: "string", Got: data[0]}
	}
	cm.Creator = creator

	ints := make([]*big.Int, 8)
	for i := 1; i <= 7; i++ {
		v, ok := data[i].(*big.Int)
		if !ok || v == nil {
			return cm, &TupleShapeError{Index: i, Field: fieldNames[i], Want: "non-nil *big.Int", Got: data[i]}
		}
		ints[i] = v
	}
	cm.MinFragments = ints[1]
	cm.TotalFragments = ints[2]
	cm.RevealBlock = ints[3]
	cm.RevealPeriod = ints[4]
	cm.RevealSecret = ints[5]
	cm.HashOfRevealSecret = ints[6]
	cm.TimeLockReward = ints[7]

	var err error
	if cm.EncryptedMessage, err = segmentsAt(data, 8); err != nil {
		return cm, err
	}
	if cm.EncryptedFragments, err = segmentsAt(data, 9); err != nil {
		return cm, err
	}
	return cm, nil
}

func segmentsAt(data DataArray, i int) ([]string, error) {
	segments, ok := data[i].([]string)
	if !ok {
		return nil, &TupleShapeError{Index: i, Field: fieldNames[i], Want: "[]string", Got: data[i]}
	}
	return segments, nil
}

// FromContract decodes cm into a Message. Codec errors are returned as is;
// fragment counts that break 0 < min <= total yield an
// *InvariantViolationError. No Message is returned unless every field
// decoded.
func FromContract(cm ContractMessage) (*Message, error) {
	for i, v := range []*big.Int{
		cm.MinFragments, cm.TotalFragments, cm.RevealBlock, cm.RevealPeriod,
		cm.RevealSecret, cm.HashOfRevealSecret, cm.TimeLockReward,
	} {
		if v == nil {
			return nil, &TupleShapeError{Index: i + 1, Field: fieldNames[i+1], Want: "non-nil *big.Int", Got: v}
		}
	}

	var narrowed [4]uint64
	for i, v := range []*big.Int{cm.MinFragments, cm.TotalFragments, cm.RevealBlock, cm.RevealPeriod} {
		n, err := codec.NarrowToSafeInteger(v)
		if err != nil {
			return nil, err
		}
		narrowed[i] = n
	}
	minFragments, totalFragments := narrowed[0], narrowed[1]

	revealSecret, err := codec.BigIntToFixedBytes(cm.RevealSecret, SecretSize)
	if err != nil {
		return nil, err
	}
	hashOfRevealSecret, err := codec.BigIntToFixedBytes(cm.HashOfRevealSecret, SecretSize)
	if err != nil {
		return nil, err
	}

	encryptedMessage, err := codec.HexSegmentsToBytes(cm.EncryptedMessage)
	if err != nil {
		return nil, err
	}
	encryptedFragments, err := codec.HexSegmentsToBytes(cm.EncryptedFragments)
	if err != nil {
		return nil, err
	}

	if minFragments == 0 || minFragments > totalFragments {
		return nil, &InvariantViolationError{MinFragments: minFragments, TotalFragments: totalFragments}
	}

	m := &Message{
		creator:            cm.Creator,
		minFragments:       minFragments,
		totalFragments:     totalFragments,
		revealBlock:        narrowed[2],
		revealPeriod:       narrowed[3],
		timeLockReward:     new(big.Int).Set(cm.TimeLockReward),
		encryptedMessage:   codec.BytesToBase58(encryptedMessage),
		encryptedFragments: codec.BytesToBase58(encryptedFragments),
	}
	copy(m.revealSecret[:], revealSecret)
	copy(m.hashOfRevealSecret[:], hashOfRevealSecret)
	return m, nil
}
