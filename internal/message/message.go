// Package message decodes time-locked messages read from the ledger
// contract into immutable Message values.
package message

import (
	"math/big"
)

// SecretSize is the width of the reveal secret and its commitment hash.
const SecretSize = 32

// Message is one threshold secret-sharing commitment as stored on chain.
// A Message is immutable; accessors return copies of its buffers.
type Message struct {
	creator            string
	minFragments       uint64
	totalFragments     uint64
	revealBlock        uint64
	revealPeriod       uint64
	revealSecret       [SecretSize]byte
	hashOfRevealSecret [SecretSize]byte
	timeLockReward     *big.Int
	encryptedMessage   string
	encryptedFragments string
}

// Creator is the address of the account that created the message.
func (m *Message) Creator() string { return m.creator }

// MinFragments is K, the number of fragments needed to rebuild the secret.
func (m *Message) MinFragments() uint64 { return m.minFragments }

// TotalFragments is N, the number of fragments distributed.
func (m *Message) TotalFragments() uint64 { return m.totalFragments }

// RevealBlock is the block number that opens the reveal period.
func (m *Message) RevealBlock() uint64 { return m.revealBlock }

// RevealPeriod is the length of the reveal window in blocks.
func (m *Message) RevealPeriod() uint64 { return m.revealPeriod }

// RevealSecret is the secret used to decrypt fragment metadata once revealed.
func (m *Message) RevealSecret() [SecretSize]byte { return m.revealSecret }

// HashOfRevealSecret is the commitment published before the reveal.
func (m *Message) HashOfRevealSecret() [SecretSize]byte { return m.hashOfRevealSecret }

// TimeLockReward returns a copy of the reward staked by the creator.
func (m *Message) TimeLockReward() *big.Int { return new(big.Int).Set(m.timeLockReward) }

// EncryptedMessage is the base58 content address of the encrypted payload.
func (m *Message) EncryptedMessage() string { return m.encryptedMessage }

// EncryptedFragments is the base58 content address of the encrypted fragment set.
func (m *Message) EncryptedFragments() string { return m.encryptedFragments }
