package message

import (
	"crypto/sha256"
	"errors"
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timelock-node/internal/codec"
)

func exampleSecret() *big.Int { return big.NewInt(1) }

func exampleCommitment() *big.Int {
	secret := make([]byte, SecretSize)
	secret[SecretSize-1] = 0x01
	sum := sha256.Sum256(secret)
	return new(big.Int).SetBytes(sum[:])
}

func exampleReward() *big.Int {
	reward, _ := new(big.Int).SetString("1000000000000000000", 10)
	return reward
}

func exampleDataArray() DataArray {
	return DataArray{
		"0xA1",
		big.NewInt(2),
		big.NewInt(5),
		big.NewInt(1000),
		big.NewInt(50),
		exampleSecret(),
		exampleCommitment(),
		exampleReward(),
		[]string{"12", "20", "aa", "bb"},
		[]string{"12", "20", "cc", "dd"},
	}
}

func TestDecode_Example(t *testing.T) {
	m, err := Decode(exampleDataArray())
	require.NoError(t, err)
	require.NotNil(t, m)

	assert.Equal(t, "0xA1", m.Creator())
	assert.Equal(t, uint64(2), m.MinFragments())
	assert.Equal(t, uint64(5), m.TotalFragments())
	assert.Equal(t, uint64(1000), m.RevealBlock())
	assert.Equal(t, uint64(50), m.RevealPeriod())

	var wantSecret [SecretSize]byte
	wantSecret[SecretSize-1] = 0x01
	assert.Equal(t, wantSecret, m.RevealSecret())

	secret := m.RevealSecret()
	assert.Equal(t, sha256.Sum256(secret[:]), m.HashOfRevealSecret())

	assert.Equal(t, 0, m.TimeLockReward().Cmp(exampleReward()))
	assert.Equal(t, codec.BytesToBase58([]byte{0x12, 0x20, 0xaa, 0xbb}), m.EncryptedMessage())
	assert.Equal(t, "TskUa", m.EncryptedMessage())
	assert.Equal(t, "Tso5E", m.EncryptedFragments())
}

func TestDecode_FragmentCountsPreserved(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 500; i++ {
		total := uint64(rng.Int63n(codec.MaxSafeInteger)) + 1
		min := uint64(rng.Int63n(int64(total))) + 1

		data := exampleDataArray()
		data[1] = new(big.Int).SetUint64(min)
		data[2] = new(big.Int).SetUint64(total)

		m, err := Decode(data)
		require.NoError(t, err)
		require.Equal(t, min, m.MinFragments())
		require.Equal(t, total, m.TotalFragments())
	}
}

func TestDecode_InvariantViolation(t *testing.T) {
	cases := []struct {
		name       string
		min, total int64
	}{
		{"minAboveTotal", 3, 2},
		{"zeroMin", 0, 5},
		{"zeroBoth", 0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data := exampleDataArray()
			data[1] = big.NewInt(tc.min)
			data[2] = big.NewInt(tc.total)

			m, err := Decode(data)
			require.Nil(t, m)

			var violation *InvariantViolationError
			require.True(t, errors.As(err, &violation))
			assert.Equal(t, uint64(tc.min), violation.MinFragments)
			assert.Equal(t, uint64(tc.total), violation.TotalFragments)
		})
	}
}

func TestDecode_CodecErrorsPropagate(t *testing.T) {
	tooWide := new(big.Int).Lsh(big.NewInt(1), 8*SecretSize)
	overCeiling := new(big.Int).SetUint64(codec.MaxSafeInteger + 1)

	cases := []struct {
		name   string
		mutate func(d *DataArray)
		check  func(t *testing.T, err error)
	}{
		{
			name:   "oddHexInMessage",
			mutate: func(d *DataArray) { d[8] = []string{"12", "abc"} },
			check: func(t *testing.T, err error) {
				var target *codec.MalformedHexError
				require.True(t, errors.As(err, &target))
				assert.Equal(t, "abc", target.Segment)
			},
		},
		{
			name:   "badDigitInFragments",
			mutate: func(d *DataArray) { d[9] = []string{"g0"} },
			check: func(t *testing.T, err error) {
				var target *codec.MalformedHexError
				require.True(t, errors.As(err, &target))
			},
		},
		{
			name:   "secretTooWide",
			mutate: func(d *DataArray) { d[5] = tooWide },
			check: func(t *testing.T, err error) {
				var target *codec.OverflowError
				require.True(t, errors.As(err, &target))
				assert.Equal(t, SecretSize, target.Width)
			},
		},
		{
			name:   "commitmentTooWide",
			mutate: func(d *DataArray) { d[6] = tooWide },
			check: func(t *testing.T, err error) {
				var target *codec.OverflowError
				require.True(t, errors.As(err, &target))
			},
		},
		{
			name:   "revealBlockOverCeiling",
			mutate: func(d *DataArray) { d[3] = overCeiling },
			check: func(t *testing.T, err error) {
				var target *codec.PrecisionLossError
				require.True(t, errors.As(err, &target))
			},
		},
		{
			name:   "totalFragmentsOverCeiling",
			mutate: func(d *DataArray) { d[2] = overCeiling },
			check: func(t *testing.T, err error) {
				var target *codec.PrecisionLossError
				require.True(t, errors.As(err, &target))
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data := exampleDataArray()
			tc.mutate(&data)

			m, err := Decode(data)
			require.Error(t, err)
			assert.Nil(t, m)
			tc.check(t, err)
		})
	}
}

func TestDecode_RewardIsNeverNarrowed(t *testing.T) {
	huge := new(big.Int).Lsh(big.NewInt(1), 300)
	data := exampleDataArray()
	data[7] = huge

	m, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, 0, m.TimeLockReward().Cmp(huge))
}

func TestDecode_TupleShape(t *testing.T) {
	cases := []struct {
		name  string
		index int
		value any
	}{
		{"creatorNotString", 0, 42},
		{"minFragmentsInt64", 1, int64(2)},
		{"nilBigInt", 5, (*big.Int)(nil)},
		{"missingReward", 7, nil},
		{"messageNotSegments", 8, "1220aabb"},
		{"fragmentsNil", 9, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data := exampleDataArray()
			data[tc.index] = tc.value

			m, err := Decode(data)
			require.Nil(t, m)

			var shapeErr *TupleShapeError
			require.True(t, errors.As(err, &shapeErr))
			assert.Equal(t, tc.index, shapeErr.Index)
			assert.Equal(t, FieldName(tc.index), shapeErr.Field)
		})
	}
}

func TestFromContract_NilField(t *testing.T) {
	_, err := FromContract(ContractMessage{Creator: "0xA1"})
	var shapeErr *TupleShapeError
	require.True(t, errors.As(err, &shapeErr))
	assert.Equal(t, "minFragments", shapeErr.Field)
}

func TestMessage_DoesNotAliasInput(t *testing.T) {
	data := exampleDataArray()
	reward := data[7].(*big.Int)

	m, err := Decode(data)
	require.NoError(t, err)

	reward.SetInt64(7)
	data[5].(*big.Int).SetInt64(9)
	assert.Equal(t, 0, m.TimeLockReward().Cmp(exampleReward()))
	assert.Equal(t, byte(0x01), m.RevealSecret()[SecretSize-1])

	got := m.TimeLockReward()
	got.SetInt64(0)
	assert.Equal(t, 0, m.TimeLockReward().Cmp(exampleReward()))

	secret := m.RevealSecret()
	secret[0] = 0xff
	assert.Equal(t, byte(0x00), m.RevealSecret()[0])
}

func TestDecode_Concurrent(t *testing.T) {
	t.Parallel()

	done := make(chan error, 16)
	for i := 0; i < cap(done); i++ {
		go func(n int64) {
			data := exampleDataArray()
			data[4] = big.NewInt(n)
			m, err := Decode(data)
			if err == nil && m.RevealPeriod() != uint64(n) {
				err = errors.New("reveal period mixed up between goroutines")
			}
			done <- err
		}(int64(i))
	}
	for i := 0; i < cap(done); i++ {
		require.NoError(t, <-done)
	}
}
