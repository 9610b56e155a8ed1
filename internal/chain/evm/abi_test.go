package evm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeCall(t *testing.T) {
	t.Parallel()

	t.Run("single word right-aligned", func(t *testing.T) {
		t.Parallel()
		data, err := encodeCall(selectorProcessStaking, "0xABCD")
		require.NoError(t, err)
		assert.Equal(t, selectorProcessStaking+strings.Repeat("0", 60)+"abcd", data)
	})

	t.Run("full word passes through", func(t *testing.T) {
		t.Parallel()
		word := strings.Repeat("ab", 32)
		data, err := encodeCall(selectorProcessMinting, "0x"+word)
		require.NoError(t, err)
		assert.Equal(t, selectorProcessMinting+word, data)
	})

	t.Run("oversized word rejected", func(t *testing.T) {
		t.Parallel()
		_, err := encodeCall(selectorClaim, "0x"+strings.Repeat("a", 65))
		assert.Error(t, err)
	})

	t.Run("non-hex rejected", func(t *testing.T) {
		t.Parallel()
		_, err := encodeCall(selectorClaim, "0xzz")
		assert.Error(t, err)
	})

	t.Run("empty rejected", func(t *testing.T) {
		t.Parallel()
		_, err := encodeCall(selectorTokenAddress, "")
		assert.Error(t, err)
	})
}

func TestDataWords(t *testing.T) {
	t.Parallel()

	words, err := dataWords("0x" + strings.Repeat("1", 64) + strings.Repeat("2", 64))
	require.NoError(t, err)
	require.Len(t, words, 2)
	assert.Equal(t, strings.Repeat("1", 64), words[0])
	assert.Equal(t, strings.Repeat("2", 64), words[1])

	_, err = dataWords("0x1234")
	assert.Error(t, err, "misaligned data")

	words, err = dataWords("0x")
	require.NoError(t, err)
	assert.Empty(t, words)
}

func TestWordToAddress(t *testing.T) {
	t.Parallel()

	addr, err := wordToAddress("0x" + strings.Repeat("0", 24) + strings.Repeat("AB", 20))
	require.NoError(t, err)
	assert.Equal(t, "0x"+strings.Repeat("ab", 20), addr)

	_, err = wordToAddress("0x1234")
	assert.Error(t, err)
}

func TestWordToBytes32(t *testing.T) {
	t.Parallel()

	word, err := wordToBytes32("0x" + strings.Repeat("C", 64))
	require.NoError(t, err)
	assert.Equal(t, "0x"+strings.Repeat("c", 64), word)

	_, err = wordToBytes32("0x1234")
	assert.Error(t, err)
}
