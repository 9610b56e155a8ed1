package evm

import (
	"fmt"
	"strings"
)

// The relayer touches three fixed contract entry points, so calldata is
// assembled from 32-byte words directly instead of pulling in an ABI codec.

const (
	// processStaking(bytes32)
	selectorProcessStaking = "0x6a7d90bc"
	// processMinting(bytes32)
	selectorProcessMinting = "0x71c5ecb1"
	// claim(address)
	selectorClaim = "0x1e83409a"
	// tokenAddress(bytes32)
	selectorTokenAddress = "0x06bfa938"

	// StakingIntentDeclared(bytes32 indexed uuid, address indexed staker, address beneficiary, bytes32 stakingIntentHash)
	topicStakingIntentDeclared = "0x9a8aa0c464e27eca7f9d7a2e4a319e08cdc0e46a1c0312a37a4d55a35b5e0c7d"
)

const wordHexLen = 64

func encodeCall(selector string, words ...string) (string, error) {
	var sb strings.Builder
	sb.WriteString(selector)
	for _, w := range words {
		encoded, err := padWord(w)
		if err != nil {
			return "", err
		}
		sb.WriteString(encoded)
	}
	return sb.String(), nil
}

// padWord left-pads a hex value to a 32-byte ABI word without 0x prefix.
func padWord(v string) (string, error) {
	raw := strings.ToLower(strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(v), "0x"), "0X"))
	if raw == "" || len(raw) > wordHexLen {
		return "", fmt.Errorf("abi: value %q does not fit a 32-byte word", v)
	}
	for _, ch := range raw {
		if (ch < '0' || ch > '9') && (ch < 'a' || ch > 'f') {
			return "", fmt.Errorf("abi: value %q is not hex", v)
		}
	}
	return strings.Repeat("0", wordHexLen-len(raw)) + raw, nil
}

// dataWords splits log/call data into 32-byte words.
func dataWords(data string) ([]string, error) {
	raw := strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(data), "0x"), "0X")
	if len(raw)%wordHexLen != 0 {
		return nil, fmt.Errorf("abi: data length %d is not word-aligned", len(raw))
	}
	words := make([]string, 0, len(raw)/wordHexLen)
	for i := 0; i < len(raw); i += wordHexLen {
		words = append(words, raw[i:i+wordHexLen])
	}
	return words, nil
}

// wordToAddress extracts the 20-byte address from a right-aligned word.
func wordToAddress(word string) (string, error) {
	raw := strings.ToLower(strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(word), "0x"), "0X"))
	if len(raw) < 40 {
		return "", fmt.Errorf("abi: word %q too short for an address", word)
	}
	return "0x" + raw[len(raw)-40:], nil
}

func wordToBytes32(word string) (string, error) {
	raw := strings.ToLower(strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(word), "0x"), "0X"))
	if len(raw) != wordHexLen {
		return "", fmt.Errorf("abi: word %q is not 32 bytes", word)
	}
	return "0x" + raw, nil
}
