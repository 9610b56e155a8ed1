package model

import "strings"

// ChainRole identifies which of the two relayed chains an operation runs on.
type ChainRole string

const (
	ChainValue   ChainRole = "value"
	ChainUtility ChainRole = "utility"
)

func (c ChainRole) String() string {
	return string(c)
}

// EntryState is the lifecycle state of a queued stake intent.
type EntryState string

const (
	StatePending    EntryState = "PENDING"
	StateDue        EntryState = "DUE"
	StateProcessing EntryState = "PROCESSING"
	StateDone       EntryState = "DONE"
	StateFailed     EntryState = "FAILED"
)

func (s EntryState) String() string {
	return string(s)
}

// Live reports whether an entry in this state still occupies its identity key.
// Done and Failed entries are discarded, freeing the key for re-observation.
func (s EntryState) Live() bool {
	return s == StatePending || s == StateDue || s == StateProcessing
}

// TokenKind is the closed branch discriminator for the claim step.
type TokenKind string

const (
	TokenKindNative  TokenKind = "native"
	TokenKindBranded TokenKind = "branded"
)

// StakeIntent is the decoded payload of a stake-intent declaration event
// observed on the value chain.
type StakeIntent struct {
	IntentHash  string // 32-byte hash correlating the stake to its mint
	Staker      string // 20-byte account that declared the intent
	Beneficiary string // 20-byte account receiving the minted tokens
	TokenID     string // 32-byte token identifier, distinguishes native vs branded
}

// IdentityKey returns the deduplication key for the intent. The intent hash
// is immutable for a given declaration, so it identifies the relay attempt.
func (s StakeIntent) IdentityKey() string {
	return NormalizeHex(s.IntentHash)
}

// Kind resolves the token-type branch against the configured native
// identifier. Comparison is case-insensitive hex.
func (s StakeIntent) Kind(nativeTokenID string) TokenKind {
	if NormalizeHex(s.TokenID) == NormalizeHex(nativeTokenID) {
		return TokenKindNative
	}
	return TokenKindBranded
}

// SameAccount compares two hex account identifiers case-insensitively.
func SameAccount(a, b string) bool {
	return NormalizeHex(a) != "" && NormalizeHex(a) == NormalizeHex(b)
}

// NormalizeHex lowercases a hex identifier and guarantees a 0x prefix so
// that provider and config spellings compare equal.
func NormalizeHex(v string) string {
	trimmed := strings.TrimSpace(v)
	if trimmed == "" {
		return ""
	}
	withoutPrefix := strings.TrimPrefix(strings.TrimPrefix(trimmed, "0x"), "0X")
	if withoutPrefix == "" {
		return ""
	}
	return "0x" + strings.ToLower(withoutPrefix)
}
