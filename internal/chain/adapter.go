package chain

import (
	"context"

	"github.com/bpl-lane/mosaic-relayer/internal/domain/model"
)

// IntentNotice is one subscription notification for the stake-intent event.
// Removed marks a log the provider retracted after a reorg; the watcher
// forwards it through the changed path.
type IntentNotice struct {
	Intent      model.StakeIntent
	BlockHeight int64
	Removed     bool
}

// HeadProvider reports the chain's latest block height.
type HeadProvider interface {
	GetHeadHeight(ctx context.Context) (int64, error)
}

// StakeEventSource fetches stake-intent declarations from the value chain.
// Notices are returned oldest-first in provider delivery order.
type StakeEventSource interface {
	FetchStakeIntents(ctx context.Context, fromHeight, toHeight int64) ([]IntentNotice, error)
}

// ValueChain exposes the value-chain operations invoked with operator
// credentials. ProcessStaking submits the stage-1 transaction and blocks
// until it is mined, returning the transaction hash.
type ValueChain interface {
	ProcessStaking(ctx context.Context, intentHash string) (string, error)
}

// UtilityChain exposes the utility-chain operations invoked with operator
// credentials. Each transaction call blocks until the submission is mined.
type UtilityChain interface {
	ProcessMinting(ctx context.Context, intentHash string) (string, error)

	// TokenAddress resolves a token identifier to its contract address via
	// the utility chain's token registry.
	TokenAddress(ctx context.Context, tokenID string) (string, error)

	// ClaimToken invokes the resolved token contract's claim operation for
	// the beneficiary.
	ClaimToken(ctx context.Context, tokenAddress, beneficiary string) (string, error)
}
