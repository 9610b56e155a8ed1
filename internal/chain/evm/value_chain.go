package evm

import (
	"context"
	"fmt"
	"log/slog"

	chainpkg "github.com/bpl-lane/mosaic-relayer/internal/chain"
	"github.com/bpl-lane/mosaic-relayer/internal/chain/evm/rpc"
	"github.com/bpl-lane/mosaic-relayer/internal/chain/ratelimit"
	"github.com/bpl-lane/mosaic-relayer/internal/circuitbreaker"
	"github.com/bpl-lane/mosaic-relayer/internal/domain/model"
)

// ValueChainAdapter drives the value chain's gateway contract: it reports
// head height, scans stake-intent declarations, and submits the stage-1
// processStaking transaction with the operator account.
type ValueChainAdapter struct {
	*endpoint
	gateway    string
	operator   string
	passphrase string
}

var (
	_ chainpkg.ValueChain       = (*ValueChainAdapter)(nil)
	_ chainpkg.HeadProvider     = (*ValueChainAdapter)(nil)
	_ chainpkg.StakeEventSource = (*ValueChainAdapter)(nil)
)

func NewValueChainAdapter(
	client rpc.RPCClient,
	gateway string,
	operator string,
	passphrase string,
	limiter *ratelimit.Limiter,
	breaker *circuitbreaker.Breaker,
	logger *slog.Logger,
) *ValueChainAdapter {
	return &ValueChainAdapter{
		endpoint:   newEndpoint(model.ChainValue, client, limiter, breaker, logger),
		gateway:    model.NormalizeHex(gateway),
		operator:   model.NormalizeHex(operator),
		passphrase: passphrase,
	}
}

func (a *ValueChainAdapter) GetHeadHeight(ctx context.Context) (int64, error) {
	var height int64
	err := a.do(ctx, "eth_blockNumber", func() error {
		var callErr error
		height, callErr = a.rpc.GetBlockNumber(ctx)
		return callErr
	})
	return height, err
}

func (a *ValueChainAdapter) FetchStakeIntents(ctx context.Context, fromHeight, toHeight int64) ([]chainpkg.IntentNotice, error) {
	filter := rpc.LogFilter{
		FromBlock: rpc.FormatHexInt64(fromHeight),
		ToBlock:   rpc.FormatHexInt64(toHeight),
		Address:   a.gateway,
		Topics:    []string{topicStakingIntentDeclared},
	}

	var logs []*rpc.Log
	err := a.do(ctx, "eth_getLogs", func() error {
		var callErr error
		logs, callErr = a.rpc.GetLogs(ctx, filter)
		return callErr
	})
	if err != nil {
		return nil, err
	}

	notices := make([]chainpkg.IntentNotice, 0, len(logs))
	for _, log := range logs {
		notice, err := decodeStakeIntentLog(log)
		if err != nil {
			// Skip undecodable provider artifacts rather than stalling the scan.
			a.logger.Warn("skipping undecodable stake intent log",
				"block", log.BlockNumber,
				"log_index", log.LogIndex,
				"error", err,
			)
			continue
		}
		notices = append(notices, notice)
	}
	return notices, nil
}

func (a *ValueChainAdapter) ProcessStaking(ctx context.Context, intentHash string) (string, error) {
	data, err := encodeCall(selectorProcessStaking, intentHash)
	if err != nil {
		return "", fmt.Errorf("encode processStaking: %w", err)
	}
	return submitAndWait(ctx, a.endpoint, rpc.TxParams{
		From: a.operator,
		To:   a.gateway,
		Data: data,
	}, a.passphrase)
}

func decodeStakeIntentLog(log *rpc.Log) (chainpkg.IntentNotice, error) {
	if len(log.Topics) != 3 {
		return chainpkg.IntentNotice{}, fmt.Errorf("expected 3 topics, got %d", len(log.Topics))
	}

	tokenID, err := wordToBytes32(log.Topics[1])
	if err != nil {
		return chainpkg.IntentNotice{}, fmt.Errorf("decode token id: %w", err)
	}
	staker, err := wordToAddress(log.Topics[2])
	if err != nil {
		return chainpkg.IntentNotice{}, fmt.Errorf("decode staker: %w", err)
	}

	words, err := dataWords(log.Data)
	if err != nil {
		return chainpkg.IntentNotice{}, err
	}
	if len(words) != 2 {
		return chainpkg.IntentNotice{}, fmt.Errorf("expected 2 data words, got %d", len(words))
	}
	beneficiary, err := wordToAddress(words[0])
	if err != nil {
		return chainpkg.IntentNotice{}, fmt.Errorf("decode beneficiary: %w", err)
	}
	intentHash, err := wordToBytes32(words[1])
	if err != nil {
		return chainpkg.IntentNotice{}, fmt.Errorf("decode intent hash: %w", err)
	}

	height, err := rpc.ParseHexInt64(log.BlockNumber)
	if err != nil {
		return chainpkg.IntentNotice{}, fmt.Errorf("parse log block number: %w", err)
	}

	return chainpkg.IntentNotice{
		Intent: model.StakeIntent{
			IntentHash:  intentHash,
			Staker:      staker,
			Beneficiary: beneficiary,
			TokenID:     tokenID,
		},
		BlockHeight: height,
		Removed:     log.Removed,
	}, nil
}

// submitAndWait sends one operator transaction and blocks until it is mined.
// The caller's next stage must not start before the prior submission is
// confirmed, so the mining wait happens inside the adapter.
func submitAndWait(ctx context.Context, e *endpoint, params rpc.TxParams, passphrase string) (string, error) {
	var txHash string
	err := e.do(ctx, "personal_sendTransaction", func() error {
		var callErr error
		txHash, callErr = e.rpc.SendTransaction(ctx, params, passphrase)
		return callErr
	})
	if err != nil {
		return "", err
	}

	e.logger.Info("transaction submitted", "tx_hash", txHash, "to", params.To)
	if _, err := e.rpc.WaitMined(ctx, txHash); err != nil {
		return txHash, fmt.Errorf("wait mined %s: %w", txHash, err)
	}
	return txHash, nil
}
