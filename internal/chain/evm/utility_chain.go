package evm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bpl-lane/mosaic-relayer/internal/cache"
	chainpkg "github.com/bpl-lane/mosaic-relayer/internal/chain"
	"github.com/bpl-lane/mosaic-relayer/internal/chain/evm/rpc"
	"github.com/bpl-lane/mosaic-relayer/internal/chain/ratelimit"
	"github.com/bpl-lane/mosaic-relayer/internal/circuitbreaker"
	"github.com/bpl-lane/mosaic-relayer/internal/domain/model"
)

// UtilityChainAdapter drives the utility chain: the stage-2 processMinting
// transaction on the co-gateway, token lookup through the registry, and the
// per-token claim transaction.
type UtilityChainAdapter struct {
	*endpoint
	coGateway  string
	registry   string
	operator   string
	passphrase string
	tokens     *cache.LRU[string, string]
}

var _ chainpkg.UtilityChain = (*UtilityChainAdapter)(nil)

func NewUtilityChainAdapter(
	client rpc.RPCClient,
	coGateway string,
	registry string,
	operator string,
	passphrase string,
	limiter *ratelimit.Limiter,
	breaker *circuitbreaker.Breaker,
	logger *slog.Logger,
) *UtilityChainAdapter {
	return &UtilityChainAdapter{
		endpoint:   newEndpoint(model.ChainUtility, client, limiter, breaker, logger),
		coGateway:  model.NormalizeHex(coGateway),
		registry:   model.NormalizeHex(registry),
		operator:   model.NormalizeHex(operator),
		passphrase: passphrase,
		tokens:     cache.NewLRU[string, string]("token_address", 256, time.Hour),
	}
}

func (a *UtilityChainAdapter) ProcessMinting(ctx context.Context, intentHash string) (string, error) {
	data, err := encodeCall(selectorProcessMinting, intentHash)
	if err != nil {
		return "", fmt.Errorf("encode processMinting: %w", err)
	}
	return submitAndWait(ctx, a.endpoint, rpc.TxParams{
		From: a.operator,
		To:   a.coGateway,
		Data: data,
	}, a.passphrase)
}

func (a *UtilityChainAdapter) TokenAddress(ctx context.Context, tokenID string) (string, error) {
	key := model.NormalizeHex(tokenID)
	if addr, ok := a.tokens.Get(key); ok {
		return addr, nil
	}

	data, err := encodeCall(selectorTokenAddress, tokenID)
	if err != nil {
		return "", fmt.Errorf("encode tokenAddress: %w", err)
	}

	var result string
	err = a.do(ctx, "eth_call", func() error {
		var callErr error
		result, callErr = a.rpc.Call(ctx, rpc.CallParams{To: a.registry, Data: data})
		return callErr
	})
	if err != nil {
		return "", err
	}

	address, err := wordToAddress(result)
	if err != nil {
		return "", fmt.Errorf("decode token address: %w", err)
	}
	if strings.Trim(strings.TrimPrefix(address, "0x"), "0") == "" {
		return "", fmt.Errorf("token %s is not registered", tokenID)
	}

	a.tokens.Put(key, address)
	return address, nil
}

func (a *UtilityChainAdapter) ClaimToken(ctx context.Context, tokenAddress, beneficiary string) (string, error) {
	data, err := encodeCall(selectorClaim, beneficiary)
	if err != nil {
		return "", fmt.Errorf("encode claim: %w", err)
	}
	return submitAndWait(ctx, a.endpoint, rpc.TxParams{
		From: a.operator,
		To:   model.NormalizeHex(tokenAddress),
		Data: data,
	}, a.passphrase)
}
