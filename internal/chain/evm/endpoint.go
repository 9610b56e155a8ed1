package evm

import (
	"context"
	"errors"
	"log/slog"

	"github.com/bpl-lane/mosaic-relayer/internal/chain/evm/rpc"
	"github.com/bpl-lane/mosaic-relayer/internal/chain/ratelimit"
	"github.com/bpl-lane/mosaic-relayer/internal/circuitbreaker"
	"github.com/bpl-lane/mosaic-relayer/internal/domain/model"
	"github.com/bpl-lane/mosaic-relayer/internal/metrics"
)

// endpoint bundles one chain's RPC client with its rate limiter and circuit
// breaker so every node call shares a single budget and failure window.
type endpoint struct {
	role    model.ChainRole
	rpc     rpc.RPCClient
	limiter *ratelimit.Limiter
	breaker *circuitbreaker.Breaker
	logger  *slog.Logger
}

func newEndpoint(role model.ChainRole, client rpc.RPCClient, limiter *ratelimit.Limiter, breaker *circuitbreaker.Breaker, logger *slog.Logger) *endpoint {
	return &endpoint{
		role:    role,
		rpc:     client,
		limiter: limiter,
		breaker: breaker,
		logger:  logger.With("component", "evm", "chain", role),
	}
}

// do runs one RPC interaction through the limiter and breaker and records
// the call metric.
func (e *endpoint) do(ctx context.Context, method string, fn func() error) error {
	if e.limiter != nil {
		if err := e.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	var err error
	if e.breaker != nil {
		err = e.breaker.Do(fn)
		if errors.Is(err, circuitbreaker.ErrOpen) {
			metrics.RPCBreakerRejections.WithLabelValues(e.role.String()).Inc()
		}
	} else {
		err = fn()
	}

	metrics.RPCCallsTotal.WithLabelValues(e.role.String(), method, callStatus(err)).Inc()
	return err
}

func callStatus(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, circuitbreaker.ErrOpen):
		return "breaker_open"
	default:
		return "error"
	}
}
