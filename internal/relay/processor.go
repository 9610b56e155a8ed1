package relay

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	chainpkg "github.com/bpl-lane/mosaic-relayer/internal/chain"
	"github.com/bpl-lane/mosaic-relayer/internal/domain/model"
	"github.com/bpl-lane/mosaic-relayer/internal/metrics"
	"github.com/bpl-lane/mosaic-relayer/internal/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	otelTrace "go.opentelemetry.io/otel/trace"
)

const (
	stageProcessStaking = "process_staking"
	stageProcessMinting = "process_minting"
	stageResolveToken   = "resolve_token"
	stageClaim          = "claim"
)

// Processor executes the ordered relay pipeline for one claimed entry.
// Steps run strictly in order and short-circuit on the first failure; the
// chain adapters block until each submission is mined, so a later stage
// never starts before the prior one is confirmed on chain.
type Processor struct {
	value         chainpkg.ValueChain
	utility       chainpkg.UtilityChain
	operator      string
	nativeTokenID string
	logger        *slog.Logger
}

func NewProcessor(
	value chainpkg.ValueChain,
	utility chainpkg.UtilityChain,
	operator string,
	nativeTokenID string,
	logger *slog.Logger,
) *Processor {
	return &Processor{
		value:         value,
		utility:       utility,
		operator:      operator,
		nativeTokenID: nativeTokenID,
		logger:        logger.With("component", "processor"),
	}
}

// Process never returns an error: every outcome, including panics below the
// adapter boundary, materializes as a Result.
func (p *Processor) Process(ctx context.Context, entry *Entry) (result Result) {
	intent := entry.Intent
	key := intent.IdentityKey()
	log := p.logger.With("intent_hash", key, "entry_id", entry.ID.String())

	metrics.PipelineActiveRuns.Inc()
	defer metrics.PipelineActiveRuns.Dec()

	spanCtx, span := tracing.Tracer("relay").Start(ctx, "relay.process",
		otelTrace.WithAttributes(
			attribute.String("intent_hash", key),
			attribute.String("staker", intent.Staker),
		),
	)
	defer func() {
		if r := recover(); r != nil {
			result = failure(key, CodeStage1Failed, fmt.Errorf("pipeline panic: %v", r))
			log.Error("pipeline run panicked", "panic", r)
		}
		if result.Err != nil {
			span.RecordError(result.Err)
			span.SetStatus(codes.Error, string(result.Code))
		}
		span.End()
	}()
	ctx = spanCtx

	// Authorization gate: only events initiated by the operator account are
	// acted on. No chain call happens on a mismatch.
	if !model.SameAccount(intent.Staker, p.operator) {
		return failure(key, CodeUnauthorized,
			fmt.Errorf("staker %s does not match operator account", intent.Staker))
	}

	stakeTx, err := p.runStage(ctx, stageProcessStaking, func(ctx context.Context) (string, error) {
		return p.value.ProcessStaking(ctx, intent.IntentHash)
	})
	if err != nil {
		return failure(key, CodeStage1Failed, fmt.Errorf("process staking: %w", err))
	}
	log.Info("staking processed", "tx_hash", stakeTx)

	mintTx, err := p.runStage(ctx, stageProcessMinting, func(ctx context.Context) (string, error) {
		return p.utility.ProcessMinting(ctx, intent.IntentHash)
	})
	if err != nil {
		return Result{
			IntentHash:  key,
			Code:        CodeStage2Failed,
			Err:         fmt.Errorf("process minting: %w", err),
			StakeTxHash: stakeTx,
		}
	}
	log.Info("minting processed", "tx_hash", mintTx)

	result = Result{
		IntentHash:  key,
		Code:        CodeSuccess,
		StakeTxHash: stakeTx,
		MintTxHash:  mintTx,
	}

	// Branch resolved once: the native token is distributed as a side effect
	// of minting, every other token needs an explicit claim.
	switch intent.Kind(p.nativeTokenID) {
	case model.TokenKindNative:
		log.Info("native token intent, claim skipped")
	case model.TokenKindBranded:
		tokenAddr, err := p.runStage(ctx, stageResolveToken, func(ctx context.Context) (string, error) {
			return p.utility.TokenAddress(ctx, intent.TokenID)
		})
		if err != nil {
			result.Code = CodeClaimFailed
			result.Err = fmt.Errorf("resolve token %s: %w", intent.TokenID, err)
			return result
		}

		claimTx, err := p.runStage(ctx, stageClaim, func(ctx context.Context) (string, error) {
			return p.utility.ClaimToken(ctx, tokenAddr, intent.Beneficiary)
		})
		if err != nil {
			result.Code = CodeClaimFailed
			result.Err = fmt.Errorf("claim for %s on %s: %w", intent.Beneficiary, tokenAddr, err)
			return result
		}
		result.ClaimTxHash = claimTx
		log.Info("claim processed", "tx_hash", claimTx, "token", tokenAddr, "beneficiary", intent.Beneficiary)
	}

	return result
}

func (p *Processor) runStage(ctx context.Context, stage string, fn func(context.Context) (string, error)) (string, error) {
	start := time.Now()
	out, err := fn(ctx)
	metrics.PipelineStageLatency.WithLabelValues(stage).Observe(time.Since(start).Seconds())
	return out, err
}
