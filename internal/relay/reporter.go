package relay

import (
	"context"
	"log/slog"

	"github.com/bpl-lane/mosaic-relayer/internal/alert"
	"github.com/bpl-lane/mosaic-relayer/internal/metrics"
	"github.com/bpl-lane/mosaic-relayer/internal/retry"
)

// Reporter converts pipeline results into log, metric and alert emissions.
// It is a pure sink: it never panics past its boundary and never touches
// queue state.
type Reporter struct {
	alerter alert.Alerter
	logger  *slog.Logger
}

func NewReporter(alerter alert.Alerter, logger *slog.Logger) *Reporter {
	return &Reporter{
		alerter: alerter,
		logger:  logger.With("component", "reporter"),
	}
}

func (r *Reporter) Report(ctx context.Context, result Result) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("reporter panicked", "panic", rec, "intent_hash", result.IntentHash)
		}
	}()

	metrics.PipelineRunsTotal.WithLabelValues(string(result.Code)).Inc()

	if result.Succeeded() {
		r.logger.Info("relay completed",
			"intent_hash", result.IntentHash,
			"stake_tx", result.StakeTxHash,
			"mint_tx", result.MintTxHash,
			"claim_tx", result.ClaimTxHash,
		)
		return
	}

	decision := retry.Classify(result.Err)
	r.logger.Error("relay failed",
		"intent_hash", result.IntentHash,
		"code", result.Code,
		"retryable", decision.IsTransient(),
		"classification_reason", decision.Reason,
		"error", result.Err,
	)

	if r.alerter == nil {
		return
	}

	alertType := alert.AlertTypeRelayFailed
	if result.Code == CodeUnauthorized {
		alertType = alert.AlertTypeUnauthorizedEvent
	}
	if err := r.alerter.Send(ctx, alert.Alert{
		Type:    alertType,
		Title:   "stake relay pipeline failed",
		Message: result.Err.Error(),
		Fields: map[string]string{
			"intent_hash": result.IntentHash,
			"code":        string(result.Code),
			"retryable":   string(decision.Class),
		},
	}); err != nil {
		r.logger.Warn("failure alert not delivered", "error", err)
	}
}

// ReportSubscriptionError surfaces event source errors without interrupting
// ingestion.
func (r *Reporter) ReportSubscriptionError(ctx context.Context, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("reporter panicked", "panic", rec)
		}
	}()

	if r.alerter == nil {
		return
	}
	if sendErr := r.alerter.Send(ctx, alert.Alert{
		Type:    alert.AlertTypeSubscriptionError,
		Title:   "stake event subscription error",
		Message: err.Error(),
	}); sendErr != nil {
		r.logger.Warn("subscription alert not delivered", "error", sendErr)
	}
}
