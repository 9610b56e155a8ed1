package relay

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/bpl-lane/mosaic-relayer/internal/alert"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturingAlerter struct {
	alerts []alert.Alert
	err    error
	panics bool
}

func (c *capturingAlerter) Send(_ context.Context, a alert.Alert) error {
	if c.panics {
		panic("alerter exploded")
	}
	c.alerts = append(c.alerts, a)
	return c.err
}

func TestReporter_SuccessEmitsNoAlert(t *testing.T) {
	t.Parallel()

	sink := &capturingAlerter{}
	r := NewReporter(sink, slog.Default())

	r.Report(context.Background(), Result{
		IntentHash:  "0xaaa",
		Code:        CodeSuccess,
		StakeTxHash: "0x1",
		MintTxHash:  "0x2",
	})

	assert.Empty(t, sink.alerts)
}

func TestReporter_FailureAlertCarriesIntentHash(t *testing.T) {
	t.Parallel()

	sink := &capturingAlerter{}
	r := NewReporter(sink, slog.Default())

	r.Report(context.Background(), Result{
		IntentHash: "0xbbb",
		Code:       CodeStage2Failed,
		Err:        errors.New("execution reverted"),
	})

	require.Len(t, sink.alerts, 1)
	assert.Equal(t, alert.AlertTypeRelayFailed, sink.alerts[0].Type)
	assert.Equal(t, "0xbbb", sink.alerts[0].Fields["intent_hash"])
	assert.Equal(t, string(CodeStage2Failed), sink.alerts[0].Fields["code"])
}

func TestReporter_UnauthorizedUsesDedicatedAlertType(t *testing.T) {
	t.Parallel()

	sink := &capturingAlerter{}
	r := NewReporter(sink, slog.Default())

	r.Report(context.Background(), Result{
		IntentHash: "0xccc",
		Code:       CodeUnauthorized,
		Err:        errors.New("staker 0x1 does not match operator 0x2"),
	})

	require.Len(t, sink.alerts, 1)
	assert.Equal(t, alert.AlertTypeUnauthorizedEvent, sink.alerts[0].Type)
}

func TestReporter_NeverPanics(t *testing.T) {
	t.Parallel()

	r := NewReporter(&capturingAlerter{panics: true}, slog.Default())

	assert.NotPanics(t, func() {
		r.Report(context.Background(), Result{
			IntentHash: "0xddd",
			Code:       CodeStage1Failed,
			Err:        errors.New("boom"),
		})
	})
	assert.NotPanics(t, func() {
		r.ReportSubscriptionError(context.Background(), errors.New("boom"))
	})
}

func TestReporter_NilAlerterIsSafe(t *testing.T) {
	t.Parallel()

	r := NewReporter(nil, slog.Default())

	assert.NotPanics(t, func() {
		r.Report(context.Background(), Result{
			IntentHash: "0xeee",
			Code:       CodeClaimFailed,
			Err:        errors.New("claim reverted"),
		})
		r.ReportSubscriptionError(context.Background(), errors.New("down"))
	})
}

func TestReporter_AlertDeliveryFailureIsSwallowed(t *testing.T) {
	t.Parallel()

	sink := &capturingAlerter{err: errors.New("webhook 502")}
	r := NewReporter(sink, slog.Default())

	assert.NotPanics(t, func() {
		r.Report(context.Background(), Result{
			IntentHash: "0xfff",
			Code:       CodeStage1Failed,
			Err:        errors.New("nonce too low"),
		})
	})
	assert.Len(t, sink.alerts, 1)
}
