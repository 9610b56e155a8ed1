package alert

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingAlerter struct {
	mu   sync.Mutex
	sent []Alert
	err  error
}

func (r *recordingAlerter) Send(_ context.Context, a Alert) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, a)
	return r.err
}

func (r *recordingAlerter) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sent)
}

func TestMultiAlerter_FansOutToAllChannels(t *testing.T) {
	t.Parallel()

	first := &recordingAlerter{}
	second := &recordingAlerter{}
	m := NewMultiAlerter(time.Minute, slog.Default(), first, second)

	err := m.Send(context.Background(), Alert{Type: AlertTypeRelayFailed, Title: "t", Message: "m"})
	require.NoError(t, err)
	assert.Equal(t, 1, first.count())
	assert.Equal(t, 1, second.count())
}

func TestMultiAlerter_CooldownSuppressesSameIntent(t *testing.T) {
	t.Parallel()

	sink := &recordingAlerter{}
	m := NewMultiAlerter(time.Minute, slog.Default(), sink)
	failed := Alert{
		Type:   AlertTypeRelayFailed,
		Fields: map[string]string{"intent_hash": "0xaaa"},
	}

	require.NoError(t, m.Send(context.Background(), failed))
	require.NoError(t, m.Send(context.Background(), failed))
	assert.Equal(t, 1, sink.count(), "repeat within cooldown must be suppressed")
}

func TestMultiAlerter_DistinctIntentsNotSuppressed(t *testing.T) {
	t.Parallel()

	sink := &recordingAlerter{}
	m := NewMultiAlerter(time.Minute, slog.Default(), sink)

	require.NoError(t, m.Send(context.Background(), Alert{
		Type:   AlertTypeRelayFailed,
		Fields: map[string]string{"intent_hash": "0xaaa"},
	}))
	require.NoError(t, m.Send(context.Background(), Alert{
		Type:   AlertTypeRelayFailed,
		Fields: map[string]string{"intent_hash": "0xbbb"},
	}))
	assert.Equal(t, 2, sink.count())
}

func TestMultiAlerter_CooldownExpires(t *testing.T) {
	t.Parallel()

	sink := &recordingAlerter{}
	m := NewMultiAlerter(10*time.Millisecond, slog.Default(), sink)
	a := Alert{Type: AlertTypeSubscriptionError}

	require.NoError(t, m.Send(context.Background(), a))
	time.Sleep(20 * time.Millisecond)
	require.NoError(t, m.Send(context.Background(), a))
	assert.Equal(t, 2, sink.count())
}

func TestMultiAlerter_ReturnsFirstChannelError(t *testing.T) {
	t.Parallel()

	broken := &recordingAlerter{err: errors.New("slack down")}
	healthy := &recordingAlerter{}
	m := NewMultiAlerter(time.Minute, slog.Default(), broken, healthy)

	err := m.Send(context.Background(), Alert{Type: AlertTypeRelayFailed})
	assert.EqualError(t, err, "slack down")
	assert.Equal(t, 1, healthy.count(), "remaining channels still receive the alert")
}

func TestSlackAlerter_PayloadAndStatus(t *testing.T) {
	t.Parallel()

	var payload map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &payload))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	s := NewSlackAlerter(server.URL)
	err := s.Send(context.Background(), Alert{
		Type:    AlertTypeUnauthorizedEvent,
		Title:   "unexpected staker",
		Message: "staker does not match operator",
		Fields:  map[string]string{"intent_hash": "0xccc"},
	})
	require.NoError(t, err)

	assert.Contains(t, payload["text"], "UNAUTHORIZED_EVENT")
	assert.Contains(t, payload["text"], "unexpected staker")
	assert.Contains(t, payload["text"], "0xccc")
}

func TestSlackAlerter_NonSuccessStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	err := NewSlackAlerter(server.URL).Send(context.Background(), Alert{Type: AlertTypeRelayFailed})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestWebhookAlerter_SendsStructuredPayload(t *testing.T) {
	t.Parallel()

	var payload map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &payload))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	err := NewWebhookAlerter(server.URL).Send(context.Background(), Alert{
		Type:    AlertTypeRelayFailed,
		Title:   "stake relay pipeline failed",
		Message: "execution reverted",
		Fields:  map[string]string{"code": "STAGE2_FAILED"},
	})
	require.NoError(t, err)

	assert.Equal(t, "RELAY_FAILED", payload["type"])
	assert.Equal(t, "execution reverted", payload["message"])
	fields, ok := payload["fields"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "STAGE2_FAILED", fields["code"])
	assert.NotEmpty(t, payload["time"])
}
