package relay

import (
	"log/slog"
	"sync"
	"time"

	"github.com/bpl-lane/mosaic-relayer/internal/domain/model"
	"github.com/bpl-lane/mosaic-relayer/internal/metrics"
	"github.com/google/uuid"
)

// Entry is one queued stake intent awaiting its confirmation delay.
type Entry struct {
	ID             uuid.UUID
	Intent         model.StakeIntent
	ObservedHeight int64
	State          model.EntryState
	EnqueuedAt     time.Time
}

// DelayQueue holds observed stake intents keyed by intent hash and releases
// them only after the configured number of confirmation blocks has accrued.
// All mutations run under one mutex: at most one enqueue or one
// claim/complete is in flight at a time, which preserves the one-live-entry-
// per-key invariant.
type DelayQueue struct {
	delayBlocks int64
	logger      *slog.Logger

	mu      sync.Mutex
	entries map[string]*Entry
	order   []string // live keys in insertion order
}

func NewDelayQueue(delayBlocks int64, logger *slog.Logger) *DelayQueue {
	if delayBlocks < 0 {
		delayBlocks = 0
	}
	return &DelayQueue{
		delayBlocks: delayBlocks,
		logger:      logger.With("component", "delayqueue"),
		entries:     make(map[string]*Entry),
	}
}

// Enqueue inserts a pending entry for the intent unless a live entry already
// holds its identity key. Re-observations of an in-flight intent are no-ops,
// which absorbs duplicate and reorg-reissued notices. Returns whether an
// entry was inserted.
func (q *DelayQueue) Enqueue(intent model.StakeIntent, observedHeight int64) bool {
	key := intent.IdentityKey()
	if key == "" {
		q.logger.Warn("dropping intent without identity key", "staker", intent.Staker)
		return false
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if existing, ok := q.entries[key]; ok && existing.State.Live() {
		metrics.QueueDedupedTotal.Inc()
		q.logger.Debug("duplicate intent ignored", "intent_hash", key, "state", existing.State)
		return false
	}

	q.entries[key] = &Entry{
		ID:             uuid.New(),
		Intent:         intent,
		ObservedHeight: observedHeight,
		State:          model.StatePending,
		EnqueuedAt:     time.Now(),
	}
	q.order = append(q.order, key)

	metrics.QueueEnqueuedTotal.Inc()
	q.updateDepthLocked()
	q.logger.Info("stake intent queued",
		"intent_hash", key,
		"staker", intent.Staker,
		"observed_height", observedHeight,
	)
	return true
}

// Tick promotes every pending entry whose confirmation delay has elapsed at
// currentHeight. Scan order is insertion order. Returns the promoted count.
func (q *DelayQueue) Tick(currentHeight int64) int {
	q.mu.Lock()
	defer q.mu.Unlock()

	promoted := 0
	for _, key := range q.order {
		entry, ok := q.entries[key]
		if !ok || entry.State != model.StatePending {
			continue
		}
		if currentHeight-entry.ObservedHeight >= q.delayBlocks {
			entry.State = model.StateDue
			promoted++
			metrics.QueuePromotedTotal.Inc()
			q.logger.Debug("entry due",
				"intent_hash", key,
				"observed_height", entry.ObservedHeight,
				"current_height", currentHeight,
			)
		}
	}
	if promoted > 0 {
		q.updateDepthLocked()
	}
	return promoted
}

// Claim atomically selects the oldest due entry and marks it processing.
// The second return is false when nothing is due.
func (q *DelayQueue) Claim() (*Entry, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, key := range q.order {
		entry, ok := q.entries[key]
		if !ok || entry.State != model.StateDue {
			continue
		}
		entry.State = model.StateProcessing
		q.updateDepthLocked()
		return entry, true
	}
	return nil, false
}

// Complete finalizes a processing entry per the result and removes it from
// the active index. Done and failed entries are discarded, not retried.
func (q *DelayQueue) Complete(identityKey string, result Result) {
	q.mu.Lock()
	defer q.mu.Unlock()

	entry, ok := q.entries[identityKey]
	if !ok {
		q.logger.Warn("complete for unknown entry", "intent_hash", identityKey)
		return
	}

	if result.Succeeded() {
		entry.State = model.StateDone
	} else {
		entry.State = model.StateFailed
	}

	delete(q.entries, identityKey)
	for i, key := range q.order {
		if key == identityKey {
			q.order = append(q.order[:i], q.order[i+1:]...)
			break
		}
	}
	q.updateDepthLocked()
}

// Len reports the number of live entries.
func (q *DelayQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}

// Depths reports live entry counts by state.
func (q *DelayQueue) Depths() map[string]int {
	q.mu.Lock()
	defer q.mu.Unlock()

	depths := make(map[string]int, 3)
	for _, entry := range q.entries {
		depths[entry.State.String()]++
	}
	return depths
}

func (q *DelayQueue) updateDepthLocked() {
	counts := map[model.EntryState]int{
		model.StatePending:    0,
		model.StateDue:        0,
		model.StateProcessing: 0,
	}
	for _, entry := range q.entries {
		counts[entry.State]++
	}
	for state, n := range counts {
		metrics.QueueDepth.WithLabelValues(state.String()).Set(float64(n))
	}
}
