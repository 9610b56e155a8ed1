package relay

import (
	"context"
	"log/slog"
	"time"

	chainpkg "github.com/bpl-lane/mosaic-relayer/internal/chain"
	"github.com/bpl-lane/mosaic-relayer/internal/domain/event"
	"github.com/bpl-lane/mosaic-relayer/internal/metrics"
)

const defaultPollInterval = 5 * time.Second

// Callbacks receive watcher notifications. Exactly one callback fires per
// transport notification, in delivery order. OnChanged carries notices the
// provider reissued after a possible reorg; the base design feeds them back
// through the same ingestion path, relying on queue dedup.
type Callbacks struct {
	OnData    func(event.StakeObserved)
	OnError   func(error)
	OnChanged func(event.StakeObserved)
	OnHead    func(event.HeadUpdate)
}

// Watcher adapts the value chain's stake-intent event stream. It polls the
// head height, reports it, and scans the newly appeared block range for
// declarations. Scan errors are reported and do not stop the loop; the
// watcher does not reconnect beyond its own next tick.
type Watcher struct {
	head     chainpkg.HeadProvider
	source   chainpkg.StakeEventSource
	cb       Callbacks
	interval time.Duration
	maxRange int64
	logger   *slog.Logger

	lastScanned int64
}

func NewWatcher(
	head chainpkg.HeadProvider,
	source chainpkg.StakeEventSource,
	cb Callbacks,
	interval time.Duration,
	maxScanRange int64,
	logger *slog.Logger,
) *Watcher {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	if maxScanRange <= 0 {
		maxScanRange = 1000
	}
	return &Watcher{
		head:     head,
		source:   source,
		cb:       cb,
		interval: interval,
		maxRange: maxScanRange,
		logger:   logger.With("component", "watcher"),
	}
}

func (w *Watcher) Run(ctx context.Context) error {
	w.logger.Info("watcher started", "interval", w.interval)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watcher stopping")
			return ctx.Err()
		case <-ticker.C:
			w.poll(ctx)
		}
	}
}

func (w *Watcher) poll(ctx context.Context) {
	head, err := w.head.GetHeadHeight(ctx)
	if err != nil {
		w.reportError(err)
		return
	}
	metrics.WatcherHeadHeight.Set(float64(head))

	// First tick anchors the scan window at the current head; historical
	// declarations predate the process and are not replayed.
	if w.lastScanned == 0 {
		w.lastScanned = head - 1
	}

	if head > w.lastScanned {
		from := w.lastScanned + 1
		to := head
		if to-from+1 > w.maxRange {
			to = from + w.maxRange - 1
		}

		notices, err := w.source.FetchStakeIntents(ctx, from, to)
		if err != nil {
			w.reportError(err)
		} else {
			for _, notice := range notices {
				w.dispatch(notice)
			}
			w.lastScanned = to
		}
	}

	if w.cb.OnHead != nil {
		w.cb.OnHead(event.HeadUpdate{Height: head})
	}
}

func (w *Watcher) dispatch(notice chainpkg.IntentNotice) {
	observed := event.StakeObserved{
		Intent:         notice.Intent,
		ObservedHeight: notice.BlockHeight,
		Reissued:       notice.Removed,
	}
	if notice.Removed {
		metrics.WatcherNoticesTotal.WithLabelValues("changed").Inc()
		if w.cb.OnChanged != nil {
			w.cb.OnChanged(observed)
		}
		return
	}
	metrics.WatcherNoticesTotal.WithLabelValues("data").Inc()
	if w.cb.OnData != nil {
		w.cb.OnData(observed)
	}
}

func (w *Watcher) reportError(err error) {
	metrics.WatcherSubscriptionErrors.Inc()
	w.logger.Warn("event source error", "error", err)
	if w.cb.OnError != nil {
		w.cb.OnError(err)
	}
}
