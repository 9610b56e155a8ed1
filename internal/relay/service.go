package relay

import (
	"context"
	"log/slog"
	"time"

	chainpkg "github.com/bpl-lane/mosaic-relayer/internal/chain"
	"github.com/bpl-lane/mosaic-relayer/internal/domain/event"
	"golang.org/x/sync/errgroup"
)

// Config carries the relay core's tunables.
type Config struct {
	OperatorAddress string
	NativeTokenID   string
	DelayBlocks     int64
	PollInterval    time.Duration
	MaxScanRange    int64
	HeadBuffer      int
}

// Service wires the watcher, delay queue, processor and reporter together.
// Ingestion and draining run on independent triggers, but a single drain
// worker serializes pipeline runs: every stage transaction is signed by one
// operator account and concurrent submission risks nonce collisions.
type Service struct {
	cfg       Config
	queue     *DelayQueue
	processor *Processor
	reporter  *Reporter
	watcher   *Watcher
	headCh    chan event.HeadUpdate
	logger    *slog.Logger
}

func NewService(
	cfg Config,
	head chainpkg.HeadProvider,
	source chainpkg.StakeEventSource,
	value chainpkg.ValueChain,
	utility chainpkg.UtilityChain,
	reporter *Reporter,
	logger *slog.Logger,
) *Service {
	if cfg.HeadBuffer <= 0 {
		cfg.HeadBuffer = 16
	}

	s := &Service{
		cfg:      cfg,
		queue:    NewDelayQueue(cfg.DelayBlocks, logger),
		reporter: reporter,
		headCh:   make(chan event.HeadUpdate, cfg.HeadBuffer),
		logger:   logger.With("component", "relay"),
	}
	s.processor = NewProcessor(value, utility, cfg.OperatorAddress, cfg.NativeTokenID, logger)
	s.watcher = NewWatcher(head, source, Callbacks{
		OnData:    s.ingest,
		OnChanged: s.ingest,
		OnError:   s.subscriptionError,
		OnHead:    s.headUpdate,
	}, cfg.PollInterval, cfg.MaxScanRange, logger)
	return s
}

// Queue exposes the delay queue, mainly for health reporting.
func (s *Service) Queue() *DelayQueue {
	return s.queue
}

func (s *Service) Run(ctx context.Context) error {
	s.logger.Info("relay service started",
		"operator", s.cfg.OperatorAddress,
		"delay_blocks", s.cfg.DelayBlocks,
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.watcher.Run(gCtx)
	})
	g.Go(func() error {
		return s.drain(gCtx)
	})

	err := g.Wait()
	s.logger.Info("relay service stopped")
	return err
}

// ingest serves both the data and changed paths: queue dedup absorbs notices
// reissued for intents already in flight.
func (s *Service) ingest(observed event.StakeObserved) {
	s.queue.Enqueue(observed.Intent, observed.ObservedHeight)
}

func (s *Service) subscriptionError(err error) {
	s.reporter.ReportSubscriptionError(context.Background(), err)
}

func (s *Service) headUpdate(update event.HeadUpdate) {
	// Drop the update rather than block the watcher when the drain worker is
	// inside a long mining wait; the next head tick carries a newer height.
	select {
	case s.headCh <- update:
	default:
	}
}

// drain is the single worker. After each height tick it claims and processes
// due entries one at a time until none remain, then blocks for the next
// head update. Entries are never retried here; failures surface through the
// reporter for an external supervisor to act on.
func (s *Service) drain(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update := <-s.headCh:
			s.queue.Tick(update.Height)
			for {
				entry, ok := s.queue.Claim()
				if !ok {
					break
				}
				result := s.processor.Process(ctx, entry)
				s.queue.Complete(entry.Intent.IdentityKey(), result)
				s.reporter.Report(ctx, result)

				if ctx.Err() != nil {
					return ctx.Err()
				}
			}
		}
	}
}
