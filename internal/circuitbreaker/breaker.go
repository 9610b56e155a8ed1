package circuitbreaker

import (
	"errors"
	"log/slog"
	"sync"
	"time"
)

// ErrOpen is returned when the breaker rejects a call without executing it.
var ErrOpen = errors.New("circuit breaker is open")

type state int

const (
	stateClosed state = iota
	stateOpen
	stateHalfOpen
)

func (s state) String() string {
	switch s {
	case stateClosed:
		return "closed"
	case stateOpen:
		return "open"
	case stateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// Breaker guards a chain RPC endpoint. After failureThreshold consecutive
// failures it rejects calls for openTimeout, then lets a single probe
// through; the probe's outcome closes or reopens the circuit.
type Breaker struct {
	name             string
	failureThreshold int
	openTimeout      time.Duration
	logger           *slog.Logger

	mu            sync.Mutex
	state         state
	failureCount  int
	lastFailureAt time.Time
}

func New(name string, failureThreshold int, openTimeout time.Duration, logger *slog.Logger) *Breaker {
	if failureThreshold <= 0 {
		failureThreshold = 5
	}
	if openTimeout <= 0 {
		openTimeout = 30 * time.Second
	}
	return &Breaker{
		name:             name,
		failureThreshold: failureThreshold,
		openTimeout:      openTimeout,
		logger:           logger.With("component", "circuitbreaker", "breaker", name),
	}
}

// Do executes fn under the breaker. ErrOpen is returned without invoking fn
// when the circuit is open and the open timeout has not elapsed.
func (b *Breaker) Do(fn func() error) error {
	if err := b.allow(); err != nil {
		return err
	}
	err := fn()
	b.record(err)
	return err
}

func (b *Breaker) allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == stateOpen {
		if time.Since(b.lastFailureAt) <= b.openTimeout {
			return ErrOpen
		}
		b.transition(stateHalfOpen)
	}
	return nil
}

func (b *Breaker) record(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err == nil {
		b.failureCount = 0
		if b.state != stateClosed {
			b.transition(stateClosed)
		}
		return
	}

	b.failureCount++
	b.lastFailureAt = time.Now()
	if b.state == stateHalfOpen || b.failureCount >= b.failureThreshold {
		b.transition(stateOpen)
	}
}

func (b *Breaker) transition(to state) {
	if b.state == to {
		return
	}
	b.logger.Warn("circuit breaker state change", "from", b.state.String(), "to", to.String())
	b.state = to
}
