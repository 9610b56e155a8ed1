package event

import "github.com/bpl-lane/mosaic-relayer/internal/domain/model"

// StakeObserved signals that a stake-intent declaration was seen on the value
// chain. Reissued marks notices that arrived through the changed/reorg path;
// they re-enter the same ingestion path and are absorbed by queue dedup.
type StakeObserved struct {
	Intent         model.StakeIntent
	ObservedHeight int64
	Reissued       bool
}
