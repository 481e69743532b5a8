package config

import "errors"

// Default pending queue parameters.
const (
	// DefaultPendingDepth is the number of ledgers a transaction may stay
	// queued before being evicted and banned.
	DefaultPendingDepth = 4
	// DefaultBanDepth is the number of ledgers an evicted transaction hash
	// stays banned.
	DefaultBanDepth = 10
	// DefaultPoolLedgerMultiplier scales the per-ledger operation cap into
	// the queue capacity.
	DefaultPoolLedgerMultiplier = 2
)

// QueueConfiguration is the pending transaction queue config section.
type QueueConfiguration struct {
	PendingDepth         int `yaml:"PendingDepth"`
	BanDepth             int `yaml:"BanDepth"`
	PoolLedgerMultiplier int `yaml:"PoolLedgerMultiplier"`
}

// Validate returns an error if any of the queue parameters is out of range.
func (q QueueConfiguration) Validate() error {
	if q.PendingDepth <= 0 {
		return errors.New("PendingDepth must be positive")
	}
	if q.BanDepth <= 0 {
		return errors.New("BanDepth must be positive")
	}
	if q.PoolLedgerMultiplier <= 0 {
		return errors.New("PoolLedgerMultiplier must be positive")
	}
	return nil
}
