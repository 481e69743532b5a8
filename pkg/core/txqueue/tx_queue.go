// Package txqueue contains the pending transaction queue of the node. It
// admits transactions flooded from the network against the last closed
// ledger, keeps them ordered per source account, reserves fees across
// accounts, ages entries across ledger boundaries and bans evicted hashes.
package txqueue

import (
	"github.com/Th-ium/ThiumCore/pkg/config"
	"github.com/Th-ium/ThiumCore/pkg/core/queueevent"
	"github.com/Th-ium/ThiumCore/pkg/core/transaction"
	"github.com/Th-ium/ThiumCore/pkg/encoding/address"
	"github.com/Th-ium/ThiumCore/pkg/util"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// v13UpgradeVersion is the ledger protocol version that changes the envelope
// format of queued transactions.
const v13UpgradeVersion = 13

// AddResult is the status of an admission attempt.
type AddResult byte

const (
	// AddPending means the transaction was admitted into the queue.
	AddPending AddResult = iota
	// AddDuplicate means an equivalent transaction is already queued.
	AddDuplicate
	// AddError means the transaction was rejected, the reason is written
	// into its result code.
	AddError
	// AddTryAgainLater means the transaction is banned or the queue has no
	// capacity for it, resubmission may succeed later.
	AddTryAgainLater
)

// String implements the Stringer interface.
func (r AddResult) String() string {
	switch r {
	case AddPending:
		return "pending"
	case AddDuplicate:
		return "duplicate"
	case AddError:
		return "error"
	case AddTryAgainLater:
		return "try again later"
	default:
		return "unknown"
	}
}

// AccountQueueInfo is a summary of the queue state of a single account.
type AccountQueueInfo struct {
	// MaxSeq is the highest queued sequence number, zero if none.
	MaxSeq int64
	// TotalFees is the sum of fee bids reserved against the account.
	TotalFees int64
	// QueueSizeOps is the number of operations queued from the account.
	QueueSizeOps int64
	// Age is the number of ledgers since the oldest queued transaction of
	// the account entered.
	Age int
}

// ReplacedTransaction is an old/new pair produced by the protocol upgrade
// rewrite, the surrounding system refloods New in place of Old.
type ReplacedTransaction struct {
	Old *transaction.Transaction
	New *transaction.Transaction
}

// accountState exists for every account that is the sequence source of at
// least one queued transaction or the fee source of a nonzero reservation.
type accountState struct {
	// txs is ordered by strictly increasing, contiguous sequence numbers.
	txs []*transaction.Transaction
	// totalFees is the sum of fee bids of every queued transaction paying
	// from this account, no matter which account sources its sequence.
	totalFees int64
	// queueSizeOps is the sum of operation counts over txs.
	queueSizeOps int64
	// age is always zero while txs is empty.
	age int
}

// Queue is the pending transaction queue. All of its public operations must
// be called from a single control thread, the queue does no locking of its
// own.
type Queue struct {
	ledger Ledger
	log    *zap.Logger

	pendingDepth         int
	poolLedgerMultiplier int

	accountStates map[util.Uint160]*accountState
	// banned is a ring of hash sets, the front one receives new bans and
	// the oldest one is dropped on every Shift.
	banned        []map[util.Uint256]struct{}
	queueSizeOps  int64
	ledgerVersion uint32
	sizeByAge     []int64

	// subscriptions for queue events
	subscriptionsEnabled bool
	subscriptionsOn      atomic.Bool
	stopCh               chan struct{}
	events               chan queueevent.Event
	subCh                chan chan<- queueevent.Event
	unsubCh              chan chan<- queueevent.Event
}

// New returns a new Queue. A nil logger defaults to a no-op one, non-positive
// config values default to the config package defaults.
func New(cfg config.QueueConfiguration, ledger Ledger, log *zap.Logger, enableSubscriptions bool) *Queue {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.PendingDepth <= 0 {
		cfg.PendingDepth = config.DefaultPendingDepth
	}
	if cfg.BanDepth <= 0 {
		cfg.BanDepth = config.DefaultBanDepth
	}
	if cfg.PoolLedgerMultiplier <= 0 {
		cfg.PoolLedgerMultiplier = config.DefaultPoolLedgerMultiplier
	}

	banned := make([]map[util.Uint256]struct{}, cfg.BanDepth)
	for i := range banned {
		banned[i] = make(map[util.Uint256]struct{})
	}
	q := &Queue{
		ledger:               ledger,
		log:                  log,
		pendingDepth:         cfg.PendingDepth,
		poolLedgerMultiplier: cfg.PoolLedgerMultiplier,
		accountStates:        make(map[util.Uint160]*accountState),
		banned:               banned,
		ledgerVersion:        ledger.LastClosedHeader().LedgerVersion,
		sizeByAge:            make([]int64, cfg.PendingDepth),
		subscriptionsEnabled: enableSubscriptions,
		stopCh:               make(chan struct{}),
		events:               make(chan queueevent.Event),
		subCh:                make(chan chan<- queueevent.Event),
		unsubCh:              make(chan chan<- queueevent.Event),
	}
	q.subscriptionsOn.Store(false)
	return q
}

// findBySeq locates the slot of the given sequence number in txs. The
// returned index may be one past the end (the next free slot); ok is false
// when seq lies outside [firstSeq, lastSeq+1]. txs must be non-empty.
func findBySeq(seq int64, txs []*transaction.Transaction) (int, bool) {
	firstSeq := txs[0].SeqNum
	lastSeq := txs[len(txs)-1].SeqNum
	if seq < firstSeq || seq > lastSeq+1 {
		return 0, false
	}
	idx := int(seq - firstSeq)
	if idx < len(txs) && txs[idx].SeqNum != seq {
		panic("queued sequence numbers are not contiguous")
	}
	return idx, true
}

// isDuplicateTx reports whether newTx is a resubmission of the queued oldTx.
// A plain transaction also duplicates the fee-bump wrapping it.
func isDuplicateTx(oldTx, newTx *transaction.Transaction) bool {
	if oldTx.Type == newTx.Type {
		return oldTx.FullHash().Equals(newTx.FullHash())
	}
	if oldTx.Type == transaction.EnvelopeFeeBump {
		return oldTx.InnerFullHash().Equals(newTx.FullHash())
	}
	return false
}

// canAdd runs every admission check short of the commit. It returns the
// located source account state (nil if absent) and the index of the queued
// transaction to replace (-1 to append).
func (q *Queue) canAdd(tx *transaction.Transaction) (AddResult, *accountState, int) {
	if q.IsBanned(tx.FullHash()) {
		return AddTryAgainLater, nil, -1
	}

	netFee := tx.FeeBid
	netOps := int64(tx.NumOps)
	var priorSeq int64
	oldTxIdx := -1

	state := q.accountStates[tx.Source]
	if state != nil && len(state.txs) > 0 {
		if tx.Type != transaction.EnvelopeFeeBump {
			if idx, ok := findBySeq(tx.SeqNum, state.txs); ok && idx < len(state.txs) && isDuplicateTx(state.txs[idx], tx) {
				return AddDuplicate, nil, -1
			}
			priorSeq = state.txs[len(state.txs)-1].SeqNum
		} else {
			idx, ok := findBySeq(tx.SeqNum, state.txs)
			if !ok {
				tx.Result = transaction.ResultBadSeq
				return AddError, nil, -1
			}

			// idx == len(state.txs) is a fee-bump at lastSeq+1, it
			// falls through to ordinary append semantics.
			if idx < len(state.txs) {
				old := state.txs[idx]
				if isDuplicateTx(old, tx) {
					return AddDuplicate, nil, -1
				}
				if !canReplaceByFee(tx, old) {
					tx.Result = transaction.ResultInsufficientFee
					return AddError, nil, -1
				}
				netOps -= int64(old.NumOps)
				if old.FeeSource.Equals(tx.FeeSource) {
					netFee -= old.FeeBid
				}
				oldTxIdx = idx
			}
			priorSeq = tx.SeqNum - 1
		}
	}

	if netOps+q.queueSizeOps > q.maxQueueSizeOps() {
		q.log.Debug("transaction does not fit into the queue",
			zap.Stringer("hash", tx.FullHash()),
			zap.Int64("queueOps", q.queueSizeOps))
		q.Ban([]*transaction.Transaction{tx})
		return AddTryAgainLater, nil, -1
	}

	if !q.ledger.CheckValid(tx, priorSeq) {
		return AddError, nil, -1
	}

	// The fee source is not necessarily the account the sequence number is
	// consumed from.
	var totalFees int64
	if feeState := q.accountStates[tx.FeeSource]; feeState != nil {
		totalFees = feeState.totalFees
	}
	if !coversReservations(q.ledger.SpendableBalance(tx.FeeSource), netFee, totalFees) {
		tx.Result = transaction.ResultInsufficientBalance
		return AddError, nil, -1
	}

	return AddPending, state, oldTxIdx
}

// Add tries to admit the given transaction into the queue.
func (q *Queue) Add(tx *transaction.Transaction) AddResult {
	res, state, oldTxIdx := q.canAdd(tx)
	if res != AddPending {
		return res
	}

	if state == nil {
		state = &accountState{}
		q.accountStates[tx.Source] = state
	}

	if oldTxIdx >= 0 {
		old := state.txs[oldTxIdx]
		// Releasing the replaced fee cannot erase this account state, it
		// still holds the transaction being replaced.
		q.releaseFeeMaybeEraseAccountState(old)
		state.queueSizeOps -= int64(old.NumOps)
		q.queueSizeOps -= int64(old.NumOps)
		state.txs[oldTxIdx] = tx
		q.notify(queueevent.Event{Type: queueevent.TransactionReplaced, Tx: tx, Data: old})
	} else {
		state.txs = append(state.txs, tx)
		q.sizeByAgeAdd(state.age, 1)
		q.notify(queueevent.Event{Type: queueevent.TransactionAdded, Tx: tx})
	}
	state.queueSizeOps += int64(tx.NumOps)
	q.queueSizeOps += int64(tx.NumOps)

	feeState := q.accountStates[tx.FeeSource]
	if feeState == nil {
		feeState = &accountState{}
		q.accountStates[tx.FeeSource] = feeState
	}
	feeState.totalFees += tx.FeeBid

	updatePendingOpsMetric(q.queueSizeOps)
	return res
}

// releaseFeeMaybeEraseAccountState drops the fee reservation of the given
// transaction and erases the fee-source account state once nothing keeps it
// alive. It may erase account states other than the one being worked on,
// callers iterating accountStates must not rely on entries they have not
// proven alive.
func (q *Queue) releaseFeeMaybeEraseAccountState(tx *transaction.Transaction) {
	state := q.accountStates[tx.FeeSource]
	if state == nil || state.totalFees < tx.FeeBid {
		panic("fee reservation accounting mismatch")
	}
	state.totalFees -= tx.FeeBid
	if len(state.txs) == 0 && state.totalFees == 0 {
		delete(q.accountStates, tx.FeeSource)
	}
}

// dropTransactions removes the [begin, end) range of the account's queued
// transactions, adjusting operation counters and fee reservations. The
// account entry is erased when nothing keeps it alive, otherwise an emptied
// queue resets the age.
func (q *Queue) dropTransactions(acc util.Uint160, state *accountState, begin, end int) {
	// releaseFeeMaybeEraseAccountState may erase other entries of
	// accountStates, but never this one: its txs slice is spliced only
	// after the loop.
	for _, tx := range state.txs[begin:end] {
		state.queueSizeOps -= int64(tx.NumOps)
		q.queueSizeOps -= int64(tx.NumOps)
		q.releaseFeeMaybeEraseAccountState(tx)
	}

	state.txs = append(state.txs[:begin], state.txs[end:]...)

	if len(state.txs) == 0 {
		if state.totalFees == 0 {
			delete(q.accountStates, acc)
		} else {
			state.age = 0
		}
	}
}

// RemoveApplied removes queued transactions made obsolete by the given just
// applied ones. Any queued transaction with a sequence number at or below
// the highest applied one of its source account has either been applied or
// become invalid, so whole prefixes are dropped. No hash is banned.
func (q *Queue) RemoveApplied(appliedTxs []*transaction.Transaction) {
	// The highest applied sequence number per source account.
	maxSeqByAccount := make(map[util.Uint160]int64)
	for _, tx := range appliedTxs {
		if seq := maxSeqByAccount[tx.Source]; tx.SeqNum > seq {
			maxSeqByAccount[tx.Source] = tx.SeqNum
		}
	}

	for acc, maxSeq := range maxSeqByAccount {
		state := q.accountStates[acc]
		if state == nil || len(state.txs) == 0 {
			continue
		}
		// Sequence numbers are monotonic, a queue starting above the
		// applied maximum is untouched.
		if state.txs[0].SeqNum > maxSeq {
			continue
		}

		// The range is half-open but the transaction at the highest
		// applied sequence number must go too.
		dropEnd := len(state.txs)
		if idx, ok := findBySeq(maxSeq, state.txs); ok {
			dropEnd = idx
			if dropEnd < len(state.txs) {
				dropEnd++
			}
		}

		// At least one transaction of the account was applied, so the
		// whole remainder restarts at age zero.
		q.sizeByAgeAdd(state.age, -int64(len(state.txs)))
		state.age = 0
		q.sizeByAgeAdd(0, int64(len(state.txs)-dropEnd))

		for _, tx := range state.txs[:dropEnd] {
			q.notify(queueevent.Event{Type: queueevent.TransactionRemoved, Tx: tx})
		}
		q.dropTransactions(acc, state, 0, dropEnd)
	}
	updatePendingOpsMetric(q.queueSizeOps)
}

// Ban evicts the given transactions from the queue and records their hashes
// in the front ban slot. Since a queue with a hole in its sequence numbers
// is useless, everything following an evicted transaction is evicted and
// banned with it. Transactions that are not queued only get their hash
// banned.
func (q *Queue) Ban(banTxs []*transaction.Transaction) {
	bannedFront := q.banned[0]

	txsByAccount := make(map[util.Uint160][]*transaction.Transaction)
	for _, tx := range banTxs {
		txsByAccount[tx.Source] = append(txsByAccount[tx.Source], tx)
		bannedFront[tx.FullHash()] = struct{}{}
	}

	for acc, accTxs := range txsByAccount {
		state := q.accountStates[acc]
		if state == nil || len(state.txs) == 0 {
			continue
		}

		// Locate the queued transaction with the lowest sequence number
		// that matches an explicitly banned one by hash. The explicit
		// list is not sorted.
		dropIdx := len(state.txs)
		for _, tx := range accTxs {
			if dropIdx < len(state.txs) && tx.SeqNum >= state.txs[dropIdx].SeqNum {
				continue
			}
			if idx, ok := findBySeq(tx.SeqNum, state.txs); ok && idx < len(state.txs) &&
				state.txs[idx].FullHash().Equals(tx.FullHash()) {
				dropIdx = idx
			}
		}
		if dropIdx == len(state.txs) {
			continue
		}

		for _, tx := range state.txs[dropIdx:] {
			bannedFront[tx.FullHash()] = struct{}{}
			q.notify(queueevent.Event{Type: queueevent.TransactionBanned, Tx: tx})
		}
		q.log.Debug("banning queued transactions",
			zap.String("account", address.Uint160ToString(acc)),
			zap.Int("count", len(state.txs)-dropIdx))
		q.sizeByAgeAdd(state.age, -int64(len(state.txs)-dropIdx))
		q.dropTransactions(acc, state, dropIdx, len(state.txs))
	}
	updatePendingOpsMetric(q.queueSizeOps)
	updateBannedTxsMetric(q.countAllBanned())
}

// Shift ages the queue by one closed ledger: the oldest ban slot is
// forgotten, a fresh one takes the front, accounts with queued transactions
// grow older and the ones reaching the pending depth get evicted and
// banned.
func (q *Queue) Shift() {
	last := len(q.banned) - 1
	copy(q.banned[1:], q.banned[:last])
	q.banned[0] = make(map[util.Uint256]struct{})
	bannedFront := q.banned[0]

	sizes := make([]int64, q.pendingDepth)
	for acc, state := range q.accountStates {
		// Fee-source-only entries have no queued transactions and always
		// stay at age zero.
		if len(state.txs) > 0 {
			state.age++
		}

		if state.age == q.pendingDepth {
			for _, tx := range state.txs {
				// Cannot erase this account state, its txs slice is
				// still non-empty.
				q.releaseFeeMaybeEraseAccountState(tx)
				bannedFront[tx.FullHash()] = struct{}{}
				q.notify(queueevent.Event{Type: queueevent.TransactionBanned, Tx: tx})
			}
			q.queueSizeOps -= state.queueSizeOps
			state.queueSizeOps = 0

			q.log.Info("evicting transactions exceeding the pending depth",
				zap.String("account", address.Uint160ToString(acc)),
				zap.Int("count", len(state.txs)))
			state.txs = nil
			if state.totalFees == 0 {
				// Deleting the entry being iterated over is fine, it
				// just will not be produced again.
				delete(q.accountStates, acc)
			} else {
				state.age = 0
			}
		} else {
			sizes[state.age] += int64(len(state.txs))
		}
	}

	q.sizeByAge = sizes
	for age, size := range sizes {
		updateSizeByAgeMetric(age, size)
	}
	updatePendingOpsMetric(q.queueSizeOps)
	updateBannedTxsMetric(q.countAllBanned())
}

// MaybeVersionUpgraded rewrites every queued transaction into the new
// envelope form when the last closed ledger has crossed protocol version 13
// and clears the ban ring (old-form hashes no longer match anything that
// can be submitted). It returns the old/new pairs for reflooding. This is
// the only mid-life rewrite of a queued transaction.
func (q *Queue) MaybeVersionUpgraded() []ReplacedTransaction {
	var replaced []ReplacedTransaction

	lcl := q.ledger.LastClosedHeader()
	if q.ledgerVersion < v13UpgradeVersion && lcl.LedgerVersion >= v13UpgradeVersion {
		for i := range q.banned {
			q.banned[i] = make(map[util.Uint256]struct{})
		}

		for _, state := range q.accountStates {
			for i, old := range state.txs {
				upgraded := transaction.ConvertForV13(old)
				state.txs[i] = upgraded
				replaced = append(replaced, ReplacedTransaction{Old: old, New: upgraded})
				q.notify(queueevent.Event{Type: queueevent.TransactionReplaced, Tx: upgraded, Data: old})
			}
		}
		q.log.Info("rewrote queued transactions for the protocol upgrade",
			zap.Uint32("version", lcl.LedgerVersion),
			zap.Int("count", len(replaced)))
		updateBannedTxsMetric(0)
	}
	q.ledgerVersion = lcl.LedgerVersion

	return replaced
}

// GetAccountQueueInfo returns the queue summary of the given account, a
// zero value if it has nothing queued or reserved.
func (q *Queue) GetAccountQueueInfo(acc util.Uint160) AccountQueueInfo {
	state := q.accountStates[acc]
	if state == nil {
		return AccountQueueInfo{}
	}
	info := AccountQueueInfo{
		TotalFees:    state.totalFees,
		QueueSizeOps: state.queueSizeOps,
		Age:          state.age,
	}
	if len(state.txs) > 0 {
		info.MaxSeq = state.txs[len(state.txs)-1].SeqNum
	}
	return info
}

// IsBanned reports whether the given hash sits in any slot of the ban ring.
func (q *Queue) IsBanned(hash util.Uint256) bool {
	for _, banned := range q.banned {
		if _, ok := banned[hash]; ok {
			return true
		}
	}
	return false
}

// CountBanned returns the number of hashes banned in the given ring slot,
// slot 0 being the most recent one.
func (q *Queue) CountBanned(index int) int {
	return len(q.banned[index])
}

func (q *Queue) countAllBanned() int {
	var n int
	for _, banned := range q.banned {
		n += len(banned)
	}
	return n
}

// Count returns the total number of queued transactions.
func (q *Queue) Count() int {
	var n int
	for _, state := range q.accountStates {
		n += len(state.txs)
	}
	return n
}

// ContainsKey checks if the transaction with the given hash is queued.
func (q *Queue) ContainsKey(hash util.Uint256) bool {
	_, ok := q.TryGetValue(hash)
	return ok
}

// TryGetValue returns a queued transaction by its full hash.
func (q *Queue) TryGetValue(hash util.Uint256) (*transaction.Transaction, bool) {
	for _, state := range q.accountStates {
		for _, tx := range state.txs {
			if tx.FullHash().Equals(hash) {
				return tx, true
			}
		}
	}
	return nil, false
}

// SizeByAge returns the age histogram of queued transactions, bucket i
// holding the number of transactions whose account is i ledgers old.
func (q *Queue) SizeByAge() []int64 {
	sizes := make([]int64, len(q.sizeByAge))
	copy(sizes, q.sizeByAge)
	return sizes
}

// sizeByAgeAdd adjusts one bucket of the age histogram.
func (q *Queue) sizeByAgeAdd(age int, delta int64) {
	q.sizeByAge[age] += delta
	updateSizeByAgeMetric(age, q.sizeByAge[age])
}

// maxQueueSizeOps derives the queue capacity from the per-ledger operation
// cap of the last closed ledger.
func (q *Queue) maxQueueSizeOps() int64 {
	return int64(q.ledger.LastClosedHeader().MaxTxSetSizeOps) * int64(q.poolLedgerMultiplier)
}
