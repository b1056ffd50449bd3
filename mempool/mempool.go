package mempool

import (
	"sync"

	"github.com/google/btree"

	"github.com/copernet/kernel/model/outpoint"
	"github.com/copernet/kernel/model/tx"
	"github.com/copernet/kernel/util"
)

// TxEntry is one transaction waiting in the pool. DependsOn lists the hashes
// of parents that are themselves still unconfirmed.
type TxEntry struct {
	TxHash    util.Hash
	Tx        *tx.Tx
	DependsOn []util.Hash

	sequence uint64
}

func NewTxEntry(transaction *tx.Tx) *TxEntry {
	return &TxEntry{
		TxHash: transaction.GetHash(),
		Tx:     transaction,
	}
}

// NewTxEntryFromValidation builds the entry for an accepted transaction,
// recording as dependencies the parents the validator reported unconfirmed.
func NewTxEntryFromValidation(transaction *tx.Tx, unconfirmed []int) *TxEntry {
	entry := NewTxEntry(transaction)
	for _, index := range unconfirmed {
		if in := transaction.GetTxIn(index); in != nil {
			entry.DependsOn = append(entry.DependsOn, in.PreviousOutPoint.Hash)
		}
	}
	return entry
}

func (entry *TxEntry) Less(than btree.Item) bool {
	return entry.sequence < than.(*TxEntry).sequence
}

// Pool is an insertion-ordered transaction container. Validation never works
// on the live pool; it takes a Snapshot and scans that.
type Pool struct {
	mtx          sync.RWMutex
	entries      *btree.BTree
	nextSequence uint64
}

func NewPool() *Pool {
	return &Pool{
		entries: btree.New(32),
	}
}

func (pool *Pool) Add(entry *TxEntry) {
	pool.mtx.Lock()
	defer pool.mtx.Unlock()
	entry.sequence = pool.nextSequence
	pool.nextSequence++
	pool.entries.ReplaceOrInsert(entry)
}

func (pool *Pool) Size() int {
	pool.mtx.RLock()
	defer pool.mtx.RUnlock()
	return pool.entries.Len()
}

// Snapshot returns the entries in insertion order. The slice is immutable
// from the pool's point of view and stays valid after further Adds.
func (pool *Pool) Snapshot() Snapshot {
	pool.mtx.RLock()
	defer pool.mtx.RUnlock()
	snapshot := make(Snapshot, 0, pool.entries.Len())
	pool.entries.Ascend(func(item btree.Item) bool {
		snapshot = append(snapshot, item.(*TxEntry))
		return true
	})
	return snapshot
}

// Snapshot is an ordered view of the pool. The expected cardinality is low,
// so the queries are linear scans.
type Snapshot []*TxEntry

// Find returns the entry carrying the given transaction hash, or nil.
func (snapshot Snapshot) Find(hash *util.Hash) *TxEntry {
	for _, entry := range snapshot {
		if entry.TxHash.IsEqual(hash) {
			return entry
		}
	}
	return nil
}

// IsSpent reports whether any pooled transaction already spends the outpoint.
func (snapshot Snapshot) IsSpent(out *outpoint.OutPoint) bool {
	for _, entry := range snapshot {
		if entry.Tx.AnyInputSpends(out) {
			return true
		}
	}
	return false
}
