// Package mempool implements the per-account nonce-ordered transaction
// queue described in spec §4.F: a fair round-robin drain across accounts,
// each account's own transactions strictly ordered by ascending nonce.
//
// The pool carries no internal lock (spec §5: "exclusively owned by the
// driver's task"); callers must serialize their own access, the same
// single-owner convention the Layer follows.
package mempool

import (
	"crypto/sha256"
	"errors"

	"github.com/nullcasino/corechain/internal/codec"
)

const (
	MaxBacklog      = 64
	MaxTransactions = 100_000

	staleCompactThreshold = 1024
)

var (
	ErrPoolFull       = errors.New("mempool: global transaction cap reached")
	ErrDuplicateTx    = errors.New("mempool: duplicate transaction digest")
	ErrDuplicateNonce = errors.New("mempool: duplicate (account, nonce) pair")
)

func digest(tx codec.Transaction) [32]byte {
	return sha256.Sum256(tx.Encode())
}

// Mempool holds pending, not-yet-applied transactions, draining them in
// round-robin fairness order across accounts.
type Mempool struct {
	transactions map[[32]byte]codec.Transaction
	tracked      map[string]map[uint64][32]byte // account pub -> nonce -> digest
	queue        []string                       // account pub deque, front = next to serve
	queued       map[string]bool

	staleSkips int
}

// New returns an empty mempool.
func New() *Mempool {
	return &Mempool{
		transactions: make(map[[32]byte]codec.Transaction),
		tracked:      make(map[string]map[uint64][32]byte),
		queued:       make(map[string]bool),
	}
}

// Len reports the total number of tracked transactions.
func (m *Mempool) Len() int {
	return len(m.transactions)
}

// Add inserts tx, enforcing the global cap, digest uniqueness, and
// first-wins (account, nonce) uniqueness. On per-account backlog overflow
// the largest-nonce entry for that account is dropped to make room (spec
// §4.F "add").
func (m *Mempool) Add(tx codec.Transaction) error {
	if len(m.transactions) >= MaxTransactions {
		return ErrPoolFull
	}
	d := digest(tx)
	if _, exists := m.transactions[d]; exists {
		return ErrDuplicateTx
	}

	pub := string(tx.Public)
	byNonce, ok := m.tracked[pub]
	if !ok {
		byNonce = make(map[uint64][32]byte)
		m.tracked[pub] = byNonce
	}
	if _, exists := byNonce[tx.Nonce]; exists {
		return ErrDuplicateNonce
	}

	if len(byNonce) >= MaxBacklog {
		largest := tx.Nonce
		for n := range byNonce {
			if n > largest {
				largest = n
			}
		}
		if largest == tx.Nonce {
			// The incoming tx is itself the largest-nonce entry: dropping it
			// leaves the account's backlog over the accepted set unchanged.
			return nil
		}
		delete(m.transactions, byNonce[largest])
		delete(byNonce, largest)
	}

	byNonce[tx.Nonce] = d
	m.transactions[d] = tx

	if !m.queued[pub] {
		m.queue = append(m.queue, pub)
		m.queued[pub] = true
	}
	return nil
}

// Retain drops every tracked (pub, nonce) pair with nonce < minNonce,
// called by the driver after a block to evict transactions the Layer's
// Prepare step has already consumed or invalidated (spec §4.F "retain").
func (m *Mempool) Retain(pub []byte, minNonce uint64) {
	key := string(pub)
	byNonce, ok := m.tracked[key]
	if !ok {
		return
	}
	for n, d := range byNonce {
		if n < minNonce {
			delete(byNonce, n)
			delete(m.transactions, d)
		}
	}
	if len(byNonce) == 0 {
		delete(m.tracked, key)
		delete(m.queued, key)
	}
}

// Next pops the next transaction in round-robin order: the account at the
// front of the queue, its smallest pending nonce. If the account still has
// entries afterward it is re-queued at the back. Stale queue entries
// (accounts no longer tracked) are skipped; after staleCompactThreshold
// consecutive stale skips the queue is compacted to only queued accounts
// (spec §4.F "next").
func (m *Mempool) Next() (codec.Transaction, bool) {
	for len(m.queue) > 0 {
		pub := m.queue[0]
		m.queue = m.queue[1:]

		byNonce, ok := m.tracked[pub]
		if !ok || len(byNonce) == 0 {
			m.staleSkips++
			if m.staleSkips >= staleCompactThreshold {
				m.compact()
			}
			continue
		}
		m.staleSkips = 0

		smallest := smallestNonce(byNonce)
		d := byNonce[smallest]
		tx := m.transactions[d]
		delete(byNonce, smallest)
		delete(m.transactions, d)

		if len(byNonce) > 0 {
			m.queue = append(m.queue, pub)
		} else {
			delete(m.tracked, pub)
			delete(m.queued, pub)
		}
		return tx, true
	}
	return codec.Transaction{}, false
}

// compact rebuilds the queue, dropping entries for accounts no longer in
// m.queued, preserving relative order.
func (m *Mempool) compact() {
	fresh := m.queue[:0]
	for _, pub := range m.queue {
		if m.queued[pub] {
			fresh = append(fresh, pub)
		}
	}
	m.queue = fresh
	m.staleSkips = 0
}

func smallestNonce(byNonce map[uint64][32]byte) uint64 {
	first := true
	var smallest uint64
	for n := range byNonce {
		if first || n < smallest {
			smallest = n
			first = false
		}
	}
	return smallest
}
