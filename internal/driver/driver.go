// Package driver implements the state-transition driver of spec §4.G: it
// ties a consensus seed and an ordered transaction batch to one block's
// worth of Layer execution, then commits events before state so a reader
// observing a crash mid-block never sees state without its events.
package driver

import (
	"errors"

	deadlock "github.com/sasha-s/go-deadlock"

	"github.com/nullcasino/corechain/internal/authstore"
	"github.com/nullcasino/corechain/internal/codec"
	"github.com/nullcasino/corechain/internal/execstate"
	"github.com/nullcasino/corechain/internal/mempool"
)

// MaxBlockTransactions bounds how many mempool entries ExecuteBlock drains
// per height, mirroring the wire submission cap (spec §6.3,
// MaxSubmissionTxCount) rather than inventing a separate limit.
const MaxBlockTransactions = codec.MaxSubmissionTxCount

// ErrHeightNotAdjacent is returned when h is neither the store's current
// committed height nor its successor (spec §4.G step 1: "no-op" case).
var ErrHeightNotAdjacent = errors.New("driver: height is not current or next")

// Driver owns one node's state store, events log and mempool across
// blocks. Its mutex enforces the single-threaded-cooperative scheduling
// model (spec §5): ExecuteBlock runs prepare->apply->commit to completion
// before releasing, catching any accidental re-entrant call from a second
// goroutine during development rather than silently interleaving two
// blocks' writes.
type Driver struct {
	mu deadlock.Mutex

	State    *authstore.Store
	Events   *authstore.Store
	Mempool  *mempool.Mempool
	Identity []byte
}

// NewDriver wires together the store adapters and mempool a node needs to
// execute successive blocks.
func NewDriver(state, events *authstore.Store, mp *mempool.Mempool, identity []byte) *Driver {
	return &Driver{State: state, Events: events, Mempool: mp, Identity: identity}
}

// ExecuteBlock drains the driver's mempool and runs one height's
// transition, serialized against any concurrent caller.
func (d *Driver) ExecuteBlock(height uint64, seed codec.Seed) (StateTransitionResult, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return ExecuteBlock(d.State, d.Events, d.Identity, height, seed, d.Mempool)
}

// StateTransitionResult is the driver's externally observable output for
// one block (spec §4.G).
type StateTransitionResult struct {
	StateRoot       [32]byte
	StateStartOp    uint64
	StateEndOp      uint64
	EventsRoot      [32]byte
	EventsStartOp   uint64
	EventsEndOp     uint64
	ProcessedNonces map[string]uint64 // account pub (as string) -> next expected nonce
}

// ExecuteBlock drains up to MaxBlockTransactions transactions from mp in
// mempool order and runs them through Execute, retaining mp's per-account
// backlog against the resulting processed-nonce map afterward. This is the
// convenience entry point a node's block-production loop calls; Execute
// itself takes the already-ordered transaction slice the spec's component
// inputs name directly.
func ExecuteBlock(state, events *authstore.Store, identity []byte, height uint64, seed codec.Seed, mp *mempool.Mempool) (StateTransitionResult, error) {
	txs := make([]codec.Transaction, 0, MaxBlockTransactions)
	for len(txs) < MaxBlockTransactions {
		tx, ok := mp.Next()
		if !ok {
			break
		}
		txs = append(txs, tx)
	}

	result, err := Execute(state, events, identity, height, seed, txs)
	if err != nil {
		return StateTransitionResult{}, err
	}
	for pub, nextNonce := range result.ProcessedNonces {
		mp.Retain([]byte(pub), nextNonce)
	}
	return result, nil
}

// Execute drives one height's worth of execution per spec §4.G:
//
//  1. read state's commit metadata; no-op if h isn't current or next height
//  2. if h == state_height+1, open a Layer and run prepare->apply over txs
//  3. if also h == events_height+1, append outputs and commit events
//  4. apply the layer's write set to state and commit state
//  5. capture roots and op ranges for both stores
func Execute(state, events *authstore.Store, identity []byte, height uint64, seed codec.Seed, txs []codec.Transaction) (StateTransitionResult, error) {
	stateMeta, hasState := state.GetMetadata()
	stateHeight := uint64(0)
	if hasState {
		stateHeight = stateMeta.Height
	}

	if height != stateHeight && height != stateHeight+1 {
		return noOpResult(state, events), ErrHeightNotAdjacent
	}
	if height == stateHeight {
		// Already applied this height (e.g. a retried call after a crash
		// between commits); return current roots, apply nothing further.
		return noOpResult(state, events), nil
	}

	seedBytes := seed.Encode()
	layer := execstate.NewLayer(state, identity, seedBytes)
	layer.SetView(seed.View)

	var outputs []codec.Event
	processedNonces := make(map[string]uint64)
	for _, tx := range txs {
		if err := tx.Verify(); err != nil {
			continue
		}
		if err := layer.Prepare(tx); err != nil {
			continue
		}
		txEvents := layer.Apply(tx)
		outputs = append(outputs, txEvents...)
		outputs = append(outputs, codec.Event{Tag: codec.OutputTransaction, Transaction: &tx})
		processedNonces[string(tx.Public)] = tx.Nonce + 1
	}

	eventsMeta, hasEvents := events.GetMetadata()
	eventsHeight := uint64(0)
	if hasEvents {
		eventsHeight = eventsMeta.Height
	}
	eventsStart := events.OpCount()
	if height == eventsHeight+1 {
		for _, out := range outputs {
			events.Append(out.Encode())
		}
		events.Commit(codec.Commit{Height: height, Start: eventsStart})
	}

	stateStart := state.OpCount()
	for _, op := range layer.Commit() {
		if op.Value == nil {
			state.Delete(op.KeyHash)
		} else {
			state.Update(op.KeyHash, op.Value)
		}
	}
	state.Commit(codec.Commit{Height: height, Start: stateStart})

	return StateTransitionResult{
		StateRoot:       state.Root(),
		StateStartOp:    stateStart,
		StateEndOp:      state.OpCount(),
		EventsRoot:      events.Root(),
		EventsStartOp:   eventsStart,
		EventsEndOp:     events.OpCount(),
		ProcessedNonces: processedNonces,
	}, nil
}

func noOpResult(state, events *authstore.Store) StateTransitionResult {
	return StateTransitionResult{
		StateRoot:       state.Root(),
		StateEndOp:      state.OpCount(),
		EventsRoot:      events.Root(),
		EventsEndOp:     events.OpCount(),
		ProcessedNonces: map[string]uint64{},
	}
}
