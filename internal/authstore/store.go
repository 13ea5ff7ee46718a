// Package authstore implements the authenticated store adapter the driver
// commits state and events to: a keyed variable-value map for state, and a
// keyless append log for events, both backed by the same Merkle proof
// machinery and both exposing get/update/delete/commit/op_count/root/
// historical_proof/multi_proof.
package authstore

import (
	"errors"

	"github.com/nullcasino/corechain/internal/codec"
)

// ErrNotKeyed names the keyless-store condition. No method returns it: Get
// on a keyless store reports a miss, and Update/Delete do not check the
// store kind.
var ErrNotKeyed = errors.New("authstore: store is keyless")

// ErrRangeOutOfBounds is returned when a proof is requested over ops the
// store has never committed.
var ErrRangeOutOfBounds = errors.New("authstore: range out of bounds")

// Store is a single committed append log of Operations, either addressed
// by key hash (state) or purely by position (events).
type Store struct {
	keyed bool

	committed []codec.Operation
	pending   []codec.Operation
	index     map[[32]byte][]byte // keyed only: key_hash -> latest value

	sentinel    codec.Commit
	hasSentinel bool
}

// NewKeyedStore constructs the state-side adapter.
func NewKeyedStore() *Store {
	return &Store{keyed: true, index: make(map[[32]byte][]byte)}
}

// NewKeylessStore constructs the events-side adapter.
func NewKeylessStore() *Store {
	return &Store{keyed: false}
}

// Get returns the latest committed value for a key hash.
func (s *Store) Get(keyHash [32]byte) ([]byte, bool) {
	if !s.keyed {
		return nil, false
	}
	v, ok := s.index[keyHash]
	return v, ok
}

// Update buffers a keyed write, applied at the next Commit.
func (s *Store) Update(keyHash [32]byte, value []byte) {
	pos := uint64(len(s.committed) + len(s.pending))
	s.pending = append(s.pending, codec.Operation{Position: pos, KeyHash: keyHash, Value: value})
}

// Delete buffers a keyed tombstone (nil value), applied at the next Commit.
func (s *Store) Delete(keyHash [32]byte) {
	s.Update(keyHash, nil)
}

// Append buffers a keyless event, returning the position it will occupy
// once committed.
func (s *Store) Append(value []byte) uint64 {
	pos := uint64(len(s.committed) + len(s.pending))
	s.pending = append(s.pending, codec.Operation{Position: pos, Value: value})
	return pos
}

// GetMetadata returns the sentinel passed to the most recent Commit.
func (s *Store) GetMetadata() (codec.Commit, bool) {
	return s.sentinel, s.hasSentinel
}

// Commit flushes pending writes into the committed log, updates the keyed
// index (a nil value deletes the key), and records the caller's sentinel.
func (s *Store) Commit(sentinel codec.Commit) {
	for _, op := range s.pending {
		if s.keyed {
			if op.Value == nil {
				delete(s.index, op.KeyHash)
			} else {
				s.index[op.KeyHash] = op.Value
			}
		}
		s.committed = append(s.committed, op)
	}
	s.pending = nil
	s.sentinel = sentinel
	s.hasSentinel = true
}

// OpCount returns the number of committed operations.
func (s *Store) OpCount() uint64 {
	return uint64(len(s.committed))
}

func (s *Store) leaves() [][32]byte {
	leaves := make([][32]byte, len(s.committed))
	for i, op := range s.committed {
		leaves[i] = leafDigest(op)
	}
	return leaves
}

// Root returns the Merkle root over every committed operation.
func (s *Store) Root() [32]byte {
	return buildRoot(s.leaves())
}

// HistoricalProof returns the contiguous slice of committed operations in
// [startOp, endOp) along with a Proof sufficient to authenticate them
// against Root(), capped at maxLen operations.
func (s *Store) HistoricalProof(endOp, startOp uint64, maxLen int) (codec.Proof, []codec.Operation, error) {
	if startOp > endOp || endOp > uint64(len(s.committed)) {
		return codec.Proof{}, nil, ErrRangeOutOfBounds
	}
	if maxLen > 0 && endOp-startOp > uint64(maxLen) {
		endOp = startOp + uint64(maxLen)
	}
	ops := append([]codec.Operation(nil), s.committed[startOp:endOp]...)
	idxs := make([]uint64, len(ops))
	for i := range ops {
		idxs[i] = startOp + uint64(i)
	}
	proof := generateProof(s.leaves(), idxs)
	return proof, ops, nil
}

// MultiProof authenticates an arbitrary, not-necessarily-contiguous set of
// positions against Root(), used for account-filtered event slices.
func (s *Store) MultiProof(locations []uint64) (codec.Proof, []codec.Operation, error) {
	total := uint64(len(s.committed))
	ops := make([]codec.Operation, 0, len(locations))
	for _, loc := range locations {
		if loc >= total {
			return codec.Proof{}, nil, ErrRangeOutOfBounds
		}
		ops = append(ops, s.committed[loc])
	}
	proof := generateProof(s.leaves(), locations)
	return proof, ops, nil
}
