package authstore

import (
	"crypto/sha256"
	"sort"

	"github.com/nullcasino/corechain/internal/codec"
)

// leafDigest hashes one committed operation's encoding into a tree leaf,
// the same SHA256-over-encoding approach the rest of the wire format uses.
func leafDigest(op codec.Operation) [32]byte {
	w := codec.NewWriter()
	w.WriteU64(op.Position)
	w.WriteBytesFixed(op.KeyHash[:])
	w.WriteBytes(op.Value)
	return sha256.Sum256(w.Bytes())
}

func hashPair(left, right [32]byte) [32]byte {
	buf := make([]byte, 0, 64)
	buf = append(buf, left[:]...)
	buf = append(buf, right[:]...)
	return sha256.Sum256(buf)
}

// buildLevels computes every level of the tree bottom-up, padding an odd
// level by duplicating its last node the way a Bitcoin-style tree does.
// levels[0] is the (padded) leaf level; the last entry is the one-element
// root level.
func buildLevels(leaves [][32]byte) [][][32]byte {
	if len(leaves) == 0 {
		return [][][32]byte{{}}
	}
	level := append([][32]byte(nil), leaves...)
	levels := [][][32]byte{}
	for {
		if len(level) > 1 && len(level)%2 == 1 {
			level = append(level, level[len(level)-1])
		}
		levels = append(levels, level)
		if len(level) == 1 {
			break
		}
		next := make([][32]byte, len(level)/2)
		for i := 0; i < len(level); i += 2 {
			next[i/2] = hashPair(level[i], level[i+1])
		}
		level = next
	}
	return levels
}

// buildRoot computes the Merkle root of leaves.
func buildRoot(leaves [][32]byte) [32]byte {
	levels := buildLevels(leaves)
	last := levels[len(levels)-1]
	if len(last) == 0 {
		return [32]byte{}
	}
	return last[0]
}

// frontier evolves a known-index set one level at a time, gathering the
// sibling hashes required to bridge gaps (indices whose pair isn't itself
// known). The same traversal drives both proof generation (where missing
// hashes come from the full leaf table) and verification (where they're
// consumed off the proof's Ops queue), so the two stay in lockstep as long
// as they iterate the known set in the same ascending order.
func frontier(total uint64, known map[uint64][32]byte, need func(level int, idx uint64) ([32]byte, bool)) ([]codec.ProofOp, map[uint64][32]byte) {
	var ops []codec.ProofOp
	levelSize := total
	level := 0
	for levelSize > 1 {
		if levelSize%2 == 1 {
			levelSize++
		}
		idxs := make([]uint64, 0, len(known))
		for idx := range known {
			idxs = append(idxs, idx)
		}
		sort.Slice(idxs, func(i, j int) bool { return idxs[i] < idxs[j] })

		next := make(map[uint64][32]byte, len(idxs)/2+1)
		seen := map[uint64]bool{}
		for _, idx := range idxs {
			if seen[idx] {
				continue
			}
			sibIdx := idx ^ 1
			var sib [32]byte
			if h, ok := known[sibIdx]; ok {
				sib = h
				seen[sibIdx] = true
			} else {
				h, ok := need(level, sibIdx)
				if !ok {
					return nil, known // caller's levels table is inconsistent with total
				}
				ops = append(ops, codec.ProofOp{Sibling: h, IsLeft: sibIdx < idx})
				sib = h
			}
			var left, right [32]byte
			if idx%2 == 0 {
				left, right = known[idx], sib
			} else {
				left, right = sib, known[idx]
			}
			next[idx/2] = hashPair(left, right)
		}
		known = next
		levelSize /= 2
		level++
	}
	return ops, known
}

// generateProof builds a Proof that lets a verifier, given only the
// operations at idxs and the returned Ops, recompute the root over all
// `total` leaves. allLeaves must contain every committed leaf so siblings
// outside idxs can be looked up directly.
func generateProof(allLeaves [][32]byte, idxs []uint64) codec.Proof {
	total := uint64(len(allLeaves))
	levels := buildLevels(allLeaves)
	known := make(map[uint64][32]byte, len(idxs))
	for _, i := range idxs {
		known[i] = allLeaves[i]
	}
	ops, _ := frontier(total, known, func(level int, idx uint64) ([32]byte, bool) {
		if level < len(levels) && idx < uint64(len(levels[level])) {
			return levels[level][idx], true
		}
		return [32]byte{}, false
	})
	return codec.Proof{Ops: ops}
}

// VerifyProof recomputes the root from the proven operations and the
// proof's sibling list, and reports whether it matches root.
func VerifyProof(proof codec.Proof, ops []codec.Operation, total uint64, root [32]byte) bool {
	known := make(map[uint64][32]byte, len(ops))
	for _, op := range ops {
		known[op.Position] = leafDigest(op)
	}
	queue := proof.Ops
	pop := func(int, uint64) ([32]byte, bool) {
		if len(queue) == 0 {
			return [32]byte{}, false
		}
		h := queue[0].Sibling
		queue = queue[1:]
		return h, true
	}
	_, final := frontier(total, known, pop)
	if len(final) != 1 {
		return false
	}
	for _, h := range final {
		return h == root
	}
	return false
}
