// Package execstate implements the Layer (spec §4.E): a per-block
// transactional overlay over the authenticated store that buffers pending
// reads/writes, validates nonces, and dispatches instructions to handlers
// for games, staking, CDP vaults, and the constant-product AMM.
package execstate

import (
	"bytes"
	"errors"
	"sort"

	"github.com/nullcasino/corechain/internal/codec"
)

// Source is the read side of the Layer's snapshot: the committed
// authenticated store. Only Get is needed; writes flow through the pending
// overlay and are returned from Commit for the driver to apply in bulk.
type Source interface {
	Get(keyHash [32]byte) ([]byte, bool)
}

// pendingOp is one buffered write: a nil Value marks a tombstone (Delete).
type pendingOp struct {
	key   codec.Key
	value []byte
}

// Layer is the per-block overlay described in spec §4.E and §9 ("read
// through, write to overlay"). It never mutates the snapshot directly;
// Commit yields the ordered write set for the driver to apply.
type Layer struct {
	store    Source
	identity []byte
	seed     []byte // canonical encoding of the consensus Seed for this block
	view     uint64

	pending map[[32]byte]*pendingOp
}

// NewLayer captures an immutable snapshot reference plus an empty overlay.
// identity is currently unused by handler logic (signature verification is
// performed by the driver before Prepare), but is threaded through so a
// future handler needing it has no constructor to change.
func NewLayer(store Source, identity []byte, seedBytes []byte) *Layer {
	return &Layer{store: store, identity: identity, seed: seedBytes, pending: make(map[[32]byte]*pendingOp)}
}

// get consults the pending map first; a tombstone resolves to not-found
// without falling through to the snapshot.
func (l *Layer) get(key codec.Key) ([]byte, bool) {
	h := key.Hash()
	if op, ok := l.pending[h]; ok {
		if op.value == nil {
			return nil, false
		}
		return op.value, true
	}
	return l.store.Get(h)
}

func (l *Layer) insert(key codec.Key, value []byte) {
	l.pending[key.Hash()] = &pendingOp{key: key, value: value}
}

func (l *Layer) delete(key codec.Key) {
	l.pending[key.Hash()] = &pendingOp{key: key, value: nil}
}

// Commit consumes the layer, yielding the ordered write set. Ordering is by
// ascending key hash, a stable deterministic total order standing in for
// the BTreeMap<Key,_> spec.md describes (the overlay itself has no other
// ordering requirement: reads inside a block only ever need "last write
// wins", which the map already gives).
func (l *Layer) Commit() []codec.Operation {
	hashes := make([][32]byte, 0, len(l.pending))
	for h := range l.pending {
		hashes = append(hashes, h)
	}
	sort.Slice(hashes, func(i, j int) bool { return bytes.Compare(hashes[i][:], hashes[j][:]) < 0 })
	ops := make([]codec.Operation, 0, len(hashes))
	for _, h := range hashes {
		op := l.pending[h]
		ops = append(ops, codec.Operation{KeyHash: h, Value: op.value})
	}
	return ops
}

// NonceMismatchError is returned by Prepare when tx.Nonce doesn't match the
// account's expected next nonce.
type NonceMismatchError struct {
	Expected, Got uint64
}

func (e *NonceMismatchError) Error() string {
	return "execstate: nonce mismatch"
}

var errAccountMissing = errors.New("execstate: account lookup produced no value")

// accountOf loads (or zero-initializes) the Account keyed by pub.
func (l *Layer) accountOf(pub []byte) codec.Account {
	raw, ok := l.get(codec.AccountKey(pub))
	if !ok {
		return codec.Account{}
	}
	acc, err := codec.DecodeAccount(codec.NewReader(raw))
	if err != nil {
		return codec.Account{}
	}
	return acc
}

// Prepare validates and consumes tx's nonce (spec §4.E, §7.2): the
// account's nonce must equal tx.Nonce exactly, after which it is
// incremented and written back to the overlay. Callers (the driver) must
// skip txs that fail Prepare entirely — no events, no other writes.
func (l *Layer) Prepare(tx codec.Transaction) error {
	acc := l.accountOf(tx.Public)
	if acc.Nonce != tx.Nonce {
		return &NonceMismatchError{Expected: acc.Nonce, Got: tx.Nonce}
	}
	acc.Nonce++
	l.insert(codec.AccountKey(tx.Public), acc.Encode())
	return nil
}

// Apply dispatches tx's instruction to the appropriate handler, producing
// the ordered events it emits. Handlers that fail emit a single
// CasinoError event and mutate nothing beyond what Prepare already wrote
// (spec §7.3): the nonce advance from Prepare is never rolled back, matching
// "every admitted transaction consumes exactly one nonce slot".
func (l *Layer) Apply(tx codec.Transaction) []codec.Event {
	ctx := handlerCtx{layer: l, public: tx.Public}
	switch tx.Instruction.Tag {
	case codec.InstrCasinoRegister:
		return ctx.register(tx.Instruction)
	case codec.InstrCasinoDeposit:
		return ctx.deposit(tx.Instruction)
	case codec.InstrCasinoStartGame:
		return ctx.startGame(tx.Instruction)
	case codec.InstrCasinoGameMove:
		return ctx.gameMove(tx.Instruction)
	case codec.InstrCasinoToggleShield:
		return ctx.toggleShield()
	case codec.InstrCasinoToggleDouble:
		return ctx.toggleDouble()
	case codec.InstrCasinoToggleSuper:
		return ctx.toggleSuper()
	case codec.InstrTournamentJoin:
		return ctx.tournamentJoin(tx.Instruction)
	case codec.InstrTournamentStart:
		return ctx.tournamentStart(tx.Instruction)
	case codec.InstrTournamentEnd:
		return ctx.tournamentEnd(tx.Instruction)
	case codec.InstrStake:
		return ctx.stake(tx.Instruction)
	case codec.InstrUnstake:
		return ctx.unstake()
	case codec.InstrClaimRewards:
		return ctx.claimRewards()
	case codec.InstrProcessEpoch:
		return ctx.processEpoch()
	case codec.InstrVaultCreate:
		return ctx.vaultCreate(tx.Instruction)
	case codec.InstrVaultDeposit:
		return ctx.vaultDeposit(tx.Instruction)
	case codec.InstrVaultBorrow:
		return ctx.vaultBorrow(tx.Instruction)
	case codec.InstrVaultRepay:
		return ctx.vaultRepay(tx.Instruction)
	case codec.InstrAmmSwap:
		return ctx.ammSwap(tx.Instruction)
	case codec.InstrAmmAddLiquidity:
		return ctx.ammAddLiquidity(tx.Instruction)
	case codec.InstrAmmRemoveLiquidity:
		return ctx.ammRemoveLiquidity(tx.Instruction)
	default:
		return []codec.Event{ctx.errEvent(0, ErrCodeUnknownInstruction, "unknown instruction")}
	}
}

// View threads the Layer's current block view (consensus view number) in,
// used by staking unlock checks and tournament timing. The driver sets it
// once per block before dispatching any transaction.
func (l *Layer) SetView(view uint64) { l.view = view }

// handlerCtx carries the fields every instruction handler needs: the layer
// itself (for get/insert/delete) and the transaction's signer.
type handlerCtx struct {
	layer  *Layer
	public []byte
}
