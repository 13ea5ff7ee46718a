package cards

import (
	"crypto/sha256"
	"encoding/binary"
)

// GameRng is the deterministic randomness source for a single game move. It
// is always constructed fresh from (seed, session id, move number) — never
// threaded as a mutable value across moves — so that replay from the same
// inputs reproduces the same byte stream on every platform.
type GameRng struct {
	state [sha256.Size]byte
	pos   int
}

// NewGameRng derives the RNG state as SHA256(seedBytes || sessionID_be ||
// move_be), bit-exact per spec §4.A. seedBytes is the canonical encoding of
// the consensus-derived Seed; the caller (internal/execstate) supplies it so
// this package has no dependency on the wire codec.
func NewGameRng(seedBytes []byte, sessionID uint64, move uint32) *GameRng {
	buf := make([]byte, 0, len(seedBytes)+8+4)
	buf = append(buf, seedBytes...)
	var idBuf [8]byte
	binary.BigEndian.PutUint64(idBuf[:], sessionID)
	buf = append(buf, idBuf[:]...)
	var moveBuf [4]byte
	binary.BigEndian.PutUint32(moveBuf[:], move)
	buf = append(buf, moveBuf[:]...)

	r := &GameRng{state: sha256.Sum256(buf)}
	return r
}

// nextByte returns the next pseudo-random byte, refilling the internal
// state by re-hashing it once 32 bytes have been consumed.
func (r *GameRng) nextByte() byte {
	if r.pos >= sha256.Size {
		r.state = sha256.Sum256(r.state[:])
		r.pos = 0
	}
	b := r.state[r.pos]
	r.pos++
	return b
}

// NextU8 returns the next pseudo-random byte.
func (r *GameRng) NextU8() uint8 { return r.nextByte() }

// NextU16 returns the next pseudo-random uint16, MSB-first.
func (r *GameRng) NextU16() uint16 {
	hi := r.nextByte()
	lo := r.nextByte()
	return uint16(hi)<<8 | uint16(lo)
}

// NextBounded returns a value in [0, max) via rejection sampling against
// floor(255/max)*max, avoiding modulo bias. max must be in (0, 256).
func (r *GameRng) NextBounded(max uint16) uint16 {
	if max == 0 {
		return 0
	}
	limit := (255 / max) * max
	for {
		b := uint16(r.nextByte())
		if b < limit {
			return b % max
		}
	}
}

// CreateDeck returns a Fisher-Yates shuffle of 0..51.
func (r *GameRng) CreateDeck() []Card {
	return r.CreateDeckExcluding(nil)
}

// CreateDeckExcluding returns a Fisher-Yates shuffle of 0..51 omitting the
// given cards.
func (r *GameRng) CreateDeckExcluding(excluded []Card) []Card {
	skip := make(map[Card]bool, len(excluded))
	for _, c := range excluded {
		skip[c] = true
	}
	deck := make([]Card, 0, 52)
	for i := 0; i < 52; i++ {
		c := Card(i)
		if !skip[c] {
			deck = append(deck, c)
		}
	}
	for i := len(deck) - 1; i > 0; i-- {
		j := int(r.NextBounded(uint16(i + 1)))
		deck[i], deck[j] = deck[j], deck[i]
	}
	return deck
}

// RollDie returns a uniform value in 1..6.
func (r *GameRng) RollDie() uint8 {
	return uint8(r.NextBounded(6)) + 1
}

// SpinRoulette returns a uniform value in 0..36 (European wheel).
func (r *GameRng) SpinRoulette() uint8 {
	return uint8(r.NextBounded(37))
}

// DrawCard pops and returns the top card of deck, or ok=false if empty.
func DrawCard(deck *[]Card) (Card, bool) {
	d := *deck
	if len(d) == 0 {
		return 0, false
	}
	c := d[len(d)-1]
	*deck = d[:len(d)-1]
	return c, true
}
