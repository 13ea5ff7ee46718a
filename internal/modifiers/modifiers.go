// Package modifiers implements the shield/double/super-mode payout
// transforms applied after a game engine produces a terminal result
// (spec §4.C).
package modifiers

import "github.com/nullcasino/corechain/internal/cards"

// SuperModeType distinguishes how a multiplier entry is keyed.
type SuperModeType uint8

const (
	// SuperModeCard keys a multiplier on a final card's rank/suit/id.
	SuperModeCard SuperModeType = iota
	// SuperModeStreak keys a multiplier on a HiLo-style guess streak length.
	SuperModeStreak
)

// SuperMultiplier is one (id, multiplier_bp, type) entry in a session's aura
// table. MultiplierBP is in basis points (10000 = 1.00x).
type SuperMultiplier struct {
	ID           uint32
	MultiplierBP uint64
	Type         SuperModeType
}

// SuperModeState is embedded in every GameSession. Active is the player's
// aura flag at session-start time; Multipliers compose by multiplication,
// saturating at u64::MAX.
type SuperModeState struct {
	Active      bool
	Multipliers []SuperMultiplier
}

// PlayerFlags is the minimal view of a Player's modifier counters the layer
// needs to apply shield/double (spec §4.C). The layer mutates the
// underlying Player and passes pointers to these fields.
type PlayerFlags struct {
	Shields      *uint32
	Doubles      *uint32
	ActiveShield *bool
	ActiveDouble *bool
}

// ApplyShieldDouble applies the shield (loss -> 0) and double (win -> 2x)
// transforms to a signed payout p (win positive, loss negative, push zero),
// and clears both active flags regardless of whether either fired.
func ApplyShieldDouble(p int64, f PlayerFlags) int64 {
	if p < 0 && f.ActiveShield != nil && *f.ActiveShield && f.Shields != nil && *f.Shields > 0 {
		p = 0
		*f.Shields--
	}
	if p > 0 && f.ActiveDouble != nil && *f.ActiveDouble && f.Doubles != nil && *f.Doubles > 0 {
		p *= 2
		*f.Doubles--
	}
	if f.ActiveShield != nil {
		*f.ActiveShield = false
	}
	if f.ActiveDouble != nil {
		*f.ActiveDouble = false
	}
	return p
}

func saturatingMulU64(a, b uint64) uint64 {
	if a == 0 || b == 0 {
		return 0
	}
	product := a * b
	if product/b != a {
		return ^uint64(0)
	}
	return product
}

// ApplyCardMultiplier composes every SuperModeCard entry whose ID matches
// one of the final cards' rank, suit, or raw id into the base win amount,
// for cards-based games (spec §4.C).
func ApplyCardMultiplier(baseWin uint64, state SuperModeState, finalCards []cards.Card) uint64 {
	if !state.Active || baseWin == 0 {
		return baseWin
	}
	bp := uint64(10_000)
	for _, m := range state.Multipliers {
		if m.Type != SuperModeCard {
			continue
		}
		for _, c := range finalCards {
			if uint32(c) == m.ID || uint32(c.RankHigh()) == m.ID || uint32(c.Suit()) == m.ID {
				bp = saturatingMulU64(bp, m.MultiplierBP) / 10_000
				break
			}
		}
	}
	return saturatingMulU64(baseWin, bp) / 10_000
}

// ApplyHiLoStreakMultiplier multiplies a HiLo cashout payout by a fixed
// streak bonus of 5% per streak step (10000 + 500*streak bp), and by 1.5x
// when the current card is an Ace (spec §4.C, §4.B HiLo specifics). The
// session's SuperModeStreak entries are not consulted.
func ApplyHiLoStreakMultiplier(payout uint64, streak uint8, currentIsAce bool) uint64 {
	if payout == 0 {
		return 0
	}
	bp := uint64(10_000)
	if streak > 0 {
		bp = saturatingMulU64(bp, 10_000+uint64(streak)*500) / 10_000
	}
	if currentIsAce {
		bp = saturatingMulU64(bp, 15_000) / 10_000
	}
	return saturatingMulU64(payout, bp) / 10_000
}
