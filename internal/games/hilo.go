package games

import (
	"encoding/binary"
	"math"

	"github.com/nullcasino/corechain/internal/cards"
	"github.com/nullcasino/corechain/internal/modifiers"
)

// hiloGame implements HiLo (spec §4.B HiLo specifics). State blob is 9
// bytes: [current_card:u8][accumulator:i64 BE], accumulator in basis points.
type hiloGame struct{}

const hiloBaseMultiplier int64 = 10_000

func hiloParseState(blob []byte) (card cards.Card, accumulator int64, ok bool) {
	if len(blob) < 9 {
		return 0, 0, false
	}
	card = cards.Card(blob[0])
	accumulator = int64(binary.BigEndian.Uint64(blob[1:9]))
	return card, accumulator, true
}

func hiloSerializeState(card cards.Card, accumulator int64) []byte {
	out := make([]byte, 9)
	out[0] = byte(card)
	binary.BigEndian.PutUint64(out[1:9], uint64(accumulator))
	return out
}

func (hiloGame) Init(session *GameSession, rng *cards.GameRng) GameResult {
	deck := rng.CreateDeck()
	card, ok := cards.DrawCard(&deck)
	if !ok {
		card = 0
	}
	session.StateBlob = hiloSerializeState(card, hiloBaseMultiplier)
	return GameResult{Kind: ResultContinue}
}

// hiloMultiplier returns the fair-odds multiplier, in basis points, for a
// correct guess from rank (Ace-low, 1..13).
func hiloMultiplier(rank uint8, guessHigher bool) int64 {
	var wins int64
	if guessHigher {
		wins = 13 - int64(rank)
	} else {
		wins = int64(rank) - 1
	}
	if wins <= 0 {
		return 0
	}
	return (13 * hiloBaseMultiplier) / wins
}

func (hiloGame) ProcessMove(session *GameSession, payload []byte, rng *cards.GameRng) (GameResult, error) {
	if err := requireLen(payload, 1); err != nil {
		return GameResult{}, err
	}
	currentCard, accumulator, ok := hiloParseState(session.StateBlob)
	if !ok {
		return GameResult{}, ErrInvalidPayload
	}

	switch payload[0] {
	case 2: // Cashout
		session.IsComplete = true
		basePayout := int64(session.Bet) * accumulator / hiloBaseMultiplier
		if basePayout <= 0 {
			return GameResult{Kind: ResultLoss}, nil
		}
		payout := uint64(basePayout)
		if session.SuperMode.Active && session.MoveCount > 0 {
			isAce := currentCard.RankLow() == 1
			streak := session.MoveCount
			if streak > 255 {
				streak = 255
			}
			payout = modifiers.ApplyHiLoStreakMultiplier(payout, uint8(streak), isAce)
		}
		session.FinalCards = []cards.Card{currentCard}
		return GameResult{Kind: ResultWin, Amount: payout}, nil

	case 0, 1: // Higher, Lower
		guessHigher := payload[0] == 0
		currentRank := currentCard.RankLow()
		if (guessHigher && currentRank == 13) || (!guessHigher && currentRank == 1) {
			return GameResult{}, ErrInvalidMove
		}
		deck := rng.CreateDeckExcluding([]cards.Card{currentCard})
		newCard, ok := cards.DrawCard(&deck)
		if !ok {
			return GameResult{}, ErrDeckExhausted
		}
		newRank := newCard.RankLow()
		session.MoveCount++

		correct := newRank > currentRank
		if !guessHigher {
			correct = newRank < currentRank
		}
		if correct {
			multiplier := hiloMultiplier(currentRank, guessHigher)
			if multiplier != 0 && (accumulator > math.MaxInt64/multiplier || accumulator < math.MinInt64/multiplier) {
				return GameResult{}, ErrInvalidState
			}
			newAccumulator := accumulator * multiplier / hiloBaseMultiplier
			session.StateBlob = hiloSerializeState(newCard, newAccumulator)
			return GameResult{Kind: ResultContinue}, nil
		}
		session.StateBlob = hiloSerializeState(newCard, 0)
		session.IsComplete = true
		return GameResult{Kind: ResultLoss}, nil

	default:
		return GameResult{}, ErrInvalidPayload
	}
}
