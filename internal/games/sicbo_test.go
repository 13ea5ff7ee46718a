package games

import (
	"testing"

	"github.com/nullcasino/corechain/internal/cards"
)

func placeSicBoBet(betType, number byte, amount uint64) []byte {
	out := make([]byte, 11)
	out[0], out[1], out[2] = 0, betType, number
	for i := 0; i < 8; i++ {
		out[3+i] = byte(amount >> uint(8*(7-i)))
	}
	return out
}

func TestSicBoBigBetPaysTwoX(t *testing.T) {
	for seed := uint64(0); seed < 200; seed++ {
		session := &GameSession{ID: seed, GameType: GameSicBo, Bet: 10}
		rng := cards.NewGameRng([]byte("dice"), seed, 0)
		Init(session, rng)
		if _, err := ProcessMove(session, placeSicBoBet(sicBoBig, 0, 10), rng); err != nil {
			t.Fatalf("place: %v", err)
		}
		res, err := ProcessMove(session, []byte{1}, rng)
		if err != nil {
			t.Fatalf("roll: %v", err)
		}
		if !session.IsComplete {
			t.Fatal("roll settles the round")
		}
		if res.Kind == ResultWin && res.Amount != 20 {
			t.Fatalf("big bet should pay 2x, got %d", res.Amount)
		}
	}
}

func TestSicBoSpecificTripleRejectsOutOfRange(t *testing.T) {
	session := &GameSession{ID: 1, GameType: GameSicBo, Bet: 10}
	rng := cards.NewGameRng([]byte("dice2"), 1, 0)
	Init(session, rng)
	if _, err := ProcessMove(session, placeSicBoBet(sicBoSpecificTrp, 7, 10), rng); err != ErrInvalidPayload {
		t.Fatalf("expected ErrInvalidPayload, got %v", err)
	}
}

func TestSicBoRollBeforePlaceUsesDefaultBet(t *testing.T) {
	session := &GameSession{ID: 1, GameType: GameSicBo, Bet: 10}
	rng := cards.NewGameRng([]byte("dice3"), 1, 0)
	Init(session, rng)
	if _, err := ProcessMove(session, []byte{1}, rng); err != nil {
		t.Fatalf("roll with default bet should be legal, got %v", err)
	}
	if _, err := ProcessMove(session, placeSicBoBet(sicBoBig, 0, 10), rng); err != ErrGameAlreadyComplete {
		t.Fatalf("expected ErrGameAlreadyComplete, got %v", err)
	}
}
