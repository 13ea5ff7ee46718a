package games

import (
	"testing"

	"github.com/nullcasino/corechain/internal/cards"
)

func placeRouletteBet(betType, number byte, amount uint64) []byte {
	out := make([]byte, 11)
	out[0], out[1], out[2] = 0, betType, number
	for i := 0; i < 8; i++ {
		out[3+i] = byte(amount >> uint(8*(7-i)))
	}
	return out
}

func TestRouletteStraightUpOnZeroPays36(t *testing.T) {
	for seed := uint64(0); seed < 200; seed++ {
		session := &GameSession{ID: seed, GameType: GameRoulette, Bet: 10}
		rng := cards.NewGameRng([]byte("spin"), seed, 0)
		Init(session, rng)
		if _, err := ProcessMove(session, placeRouletteBet(rouletteStraight, 0, 10), rng); err != nil {
			t.Fatalf("place: %v", err)
		}
		res, err := ProcessMove(session, []byte{1}, rng)
		if err != nil {
			t.Fatalf("spin: %v", err)
		}
		if !session.IsComplete {
			t.Fatal("spin settles the round")
		}
		if res.Kind == ResultWin && res.Amount != 360 {
			t.Fatalf("straight win on 0 should pay 36x, got %d", res.Amount)
		}
	}
}

func TestRouletteRejectsOutOfRangeNumber(t *testing.T) {
	session := &GameSession{ID: 1, GameType: GameRoulette, Bet: 10}
	rng := cards.NewGameRng([]byte("spin"), 1, 0)
	Init(session, rng)
	if _, err := ProcessMove(session, placeRouletteBet(rouletteStraight, 37, 10), rng); err != ErrInvalidPayload {
		t.Fatalf("expected ErrInvalidPayload, got %v", err)
	}
}

func TestRouletteSpinBeforePlaceUsesDefaultBet(t *testing.T) {
	session := &GameSession{ID: 1, GameType: GameRoulette, Bet: 10}
	rng := cards.NewGameRng([]byte("color"), 1, 0)
	Init(session, rng)
	res, err := ProcessMove(session, []byte{1}, rng)
	if err != nil {
		t.Fatalf("process move: %v", err)
	}
	if res.Kind != ResultWin && res.Kind != ResultLoss {
		t.Fatalf("expected a settled result, got %v", res.Kind)
	}
}

func TestRouletteBetAfterSpinIsInvalid(t *testing.T) {
	session := &GameSession{ID: 1, GameType: GameRoulette, Bet: 10}
	rng := cards.NewGameRng([]byte("color2"), 1, 0)
	Init(session, rng)
	if _, err := ProcessMove(session, []byte{1}, rng); err != nil {
		t.Fatalf("spin: %v", err)
	}
	if _, err := ProcessMove(session, placeRouletteBet(rouletteRed, 0, 10), rng); err != ErrGameAlreadyComplete {
		t.Fatalf("expected ErrGameAlreadyComplete, got %v", err)
	}
}
