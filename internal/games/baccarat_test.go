package games

import (
	"testing"

	"github.com/nullcasino/corechain/internal/cards"
)

func placeBaccaratBet(betType byte, amount uint64) []byte {
	out := make([]byte, 10)
	out[0], out[1] = 0, betType
	for i := 0; i < 8; i++ {
		out[2+i] = byte(amount >> uint(8*(7-i)))
	}
	return out
}

func TestBaccaratPlaceThenDealSettles(t *testing.T) {
	for seed := uint64(0); seed < 100; seed++ {
		session := &GameSession{ID: seed, GameType: GameBaccarat, Bet: 100}
		rng := cards.NewGameRng([]byte("baccarat"), seed, 0)
		Init(session, rng)

		if _, err := ProcessMove(session, placeBaccaratBet(0, 100), rng); err != nil {
			t.Fatalf("place: %v", err)
		}
		if session.IsComplete {
			t.Fatal("placing a bet should not settle the round")
		}

		res, err := ProcessMove(session, []byte{1}, rng)
		if err != nil {
			t.Fatalf("deal: %v", err)
		}
		if !session.IsComplete {
			t.Fatal("dealing should settle the round")
		}
		if res.Kind != ResultWin && res.Kind != ResultLoss && res.Kind != ResultPush {
			t.Fatalf("unexpected result kind %v", res.Kind)
		}
	}
}

func TestBaccaratRejectsUnknownSide(t *testing.T) {
	session := &GameSession{ID: 1, GameType: GameBaccarat, Bet: 100}
	rng := cards.NewGameRng([]byte("baccarat2"), 1, 0)
	Init(session, rng)
	if _, err := ProcessMove(session, placeBaccaratBet(3, 100), rng); err != ErrInvalidPayload {
		t.Fatalf("expected ErrInvalidPayload, got %v", err)
	}
}

func TestBaccaratDealWithoutExplicitPlaceDefaultsToPlayerBet(t *testing.T) {
	session := &GameSession{ID: 2, GameType: GameBaccarat, Bet: 100}
	rng := cards.NewGameRng([]byte("baccarat3"), 2, 0)
	Init(session, rng)
	if _, err := ProcessMove(session, []byte{1}, rng); err != nil {
		t.Fatalf("dealing with the default (player) bet should be legal, got %v", err)
	}
}

func TestBaccaratCannotPlaceAfterDeal(t *testing.T) {
	session := &GameSession{ID: 3, GameType: GameBaccarat, Bet: 100}
	rng := cards.NewGameRng([]byte("baccarat4"), 3, 0)
	Init(session, rng)
	if _, err := ProcessMove(session, []byte{1}, rng); err != nil {
		t.Fatalf("deal: %v", err)
	}
	if _, err := ProcessMove(session, placeBaccaratBet(0, 100), rng); err != ErrGameAlreadyComplete {
		t.Fatalf("expected ErrGameAlreadyComplete, got %v", err)
	}
}

func TestBaccaratTieBetPaysNineX(t *testing.T) {
	found := false
	for seed := uint64(0); seed < 2000 && !found; seed++ {
		session := &GameSession{ID: seed, GameType: GameBaccarat, Bet: 10}
		rng := cards.NewGameRng([]byte("tie"), seed, 0)
		Init(session, rng)
		if _, err := ProcessMove(session, placeBaccaratBet(2, 10), rng); err != nil {
			t.Fatalf("place: %v", err)
		}
		res, err := ProcessMove(session, []byte{1}, rng)
		if err != nil {
			t.Fatalf("deal: %v", err)
		}
		if res.Kind == ResultWin {
			found = true
			if res.Amount != 90 {
				t.Fatalf("tie should pay 9x, got %d", res.Amount)
			}
		}
	}
	if !found {
		t.Fatal("expected at least one tie in 2000 deterministic deals")
	}
}
