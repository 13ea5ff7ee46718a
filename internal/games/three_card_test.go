package games

import (
	"testing"

	"github.com/nullcasino/corechain/internal/cards"
)

func TestThreeCardFoldAlwaysLoses(t *testing.T) {
	session := &GameSession{ID: 1, GameType: GameThreeCard, Bet: 20}
	rng := cards.NewGameRng([]byte("tc"), 1, 0)
	Init(session, rng)
	res, err := ProcessMove(session, []byte{1}, rng)
	if err != nil {
		t.Fatalf("process move: %v", err)
	}
	if res.Kind != ResultLoss {
		t.Fatalf("fold should always lose, got %v", res.Kind)
	}
}

func TestThreeCardPlayThroughManySeeds(t *testing.T) {
	for seed := uint64(0); seed < 300; seed++ {
		session := &GameSession{ID: seed, GameType: GameThreeCard, Bet: 20}
		rng := cards.NewGameRng([]byte("tc2"), seed, 0)
		Init(session, rng)
		res, err := ProcessMove(session, []byte{0}, rng)
		if err != nil {
			t.Fatalf("process move: %v", err)
		}
		if !session.IsComplete {
			t.Fatal("expected game to settle")
		}
		if res.Kind != ResultWin && res.Kind != ResultLoss && res.Kind != ResultPush {
			t.Fatalf("unexpected result %v", res.Kind)
		}
	}
}
