package games

import (
	"testing"

	"github.com/nullcasino/corechain/internal/cards"
)

// card builds a Card from suit (0..3) and a low rank (1..13 = A..K).
func card(suit uint8, rankLow uint8) cards.Card {
	return cards.Card(uint8(suit)*13 + (rankLow - 1))
}

func TestVideoPokerEvaluateRoyalFlush(t *testing.T) {
	hand := []cards.Card{
		card(0, 1),  // A
		card(0, 13), // K
		card(0, 12), // Q
		card(0, 11), // J
		card(0, 10), // T
	}
	if rank := vpEvaluate(hand); rank != vpRoyalFlush {
		t.Fatalf("expected royal flush, got %v", rank)
	}
	if vpPayoutMultiplier[vpRoyalFlush] != 800 {
		t.Fatalf("expected 800x payout for royal flush")
	}
}

func TestVideoPokerEvaluateWheelStraight(t *testing.T) {
	hand := []cards.Card{
		card(0, 1), // A
		card(1, 2), // 2
		card(2, 3), // 3
		card(3, 4), // 4
		card(0, 5), // 5
	}
	if rank := vpEvaluate(hand); rank != vpStraight {
		t.Fatalf("expected wheel straight (A-2-3-4-5), got %v", rank)
	}
}

func TestVideoPokerEvaluateFourOfAKind(t *testing.T) {
	hand := []cards.Card{
		card(0, 7), card(1, 7), card(2, 7), card(3, 7), card(0, 2),
	}
	if rank := vpEvaluate(hand); rank != vpFourOfKind {
		t.Fatalf("expected four of a kind, got %v", rank)
	}
}

func TestVideoPokerEvaluateJacksOrBetterRequiresHighPair(t *testing.T) {
	low := []cards.Card{card(0, 9), card(1, 9), card(2, 2), card(3, 5), card(0, 7)}
	if rank := vpEvaluate(low); rank != vpHighCard {
		t.Fatalf("expected a pair of 9s to pay nothing, got %v", rank)
	}
	high := []cards.Card{card(0, 11), card(1, 11), card(2, 2), card(3, 5), card(0, 7)}
	if rank := vpEvaluate(high); rank != vpJacksOrBetter {
		t.Fatalf("expected a pair of Jacks to qualify, got %v", rank)
	}
}

func TestVideoPokerProcessMoveHoldsRequestedCards(t *testing.T) {
	session := &GameSession{ID: 1, GameType: GameVideoPoker, Bet: 100}
	rng := cards.NewGameRng([]byte("seed"), 1, 0)
	Init(session, rng)
	dealt := decodeCards(session.StateBlob)

	// Hold cards 0 and 1.
	res, err := ProcessMove(session, []byte{0b00000011}, rng)
	if err != nil {
		t.Fatalf("process move: %v", err)
	}
	if !session.IsComplete {
		t.Fatal("expected video poker to complete in a single move")
	}
	final := decodeCards(session.StateBlob)
	if final[0] != dealt[0] || final[1] != dealt[1] {
		t.Fatalf("expected held cards to survive the draw, dealt=%v final=%v", dealt, final)
	}
	if res.Kind != ResultWin && res.Kind != ResultLoss {
		t.Fatalf("expected terminal Win or Loss, got %v", res.Kind)
	}
}

func TestVideoPokerInvalidPayloadTooShort(t *testing.T) {
	session := &GameSession{ID: 1, GameType: GameVideoPoker, Bet: 100}
	rng := cards.NewGameRng([]byte("seed"), 1, 0)
	Init(session, rng)
	if _, err := ProcessMove(session, nil, rng); err != ErrInvalidPayload {
		t.Fatalf("expected ErrInvalidPayload for empty payload, got %v", err)
	}
}
