package games

import "github.com/nullcasino/corechain/internal/cards"

// casinoWarGame implements Casino War (spec §4.B, §9 Open Questions: ties
// resolve to "ante loses, bonus 1:1 on win after war" since the source
// defers exact tie-break semantics). State blob layout:
// [playerCard][dealerCard][deckLen][deck...][atWar:u8]
type casinoWarGame struct{}

func (casinoWarGame) Init(session *GameSession, rng *cards.GameRng) GameResult {
	deck := rng.CreateDeck()
	player, _ := cards.DrawCard(&deck)
	dealer, _ := cards.DrawCard(&deck)
	session.StateBlob = cwEncode(player, dealer, deck, false)
	return GameResult{Kind: ResultContinue}
}

func cwEncode(player, dealer cards.Card, deck []cards.Card, atWar bool) []byte {
	out := make([]byte, 0, 3+len(deck))
	out = append(out, byte(player), byte(dealer), byte(len(deck)))
	out = append(out, encodeCards(deck)...)
	if atWar {
		out = append(out, 1)
	} else {
		out = append(out, 0)
	}
	return out
}

func cwDecode(blob []byte) (player, dealer cards.Card, deck []cards.Card, atWar bool, ok bool) {
	if len(blob) < 3 {
		return 0, 0, nil, false, false
	}
	player, dealer = cards.Card(blob[0]), cards.Card(blob[1])
	deckLen := int(blob[2])
	if len(blob) < 3+deckLen+1 {
		return 0, 0, nil, false, false
	}
	deck = decodeCards(blob[3 : 3+deckLen])
	atWar = blob[3+deckLen] == 1
	return player, dealer, deck, atWar, true
}

func (casinoWarGame) ProcessMove(session *GameSession, payload []byte, rng *cards.GameRng) (GameResult, error) {
	if err := requireLen(payload, 1); err != nil {
		return GameResult{}, err
	}
	player, dealer, deck, atWar, ok := cwDecode(session.StateBlob)
	if !ok {
		return GameResult{}, ErrInvalidState
	}
	session.FinalCards = []cards.Card{player, dealer}

	switch payload[0] {
	case 0: // play
		if atWar {
			return GameResult{}, ErrInvalidMove
		}
		switch {
		case player.RankHigh() > dealer.RankHigh():
			session.IsComplete = true
			return GameResult{Kind: ResultWin, Amount: session.Bet * 2}, nil
		case player.RankHigh() < dealer.RankHigh():
			session.IsComplete = true
			return GameResult{Kind: ResultLoss}, nil
		default:
			session.StateBlob = cwEncode(player, dealer, deck, true)
			return GameResult{Kind: ResultContinue}, nil
		}

	case 1: // war (only valid after a tie)
		if !atWar {
			return GameResult{}, ErrInvalidMove
		}
		newPlayer, ok1 := cards.DrawCard(&deck)
		newDealer, ok2 := cards.DrawCard(&deck)
		if !ok1 || !ok2 {
			return GameResult{}, ErrDeckExhausted
		}
		session.IsComplete = true
		session.FinalCards = []cards.Card{newPlayer, newDealer}
		if newPlayer.RankHigh() >= newDealer.RankHigh() {
			// Ante loses going into war; surviving the war pays the raise 1:1.
			return GameResult{Kind: ResultWin, Amount: session.Bet}, nil
		}
		return GameResult{Kind: ResultLoss, Amount: session.Bet}, nil

	default:
		return GameResult{}, ErrInvalidPayload
	}
}
