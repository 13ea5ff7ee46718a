package games

import "github.com/nullcasino/corechain/internal/cards"

// blackjackGame implements Blackjack (spec §4.B). State blob layout:
// [playerLen:u8][playerCards...][dealerLen:u8][dealerCards...]
// [doubled:u8][deckLen:u8][deck...]
type blackjackGame struct{}

func bjEncode(player, dealer, deck []cards.Card, doubled bool) []byte {
	out := make([]byte, 0, 2+len(player)+len(dealer)+len(deck)+2)
	out = append(out, byte(len(player)))
	out = append(out, encodeCards(player)...)
	out = append(out, byte(len(dealer)))
	out = append(out, encodeCards(dealer)...)
	if doubled {
		out = append(out, 1)
	} else {
		out = append(out, 0)
	}
	out = append(out, byte(len(deck)))
	out = append(out, encodeCards(deck)...)
	return out
}

func bjDecode(blob []byte) (player, dealer, deck []cards.Card, doubled bool, ok bool) {
	if len(blob) < 1 {
		return nil, nil, nil, false, false
	}
	pos := 0
	pLen := int(blob[pos])
	pos++
	if len(blob) < pos+pLen+1 {
		return nil, nil, nil, false, false
	}
	player = decodeCards(blob[pos : pos+pLen])
	pos += pLen
	dLen := int(blob[pos])
	pos++
	if len(blob) < pos+dLen+2 {
		return nil, nil, nil, false, false
	}
	dealer = decodeCards(blob[pos : pos+dLen])
	pos += dLen
	doubled = blob[pos] == 1
	pos++
	deckLen := int(blob[pos])
	pos++
	if len(blob) < pos+deckLen {
		return nil, nil, nil, false, false
	}
	deck = decodeCards(blob[pos : pos+deckLen])
	return player, dealer, deck, doubled, true
}

// handValue returns the best blackjack total (Aces counted as 11 unless
// that busts).
func handValue(hand []cards.Card) int {
	total, aces := 0, 0
	for _, c := range hand {
		r := int(c.RankLow())
		switch {
		case r == 1:
			total += 11
			aces++
		case r >= 10:
			total += 10
		default:
			total += r
		}
	}
	for total > 21 && aces > 0 {
		total -= 10
		aces--
	}
	return total
}

func isBlackjack(hand []cards.Card) bool {
	return len(hand) == 2 && handValue(hand) == 21
}

func (blackjackGame) Init(session *GameSession, rng *cards.GameRng) GameResult {
	deck := rng.CreateDeck()
	var player, dealer []cards.Card
	for i := 0; i < 2; i++ {
		c, _ := cards.DrawCard(&deck)
		player = append(player, c)
	}
	for i := 0; i < 2; i++ {
		c, _ := cards.DrawCard(&deck)
		dealer = append(dealer, c)
	}
	session.StateBlob = bjEncode(player, dealer, deck, false)
	return GameResult{Kind: ResultContinue}
}

func bjSettle(session *GameSession, player, dealer []cards.Card, doubled bool) GameResult {
	session.IsComplete = true
	session.FinalCards = append(append([]cards.Card{}, player...), dealer...)
	bet := session.Bet
	if doubled {
		bet *= 2
	}

	playerTotal := handValue(player)
	dealerTotal := handValue(dealer)
	playerBJ := isBlackjack(player)
	dealerBJ := isBlackjack(dealer)

	switch {
	case playerTotal > 21:
		return GameResult{Kind: ResultLoss}
	case playerBJ && dealerBJ:
		return GameResult{Kind: ResultPush}
	case playerBJ:
		return GameResult{Kind: ResultWin, Amount: bet + bet*3/2}
	case dealerTotal > 21:
		return GameResult{Kind: ResultWin, Amount: bet * 2}
	case playerTotal > dealerTotal:
		return GameResult{Kind: ResultWin, Amount: bet * 2}
	case playerTotal == dealerTotal:
		return GameResult{Kind: ResultPush}
	default:
		return GameResult{Kind: ResultLoss}
	}
}

func dealerPlay(dealer, deck []cards.Card) ([]cards.Card, []cards.Card) {
	for handValue(dealer) < 17 {
		c, ok := cards.DrawCard(&deck)
		if !ok {
			break
		}
		dealer = append(dealer, c)
	}
	return dealer, deck
}

func (blackjackGame) ProcessMove(session *GameSession, payload []byte, rng *cards.GameRng) (GameResult, error) {
	if err := requireLen(payload, 1); err != nil {
		return GameResult{}, err
	}
	player, dealer, deck, doubled, ok := bjDecode(session.StateBlob)
	if !ok {
		return GameResult{}, ErrInvalidState
	}

	switch payload[0] {
	case 0: // hit
		c, ok := cards.DrawCard(&deck)
		if !ok {
			return GameResult{}, ErrDeckExhausted
		}
		player = append(player, c)
		if handValue(player) > 21 {
			return bjSettle(session, player, dealer, doubled), nil
		}
		session.StateBlob = bjEncode(player, dealer, deck, doubled)
		return GameResult{Kind: ResultContinue}, nil

	case 1: // stand
		dealer, deck = dealerPlay(dealer, deck)
		return bjSettle(session, player, dealer, doubled), nil

	case 2: // double
		if len(player) != 2 {
			return GameResult{}, ErrInvalidMove
		}
		c, ok := cards.DrawCard(&deck)
		if !ok {
			return GameResult{}, ErrDeckExhausted
		}
		player = append(player, c)
		if handValue(player) > 21 {
			return bjSettle(session, player, dealer, true), nil
		}
		dealer, deck = dealerPlay(dealer, deck)
		return bjSettle(session, player, dealer, true), nil

	default:
		return GameResult{}, ErrInvalidPayload
	}
}
