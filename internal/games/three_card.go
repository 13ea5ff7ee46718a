package games

import "github.com/nullcasino/corechain/internal/cards"

// threeCardGame implements Three Card Poker ante/play with dealer
// qualification on queen-high. State blob is [playerCards(3)][dealerCards(3)].
// Payload: [0] play (matches the ante with an equal play wager), [1] fold.
type threeCardGame struct{}

const (
	tcHighCard = iota
	tcPair
	tcFlush
	tcStraight
	tcThreeOfKind
	tcStraightFlush
)

func tcEncode(player, dealer []cards.Card) []byte {
	out := make([]byte, 0, 6)
	out = append(out, encodeCards(player)...)
	out = append(out, encodeCards(dealer)...)
	return out
}

func tcDecode(blob []byte) (player, dealer []cards.Card, ok bool) {
	if len(blob) != 6 {
		return nil, nil, false
	}
	return decodeCards(blob[0:3]), decodeCards(blob[3:6]), true
}

func (threeCardGame) Init(session *GameSession, rng *cards.GameRng) GameResult {
	deck := rng.CreateDeck()
	var player, dealer []cards.Card
	for i := 0; i < 3; i++ {
		c, _ := cards.DrawCard(&deck)
		player = append(player, c)
	}
	for i := 0; i < 3; i++ {
		c, _ := cards.DrawCard(&deck)
		dealer = append(dealer, c)
	}
	session.StateBlob = tcEncode(player, dealer)
	return GameResult{Kind: ResultContinue}
}

// tcRank classifies a 3-card hand and returns its category plus its ranks
// in descending order (a pair's rank first) for tie-breaking.
func tcRank(hand []cards.Card) (category int, ranks [3]int) {
	r := [3]int{int(hand[0].RankHigh()), int(hand[1].RankHigh()), int(hand[2].RankHigh())}
	for i := 1; i < 3; i++ {
		for j := i; j > 0 && r[j-1] < r[j]; j-- {
			r[j-1], r[j] = r[j], r[j-1]
		}
	}
	flush := hand[0].Suit() == hand[1].Suit() && hand[1].Suit() == hand[2].Suit()
	straight := r[0] == r[1]+1 && r[1] == r[2]+1
	wheel := r[0] == 14 && r[1] == 3 && r[2] == 2
	if wheel {
		straight = true
		r = [3]int{3, 2, 1}
	}
	trips := r[0] == r[1] && r[1] == r[2]
	pair := !trips && (r[0] == r[1] || r[1] == r[2])

	switch {
	case straight && flush:
		return tcStraightFlush, r
	case trips:
		return tcThreeOfKind, r
	case straight:
		return tcStraight, r
	case flush:
		return tcFlush, r
	case pair:
		if r[1] == r[2] {
			r[0], r[1], r[2] = r[1], r[2], r[0]
		}
		return tcPair, r
	default:
		return tcHighCard, r
	}
}

func tcCompare(a, b []cards.Card) int {
	catA, ranksA := tcRank(a)
	catB, ranksB := tcRank(b)
	if catA != catB {
		if catA > catB {
			return 1
		}
		return -1
	}
	for i := 0; i < 3; i++ {
		if ranksA[i] != ranksB[i] {
			if ranksA[i] > ranksB[i] {
				return 1
			}
			return -1
		}
	}
	return 0
}

func tcQualifies(dealer []cards.Card) bool {
	cat, ranks := tcRank(dealer)
	if cat != tcHighCard {
		return true
	}
	return ranks[0] >= 12 // queen high or better
}

func (threeCardGame) ProcessMove(session *GameSession, payload []byte, rng *cards.GameRng) (GameResult, error) {
	if err := requireLen(payload, 1); err != nil {
		return GameResult{}, err
	}
	player, dealer, ok := tcDecode(session.StateBlob)
	if !ok {
		return GameResult{}, ErrInvalidState
	}
	session.IsComplete = true
	session.FinalCards = append(append([]cards.Card{}, player...), dealer...)

	switch payload[0] {
	case 1: // fold
		return GameResult{Kind: ResultLoss}, nil

	case 0: // play, matches the ante
		if !tcQualifies(dealer) {
			return GameResult{Kind: ResultWin, Amount: session.Bet * 2}, nil
		}
		switch tcCompare(player, dealer) {
		case 1:
			return GameResult{Kind: ResultWin, Amount: session.Bet * 4}, nil
		case 0:
			return GameResult{Kind: ResultPush}, nil
		default:
			return GameResult{Kind: ResultLoss}, nil
		}

	default:
		return GameResult{}, ErrInvalidPayload
	}
}
