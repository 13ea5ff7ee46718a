package games

import "github.com/nullcasino/corechain/internal/cards"

// videoPokerGame implements Video Poker (spec §4.B payout table). State
// blob is the 5 dealt cards, one byte each. A single move holds cards via
// an 8-bit mask (bit i = hold card i) and the session ends.
type videoPokerGame struct{}

type vpHandRank uint8

const (
	vpHighCard vpHandRank = iota
	vpJacksOrBetter
	vpTwoPair
	vpThreeOfKind
	vpStraight
	vpFlush
	vpFullHouse
	vpFourOfKind
	vpStraightFlush
	vpRoyalFlush
)

// vpPayoutMultiplier maps a hand rank to its bet multiplier.
var vpPayoutMultiplier = map[vpHandRank]uint64{
	vpRoyalFlush:    800,
	vpStraightFlush: 50,
	vpFourOfKind:    25,
	vpFullHouse:     9,
	vpFlush:         6,
	vpStraight:      4,
	vpThreeOfKind:   3,
	vpTwoPair:       2,
	vpJacksOrBetter: 1,
	vpHighCard:      0,
}

func (videoPokerGame) Init(session *GameSession, rng *cards.GameRng) GameResult {
	deck := rng.CreateDeck()
	hand := make([]cards.Card, 5)
	for i := range hand {
		c, ok := cards.DrawCard(&deck)
		if !ok {
			break
		}
		hand[i] = c
	}
	session.StateBlob = encodeCards(hand)
	return GameResult{Kind: ResultContinue}
}

func encodeCards(cs []cards.Card) []byte {
	out := make([]byte, len(cs))
	for i, c := range cs {
		out[i] = byte(c)
	}
	return out
}

func decodeCards(b []byte) []cards.Card {
	out := make([]cards.Card, len(b))
	for i, v := range b {
		out[i] = cards.Card(v)
	}
	return out
}

func (videoPokerGame) ProcessMove(session *GameSession, payload []byte, rng *cards.GameRng) (GameResult, error) {
	if err := requireLen(payload, 1); err != nil {
		return GameResult{}, err
	}
	if len(session.StateBlob) != 5 {
		return GameResult{}, ErrInvalidState
	}
	holdMask := payload[0]
	hand := decodeCards(session.StateBlob)

	kept := make([]cards.Card, 0, 5)
	for i, c := range hand {
		if holdMask&(1<<uint(i)) != 0 {
			kept = append(kept, c)
		}
	}
	deck := rng.CreateDeckExcluding(kept)
	final := make([]cards.Card, 5)
	ki := 0
	for i := 0; i < 5; i++ {
		if holdMask&(1<<uint(i)) != 0 {
			final[i] = hand[i]
			continue
		}
		c, ok := cards.DrawCard(&deck)
		if !ok {
			return GameResult{}, ErrDeckExhausted
		}
		final[i] = c
		ki++
	}

	session.IsComplete = true
	session.StateBlob = encodeCards(final)
	session.FinalCards = final

	rank := vpEvaluate(final)
	mult := vpPayoutMultiplier[rank]
	if mult == 0 {
		return GameResult{Kind: ResultLoss}, nil
	}
	return GameResult{Kind: ResultWin, Amount: session.Bet * mult}, nil
}

// vpEvaluate classifies a 5-card hand, detecting the wheel (A-2-3-4-5) and
// royal (A-T-J-Q-K) straights and requiring a pair of J/Q/K/A for "jacks or
// better".
func vpEvaluate(hand []cards.Card) vpHandRank {
	ranks := make([]int, 5)
	suits := make([]int, 5)
	counts := map[int]int{}
	flush := true
	for i, c := range hand {
		ranks[i] = int(c.RankHigh())
		suits[i] = int(c.Suit())
		counts[ranks[i]]++
		if suits[i] != suits[0] {
			flush = false
		}
	}

	sorted := append([]int(nil), ranks...)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j-1] > sorted[j]; j-- {
			sorted[j-1], sorted[j] = sorted[j], sorted[j-1]
		}
	}
	isWheel := sorted[0] == 2 && sorted[1] == 3 && sorted[2] == 4 && sorted[3] == 5 && sorted[4] == 14
	isRoyal := sorted[0] == 10 && sorted[1] == 11 && sorted[2] == 12 && sorted[3] == 13 && sorted[4] == 14
	straight := isWheel || isRoyal
	if !straight {
		straight = true
		for i := 1; i < 5; i++ {
			if sorted[i] != sorted[i-1]+1 {
				straight = false
				break
			}
		}
	}

	var countVals []int
	for _, v := range counts {
		countVals = append(countVals, v)
	}
	for i := 1; i < len(countVals); i++ {
		for j := i; j > 0 && countVals[j-1] < countVals[j]; j-- {
			countVals[j-1], countVals[j] = countVals[j], countVals[j-1]
		}
	}

	switch {
	case flush && isRoyal:
		return vpRoyalFlush
	case flush && straight:
		return vpStraightFlush
	case countVals[0] == 4:
		return vpFourOfKind
	case countVals[0] == 3 && len(countVals) > 1 && countVals[1] == 2:
		return vpFullHouse
	case flush:
		return vpFlush
	case straight:
		return vpStraight
	case countVals[0] == 3:
		return vpThreeOfKind
	case countVals[0] == 2 && len(countVals) > 1 && countVals[1] == 2:
		return vpTwoPair
	case countVals[0] == 2:
		for r, c := range counts {
			if c == 2 && (r == 11 || r == 12 || r == 13 || r == 14) {
				return vpJacksOrBetter
			}
		}
		return vpHighCard
	default:
		return vpHighCard
	}
}
