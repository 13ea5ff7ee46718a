package games

import "github.com/nullcasino/corechain/internal/cards"

// ultimateHoldemGame implements a simplified Ultimate Texas Hold'em: ante
// and blind are both session.Bet. Moves are tagged across the whole hand
// rather than per-stage: [0] check, [1] bet 4x (preflop only), [2] bet 3x
// (flop only, after a preflop check), [3] bet 1x or [4] fold (river only,
// after both earlier checks). State blob:
// [stage][player(2)][dealer(2)][community(5)]
type ultimateHoldemGame struct{}

const (
	uthStagePreflop = 0
	uthStageFlop    = 1
	uthStageRiver   = 2
)

func uthEncode(stage byte, player, dealer, community []cards.Card) []byte {
	out := make([]byte, 0, 1+2+2+5)
	out = append(out, stage)
	out = append(out, encodeCards(player)...)
	out = append(out, encodeCards(dealer)...)
	out = append(out, encodeCards(community)...)
	return out
}

func uthDecode(blob []byte) (stage byte, player, dealer, community []cards.Card, ok bool) {
	if len(blob) != 1+2+2+5 {
		return 0, nil, nil, nil, false
	}
	stage = blob[0]
	player = decodeCards(blob[1:3])
	dealer = decodeCards(blob[3:5])
	community = decodeCards(blob[5:10])
	return stage, player, dealer, community, true
}

func (ultimateHoldemGame) Init(session *GameSession, rng *cards.GameRng) GameResult {
	deck := rng.CreateDeck()
	draw := func() cards.Card {
		c, _ := cards.DrawCard(&deck)
		return c
	}
	player := []cards.Card{draw(), draw()}
	dealer := []cards.Card{draw(), draw()}
	community := []cards.Card{draw(), draw(), draw(), draw(), draw()}
	session.StateBlob = uthEncode(uthStagePreflop, player, dealer, community)
	return GameResult{Kind: ResultContinue}
}

// uthBest5Rank finds the best 5-card poker rank among the C(7,5) subsets of
// the 7 cards, reusing the video poker classifier per subset.
func uthBest5Rank(seven []cards.Card) vpHandRank {
	best := vpHighCard
	var idx [5]int
	var choose func(start, depth int)
	choose = func(start, depth int) {
		if depth == 5 {
			hand := make([]cards.Card, 5)
			for i, v := range idx {
				hand[i] = seven[v]
			}
			if r := vpEvaluate(hand); r > best {
				best = r
			}
			return
		}
		for i := start; i < len(seven); i++ {
			idx[depth] = i
			choose(i+1, depth+1)
		}
	}
	choose(0, 0)
	return best
}

func dealerHasPair(dealer, community []cards.Card) bool {
	counts := map[uint8]int{}
	for _, c := range append(append([]cards.Card{}, dealer...), community...) {
		counts[c.RankHigh()]++
	}
	for _, n := range counts {
		if n >= 2 {
			return true
		}
	}
	return false
}

func uthSettle(session *GameSession, player, dealer, community []cards.Card, playMultiplier uint64) GameResult {
	session.IsComplete = true
	session.FinalCards = append(append(append([]cards.Card{}, player...), dealer...), community...)

	playerRank := uthBest5Rank(append(append([]cards.Card{}, player...), community...))
	dealerRank := uthBest5Rank(append(append([]cards.Card{}, dealer...), community...))
	dealerQualifies := dealerRank >= vpJacksOrBetter || dealerHasPair(dealer, community)

	ante := session.Bet
	blind := session.Bet
	play := session.Bet * playMultiplier

	switch {
	case playerRank > dealerRank:
		blindPayout := blind
		if playerRank >= vpStraight {
			blindPayout = blind * 2
		}
		return GameResult{Kind: ResultWin, Amount: ante*2 + blindPayout + play*2}
	case playerRank == dealerRank:
		return GameResult{Kind: ResultPush, Amount: play}
	default:
		if !dealerQualifies {
			return GameResult{Kind: ResultPush, Amount: ante + play}
		}
		return GameResult{Kind: ResultLoss}
	}
}

func (ultimateHoldemGame) ProcessMove(session *GameSession, payload []byte, rng *cards.GameRng) (GameResult, error) {
	if err := requireLen(payload, 1); err != nil {
		return GameResult{}, err
	}
	stage, player, dealer, community, ok := uthDecode(session.StateBlob)
	if !ok {
		return GameResult{}, ErrInvalidState
	}

	switch stage {
	case uthStagePreflop:
		switch payload[0] {
		case 0: // check
			session.StateBlob = uthEncode(uthStageFlop, player, dealer, community)
			return GameResult{Kind: ResultContinue}, nil
		case 1: // bet 4x
			return uthSettle(session, player, dealer, community, 4), nil
		default:
			return GameResult{}, ErrInvalidMove
		}

	case uthStageFlop:
		switch payload[0] {
		case 0: // check
			session.StateBlob = uthEncode(uthStageRiver, player, dealer, community)
			return GameResult{Kind: ResultContinue}, nil
		case 2: // bet 3x
			return uthSettle(session, player, dealer, community, 3), nil
		default:
			return GameResult{}, ErrInvalidMove
		}

	case uthStageRiver:
		switch payload[0] {
		case 3: // bet 1x
			return uthSettle(session, player, dealer, community, 1), nil
		case 4: // fold
			session.IsComplete = true
			return GameResult{Kind: ResultLoss}, nil
		default:
			return GameResult{}, ErrInvalidMove
		}

	default:
		return GameResult{}, ErrInvalidState
	}
}
