package games

import "github.com/nullcasino/corechain/internal/cards"

// baccaratGame implements Punto Banco with the standard third-card table.
// Move 0 places a side bet: [0, bet_type, amount: u64 BE] where bet_type is
// 0 = player, 1 = banker, 2 = tie. Move 1, [1], deals both hands, applies
// the third-card rules, and settles.
type baccaratGame struct{}

const (
	bcPhasePlaced = 0
	bcPhaseDealt  = 1
)

func baccaratValue(c cards.Card) int {
	r := int(c.RankLow())
	if r >= 10 {
		return 0
	}
	return r
}

func baccaratTotal(hand []cards.Card) int {
	sum := 0
	for _, c := range hand {
		sum += baccaratValue(c)
	}
	return sum % 10
}

func bcEncode(phase, betType byte, amount uint64) []byte {
	out := make([]byte, 10)
	out[0], out[1] = phase, betType
	for i := 0; i < 8; i++ {
		out[2+i] = byte(amount >> uint(8*(7-i)))
	}
	return out
}

func bcDecode(blob []byte) (phase, betType byte, amount uint64, ok bool) {
	if len(blob) != 10 {
		return 0, 0, 0, false
	}
	return blob[0], blob[1], beU64(blob[2:10]), true
}

func (baccaratGame) Init(session *GameSession, rng *cards.GameRng) GameResult {
	session.StateBlob = bcEncode(bcPhasePlaced, 0, 0)
	return GameResult{Kind: ResultContinue}
}

func baccaratDeal(rng *cards.GameRng) (player, banker []cards.Card) {
	deck := rng.CreateDeck()
	draw := func() cards.Card {
		c, _ := cards.DrawCard(&deck)
		return c
	}
	player = append(player, draw(), draw())
	banker = append(banker, draw(), draw())

	pTotal := baccaratTotal(player)
	bTotal := baccaratTotal(banker)
	if pTotal >= 8 || bTotal >= 8 {
		return player, banker
	}

	var playerThird *cards.Card
	if pTotal <= 5 {
		c := draw()
		player = append(player, c)
		playerThird = &c
	}

	bankerDraws := false
	switch {
	case playerThird == nil:
		bankerDraws = bTotal <= 5
	default:
		pv := int(playerThird.RankLow())
		if pv >= 10 {
			pv = 0
		}
		// Banker draws on 0-2; on 3 unless the player's third card is 8; on
		// 4 against 2-7; on 5 against 4-7; on 6 against 6-7; stands on 7.
		switch bTotal {
		case 0, 1, 2:
			bankerDraws = true
		case 3:
			bankerDraws = pv != 8
		case 4:
			bankerDraws = pv >= 2 && pv <= 7
		case 5:
			bankerDraws = pv >= 4 && pv <= 7
		case 6:
			bankerDraws = pv == 6 || pv == 7
		}
	}
	if bankerDraws {
		banker = append(banker, draw())
	}
	return player, banker
}

func (baccaratGame) ProcessMove(session *GameSession, payload []byte, rng *cards.GameRng) (GameResult, error) {
	if err := requireLen(payload, 1); err != nil {
		return GameResult{}, err
	}
	phase, betType, _, ok := bcDecode(session.StateBlob)
	if !ok {
		return GameResult{}, ErrInvalidState
	}

	switch payload[0] {
	case 0: // place
		if err := requireLen(payload, 10); err != nil {
			return GameResult{}, err
		}
		if phase != bcPhasePlaced {
			return GameResult{}, ErrInvalidMove
		}
		bt := payload[1]
		if bt > 2 {
			return GameResult{}, ErrInvalidPayload
		}
		amount := beU64(payload[2:10])
		session.StateBlob = bcEncode(bcPhasePlaced, bt, amount)
		return GameResult{Kind: ResultContinue}, nil

	case 1: // deal
		if phase != bcPhasePlaced {
			return GameResult{}, ErrInvalidMove
		}
		player, banker := baccaratDeal(rng)
		session.IsComplete = true
		session.FinalCards = append(append([]cards.Card{}, player...), banker...)
		pTotal, bTotal := baccaratTotal(player), baccaratTotal(banker)

		switch betType {
		case 0: // player
			if pTotal > bTotal {
				return GameResult{Kind: ResultWin, Amount: session.Bet * 2}, nil
			}
			if pTotal == bTotal {
				return GameResult{Kind: ResultPush}, nil
			}
			return GameResult{Kind: ResultLoss}, nil

		case 1: // banker, 5% commission
			if bTotal > pTotal {
				return GameResult{Kind: ResultWin, Amount: session.Bet*2 - session.Bet/20}, nil
			}
			if bTotal == pTotal {
				return GameResult{Kind: ResultPush}, nil
			}
			return GameResult{Kind: ResultLoss}, nil

		default: // tie, 8:1
			if pTotal == bTotal {
				return GameResult{Kind: ResultWin, Amount: session.Bet * 9}, nil
			}
			return GameResult{Kind: ResultLoss}, nil
		}

	default:
		return GameResult{}, ErrInvalidPayload
	}
}
