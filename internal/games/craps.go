package games

import "github.com/nullcasino/corechain/internal/cards"

// crapsGame implements Craps pass-line/don't-pass betting with single odds.
// State blob (11 bytes): [phase][point][dontPass][oddsAmount:u64 BE].
// phase 0 is come-out (no point established), phase 1 means a point is set.
type crapsGame struct{}

const (
	crapsPhaseComeOut = 0
	crapsPhasePoint   = 1
)

func crapsEncode(phase, point, dontPass byte, odds uint64) []byte {
	out := make([]byte, 11)
	out[0], out[1], out[2] = phase, point, dontPass
	for i := 0; i < 8; i++ {
		out[3+i] = byte(odds >> uint(8*(7-i)))
	}
	return out
}

func crapsDecode(blob []byte) (phase, point, dontPass byte, odds uint64, ok bool) {
	if len(blob) != 11 {
		return 0, 0, 0, 0, false
	}
	return blob[0], blob[1], blob[2], beU64(blob[3:11]), true
}

func (crapsGame) Init(session *GameSession, rng *cards.GameRng) GameResult {
	session.StateBlob = crapsEncode(crapsPhaseComeOut, 0, 0, 0)
	return GameResult{Kind: ResultContinue}
}

// crapsOddsPayout applies true odds on a point number to a wager amount.
func crapsOddsPayout(point byte, amount uint64) uint64 {
	switch point {
	case 4, 10:
		return amount * 2
	case 5, 9:
		return amount * 3 / 2
	case 6, 8:
		return amount * 6 / 5
	default:
		return 0
	}
}

func (crapsGame) ProcessMove(session *GameSession, payload []byte, rng *cards.GameRng) (GameResult, error) {
	if err := requireLen(payload, 1); err != nil {
		return GameResult{}, err
	}
	phase, point, dontPass, odds, ok := crapsDecode(session.StateBlob)
	if !ok {
		return GameResult{}, ErrInvalidState
	}

	switch payload[0] {
	case 0: // place bet: [0, bet_type, target, amount:u64 BE]
		if err := requireLen(payload, 11); err != nil {
			return GameResult{}, err
		}
		if phase != crapsPhaseComeOut {
			return GameResult{}, ErrInvalidMove
		}
		betType := payload[1]
		if betType != 0 && betType != 1 {
			return GameResult{}, ErrInvalidPayload
		}
		session.StateBlob = crapsEncode(phase, point, betType, odds)
		return GameResult{Kind: ResultContinue}, nil

	case 1: // odds on contract: [1, amount:u64 BE]
		if err := requireLen(payload, 9); err != nil {
			return GameResult{}, err
		}
		if phase != crapsPhasePoint {
			return GameResult{}, ErrInvalidMove
		}
		amount := beU64(payload[1:9])
		session.StateBlob = crapsEncode(phase, point, dontPass, odds+amount)
		return GameResult{Kind: ResultContinue}, nil

	case 2: // roll
		d1 := rng.RollDie()
		d2 := rng.RollDie()
		sum := byte(d1 + d2)

		if phase == crapsPhaseComeOut {
			switch sum {
			case 7, 11:
				session.IsComplete = true
				if dontPass == 1 {
					return GameResult{Kind: ResultLoss}, nil
				}
				return GameResult{Kind: ResultWin, Amount: session.Bet * 2}, nil
			case 2, 3:
				session.IsComplete = true
				if dontPass == 1 {
					return GameResult{Kind: ResultWin, Amount: session.Bet * 2}, nil
				}
				return GameResult{Kind: ResultLoss}, nil
			case 12:
				session.IsComplete = true
				if dontPass == 1 {
					return GameResult{Kind: ResultPush}, nil
				}
				return GameResult{Kind: ResultLoss}, nil
			default:
				session.StateBlob = crapsEncode(crapsPhasePoint, sum, dontPass, odds)
				return GameResult{Kind: ResultContinue}, nil
			}
		}

		// phase == point established
		switch {
		case sum == point:
			session.IsComplete = true
			if dontPass == 1 {
				return GameResult{Kind: ResultLoss}, nil
			}
			payout := session.Bet*2 + crapsOddsPayout(point, odds)
			return GameResult{Kind: ResultWin, Amount: payout}, nil
		case sum == 7:
			session.IsComplete = true
			if dontPass == 1 {
				payout := session.Bet*2 + crapsOddsPayout(point, odds)
				return GameResult{Kind: ResultWin, Amount: payout}, nil
			}
			return GameResult{Kind: ResultLoss}, nil
		default:
			return GameResult{Kind: ResultContinue}, nil
		}

	case 3: // clear, come-out only
		if phase != crapsPhaseComeOut {
			return GameResult{}, ErrInvalidMove
		}
		session.StateBlob = crapsEncode(phase, point, 0, 0)
		return GameResult{Kind: ResultContinue}, nil

	default:
		return GameResult{}, ErrInvalidPayload
	}
}
