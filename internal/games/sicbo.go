package games

import "github.com/nullcasino/corechain/internal/cards"

// sicBoGame implements Sic Bo over three dice. Move 0 places a bet:
// [0, bet_type, number, amount: u64 BE]. Move 1, [1], rolls and settles.
type sicBoGame struct{}

const (
	sicBoPhasePlaced = 0
	sicBoPhaseRolled = 1
)

const (
	sicBoSmall       = 0
	sicBoBig         = 1
	sicBoSpecificTrp = 2
	sicBoAnyTriple   = 3
	sicBoTotal       = 4
	sicBoSingle      = 5
)

// sicBoTotalMultiplier gives the payout multiplier for an exact total bet,
// 4 and 17 being the rarest (single combination) and 10/11 the most common.
var sicBoTotalMultiplier = map[byte]uint64{
	4: 61, 17: 61,
	5: 31, 16: 31,
	6: 18, 15: 18,
	7: 12, 14: 12,
	8: 8, 13: 8,
	9: 6, 12: 6,
	10: 6, 11: 6,
}

func sicBoEncode(phase, betType, number byte, amount uint64) []byte {
	out := make([]byte, 11)
	out[0], out[1], out[2] = phase, betType, number
	for i := 0; i < 8; i++ {
		out[3+i] = byte(amount >> uint(8*(7-i)))
	}
	return out
}

func sicBoDecode(blob []byte) (phase, betType, number byte, amount uint64, ok bool) {
	if len(blob) != 11 {
		return 0, 0, 0, 0, false
	}
	return blob[0], blob[1], blob[2], beU64(blob[3:11]), true
}

func (sicBoGame) Init(session *GameSession, rng *cards.GameRng) GameResult {
	session.StateBlob = sicBoEncode(sicBoPhasePlaced, sicBoBig, 0, 0)
	return GameResult{Kind: ResultContinue}
}

func (sicBoGame) ProcessMove(session *GameSession, payload []byte, rng *cards.GameRng) (GameResult, error) {
	if err := requireLen(payload, 1); err != nil {
		return GameResult{}, err
	}
	phase, betType, number, _, ok := sicBoDecode(session.StateBlob)
	if !ok {
		return GameResult{}, ErrInvalidState
	}

	switch payload[0] {
	case 0: // bet
		if err := requireLen(payload, 11); err != nil {
			return GameResult{}, err
		}
		if phase != sicBoPhasePlaced {
			return GameResult{}, ErrInvalidMove
		}
		bt, num := payload[1], payload[2]
		switch bt {
		case sicBoSpecificTrp, sicBoSingle:
			if num < 1 || num > 6 {
				return GameResult{}, ErrInvalidPayload
			}
		case sicBoTotal:
			if _, ok := sicBoTotalMultiplier[num]; !ok {
				return GameResult{}, ErrInvalidPayload
			}
		case sicBoSmall, sicBoBig, sicBoAnyTriple:
		default:
			return GameResult{}, ErrInvalidPayload
		}
		amount := beU64(payload[3:11])
		session.StateBlob = sicBoEncode(sicBoPhasePlaced, bt, num, amount)
		return GameResult{Kind: ResultContinue}, nil

	case 1: // roll
		if phase != sicBoPhasePlaced {
			return GameResult{}, ErrInvalidMove
		}
		d1, d2, d3 := rng.RollDie(), rng.RollDie(), rng.RollDie()
		sum := int(d1) + int(d2) + int(d3)
		isTriple := d1 == d2 && d2 == d3
		session.IsComplete = true

		switch betType {
		case sicBoSmall:
			if isTriple {
				return GameResult{Kind: ResultLoss}, nil
			}
			if sum >= 4 && sum <= 10 {
				return GameResult{Kind: ResultWin, Amount: session.Bet * 2}, nil
			}
			return GameResult{Kind: ResultLoss}, nil

		case sicBoBig:
			if isTriple {
				return GameResult{Kind: ResultLoss}, nil
			}
			if sum >= 11 && sum <= 17 {
				return GameResult{Kind: ResultWin, Amount: session.Bet * 2}, nil
			}
			return GameResult{Kind: ResultLoss}, nil

		case sicBoSpecificTrp:
			if isTriple && uint8(d1) == number {
				return GameResult{Kind: ResultWin, Amount: session.Bet * 181}, nil
			}
			return GameResult{Kind: ResultLoss}, nil

		case sicBoAnyTriple:
			if isTriple {
				return GameResult{Kind: ResultWin, Amount: session.Bet * 31}, nil
			}
			return GameResult{Kind: ResultLoss}, nil

		case sicBoTotal:
			if sum == int(number) {
				return GameResult{Kind: ResultWin, Amount: session.Bet * sicBoTotalMultiplier[number]}, nil
			}
			return GameResult{Kind: ResultLoss}, nil

		default: // sicBoSingle
			matches := uint64(0)
			for _, d := range []uint8{d1, d2, d3} {
				if d == number {
					matches++
				}
			}
			if matches == 0 {
				return GameResult{Kind: ResultLoss}, nil
			}
			return GameResult{Kind: ResultWin, Amount: session.Bet * (matches + 1)}, nil
		}

	default:
		return GameResult{}, ErrInvalidPayload
	}
}
