package games

import "github.com/nullcasino/corechain/internal/cards"

// rouletteGame implements a single-zero European wheel. Move 0 places a bet:
// [0, bet_type, number, amount: u64 BE]. Move 1, [1], spins and settles.
type rouletteGame struct{}

const (
	roulettePhasePlaced = 0
	roulettePhaseSpun   = 1
)

const (
	rouletteStraight = 0
	rouletteRed      = 1
	rouletteBlack    = 2
	rouletteOdd      = 3
	rouletteEven     = 4
	rouletteHigh     = 5
	rouletteLow      = 6
	rouletteDozen    = 7
	rouletteColumn   = 8
)

var rouletteRedNumbers = map[byte]bool{
	1: true, 3: true, 5: true, 7: true, 9: true, 12: true, 14: true, 16: true,
	18: true, 19: true, 21: true, 23: true, 25: true, 27: true, 30: true,
	32: true, 34: true, 36: true,
}

func rouletteEncode(phase, betType, number byte, amount uint64) []byte {
	out := make([]byte, 11)
	out[0], out[1], out[2] = phase, betType, number
	for i := 0; i < 8; i++ {
		out[3+i] = byte(amount >> uint(8*(7-i)))
	}
	return out
}

func rouletteDecode(blob []byte) (phase, betType, number byte, amount uint64, ok bool) {
	if len(blob) != 11 {
		return 0, 0, 0, 0, false
	}
	return blob[0], blob[1], blob[2], beU64(blob[3:11]), true
}

func (rouletteGame) Init(session *GameSession, rng *cards.GameRng) GameResult {
	session.StateBlob = rouletteEncode(roulettePhasePlaced, rouletteRed, 0, 0)
	return GameResult{Kind: ResultContinue}
}

func (rouletteGame) ProcessMove(session *GameSession, payload []byte, rng *cards.GameRng) (GameResult, error) {
	if err := requireLen(payload, 1); err != nil {
		return GameResult{}, err
	}
	phase, betType, number, _, ok := rouletteDecode(session.StateBlob)
	if !ok {
		return GameResult{}, ErrInvalidState
	}

	switch payload[0] {
	case 0: // bet
		if err := requireLen(payload, 11); err != nil {
			return GameResult{}, err
		}
		if phase != roulettePhasePlaced {
			return GameResult{}, ErrInvalidMove
		}
		bt, num := payload[1], payload[2]
		switch bt {
		case rouletteStraight:
			if num > 36 {
				return GameResult{}, ErrInvalidPayload
			}
		case rouletteDozen, rouletteColumn:
			if num > 2 {
				return GameResult{}, ErrInvalidPayload
			}
		case rouletteRed, rouletteBlack, rouletteOdd, rouletteEven, rouletteHigh, rouletteLow:
		default:
			return GameResult{}, ErrInvalidPayload
		}
		amount := beU64(payload[3:11])
		session.StateBlob = rouletteEncode(roulettePhasePlaced, bt, num, amount)
		return GameResult{Kind: ResultContinue}, nil

	case 1: // spin
		if phase != roulettePhasePlaced {
			return GameResult{}, ErrInvalidMove
		}
		result := byte(rng.SpinRoulette())
		session.IsComplete = true
		session.FinalCards = nil

		if result == 0 {
			if betType == rouletteStraight && number == 0 {
				return GameResult{Kind: ResultWin, Amount: session.Bet * 36}, nil
			}
			return GameResult{Kind: ResultLoss}, nil
		}

		isRed := rouletteRedNumbers[result]
		win := false
		multiplier := uint64(2)

		switch betType {
		case rouletteStraight:
			win = result == number
			multiplier = 36
		case rouletteRed:
			win = isRed
		case rouletteBlack:
			win = !isRed
		case rouletteOdd:
			win = result%2 == 1
		case rouletteEven:
			win = result%2 == 0
		case rouletteHigh:
			win = result >= 19
		case rouletteLow:
			win = result <= 18
		case rouletteDozen:
			win = (int(result)-1)/12 == int(number)
			multiplier = 3
		case rouletteColumn:
			win = int(result-1)%3 == int(number)
			multiplier = 3
		}

		if !win {
			return GameResult{Kind: ResultLoss}, nil
		}
		return GameResult{Kind: ResultWin, Amount: session.Bet * multiplier}, nil

	default:
		return GameResult{}, ErrInvalidPayload
	}
}
