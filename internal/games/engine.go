// Package games implements the ten deterministic wagering game state
// machines (spec §4.B). Each game is a pure function of (session, payload,
// rng): games hold no state outside the GameSession they are given, and a
// fresh cards.GameRng is derived for every call so replay is deterministic.
package games

import (
	"errors"

	"github.com/nullcasino/corechain/internal/cards"
	"github.com/nullcasino/corechain/internal/modifiers"
)

// GameType tags which of the ten state machines a session belongs to.
type GameType uint8

const (
	GameBaccarat GameType = iota
	GameBlackjack
	GameCasinoWar
	GameCraps
	GameVideoPoker
	GameHiLo
	GameRoulette
	GameSicBo
	GameThreeCard
	GameUltimateHoldem
)

// Errors returned for malformed payloads or illegal moves (spec §4.B, §7.4).
var (
	ErrInvalidPayload      = errors.New("casino: invalid payload")
	ErrInvalidMove         = errors.New("casino: invalid move")
	ErrGameAlreadyComplete = errors.New("casino: game already complete")
	ErrDeckExhausted       = errors.New("casino: deck exhausted")
	ErrInvalidState        = errors.New("casino: invalid state blob")
)

// ResultKind distinguishes the outcome of a move.
type ResultKind uint8

const (
	ResultContinue ResultKind = iota
	ResultWin
	ResultLoss
	ResultPush
)

// GameResult is the outcome of init or a single process-move call.
// Amount is only meaningful when Kind == ResultWin, and is the raw payout
// before shield/double/super modifiers are applied by the caller.
type GameResult struct {
	Kind   ResultKind
	Amount uint64
}

// GameSession is the mutable per-wager state the engine operates over
// (spec §3.2). FinalCards, when populated by a terminal move, feeds the
// card-keyed super-mode multiplier in internal/modifiers.
type GameSession struct {
	ID           uint64
	PlayerPublic []byte
	GameType     GameType
	Bet          uint64
	StateBlob    []byte
	MoveCount    uint32
	CreationView uint64
	IsComplete   bool
	SuperMode    modifiers.SuperModeState
	FinalCards   []cards.Card
}

// CasinoGame is the capability set every game state machine implements.
type CasinoGame interface {
	Init(session *GameSession, rng *cards.GameRng) GameResult
	ProcessMove(session *GameSession, payload []byte, rng *cards.GameRng) (GameResult, error)
}

func impl(t GameType) CasinoGame {
	switch t {
	case GameBaccarat:
		return baccaratGame{}
	case GameBlackjack:
		return blackjackGame{}
	case GameCasinoWar:
		return casinoWarGame{}
	case GameCraps:
		return crapsGame{}
	case GameVideoPoker:
		return videoPokerGame{}
	case GameHiLo:
		return hiloGame{}
	case GameRoulette:
		return rouletteGame{}
	case GameSicBo:
		return sicBoGame{}
	case GameThreeCard:
		return threeCardGame{}
	case GameUltimateHoldem:
		return ultimateHoldemGame{}
	default:
		return nil
	}
}

// Init dispatches session initialization on game_type (spec §4.B). It is a
// tagged dispatch (the switch in impl), not a runtime registration; an
// unknown game type has no implementation and Init returns Continue.
func Init(session *GameSession, rng *cards.GameRng) GameResult {
	g := impl(session.GameType)
	if g == nil {
		return GameResult{Kind: ResultContinue}
	}
	return g.Init(session, rng)
}

// ProcessMove dispatches a single move to the session's game type.
func ProcessMove(session *GameSession, payload []byte, rng *cards.GameRng) (GameResult, error) {
	if session.IsComplete {
		return GameResult{}, ErrGameAlreadyComplete
	}
	g := impl(session.GameType)
	if g == nil {
		return GameResult{}, ErrInvalidState
	}
	if len(payload) > 256 {
		return GameResult{}, ErrInvalidPayload
	}
	return g.ProcessMove(session, payload, rng)
}

// requireLen returns ErrInvalidPayload unless payload has at least n bytes.
func requireLen(payload []byte, n int) error {
	if len(payload) < n {
		return ErrInvalidPayload
	}
	return nil
}

func beU64(b []byte) uint64 {
	var v uint64
	for _, c := range b[:8] {
		v = v<<8 | uint64(c)
	}
	return v
}
