package execstate

import (
	"github.com/nullcasino/corechain/internal/cards"
	"github.com/nullcasino/corechain/internal/codec"
	"github.com/nullcasino/corechain/internal/games"
	"github.com/nullcasino/corechain/internal/modifiers"
)

// register handles CasinoRegister: a display name of 1..32 bytes,
// idempotent-rejecting if the signer already has a player record (spec
// §3.4, §4.E). Names are not checked for uniqueness across players.
func (c handlerCtx) register(instr codec.Instruction) []codec.Event {
	if len(instr.Name) == 0 || len(instr.Name) > codec.MaxNameLength {
		return one(c.errEvent(0, ErrCodeNameTooLong, "name must be 1..32 bytes"))
	}
	if _, exists := c.layer.player(c.public); exists {
		return one(c.errEvent(0, ErrCodePlayerExists, "player already registered"))
	}
	p := codec.Player{Name: instr.Name, Chips: codec.InitialChips}
	c.layer.setPlayer(c.public, p)
	c.layer.updateLeaderboard(c.public, p.Chips)
	return one(codec.Event{Tag: codec.EventCasinoPlayerRegistered, PlayerPublic: c.public, Name: instr.Name})
}

// deposit handles CasinoDeposit: a faucet-rate-limited credit of chips
// (spec §4.E, §6.6: FAUCET_RATE_LIMIT views between deposits).
func (c handlerCtx) deposit(instr codec.Instruction) []codec.Event {
	p, ok := c.layer.player(c.public)
	if !ok {
		return one(c.errEvent(0, ErrCodePlayerNotFound, "register before depositing"))
	}
	if instr.Amount == 0 {
		return one(c.errEvent(0, ErrCodeAmountZero, "deposit amount must be nonzero"))
	}
	view := c.layer.view
	if p.LastDepositBlock != 0 && view < p.LastDepositBlock+FaucetRateLimit {
		return one(c.errEvent(0, ErrCodeFaucetRateLimited, "faucet rate limited"))
	}
	p.Chips = saturatingAddU64(p.Chips, instr.Amount)
	p.LastDepositBlock = view
	c.layer.setPlayer(c.public, p)
	c.layer.updateLeaderboard(c.public, p.Chips)
	return one(codec.Event{Tag: codec.EventCasinoDeposited, PlayerPublic: c.public, Amount: instr.Amount, NewChips: p.Chips})
}

// startGame handles CasinoStartGame: deducts the bet up front (spec §4.E
// "Session and player mutation order", step 2) and initializes the game
// engine's state blob. A signer may have at most one incomplete session at
// a time (spec §3.3).
func (c handlerCtx) startGame(instr codec.Instruction) []codec.Event {
	p, ok := c.layer.player(c.public)
	if !ok {
		return one(c.errEvent(instr.SessionID, ErrCodePlayerNotFound, "register before playing"))
	}
	if p.ActiveSession != nil {
		return one(c.errEvent(instr.SessionID, ErrCodeSessionAlreadyActive, "a session is already active"))
	}
	if instr.Bet == 0 {
		return one(c.errEvent(instr.SessionID, ErrCodeAmountZero, "bet must be nonzero"))
	}
	if p.Chips < instr.Bet {
		return one(c.errEvent(instr.SessionID, ErrCodeInsufficientChips, "insufficient chips for bet"))
	}

	session := &games.GameSession{
		ID:           instr.SessionID,
		PlayerPublic: c.public,
		GameType:     games.GameType(instr.GameType),
		Bet:          instr.Bet,
		CreationView: c.layer.view,
		SuperMode: modifiers.SuperModeState{
			Active: p.ActiveSuper,
		},
	}
	rng := cards.NewGameRng(c.layer.seed, session.ID, 0)
	games.Init(session, rng)

	p.Chips -= instr.Bet
	sessionID := session.ID
	p.ActiveSession = &sessionID
	c.layer.setPlayer(c.public, p)
	c.layer.setSession(toSessionValue(session))
	c.layer.updateLeaderboard(c.public, p.Chips)

	return one(codec.Event{
		Tag: codec.EventGameStarted, PlayerPublic: c.public,
		SessionID: session.ID, GameType: instr.GameType, Amount: instr.Bet,
	})
}

// gameMove handles CasinoGameMove: drives one step of the session's game
// engine, applies shield/double/super modifiers to a terminal result, and
// credits chips (spec §4.E "Session and player mutation order").
func (c handlerCtx) gameMove(instr codec.Instruction) []codec.Event {
	p, ok := c.layer.player(c.public)
	if !ok {
		return one(c.errEvent(instr.SessionID, ErrCodePlayerNotFound, "register before playing"))
	}
	sv, ok := c.layer.session(instr.SessionID)
	if !ok {
		return one(c.errEvent(instr.SessionID, ErrCodeSessionNotFound, "session not found"))
	}
	if string(sv.PlayerPublic) != string(c.public) {
		return one(c.errEvent(instr.SessionID, ErrCodeSessionNotOwned, "session not owned by signer"))
	}
	if sv.IsComplete {
		return one(c.errEvent(instr.SessionID, ErrCodeGameAlreadyComplete, "session already complete"))
	}

	session := fromSessionValue(sv)
	moveNumber := session.MoveCount
	rng := cards.NewGameRng(c.layer.seed, session.ID, moveNumber)
	result, err := games.ProcessMove(session, instr.Payload, rng)
	if err != nil {
		return one(c.errEvent(instr.SessionID, gameErrorCode(err), err.Error()))
	}
	if session.MoveCount == moveNumber {
		session.MoveCount = moveNumber + 1
	}

	events := []codec.Event{{Tag: codec.EventGameMoveMade, PlayerPublic: c.public, SessionID: instr.SessionID}}

	if result.Kind == games.ResultContinue {
		c.layer.setSession(toSessionValue(session))
		return events
	}

	// Terminal: compute the signed payout, apply modifiers, credit chips,
	// update the house PnL counter, clear the active session.
	var signedPayout int64
	switch result.Kind {
	case games.ResultWin:
		win := modifiers.ApplyCardMultiplier(result.Amount, session.SuperMode, session.FinalCards)
		signedPayout = int64(win)
	case games.ResultLoss:
		signedPayout = -int64(session.Bet)
	case games.ResultPush:
		signedPayout = int64(session.Bet) // bet returned, net zero versus house
	}

	flags := modifiers.PlayerFlags{
		Shields: &p.Shields, Doubles: &p.Doubles,
		ActiveShield: &p.ActiveShield, ActiveDouble: &p.ActiveDouble,
	}
	if result.Kind == games.ResultWin || result.Kind == games.ResultLoss {
		signedPayout = modifiers.ApplyShieldDouble(signedPayout, flags)
	} else {
		p.ActiveShield = false
		p.ActiveDouble = false
	}

	credit := uint64(0)
	if signedPayout > 0 {
		credit = uint64(signedPayout)
	}
	p.Chips = saturatingAddU64(p.Chips, credit)
	p.ActiveSession = nil
	session.IsComplete = true

	house := c.layer.house()
	var lossSide, winSide uint64
	if signedPayout < 0 {
		lossSide = uint64(-signedPayout)
	} else {
		winSide = uint64(signedPayout)
	}
	house.NetPnL = computeHousePnL(house.NetPnL, session.Bet, winSide, lossSide)
	c.layer.setHouse(house)

	c.layer.setPlayer(c.public, p)
	c.layer.setSession(toSessionValue(session))
	c.layer.updateLeaderboard(c.public, p.Chips)

	resultKind := uint8(result.Kind)
	events = append(events, codec.Event{
		Tag: codec.EventGameEnded, PlayerPublic: c.public, SessionID: instr.SessionID,
		ResultKind: resultKind, Amount: credit,
	})
	return events
}

// computeHousePnL folds a resolved wager into the house's running PnL
// counter (spec §4.E: net_pnl += bet - max(p,0) + max(-p,0)), saturating.
func computeHousePnL(current int64, bet, winSide, lossSide uint64) int64 {
	delta := int64(bet) - int64(winSide) + int64(lossSide)
	return saturatingAddI64(current, delta)
}

func (c handlerCtx) toggleShield() []codec.Event {
	p, ok := c.layer.player(c.public)
	if !ok {
		return one(c.errEvent(0, ErrCodePlayerNotFound, "register first"))
	}
	if p.Shields == 0 {
		return one(c.errEvent(0, ErrCodeInsufficientChips, "no shields available"))
	}
	p.ActiveShield = true
	c.layer.setPlayer(c.public, p)
	return nil
}

func (c handlerCtx) toggleDouble() []codec.Event {
	p, ok := c.layer.player(c.public)
	if !ok {
		return one(c.errEvent(0, ErrCodePlayerNotFound, "register first"))
	}
	if p.Doubles == 0 {
		return one(c.errEvent(0, ErrCodeInsufficientChips, "no doubles available"))
	}
	p.ActiveDouble = true
	c.layer.setPlayer(c.public, p)
	return nil
}

func (c handlerCtx) toggleSuper() []codec.Event {
	p, ok := c.layer.player(c.public)
	if !ok {
		return one(c.errEvent(0, ErrCodePlayerNotFound, "register first"))
	}
	if p.AuraMeter < 5 {
		return one(c.errEvent(0, ErrCodeInsufficientChips, "aura meter not full"))
	}
	p.ActiveSuper = !p.ActiveSuper
	p.AuraMeter = 0
	c.layer.setPlayer(c.public, p)
	return nil
}

func toSessionValue(s *games.GameSession) codec.SessionValue {
	var superMults []codec.SuperModeMultiplier
	for _, m := range s.SuperMode.Multipliers {
		superMults = append(superMults, codec.SuperModeMultiplier{ID: m.ID, MultiplierBP: m.MultiplierBP, Type: uint8(m.Type)})
	}
	return codec.SessionValue{
		ID: s.ID, PlayerPublic: s.PlayerPublic, GameType: uint8(s.GameType), Bet: s.Bet,
		StateBlob: s.StateBlob, MoveCount: s.MoveCount, CreationView: s.CreationView,
		IsComplete: s.IsComplete, SuperActive: s.SuperMode.Active, SuperMultiplier: superMults,
	}
}

func fromSessionValue(sv codec.SessionValue) *games.GameSession {
	var mults []modifiers.SuperMultiplier
	for _, m := range sv.SuperMultiplier {
		mults = append(mults, modifiers.SuperMultiplier{ID: m.ID, MultiplierBP: m.MultiplierBP, Type: modifiers.SuperModeType(m.Type)})
	}
	return &games.GameSession{
		ID: sv.ID, PlayerPublic: sv.PlayerPublic, GameType: games.GameType(sv.GameType), Bet: sv.Bet,
		StateBlob: sv.StateBlob, MoveCount: sv.MoveCount, CreationView: sv.CreationView,
		IsComplete: sv.IsComplete, SuperMode: modifiers.SuperModeState{Active: sv.SuperActive, Multipliers: mults},
	}
}

func gameErrorCode(err error) uint32 {
	switch err {
	case games.ErrInvalidPayload:
		return ErrCodeInvalidPayload
	case games.ErrInvalidMove:
		return ErrCodeInvalidMove
	case games.ErrGameAlreadyComplete:
		return ErrCodeGameAlreadyComplete
	case games.ErrDeckExhausted:
		return ErrCodeDeckExhausted
	default:
		return ErrCodeInvalidState
	}
}

func one(e codec.Event) []codec.Event { return []codec.Event{e} }

func saturatingAddU64(a, b uint64) uint64 {
	sum := a + b
	if sum < a {
		return ^uint64(0)
	}
	return sum
}

func saturatingAddI64(a, b int64) int64 {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		if b > 0 {
			return 1<<63 - 1
		}
		return -1 << 63
	}
	return sum
}

func saturatingSubI64(a, b int64) int64 {
	return saturatingAddI64(a, -b)
}
