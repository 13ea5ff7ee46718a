package execstate

import "github.com/nullcasino/corechain/internal/codec"

// tournamentJoin handles TournamentJoin: a first join on an unused id opens
// the tournament in the Registering phase (spec §3.4 "registration phase").
// An entry fee is deducted from chips into the prize pool and the player is
// granted a fixed tournament chip stack to play with.
func (c handlerCtx) tournamentJoin(instr codec.Instruction) []codec.Event {
	p, ok := c.layer.player(c.public)
	if !ok {
		return one(c.errEvent(0, ErrCodePlayerNotFound, "register first"))
	}
	t, exists := c.layer.tournament(instr.TournamentID)
	if !exists {
		t = codec.Tournament{ID: instr.TournamentID, Phase: codec.TournamentRegistering}
	}
	if t.Phase != codec.TournamentRegistering {
		return one(c.errEvent(0, ErrCodeTournamentNotRegistering, "tournament is not accepting players"))
	}
	for _, existing := range t.Players {
		if string(existing) == string(c.public) {
			return one(c.errEvent(0, ErrCodeTournamentAlreadyJoined, "already joined"))
		}
	}
	if len(t.Players) >= codec.MaxTournamentPlayers {
		return one(c.errEvent(0, ErrCodeTournamentNotRegistering, "tournament is full"))
	}
	if p.Chips < TournamentEntryFee {
		return one(c.errEvent(0, ErrCodeInsufficientChips, "insufficient chips for entry fee"))
	}

	p.Chips -= TournamentEntryFee
	p.TournamentChips = TournamentStartingChips
	t.Players = append(t.Players, c.public)
	t.PrizePool = saturatingAddU64(t.PrizePool, TournamentEntryFee)

	c.layer.setPlayer(c.public, p)
	c.layer.setTournament(t)
	return one(codec.Event{Tag: codec.EventTournamentJoined, PlayerPublic: c.public, TournamentID: t.ID})
}

// tournamentStart handles TournamentStart: transitions Registering to
// Active and fixes the 5-minute wall-clock window (spec §3.4). Requires at
// least one registered player.
func (c handlerCtx) tournamentStart(instr codec.Instruction) []codec.Event {
	t, exists := c.layer.tournament(instr.TournamentID)
	if !exists {
		return one(c.errEvent(0, ErrCodeTournamentNotFound, "tournament not found"))
	}
	if t.Phase != codec.TournamentRegistering {
		return one(c.errEvent(0, ErrCodeTournamentNotRegistering, "tournament already started"))
	}
	if len(t.Players) == 0 {
		return one(c.errEvent(0, ErrCodeTournamentNotRegistering, "no players registered"))
	}

	t.Phase = codec.TournamentActive
	t.StartTimeMs = c.layer.view * BlockTimeMs
	t.EndTimeMs = t.StartTimeMs + TournamentDurationMs
	c.layer.setTournament(t)
	return one(codec.Event{Tag: codec.EventTournamentStarted, TournamentID: t.ID})
}

// tournamentEnd handles TournamentEnd: transitions Active to Complete once
// the wall-clock window has elapsed, distributing the prize pool by rank
// among tournament chip standings (spec §3.4 "complete with prize
// distribution").
func (c handlerCtx) tournamentEnd(instr codec.Instruction) []codec.Event {
	t, exists := c.layer.tournament(instr.TournamentID)
	if !exists {
		return one(c.errEvent(0, ErrCodeTournamentNotFound, "tournament not found"))
	}
	if t.Phase != codec.TournamentActive {
		return one(c.errEvent(0, ErrCodeTournamentNotActive, "tournament is not active"))
	}
	nowMs := c.layer.view * BlockTimeMs
	if nowMs < t.EndTimeMs {
		return one(c.errEvent(0, ErrCodeTournamentNotActive, "tournament window has not elapsed"))
	}

	ranked := rankTournamentPlayers(c.layer, t.Players)
	payouts := tournamentPrizeShares(t.PrizePool, len(ranked))
	for i, pub := range ranked {
		if payouts[i] == 0 {
			continue
		}
		pl, ok := c.layer.player(pub)
		if !ok {
			continue
		}
		pl.Chips = saturatingAddU64(pl.Chips, payouts[i])
		pl.TournamentChips = 0
		c.layer.setPlayer(pub, pl)
		c.layer.updateLeaderboard(pub, pl.Chips)
	}

	t.Phase = codec.TournamentComplete
	t.PrizePool = 0
	c.layer.setTournament(t)
	return one(codec.Event{Tag: codec.EventTournamentEnded, TournamentID: t.ID})
}

// rankTournamentPlayers orders a tournament's roster descending by
// tournament chip standing, stable on ties by join order.
func rankTournamentPlayers(l *Layer, players [][]byte) [][]byte {
	ranked := make([][]byte, len(players))
	copy(ranked, players)
	chips := make(map[string]uint64, len(players))
	for _, pub := range players {
		if pl, ok := l.player(pub); ok {
			chips[string(pub)] = pl.TournamentChips
		}
	}
	for i := 1; i < len(ranked); i++ {
		for j := i; j > 0 && chips[string(ranked[j-1])] < chips[string(ranked[j])]; j-- {
			ranked[j-1], ranked[j] = ranked[j], ranked[j-1]
		}
	}
	return ranked
}

// tournamentPrizeShares splits a prize pool 50/30/20 across the top three
// finishers (or fewer, proportionally, when the field is smaller).
func tournamentPrizeShares(pool uint64, n int) []uint64 {
	shares := make([]uint64, n)
	if n == 0 || pool == 0 {
		return shares
	}
	weights := []uint64{50, 30, 20}
	total := uint64(0)
	limit := n
	if limit > len(weights) {
		limit = len(weights)
	}
	for i := 0; i < limit; i++ {
		total += weights[i]
	}
	for i := 0; i < limit; i++ {
		shares[i] = pool * weights[i] / total
	}
	return shares
}
