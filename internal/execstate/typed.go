package execstate

import "github.com/nullcasino/corechain/internal/codec"

// Typed accessors over the Layer's raw get/insert, one pair per Key variant
// a handler needs. Decode errors are treated as "absent" rather than
// propagated: a corrupt overlay value can only come from this package's own
// Encode, so a decode failure here would be a programming bug, not a
// reachable runtime condition.

func (l *Layer) player(pub []byte) (codec.Player, bool) {
	raw, ok := l.get(codec.CasinoPlayerKey(pub))
	if !ok {
		return codec.Player{}, false
	}
	p, err := codec.DecodePlayer(codec.NewReader(raw))
	if err != nil {
		return codec.Player{}, false
	}
	return p, true
}

func (l *Layer) setPlayer(pub []byte, p codec.Player) {
	l.insert(codec.CasinoPlayerKey(pub), p.Encode())
}

func (l *Layer) session(id uint64) (codec.SessionValue, bool) {
	raw, ok := l.get(codec.CasinoSessionKey(id))
	if !ok {
		return codec.SessionValue{}, false
	}
	s, err := codec.DecodeSessionValue(codec.NewReader(raw))
	if err != nil {
		return codec.SessionValue{}, false
	}
	return s, true
}

func (l *Layer) setSession(s codec.SessionValue) {
	l.insert(codec.CasinoSessionKey(s.ID), s.Encode())
}

func (l *Layer) house() codec.House {
	raw, ok := l.get(codec.HouseKey())
	if !ok {
		return codec.House{}
	}
	h, err := codec.DecodeHouse(codec.NewReader(raw))
	if err != nil {
		return codec.House{}
	}
	return h
}

func (l *Layer) setHouse(h codec.House) {
	l.insert(codec.HouseKey(), h.Encode())
}

func (l *Layer) leaderboard() codec.Leaderboard {
	raw, ok := l.get(codec.CasinoLeaderboardKey())
	if !ok {
		return codec.Leaderboard{}
	}
	lb, err := codec.DecodeLeaderboard(codec.NewReader(raw))
	if err != nil {
		return codec.Leaderboard{}
	}
	return lb
}

func (l *Layer) setLeaderboard(lb codec.Leaderboard) {
	l.insert(codec.CasinoLeaderboardKey(), lb.Encode())
}

func (l *Layer) ammPool() codec.AmmPool {
	raw, ok := l.get(codec.AmmPoolKey())
	if !ok {
		return codec.AmmPool{FeeBPS: AmmFeeBPS, SellTaxBPS: AmmSellTaxBPS}
	}
	a, err := codec.DecodeAmmPool(codec.NewReader(raw))
	if err != nil {
		return codec.AmmPool{FeeBPS: AmmFeeBPS, SellTaxBPS: AmmSellTaxBPS}
	}
	return a
}

func (l *Layer) setAmmPool(a codec.AmmPool) {
	l.insert(codec.AmmPoolKey(), a.Encode())
}

func (l *Layer) lpBalance(pub []byte) uint64 {
	raw, ok := l.get(codec.LpBalanceKey(pub))
	if !ok {
		return 0
	}
	return decodeU64(raw)
}

func (l *Layer) setLpBalance(pub []byte, v uint64) {
	l.insert(codec.LpBalanceKey(pub), encodeU64(v))
}

func (l *Layer) staker(pub []byte) (codec.Staker, bool) {
	raw, ok := l.get(codec.StakerKey(pub))
	if !ok {
		return codec.Staker{}, false
	}
	s, err := codec.DecodeStaker(codec.NewReader(raw))
	if err != nil {
		return codec.Staker{}, false
	}
	return s, true
}

func (l *Layer) setStaker(pub []byte, s codec.Staker) {
	l.insert(codec.StakerKey(pub), s.Encode())
}

func (l *Layer) vault(pub []byte) (codec.Vault, bool) {
	raw, ok := l.get(codec.VaultKey(pub))
	if !ok {
		return codec.Vault{}, false
	}
	v, err := codec.DecodeVault(codec.NewReader(raw))
	if err != nil {
		return codec.Vault{}, false
	}
	return v, true
}

func (l *Layer) setVault(pub []byte, v codec.Vault) {
	l.insert(codec.VaultKey(pub), v.Encode())
}

func (l *Layer) tournament(id uint64) (codec.Tournament, bool) {
	raw, ok := l.get(codec.TournamentKey(id))
	if !ok {
		return codec.Tournament{}, false
	}
	t, err := codec.DecodeTournament(codec.NewReader(raw))
	if err != nil {
		return codec.Tournament{}, false
	}
	return t, true
}

func (l *Layer) setTournament(t codec.Tournament) {
	l.insert(codec.TournamentKey(t.ID), t.Encode())
}

func encodeU64(v uint64) []byte {
	w := codec.NewWriter()
	w.WriteU64(v)
	return w.Bytes()
}

func decodeU64(b []byte) uint64 {
	v, err := codec.NewReader(b).ReadU64()
	if err != nil {
		return 0
	}
	return v
}

// updateLeaderboard re-ranks a single player's entry into the top-10,
// descending by chips (spec §3.3, §8.1).
func (l *Layer) updateLeaderboard(pub []byte, chips uint64) {
	lb := l.leaderboard()
	entries := make([]codec.LeaderboardEntry, 0, len(lb.Entries)+1)
	found := false
	for _, e := range lb.Entries {
		if string(e.PlayerPublic) == string(pub) {
			entries = append(entries, codec.LeaderboardEntry{PlayerPublic: pub, Chips: chips})
			found = true
			continue
		}
		entries = append(entries, e)
	}
	if !found {
		entries = append(entries, codec.LeaderboardEntry{PlayerPublic: pub, Chips: chips})
	}
	sortLeaderboard(entries)
	if len(entries) > codec.MaxLeaderboardEntries {
		entries = entries[:codec.MaxLeaderboardEntries]
	}
	l.setLeaderboard(codec.Leaderboard{Entries: entries})
}

func sortLeaderboard(entries []codec.LeaderboardEntry) {
	for i := 1; i < len(entries); i++ {
		for j := i; j > 0 && entries[j-1].Chips < entries[j].Chips; j-- {
			entries[j-1], entries[j] = entries[j], entries[j-1]
		}
	}
}
