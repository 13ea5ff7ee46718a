package codec

// Account mirrors Key.Account's value: the nonce used for replay
// protection and admission ordering.
type Account struct {
	Nonce uint64
}

func (a Account) Encode() []byte {
	w := NewWriter()
	w.WriteU64(a.Nonce)
	return w.Bytes()
}

func DecodeAccount(r *Reader) (Account, error) {
	n, err := r.ReadU64()
	return Account{Nonce: n}, err
}

// Player carries a registered casino identity. InitialChips is
// credited once at registration.
const InitialChips = 1000

type Player struct {
	Nonce            uint64
	Name             string
	Chips            uint64
	VUSDT            uint64
	TournamentChips  uint64
	Shields          uint32
	Doubles          uint32
	ActiveShield     bool
	ActiveDouble     bool
	ActiveSuper      bool
	ActiveSession    *uint64
	LastDepositBlock uint64
	AuraMeter        uint8
}

func (p Player) Encode() []byte {
	w := NewWriter()
	w.WriteU64(p.Nonce)
	w.WriteString(p.Name)
	w.WriteU64(p.Chips)
	w.WriteU64(p.VUSDT)
	w.WriteU64(p.TournamentChips)
	w.WriteU32(p.Shields)
	w.WriteU32(p.Doubles)
	w.WriteBool(p.ActiveShield)
	w.WriteBool(p.ActiveDouble)
	w.WriteBool(p.ActiveSuper)
	if p.ActiveSession != nil {
		w.WriteBool(true)
		w.WriteU64(*p.ActiveSession)
	} else {
		w.WriteBool(false)
	}
	w.WriteU64(p.LastDepositBlock)
	w.WriteU8(p.AuraMeter)
	return w.Bytes()
}

func DecodePlayer(r *Reader) (Player, error) {
	var p Player
	var err error
	if p.Nonce, err = r.ReadU64(); err != nil {
		return Player{}, err
	}
	if p.Name, err = r.ReadString(MaxNameLength); err != nil {
		return Player{}, err
	}
	if p.Chips, err = r.ReadU64(); err != nil {
		return Player{}, err
	}
	if p.VUSDT, err = r.ReadU64(); err != nil {
		return Player{}, err
	}
	if p.TournamentChips, err = r.ReadU64(); err != nil {
		return Player{}, err
	}
	if p.Shields, err = r.ReadU32(); err != nil {
		return Player{}, err
	}
	if p.Doubles, err = r.ReadU32(); err != nil {
		return Player{}, err
	}
	if p.ActiveShield, err = r.ReadBool(); err != nil {
		return Player{}, err
	}
	if p.ActiveDouble, err = r.ReadBool(); err != nil {
		return Player{}, err
	}
	if p.ActiveSuper, err = r.ReadBool(); err != nil {
		return Player{}, err
	}
	hasSession, err := r.ReadBool()
	if err != nil {
		return Player{}, err
	}
	if hasSession {
		id, err := r.ReadU64()
		if err != nil {
			return Player{}, err
		}
		p.ActiveSession = &id
	}
	if p.LastDepositBlock, err = r.ReadU64(); err != nil {
		return Player{}, err
	}
	if p.AuraMeter, err = r.ReadU8(); err != nil {
		return Player{}, err
	}
	return p, nil
}

// SuperModeMultiplier mirrors modifiers.SuperMultiplier on the wire.
type SuperModeMultiplier struct {
	ID           uint32
	MultiplierBP uint64
	Type         uint8
}

// SessionValue is the persisted form of a casino game session.
type SessionValue struct {
	ID              uint64
	PlayerPublic    []byte
	GameType        uint8
	Bet             uint64
	StateBlob       []byte
	MoveCount       uint32
	CreationView    uint64
	IsComplete      bool
	SuperActive     bool
	SuperMultiplier []SuperModeMultiplier
	TournamentID    *uint64
}

func (s SessionValue) Encode() []byte {
	w := NewWriter()
	w.WriteU64(s.ID)
	w.WriteBytes(s.PlayerPublic)
	w.WriteU8(s.GameType)
	w.WriteU64(s.Bet)
	w.WriteBytes(s.StateBlob)
	w.WriteU32(s.MoveCount)
	w.WriteU64(s.CreationView)
	w.WriteBool(s.IsComplete)
	w.WriteBool(s.SuperActive)
	w.WriteU32(uint32(len(s.SuperMultiplier)))
	for _, m := range s.SuperMultiplier {
		w.WriteU32(m.ID)
		w.WriteU64(m.MultiplierBP)
		w.WriteU8(m.Type)
	}
	if s.TournamentID != nil {
		w.WriteBool(true)
		w.WriteU64(*s.TournamentID)
	} else {
		w.WriteBool(false)
	}
	return w.Bytes()
}

const maxSessionMultipliers = 32

func DecodeSessionValue(r *Reader) (SessionValue, error) {
	var s SessionValue
	var err error
	if s.ID, err = r.ReadU64(); err != nil {
		return SessionValue{}, err
	}
	if s.PlayerPublic, err = r.ReadBytes(64); err != nil {
		return SessionValue{}, err
	}
	if s.GameType, err = r.ReadU8(); err != nil {
		return SessionValue{}, err
	}
	if s.Bet, err = r.ReadU64(); err != nil {
		return SessionValue{}, err
	}
	if s.StateBlob, err = r.ReadBytes(MaxPayloadLength); err != nil {
		return SessionValue{}, err
	}
	if s.MoveCount, err = r.ReadU32(); err != nil {
		return SessionValue{}, err
	}
	if s.CreationView, err = r.ReadU64(); err != nil {
		return SessionValue{}, err
	}
	if s.IsComplete, err = r.ReadBool(); err != nil {
		return SessionValue{}, err
	}
	if s.SuperActive, err = r.ReadBool(); err != nil {
		return SessionValue{}, err
	}
	n, err := r.ReadVecLen(maxSessionMultipliers)
	if err != nil {
		return SessionValue{}, err
	}
	for i := uint32(0); i < n; i++ {
		var m SuperModeMultiplier
		if m.ID, err = r.ReadU32(); err != nil {
			return SessionValue{}, err
		}
		if m.MultiplierBP, err = r.ReadU64(); err != nil {
			return SessionValue{}, err
		}
		if m.Type, err = r.ReadU8(); err != nil {
			return SessionValue{}, err
		}
		s.SuperMultiplier = append(s.SuperMultiplier, m)
	}
	hasTourn, err := r.ReadBool()
	if err != nil {
		return SessionValue{}, err
	}
	if hasTourn {
		id, err := r.ReadU64()
		if err != nil {
			return SessionValue{}, err
		}
		s.TournamentID = &id
	}
	return s, nil
}

// LeaderboardEntry is one ranked row; Leaderboard itself is capped at
// MaxLeaderboardEntries and sorted descending by Chips.
type LeaderboardEntry struct {
	PlayerPublic []byte
	Chips        uint64
}

type Leaderboard struct {
	Entries []LeaderboardEntry
}

func (l Leaderboard) Encode() []byte {
	w := NewWriter()
	w.WriteU32(uint32(len(l.Entries)))
	for _, e := range l.Entries {
		w.WriteBytes(e.PlayerPublic)
		w.WriteU64(e.Chips)
	}
	return w.Bytes()
}

func DecodeLeaderboard(r *Reader) (Leaderboard, error) {
	n, err := r.ReadVecLen(MaxLeaderboardEntries)
	if err != nil {
		return Leaderboard{}, err
	}
	l := Leaderboard{}
	for i := uint32(0); i < n; i++ {
		pub, err := r.ReadBytes(64)
		if err != nil {
			return Leaderboard{}, err
		}
		chips, err := r.ReadU64()
		if err != nil {
			return Leaderboard{}, err
		}
		l.Entries = append(l.Entries, LeaderboardEntry{PlayerPublic: pub, Chips: chips})
	}
	return l, nil
}

// House holds the platform-wide economy counters: net PnL, accumulated
// fees, burned supply, issuance, and the progressive jackpot pool.
type House struct {
	Epoch            uint64
	NetPnL           int64
	AccumulatedFees  uint64
	TotalBurned      uint64
	Issuance         uint64
	JackpotPool      uint64
}

func (h House) Encode() []byte {
	w := NewWriter()
	w.WriteU64(h.Epoch)
	w.WriteI64(h.NetPnL)
	w.WriteU64(h.AccumulatedFees)
	w.WriteU64(h.TotalBurned)
	w.WriteU64(h.Issuance)
	w.WriteU64(h.JackpotPool)
	return w.Bytes()
}

func DecodeHouse(r *Reader) (House, error) {
	var h House
	var err error
	if h.Epoch, err = r.ReadU64(); err != nil {
		return House{}, err
	}
	if h.NetPnL, err = r.ReadI64(); err != nil {
		return House{}, err
	}
	if h.AccumulatedFees, err = r.ReadU64(); err != nil {
		return House{}, err
	}
	if h.TotalBurned, err = r.ReadU64(); err != nil {
		return House{}, err
	}
	if h.Issuance, err = r.ReadU64(); err != nil {
		return House{}, err
	}
	if h.JackpotPool, err = r.ReadU64(); err != nil {
		return House{}, err
	}
	return h, nil
}

// AmmPool is the constant-product pool state.
type AmmPool struct {
	ReserveRNG   uint64
	ReserveVUSDT uint64
	TotalShares  uint64
	FeeBPS       uint32
	SellTaxBPS   uint32
}

func (a AmmPool) Encode() []byte {
	w := NewWriter()
	w.WriteU64(a.ReserveRNG)
	w.WriteU64(a.ReserveVUSDT)
	w.WriteU64(a.TotalShares)
	w.WriteU32(a.FeeBPS)
	w.WriteU32(a.SellTaxBPS)
	return w.Bytes()
}

func DecodeAmmPool(r *Reader) (AmmPool, error) {
	var a AmmPool
	var err error
	if a.ReserveRNG, err = r.ReadU64(); err != nil {
		return AmmPool{}, err
	}
	if a.ReserveVUSDT, err = r.ReadU64(); err != nil {
		return AmmPool{}, err
	}
	if a.TotalShares, err = r.ReadU64(); err != nil {
		return AmmPool{}, err
	}
	if a.FeeBPS, err = r.ReadU32(); err != nil {
		return AmmPool{}, err
	}
	if a.SellTaxBPS, err = r.ReadU32(); err != nil {
		return AmmPool{}, err
	}
	return a, nil
}

// Staker mirrors Key.Staker: locked balance, unlock view, and its derived
// voting power (balance * lock duration at time of stake).
type Staker struct {
	Balance     uint64
	UnlockView  uint64
	VotingPower uint64
}

func (s Staker) Encode() []byte {
	w := NewWriter()
	w.WriteU64(s.Balance)
	w.WriteU64(s.UnlockView)
	w.WriteU64(s.VotingPower)
	return w.Bytes()
}

func DecodeStaker(r *Reader) (Staker, error) {
	var s Staker
	var err error
	if s.Balance, err = r.ReadU64(); err != nil {
		return Staker{}, err
	}
	if s.UnlockView, err = r.ReadU64(); err != nil {
		return Staker{}, err
	}
	if s.VotingPower, err = r.ReadU64(); err != nil {
		return Staker{}, err
	}
	return s, nil
}

// Vault is a CDP position: RNG collateral backing a vUSDT debt.
type Vault struct {
	CollateralRNG uint64
	DebtVUSDT     uint64
}

func (v Vault) Encode() []byte {
	w := NewWriter()
	w.WriteU64(v.CollateralRNG)
	w.WriteU64(v.DebtVUSDT)
	return w.Bytes()
}

func DecodeVault(r *Reader) (Vault, error) {
	var v Vault
	var err error
	if v.CollateralRNG, err = r.ReadU64(); err != nil {
		return Vault{}, err
	}
	if v.DebtVUSDT, err = r.ReadU64(); err != nil {
		return Vault{}, err
	}
	return v, nil
}

// TournamentPhase tags a tournament's lifecycle stage.
type TournamentPhase uint8

const (
	TournamentRegistering TournamentPhase = iota
	TournamentActive
	TournamentComplete
)

type Tournament struct {
	ID          uint64
	Phase       TournamentPhase
	StartTimeMs uint64
	EndTimeMs   uint64
	Players     [][]byte
	PrizePool   uint64
}

func (t Tournament) Encode() []byte {
	w := NewWriter()
	w.WriteU64(t.ID)
	w.WriteU8(uint8(t.Phase))
	w.WriteU64(t.StartTimeMs)
	w.WriteU64(t.EndTimeMs)
	w.WriteU32(uint32(len(t.Players)))
	for _, p := range t.Players {
		w.WriteBytes(p)
	}
	w.WriteU64(t.PrizePool)
	return w.Bytes()
}

func DecodeTournament(r *Reader) (Tournament, error) {
	var t Tournament
	var err error
	if t.ID, err = r.ReadU64(); err != nil {
		return Tournament{}, err
	}
	phase, err := r.ReadU8()
	if err != nil {
		return Tournament{}, err
	}
	t.Phase = TournamentPhase(phase)
	if t.StartTimeMs, err = r.ReadU64(); err != nil {
		return Tournament{}, err
	}
	if t.EndTimeMs, err = r.ReadU64(); err != nil {
		return Tournament{}, err
	}
	n, err := r.ReadVecLen(MaxTournamentPlayers)
	if err != nil {
		return Tournament{}, err
	}
	for i := uint32(0); i < n; i++ {
		pub, err := r.ReadBytes(64)
		if err != nil {
			return Tournament{}, err
		}
		t.Players = append(t.Players, pub)
	}
	if t.PrizePool, err = r.ReadU64(); err != nil {
		return Tournament{}, err
	}
	return t, nil
}

// Commit is the sentinel persisted by both authenticated stores on every
// commit, recording the height and the first op index of that block.
type Commit struct {
	Height uint64
	Start  uint64
}

func (c Commit) Encode() []byte {
	w := NewWriter()
	w.WriteU64(c.Height)
	w.WriteU64(c.Start)
	return w.Bytes()
}

func DecodeCommit(r *Reader) (Commit, error) {
	var c Commit
	var err error
	if c.Height, err = r.ReadU64(); err != nil {
		return Commit{}, err
	}
	if c.Start, err = r.ReadU64(); err != nil {
		return Commit{}, err
	}
	return c, nil
}
