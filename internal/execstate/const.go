package execstate

// Persistent constants (spec §6.6).
const (
	FaucetRateLimit  = 100  // views between faucet-eligible deposits
	FaucetAmount     = 1000 // currently unused directly: CasinoDeposit carries its own amount
	SessionExpiry    = 100  // views of inactivity before a session is considered expired
	MinimumLiquidity = 1000

	AmmFeeBPS      uint32 = 30  // 0.3%
	AmmSellTaxBPS  uint32 = 500 // 5%, charged burning RNG->vUSDT sells
	BPSDenominator uint64 = 10_000

	TournamentDurationMs = 5 * 60 * 1000 // 5 minutes wall-clock
	// BlockTimeMs is the nominal block period used to derive a deterministic
	// wall-clock proxy from the consensus view number, mirroring the
	// original's "~20 blocks at 3s/block" registration-phase comment. No
	// instruction in the wire protocol carries an external timestamp, so
	// start_time_ms/end_time_ms are computed from view*BlockTimeMs rather
	// than sourced from outside consensus.
	BlockTimeMs = 3000

	TournamentEntryFee    = 100
	TournamentStartingChips = 1000
)
