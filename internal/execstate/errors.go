package execstate

import "github.com/nullcasino/corechain/internal/codec"

// Business and game error codes surfaced through Event::CasinoError (spec
// §7.3, §7.4). Numbering is stable wire content once assigned; new codes
// are appended, never renumbered.
const (
	ErrCodeUnknownInstruction uint32 = iota
	ErrCodeNameTooLong
	ErrCodePlayerExists
	ErrCodePlayerNotFound
	ErrCodeFaucetRateLimited
	ErrCodeSessionNotFound
	ErrCodeSessionAlreadyActive
	ErrCodeSessionNotOwned
	ErrCodeInsufficientChips
	ErrCodeInvalidPayload
	ErrCodeInvalidMove
	ErrCodeGameAlreadyComplete
	ErrCodeDeckExhausted
	ErrCodeInvalidState
	ErrCodeTournamentNotFound
	ErrCodeTournamentNotRegistering
	ErrCodeTournamentNotActive
	ErrCodeTournamentAlreadyJoined
	ErrCodeInsufficientStake
	ErrCodeStakeLocked
	ErrCodeNoStake
	ErrCodeVaultNotFound
	ErrCodeVaultExists
	ErrCodeVaultUnsafe
	ErrCodeInsufficientCollateral
	ErrCodeAmmPoolEmpty
	ErrCodeAmmPoolNotEmpty
	ErrCodeAmmSlippage
	ErrCodeAmmInsufficientLiquidity
	ErrCodeAmmInsufficientShares
	ErrCodeAmountZero
	ErrCodeVaultOverRepay
)

// errEvent builds a single CasinoError event. Handlers that reach this path
// must not have mutated the overlay (spec §7.3): callers construct all
// overlay writes only after every validation check has passed.
func (c handlerCtx) errEvent(sessionID uint64, code uint32, message string) codec.Event {
	return codec.Event{
		Tag:          codec.EventCasinoError,
		PlayerPublic: c.public,
		SessionID:    sessionID,
		ErrorCode:    code,
		Message:      message,
	}
}
