package codec

// InstructionTag enumerates the Instruction union's wire tags.
type InstructionTag uint8

const (
	InstrCasinoRegister InstructionTag = iota
	InstrCasinoDeposit
	InstrCasinoStartGame
	InstrCasinoGameMove
	InstrCasinoToggleShield
	InstrCasinoToggleDouble
	InstrCasinoToggleSuper
	InstrTournamentJoin
	InstrTournamentStart
	InstrTournamentEnd
	InstrStake
	InstrUnstake
	InstrClaimRewards
	InstrProcessEpoch
	InstrVaultCreate
	InstrVaultDeposit
	InstrVaultBorrow
	InstrVaultRepay
	InstrAmmSwap
	InstrAmmAddLiquidity
	InstrAmmRemoveLiquidity
)

// Instruction is the tagged union of all state-mutating operations a
// Transaction may carry. Only the fields relevant to Tag are populated.
type Instruction struct {
	Tag InstructionTag

	Name         string // CasinoRegister
	Amount       uint64 // CasinoDeposit, Stake, VaultDeposit/Borrow/Repay, AmmAddLiquidity (rng side)
	GameType     uint8  // CasinoStartGame
	Bet          uint64 // CasinoStartGame
	SessionID    uint64 // CasinoStartGame (client hint), CasinoGameMove
	Payload      []byte // CasinoGameMove
	TournamentID uint64 // TournamentJoin/Start/End
	Duration     uint64 // Stake
	AmountVUSDT  uint64 // VaultBorrow/Repay, AmmAddLiquidity (vusdt side)
	IsBuyingRNG  bool   // AmmSwap
	MinOut       uint64 // AmmSwap
	Shares       uint64 // AmmRemoveLiquidity
}

func (i Instruction) Encode() []byte {
	w := NewWriter()
	w.WriteU8(uint8(i.Tag))
	switch i.Tag {
	case InstrCasinoRegister:
		w.WriteString(i.Name)
	case InstrCasinoDeposit:
		w.WriteU64(i.Amount)
	case InstrCasinoStartGame:
		w.WriteU8(i.GameType)
		w.WriteU64(i.Bet)
		w.WriteU64(i.SessionID)
	case InstrCasinoGameMove:
		w.WriteU64(i.SessionID)
		w.WriteBytes(i.Payload)
	case InstrCasinoToggleShield, InstrCasinoToggleDouble, InstrCasinoToggleSuper:
		// tag alone selects which modifier
	case InstrTournamentJoin, InstrTournamentStart, InstrTournamentEnd:
		w.WriteU64(i.TournamentID)
	case InstrStake:
		w.WriteU64(i.Amount)
		w.WriteU64(i.Duration)
	case InstrUnstake, InstrClaimRewards, InstrProcessEpoch:
		// no payload
	case InstrVaultCreate:
		w.WriteU64(i.Amount)
	case InstrVaultDeposit:
		w.WriteU64(i.Amount)
	case InstrVaultBorrow, InstrVaultRepay:
		w.WriteU64(i.AmountVUSDT)
	case InstrAmmSwap:
		w.WriteU64(i.Amount)
		w.WriteBool(i.IsBuyingRNG)
		w.WriteU64(i.MinOut)
	case InstrAmmAddLiquidity:
		w.WriteU64(i.Amount)
		w.WriteU64(i.AmountVUSDT)
	case InstrAmmRemoveLiquidity:
		w.WriteU64(i.Shares)
	}
	return w.Bytes()
}

func DecodeInstruction(r *Reader) (Instruction, error) {
	tag, err := r.ReadU8()
	if err != nil {
		return Instruction{}, err
	}
	i := Instruction{Tag: InstructionTag(tag)}
	switch i.Tag {
	case InstrCasinoRegister:
		if i.Name, err = r.ReadString(MaxNameLength); err != nil {
			return Instruction{}, err
		}
	case InstrCasinoDeposit:
		if i.Amount, err = r.ReadU64(); err != nil {
			return Instruction{}, err
		}
	case InstrCasinoStartGame:
		if i.GameType, err = r.ReadU8(); err != nil {
			return Instruction{}, err
		}
		if i.Bet, err = r.ReadU64(); err != nil {
			return Instruction{}, err
		}
		if i.SessionID, err = r.ReadU64(); err != nil {
			return Instruction{}, err
		}
	case InstrCasinoGameMove:
		if i.SessionID, err = r.ReadU64(); err != nil {
			return Instruction{}, err
		}
		if i.Payload, err = r.ReadBytes(MaxPayloadLength); err != nil {
			return Instruction{}, err
		}
	case InstrCasinoToggleShield, InstrCasinoToggleDouble, InstrCasinoToggleSuper:
	case InstrTournamentJoin, InstrTournamentStart, InstrTournamentEnd:
		if i.TournamentID, err = r.ReadU64(); err != nil {
			return Instruction{}, err
		}
	case InstrStake:
		if i.Amount, err = r.ReadU64(); err != nil {
			return Instruction{}, err
		}
		if i.Duration, err = r.ReadU64(); err != nil {
			return Instruction{}, err
		}
	case InstrUnstake, InstrClaimRewards, InstrProcessEpoch:
	case InstrVaultCreate:
		if i.Amount, err = r.ReadU64(); err != nil {
			return Instruction{}, err
		}
	case InstrVaultDeposit:
		if i.Amount, err = r.ReadU64(); err != nil {
			return Instruction{}, err
		}
	case InstrVaultBorrow, InstrVaultRepay:
		if i.AmountVUSDT, err = r.ReadU64(); err != nil {
			return Instruction{}, err
		}
	case InstrAmmSwap:
		if i.Amount, err = r.ReadU64(); err != nil {
			return Instruction{}, err
		}
		if i.IsBuyingRNG, err = r.ReadBool(); err != nil {
			return Instruction{}, err
		}
		if i.MinOut, err = r.ReadU64(); err != nil {
			return Instruction{}, err
		}
	case InstrAmmAddLiquidity:
		if i.Amount, err = r.ReadU64(); err != nil {
			return Instruction{}, err
		}
		if i.AmountVUSDT, err = r.ReadU64(); err != nil {
			return Instruction{}, err
		}
	case InstrAmmRemoveLiquidity:
		if i.Shares, err = r.ReadU64(); err != nil {
			return Instruction{}, err
		}
	default:
		return Instruction{}, ErrUnknownTag
	}
	return i, nil
}
