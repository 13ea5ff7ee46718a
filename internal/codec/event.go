package codec

// EventTag enumerates the Event union's wire tags.
type EventTag uint8

const (
	EventCasinoPlayerRegistered EventTag = iota
	EventCasinoDeposited
	EventGameStarted
	EventGameMoveMade
	EventGameEnded
	EventCasinoError
	EventTournamentJoined
	EventTournamentStarted
	EventTournamentEnded
	EventStaked
	EventUnstaked
	EventRewardsClaimed
	EventVaultOpened
	EventVaultBorrowed
	EventVaultRepaid
	EventAmmSwapped
	EventAmmLiquidityAdded
	EventAmmLiquidityRemoved
	EventEpochProcessed
	// OutputTransaction is appended after a transaction's own events in
	// the event log, interleaving event records with the transaction
	// that produced them for each accepted tx.
	OutputTransaction
)

// Event is the tagged union of all log entries a handler may emit. Only
// the fields relevant to Tag are populated.
type Event struct {
	Tag EventTag

	PlayerPublic []byte
	Name         string
	Amount       uint64
	NewChips     uint64
	SessionID    uint64
	GameType     uint8
	ResultKind   uint8
	ErrorCode    uint32
	Message      string
	TournamentID uint64
	Transaction  *Transaction // OutputTransaction
}

func (e Event) Encode() []byte {
	w := NewWriter()
	w.WriteU8(uint8(e.Tag))
	switch e.Tag {
	case EventCasinoPlayerRegistered:
		w.WriteBytes(e.PlayerPublic)
		w.WriteString(e.Name)
	case EventCasinoDeposited:
		w.WriteBytes(e.PlayerPublic)
		w.WriteU64(e.Amount)
		w.WriteU64(e.NewChips)
	case EventGameStarted:
		w.WriteBytes(e.PlayerPublic)
		w.WriteU64(e.SessionID)
		w.WriteU8(e.GameType)
		w.WriteU64(e.Amount)
	case EventGameMoveMade:
		w.WriteBytes(e.PlayerPublic)
		w.WriteU64(e.SessionID)
	case EventGameEnded:
		w.WriteBytes(e.PlayerPublic)
		w.WriteU64(e.SessionID)
		w.WriteU8(e.ResultKind)
		w.WriteU64(e.Amount)
	case EventCasinoError:
		w.WriteBytes(e.PlayerPublic)
		w.WriteU64(e.SessionID)
		w.WriteU32(e.ErrorCode)
		w.WriteString(e.Message)
	case EventTournamentJoined, EventTournamentStarted, EventTournamentEnded:
		w.WriteBytes(e.PlayerPublic)
		w.WriteU64(e.TournamentID)
	case EventStaked, EventUnstaked, EventRewardsClaimed:
		w.WriteBytes(e.PlayerPublic)
		w.WriteU64(e.Amount)
	case EventVaultOpened, EventVaultBorrowed, EventVaultRepaid:
		w.WriteBytes(e.PlayerPublic)
		w.WriteU64(e.Amount)
	case EventAmmSwapped, EventAmmLiquidityAdded, EventAmmLiquidityRemoved:
		w.WriteBytes(e.PlayerPublic)
		w.WriteU64(e.Amount)
	case EventEpochProcessed:
		w.WriteU64(e.Amount) // new epoch number
	case OutputTransaction:
		w.WriteBytesFixed(e.Transaction.Encode())
	}
	return w.Bytes()
}

func DecodeEvent(r *Reader) (Event, error) {
	tag, err := r.ReadU8()
	if err != nil {
		return Event{}, err
	}
	e := Event{Tag: EventTag(tag)}
	switch e.Tag {
	case EventCasinoPlayerRegistered:
		if e.PlayerPublic, err = r.ReadBytes(64); err != nil {
			return Event{}, err
		}
		if e.Name, err = r.ReadString(MaxNameLength); err != nil {
			return Event{}, err
		}
	case EventCasinoDeposited:
		if e.PlayerPublic, err = r.ReadBytes(64); err != nil {
			return Event{}, err
		}
		if e.Amount, err = r.ReadU64(); err != nil {
			return Event{}, err
		}
		if e.NewChips, err = r.ReadU64(); err != nil {
			return Event{}, err
		}
	case EventGameStarted:
		if e.PlayerPublic, err = r.ReadBytes(64); err != nil {
			return Event{}, err
		}
		if e.SessionID, err = r.ReadU64(); err != nil {
			return Event{}, err
		}
		if e.GameType, err = r.ReadU8(); err != nil {
			return Event{}, err
		}
		if e.Amount, err = r.ReadU64(); err != nil {
			return Event{}, err
		}
	case EventGameMoveMade:
		if e.PlayerPublic, err = r.ReadBytes(64); err != nil {
			return Event{}, err
		}
		if e.SessionID, err = r.ReadU64(); err != nil {
			return Event{}, err
		}
	case EventGameEnded:
		if e.PlayerPublic, err = r.ReadBytes(64); err != nil {
			return Event{}, err
		}
		if e.SessionID, err = r.ReadU64(); err != nil {
			return Event{}, err
		}
		if e.ResultKind, err = r.ReadU8(); err != nil {
			return Event{}, err
		}
		if e.Amount, err = r.ReadU64(); err != nil {
			return Event{}, err
		}
	case EventCasinoError:
		if e.PlayerPublic, err = r.ReadBytes(64); err != nil {
			return Event{}, err
		}
		if e.SessionID, err = r.ReadU64(); err != nil {
			return Event{}, err
		}
		if e.ErrorCode, err = r.ReadU32(); err != nil {
			return Event{}, err
		}
		if e.Message, err = r.ReadString(MaxPayloadLength); err != nil {
			return Event{}, err
		}
	case EventTournamentJoined, EventTournamentStarted, EventTournamentEnded:
		if e.PlayerPublic, err = r.ReadBytes(64); err != nil {
			return Event{}, err
		}
		if e.TournamentID, err = r.ReadU64(); err != nil {
			return Event{}, err
		}
	case EventStaked, EventUnstaked, EventRewardsClaimed,
		EventVaultOpened, EventVaultBorrowed, EventVaultRepaid,
		EventAmmSwapped, EventAmmLiquidityAdded, EventAmmLiquidityRemoved:
		if e.PlayerPublic, err = r.ReadBytes(64); err != nil {
			return Event{}, err
		}
		if e.Amount, err = r.ReadU64(); err != nil {
			return Event{}, err
		}
	case EventEpochProcessed:
		if e.Amount, err = r.ReadU64(); err != nil {
			return Event{}, err
		}
	case OutputTransaction:
		tx, err := DecodeTransaction(r)
		if err != nil {
			return Event{}, err
		}
		e.Transaction = &tx
	default:
		return Event{}, ErrUnknownTag
	}
	return e, nil
}
