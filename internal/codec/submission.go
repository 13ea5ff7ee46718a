package codec

// SubmissionTag enumerates the wire-exposed Submission union.
type SubmissionTag uint8

const (
	SubmissionSeed SubmissionTag = iota
	SubmissionTransactions
	SubmissionSummary
)

// Submission is the client-facing envelope: publish a seed, a batch of
// transactions, or a block summary.
type Submission struct {
	Tag          SubmissionTag
	Seed         Seed
	Transactions []Transaction
	Summary      Summary
}

func (s Submission) Encode() []byte {
	w := NewWriter()
	w.WriteU8(uint8(s.Tag))
	switch s.Tag {
	case SubmissionSeed:
		w.WriteBytesFixed(s.Seed.Encode())
	case SubmissionTransactions:
		w.WriteU32(uint32(len(s.Transactions)))
		for _, tx := range s.Transactions {
			w.WriteBytesFixed(tx.Encode())
		}
	case SubmissionSummary:
		w.WriteBytesFixed(s.Summary.Encode())
	}
	return w.Bytes()
}

func DecodeSubmission(r *Reader) (Submission, error) {
	tag, err := r.ReadU8()
	if err != nil {
		return Submission{}, err
	}
	s := Submission{Tag: SubmissionTag(tag)}
	switch s.Tag {
	case SubmissionSeed:
		seed, err := DecodeSeed(r)
		if err != nil {
			return Submission{}, err
		}
		s.Seed = seed
	case SubmissionTransactions:
		n, err := r.ReadVecLen(MaxSubmissionTxCount)
		if err != nil {
			return Submission{}, err
		}
		if n == 0 {
			return Submission{}, ErrLengthCap
		}
		for i := uint32(0); i < n; i++ {
			tx, err := DecodeTransaction(r)
			if err != nil {
				return Submission{}, err
			}
			s.Transactions = append(s.Transactions, tx)
		}
	case SubmissionSummary:
		summary, err := DecodeSummary(r)
		if err != nil {
			return Submission{}, err
		}
		s.Summary = summary
	default:
		return Submission{}, ErrUnknownTag
	}
	return s, nil
}

// Pending is delivered on the mempool subscription stream.
type Pending struct {
	Transactions []Transaction
}

// UpdatesFilterTag tags the subscription filter union.
type UpdatesFilterTag uint8

const (
	UpdatesFilterAll UpdatesFilterTag = iota
	UpdatesFilterAccount
)

type UpdatesFilter struct {
	Tag    UpdatesFilterTag
	PubKey []byte
}

func (f UpdatesFilter) Encode() []byte {
	w := NewWriter()
	w.WriteU8(uint8(f.Tag))
	if f.Tag == UpdatesFilterAccount {
		w.WriteBytes(f.PubKey)
	}
	return w.Bytes()
}

func DecodeUpdatesFilter(r *Reader) (UpdatesFilter, error) {
	tag, err := r.ReadU8()
	if err != nil {
		return UpdatesFilter{}, err
	}
	f := UpdatesFilter{Tag: UpdatesFilterTag(tag)}
	if f.Tag == UpdatesFilterAccount {
		pub, err := r.ReadBytes(64)
		if err != nil {
			return UpdatesFilter{}, err
		}
		f.PubKey = pub
	} else if f.Tag != UpdatesFilterAll {
		return UpdatesFilter{}, ErrUnknownTag
	}
	return f, nil
}

// UpdateTag tags the {Seed, Events, FilteredEvents} subscription union.
type UpdateTag uint8

const (
	UpdateSeed UpdateTag = iota
	UpdateEvents
	UpdateFilteredEvents
)

type Update struct {
	Tag            UpdateTag
	Seed           Seed
	Events         Events
	FilteredEvents FilteredEvents
}
