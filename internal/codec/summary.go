package codec

import "crypto/sha256"

// Seed is the consensus-produced randomness source and block identifier:
// a threshold BLS signature over the view number. Signature
// verification itself lives in internal/threshold, which only needs the
// raw bytes below.
type Seed struct {
	View      uint64
	Signature []byte // BLS_MinSig signature, fixed-size per the curve
}

func (s Seed) Encode() []byte {
	w := NewWriter()
	w.WriteU64(s.View)
	w.WriteBytes(s.Signature)
	return w.Bytes()
}

func DecodeSeed(r *Reader) (Seed, error) {
	var s Seed
	var err error
	if s.View, err = r.ReadU64(); err != nil {
		return Seed{}, err
	}
	if s.Signature, err = r.ReadBytes(192); err != nil {
		return Seed{}, err
	}
	return s, nil
}

// CertificateItem is the signed payload inside a Certificate: a block
// height paired with its digest.
type CertificateItem struct {
	Index  uint64
	Digest [32]byte
}

// Certificate is a BLS threshold aggregate over CertificateItem, verified
// under the master identity.
type Certificate struct {
	Item      CertificateItem
	Signature []byte
}

func (c Certificate) Encode() []byte {
	w := NewWriter()
	w.WriteU64(c.Item.Index)
	w.WriteBytesFixed(c.Item.Digest[:])
	w.WriteBytes(c.Signature)
	return w.Bytes()
}

func DecodeCertificate(r *Reader) (Certificate, error) {
	var c Certificate
	var err error
	if c.Item.Index, err = r.ReadU64(); err != nil {
		return Certificate{}, err
	}
	digest, err := r.ReadBytesFixed(32)
	if err != nil {
		return Certificate{}, err
	}
	copy(c.Item.Digest[:], digest)
	if c.Signature, err = r.ReadBytes(192); err != nil {
		return Certificate{}, err
	}
	return c, nil
}

// Progress bundles the fields a certificate's digest commits to.
type Progress struct {
	View         uint64
	Height       uint64
	StateRoot    [32]byte
	StateStart   uint64
	StateEnd     uint64
	EventsRoot   [32]byte
	EventsStart  uint64
	EventsEnd    uint64
}

// HeightDigest is SHA256(height_be), as referenced by Progress' own
// digest computation.
func HeightDigest(height uint64) [32]byte {
	w := NewWriter()
	w.WriteU64(height)
	return sha256.Sum256(w.Bytes())
}

// Digest is the certificate's signed payload: the hash of the progress'
// canonical encoding.
func (p Progress) Digest() [32]byte {
	return sha256.Sum256(p.Encode())
}

func (p Progress) Encode() []byte {
	w := NewWriter()
	w.WriteU64(p.View)
	w.WriteU64(p.Height)
	hd := HeightDigest(p.Height)
	w.WriteBytesFixed(hd[:])
	w.WriteBytesFixed(p.StateRoot[:])
	w.WriteU64(p.StateStart)
	w.WriteU64(p.StateEnd)
	w.WriteBytesFixed(p.EventsRoot[:])
	w.WriteU64(p.EventsStart)
	w.WriteU64(p.EventsEnd)
	return w.Bytes()
}

func DecodeProgress(r *Reader) (Progress, error) {
	var p Progress
	var err error
	if p.View, err = r.ReadU64(); err != nil {
		return Progress{}, err
	}
	if p.Height, err = r.ReadU64(); err != nil {
		return Progress{}, err
	}
	if _, err = r.ReadBytesFixed(32); err != nil { // height_digest, recomputed on verify
		return Progress{}, err
	}
	sr, err := r.ReadBytesFixed(32)
	if err != nil {
		return Progress{}, err
	}
	copy(p.StateRoot[:], sr)
	if p.StateStart, err = r.ReadU64(); err != nil {
		return Progress{}, err
	}
	if p.StateEnd, err = r.ReadU64(); err != nil {
		return Progress{}, err
	}
	er, err := r.ReadBytesFixed(32)
	if err != nil {
		return Progress{}, err
	}
	copy(p.EventsRoot[:], er)
	if p.EventsStart, err = r.ReadU64(); err != nil {
		return Progress{}, err
	}
	if p.EventsEnd, err = r.ReadU64(); err != nil {
		return Progress{}, err
	}
	return p, nil
}

// ProofOp is one step of a Merkle authentication path: the sibling digest
// and which side it sits on.
type ProofOp struct {
	Sibling [32]byte
	IsLeft  bool
}

// Proof is a Merkle authentication path over a contiguous operation
// range, used both for single-key lookups (against state) and for
// multi-proofs (against events).
type Proof struct {
	Ops   []ProofOp
	Nodes [][32]byte
}

func (p Proof) Encode() []byte {
	w := NewWriter()
	w.WriteU32(uint32(len(p.Ops)))
	for _, op := range p.Ops {
		w.WriteBytesFixed(op.Sibling[:])
		w.WriteBool(op.IsLeft)
	}
	w.WriteU32(uint32(len(p.Nodes)))
	for _, n := range p.Nodes {
		w.WriteBytesFixed(n[:])
	}
	return w.Bytes()
}

func DecodeProof(r *Reader) (Proof, error) {
	var p Proof
	opCount, err := r.ReadVecLen(MaxProofOps)
	if err != nil {
		return Proof{}, err
	}
	for i := uint32(0); i < opCount; i++ {
		sib, err := r.ReadBytesFixed(32)
		if err != nil {
			return Proof{}, err
		}
		isLeft, err := r.ReadBool()
		if err != nil {
			return Proof{}, err
		}
		var op ProofOp
		copy(op.Sibling[:], sib)
		op.IsLeft = isLeft
		p.Ops = append(p.Ops, op)
	}
	nodeCount, err := r.ReadVecLen(MaxProofNodes)
	if err != nil {
		return Proof{}, err
	}
	for i := uint32(0); i < nodeCount; i++ {
		n, err := r.ReadBytesFixed(32)
		if err != nil {
			return Proof{}, err
		}
		var node [32]byte
		copy(node[:], n)
		p.Nodes = append(p.Nodes, node)
	}
	return p, nil
}

// Operation is one committed write extracted from a historical proof: a
// keyed state update, or a keyless event append.
type Operation struct {
	Position uint64
	KeyHash  [32]byte // state only; zero for events
	Value    []byte
}

// Summary adds a historical proof (and its operations) for both stores
// to a Progress/Certificate pair.
type Summary struct {
	Progress        Progress
	Certificate     Certificate
	StateProof      Proof
	StateOps        []Operation
	EventsProof     Proof
	EventsOps       []Operation
}

func (s Summary) Encode() []byte {
	w := NewWriter()
	w.WriteBytesFixed(s.Progress.Encode())
	w.WriteBytesFixed(s.Certificate.Encode())
	w.WriteBytesFixed(s.StateProof.Encode())
	w.WriteU32(uint32(len(s.StateOps)))
	for _, op := range s.StateOps {
		w.WriteU64(op.Position)
		w.WriteBytesFixed(op.KeyHash[:])
		w.WriteBytes(op.Value)
	}
	w.WriteBytesFixed(s.EventsProof.Encode())
	w.WriteU32(uint32(len(s.EventsOps)))
	for _, op := range s.EventsOps {
		w.WriteU64(op.Position)
		w.WriteBytes(op.Value)
	}
	return w.Bytes()
}

const maxOpsBlock = MaxProofOps

func DecodeSummary(r *Reader) (Summary, error) {
	var s Summary
	var err error
	if s.Progress, err = DecodeProgress(r); err != nil {
		return Summary{}, err
	}
	if s.Certificate, err = DecodeCertificate(r); err != nil {
		return Summary{}, err
	}
	if s.StateProof, err = DecodeProof(r); err != nil {
		return Summary{}, err
	}
	n, err := r.ReadVecLen(maxOpsBlock)
	if err != nil {
		return Summary{}, err
	}
	for i := uint32(0); i < n; i++ {
		var op Operation
		if op.Position, err = r.ReadU64(); err != nil {
			return Summary{}, err
		}
		kh, err := r.ReadBytesFixed(32)
		if err != nil {
			return Summary{}, err
		}
		copy(op.KeyHash[:], kh)
		if op.Value, err = r.ReadBytes(4096); err != nil {
			return Summary{}, err
		}
		s.StateOps = append(s.StateOps, op)
	}
	if s.EventsProof, err = DecodeProof(r); err != nil {
		return Summary{}, err
	}
	n, err = r.ReadVecLen(maxOpsBlock)
	if err != nil {
		return Summary{}, err
	}
	for i := uint32(0); i < n; i++ {
		var op Operation
		if op.Position, err = r.ReadU64(); err != nil {
			return Summary{}, err
		}
		if op.Value, err = r.ReadBytes(4096); err != nil {
			return Summary{}, err
		}
		s.EventsOps = append(s.EventsOps, op)
	}
	return s, nil
}

// Lookup answers a single-key query: a value proven at one location
// against state_root.
type Lookup struct {
	Progress    Progress
	Certificate Certificate
	Proof       Proof
	Location    uint64
	Operation   Operation
}

// Events is a contiguous slice of the event log in [start, end).
type Events struct {
	Progress    Progress
	Certificate Certificate
	Start       uint64
	End         uint64
	Entries     []Event
}

// FilteredEventsOp pairs an event-log location with its keyless output,
// as selected by an account filter.
type FilteredEventsOp struct {
	Location uint64
	Output   Event
}

// FilteredEvents is an account-filtered slice within a block, verified
// with a multi-proof against events_root.
type FilteredEvents struct {
	Progress    Progress
	Certificate Certificate
	Proof       Proof
	Ops         []FilteredEventsOp
}
