package codec

import "crypto/sha256"

// KeyTag enumerates the Key union's wire tags. Tag values are fixed and
// must stay stable across releases.
type KeyTag uint8

const (
	KeyTagAccount KeyTag = iota
	KeyTagCasinoPlayer
	KeyTagCasinoSession
	KeyTagCasinoLeaderboard
	KeyTagHouse
	KeyTagAmmPool
	KeyTagLpBalance
	KeyTagStaker
	KeyTagVault
	KeyTagTournament
	KeyTagCommit
)

// Key is the tagged union used as the primary key space. Only one of the
// fields is meaningful, selected by Tag.
type Key struct {
	Tag       KeyTag
	PublicKey []byte // Account, CasinoPlayer, LpBalance, Staker, Vault
	SessionID uint64 // CasinoSession
	TournID   uint64 // Tournament
}

func AccountKey(pub []byte) Key          { return Key{Tag: KeyTagAccount, PublicKey: pub} }
func CasinoPlayerKey(pub []byte) Key     { return Key{Tag: KeyTagCasinoPlayer, PublicKey: pub} }
func CasinoSessionKey(id uint64) Key     { return Key{Tag: KeyTagCasinoSession, SessionID: id} }
func LpBalanceKey(pub []byte) Key        { return Key{Tag: KeyTagLpBalance, PublicKey: pub} }
func StakerKey(pub []byte) Key           { return Key{Tag: KeyTagStaker, PublicKey: pub} }
func VaultKey(pub []byte) Key            { return Key{Tag: KeyTagVault, PublicKey: pub} }
func TournamentKey(id uint64) Key        { return Key{Tag: KeyTagTournament, TournID: id} }
func CasinoLeaderboardKey() Key          { return Key{Tag: KeyTagCasinoLeaderboard} }
func HouseKey() Key                      { return Key{Tag: KeyTagHouse} }
func AmmPoolKey() Key                    { return Key{Tag: KeyTagAmmPool} }
func CommitKey() Key                     { return Key{Tag: KeyTagCommit} }

// Encode produces the canonical byte encoding of the key, the preimage of
// its store-addressing digest.
func (k Key) Encode() []byte {
	w := NewWriter()
	w.WriteU8(uint8(k.Tag))
	switch k.Tag {
	case KeyTagAccount, KeyTagCasinoPlayer, KeyTagLpBalance, KeyTagStaker, KeyTagVault:
		w.WriteBytes(k.PublicKey)
	case KeyTagCasinoSession:
		w.WriteU64(k.SessionID)
	case KeyTagTournament:
		w.WriteU64(k.TournID)
	case KeyTagCasinoLeaderboard, KeyTagHouse, KeyTagAmmPool, KeyTagCommit:
		// no payload
	}
	return w.Bytes()
}

// Hash is the 32-byte SHA256 digest used to address the authenticated
// store's key space.
func (k Key) Hash() [32]byte { return sha256.Sum256(k.Encode()) }

func DecodeKey(r *Reader) (Key, error) {
	tag, err := r.ReadU8()
	if err != nil {
		return Key{}, err
	}
	k := Key{Tag: KeyTag(tag)}
	switch k.Tag {
	case KeyTagAccount, KeyTagCasinoPlayer, KeyTagLpBalance, KeyTagStaker, KeyTagVault:
		pub, err := r.ReadBytes(64)
		if err != nil {
			return Key{}, err
		}
		k.PublicKey = pub
	case KeyTagCasinoSession:
		id, err := r.ReadU64()
		if err != nil {
			return Key{}, err
		}
		k.SessionID = id
	case KeyTagTournament:
		id, err := r.ReadU64()
		if err != nil {
			return Key{}, err
		}
		k.TournID = id
	case KeyTagCasinoLeaderboard, KeyTagHouse, KeyTagAmmPool, KeyTagCommit:
		// no payload
	default:
		return Key{}, ErrUnknownTag
	}
	return k, nil
}
