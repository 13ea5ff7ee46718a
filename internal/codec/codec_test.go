package codec

import (
	"crypto/ed25519"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeyRoundTrip(t *testing.T) {
	keys := []Key{
		AccountKey([]byte("some-public-key-bytes-padded-64x")),
		CasinoPlayerKey([]byte("some-public-key-bytes-padded-64x")),
		CasinoSessionKey(42),
		CasinoLeaderboardKey(),
		HouseKey(),
		AmmPoolKey(),
		LpBalanceKey([]byte("some-public-key-bytes-padded-64x")),
		StakerKey([]byte("some-public-key-bytes-padded-64x")),
		VaultKey([]byte("some-public-key-bytes-padded-64x")),
		TournamentKey(7),
		CommitKey(),
	}
	for _, k := range keys {
		got, err := DecodeKey(NewReader(k.Encode()))
		if err != nil {
			t.Fatalf("decode key tag %d: %v", k.Tag, err)
		}
		if got.Encode() == nil || string(got.Encode()) != string(k.Encode()) {
			t.Fatalf("round-trip mismatch for tag %d: got %+v want %+v", k.Tag, got, k)
		}
	}
}

func TestKeyDecodeUnknownTagRejected(t *testing.T) {
	w := NewWriter()
	w.WriteU8(255)
	if _, err := DecodeKey(NewReader(w.Bytes())); err != ErrUnknownTag {
		t.Fatalf("expected ErrUnknownTag, got %v", err)
	}
}

func TestInstructionRoundTrip(t *testing.T) {
	instrs := []Instruction{
		{Tag: InstrCasinoRegister, Name: "Alice"},
		{Tag: InstrCasinoDeposit, Amount: 1000},
		{Tag: InstrCasinoStartGame, GameType: 4, Bet: 250, SessionID: 9},
		{Tag: InstrCasinoGameMove, SessionID: 9, Payload: []byte{1, 2, 3}},
		{Tag: InstrCasinoToggleShield},
		{Tag: InstrTournamentJoin, TournamentID: 3},
		{Tag: InstrStake, Amount: 500, Duration: 100},
		{Tag: InstrUnstake},
		{Tag: InstrVaultCreate, Amount: 10_000},
		{Tag: InstrVaultBorrow, AmountVUSDT: 2_000},
		{Tag: InstrAmmSwap, Amount: 10_000, IsBuyingRNG: true, MinOut: 9_000},
		{Tag: InstrAmmAddLiquidity, Amount: 1_000, AmountVUSDT: 1_000},
		{Tag: InstrAmmRemoveLiquidity, Shares: 500},
	}
	for _, instr := range instrs {
		got, err := DecodeInstruction(NewReader(instr.Encode()))
		if err != nil {
			t.Fatalf("decode instruction tag %d: %v", instr.Tag, err)
		}
		if got.Tag != instr.Tag || string(got.Payload) != string(instr.Payload) || got.Name != instr.Name ||
			got.Amount != instr.Amount || got.Bet != instr.Bet || got.SessionID != instr.SessionID ||
			got.GameType != instr.GameType || got.TournamentID != instr.TournamentID || got.Duration != instr.Duration ||
			got.AmountVUSDT != instr.AmountVUSDT || got.IsBuyingRNG != instr.IsBuyingRNG ||
			got.MinOut != instr.MinOut || got.Shares != instr.Shares {
			t.Fatalf("round-trip mismatch for tag %d: got %+v want %+v", instr.Tag, got, instr)
		}
	}
}

func TestInstructionNameOverLengthCapRejected(t *testing.T) {
	instr := Instruction{Tag: InstrCasinoRegister, Name: strings.Repeat("x", MaxNameLength+1)}
	if _, err := DecodeInstruction(NewReader(instr.Encode())); err != ErrLengthCap {
		t.Fatalf("expected ErrLengthCap for a 33-byte name, got %v", err)
	}
}

func TestInstructionPayloadOverLengthCapRejected(t *testing.T) {
	instr := Instruction{Tag: InstrCasinoGameMove, SessionID: 1, Payload: make([]byte, MaxPayloadLength+1)}
	if _, err := DecodeInstruction(NewReader(instr.Encode())); err != ErrLengthCap {
		t.Fatalf("expected ErrLengthCap for a 257-byte payload, got %v", err)
	}
}

func TestTransactionSignVerifyRoundTrip(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	tx := Transaction{Public: pub, Nonce: 3, Instruction: Instruction{Tag: InstrCasinoDeposit, Amount: 100}}
	tx.Sign(priv)
	require.NoError(t, tx.Verify(), "expected valid signature to verify")

	got, err := DecodeTransaction(NewReader(tx.Encode()))
	require.NoError(t, err)
	require.NoError(t, got.Verify(), "expected round-tripped transaction to still verify")
	require.Equal(t, tx.Nonce, got.Nonce)
	require.Equal(t, tx.Instruction.Amount, got.Instruction.Amount)
}

func TestTransactionTamperedSignatureRejected(t *testing.T) {
	pub, priv, _ := ed25519.GenerateKey(nil)
	tx := Transaction{Public: pub, Nonce: 1, Instruction: Instruction{Tag: InstrCasinoDeposit, Amount: 100}}
	tx.Sign(priv)
	tx.Signature[0] ^= 0xFF
	if err := tx.Verify(); err != ErrInvalidSignature {
		t.Fatalf("expected ErrInvalidSignature for a tampered signature, got %v", err)
	}
}

func TestSubmissionTransactionsRoundTrip(t *testing.T) {
	pub, priv, _ := ed25519.GenerateKey(nil)
	tx := Transaction{Public: pub, Nonce: 0, Instruction: Instruction{Tag: InstrCasinoRegister, Name: "Alice"}}
	tx.Sign(priv)
	sub := Submission{Tag: SubmissionTransactions, Transactions: []Transaction{tx}}

	got, err := DecodeSubmission(NewReader(sub.Encode()))
	if err != nil {
		t.Fatalf("decode submission: %v", err)
	}
	if len(got.Transactions) != 1 || got.Transactions[0].Nonce != 0 {
		t.Fatalf("unexpected round-trip: %+v", got)
	}
}

// TestSubmissionOver128TransactionsRejected exercises spec §8.3: a
// Submission::Transactions of 129 entries fails to decode.
func TestSubmissionOver128TransactionsRejected(t *testing.T) {
	pub, priv, _ := ed25519.GenerateKey(nil)
	txs := make([]Transaction, MaxSubmissionTxCount+1)
	for i := range txs {
		tx := Transaction{Public: pub, Nonce: uint64(i), Instruction: Instruction{Tag: InstrCasinoDeposit, Amount: 1}}
		tx.Sign(priv)
		txs[i] = tx
	}
	sub := Submission{Tag: SubmissionTransactions, Transactions: txs}
	if _, err := DecodeSubmission(NewReader(sub.Encode())); err != ErrLengthCap {
		t.Fatalf("expected ErrLengthCap decoding 129 transactions, got %v", err)
	}
}

func TestSubmissionZeroTransactionsRejected(t *testing.T) {
	sub := Submission{Tag: SubmissionTransactions}
	if _, err := DecodeSubmission(NewReader(sub.Encode())); err != ErrLengthCap {
		t.Fatalf("expected ErrLengthCap for an empty transaction batch, got %v", err)
	}
}

func TestUpdatesFilterRoundTrip(t *testing.T) {
	all := UpdatesFilter{Tag: UpdatesFilterAll}
	got, err := DecodeUpdatesFilter(NewReader(all.Encode()))
	if err != nil || got.Tag != UpdatesFilterAll {
		t.Fatalf("expected UpdatesFilterAll round-trip, got %+v err=%v", got, err)
	}

	pub := make([]byte, 32)
	acct := UpdatesFilter{Tag: UpdatesFilterAccount, PubKey: pub}
	got, err = DecodeUpdatesFilter(NewReader(acct.Encode()))
	if err != nil || got.Tag != UpdatesFilterAccount || string(got.PubKey) != string(pub) {
		t.Fatalf("expected UpdatesFilterAccount round-trip, got %+v err=%v", got, err)
	}
}

func TestAccountPlayerAmmPoolRoundTrip(t *testing.T) {
	acc := Account{Nonce: 12}
	gotAcc, err := DecodeAccount(NewReader(acc.Encode()))
	if err != nil || gotAcc != acc {
		t.Fatalf("Account round-trip mismatch: got %+v err=%v", gotAcc, err)
	}

	player := Player{Name: "Bob", Chips: 5000, VUSDT: 10, Shields: 2}
	gotPlayer, err := DecodePlayer(NewReader(player.Encode()))
	if err != nil || gotPlayer.Name != player.Name || gotPlayer.Chips != player.Chips {
		t.Fatalf("Player round-trip mismatch: got %+v err=%v", gotPlayer, err)
	}

	pool := AmmPool{ReserveRNG: 1_000_000, ReserveVUSDT: 1_000_000, TotalShares: 1_000_000, FeeBPS: 30, SellTaxBPS: 500}
	gotPool, err := DecodeAmmPool(NewReader(pool.Encode()))
	if err != nil || gotPool != pool {
		t.Fatalf("AmmPool round-trip mismatch: got %+v err=%v", gotPool, err)
	}
}
