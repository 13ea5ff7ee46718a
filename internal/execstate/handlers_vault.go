package execstate

import (
	"math/big"

	"github.com/nullcasino/corechain/internal/codec"
)

// vaultSafe reports whether (collateral, debt) satisfies the debt safety
// invariant 2*debt*P_den <= collateral*P_num, where (P_num,P_den) is the AMM
// spot price (reserve_vusdt, reserve_rng), or 1/1 when the pool is empty
// (spec §3.3 "Vault debt safety"). Widened through big.Int: both products
// can exceed uint64 for realistic collateral and reserve sizes.
func (c handlerCtx) vaultSafe(collateral, debt uint64) bool {
	pool := c.layer.ammPool()
	pNum, pDen := pool.ReserveVUSDT, pool.ReserveRNG
	if pDen == 0 {
		pNum, pDen = 1, 1
	}
	left := new(big.Int).Mul(big.NewInt(2*int64(debt)), big.NewInt(int64(pDen)))
	right := new(big.Int).Mul(big.NewInt(int64(collateral)), big.NewInt(int64(pNum)))
	return left.Cmp(right) <= 0
}

// vaultCreate handles VaultCreate: opens a vault with initial RNG collateral
// and zero debt (spec §3.3, §4.E).
func (c handlerCtx) vaultCreate(instr codec.Instruction) []codec.Event {
	p, ok := c.layer.player(c.public)
	if !ok {
		return one(c.errEvent(0, ErrCodePlayerNotFound, "register first"))
	}
	if _, exists := c.layer.vault(c.public); exists {
		return one(c.errEvent(0, ErrCodeVaultExists, "vault already open"))
	}
	if instr.Amount == 0 {
		return one(c.errEvent(0, ErrCodeAmountZero, "collateral must be nonzero"))
	}
	if p.Chips < instr.Amount {
		return one(c.errEvent(0, ErrCodeInsufficientChips, "insufficient chips for collateral"))
	}
	p.Chips -= instr.Amount
	c.layer.setPlayer(c.public, p)
	c.layer.setVault(c.public, codec.Vault{CollateralRNG: instr.Amount})
	return one(codec.Event{Tag: codec.EventVaultOpened, PlayerPublic: c.public, Amount: instr.Amount})
}

// vaultDeposit handles VaultDeposit: adds RNG collateral to an open vault.
func (c handlerCtx) vaultDeposit(instr codec.Instruction) []codec.Event {
	p, ok := c.layer.player(c.public)
	if !ok {
		return one(c.errEvent(0, ErrCodePlayerNotFound, "register first"))
	}
	v, exists := c.layer.vault(c.public)
	if !exists {
		return one(c.errEvent(0, ErrCodeVaultNotFound, "no open vault"))
	}
	if instr.Amount == 0 {
		return one(c.errEvent(0, ErrCodeAmountZero, "deposit must be nonzero"))
	}
	if p.Chips < instr.Amount {
		return one(c.errEvent(0, ErrCodeInsufficientChips, "insufficient chips"))
	}
	p.Chips -= instr.Amount
	v.CollateralRNG = saturatingAddU64(v.CollateralRNG, instr.Amount)
	c.layer.setPlayer(c.public, p)
	c.layer.setVault(c.public, v)
	return one(codec.Event{Tag: codec.EventVaultOpened, PlayerPublic: c.public, Amount: instr.Amount})
}

// vaultBorrow handles VaultBorrow: mints vUSDT debt against collateral,
// rejecting any borrow that would breach the debt safety ratio.
func (c handlerCtx) vaultBorrow(instr codec.Instruction) []codec.Event {
	p, ok := c.layer.player(c.public)
	if !ok {
		return one(c.errEvent(0, ErrCodePlayerNotFound, "register first"))
	}
	v, exists := c.layer.vault(c.public)
	if !exists {
		return one(c.errEvent(0, ErrCodeVaultNotFound, "no open vault"))
	}
	if instr.AmountVUSDT == 0 {
		return one(c.errEvent(0, ErrCodeAmountZero, "borrow amount must be nonzero"))
	}
	newDebt := saturatingAddU64(v.DebtVUSDT, instr.AmountVUSDT)
	if !c.vaultSafe(v.CollateralRNG, newDebt) {
		return one(c.errEvent(0, ErrCodeVaultUnsafe, "borrow would breach debt safety ratio"))
	}
	v.DebtVUSDT = newDebt
	p.VUSDT = saturatingAddU64(p.VUSDT, instr.AmountVUSDT)
	c.layer.setPlayer(c.public, p)
	c.layer.setVault(c.public, v)
	return one(codec.Event{Tag: codec.EventVaultBorrowed, PlayerPublic: c.public, Amount: instr.AmountVUSDT})
}

// vaultRepay handles VaultRepay: burns vUSDT debt, capped at the outstanding
// balance (excess repayment is rejected rather than silently truncated, so a
// caller's accounting stays exact).
func (c handlerCtx) vaultRepay(instr codec.Instruction) []codec.Event {
	p, ok := c.layer.player(c.public)
	if !ok {
		return one(c.errEvent(0, ErrCodePlayerNotFound, "register first"))
	}
	v, exists := c.layer.vault(c.public)
	if !exists {
		return one(c.errEvent(0, ErrCodeVaultNotFound, "no open vault"))
	}
	if instr.AmountVUSDT == 0 {
		return one(c.errEvent(0, ErrCodeAmountZero, "repay amount must be nonzero"))
	}
	if instr.AmountVUSDT > v.DebtVUSDT {
		return one(c.errEvent(0, ErrCodeVaultOverRepay, "repay exceeds outstanding debt"))
	}
	if p.VUSDT < instr.AmountVUSDT {
		return one(c.errEvent(0, ErrCodeInsufficientChips, "insufficient vUSDT to repay"))
	}
	p.VUSDT -= instr.AmountVUSDT
	v.DebtVUSDT -= instr.AmountVUSDT
	c.layer.setPlayer(c.public, p)
	c.layer.setVault(c.public, v)
	return one(codec.Event{Tag: codec.EventVaultRepaid, PlayerPublic: c.public, Amount: instr.AmountVUSDT})
}
