package execstate

import (
	"math/big"

	"github.com/nullcasino/corechain/internal/codec"
)

// isqrtProduct returns floor(sqrt(a*b)), widening through big.Int so the
// intermediate product never overflows uint64.
func isqrtProduct(a, b uint64) uint64 {
	product := new(big.Int).Mul(new(big.Int).SetUint64(a), new(big.Int).SetUint64(b))
	return new(big.Int).Sqrt(product).Uint64()
}

// ammAddLiquidity handles AmmAddLiquidity: constant-product deposit with
// the MINIMUM_LIQUIDITY permanent burn on first deposit (spec §3.3, §4.E
// AMM algorithm).
func (c handlerCtx) ammAddLiquidity(instr codec.Instruction) []codec.Event {
	p, ok := c.layer.player(c.public)
	if !ok {
		return one(c.errEvent(0, ErrCodePlayerNotFound, "register first"))
	}
	if instr.Amount == 0 || instr.AmountVUSDT == 0 {
		return one(c.errEvent(0, ErrCodeAmountZero, "both amounts must be nonzero"))
	}
	if p.Chips < instr.Amount || p.VUSDT < instr.AmountVUSDT {
		return one(c.errEvent(0, ErrCodeInsufficientChips, "insufficient balance for deposit"))
	}

	pool := c.layer.ammPool()
	var minted uint64
	if pool.TotalShares == 0 {
		product := isqrtProduct(instr.Amount, instr.AmountVUSDT)
		if product <= MinimumLiquidity {
			return one(c.errEvent(0, ErrCodeAmmInsufficientLiquidity, "initial deposit below minimum liquidity"))
		}
		minted = product - MinimumLiquidity
		pool.TotalShares = MinimumLiquidity
	} else {
		fromRNG := instr.Amount * pool.TotalShares / pool.ReserveRNG
		fromVUSDT := instr.AmountVUSDT * pool.TotalShares / pool.ReserveVUSDT
		minted = fromRNG
		if fromVUSDT < minted {
			minted = fromVUSDT
		}
		if minted == 0 {
			return one(c.errEvent(0, ErrCodeAmmInsufficientLiquidity, "deposit too small to mint shares"))
		}
	}

	pool.ReserveRNG += instr.Amount
	pool.ReserveVUSDT += instr.AmountVUSDT
	pool.TotalShares += minted
	c.layer.setAmmPool(pool)

	p.Chips -= instr.Amount
	p.VUSDT -= instr.AmountVUSDT
	c.layer.setPlayer(c.public, p)
	c.layer.setLpBalance(c.public, c.layer.lpBalance(c.public)+minted)

	return one(codec.Event{Tag: codec.EventAmmLiquidityAdded, PlayerPublic: c.public, Amount: minted})
}

// ammRemoveLiquidity handles AmmRemoveLiquidity: proportional withdrawal
// against the caller's LP share balance.
func (c handlerCtx) ammRemoveLiquidity(instr codec.Instruction) []codec.Event {
	if instr.Shares == 0 {
		return one(c.errEvent(0, ErrCodeAmountZero, "shares must be nonzero"))
	}
	have := c.layer.lpBalance(c.public)
	if have < instr.Shares {
		return one(c.errEvent(0, ErrCodeAmmInsufficientShares, "insufficient LP shares"))
	}
	pool := c.layer.ammPool()
	if pool.TotalShares == 0 {
		return one(c.errEvent(0, ErrCodeAmmPoolEmpty, "pool is empty"))
	}

	outRNG := instr.Shares * pool.ReserveRNG / pool.TotalShares
	outVUSDT := instr.Shares * pool.ReserveVUSDT / pool.TotalShares
	remaining := pool.TotalShares - instr.Shares
	if remaining != 0 && remaining < MinimumLiquidity {
		return one(c.errEvent(0, ErrCodeAmmInsufficientLiquidity, "withdrawal would breach minimum liquidity"))
	}

	pool.ReserveRNG -= outRNG
	pool.ReserveVUSDT -= outVUSDT
	pool.TotalShares = remaining
	c.layer.setAmmPool(pool)
	c.layer.setLpBalance(c.public, have-instr.Shares)

	p, _ := c.layer.player(c.public)
	p.Chips = saturatingAddU64(p.Chips, outRNG)
	p.VUSDT = saturatingAddU64(p.VUSDT, outVUSDT)
	c.layer.setPlayer(c.public, p)

	return one(codec.Event{Tag: codec.EventAmmLiquidityRemoved, PlayerPublic: c.public, Amount: instr.Shares})
}

// ammSwap handles AmmSwap: constant-product swap with fee and, on RNG sell
// side, a burn tax (spec §4.E AMM algorithm, bit-exact).
func (c handlerCtx) ammSwap(instr codec.Instruction) []codec.Event {
	p, ok := c.layer.player(c.public)
	if !ok {
		return one(c.errEvent(0, ErrCodePlayerNotFound, "register first"))
	}
	if instr.Amount == 0 {
		return one(c.errEvent(0, ErrCodeAmountZero, "swap amount must be nonzero"))
	}
	pool := c.layer.ammPool()
	if pool.TotalShares == 0 {
		return one(c.errEvent(0, ErrCodeAmmPoolEmpty, "pool is empty"))
	}

	amountIn := instr.Amount
	var reserveIn, reserveOut *uint64
	if instr.IsBuyingRNG {
		reserveIn, reserveOut = &pool.ReserveVUSDT, &pool.ReserveRNG
		if p.VUSDT < amountIn {
			return one(c.errEvent(0, ErrCodeInsufficientChips, "insufficient vUSDT"))
		}
	} else {
		reserveIn, reserveOut = &pool.ReserveRNG, &pool.ReserveVUSDT
		if p.Chips < amountIn {
			return one(c.errEvent(0, ErrCodeInsufficientChips, "insufficient chips"))
		}
	}

	house := c.layer.house()
	var burn uint64
	if !instr.IsBuyingRNG {
		burn = amountIn * uint64(AmmSellTaxBPS) / BPSDenominator
		amountIn -= burn
		house.TotalBurned = saturatingAddU64(house.TotalBurned, burn)
	}
	fee := amountIn * uint64(pool.FeeBPS) / BPSDenominator
	netIn := amountIn - fee

	// Widen through big.Int: reserve*10000 and net_in*10000*reserve_out both
	// comfortably exceed uint64 for realistic reserve sizes (spec §4.E AMM
	// algorithm is specified as exact integer math with no overflow).
	scaledNetIn := new(big.Int).Mul(big.NewInt(int64(netIn)), big.NewInt(int64(BPSDenominator)))
	numerator := new(big.Int).Mul(scaledNetIn, big.NewInt(int64(*reserveOut)))
	denominator := new(big.Int).Add(
		new(big.Int).Mul(big.NewInt(int64(*reserveIn)), big.NewInt(int64(BPSDenominator))),
		scaledNetIn,
	)
	if denominator.Sign() == 0 {
		return one(c.errEvent(0, ErrCodeAmmPoolEmpty, "pool reserves exhausted"))
	}
	amountOut := new(big.Int).Quo(numerator, denominator).Uint64()
	if amountOut < instr.MinOut {
		return one(c.errEvent(0, ErrCodeAmmSlippage, "output below minimum"))
	}

	*reserveIn += amountIn
	*reserveOut -= amountOut
	house.AccumulatedFees = saturatingAddU64(house.AccumulatedFees, fee)
	c.layer.setHouse(house)
	c.layer.setAmmPool(pool)

	if instr.IsBuyingRNG {
		p.VUSDT -= instr.Amount
		p.Chips = saturatingAddU64(p.Chips, amountOut)
	} else {
		p.Chips -= instr.Amount
		p.VUSDT = saturatingAddU64(p.VUSDT, amountOut)
	}
	c.layer.setPlayer(c.public, p)

	return one(codec.Event{Tag: codec.EventAmmSwapped, PlayerPublic: c.public, Amount: amountOut})
}
