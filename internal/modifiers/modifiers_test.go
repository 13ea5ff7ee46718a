package modifiers

import "testing"

func TestApplyShieldDouble(t *testing.T) {
	shields := uint32(1)
	doubles := uint32(1)
	activeShield := true
	activeDouble := false
	f := PlayerFlags{Shields: &shields, Doubles: &doubles, ActiveShield: &activeShield, ActiveDouble: &activeDouble}

	got := ApplyShieldDouble(-50, f)
	if got != 0 {
		t.Fatalf("shield should zero a loss, got %d", got)
	}
	if shields != 0 {
		t.Fatalf("shield should be decremented")
	}
	if activeShield {
		t.Fatalf("active shield should be cleared")
	}
}

func TestApplyShieldDoubleWin(t *testing.T) {
	doubles := uint32(2)
	activeDouble := true
	f := PlayerFlags{Doubles: &doubles, ActiveDouble: &activeDouble}
	got := ApplyShieldDouble(100, f)
	if got != 200 {
		t.Fatalf("double should 2x a win, got %d", got)
	}
	if doubles != 1 {
		t.Fatalf("doubles should decrement, got %d", doubles)
	}
}

func TestApplyHiLoStreakMultiplierZeroPayout(t *testing.T) {
	if got := ApplyHiLoStreakMultiplier(0, 5, true); got != 0 {
		t.Fatalf("got %d", got)
	}
}

func TestApplyHiLoStreakMultiplierBonus(t *testing.T) {
	base := ApplyHiLoStreakMultiplier(1000, 0, false)
	withStreak := ApplyHiLoStreakMultiplier(1000, 3, false)
	if withStreak <= base {
		t.Fatalf("expected streak to increase payout: base=%d streak=%d", base, withStreak)
	}
	withAce := ApplyHiLoStreakMultiplier(1000, 0, true)
	if withAce <= base {
		t.Fatalf("expected ace bonus to increase payout")
	}
}
