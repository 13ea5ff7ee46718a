package cards

import "testing"

func TestGameRngDeterministic(t *testing.T) {
	seed := []byte("seed-bytes")
	a := NewGameRng(seed, 7, 1)
	b := NewGameRng(seed, 7, 1)
	for i := 0; i < 100; i++ {
		if a.NextU8() != b.NextU8() {
			t.Fatalf("byte stream diverged at %d", i)
		}
	}
}

func TestGameRngDiffersBySession(t *testing.T) {
	seed := []byte("seed-bytes")
	a := NewGameRng(seed, 7, 1)
	b := NewGameRng(seed, 8, 1)
	same := true
	for i := 0; i < 32; i++ {
		if a.NextU8() != b.NextU8() {
			same = false
			break
		}
	}
	if same {
		t.Fatalf("expected divergent streams for different session ids")
	}
}

func TestNextBoundedRange(t *testing.T) {
	r := NewGameRng([]byte("x"), 1, 1)
	for i := 0; i < 1000; i++ {
		if v := r.NextBounded(37); v >= 37 {
			t.Fatalf("NextBounded(37) out of range: %d", v)
		}
	}
}

func TestRollDieAndRoulette(t *testing.T) {
	r := NewGameRng([]byte("y"), 2, 1)
	for i := 0; i < 500; i++ {
		if d := r.RollDie(); d < 1 || d > 6 {
			t.Fatalf("RollDie out of range: %d", d)
		}
		if s := r.SpinRoulette(); s > 36 {
			t.Fatalf("SpinRoulette out of range: %d", s)
		}
	}
}

func TestCreateDeckIsPermutation(t *testing.T) {
	r := NewGameRng([]byte("z"), 3, 1)
	deck := r.CreateDeck()
	if len(deck) != 52 {
		t.Fatalf("want 52 cards, got %d", len(deck))
	}
	seen := map[Card]bool{}
	for _, c := range deck {
		if seen[c] {
			t.Fatalf("duplicate card %d", c)
		}
		seen[c] = true
	}
}

func TestCreateDeckExcluding(t *testing.T) {
	r := NewGameRng([]byte("z"), 3, 1)
	deck := r.CreateDeckExcluding([]Card{0, 5, 10})
	if len(deck) != 49 {
		t.Fatalf("want 49 cards, got %d", len(deck))
	}
	for _, c := range deck {
		if c == 0 || c == 5 || c == 10 {
			t.Fatalf("excluded card %d present", c)
		}
	}
}
