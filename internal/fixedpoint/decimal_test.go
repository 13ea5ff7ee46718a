package fixedpoint

import "testing"

func TestFromInt(t *testing.T) {
	if got := FromInt(5).Raw(); got != 50_000 {
		t.Fatalf("got %d", got)
	}
	if got := FromInt(-3).Raw(); got != -30_000 {
		t.Fatalf("got %d", got)
	}
}

func TestFromFrac(t *testing.T) {
	cases := []struct {
		num, den int32
		want     int64
	}{
		{1, 2, 5_000},
		{1, 4, 2_500},
		{3, 4, 7_500},
		{-1, 2, -5_000},
		{-1, 3, -3_333},
		{5, 2, 25_000},
	}
	for _, c := range cases {
		if got := FromFrac(c.num, c.den).Raw(); got != c.want {
			t.Errorf("FromFrac(%d,%d) = %d, want %d", c.num, c.den, got, c.want)
		}
	}
}

func TestToIntRounded(t *testing.T) {
	cases := []struct {
		num, den int32
		want     int32
	}{
		{15499, 10000, 2},
		{15000, 10000, 2},
		{14999, 10000, 1},
		{-15499, 10000, -2},
		{-15000, 10000, -2},
		{-14999, 10000, -1},
	}
	for _, c := range cases {
		if got := FromFrac(c.num, c.den).ToIntRounded(); got != c.want {
			t.Errorf("FromFrac(%d,%d).ToIntRounded() = %d, want %d", c.num, c.den, got, c.want)
		}
	}
}

func TestToU16RoundedClamps(t *testing.T) {
	if got := FromInt(-10000).ToU16Rounded(); got != 0 {
		t.Fatalf("got %d", got)
	}
	if got := FromInt(70000).ToU16Rounded(); got != 0xFFFF {
		t.Fatalf("got %d", got)
	}
}

func TestMulDiv(t *testing.T) {
	a, b := FromInt(10), FromInt(3)
	if got := a.Mul(b).ToIntRounded(); got != 30 {
		t.Fatalf("got %d", got)
	}
	half := FromFrac(1, 2)
	if got := a.Mul(half).ToIntRounded(); got != 5 {
		t.Fatalf("got %d", got)
	}
	quot := a.Div(FromInt(4))
	if quot.Raw() != 25_000 {
		t.Fatalf("got %d", quot.Raw())
	}
	if got := a.DivInt(4).Raw(); got != 25_000 {
		t.Fatalf("got %d", got)
	}
}

func TestDivisionByZeroNeverTraps(t *testing.T) {
	a := FromInt(10)
	if got := a.DivInt(0).Raw(); got != 0 {
		t.Fatalf("got %d", got)
	}
	if got := a.Div(0).Raw(); got != 0 {
		t.Fatalf("got %d", got)
	}
	if got := FromFrac(1, 0).Raw(); got != 0 {
		t.Fatalf("got %d", got)
	}
}
