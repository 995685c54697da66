package gamification

import "testing"

func TestCalculateLevel(t *testing.T) {
	cases := []struct {
		xp   int
		want int
	}{
		{0, 0},
		{99, 0},
		{100, 1},
		{399, 1},
		{400, 2},
		{899, 2},
		{900, 3},
		{2500, 5},
		{10000, 10},
	}

	for _, c := range cases {
		if got := CalculateLevel(c.xp); got != c.want {
			t.Errorf("CalculateLevel(%d) = %d, want %d", c.xp, got, c.want)
		}
	}
}

func TestRankBoundaries(t *testing.T) {
	cases := []struct {
		xp   int
		want string
	}{
		{0, "Novato"},
		{500, "Novato"},
		{501, "Entusiasta"},
		{2000, "Entusiasta"},
		{2001, "Atleta"},
		{4999, "Atleta"},
		{5000, "Master Pro"},
		{99999, "Master Pro"},
	}

	for _, c := range cases {
		if got := RankOf(c.xp); got.Name != c.want {
			t.Errorf("RankOf(%d) = %s, want %s", c.xp, got.Name, c.want)
		}
	}
}

func TestRankIcons(t *testing.T) {
	if RankOf(0).Icon != "🥚" {
		t.Errorf("unexpected Novato icon %q", RankOf(0).Icon)
	}
	if RankOf(1000).Icon != "🥗" {
		t.Errorf("unexpected Entusiasta icon %q", RankOf(1000).Icon)
	}
	if RankOf(3000).Icon != "💪" {
		t.Errorf("unexpected Atleta icon %q", RankOf(3000).Icon)
	}
	if RankOf(5000).Icon != "👑" {
		t.Errorf("unexpected Master Pro icon %q", RankOf(5000).Icon)
	}
}

func TestLevelProgress(t *testing.T) {
	// Level 1 spans 100..400, so 250 XP is halfway.
	if got := LevelProgress(250); got != 50 {
		t.Errorf("LevelProgress(250) = %v, want 50", got)
	}

	if got := LevelProgress(100); got != 0 {
		t.Errorf("LevelProgress(100) = %v, want 0", got)
	}

	if got := LevelProgress(0); got != 0 {
		t.Errorf("LevelProgress(0) = %v, want 0", got)
	}

	// Never exceeds the clamp.
	for _, xp := range []int{50, 399, 400, 4999, 5000, 123456} {
		got := LevelProgress(xp)
		if got < 0 || got > 100 {
			t.Errorf("LevelProgress(%d) = %v out of [0,100]", xp, got)
		}
	}
}
