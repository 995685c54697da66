package gamification

import "math"

// Rank is a named XP tier.
type Rank struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// CalculateLevel maps accumulated XP to a level: floor(sqrt(xp/100)).
// 0-99 XP is level 0, 100-399 level 1, 400-899 level 2 and so on.
func CalculateLevel(xp int) int {
	if xp <= 0 {
		return 0
	}
	return int(math.Floor(math.Sqrt(float64(xp) / 100)))
}

// RankOf maps accumulated XP to its rank tier.
func RankOf(xp int) Rank {
	switch {
	case xp <= 500:
		return Rank{Name: "Novato", Icon: "🥚"}
	case xp <= 2000:
		return Rank{Name: "Entusiasta", Icon: "🥗"}
	case xp <= 4999:
		return Rank{Name: "Atleta", Icon: "💪"}
	default:
		return Rank{Name: "Master Pro", Icon: "👑"}
	}
}

// LevelProgress returns the percentage into the current level, clamped to [0, 100].
func LevelProgress(xp int) float64 {
	level := CalculateLevel(xp)
	base := level * level * 100
	next := (level + 1) * (level + 1) * 100

	pct := float64(xp-base) / float64(next-base) * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
