package coach

import (
	"math"
	"math/rand"
	"sort"
)

const (
	minMET      = 2.0
	nightMaxMET = 4.5
)

// isNightHour covers 20:00 through 04:59, when high-intensity exercise
// is not suggested.
func isNightHour(hour int) bool {
	return hour >= 20 || hour < 5
}

// filterExercisesByHour keeps exercises whose intensity fits the time of
// day. If nothing survives, the full catalog is returned so the user
// always gets an option.
func filterExercisesByHour(all []ExerciseOption, hour int) []ExerciseOption {
	out := make([]ExerciseOption, 0, len(all))
	for _, e := range all {
		if e.METValue < minMET {
			continue
		}
		if isNightHour(hour) && e.METValue > nightMaxMET {
			continue
		}
		out = append(out, e)
	}
	if len(out) == 0 {
		return all
	}
	return out
}

// minutesToBurn estimates minutes of an activity needed to burn the
// surplus, using the standard MET formula (MET * 3.5 * kg / 200 kcal
// per minute), rounded to one decimal with a one-minute floor. The
// engine guarantees a positive weight before this point.
func minutesToBurn(surplusKcal, met, weightKg float64) float64 {
	perMinute := met * 3.5 * weightKg / 200
	if perMinute <= 0 {
		return 1
	}
	minutes := math.Round(surplusKcal/perMinute*10) / 10
	if minutes < 1 {
		return 1
	}
	return minutes
}

// pickExerciseOptions selects up to two exercises at random from the
// hour-filtered catalog and fills in the minutes, shortest first.
func pickExerciseOptions(all []ExerciseOption, hour int, surplusKcal, weightKg float64, rnd *rand.Rand) []ExerciseOption {
	pool := filterExercisesByHour(all, hour)

	shuffled := make([]ExerciseOption, len(pool))
	copy(shuffled, pool)
	rnd.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	n := len(shuffled)
	if n > 2 {
		n = 2
	}
	picked := shuffled[:n]

	for i := range picked {
		picked[i].Minutes = minutesToBurn(surplusKcal, picked[i].METValue, weightKg)
	}
	sort.Slice(picked, func(i, j int) bool {
		return picked[i].Minutes < picked[j].Minutes
	})
	return picked
}
