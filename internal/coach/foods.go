package coach

import (
	"math"
	"sort"
	"strings"
)

const (
	focusProtein  = "protein"
	focusCarbs    = "carbs"
	focusFat      = "fat"
	focusCalories = "calories"
)

// Generic-catalog acceptance thresholds for macro suggestions, per 100 g.
const (
	genericMinKcal    = 30.0
	minProteinDensity = 3.0
	minCarbsDensity   = 5.0
	minFatDensity     = 3.0
)

// Portion sizing.
const (
	macroCoverageRatio   = 0.7 // close 70% of the macro gap in one portion
	calorieCoverageRatio = 0.8 // close 80% of a plain calorie gap
	portionKcalHeadroom  = 1.1 // portion may not exceed gap kcal by more than 10%
	firstMealMinKcal     = 200.0
	firstMealMaxKcal     = 600.0
	portionMinGrams      = 50.0
	portionMaxGrams      = 500.0
)

// Seasonings and garnish vegetables never suggested to close a macro gap.
var macroSearchDenylist = []string{
	"zanahoria", "lechuga", "apio", "pepino", "tomate", "cebolla", "ajo",
	"perejil", "cilantro", "sal", "pimienta", "condimento", "aderezo", "salsa",
}

var focusTags = map[string]string{
	focusProtein: "proteina",
	focusCarbs:   "carbohidrato",
	focusFat:     "grasa",
}

func isDenylisted(c FoodCandidate) bool {
	name := strings.ToLower(c.Name)
	for _, w := range macroSearchDenylist {
		if strings.Contains(name, w) {
			return true
		}
	}
	return false
}

func macroDensity(c FoodCandidate, focus string) float64 {
	switch focus {
	case focusProtein:
		return c.ProteinGPer100g
	case focusCarbs:
		return c.CarbsGPer100g
	case focusFat:
		return c.FatGPer100g
	default:
		return 0
	}
}

func minDensityFor(focus string) float64 {
	switch focus {
	case focusProtein:
		return minProteinDensity
	case focusCarbs:
		return minCarbsDensity
	case focusFat:
		return minFatDensity
	default:
		return 0
	}
}

// acceptableForMacro keeps candidates with something to offer in the
// focus macro that the diet allows. Generic-catalog entries additionally
// must look like real food: enough calories, meaningful density in the
// focus macro, and not a seasoning. The user's own recipes and history
// are trusted as-is.
func acceptableForMacro(c FoodCandidate, focus, dietPref string) bool {
	if macroDensity(c, focus) <= 0 {
		return false
	}
	if !matchesDietaryPreference(dietPref, c) {
		return false
	}
	if c.Source != SourceGeneric {
		return true
	}
	if c.KcalPer100g < genericMinKcal {
		return false
	}
	if macroDensity(c, focus) < minDensityFor(focus) {
		return false
	}
	return !isDenylisted(c)
}

// acceptableForCalories is the same split for the plain-calorie search.
func acceptableForCalories(c FoodCandidate, dietPref string) bool {
	if c.KcalPer100g <= 0 {
		return false
	}
	if !matchesDietaryPreference(dietPref, c) {
		return false
	}
	if c.Source != SourceGeneric {
		return true
	}
	return c.KcalPer100g >= genericMinKcal && !isDenylisted(c)
}

func filterForMacro(in []FoodCandidate, focus, dietPref string) []FoodCandidate {
	out := make([]FoodCandidate, 0, len(in))
	for _, c := range in {
		if acceptableForMacro(c, focus, dietPref) {
			out = append(out, c)
		}
	}
	return out
}

// sortByMacroDensity orders best-first: highest density in the focus
// macro, with ties broken by most recently eaten.
func sortByMacroDensity(cands []FoodCandidate, focus string) {
	sort.SliceStable(cands, func(i, j int) bool {
		di, dj := macroDensity(cands[i], focus), macroDensity(cands[j], focus)
		if di != dj {
			return di > dj
		}
		return cands[i].LastEatenDate > cands[j].LastEatenDate
	})
}

// firstMealScore ranks candidates for the first meal of the day: protein
// counts double, calories keep very light foods from winning.
func firstMealScore(c FoodCandidate) float64 {
	return c.ProteinGPer100g*2 + c.KcalPer100g/50
}

// acceptableFirstMeal rejects foods too light to anchor a meal.
func acceptableFirstMeal(c FoodCandidate, dietPref string) bool {
	if c.KcalPer100g < 40 {
		return false
	}
	if c.ProteinGPer100g < 1 && c.KcalPer100g < 80 {
		return false
	}
	return matchesDietaryPreference(dietPref, c)
}

func pickFirstMeal(cands []FoodCandidate, dietPref string) (FoodCandidate, bool) {
	var best FoodCandidate
	bestScore := math.Inf(-1)
	found := false
	for _, c := range cands {
		if !acceptableFirstMeal(c, dietPref) {
			continue
		}
		if s := firstMealScore(c); s > bestScore {
			best, bestScore, found = c, s, true
		}
	}
	return best, found
}

// firstMealPortion sizes the meal at a quarter of the daily target,
// clamped to a sensible single-meal range.
func firstMealPortion(c FoodCandidate, targetKcal float64) (grams, kcal float64) {
	mealKcal := clamp(targetKcal/4, firstMealMinKcal, firstMealMaxKcal)
	if c.KcalPer100g <= 0 {
		return portionMinGrams, 0
	}
	grams = clamp(mealKcal/c.KcalPer100g*100, portionMinGrams, portionMaxGrams)
	grams = math.Round(grams)
	return grams, math.Round(grams * c.KcalPer100g / 100)
}

// macroPortion sizes a portion to close most of the macro gap without
// blowing past the remaining calorie budget.
func macroPortion(c FoodCandidate, focus string, gapG, calorieGap float64) (grams, kcal float64) {
	density := macroDensity(c, focus)
	if density <= 0 {
		return 0, 0
	}
	grams = gapG * macroCoverageRatio * 100 / density
	kcal = grams * c.KcalPer100g / 100

	if maxKcal := calorieGap * portionKcalHeadroom; c.KcalPer100g > 0 && kcal > maxKcal {
		grams = maxKcal * 100 / c.KcalPer100g
		kcal = maxKcal
	}

	grams = math.Round(grams)
	return grams, math.Round(grams * c.KcalPer100g / 100)
}

// caloriePortion sizes a portion to cover most of a plain calorie gap.
func caloriePortion(c FoodCandidate, calorieGap float64) (grams, kcal float64) {
	if c.KcalPer100g <= 0 {
		return 0, 0
	}
	grams = clamp(calorieGap*calorieCoverageRatio/c.KcalPer100g*100, portionMinGrams, portionMaxGrams)
	grams = math.Round(grams)
	return grams, math.Round(grams * c.KcalPer100g / 100)
}

// portionUnits converts grams to serving units when the food defines one.
// Below a single unit the count snaps to quarters, above to tenths.
func portionUnits(c FoodCandidate, grams float64) (*float64, *string) {
	if c.GramsPerUnit == nil || *c.GramsPerUnit <= 0 || c.UnitLabel == nil {
		return nil, nil
	}
	u := grams / *c.GramsPerUnit
	if u < 1 {
		u = math.Round(u*4) / 4
		if u < 0.25 {
			u = 0.25
		}
	} else {
		u = math.Round(u*10) / 10
	}
	return &u, c.UnitLabel
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
