package coach

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// Calorie gaps up to this size count as on target.
	calorieTolerance = 10.0
	// Macro gaps up to this many grams are ignored.
	macroToleranceG = 5.0
	// An "empty" day: almost no calories and no macro registered yet.
	emptyUserKcal   = 20.0
	emptyUserMacroG = 5.0
	// A macro gap above this widens the search to the full catalog.
	fullScanGapG = 10.0
)

// EngineConfig tunes an Engine; zero values pick sensible defaults.
type EngineConfig struct {
	HistoryDays        int
	GenericSearchLimit int
	Tracer             Tracer
	Rand               *rand.Rand
}

// Engine evaluates a profile's day and produces one recommendation. It
// keeps a per-profile memo so that repeated evaluations of an unchanged
// day are free, and a generation counter so that concurrent evaluations
// never memoize stale results.
type Engine struct {
	foods     FoodCatalog
	exercises ExerciseCatalog
	tracer    Tracer

	historyDays        int
	genericSearchLimit int

	randMu sync.Mutex
	rnd    *rand.Rand

	mu     sync.Mutex
	states map[uuid.UUID]*profileState
}

func NewEngine(foods FoodCatalog, exercises ExerciseCatalog, cfg EngineConfig) *Engine {
	if cfg.HistoryDays <= 0 {
		cfg.HistoryDays = 30
	}
	if cfg.GenericSearchLimit <= 0 {
		cfg.GenericSearchLimit = 50
	}
	if cfg.Tracer == nil {
		cfg.Tracer = NewNopTracer()
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{
		foods:              foods,
		exercises:          exercises,
		tracer:             cfg.Tracer,
		historyDays:        cfg.HistoryDays,
		genericSearchLimit: cfg.GenericSearchLimit,
		rnd:                cfg.Rand,
		states:             make(map[uuid.UUID]*profileState),
	}
}

func (e *Engine) stateFor(profileID uuid.UUID) *profileState {
	e.mu.Lock()
	defer e.mu.Unlock()
	st, ok := e.states[profileID]
	if !ok {
		st = newProfileState()
		e.states[profileID] = st
	}
	return st
}

// Evaluate runs the decision chain for one resolved input.
func (e *Engine) Evaluate(ctx context.Context, scope Scope, input Input) (*Result, error) {
	// Weight and all four targets are required before anything is
	// suggested. Not an error: the profile just is not set up yet.
	if !input.configured() {
		e.tracer.Trace("not_configured",
			zap.String("profile_id", scope.ProfileID.String()),
			zap.Float64("weight_kg", input.Profile.WeightKg))
		return &Result{
			Status:      StatusNotConfigured,
			Kind:        KindNone,
			GeneratedAt: time.Now().UTC(),
		}, nil
	}

	st := e.stateFor(scope.ProfileID)
	gen := st.begin()
	key := memoKey{consumedKcal: input.Consumed.Kcal, targetKcal: input.Target.CaloriesKcal}

	if r, ok := st.lookup(key); ok {
		e.tracer.Trace("memo_hit",
			zap.String("profile_id", scope.ProfileID.String()),
			zap.Float64("consumed_kcal", key.consumedKcal))
		return r, nil
	}

	rec, err := e.decide(ctx, scope, input)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Status:         StatusOK,
		Kind:           KindNone,
		Recommendation: rec,
		GeneratedAt:    time.Now().UTC(),
	}
	if rec != nil {
		res.Kind = rec.Kind()
	}
	if !st.commit(gen, key, res) {
		e.tracer.Trace("evaluation_superseded",
			zap.String("profile_id", scope.ProfileID.String()),
			zap.Uint64("generation", gen))
	}
	return res, nil
}

// decide walks the branches in strict order: empty day, calorie surplus,
// on track, macro gap, plain calorie gap. A nil recommendation with a nil
// error means there is nothing to suggest.
func (e *Engine) decide(ctx context.Context, scope Scope, in Input) (Recommendation, error) {
	if in.Consumed.Kcal < emptyUserKcal &&
		in.Consumed.ProteinG < emptyUserMacroG &&
		in.Consumed.CarbsG < emptyUserMacroG &&
		in.Consumed.FatG < emptyUserMacroG {
		e.tracer.Trace("branch_first_meal", zap.Int("hour", in.Hour))
		return e.firstMeal(ctx, in)
	}

	// Any excess over the target means exercise, never food. Premium
	// profiles get today's recorded activity credited against it here,
	// and only here.
	if excess := in.Consumed.Kcal - in.Target.CaloriesKcal; excess > 0 {
		burned := 0.0
		if in.Profile.IsPremium {
			burned = in.BurnedKcal
		}
		remaining := excess - burned
		if remaining <= 0 {
			e.tracer.Trace("branch_excess_compensated",
				zap.Float64("excess_kcal", excess),
				zap.Float64("burned_kcal", burned))
			return nil, nil
		}
		e.tracer.Trace("branch_exercise",
			zap.Float64("excess_kcal", excess),
			zap.Float64("remaining_kcal", remaining))
		return e.exerciseForSurplus(ctx, in, excess, burned, remaining)
	}

	calorieGap := in.Target.CaloriesKcal - in.Consumed.Kcal
	if calorieGap <= calorieTolerance {
		e.tracer.Trace("branch_on_track", zap.Float64("calorie_gap", calorieGap))
		return OnTrackRecommendation{Message: onTrackMessage()}, nil
	}

	if focus, gapG, ok := e.priorityMacro(in); ok {
		e.tracer.Trace("branch_macro",
			zap.String("focus", focus), zap.Float64("gap_g", gapG))
		return e.macroSuggestion(ctx, scope, in, focus, gapG, calorieGap)
	}

	e.tracer.Trace("branch_calories", zap.Float64("calorie_gap", calorieGap))
	return e.calorieSuggestion(ctx, scope, in, calorieGap)
}

// priorityMacro finds the macro with the largest percentage shortfall.
// Ties keep the earlier macro in protein, carbs, fat order.
func (e *Engine) priorityMacro(in Input) (focus string, gapG float64, ok bool) {
	type macroGap struct {
		focus   string
		gapG    float64
		targetG float64
	}
	gaps := []macroGap{
		{focusProtein, in.Target.ProteinG - in.Consumed.ProteinG, in.Target.ProteinG},
		{focusCarbs, in.Target.CarbsG - in.Consumed.CarbsG, in.Target.CarbsG},
		{focusFat, in.Target.FatG - in.Consumed.FatG, in.Target.FatG},
	}

	bestPct := 0.0
	for _, g := range gaps {
		if g.gapG <= macroToleranceG || g.targetG <= 0 {
			continue
		}
		pct := g.gapG / g.targetG * 100
		if !ok || pct > bestPct {
			focus, gapG, bestPct, ok = g.focus, g.gapG, pct, true
		}
	}
	return focus, gapG, ok
}

// firstMeal proposes the day's opening meal from the generic catalog
// only: a brand-new user has no recipes or history worth consulting.
func (e *Engine) firstMeal(ctx context.Context, in Input) (Recommendation, error) {
	pool, err := e.foods.AllGeneric(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}

	pick, found := pickFirstMeal(pool, in.Profile.DietaryPreference)
	if !found {
		// Nothing in the catalog anchors a meal: no suggestion.
		e.tracer.Trace("first_meal_no_candidates")
		return nil, nil
	}

	grams, kcal := firstMealPortion(pick, in.Target.CaloriesKcal)
	units, unitLabel := portionUnits(pick, grams)
	slot := mealSlotForHour(in.Hour)

	return FirstMealRecommendation{
		Slot:      slot,
		FoodName:  pick.Name,
		Grams:     grams,
		Units:     units,
		UnitLabel: unitLabel,
		Kcal:      kcal,
		Message:   firstMealMessage(slot, pick.Name, portionPhrase(grams, units, unitLabel)),
	}, nil
}

func (e *Engine) exerciseForSurplus(ctx context.Context, in Input, excess, burned, remaining float64) (Recommendation, error) {
	all, err := e.exercises.Exercises(ctx)
	if err != nil || len(all) == 0 {
		return nil, fmt.Errorf("%w: exercise catalog: %v", ErrCatalogUnavailable, err)
	}

	e.randMu.Lock()
	options := pickExerciseOptions(all, in.Hour, remaining, in.Profile.WeightKg, e.rnd)
	e.randMu.Unlock()

	return ExerciseRecommendation{
		SurplusKcal:   excess,
		BurnedKcal:    burned,
		RemainingKcal: remaining,
		Options:       options,
		Message:       exerciseMessage(excess, burned, remaining, in.Hour, options[0]),
	}, nil
}

// macroSuggestion searches tier by tier and stops at the first tier
// that yields an acceptable candidate: the user's own recipes, their
// recent history, tagged generic foods, and for large gaps the full
// generic catalog.
func (e *Engine) macroSuggestion(ctx context.Context, scope Scope, in Input, focus string, gapG, calorieGap float64) (Recommendation, error) {
	diet := in.Profile.DietaryPreference

	tiers := []func() ([]FoodCandidate, error){
		func() ([]FoodCandidate, error) { return e.foods.UserRecipes(ctx, scope) },
		func() ([]FoodCandidate, error) { return e.foods.RecentHistory(ctx, scope, e.historyDays) },
		func() ([]FoodCandidate, error) {
			return e.foods.GenericByTags(ctx, []string{focusTags[focus]}, e.genericSearchLimit)
		},
	}
	if gapG > fullScanGapG {
		tiers = append(tiers, func() ([]FoodCandidate, error) { return e.foods.AllGeneric(ctx) })
	}

	for _, fetch := range tiers {
		cands, err := fetch()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
		}
		cands = filterForMacro(cands, focus, diet)
		if len(cands) == 0 {
			continue
		}
		sortByMacroDensity(cands, focus)
		return e.buildFoodRecommendation(cands[0], focus, gapG, calorieGap, in.Date), nil
	}

	// Nothing matched even the widest search; fall back to calories.
	return e.calorieSuggestion(ctx, scope, in, calorieGap)
}

func (e *Engine) buildFoodRecommendation(pick FoodCandidate, focus string, gapG, calorieGap float64, today string) Recommendation {
	grams, kcal := macroPortion(pick, focus, gapG, calorieGap)
	units, unitLabel := portionUnits(pick, grams)
	recency := candidateRecency(pick, today)

	return FoodRecommendation{
		Focus:     focus,
		GapG:      gapG,
		GapKcal:   calorieGap,
		FoodName:  pick.Name,
		Grams:     grams,
		Units:     units,
		UnitLabel: unitLabel,
		Kcal:      kcal,
		Source:    pick.Source,
		Message:   macroMessage(focus, gapG, pick.Name, portionPhrase(grams, units, unitLabel), recency),
	}
}

// calorieSuggestion handles the no-dominant-macro case: pick something
// the user knows and size it to cover most of the remaining calories.
func (e *Engine) calorieSuggestion(ctx context.Context, scope Scope, in Input, calorieGap float64) (Recommendation, error) {
	diet := in.Profile.DietaryPreference

	tiers := []func() ([]FoodCandidate, error){
		func() ([]FoodCandidate, error) { return e.foods.UserRecipes(ctx, scope) },
		func() ([]FoodCandidate, error) { return e.foods.RecentHistory(ctx, scope, e.historyDays) },
		func() ([]FoodCandidate, error) { return e.foods.AllGeneric(ctx) },
	}

	for _, fetch := range tiers {
		cands, err := fetch()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
		}

		filtered := cands[:0:0]
		for _, c := range cands {
			if acceptableForCalories(c, diet) {
				filtered = append(filtered, c)
			}
		}
		if len(filtered) == 0 {
			continue
		}

		// Densest first keeps the suggested portion realistic.
		sort.SliceStable(filtered, func(i, j int) bool {
			if filtered[i].KcalPer100g != filtered[j].KcalPer100g {
				return filtered[i].KcalPer100g > filtered[j].KcalPer100g
			}
			return filtered[i].LastEatenDate > filtered[j].LastEatenDate
		})

		pick := filtered[0]
		grams, kcal := caloriePortion(pick, calorieGap)
		units, unitLabel := portionUnits(pick, grams)
		recency := candidateRecency(pick, in.Date)

		return FoodRecommendation{
			Focus:     focusCalories,
			GapKcal:   calorieGap,
			FoodName:  pick.Name,
			Grams:     grams,
			Units:     units,
			UnitLabel: unitLabel,
			Kcal:      kcal,
			Source:    pick.Source,
			Message:   calorieMessage(calorieGap, pick.Name, portionPhrase(grams, units, unitLabel), recency),
		}, nil
	}

	return nil, fmt.Errorf("%w: no food candidates", ErrCatalogUnavailable)
}

// candidateRecency renders the "(lo comiste ...)" suffix for history
// candidates; other sources get none.
func candidateRecency(c FoodCandidate, today string) string {
	if c.Source != SourceHistory || c.LastEatenDate == "" || today == "" {
		return ""
	}
	last, err := time.Parse("2006-01-02", c.LastEatenDate)
	if err != nil {
		return ""
	}
	now, err := time.Parse("2006-01-02", today)
	if err != nil {
		return ""
	}
	days := int(now.Sub(last).Hours() / 24)
	return recencyPhrase(days)
}
