package coach

import (
	"context"
	"sort"
	"time"

	"github.com/kaloria/coach-hub/internal/storage"
)

// storageFoodCatalog adapts the foods and log stores to the engine's
// candidate model.
type storageFoodCatalog struct {
	foods storage.FoodsStorage
	logs  storage.FoodLogStorage
}

// NewStorageFoodCatalog builds a FoodCatalog over the persistence layer.
func NewStorageFoodCatalog(foods storage.FoodsStorage, logs storage.FoodLogStorage) FoodCatalog {
	return &storageFoodCatalog{foods: foods, logs: logs}
}

func (c *storageFoodCatalog) UserRecipes(ctx context.Context, scope Scope) ([]FoodCandidate, error) {
	recipes, err := c.foods.ListUserFoods(ctx, scope.OwnerUserID, scope.ProfileID, "", 200)
	if err != nil {
		return nil, err
	}

	out := make([]FoodCandidate, len(recipes))
	for i, f := range recipes {
		out[i] = FoodCandidate{
			Name:            f.Name,
			KcalPer100g:     f.KcalPer100g,
			ProteinGPer100g: f.ProteinGPer100g,
			CarbsGPer100g:   f.CarbsGPer100g,
			FatGPer100g:     f.FatGPer100g,
			UnitLabel:       f.UnitLabel,
			GramsPerUnit:    f.GramsPerUnit,
			Source:          SourceUserRecipe,
		}
	}
	return out, nil
}

// RecentHistory folds raw logs into one candidate per food name with
// averaged per-100g macros, how often it was eaten and when last.
func (c *storageFoodCatalog) RecentHistory(ctx context.Context, scope Scope, days int) ([]FoodCandidate, error) {
	fromDate := time.Now().UTC().AddDate(0, 0, -days).Format("2006-01-02")
	logs, err := c.logs.ListLogsSince(ctx, scope.OwnerUserID, scope.ProfileID, fromDate)
	if err != nil {
		return nil, err
	}

	type agg struct {
		times       int
		lastDate    string
		sumKcal100  float64
		sumProt100  float64
		sumCarbs100 float64
		sumFat100   float64
	}

	byName := make(map[string]*agg)
	order := []string{}
	for _, l := range logs {
		if l.Grams <= 0 {
			continue
		}
		a, ok := byName[l.FoodName]
		if !ok {
			a = &agg{}
			byName[l.FoodName] = a
			order = append(order, l.FoodName)
		}
		a.times++
		if l.Date > a.lastDate {
			a.lastDate = l.Date
		}
		factor := 100 / l.Grams
		a.sumKcal100 += l.Kcal * factor
		a.sumProt100 += l.ProteinG * factor
		a.sumCarbs100 += l.CarbsG * factor
		a.sumFat100 += l.FatG * factor
	}

	out := make([]FoodCandidate, 0, len(byName))
	for _, name := range order {
		a := byName[name]
		n := float64(a.times)
		out = append(out, FoodCandidate{
			Name:            name,
			KcalPer100g:     a.sumKcal100 / n,
			ProteinGPer100g: a.sumProt100 / n,
			CarbsGPer100g:   a.sumCarbs100 / n,
			FatGPer100g:     a.sumFat100 / n,
			Source:          SourceHistory,
			TimesEaten:      a.times,
			LastEatenDate:   a.lastDate,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].LastEatenDate != out[j].LastEatenDate {
			return out[i].LastEatenDate > out[j].LastEatenDate
		}
		return out[i].TimesEaten > out[j].TimesEaten
	})
	return out, nil
}

func (c *storageFoodCatalog) GenericByTags(ctx context.Context, tags []string, limit int) ([]FoodCandidate, error) {
	foods, err := c.foods.SearchGenericByTags(ctx, tags, limit)
	if err != nil {
		return nil, err
	}
	return genericToCandidates(foods), nil
}

func (c *storageFoodCatalog) AllGeneric(ctx context.Context) ([]FoodCandidate, error) {
	foods, err := c.foods.ListGeneric(ctx)
	if err != nil {
		return nil, err
	}
	return genericToCandidates(foods), nil
}

func genericToCandidates(foods []storage.GenericFood) []FoodCandidate {
	out := make([]FoodCandidate, len(foods))
	for i, f := range foods {
		out[i] = FoodCandidate{
			Name:            f.Name,
			Tags:            f.Tags,
			KcalPer100g:     f.KcalPer100g,
			ProteinGPer100g: f.ProteinGPer100g,
			CarbsGPer100g:   f.CarbsGPer100g,
			FatGPer100g:     f.FatGPer100g,
			UnitLabel:       f.UnitLabel,
			GramsPerUnit:    f.GramsPerUnit,
			Source:          SourceGeneric,
		}
	}
	return out
}

// storageExerciseCatalog adapts the exercise store.
type storageExerciseCatalog struct {
	exercises storage.ExercisesStorage
}

// NewStorageExerciseCatalog builds an ExerciseCatalog over the persistence layer.
func NewStorageExerciseCatalog(exercises storage.ExercisesStorage) ExerciseCatalog {
	return &storageExerciseCatalog{exercises: exercises}
}

func (c *storageExerciseCatalog) Exercises(ctx context.Context) ([]ExerciseOption, error) {
	items, err := c.exercises.ListExercises(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ExerciseOption, len(items))
	for i, e := range items {
		out[i] = ExerciseOption{Name: e.Name, METValue: e.METValue, IconName: e.IconName}
	}
	return out, nil
}
