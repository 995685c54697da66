package coach

import (
	"math/rand"
	"testing"
)

func exerciseCatalog() []ExerciseOption {
	return []ExerciseOption{
		{Name: "Caminata rápida", METValue: 4.3},
		{Name: "Correr", METValue: 9.8},
		{Name: "Yoga", METValue: 2.5},
		{Name: "Saltar la cuerda", METValue: 11.0},
	}
}

func TestMinutesToBurn(t *testing.T) {
	// 250 kcal at MET 4.3 and 70 kg: 5.2675 kcal per minute.
	if got := minutesToBurn(250, 4.3, 70); got != 47.5 {
		t.Errorf("expected 47.5 min, got %v", got)
	}

	// A heavier body burns faster, so fewer minutes.
	if got := minutesToBurn(250, 4.3, 90); got >= 47.5 {
		t.Errorf("expected fewer minutes at 90 kg, got %v", got)
	}

	// Tiny surpluses still suggest at least a minute.
	if got := minutesToBurn(1, 11, 120); got != 1 {
		t.Errorf("expected the 1 minute floor, got %v", got)
	}
}

func TestFilterExercisesByHour(t *testing.T) {
	// Daytime keeps everything with MET >= 2.
	day := filterExercisesByHour(exerciseCatalog(), 14)
	if len(day) != 4 {
		t.Fatalf("expected 4 daytime options, got %d", len(day))
	}

	// At night only moderate intensities survive.
	night := filterExercisesByHour(exerciseCatalog(), 22)
	for _, e := range night {
		if e.METValue > nightMaxMET {
			t.Errorf("%s (MET %v) must not be suggested at night", e.Name, e.METValue)
		}
	}
	if len(night) != 2 {
		t.Errorf("expected 2 night options, got %d", len(night))
	}
}

func TestFilterExercisesFallsBackWhenEmpty(t *testing.T) {
	intense := []ExerciseOption{
		{Name: "Correr", METValue: 9.8},
		{Name: "Saltar la cuerda", METValue: 11.0},
	}
	got := filterExercisesByHour(intense, 23)
	if len(got) != 2 {
		t.Errorf("expected the full catalog as fallback, got %d options", len(got))
	}
}

func TestPickExerciseOptionsSortedByMinutes(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	picked := pickExerciseOptions(exerciseCatalog(), 14, 300, 70, rnd)

	if len(picked) != 2 {
		t.Fatalf("expected 2 options, got %d", len(picked))
	}
	if picked[0].Minutes > picked[1].Minutes {
		t.Errorf("options must be sorted shortest first: %v then %v",
			picked[0].Minutes, picked[1].Minutes)
	}
	for _, p := range picked {
		if p.Minutes < 1 {
			t.Errorf("%s has minutes below the floor: %v", p.Name, p.Minutes)
		}
	}
}

func TestPickExerciseOptionsDeterministicWithSeed(t *testing.T) {
	a := pickExerciseOptions(exerciseCatalog(), 14, 300, 70, rand.New(rand.NewSource(7)))
	b := pickExerciseOptions(exerciseCatalog(), 14, 300, 70, rand.New(rand.NewSource(7)))

	if len(a) != len(b) {
		t.Fatal("same seed must pick the same options")
	}
	for i := range a {
		if a[i].Name != b[i].Name {
			t.Errorf("option %d differs: %s vs %s", i, a[i].Name, b[i].Name)
		}
	}
}
