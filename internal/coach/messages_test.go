package coach

import (
	"strings"
	"testing"
)

func TestExerciseBandPhrase(t *testing.T) {
	cases := []struct {
		hour int
		want string
	}{
		{5, "Tienes todo el día por delante"},
		{11, "Tienes todo el día por delante"},
		{12, "Aún estás a tiempo esta tarde"},
		{19, "Aún estás a tiempo esta tarde"},
		{20, "Algo ligero antes de dormir ayuda"},
		{23, "Algo ligero antes de dormir ayuda"},
		{3, "Algo ligero antes de dormir ayuda"},
	}

	for _, c := range cases {
		if got := exerciseBandPhrase(c.hour); got != c.want {
			t.Errorf("exerciseBandPhrase(%d) = %q, want %q", c.hour, got, c.want)
		}
	}
}

func TestExerciseMessageTemplates(t *testing.T) {
	walk := ExerciseOption{Name: "Caminata rápida", Minutes: 38}

	plain := exerciseMessage(300, 0, 300, 9, walk)
	if !strings.Contains(plain, "Te pasaste por 300 kcal de tu meta") {
		t.Errorf("plain template missing the excess: %q", plain)
	}
	if !strings.Contains(plain, "Tienes todo el día por delante") {
		t.Errorf("morning band missing: %q", plain)
	}
	if strings.Contains(plain, "quemaste") {
		t.Errorf("plain template must not mention burned calories: %q", plain)
	}

	credited := exerciseMessage(300, 100, 200, 22, walk)
	if !strings.Contains(credited, "ya quemaste 100") {
		t.Errorf("credited template missing the burn: %q", credited)
	}
	if !strings.Contains(credited, "200 kcal restantes") {
		t.Errorf("credited template missing the remainder: %q", credited)
	}
	if !strings.Contains(credited, "Algo ligero antes de dormir ayuda") {
		t.Errorf("night band missing: %q", credited)
	}
	if !strings.Contains(credited, "38 min de Caminata rápida") {
		t.Errorf("option not rendered: %q", credited)
	}
}
