package coach

import "testing"

func TestMatchesDietaryPreference(t *testing.T) {
	chicken := generic("Pechuga de pollo", 165, 31, 0, 3.6, "proteina", "carne")
	tuna := generic("Atún en agua", 116, 26, 0, 0.8, "proteina", "pescado")
	yogurt := generic("Yogur griego", 59, 10, 3.6, 0.4, "proteina", "lacteo")
	egg := generic("Huevo", 155, 13, 1.1, 11, "proteina", "huevo")
	tofu := generic("Tofu", 76, 8, 1.9, 4.8, "proteina", "vegano")
	rice := generic("Arroz blanco cocido", 130, 2.7, 28, 0.3, "carbohidrato")

	cases := []struct {
		pref string
		cand FoodCandidate
		want bool
	}{
		{"", chicken, true},
		{"none", chicken, true},

		{"vegan", chicken, false},
		{"vegan", tuna, false},
		{"vegan", yogurt, false},
		{"vegan", egg, false},
		{"vegan", tofu, true},
		{"vegan", rice, true},

		{"vegetarian", chicken, false},
		{"vegetarian", tuna, false},
		{"vegetarian", yogurt, true},
		{"vegetarian", egg, true},

		{"pescatarian", chicken, false},
		{"pescatarian", tuna, true},
		{"pescatarian", yogurt, true},
	}

	for _, c := range cases {
		if got := matchesDietaryPreference(c.pref, c.cand); got != c.want {
			t.Errorf("matchesDietaryPreference(%q, %s) = %v, want %v",
				c.pref, c.cand.Name, got, c.want)
		}
	}
}

func TestDietMatchesByNameWithoutTags(t *testing.T) {
	// User recipes carry no tags; the name alone must reject.
	stew := generic("Guiso de carne casero", 180, 15, 8, 9)
	if matchesDietaryPreference("vegetarian", stew) {
		t.Error("a name containing carne must fail the vegetarian check")
	}

	ceviche := generic("Ceviche mixto", 95, 18, 4, 1)
	if matchesDietaryPreference("vegan", ceviche) {
		t.Error("ceviche must fail the vegan check")
	}
	if !matchesDietaryPreference("pescatarian", ceviche) {
		t.Error("ceviche passes the pescatarian check")
	}
}
