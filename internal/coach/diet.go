package coach

import "strings"

// Spanish food vocabularies, with and without accents as they appear in
// user-entered names.
var (
	meatWords = []string{
		"pollo", "carne", "res", "cerdo", "pavo", "jamón", "jamon",
		"tocino", "chorizo", "salchicha", "cordero", "ternera", "lomo",
		"chuleta", "costilla", "bistec", "hamburguesa",
	}
	fishWords = []string{
		"pescado", "atún", "atun", "salmón", "salmon", "trucha",
		"merluza", "anchoveta", "bonito", "marisco", "camarón", "camaron",
		"langostino", "pulpo", "calamar", "ceviche",
	}
	dairyEggWords = []string{
		"leche", "queso", "yogur", "yogurt", "mantequilla", "crema",
		"huevo", "clara", "yema",
	}
)

var dietTagRejects = map[string][]string{
	"vegan":       {"carne", "pescado", "lacteo", "huevo"},
	"vegetarian":  {"carne", "pescado"},
	"pescatarian": {"carne"},
}

// matchesDietaryPreference reports whether the candidate is acceptable
// under the profile's dietary preference. Matching is by lowercase
// substring over the name plus exact tag hits.
func matchesDietaryPreference(pref string, c FoodCandidate) bool {
	switch pref {
	case "vegan":
		return !candidateHasAny(c, meatWords) &&
			!candidateHasAny(c, fishWords) &&
			!candidateHasAny(c, dairyEggWords) &&
			!candidateHasTag(c, dietTagRejects["vegan"])
	case "vegetarian":
		return !candidateHasAny(c, meatWords) &&
			!candidateHasAny(c, fishWords) &&
			!candidateHasTag(c, dietTagRejects["vegetarian"])
	case "pescatarian":
		return !candidateHasAny(c, meatWords) &&
			!candidateHasTag(c, dietTagRejects["pescatarian"])
	default:
		return true
	}
}

func candidateHasAny(c FoodCandidate, words []string) bool {
	name := strings.ToLower(c.Name)
	for _, w := range words {
		if strings.Contains(name, w) {
			return true
		}
		for _, tag := range c.Tags {
			if strings.Contains(strings.ToLower(tag), w) {
				return true
			}
		}
	}
	return false
}

func candidateHasTag(c FoodCandidate, rejected []string) bool {
	for _, tag := range c.Tags {
		lt := strings.ToLower(tag)
		for _, r := range rejected {
			if lt == r {
				return true
			}
		}
	}
	return false
}
