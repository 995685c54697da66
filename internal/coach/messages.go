package coach

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Meal slots by local hour.
const (
	SlotDesayuno = "DESAYUNO"
	SlotAlmuerzo = "ALMUERZO"
	SlotMerienda = "MERIENDA"
	SlotCena     = "CENA"
)

// mealSlotForHour maps a local hour to a meal slot:
// 05-10 desayuno, 11-14 almuerzo, 15-18 merienda, rest cena.
func mealSlotForHour(hour int) string {
	switch {
	case hour >= 5 && hour <= 10:
		return SlotDesayuno
	case hour >= 11 && hour <= 14:
		return SlotAlmuerzo
	case hour >= 15 && hour <= 18:
		return SlotMerienda
	default:
		return SlotCena
	}
}

func slotDisplayName(slot string) string {
	return strings.ToLower(slot)
}

var macroDisplayNames = map[string]string{
	focusProtein: "proteína",
	focusCarbs:   "carbohidratos",
	focusFat:     "grasas",
}

// portionPhrase renders a portion as "2 tazas (320 g)" when the food has
// a serving unit, or plain "150 g" otherwise.
func portionPhrase(grams float64, units *float64, unitLabel *string) string {
	if units == nil || unitLabel == nil {
		return fmt.Sprintf("%.0f g", grams)
	}
	return fmt.Sprintf("%s %s (%.0f g)", formatUnits(*units), *unitLabel, grams)
}

// formatUnits trims trailing zeros: 1.5 -> "1.5", 2 -> "2", 0.75 -> "0.75".
func formatUnits(u float64) string {
	return strconv.FormatFloat(u, 'f', -1, 64)
}

// recencyPhrase says how long ago the candidate was last eaten.
func recencyPhrase(daysAgo int) string {
	switch {
	case daysAgo <= 0:
		return "(lo comiste hoy)"
	case daysAgo == 1:
		return "(lo comiste ayer)"
	default:
		return fmt.Sprintf("(lo comiste hace %d días)", daysAgo)
	}
}

func firstMealMessage(slot, foodName, portion string) string {
	return fmt.Sprintf("Aún no registras comidas hoy. Para tu %s prueba %s de %s.",
		slotDisplayName(slot), portion, foodName)
}

func macroMessage(focus string, gapG float64, foodName, portion, recency string) string {
	msg := fmt.Sprintf("Te faltan %.0f g de %s. Prueba %s de %s",
		math.Round(gapG), macroDisplayNames[focus], portion, foodName)
	if recency != "" {
		msg += " " + recency
	}
	return msg + "."
}

func calorieMessage(gapKcal float64, foodName, portion, recency string) string {
	msg := fmt.Sprintf("Te faltan %.0f kcal para tu meta. Prueba %s de %s",
		math.Round(gapKcal), portion, foodName)
	if recency != "" {
		msg += " " + recency
	}
	return msg + "."
}

// exerciseBandPhrase frames the exercise suggestion by the time of day.
func exerciseBandPhrase(hour int) string {
	switch {
	case hour >= 5 && hour <= 11:
		return "Tienes todo el día por delante"
	case hour >= 12 && hour <= 19:
		return "Aún estás a tiempo esta tarde"
	default:
		return "Algo ligero antes de dormir ayuda"
	}
}

// exerciseMessage uses one template when nothing has been burned yet and
// another when recorded activity already compensated part of the excess.
func exerciseMessage(excessKcal, burnedKcal, remainingKcal float64, hour int, best ExerciseOption) string {
	if burnedKcal > 0 {
		return fmt.Sprintf(
			"Te pasaste por %.0f kcal y ya quemaste %.0f con ejercicio. %s: unos %s min de %s cubren las %.0f kcal restantes.",
			math.Round(excessKcal), math.Round(burnedKcal), exerciseBandPhrase(hour),
			formatUnits(best.Minutes), best.Name, math.Round(remainingKcal))
	}
	return fmt.Sprintf("Te pasaste por %.0f kcal de tu meta. %s: unos %s min de %s lo compensan.",
		math.Round(excessKcal), exerciseBandPhrase(hour),
		formatUnits(best.Minutes), best.Name)
}

func onTrackMessage() string {
	return "¡Vas muy bien! Estás dentro de tu meta de hoy, sigue así."
}
