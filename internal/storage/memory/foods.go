package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kaloria/coach-hub/internal/storage"
)

type foodsStorage struct {
	mu        sync.RWMutex
	userFoods map[uuid.UUID]storage.UserFood
	generic   []storage.GenericFood
}

func newFoodsStorage() *foodsStorage {
	return &foodsStorage{
		userFoods: make(map[uuid.UUID]storage.UserFood),
		generic:   seedGenericCatalog(),
	}
}

func (s *foodsStorage) CreateUserFood(ctx context.Context, food *storage.UserFood) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if food.ID == uuid.Nil {
		food.ID = uuid.New()
	}
	food.CreatedAt = time.Now()
	food.UpdatedAt = time.Now()

	s.userFoods[food.ID] = *food

	return nil
}

func (s *foodsStorage) ListUserFoods(ctx context.Context, ownerUserID string, profileID uuid.UUID, query string, limit int) ([]storage.UserFood, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(query))

	foods := make([]storage.UserFood, 0)
	for _, f := range s.userFoods {
		if f.OwnerUserID != ownerUserID || f.ProfileID != profileID {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(f.Name), q) {
			continue
		}
		foods = append(foods, f)
	}

	sort.Slice(foods, func(i, j int) bool { return foods[i].Name < foods[j].Name })

	if limit > 0 && len(foods) > limit {
		foods = foods[:limit]
	}

	return foods, nil
}

func (s *foodsStorage) SearchGenericByTags(ctx context.Context, tags []string, limit int) ([]storage.GenericFood, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	wanted := make(map[string]bool, len(tags))
	for _, t := range tags {
		wanted[strings.ToLower(strings.TrimSpace(t))] = true
	}

	foods := make([]storage.GenericFood, 0)
	for _, f := range s.generic {
		for _, tag := range f.Tags {
			if wanted[strings.ToLower(tag)] {
				foods = append(foods, f)
				break
			}
		}
		if limit > 0 && len(foods) >= limit {
			break
		}
	}

	return foods, nil
}

func (s *foodsStorage) ListGeneric(ctx context.Context) ([]storage.GenericFood, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	foods := make([]storage.GenericFood, len(s.generic))
	copy(foods, s.generic)

	return foods, nil
}

func strPtr(v string) *string    { return &v }
func floatPtr(v float64) *float64 { return &v }

// seedGenericCatalog mirrors the rows seeded by the SQL migrations so that
// local mode behaves like a migrated database.
func seedGenericCatalog() []storage.GenericFood {
	type row struct {
		name         string
		tags         []string
		kcal         float64
		protein      float64
		carbs        float64
		fat          float64
		unitLabel    string
		gramsPerUnit float64
	}

	rows := []row{
		{name: "Pechuga de pollo", tags: []string{"proteina", "carne"}, kcal: 165, protein: 31, carbs: 0, fat: 3.6},
		{name: "Atún en agua", tags: []string{"proteina", "pescado"}, kcal: 116, protein: 26, carbs: 0, fat: 1},
		{name: "Salmón", tags: []string{"proteina", "pescado", "grasa"}, kcal: 208, protein: 20, carbs: 0, fat: 13},
		{name: "Huevo", tags: []string{"proteina", "huevo"}, kcal: 155, protein: 13, carbs: 1.1, fat: 11, unitLabel: "unidad", gramsPerUnit: 50},
		{name: "Yogur griego", tags: []string{"proteina", "lacteo"}, kcal: 59, protein: 10, carbs: 3.6, fat: 0.4},
		{name: "Queso fresco", tags: []string{"proteina", "lacteo", "grasa"}, kcal: 264, protein: 18, carbs: 3, fat: 20},
		{name: "Tofu", tags: []string{"proteina", "vegano"}, kcal: 76, protein: 8, carbs: 1.9, fat: 4.8},
		{name: "Lentejas cocidas", tags: []string{"proteina", "carbohidrato"}, kcal: 116, protein: 9, carbs: 20, fat: 0.4},
		{name: "Garbanzos cocidos", tags: []string{"proteina", "carbohidrato"}, kcal: 164, protein: 8.9, carbs: 27, fat: 2.6},
		{name: "Arroz blanco cocido", tags: []string{"carbohidrato"}, kcal: 130, protein: 2.7, carbs: 28, fat: 0.3, unitLabel: "taza", gramsPerUnit: 160},
		{name: "Avena", tags: []string{"carbohidrato"}, kcal: 389, protein: 16.9, carbs: 66, fat: 6.9},
		{name: "Quinua cocida", tags: []string{"carbohidrato"}, kcal: 120, protein: 4.4, carbs: 21, fat: 1.9},
		{name: "Pan integral", tags: []string{"carbohidrato"}, kcal: 247, protein: 13, carbs: 41, fat: 3.4, unitLabel: "rebanada", gramsPerUnit: 30},
		{name: "Plátano", tags: []string{"carbohidrato", "fruta"}, kcal: 89, protein: 1.1, carbs: 23, fat: 0.3, unitLabel: "unidad", gramsPerUnit: 120},
		{name: "Palta", tags: []string{"grasa", "fruta"}, kcal: 160, protein: 2, carbs: 8.5, fat: 14.7},
		{name: "Almendras", tags: []string{"grasa", "proteina"}, kcal: 579, protein: 21, carbs: 22, fat: 50},
		{name: "Aceite de oliva", tags: []string{"grasa"}, kcal: 884, protein: 0, carbs: 0, fat: 100},
		{name: "Tomate", tags: []string{"verdura"}, kcal: 18, protein: 0.9, carbs: 3.9, fat: 0.2},
	}

	now := time.Now()
	foods := make([]storage.GenericFood, 0, len(rows))
	for _, r := range rows {
		f := storage.GenericFood{
			ID:              uuid.New(),
			Name:            r.name,
			Tags:            r.tags,
			KcalPer100g:     r.kcal,
			ProteinGPer100g: r.protein,
			CarbsGPer100g:   r.carbs,
			FatGPer100g:     r.fat,
			CreatedAt:       now,
		}
		if r.unitLabel != "" {
			f.UnitLabel = strPtr(r.unitLabel)
			f.GramsPerUnit = floatPtr(r.gramsPerUnit)
		}
		foods = append(foods, f)
	}

	return foods
}
