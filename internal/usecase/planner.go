package usecase

import (
	"github.com/mealmatch/backend/internal/domain"
)

// MatchingMeals returns every record within the profile's calorie budget
// whose category the profile accepts, in input order
func MatchingMeals(profile domain.UserProfile, foods []domain.FoodRecord) []domain.FoodRecord {
	matched := []domain.FoodRecord{}
	for _, food := range foods {
		if food.Calories <= profile.CalorieRequirement && profile.Accepts(food.Category) {
			matched = append(matched, food)
		}
	}
	return matched
}

// GeneratePlan fills breakfast, lunch and dinner, in that order, with the
// first matching records. Each slot takes a single record and scanning stops
// once all three are filled. With fewer than three matches the later slots
// stay empty. No attempt is made to balance calories or macros.
func GeneratePlan(profile domain.UserProfile, foods []domain.FoodRecord) domain.MealPlan {
	plan := domain.NewMealPlan()
	slots := []*[]domain.FoodRecord{&plan.Breakfast, &plan.Lunch, &plan.Dinner}

	next := 0
	for _, food := range MatchingMeals(profile, foods) {
		*slots[next] = append(*slots[next], food)
		next++
		if next == len(slots) {
			break
		}
	}

	return plan
}
