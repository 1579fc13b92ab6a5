// Package report renders profiles and meal plans as plain text.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mealmatch/backend/internal/domain"
)

// Profile writes one profile summary
func Profile(w io.Writer, p domain.UserProfile) error {
	restrictions := make([]string, 0, len(p.DietaryRestrictions))
	for _, c := range p.DietaryRestrictions {
		restrictions = append(restrictions, string(c))
	}
	_, err := fmt.Fprintf(w, "User: %s, Age: %d, Preference: %s,\n Calorie Requirement: %s, Restrictions: [%s]\n",
		p.Name, p.Age, p.DietaryPreference, number(p.CalorieRequirement), strings.Join(restrictions, ", "))
	return err
}

// Profiles writes each profile in the given order
func Profiles(w io.Writer, profiles []domain.UserProfile) error {
	for _, p := range profiles {
		if err := Profile(w, p); err != nil {
			return err
		}
	}
	return nil
}

// Meal writes one food record
func Meal(w io.Writer, m domain.FoodRecord) error {
	_, err := fmt.Fprintf(w, "%s | Calories: %s | Protein: %sg | Carbs: %sg | Category: %s\n",
		m.Name, number(m.Calories), number(m.Protein), number(m.Carbs), m.Category)
	return err
}

// Plan writes the three meal slots
func Plan(w io.Writer, plan domain.MealPlan) error {
	if _, err := io.WriteString(w, "\nMeal Plan:\n"); err != nil {
		return err
	}
	slots := []struct {
		title string
		meals []domain.FoodRecord
	}{
		{"Breakfast", plan.Breakfast},
		{"Lunch", plan.Lunch},
		{"Dinner", plan.Dinner},
	}
	for _, slot := range slots {
		if _, err := fmt.Fprintf(w, "%s:\n", slot.title); err != nil {
			return err
		}
		for _, m := range slot.meals {
			if err := Meal(w, m); err != nil {
				return err
			}
		}
	}
	return nil
}

// Full writes the ordered profile listing followed by every profile's plan
func Full(w io.Writer, plans []domain.ProfilePlan) error {
	if _, err := io.WriteString(w, "Inorder Traversal of Profiles:\n"); err != nil {
		return err
	}
	for _, pp := range plans {
		if err := Profile(w, pp.Profile); err != nil {
			return err
		}
	}
	for _, pp := range plans {
		if _, err := fmt.Fprintf(w, "\nMeal Plan for %s:\n", pp.Profile.Name); err != nil {
			return err
		}
		if err := Plan(w, pp.Plan); err != nil {
			return err
		}
	}
	return nil
}

// number prints 1000 as "1000" and 0.5 as "0.5"
func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
