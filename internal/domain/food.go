package domain

import (
	"fmt"
	"strings"
)

// Category is the dietary class a food record belongs to
type Category string

const (
	Vegetarian    Category = "Vegetarian"
	NonVegetarian Category = "Non-Vegetarian"
	Vegan         Category = "Vegan"
)

// Classifier assigns a dietary category to a food by name
type Classifier interface {
	Classify(name string) Category
}

// Categories lists every known category in display order
var Categories = []Category{Vegetarian, NonVegetarian, Vegan}

// ParseCategory resolves a label such as "vegan" or "Non-Vegetarian" to a Category
func ParseCategory(label string) (Category, error) {
	normalized := strings.ToLower(strings.TrimSpace(label))
	for _, c := range Categories {
		if strings.ToLower(string(c)) == normalized {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCategory, label)
}

// FoodRecord is one normalized row of the food nutrition table.
// Records are produced once by the loader and never modified afterwards.
type FoodRecord struct {
	Name     string   `json:"name"`
	Calories float64  `json:"calories"`
	Protein  float64  `json:"protein"` // grams
	Carbs    float64  `json:"carbs"`   // grams
	Category Category `json:"category"`
}
