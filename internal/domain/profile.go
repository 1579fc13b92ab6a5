package domain

import (
	"fmt"
	"math"
	"slices"
	"strings"
)

// UserProfile describes a user and the food categories they accept
type UserProfile struct {
	Name               string  `json:"name"`
	Age                int     `json:"age"`
	DietaryPreference  string  `json:"dietaryPreference"` // informational only
	CalorieRequirement float64 `json:"calorieRequirement"`

	// DietaryRestrictions is an allow-list: the categories this user will eat
	DietaryRestrictions []Category `json:"dietaryRestrictions"`
}

// Accepts reports whether the category is in the profile's allow-list
func (p UserProfile) Accepts(c Category) bool {
	return slices.Contains(p.DietaryRestrictions, c)
}

// Validate checks the fields the index and planner rely on
func (p UserProfile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidProfile)
	}
	if p.Age <= 0 {
		return fmt.Errorf("%w: age must be positive, got %d", ErrInvalidProfile, p.Age)
	}
	if math.IsNaN(p.CalorieRequirement) || math.IsInf(p.CalorieRequirement, 0) || p.CalorieRequirement <= 0 {
		return fmt.Errorf("%w: calorie requirement must be a positive number, got %v", ErrInvalidProfile, p.CalorieRequirement)
	}
	for _, c := range p.DietaryRestrictions {
		if _, err := ParseCategory(string(c)); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidProfile, err)
		}
	}
	return nil
}

// Normalize validates the profile and returns a copy whose restrictions use
// the canonical category labels, so "vegan" and "Vegan" match the same foods.
func (p UserProfile) Normalize() (UserProfile, error) {
	if err := p.Validate(); err != nil {
		return UserProfile{}, err
	}
	restrictions := make([]Category, 0, len(p.DietaryRestrictions))
	for _, c := range p.DietaryRestrictions {
		canonical, _ := ParseCategory(string(c))
		restrictions = append(restrictions, canonical)
	}
	p.DietaryRestrictions = restrictions
	return p, nil
}
