package domain

// MealPlan holds one day's meals. Each slot carries at most one record.
type MealPlan struct {
	Breakfast []FoodRecord `json:"breakfast"`
	Lunch     []FoodRecord `json:"lunch"`
	Dinner    []FoodRecord `json:"dinner"`
}

// NewMealPlan returns a plan with three empty, non-nil slots
func NewMealPlan() MealPlan {
	return MealPlan{
		Breakfast: []FoodRecord{},
		Lunch:     []FoodRecord{},
		Dinner:    []FoodRecord{},
	}
}

// IsEmpty reports whether no slot was filled
func (p MealPlan) IsEmpty() bool {
	return len(p.Breakfast) == 0 && len(p.Lunch) == 0 && len(p.Dinner) == 0
}

// ProfilePlan pairs a profile with the plan generated for it
type ProfilePlan struct {
	Profile UserProfile `json:"profile"`
	Plan    MealPlan    `json:"plan"`
}

// Clone returns a plan whose slots share no backing arrays with p
func (p MealPlan) Clone() MealPlan {
	return MealPlan{
		Breakfast: cloneSlot(p.Breakfast),
		Lunch:     cloneSlot(p.Lunch),
		Dinner:    cloneSlot(p.Dinner),
	}
}

func cloneSlot(slot []FoodRecord) []FoodRecord {
	return append([]FoodRecord{}, slot...)
}
