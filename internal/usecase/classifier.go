package usecase

import (
	"slices"
	"strings"

	"github.com/mealmatch/backend/internal/domain"
)

var (
	_ domain.Classifier = ClassifierFunc(nil)
	_ domain.Classifier = (*KeywordClassifier)(nil)
)

// ClassifierFunc adapts a plain function to the domain.Classifier interface
type ClassifierFunc func(name string) domain.Category

// Classify calls f(name)
func (f ClassifierFunc) Classify(name string) domain.Category {
	return f(name)
}

// KeywordRule maps any of its terms, found as a substring of a food name, to a category
type KeywordRule struct {
	Category domain.Category
	Terms    []string
}

// KeywordClassifier checks rules in order; the first rule with a matching term wins
type KeywordClassifier struct {
	Rules    []KeywordRule
	Fallback domain.Category
}

// defaultRules order matters: "egg" must beat the vegetarian terms, and so on
var defaultRules = []KeywordRule{
	{Category: domain.NonVegetarian, Terms: []string{"chicken", "beef", "pork", "ham", "egg"}},
	{Category: domain.Vegetarian, Terms: []string{"cheese", "pasta", "ricotta", "mozzarella", "cheddar"}},
	{Category: domain.Vegan, Terms: []string{"jam", "honey", "peanut butter", "apple butter", "marmalade", "tahini"}},
}

// DefaultClassifier returns the built-in keyword table. Unknown foods are Vegetarian.
func DefaultClassifier() *KeywordClassifier {
	return &KeywordClassifier{
		Rules:    slices.Clone(defaultRules),
		Fallback: domain.Vegetarian,
	}
}

// Classify matches case-insensitively against each rule's terms
func (k *KeywordClassifier) Classify(name string) domain.Category {
	nameLower := strings.ToLower(name)
	for _, rule := range k.Rules {
		for _, term := range rule.Terms {
			if strings.Contains(nameLower, term) {
				return rule.Category
			}
		}
	}
	return k.Fallback
}
