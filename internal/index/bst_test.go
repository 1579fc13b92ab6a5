package index

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/mealmatch/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func profile(name string, calories float64) domain.UserProfile {
	return domain.UserProfile{
		Name:                name,
		Age:                 30,
		CalorieRequirement:  calories,
		DietaryRestrictions: []domain.Category{domain.Vegan},
	}
}

func calories(profiles []domain.UserProfile) []float64 {
	out := make([]float64, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, p.CalorieRequirement)
	}
	return out
}

func TestProfileIndex_Empty(t *testing.T) {
	idx := New()

	assert.Equal(t, 0, idx.Len())
	assert.Equal(t, 0, idx.Height())
	assert.NotNil(t, idx.InOrder())
	assert.Empty(t, idx.InOrder())
}

func TestProfileIndex_InOrderAscending(t *testing.T) {
	idx := New()
	require.NoError(t, idx.Insert(profile("Dheeraj", 1500)))
	require.NoError(t, idx.Insert(profile("Sathwik", 1000)))
	require.NoError(t, idx.Insert(profile("Deekshith", 1800)))

	got := idx.InOrder()
	assert.Equal(t, []float64{1000, 1500, 1800}, calories(got))
	assert.Equal(t, "Sathwik", got[0].Name)
	assert.Equal(t, "Deekshith", got[2].Name)
	assert.Equal(t, 3, idx.Len())
	assert.Equal(t, 2, idx.Height())
}

func TestProfileIndex_DuplicateKeyRejected(t *testing.T) {
	idx := New()
	require.NoError(t, idx.Insert(profile("first", 1000)))

	err := idx.Insert(profile("second", 1000))
	assert.True(t, errors.Is(err, domain.ErrDuplicateCalorieKey), "error = %v", err)

	got := idx.InOrder()
	require.Len(t, got, 1)
	assert.Equal(t, "first", got[0].Name)
	assert.Equal(t, 1, idx.Len())
}

func TestProfileIndex_SortedInsertDegenerates(t *testing.T) {
	idx := New()
	for i := 1; i <= 10; i++ {
		require.NoError(t, idx.Insert(profile("p", float64(i*100))))
	}

	assert.Equal(t, 10, idx.Height())
	assert.Equal(t, 10, idx.Len())
}

func TestProfileIndex_OrderingInvariant(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 7))

	for round := 0; round < 50; round++ {
		idx := New()
		inserted := 0
		for i := 0; i < 40; i++ {
			if err := idx.Insert(profile("p", float64(rng.IntN(500)))); err == nil {
				inserted++
			}
		}

		got := calories(idx.InOrder())
		require.Len(t, got, inserted)
		for i := 1; i < len(got); i++ {
			if got[i-1] >= got[i] {
				t.Fatalf("round %d: traversal not ascending at %d: %v", round, i, got)
			}
		}
	}
}

func TestProfileIndex_AllIsRestartable(t *testing.T) {
	idx := New()
	for _, c := range []float64{300, 100, 200} {
		require.NoError(t, idx.Insert(profile("p", c)))
	}

	var first, second []float64
	for p := range idx.All() {
		first = append(first, p.CalorieRequirement)
	}
	for p := range idx.All() {
		second = append(second, p.CalorieRequirement)
	}

	assert.Equal(t, []float64{100, 200, 300}, first)
	assert.Equal(t, first, second)
}

func TestProfileIndex_AllStopsEarly(t *testing.T) {
	idx := New()
	for _, c := range []float64{500, 200, 800, 100, 300} {
		require.NoError(t, idx.Insert(profile("p", c)))
	}

	var seen []float64
	for p := range idx.All() {
		seen = append(seen, p.CalorieRequirement)
		if len(seen) == 2 {
			break
		}
	}

	assert.Equal(t, []float64{100, 200}, seen)
}
