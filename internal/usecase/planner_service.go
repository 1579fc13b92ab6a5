package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/mealmatch/backend/internal/domain"
	"github.com/mealmatch/backend/internal/index"
)

// Package-level compiled regex patterns for performance
var (
	nonAlphanumericRegex = regexp.MustCompile(`[^a-z0-9\s]`)
	multipleSpacesRegex  = regexp.MustCompile(`\s+`)
)

// PlannerConfig holds configuration for the planner service
type PlannerConfig struct {
	CacheTTL           time.Duration
	EnableDebugLogging bool
}

// PlannerService serves meal plans from a fixed food list and keeps the
// profile index. The food list is read-only after construction; the index
// is guarded by a mutex because it has no locking of its own.
type PlannerService struct {
	foods    []domain.FoodRecord
	cache    domain.CacheRepository
	cacheTTL time.Duration
	debug    bool

	mu       sync.RWMutex
	profiles *index.ProfileIndex
}

// NewPlannerService creates a planner over the given food records.
// cache may be nil, in which case plans are always generated.
func NewPlannerService(
	foods []domain.FoodRecord,
	cache domain.CacheRepository,
	config PlannerConfig,
) *PlannerService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = time.Hour
	}

	return &PlannerService{
		foods:    slices.Clone(foods),
		cache:    cache,
		cacheTTL: cacheTTL,
		debug:    config.EnableDebugLogging,
		profiles: index.New(),
	}
}

// AddProfile validates the profile and inserts it into the index
func (s *PlannerService) AddProfile(ctx context.Context, profile domain.UserProfile) error {
	profile, err := profile.Normalize()
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.profiles.Insert(profile); err != nil {
		log.Printf("[INDEX] Rejected profile %q: %v", profile.Name, err)
		return err
	}

	if s.debug {
		log.Printf("[INDEX] Inserted %q at %.0f kcal (size=%d, height=%d)",
			profile.Name, profile.CalorieRequirement, s.profiles.Len(), s.profiles.Height())
	}
	return nil
}

// Profiles returns the indexed profiles in ascending calorie order
func (s *PlannerService) Profiles(ctx context.Context) []domain.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profiles.InOrder()
}

// Foods returns the loaded records, restricted to category when it is non-empty
func (s *PlannerService) Foods(category domain.Category) []domain.FoodRecord {
	if category == "" {
		return slices.Clone(s.foods)
	}
	filtered := []domain.FoodRecord{}
	for _, food := range s.foods {
		if food.Category == category {
			filtered = append(filtered, food)
		}
	}
	return filtered
}

// MatchingMeals returns the records the profile may eat
func (s *PlannerService) MatchingMeals(ctx context.Context, profile domain.UserProfile) ([]domain.FoodRecord, error) {
	profile, err := profile.Normalize()
	if err != nil {
		return nil, err
	}
	return MatchingMeals(profile, s.foods), nil
}

// GeneratePlan returns the meal plan for a profile.
// Flow: normalize -> check cache -> allocate -> cache -> return
func (s *PlannerService) GeneratePlan(ctx context.Context, profile domain.UserProfile) (domain.MealPlan, error) {
	profile, err := profile.Normalize()
	if err != nil {
		return domain.MealPlan{}, err
	}

	cacheKey := generateCacheKey(profile)

	if cached, err := s.getFromCache(ctx, cacheKey); err == nil {
		if s.debug {
			log.Printf("[PLAN] Cache hit for %q", cacheKey)
		}
		return cached, nil
	}

	plan := GeneratePlan(profile, s.foods)

	if s.debug {
		log.Printf("[PLAN] %q: breakfast=%d lunch=%d dinner=%d",
			profile.Name, len(plan.Breakfast), len(plan.Lunch), len(plan.Dinner))
	}

	// Log but don't fail if caching fails
	if err := s.setInCache(ctx, cacheKey, plan); err != nil {
		log.Printf("[CACHE] Failed to store %q: %v", cacheKey, err)
	}

	return plan, nil
}

// Plans generates a plan for every indexed profile, in index order
func (s *PlannerService) Plans(ctx context.Context) ([]domain.ProfilePlan, error) {
	profiles := s.Profiles(ctx)
	plans := make([]domain.ProfilePlan, 0, len(profiles))

	for _, profile := range profiles {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		plan, err := s.GeneratePlan(ctx, profile)
		if err != nil {
			return nil, fmt.Errorf("plan for %q: %w", profile.Name, err)
		}
		plans = append(plans, domain.ProfilePlan{Profile: profile, Plan: plan})
	}

	return plans, nil
}

// generateCacheKey creates a normalized cache key from the fields that drive matching.
// Format: "plan:{normalized_name}:{calories}:{sorted_restrictions}"
func generateCacheKey(profile domain.UserProfile) string {
	restrictions := make([]string, 0, len(profile.DietaryRestrictions))
	for _, c := range profile.DietaryRestrictions {
		restrictions = append(restrictions, normalizeForCacheKey(string(c)))
	}
	slices.Sort(restrictions)
	restrictions = slices.Compact(restrictions)

	return fmt.Sprintf("plan:%s:%s:%s",
		normalizeForCacheKey(profile.Name),
		strconv.FormatFloat(profile.CalorieRequirement, 'f', -1, 64),
		strings.Join(restrictions, ","))
}

// normalizeForCacheKey lowercases, drops special characters and collapses whitespace
func normalizeForCacheKey(s string) string {
	if s == "" {
		return ""
	}
	result := strings.ToLower(s)
	result = nonAlphanumericRegex.ReplaceAllString(result, "")
	result = multipleSpacesRegex.ReplaceAllString(result, " ")
	return strings.TrimSpace(result)
}

// getFromCache retrieves a plan from cache. Memory caches hand back the plan
// itself; Redis hands back its JSON encoding.
func (s *PlannerService) getFromCache(ctx context.Context, key string) (domain.MealPlan, error) {
	if s.cache == nil {
		return domain.MealPlan{}, domain.ErrCacheMiss
	}

	value, err := s.cache.Get(ctx, key)
	if err != nil {
		return domain.MealPlan{}, err
	}

	switch v := value.(type) {
	case domain.MealPlan:
		return v.Clone(), nil
	case *domain.MealPlan:
		return v.Clone(), nil
	case []byte:
		return decodePlan(v)
	case string:
		return decodePlan([]byte(v))
	default:
		return domain.MealPlan{}, domain.ErrCacheMiss
	}
}

// setInCache stores a copy of the plan so the caller's slices stay its own
func (s *PlannerService) setInCache(ctx context.Context, key string, plan domain.MealPlan) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Set(ctx, key, plan.Clone(), s.cacheTTL)
}

func decodePlan(data []byte) (domain.MealPlan, error) {
	plan := domain.NewMealPlan()
	if err := json.Unmarshal(data, &plan); err != nil {
		return domain.MealPlan{}, domain.ErrCacheMiss
	}
	return plan, nil
}
