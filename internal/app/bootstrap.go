// Package app wires configuration, the food table, the plan cache and the
// planner together for the entry points.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/mealmatch/backend/config"
	"github.com/mealmatch/backend/internal/domain"
	"github.com/mealmatch/backend/internal/infrastructure/cache"
	"github.com/mealmatch/backend/internal/infrastructure/foodcsv"
	"github.com/mealmatch/backend/internal/usecase"
)

// redisKeyPrefix namespaces plan keys in a shared Redis
const redisKeyPrefix = "mealmatch:"

// PlanCache is a plan cache that holds resources to release
type PlanCache interface {
	domain.CacheRepository
	io.Closer
}

// App is the assembled planner plus what must be released on shutdown
type App struct {
	Planner *usecase.PlannerService
	cache   PlanCache
}

// Close releases the plan cache
func (a *App) Close() error {
	if a.cache == nil {
		return nil
	}
	return a.cache.Close()
}

// LoadFoods reads the configured food table. A missing or unreadable table
// is logged and yields an empty list; it never stops startup.
func LoadFoods(cfg config.FoodsConfig, classifier domain.Classifier) []domain.FoodRecord {
	loader := foodcsv.NewLoader(classifier)
	loader.SetDebug(cfg.Debug)

	result, err := loader.Load(cfg.Path)
	if err != nil {
		if errors.Is(err, domain.ErrDataSourceMissing) {
			log.Printf("[FOODS] WARNING: food table %s not found; continuing with no foods", cfg.Path)
		} else {
			log.Printf("[FOODS] WARNING: could not load food table: %v; continuing with no foods", err)
		}
		return []domain.FoodRecord{}
	}

	log.Printf("[FOODS] Loaded %d foods from %s (%d rows skipped)", len(result.Records), cfg.Path, len(result.Skipped))
	return result.Records
}

// NewCache builds the configured plan cache. A Redis cache that cannot be
// reached falls back to memory so plans are still served.
func NewCache(ctx context.Context, cfg config.CacheConfig) PlanCache {
	if cfg.Type == "redis" {
		redisCache, err := cache.NewRedisCache(ctx, cfg.RedisURL, redisKeyPrefix)
		if err == nil {
			log.Printf("[CACHE] Using Redis plan cache")
			return redisCache
		}
		log.Printf("[CACHE] WARNING: Redis unavailable (%v); falling back to memory", err)
	}
	return cache.NewMemoryCache()
}

// New assembles the planner and seeds it with the configured profiles.
// Seeds rejected by the index, such as duplicate calorie requirements, are
// logged and skipped.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	foods := LoadFoods(cfg.Foods, usecase.DefaultClassifier())
	planCache := NewCache(ctx, cfg.Cache)

	planner := usecase.NewPlannerService(foods, planCache, usecase.PlannerConfig{
		CacheTTL:           cfg.Cache.TTL,
		EnableDebugLogging: cfg.Foods.Debug || cfg.Server.Environment == "development",
	})

	for _, seed := range cfg.Profiles {
		profile, err := seed.ToProfile()
		if err != nil {
			planCache.Close()
			return nil, fmt.Errorf("seed profile: %w", err)
		}
		if err := planner.AddProfile(ctx, profile); err != nil {
			log.Printf("[INDEX] Skipping seed profile %q: %v", profile.Name, err)
		}
	}

	return &App{Planner: planner, cache: planCache}, nil
}
