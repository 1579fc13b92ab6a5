package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mealmatch/backend/config"
	"github.com/mealmatch/backend/internal/domain"
	"github.com/mealmatch/backend/internal/infrastructure/cache"
	"github.com/mealmatch/backend/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMain sets up test environment before running tests
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func testFoods() []domain.FoodRecord {
	return []domain.FoodRecord{
		{Name: "Apple", Calories: 95, Protein: 0.5, Carbs: 25, Category: domain.Vegan},
		{Name: "Peanut Butter Toast", Calories: 200, Protein: 8, Carbs: 20, Category: domain.Vegan},
		{Name: "Rice Bowl", Calories: 400, Protein: 9, Carbs: 80, Category: domain.Vegan},
		{Name: "Steak", Calories: 600, Protein: 50, Carbs: 0, Category: domain.NonVegetarian},
	}
}

// setupTestRouter creates a router over a real planner with no profiles indexed
func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:           "8080",
			Environment:    "test",
			AllowedOrigins: []string{"http://localhost:*"},
		},
		RateLimit: config.RateLimitConfig{PerIP: 6000, Burst: 100},
	}

	memoryCache := cache.NewMemoryCache()
	t.Cleanup(func() { memoryCache.Close() })

	planner := usecase.NewPlannerService(testFoods(), memoryCache, usecase.PlannerConfig{})
	return SetupRouter(cfg, NewHandler(planner))
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), "body: %s", w.Body.String())
}

const sathwikBody = `{"name":"Sathwik","age":25,"dietaryPreference":"Vegan","calorieRequirement":1000,"dietaryRestrictions":["Vegan"]}`

func TestHealthCheckEndpoint(t *testing.T) {
	router := setupTestRouter(t)

	w := doRequest(router, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	decode(t, w, &response)
	assert.Equal(t, "healthy", response["status"])
	assert.Equal(t, "mealmatch-backend", response["service"])
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	t.Run("accepts GET requests only", func(t *testing.T) {
		for _, method := range []string{"POST", "PUT", "DELETE", "PATCH"} {
			w := doRequest(router, method, "/health", "")
			assert.Equal(t, http.StatusNotFound, w.Code, "method %s", method)
		}
	})
}

func TestProfileEndpoints(t *testing.T) {
	router := setupTestRouter(t)

	for _, body := range []string{
		`{"name":"Dheeraj","age":22,"calorieRequirement":1500,"dietaryRestrictions":["Vegetarian"]}`,
		sathwikBody,
		`{"name":"Deekshith","age":28,"calorieRequirement":1800,"dietaryRestrictions":["vegan","vegetarian"]}`,
	} {
		w := doRequest(router, http.MethodPost, "/api/v1/profiles", body)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	t.Run("lists profiles in ascending calorie order", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/api/v1/profiles", "")
		require.Equal(t, http.StatusOK, w.Code)

		var response struct {
			Profiles []domain.UserProfile `json:"profiles"`
			Count    int                  `json:"count"`
		}
		decode(t, w, &response)
		assert.Equal(t, 3, response.Count)
		require.Len(t, response.Profiles, 3)
		assert.Equal(t, "Sathwik", response.Profiles[0].Name)
		assert.Equal(t, "Dheeraj", response.Profiles[1].Name)
		assert.Equal(t, "Deekshith", response.Profiles[2].Name)
		assert.Equal(t, []domain.Category{domain.Vegan, domain.Vegetarian}, response.Profiles[2].DietaryRestrictions)
	})

	t.Run("rejects duplicate calorie requirement", func(t *testing.T) {
		w := doRequest(router, http.MethodPost, "/api/v1/profiles",
			`{"name":"Twin","age":30,"calorieRequirement":1000,"dietaryRestrictions":["Vegan"]}`)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("rejects invalid bodies", func(t *testing.T) {
		bodies := []string{
			`not json`,
			`{"age":30,"calorieRequirement":1000}`,
			`{"name":"x","age":0,"calorieRequirement":1000}`,
			`{"name":"x","age":30,"calorieRequirement":-1}`,
			`{"name":"x","age":30,"calorieRequirement":1000,"dietaryRestrictions":["Keto"]}`,
		}
		for _, body := range bodies {
			w := doRequest(router, http.MethodPost, "/api/v1/profiles", body)
			assert.Equal(t, http.StatusBadRequest, w.Code, "body %s", body)
		}
	})
}

func TestFoodsEndpoint(t *testing.T) {
	router := setupTestRouter(t)

	var response struct {
		Foods []domain.FoodRecord `json:"foods"`
		Count int                 `json:"count"`
	}

	w := doRequest(router, http.MethodGet, "/api/v1/foods", "")
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &response)
	assert.Equal(t, 4, response.Count)

	w = doRequest(router, http.MethodGet, "/api/v1/foods?category=non-vegetarian", "")
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &response)
	require.Len(t, response.Foods, 1)
	assert.Equal(t, "Steak", response.Foods[0].Name)

	w = doRequest(router, http.MethodGet, "/api/v1/foods?category=paleo", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMatchMealsEndpoint(t *testing.T) {
	router := setupTestRouter(t)

	w := doRequest(router, http.MethodPost, "/api/v1/meals/match",
		`{"name":"Sathwik","age":25,"calorieRequirement":250,"dietaryRestrictions":["Vegan"]}`)
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Meals []domain.FoodRecord `json:"meals"`
		Count int                 `json:"count"`
	}
	decode(t, w, &response)
	assert.Equal(t, 2, response.Count)
	assert.Equal(t, "Apple", response.Meals[0].Name)
	assert.Equal(t, "Peanut Butter Toast", response.Meals[1].Name)
}

func TestPlanEndpoints(t *testing.T) {
	router := setupTestRouter(t)

	t.Run("generates plan for posted profile", func(t *testing.T) {
		w := doRequest(router, http.MethodPost, "/api/v1/plans", sathwikBody)
		require.Equal(t, http.StatusOK, w.Code)

		var plan domain.MealPlan
		decode(t, w, &plan)
		require.Len(t, plan.Breakfast, 1)
		require.Len(t, plan.Lunch, 1)
		require.Len(t, plan.Dinner, 1)
		assert.Equal(t, "Apple", plan.Breakfast[0].Name)
		assert.Equal(t, "Peanut Butter Toast", plan.Lunch[0].Name)
		assert.Equal(t, "Rice Bowl", plan.Dinner[0].Name)
	})

	t.Run("empty plan serializes empty slots", func(t *testing.T) {
		w := doRequest(router, http.MethodPost, "/api/v1/plans",
			`{"name":"Tiny","age":25,"calorieRequirement":50,"dietaryRestrictions":["Vegan"]}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"breakfast":[],"lunch":[],"dinner":[]}`, w.Body.String())
	})

	t.Run("lists plans for indexed profiles", func(t *testing.T) {
		require.Equal(t, http.StatusCreated, doRequest(router, http.MethodPost, "/api/v1/profiles", sathwikBody).Code)

		w := doRequest(router, http.MethodGet, "/api/v1/plans", "")
		require.Equal(t, http.StatusOK, w.Code)

		var response struct {
			Plans []domain.ProfilePlan `json:"plans"`
			Count int                  `json:"count"`
		}
		decode(t, w, &response)
		require.Equal(t, 1, response.Count)
		assert.Equal(t, "Sathwik", response.Plans[0].Profile.Name)
		assert.Equal(t, "Apple", response.Plans[0].Plan.Breakfast[0].Name)
	})

	t.Run("report renders text", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/api/v1/report", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
		assert.Contains(t, w.Body.String(), "Meal Plan for Sathwik:")
		assert.Contains(t, w.Body.String(), "Apple | Calories: 95 | Protein: 0.5g | Carbs: 25g | Category: Vegan")
	})
}

func TestUnknownRoutes(t *testing.T) {
	router := setupTestRouter(t)

	for _, path := range []string{"/api/v1/plan", "/api/plans", "/plans"} {
		w := doRequest(router, http.MethodGet, path, "")
		assert.Equal(t, http.StatusNotFound, w.Code, "path %s", path)
	}
}
