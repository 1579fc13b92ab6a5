package http

import (
	"bytes"
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mealmatch/backend/internal/domain"
	"github.com/mealmatch/backend/internal/report"
)

// Planner is the usecase surface the handlers need
type Planner interface {
	AddProfile(ctx context.Context, profile domain.UserProfile) error
	Profiles(ctx context.Context) []domain.UserProfile
	Foods(category domain.Category) []domain.FoodRecord
	MatchingMeals(ctx context.Context, profile domain.UserProfile) ([]domain.FoodRecord, error)
	GeneratePlan(ctx context.Context, profile domain.UserProfile) (domain.MealPlan, error)
	Plans(ctx context.Context) ([]domain.ProfilePlan, error)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	planner Planner
}

// NewHandler creates a new HTTP handler
func NewHandler(planner Planner) *Handler {
	return &Handler{planner: planner}
}

// profileRequest is the JSON body accepted wherever a profile is supplied
type profileRequest struct {
	Name                string   `json:"name" binding:"required"`
	Age                 int      `json:"age" binding:"required,gt=0"`
	DietaryPreference   string   `json:"dietaryPreference"`
	CalorieRequirement  float64  `json:"calorieRequirement" binding:"required,gt=0"`
	DietaryRestrictions []string `json:"dietaryRestrictions"`
}

func (r profileRequest) toProfile() (domain.UserProfile, error) {
	restrictions := make([]domain.Category, 0, len(r.DietaryRestrictions))
	for _, label := range r.DietaryRestrictions {
		c, err := domain.ParseCategory(label)
		if err != nil {
			return domain.UserProfile{}, err
		}
		restrictions = append(restrictions, c)
	}
	return domain.UserProfile{
		Name:                r.Name,
		Age:                 r.Age,
		DietaryPreference:   r.DietaryPreference,
		CalorieRequirement:  r.CalorieRequirement,
		DietaryRestrictions: restrictions,
	}, nil
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "mealmatch-backend",
		"version": "1.0.0",
	})
}

// ListProfiles returns indexed profiles in ascending calorie order
func (h *Handler) ListProfiles(c *gin.Context) {
	profiles := h.planner.Profiles(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"profiles": profiles,
		"count":    len(profiles),
	})
}

// CreateProfile adds a profile to the index
func (h *Handler) CreateProfile(c *gin.Context) {
	profile, ok := bindProfile(c)
	if !ok {
		return
	}

	if err := h.planner.AddProfile(c.Request.Context(), profile); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, profile)
}

// ListFoods returns the loaded food records, optionally filtered by ?category=
func (h *Handler) ListFoods(c *gin.Context) {
	var category domain.Category
	if label := c.Query("category"); label != "" {
		parsed, err := domain.ParseCategory(label)
		if err != nil {
			respondError(c, err)
			return
		}
		category = parsed
	}

	foods := h.planner.Foods(category)
	c.JSON(http.StatusOK, gin.H{
		"foods": foods,
		"count": len(foods),
	})
}

// MatchMeals returns every food the posted profile may eat
func (h *Handler) MatchMeals(c *gin.Context) {
	profile, ok := bindProfile(c)
	if !ok {
		return
	}

	meals, err := h.planner.MatchingMeals(c.Request.Context(), profile)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"meals": meals,
		"count": len(meals),
	})
}

// GeneratePlan returns the meal plan for the posted profile
func (h *Handler) GeneratePlan(c *gin.Context) {
	profile, ok := bindProfile(c)
	if !ok {
		return
	}

	plan, err := h.planner.GeneratePlan(c.Request.Context(), profile)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, plan)
}

// ListPlans returns a plan for every indexed profile
func (h *Handler) ListPlans(c *gin.Context) {
	plans, err := h.planner.Plans(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"plans": plans,
		"count": len(plans),
	})
}

// Report renders the profile listing and all plans as plain text
func (h *Handler) Report(c *gin.Context) {
	plans, err := h.planner.Plans(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := report.Full(&buf, plans); err != nil {
		respondError(c, err)
		return
	}

	c.Data(http.StatusOK, "text/plain; charset=utf-8", buf.Bytes())
}

func bindProfile(c *gin.Context) (domain.UserProfile, bool) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return domain.UserProfile{}, false
	}

	profile, err := req.toProfile()
	if err != nil {
		respondError(c, err)
		return domain.UserProfile{}, false
	}
	return profile, true
}

// respondError maps domain errors to HTTP status codes
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidProfile), errors.Is(err, domain.ErrInvalidCategory):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrDuplicateCalorieKey):
		status = http.StatusConflict
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status = http.StatusRequestTimeout
	}

	if status == http.StatusInternalServerError {
		log.Printf("[HTTP] %s %s failed (request_id=%s): %v",
			c.Request.Method, c.Request.URL.Path, GetRequestID(c), err)
	}

	c.JSON(status, gin.H{"error": err.Error()})
}
