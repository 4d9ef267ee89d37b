package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/nutrimcp/backend/internal/domain"
	"github.com/nutrimcp/backend/internal/usecase"
)

// ServiceName is reported by the health check
const ServiceName = "swiss-nutrition-mcp-server"

// Handler holds dependencies for HTTP handlers
type Handler struct {
	foods     *usecase.FoodService
	languages *usecase.LanguageService
	version   string
	logger    zerolog.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(foods *usecase.FoodService, languages *usecase.LanguageService, version string, logger zerolog.Logger) *Handler {
	return &Handler{
		foods:     foods,
		languages: languages,
		version:   version,
		logger:    logger.With().Str("component", "http").Logger(),
	}
}

// RecipeNutritionRequest is the body of a recipe nutrition request
type RecipeNutritionRequest struct {
	Ingredients []domain.Ingredient `json:"ingredients"`
	Language    string              `json:"language"`
	UserID      string              `json:"userId"`
}

// ErrorResponse is returned for every failed request
type ErrorResponse struct {
	Error string           `json:"error"`
	Kind  domain.ErrorKind `json:"kind"`
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": ServiceName,
		"version": h.version,
	})
}

// CalculateRecipeNutrition aggregates the nutrition of the posted ingredients
func (h *Handler) CalculateRecipeNutrition(c *gin.Context) {
	var req RecipeNutritionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body: " + err.Error(),
			Kind:  domain.KindInvalidInput,
		})
		return
	}

	ctx := c.Request.Context()
	lang, err := h.languages.Resolve(ctx, req.Language, req.UserID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	result, err := h.foods.CalculateRecipeNutrition(ctx, req.Ingredients, lang)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetFood returns the details of one food
func (h *Handler) GetFood(c *gin.Context) {
	foodID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "food ID must be an integer",
			Kind:  domain.KindInvalidInput,
		})
		return
	}

	ctx := c.Request.Context()
	lang, err := h.languages.Resolve(ctx, c.Query("language"), c.Query("userId"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	food, err := h.foods.FoodDetails(ctx, foodID, lang)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, food)
}

// respondError maps the error class to a status code.
func (h *Handler) respondError(c *gin.Context, err error) {
	kind := domain.Kind(err)

	status := http.StatusBadGateway
	switch kind {
	case domain.KindInvalidInput:
		status = http.StatusBadRequest
	case domain.KindNotFound:
		status = http.StatusNotFound
	}

	if status >= http.StatusInternalServerError {
		h.logger.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
	}

	c.JSON(status, ErrorResponse{Error: err.Error(), Kind: kind})
}
