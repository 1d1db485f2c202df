package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AhmedZafar5533/fitness-sub000/services"
)

// RecommendationController is the validate-then-execute boundary for
// untrusted recommendation payloads.
type RecommendationController struct {
	validator *services.RecommendationValidator
	executor  *services.RecommendationExecutor
	builder   *services.NutritionContextBuilder
}

func NewRecommendationController(
	validator *services.RecommendationValidator,
	executor *services.RecommendationExecutor,
	builder *services.NutritionContextBuilder,
) *RecommendationController {
	return &RecommendationController{validator: validator, executor: executor, builder: builder}
}

// Apply accepts {recommendation | recommendations} — a single object or an
// array — validates the batch, executes the accepted subset, and returns
// {valid, invalid, results} (results only when something validated).
func (rc *RecommendationController) Apply(c *gin.Context) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	raw, ok := body["recommendations"]
	if !ok {
		if single, present := body["recommendation"]; present {
			raw = []any{single}
		}
	}
	if raw == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recommendation or recommendations required"})
		return
	}
	// Either key may carry a single object; normalize it to a one-element
	// batch. Anything else non-array falls through to the validator's gate.
	if _, isArr := raw.([]any); !isArr {
		if _, isObj := raw.(map[string]any); isObj {
			raw = []any{raw}
		}
	}

	userID := c.GetUint("userID")
	result, err := rc.validator.Validate(c.Request.Context(), raw, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := gin.H{"valid": result.Valid, "invalid": result.Invalid}
	if len(result.Valid) > 0 {
		resp["results"] = rc.executor.Execute(c.Request.Context(), result.Valid, userID)
	}
	c.JSON(http.StatusOK, resp)
}

// Context returns the snapshot that seeds the nutrition-assistant
// conversation: profile, today's stats, recent meals.
func (rc *RecommendationController) Context(c *gin.Context) {
	userID := c.GetUint("userID")
	snapshot, err := rc.builder.Build(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, snapshot)
}
