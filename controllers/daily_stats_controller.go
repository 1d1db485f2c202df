package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AhmedZafar5533/fitness-sub000/services"
)

type DailyStatsController struct {
	stats *services.DailyStatsService
}

func NewDailyStatsController(stats *services.DailyStatsService) *DailyStatsController {
	return &DailyStatsController{stats: stats}
}

// Today returns (creating if needed) the current day's aggregate.
func (dc *DailyStatsController) Today(c *gin.Context) {
	userID := c.GetUint("userID")
	stats, err := dc.stats.Today(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (dc *DailyStatsController) AddWater(c *gin.Context) {
	var body struct {
		AmountMl float64 `json:"amount_ml"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.AmountMl <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "positive amount_ml required"})
		return
	}

	userID := c.GetUint("userID")
	stats, err := dc.stats.AddWater(c.Request.Context(), userID, body.AmountMl)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats, "amount_ml": body.AmountMl})
}

func (dc *DailyStatsController) SetGoal(c *gin.Context) {
	var body struct {
		GoalType string  `json:"goalType"`
		Amount   float64 `json:"amount"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetUint("userID")
	stats, err := dc.stats.SetGoal(c.Request.Context(), userID, body.GoalType, body.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}
