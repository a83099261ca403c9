package controllers

import (
	"net/http"

	"github.com/carolinaesses/comocomo/services"

	"github.com/gin-gonic/gin"
)

type ScoringController struct {
	Svc *services.ScoringService
}

func NewScoringController(svc *services.ScoringService) *ScoringController {
	return &ScoringController{Svc: svc}
}

func (h *ScoringController) Recalculate(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	from, to, ok := dateRangeFromQuery(c)
	if !ok {
		return
	}

	results, err := h.Svc.RecalcDailyScores(c.Request.Context(), userID, from, to)
	if err != nil {
		// Some days may already be written; report both.
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "written": results})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(results), "results": results})
}

func (h *ScoringController) GetDailyScores(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	from, to, ok := dateRangeFromQuery(c)
	if !ok {
		return
	}

	scores, err := h.Svc.GetDailyScores(c.Request.Context(), userID, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, scores)
}
