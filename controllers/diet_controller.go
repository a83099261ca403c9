package controllers

import (
	"net/http"

	"github.com/carolinaesses/comocomo/services"

	"github.com/gin-gonic/gin"
)

type DietController struct {
	Svc *services.DietService
}

func NewDietController(svc *services.DietService) *DietController {
	return &DietController{Svc: svc}
}

func (h *DietController) GetDiet(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	diet, err := h.Svc.GetDiet(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if diet == nil {
		c.JSON(http.StatusOK, nil)
		return
	}
	c.JSON(http.StatusOK, diet)
}

func (h *DietController) UpsertDiet(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req services.DietRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	diet, err := h.Svc.UpsertDiet(c.Request.Context(), userID, req)
	if err != nil {
		c.JSON(serviceErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, diet)
}
