package controllers

import (
	"io"
	"net/http"
	"strings"

	"github.com/carolinaesses/comocomo/services"

	"github.com/gin-gonic/gin"
)

type IngestController struct {
	Svc *services.IngestService
}

func NewIngestController(svc *services.IngestService) *IngestController {
	return &IngestController{Svc: svc}
}

// IngestText accepts a WhatsApp chat export as text/plain body or as the
// "file" field of a multipart form.
func (h *IngestController) IngestText(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	contentType := c.GetHeader("Content-Type")
	var text string
	switch {
	case strings.Contains(contentType, "text/plain"):
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		text = string(body)
	case strings.Contains(contentType, "multipart/form-data"):
		fh, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing file field"})
			return
		}
		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		defer f.Close()
		body, err := io.ReadAll(f)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		text = string(body)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "expected text/plain or multipart/form-data"})
		return
	}

	result, err := h.Svc.IngestChatExport(c.Request.Context(), userID, text)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}
