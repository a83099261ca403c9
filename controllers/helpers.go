package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/carolinaesses/comocomo/services"
	"github.com/carolinaesses/comocomo/utils"

	"github.com/gin-gonic/gin"
)

// --- shared helpers ---

// serviceErrorStatus maps validation failures to 400; anything else is a
// storage or downstream failure and reports as 500.
func serviceErrorStatus(err error) int {
	if errors.Is(err, services.ErrValidation) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func userIDFromCtx(c *gin.Context) (string, bool) {
	v, ok := c.Get("userID")
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}

// dateRangeFromQuery parses the from/to query params as YYYY-MM-DD day keys.
func dateRangeFromQuery(c *gin.Context) (from, to time.Time, ok bool) {
	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" || toStr == "" {
		c.JSON(400, gin.H{"error": "missing from/to"})
		return from, to, false
	}

	var err error
	if from, err = utils.NormalizeDate(fromStr); err != nil {
		c.JSON(400, gin.H{"error": "invalid from date"})
		return from, to, false
	}
	if to, err = utils.NormalizeDate(toStr); err != nil {
		c.JSON(400, gin.H{"error": "invalid to date"})
		return from, to, false
	}
	if to.Before(from) {
		c.JSON(400, gin.H{"error": "`to` must be on/after `from`"})
		return from, to, false
	}
	return from, to, true
}
