package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/quizzone/internal/models"
)

func ParseStringIDParam(c *gin.Context, param string) string {
	idStr := c.Param(param)
	idStr = strings.TrimSpace(idStr)
	if idStr == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid " + param,
			Details: "ID cannot be empty",
		})
		return ""
	}
	return idStr
}

// parseCategoryQuery reads an optional category query parameter.
// It writes a 400 response and returns false when the value is unknown.
func parseCategoryQuery(c *gin.Context, key string) (models.QuizCategory, bool) {
	value := models.QuizCategory(strings.TrimSpace(c.Query(key)))
	if value != "" && !value.IsValid() {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid " + key,
			Details: map[string]interface{}{"allowed": models.AllCategories()},
			Code:    "validation_failed",
		})
		return "", false
	}
	return value, true
}

// parseDifficultyQuery reads an optional difficulty query parameter
func parseDifficultyQuery(c *gin.Context, key string) (models.DifficultyLevel, bool) {
	value := models.DifficultyLevel(strings.TrimSpace(c.Query(key)))
	if value != "" && !value.IsValid() {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid " + key,
			Details: map[string]interface{}{"allowed": models.AllDifficulties()},
			Code:    "validation_failed",
		})
		return "", false
	}
	return value, true
}
