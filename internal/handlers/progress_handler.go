package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/quizzone/internal/models"
	"github.com/SAP-F-2025/quizzone/internal/services"
	"github.com/SAP-F-2025/quizzone/internal/utils"
)

type ProgressHandler struct {
	BaseHandler
	progressService services.ProgressService
}

func NewProgressHandler(progressService services.ProgressService, logger utils.Logger) *ProgressHandler {
	return &ProgressHandler{
		BaseHandler:     NewBaseHandler(logger),
		progressService: progressService,
	}
}

// ProgressResponse is the progress record with derived level information
type ProgressResponse struct {
	*models.UserProgress
	Level                int     `json:"level"`
	NextLevelRequirement int     `json:"next_level_requirement"`
	LevelProgress        float64 `json:"level_progress"`
}

// GetProgress returns the progress record
// @Summary Get progress
// @Tags progress
// @Produce json
// @Success 200 {object} SuccessResponse{data=ProgressResponse}
// @Router /progress [get]
func (h *ProgressHandler) GetProgress(c *gin.Context) {
	progress := h.progressService.Progress()
	level := progress.Level()

	h.RespondWithSuccess(c, http.StatusOK, "Progress retrieved", ProgressResponse{
		UserProgress:         progress,
		Level:                level,
		NextLevelRequirement: models.NextLevelRequirement(level),
		LevelProgress:        models.LevelProgress(progress.TotalScore),
	})
}

// GetSummary returns the profile statistics
// @Summary Get progress summary
// @Tags progress
// @Produce json
// @Success 200 {object} SuccessResponse{data=models.ProgressSummary}
// @Router /progress/summary [get]
func (h *ProgressHandler) GetSummary(c *gin.Context) {
	h.RespondWithSuccess(c, http.StatusOK, "Summary retrieved", h.progressService.Summary())
}

// GetRecommended lists quizzes matching the onboarding preferences
// @Summary Recommended quizzes
// @Tags progress
// @Produce json
// @Success 200 {object} SuccessResponse{data=[]models.QuizSummary}
// @Router /progress/recommended [get]
func (h *ProgressHandler) GetRecommended(c *gin.Context) {
	progress := h.progressService.Progress()

	var quizzes []models.Quiz
	seen := make(map[string]bool)
	for _, category := range progress.PreferredCategories {
		for _, quiz := range h.progressService.QuizzesByCategory(category) {
			if !seen[quiz.ID] {
				seen[quiz.ID] = true
				quizzes = append(quizzes, quiz)
			}
		}
	}
	if len(quizzes) == 0 {
		quizzes = h.progressService.QuizzesByDifficulty(progress.PreferredDifficulty)
	}

	h.RespondWithSuccess(c, http.StatusOK, "Recommended quizzes retrieved", summarize(quizzes))
}

// CompleteOnboarding stores the first-launch preferences
// @Summary Complete onboarding
// @Tags progress
// @Accept json
// @Produce json
// @Param request body services.OnboardingRequest true "Preferences"
// @Success 200 {object} SuccessResponse{data=models.UserProgress}
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /onboarding [post]
func (h *ProgressHandler) CompleteOnboarding(c *gin.Context) {
	var req services.OnboardingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err, err.Error())
		return
	}

	progress, err := h.progressService.CompleteOnboarding(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Onboarding completed", progress)
}
