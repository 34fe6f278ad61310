package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/quizzone/internal/catalog"
	"github.com/SAP-F-2025/quizzone/internal/models"
	"github.com/SAP-F-2025/quizzone/internal/services"
	"github.com/SAP-F-2025/quizzone/internal/utils"
	"github.com/SAP-F-2025/quizzone/internal/validator"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// maxImportSize bounds uploaded catalog files
const maxImportSize = 10 << 20

type QuizHandler struct {
	BaseHandler
	catalog   catalog.Catalog
	clock     services.Clock
	validator *validator.Validator
}

func NewQuizHandler(
	cat catalog.Catalog,
	clock services.Clock,
	validator *validator.Validator,
	logger utils.Logger,
) *QuizHandler {
	return &QuizHandler{
		BaseHandler: NewBaseHandler(logger),
		catalog:     cat,
		clock:       clock,
		validator:   validator,
	}
}

// CategoryResponse describes a quiz category with its display attributes
type CategoryResponse struct {
	Name      models.QuizCategory `json:"name"`
	Icon      string              `json:"icon"`
	Color     string              `json:"color"`
	QuizCount int                 `json:"quiz_count"`
}

// ListQuizzes lists catalog quizzes
// @Summary List quizzes
// @Tags quizzes
// @Produce json
// @Param category query string false "Category filter"
// @Param difficulty query string false "Difficulty filter"
// @Param q query string false "Case-insensitive text search"
// @Success 200 {object} SuccessResponse{data=[]models.QuizSummary}
// @Failure 400 {object} ErrorResponse
// @Router /quizzes [get]
func (h *QuizHandler) ListQuizzes(c *gin.Context) {
	category, ok := parseCategoryQuery(c, "category")
	if !ok {
		return
	}
	difficulty, ok := parseDifficultyQuery(c, "difficulty")
	if !ok {
		return
	}

	quizzes := h.catalog.Search(catalog.SearchFilter{
		Category:   category,
		Difficulty: difficulty,
		Text:       c.Query("q"),
	})

	h.RespondWithSuccess(c, http.StatusOK, "Quizzes retrieved", summarize(quizzes))
}

// GetQuiz retrieves one quiz summary
// @Summary Get quiz
// @Tags quizzes
// @Produce json
// @Param id path string true "Quiz ID"
// @Success 200 {object} SuccessResponse{data=models.QuizSummary}
// @Failure 404 {object} ErrorResponse
// @Router /quizzes/{id} [get]
func (h *QuizHandler) GetQuiz(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	quiz, ok := h.catalog.QuizByID(id)
	if !ok {
		h.handleServiceError(c, services.ErrQuizNotFound)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Quiz retrieved", models.NewQuizSummary(quiz))
}

// ListCategories lists every category with its quiz count
// @Summary List categories
// @Tags quizzes
// @Produce json
// @Success 200 {object} SuccessResponse{data=[]CategoryResponse}
// @Router /categories [get]
func (h *QuizHandler) ListCategories(c *gin.Context) {
	categories := make([]CategoryResponse, 0, len(models.AllCategories()))
	for _, category := range models.AllCategories() {
		categories = append(categories, CategoryResponse{
			Name:      category,
			Icon:      category.Icon(),
			Color:     category.Color(),
			QuizCount: len(h.catalog.QuizzesByCategory(category)),
		})
	}

	h.RespondWithSuccess(c, http.StatusOK, "Categories retrieved", categories)
}

// ExportQuizzes downloads the catalog as an xlsx workbook
// @Summary Export quizzes
// @Tags quizzes
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Failure 500 {object} ErrorResponse
// @Router /quizzes/export [get]
func (h *QuizHandler) ExportQuizzes(c *gin.Context) {
	data, err := catalog.ExportQuizzesToExcel(h.catalog.AllQuizzes())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("quizzes-%s.xlsx", h.clock.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}

// ValidateImport checks an uploaded xlsx catalog without installing it
// @Summary Validate quiz import
// @Tags quizzes
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "xlsx catalog"
// @Success 200 {object} SuccessResponse{data=models.ImportResult}
// @Failure 400 {object} ErrorResponse
// @Router /quizzes/import [post]
func (h *QuizHandler) ValidateImport(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Missing file", err)
		return
	}
	if header.Size > maxImportSize {
		h.RespondWithError(c, http.StatusRequestEntityTooLarge, "File too large", nil)
		return
	}

	file, err := header.Open()
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Unreadable file", err)
		return
	}
	defer file.Close()

	result, err := catalog.ImportQuizzesFromExcel(file, h.validator)
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid workbook", err, err.Error())
		return
	}

	h.LogInfo(c, "Validated quiz import",
		"total_rows", result.TotalRows,
		"quizzes", len(result.Quizzes),
		"errors", result.ErrorCount)
	h.RespondWithSuccess(c, http.StatusOK, "Import validated", result)
}

// ListTips lists the financial tips
// @Summary List tips
// @Tags tips
// @Produce json
// @Success 200 {object} SuccessResponse{data=[]models.FinancialTip}
// @Router /tips [get]
func (h *QuizHandler) ListTips(c *gin.Context) {
	h.RespondWithSuccess(c, http.StatusOK, "Tips retrieved", h.catalog.AllTips())
}

// TodaysTip returns the tip dated today
// @Summary Today's tip
// @Tags tips
// @Produce json
// @Success 200 {object} SuccessResponse{data=models.FinancialTip}
// @Failure 404 {object} ErrorResponse
// @Router /tips/today [get]
func (h *QuizHandler) TodaysTip(c *gin.Context) {
	tip, ok := h.catalog.TodaysTip(h.clock.Now())
	if !ok {
		h.handleServiceError(c, services.ErrTipNotFound)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Tip retrieved", tip)
}

func summarize(quizzes []models.Quiz) []models.QuizSummary {
	summaries := make([]models.QuizSummary, 0, len(quizzes))
	for i := range quizzes {
		summaries = append(summaries, models.NewQuizSummary(&quizzes[i]))
	}
	return summaries
}
