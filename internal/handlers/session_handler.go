package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/quizzone/internal/models"
	"github.com/SAP-F-2025/quizzone/internal/services"
	"github.com/SAP-F-2025/quizzone/internal/utils"
)

type SessionHandler struct {
	BaseHandler
	sessionService services.SessionService
}

func NewSessionHandler(sessionService services.SessionService, logger utils.Logger) *SessionHandler {
	return &SessionHandler{
		BaseHandler:    NewBaseHandler(logger),
		sessionService: sessionService,
	}
}

// ===== REQUEST STRUCTURES =====

type StartSessionRequest struct {
	QuizID string `json:"quiz_id" binding:"required"`
}

type SelectAnswerRequest struct {
	Index *int `json:"index" binding:"required"`
}

// StartSession starts a play-through of a catalog quiz
// @Summary Start quiz session
// @Tags session
// @Accept json
// @Produce json
// @Param request body StartSessionRequest true "Quiz to play"
// @Success 200 {object} SuccessResponse{data=models.SessionSnapshot}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /session/start [post]
func (h *SessionHandler) StartSession(c *gin.Context) {
	var req StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err, err.Error())
		return
	}

	snapshot, err := h.sessionService.StartQuiz(c.Request.Context(), req.QuizID)
	h.respondWithSnapshot(c, "Quiz started", snapshot, err)
}

// SelectAnswer selects an option of the current question
// @Summary Select answer
// @Tags session
// @Accept json
// @Produce json
// @Param request body SelectAnswerRequest true "Option index"
// @Success 200 {object} SuccessResponse{data=models.SessionSnapshot}
// @Failure 409 {object} ErrorResponse{details=models.SessionSnapshot}
// @Router /session/select [post]
func (h *SessionHandler) SelectAnswer(c *gin.Context) {
	var req SelectAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err, err.Error())
		return
	}

	snapshot, err := h.sessionService.SelectAnswer(c.Request.Context(), *req.Index)
	h.respondWithSnapshot(c, "Answer selected", snapshot, err)
}

// SubmitAnswer grades the selected answer
// @Summary Submit answer
// @Tags session
// @Produce json
// @Success 200 {object} SuccessResponse{data=models.SessionSnapshot}
// @Failure 409 {object} ErrorResponse{details=models.SessionSnapshot}
// @Router /session/submit [post]
func (h *SessionHandler) SubmitAnswer(c *gin.Context) {
	snapshot, err := h.sessionService.SubmitAnswer(c.Request.Context())
	h.respondWithSnapshot(c, "Answer submitted", snapshot, err)
}

// NextQuestion moves on after the explanation
// @Summary Next question
// @Tags session
// @Produce json
// @Success 200 {object} SuccessResponse{data=models.SessionSnapshot}
// @Failure 409 {object} ErrorResponse{details=models.SessionSnapshot}
// @Router /session/next [post]
func (h *SessionHandler) NextQuestion(c *gin.Context) {
	snapshot, err := h.sessionService.NextQuestion(c.Request.Context())
	h.respondWithSnapshot(c, "Moved to next step", snapshot, err)
}

// ResetSession abandons the current session
// @Summary Reset session
// @Tags session
// @Produce json
// @Success 200 {object} SuccessResponse{data=models.SessionSnapshot}
// @Router /session/reset [post]
func (h *SessionHandler) ResetSession(c *gin.Context) {
	snapshot := h.sessionService.ResetQuiz(c.Request.Context())
	h.RespondWithSuccess(c, http.StatusOK, "Session reset", snapshot)
}

// GetSession returns the current snapshot
// @Summary Get session
// @Tags session
// @Produce json
// @Success 200 {object} SuccessResponse{data=models.SessionSnapshot}
// @Router /session [get]
func (h *SessionHandler) GetSession(c *gin.Context) {
	h.RespondWithSuccess(c, http.StatusOK, "Session retrieved", h.sessionService.Snapshot())
}

// GetResult returns the result of a completed session
// @Summary Get session result
// @Tags session
// @Produce json
// @Success 200 {object} SuccessResponse{data=models.QuizResult}
// @Failure 409 {object} ErrorResponse
// @Router /session/result [get]
func (h *SessionHandler) GetResult(c *gin.Context) {
	result, err := h.sessionService.Result()
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Result retrieved", result)
}

// respondWithSnapshot answers an intent. Rejected intents carry the unchanged snapshot.
func (h *SessionHandler) respondWithSnapshot(c *gin.Context, message string, snapshot models.SessionSnapshot, err error) {
	if err == nil {
		h.RespondWithSuccess(c, http.StatusOK, message, snapshot)
		return
	}

	if services.IsInvalidIntent(err) && !errors.Is(err, services.ErrSessionClosed) {
		h.RespondWithError(c, http.StatusConflict, err.Error(), err, snapshot)
		return
	}
	h.handleServiceError(c, err)
}
