package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/quizzone/internal/events"
	"github.com/SAP-F-2025/quizzone/internal/services"
	"github.com/SAP-F-2025/quizzone/internal/utils"
	"github.com/SAP-F-2025/quizzone/internal/validator"
)

type HandlerManager struct {
	quizHandler      *QuizHandler
	sessionHandler   *SessionHandler
	progressHandler  *ProgressHandler
	websocketHandler *WebSocketHandler
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	subscriber events.EventSubscriber,
	validator *validator.Validator,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		quizHandler:      NewQuizHandler(serviceManager.Catalog(), serviceManager.Clock(), validator, logger),
		sessionHandler:   NewSessionHandler(serviceManager.Session(), logger),
		progressHandler:  NewProgressHandler(serviceManager.Progress(), logger),
		websocketHandler: NewWebSocketHandler(serviceManager.Session(), serviceManager.Progress(), subscriber, logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", HealthCheck)

	v1 := router.Group("/api/v1")
	{
		// Catalog routes
		quizzes := v1.Group("/quizzes")
		{
			quizzes.GET("", hm.quizHandler.ListQuizzes)
			quizzes.GET("/export", hm.quizHandler.ExportQuizzes)
			quizzes.POST("/import", hm.quizHandler.ValidateImport)
			quizzes.GET("/:id", hm.quizHandler.GetQuiz)
		}
		v1.GET("/categories", hm.quizHandler.ListCategories)

		tips := v1.Group("/tips")
		{
			tips.GET("", hm.quizHandler.ListTips)
			tips.GET("/today", hm.quizHandler.TodaysTip)
		}

		// Session routes
		session := v1.Group("/session")
		{
			session.GET("", hm.sessionHandler.GetSession)
			session.GET("/result", hm.sessionHandler.GetResult)
			session.POST("/start", hm.sessionHandler.StartSession)
			session.POST("/select", hm.sessionHandler.SelectAnswer)
			session.POST("/submit", hm.sessionHandler.SubmitAnswer)
			session.POST("/next", hm.sessionHandler.NextQuestion)
			session.POST("/reset", hm.sessionHandler.ResetSession)
		}

		// Progress routes
		progress := v1.Group("/progress")
		{
			progress.GET("", hm.progressHandler.GetProgress)
			progress.GET("/summary", hm.progressHandler.GetSummary)
			progress.GET("/recommended", hm.progressHandler.GetRecommended)
		}
		v1.POST("/onboarding", hm.progressHandler.CompleteOnboarding)

		v1.GET("/ws", hm.websocketHandler.HandleWebSocket)
	}
}

// HealthCheck reports liveness
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "quizzone",
	})
}
