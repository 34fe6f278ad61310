package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/SAP-F-2025/quizzone/internal/events"
	"github.com/SAP-F-2025/quizzone/internal/models"
	"github.com/SAP-F-2025/quizzone/internal/services"
	"github.com/SAP-F-2025/quizzone/internal/utils"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4 * 1024
	sendBufferSize = 64
)

// Stream message types
const (
	StreamSession  = "session"
	StreamProgress = "progress"
	StreamEvent    = "event"
	StreamError    = "error"
)

// Intents accepted from the client
const (
	IntentStart  = "start"
	IntentSelect = "select"
	IntentSubmit = "submit"
	IntentNext   = "next"
	IntentReset  = "reset"
)

// StreamMessage is the envelope of every frame sent to a client
type StreamMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// IntentMessage is a client frame driving the session engine
type IntentMessage struct {
	Type   string `json:"type"`
	QuizID string `json:"quiz_id,omitempty"`
	Index  *int   `json:"index,omitempty"`
}

type WebSocketHandler struct {
	BaseHandler
	sessionService  services.SessionService
	progressService services.ProgressService
	subscriber      events.EventSubscriber
	upgrader        websocket.Upgrader
}

// NewWebSocketHandler streams snapshots to local UIs. subscriber may be nil
// when the configured publisher cannot deliver events in-process.
func NewWebSocketHandler(
	sessionService services.SessionService,
	progressService services.ProgressService,
	subscriber events.EventSubscriber,
	logger utils.Logger,
) *WebSocketHandler {
	return &WebSocketHandler{
		BaseHandler:     NewBaseHandler(logger),
		sessionService:  sessionService,
		progressService: progressService,
		subscriber:      subscriber,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// HandleWebSocket upgrades the connection and starts streaming
// @Summary State stream
// @Tags stream
// @Router /ws [get]
func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.LogError(c, err, "Failed to upgrade connection")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	client := newStreamClient(conn, h.logger.With("request_id", requestID(c)))

	unsubscribeSession := h.sessionService.Subscribe(func(snapshot models.SessionSnapshot) {
		client.enqueue(StreamSession, snapshot)
	})
	unsubscribeProgress := h.progressService.Subscribe(func(progress *models.UserProgress) {
		client.enqueue(StreamProgress, progress)
	})

	if h.subscriber != nil {
		stream, err := h.subscriber.Subscribe(ctx)
		if err != nil {
			h.LogError(c, err, "Failed to subscribe to progress events")
		} else {
			go client.forwardEvents(stream)
		}
	}

	client.enqueue(StreamSession, h.sessionService.Snapshot())
	client.enqueue(StreamProgress, h.progressService.Progress())

	h.LogInfo(c, "WebSocket client connected")

	go client.writePump()
	go func() {
		defer func() {
			unsubscribeSession()
			unsubscribeProgress()
			cancel()
			client.close()
		}()
		client.readPump(h.handleIntent)
	}()
}

// handleIntent applies a client intent. Rejections are reported back on the stream;
// successful intents reach the client through the session subscription.
func (h *WebSocketHandler) handleIntent(client *streamClient, msg IntentMessage) {
	ctx := context.Background()

	var err error
	switch msg.Type {
	case IntentStart:
		_, err = h.sessionService.StartQuiz(ctx, msg.QuizID)
	case IntentSelect:
		if msg.Index == nil {
			client.sendError("index is required", "validation_failed")
			return
		}
		_, err = h.sessionService.SelectAnswer(ctx, *msg.Index)
	case IntentSubmit:
		_, err = h.sessionService.SubmitAnswer(ctx)
	case IntentNext:
		_, err = h.sessionService.NextQuestion(ctx)
	case IntentReset:
		h.sessionService.ResetQuiz(ctx)
	default:
		client.sendError("unknown message type", "unknown_type")
		return
	}

	if err != nil {
		client.sendError(err.Error(), errorCode(err))
	}
}

// ===== CLIENT =====

type streamClient struct {
	conn      *websocket.Conn
	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
	logger    utils.Logger
}

func newStreamClient(conn *websocket.Conn, logger utils.Logger) *streamClient {
	return &streamClient{
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
		done:   make(chan struct{}),
		logger: logger,
	}
}

// enqueue never blocks; it runs inside state subscriptions.
// A client that cannot keep up is disconnected.
func (c *streamClient) enqueue(msgType string, payload interface{}) {
	data, err := json.Marshal(StreamMessage{Type: msgType, Payload: payload})
	if err != nil {
		c.logger.LogError(err, "Failed to marshal stream message", "type", msgType)
		return
	}

	select {
	case <-c.done:
	case c.send <- data:
	default:
		c.logger.Warn("Client send buffer full, closing connection")
		c.close()
	}
}

func (c *streamClient) sendError(message, code string) {
	c.enqueue(StreamError, ErrorResponse{Message: message, Code: code})
}

func (c *streamClient) close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}

func (c *streamClient) forwardEvents(stream <-chan *events.ProgressEvent) {
	for {
		select {
		case <-c.done:
			return
		case event, ok := <-stream:
			if !ok {
				return
			}
			c.enqueue(StreamEvent, event)
		}
	}
}

func (c *streamClient) readPump(handle func(*streamClient, IntentMessage)) {
	defer c.conn.Close()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn("WebSocket read failed", "error", err)
			}
			return
		}

		var msg IntentMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			c.sendError("invalid message format", "invalid_message")
			continue
		}
		handle(c, msg)
	}
}

func (c *streamClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return

		case message := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.logger.Debug("WebSocket write failed", "error", err)
				c.close()
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.close()
				return
			}
		}
	}
}
