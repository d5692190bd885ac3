package ws

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/healthlens/healthlens-be/internal/engine"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // CORS policy is enforced by the HTTP middleware layer
	},
}

// messagesPerMinute caps analysis requests on a single connection
const messagesPerMinute = 30

// AnalyzeHandler handles WebSocket analysis connections: one connection,
// many analysis requests
type AnalyzeHandler struct {
	engine *engine.Engine
}

// NewAnalyzeHandler creates a new WebSocket analysis handler
func NewAnalyzeHandler(eng *engine.Engine) *AnalyzeHandler {
	return &AnalyzeHandler{engine: eng}
}

// OutgoingMessage is a frame sent to the client
type OutgoingMessage struct {
	Type    string      `json:"type"` // "result" or "error"
	Content string      `json:"content,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// HandleAnalyze upgrades the connection and serves analysis requests until
// the client disconnects
func (h *AnalyzeHandler) HandleAnalyze(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	limiter := rate.NewLimiter(rate.Limit(messagesPerMinute)/60.0, 5)

	for {
		var req engine.AnalysisRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		if !limiter.Allow() {
			h.send(conn, OutgoingMessage{Type: "error", Content: "Rate limit exceeded. Please slow down."})
			continue
		}

		result, err := h.engine.Analyze(req)
		if err != nil {
			h.send(conn, OutgoingMessage{Type: "error", Content: err.Error()})
			continue
		}

		h.send(conn, OutgoingMessage{Type: "result", Data: engine.ToAPI(result)})
	}
}

func (h *AnalyzeHandler) send(conn *websocket.Conn, msg OutgoingMessage) {
	if err := conn.WriteJSON(msg); err != nil {
		log.Printf("WebSocket write error: %v", err)
	}
}
