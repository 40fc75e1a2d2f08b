// Package gin provides the local web chat surface: a JSON chat endpoint
// and an embedded single-page widget, the process's equivalent of a chat
// UI component.
package gin

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/relomate/relomate"
)

// Server serves the chat widget and API over HTTP. Session transcripts
// are held in process memory only; nothing survives a restart.
type Server struct {
	chatter relomate.Chatter
	router  *gin.Engine

	mu       sync.Mutex
	sessions map[string][]relomate.Message
}

// NewServer creates a new Server around the given Chatter.
func NewServer(chatter relomate.Chatter) *Server {
	s := &Server{
		chatter:  chatter,
		sessions: make(map[string][]relomate.Message),
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/", s.handleIndex)
	r.GET("/healthz", s.handleHealth)
	r.POST("/api/chat", s.handleChat)
	r.GET("/api/history/:session", s.handleHistory)
	s.router = r

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe runs the server until the context is canceled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.router}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleIndex(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", widgetHTML)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type chatRequest struct {
	SessionID string `json:"sessionId"`
	Message   string `json:"message"`
}

type chatResponse struct {
	SessionID string `json:"sessionId"`
	Reply     string `json:"reply"`
}

func (s *Server) handleChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message required"})
		return
	}
	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}

	reply, err := s.chatter.Chat(c.Request.Context(), req.Message)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": relomate.ErrorMessage(err)})
		return
	}

	s.mu.Lock()
	s.sessions[req.SessionID] = append(s.sessions[req.SessionID],
		relomate.Message{Role: relomate.RoleUser, Content: req.Message},
		relomate.Message{Role: relomate.RoleAssistant, Content: reply},
	)
	s.mu.Unlock()

	c.JSON(http.StatusOK, chatResponse{SessionID: req.SessionID, Reply: reply})
}

func (s *Server) handleHistory(c *gin.Context) {
	s.mu.Lock()
	history, ok := s.sessions[c.Param("session")]
	messages := make([]relomate.Message, len(history))
	copy(messages, history)
	s.mu.Unlock()

	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

func statusFromError(err error) int {
	switch relomate.ErrorCode(err) {
	case relomate.EINVALID:
		return http.StatusBadRequest
	case relomate.ENOTFOUND:
		return http.StatusNotFound
	case relomate.EUNAVAILABLE:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
