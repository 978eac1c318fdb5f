package api

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dsridhar11/mbot123/internal/domain"
	"github.com/dsridhar11/mbot123/internal/service/chat"
)

const sessionIDKey = "sid"

type ChatRequest struct {
	Message string `json:"message"`
}

type Handler struct {
	chat    *chat.Orchestrator
	reports domain.ReportStore
	log     zerolog.Logger
}

func NewHandler(o *chat.Orchestrator, reports domain.ReportStore, log zerolog.Logger) *Handler {
	return &Handler{chat: o, reports: reports, log: log}
}

// sessionID returns the opaque session token from the signed cookie,
// minting one on first contact.
func (h *Handler) sessionID(c *gin.Context) (string, error) {
	sess := sessions.Default(c)
	if sid, ok := sess.Get(sessionIDKey).(string); ok && sid != "" {
		return sid, nil
	}
	sid := uuid.NewString()
	sess.Set(sessionIDKey, sid)
	if err := sess.Save(); err != nil {
		return "", err
	}
	return sid, nil
}

// Home renders the landing page.
func (h *Handler) Home(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", nil)
}

// Chatbot renders the chat page and makes sure the session and its history
// exist before the first message arrives.
func (h *Handler) Chatbot(c *gin.Context) {
	sid, err := h.sessionID(c)
	if err != nil {
		h.writeError(c, err)
		return
	}
	if err := h.chat.EnsureSession(c.Request.Context(), sid); err != nil {
		h.writeError(c, err)
		return
	}
	c.HTML(http.StatusOK, "chatbot.html", nil)
}

// Chat handles one conversation turn.
func (h *Handler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		h.writeError(c, domain.ErrNoInput)
		return
	}

	sid, err := h.sessionID(c)
	if err != nil {
		h.writeError(c, err)
		return
	}

	reply, err := h.chat.Chat(c.Request.Context(), sid, req.Message)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

// ListReports returns all report filenames, newest first.
func (h *Handler) ListReports(c *gin.Context) {
	names, err := h.reports.List()
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reports": names})
}

// DownloadReport serves one report file as a raw download.
func (h *Handler) DownloadReport(c *gin.Context) {
	path, err := h.reports.Path(c.Param("filename"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.File(path)
}

// ReportContent returns one report's text as JSON.
func (h *Handler) ReportContent(c *gin.Context) {
	content, err := h.reports.Read(c.Param("filename"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"content": content})
}

// Healthz reports liveness.
func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
