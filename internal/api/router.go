package api

import (
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const sessionCookieName = "medimate_session"

// RouterConfig carries what the router needs from application config.
type RouterConfig struct {
	SecretKey string
	WebDir    string
}

// NewRouter wires middleware and routes.
func NewRouter(cfg RouterConfig, h *Handler, log zerolog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(
		requestLogger(log),
		gin.Recovery(),
		limitBodySize(1<<20), // 1MB max body
		cors.New(cors.Config{
			AllowOrigins: []string{"*"},
			AllowMethods: []string{"GET", "POST", "OPTIONS"},
			AllowHeaders: []string{"Origin", "Content-Type"},
			MaxAge:       12 * time.Hour,
		}),
	)

	store := cookie.NewStore([]byte(cfg.SecretKey))
	router.Use(sessions.Sessions(sessionCookieName, store))

	if cfg.WebDir != "" {
		router.LoadHTMLGlob(filepath.Join(cfg.WebDir, "templates", "*.html"))
		router.Static("/static", filepath.Join(cfg.WebDir, "static"))
		router.GET("/", h.Home)
		router.GET("/chatbot", h.Chatbot)
	}

	router.POST("/chat", h.Chat)
	router.GET("/reports", h.ListReports)
	router.GET("/report/:filename", h.DownloadReport)
	router.GET("/report_content/:filename", h.ReportContent)
	router.GET("/healthz", h.Healthz)

	return router
}

func requestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	}
}

func limitBodySize(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
