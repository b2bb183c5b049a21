// Package router wires the HTTP handlers and middleware into a gin engine.
package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/dtroode/sessiongate/internal/api/http/cookie"
	"github.com/dtroode/sessiongate/internal/api/http/handler"
	"github.com/dtroode/sessiongate/internal/api/http/middleware"
	"github.com/dtroode/sessiongate/internal/logger"
	"github.com/dtroode/sessiongate/internal/model"
)

// Router builds the gin engine for the auth API.
type Router struct {
	authService    handler.AuthService
	gate           middleware.Gate
	cookies        *cookie.Jar
	contextManager model.ContextManager
	allowedOrigins []string
	logger         *logger.Logger
}

func New(
	authService handler.AuthService,
	gate middleware.Gate,
	cookies *cookie.Jar,
	contextManager model.ContextManager,
	allowedOrigins []string,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:    authService,
		gate:           gate,
		cookies:        cookies,
		contextManager: contextManager,
		allowedOrigins: allowedOrigins,
		logger:         logger,
	}
}

// Register returns an engine with logging, panic recovery, CORS and the
// /auth routes. Only /auth/profile is behind the session gate.
func (r *Router) Register() *gin.Engine {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.gate, r.cookies, r.contextManager, r.logger)

	e := gin.New()
	e.Use(logging.Handle)
	e.Use(gin.CustomRecoveryWithWriter(nil, r.recover))
	if len(r.allowedOrigins) > 0 {
		e.Use(cors.New(r.corsConfig()))
	}

	e.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	e.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
	})

	r.registerAuthRoutes(e, authenticate)

	return e
}

func (r *Router) registerAuthRoutes(e *gin.Engine, authenticate *middleware.Authenticate) {
	authHandler := handler.NewAuth(r.authService, r.cookies, r.contextManager, r.logger)

	auth := e.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/profile", authenticate.Handle, authHandler.Profile)
}

func (r *Router) corsConfig() cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowOrigins = r.allowedOrigins
	cfg.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	cfg.AllowCredentials = true
	cfg.MaxAge = 12 * time.Hour
	return cfg
}

func (r *Router) recover(c *gin.Context, recovered any) {
	r.logger.Error("HTTP handler panicked",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"panic", recovered)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
}
