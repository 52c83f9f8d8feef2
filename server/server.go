package server

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/minderapp/minder/internal/auth"
	"github.com/minderapp/minder/internal/config"
	"github.com/minderapp/minder/internal/logger"
	"github.com/minderapp/minder/internal/reminder"
	"github.com/minderapp/minder/internal/session"
	"github.com/minderapp/minder/internal/store"
)

// Server is the reminder web server
type Server struct {
	stores   *store.Manager
	sessions *session.Registry
	verifier *auth.Verifier
	engine   *reminder.Engine
	echo     *echo.Echo
}

// New creates a new server. Store initialization failure aborts startup.
func New(cfg *config.Config) (*Server, error) {
	stores, err := store.Open(cfg.DataDir, store.UsersStore, store.FailedSigninLog)
	if err != nil {
		return nil, err
	}

	common := auth.LoadPasswordSet(cfg.CommonPasswords)

	s := &Server{
		stores:   stores,
		sessions: session.NewRegistry(),
		verifier: auth.NewVerifier(stores, common),
		engine:   reminder.NewEngine(stores),
	}

	s.setupEcho()
	return s, nil
}

func (s *Server) setupEcho() {
	e := echo.New()
	e.HideBanner = true

	// Request logging middleware
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			err := next(c)

			res := c.Response()
			logger.Info("HTTP request",
				logger.F("method", req.Method),
				logger.F("uri", req.RequestURI),
				logger.F("remote", c.RealIP()),
				logger.F("status", res.Status),
				logger.F("duration", time.Since(start).String()))

			return err
		}
	})

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORS())

	// Health check
	e.GET("/health", s.handleHealth)

	// API v1
	api := e.Group("/api/v1")

	// Public endpoints
	api.POST("/register", s.handleRegister)
	api.POST("/login", s.handleLogin)

	// Session-bound endpoints
	protected := api.Group("")
	protected.Use(s.sessionMiddleware)
	protected.POST("/logout", s.handleLogout)
	protected.GET("/me", s.handleMe)
	protected.PUT("/password", s.handleUpdatePassword)
	protected.GET("/reminders", s.handleListReminders)
	protected.POST("/reminders", s.handleCreateReminder)

	s.echo = e
}

// Close closes the store connections
func (s *Server) Close() error {
	return s.stores.Close()
}

// Router returns the HTTP handler
func (s *Server) Router() http.Handler {
	return s.echo
}

// Start starts the server
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
