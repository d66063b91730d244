package web

import (
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	httpapi "task-desk.com/task-desk/internal/http"
	middleware "task-desk.com/task-desk/internal/http/middlewares"
	"task-desk.com/task-desk/internal/logging"
)

func Register(e *echo.Echo, h *Handler, rateLimitPerMinute int) {
	e.Use(middleware.RateLimiter(rateLimitPerMinute, time.Minute))

	e.GET("/healthz", h.Health)

	auth := e.Group("/auth")
	auth.POST("/register", h.Register)
	auth.POST("/login", h.Login)
	auth.POST("/logout", h.Logout)
	auth.GET("/profile", h.Profile, h.requireSession)

	e.GET("/dashboard", h.Dashboard, h.requireSession)

	tasks := e.Group("/tasks", h.requireSession)
	tasks.POST("", h.CreateTask)
	tasks.PUT("/:id", h.UpdateTask)
	tasks.DELETE("/:id", h.DeleteTask)
}

// NewServer builds the web front's echo instance.
func NewServer(h *Handler, rateLimitPerMinute int, log logrus.FieldLogger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = httpapi.ErrorHandler(log)
	e.Use(echomw.Recover())
	e.Use(logging.RequestLogger(log))

	Register(e, h, rateLimitPerMinute)
	return e
}
