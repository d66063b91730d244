package http

import (
	"time"

	"github.com/labstack/echo/v4"

	middleware "task-desk.com/task-desk/internal/http/middlewares"
)

// Register mounts the task API under prefix (for example "/api").
func Register(e *echo.Echo, prefix string, h *Handler, auth middleware.Authenticator, rateLimitPerMinute int) {
	e.Use(middleware.RateLimiter(rateLimitPerMinute, time.Minute))

	api := e.Group(prefix)
	requireToken := middleware.RequireToken(auth)

	api.POST("/auth/register", h.Register)
	api.POST("/auth/login", h.Login)
	api.GET("/auth/profile", h.Profile, requireToken)

	tasks := api.Group("/tasks", requireToken)
	tasks.GET("", h.ListTasks)
	tasks.POST("", h.CreateTask)
	tasks.GET("/:id", h.GetTask)
	tasks.PUT("/:id", h.UpdateTask)
	tasks.DELETE("/:id", h.DeleteTask)
}
