package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	middleware "task-desk.com/task-desk/internal/http/middlewares"
	"task-desk.com/task-desk/internal/http/validators"
	"task-desk.com/task-desk/internal/services"
	"task-desk.com/task-desk/pkg/exceptions"
	model "task-desk.com/task-desk/pkg/models"
)

type Handler struct {
	taskService *services.TaskService
	authService *services.AuthService
}

func NewHandler(taskService *services.TaskService, authService *services.AuthService) *Handler {
	return &Handler{
		taskService: taskService,
		authService: authService,
	}
}

func (h *Handler) Register(c echo.Context) error {
	var req model.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return exceptions.ErrInvalidJSON
	}
	if err := validators.ValidateRegisterRequest(&req); err != nil {
		return err
	}

	res, err := h.authService.Register(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, res)
}

func (h *Handler) Login(c echo.Context) error {
	var req model.LoginRequest
	if err := c.Bind(&req); err != nil {
		return exceptions.ErrInvalidJSON
	}
	if err := validators.ValidateLoginRequest(&req); err != nil {
		return err
	}

	res, err := h.authService.Login(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, res)
}

func (h *Handler) Profile(c echo.Context) error {
	user, err := h.authService.Profile(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, user)
}

func (h *Handler) CreateTask(c echo.Context) error {
	var req model.TaskInput
	if err := c.Bind(&req); err != nil {
		return exceptions.ErrInvalidJSON
	}
	if err := validators.ValidateTaskRequest(&req); err != nil {
		return err
	}

	task, err := h.taskService.CreateTask(c.Request().Context(), middleware.UserID(c), req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, task)
}

func (h *Handler) GetTask(c echo.Context) error {
	task, err := h.taskService.GetTask(c.Request().Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) ListTasks(c echo.Context) error {
	tasks, err := h.taskService.ListTasks(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, tasks)
}

func (h *Handler) UpdateTask(c echo.Context) error {
	var req model.TaskInput
	if err := c.Bind(&req); err != nil {
		return exceptions.ErrInvalidJSON
	}
	if err := validators.ValidateTaskRequest(&req); err != nil {
		return err
	}

	task, err := h.taskService.UpdateTask(c.Request().Context(), middleware.UserID(c), c.Param("id"), req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) DeleteTask(c echo.Context) error {
	if err := h.taskService.DeleteTask(c.Request().Context(), middleware.UserID(c), c.Param("id")); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, model.DeleteResult{Message: "Task removed"})
}
