// Package web serves the signed-in task dashboard as JSON. It keeps no task
// data of its own: every request builds a Board over the remote store with
// the caller's session credentials.
package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"task-desk.com/task-desk/internal/board"
	"task-desk.com/task-desk/internal/http/validators"
	"task-desk.com/task-desk/internal/session"
	"task-desk.com/task-desk/internal/view"
	"task-desk.com/task-desk/pkg/constants"
	"task-desk.com/task-desk/pkg/exceptions"
	model "task-desk.com/task-desk/pkg/models"
)

const (
	msgLoadFailed   = "Failed to load tasks. Please try again later."
	msgDeleteFailed = "Failed to delete task"
)

// API is the remote task store as the web front uses it.
type API interface {
	board.TaskStore
	Register(ctx context.Context, req model.RegisterRequest) (*model.AuthResponse, error)
	Login(ctx context.Context, email, password string) (*model.AuthResponse, error)
	Profile(ctx context.Context) (*model.User, error)
}

type Handler struct {
	api      API
	sessions session.Store
	ttl      time.Duration
	log      logrus.FieldLogger
}

func NewHandler(api API, sessions session.Store, ttl time.Duration, log logrus.FieldLogger) *Handler {
	return &Handler{
		api:      api,
		sessions: sessions,
		ttl:      ttl,
		log:      log,
	}
}

type dashboard struct {
	User         *model.User `json:"user"`
	Params       view.Params `json:"params"`
	Tasks        []taskCard  `json:"tasks"`
	Stats        view.Stats  `json:"stats"`
	Showing      int         `json:"showing"`
	EmptyMessage string      `json:"emptyMessage,omitempty"`
}

// taskCard is a visible task with the badge its status is drawn with.
type taskCard struct {
	model.Task
	Style constants.StatusStyle `json:"style"`
}

func newDashboard(user *model.User, params view.Params, res view.Result) dashboard {
	cards := make([]taskCard, len(res.Tasks))
	for i, t := range res.Tasks {
		cards[i] = taskCard{Task: t, Style: t.Status.Style()}
	}
	return dashboard{
		User:         user,
		Params:       params,
		Tasks:        cards,
		Stats:        res.Stats,
		Showing:      res.Showing,
		EmptyMessage: res.EmptyMessage,
	}
}

func (h *Handler) Register(c echo.Context) error {
	var form model.RegisterForm
	if err := c.Bind(&form); err != nil {
		return exceptions.ErrInvalidJSON
	}
	if err := validators.ValidateRegisterForm(&form); err != nil {
		return err
	}

	res, err := h.api.Register(c.Request().Context(), form.Request())
	if err != nil {
		return err
	}

	return h.signIn(c, res)
}

func (h *Handler) Login(c echo.Context) error {
	var req model.LoginRequest
	if err := c.Bind(&req); err != nil {
		return exceptions.ErrInvalidJSON
	}
	if err := validators.ValidateLoginRequest(&req); err != nil {
		return err
	}

	res, err := h.api.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return h.signIn(c, res)
}

func (h *Handler) signIn(c echo.Context, res *model.AuthResponse) error {
	sess, err := h.sessions.Load(c)
	if err != nil {
		return err
	}

	user := res.User()
	sess.Init(res.Token, user, h.ttl)
	if err := h.sessions.Save(c, sess); err != nil {
		return err
	}

	h.log.WithField("user_id", user.ID).Info("user signed in")
	return c.JSON(http.StatusOK, user)
}

func (h *Handler) Logout(c echo.Context) error {
	sess, err := h.sessions.Load(c)
	if err != nil {
		return err
	}
	if err := h.sessions.Clear(c, sess); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Logged out"})
}

func (h *Handler) Profile(c echo.Context) error {
	return c.JSON(http.StatusOK, currentSession(c).User)
}

func (h *Handler) Dashboard(c echo.Context) error {
	q := c.QueryParams()
	params, err := view.ParseParams(q.Get("status"), q.Get("search"), q.Get("sort"), q.Get("dir"))
	if err != nil {
		return err
	}

	sess := currentSession(c)
	b := h.board(sess)
	defer b.Close()

	b.SetParams(params)
	if toggle := q.Get("toggle"); toggle != "" {
		key, err := view.ParseSortKey(toggle)
		if err != nil {
			return err
		}
		b.ToggleSort(key)
	}

	if err := b.Load(sess.Context(c.Request().Context())); err != nil {
		if errors.Is(err, exceptions.ErrAuth) {
			_ = h.sessions.Clear(c, sess)
		}
		return failed(err, msgLoadFailed)
	}

	return c.JSON(http.StatusOK, newDashboard(sess.User, b.Params(), b.View()))
}

func (h *Handler) CreateTask(c echo.Context) error {
	var in model.TaskInput
	if err := c.Bind(&in); err != nil {
		return exceptions.ErrInvalidJSON
	}
	if err := validators.ValidateTaskRequest(&in); err != nil {
		return err
	}

	sess := currentSession(c)
	b := h.board(sess)
	defer b.Close()

	task, err := b.Create(sess.Context(c.Request().Context()), in)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, task)
}

func (h *Handler) UpdateTask(c echo.Context) error {
	var in model.TaskInput
	if err := c.Bind(&in); err != nil {
		return exceptions.ErrInvalidJSON
	}
	if err := validators.ValidateTaskRequest(&in); err != nil {
		return err
	}

	sess := currentSession(c)
	b := h.board(sess)
	defer b.Close()

	task, err := b.Update(sess.Context(c.Request().Context()), c.Param("id"), in)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) DeleteTask(c echo.Context) error {
	sess := currentSession(c)
	b := h.board(sess)
	defer b.Close()

	res, err := b.Delete(sess.Context(c.Request().Context()), c.Param("id"))
	if err != nil {
		return failed(err, msgDeleteFailed)
	}

	return c.JSON(http.StatusOK, res)
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

func (h *Handler) board(sess *session.Session) *board.Board {
	log := h.log
	if sess.User != nil {
		log = log.WithField("user_id", sess.User.ID)
	}
	return board.New(h.api, board.WithLogger(log))
}

// failed replaces the store's message with one for the user and keeps the
// status it failed with.
func failed(err error, message string) error {
	e := exceptions.FromStatus(exceptions.StatusCode(err), message)
	e.Err = err
	return e
}
