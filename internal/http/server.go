package http

import (
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"task-desk.com/task-desk/internal/logging"
	repository "task-desk.com/task-desk/internal/repositories"
	"task-desk.com/task-desk/internal/services"
)

type Options struct {
	Prefix     string
	JWTSecret  string
	TokenTTL   time.Duration
	RateLimit  int
	BcryptCost int
}

// NewServer wires the stub task API on top of db.
func NewServer(db *gorm.DB, opts Options, log logrus.FieldLogger) *echo.Echo {
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 7 * 24 * time.Hour
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 120
	}

	taskService := services.NewTaskService(repository.NewTaskRepository(db), log)
	authService := services.NewAuthService(
		repository.NewUserRepository(db),
		services.NewPasswordHasher(opts.BcryptCost),
		services.NewTokenManager(opts.JWTSecret, opts.TokenTTL),
		log,
	)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = ErrorHandler(log)
	e.Use(echomw.Recover())
	e.Use(logging.RequestLogger(log))

	Register(e, opts.Prefix, NewHandler(taskService, authService), authService, opts.RateLimit)
	return e
}
