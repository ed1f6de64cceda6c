package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"edupro/core"
	"edupro/core/grade"
	"edupro/core/lesson"
	"edupro/core/user"
)

type (
	ServerDeps struct {
		Conf       *core.Config
		Logger     core.Logger
		UserSvc    user.Service
		LessonSvc  lesson.Service
		GradeSvc   grade.Service
		Advisor    core.Advisor
		Validate   *validator.Validate
		Translator ut.Translator
	}

	Server struct {
		deps     ServerDeps
		app      *echo.Echo
		errs     chan error
		shutdown chan os.Signal
	}
)

func NewServer(deps ServerDeps) *Server {
	s := &Server{
		deps:     deps,
		app:      echo.New(),
		errs:     make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *Server) setup() {
	conf := s.deps.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !conf.TestMode {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.SignalShutdown)
	s.app.Debug = conf.Debug

	s.app.GET("/", home(s.deps.UserSvc))

	v1 := s.app.Group("/v1")
	jwt := initAuth(conf)

	registerUserAPI(v1, jwt, s.deps.UserSvc, s.deps.Validate)
	registerLessonAPI(v1, jwt, s.deps.LessonSvc, s.deps.UserSvc, s.deps.Advisor, s.deps.Validate)
	registerGradeAPI(v1, jwt, s.deps.GradeSvc, s.deps.UserSvc, s.deps.Advisor, s.deps.Validate)
}

func (s *Server) Start() {
	s.errs <- s.app.Start(s.deps.Conf.Server.Addr)
}

func (s *Server) Errors() <-chan error {
	return s.errs
}

func (s *Server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

// SignalShutdown initiates a graceful shutdown; used when an integrity
// issue is caught and the app cannot safely keep serving.
func (s *Server) SignalShutdown() {
	s.shutdown <- syscall.SIGTERM
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *Server) Close() error {
	return s.app.Close()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

// home resolves the landing path for the caller: the role home for an
// authenticated user, the login page otherwise. Auth here is optional;
// a missing or bad token is not an error.
func home(svc user.Service) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		landing := user.LoginPath
		if claims, err := parseHeaderClaims(ctx); err == nil {
			if usr, err := svc.GetByID(claims.Subject); err == nil {
				landing = user.LandingPath(&usr)
			}
		}
		return ctx.JSON(http.StatusOK, LandingResponse{Landing: landing})
	}
}
