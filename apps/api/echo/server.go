package echoapi

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/sajidbaba1/fithub/core"
	"github.com/sajidbaba1/fithub/core/analytics"
	"github.com/sajidbaba1/fithub/core/class"
	"github.com/sajidbaba1/fithub/core/member"
	"github.com/sajidbaba1/fithub/core/plan"
	"github.com/sajidbaba1/fithub/core/report"
	"github.com/sajidbaba1/fithub/core/trainer"
	"github.com/sajidbaba1/fithub/core/user"
)

type (
	Options struct {
		Address        string
		DisableReqLogs bool
		Logger         core.Logger
		ShutdownFn     func()

		UserSvc      user.Service
		MemberSvc    member.Service
		TrainerSvc   trainer.Service
		ClassSvc     class.Service
		AnalyticsSvc analytics.Service
		ReportSvc    report.Service
		PlanSvc      plan.Service
	}

	Server interface {
		http.Handler
		Start()
		Stop(context.Context) error
	}

	server struct {
		opts *Options
		app  *echo.Echo
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	s := &server{
		opts: opts,
		app:  echo.New(),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	appJWTConfig.SigningKey = core.Conf.SecretKey

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(core.Conf.Debug || core.Conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.opts.ShutdownFn)
	s.app.Debug = core.Conf.Debug

	s.app.GET("/", home)

	v1 := s.app.Group("/v1")
	jwt := middleware.JWTWithConfig(appJWTConfig)

	registerUserAPI(v1, jwt, s.opts.UserSvc)
	registerMemberAPI(v1, jwt, s.opts.MemberSvc, s.opts.UserSvc)
	registerTrainerAPI(v1, jwt, s.opts.TrainerSvc, s.opts.UserSvc)
	registerClassAPI(v1, jwt, s.opts.ClassSvc)
	registerAnalyticsAPI(v1, jwt, s.opts.AnalyticsSvc)
	registerReportAPI(v1, jwt, s.opts.ReportSvc)
	registerPlanAPI(v1, jwt, s.opts.PlanSvc, s.opts.MemberSvc, s.opts.ClassSvc)
}

func (s *server) Start() {
	s.app.Logger.Fatal(s.app.Start(s.opts.Address))
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to FitHub API!")
}
