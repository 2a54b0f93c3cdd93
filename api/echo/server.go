package echoapi

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/classflow/gradego/core"
	"github.com/classflow/gradego/core/account"
	"github.com/classflow/gradego/core/announcement"
	"github.com/classflow/gradego/core/assessment"
	"github.com/classflow/gradego/core/attendance"
	"github.com/classflow/gradego/core/classroom"
	"github.com/classflow/gradego/core/planner"
	"github.com/classflow/gradego/core/student"
	"github.com/classflow/gradego/core/suggestion"
	"github.com/classflow/gradego/core/teacher"
	"github.com/classflow/gradego/core/tenant"
)

type (
	Options struct {
		Address        string
		DisableReqLogs bool
		Logger         core.Logger
		SignalShutdown func()

		AccountSvc      account.Service
		TenantSvc       tenant.Service
		TeacherSvc      teacher.Service
		StudentSvc      student.Service
		ClassSvc        classroom.Service
		AssessmentSvc   assessment.Service
		AttendanceSvc   attendance.Service
		AnnouncementSvc announcement.Service
		SuggestionSvc   suggestion.Service
		PlannerSvc      planner.Service
	}

	Server interface {
		http.Handler
		Start() error
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
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(core.Conf.Debug || core.Conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.opts.SignalShutdown)
	s.app.Debug = core.Conf.Debug

	s.app.GET("/", home)

	// portal navigation, gated by the access policy
	s.app.GET("/login", portalPage("login"), guardMiddleware)
	s.app.GET("/register", portalPage("register"), guardMiddleware)
	s.app.GET("/enroll", portalPage("enroll"), guardMiddleware)
	s.app.GET("/teacher*", portalPage("teacher portal"), guardMiddleware)
	s.app.GET("/student*", portalPage("student portal"), guardMiddleware)
	s.app.GET("/admin*", portalPage("admin portal"), guardMiddleware)

	v1 := s.app.Group("/v1")
	jwt := middleware.JWTWithConfig(appJWTConfig)

	registerAccountAPI(v1, s.opts.AccountSvc, s.opts.TenantSvc, s.opts.TeacherSvc, s.opts.StudentSvc)
	registerClassAPI(v1, jwt, s.opts.ClassSvc, s.opts.TeacherSvc, s.opts.StudentSvc)
	registerAssessmentAPI(v1, jwt, s.opts.AssessmentSvc, s.opts.ClassSvc, s.opts.TeacherSvc, s.opts.StudentSvc)
	registerAttendanceAPI(v1, jwt, s.opts.AttendanceSvc, s.opts.ClassSvc, s.opts.TeacherSvc, s.opts.StudentSvc)
	registerAnnouncementAPI(v1, jwt, s.opts.AnnouncementSvc, s.opts.ClassSvc, s.opts.TeacherSvc, s.opts.StudentSvc)
	registerSuggestionAPI(v1, jwt, s.opts.SuggestionSvc, s.opts.StudentSvc)
	registerPlannerAPI(v1, jwt, s.opts.PlannerSvc, s.opts.ClassSvc, s.opts.TeacherSvc, s.opts.StudentSvc)
}

func (s *server) Start() error {
	return s.app.Start(s.opts.Address)
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to GradeGo!")
}

// portalPage stands in for the web client's pages so guard redirects have
// somewhere to land.
func portalPage(name string) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		return ctx.String(http.StatusOK, name)
	}
}
