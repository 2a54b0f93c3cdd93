package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	echoapi "github.com/classflow/gradego/api/echo"
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
	emailsvc "github.com/classflow/gradego/services/email"
	sendgridmail "github.com/classflow/gradego/services/email/sendgrid"
	logsvc "github.com/classflow/gradego/services/logger"
	"github.com/classflow/gradego/storage/database"
	pgrepos "github.com/classflow/gradego/storage/database/postgres"
)

func main() {
	std := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	if err := run(std); err != nil {
		std.Fatalf("%+v", err)
	}
}

func run(std *log.Logger) error {
	if err := core.Conf.Validate(); err != nil {
		return errors.Wrap(err, "validating config")
	}

	logger := logsvc.NewRollbarLogger(std, core.Conf)
	logger.Enable(!(core.Conf.Debug || core.Conf.TestMode))

	// set up DB
	if core.Conf.Debug {
		if err := database.CreateIfNotExist(core.Conf); err != nil {
			return err
		}
	}
	db, err := database.Open(core.Conf)
	if err != nil {
		return err
	}
	defer db.Close()
	if core.Conf.Debug {
		if err := database.Migrate(db); err != nil {
			return err
		}
	}
	sdb := sqlx.NewDb(db, core.Conf.Database.Engine)

	// set up services
	var mailSvc core.EmailService
	if core.Conf.Debug {
		mailSvc = emailsvc.NewConsoleService()
	} else {
		mailSvc = sendgridmail.NewService(
			core.Conf.SendgridAPIKey, core.Conf.AppName, core.Conf.DefaultFromEmail.Address, logger)
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	app := echoapi.NewServer(
		&echoapi.Options{
			Address:        core.Conf.Server.Address(),
			Logger:         logger,
			SignalShutdown: func() { shutdown <- syscall.SIGTERM },

			AccountSvc:      account.NewService(pgrepos.NewAccountRepository(sdb)),
			TenantSvc:       tenant.NewService(pgrepos.NewTenantRepository(sdb)),
			TeacherSvc:      teacher.NewService(pgrepos.NewTeacherRepository(sdb), mailSvc),
			StudentSvc:      student.NewService(pgrepos.NewStudentRepository(sdb), mailSvc),
			ClassSvc:        classroom.NewService(pgrepos.NewClassRepository(sdb)),
			AssessmentSvc:   assessment.NewService(pgrepos.NewAssessmentRepository(sdb)),
			AttendanceSvc:   attendance.NewService(pgrepos.NewAttendanceRepository(sdb)),
			AnnouncementSvc: announcement.NewService(pgrepos.NewAnnouncementRepository(sdb)),
			SuggestionSvc:   suggestion.NewService(pgrepos.NewSuggestionRepository(sdb)),
			PlannerSvc:      planner.NewService(pgrepos.NewPlannerRepository(sdb)),
		},
	)

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("api listening on " + core.Conf.Server.Address())
		serverErrors <- app.Start()
	}()

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return errors.Wrap(err, "server error")
		}
	case sig := <-shutdown:
		logger.Info("shutdown started", map[string]interface{}{"signal": sig.String()})
		defer logger.Info("shutdown complete")

		ctx, cancel := context.WithTimeout(context.Background(), core.Conf.Server.ShutdownTimeout)
		defer cancel()

		if err := app.Stop(ctx); err != nil {
			return errors.Wrap(err, "could not stop server gracefully")
		}
	}
	return nil
}
