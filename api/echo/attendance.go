package echoapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/classflow/gradego/core/account"
	"github.com/classflow/gradego/core/attendance"
	"github.com/classflow/gradego/core/classroom"
	"github.com/classflow/gradego/core/student"
	"github.com/classflow/gradego/core/teacher"
)

type attendanceApi struct {
	svc        attendance.Service
	classSvc   classroom.Service
	teacherSvc teacher.Service
	studentSvc student.Service
}

func registerAttendanceAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	svc attendance.Service,
	classSvc classroom.Service,
	teacherSvc teacher.Service,
	studentSvc student.Service,
) {
	api := attendanceApi{
		svc:        svc,
		classSvc:   classSvc,
		teacherSvc: teacherSvc,
		studentSvc: studentSvc,
	}

	ag := g.Group("/classes/:classID/attendance", jwt, roleMiddleware(account.RoleTeacher))
	ag.POST("", api.record)
	ag.GET("", api.query)
	ag.GET("/summary", api.summary)

	g.GET("/attendance", api.mine, jwt, roleMiddleware(account.RoleStudent))
}

// Handlers

func (api *attendanceApi) record(ctx echo.Context) error {
	cls, err := api.ownClass(ctx)
	if err != nil {
		return err
	}

	var data attendance.NewSheet
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSheet")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	records, err := api.svc.RecordSheet(ctx.Request().Context(), data, cls.ID)
	if err != nil {
		return errors.Wrap(err, "recording attendance sheet")
	}
	return ctx.JSON(http.StatusOK, records)
}

func (api *attendanceApi) query(ctx echo.Context) error {
	cls, err := api.ownClass(ctx)
	if err != nil {
		return err
	}
	date, err := bindDateParam(ctx, "date")
	if err != nil {
		return err
	}

	records, err := api.svc.QueryByClassDate(ctx.Request().Context(), cls.ID, date)
	if err != nil {
		return errors.Wrap(err, "querying attendance")
	}
	return ctx.JSON(http.StatusOK, records)
}

func (api *attendanceApi) summary(ctx echo.Context) error {
	cls, err := api.ownClass(ctx)
	if err != nil {
		return err
	}
	from, err := bindDateParam(ctx, "from")
	if err != nil {
		return err
	}
	to, err := bindDateParam(ctx, "to")
	if err != nil {
		return err
	}

	sum, err := api.svc.Summarize(ctx.Request().Context(), cls.ID, from, to)
	if err != nil {
		return errors.Wrap(err, "summarizing attendance")
	}
	return ctx.JSON(http.StatusOK, sum)
}

func (api *attendanceApi) mine(ctx echo.Context) error {
	st, err := contextStudent(ctx, api.studentSvc)
	if err != nil {
		return err
	}
	records, err := api.svc.QueryByStudent(ctx.Request().Context(), st.ID)
	if err != nil {
		return errors.Wrap(err, "querying attendance by student")
	}
	return ctx.JSON(http.StatusOK, records)
}

func (api *attendanceApi) ownClass(ctx echo.Context) (classroom.Class, error) {
	tch, err := contextTeacher(ctx, api.teacherSvc)
	if err != nil {
		return classroom.Class{}, err
	}
	cls, err := api.classSvc.GetByID(ctx.Request().Context(), ctx.Param("classID"))
	if err != nil {
		if errors.Cause(err) == classroom.ErrNotFound {
			return classroom.Class{}, errHttpNotFound
		}
		return classroom.Class{}, errors.Wrap(err, "getting class")
	}
	if cls.TeacherID != tch.ID {
		return classroom.Class{}, errHttpForbidden
	}
	return cls, nil
}

// bindDateParam parses a required YYYY-MM-DD query parameter.
func bindDateParam(ctx echo.Context, name string) (time.Time, error) {
	raw := ctx.QueryParam(name)
	date, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
	if err != nil {
		return time.Time{}, echo.NewHTTPError(http.StatusBadRequest, name+" must be a YYYY-MM-DD date")
	}
	return date, nil
}
