package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/classflow/gradego/core/account"
	"github.com/classflow/gradego/core/assessment"
	"github.com/classflow/gradego/core/classroom"
	"github.com/classflow/gradego/core/student"
	"github.com/classflow/gradego/core/teacher"
)

type assessmentApi struct {
	svc        assessment.Service
	classSvc   classroom.Service
	teacherSvc teacher.Service
	studentSvc student.Service
}

func registerAssessmentAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	svc assessment.Service,
	classSvc classroom.Service,
	teacherSvc teacher.Service,
	studentSvc student.Service,
) {
	api := assessmentApi{
		svc:        svc,
		classSvc:   classSvc,
		teacherSvc: teacherSvc,
		studentSvc: studentSvc,
	}

	ag := g.Group("/classes/:classID/assessments", jwt)
	ag.POST("", api.create, roleMiddleware(account.RoleTeacher))
	ag.GET("", api.query, roleMiddleware(account.RoleTeacher, account.RoleStudent))

	dg := g.Group("/assessments/:id", jwt)
	dg.GET("", api.retrieve, roleMiddleware(account.RoleTeacher, account.RoleStudent))
	dg.POST("/publish", api.publish, roleMiddleware(account.RoleTeacher))
	dg.POST("/submissions", api.submit, roleMiddleware(account.RoleStudent))
	dg.GET("/submissions", api.submissions, roleMiddleware(account.RoleTeacher))

	g.POST("/submissions/:id/grade", api.grade, jwt, roleMiddleware(account.RoleTeacher))
}

// Handlers

func (api *assessmentApi) create(ctx echo.Context) error {
	cls, err := api.ownClass(ctx, ctx.Param("classID"))
	if err != nil {
		return err
	}

	var data assessment.NewAssessment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAssessment")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	a, err := api.svc.Create(ctx.Request().Context(), data, cls.ID)
	if err != nil {
		return errors.Wrap(err, "creating assessment")
	}
	return ctx.JSON(http.StatusCreated, a)
}

// query lists a class's assessments; students only see published ones.
func (api *assessmentApi) query(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	classID := ctx.Param("classID")
	if claims.Role == account.RoleTeacher {
		if _, err := api.ownClass(ctx, classID); err != nil {
			return err
		}
	} else {
		if _, err := api.studentClass(ctx, classID); err != nil {
			return err
		}
	}
	publishedOnly := claims.Role == account.RoleStudent

	assessments, err := api.svc.QueryByClass(ctx.Request().Context(), classID, publishedOnly)
	if err != nil {
		return errors.Wrap(err, "querying assessments")
	}
	return ctx.JSON(http.StatusOK, assessments)
}

func (api *assessmentApi) retrieve(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	a, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == assessment.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting assessment")
	}
	if claims.Role == account.RoleStudent {
		if _, err := api.studentClass(ctx, a.ClassID); err != nil {
			return err
		}
		if !a.IsPublished {
			return errHttpNotFound
		}
	} else {
		if _, err := api.ownClass(ctx, a.ClassID); err != nil {
			return err
		}
	}
	return ctx.JSON(http.StatusOK, a)
}

func (api *assessmentApi) publish(ctx echo.Context) error {
	a, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == assessment.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting assessment")
	}
	if _, err := api.ownClass(ctx, a.ClassID); err != nil {
		return err
	}

	a, err = api.svc.Publish(ctx.Request().Context(), a.ID)
	if err != nil {
		return errors.Wrap(err, "publishing assessment")
	}
	return ctx.JSON(http.StatusOK, a)
}

func (api *assessmentApi) submit(ctx echo.Context) error {
	var data assessment.NewSubmission
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSubmission")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	st, err := contextStudent(ctx, api.studentSvc)
	if err != nil {
		return err
	}

	a, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == assessment.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting assessment")
	}
	if _, err := api.studentClass(ctx, a.ClassID); err != nil {
		return err
	}

	sub, err := api.svc.Submit(ctx.Request().Context(), data, a.ID, st.ID)
	if err != nil {
		switch errors.Cause(err) {
		case assessment.ErrNotFound:
			return errHttpNotFound
		case assessment.ErrNotPublished, assessment.ErrPastDue, assessment.ErrSubmissionExists:
			return echo.NewHTTPError(http.StatusConflict, errors.Cause(err).Error())
		}
		return errors.Wrap(err, "submitting assessment")
	}
	return ctx.JSON(http.StatusCreated, sub)
}

func (api *assessmentApi) submissions(ctx echo.Context) error {
	a, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == assessment.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting assessment")
	}
	if _, err := api.ownClass(ctx, a.ClassID); err != nil {
		return err
	}

	subs, err := api.svc.Submissions(ctx.Request().Context(), a.ID)
	if err != nil {
		return errors.Wrap(err, "querying submissions")
	}
	return ctx.JSON(http.StatusOK, subs)
}

func (api *assessmentApi) grade(ctx echo.Context) error {
	var data struct {
		Scores map[string]int `json:"scores"`
	}
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding grade request")
	}

	sub, err := api.svc.GetSubmission(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == assessment.ErrSubmissionMissing {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting submission")
	}
	a, err := api.svc.GetByID(ctx.Request().Context(), sub.AssessmentID)
	if err != nil {
		return errors.Wrap(err, "getting assessment")
	}
	if _, err := api.ownClass(ctx, a.ClassID); err != nil {
		return err
	}

	sub, err = api.svc.Grade(ctx.Request().Context(), sub.ID, data.Scores)
	if err != nil {
		return errors.Wrap(err, "grading submission")
	}
	return ctx.JSON(http.StatusOK, sub)
}

// ownClass checks the acting teacher owns classID.
func (api *assessmentApi) ownClass(ctx echo.Context, classID string) (classroom.Class, error) {
	tch, err := contextTeacher(ctx, api.teacherSvc)
	if err != nil {
		return classroom.Class{}, err
	}
	cls, err := api.classSvc.GetByID(ctx.Request().Context(), classID)
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

// studentClass loads classID for the acting student. Classes outside the
// student's tenant are indistinguishable from unknown ones.
func (api *assessmentApi) studentClass(ctx echo.Context, classID string) (classroom.Class, error) {
	st, err := contextStudent(ctx, api.studentSvc)
	if err != nil {
		return classroom.Class{}, err
	}
	cls, err := api.classSvc.GetByID(ctx.Request().Context(), classID)
	if err != nil {
		if errors.Cause(err) == classroom.ErrNotFound {
			return classroom.Class{}, errHttpNotFound
		}
		return classroom.Class{}, errors.Wrap(err, "getting class")
	}
	if cls.TenantID != st.TenantID {
		return classroom.Class{}, errHttpNotFound
	}
	return cls, nil
}
