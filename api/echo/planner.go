package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/classflow/gradego/core/account"
	"github.com/classflow/gradego/core/classroom"
	"github.com/classflow/gradego/core/planner"
	"github.com/classflow/gradego/core/student"
	"github.com/classflow/gradego/core/teacher"
)

type plannerApi struct {
	svc        planner.Service
	classSvc   classroom.Service
	teacherSvc teacher.Service
	studentSvc student.Service
}

func registerPlannerAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	svc planner.Service,
	classSvc classroom.Service,
	teacherSvc teacher.Service,
	studentSvc student.Service,
) {
	api := plannerApi{
		svc:        svc,
		classSvc:   classSvc,
		teacherSvc: teacherSvc,
		studentSvc: studentSvc,
	}

	pg := g.Group("/planner", jwt, roleMiddleware(account.RoleTeacher))
	pg.POST("", api.create)
	pg.GET("", api.query)
	pg.PUT("/:id", api.update)
	pg.DELETE("/:id", api.destroy)

	// shared notes (eg. exam schedules) are visible to the class's students
	g.GET("/classes/:classID/planner", api.shared, jwt, roleMiddleware(account.RoleStudent))
}

// Handlers

func (api *plannerApi) create(ctx echo.Context) error {
	var data planner.NewNote
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewNote")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	tch, err := contextTeacher(ctx, api.teacherSvc)
	if err != nil {
		return err
	}
	n, err := api.svc.Create(ctx.Request().Context(), data, tch.ID)
	if err != nil {
		return errors.Wrap(err, "creating planner note")
	}
	return ctx.JSON(http.StatusCreated, n)
}

func (api *plannerApi) query(ctx echo.Context) error {
	tch, err := contextTeacher(ctx, api.teacherSvc)
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

	notes, err := api.svc.QueryByTeacher(ctx.Request().Context(), tch.ID, from, to)
	if err != nil {
		return errors.Wrap(err, "querying planner notes")
	}
	return ctx.JSON(http.StatusOK, notes)
}

func (api *plannerApi) update(ctx echo.Context) error {
	if err := api.checkOwnNote(ctx); err != nil {
		return err
	}

	var data planner.NewNote
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewNote")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	n, err := api.svc.Update(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "updating planner note")
	}
	return ctx.JSON(http.StatusOK, n)
}

func (api *plannerApi) destroy(ctx echo.Context) error {
	if err := api.checkOwnNote(ctx); err != nil {
		return err
	}
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting planner note")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *plannerApi) shared(ctx echo.Context) error {
	st, err := contextStudent(ctx, api.studentSvc)
	if err != nil {
		return err
	}
	cls, err := api.classSvc.GetByID(ctx.Request().Context(), ctx.Param("classID"))
	if err != nil {
		if errors.Cause(err) == classroom.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting class")
	}
	if cls.TenantID != st.TenantID {
		return errHttpNotFound
	}

	notes, err := api.svc.QuerySharedByClass(ctx.Request().Context(), cls.ID)
	if err != nil {
		return errors.Wrap(err, "querying shared planner notes")
	}
	return ctx.JSON(http.StatusOK, notes)
}

func (api *plannerApi) checkOwnNote(ctx echo.Context) error {
	tch, err := contextTeacher(ctx, api.teacherSvc)
	if err != nil {
		return err
	}
	n, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == planner.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting planner note")
	}
	if n.TeacherID != tch.ID {
		return errHttpForbidden
	}
	return nil
}
