package echoapi

import (
	"net/http"
	"sort"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/classflow/gradego/core/account"
	"github.com/classflow/gradego/core/classroom"
	"github.com/classflow/gradego/core/student"
	"github.com/classflow/gradego/core/teacher"
)

type classApi struct {
	svc        classroom.Service
	teacherSvc teacher.Service
	studentSvc student.Service
}

func registerClassAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	svc classroom.Service,
	teacherSvc teacher.Service,
	studentSvc student.Service,
) {
	api := classApi{
		svc:        svc,
		teacherSvc: teacherSvc,
		studentSvc: studentSvc,
	}

	cg := g.Group("/classes", jwt)
	teacherOnly := roleMiddleware(account.RoleTeacher)
	studentOnly := roleMiddleware(account.RoleStudent)

	cg.POST("", api.create, teacherOnly)
	cg.GET("", api.queryMine, teacherOnly)
	cg.PUT("/:id", api.update, teacherOnly)
	cg.POST("/:id/archive", api.archive, teacherOnly)
	cg.GET("/:id/roster", api.roster, teacherOnly)
	cg.POST("/:id/roster", api.addStudent, teacherOnly)
	cg.DELETE("/:id/roster/:studentID", api.removeStudent, teacherOnly)

	cg.GET("/joined", api.queryJoined, studentOnly)
	cg.POST("/join", api.join, studentOnly)

	cg.GET("/:id", api.retrieve, roleMiddleware(account.RoleTeacher, account.RoleStudent))
}

// Handlers

func (api *classApi) create(ctx echo.Context) error {
	var data classroom.NewClass
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewClass")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	tch, err := contextTeacher(ctx, api.teacherSvc)
	if err != nil {
		return err
	}
	cls, err := api.svc.Create(ctx.Request().Context(), data, tch.TenantID, tch.ID)
	if err != nil {
		return errors.Wrap(err, "creating class")
	}
	return ctx.JSON(http.StatusCreated, cls)
}

func (api *classApi) queryMine(ctx echo.Context) error {
	tch, err := contextTeacher(ctx, api.teacherSvc)
	if err != nil {
		return err
	}
	classes, err := api.svc.QueryByTeacher(ctx.Request().Context(), tch.ID)
	if err != nil {
		return errors.Wrap(err, "querying classes by teacher")
	}
	return ctx.JSON(http.StatusOK, classes)
}

func (api *classApi) queryJoined(ctx echo.Context) error {
	st, err := contextStudent(ctx, api.studentSvc)
	if err != nil {
		return err
	}
	classes, err := api.svc.QueryByStudent(ctx.Request().Context(), st.ID)
	if err != nil {
		return errors.Wrap(err, "querying classes by student")
	}
	return ctx.JSON(http.StatusOK, classes)
}

func (api *classApi) retrieve(ctx echo.Context) error {
	cls, err := api.getOwnClass(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, cls)
}

func (api *classApi) update(ctx echo.Context) error {
	cls, err := api.getOwnClass(ctx)
	if err != nil {
		return err
	}

	var data classroom.UpdateClass
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateClass")
	}
	if err := data.Validate(cls); err != nil {
		return err
	}

	cls, err = api.svc.Update(ctx.Request().Context(), cls.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating class")
	}
	return ctx.JSON(http.StatusOK, cls)
}

func (api *classApi) archive(ctx echo.Context) error {
	cls, err := api.getOwnClass(ctx)
	if err != nil {
		return err
	}
	cls, err = api.svc.Archive(ctx.Request().Context(), cls.ID, true)
	if err != nil {
		return errors.Wrap(err, "archiving class")
	}
	return ctx.JSON(http.StatusOK, cls)
}

func (api *classApi) roster(ctx echo.Context) error {
	cls, err := api.getOwnClass(ctx)
	if err != nil {
		return err
	}
	students, err := api.svc.Roster(ctx.Request().Context(), cls.ID)
	if err != nil {
		return errors.Wrap(err, "querying class roster")
	}

	var ord Ordering
	ord.Bind(ctx)
	orderRoster(students, ord)
	return ctx.JSON(http.StatusOK, students)
}

// orderRoster re-sorts an alphabetical roster by the requested fields.
func orderRoster(students []student.Student, ord Ordering) {
	for i := len(ord.Orderings) - 1; i >= 0; i-- {
		o := ord.Orderings[i]
		key := func(st student.Student) string {
			switch o.Field {
			case "first_name":
				return st.FirstName
			case "last_name":
				return st.LastName
			case "lrn":
				return st.LRN
			default:
				return ""
			}
		}
		sort.SliceStable(students, func(i, j int) bool {
			if o.Ascending {
				return key(students[i]) < key(students[j])
			}
			return key(students[i]) > key(students[j])
		})
	}
}

func (api *classApi) addStudent(ctx echo.Context) error {
	cls, err := api.getOwnClass(ctx)
	if err != nil {
		return err
	}

	var data struct {
		StudentID string `json:"student_id"`
	}
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding roster request")
	}
	if err := api.svc.AddStudent(ctx.Request().Context(), cls.ID, data.StudentID); err != nil {
		return errors.Wrap(err, "adding student to class")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *classApi) removeStudent(ctx echo.Context) error {
	cls, err := api.getOwnClass(ctx)
	if err != nil {
		return err
	}
	if err := api.svc.RemoveStudent(ctx.Request().Context(), cls.ID, ctx.Param("studentID")); err != nil {
		return errors.Wrap(err, "removing student from class")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *classApi) join(ctx echo.Context) error {
	var data struct {
		Code string `json:"code"`
	}
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding join request")
	}

	st, err := contextStudent(ctx, api.studentSvc)
	if err != nil {
		return err
	}
	cls, err := api.svc.JoinByCode(ctx.Request().Context(), st, data.Code)
	if err != nil {
		if errors.Cause(err) == classroom.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "joining class by code")
	}
	return ctx.JSON(http.StatusOK, cls)
}

// getOwnClass loads the requested class and checks the caller may act on it:
// teachers must own the class, students must belong to the class's tenant.
func (api *classApi) getOwnClass(ctx echo.Context) (classroom.Class, error) {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return classroom.Class{}, errors.Wrap(err, "getting context claims")
	}

	cls, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == classroom.ErrNotFound {
			return classroom.Class{}, errHttpNotFound
		}
		return classroom.Class{}, errors.Wrap(err, "getting class")
	}

	if claims.Role == account.RoleTeacher {
		tch, err := contextTeacher(ctx, api.teacherSvc)
		if err != nil {
			return classroom.Class{}, err
		}
		if cls.TeacherID != tch.ID {
			return classroom.Class{}, errHttpForbidden
		}
	} else if cls.TenantID != claims.TenantID {
		return classroom.Class{}, errHttpNotFound
	}
	return cls, nil
}
