package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/classflow/gradego/core/account"
	"github.com/classflow/gradego/core/announcement"
	"github.com/classflow/gradego/core/classroom"
	"github.com/classflow/gradego/core/student"
	"github.com/classflow/gradego/core/teacher"
)

type announcementApi struct {
	svc        announcement.Service
	classSvc   classroom.Service
	teacherSvc teacher.Service
	studentSvc student.Service
}

func registerAnnouncementAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	svc announcement.Service,
	classSvc classroom.Service,
	teacherSvc teacher.Service,
	studentSvc student.Service,
) {
	api := announcementApi{
		svc:        svc,
		classSvc:   classSvc,
		teacherSvc: teacherSvc,
		studentSvc: studentSvc,
	}

	ag := g.Group("/classes/:classID/announcements", jwt)
	ag.POST("", api.create, roleMiddleware(account.RoleTeacher))
	ag.GET("", api.query, roleMiddleware(account.RoleTeacher, account.RoleStudent))

	dg := g.Group("/announcements/:id", jwt, roleMiddleware(account.RoleTeacher))
	dg.POST("/share", api.share)
	dg.DELETE("", api.destroy)
}

// Handlers

func (api *announcementApi) create(ctx echo.Context) error {
	cls, tch, err := api.ownClass(ctx, ctx.Param("classID"))
	if err != nil {
		return err
	}

	var data announcement.NewAnnouncement
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAnnouncement")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	a, err := api.svc.Create(ctx.Request().Context(), data, cls.ID, tch.ID)
	if err != nil {
		return errors.Wrap(err, "creating announcement")
	}
	return ctx.JSON(http.StatusCreated, a)
}

// query lists a class's announcements; students only see shared ones.
func (api *announcementApi) query(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	classID := ctx.Param("classID")
	if claims.Role == account.RoleTeacher {
		if _, _, err := api.ownClass(ctx, classID); err != nil {
			return err
		}
	} else {
		st, err := contextStudent(ctx, api.studentSvc)
		if err != nil {
			return err
		}
		cls, err := api.classSvc.GetByID(ctx.Request().Context(), classID)
		if err != nil {
			if errors.Cause(err) == classroom.ErrNotFound {
				return errHttpNotFound
			}
			return errors.Wrap(err, "getting class")
		}
		if cls.TenantID != st.TenantID {
			return errHttpNotFound
		}
	}
	sharedOnly := claims.Role == account.RoleStudent

	announcements, err := api.svc.QueryByClass(ctx.Request().Context(), classID, sharedOnly)
	if err != nil {
		return errors.Wrap(err, "querying announcements")
	}
	return ctx.JSON(http.StatusOK, announcements)
}

func (api *announcementApi) share(ctx echo.Context) error {
	a, err := api.ownAnnouncement(ctx)
	if err != nil {
		return err
	}

	var data struct {
		Shared *bool `json:"shared"`
	}
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding share request")
	}
	shared := true
	if data.Shared != nil {
		shared = *data.Shared
	}

	a, err = api.svc.Share(ctx.Request().Context(), a.ID, shared)
	if err != nil {
		return errors.Wrap(err, "sharing announcement")
	}
	return ctx.JSON(http.StatusOK, a)
}

func (api *announcementApi) destroy(ctx echo.Context) error {
	a, err := api.ownAnnouncement(ctx)
	if err != nil {
		return err
	}
	if err := api.svc.Delete(ctx.Request().Context(), a.ID); err != nil {
		return errors.Wrap(err, "deleting announcement")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *announcementApi) ownClass(ctx echo.Context, classID string) (classroom.Class, teacher.Teacher, error) {
	tch, err := contextTeacher(ctx, api.teacherSvc)
	if err != nil {
		return classroom.Class{}, teacher.Teacher{}, err
	}
	cls, err := api.classSvc.GetByID(ctx.Request().Context(), classID)
	if err != nil {
		if errors.Cause(err) == classroom.ErrNotFound {
			return classroom.Class{}, teacher.Teacher{}, errHttpNotFound
		}
		return classroom.Class{}, teacher.Teacher{}, errors.Wrap(err, "getting class")
	}
	if cls.TeacherID != tch.ID {
		return classroom.Class{}, teacher.Teacher{}, errHttpForbidden
	}
	return cls, tch, nil
}

func (api *announcementApi) ownAnnouncement(ctx echo.Context) (announcement.Announcement, error) {
	tch, err := contextTeacher(ctx, api.teacherSvc)
	if err != nil {
		return announcement.Announcement{}, err
	}
	a, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == announcement.ErrNotFound {
			return announcement.Announcement{}, errHttpNotFound
		}
		return announcement.Announcement{}, errors.Wrap(err, "getting announcement")
	}
	if a.TeacherID != tch.ID {
		return announcement.Announcement{}, errHttpForbidden
	}
	return a, nil
}
