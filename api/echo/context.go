package echoapi

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/classflow/gradego/core/student"
	"github.com/classflow/gradego/core/teacher"
)

var (
	contextTeacherKey = "teacher"
	contextStudentKey = "student"
)

// contextTeacher resolves the acting teacher profile from the session claims,
// caching it on the request context.
func contextTeacher(ctx echo.Context, svc teacher.Service) (teacher.Teacher, error) {
	if tch, ok := ctx.Get(contextTeacherKey).(teacher.Teacher); ok {
		return tch, nil
	}
	claims, err := getContextClaims(ctx)
	if err != nil {
		return teacher.Teacher{}, errors.Wrap(err, "getting context claims")
	}
	tch, err := svc.GetByAccountID(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return teacher.Teacher{}, errors.Wrap(err, "finding teacher by account ID")
	}
	ctx.Set(contextTeacherKey, tch)
	return tch, nil
}

// contextStudent resolves the acting student profile from the session claims,
// caching it on the request context.
func contextStudent(ctx echo.Context, svc student.Service) (student.Student, error) {
	if st, ok := ctx.Get(contextStudentKey).(student.Student); ok {
		return st, nil
	}
	claims, err := getContextClaims(ctx)
	if err != nil {
		return student.Student{}, errors.Wrap(err, "getting context claims")
	}
	st, err := svc.GetByAccountID(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return student.Student{}, errors.Wrap(err, "finding student by account ID")
	}
	ctx.Set(contextStudentKey, st)
	return st, nil
}
