package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/classflow/gradego/core/account"
	"github.com/classflow/gradego/core/student"
	"github.com/classflow/gradego/core/suggestion"
)

type suggestionApi struct {
	svc        suggestion.Service
	studentSvc student.Service
}

func registerSuggestionAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	svc suggestion.Service,
	studentSvc student.Service,
) {
	api := suggestionApi{
		svc:        svc,
		studentSvc: studentSvc,
	}

	sg := g.Group("/suggestions", jwt)
	sg.POST("", api.submit, roleMiddleware(account.RoleStudent))
	sg.GET("/mine", api.mine, roleMiddleware(account.RoleStudent))
	sg.GET("", api.query, roleMiddleware(account.RoleTeacher))
	sg.POST("/:id/answer", api.markAnswered, roleMiddleware(account.RoleTeacher))
}

// Handlers

func (api *suggestionApi) submit(ctx echo.Context) error {
	var data suggestion.NewSuggestion
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSuggestion")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	st, err := contextStudent(ctx, api.studentSvc)
	if err != nil {
		return err
	}
	s, err := api.svc.Submit(ctx.Request().Context(), data, st.TenantID, st.ID)
	if err != nil {
		return errors.Wrap(err, "submitting suggestion")
	}
	return ctx.JSON(http.StatusCreated, s)
}

func (api *suggestionApi) mine(ctx echo.Context) error {
	st, err := contextStudent(ctx, api.studentSvc)
	if err != nil {
		return err
	}
	suggestions, err := api.svc.QueryByStudent(ctx.Request().Context(), st.ID)
	if err != nil {
		return errors.Wrap(err, "querying suggestions by student")
	}
	return ctx.JSON(http.StatusOK, suggestions)
}

// query lists the tenant's suggestion box; anonymous entries come back with
// the student ID already stripped.
func (api *suggestionApi) query(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}
	suggestions, err := api.svc.QueryByTenant(ctx.Request().Context(), claims.TenantID)
	if err != nil {
		return errors.Wrap(err, "querying suggestions by tenant")
	}
	return ctx.JSON(http.StatusOK, suggestions)
}

func (api *suggestionApi) markAnswered(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	s, err := api.svc.MarkAnswered(ctx.Request().Context(), ctx.Param("id"), claims.TenantID, true)
	if err != nil {
		if errors.Cause(err) == suggestion.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "marking suggestion answered")
	}
	return ctx.JSON(http.StatusOK, s)
}
