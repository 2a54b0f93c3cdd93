package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/classflow/gradego/core"
	"github.com/classflow/gradego/core/account"
	"github.com/classflow/gradego/core/enroll"
	"github.com/classflow/gradego/core/student"
	"github.com/classflow/gradego/core/teacher"
	"github.com/classflow/gradego/core/tenant"
)

// Auth flow statuses mirrored by the web client.
const (
	statusIdle        = "idle"
	statusSuccess     = "success"
	statusFailed      = "failed"
	statusInvalidData = "invalid_data"
)

type (
	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	// StatusResponse is the uniform auth flow envelope.
	StatusResponse struct {
		Status  string `json:"status"`
		Message string `json:"message,omitempty"`
		Role    string `json:"role,omitempty"`
		Token   string `json:"token,omitempty"`
	}
)

func (r *LoginRequest) Validate() error {
	r.Email = core.CleanString(r.Email, true /* lower */)
	return core.Validate.Struct(r)
}

type accountApi struct {
	accountSvc account.Service
	tenantSvc  tenant.Service
	teacherSvc teacher.Service
	studentSvc student.Service
}

func registerAccountAPI(
	g *echo.Group,
	accountSvc account.Service,
	tenantSvc tenant.Service,
	teacherSvc teacher.Service,
	studentSvc student.Service,
) {
	api := accountApi{
		accountSvc: accountSvc,
		tenantSvc:  tenantSvc,
		teacherSvc: teacherSvc,
		studentSvc: studentSvc,
	}

	// un-authed endpoints
	g.POST("/login", api.login)
	g.POST("/register", api.registerTeacher)
	g.POST("/enroll/steps/:step", api.validateEnrollStep)
	g.POST("/enroll", api.enroll)
}

// Handlers

func (api *accountApi) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if err := data.Validate(); err != nil {
		return ctx.JSON(http.StatusBadRequest, invalidDataResponse(err))
	}

	acct, err := authenticate(ctx, data.Email, data.Password, api.accountSvc)
	if err != nil {
		if errors.Cause(err) == errAuthenticationFailed {
			return ctx.JSON(http.StatusBadRequest, StatusResponse{
				Status:  statusFailed,
				Message: "invalid credentials",
			})
		}
		return errors.Wrap(err, "authenticating")
	}

	tenantID, err := api.resolveTenantID(ctx, acct)
	if err != nil {
		return errors.Wrap(err, "resolving tenant")
	}
	token, err := GenerateToken(GetAccountClaims(acct, tenantID))
	if err != nil {
		return errors.Wrap(err, "generating token")
	}

	setAuthCookie(ctx, token)
	return ctx.JSON(http.StatusOK, StatusResponse{
		Status: statusSuccess,
		Role:   acct.Role,
		Token:  token,
	})
}

func (api *accountApi) registerTeacher(ctx echo.Context) error {
	var data teacher.NewTeacher
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTeacher")
	}
	if err := data.Validate(); err != nil {
		return ctx.JSON(http.StatusBadRequest, invalidDataResponse(err))
	}

	tnt, err := api.tenantSvc.GetDefault(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "getting default tenant")
	}

	acct, _, err := api.teacherSvc.Register(ctx.Request().Context(), data, tnt.ID)
	if err != nil {
		if errors.Cause(err) == account.ErrEmailExists {
			return ctx.JSON(http.StatusBadRequest, StatusResponse{
				Status:  statusFailed,
				Message: account.ErrEmailExists.Error(),
			})
		}
		return errors.Wrap(err, "registering teacher")
	}

	token, err := GenerateToken(GetAccountClaims(acct, tnt.ID))
	if err != nil {
		return errors.Wrap(err, "generating token")
	}

	setAuthCookie(ctx, token)
	return ctx.JSON(http.StatusCreated, StatusResponse{
		Status: statusSuccess,
		Role:   acct.Role,
		Token:  token,
	})
}

// validateEnrollStep checks one wizard step's schema without persisting
// anything; the client holds the accumulated form between steps.
func (api *accountApi) validateEnrollStep(ctx echo.Context) error {
	var err error
	switch ctx.Param("step") {
	case "1":
		var data enroll.Step1StudentInfo
		if err = ctx.Bind(&data); err != nil {
			return errors.Wrap(err, "binding to Step1StudentInfo")
		}
		err = data.Validate()
	case "2":
		var data enroll.Step2GuardianInfo
		if err = ctx.Bind(&data); err != nil {
			return errors.Wrap(err, "binding to Step2GuardianInfo")
		}
		err = data.Validate()
	case "3":
		var data enroll.Step3AccountSetup
		if err = ctx.Bind(&data); err != nil {
			return errors.Wrap(err, "binding to Step3AccountSetup")
		}
		err = data.Validate()
	default:
		return errHttpNotFound
	}

	if err != nil {
		return ctx.JSON(http.StatusBadRequest, invalidDataResponse(err))
	}
	return ctx.JSON(http.StatusOK, StatusResponse{Status: statusSuccess})
}

func (api *accountApi) enroll(ctx echo.Context) error {
	var form enroll.Form
	if err := ctx.Bind(&form); err != nil {
		return errors.Wrap(err, "binding to enrollment Form")
	}
	if err := form.Validate(); err != nil {
		return ctx.JSON(http.StatusBadRequest, invalidDataResponse(err))
	}

	tnt, err := api.tenantSvc.GetDefault(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "getting default tenant")
	}

	acct, _, err := api.studentSvc.Enroll(ctx.Request().Context(), form, tnt.ID)
	if err != nil {
		if errors.Cause(err) == account.ErrEmailExists {
			return ctx.JSON(http.StatusBadRequest, StatusResponse{
				Status:  statusFailed,
				Message: account.ErrEmailExists.Error(),
			})
		}
		return errors.Wrap(err, "enrolling student")
	}

	token, err := GenerateToken(GetAccountClaims(acct, tnt.ID))
	if err != nil {
		return errors.Wrap(err, "generating token")
	}

	setAuthCookie(ctx, token)
	return ctx.JSON(http.StatusCreated, StatusResponse{
		Status: statusSuccess,
		Role:   acct.Role,
		Token:  token,
	})
}

// Helpers

func (api *accountApi) resolveTenantID(ctx echo.Context, acct account.Account) (string, error) {
	rctx := ctx.Request().Context()
	switch acct.Role {
	case account.RoleTeacher:
		tch, err := api.teacherSvc.GetByAccountID(rctx, acct.ID)
		if err != nil {
			return "", err
		}
		return tch.TenantID, nil
	case account.RoleStudent:
		st, err := api.studentSvc.GetByAccountID(rctx, acct.ID)
		if err != nil {
			return "", err
		}
		return st.TenantID, nil
	}
	// admins are not tenant-bound
	return "", nil
}

func setAuthCookie(ctx echo.Context, token string) {
	ctx.SetCookie(&http.Cookie{
		Name:     authCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// invalidDataResponse renders a validation failure in the auth flow envelope.
func invalidDataResponse(err error) StatusResponse {
	resp := StatusResponse{Status: statusInvalidData, Message: "invalid form data"}

	switch vErr := errors.Cause(err).(type) {
	case validator.ValidationErrors:
		if len(vErr) > 0 {
			resp.Message = vErr[0].Translate(core.Translator)
		}
	case *core.ValidationError:
		if len(vErr.Fields) > 0 {
			resp.Message = vErr.Fields[0].Error
		} else {
			resp.Message = vErr.Error()
		}
	}
	return resp
}
