package echoapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/classflow/gradego/core"
	"github.com/classflow/gradego/core/account"
)

var (
	// appJWTConfig is the default JWT auth middleware config.
	appJWTConfig = middleware.JWTConfig{
		SigningKey:    []byte(core.Conf.SecretKey),
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    "accountToken",
		Claims:        new(Claims),
	}
	authCookieName = "token"
)

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.StandardClaims
	Email    string `json:"email,omitempty"`
	Role     string `json:"role,omitempty"`
	TenantID string `json:"tenant_id,omitempty"`
}

func GetAccountClaims(acct account.Account, tenantID string) *Claims {
	now := time.Now()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    core.Conf.AppName,
			Subject:   acct.ID,
			ExpiresAt: now.Add(core.Conf.Server.JWTExpirationDelta).Unix(),
			IssuedAt:  now.Unix(),
		},
		Email:    acct.Email,
		Role:     acct.Role,
		TenantID: tenantID,
	}
}

// authenticate verifies credentials. An unknown email and a wrong password
// both fail with errAuthenticationFailed so callers cannot probe which
// addresses are registered.
func authenticate(ctx echo.Context, email, pwd string, svc account.Service) (account.Account, error) {
	acct, err := svc.GetByEmail(ctx.Request().Context(), email)
	if err != nil {
		if errors.Cause(err) == account.ErrNotFound {
			return account.Account{}, errAuthenticationFailed
		}
		return account.Account{}, errors.Wrap(err, "finding account by email")
	}
	if err = acct.CheckPassword(pwd); err != nil {
		return account.Account{}, errAuthenticationFailed
	}
	return acct, nil
}

// GenerateToken generates a signed JWT token string representing the account Claims.
func GenerateToken(claims *Claims) (string, error) {
	method := jwt.GetSigningMethod(appJWTConfig.SigningMethod)
	token := jwt.NewWithClaims(method, claims)

	ss, err := token.SignedString(appJWTConfig.SigningKey)
	if err != nil {
		return "", errors.New("signing token")
	}
	return ss, nil
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(appJWTConfig.ContextKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}

// requestClaims extracts and verifies a token from the Authorization header
// or the auth cookie. It returns nil when no valid token is present.
func requestClaims(req *http.Request) *Claims {
	raw := ""
	if auth := req.Header.Get(echo.HeaderAuthorization); strings.HasPrefix(auth, "Bearer ") {
		raw = strings.TrimPrefix(auth, "Bearer ")
	} else if cookie, err := req.Cookie(authCookieName); err == nil {
		raw = cookie.Value
	}
	if raw == "" {
		return nil
	}

	claims := new(Claims)
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != appJWTConfig.SigningMethod {
			return nil, errors.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return appJWTConfig.SigningKey, nil
	})
	if err != nil || !token.Valid {
		return nil
	}
	return claims
}
