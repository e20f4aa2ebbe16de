package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"erp-system/pkg/contextkeys"
	"erp-system/pkg/service"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type staticPermissions map[uint64][]string

func (p staticPermissions) GetRolePermissionsNames(ctx context.Context, roleID uint64) ([]string, error) {
	return p[roleID], nil
}

func newProtectedServer(jwtSvc service.JWTService) *echo.Echo {
	e := echo.New()
	m := NewAuthMiddleware(jwtSvc, staticPermissions{3: {"invoices:view"}}, zap.NewNop())
	e.GET("/me", func(c echo.Context) error {
		ctx := c.Request().Context()
		perms, _ := ctx.Value(contextkeys.UserPermissionsMapKey).(map[string]bool)
		return c.JSON(http.StatusOK, map[string]interface{}{
			"user_id": ctx.Value(contextkeys.UserIDKey),
			"role_id": ctx.Value(contextkeys.RoleIDKey),
			"can":     perms["invoices:view"],
		})
	}, m.Auth)
	return e
}

func doRequest(e *echo.Echo, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAuth_AcceptsAccessToken(t *testing.T) {
	jwtSvc := service.NewJWTService("secret", time.Hour, time.Hour, zap.NewNop())
	access, _, err := jwtSvc.GenerateTokens(10, 3)
	require.NoError(t, err)

	rec := doRequest(newProtectedServer(jwtSvc), "Bearer "+access)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"user_id":10,"role_id":3,"can":true}`, rec.Body.String())
}

func TestAuth_Rejections(t *testing.T) {
	jwtSvc := service.NewJWTService("secret", time.Hour, time.Hour, zap.NewNop())
	_, refresh, err := jwtSvc.GenerateTokens(10, 3)
	require.NoError(t, err)
	e := newProtectedServer(jwtSvc)

	assert.Equal(t, http.StatusUnauthorized, doRequest(e, "").Code)
	assert.Equal(t, http.StatusUnauthorized, doRequest(e, "Token abc").Code)
	assert.Equal(t, http.StatusUnauthorized, doRequest(e, "Bearer garbage").Code)
	assert.Equal(t, http.StatusUnauthorized, doRequest(e, "Bearer "+refresh).Code)
}

func TestAuthorizeAny(t *testing.T) {
	jwtSvc := service.NewJWTService("secret", time.Hour, time.Hour, zap.NewNop())
	m := NewAuthMiddleware(jwtSvc, staticPermissions{
		1: {"superuser"},
		3: {"invoices:view"},
	}, zap.NewNop())

	e := echo.New()
	ok := func(c echo.Context) error { return c.NoContent(http.StatusNoContent) }
	e.GET("/me", ok, m.Auth, m.AuthorizeAny("invoices:view", "reports:view"))
	e.GET("/reports", ok, m.Auth, m.AuthorizeAny("reports:view"))

	viewer, _, err := jwtSvc.GenerateTokens(10, 3)
	require.NoError(t, err)
	admin, _, err := jwtSvc.GenerateTokens(1, 1)
	require.NoError(t, err)

	assert.Equal(t, http.StatusNoContent, doRequest(e, "Bearer "+viewer).Code)

	req := httptest.NewRequest(http.MethodGet, "/reports", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+viewer)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/reports", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+admin)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
