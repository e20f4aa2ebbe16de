package middleware

import (
	"context"
	"strings"

	"erp-system/internal/authz"
	"erp-system/pkg/contextkeys"
	apperrors "erp-system/pkg/errors"
	"erp-system/pkg/service"
	"erp-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// PermissionProvider отдаёт имена прав роли.
type PermissionProvider interface {
	GetRolePermissionsNames(ctx context.Context, roleID uint64) ([]string, error)
}

type AuthMiddleware struct {
	jwtService  service.JWTService
	permissions PermissionProvider
	logger      *zap.Logger
}

func NewAuthMiddleware(jwtSvc service.JWTService, permissions PermissionProvider, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService:  jwtSvc,
		permissions: permissions,
		logger:      logger,
	}
}

// Auth проверяет bearer-токен и кладёт в контекст запроса id пользователя, id роли и карту прав.
func (m *AuthMiddleware) Auth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return utils.ErrorResponse(c, apperrors.ErrEmptyAuthHeader, m.logger)
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			m.logger.Warn("Неверный формат заголовка Authorization")
			return utils.ErrorResponse(c, apperrors.ErrInvalidAuthHeader, m.logger)
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			m.logger.Warn("Ошибка валидации токена", zap.Error(err))
			return utils.ErrorResponse(c, err, m.logger)
		}
		if claims.IsRefreshToken {
			m.logger.Warn("Попытка доступа с refresh токеном", zap.Uint64("userID", claims.UserID))
			return utils.ErrorResponse(c, apperrors.ErrTokenIsNotAccess, m.logger)
		}

		ctx := c.Request().Context()
		permissionNames, err := m.permissions.GetRolePermissionsNames(ctx, claims.RoleID)
		if err != nil {
			return utils.ErrorResponse(c, err, m.logger)
		}

		ctx = context.WithValue(ctx, contextkeys.UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, contextkeys.RoleIDKey, claims.RoleID)
		ctx = context.WithValue(ctx, contextkeys.UserPermissionsMapKey, authz.PermissionsToMap(permissionNames))
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}

// AuthorizeAny пропускает запрос, если у пользователя есть хотя бы одно из прав.
// Должен стоять после Auth.
func (m *AuthMiddleware) AuthorizeAny(permissions ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			permissionsMap, err := utils.GetPermissionsMapFromCtx(c.Request().Context())
			if err != nil {
				return utils.ErrorResponse(c, apperrors.ErrUnauthorized, m.logger)
			}
			if permissionsMap[authz.Superuser] {
				return next(c)
			}
			for _, p := range permissions {
				if permissionsMap[p] {
					return next(c)
				}
			}
			userID, _ := utils.GetUserIDFromCtx(c.Request().Context())
			m.logger.Warn("Доступ запрещён", zap.Uint64("userID", userID), zap.Strings("required", permissions), zap.String("path", c.Path()))
			return utils.ErrorResponse(c, apperrors.ErrForbidden, m.logger)
		}
	}
}
