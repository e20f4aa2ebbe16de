package controllers

import (
	"net/http"
	"time"

	"erp-system/internal/dto"
	"erp-system/internal/services"
	apperrors "erp-system/pkg/errors"
	"erp-system/pkg/service"
	"erp-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const refreshTokenCookie = "refreshToken"

type AuthController struct {
	authService services.AuthServiceInterface
	jwtSvc      service.JWTService
	logger      *zap.Logger
}

func NewAuthController(
	authService services.AuthServiceInterface,
	jwtSvc service.JWTService,
	logger *zap.Logger,
) *AuthController {
	return &AuthController{
		authService: authService,
		jwtSvc:      jwtSvc,
		logger:      logger,
	}
}

func (ctrl *AuthController) errorResponse(c echo.Context, err error) error {
	return utils.ErrorResponse(c, err, ctrl.logger)
}

func (ctrl *AuthController) Login(c echo.Context) error {
	var payload dto.LoginDTO
	if err := c.Bind(&payload); err != nil {
		return ctrl.errorResponse(c, apperrors.NewBadRequestError("Неверный формат данных для входа"))
	}
	if err := c.Validate(&payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	res, err := ctrl.authService.Login(c.Request().Context(), payload)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	ctrl.setRefreshCookie(c, res.RefreshToken)
	return utils.SuccessResponse(c, res, "Авторизация прошла успешно", http.StatusOK)
}

// RefreshToken принимает refresh-токен из тела запроса или из cookie.
func (ctrl *AuthController) RefreshToken(c echo.Context) error {
	var payload dto.RefreshTokenDTO
	_ = c.Bind(&payload)
	if payload.RefreshToken == "" {
		if cookie, err := c.Cookie(refreshTokenCookie); err == nil {
			payload.RefreshToken = cookie.Value
		}
	}
	if err := c.Validate(&payload); err != nil {
		return ctrl.errorResponse(c, apperrors.ErrUnauthorized)
	}

	res, err := ctrl.authService.RefreshToken(c.Request().Context(), payload.RefreshToken)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	ctrl.setRefreshCookie(c, res.RefreshToken)
	return utils.SuccessResponse(c, res, "Токены обновлены", http.StatusOK)
}

func (ctrl *AuthController) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     refreshTokenCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
	return utils.SuccessResponse(c, nil, "Выход выполнен", http.StatusOK)
}

func (ctrl *AuthController) setRefreshCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     refreshTokenCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(ctrl.jwtSvc.GetRefreshTokenTTL()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}
