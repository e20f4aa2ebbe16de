package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"erp-system/internal/dto"
	"erp-system/internal/entities"
	"erp-system/internal/repositories"
	"erp-system/pkg/config"
	apperrors "erp-system/pkg/errors"
	"erp-system/pkg/service"
	"erp-system/pkg/utils"

	"go.uber.org/zap"
)

const loginAttemptsKey = "auth:login_attempts:%s"

type AuthServiceInterface interface {
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.AuthResponseDTO, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.AuthResponseDTO, error)
}

type AuthService struct {
	userRepo      repositories.UserRepositoryInterface
	cacheRepo     repositories.CacheRepositoryInterface
	permissionSvc AuthPermissionServiceInterface
	jwtService    service.JWTService
	logger        *zap.Logger
	cfg           config.AuthConfig
}

func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	permissionSvc AuthPermissionServiceInterface,
	jwtService service.JWTService,
	logger *zap.Logger,
	cfg config.AuthConfig,
) AuthServiceInterface {
	return &AuthService{
		userRepo:      userRepo,
		cacheRepo:     cacheRepo,
		permissionSvc: permissionSvc,
		jwtService:    jwtService,
		logger:        logger,
		cfg:           cfg,
	}
}

func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.AuthResponseDTO, error) {
	email := strings.ToLower(strings.TrimSpace(payload.Email))
	logger := s.logger.With(zap.String("email", email))
	lockoutKey := fmt.Sprintf(loginAttemptsKey, email)

	if err := s.takeLoginAttempt(ctx, lockoutKey, logger); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		logger.Error("Ошибка поиска пользователя", zap.Error(err))
		return nil, err
	}

	if err := utils.ComparePasswords(user.Password, payload.Password); err != nil {
		logger.Warn("Неверный пароль")
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := s.cacheRepo.Del(ctx, lockoutKey); err != nil {
		logger.Warn("Не удалось сбросить счётчик попыток входа", zap.Error(err))
	}
	if !user.IsActive {
		return nil, apperrors.ErrUserDisabled
	}

	logger.Info("Пользователь вошёл в систему", zap.Uint64("userID", user.ID))
	return s.issueTokens(ctx, user)
}

// takeLoginAttempt атомарно занимает попытку входа до проверки пароля.
// Успешный вход сбрасывает счётчик, поэтому в нём остаются только неудачные попытки.
func (s *AuthService) takeLoginAttempt(ctx context.Context, key string, logger *zap.Logger) error {
	if s.cfg.MaxLoginAttempts <= 0 {
		return nil
	}
	n, err := s.cacheRepo.Incr(ctx, key)
	if err != nil {
		logger.Warn("Не удалось увеличить счётчик попыток входа", zap.Error(err))
		return nil
	}
	if n == 1 {
		if _, err := s.cacheRepo.Expire(ctx, key, s.cfg.LockoutDuration); err != nil {
			logger.Warn("Не удалось задать TTL счётчика попыток входа", zap.Error(err))
		}
	}
	if n > int64(s.cfg.MaxLoginAttempts) {
		logger.Warn("Слишком много неудачных попыток входа", zap.Int64("attempts", n))
		return apperrors.NewHttpError(
			http.StatusTooManyRequests,
			fmt.Sprintf("Слишком много попыток. Попробуйте через %.0f минут.", s.cfg.LockoutDuration.Minutes()),
			nil,
			nil,
		)
	}
	return nil
}

// RefreshToken выдаёт новую пару токенов. Пользователь перечитывается из БД,
// поэтому заблокированный пользователь не сможет продлить сессию.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.AuthResponseDTO, error) {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if !claims.IsRefreshToken {
		return nil, apperrors.ErrTokenIsNotRefresh
	}

	user, err := s.userRepo.FindUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.ErrUserDisabled
	}
	return s.issueTokens(ctx, user)
}

func (s *AuthService) issueTokens(ctx context.Context, user *entities.User) (*dto.AuthResponseDTO, error) {
	permissions, err := s.permissionSvc.GetRolePermissionsNames(ctx, user.RoleID)
	if err != nil {
		return nil, err
	}

	accessToken, refreshToken, err := s.jwtService.GenerateTokens(user.ID, user.RoleID)
	if err != nil {
		s.logger.Error("Не удалось сгенерировать токены", zap.Uint64("userID", user.ID), zap.Error(err))
		return nil, apperrors.ErrInternalServer
	}

	return &dto.AuthResponseDTO{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.jwtService.GetAccessTokenTTL().Seconds()),
		UserID:       user.ID,
		Fio:          user.Fio,
		Permissions:  permissions,
	}, nil
}
