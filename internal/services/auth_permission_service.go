package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"erp-system/internal/repositories"
	"erp-system/pkg/constants"
	apperrors "erp-system/pkg/errors"

	"go.uber.org/zap"
)

type AuthPermissionServiceInterface interface {
	GetRolePermissionsNames(ctx context.Context, roleID uint64) ([]string, error)
	InvalidateRolePermissionsCache(ctx context.Context, roleID uint64) error
}

type AuthPermissionService struct {
	permissionRepo repositories.PermissionRepositoryInterface
	cacheRepo      repositories.CacheRepositoryInterface
	logger         *zap.Logger
	cacheTTL       time.Duration
}

func NewAuthPermissionService(
	permissionRepo repositories.PermissionRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	logger *zap.Logger,
	cacheTTL time.Duration,
) AuthPermissionServiceInterface {
	return &AuthPermissionService{
		permissionRepo: permissionRepo,
		cacheRepo:      cacheRepo,
		logger:         logger,
		cacheTTL:       cacheTTL,
	}
}

// GetRolePermissionsNames читает права роли из кеша, при промахе из БД с повторным кешированием.
// Ошибки кеша не прерывают запрос.
func (s *AuthPermissionService) GetRolePermissionsNames(ctx context.Context, roleID uint64) ([]string, error) {
	cacheKey := fmt.Sprintf(constants.CacheKeyRolePermissions, roleID)
	var permissions []string

	cached, errGet := s.cacheRepo.Get(ctx, cacheKey)
	if errGet == nil {
		if err := json.Unmarshal([]byte(cached), &permissions); err == nil {
			s.logger.Debug("Привилегии роли найдены в кеше", zap.Uint64("roleID", roleID))
			return permissions, nil
		} else {
			s.logger.Warn("Ошибка при десериализации привилегий из кеша", zap.Error(err), zap.String("key", cacheKey))
		}
	} else {
		s.logger.Debug("Привилегии роли не найдены в кеше, запрос к БД", zap.Uint64("roleID", roleID), zap.Error(errGet))
	}

	permissions, errDB := s.permissionRepo.GetPermissionsNamesByRoleID(ctx, roleID)
	if errDB != nil {
		s.logger.Error("Не удалось получить привилегии для роли из БД", zap.Uint64("roleID", roleID), zap.Error(errDB))
		return nil, apperrors.ErrInternalServer
	}

	if len(permissions) > 0 {
		payload, errMarshal := json.Marshal(permissions)
		if errMarshal != nil {
			s.logger.Error("Не удалось сериализовать привилегии для кеширования", zap.Uint64("roleID", roleID), zap.Error(errMarshal))
		} else if errSet := s.cacheRepo.Set(ctx, cacheKey, string(payload), s.cacheTTL); errSet != nil {
			s.logger.Error("Не удалось сохранить привилегии роли в кеш", zap.Uint64("roleID", roleID), zap.Error(errSet))
		}
	}
	return permissions, nil
}

func (s *AuthPermissionService) InvalidateRolePermissionsCache(ctx context.Context, roleID uint64) error {
	cacheKey := fmt.Sprintf(constants.CacheKeyRolePermissions, roleID)
	if err := s.cacheRepo.Del(ctx, cacheKey); err != nil {
		s.logger.Error("Ошибка инвалидации кеша привилегий для роли", zap.Uint64("roleID", roleID), zap.Error(err))
		return err
	}
	s.logger.Info("Кеш привилегий для роли инвалидирован", zap.Uint64("roleID", roleID))
	return nil
}
