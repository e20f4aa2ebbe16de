package services

import (
	"context"
	"encoding/json"
	"time"

	"erp-system/internal/authz"
	"erp-system/internal/repositories"
	apperrors "erp-system/pkg/errors"
	"erp-system/pkg/utils"

	"go.uber.org/zap"
)

type BaseService struct {
	cacheRepo repositories.CacheRepositoryInterface
	logger    *zap.Logger
}

func NewBaseService(cacheRepo repositories.CacheRepositoryInterface, logger *zap.Logger) *BaseService {
	return &BaseService{cacheRepo: cacheRepo, logger: logger}
}

// AuthContext собирает контекст авторизации из данных, положенных в запрос middleware.
func (s *BaseService) AuthContext(ctx context.Context) (authz.Context, error) {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return authz.Context{}, apperrors.ErrUnauthorized
	}
	permissions, err := utils.GetPermissionsMapFromCtx(ctx)
	if err != nil {
		permissions = map[string]bool{}
	}
	return authz.Context{ActorID: userID, Permissions: permissions}, nil
}

// CheckPermission возвращает контекст авторизации или ErrForbidden.
func (s *BaseService) CheckPermission(ctx context.Context, permission string) (authz.Context, error) {
	authCtx, err := s.AuthContext(ctx)
	if err != nil {
		s.logger.Warn("Пользователь не авторизован", zap.Error(err))
		return authz.Context{}, err
	}
	if !authz.CanDo(permission, authCtx) {
		s.logger.Warn("Отказано в доступе",
			zap.Uint64("userID", authCtx.ActorID),
			zap.String("permission", permission),
		)
		return authCtx, apperrors.ErrForbidden
	}
	return authCtx, nil
}

// CacheGet читает JSON из кеша в dest. Промах и ошибки кеша дают false.
func (s *BaseService) CacheGet(ctx context.Context, key string, dest interface{}) bool {
	if s.cacheRepo == nil {
		return false
	}
	cached, err := s.cacheRepo.Get(ctx, key)
	if err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(cached), dest); err != nil {
		s.logger.Warn("Повреждённые данные в кеше", zap.String("key", key), zap.Error(err))
		return false
	}
	s.logger.Debug("Данные получены из кэша", zap.String("key", key))
	return true
}

func (s *BaseService) CacheSet(ctx context.Context, key string, data interface{}, ttl time.Duration) {
	if s.cacheRepo == nil {
		return
	}
	serialized, err := json.Marshal(data)
	if err != nil {
		s.logger.Error("Не удалось сериализовать данные для кеша", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.cacheRepo.Set(ctx, key, string(serialized), ttl); err != nil {
		s.logger.Warn("Не удалось записать в кеш", zap.String("key", key), zap.Error(err))
	}
}
