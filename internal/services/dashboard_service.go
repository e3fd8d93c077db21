package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"laundry-system/internal/repositories"

	"go.uber.org/zap"
)

type DashboardServiceInterface interface {
	GetStats(ctx context.Context, businessID uint64) (*repositories.OrderStats, error)
	InvalidateStats(ctx context.Context, businessID uint64)
}

// DashboardService отдает сводку по заказам бизнеса с коротким кешем
// в Redis: сводка дорогая, а свежесть в пределах минут приемлема.
type DashboardService struct {
	orderRepo repositories.OrderRepositoryInterface
	cache     repositories.CacheRepositoryInterface
	ttl       time.Duration
	logger    *zap.Logger
}

func NewDashboardService(
	orderRepo repositories.OrderRepositoryInterface,
	cache repositories.CacheRepositoryInterface,
	ttl time.Duration,
	logger *zap.Logger,
) DashboardServiceInterface {
	return &DashboardService{
		orderRepo: orderRepo,
		cache:     cache,
		ttl:       ttl,
		logger:    logger,
	}
}

func statsCacheKey(businessID uint64) string {
	return fmt.Sprintf("dashboard:stats:%d", businessID)
}

func (s *DashboardService) GetStats(ctx context.Context, businessID uint64) (*repositories.OrderStats, error) {
	key := statsCacheKey(businessID)

	if cached, err := s.cache.Get(ctx, key); err == nil && cached != "" {
		var stats repositories.OrderStats
		if err := json.Unmarshal([]byte(cached), &stats); err == nil {
			return &stats, nil
		}
		// Битый кеш не фатален, идем в базу.
		s.logger.Warn("Не удалось распаковать кеш сводки", zap.String("key", key))
	}

	stats, err := s.orderRepo.GetStats(ctx, businessID)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(stats); err == nil {
		if err := s.cache.Set(ctx, key, raw, s.ttl); err != nil {
			s.logger.Warn("Не удалось записать кеш сводки", zap.String("key", key), zap.Error(err))
		}
	}

	return stats, nil
}

// InvalidateStats сбрасывает кеш сводки бизнеса; вызывается слушателем
// событий заказа.
func (s *DashboardService) InvalidateStats(ctx context.Context, businessID uint64) {
	if err := s.cache.Del(ctx, statsCacheKey(businessID)); err != nil {
		s.logger.Warn("Не удалось сбросить кеш сводки",
			zap.Uint64("businessId", businessID),
			zap.Error(err),
		)
	}
}
