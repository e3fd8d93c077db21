package services

import (
	"context"
	"time"

	"laundry-system/internal/repositories"
	apperrors "laundry-system/pkg/errors"

	"go.uber.org/zap"
)

type ReportServiceInterface interface {
	GetOrdersReport(ctx context.Context, businessID uint64, from, to time.Time) ([]repositories.OrderReportRow, error)
}

// ReportService собирает данные для выгрузки заказов за период.
type ReportService struct {
	orderRepo repositories.OrderRepositoryInterface
	logger    *zap.Logger
}

func NewReportService(orderRepo repositories.OrderRepositoryInterface, logger *zap.Logger) ReportServiceInterface {
	return &ReportService{orderRepo: orderRepo, logger: logger}
}

func (s *ReportService) GetOrdersReport(ctx context.Context, businessID uint64, from, to time.Time) ([]repositories.OrderReportRow, error) {
	if !to.After(from) {
		return nil, apperrors.NewInvalidInputError("конец периода должен быть позже начала")
	}

	rows, err := s.orderRepo.ListForReport(ctx, businessID, from, to)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Сформирован отчет по заказам",
		zap.Uint64("businessId", businessID),
		zap.Int("rows", len(rows)),
	)
	return rows, nil
}
