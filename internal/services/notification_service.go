package services

import (
	"context"

	"laundry-system/internal/entities"
	"laundry-system/internal/repositories"
	"laundry-system/pkg/constants"

	"go.uber.org/zap"
)

// NotifyParams — запрос на создание уведомления.
// UserID == nil создает общебизнесовое уведомление: оно не гасится
// персональными настройками.
type NotifyParams struct {
	BusinessID uint64
	UserID     *uint64
	Type       constants.NotificationType
	Title      string
	Message    string
	Metadata   map[string]interface{}
}

type NotificationServiceInterface interface {
	Notify(ctx context.Context, p NotifyParams)
	List(ctx context.Context, businessID, userID uint64, onlyUnread bool) ([]entities.Notification, error)
	MarkRead(ctx context.Context, businessID, userID, notificationID uint64) error
	MarkAllRead(ctx context.Context, businessID, userID uint64) error
	Delete(ctx context.Context, businessID, userID, notificationID uint64) error
}

// NotificationService создает и отдает внутренние уведомления.
// Сбой уведомления никогда не валит породившую его операцию: ошибки
// здесь логируются и глотаются.
type NotificationService struct {
	notificationRepo repositories.NotificationRepositoryInterface
	userRepo         repositories.UserRepositoryInterface
	logger           *zap.Logger
}

func NewNotificationService(
	notificationRepo repositories.NotificationRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	logger *zap.Logger,
) NotificationServiceInterface {
	return &NotificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		logger:           logger,
	}
}

// Notify создает уведомление, если настройки адресата это разрешают.
// Для персонального уведомления читаются флаги пользователя; заглушенный
// тип просто не создается, без ошибки.
func (s *NotificationService) Notify(ctx context.Context, p NotifyParams) {
	if p.UserID != nil {
		settings, err := s.userRepo.GetNotificationSettings(ctx, *p.UserID)
		if err != nil {
			s.logger.Error("Не удалось прочитать настройки уведомлений",
				zap.Uint64("userId", *p.UserID),
				zap.Error(err),
			)
			return
		}
		if !settings.AllowsType(constants.PreferenceFlagFor(p.Type)) {
			return
		}
	}

	n := &entities.Notification{
		BusinessID: p.BusinessID,
		UserID:     p.UserID,
		Type:       p.Type,
		Title:      p.Title,
		Message:    p.Message,
		Metadata:   p.Metadata,
	}
	if err := s.notificationRepo.Create(ctx, n); err != nil {
		s.logger.Error("Не удалось создать уведомление",
			zap.String("type", string(p.Type)),
			zap.Uint64("businessId", p.BusinessID),
			zap.Error(err),
		)
	}
}

func (s *NotificationService) List(ctx context.Context, businessID, userID uint64, onlyUnread bool) ([]entities.Notification, error) {
	return s.notificationRepo.ListForUser(ctx, businessID, userID, onlyUnread)
}

func (s *NotificationService) MarkRead(ctx context.Context, businessID, userID, notificationID uint64) error {
	return s.notificationRepo.MarkRead(ctx, businessID, userID, notificationID)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, businessID, userID uint64) error {
	return s.notificationRepo.MarkAllRead(ctx, businessID, userID)
}

func (s *NotificationService) Delete(ctx context.Context, businessID, userID, notificationID uint64) error {
	return s.notificationRepo.Delete(ctx, businessID, userID, notificationID)
}
