package jobs

import (
	"context"
	"fmt"
	"time"

	"laundry-system/internal/repositories"
	"laundry-system/internal/services"
	"laundry-system/pkg/constants"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// PickupReminderJob по расписанию напоминает о заказах с забором на
// сегодня, которым еще не назначен водитель. Уведомление общебизнесовое.
type PickupReminderJob struct {
	orderRepo           repositories.OrderRepositoryInterface
	notificationService services.NotificationServiceInterface
	spec                string
	cron                *cron.Cron
	logger              *zap.Logger
}

func NewPickupReminderJob(
	orderRepo repositories.OrderRepositoryInterface,
	notificationService services.NotificationServiceInterface,
	spec string,
	logger *zap.Logger,
) *PickupReminderJob {
	return &PickupReminderJob{
		orderRepo:           orderRepo,
		notificationService: notificationService,
		spec:                spec,
		cron:                cron.New(cron.WithSeconds()),
		logger:              logger,
	}
}

func (j *PickupReminderJob) Start() error {
	_, err := j.cron.AddFunc(j.spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		j.Run(ctx)
	})
	if err != nil {
		return fmt.Errorf("неверное cron-расписание %q: %w", j.spec, err)
	}

	j.cron.Start()
	j.logger.Info("Задача напоминаний о заборе запущена", zap.String("spec", j.spec))
	return nil
}

func (j *PickupReminderJob) Stop() {
	j.cron.Stop()
	j.logger.Info("Задача напоминаний о заборе остановлена")
}

// Run выполняет один проход; вынесен отдельно для вызова из тестов.
func (j *PickupReminderJob) Run(ctx context.Context) {
	orders, err := j.orderRepo.ListUnassignedForDate(ctx, time.Now())
	if err != nil {
		j.logger.Error("Не удалось выбрать заказы для напоминания", zap.Error(err))
		return
	}
	if len(orders) == 0 {
		return
	}

	// Группируем по бизнесу: одно уведомление на арендатора.
	byBusiness := make(map[uint64]int)
	for _, o := range orders {
		byBusiness[o.BusinessID]++
	}

	for businessID, count := range byBusiness {
		j.notificationService.Notify(ctx, services.NotifyParams{
			BusinessID: businessID,
			Type:       constants.NotificationPickupReminder,
			Title:      "Заборы без водителя",
			Message:    fmt.Sprintf("На сегодня запланировано заборов без водителя: %d", count),
			Metadata:   map[string]interface{}{"count": count},
		})
	}

	j.logger.Info("Напоминания о заборе разосланы",
		zap.Int("orders", len(orders)),
		zap.Int("businesses", len(byBusiness)),
	)
}
