package listeners

import (
	"context"
	"fmt"

	"laundry-system/internal/events"
	"laundry-system/internal/services"
	"laundry-system/pkg/constants"
	"laundry-system/pkg/eventbus"

	"go.uber.org/zap"
)

// NotificationListener переводит доменные события заказов во внутренние
// уведомления и сбрасывает кеш сводки. Работает уже после коммита,
// в горутинах шины: его ошибки не влияют на породившие операции.
type NotificationListener struct {
	notificationService services.NotificationServiceInterface
	dashboardService    services.DashboardServiceInterface
	logger              *zap.Logger
}

func NewNotificationListener(
	notificationService services.NotificationServiceInterface,
	dashboardService services.DashboardServiceInterface,
	logger *zap.Logger,
) *NotificationListener {
	return &NotificationListener{
		notificationService: notificationService,
		dashboardService:    dashboardService,
		logger:              logger,
	}
}

func (l *NotificationListener) Register(bus *eventbus.Bus) {
	bus.Subscribe("order.created", l.handleOrderCreated)
	bus.Subscribe("order.status_changed", l.handleStatusChanged)
	bus.Subscribe("order.driver_assigned", l.handleDriverAssigned)
	bus.Subscribe("order.payment_received", l.handlePaymentReceived)
	bus.Subscribe("workshop.items_sent", l.handleWorkshopSent)
	bus.Subscribe("workshop.item_returned", l.handleWorkshopReturned)
	l.logger.Info("NotificationListener подписан на события заказов")
}

func (l *NotificationListener) handleOrderCreated(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.OrderCreatedEvent)
	if !ok {
		return nil
	}

	l.notificationService.Notify(ctx, services.NotifyParams{
		BusinessID: e.Order.BusinessID,
		Type:       constants.NotificationOrderCreated,
		Title:      "Новый заказ",
		Message:    fmt.Sprintf("Создан заказ %s на сумму %.2f", e.Order.OrderNumber, e.Order.TotalAmount),
		Metadata:   map[string]interface{}{"order_id": e.Order.ID},
	})
	l.dashboardService.InvalidateStats(ctx, e.Order.BusinessID)
	return nil
}

func (l *NotificationListener) handleStatusChanged(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.OrderStatusChangedEvent)
	if !ok {
		return nil
	}

	notifType := constants.NotificationOrderStatus
	title := "Статус заказа изменен"
	switch e.ToStatus {
	case constants.StatusCancelled:
		notifType = constants.NotificationOrderCancelled
		title = "Заказ отменен"
	case constants.StatusCompleted:
		notifType = constants.NotificationOrderCompleted
		title = "Заказ выполнен"
	}

	l.notificationService.Notify(ctx, services.NotifyParams{
		BusinessID: e.Order.BusinessID,
		Type:       notifType,
		Title:      title,
		Message:    fmt.Sprintf("Заказ %s: %s -> %s", e.Order.OrderNumber, e.FromStatus, e.ToStatus),
		Metadata: map[string]interface{}{
			"order_id":    e.Order.ID,
			"from_status": e.FromStatus.String(),
			"to_status":   e.ToStatus.String(),
		},
	})
	l.dashboardService.InvalidateStats(ctx, e.Order.BusinessID)
	return nil
}

func (l *NotificationListener) handleDriverAssigned(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.DriverAssignedEvent)
	if !ok {
		return nil
	}

	message := fmt.Sprintf("С заказа %s снят водитель", e.Order.OrderNumber)
	if e.DriverID != nil {
		message = fmt.Sprintf("На заказ %s назначен водитель", e.Order.OrderNumber)
	}

	l.notificationService.Notify(ctx, services.NotifyParams{
		BusinessID: e.Order.BusinessID,
		Type:       constants.NotificationOrderAssigned,
		Title:      "Назначение водителя",
		Message:    message,
		Metadata:   map[string]interface{}{"order_id": e.Order.ID},
	})
	return nil
}

func (l *NotificationListener) handlePaymentReceived(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.PaymentReceivedEvent)
	if !ok {
		return nil
	}

	l.notificationService.Notify(ctx, services.NotifyParams{
		BusinessID: e.Order.BusinessID,
		Type:       constants.NotificationPaymentReceived,
		Title:      "Получена оплата",
		Message:    fmt.Sprintf("По заказу %s зачислено %.2f (%s)", e.Order.OrderNumber, e.Amount, e.Order.PaymentStatus),
		Metadata:   map[string]interface{}{"order_id": e.Order.ID, "amount": e.Amount},
	})
	l.dashboardService.InvalidateStats(ctx, e.Order.BusinessID)
	return nil
}

func (l *NotificationListener) handleWorkshopSent(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.WorkshopItemsSentEvent)
	if !ok {
		return nil
	}

	l.notificationService.Notify(ctx, services.NotifyParams{
		BusinessID: e.Order.BusinessID,
		Type:       constants.NotificationWorkshopSent,
		Title:      "Вещи отправлены в цех",
		Message:    fmt.Sprintf("По заказу %s отправлено в цех вещей: %d", e.Order.OrderNumber, e.ItemCount),
		Metadata:   map[string]interface{}{"order_id": e.Order.ID, "item_count": e.ItemCount},
	})
	return nil
}

func (l *NotificationListener) handleWorkshopReturned(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.WorkshopItemReturnedEvent)
	if !ok {
		return nil
	}

	l.notificationService.Notify(ctx, services.NotifyParams{
		BusinessID: e.BusinessID,
		Type:       constants.NotificationWorkshopReturned,
		Title:      "Вещь вернулась из цеха",
		Message:    fmt.Sprintf("Вещь #%d возвращена из цеха в статус %s", e.ItemID, e.ToStatus),
		Metadata:   map[string]interface{}{"item_id": e.ItemID, "to_status": e.ToStatus.String()},
	})
	return nil
}
