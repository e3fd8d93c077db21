package constants

// --- ТИПЫ УВЕДОМЛЕНИЙ ---

type NotificationType string

const (
	NotificationOrderCreated     NotificationType = "ORDER_CREATED"
	NotificationOrderAssigned    NotificationType = "ORDER_ASSIGNED"
	NotificationOrderStatus      NotificationType = "ORDER_STATUS_CHANGED"
	NotificationOrderCancelled   NotificationType = "ORDER_CANCELLED"
	NotificationOrderCompleted   NotificationType = "ORDER_COMPLETED"
	NotificationPaymentReceived  NotificationType = "PAYMENT_RECEIVED"
	NotificationWorkshopSent     NotificationType = "WORKSHOP_SENT"
	NotificationWorkshopReturned NotificationType = "WORKSHOP_RETURNED"
	NotificationPickupReminder   NotificationType = "PICKUP_REMINDER"
	NotificationLowStock         NotificationType = "LOW_STOCK"
)

// PreferenceFlagFor возвращает имя флага в настройках пользователя,
// которым гасится данный тип уведомления. Неизвестные типы считаются
// включенными (пустое имя флага).
func PreferenceFlagFor(t NotificationType) string {
	switch t {
	case NotificationOrderCreated:
		return "notify_new_orders"
	case NotificationOrderStatus, NotificationOrderAssigned, NotificationOrderCancelled,
		NotificationOrderCompleted, NotificationWorkshopSent, NotificationWorkshopReturned,
		NotificationPickupReminder:
		return "notify_status_updates"
	case NotificationPaymentReceived:
		return "notify_payments"
	case NotificationLowStock:
		return "notify_low_stock"
	}
	return ""
}
