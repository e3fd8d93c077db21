package events

import (
	"laundry-system/internal/entities"
	"laundry-system/pkg/constants"
)

// OrderCreatedEvent возникает после фиксации нового заказа.
type OrderCreatedEvent struct {
	Order *entities.Order
	Actor entities.Actor
}

func (e OrderCreatedEvent) Name() string { return "order.created" }

// OrderStatusChangedEvent возникает после успешного CAS-перехода.
type OrderStatusChangedEvent struct {
	Order      *entities.Order
	FromStatus constants.OrderStatus
	ToStatus   constants.OrderStatus
	Actor      entities.Actor
}

func (e OrderStatusChangedEvent) Name() string { return "order.status_changed" }

// DriverAssignedEvent: DriverID == nil означает снятие водителя.
type DriverAssignedEvent struct {
	Order    *entities.Order
	DriverID *uint64
	Actor    entities.Actor
}

func (e DriverAssignedEvent) Name() string { return "order.driver_assigned" }

// PaymentReceivedEvent возникает после зачисления оплаты.
type PaymentReceivedEvent struct {
	Order  *entities.Order
	Amount float64
	Actor  entities.Actor
}

func (e PaymentReceivedEvent) Name() string { return "order.payment_received" }

// WorkshopItemsSentEvent возникает после отправки вещей в цех.
type WorkshopItemsSentEvent struct {
	Order     *entities.Order
	ItemCount int64
	Actor     entities.Actor
}

func (e WorkshopItemsSentEvent) Name() string { return "workshop.items_sent" }

// WorkshopItemReturnedEvent возникает после возврата вещи из цеха.
type WorkshopItemReturnedEvent struct {
	BusinessID uint64
	ItemID     uint64
	ToStatus   constants.ItemStatus
	Actor      entities.Actor
}

func (e WorkshopItemReturnedEvent) Name() string { return "workshop.item_returned" }
