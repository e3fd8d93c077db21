package constants

// --- СТАТУСЫ ЗАКАЗОВ (совпадает с кодами в БД) ---

type OrderStatus string

const (
	StatusPickup           OrderStatus = "PICKUP"
	StatusInProgress       OrderStatus = "IN_PROGRESS"
	StatusAtWorkshop       OrderStatus = "AT_WORKSHOP"
	StatusWorkshopReturned OrderStatus = "WORKSHOP_RETURNED"
	StatusReady            OrderStatus = "READY"
	StatusOutForDelivery   OrderStatus = "OUT_FOR_DELIVERY"
	StatusCompleted        OrderStatus = "COMPLETED"
	StatusCancelled        OrderStatus = "CANCELLED"
)

// allowedTransitions — закрытый граф переходов между статусами заказа.
// CANCELLED достижим из любого нефинального статуса; финальные статусы
// исходящих рёбер не имеют.
var allowedTransitions = map[OrderStatus][]OrderStatus{
	StatusPickup:           {StatusInProgress, StatusCancelled},
	StatusInProgress:       {StatusAtWorkshop, StatusReady, StatusCancelled},
	StatusAtWorkshop:       {StatusWorkshopReturned, StatusCancelled},
	StatusWorkshopReturned: {StatusAtWorkshop, StatusReady, StatusCancelled},
	StatusReady:            {StatusOutForDelivery, StatusCompleted, StatusCancelled},
	StatusOutForDelivery:   {StatusCompleted, StatusCancelled},
	StatusCompleted:        {},
	StatusCancelled:        {},
}

func (s OrderStatus) Valid() bool {
	_, ok := allowedTransitions[s]
	return ok
}

func (s OrderStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransitionTo проверяет ребро (s -> target) по графу переходов.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	for _, t := range allowedTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

func (s OrderStatus) String() string { return string(s) }

// --- СТАТУСЫ ВЕЩЕЙ ---
// Вещь проживает подмножество статусов заказа независимо от него:
// часть вещей может быть в цехе, пока остальные уже готовы.

type ItemStatus string

const (
	ItemStatusPickup           ItemStatus = "PICKUP"
	ItemStatusInProgress       ItemStatus = "IN_PROGRESS"
	ItemStatusAtWorkshop       ItemStatus = "AT_WORKSHOP"
	ItemStatusWorkshopReturned ItemStatus = "WORKSHOP_RETURNED"
	ItemStatusReady            ItemStatus = "READY"
	ItemStatusCompleted        ItemStatus = "COMPLETED"
	ItemStatusCancelled        ItemStatus = "CANCELLED"
)

func (s ItemStatus) Valid() bool {
	switch s {
	case ItemStatusPickup, ItemStatusInProgress, ItemStatusAtWorkshop,
		ItemStatusWorkshopReturned, ItemStatusReady, ItemStatusCompleted, ItemStatusCancelled:
		return true
	}
	return false
}

func (s ItemStatus) String() string { return string(s) }

// --- СТАТУСЫ ОПЛАТЫ ---

type PaymentStatus string

const (
	PaymentUnpaid  PaymentStatus = "UNPAID"
	PaymentPartial PaymentStatus = "PARTIAL"
	PaymentPaid    PaymentStatus = "PAID"
)

func (s PaymentStatus) String() string { return string(s) }

// DerivePaymentStatus выводит статус оплаты из пары (оплачено, итого).
// Статус всегда пересчитывается из хранимых сумм и нигде не живет отдельно.
func DerivePaymentStatus(paidAmount, totalAmount float64) PaymentStatus {
	switch {
	case paidAmount <= 0:
		return PaymentUnpaid
	case paidAmount >= totalAmount:
		return PaymentPaid
	default:
		return PaymentPartial
	}
}
