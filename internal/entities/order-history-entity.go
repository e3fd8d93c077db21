package entities

import (
	"time"

	"laundry-system/pkg/constants"
)

// ActorKind — кто выполнил переход: сотрудник, водитель или система.
type ActorKind string

const (
	ActorStaff  ActorKind = "STAFF"
	ActorDriver ActorKind = "DRIVER"
	ActorSystem ActorKind = "SYSTEM"
)

// Actor — типизированная ссылка на исполнителя перехода.
// В текст для отображения превращается только на границе представления.
type Actor struct {
	Kind ActorKind `json:"kind"`
	ID   uint64    `json:"id"`
	Name string    `json:"name"`
}

func SystemActor() Actor {
	return Actor{Kind: ActorSystem, Name: "system"}
}

// OrderStatusHistory — журнал переходов, только на добавление.
// Строки никогда не изменяются и не удаляются.
type OrderStatusHistory struct {
	ID         uint64                `json:"id" db:"id"`
	OrderID    uint64                `json:"order_id" db:"order_id"`
	FromStatus constants.OrderStatus `json:"from_status" db:"from_status"`
	ToStatus   constants.OrderStatus `json:"to_status" db:"to_status"`
	ActorKind  ActorKind             `json:"actor_kind" db:"actor_kind"`
	ActorID    uint64                `json:"actor_id" db:"actor_id"`
	ActorName  string                `json:"actor_name" db:"actor_name"`
	Notes      *string               `json:"notes,omitempty" db:"notes"`
	CreatedAt  time.Time             `json:"created_at" db:"created_at"`
}
