package engine

import (
	"time"

	"backend/internal/app/ds"
)

// Именованные предикаты для фильтрации загруженных коллекций.
// Все срезы по заказам/платежам считаются через них, а не inline-условиями.

// OrderInProgress — заказ в работе (срез "активных" для центра).
func OrderInProgress(o ds.Order) bool {
	return o.State == ds.OrderInProgress
}

// OrderOpen — заказ не завершён и не отменён (срез "активных" для мастера,
// района и региона).
func OrderOpen(o ds.Order) bool {
	return o.State != ds.OrderDone && o.State != ds.OrderCancelled
}

// OrderCountryOpen — страновой срез "активных": только черновики и заказы в
// работе.
func OrderCountryOpen(o ds.Order) bool {
	return o.State == ds.OrderDraft || o.State == ds.OrderInProgress
}

// OrderCustomerActive — клиентский срез "активных" сверяет статус с тегом
// "active", которого нет в перечислении статусов заказа. Фильтр всегда
// возвращает false; несоответствие зафиксировано и намеренно не исправлено.
func OrderCustomerActive(o ds.Order) bool {
	return o.State == "active"
}

func OrderDone(o ds.Order) bool {
	return o.State == ds.OrderDone
}

func OrderCancelled(o ds.Order) bool {
	return o.State == ds.OrderCancelled
}

// OrderPlacedOn — заказ оформлен в указанный день.
func OrderPlacedOn(o ds.Order, day time.Time) bool {
	return sameDay(o.OrderDate, day)
}

// PaymentZero — нулевой платёж, цель действий очистки.
func PaymentZero(p ds.Payment) bool {
	return p.Amount == 0
}

// PaymentConfirmed — подтверждённый платёж (входит в сумму платежей клиента).
func PaymentConfirmed(p ds.Payment) bool {
	return p.State == ds.PaymentConfirmed
}

// PaymentCounted — платёж, учитываемый лимитом по заказу: черновики и
// подтверждённые, отменённые не считаются.
func PaymentCounted(p ds.Payment) bool {
	return p.State != ds.PaymentCancelled
}

// CenterIdle — в центре нет заказов в работе.
func CenterIdle(c ds.Center) bool {
	return c.ActiveOrderCount == 0
}
