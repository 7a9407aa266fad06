package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"backend/internal/app/apperr"
	"backend/internal/app/ds"
)

func TestCustomerActiveSliceNeverMatches(t *testing.T) {
	r := newTestRepo(t)
	freezeTime(r)
	s := newSeed(t, r)

	inWork := s.newOrder(t, r)
	require.NoError(t, r.StartOrder(inWork.ID))
	s.newOrder(t, r) // черновик

	// Центр считает заказ в работе активным, клиентский срез — нет:
	// клиентский фильтр сверяет статус с несуществующим тегом
	center, err := r.GetCenterByID(s.Center.ID)
	require.NoError(t, err)
	require.Equal(t, 1, center.ActiveOrderCount)

	customer, err := r.GetCustomerByID(s.Customer.ID)
	require.NoError(t, err)
	require.Equal(t, 2, customer.OrderCount)
	require.Equal(t, 0, customer.ActiveOrderCount)
	require.Equal(t, 2, customer.TodayOrderCount)
}

func TestCloseCustomerDebt(t *testing.T) {
	r := newTestRepo(t)
	freezeTime(r)
	s := newSeed(t, r)

	first := s.newOrder(t, r)
	s.addLine(t, r, first.ID, 1, 100)
	_, err := r.CreatePayment(ds.Payment{OrderID: first.ID, Amount: 30})
	require.NoError(t, err)

	second := s.newOrder(t, r)
	s.addLine(t, r, second.ID, 1, 200)

	customer, err := r.GetCustomerByID(s.Customer.ID)
	require.NoError(t, err)
	require.Equal(t, float64(270), customer.BalanceDue)

	require.NoError(t, r.CloseCustomerDebt(s.Customer.ID))

	customer, err = r.GetCustomerByID(s.Customer.ID)
	require.NoError(t, err)
	require.Equal(t, float64(0), customer.BalanceDue)
	require.Equal(t, float64(300), customer.TotalPayment)

	for _, orderID := range []uint{first.ID, second.ID} {
		order, err := r.GetOrderByID(orderID)
		require.NoError(t, err)
		require.Equal(t, float64(0), order.BalanceDue)
	}

	// Погашающие платежи создаются сразу подтверждёнными
	payments, err := r.GetPaymentsByOrder(second.ID)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	require.Equal(t, ds.PaymentConfirmed, payments[0].State)
	require.Equal(t, float64(200), payments[0].Amount)

	// Повторный вызов не создаёт новых платежей
	require.NoError(t, r.CloseCustomerDebt(s.Customer.ID))
	payments, err = r.GetPaymentsByOrder(second.ID)
	require.NoError(t, err)
	require.Len(t, payments, 1)
}

func TestCleanupCancelledOrders(t *testing.T) {
	r := newTestRepo(t)
	freezeTime(r)
	s := newSeed(t, r)

	cancelled := s.newOrder(t, r)
	s.addLine(t, r, cancelled.ID, 1, 100)
	_, err := r.CreatePayment(ds.Payment{OrderID: cancelled.ID, Amount: 100})
	require.NoError(t, err)
	require.NoError(t, r.CancelOrder(cancelled.ID))

	kept := s.newOrder(t, r)

	require.NoError(t, r.CleanupCancelledOrders(s.Customer.ID))

	_, err = r.GetOrderByID(cancelled.ID)
	require.Error(t, err)
	_, err = r.GetOrderByID(kept.ID)
	require.NoError(t, err)

	customer, err := r.GetCustomerByID(s.Customer.ID)
	require.NoError(t, err)
	require.Equal(t, 1, customer.OrderCount)
	require.Equal(t, float64(0), customer.TotalPayment)

	// Идемпотентность: без отменённых заказов вызов ничего не делает
	require.NoError(t, r.CleanupCancelledOrders(s.Customer.ID))
}

func TestDeleteCustomerRestrictedByOrders(t *testing.T) {
	r := newTestRepo(t)
	freezeTime(r)
	s := newSeed(t, r)

	s.newOrder(t, r)

	err := r.DeleteCustomer(s.Customer.ID)
	require.Error(t, err)
	var refErr *apperr.ReferentialError
	require.True(t, errors.As(err, &refErr))

	// Без заказов клиент удаляется
	free, err := r.CreateCustomer(ds.Customer{Name: "Без заказов"})
	require.NoError(t, err)
	require.NoError(t, r.DeleteCustomer(free.ID))
	_, err = r.GetCustomerByID(free.ID)
	require.Error(t, err)
}

func TestCleanupCustomerZeroPayments(t *testing.T) {
	r := newTestRepo(t)
	freezeTime(r)
	s := newSeed(t, r)

	order := s.newOrder(t, r)
	s.addLine(t, r, order.ID, 1, 100)
	_, err := r.CreatePayment(ds.Payment{OrderID: order.ID, Amount: 0})
	require.NoError(t, err)
	_, err = r.CreatePayment(ds.Payment{OrderID: order.ID, Amount: 40})
	require.NoError(t, err)

	require.NoError(t, r.CleanupCustomerZeroPayments(s.Customer.ID))

	payments, err := r.GetPaymentsByOrder(order.ID)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	require.Equal(t, float64(40), payments[0].Amount)
}
