package repository

import (
	"testing"

	"github.com/stretchr/testify/require"

	"backend/internal/app/ds"
)

func TestRatingScoreBounds(t *testing.T) {
	r := newTestRepo(t)
	freezeTime(r)
	s := newSeed(t, r)

	order := s.newOrder(t, r)

	_, err := r.CreateRating(ds.Rating{OrderID: order.ID, Score: 0})
	require.Error(t, err)
	require.Contains(t, err.Error(), "от 1 до 5")

	_, err = r.CreateRating(ds.Rating{OrderID: order.ID, Score: 6})
	require.Error(t, err)

	rating, err := r.CreateRating(ds.Rating{OrderID: order.ID, Score: 5})
	require.NoError(t, err)
	require.Equal(t, 5, rating.Score)
	require.False(t, rating.RatingDate.IsZero())
}

func TestOneRatingPerOrder(t *testing.T) {
	r := newTestRepo(t)
	freezeTime(r)
	s := newSeed(t, r)

	order := s.newOrder(t, r)

	_, err := r.CreateRating(ds.Rating{OrderID: order.ID, Score: 4})
	require.NoError(t, err)

	_, err = r.CreateRating(ds.Rating{OrderID: order.ID, Score: 5})
	require.Error(t, err)
	require.Contains(t, err.Error(), "уже оценён")
}

func TestRatingMirrorsAndCenterAverage(t *testing.T) {
	r := newTestRepo(t)
	freezeTime(r)
	s := newSeed(t, r)

	first := s.newOrder(t, r)
	second := s.newOrder(t, r)

	rating, err := r.CreateRating(ds.Rating{OrderID: first.ID, Score: 5})
	require.NoError(t, err)
	require.NotNil(t, rating.CenterID)
	require.Equal(t, s.Center.ID, *rating.CenterID)
	require.NotNil(t, rating.CustomerID)
	require.Equal(t, s.Customer.ID, *rating.CustomerID)

	_, err = r.CreateRating(ds.Rating{OrderID: second.ID, Score: 2})
	require.NoError(t, err)

	center, err := r.GetCenterByID(s.Center.ID)
	require.NoError(t, err)
	require.InDelta(t, 3.5, center.AvgRating, 0.001)

	customer, err := r.GetCustomerByID(s.Customer.ID)
	require.NoError(t, err)
	require.InDelta(t, 3.5, customer.AvgRating, 0.001)

	// Изменение балла пересчитывает среднее
	_, err = r.UpdateRating(rating.ID, RatingUpdate{Score: intPtr(3)})
	require.NoError(t, err)
	center, err = r.GetCenterByID(s.Center.ID)
	require.NoError(t, err)
	require.InDelta(t, 2.5, center.AvgRating, 0.001)

	// Удаление оставляет среднее по оставшимся оценкам
	require.NoError(t, r.DeleteRating(rating.ID))
	center, err = r.GetCenterByID(s.Center.ID)
	require.NoError(t, err)
	require.InDelta(t, 2.0, center.AvgRating, 0.001)
}

func TestRatingUpdateRejectsBadScore(t *testing.T) {
	r := newTestRepo(t)
	freezeTime(r)
	s := newSeed(t, r)

	order := s.newOrder(t, r)
	rating, err := r.CreateRating(ds.Rating{OrderID: order.ID, Score: 4})
	require.NoError(t, err)

	_, err = r.UpdateRating(rating.ID, RatingUpdate{Score: intPtr(9)})
	require.Error(t, err)

	got, err := r.GetRatingByOrder(order.ID)
	require.NoError(t, err)
	require.Equal(t, 4, got.Score)
}

func TestPaymentStateActions(t *testing.T) {
	r := newTestRepo(t)
	freezeTime(r)
	s := newSeed(t, r)

	order := s.newOrder(t, r)
	s.addLine(t, r, order.ID, 1, 200)

	payment, err := r.CreatePayment(ds.Payment{OrderID: order.ID, Amount: 150})
	require.NoError(t, err)
	require.Equal(t, ds.PaymentDraft, payment.State)

	require.NoError(t, r.ConfirmPayment(payment.ID))
	payment, err = r.GetPaymentByID(payment.ID)
	require.NoError(t, err)
	require.Equal(t, ds.PaymentConfirmed, payment.State)
	// Сумма подтверждённых платежей клиента отражается в зеркале платежа
	require.Equal(t, float64(150), payment.CustomerTotalPayment)

	require.NoError(t, r.CancelPayment(payment.ID))
	payment, err = r.GetPaymentByID(payment.ID)
	require.NoError(t, err)
	require.Equal(t, ds.PaymentCancelled, payment.State)
	require.Equal(t, float64(0), payment.CustomerTotalPayment)

	require.NoError(t, r.ResetPayment(payment.ID))
	payment, err = r.GetPaymentByID(payment.ID)
	require.NoError(t, err)
	require.Equal(t, ds.PaymentDraft, payment.State)
}

func TestPaymentTotalsCountAllStates(t *testing.T) {
	r := newTestRepo(t)
	freezeTime(r)
	s := newSeed(t, r)

	order := s.newOrder(t, r)
	s.addLine(t, r, order.ID, 1, 200)

	payment, err := r.CreatePayment(ds.Payment{OrderID: order.ID, Amount: 150})
	require.NoError(t, err)

	// Отменённый платёж всё равно входит в сумму платежей заказа
	require.NoError(t, r.CancelPayment(payment.ID))
	order, err = r.GetOrderByID(order.ID)
	require.NoError(t, err)
	require.Equal(t, float64(150), order.PaymentTotal)
	require.Equal(t, float64(50), order.BalanceDue)
}
