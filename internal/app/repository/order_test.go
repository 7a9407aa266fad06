package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"backend/internal/app/ds"
)

func floatPtr(v float64) *float64 { return &v }
func uintPtr(v uint) *uint        { return &v }
func intPtr(v int) *int           { return &v }
func boolPtr(v bool) *bool        { return &v }

func TestOrderTotalFromLinesFeeAndDiscount(t *testing.T) {
	r := newTestRepo(t)
	freezeTime(r)
	s := newSeed(t, r)

	order := s.newOrder(t, r)
	require.Equal(t, ds.OrderDraft, order.State)
	require.Equal(t, float64(0), order.TotalAmount)

	s.addLine(t, r, order.ID, 2, 50) // 100
	s.addLine(t, r, order.ID, 1, 50) // 50

	order, err := r.UpdateOrder(order.ID, OrderUpdate{
		LaborFee:       floatPtr(20),
		DiscountAmount: floatPtr(10),
	})
	require.NoError(t, err)
	require.Equal(t, float64(160), order.TotalAmount)
	require.Equal(t, float64(160), order.BalanceDue)

	lines, err := r.GetOrderLines(order.ID)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	require.Equal(t, float64(100), lines[0].SubTotal)
	require.Equal(t, float64(50), lines[1].SubTotal)
}

func TestOrderLineUpdateRecomputesTotal(t *testing.T) {
	r := newTestRepo(t)
	freezeTime(r)
	s := newSeed(t, r)

	order := s.newOrder(t, r)
	line := s.addLine(t, r, order.ID, 2, 50)

	line, err := r.UpdateOrderLine(line.ID, OrderLineUpdate{Quantity: intPtr(3)})
	require.NoError(t, err)
	require.Equal(t, float64(150), line.SubTotal)

	order, err = r.GetOrderByID(order.ID)
	require.NoError(t, err)
	require.Equal(t, float64(150), order.TotalAmount)

	require.NoError(t, r.DeleteOrderLine(line.ID))
	order, err = r.GetOrderByID(order.ID)
	require.NoError(t, err)
	require.Equal(t, float64(0), order.TotalAmount)
}

func TestPaymentUpdatesOrderBalance(t *testing.T) {
	r := newTestRepo(t)
	freezeTime(r)
	s := newSeed(t, r)

	order := s.newOrder(t, r)
	s.addLine(t, r, order.ID, 2, 50)
	_, err := r.UpdateOrder(order.ID, OrderUpdate{
		LaborFee:       floatPtr(20),
		DiscountAmount: floatPtr(10),
	})
	require.NoError(t, err)

	payment, err := r.CreatePayment(ds.Payment{OrderID: order.ID, Amount: 100})
	require.NoError(t, err)
	require.Equal(t, ds.PaymentDraft, payment.State)
	require.Equal(t, ds.PaymentMethodCash, payment.Method)
	// зеркальные ссылки платежа берутся из заказа
	require.Equal(t, s.Center.ID, payment.CenterID)
	require.Equal(t, s.Customer.ID, payment.CustomerID)
	require.Equal(t, float64(160), payment.OrderTotal)
	require.Equal(t, float64(60), payment.OrderBalanceDue)

	order, err = r.GetOrderByID(order.ID)
	require.NoError(t, err)
	require.Equal(t, float64(100), order.PaymentTotal)
	require.Equal(t, float64(60), order.BalanceDue)
	require.NotNil(t, order.LastPaymentDate)
}

func TestPaymentCeilingRollsBack(t *testing.T) {
	r := newTestRepo(t)
	freezeTime(r)
	s := newSeed(t, r)

	order := s.newOrder(t, r)
	s.addLine(t, r, order.ID, 2, 80) // total 160

	_, err := r.CreatePayment(ds.Payment{OrderID: order.ID, Amount: 100})
	require.NoError(t, err)

	_, err = r.CreatePayment(ds.Payment{OrderID: order.ID, Amount: 61})
	require.Error(t, err)
	require.Contains(t, err.Error(), "превышать сумму заказа")

	// Транзакция откатилась целиком: платёж не записан, агрегаты прежние
	payments, err := r.GetPaymentsByOrder(order.ID)
	require.NoError(t, err)
	require.Len(t, payments, 1)

	order, err = r.GetOrderByID(order.ID)
	require.NoError(t, err)
	require.Equal(t, float64(100), order.PaymentTotal)
	require.Equal(t, float64(60), order.BalanceDue)
}

func TestPaymentCeilingIgnoresCancelled(t *testing.T) {
	r := newTestRepo(t)
	freezeTime(r)
	s := newSeed(t, r)

	order := s.newOrder(t, r)
	s.addLine(t, r, order.ID, 1, 100)

	first, err := r.CreatePayment(ds.Payment{OrderID: order.ID, Amount: 100})
	require.NoError(t, err)

	// Лимит занят полностью
	_, err = r.CreatePayment(ds.Payment{OrderID: order.ID, Amount: 1})
	require.Error(t, err)

	// После отмены первый платёж перестаёт занимать лимит
	require.NoError(t, r.CancelPayment(first.ID))
	_, err = r.CreatePayment(ds.Payment{OrderID: order.ID, Amount: 100})
	require.NoError(t, err)
}

func TestPaymentDateNotInFuture(t *testing.T) {
	r := newTestRepo(t)
	freezeTime(r)
	s := newSeed(t, r)

	order := s.newOrder(t, r)
	s.addLine(t, r, order.ID, 1, 100)

	future := testToday.AddDate(0, 0, 1)
	_, err := r.CreatePayment(ds.Payment{OrderID: order.ID, Amount: 10, PaymentDate: future})
	require.Error(t, err)
	require.Contains(t, err.Error(), "будущем")

	// Тот же день допускается независимо от времени суток
	sameDayLater := testToday.Add(5 * time.Hour)
	_, err = r.CreatePayment(ds.Payment{OrderID: order.ID, Amount: 10, PaymentDate: sameDayLater})
	require.NoError(t, err)
}

func TestFinishOrderRequiresZeroBalance(t *testing.T) {
	r := newTestRepo(t)
	freezeTime(r)
	s := newSeed(t, r)

	order := s.newOrder(t, r)
	s.addLine(t, r, order.ID, 2, 80) // total 160
	require.NoError(t, r.StartOrder(order.ID))

	err := r.FinishOrder(order.ID)
	require.Error(t, err)
	require.Contains(t, err.Error(), "долг")

	order, err = r.GetOrderByID(order.ID)
	require.NoError(t, err)
	require.Equal(t, ds.OrderInProgress, order.State)

	_, err = r.CreatePayment(ds.Payment{OrderID: order.ID, Amount: 160})
	require.NoError(t, err)

	require.NoError(t, r.FinishOrder(order.ID))
	order, err = r.GetOrderByID(order.ID)
	require.NoError(t, err)
	require.Equal(t, ds.OrderDone, order.State)
}

func TestOrderLifecycleActions(t *testing.T) {
	r := newTestRepo(t)
	freezeTime(r)
	s := newSeed(t, r)

	order := s.newOrder(t, r)

	steps := []struct {
		action func(uint) error
		state  string
	}{
		{r.ReceiveOrder, ds.OrderReceived},
		{r.DiagnoseOrder, ds.OrderDiagnosed},
		{r.StartOrder, ds.OrderInProgress},
		{r.CancelOrder, ds.OrderCancelled},
	}
	for _, step := range steps {
		require.NoError(t, step.action(order.ID))
		got, err := r.GetOrderByID(order.ID)
		require.NoError(t, err)
		require.Equal(t, step.state, got.State)
	}
}

func TestFinishAllCenterInProgressSkipsDebtCheck(t *testing.T) {
	r := newTestRepo(t)
	freezeTime(r)
	s := newSeed(t, r)

	inWork := s.newOrder(t, r)
	s.addLine(t, r, inWork.ID, 1, 500) // долг остаётся
	require.NoError(t, r.StartOrder(inWork.ID))

	draft := s.newOrder(t, r)

	require.NoError(t, r.FinishAllCenterInProgress(s.Center.ID))

	got, err := r.GetOrderByID(inWork.ID)
	require.NoError(t, err)
	require.Equal(t, ds.OrderDone, got.State)
	require.Equal(t, float64(500), got.BalanceDue)

	// Черновики массовое завершение не трогает
	got, err = r.GetOrderByID(draft.ID)
	require.NoError(t, err)
	require.Equal(t, ds.OrderDraft, got.State)
}

func TestCleanupOrderZeroPaymentsIdempotent(t *testing.T) {
	r := newTestRepo(t)
	freezeTime(r)
	s := newSeed(t, r)

	order := s.newOrder(t, r)
	s.addLine(t, r, order.ID, 1, 100)

	_, err := r.CreatePayment(ds.Payment{OrderID: order.ID, Amount: 0})
	require.NoError(t, err)
	_, err = r.CreatePayment(ds.Payment{OrderID: order.ID, Amount: 0})
	require.NoError(t, err)
	_, err = r.CreatePayment(ds.Payment{OrderID: order.ID, Amount: 50})
	require.NoError(t, err)

	require.NoError(t, r.CleanupOrderZeroPayments(order.ID))

	payments, err := r.GetPaymentsByOrder(order.ID)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	require.Equal(t, float64(50), payments[0].Amount)

	// Повторный запуск ничего не меняет
	require.NoError(t, r.CleanupOrderZeroPayments(order.ID))
	payments, err = r.GetPaymentsByOrder(order.ID)
	require.NoError(t, err)
	require.Len(t, payments, 1)
}

func TestDeleteOrderCascadesAndRecomputes(t *testing.T) {
	r := newTestRepo(t)
	freezeTime(r)
	s := newSeed(t, r)

	order := s.newOrder(t, r)
	line := s.addLine(t, r, order.ID, 1, 100)
	payment, err := r.CreatePayment(ds.Payment{OrderID: order.ID, Amount: 100})
	require.NoError(t, err)
	rating, err := r.CreateRating(ds.Rating{OrderID: order.ID, Score: 4})
	require.NoError(t, err)

	require.NoError(t, r.DeleteOrder(order.ID))

	_, err = r.GetOrderByID(order.ID)
	require.Error(t, err)
	_, err = r.GetPaymentByID(payment.ID)
	require.Error(t, err)
	_, err = r.GetRatingByID(rating.ID)
	require.Error(t, err)
	lines, err := r.GetOrderLines(order.ID)
	require.NoError(t, err)
	require.Empty(t, lines)
	_ = line

	// Агрегаты прежних владельцев обнулились
	center, err := r.GetCenterByID(s.Center.ID)
	require.NoError(t, err)
	require.Equal(t, 0, center.TodayOrderCount)
	require.Equal(t, float64(0), center.TotalRevenue)
	require.Equal(t, float64(0), center.AvgRating)

	customer, err := r.GetCustomerByID(s.Customer.ID)
	require.NoError(t, err)
	require.Equal(t, 0, customer.OrderCount)
	require.Equal(t, float64(0), customer.TotalPayment)
	require.Equal(t, float64(0), customer.BalanceDue)
}

func TestWarrantyRequiresPositiveDays(t *testing.T) {
	r := newTestRepo(t)
	freezeTime(r)
	s := newSeed(t, r)

	order := s.newOrder(t, r)

	_, err := r.UpdateOrder(order.ID, OrderUpdate{IsWarranty: boolPtr(true)})
	require.Error(t, err)
	require.Contains(t, err.Error(), "гарант")

	// Откат: заказ остался без гарантии
	got, err := r.GetOrderByID(order.ID)
	require.NoError(t, err)
	require.False(t, got.IsWarranty)

	_, err = r.UpdateOrder(order.ID, OrderUpdate{
		IsWarranty:   boolPtr(true),
		WarrantyDays: intPtr(30),
	})
	require.NoError(t, err)
}

func TestOrderDenormalizedGeoRefs(t *testing.T) {
	r := newTestRepo(t)
	freezeTime(r)
	s := newSeed(t, r)

	order := s.newOrder(t, r)
	require.NotNil(t, order.DistrictID)
	require.NotNil(t, order.RegionID)
	require.NotNil(t, order.CountryID)
	require.Equal(t, s.District.ID, *order.DistrictID)
	require.Equal(t, s.Region.ID, *order.RegionID)
	require.Equal(t, s.Country.ID, *order.CountryID)
}

func TestMoveOrderBetweenCentersRecomputesBoth(t *testing.T) {
	r := newTestRepo(t)
	freezeTime(r)
	s := newSeed(t, r)

	other, err := r.CreateCenter(ds.Center{
		Name: "СЦ Иссык", Code: "SC-02",
		CountryID: &s.Country.ID, RegionID: &s.Region.ID,
		CapacityPerDay: 5,
	})
	require.NoError(t, err)

	order := s.newOrder(t, r)
	require.NoError(t, r.StartOrder(order.ID))

	center, err := r.GetCenterByID(s.Center.ID)
	require.NoError(t, err)
	require.Equal(t, 1, center.ActiveOrderCount)
	require.Equal(t, float64(10), center.UtilizationRate) // 1 из 10

	_, err = r.UpdateOrder(order.ID, OrderUpdate{CenterID: &other.ID})
	require.NoError(t, err)

	center, err = r.GetCenterByID(s.Center.ID)
	require.NoError(t, err)
	require.Equal(t, 0, center.ActiveOrderCount)
	require.Equal(t, float64(0), center.UtilizationRate)

	other, err = r.GetCenterByID(other.ID)
	require.NoError(t, err)
	require.Equal(t, 1, other.ActiveOrderCount)
	require.Equal(t, float64(20), other.UtilizationRate) // 1 из 5

	// Денормализованная география заказа следует за новым центром
	got, err := r.GetOrderByID(order.ID)
	require.NoError(t, err)
	require.Nil(t, got.DistrictID)
	require.NotNil(t, got.RegionID)
	require.Equal(t, s.Region.ID, *got.RegionID)
}
