package repository

import (
	"testing"

	"github.com/stretchr/testify/require"

	"backend/internal/app/ds"
)

func TestHierarchyCountsRollUp(t *testing.T) {
	r := newTestRepo(t)
	freezeTime(r)
	s := newSeed(t, r)

	district, err := r.GetDistrictByID(s.District.ID)
	require.NoError(t, err)
	require.Equal(t, 1, district.CenterCount)
	require.Equal(t, 1, district.TechnicianCount)
	require.NotNil(t, district.CountryID)
	require.Equal(t, s.Country.ID, *district.CountryID)

	region, err := r.GetRegionByID(s.Region.ID)
	require.NoError(t, err)
	require.Equal(t, 1, region.DistrictCount)
	require.Equal(t, 1, region.CenterCount)
	require.Equal(t, 1, region.TechnicianCount)

	country, err := r.GetCountryByID(s.Country.ID)
	require.NoError(t, err)
	require.Equal(t, 1, country.RegionCount)
	require.Equal(t, 1, country.CenterCount)
	require.Equal(t, 1, country.TechnicianCount)
}

func TestRegionFinancialsCountDoneOrdersOnly(t *testing.T) {
	r := newTestRepo(t)
	freezeTime(r)
	s := newSeed(t, r)

	done := s.newOrder(t, r)
	s.addLine(t, r, done.ID, 1, 100)
	_, err := r.CreatePayment(ds.Payment{OrderID: done.ID, Amount: 100})
	require.NoError(t, err)
	require.NoError(t, r.FinishOrder(done.ID))
	_, err = r.CreateRating(ds.Rating{OrderID: done.ID, Score: 5})
	require.NoError(t, err)

	draft := s.newOrder(t, r)
	s.addLine(t, r, draft.ID, 1, 50)
	_, err = r.CreateRating(ds.Rating{OrderID: draft.ID, Score: 1})
	require.NoError(t, err)

	region, err := r.GetRegionByID(s.Region.ID)
	require.NoError(t, err)
	require.Equal(t, 1, region.ActiveOrderCount) // черновик открыт
	require.Equal(t, 1, region.DoneOrderCount)
	require.Equal(t, 2, region.TodayOrderCount)
	// Финансовый блок региона игнорирует незавершённые заказы
	require.Equal(t, float64(100), region.TotalRevenue)
	require.InDelta(t, 5.0, region.AvgRating, 0.001)

	district, err := r.GetDistrictByID(s.District.ID)
	require.NoError(t, err)
	require.Equal(t, float64(100), district.TotalRevenue)
	// Средняя оценка района — по всем заказам его центров
	require.InDelta(t, 3.0, district.AvgRating, 0.001)

	country, err := r.GetCountryByID(s.Country.ID)
	require.NoError(t, err)
	// Страновая выручка — по всем заказам, включая незавершённые
	require.Equal(t, float64(150), country.TotalRevenue)
	require.Equal(t, 1, country.ActiveOrderCount) // только черновик
	require.Equal(t, 1, country.DoneOrderCount)
}

func TestCountryActiveSliceCountsDraftAndInProgress(t *testing.T) {
	r := newTestRepo(t)
	freezeTime(r)
	s := newSeed(t, r)

	draft := s.newOrder(t, r)
	inWork := s.newOrder(t, r)
	require.NoError(t, r.StartOrder(inWork.ID))
	received := s.newOrder(t, r)
	require.NoError(t, r.ReceiveOrder(received.ID))
	_ = draft

	country, err := r.GetCountryByID(s.Country.ID)
	require.NoError(t, err)
	require.Equal(t, 2, country.ActiveOrderCount) // received не входит

	region, err := r.GetRegionByID(s.Region.ID)
	require.NoError(t, err)
	require.Equal(t, 3, region.ActiveOrderCount) // все три открыты
}

func TestDeactivateIdleRegionCenters(t *testing.T) {
	r := newTestRepo(t)
	freezeTime(r)
	s := newSeed(t, r)

	busy := s.Center
	idle, err := r.CreateCenter(ds.Center{
		Name: "СЦ Простой", Code: "SC-02",
		RegionID: &s.Region.ID, CapacityPerDay: 5,
	})
	require.NoError(t, err)

	order := s.newOrder(t, r)
	require.NoError(t, r.StartOrder(order.ID))

	require.NoError(t, r.DeactivateIdleRegionCenters(s.Region.ID))

	got, err := r.GetCenterByID(busy.ID)
	require.NoError(t, err)
	require.True(t, got.IsActive)

	got, err = r.GetCenterByID(idle.ID)
	require.NoError(t, err)
	require.False(t, got.IsActive)

	// Повторный запуск ничего не меняет
	require.NoError(t, r.DeactivateIdleRegionCenters(s.Region.ID))
	got, err = r.GetCenterByID(busy.ID)
	require.NoError(t, err)
	require.True(t, got.IsActive)
}

func TestDeactivateIdleCountryCentersRequiresNoOrdersAtAll(t *testing.T) {
	r := newTestRepo(t)
	freezeTime(r)
	s := newSeed(t, r)

	// Заказ завершён: центр не занят, но заказы у него есть
	order := s.newOrder(t, r)
	require.NoError(t, r.FinishOrder(order.ID))

	orderless, err := r.CreateCenter(ds.Center{
		Name: "СЦ Пустой", Code: "SC-03",
		CountryID: &s.Country.ID, CapacityPerDay: 5,
	})
	require.NoError(t, err)

	require.NoError(t, r.DeactivateIdleCountryCenters(s.Country.ID))

	got, err := r.GetCenterByID(s.Center.ID)
	require.NoError(t, err)
	require.True(t, got.IsActive) // завершённый заказ защищает от деактивации

	got, err = r.GetCenterByID(orderless.ID)
	require.NoError(t, err)
	require.False(t, got.IsActive)
}

func TestMarkCenterInactiveIfIdle(t *testing.T) {
	r := newTestRepo(t)
	freezeTime(r)
	s := newSeed(t, r)

	order := s.newOrder(t, r)
	require.NoError(t, r.StartOrder(order.ID))

	// Занятый центр не деактивируется, ошибки нет
	require.NoError(t, r.MarkCenterInactiveIfIdle(s.Center.ID))
	got, err := r.GetCenterByID(s.Center.ID)
	require.NoError(t, err)
	require.True(t, got.IsActive)

	require.NoError(t, r.CancelOrder(order.ID))
	require.NoError(t, r.MarkCenterInactiveIfIdle(s.Center.ID))
	got, err = r.GetCenterByID(s.Center.ID)
	require.NoError(t, err)
	require.False(t, got.IsActive)

	require.NoError(t, r.ActivateCenter(s.Center.ID))
	got, err = r.GetCenterByID(s.Center.ID)
	require.NoError(t, err)
	require.True(t, got.IsActive)
}

func TestRegionScopedCleanupAndBulkFinish(t *testing.T) {
	r := newTestRepo(t)
	freezeTime(r)
	s := newSeed(t, r)

	order := s.newOrder(t, r)
	s.addLine(t, r, order.ID, 1, 300)
	require.NoError(t, r.StartOrder(order.ID))
	_, err := r.CreatePayment(ds.Payment{OrderID: order.ID, Amount: 0})
	require.NoError(t, err)

	require.NoError(t, r.CleanupRegionZeroPayments(s.Region.ID))
	payments, err := r.GetPaymentsByOrder(order.ID)
	require.NoError(t, err)
	require.Empty(t, payments)

	// Массовое завершение по региону не проверяет долг
	require.NoError(t, r.FinishAllRegionInProgress(s.Region.ID))
	got, err := r.GetOrderByID(order.ID)
	require.NoError(t, err)
	require.Equal(t, ds.OrderDone, got.State)
	require.Equal(t, float64(300), got.BalanceDue)
}

func TestDeleteCountryCascadesRegionsDetachesCenters(t *testing.T) {
	r := newTestRepo(t)
	freezeTime(r)
	s := newSeed(t, r)

	require.NoError(t, r.DeleteCountry(s.Country.ID))

	_, err := r.GetCountryByID(s.Country.ID)
	require.Error(t, err)
	_, err = r.GetRegionByID(s.Region.ID)
	require.Error(t, err)

	// Район пережил удаление региона, но потерял ссылку на него
	district, err := r.GetDistrictByID(s.District.ID)
	require.NoError(t, err)
	require.Nil(t, district.RegionID)

	center, err := r.GetCenterByID(s.Center.ID)
	require.NoError(t, err)
	require.Nil(t, center.CountryID)
	require.Nil(t, center.RegionID)
}

func TestRegionValidation(t *testing.T) {
	r := newTestRepo(t)
	freezeTime(r)
	s := newSeed(t, r)

	_, err := r.CreateRegion(ds.Region{
		Name: "Минус", Code: "NEG", CountryID: s.Country.ID, Population: -1,
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "население")

	var area float64 = -5
	_, err = r.UpdateRegion(s.Region.ID, RegionUpdate{AreaKm2: &area})
	require.Error(t, err)
	require.Contains(t, err.Error(), "площадь")
}
