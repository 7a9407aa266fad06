package repository

import (
	"testing"

	"github.com/stretchr/testify/require"

	"backend/internal/app/ds"
)

func assignTechnician(t *testing.T, r *Repository, orderID, techID uint) {
	t.Helper()
	_, err := r.UpdateOrder(orderID, OrderUpdate{TechnicianID: &techID})
	require.NoError(t, err)
}

func TestTechnicianOrderCounters(t *testing.T) {
	r := newTestRepo(t)
	freezeTime(r)
	s := newSeed(t, r)

	inWork := s.newOrder(t, r)
	require.NoError(t, r.StartOrder(inWork.ID))
	assignTechnician(t, r, inWork.ID, s.Tech.ID)

	for i := 0; i < 2; i++ {
		done := s.newOrder(t, r)
		s.addLine(t, r, done.ID, 1, 10)
		_, err := r.CreatePayment(ds.Payment{OrderID: done.ID, Amount: 10})
		require.NoError(t, err)
		assignTechnician(t, r, done.ID, s.Tech.ID)
		require.NoError(t, r.FinishOrder(done.ID))
	}

	tech, err := r.GetTechnicianByID(s.Tech.ID)
	require.NoError(t, err)
	require.Equal(t, 3, tech.OrderCount)
	require.Equal(t, 1, tech.ActiveOrderCount)
	require.Equal(t, 2, tech.DoneOrderCount)
	require.Equal(t, 3, tech.TodayOrderCount)
}

func TestTechnicianDetachRecomputesOldOwner(t *testing.T) {
	r := newTestRepo(t)
	freezeTime(r)
	s := newSeed(t, r)

	other, err := r.CreateTechnician(ds.Technician{
		Name: "Пётр Сидоров", Code: "T-02", CenterID: &s.Center.ID,
	})
	require.NoError(t, err)

	order := s.newOrder(t, r)
	assignTechnician(t, r, order.ID, s.Tech.ID)

	// Перевод заказа на другого мастера пересчитывает обоих
	assignTechnician(t, r, order.ID, other.ID)

	tech, err := r.GetTechnicianByID(s.Tech.ID)
	require.NoError(t, err)
	require.Equal(t, 0, tech.OrderCount)

	other, err = r.GetTechnicianByID(other.ID)
	require.NoError(t, err)
	require.Equal(t, 1, other.OrderCount)

	// Снятие мастера нулевым идентификатором
	zero := uint(0)
	_, err = r.UpdateOrder(order.ID, OrderUpdate{TechnicianID: &zero})
	require.NoError(t, err)

	got, err := r.GetOrderByID(order.ID)
	require.NoError(t, err)
	require.Nil(t, got.TechnicianID)

	other, err = r.GetTechnicianByID(other.ID)
	require.NoError(t, err)
	require.Equal(t, 0, other.OrderCount)
}

func TestTechnicianGeoDerivedFromCenter(t *testing.T) {
	r := newTestRepo(t)
	freezeTime(r)
	s := newSeed(t, r)

	tech, err := r.GetTechnicianByID(s.Tech.ID)
	require.NoError(t, err)
	require.NotNil(t, tech.CountryID)
	require.Equal(t, s.Country.ID, *tech.CountryID)
	require.NotNil(t, tech.RegionID)
	require.Equal(t, s.Region.ID, *tech.RegionID)
	require.NotNil(t, tech.DistrictID)
	require.Equal(t, s.District.ID, *tech.DistrictID)

	// Отвязка от центра очищает выведенную географию
	zero := uint(0)
	tech, err = r.UpdateTechnician(tech.ID, TechnicianUpdate{CenterID: &zero})
	require.NoError(t, err)
	require.Nil(t, tech.CenterID)
	require.Nil(t, tech.CountryID)
	require.Nil(t, tech.RegionID)
	require.Nil(t, tech.DistrictID)

	center, err := r.GetCenterByID(s.Center.ID)
	require.NoError(t, err)
	require.Equal(t, 0, center.TechnicianCount)
}

func TestDeleteTechnicianDetachesOrders(t *testing.T) {
	r := newTestRepo(t)
	freezeTime(r)
	s := newSeed(t, r)

	order := s.newOrder(t, r)
	assignTechnician(t, r, order.ID, s.Tech.ID)

	require.NoError(t, r.DeleteTechnician(s.Tech.ID))

	got, err := r.GetOrderByID(order.ID)
	require.NoError(t, err)
	require.Nil(t, got.TechnicianID)

	center, err := r.GetCenterByID(s.Center.ID)
	require.NoError(t, err)
	require.Equal(t, 0, center.TechnicianCount)
}
