package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"backend/internal/app/ds"
)

var testDBSeq int

// newTestRepo поднимает репозиторий поверх sqlite в памяти.
func newTestRepo(t *testing.T) *Repository {
	t.Helper()

	testDBSeq++
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", testDBSeq)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	repo, err := NewWithDB(db)
	require.NoError(t, err)
	return repo
}

// Фиксированное «сегодня» для детерминированных срезов по датам
var testToday = time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)

func freezeTime(r *Repository) {
	r.Engine().Now = func() time.Time { return testToday }
}

func daysAgo(n int) time.Time {
	return testToday.AddDate(0, 0, -n)
}

// seed собирает минимальную иерархию: страна -> регион -> район -> центр,
// плюс мастер, клиент и деталь.
type seed struct {
	Country  *ds.Country
	Region   *ds.Region
	District *ds.District
	Center   *ds.Center
	Tech     *ds.Technician
	Customer *ds.Customer
	Part     *ds.Part
}

func newSeed(t *testing.T, r *Repository) *seed {
	t.Helper()

	country, err := r.CreateCountry(ds.Country{Name: "Казахстан", Code: "KZ", PhoneCode: "+7"})
	require.NoError(t, err)

	region, err := r.CreateRegion(ds.Region{
		Name: "Алматинская область", Code: "ALM", CountryID: country.ID,
		Population: 2000000, AreaKm2: 223000,
	})
	require.NoError(t, err)

	district, err := r.CreateDistrict(ds.District{
		Name: "Талгарский район", Code: "TLG", RegionID: &region.ID,
	})
	require.NoError(t, err)

	center, err := r.CreateCenter(ds.Center{
		Name: "СЦ Талгар", Code: "SC-01",
		CountryID: &country.ID, RegionID: &region.ID, DistrictID: &district.ID,
		CapacityPerDay: 10,
	})
	require.NoError(t, err)

	tech, err := r.CreateTechnician(ds.Technician{
		Name: "Иван Петров", Code: "T-01", CenterID: &center.ID,
	})
	require.NoError(t, err)

	customer, err := r.CreateCustomer(ds.Customer{Name: "Алия Сапарова", Phone: "+7 701 000 00 00"})
	require.NoError(t, err)

	part, err := r.CreatePart(ds.Part{Name: "Экран", Code: "P-SCR"})
	require.NoError(t, err)

	return &seed{
		Country:  country,
		Region:   region,
		District: district,
		Center:   center,
		Tech:     tech,
		Customer: customer,
		Part:     part,
	}
}

// newOrder создаёт заказ на центр и клиента из фикстуры.
func (s *seed) newOrder(t *testing.T, r *Repository) *ds.Order {
	t.Helper()
	order, err := r.CreateOrder(ds.Order{
		CenterID:   s.Center.ID,
		CustomerID: s.Customer.ID,
	})
	require.NoError(t, err)
	return order
}

// addLine добавляет строку заказа с деталью из фикстуры.
func (s *seed) addLine(t *testing.T, r *Repository, orderID uint, qty int, price float64) *ds.OrderLine {
	t.Helper()
	line, err := r.CreateOrderLine(ds.OrderLine{
		OrderID:   orderID,
		PartID:    s.Part.ID,
		Quantity:  qty,
		UnitPrice: price,
	})
	require.NoError(t, err)
	return line
}

func TestNewWithDBMigratesSchema(t *testing.T) {
	r := newTestRepo(t)

	for _, model := range []interface{}{
		&ds.Country{}, &ds.Region{}, &ds.District{}, &ds.Center{},
		&ds.Technician{}, &ds.Customer{}, &ds.Part{}, &ds.Order{},
		&ds.OrderLine{}, &ds.Payment{}, &ds.Rating{},
	} {
		require.True(t, r.db.Migrator().HasTable(model))
	}
}

func TestCountryUniqueness(t *testing.T) {
	r := newTestRepo(t)

	_, err := r.CreateCountry(ds.Country{Name: "Казахстан", Code: "KZ", PhoneCode: "+7"})
	require.NoError(t, err)

	_, err = r.CreateCountry(ds.Country{Name: "Казахстан", Code: "KZ2", PhoneCode: "+77"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "уникальн")
}

func TestGetCountryNotFound(t *testing.T) {
	r := newTestRepo(t)

	_, err := r.GetCountryByID(999)
	require.Error(t, err)
	require.Contains(t, err.Error(), "не найдена")
}
