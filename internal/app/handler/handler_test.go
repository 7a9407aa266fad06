package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"backend/internal/app/ds"
	"backend/internal/app/dto"
	"backend/internal/app/repository"
)

var handlerDBSeq int

func newTestRouter(t *testing.T) (*gin.Engine, *repository.Repository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	handlerDBSeq++
	dsn := fmt.Sprintf("file:handlerdb%d?mode=memory&cache=shared", handlerDBSeq)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	repo, err := repository.NewWithDB(db)
	require.NoError(t, err)

	h := NewAPIHandler(repo, nil)
	router := gin.New()
	h.RegisterAPIRoutes(router)
	return router, repo
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestPing(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/ping", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "pong")
}

func TestCreateAndGetCountry(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/countries", gin.H{
		"name": "Казахстан", "code": "KZ", "phone_code": "+7",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created dto.SuccessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.Equal(t, "success", created.Status)

	w = doJSON(t, router, http.MethodGet, "/api/countries/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Казахстан")
}

func TestCreateCountryValidatesBody(t *testing.T) {
	router, _ := newTestRouter(t)

	// Обязательное поле phone_code отсутствует
	w := doJSON(t, router, http.MethodPost, "/api/countries", gin.H{
		"name": "Казахстан", "code": "KZ",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "fail", resp.Status)
}

func TestGetCountryNotFoundMapsTo404(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/countries/42", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/countries/abc", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func seedOrderOverHTTP(t *testing.T, repo *repository.Repository) *ds.Order {
	t.Helper()

	country, err := repo.CreateCountry(ds.Country{Name: "Казахстан", Code: "KZ", PhoneCode: "+7"})
	require.NoError(t, err)
	center, err := repo.CreateCenter(ds.Center{
		Name: "СЦ Центральный", Code: "SC-01",
		CountryID: &country.ID, CapacityPerDay: 10,
	})
	require.NoError(t, err)
	customer, err := repo.CreateCustomer(ds.Customer{Name: "Клиент"})
	require.NoError(t, err)
	order, err := repo.CreateOrder(ds.Order{CenterID: center.ID, CustomerID: customer.ID})
	require.NoError(t, err)
	return order
}

func TestRatingValidationMapsTo400(t *testing.T) {
	router, repo := newTestRouter(t)
	order := seedOrderOverHTTP(t, repo)

	w := doJSON(t, router, http.MethodPost, "/api/ratings", gin.H{
		"order_id": order.ID, "score": 7,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "от 1 до 5")

	w = doJSON(t, router, http.MethodPost, "/api/ratings", gin.H{
		"order_id": order.ID, "score": 5,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// Повторная оценка того же заказа
	w = doJSON(t, router, http.MethodPost, "/api/ratings", gin.H{
		"order_id": order.ID, "score": 4,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteCenterWithOrdersMapsTo409(t *testing.T) {
	router, repo := newTestRouter(t)
	order := seedOrderOverHTTP(t, repo)

	w := doJSON(t, router, http.MethodDelete,
		fmt.Sprintf("/api/centers/%d", order.CenterID), nil)
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestOrderLifecycleOverHTTP(t *testing.T) {
	router, repo := newTestRouter(t)
	order := seedOrderOverHTTP(t, repo)

	base := fmt.Sprintf("/api/orders/%d", order.ID)
	for _, action := range []string{"receive", "diagnose", "start"} {
		w := doJSON(t, router, http.MethodPut, base+"/"+action, nil)
		require.Equal(t, http.StatusOK, w.Code, action)
	}

	// Долг не погашен: одиночное завершение отклоняется
	w := doJSON(t, router, http.MethodPost, base+"/lines", gin.H{
		"part_id": 0, "quantity": 1, "unit_price": 100,
	})
	require.Equal(t, http.StatusBadRequest, w.Code) // part_id обязателен

	part, err := repo.CreatePart(ds.Part{Name: "Экран", Code: "P-01"})
	require.NoError(t, err)
	w = doJSON(t, router, http.MethodPost, base+"/lines", gin.H{
		"part_id": part.ID, "quantity": 1, "unit_price": 100,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodPut, base+"/finish", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/payments", gin.H{
		"order_id": order.ID, "amount": 100,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodPut, base+"/finish", nil)
	require.Equal(t, http.StatusOK, w.Code)

	got, err := repo.GetOrderByID(order.ID)
	require.NoError(t, err)
	require.Equal(t, ds.OrderDone, got.State)
}
