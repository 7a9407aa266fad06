package handler

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterAPIRoutes регистрирует все REST API маршруты
func (h *APIHandler) RegisterAPIRoutes(router *gin.Engine) {
	api := router.Group("/api")

	// ============ Страны ============
	countries := api.Group("/countries")
	{
		countries.GET("", h.GetCountries)
		countries.GET("/:id", h.GetCountry)
		countries.POST("", h.CreateCountry)
		countries.PUT("/:id", h.UpdateCountry)
		countries.DELETE("/:id", h.DeleteCountry)

		countries.PUT("/:id/activate", h.ActivateCountry)
		countries.PUT("/:id/deactivate", h.DeactivateCountry)
		countries.PUT("/:id/deactivate-idle-centers", h.DeactivateIdleCountryCenters)
		countries.POST("/:id/cleanup-zero-payments", h.CleanupCountryZeroPayments)
		countries.POST("/:id/finish-all", h.FinishAllCountryInProgress)
	}

	// ============ Регионы ============
	regions := api.Group("/regions")
	{
		regions.GET("", h.GetRegions)
		regions.GET("/:id", h.GetRegion)
		regions.POST("", h.CreateRegion)
		regions.PUT("/:id", h.UpdateRegion)
		regions.DELETE("/:id", h.DeleteRegion)

		regions.PUT("/:id/activate", h.ActivateRegion)
		regions.PUT("/:id/deactivate", h.DeactivateRegion)
		regions.PUT("/:id/deactivate-idle-centers", h.DeactivateIdleRegionCenters)
		regions.POST("/:id/cleanup-zero-payments", h.CleanupRegionZeroPayments)
		regions.POST("/:id/finish-all", h.FinishAllRegionInProgress)
	}

	// ============ Районы ============
	districts := api.Group("/districts")
	{
		districts.GET("", h.GetDistricts)
		districts.GET("/:id", h.GetDistrict)
		districts.POST("", h.CreateDistrict)
		districts.PUT("/:id", h.UpdateDistrict)
		districts.DELETE("/:id", h.DeleteDistrict)

		districts.PUT("/:id/activate", h.ActivateDistrict)
		districts.PUT("/:id/deactivate", h.DeactivateDistrict)
		districts.PUT("/:id/deactivate-idle-centers", h.DeactivateIdleDistrictCenters)
		districts.POST("/:id/cleanup-zero-payments", h.CleanupDistrictZeroPayments)
		districts.POST("/:id/finish-all", h.FinishAllDistrictInProgress)
	}

	// ============ Сервисные центры ============
	centers := api.Group("/centers")
	{
		centers.GET("", h.GetCenters)
		centers.GET("/:id", h.GetCenter)
		centers.POST("", h.CreateCenter)
		centers.PUT("/:id", h.UpdateCenter)
		centers.DELETE("/:id", h.DeleteCenter)
		centers.POST("/:id/photo", h.UploadCenterPhoto)

		centers.PUT("/:id/activate", h.ActivateCenter)
		centers.PUT("/:id/deactivate-if-idle", h.DeactivateCenterIfIdle)
		centers.POST("/:id/cleanup-zero-payments", h.CleanupCenterZeroPayments)
		centers.POST("/:id/finish-all", h.FinishAllCenterInProgress)
	}

	// ============ Мастера ============
	technicians := api.Group("/technicians")
	{
		technicians.GET("", h.GetTechnicians)
		technicians.GET("/:id", h.GetTechnician)
		technicians.POST("", h.CreateTechnician)
		technicians.PUT("/:id", h.UpdateTechnician)
		technicians.DELETE("/:id", h.DeleteTechnician)

		technicians.PUT("/:id/activate", h.ActivateTechnician)
		technicians.PUT("/:id/deactivate", h.DeactivateTechnician)
	}

	// ============ Клиенты ============
	customers := api.Group("/customers")
	{
		customers.GET("", h.GetCustomers)
		customers.GET("/:id", h.GetCustomer)
		customers.POST("", h.CreateCustomer)
		customers.PUT("/:id", h.UpdateCustomer)
		customers.DELETE("/:id", h.DeleteCustomer)

		customers.POST("/:id/close-debt", h.CloseCustomerDebt)
		customers.POST("/:id/cleanup-zero-payments", h.CleanupCustomerZeroPayments)
		customers.POST("/:id/cleanup-cancelled-orders", h.CleanupCancelledOrders)
	}

	// ============ Детали ============
	parts := api.Group("/parts")
	{
		parts.GET("", h.GetParts)
		parts.GET("/:id", h.GetPart)
		parts.POST("", h.CreatePart)
		parts.PUT("/:id", h.UpdatePart)
		parts.DELETE("/:id", h.DeletePart)

		parts.PUT("/:id/activate", h.ActivatePart)
		parts.PUT("/:id/deactivate", h.DeactivatePart)
	}

	// ============ Заказы ============
	orders := api.Group("/orders")
	{
		orders.GET("", h.GetOrders)
		orders.GET("/:id", h.GetOrder)
		orders.POST("", h.CreateOrder)
		orders.PUT("/:id", h.UpdateOrder)
		orders.DELETE("/:id", h.DeleteOrder)

		orders.PUT("/:id/receive", h.ReceiveOrder)
		orders.PUT("/:id/diagnose", h.DiagnoseOrder)
		orders.PUT("/:id/start", h.StartOrder)
		orders.PUT("/:id/finish", h.FinishOrder)
		orders.PUT("/:id/cancel", h.CancelOrder)
		orders.PUT("/:id/close-if-paid", h.CloseOrderIfPaid)
		orders.POST("/:id/cleanup-zero-payments", h.CleanupOrderZeroPayments)

		orders.GET("/:id/lines", h.GetOrderLines)
		orders.POST("/:id/lines", h.CreateOrderLine)
		orders.GET("/:id/rating", h.GetOrderRating)
	}

	// ============ Строки заказа ============
	orderLines := api.Group("/order-lines")
	{
		orderLines.PUT("/:id", h.UpdateOrderLine)
		orderLines.DELETE("/:id", h.DeleteOrderLine)
	}

	// ============ Платежи ============
	payments := api.Group("/payments")
	{
		payments.GET("", h.GetPayments)
		payments.GET("/:id", h.GetPayment)
		payments.POST("", h.CreatePayment)
		payments.PUT("/:id", h.UpdatePayment)
		payments.DELETE("/:id", h.DeletePayment)

		payments.PUT("/:id/confirm", h.ConfirmPayment)
		payments.PUT("/:id/cancel", h.CancelPayment)
		payments.PUT("/:id/reset", h.ResetPayment)
	}

	// ============ Оценки ============
	ratings := api.Group("/ratings")
	{
		ratings.GET("/:id", h.GetRating)
		ratings.POST("", h.CreateRating)
		ratings.PUT("/:id", h.UpdateRating)
		ratings.DELETE("/:id", h.DeleteRating)
	}

	// Swagger документация
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Ping эндпоинт для проверки
	router.GET("/ping", h.Ping)
}

// Ping проверяет работоспособность API
// @Summary Проверка работоспособности
// @Description Возвращает простой ответ для проверки работы сервера
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /ping [get]
func (h *APIHandler) Ping(c *gin.Context) {
	c.JSON(200, gin.H{"message": "pong"})
}
