package dto

import "time"

// ============ Общие структуры ============

type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type SuccessResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ============ Страны ============

type CountryResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Code      string `json:"code"`
	PhoneCode string `json:"phone_code"`
	IsActive  bool   `json:"is_active"`

	TechnicianCount  int        `json:"technician_count"`
	RegionCount      int        `json:"region_count"`
	CenterCount      int        `json:"center_count"`
	ActiveOrderCount int        `json:"active_order_count"`
	DoneOrderCount   int        `json:"done_order_count"`
	TodayOrderCount  int        `json:"today_order_count"`
	TotalRevenue     float64    `json:"total_revenue"`
	AvgRating        float64    `json:"avg_rating"`
	LastOrderDate    *time.Time `json:"last_order_date,omitempty"`
}

type CountryListResponse struct {
	Countries []CountryResponse `json:"countries"`
	Total     int               `json:"total"`
}

type CreateCountryRequest struct {
	Name      string `json:"name" binding:"required"`
	Code      string `json:"code" binding:"required"`
	PhoneCode string `json:"phone_code" binding:"required"`
}

type UpdateCountryRequest struct {
	Name      *string `json:"name"`
	Code      *string `json:"code"`
	PhoneCode *string `json:"phone_code"`
	IsActive  *bool   `json:"is_active"`
}

// ============ Регионы ============

type RegionResponse struct {
	ID         uint    `json:"id"`
	Name       string  `json:"name"`
	Code       string  `json:"code"`
	CountryID  uint    `json:"country_id"`
	Population int64   `json:"population"`
	AreaKm2    float64 `json:"area_km2"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	IsActive   bool    `json:"is_active"`

	DistrictCount    int        `json:"district_count"`
	CenterCount      int        `json:"center_count"`
	TechnicianCount  int        `json:"technician_count"`
	ActiveOrderCount int        `json:"active_order_count"`
	DoneOrderCount   int        `json:"done_order_count"`
	TodayOrderCount  int        `json:"today_order_count"`
	TotalRevenue     float64    `json:"total_revenue"`
	AvgRating        float64    `json:"avg_rating"`
	LastOrderDate    *time.Time `json:"last_order_date,omitempty"`
}

type RegionListResponse struct {
	Regions []RegionResponse `json:"regions"`
	Total   int              `json:"total"`
}

type CreateRegionRequest struct {
	Name       string  `json:"name" binding:"required"`
	Code       string  `json:"code" binding:"required"`
	CountryID  uint    `json:"country_id" binding:"required"`
	Population int64   `json:"population"`
	AreaKm2    float64 `json:"area_km2"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
}

type UpdateRegionRequest struct {
	Name       *string  `json:"name"`
	Code       *string  `json:"code"`
	CountryID  *uint    `json:"country_id"`
	Population *int64   `json:"population"`
	AreaKm2    *float64 `json:"area_km2"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
	IsActive   *bool    `json:"is_active"`
}

// ============ Районы ============

type DistrictResponse struct {
	ID         uint    `json:"id"`
	Name       string  `json:"name"`
	Code       string  `json:"code"`
	RegionID   *uint   `json:"region_id,omitempty"`
	CountryID  *uint   `json:"country_id,omitempty"`
	Population int64   `json:"population"`
	AreaKm2    float64 `json:"area_km2"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	IsActive   bool    `json:"is_active"`

	CenterCount      int        `json:"center_count"`
	TechnicianCount  int        `json:"technician_count"`
	ActiveOrderCount int        `json:"active_order_count"`
	DoneOrderCount   int        `json:"done_order_count"`
	TodayOrderCount  int        `json:"today_order_count"`
	TotalRevenue     float64    `json:"total_revenue"`
	AvgRating        float64    `json:"avg_rating"`
	LastOrderDate    *time.Time `json:"last_order_date,omitempty"`
}

type DistrictListResponse struct {
	Districts []DistrictResponse `json:"districts"`
	Total     int                `json:"total"`
}

type CreateDistrictRequest struct {
	Name       string  `json:"name" binding:"required"`
	Code       string  `json:"code" binding:"required"`
	RegionID   *uint   `json:"region_id"`
	Population int64   `json:"population"`
	AreaKm2    float64 `json:"area_km2"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
}

type UpdateDistrictRequest struct {
	Name       *string  `json:"name"`
	Code       *string  `json:"code"`
	RegionID   *uint    `json:"region_id"` // 0 — отвязать
	Population *int64   `json:"population"`
	AreaKm2    *float64 `json:"area_km2"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
	IsActive   *bool    `json:"is_active"`
}

// ============ Сервисные центры ============

type CenterResponse struct {
	ID             uint    `json:"id"`
	Name           string  `json:"name"`
	Code           string  `json:"code"`
	CountryID      *uint   `json:"country_id,omitempty"`
	RegionID       *uint   `json:"region_id,omitempty"`
	DistrictID     *uint   `json:"district_id,omitempty"`
	Address        string  `json:"address"`
	Phone          string  `json:"phone"`
	Email          string  `json:"email"`
	ManagerName    string  `json:"manager_name"`
	CapacityPerDay int     `json:"capacity_per_day"`
	PhotoURL       *string `json:"photo_url,omitempty"`
	IsActive       bool    `json:"is_active"`

	TechnicianCount  int        `json:"technician_count"`
	ActiveOrderCount int        `json:"active_order_count"`
	DoneOrderCount   int        `json:"done_order_count"`
	TodayOrderCount  int        `json:"today_order_count"`
	TotalRevenue     float64    `json:"total_revenue"`
	AvgRating        float64    `json:"avg_rating"`
	UtilizationRate  float64    `json:"utilization_rate"`
	LastOrderDate    *time.Time `json:"last_order_date,omitempty"`
}

type CenterListResponse struct {
	Centers []CenterResponse `json:"centers"`
	Total   int              `json:"total"`
}

type CreateCenterRequest struct {
	Name           string  `json:"name" binding:"required"`
	Code           string  `json:"code" binding:"required"`
	CountryID      *uint   `json:"country_id"`
	RegionID       *uint   `json:"region_id"`
	DistrictID     *uint   `json:"district_id"`
	Address        string  `json:"address"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	Phone          string  `json:"phone"`
	Email          string  `json:"email"`
	ManagerName    string  `json:"manager_name"`
	CapacityPerDay int     `json:"capacity_per_day" binding:"omitempty,gte=0"`
}

type UpdateCenterRequest struct {
	Name           *string  `json:"name"`
	Code           *string  `json:"code"`
	CountryID      *uint    `json:"country_id"` // 0 — отвязать
	RegionID       *uint    `json:"region_id"`
	DistrictID     *uint    `json:"district_id"`
	Address        *string  `json:"address"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
	Phone          *string  `json:"phone"`
	Email          *string  `json:"email"`
	ManagerName    *string  `json:"manager_name"`
	CapacityPerDay *int     `json:"capacity_per_day" binding:"omitempty,gte=0"`
	IsActive       *bool    `json:"is_active"`
}

// ============ Мастера ============

type TechnicianResponse struct {
	ID             uint       `json:"id"`
	Name           string     `json:"name"`
	Code           string     `json:"code"`
	CenterID       *uint      `json:"center_id,omitempty"`
	CountryID      *uint      `json:"country_id,omitempty"`
	RegionID       *uint      `json:"region_id,omitempty"`
	DistrictID     *uint      `json:"district_id,omitempty"`
	Phone          string     `json:"phone"`
	Email          string     `json:"email"`
	Specialty      string     `json:"specialty"`
	HireDate       *time.Time `json:"hire_date,omitempty"`
	CapacityPerDay int        `json:"capacity_per_day"`
	IsActive       bool       `json:"is_active"`

	OrderCount       int `json:"order_count"`
	ActiveOrderCount int `json:"active_order_count"`
	DoneOrderCount   int `json:"done_order_count"`
	TodayOrderCount  int `json:"today_order_count"`
}

type TechnicianListResponse struct {
	Technicians []TechnicianResponse `json:"technicians"`
	Total       int                  `json:"total"`
}

type CreateTechnicianRequest struct {
	Name           string     `json:"name" binding:"required"`
	Code           string     `json:"code" binding:"required"`
	CenterID       *uint      `json:"center_id"`
	Phone          string     `json:"phone"`
	Email          string     `json:"email"`
	Specialty      string     `json:"specialty"`
	HireDate       *time.Time `json:"hire_date"`
	CapacityPerDay int        `json:"capacity_per_day" binding:"omitempty,gte=1"`
}

type UpdateTechnicianRequest struct {
	Name           *string    `json:"name"`
	Code           *string    `json:"code"`
	CenterID       *uint      `json:"center_id"` // 0 — отвязать
	Phone          *string    `json:"phone"`
	Email          *string    `json:"email"`
	Specialty      *string    `json:"specialty"`
	HireDate       *time.Time `json:"hire_date"`
	CapacityPerDay *int       `json:"capacity_per_day" binding:"omitempty,gte=1"`
	IsActive       *bool      `json:"is_active"`
}

// ============ Клиенты ============

type CustomerResponse struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Code    string `json:"code"`
	Phone   string `json:"phone"`
	Mobile  string `json:"mobile"`
	Email   string `json:"email"`
	Address string `json:"address"`

	OrderCount       int        `json:"order_count"`
	ActiveOrderCount int        `json:"active_order_count"`
	DoneOrderCount   int        `json:"done_order_count"`
	TodayOrderCount  int        `json:"today_order_count"`
	TotalPayment     float64    `json:"total_payment"`
	BalanceDue       float64    `json:"balance_due"`
	AvgRating        float64    `json:"avg_rating"`
	LastOrderDate    *time.Time `json:"last_order_date,omitempty"`
	LastPaymentDate  *time.Time `json:"last_payment_date,omitempty"`
}

type CustomerListResponse struct {
	Customers []CustomerResponse `json:"customers"`
	Total     int                `json:"total"`
}

type CreateCustomerRequest struct {
	Name    string `json:"name" binding:"required"`
	Code    string `json:"code"`
	Phone   string `json:"phone"`
	Mobile  string `json:"mobile"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

type UpdateCustomerRequest struct {
	Name    *string `json:"name"`
	Code    *string `json:"code"`
	Phone   *string `json:"phone"`
	Mobile  *string `json:"mobile"`
	Email   *string `json:"email"`
	Address *string `json:"address"`
}

// ============ Детали ============

type PartResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Code        string `json:"code"`
	Description string `json:"description"`
	IsActive    bool   `json:"is_active"`
}

type PartListResponse struct {
	Parts []PartResponse `json:"parts"`
	Total int            `json:"total"`
}

type CreatePartRequest struct {
	Name        string `json:"name" binding:"required"`
	Code        string `json:"code" binding:"required"`
	Description string `json:"description"`
}

type UpdatePartRequest struct {
	Name        *string `json:"name"`
	Code        *string `json:"code"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

// ============ Заказы ============

type OrderResponse struct {
	ID             uint      `json:"id"`
	Number         string    `json:"number"`
	CenterID       uint      `json:"center_id"`
	CustomerID     uint      `json:"customer_id"`
	TechnicianID   *uint     `json:"technician_id,omitempty"`
	OrderDate      time.Time `json:"order_date"`
	State          string    `json:"state"`
	Description    string    `json:"description"`
	LaborFee       float64   `json:"labor_fee"`
	DiscountAmount float64   `json:"discount_amount"`
	IsWarranty     bool      `json:"is_warranty"`
	WarrantyDays   int       `json:"warranty_days"`

	TotalAmount     float64             `json:"total_amount"`
	PaymentTotal    float64             `json:"payment_total"`
	BalanceDue      float64             `json:"balance_due"`
	LastPaymentDate *time.Time          `json:"last_payment_date,omitempty"`
	CountryID       *uint               `json:"country_id,omitempty"`
	RegionID        *uint               `json:"region_id,omitempty"`
	DistrictID      *uint               `json:"district_id,omitempty"`
	Lines           []OrderLineResponse `json:"lines,omitempty"`
}

type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
	Total  int             `json:"total"`
}

type CreateOrderRequest struct {
	Number         string     `json:"number"`
	CenterID       uint       `json:"center_id" binding:"required"`
	CustomerID     uint       `json:"customer_id" binding:"required"`
	TechnicianID   *uint      `json:"technician_id"`
	OrderDate      *time.Time `json:"order_date"`
	Description    string     `json:"description"`
	LaborFee       float64    `json:"labor_fee" binding:"omitempty,gte=0"`
	DiscountAmount float64    `json:"discount_amount" binding:"omitempty,gte=0"`
	IsWarranty     bool       `json:"is_warranty"`
	WarrantyDays   int        `json:"warranty_days"`
}

type UpdateOrderRequest struct {
	Number         *string    `json:"number"`
	CenterID       *uint      `json:"center_id"`
	CustomerID     *uint      `json:"customer_id"`
	TechnicianID   *uint      `json:"technician_id"` // 0 — снять мастера
	OrderDate      *time.Time `json:"order_date"`
	Description    *string    `json:"description"`
	LaborFee       *float64   `json:"labor_fee" binding:"omitempty,gte=0"`
	DiscountAmount *float64   `json:"discount_amount" binding:"omitempty,gte=0"`
	IsWarranty     *bool      `json:"is_warranty"`
	WarrantyDays   *int       `json:"warranty_days"`
}

// ============ Строки заказа ============

type OrderLineResponse struct {
	ID          uint    `json:"id"`
	OrderID     uint    `json:"order_id"`
	PartID      uint    `json:"part_id"`
	Description string  `json:"description"`
	Note        string  `json:"note"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	SubTotal    float64 `json:"subtotal"`
}

type CreateOrderLineRequest struct {
	PartID      uint    `json:"part_id" binding:"required"`
	Description string  `json:"description"`
	Note        string  `json:"note"`
	Quantity    int     `json:"quantity" binding:"omitempty,gte=1"`
	UnitPrice   float64 `json:"unit_price" binding:"omitempty,gte=0"`
}

type UpdateOrderLineRequest struct {
	PartID      *uint    `json:"part_id"`
	Description *string  `json:"description"`
	Note        *string  `json:"note"`
	Quantity    *int     `json:"quantity" binding:"omitempty,gte=1"`
	UnitPrice   *float64 `json:"unit_price" binding:"omitempty,gte=0"`
}

// ============ Платежи ============

type PaymentResponse struct {
	ID          uint      `json:"id"`
	Number      string    `json:"number"`
	OrderID     uint      `json:"order_id"`
	PaymentDate time.Time `json:"payment_date"`
	Amount      float64   `json:"amount"`
	Note        string    `json:"note"`
	State       string    `json:"state"`
	Method      string    `json:"method"`

	CenterID             *uint   `json:"center_id,omitempty"`
	CustomerID           *uint   `json:"customer_id,omitempty"`
	OrderTotal           float64 `json:"order_total"`
	OrderBalanceDue      float64 `json:"order_balance_due"`
	CustomerTotalPayment float64 `json:"customer_total_payment"`
}

type PaymentListResponse struct {
	Payments []PaymentResponse `json:"payments"`
	Total    int               `json:"total"`
}

type CreatePaymentRequest struct {
	Number      string     `json:"number"`
	OrderID     uint       `json:"order_id" binding:"required"`
	PaymentDate *time.Time `json:"payment_date"`
	Amount      float64    `json:"amount" binding:"omitempty,gte=0"`
	Note        string     `json:"note"`
	Method      string     `json:"method" binding:"omitempty,oneof=cash card bank"`
}

type UpdatePaymentRequest struct {
	Number      *string    `json:"number"`
	PaymentDate *time.Time `json:"payment_date"`
	Amount      *float64   `json:"amount" binding:"omitempty,gte=0"`
	Note        *string    `json:"note"`
	Method      *string    `json:"method" binding:"omitempty,oneof=cash card bank"`
}

// ============ Оценки ============

type RatingResponse struct {
	ID           uint      `json:"id"`
	OrderID      uint      `json:"order_id"`
	Score        int       `json:"score"`
	Comment      string    `json:"comment"`
	RatingDate   time.Time `json:"rating_date"`
	CenterID     *uint     `json:"center_id,omitempty"`
	TechnicianID *uint     `json:"technician_id,omitempty"`
	CustomerID   *uint     `json:"customer_id,omitempty"`
}

type CreateRatingRequest struct {
	OrderID    uint       `json:"order_id" binding:"required"`
	Score      int        `json:"score" binding:"required"`
	Comment    string     `json:"comment"`
	RatingDate *time.Time `json:"rating_date"`
}

type UpdateRatingRequest struct {
	Score      *int       `json:"score"`
	Comment    *string    `json:"comment"`
	RatingDate *time.Time `json:"rating_date"`
}
