package main

import (
	"log"

	"backend/internal/api"
)

// @title Service Network API
// @version 1.0
// @description REST API сети сервисных центров: география, центры, мастера,
// @description клиенты, заказы на ремонт, платежи и оценки.
// @host localhost:8080
// @BasePath /
func main() {
	log.Println("App start")
	api.StartServer()
	log.Println("App terminated")
}
