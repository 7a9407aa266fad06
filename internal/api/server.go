package api

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	_ "backend/docs"
	"backend/internal/app/config"
	"backend/internal/app/dsn"
	"backend/internal/app/handler"
	"backend/internal/app/repository"
	"backend/internal/app/storage"
	"backend/internal/pkg"
)

// StartServer собирает зависимости и запускает HTTP-сервер.
func StartServer() {
	logrus.Info("Starting server")

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatalf("ошибка загрузки конфигурации: %v", err)
	}

	repo, err := repository.New(dsn.FromEnv())
	if err != nil {
		logrus.Fatalf("ошибка инициализации репозитория: %v", err)
	}

	minioClient, err := storage.NewMinIOClient(
		cfg.Minio.Endpoint,
		cfg.Minio.AccessKey,
		cfg.Minio.SecretKey,
		cfg.Minio.Bucket,
		cfg.Minio.UseSSL,
	)
	if err != nil {
		// Фотографии центров необязательны для работы API
		logrus.Warnf("MinIO недоступен, загрузка фотографий отключена: %v", err)
		minioClient = nil
	}

	apiHandler := handler.NewAPIHandler(repo, minioClient)

	router := gin.Default()
	app := pkg.NewApp(cfg, router, apiHandler)
	app.RunApp()

	logrus.Info("Server down")
}
