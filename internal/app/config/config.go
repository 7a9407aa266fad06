package config

import (
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	ServiceHost string
	ServicePort int
	Minio       MinioConfig
}

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

const (
	envMinioEndpoint  = "MINIO_ENDPOINT"
	envMinioAccessKey = "MINIO_ACCESS_KEY"
	envMinioSecretKey = "MINIO_SECRET_KEY"
	envMinioBucket    = "MINIO_BUCKET"
)

func NewConfig() (*Config, error) {
	var err error

	configName := "config"
	_ = godotenv.Load()
	if os.Getenv("CONFIG_NAME") != "" {
		configName = os.Getenv("CONFIG_NAME")
	}

	viper.SetConfigName(configName)
	viper.SetConfigType("toml")
	viper.AddConfigPath("config")
	viper.AddConfigPath(".")
	viper.WatchConfig()

	err = viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	err = viper.Unmarshal(cfg)
	if err != nil {
		return nil, err
	}

	// инициализация MinIO конфигурации из env
	cfg.Minio.Endpoint = os.Getenv(envMinioEndpoint)
	cfg.Minio.AccessKey = os.Getenv(envMinioAccessKey)
	cfg.Minio.SecretKey = os.Getenv(envMinioSecretKey)
	cfg.Minio.Bucket = os.Getenv(envMinioBucket)
	if cfg.Minio.Bucket == "" {
		cfg.Minio.Bucket = "center-photos"
	}

	log.Info("config parsed")

	return cfg, nil
}
