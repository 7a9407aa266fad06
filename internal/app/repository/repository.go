package repository

import (
	"errors"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"backend/internal/app/apperr"
	"backend/internal/app/ds"
	"backend/internal/app/engine"
)

// Repository выполняет операции над хранилищем. Каждая запись — одна
// транзакция: изменение, пересчёт зависимых агрегатов и проверка инвариантов
// фиксируются вместе или откатываются вместе.
type Repository struct {
	db     *gorm.DB
	engine *engine.Engine
}

func New(dsn string) (*Repository, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}
	return NewWithDB(db)
}

// NewWithDB собирает репозиторий поверх готового подключения
// (в тестах — sqlite в памяти).
func NewWithDB(db *gorm.DB) (*Repository, error) {
	err := db.AutoMigrate(
		&ds.Country{},
		&ds.Region{},
		&ds.District{},
		&ds.Center{},
		&ds.Technician{},
		&ds.Customer{},
		&ds.Part{},
		&ds.Order{},
		&ds.OrderLine{},
		&ds.Payment{},
		&ds.Rating{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Repository{
		db:     db,
		engine: engine.New(),
	}, nil
}

// Engine открывает движок пересчёта (в тестах подменяется источник времени).
func (r *Repository) Engine() *engine.Engine {
	return r.engine
}

func (r *Repository) inTx(fn func(tx *gorm.DB) error) error {
	return r.db.Transaction(fn)
}

// Перевод ошибок хранилища в доменные виды
func wrapWriteErr(err error, uniqueMsg string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.Validation("%s", uniqueMsg)
	}
	return err
}

func notFoundOr(err error, format string, args ...interface{}) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(format, args...)
	}
	return err
}
