package apperr

import "fmt"

// Виды ошибок доменного слоя. Обработчики переводят их в HTTP-статусы:
// ValidationError -> 400, ReferentialError -> 409, NotFoundError -> 404.

// ValidationError — нарушен бизнес-инвариант, запись полностью откатывается.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Validation создает ошибку валидации с готовым текстом причины.
func Validation(format string, args ...interface{}) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// ReferentialError — удаление запрещено, пока на запись есть ссылки.
type ReferentialError struct {
	Reason string
}

func (e *ReferentialError) Error() string {
	return e.Reason
}

func Referential(format string, args ...interface{}) error {
	return &ReferentialError{Reason: fmt.Sprintf(format, args...)}
}

// NotFoundError — операция над несуществующей записью.
type NotFoundError struct {
	Reason string
}

func (e *NotFoundError) Error() string {
	return e.Reason
}

func NotFound(format string, args ...interface{}) error {
	return &NotFoundError{Reason: fmt.Sprintf(format, args...)}
}
