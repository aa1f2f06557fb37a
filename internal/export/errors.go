package export

import (
	"fmt"
	"strings"
)

// ValidationError - ошибка запроса на выгрузку. Отдаётся клиенту как 4xx с машинным кодом.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

var (
	ErrNoSelection        = &ValidationError{Code: "NO_SELECTION", Message: "no orders selected for export"}
	ErrNoColumns          = &ValidationError{Code: "NO_COLUMNS", Message: "no columns selected for export"}
	ErrDuplicateSelection = &ValidationError{Code: "DUPLICATE_SELECTION", Message: "order id selected more than once"}
	ErrInvalidSelection   = &ValidationError{Code: "INVALID_SELECTION", Message: "order id must be positive"}
	ErrInvalidFormat      = &ValidationError{Code: "INVALID_FORMAT", Message: "unsupported export format or charset"}
)

// UnknownColumnError - в запросе есть id колонок, которых нет в реестре.
type UnknownColumnError struct {
	IDs []string
}

func (e *UnknownColumnError) Error() string {
	return "unknown column id(s): " + strings.Join(e.IDs, ", ")
}

// Code совпадает по смыслу с ValidationError.Code.
func (e *UnknownColumnError) Code() string { return "UNKNOWN_COLUMN" }

// StoreError - хранилище заказов не ответило.
type StoreError struct {
	Err error
}

func (e *StoreError) Error() string { return fmt.Sprintf("order store: %v", e.Err) }

func (e *StoreError) Unwrap() error { return e.Err }

// EncodingError - не удалось собрать файл выгрузки.
type EncodingError struct {
	Stage string
	Err   error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("encode export (%s): %v", e.Stage, e.Err)
}

func (e *EncodingError) Unwrap() error { return e.Err }
