package booking

import (
	"errors"

	"github.com/lib/pq"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrSlotNotAvailable возвращается, когда запись нарушает ограничение на пересечение бронирований
	ErrSlotNotAvailable = errors.New("booking.repository: slot not available")

	// ErrSerialization возвращается, когда PostgreSQL не смог сериализовать транзакцию
	ErrSerialization = errors.New("booking.repository: serialization failure")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)

// SQLSTATE коды PostgreSQL
const (
	codeExclusionViolation   = "23P01"
	codeSerializationFailure = "40001"
)

// IsConcurrencyConflict true, если ошибка означает, что слот заняли параллельно:
// сработало exclusion-ограничение или сериализуемая транзакция откатилась.
// Проверяет и ошибки фиксации транзакции, где pq.Error приходит без обёртки репозитория.
func IsConcurrencyConflict(err error) bool {
	if errors.Is(err, ErrSlotNotAvailable) || errors.Is(err, ErrSerialization) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == codeExclusionViolation || pqErr.Code == codeSerializationFailure
	}
	return false
}

// classify переводит ошибки драйвера в ошибки репозитория
func classify(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case codeExclusionViolation:
			return ErrSlotNotAvailable
		case codeSerializationFailure:
			return ErrSerialization
		}
	}
	return ErrExecQuery
}
