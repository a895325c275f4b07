package availability

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

var (
	// ErrServiceNotFound услуга не существует, не активна или принадлежит другому бизнесу
	ErrServiceNotFound = fmt.Errorf("%w: availability: service not found", domain.ErrNotFound)

	// ErrMalformedRule правило доступности хранит некорректное время
	ErrMalformedRule = fmt.Errorf("%w: availability: malformed availability rule", domain.ErrDataIntegrity)

	// ErrInternal возвращается при ошибках хранилища
	ErrInternal = errors.New("availability: internal error")
)
