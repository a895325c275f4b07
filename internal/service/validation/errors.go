package validation

import "errors"

var (
	// ErrInternal возвращается при ошибках хранилища во время проверки
	ErrInternal = errors.New("validation: internal error")
)
