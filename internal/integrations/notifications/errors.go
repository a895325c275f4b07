package notifications

import "errors"

var (
	// ErrInternal возвращается при ошибках сериализации события
	ErrInternal = errors.New("notifications: internal error")

	// ErrPublish возвращается, когда брокер не принял сообщение
	ErrPublish = errors.New("notifications: failed to publish event")

	// ErrDisabled возвращается, когда брокеры не настроены и событие никуда не ушло
	ErrDisabled = errors.New("notifications: dispatch is disabled")
)
