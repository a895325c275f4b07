package notifications

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

const defaultDispatchTimeout = 10 * time.Second

// Dispatcher отправляет события в фоне, ответ клиенту не ждет брокер
type Dispatcher struct {
	publisher EventPublisher
	timeout   time.Duration
	log       Logger
	wg        sync.WaitGroup
}

// NewDispatcher создает диспетчер; timeout ограничивает одну отправку вместе с повторами
func NewDispatcher(publisher EventPublisher, timeout time.Duration, log Logger) *Dispatcher {
	if timeout <= 0 {
		timeout = defaultDispatchTimeout
	}
	return &Dispatcher{
		publisher: publisher,
		timeout:   timeout,
		log:       log,
	}
}

// Dispatch публикует копию бронирования в отдельной горутине.
// Контекст запроса отвязывается от отмены. onSent вызывается только
// после того, как брокер принял событие.
func (d *Dispatcher) Dispatch(ctx context.Context, eventType string, booking *domain.Booking, onSent func(ctx context.Context)) {
	snapshot := *booking
	bgCtx := context.WithoutCancel(ctx)

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		sendCtx, cancel := context.WithTimeout(bgCtx, d.timeout)
		defer cancel()

		err := d.publisher.Publish(sendCtx, eventType, &snapshot)
		switch {
		case errors.Is(err, ErrDisabled):
			return
		case err != nil:
			d.log.Warn("notifications: %s for booking id=%d not delivered: %v", eventType, snapshot.ID, err)
			return
		}

		if onSent != nil {
			onSent(sendCtx)
		}
	}()
}

// Wait дожидается отправки всех начатых событий (graceful shutdown)
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
