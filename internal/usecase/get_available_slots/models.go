package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Request модель запроса на получение слотов
type Request struct {
	Business  string    // ID или slug бизнеса
	ServiceID int64     // ID услуги
	Date      time.Time // Дата (для недели - первый день)
}

// Response модель ответа со слотами по дням
type Response struct {
	BusinessID int64
	ServiceID  int64
	Days       []Day // один день для Execute, семь для ExecuteWeek
}

// Day слоты одной даты
type Day struct {
	Date    time.Time
	Weekday int // 0 = воскресенье
	Slots   []Slot
}

// Slot модель временного слота
type Slot struct {
	StartTime         types.TimeString // Время начала слота (например, "10:00")
	EndTime           types.TimeString // Время окончания слота
	Available         bool             // Можно ли забронировать
	StaffID           *int64           // Сотрудник, если услуга требует сотрудника
	RemainingCapacity int              // Количество свободных мест
}

func toDay(d *domain.DayAvailability) Day {
	day := Day{
		Date:    d.Date,
		Weekday: d.Weekday,
		Slots:   make([]Slot, 0, len(d.Slots)),
	}
	for _, s := range d.Slots {
		day.Slots = append(day.Slots, Slot{
			StartTime:         s.StartTime,
			EndTime:           s.EndTime,
			Available:         s.Available,
			StaffID:           s.StaffID,
			RemainingCapacity: s.RemainingCapacity,
		})
	}
	return day
}
