package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
)

// DayAvailabilityResponse HTTP response model
type DayAvailabilityResponse struct {
	BusinessID int64           `json:"businessId"`
	ServiceID  int64           `json:"serviceId"`
	Date       string          `json:"date"`
	Weekday    int             `json:"weekday"` // 0 = воскресенье
	Slots      []AvailableSlot `json:"slots"`
}

// WeekAvailabilityResponse HTTP response model
type WeekAvailabilityResponse struct {
	BusinessID int64         `json:"businessId"`
	ServiceID  int64         `json:"serviceId"`
	Days       []DayResponse `json:"days"`
}

// DayResponse слоты одного дня недели
type DayResponse struct {
	Date    string          `json:"date"`
	Weekday int             `json:"weekday"`
	Slots   []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	StartTime         string `json:"startTime"`
	EndTime           string `json:"endTime"`
	Available         bool   `json:"available"`
	StaffID           *int64 `json:"staffId,omitempty"`
	RemainingCapacity int    `json:"remainingCapacity"`
}

// ToUseCaseRequest создает запрос use case из параметров пути и query
func ToUseCaseRequest(business string, serviceID int64, dateStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		Business:  business,
		ServiceID: serviceID,
		Date:      date,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case за один день
func FromUseCaseResponse(resp *getAvailableSlots.Response) *DayAvailabilityResponse {
	day := DayResponse{Slots: []AvailableSlot{}}
	if len(resp.Days) > 0 {
		day = toDayResponse(resp.Days[0])
	}

	return &DayAvailabilityResponse{
		BusinessID: resp.BusinessID,
		ServiceID:  resp.ServiceID,
		Date:       day.Date,
		Weekday:    day.Weekday,
		Slots:      day.Slots,
	}
}

// FromUseCaseWeekResponse конвертирует ответ use case за неделю
func FromUseCaseWeekResponse(resp *getAvailableSlots.Response) *WeekAvailabilityResponse {
	days := make([]DayResponse, 0, len(resp.Days))
	for _, d := range resp.Days {
		days = append(days, toDayResponse(d))
	}

	return &WeekAvailabilityResponse{
		BusinessID: resp.BusinessID,
		ServiceID:  resp.ServiceID,
		Days:       days,
	}
}

func toDayResponse(d getAvailableSlots.Day) DayResponse {
	slots := make([]AvailableSlot, len(d.Slots))
	for i, slot := range d.Slots {
		slots[i] = AvailableSlot{
			StartTime:         slot.StartTime.String(),
			EndTime:           slot.EndTime.String(),
			Available:         slot.Available,
			StaffID:           slot.StaffID,
			RemainingCapacity: slot.RemainingCapacity,
		}
	}

	return DayResponse{
		Date:    d.Date.Format(domain.DateFormat),
		Weekday: d.Weekday,
		Slots:   slots,
	}
}
