package availability

import (
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// bookedInterval активное бронирование в минутах от полуночи
type bookedInterval struct {
	id        int64
	window    domain.Interval
	serviceID int64
	staffID   *int64
	partySize int
}

// toBookedIntervals пропускает неактивные бронирования и бронирования с битым временем
func (s *Service) toBookedIntervals(bookings []*domain.Booking) []bookedInterval {
	result := make([]bookedInterval, 0, len(bookings))
	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		window, err := b.Interval()
		if err != nil {
			s.logger.Warn("availability: skipping booking id=%d with malformed time: %v", b.ID, err)
			continue
		}
		partySize := b.PartySize
		if partySize < 1 {
			partySize = domain.DefaultPartySize
		}
		result = append(result, bookedInterval{
			id:        b.ID,
			window:    window,
			serviceID: b.ServiceID,
			staffID:   b.StaffID,
			partySize: partySize,
		})
	}
	return result
}

// staffBusy true, если у сотрудника есть бронирование, пересекающееся с окном.
// Учитываются бронирования любых услуг: сотрудник не может быть в двух местах сразу.
func staffBusy(window domain.Interval, staffID int64, booked []bookedInterval) bool {
	for _, b := range booked {
		if b.staffID == nil || *b.staffID != staffID {
			continue
		}
		if b.window.Overlaps(window) {
			return true
		}
	}
	return false
}

// occupiedCapacity занятость услуги в окне: сумма размеров групп либо самая большая группа
func occupiedCapacity(window domain.Interval, serviceID int64, booked []bookedInterval, mode CapacityMode) int {
	occupied := 0
	for _, b := range booked {
		if b.serviceID != serviceID || !b.window.Overlaps(window) {
			continue
		}
		if mode == CapacityLargest {
			occupied = max(occupied, b.partySize)
			continue
		}
		occupied += b.partySize
	}
	return occupied
}

// markConflicts помечает занятые слоты и считает оставшиеся места
func (s *Service) markConflicts(slots []domain.Slot, service *domain.Service, booked []bookedInterval) {
	for i := range slots {
		slot := &slots[i]
		window, err := slotWindow(slot)
		if err != nil {
			continue
		}

		if slot.StaffID != nil {
			if staffBusy(window, *slot.StaffID, booked) {
				slot.Available = false
				slot.RemainingCapacity = 0
			}
			continue
		}

		// счетчик мест всегда по сумме групп, режим влияет только на доступность
		seated := occupiedCapacity(window, service.ID, booked, CapacitySum)
		slot.RemainingCapacity = max(0, service.Capacity-seated)
		slot.Available = occupiedCapacity(window, service.ID, booked, s.capacityMode) < service.Capacity
	}
}

func slotWindow(slot *domain.Slot) (domain.Interval, error) {
	start, err := slot.StartTime.Minutes()
	if err != nil {
		return domain.Interval{}, err
	}
	end, err := slot.EndTime.Minutes()
	if err != nil {
		return domain.Interval{}, err
	}
	return domain.Interval{Start: start, End: end}, nil
}
