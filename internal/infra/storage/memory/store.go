package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SlotCalendar/internal/domain"
	"github.com/m04kA/SMC-SlotCalendar/pkg/ptr"
)

// Store хранилище слотов в памяти процесса
// Используется, когда удаленный сервис не сконфигурирован. Данные живут до перезапуска.
// Все операции сериализуются одним мьютексом: проверка квоты и инкремент выполняются
// в одной критической секции.
type Store struct {
	mu       sync.Mutex
	slots    []domain.Slot
	bookings []domain.Booking

	now   func() time.Time
	newID func() string
}

// NewStore создает хранилище, заполненное копиями seed
func NewStore(seed []domain.Slot) *Store {
	slots := make([]domain.Slot, len(seed))
	for i, s := range seed {
		slots[i] = s.Clone()
	}
	return &Store{
		slots: slots,
		now:   time.Now,
		newID: func() string { return uuid.NewString() },
	}
}

// FetchSlots возвращает копии слотов, дата которых попадает в закрытый интервал [startDate, endDate]
// Пустая граница не ограничивает интервал.
func (s *Store) FetchSlots(_ context.Context, startDate, endDate string) ([]domain.Slot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]domain.Slot, 0, len(s.slots))
	for _, slot := range s.slots {
		if startDate != "" && slot.Date < startDate {
			continue
		}
		if endDate != "" && slot.Date > endDate {
			continue
		}
		result = append(result, slot.Clone())
	}
	return result, nil
}

// SubmitBooking повторно проверяет квоту и увеличивает bookedCount атомарно
func (s *Store) SubmitBooking(_ context.Context, req domain.BookingRequest) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, err := domain.FindByIdentity(s.slots, req.Identity())
	if err != nil {
		return nil, err
	}

	slot := &s.slots[idx]
	if domain.IsFull(*slot) {
		return nil, fmt.Errorf("%w: %s, %d/%d booked", domain.ErrSlotFull, slot.Identity(), slot.Booked(), slot.MaxQuota)
	}
	slot.BookedCount = ptr.Ptr(slot.Booked() + 1)

	booking := domain.NewBooking(s.newID(), req, s.now())
	s.bookings = append(s.bookings, *booking)

	return booking, nil
}

// UpsertSlot обновляет квоту существующего слота или добавляет новый с bookedCount = 0
func (s *Store) UpsertSlot(_ context.Context, slot domain.Slot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, err := domain.FindByIdentity(s.slots, slot.Identity())
	switch {
	case err == nil:
		s.slots[idx].MaxQuota = slot.MaxQuota
		return nil
	case errors.Is(err, domain.ErrSlotNotFound):
		inserted := slot.Clone()
		inserted.BookedCount = ptr.Ptr(0)
		s.slots = append(s.slots, inserted)
		return nil
	default:
		return err
	}
}

// DeleteSlot удаляет слот по составной идентичности. Отсутствующий слот не является ошибкой.
func (s *Store) DeleteSlot(_ context.Context, slot domain.Slot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, err := domain.FindByIdentity(s.slots, slot.Identity())
	switch {
	case err == nil:
		s.slots = append(s.slots[:idx], s.slots[idx+1:]...)
		return nil
	case errors.Is(err, domain.ErrSlotNotFound):
		return nil
	default:
		return err
	}
}

// Len возвращает количество слотов в хранилище
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.slots)
}

// Bookings возвращает копию принятых бронирований
func (s *Store) Bookings() []domain.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Booking, len(s.bookings))
	copy(out, s.bookings)
	return out
}
