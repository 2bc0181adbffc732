package create_booking

import "github.com/m04kA/SMC-SlotCalendar/internal/domain"

// Request модель запроса на создание бронирования
type Request struct {
	Slot  domain.Slot // Снимок слота в том виде, в каком его видел пользователь
	Name  string
	Email string
	Phone string // Опционально
	Notes string // Опционально
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking          *domain.Booking
	NotificationSent bool
	Warning          string // Непустое, если письмо не отправлено; бронирование при этом сохранено
}
