package slotservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/m04kA/SMC-SlotCalendar/internal/domain"
)

const contentTypeText = "text/plain;charset=utf-8"

// Client клиент удаленного хранилища слотов (скрипт поверх таблицы)
type Client struct {
	baseURL    string
	httpClient *http.Client
	loc        *time.Location
	log        Logger
}

// NewClient создает новый экземпляр клиента удаленного хранилища.
// loc - часовой пояс, в котором отображаются даты и время слотов.
func NewClient(baseURL string, timeout time.Duration, loc *time.Location, log Logger) *Client {
	if loc == nil {
		loc = time.UTC
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		loc: loc,
		log: log,
	}
}

// FetchSlots получает слоты в диапазоне дат [start, end] включительно.
// При любой ошибке возвращает пустой (не nil) список и ошибку ErrNetworkFailure.
func (c *Client) FetchSlots(ctx context.Context, start, end string) ([]domain.Slot, error) {
	query := url.Values{}
	query.Set("action", actionGetSlots)
	query.Set("startDate", start)
	query.Set("endDate", end)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return []domain.Slot{}, fmt.Errorf("%w: failed to create request: %v", domain.ErrNetworkFailure, err)
	}

	env, err := c.do(req)
	if err != nil {
		c.log.Error("Failed to fetch slots for range %s..%s: %v", start, end, err)
		return []domain.Slot{}, err
	}

	var rows []json.RawMessage
	if len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, &rows); err != nil {
			c.log.Error("Failed to decode slots for range %s..%s: %v", start, end, err)
			return []domain.Slot{}, fmt.Errorf("%w: %v: failed to decode slots: %v", domain.ErrNetworkFailure, ErrInvalidResponse, err)
		}
	}

	slots := make([]domain.Slot, 0, len(rows))
	for i, row := range rows {
		// битая строка пропускается, остальные слоты месяца сохраняются
		var s Slot
		if err := json.Unmarshal(row, &s); err != nil {
			c.log.Warn("Skipping malformed slot #%d for range %s..%s: %v", i, start, end, err)
			continue
		}

		normalized, ok := normalizeSlot(s, c.loc)
		if !ok {
			c.log.Warn("Failed to normalize slot date=%q start=%q end=%q, keeping as is", s.Date, s.StartTime, s.EndTime)
		}
		slots = append(slots, normalized.toDomain())
	}

	return slots, nil
}

// SubmitBooking отправляет бронирование в удаленное хранилище.
// Проверку вместимости выполняет удаленная сторона, отказ возвращается как ErrRejected.
func (c *Client) SubmitBooking(ctx context.Context, booking domain.BookingRequest) (*domain.Booking, error) {
	env, err := c.post(ctx, actionCreateBooking, fromDomainBookingRequest(booking))
	if err != nil {
		return nil, err
	}

	if len(env.Data) == 0 || string(env.Data) == "null" {
		return &domain.Booking{}, nil
	}

	var created Booking
	if err := json.Unmarshal(env.Data, &created); err != nil {
		// Бронирование уже принято удаленной стороной, отсутствующие поля дополнит вызывающий
		c.log.Warn("Failed to decode created booking, returning empty record: %v", err)
		return &domain.Booking{}, nil
	}

	return created.toDomain(), nil
}

// UpsertSlot создает слот или обновляет его вместимость
func (c *Client) UpsertSlot(ctx context.Context, slot domain.Slot) error {
	_, err := c.post(ctx, actionSaveSlot, fromDomainSlot(slot))
	return err
}

// DeleteSlot удаляет слот по составному ключу
func (c *Client) DeleteSlot(ctx context.Context, slot domain.Slot) error {
	_, err := c.post(ctx, actionDeleteSlot, fromDomainSlot(slot))
	return err
}

func (c *Client) post(ctx context.Context, action string, payload interface{}) (*envelope, error) {
	body, err := json.Marshal(actionRequest{Action: action, Payload: payload})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal %s request: %v", ErrInternal, action, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", domain.ErrNetworkFailure, err)
	}

	// Простой content-type не требует preflight запроса на стороне скрипта
	req.Header.Set("Content-Type", contentTypeText)

	env, err := c.do(req)
	if err != nil {
		c.log.Error("Remote action %s failed: %v", action, err)
		return nil, err
	}

	return env, nil
}

// do выполняет запрос и разбирает конверт ответа
func (c *Client) do(req *http.Request) (*envelope, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", domain.ErrNetworkFailure, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		// Продолжаем обработку
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", domain.ErrNetworkFailure, resp.StatusCode, string(body))
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("%w: %v: failed to decode response: %v", domain.ErrNetworkFailure, ErrInvalidResponse, err)
	}

	if !env.Success {
		return nil, &domain.RejectedError{Message: env.Error}
	}

	return &env, nil
}
