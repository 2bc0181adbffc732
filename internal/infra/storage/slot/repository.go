package slot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-SlotCalendar/internal/domain"
	"github.com/m04kA/SMC-SlotCalendar/pkg/psqlbuilder"
	"github.com/m04kA/SMC-SlotCalendar/pkg/txmanager"
)

const (
	tableSlots    = "slots"
	tableBookings = "bookings"
)

var slotColumns = []string{
	"slot_date",
	"start_time",
	"end_time",
	"location",
	"max_quota",
	"booked_count",
}

// Repository репозиторий слотов и бронирований в PostgreSQL
type Repository struct {
	db    DBExecutor
	txMgr TxManager
	newID func() string
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor, txMgr TxManager) *Repository {
	return &Repository{
		db:    db,
		txMgr: txMgr,
		newID: func() string { return uuid.NewString() },
	}
}

// FetchSlots возвращает слоты в закрытом интервале дат [startDate, endDate]
// Пустая граница не ограничивает интервал.
func (r *Repository) FetchSlots(ctx context.Context, startDate, endDate string) ([]domain.Slot, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := buildFetchQuery(startDate, endDate).ToSql()
	if err != nil {
		return []domain.Slot{}, fmt.Errorf("%w: FetchSlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return []domain.Slot{}, fmt.Errorf("%w: FetchSlots - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]domain.Slot, 0)
	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return []domain.Slot{}, fmt.Errorf("%w: FetchSlots: %v", ErrScanRow, err)
		}
		slots = append(slots, s)
	}
	if err := rows.Err(); err != nil {
		return []domain.Slot{}, fmt.Errorf("%w: FetchSlots - iterate rows: %v", ErrScanRow, err)
	}

	return slots, nil
}

// SubmitBooking проверяет квоту и создает бронирование в одной сериализуемой транзакции.
// Строка слота блокируется через SELECT ... FOR UPDATE до коммита.
func (r *Repository) SubmitBooking(ctx context.Context, req domain.BookingRequest) (*domain.Booking, error) {
	var created *domain.Booking

	err := r.txMgr.DoSerializable(ctx, func(ctx context.Context) error {
		executor := txmanager.GetExecutor(ctx, r.db)
		id := req.Identity()

		query, args, err := psqlbuilder.Select("id", "max_quota", "booked_count").
			From(tableSlots).
			Where(identityWhere(id)).
			Suffix("FOR UPDATE").
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: SubmitBooking - build select query: %v", ErrBuildQuery, err)
		}

		var (
			slotID   int64
			maxQuota int
			booked   int
		)
		err = executor.QueryRowContext(ctx, query, args...).Scan(&slotID, &maxQuota, &booked)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %s", domain.ErrSlotNotFound, id)
		}
		if err != nil {
			return fmt.Errorf("%w: SubmitBooking - select slot: %v", ErrExecQuery, err)
		}

		if domain.IsFull(domain.Slot{MaxQuota: maxQuota, BookedCount: &booked}) {
			return fmt.Errorf("%w: %s", domain.ErrSlotFull, id)
		}

		query, args, err = psqlbuilder.Update(tableSlots).
			Set("booked_count", squirrel.Expr("booked_count + 1")).
			Set("updated_at", squirrel.Expr("NOW()")).
			Where(squirrel.Eq{"id": slotID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: SubmitBooking - build update query: %v", ErrBuildQuery, err)
		}
		if _, err := executor.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: SubmitBooking - increment booked count: %v", ErrExecQuery, err)
		}

		booking := domain.NewBooking(r.newID(), req, time.Now())

		query, args, err = buildInsertBooking(booking).Suffix("RETURNING created_at").ToSql()
		if err != nil {
			return fmt.Errorf("%w: SubmitBooking - build insert query: %v", ErrBuildQuery, err)
		}

		var createdAt time.Time
		if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt); err != nil {
			return fmt.Errorf("%w: SubmitBooking - insert booking: %v", ErrExecQuery, err)
		}
		booking.Timestamp = domain.FormatTimestamp(createdAt)

		created = booking
		return nil
	})
	if err != nil {
		if isDomainError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: SubmitBooking: %v", ErrTransaction, err)
	}

	return created, nil
}

// UpsertSlot создает слот или обновляет вместимость существующего.
// booked_count существующего слота не изменяется.
func (r *Repository) UpsertSlot(ctx context.Context, s domain.Slot) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := buildUpsertQuery(s).ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpsertSlot - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpsertSlot - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// DeleteSlot удаляет слот по составному ключу. Удаление отсутствующего слота не является ошибкой.
func (r *Repository) DeleteSlot(ctx context.Context, s domain.Slot) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableSlots).
		Where(identityWhere(s.Identity())).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteSlot - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteSlot - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

func identityWhere(id domain.SlotIdentity) squirrel.Eq {
	return squirrel.Eq{
		"slot_date":  id.Date,
		"start_time": id.StartTime,
		"end_time":   id.EndTime,
		"location":   id.Location,
	}
}

func buildFetchQuery(startDate, endDate string) squirrel.SelectBuilder {
	q := psqlbuilder.Select(slotColumns...).From(tableSlots)
	if startDate != "" {
		q = q.Where(squirrel.GtOrEq{"slot_date": startDate})
	}
	if endDate != "" {
		q = q.Where(squirrel.LtOrEq{"slot_date": endDate})
	}
	return q.OrderBy("slot_date", "start_time", "location")
}

func buildUpsertQuery(s domain.Slot) squirrel.InsertBuilder {
	id := s.Identity()
	return psqlbuilder.Insert(tableSlots).
		Columns("slot_date", "start_time", "end_time", "location", "max_quota", "booked_count").
		Values(id.Date, id.StartTime, id.EndTime, id.Location, s.MaxQuota, s.Booked()).
		Suffix("ON CONFLICT (slot_date, start_time, end_time, location) DO UPDATE SET max_quota = EXCLUDED.max_quota, updated_at = NOW()")
}

func buildInsertBooking(b *domain.Booking) squirrel.InsertBuilder {
	return psqlbuilder.Insert(tableBookings).
		Columns(
			"id",
			"slot_date",
			"time_slot",
			"start_time",
			"end_time",
			"location",
			"user_name",
			"name",
			"email",
			"phone",
			"notes",
		).
		Values(
			b.ID,
			b.Date,
			b.TimeSlot,
			b.StartTime,
			b.EndTime,
			domain.ResolveLocation(b.Location),
			b.User,
			b.Name,
			b.Email,
			b.Phone,
			b.Notes,
		)
}

func scanSlot(rows *sql.Rows) (domain.Slot, error) {
	var (
		s      domain.Slot
		booked int
	)
	if err := rows.Scan(&s.Date, &s.StartTime, &s.EndTime, &s.Location, &s.MaxQuota, &booked); err != nil {
		return domain.Slot{}, err
	}
	s.BookedCount = &booked
	return s, nil
}

func isDomainError(err error) bool {
	return errors.Is(err, domain.ErrSlotNotFound) || errors.Is(err, domain.ErrSlotFull)
}
