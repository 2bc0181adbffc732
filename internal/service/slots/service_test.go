package slots

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotCalendar/internal/domain"
	"github.com/m04kA/SMC-SlotCalendar/pkg/logger"
	"github.com/m04kA/SMC-SlotCalendar/pkg/ptr"
)

type fakeStore struct {
	fetchFn  func(ctx context.Context, start, end string) ([]domain.Slot, error)
	upsertFn func(ctx context.Context, slot domain.Slot) error
	deleteFn func(ctx context.Context, slot domain.Slot) error
}

func (f *fakeStore) FetchSlots(ctx context.Context, start, end string) ([]domain.Slot, error) {
	return f.fetchFn(ctx, start, end)
}

func (f *fakeStore) UpsertSlot(ctx context.Context, slot domain.Slot) error {
	return f.upsertFn(ctx, slot)
}

func (f *fakeStore) DeleteSlot(ctx context.Context, slot domain.Slot) error {
	return f.deleteFn(ctx, slot)
}

type fakeMetrics struct {
	failures   []string
	duplicates int
}

func (m *fakeMetrics) ObserveFetchFailure(code string) { m.failures = append(m.failures, code) }
func (m *fakeMetrics) ObserveDuplicates(n int)         { m.duplicates += n }

func validSlot() domain.Slot {
	return domain.Slot{Date: "2026-01-16", StartTime: "09:00", EndTime: "10:00", MaxQuota: 3}
}

func TestList(t *testing.T) {
	t.Run("failure degrades to empty list", func(t *testing.T) {
		m := &fakeMetrics{}
		svc := NewService(&fakeStore{
			fetchFn: func(ctx context.Context, start, end string) ([]domain.Slot, error) {
				return nil, domain.ErrNetworkFailure
			},
		}, m, logger.NewNop())

		slots, err := svc.List(context.Background(), "2026-01-01", "2026-01-31")

		assert.ErrorIs(t, err, domain.ErrNetworkFailure)
		assert.NotNil(t, slots)
		assert.Empty(t, slots)
		assert.Equal(t, []string{domain.CodeNetworkFailure}, m.failures)
	})

	t.Run("duplicates are counted", func(t *testing.T) {
		m := &fakeMetrics{}
		dup := domain.Slot{Date: "2026-01-15", StartTime: "10:00", EndTime: "11:00", MaxQuota: 10, BookedCount: ptr.Ptr(5)}
		explicit := dup
		explicit.Location = domain.LocationBangkok

		svc := NewService(&fakeStore{
			fetchFn: func(ctx context.Context, start, end string) ([]domain.Slot, error) {
				return []domain.Slot{dup, explicit, validSlot()}, nil
			},
		}, m, logger.NewNop())

		slots, err := svc.List(context.Background(), "2026-01-01", "2026-01-31")

		require.NoError(t, err)
		assert.Len(t, slots, 3)
		assert.Equal(t, 1, m.duplicates)
	})
}

func TestSave(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(s *domain.Slot)
		wantField string
	}{
		{name: "valid slot", mutate: func(s *domain.Slot) {}},
		{name: "explicit known location", mutate: func(s *domain.Slot) { s.Location = domain.LocationRayong }},
		{name: "bad date", mutate: func(s *domain.Slot) { s.Date = "16.01.2026" }, wantField: "date"},
		{name: "bad start", mutate: func(s *domain.Slot) { s.StartTime = "9am" }, wantField: "startTime"},
		{name: "zero quota", mutate: func(s *domain.Slot) { s.MaxQuota = 0 }, wantField: "maxQuota"},
		{name: "unknown location", mutate: func(s *domain.Slot) { s.Location = "Phuket" }, wantField: "location"},
		{name: "end before start is stored as is", mutate: func(s *domain.Slot) { s.EndTime = "08:00" }},
		{name: "zero length slot is stored as is", mutate: func(s *domain.Slot) { s.EndTime = s.StartTime }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var saved *domain.Slot
			svc := NewService(&fakeStore{
				upsertFn: func(ctx context.Context, slot domain.Slot) error {
					saved = &slot
					return nil
				},
			}, &fakeMetrics{}, logger.NewNop())

			slot := validSlot()
			tt.mutate(&slot)

			err := svc.Save(context.Background(), slot)

			if tt.wantField == "" {
				require.NoError(t, err)
				require.NotNil(t, saved)
				assert.Equal(t, slot, *saved)
				return
			}

			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrValidationFailed)
			var verrs ValidationErrors
			require.True(t, errors.As(err, &verrs))
			assert.Equal(t, tt.wantField, verrs[0].Field)
			assert.Nil(t, saved)
		})
	}
}

func TestSave_StoreErrorKeepsCode(t *testing.T) {
	svc := NewService(&fakeStore{
		upsertFn: func(ctx context.Context, slot domain.Slot) error {
			return &domain.RejectedError{Message: "Sheet is locked"}
		},
	}, &fakeMetrics{}, logger.NewNop())

	err := svc.Save(context.Background(), validSlot())

	assert.Equal(t, domain.CodeRejected, domain.CodeOf(err))
	var rejected *domain.RejectedError
	require.True(t, errors.As(err, &rejected))
	assert.Equal(t, "Sheet is locked", rejected.Message)
}

func TestDelete(t *testing.T) {
	t.Run("quota is not required", func(t *testing.T) {
		var deleted bool
		svc := NewService(&fakeStore{
			deleteFn: func(ctx context.Context, slot domain.Slot) error {
				deleted = true
				return nil
			},
		}, &fakeMetrics{}, logger.NewNop())

		slot := validSlot()
		slot.MaxQuota = 0

		require.NoError(t, svc.Delete(context.Background(), slot))
		assert.True(t, deleted)
	})

	t.Run("missing date rejected", func(t *testing.T) {
		svc := NewService(&fakeStore{}, &fakeMetrics{}, logger.NewNop())

		slot := validSlot()
		slot.Date = ""

		assert.ErrorIs(t, svc.Delete(context.Background(), slot), domain.ErrValidationFailed)
	})
}
