package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotCalendar/pkg/ptr"
)

func TestAvailability(t *testing.T) {
	tests := []struct {
		name      string
		slot      Slot
		available int
		seatsLeft int
		full      bool
	}{
		{
			name:      "booked count absent",
			slot:      Slot{MaxQuota: 3},
			available: 3,
			seatsLeft: 3,
			full:      false,
		},
		{
			name:      "partially booked",
			slot:      Slot{MaxQuota: 10, BookedCount: ptr.Ptr(5)},
			available: 5,
			seatsLeft: 5,
			full:      false,
		},
		{
			name:      "exactly full",
			slot:      Slot{MaxQuota: 5, BookedCount: ptr.Ptr(5)},
			available: 0,
			seatsLeft: 0,
			full:      true,
		},
		{
			name:      "overbooked upstream",
			slot:      Slot{MaxQuota: 2, BookedCount: ptr.Ptr(4)},
			available: -2,
			seatsLeft: 0,
			full:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.available, Availability(tt.slot))
			assert.Equal(t, tt.slot.MaxQuota-tt.slot.Booked(), Availability(tt.slot))
			assert.Equal(t, tt.seatsLeft, SeatsLeft(tt.slot))
			assert.Equal(t, tt.full, IsFull(tt.slot))
			assert.Equal(t, Availability(tt.slot) <= 0, IsFull(tt.slot))
		})
	}
}

func TestIdentityOf_DefaultsLocation(t *testing.T) {
	withoutLocation := Slot{Date: "2026-01-15", StartTime: "10:00", EndTime: "11:00", MaxQuota: 10}
	explicitDefault := Slot{Date: "2026-01-15", StartTime: "10:00", EndTime: "11:00", MaxQuota: 3, Location: DefaultLocation}
	rayong := Slot{Date: "2026-01-15", StartTime: "10:00", EndTime: "11:00", Location: LocationRayong}

	assert.Equal(t, IdentityOf(withoutLocation), IdentityOf(explicitDefault))
	assert.NotEqual(t, IdentityOf(withoutLocation), IdentityOf(rayong))
	assert.Equal(t, "2026-01-15 10:00-11:00 @Bangkok", IdentityOf(withoutLocation).String())
}

func TestFindByIdentity(t *testing.T) {
	slots := []Slot{
		{Date: "2026-01-15", StartTime: "10:00", EndTime: "11:00"},
		{Date: "2026-01-15", StartTime: "13:00", EndTime: "14:00", Location: LocationRayong},
	}

	idx, err := FindByIdentity(slots, SlotIdentity{Date: "2026-01-15", StartTime: "13:00", EndTime: "14:00", Location: LocationRayong})
	require.NoError(t, err)
	assert.Equal(t, 1, idx)

	_, err = FindByIdentity(slots, SlotIdentity{Date: "2026-01-15", StartTime: "13:00", EndTime: "14:00", Location: LocationBangkok})
	assert.ErrorIs(t, err, ErrSlotNotFound)

	dup := append(slots, Slot{Date: "2026-01-15", StartTime: "10:00", EndTime: "11:00", Location: LocationBangkok})
	_, err = FindByIdentity(dup, IdentityOf(slots[0]))
	assert.ErrorIs(t, err, ErrDuplicateSlot)
}

func TestDuplicateIdentities(t *testing.T) {
	a := Slot{Date: "2026-01-15", StartTime: "10:00", EndTime: "11:00"}
	b := Slot{Date: "2026-01-16", StartTime: "09:00", EndTime: "10:00"}

	assert.Empty(t, DuplicateIdentities([]Slot{a, b}))
	assert.Equal(t, []SlotIdentity{IdentityOf(a)}, DuplicateIdentities([]Slot{a, b, a, a}))
}

func TestClone_DoesNotShareBookedCount(t *testing.T) {
	orig := Slot{MaxQuota: 5, BookedCount: ptr.Ptr(1)}
	cp := orig.Clone()
	*cp.BookedCount = 4

	assert.Equal(t, 1, orig.Booked())
	assert.Equal(t, 4, cp.Booked())
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, "", CodeOf(nil))
	assert.Equal(t, CodeSlotFull, CodeOf(fmt.Errorf("%w: 2026-01-15", ErrSlotFull)))
	assert.Equal(t, CodeNetworkFailure, CodeOf(fmt.Errorf("client: %w", ErrNetworkFailure)))
	assert.Equal(t, CodeInternal, CodeOf(errors.New("boom")))
}
