package calendar

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-SlotCalendar/internal/domain"
)

// SlotLister fetches the slots of a closed date range.
// On failure it returns an empty list together with the error.
type SlotLister interface {
	List(ctx context.Context, startDate, endDate string) ([]domain.Slot, error)
}

// View is the calendar screen state: displayed month, selected day, location filter and the
// slots of the displayed month.
//
// Only ShowMonth and Reconcile fetch. Each fetch takes a new request token; a response that
// arrives after a newer fetch started is discarded.
type View struct {
	lister SlotLister

	mu       sync.Mutex
	month    time.Time
	day      string
	location string
	slots    []domain.Slot
	token    uint64
	lastErr  error
}

// NewView creates a view showing the month of today with today selected.
// Nothing is fetched until ShowMonth or Reconcile is called.
func NewView(lister SlotLister, today time.Time) *View {
	return &View{
		lister:   lister,
		month:    StartOfMonth(today),
		day:      today.Format(domain.DateFormat),
		location: domain.DefaultLocation,
		slots:    []domain.Slot{},
	}
}

// ShowMonth switches the view to month and fetches its slots.
// A fetch failure empties the slot list and is kept in LastError; the error is also returned.
func (v *View) ShowMonth(ctx context.Context, month time.Time) error {
	v.mu.Lock()
	v.month = StartOfMonth(month)
	v.mu.Unlock()

	return v.fetch(ctx)
}

// Reconcile drops the cached slots and fetches the displayed month again.
// Call it after every booking, save or delete.
func (v *View) Reconcile(ctx context.Context) error {
	v.mu.Lock()
	v.slots = []domain.Slot{}
	v.mu.Unlock()

	return v.fetch(ctx)
}

// SelectDay changes the selected day without fetching.
func (v *View) SelectDay(date string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.day = date
}

// SetLocation changes the location filter without fetching. Empty selects DefaultLocation.
func (v *View) SetLocation(location string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.location = domain.ResolveLocation(location)
}

func (v *View) fetch(ctx context.Context) error {
	v.mu.Lock()
	v.token++
	token := v.token
	start, end := MonthRange(v.month)
	v.mu.Unlock()

	slots, err := v.lister.List(ctx, start, end)

	v.mu.Lock()
	defer v.mu.Unlock()

	if token != v.token {
		// a newer fetch has started
		return nil
	}

	if err != nil {
		v.slots = []domain.Slot{}
		v.lastErr = err
		return err
	}

	if slots == nil {
		slots = []domain.Slot{}
	}
	v.slots = slots
	v.lastErr = nil
	return nil
}

// Month returns the first day of the displayed month.
func (v *View) Month() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.month
}

// SelectedDay returns the selected day as YYYY-MM-DD.
func (v *View) SelectedDay() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.day
}

// Location returns the active location filter.
func (v *View) Location() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.location
}

// LastError returns the error of the latest applied fetch, nil after a successful one.
func (v *View) LastError() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lastErr
}

// Slots returns a copy of the cached slots of the displayed month.
func (v *View) Slots() []domain.Slot {
	v.mu.Lock()
	defer v.mu.Unlock()

	out := make([]domain.Slot, len(v.slots))
	for i, s := range v.slots {
		out[i] = s.Clone()
	}
	return out
}

// VisibleSlots returns the slots of the selected day at the active location.
func (v *View) VisibleSlots() []domain.Slot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return VisibleSlots(v.slots, v.day, v.location)
}

// MonthSummary returns per-day totals of the displayed month at the active location.
func (v *View) MonthSummary() []DaySummary {
	v.mu.Lock()
	defer v.mu.Unlock()
	return Summarize(v.slots, v.location)
}
