package slot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotCalendar/internal/domain"
)

func TestIdentityWhere(t *testing.T) {
	sql, args, err := identityWhere(domain.SlotIdentity{
		Date:      "2026-01-15",
		StartTime: "10:00",
		EndTime:   "11:00",
		Location:  domain.LocationRayong,
	}).ToSql()

	require.NoError(t, err)
	assert.Equal(t, "end_time = ? AND location = ? AND slot_date = ? AND start_time = ?", sql)
	assert.Equal(t, []interface{}{"11:00", "Rayong", "2026-01-15", "10:00"}, args)
}

func TestBuildFetchQuery(t *testing.T) {
	t.Run("closed interval", func(t *testing.T) {
		sql, args, err := buildFetchQuery("2026-01-01", "2026-01-31").ToSql()

		require.NoError(t, err)
		assert.Equal(t,
			"SELECT slot_date, start_time, end_time, location, max_quota, booked_count FROM slots "+
				"WHERE slot_date >= $1 AND slot_date <= $2 ORDER BY slot_date, start_time, location",
			sql)
		assert.Equal(t, []interface{}{"2026-01-01", "2026-01-31"}, args)
	})

	t.Run("unbounded", func(t *testing.T) {
		sql, args, err := buildFetchQuery("", "").ToSql()

		require.NoError(t, err)
		assert.NotContains(t, sql, "WHERE")
		assert.Empty(t, args)
	})
}

func TestBuildUpsertQuery_DefaultsLocation(t *testing.T) {
	sql, args, err := buildUpsertQuery(domain.Slot{
		Date:      "2026-01-16",
		StartTime: "09:00",
		EndTime:   "10:00",
		MaxQuota:  3,
	}).ToSql()

	require.NoError(t, err)
	assert.Contains(t, sql, "ON CONFLICT (slot_date, start_time, end_time, location) DO UPDATE SET max_quota = EXCLUDED.max_quota")
	assert.Equal(t, []interface{}{"2026-01-16", "09:00", "10:00", "Bangkok", 3, 0}, args)
}
