package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendaflow/agenda-crm/backend/internal/domain"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-08-24")
	require.NoError(t, err)
	assert.Equal(t, 2026, d.Year())

	_, err = ParseDate("24/08/2026")
	assert.Error(t, err)

	_, err = ParseDate("")
	assert.Error(t, err)
}

func TestParseTimeOfDay(t *testing.T) {
	v, err := ParseTimeOfDay("08:30")
	require.NoError(t, err)
	assert.Equal(t, TimeOfDay(8*60+30), v)

	_, err = ParseTimeOfDay("8h30")
	assert.Error(t, err)

	_, err = ParseTimeOfDay("25:00")
	assert.Error(t, err)
}

func TestWeekdayOf(t *testing.T) {
	monday, err := ParseDate("2026-08-24")
	require.NoError(t, err)
	assert.Equal(t, int32(0), WeekdayOf(monday))

	sunday, err := ParseDate("2026-08-30")
	require.NoError(t, err)
	assert.Equal(t, int32(6), WeekdayOf(sunday))
}

func TestTimeInWindowExcludesEnd(t *testing.T) {
	start, err := ParseTimeOfDay("08:00")
	require.NoError(t, err)
	assert.True(t, timeInWindow(start, "08:00", "12:00"))

	end, err := ParseTimeOfDay("12:00")
	require.NoError(t, err)
	assert.False(t, timeInWindow(end, "08:00", "12:00"))

	inside, err := ParseTimeOfDay("11:59")
	require.NoError(t, err)
	assert.True(t, timeInWindow(inside, "08:00", "12:00"))
}

func TestDateInRangeInclusive(t *testing.T) {
	assert.True(t, dateInRange("2026-08-24", "2026-08-24", "2026-08-26"))
	assert.True(t, dateInRange("2026-08-26", "2026-08-24", "2026-08-26"))
	assert.False(t, dateInRange("2026-08-27", "2026-08-24", "2026-08-26"))
}

func TestRuleMatchesMoment(t *testing.T) {
	start, end := "10:00", "12:00"
	rule := &domain.ClosureRule{
		StartDate: "2026-08-24",
		EndDate:   "2026-08-28",
		StartTime: &start,
		EndTime:   &end,
	}

	at, err := ParseTimeOfDay("10:30")
	require.NoError(t, err)
	assert.True(t, ruleMatchesMoment(rule, "2026-08-25", at))

	before, err := ParseTimeOfDay("09:59")
	require.NoError(t, err)
	assert.False(t, ruleMatchesMoment(rule, "2026-08-25", before))

	assert.False(t, ruleMatchesMoment(rule, "2026-08-29", at))

	allDay := &domain.ClosureRule{
		StartDate: "2026-08-24",
		EndDate:   "2026-08-24",
		AllDay:    true,
	}
	assert.True(t, ruleMatchesMoment(allDay, "2026-08-24", before))
}

func TestRuleAppliesToService(t *testing.T) {
	svc := &domain.Service{ID: 7, Name: "Consulta"}
	other := &domain.Service{ID: 8, Name: "Limpieza"}

	global := &domain.ClosureRule{}
	assert.True(t, ruleAppliesToService(global, svc))
	assert.True(t, ruleAppliesToService(global, nil))

	scopedID := int64(7)
	scoped := &domain.ClosureRule{ServiceID: &scopedID}
	assert.True(t, ruleAppliesToService(scoped, svc))
	assert.False(t, ruleAppliesToService(scoped, other))
	assert.False(t, ruleAppliesToService(scoped, nil))
}
