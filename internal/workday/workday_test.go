package workday_test

import (
	"testing"
	"time"

	"github.com/prakhar-sonii/employee-management-system/internal/workday"

	"github.com/stretchr/testify/assert"
)

func date(t *testing.T, v string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", v)
	assert.NoError(t, err)
	return d
}

// naive walks the range day by day.
func naive(start, end time.Time) int {
	n := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if d.Weekday() != time.Saturday && d.Weekday() != time.Sunday {
			n++
		}
	}
	return n
}

func TestCount(t *testing.T) {
	cases := []struct {
		name  string
		start string
		end   string
		want  int
	}{
		{"single weekday", "2026-03-02", "2026-03-02", 1},
		{"mon to wed", "2026-03-02", "2026-03-04", 3},
		{"full week", "2026-03-02", "2026-03-08", 5},
		{"saturday to sunday", "2026-03-07", "2026-03-08", 0},
		{"single sunday", "2026-03-08", "2026-03-08", 0},
		{"friday to monday", "2026-03-06", "2026-03-09", 2},
		{"two weeks from wednesday", "2026-03-04", "2026-03-17", 10},
		{"across month end", "2026-02-26", "2026-03-03", 4},
		{"leap day", "2028-02-28", "2028-03-01", 3},
		{"inverted range", "2026-03-04", "2026-03-02", 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, workday.Count(date(t, tc.start), date(t, tc.end)))
		})
	}
}

func TestCount_MatchesDayByDayWalk(t *testing.T) {
	base := date(t, "2026-01-01")
	for offset := 0; offset < 14; offset++ {
		start := base.AddDate(0, 0, offset)
		for length := 0; length < 40; length++ {
			end := start.AddDate(0, 0, length)
			assert.Equal(t, naive(start, end), workday.Count(start, end),
				"start=%s end=%s", start.Format("2006-01-02"), end.Format("2006-01-02"))
		}
	}
}

func TestCount_IgnoresTimeOfDay(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)
	start := time.Date(2026, 3, 2, 23, 30, 0, 0, loc)
	end := time.Date(2026, 3, 4, 0, 15, 0, 0, loc)

	assert.Equal(t, 3, workday.Count(start, end))
}

func TestCount_WideRange(t *testing.T) {
	start := date(t, "1700-01-04")
	end := date(t, "2100-01-04")
	days := int(end.Unix()-start.Unix())/86400 + 1

	got := workday.Count(start, end)

	assert.Equal(t, naive(start, end), got)
	assert.Greater(t, got, days*5/7-2)
}
