package prune

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func arc(name string, year int, month time.Month, day int) Archive {
	return Archive{Name: name, Timestamp: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func TestBucketKey(t *testing.T) {
	tests := []struct {
		name string
		g    Granularity
		a, b time.Time
		same bool
	}{
		{
			name: "seconds differ",
			g:    BySecond,
			a:    time.Date(2018, 1, 2, 3, 4, 5, 0, time.UTC),
			b:    time.Date(2018, 1, 2, 3, 4, 6, 0, time.UTC),
			same: false,
		},
		{
			name: "same minute",
			g:    ByMinute,
			a:    time.Date(2018, 1, 2, 3, 4, 5, 0, time.UTC),
			b:    time.Date(2018, 1, 2, 3, 4, 6, 0, time.UTC),
			same: true,
		},
		{
			name: "minutes differ",
			g:    ByMinute,
			a:    time.Date(2018, 1, 2, 3, 4, 0, 0, time.UTC),
			b:    time.Date(2018, 1, 2, 3, 5, 0, 0, time.UTC),
			same: false,
		},
		{
			name: "same hour",
			g:    ByHour,
			a:    time.Date(2018, 1, 2, 3, 4, 5, 0, time.UTC),
			b:    time.Date(2018, 1, 2, 3, 45, 0, 0, time.UTC),
			same: true,
		},
		{
			name: "hours differ",
			g:    ByHour,
			a:    time.Date(2018, 1, 2, 3, 4, 59, 0, time.UTC),
			b:    time.Date(2018, 1, 2, 4, 4, 59, 0, time.UTC),
			same: false,
		},
		{
			name: "same day",
			g:    ByDay,
			a:    time.Date(2018, 1, 2, 3, 0, 5, 0, time.UTC),
			b:    time.Date(2018, 1, 2, 23, 0, 4, 0, time.UTC),
			same: true,
		},
		{
			name: "days differ",
			g:    ByDay,
			a:    time.Date(2018, 1, 2, 3, 4, 59, 0, time.UTC),
			b:    time.Date(2018, 1, 3, 3, 4, 59, 0, time.UTC),
			same: false,
		},
		{
			// 2008-12-29 and -30 are both in ISO week 2009-W01.
			name: "same ISO week across year boundary",
			g:    ByWeek,
			a:    time.Date(2008, 12, 29, 3, 4, 5, 0, time.UTC),
			b:    time.Date(2008, 12, 30, 4, 5, 6, 0, time.UTC),
			same: true,
		},
		{
			// 2008-12-28 is a Sunday, the last day of ISO week 2008-W52.
			name: "ISO week boundary on Monday",
			g:    ByWeek,
			a:    time.Date(2008, 12, 28, 0, 0, 0, 0, time.UTC),
			b:    time.Date(2008, 12, 29, 0, 0, 0, 0, time.UTC),
			same: false,
		},
		{
			name: "same month",
			g:    ByMonth,
			a:    time.Date(2009, 12, 29, 3, 4, 5, 0, time.UTC),
			b:    time.Date(2009, 12, 30, 4, 5, 6, 0, time.UTC),
			same: true,
		},
		{
			name: "months differ",
			g:    ByMonth,
			a:    time.Date(2009, 11, 29, 0, 0, 0, 0, time.UTC),
			b:    time.Date(2009, 12, 29, 0, 0, 0, 0, time.UTC),
			same: false,
		},
		{
			name: "same year",
			g:    ByYear,
			a:    time.Date(2009, 11, 29, 3, 4, 5, 0, time.UTC),
			b:    time.Date(2009, 12, 30, 4, 5, 6, 0, time.UTC),
			same: true,
		},
		{
			name: "years differ",
			g:    ByYear,
			a:    time.Date(2008, 12, 29, 0, 0, 0, 0, time.UTC),
			b:    time.Date(2009, 12, 29, 0, 0, 0, 0, time.UTC),
			same: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ka, kb := tt.g.BucketKey(tt.a), tt.g.BucketKey(tt.b)
			if tt.same {
				assert.Equal(t, ka, kb)
			} else {
				assert.NotEqual(t, ka, kb)
			}
		})
	}
}

func TestNamesToKeep(t *testing.T) {
	spec := KeepSpec{Granularity: ByMonth, Count: 2}

	t.Run("one per bucket until count", func(t *testing.T) {
		arcs := []Archive{
			arc("1", 2000, 3, 15),
			arc("2", 2000, 3, 1),
			arc("3", 2000, 2, 15),
			arc("4", 2000, 2, 1),
			arc("5", 2000, 1, 15),
		}
		assert.Equal(t, []string{"1", "3"}, NamesToKeep(arcs, spec))
	})

	t.Run("sparse buckets", func(t *testing.T) {
		arcs := []Archive{
			arc("1", 2010, 2, 15),
			arc("2", 2000, 2, 1),
			arc("3", 2000, 1, 15),
		}
		assert.Equal(t, []string{"1", "2"}, NamesToKeep(arcs, spec))
	})

	t.Run("fewer archives than count", func(t *testing.T) {
		assert.Equal(t, []string{"1"}, NamesToKeep([]Archive{arc("1", 2010, 2, 15)}, spec))
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, NamesToKeep(nil, spec))
	})

	t.Run("zero count keeps nothing", func(t *testing.T) {
		assert.Empty(t, NamesToKeep([]Archive{arc("1", 2010, 2, 15)},
			KeepSpec{Granularity: ByMonth, Count: 0}))
	})
}

func TestNamesToDelete(t *testing.T) {
	t.Run("union of keep specs", func(t *testing.T) {
		arcs := []Archive{
			arc("4", 1999, 1, 2),
			arc("5", 1999, 1, 1),
			arc("6", 1998, 1, 1),
			arc("1", 2000, 1, 31),
			arc("2", 2000, 1, 30),
			arc("3", 2000, 1, 29),
		}
		specs := []KeepSpec{
			{Granularity: ByDay, Count: 2},
			{Granularity: ByYear, Count: 2},
		}
		assert.Equal(t, []string{"3", "5", "6"}, NamesToDelete(arcs, specs))
	})

	t.Run("no specs deletes everything", func(t *testing.T) {
		assert.Equal(t, []string{"1"}, NamesToDelete([]Archive{arc("1", 2000, 1, 1)}, nil))
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, NamesToDelete(nil, nil))
	})

	t.Run("input order does not matter", func(t *testing.T) {
		shuffled := []Archive{
			arc("2", 2000, 1, 30),
			arc("1", 2000, 1, 31),
		}
		specs := []KeepSpec{{Granularity: ByDay, Count: 1}}
		assert.Equal(t, []string{"2"}, NamesToDelete(shuffled, specs))
	})
}
