package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPeriod_Days(t *testing.T) {
	tests := []struct {
		name   string
		period Period
		want   int
	}{
		{name: "three days", period: NewPeriod(date(2024, 1, 1), date(2024, 1, 4)), want: 3},
		{name: "same day", period: NewPeriod(date(2024, 1, 1), date(2024, 1, 1)), want: 0},
		{name: "leap february", period: NewPeriod(date(2024, 2, 1), date(2024, 3, 1)), want: 29},
		{name: "missing start", period: Period{End: ptr(date(2024, 1, 4))}, want: 0},
		{
			name: "across a DST change",
			period: func() Period {
				loc, err := time.LoadLocation("America/New_York")
				if err != nil {
					loc = time.UTC
				}
				return NewPeriod(time.Date(2024, 3, 9, 12, 0, 0, 0, loc), time.Date(2024, 3, 12, 12, 0, 0, 0, loc))
			}(),
			want: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.period.Days())
		})
	}
}

func TestPeriod_Months(t *testing.T) {
	tests := []struct {
		name   string
		period Period
		want   int
	}{
		{name: "exactly two months", period: NewPeriod(date(2024, 1, 1), date(2024, 3, 1)), want: 2},
		{name: "one month and ten days", period: NewPeriod(date(2024, 1, 1), date(2024, 2, 11)), want: 1},
		{name: "one day short", period: NewPeriod(date(2024, 1, 10), date(2024, 2, 9)), want: 0},
		{name: "end of month clamps", period: NewPeriod(date(2024, 1, 31), date(2024, 2, 29)), want: 1},
		{name: "across year", period: NewPeriod(date(2023, 11, 15), date(2024, 2, 15)), want: 3},
		{name: "inverted", period: NewPeriod(date(2024, 3, 1), date(2024, 1, 1)), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.period.Months())
		})
	}
}

func TestPeriod_Weeks(t *testing.T) {
	assert.Equal(t, 0, NewPeriod(date(2024, 1, 1), date(2024, 1, 7)).Weeks())
	assert.Equal(t, 1, NewPeriod(date(2024, 1, 1), date(2024, 1, 8)).Weeks())
	assert.Equal(t, 2, NewPeriod(date(2024, 1, 1), date(2024, 1, 21)).Weeks())
}
