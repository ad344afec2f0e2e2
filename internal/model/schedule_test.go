package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var quarterly = Schedule{
	{Month: time.March, Day: 5},
	{Month: time.June, Day: 5},
	{Month: time.September, Day: 5},
	{Month: time.December, Day: 5},
}

func TestScheduleContains(t *testing.T) {
	assert.True(t, quarterly.Contains(Day(2024, time.June, 5)))
	assert.True(t, quarterly.Contains(Day(1987, time.June, 5)))
	assert.False(t, quarterly.Contains(Day(2024, time.June, 4)))
	assert.False(t, quarterly.Contains(Day(2024, time.July, 5)))
}

func TestScheduleCountBefore(t *testing.T) {
	tests := []struct {
		date time.Time
		want int
	}{
		{Day(2024, time.January, 15), 0},
		{Day(2024, time.March, 5), 0}, // on-slot dates are not missed
		{Day(2024, time.March, 6), 1},
		{Day(2024, time.July, 1), 2},
		{Day(2024, time.December, 31), 4},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, quarterly.CountBefore(tt.date), tt.date.Format("2006-01-02"))
	}
}

func TestScheduleDate(t *testing.T) {
	assert.Equal(t, Day(2025, time.September, 5), quarterly.Date(2025, 2))
	// Indexes wrap so flat weight sequences can cross year boundaries.
	assert.Equal(t, Day(2025, time.June, 5), quarterly.Date(2025, 5))
}
