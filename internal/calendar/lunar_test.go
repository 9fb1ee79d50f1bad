package calendar

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhaseTimeKnownMoons(t *testing.T) {
	tests := []struct {
		name  string
		k     float64
		phase moonPhase
		want  time.Time
	}{
		{"new moon 2000-01-06", 0, newMoon, time.Date(2000, 1, 6, 18, 14, 0, 0, time.UTC)},
		{"new moon 2024-03-10", 299, newMoon, time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)},
		{"full moon 2024-03-25", 299, fullMoon, time.Date(2024, 3, 25, 7, 0, 0, 0, time.UTC)},
		{"new moon 2024-04-08", 300, newMoon, time.Date(2024, 4, 8, 18, 21, 0, 0, time.UTC)},
		{"full moon 2024-04-23", 300, fullMoon, time.Date(2024, 4, 23, 23, 49, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := phaseTime(tt.k, tt.phase)
			assert.WithinDuration(t, tt.want, got, 15*time.Minute)
		})
	}
}

func TestAstronomicalLunarDate(t *testing.T) {
	calc := NewAstronomicalCalculator()
	tests := []struct {
		date string
		want LunarDate
	}{
		{"2024-03-25", LunarDate{Phase: Waxing, Day: 15}},
		{"2024-03-26", LunarDate{Phase: Waning, Day: 1}},
		{"2024-04-02", LunarDate{Phase: Waning, Day: 8}},
		{"2024-04-09", LunarDate{Phase: Waning, Day: 15, LastDay: true}},
		{"2024-04-10", LunarDate{Phase: Waxing, Day: 1}},
		{"2024-04-17", LunarDate{Phase: Waxing, Day: 8}},
		{"2024-04-24", LunarDate{Phase: Waxing, Day: 15}},
	}
	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			d, err := time.ParseInLocation(DateLayout, tt.date, ThaiTime)
			require.NoError(t, err)
			got, err := calc.LunarDate(d.Add(12 * time.Hour))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAstronomicalOutOfRange(t *testing.T) {
	_, err := NewAstronomicalCalculator().LunarDate(time.Date(1600, 1, 1, 12, 0, 0, 0, ThaiTime))
	assert.Error(t, err)
}

func TestLunarSourceApril2024(t *testing.T) {
	src := &LunarSource{Calculator: NewAstronomicalCalculator()}
	obs, err := src.Observances(context.Background(), 2024, 4)
	require.NoError(t, err)
	assert.Equal(t, DefaultFallbackTable().Lookup(2024, 4), obs)
}

func TestLunarDateLabel(t *testing.T) {
	assert.Equal(t, "วันพระ ขึ้น 15 ค่ำ", LunarDate{Phase: Waxing, Day: 15}.Label())
	assert.Equal(t, "วันพระ แรม 14 ค่ำ", LunarDate{Phase: Waning, Day: 14, LastDay: true}.Label())
	assert.Equal(t, "แรม 14 ค่ำ", LunarDate{Phase: Waning, Day: 14}.Label())
	assert.False(t, LunarDate{Phase: Waxing, Day: 7}.HolyDay())
}

func TestUnavailableCalculator(t *testing.T) {
	_, err := UnavailableCalculator{}.LunarDate(time.Now())
	assert.ErrorIs(t, err, ErrCalculatorUnavailable)
}
