package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPeriod(t *testing.T) {
	start := time.Date(2024, 3, 1, 15, 30, 0, 0, time.UTC)
	end := time.Date(2024, 3, 14, 8, 0, 0, 0, time.UTC)

	p, err := NewPeriod(start, end)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", p.StartDate())
	assert.Equal(t, "2024-03-14", p.EndDate())

	_, err = NewPeriod(end, start)
	assert.ErrorIs(t, err, ErrInvalidPeriod)

	_, err = NewPeriod(time.Time{}, end)
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestTrailingWindow(t *testing.T) {
	now := time.Date(2024, 3, 14, 23, 59, 0, 0, time.UTC)

	p := TrailingWindow(now, 14)
	assert.Equal(t, "2024-03-01", p.StartDate())
	assert.Equal(t, "2024-03-14", p.EndDate())
}

func TestCurrentMonth(t *testing.T) {
	now := time.Date(2024, 2, 29, 10, 0, 0, 0, time.UTC)

	p := CurrentMonth(now)
	assert.Equal(t, "2024-02-01", p.StartDate())
	assert.Equal(t, "2024-02-29", p.EndDate())
}

func TestDay(t *testing.T) {
	brt := time.FixedZone("UTC-3", -3*60*60)

	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{name: "Noite local mantém a data local", in: time.Date(2025, 3, 10, 22, 0, 0, 0, brt), want: "2025-03-10"},
		{name: "Madrugada local", in: time.Date(2025, 3, 11, 1, 0, 0, 0, brt), want: "2025-03-11"},
		{name: "UTC", in: time.Date(2025, 3, 10, 23, 59, 0, 0, time.UTC), want: "2025-03-10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Day(tt.in)
			assert.Equal(t, tt.want, got.Format(time.DateOnly))
			assert.Equal(t, time.UTC, got.Location())
		})
	}

	assert.Equal(t, "2025-03-10", TrailingWindow(time.Date(2025, 3, 10, 22, 0, 0, 0, brt), 14).EndDate())
}
