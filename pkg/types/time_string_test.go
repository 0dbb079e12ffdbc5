package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr bool
	}{
		{name: "hh:mm", input: "09:30", want: "09:30"},
		{name: "hh:mm:ss from postgres", input: "18:00:00", want: "18:00"},
		{name: "surrounding spaces", input: " 10:15 ", want: "10:15"},
		{name: "single-digit hour", input: "9:00", want: "09:00"},
		{name: "out of range", input: "25:00", wantErr: true},
		{name: "garbage", input: "nine", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_Validate(t *testing.T) {
	assert.NoError(t, TimeString("09:00").Validate())
	assert.ErrorIs(t, TimeString("9:00").Validate(), ErrInvalidTimeString)
	assert.ErrorIs(t, TimeString("09:00:00").Validate(), ErrInvalidTimeString)
	assert.ErrorIs(t, TimeString("").Validate(), ErrInvalidTimeString)
}

func TestTimeString_Arithmetic(t *testing.T) {
	start := TimeString("16:45")

	assert.Equal(t, 16*60+45, start.Minutes())
	assert.Equal(t, TimeString("18:00"), start.AddMinutes(75))
	assert.Equal(t, TimeString("23:59"), start.AddMinutes(24*60))
	assert.True(t, start.IsBefore("17:00"))
	assert.True(t, start.IsAfter("09:00"))
	assert.False(t, start.IsBefore("16:45"))
}

func TestTimeString_On(t *testing.T) {
	athens, err := time.LoadLocation("Europe/Athens")
	require.NoError(t, err)

	date := time.Date(2025, time.October, 13, 0, 0, 0, 0, time.UTC)
	got := TimeString("09:30").On(date, athens)

	assert.Equal(t, time.Date(2025, time.October, 13, 6, 30, 0, 0, time.UTC), got.UTC())
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan([]byte("08:00:00")))
	assert.Equal(t, TimeString("08:00"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}
