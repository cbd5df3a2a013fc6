package tracking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, minute int) time.Time {
	return time.Date(2025, 6, 2, hour, minute, 0, 0, time.UTC)
}

func TestWithinOfficeHours_Boundaries(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		want bool
	}{
		{"one minute before open", at(10, 29), false},
		{"opening minute", at(10, 30), true},
		{"mid day", at(14, 0), true},
		{"closing minute", at(18, 30), true},
		{"one minute after close", at(18, 31), false},
		{"midnight", at(0, 0), false},
		{"late evening", at(22, 45), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WithinOfficeHours(tt.t))
		})
	}
}

func TestWithinOfficeHours_SecondsIgnored(t *testing.T) {
	// 18:30:59 is still inside; the gate works at minute granularity
	assert.True(t, WithinOfficeHours(time.Date(2025, 6, 2, 18, 30, 59, 0, time.UTC)))
	assert.False(t, WithinOfficeHours(time.Date(2025, 6, 2, 10, 29, 59, 0, time.UTC)))
}

func TestGateStateAt(t *testing.T) {
	assert.Equal(t, GateInside, GateStateAt(at(12, 0)))
	assert.Equal(t, GateOutside, GateStateAt(at(9, 0)))
}
