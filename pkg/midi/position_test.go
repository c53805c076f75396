package midi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuarterPosition(t *testing.T) {
	tests := []struct {
		tick uint64
		bar  uint64
		beat int
	}{
		{0, 0, 0},
		{90, 0, 0},
		{480, 0, 1},
		{960, 0, 2},
		{1919, 0, 3},
		{1920, 1, 0},
		{4800, 2, 2},
	}

	for _, tt := range tests {
		bar, beat := QuarterPosition(tt.tick, 480)
		assert.Equal(t, tt.bar, bar, "tick %d", tt.tick)
		assert.Equal(t, tt.beat, beat, "tick %d", tt.tick)
	}

	bar, beat := QuarterPosition(100, 0)
	assert.Equal(t, uint64(0), bar)
	assert.Equal(t, 0, beat)
}
