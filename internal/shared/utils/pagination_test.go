package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeOffsetLimit(t *testing.T) {
	tests := []struct {
		name       string
		offset     int
		limit      int
		max        int
		wantOffset int
		wantLimit  int
	}{
		{"in range", 10, 20, 100, 10, 20},
		{"negative offset", -5, 20, 100, 0, 20},
		{"zero limit", 0, 0, 100, 0, 100},
		{"negative limit", 0, -1, 100, 0, 100},
		{"limit above max", 0, 500, 100, 0, 100},
		{"limit at max", 0, 100, 100, 0, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, limit := NormalizeOffsetLimit(tt.offset, tt.limit, tt.max)
			assert.Equal(t, tt.wantOffset, offset)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}
