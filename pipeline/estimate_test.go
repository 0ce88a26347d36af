package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateProcessingTime(t *testing.T) {
	tests := []struct {
		duration int
		count    int
		want     string
	}{
		{0, 5, "1-2 minutes"},
		{30, 1, "1-2 minutes"},
		{60, 1, "2-5 minutes"},
		{120, 1, "2-5 minutes"},
		{300, 1, "5-10 minutes"},
		{300, 2, "10-20 minutes"},
		{300, 5, "20+ minutes"},
		{6000, 5, "20+ minutes"},
	}

	for _, tt := range tests {
		got := EstimateProcessingTime(tt.duration, tt.count)
		assert.Equal(t, tt.want, got, "duration=%d count=%d", tt.duration, tt.count)
	}
}
