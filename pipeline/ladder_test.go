package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func labels(targets []Target) []string {
	var out []string
	for _, t := range targets {
		out = append(out, t.Label())
	}
	return out
}

func TestSelectTargets(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		sourceHeight int
		want         []string
	}{
		{1080, []string{"1080p", "720p", "480p", "360p", "240p"}},
		{2160, []string{"1080p", "720p", "480p", "360p", "240p"}},
		{720, []string{"720p", "480p", "360p", "240p"}},
		{480, []string{"480p", "360p", "240p"}},
		{360, []string{"360p", "240p"}},
		{240, []string{"240p"}},
		{200, nil},
		{0, nil},
	}

	for _, tt := range tests {
		got := cfg.SelectTargets(tt.sourceHeight)
		assert.Equal(t, tt.want, labels(got), "source height %d", tt.sourceHeight)
	}
}

func TestSelectTargetsTolerance(t *testing.T) {
	cfg := DefaultConfig()

	// a source a handful of pixels short of a rung still gets that rung
	assert.Contains(t, labels(cfg.SelectTargets(1074)), "1080p")
	assert.NotContains(t, labels(cfg.SelectTargets(1073)), "1080p")
	assert.Equal(t, []string{"240p"}, labels(cfg.SelectTargets(234)))
	assert.Empty(t, cfg.SelectTargets(233))
}

func TestSelectTargetsPreservesLadderOrder(t *testing.T) {
	cfg := DefaultConfig()
	got := labels(cfg.SelectTargets(10000))
	assert.Equal(t, []string{"1080p", "720p", "480p", "360p", "240p"}, got)
}
