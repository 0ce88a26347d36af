package pipeline

import (
	"context"
	"time"

	"vod-site/ffmpeg"
)

// ProbeFunc inspects a source file. Swappable so tests don't need the
// ffprobe binary.
type ProbeFunc func(path string) (ffmpeg.Metadata, error)

// EncodeFunc produces one rendition of src at dst.
type EncodeFunc func(ctx context.Context, src, dst string, height int, prof ffmpeg.EncodeProfile) error

// Config is the immutable knob set for one pipeline instance.
type Config struct {
	// OutputRoot is the directory renditions are published under, one
	// subdirectory per video.
	OutputRoot string

	// Ladder is the ordered candidate rendition heights.
	Ladder []int

	// HeightTolerance lets a source a few pixels short of a rung still
	// produce that rung.
	HeightTolerance int

	// MaxDuration rejects uploads longer than this many seconds before
	// any transcoding starts.
	MaxDuration int

	// JobTimeout is the wall-clock cap per transcode job; expiry counts
	// as that job failing.
	JobTimeout time.Duration

	Profile ffmpeg.EncodeProfile

	// Probe and Encode default to the ffmpeg package; tests stub them.
	Probe  ProbeFunc
	Encode EncodeFunc
}

func DefaultConfig() Config {
	return Config{
		Ladder:          []int{1080, 720, 480, 360, 240},
		HeightTolerance: 6,
		MaxDuration:     6000,
		JobTimeout:      30 * time.Minute,
		Profile:         ffmpeg.DefaultProfile(),
	}
}
