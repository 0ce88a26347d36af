package pipeline

import "errors"

// Validation failures: rejected before any transcoding, user-correctable,
// the raw upload is deleted immediately.
var (
	ErrDurationExceeded    = errors.New("video duration exceeds the upload limit")
	ErrNoAudioTrack        = errors.New("video has no audio track")
	ErrInsufficientQuality = errors.New("video quality is too low for processing")
)

// ErrAllQualitiesFailed means every transcode job failed; partial
// artifacts are removed and no video record is created.
var ErrAllQualitiesFailed = errors.New("all transcode jobs failed")

// IsValidation reports whether err is a pre-transcode rejection the
// client can correct, as opposed to a processing failure on our side.
func IsValidation(err error) bool {
	return errors.Is(err, ErrDurationExceeded) ||
		errors.Is(err, ErrNoAudioTrack) ||
		errors.Is(err, ErrInsufficientQuality)
}
