package pipeline

import "math"

// EstimateProcessingTime buckets a rough transcode-time guess into a
// human label, the same heuristic exposed by the upload and status
// responses.
func EstimateProcessingTime(durationSeconds, qualityCount int) string {
	base := float64(durationSeconds) * 2.5
	total := base * float64(qualityCount) * 0.8
	minutes := int(math.Ceil(total / 60))

	switch {
	case minutes <= 1:
		return "1-2 minutes"
	case minutes <= 5:
		return "2-5 minutes"
	case minutes <= 10:
		return "5-10 minutes"
	case minutes <= 20:
		return "10-20 minutes"
	default:
		return "20+ minutes"
	}
}
