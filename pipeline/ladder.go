package pipeline

import "fmt"

// Target is one candidate rendition height drawn from the ladder.
type Target struct {
	Height int
}

func (t Target) Label() string {
	return fmt.Sprintf("%dp", t.Height)
}

// SelectTargets keeps every ladder rung the source can legitimately
// produce: height <= source height + tolerance. Ladder order is
// preserved through to the published quality list. An empty result means
// the source is below the smallest rung and the upload is rejected.
func (c Config) SelectTargets(sourceHeight int) []Target {
	var targets []Target
	for _, height := range c.Ladder {
		if height <= sourceHeight+c.HeightTolerance {
			targets = append(targets, Target{Height: height})
		}
	}
	return targets
}
