package progression

import (
	"math"

	courseModels "seb/models/course"
)

// ComputeProgress returns the completion percentage (0-100) for a course
// tree and a viewer's completion facts. It is always recomputed from the
// raw facts at read time; stored percentages are display-only denormalized
// copies and are never trusted here.
func ComputeProgress(tree []ModuleTree, completions map[uint]courseModels.ChapterProgress) int {
	total := 0
	completed := 0
	for _, mt := range tree {
		for _, ch := range mt.Chapters {
			total++
			if p, ok := completions[ch.ID]; ok && p.IsCompleted {
				completed++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}
