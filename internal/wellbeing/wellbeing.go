package wellbeing

import "github.com/sethgrid/catflip/internal/pet"

type ComputationMode string

const (
	ComputationAverage  ComputationMode = "average"
	ComputationWeighted ComputationMode = "weighted"
)

// SadThreshold is the score below which the cat is drawn looking miserable.
const SadThreshold = 40.0

// Compute folds the four vitals into a single 0-100 score for display. It
// has no effect on traits or prices.
func Compute(v pet.Vitals, mode ComputationMode) float64 {
	var score float64

	switch mode {
	case ComputationWeighted:
		score = v.Happiness*0.35 + v.Health*0.35 + v.Hunger*0.15 + v.Cleanliness*0.15
	default: // average
		score = (v.Happiness + v.Hunger + v.Cleanliness + v.Health) / 4
	}

	if score < pet.MinVital {
		score = pet.MinVital
	}
	if score > pet.MaxVital {
		score = pet.MaxVital
	}
	return score
}

const resetCode = "\033[0m"

// Indicator renders a coloured dot for the score. Dead cats get a gray cross.
func Indicator(score float64, dead bool) string {
	if dead {
		return "\033[90m✖" + resetCode
	}

	var colorCode string
	switch {
	case score >= 80:
		colorCode = "\033[32m" // green
	case score >= 60:
		colorCode = "\033[33m" // yellow
	case score >= 40:
		colorCode = "\033[93m"
	case score >= 20:
		colorCode = "\033[38;5;208m" // orange
	default:
		colorCode = "\033[31m" // red
	}
	return colorCode + "●" + resetCode
}
