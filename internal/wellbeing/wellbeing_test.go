package wellbeing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sethgrid/catflip/internal/pet"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name   string
		vitals pet.Vitals
		mode   ComputationMode
		want   float64
	}{
		{"defaults average", pet.NewVitals(), ComputationAverage, 50},
		{"defaults weighted", pet.NewVitals(), ComputationWeighted, 50},
		{"unknown mode averages", pet.Vitals{Happiness: 100, Hunger: 0, Cleanliness: 100, Health: 0}, "", 50},
		{"weighted favours mood and health", pet.Vitals{Happiness: 100, Hunger: 0, Cleanliness: 0, Health: 100}, ComputationWeighted, 70},
		{"all max", pet.Vitals{Happiness: 100, Hunger: 100, Cleanliness: 100, Health: 100}, ComputationWeighted, 100},
		{"all min", pet.Vitals{}, ComputationAverage, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Compute(tt.vitals, tt.mode), 1e-9)
		})
	}
}

func TestIndicator(t *testing.T) {
	assert.Contains(t, Indicator(90, false), "\033[32m")
	assert.Contains(t, Indicator(10, false), "\033[31m")
	assert.Contains(t, Indicator(90, true), "✖")
	assert.True(t, strings.HasSuffix(Indicator(50, false), resetCode))
}
