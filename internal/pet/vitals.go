package pet

const (
	MinVital     = 0.0
	MaxVital     = 100.0
	DefaultVital = 50.0

	// LowThreshold and HighThreshold bound the "low" and "high" bands used by
	// dwell timers and traits. Both are inclusive.
	LowThreshold  = 30.0
	HighThreshold = 70.0
)

type Stat string

const (
	StatHappiness   Stat = "happiness"
	StatHunger      Stat = "hunger"
	StatCleanliness Stat = "cleanliness"
	StatHealth      Stat = "health"
)

// Stats lists the vitals in display order.
var Stats = []Stat{StatHappiness, StatHunger, StatCleanliness, StatHealth}

type Vitals struct {
	Happiness   float64 `json:"happiness" toml:"happiness"`
	Hunger      float64 `json:"hunger" toml:"hunger"`
	Cleanliness float64 `json:"cleanliness" toml:"cleanliness"`
	Health      float64 `json:"health" toml:"health"`
}

func NewVitals() Vitals {
	return Vitals{
		Happiness:   DefaultVital,
		Hunger:      DefaultVital,
		Cleanliness: DefaultVital,
		Health:      DefaultVital,
	}
}

func (v Vitals) Get(s Stat) float64 {
	switch s {
	case StatHappiness:
		return v.Happiness
	case StatHunger:
		return v.Hunger
	case StatCleanliness:
		return v.Cleanliness
	case StatHealth:
		return v.Health
	}
	return 0
}

// Set stores value clamped to [0, 100]. Unknown stats are ignored.
func (v *Vitals) Set(s Stat, value float64) {
	value = clamp(value, MinVital, MaxVital)
	switch s {
	case StatHappiness:
		v.Happiness = value
	case StatHunger:
		v.Hunger = value
	case StatCleanliness:
		v.Cleanliness = value
	case StatHealth:
		v.Health = value
	}
}

// ApplyDelta adds amount to the stat, then clamps.
func (v *Vitals) ApplyDelta(s Stat, amount float64) {
	v.Set(s, v.Get(s)+amount)
}

func (v *Vitals) Clamp() {
	for _, s := range Stats {
		v.Set(s, v.Get(s))
	}
}

// AllAtMost reports whether every vital is <= limit.
func (v Vitals) AllAtMost(limit float64) bool {
	return v.Happiness <= limit && v.Hunger <= limit && v.Cleanliness <= limit && v.Health <= limit
}

// AllAtLeast reports whether every vital is >= limit.
func (v Vitals) AllAtLeast(limit float64) bool {
	return v.Happiness >= limit && v.Hunger >= limit && v.Cleanliness >= limit && v.Health >= limit
}

func clamp(value, min, max float64) float64 {
	// NaN compares false against everything; pin it to the floor.
	if value != value || value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
