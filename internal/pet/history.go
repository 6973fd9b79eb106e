package pet

type ActionKind string

const (
	ActionPet   ActionKind = "pet"
	ActionFeed  ActionKind = "feed"
	ActionPunch ActionKind = "punch"
	ActionBathe ActionKind = "bathe"
)

// Actions lists the built-in actions in button order.
var Actions = []ActionKind{ActionPet, ActionFeed, ActionPunch, ActionBathe}

func ParseAction(s string) (ActionKind, bool) {
	for _, a := range Actions {
		if string(a) == s {
			return a, true
		}
	}
	return "", false
}

// Counter names a consumption counter bumped by an item.
type Counter string

const (
	CounterNone      Counter = ""
	CounterFish      Counter = "fish"
	CounterCatnip    Counter = "catnip"
	CounterMilk      Counter = "milk"
	CounterChocolate Counter = "chocolate"
)

func KnownCounter(c Counter) bool {
	switch c {
	case CounterNone, CounterFish, CounterCatnip, CounterMilk, CounterChocolate:
		return true
	}
	return false
}

// OverfeedThreshold is the pre-feed hunger above which a feed counts as overfeeding.
const OverfeedThreshold = 80.0

type History struct {
	PetCount       int `json:"petCount" toml:"petCount"`
	PunchCount     int `json:"punchCount" toml:"punchCount"`
	FishEaten      int `json:"fishEaten" toml:"fishEaten"`
	CatnipUsed     int `json:"catnipUsed" toml:"catnipUsed"`
	MilkDrunk      int `json:"milkDrunk" toml:"milkDrunk"`
	ChocolateEaten int `json:"chocolateEaten" toml:"chocolateEaten"`
	Overfeeding    int `json:"overfeeding" toml:"overfeeding"`

	// PunchPetRatio is only refreshed when traits are evaluated.
	PunchPetRatio float64 `json:"punchPetRatio" toml:"punchPetRatio"`

	// Dwell timers, in seconds of continuous time in the state.
	LowHealthTime       float64 `json:"lowHealthTime" toml:"lowHealthTime"`
	LowHappinessTime    float64 `json:"lowHappinessTime" toml:"lowHappinessTime"`
	LowCleanlinessTime  float64 `json:"lowCleanlinessTime" toml:"lowCleanlinessTime"`
	HighCleanlinessTime float64 `json:"highCleanlinessTime" toml:"highCleanlinessTime"`
	AllStatsLowTime     float64 `json:"allStatsLowTime" toml:"allStatsLowTime"`
	AllStatsHighTime    float64 `json:"allStatsHighTime" toml:"allStatsHighTime"`

	IsDead bool `json:"isDead" toml:"isDead"`
}

// OnAction records a built-in action. before is the vitals snapshot taken
// prior to applying the action's deltas.
func (h *History) OnAction(kind ActionKind, before Vitals) {
	switch kind {
	case ActionPet:
		h.PetCount++
	case ActionPunch:
		h.PunchCount++
	case ActionFeed:
		if before.Hunger > OverfeedThreshold {
			h.Overfeeding++
		}
	}
}

func (h *History) OnConsume(c Counter) {
	switch c {
	case CounterFish:
		h.FishEaten++
	case CounterCatnip:
		h.CatnipUsed++
	case CounterMilk:
		h.MilkDrunk++
	case CounterChocolate:
		h.ChocolateEaten++
	}
}

// OnTick advances every dwell timer whose condition holds for v and zeroes
// the rest.
func (h *History) OnTick(dt float64, v Vitals) {
	h.LowHappinessTime = dwell(h.LowHappinessTime, dt, v.Happiness <= LowThreshold)
	h.LowHealthTime = dwell(h.LowHealthTime, dt, v.Health <= LowThreshold)
	h.LowCleanlinessTime = dwell(h.LowCleanlinessTime, dt, v.Cleanliness <= LowThreshold)
	h.HighCleanlinessTime = dwell(h.HighCleanlinessTime, dt, v.Cleanliness >= HighThreshold)
	h.AllStatsHighTime = dwell(h.AllStatsHighTime, dt, v.AllAtLeast(HighThreshold))
	h.AllStatsLowTime = dwell(h.AllStatsLowTime, dt, v.AllAtMost(LowThreshold))
}

// Ratio is punches per pet, with pets floored at one.
func (h History) Ratio() float64 {
	pets := h.PetCount
	if pets < 1 {
		pets = 1
	}
	return float64(h.PunchCount) / float64(pets)
}

func dwell(current, dt float64, holds bool) float64 {
	if !holds {
		return 0
	}
	return current + dt
}
