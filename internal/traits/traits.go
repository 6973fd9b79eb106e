package traits

import (
	"strings"

	"github.com/sethgrid/catflip/internal/pet"
)

type ID string

// Declaration order matters: it decides which traits survive when fewer
// slots are unlocked than traits qualify.
const (
	Masochistic ID = "masochistic"
	Sickly      ID = "sickly"
	Glutton     ID = "glutton"
	Emo         ID = "emo"
	Depressed   ID = "depressed"
	Fulfilled   ID = "fulfilled"
	Messy       ID = "messy"
	ReallyClean ID = "reallyClean"
	FishYum     ID = "fishYum"
	Druggie     ID = "druggie"
	KittenUwu   ID = "kittenUwu"
	Dead        ID = "dead"
)

const (
	MasochistRatio   = 0.7
	MasochistPunches = 5
	GluttonFeeds     = 10
)

type predicate func(h pet.History, v pet.Vitals) bool

var ordered = []struct {
	id   ID
	test predicate
}{
	{Masochistic, func(h pet.History, _ pet.Vitals) bool {
		return h.Ratio() > MasochistRatio && h.PunchCount > MasochistPunches
	}},
	{Sickly, func(_ pet.History, v pet.Vitals) bool { return v.Health <= pet.LowThreshold }},
	{Glutton, func(h pet.History, _ pet.Vitals) bool { return h.Overfeeding > GluttonFeeds }},
	{Emo, func(_ pet.History, v pet.Vitals) bool { return v.Happiness <= pet.LowThreshold }},
	{Depressed, func(_ pet.History, v pet.Vitals) bool { return v.AllAtMost(pet.LowThreshold) }},
	{Fulfilled, func(_ pet.History, v pet.Vitals) bool { return v.AllAtLeast(pet.HighThreshold) }},
	{Messy, func(_ pet.History, v pet.Vitals) bool { return v.Cleanliness <= pet.LowThreshold }},
	{ReallyClean, func(_ pet.History, v pet.Vitals) bool { return v.Cleanliness >= pet.HighThreshold }},
	{FishYum, func(h pet.History, _ pet.Vitals) bool { return h.FishEaten > 0 }},
	{Druggie, func(h pet.History, _ pet.Vitals) bool { return h.CatnipUsed > 0 }},
	{KittenUwu, func(h pet.History, _ pet.Vitals) bool { return h.MilkDrunk > 0 }},
	{Dead, func(h pet.History, _ pet.Vitals) bool { return h.IsDead }},
}

// All returns every trait id in declaration order.
func All() []ID {
	ids := make([]ID, 0, len(ordered))
	for _, t := range ordered {
		ids = append(ids, t.id)
	}
	return ids
}

func Known(id ID) bool {
	for _, t := range ordered {
		if t.id == id {
			return true
		}
	}
	return false
}

// Evaluate returns the qualifying traits for a pet, in declaration order,
// capped at slots. Vitals are the pet's live values at the moment of the
// call.
func Evaluate(h pet.History, v pet.Vitals, slots int) []ID {
	if slots < 1 {
		return []ID{}
	}

	var found []ID
	for _, t := range ordered {
		if !t.test(h, v) {
			continue
		}
		if contains(found, t.id) {
			continue
		}
		found = append(found, t.id)
		if len(found) == slots {
			break
		}
	}

	if found == nil {
		return []ID{}
	}
	return found
}

func contains(slice []ID, item ID) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

func Strings(ids []ID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}

func FromStrings(ss []string) []ID {
	out := make([]ID, len(ss))
	for i, s := range ss {
		out[i] = ID(s)
	}
	return out
}

// Format renders trait ids as a comma-separated list of display names.
// names may be nil; unknown ids fall back to the raw id.
func Format(ids []ID, names func(ID) string) string {
	if len(ids) == 0 {
		return "no traits"
	}

	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		name := ""
		if names != nil {
			name = names(id)
		}
		if name == "" {
			name = string(id)
		}
		parts = append(parts, name)
	}
	return strings.Join(parts, ", ")
}
