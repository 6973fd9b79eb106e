package pet

import (
	"math/rand"
	"slices"

	"github.com/google/uuid"
)

var catNames = []string{
	"Luna", "Oliver", "Leo", "Bella", "Charlie", "Lucy", "Milo", "Nala",
	"Simba", "Tiger", "Shadow", "Smokey", "Ginger", "Coco", "Pepper", "Mocha",
	"Midnight", "Snowball", "Whiskers", "Pumpkin", "Cookie", "Muffin", "Cupcake",
	"Pancake", "Waffle", "Donut", "Bagel", "Pretzel", "Cinnamon", "Nutmeg", "Oreo",
}

// Names returns a copy of the built-in name pool.
func Names() []string {
	return slices.Clone(catNames)
}

func RandomName(rng *rand.Rand, pool []string) string {
	if len(pool) == 0 {
		pool = catNames
	}
	return pool[rng.Intn(len(pool))]
}

type PetState struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Age  float64 `json:"age"`

	Vitals Vitals `json:"vitals"`
	IsDead bool   `json:"isDead"`

	Accessories []string `json:"accessories"`
	Traits      []string `json:"traits"`

	Flags   Flags   `json:"-"`
	History History `json:"history"`
}

// New returns a fresh pet with default vitals and empty history.
func New(name string) *PetState {
	return &PetState{
		ID:          uuid.NewString(),
		Name:        name,
		Vitals:      NewVitals(),
		Accessories: []string{},
		Traits:      []string{},
	}
}

// ApplyDelta routes a gameplay mutation through the clamped vitals. Dead
// pets are frozen.
func (p *PetState) ApplyDelta(s Stat, amount float64) {
	if p.IsDead {
		return
	}
	p.Vitals.ApplyDelta(s, amount)
}

func (p *PetState) SetStat(s Stat, value float64) {
	if p.IsDead {
		return
	}
	p.Vitals.Set(s, value)
}

// Kill is one-way.
func (p *PetState) Kill() {
	p.IsDead = true
	p.History.IsDead = true
}

func (p *PetState) HasAccessory(id string) bool {
	return slices.Contains(p.Accessories, id)
}

// AddAccessory keeps Accessories a set; it reports whether id was new.
func (p *PetState) AddAccessory(id string) bool {
	if p.HasAccessory(id) {
		return false
	}
	p.Accessories = append(p.Accessories, id)
	return true
}
