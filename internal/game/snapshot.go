package game

import (
	"maps"
	"slices"

	"github.com/sethgrid/catflip/internal/catalog"
	"github.com/sethgrid/catflip/internal/market"
	"github.com/sethgrid/catflip/internal/pet"
	"github.com/sethgrid/catflip/internal/traits"
)

// PetSnapshot is a read-only copy of the current cat.
type PetSnapshot struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Age         float64           `json:"age"`
	Vitals      pet.Vitals        `json:"vitals"`
	IsDead      bool              `json:"isDead"`
	Accessories []string          `json:"accessories"`
	Traits      []traits.ID       `json:"traits"`
	Flags       map[pet.Flag]bool `json:"flags"`
	History     pet.History       `json:"history"`
}

type GameSnapshot struct {
	TurnsLeft          int                 `json:"turnsLeft"`
	Money              int                 `json:"money"`
	UnlockedTraitSlots int                 `json:"unlockedTraitSlots"`
	Phase              Phase               `json:"phase"`
	Inventory          map[string]int      `json:"inventory"`
	PotentialBuyers    []catalog.BuyerType `json:"potentialBuyers"`
	Offers             []market.Offer      `json:"offers"`
	SoldCats           []SoldCat           `json:"soldCats"`
}

func (s *Session) Pet() PetSnapshot {
	p := s.pet
	return PetSnapshot{
		ID:          p.ID,
		Name:        p.Name,
		Age:         p.Age,
		Vitals:      p.Vitals,
		IsDead:      p.IsDead,
		Accessories: slices.Clone(p.Accessories),
		Traits:      s.petTraits(),
		Flags:       p.Flags.Snapshot(),
		History:     p.History,
	}
}

func (s *Session) Game() GameSnapshot {
	g := s.game
	sold := make([]SoldCat, 0, len(g.SoldCats))
	for _, c := range g.SoldCats {
		c.Traits = slices.Clone(c.Traits)
		sold = append(sold, c)
	}
	return GameSnapshot{
		TurnsLeft:          g.TurnsLeft,
		Money:              g.Money,
		UnlockedTraitSlots: g.UnlockedTraitSlots,
		Phase:              g.Phase,
		Inventory:          maps.Clone(g.Inventory),
		PotentialBuyers:    slices.Clone(g.PotentialBuyers),
		Offers:             s.Offers(),
		SoldCats:           sold,
	}
}
