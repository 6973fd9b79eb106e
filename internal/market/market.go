package market

import (
	"math/rand"
	"slices"

	"github.com/sethgrid/catflip/internal/catalog"
	"github.com/sethgrid/catflip/internal/traits"
)

// BuyersPerRound is how many buyers bid on each cat.
const BuyersPerRound = catalog.MinBuyerTypes

// GenerateBuyers draws n distinct buyer types uniformly at random. If the
// catalog has fewer than n types, all of them are returned in shuffled order.
func GenerateBuyers(rng *rand.Rand, types []catalog.BuyerType, n int) []catalog.BuyerType {
	if n > len(types) {
		n = len(types)
	}
	if n <= 0 {
		return []catalog.BuyerType{}
	}

	perm := rng.Perm(len(types))
	out := make([]catalog.BuyerType, 0, n)
	for _, i := range perm[:n] {
		out = append(out, types[i])
	}
	return out
}

// Matches returns the cat's traits the buyer is looking for, in the cat's
// trait order.
func Matches(buyer catalog.BuyerType, catTraits []traits.ID) []traits.ID {
	matched := []traits.ID{}
	for _, t := range catTraits {
		if slices.Contains(buyer.DesiredTraits, t) {
			matched = append(matched, t)
		}
	}
	return matched
}

// PriceFor is base price plus one bonus per matching trait.
func PriceFor(buyer catalog.BuyerType, catTraits []traits.ID) int {
	return buyer.BasePrice + len(Matches(buyer, catTraits))*buyer.TraitBonus
}

// Offer is a buyer's bid with its breakdown, for display.
type Offer struct {
	Buyer    catalog.BuyerType `json:"buyer"`
	Matching []traits.ID       `json:"matching"`
	Bonus    int               `json:"bonus"`
	Total    int               `json:"total"`
}

func Offers(buyers []catalog.BuyerType, catTraits []traits.ID) []Offer {
	out := make([]Offer, 0, len(buyers))
	for _, b := range buyers {
		matched := Matches(b, catTraits)
		bonus := len(matched) * b.TraitBonus
		out = append(out, Offer{
			Buyer:    b,
			Matching: matched,
			Bonus:    bonus,
			Total:    b.BasePrice + bonus,
		})
	}
	return out
}
