package market

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sethgrid/catflip/internal/catalog"
	"github.com/sethgrid/catflip/internal/traits"
)

func TestPriceFor(t *testing.T) {
	buyer := catalog.BuyerType{
		ID:            "gothTeen",
		DesiredTraits: []traits.ID{traits.Emo, traits.Depressed, traits.Messy},
		BasePrice:     500,
		TraitBonus:    300,
	}

	tests := []struct {
		name   string
		traits []traits.ID
		want   int
	}{
		{name: "no traits", traits: nil, want: 500},
		{name: "no match", traits: []traits.ID{traits.FishYum}, want: 500},
		{name: "one match", traits: []traits.ID{traits.Emo}, want: 800},
		{name: "two matches", traits: []traits.ID{traits.Emo, traits.FishYum, traits.Depressed}, want: 1100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PriceFor(buyer, tt.traits))
		})
	}
}

func TestOffers(t *testing.T) {
	c := catalog.Default()
	offers := Offers(c.Buyers[:2], []traits.ID{traits.ReallyClean, traits.Emo})

	require.Len(t, offers, 2)
	assert.Equal(t, []traits.ID{traits.Emo}, offers[0].Matching)
	assert.Equal(t, 300, offers[0].Bonus)
	assert.Equal(t, 800, offers[0].Total)
	assert.Equal(t, []traits.ID{traits.ReallyClean}, offers[1].Matching)
	assert.Equal(t, 1200, offers[1].Total)
}

func TestGenerateBuyersDistinct(t *testing.T) {
	c := catalog.Default()
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 200; i++ {
		buyers := GenerateBuyers(rng, c.Buyers, BuyersPerRound)
		require.Len(t, buyers, BuyersPerRound)
		seen := map[string]bool{}
		for _, b := range buyers {
			assert.False(t, seen[b.ID], "duplicate buyer %s", b.ID)
			seen[b.ID] = true
		}
	}
}

func TestGenerateBuyersCoversEverySubset(t *testing.T) {
	c := catalog.Default()
	rng := rand.New(rand.NewSource(3))

	subsets := map[[5]bool]int{}
	for i := 0; i < 2000; i++ {
		var key [5]bool
		for _, b := range GenerateBuyers(rng, c.Buyers, BuyersPerRound) {
			for j, all := range c.Buyers {
				if all.ID == b.ID {
					key[j] = true
				}
			}
		}
		subsets[key]++
	}
	// C(5,3) = 10 possible 3-subsets.
	assert.Len(t, subsets, 10)
}

func TestGenerateBuyersSmallCatalog(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	types := []catalog.BuyerType{{ID: "a"}, {ID: "b"}}

	assert.Len(t, GenerateBuyers(rng, types, 3), 2)
	assert.Empty(t, GenerateBuyers(rng, types, 0))
}
