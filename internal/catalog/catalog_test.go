package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sethgrid/catflip/internal/pet"
	"github.com/sethgrid/catflip/internal/traits"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()

	require.Len(t, c.Consumables, 4)
	require.Len(t, c.Accessories, 2)
	require.Len(t, c.Upgrades, 1)
	require.Len(t, c.Buyers, 5)

	fish, ok := c.Consumable("fish")
	require.True(t, ok)
	assert.Equal(t, 100, fish.Cost)
	assert.Equal(t, Effect{Happiness: 20, Hunger: 10, Health: 5, Counter: pet.CounterFish}, fish.Effect)

	choc, ok := c.Consumable("chocolate")
	require.True(t, ok)
	assert.True(t, choc.Effect.Kills)
	assert.Equal(t, -20.0, choc.Effect.Health)

	slot, ok := c.Upgrade("traitSlot")
	require.True(t, ok)
	assert.Equal(t, 1000, slot.Cost)
	assert.Equal(t, 3, slot.Max)

	_, ok = c.Accessory("starPin")
	assert.True(t, ok)
	_, ok = c.Accessory("fish")
	assert.False(t, ok)
}

func TestDefaultTraitsFollowDeclarationOrder(t *testing.T) {
	c := Default()
	ids := make([]traits.ID, 0, len(c.Traits))
	for _, t := range c.Traits {
		ids = append(ids, t.ID)
	}
	assert.Equal(t, traits.All(), ids)
	assert.Equal(t, "Fish Lover", c.TraitName(traits.FishYum))
	assert.Equal(t, "", c.TraitName("grumpy"))
}

func TestValidateRejectsBadData(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Catalog)
	}{
		{
			name: "buyer wants unknown trait",
			mutate: func(c *Catalog) {
				c.Buyers[0].DesiredTraits = append(c.Buyers[0].DesiredTraits, "grumpy")
			},
		},
		{
			name: "unknown trait info",
			mutate: func(c *Catalog) {
				c.Traits = append(c.Traits, TraitInfo{ID: "grumpy", Name: "Grumpy"})
			},
		},
		{
			name: "duplicate item id across categories",
			mutate: func(c *Catalog) {
				c.Accessories = append(c.Accessories, Accessory{ID: "fish", Cost: 10})
			},
		},
		{
			name: "negative cost",
			mutate: func(c *Catalog) {
				c.Consumables[0].Cost = -1
			},
		},
		{
			name: "unknown counter",
			mutate: func(c *Catalog) {
				c.Consumables[0].Effect.Counter = "tuna"
			},
		},
		{
			name: "upgrade max out of range",
			mutate: func(c *Catalog) {
				c.Upgrades[0].Max = 4
			},
		},
		{
			name: "empty buyer id",
			mutate: func(c *Catalog) {
				c.Buyers[0].ID = ""
			},
		},
		{
			name: "duplicate buyer id",
			mutate: func(c *Catalog) {
				c.Buyers[1].ID = c.Buyers[0].ID
			},
		},
		{
			name: "buyer id shared with an item",
			mutate: func(c *Catalog) {
				c.Buyers[0].ID = "catnip"
			},
		},
		{
			name: "too few buyers",
			mutate: func(c *Catalog) {
				c.Buyers = c.Buyers[:2]
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(c)
			err := c.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestLoad(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Len(t, c.Buyers, 5)

	path := filepath.Join(t.TempDir(), "catalog.toml")
	custom := `
[[buyers]]
id = "a"
name = "A"
desiredTraits = ["emo"]
basePrice = 1
traitBonus = 2

[[buyers]]
id = "b"
name = "B"
desiredTraits = []
basePrice = 3
traitBonus = 4

[[buyers]]
id = "c"
name = "C"
desiredTraits = ["dead"]
basePrice = 5
traitBonus = 6
`
	require.NoError(t, os.WriteFile(path, []byte(custom), 0644))

	c, err = Load(path)
	require.NoError(t, err)
	assert.Len(t, c.Buyers, 3)
	assert.Empty(t, c.Consumables)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestParseRejectsInvalidBuyerReference(t *testing.T) {
	data := `
[[buyers]]
id = "a"
desiredTraits = ["grumpy"]
basePrice = 1
traitBonus = 1
`
	_, err := Parse([]byte(data))
	assert.ErrorIs(t, err, ErrInvalid)
}
