// Package catalog holds the immutable shop, trait and buyer tables. A
// catalog is loaded once at startup and validated before any session uses it.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/sethgrid/catflip/internal/pet"
	"github.com/sethgrid/catflip/internal/traits"
)

//go:embed catalog.toml
var defaultCatalog []byte

// MinBuyerTypes is the number of distinct buyers offered each round, so a
// catalog must define at least this many.
const MinBuyerTypes = 3

// MaxTraitSlots bounds every trait-slot upgrade.
const MaxTraitSlots = 3

type UpgradeKind string

const UpgradeTraitSlot UpgradeKind = "traitSlot"

// Effect is the pure data side of a consumable. Presentation consequences
// (death overlay, accessory meshes) are published as session events.
type Effect struct {
	Happiness   float64     `toml:"happiness" json:"happiness"`
	Hunger      float64     `toml:"hunger" json:"hunger"`
	Cleanliness float64     `toml:"cleanliness" json:"cleanliness"`
	Health      float64     `toml:"health" json:"health"`
	Counter     pet.Counter `toml:"counter" json:"counter,omitempty"`
	Kills       bool        `toml:"kills" json:"kills,omitempty"`
}

// Deltas returns the effect as per-stat amounts in display order.
func (e Effect) Deltas() map[pet.Stat]float64 {
	return map[pet.Stat]float64{
		pet.StatHappiness:   e.Happiness,
		pet.StatHunger:      e.Hunger,
		pet.StatCleanliness: e.Cleanliness,
		pet.StatHealth:      e.Health,
	}
}

type Consumable struct {
	ID          string `toml:"id" json:"id"`
	Name        string `toml:"name" json:"name"`
	Description string `toml:"description" json:"description"`
	Cost        int    `toml:"cost" json:"cost"`
	Effect      Effect `toml:"effect" json:"effect"`
}

type Accessory struct {
	ID          string `toml:"id" json:"id"`
	Name        string `toml:"name" json:"name"`
	Description string `toml:"description" json:"description"`
	Cost        int    `toml:"cost" json:"cost"`
}

type Upgrade struct {
	ID          string      `toml:"id" json:"id"`
	Name        string      `toml:"name" json:"name"`
	Description string      `toml:"description" json:"description"`
	Cost        int         `toml:"cost" json:"cost"`
	Kind        UpgradeKind `toml:"kind" json:"kind"`
	Max         int         `toml:"max" json:"max"`
}

type TraitInfo struct {
	ID          traits.ID `toml:"id" json:"id"`
	Name        string    `toml:"name" json:"name"`
	Description string    `toml:"description" json:"description"`
}

type BuyerType struct {
	ID            string      `toml:"id" json:"id"`
	Name          string      `toml:"name" json:"name"`
	Description   string      `toml:"description" json:"description"`
	DesiredTraits []traits.ID `toml:"desiredTraits" json:"desiredTraits"`
	BasePrice     int         `toml:"basePrice" json:"basePrice"`
	TraitBonus    int         `toml:"traitBonus" json:"traitBonus"`
}

type Catalog struct {
	Consumables []Consumable `toml:"consumables" json:"consumables"`
	Accessories []Accessory  `toml:"accessories" json:"accessories"`
	Upgrades    []Upgrade    `toml:"upgrades" json:"upgrades"`
	Traits      []TraitInfo  `toml:"traits" json:"traits"`
	Buyers      []BuyerType  `toml:"buyers" json:"buyers"`
}

// Default returns the embedded catalog. It panics only if the embedded file
// is broken, which the package tests rule out.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog is invalid: %v", err))
	}
	return c
}

// Load reads a catalog file. An empty path means the embedded default.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Parse(defaultCatalog)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := toml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid catalog")

func (c *Catalog) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	ids := make(map[string]string)
	claim := func(kind, id string) {
		if id == "" {
			fail("%s with empty id", kind)
			return
		}
		if prev, ok := ids[id]; ok {
			fail("duplicate id %q (%s and %s)", id, prev, kind)
			return
		}
		ids[id] = kind
	}

	for _, item := range c.Consumables {
		claim("consumable", item.ID)
		if item.Cost < 0 {
			fail("consumable %q has negative cost", item.ID)
		}
		if !pet.KnownCounter(item.Effect.Counter) {
			fail("consumable %q uses unknown counter %q", item.ID, item.Effect.Counter)
		}
	}
	for _, item := range c.Accessories {
		claim("accessory", item.ID)
		if item.Cost < 0 {
			fail("accessory %q has negative cost", item.ID)
		}
	}
	for _, item := range c.Upgrades {
		claim("upgrade", item.ID)
		if item.Cost < 0 {
			fail("upgrade %q has negative cost", item.ID)
		}
		if item.Kind != UpgradeTraitSlot {
			fail("upgrade %q has unknown kind %q", item.ID, item.Kind)
		}
		if item.Max < 1 || item.Max > MaxTraitSlots {
			fail("upgrade %q max %d outside [1,%d]", item.ID, item.Max, MaxTraitSlots)
		}
	}

	seenTraits := make(map[traits.ID]bool)
	for _, t := range c.Traits {
		if !traits.Known(t.ID) {
			fail("unknown trait %q", t.ID)
		}
		if seenTraits[t.ID] {
			fail("duplicate trait %q", t.ID)
		}
		seenTraits[t.ID] = true
	}

	for _, b := range c.Buyers {
		claim("buyer", b.ID)
		if b.BasePrice < 0 || b.TraitBonus < 0 {
			fail("buyer %q has negative pricing", b.ID)
		}
		for _, t := range b.DesiredTraits {
			if !traits.Known(t) {
				fail("buyer %q wants unknown trait %q", b.ID, t)
			}
		}
	}
	if len(c.Buyers) < MinBuyerTypes {
		fail("need at least %d buyer types, have %d", MinBuyerTypes, len(c.Buyers))
	}

	return errors.Join(errs...)
}

func (c *Catalog) Consumable(id string) (Consumable, bool) {
	for _, item := range c.Consumables {
		if item.ID == id {
			return item, true
		}
	}
	return Consumable{}, false
}

func (c *Catalog) Accessory(id string) (Accessory, bool) {
	for _, item := range c.Accessories {
		if item.ID == id {
			return item, true
		}
	}
	return Accessory{}, false
}

func (c *Catalog) Upgrade(id string) (Upgrade, bool) {
	for _, item := range c.Upgrades {
		if item.ID == id {
			return item, true
		}
	}
	return Upgrade{}, false
}

func (c *Catalog) Trait(id traits.ID) (TraitInfo, bool) {
	for _, t := range c.Traits {
		if t.ID == id {
			return t, true
		}
	}
	return TraitInfo{}, false
}

// TraitName is shaped for traits.Format.
func (c *Catalog) TraitName(id traits.ID) string {
	t, _ := c.Trait(id)
	return t.Name
}
