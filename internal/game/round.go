package game

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/sethgrid/catflip/internal/catalog"
	"github.com/sethgrid/catflip/internal/market"
	"github.com/sethgrid/catflip/internal/pet"
	"github.com/sethgrid/catflip/internal/traits"
)

type SaleResult struct {
	Price int         `json:"price"`
	Buyer string      `json:"buyer"`
	Pet   PetSnapshot `json:"pet"`
}

// startRound replaces the cat and resets per-round state. Money, trait slots,
// inventory and sales carry over.
func (s *Session) startRound() {
	s.pet = pet.New(pet.RandomName(s.rng, s.names))
	s.game.TurnsLeft = s.turnsPerRound
	s.game.Phase = PhaseCaring
	s.game.PotentialBuyers = []catalog.BuyerType{}

	s.log.Info("round started",
		zap.String("pet", s.pet.Name),
		zap.String("petId", s.pet.ID),
		zap.Int("turns", s.turnsPerRound),
		zap.Int("money", s.game.Money),
	)
	s.emit(Event{Type: EventRoundStarted, PetID: s.pet.ID, PetName: s.pet.Name})
}

// enterSelling is the round-end entry point. Traits are judged on the cat as
// it is right now, then a fresh set of buyers is drawn.
func (s *Session) enterSelling() {
	p := s.pet
	s.game.Phase = PhaseSelling
	p.History.PunchPetRatio = p.History.Ratio()

	ids := traits.Evaluate(p.History, p.Vitals, s.game.UnlockedTraitSlots)
	p.Traits = traits.Strings(ids)
	s.game.PotentialBuyers = market.GenerateBuyers(s.rng, s.cat.Buyers, market.BuyersPerRound)

	s.log.Info("round ended",
		zap.String("pet", p.Name),
		zap.Strings("traits", p.Traits),
		zap.Int("buyers", len(s.game.PotentialBuyers)),
	)
	s.emit(Event{
		Type:    EventRoundEnded,
		PetID:   p.ID,
		PetName: p.Name,
		Traits:  slices.Clone(ids),
		Buyers:  slices.Clone(s.game.PotentialBuyers),
		Offers:  market.Offers(s.game.PotentialBuyers, ids),
	})
}

func (s *Session) petTraits() []traits.ID {
	return traits.FromStrings(s.pet.Traits)
}

// StartNewRound abandons the current cat and brings in a new one. A dead cat
// has to go through DisposeDeadPet first.
func (s *Session) StartNewRound() (PetSnapshot, error) {
	defer s.flush()
	if s.pet.IsDead {
		return PetSnapshot{}, ErrDisposalRequired
	}
	s.startRound()
	return s.Pet(), nil
}

// ResetGame is an alias of StartNewRound. Session-wide progress is kept.
func (s *Session) ResetGame() (PetSnapshot, error) {
	return s.StartNewRound()
}

// DisposeDeadPet clears away a dead cat without a sale and starts the next
// round.
func (s *Session) DisposeDeadPet() (PetSnapshot, error) {
	defer s.flush()
	if !s.pet.IsDead {
		return PetSnapshot{}, ErrPetNotDead
	}
	s.log.Info("dead pet disposed", zap.String("pet", s.pet.Name))
	s.startRound()
	return s.Pet(), nil
}

// SellTo sells the cat to the buyer at index in the current buyer list.
func (s *Session) SellTo(index int) (SaleResult, error) {
	defer s.flush()

	if s.game.Phase != PhaseSelling {
		return SaleResult{}, ErrNotSelling
	}
	if index < 0 || index >= len(s.game.PotentialBuyers) {
		return SaleResult{}, fmt.Errorf("%w: %d", ErrNoSuchBuyer, index)
	}

	p := s.pet
	buyer := s.game.PotentialBuyers[index]
	price := market.PriceFor(buyer, s.petTraits())

	s.game.Money += price
	s.game.SoldCats = append(s.game.SoldCats, SoldCat{
		ID:     p.ID,
		Name:   p.Name,
		Age:    p.Age,
		Traits: slices.Clone(p.Traits),
		Buyer:  buyer.ID,
		Price:  price,
	})

	s.log.Info("cat sold",
		zap.String("pet", p.Name),
		zap.String("buyer", buyer.ID),
		zap.Int("price", price),
		zap.Int("money", s.game.Money),
	)
	s.emit(Event{Type: EventCatSold, PetID: p.ID, PetName: p.Name, Buyer: buyer.ID, Price: price})

	s.startRound()
	return SaleResult{Price: price, Buyer: buyer.ID, Pet: s.Pet()}, nil
}
