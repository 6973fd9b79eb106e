package game

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/sethgrid/catflip/internal/pet"
)

type actionEffect struct {
	deltas map[pet.Stat]float64
	sets   map[pet.Stat]float64
}

var actionEffects = map[pet.ActionKind]actionEffect{
	pet.ActionPet: {deltas: map[pet.Stat]float64{
		pet.StatHappiness:   15,
		pet.StatHunger:      -5,
		pet.StatCleanliness: -3,
	}},
	pet.ActionFeed: {deltas: map[pet.Stat]float64{
		pet.StatHappiness:   5,
		pet.StatHunger:      20,
		pet.StatCleanliness: -8,
		pet.StatHealth:      10,
	}},
	pet.ActionPunch: {deltas: map[pet.Stat]float64{
		pet.StatHappiness:   -20,
		pet.StatHunger:      -8,
		pet.StatCleanliness: -5,
		pet.StatHealth:      -10,
	}},
	pet.ActionBathe: {
		deltas: map[pet.Stat]float64{
			pet.StatHappiness: -5,
			pet.StatHunger:    -10,
		},
		sets: map[pet.Stat]float64{
			pet.StatCleanliness: pet.MaxVital,
		},
	},
}

// checkTurn reports why a caring action can't be taken right now, or nil.
func (s *Session) checkTurn() error {
	switch {
	case s.pet.IsDead:
		return reject(ReasonPetDead)
	case s.game.Phase != PhaseCaring:
		return reject(ReasonWrongPhase)
	case s.game.TurnsLeft <= 0:
		return reject(ReasonNoTurnsLeft)
	}
	return nil
}

// PerformAction applies one of the four built-in care actions and spends a
// turn. The last turn moves the session into the selling phase.
func (s *Session) PerformAction(kind pet.ActionKind) (PetSnapshot, error) {
	defer s.flush()

	effect, ok := actionEffects[kind]
	if !ok {
		return PetSnapshot{}, fmt.Errorf("%w: %q", ErrUnknownAction, kind)
	}
	if err := s.checkTurn(); err != nil {
		s.log.Debug("action rejected", zap.String("action", string(kind)), zap.Error(err))
		return PetSnapshot{}, err
	}

	p := s.pet
	before := p.Vitals
	for stat, d := range effect.deltas {
		p.ApplyDelta(stat, d)
	}
	for stat, v := range effect.sets {
		p.SetStat(stat, v)
	}
	p.Flags.Raise(pet.FlagFor(kind), s.clock)
	p.History.OnAction(kind, before)

	s.log.Debug("action performed",
		zap.String("pet", p.Name),
		zap.String("action", string(kind)),
		zap.Int("turnsLeft", s.game.TurnsLeft-1),
	)
	s.spendTurn()
	return s.Pet(), nil
}

// UseItem consumes one of an inventory item on the current cat. Items cost a
// turn like actions do but raise no animation flag.
func (s *Session) UseItem(id string) (PetSnapshot, error) {
	defer s.flush()

	item, ok := s.cat.Consumable(id)
	if !ok {
		return PetSnapshot{}, fmt.Errorf("%w: %q", ErrUnknownItem, id)
	}
	if err := s.checkTurn(); err != nil {
		s.log.Debug("item rejected", zap.String("item", id), zap.Error(err))
		return PetSnapshot{}, err
	}
	if s.game.Inventory[id] <= 0 {
		err := reject(ReasonInsufficientInventory)
		s.log.Debug("item rejected", zap.String("item", id), zap.Error(err))
		return PetSnapshot{}, err
	}

	p := s.pet
	s.game.Inventory[id]--
	for stat, d := range item.Effect.Deltas() {
		p.ApplyDelta(stat, d)
	}
	p.History.OnConsume(item.Effect.Counter)

	s.log.Debug("item used", zap.String("pet", p.Name), zap.String("item", id))

	if item.Effect.Kills {
		p.Kill()
		s.log.Info("pet died", zap.String("pet", p.Name), zap.String("cause", id))
		s.emit(Event{Type: EventPetDied, PetID: p.ID, PetName: p.Name})
	}
	s.spendTurn()
	return s.Pet(), nil
}

func (s *Session) spendTurn() {
	s.game.TurnsLeft--
	if s.game.TurnsLeft <= 0 {
		s.game.TurnsLeft = 0
		s.enterSelling()
	}
}
