package game

import (
	"fmt"

	"go.uber.org/zap"
)

func (s *Session) pay(cost int) error {
	if s.game.Money < cost {
		return fmt.Errorf("%w: need %d, have %d", ErrInsufficientFunds, cost, s.game.Money)
	}
	s.game.Money -= cost
	return nil
}

// PurchaseConsumable adds one of the item to the inventory.
func (s *Session) PurchaseConsumable(id string) error {
	item, ok := s.cat.Consumable(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownItem, id)
	}
	if err := s.pay(item.Cost); err != nil {
		return err
	}
	s.game.Inventory[id]++
	s.log.Debug("consumable purchased", zap.String("item", id), zap.Int("owned", s.game.Inventory[id]))
	return nil
}

// PurchaseAccessory buys an accessory and puts it on the current cat. It
// leaves with the cat when the round ends.
func (s *Session) PurchaseAccessory(id string) error {
	defer s.flush()

	acc, ok := s.cat.Accessory(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownItem, id)
	}
	if s.pet.HasAccessory(id) {
		return fmt.Errorf("%w: %q", ErrAccessoryOwned, id)
	}
	if err := s.pay(acc.Cost); err != nil {
		return err
	}
	s.pet.AddAccessory(id)
	s.log.Debug("accessory equipped", zap.String("pet", s.pet.Name), zap.String("accessory", id))
	s.emit(Event{Type: EventAccessoryEquipped, PetID: s.pet.ID, PetName: s.pet.Name, Accessory: id})
	return nil
}

func (s *Session) PurchaseUpgrade(id string) error {
	up, ok := s.cat.Upgrade(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownItem, id)
	}
	if s.game.UnlockedTraitSlots >= up.Max {
		return fmt.Errorf("%w: %q at %d", ErrUpgradeMaxed, id, up.Max)
	}
	if err := s.pay(up.Cost); err != nil {
		return err
	}
	s.game.UnlockedTraitSlots++
	s.log.Info("upgrade purchased", zap.String("upgrade", id), zap.Int("traitSlots", s.game.UnlockedTraitSlots))
	return nil
}

// Purchase buys id from whichever shop category it belongs to.
func (s *Session) Purchase(id string) error {
	if _, ok := s.cat.Consumable(id); ok {
		return s.PurchaseConsumable(id)
	}
	if _, ok := s.cat.Accessory(id); ok {
		return s.PurchaseAccessory(id)
	}
	if _, ok := s.cat.Upgrade(id); ok {
		return s.PurchaseUpgrade(id)
	}
	return fmt.Errorf("%w: %q", ErrUnknownItem, id)
}
