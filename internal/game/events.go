package game

import (
	"slices"

	"github.com/sethgrid/catflip/internal/catalog"
	"github.com/sethgrid/catflip/internal/market"
	"github.com/sethgrid/catflip/internal/traits"
)

type EventType string

const (
	EventRoundStarted      EventType = "ROUND_STARTED"
	EventRoundEnded        EventType = "ROUND_ENDED"
	EventPetDied           EventType = "PET_DIED"
	EventAccessoryEquipped EventType = "ACCESSORY_EQUIPPED"
	EventCatSold           EventType = "CAT_SOLD"
)

// Event is what the core tells the presentation layer. Fields beyond Type,
// PetID and PetName are set only for the event types that need them.
type Event struct {
	Type    EventType `json:"type"`
	PetID   string    `json:"petId"`
	PetName string    `json:"petName"`

	// RoundEnded
	Traits []traits.ID         `json:"traits,omitempty"`
	Buyers []catalog.BuyerType `json:"buyers,omitempty"`
	Offers []market.Offer      `json:"offers,omitempty"`

	// AccessoryEquipped
	Accessory string `json:"accessory,omitempty"`

	// CatSold
	Buyer string `json:"buyer,omitempty"`
	Price int    `json:"price,omitempty"`
}

type listener struct {
	id int
	fn func(Event)
}

// Subscribe registers fn for every event and returns a func that removes it.
// Events are delivered after the operation that caused them has finished
// mutating state. Listeners must not call back into the session, except to
// unsubscribe. A listener removed mid-delivery still sees the current event.
func (s *Session) Subscribe(fn func(Event)) func() {
	s.nextListener++
	id := s.nextListener
	s.listeners = append(s.listeners, listener{id: id, fn: fn})
	return func() {
		s.listeners = slices.DeleteFunc(slices.Clone(s.listeners), func(l listener) bool {
			return l.id == id
		})
	}
}

func (s *Session) emit(e Event) {
	s.pending = append(s.pending, e)
}

// flush delivers queued events. Every exported mutator defers it.
func (s *Session) flush() {
	for len(s.pending) > 0 {
		e := s.pending[0]
		s.pending = s.pending[1:]
		// listeners may unsubscribe while an event is being delivered
		for _, l := range slices.Clone(s.listeners) {
			l.fn(e)
		}
	}
}
