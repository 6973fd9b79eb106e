package game

import (
	"math"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/sethgrid/catflip/internal/catalog"
	"github.com/sethgrid/catflip/internal/market"
	"github.com/sethgrid/catflip/internal/pet"
)

const (
	DefaultTurnsPerRound = 20
	DefaultTraitSlots    = 1
)

type Phase string

const (
	PhaseCaring  Phase = "caring"
	PhaseSelling Phase = "selling"
)

type SoldCat struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Age    float64  `json:"age"`
	Traits []string `json:"traits"`
	Buyer  string   `json:"buyer"`
	Price  int      `json:"price"`
}

// GameState is the session-scoped state that outlives a single cat.
type GameState struct {
	TurnsLeft          int
	Money              int
	UnlockedTraitSlots int
	Phase              Phase
	Inventory          map[string]int
	PotentialBuyers    []catalog.BuyerType
	SoldCats           []SoldCat
}

// Session is one player's game. It is not safe for concurrent use; callers
// that share a session across goroutines must serialize access.
type Session struct {
	cat   *catalog.Catalog
	log   *zap.Logger
	rng   *rand.Rand
	names []string

	turnsPerRound int

	// clock is simulated seconds since the session started. Flags expire
	// against it.
	clock float64

	game *GameState
	pet  *pet.PetState

	listeners    []listener
	nextListener int
	pending      []Event
}

type Option func(*Session)

func WithLogger(l *zap.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

func WithRand(r *rand.Rand) Option {
	return func(s *Session) {
		if r != nil {
			s.rng = r
		}
	}
}

func WithTurnsPerRound(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.turnsPerRound = n
		}
	}
}

func WithStartingMoney(m int) Option {
	return func(s *Session) {
		if m >= 0 {
			s.game.Money = m
		}
	}
}

// WithNames replaces the pool new cats are named from.
func WithNames(names []string) Option {
	return func(s *Session) {
		s.names = names
	}
}

// New starts a session with the first cat already in its caring phase.
func New(cat *catalog.Catalog, opts ...Option) *Session {
	if cat == nil {
		cat = catalog.Default()
	}
	s := &Session{
		cat:           cat,
		log:           zap.NewNop(),
		rng:           rand.New(rand.NewSource(time.Now().UnixNano())),
		names:         pet.Names(),
		turnsPerRound: DefaultTurnsPerRound,
		game: &GameState{
			UnlockedTraitSlots: DefaultTraitSlots,
			Inventory:          make(map[string]int, len(cat.Consumables)),
			PotentialBuyers:    []catalog.BuyerType{},
			SoldCats:           []SoldCat{},
		},
	}
	for _, c := range cat.Consumables {
		s.game.Inventory[c.ID] = 0
	}
	for _, opt := range opts {
		opt(s)
	}
	s.startRound()
	s.pending = nil
	return s
}

func (s *Session) Catalog() *catalog.Catalog {
	return s.cat
}

// Clock returns simulated seconds elapsed.
func (s *Session) Clock() float64 {
	return s.clock
}

// Tick advances simulated time by dt seconds. Flags always expire; age and
// dwell timers only move while a living cat is being cared for.
func (s *Session) Tick(dt float64) {
	if dt <= 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return
	}
	s.clock += dt
	s.pet.Flags.Expire(s.clock)

	if s.game.Phase != PhaseCaring || s.pet.IsDead {
		return
	}
	s.pet.Age += dt
	s.pet.History.OnTick(dt, s.pet.Vitals)
}

// Offers prices the current buyers against the cat's traits. It is empty
// outside the selling phase.
func (s *Session) Offers() []market.Offer {
	if s.game.Phase != PhaseSelling {
		return []market.Offer{}
	}
	return market.Offers(s.game.PotentialBuyers, s.petTraits())
}
