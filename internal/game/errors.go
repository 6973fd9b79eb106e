package game

import "errors"

type RejectReason string

const (
	ReasonWrongPhase            RejectReason = "wrong_phase"
	ReasonNoTurnsLeft           RejectReason = "no_turns_left"
	ReasonPetDead               RejectReason = "pet_dead"
	ReasonInsufficientInventory RejectReason = "insufficient_inventory"
)

// Sentinels for errors.Is against an *ActionRejected.
var (
	ErrWrongPhase            = errors.New("wrong game phase")
	ErrNoTurnsLeft           = errors.New("no turns left")
	ErrPetDead               = errors.New("pet is dead")
	ErrInsufficientInventory = errors.New("item not in inventory")
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrUpgradeMaxed      = errors.New("upgrade maxed out")
	ErrAccessoryOwned    = errors.New("accessory already owned")
	ErrUnknownItem       = errors.New("unknown item")
	ErrUnknownAction     = errors.New("unknown action")
	ErrNoSuchBuyer       = errors.New("no such buyer")
	ErrNotSelling        = errors.New("cat is not up for sale")
	ErrPetNotDead        = errors.New("pet is not dead")
	ErrDisposalRequired  = errors.New("dead pet must be disposed first")
)

// ActionRejected is returned when a caring-phase action or item use is not
// legal right now. Nothing about the session changes when it is returned.
type ActionRejected struct {
	Reason RejectReason
}

func (e *ActionRejected) Error() string {
	return "action rejected: " + string(e.Reason)
}

func (e *ActionRejected) Is(target error) bool {
	switch e.Reason {
	case ReasonWrongPhase:
		return target == ErrWrongPhase
	case ReasonNoTurnsLeft:
		return target == ErrNoTurnsLeft
	case ReasonPetDead:
		return target == ErrPetDead
	case ReasonInsufficientInventory:
		return target == ErrInsufficientInventory
	}
	return false
}

func reject(reason RejectReason) error {
	return &ActionRejected{Reason: reason}
}

// Rejection extracts the reason from err if it is an *ActionRejected.
func Rejection(err error) (RejectReason, bool) {
	var rejected *ActionRejected
	if errors.As(err, &rejected) {
		return rejected.Reason, true
	}
	return "", false
}
