package bridge

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/sethgrid/catflip/internal/art"
	"github.com/sethgrid/catflip/internal/game"
	"github.com/sethgrid/catflip/internal/wellbeing"
)

// Client message types.
const (
	MsgAction   = "action"
	MsgUseItem  = "use_item"
	MsgBuy      = "buy"
	MsgSell     = "sell"
	MsgDispose  = "dispose"
	MsgNewRound = "new_round"
	MsgState    = "state"
)

// Server message types.
const (
	MsgRejected = "rejected"
	MsgError    = "error"
	MsgEvent    = "event"
)

type ClientMessage struct {
	Type   string `json:"type"`
	Action string `json:"action,omitempty"`
	Item   string `json:"item,omitempty"`
	Buyer  int    `json:"buyer,omitempty"`
}

type ServerMessage struct {
	Type string `json:"type"`

	Pet       *game.PetSnapshot  `json:"pet,omitempty"`
	Game      *game.GameSnapshot `json:"game,omitempty"`
	Wellbeing float64            `json:"wellbeing,omitempty"`
	Frame     art.FrameKey       `json:"frame,omitempty"`

	Reason game.RejectReason `json:"reason,omitempty"`
	Code   string            `json:"code,omitempty"`
	Error  string            `json:"error,omitempty"`

	Event *game.Event      `json:"event,omitempty"`
	Sale  *game.SaleResult `json:"sale,omitempty"`
}

func stateMessage(s *game.Session, mode wellbeing.ComputationMode) ServerMessage {
	p := s.Pet()
	g := s.Game()
	score := wellbeing.Compute(p.Vitals, mode)
	return ServerMessage{
		Type:      MsgState,
		Pet:       &p,
		Game:      &g,
		Wellbeing: score,
		Frame:     art.ChooseFrameKey(p.Flags, p.IsDead, score),
	}
}

var errorCodes = []struct {
	err  error
	code string
}{
	{game.ErrInsufficientFunds, "insufficient_funds"},
	{game.ErrUpgradeMaxed, "upgrade_maxed"},
	{game.ErrAccessoryOwned, "accessory_owned"},
	{game.ErrUnknownItem, "unknown_item"},
	{game.ErrUnknownAction, "unknown_action"},
	{game.ErrNoSuchBuyer, "no_such_buyer"},
	{game.ErrNotSelling, "not_selling"},
	{game.ErrPetNotDead, "pet_not_dead"},
	{game.ErrDisposalRequired, "disposal_required"},
}

// errorMessage turns a session error into the message sent back to the
// client.
func errorMessage(err error) ServerMessage {
	if reason, ok := game.Rejection(err); ok {
		return ServerMessage{Type: MsgRejected, Reason: reason, Error: err.Error()}
	}
	code := "internal"
	for _, ec := range errorCodes {
		if errors.Is(err, ec.err) {
			code = ec.code
			break
		}
	}
	return ServerMessage{Type: MsgError, Code: code, Error: err.Error()}
}

func writeJSON(w http.ResponseWriter, log *zap.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn("failed to write json response", zap.Int("status", status), zap.Error(err))
	}
}
