package server

import (
	"context"
	"encoding/json"
	"net/http"

	"nhooyr.io/websocket"

	"github.com/louisbranch/werewolf/internal/game/domain"
)

// WSMessage is the JSON envelope for websocket messages.
type WSMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// handleWebSocket streams a seat's view of a game. Each committed
// snapshot produces one view message; the stream closes after the
// terminal snapshot.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	live, ok := s.registry.Get(r.PathValue("id"))
	if !ok {
		http.Error(w, "game not found", http.StatusNotFound)
		return
	}
	seat, err := seatParam(r)
	if err != nil {
		http.Error(w, "invalid seat", http.StatusBadRequest)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // allow any origin for dev
	})
	if err != nil {
		s.logger.Printf("websocket accept: %v", err)
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "")

	ctx := r.Context()
	updates, unsubscribe := live.Subscribe()
	defer unsubscribe()

	// The current snapshot first, then updates as they commit.
	state := live.State()
	if err := sendView(ctx, conn, &state, seat); err != nil {
		return
	}
	if state.Ended() {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case next, ok := <-updates:
			if !ok {
				return
			}
			if err := sendView(ctx, conn, &next, seat); err != nil {
				return
			}
			if next.Ended() {
				return
			}
		}
	}
}

func sendView(ctx context.Context, conn *websocket.Conn, state *domain.State, seat int) error {
	view, err := buildView(state, seat)
	if err != nil {
		return sendWSMsg(ctx, conn, "error", errorPayload{Message: err.Error()})
	}
	return sendWSMsg(ctx, conn, "view", view)
}

func sendWSMsg(ctx context.Context, conn *websocket.Conn, msgType string, payload any) error {
	p, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	data, err := json.Marshal(WSMessage{Type: msgType, Payload: p})
	if err != nil {
		return err
	}
	return conn.Write(ctx, websocket.MessageText, data)
}
