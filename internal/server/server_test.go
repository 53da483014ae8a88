package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"nhooyr.io/websocket"

	apperrors "github.com/louisbranch/werewolf/internal/errors"
	"github.com/louisbranch/werewolf/internal/game/projection"
	"github.com/louisbranch/werewolf/internal/storage/memory"
)

type testEnv struct {
	ts    *httptest.Server
	srv   *Server
	store *memory.Store
}

func setupTest(t *testing.T) *testEnv {
	t.Helper()
	store := memory.New()
	srv := New(store, log.New(io.Discard, "", 0))
	ts := httptest.NewServer(srv)
	t.Cleanup(func() {
		ts.Close()
		srv.Close()
	})
	return &testEnv{ts: ts, srv: srv, store: store}
}

func createGame(t *testing.T, env *testEnv, seed int64) createGameResponse {
	t.Helper()
	body, _ := json.Marshal(createGameRequest{Seed: seed})
	res, err := http.Post(env.ts.URL+"/api/games", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("create game: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d", res.StatusCode)
	}
	var created createGameResponse
	if err := json.NewDecoder(res.Body).Decode(&created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if created.ID == "" {
		t.Fatal("created game has no id")
	}
	return created
}

func getView(t *testing.T, env *testEnv, path string) (int, projection.PlayerView) {
	t.Helper()
	res, err := http.Get(env.ts.URL + path)
	if err != nil {
		t.Fatalf("get %s: %v", path, err)
	}
	defer res.Body.Close()
	var view projection.PlayerView
	if res.StatusCode == http.StatusOK {
		if err := json.NewDecoder(res.Body).Decode(&view); err != nil {
			t.Fatalf("decode view: %v", err)
		}
	}
	return res.StatusCode, view
}

func TestCreateAndGetGame(t *testing.T) {
	env := setupTest(t)
	created := createGame(t, env, 9)

	status, public := getView(t, env, "/api/games/"+created.ID)
	if status != http.StatusOK {
		t.Fatalf("get status = %d", status)
	}
	if public.GameID != created.ID {
		t.Fatalf("view game id = %q, want %q", public.GameID, created.ID)
	}
	if public.Role != "" {
		t.Fatalf("public view leaked role %q", public.Role)
	}
	if len(public.Seats) != 12 {
		t.Fatalf("public view has %d seats", len(public.Seats))
	}

	status, seatView := getView(t, env, "/api/games/"+created.ID+"?seat=3")
	if status != http.StatusOK {
		t.Fatalf("seat view status = %d", status)
	}
	if seatView.Seat != 3 || seatView.Role == "" {
		t.Fatalf("seat view = seat %d role %q", seatView.Seat, seatView.Role)
	}
}

func TestCreateGame_UnknownRoleSet(t *testing.T) {
	env := setupTest(t)
	body, _ := json.Marshal(createGameRequest{RoleSet: "Z"})
	res, err := http.Post(env.ts.URL+"/api/games", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("create game: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", res.StatusCode)
	}
	var payload struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		t.Fatalf("decode error payload: %v", err)
	}
	if payload.Code != string(apperrors.CodeConfigRoleSet) {
		t.Fatalf("code = %q, want %q", payload.Code, apperrors.CodeConfigRoleSet)
	}
}

func TestGetGame_NotFound(t *testing.T) {
	env := setupTest(t)
	status, _ := getView(t, env, "/api/games/missing")
	if status != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", status)
	}
}

func TestListGames(t *testing.T) {
	env := setupTest(t)
	createGame(t, env, 3)
	createGame(t, env, 4)

	res, err := http.Get(env.ts.URL + "/api/games")
	if err != nil {
		t.Fatalf("list games: %v", err)
	}
	defer res.Body.Close()
	var summaries []struct {
		ID string `json:"ID"`
	}
	if err := json.NewDecoder(res.Body).Decode(&summaries); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("listed %d games, want 2", len(summaries))
	}
}

func wsURL(ts *httptest.Server, id string, seat int) string {
	u := strings.Replace(ts.URL, "http://", "ws://", 1) + "/api/games/" + id + "/ws"
	if seat != 0 {
		u += "?seat=" + strconv.Itoa(seat)
	}
	return u
}

func TestWebSocket_StreamsToCompletion(t *testing.T) {
	env := setupTest(t)
	created := createGame(t, env, 17)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, wsURL(env.ts, created.ID, 0), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "")

	var last projection.PlayerView
	views := 0
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			break
		}
		var msg WSMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			t.Fatalf("unmarshal ws message: %v", err)
		}
		if msg.Type != "view" {
			t.Fatalf("message type = %q", msg.Type)
		}
		if err := json.Unmarshal(msg.Payload, &last); err != nil {
			t.Fatalf("unmarshal view payload: %v", err)
		}
		views++
		if last.Winner != "" {
			break
		}
	}

	if views == 0 {
		t.Fatal("no views received")
	}
	if last.Winner == "" {
		t.Fatal("stream closed before the terminal view")
	}
	if last.Role != "" {
		t.Fatalf("public stream leaked role %q", last.Role)
	}
}
