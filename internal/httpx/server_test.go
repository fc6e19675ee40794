package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"chesskit/internal/game"
)

type statePayload struct {
	State GameState `json:"state"`
	Move  string    `json:"move"`
}

func decodeState(t *testing.T, rr *httptest.ResponseRecorder) statePayload {
	t.Helper()
	var payload statePayload
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode body %q: %v", rr.Body.String(), err)
	}
	return payload
}

func TestHandleStateReportsStartPosition(t *testing.T) {
	srv := NewServer(game.NewPosition(), 2)

	req := httptest.NewRequest(http.MethodGet, "/api/state", nil)
	rr := httptest.NewRecorder()
	srv.handleState(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	payload := decodeState(t, rr)
	if payload.State.FEN != game.StartFEN {
		t.Fatalf("state fen = %q", payload.State.FEN)
	}
	if len(payload.State.LegalMoves) != 20 {
		t.Fatalf("expected 20 legal moves, got %d", len(payload.State.LegalMoves))
	}
	if payload.State.Status != "ongoing" || payload.State.InCheck {
		t.Fatalf("unexpected status %q / inCheck %v", payload.State.Status, payload.State.InCheck)
	}
}

func TestHandleMoveAppliesMove(t *testing.T) {
	srv := NewServer(game.NewPosition(), 2)

	req := httptest.NewRequest(http.MethodPost, "/api/move", strings.NewReader(`{"from":"e2","to":"e4"}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	srv.handleMove(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	payload := decodeState(t, rr)
	if payload.Move != "e2e4" {
		t.Fatalf("move = %q", payload.Move)
	}
	if payload.State.Turn != game.Black {
		t.Fatalf("turn = %s", payload.State.Turn)
	}
	if payload.State.EnPassant != "e3" {
		t.Fatalf("enPassant = %q", payload.State.EnPassant)
	}
}

func TestHandleMoveRejectsBadRequests(t *testing.T) {
	cases := []struct {
		name string
		body string
		code int
	}{
		{"illegal move", `{"from":"e2","to":"e5"}`, http.StatusUnprocessableEntity},
		{"bad from square", `{"from":"zz","to":"e4"}`, http.StatusBadRequest},
		{"bad promotion", `{"from":"e2","to":"e4","promotion":"king"}`, http.StatusBadRequest},
		{"invalid json", `{`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := NewServer(game.NewPosition(), 2)
			req := httptest.NewRequest(http.MethodPost, "/api/move", strings.NewReader(tc.body))
			rr := httptest.NewRecorder()
			srv.handleMove(rr, req)
			if rr.Code != tc.code {
				t.Fatalf("status = %d, want %d: %s", rr.Code, tc.code, rr.Body.String())
			}
		})
	}
}

func TestHandleMoveOnFinishedGame(t *testing.T) {
	mate, err := game.ParseFEN("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	if err != nil {
		t.Fatalf("parse mate fen: %v", err)
	}
	srv := NewServer(mate, 2)

	req := httptest.NewRequest(http.MethodPost, "/api/move", strings.NewReader(`{"from":"e2","to":"e3"}`))
	rr := httptest.NewRecorder()
	srv.handleMove(rr, req)
	if rr.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rr.Code)
	}
}

func TestHandleEngineMovePlays(t *testing.T) {
	srv := NewServer(game.NewPosition(), 1)

	req := httptest.NewRequest(http.MethodPost, "/api/engine-move", strings.NewReader(`{"depth":1}`))
	rr := httptest.NewRecorder()
	srv.handleEngineMove(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	payload := decodeState(t, rr)
	if payload.Move == "" {
		t.Fatalf("engine move missing from response")
	}
	if payload.State.Turn != game.Black {
		t.Fatalf("turn = %s after engine move", payload.State.Turn)
	}
}

func TestHandleEngineMoveEmptyBodyUsesDefaultDepth(t *testing.T) {
	srv := NewServer(game.NewPosition(), 1)

	req := httptest.NewRequest(http.MethodPost, "/api/engine-move", strings.NewReader(""))
	rr := httptest.NewRecorder()
	srv.handleEngineMove(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestHandleEngineMoveOnFinishedGame(t *testing.T) {
	mate, err := game.ParseFEN("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	if err != nil {
		t.Fatalf("parse mate fen: %v", err)
	}
	srv := NewServer(mate, 1)

	req := httptest.NewRequest(http.MethodPost, "/api/engine-move", strings.NewReader(`{}`))
	rr := httptest.NewRecorder()
	srv.handleEngineMove(rr, req)
	if rr.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409: %s", rr.Code, rr.Body.String())
	}
}

func TestHandleImport(t *testing.T) {
	srv := NewServer(game.NewPosition(), 2)

	kiwipete := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	body, _ := json.Marshal(map[string]string{"fen": kiwipete})
	req := httptest.NewRequest(http.MethodPost, "/api/import", strings.NewReader(string(body)))
	rr := httptest.NewRecorder()
	srv.handleImport(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	payload := decodeState(t, rr)
	if payload.State.FEN != kiwipete {
		t.Fatalf("imported fen = %q", payload.State.FEN)
	}
	if len(payload.State.LegalMoves) != 48 {
		t.Fatalf("expected 48 legal moves, got %d", len(payload.State.LegalMoves))
	}
}

func TestHandleImportRejectsMalformedFEN(t *testing.T) {
	srv := NewServer(game.NewPosition(), 2)

	req := httptest.NewRequest(http.MethodPost, "/api/import", strings.NewReader(`{"fen":"8/8 w"}`))
	rr := httptest.NewRecorder()
	srv.handleImport(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}

	// The served position must be untouched by the failed import.
	stateReq := httptest.NewRequest(http.MethodGet, "/api/state", nil)
	stateRR := httptest.NewRecorder()
	srv.handleState(stateRR, stateReq)
	if payload := decodeState(t, stateRR); payload.State.FEN != game.StartFEN {
		t.Fatalf("failed import replaced the position: %q", payload.State.FEN)
	}
}

func TestHandleReset(t *testing.T) {
	srv := NewServer(game.NewPosition(), 2)

	moveReq := httptest.NewRequest(http.MethodPost, "/api/move", strings.NewReader(`{"from":"e2","to":"e4"}`))
	moveRR := httptest.NewRecorder()
	srv.handleMove(moveRR, moveReq)
	if moveRR.Code != http.StatusOK {
		t.Fatalf("setup move failed: %d", moveRR.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/reset", nil)
	rr := httptest.NewRecorder()
	srv.handleReset(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if payload := decodeState(t, rr); payload.State.FEN != game.StartFEN {
		t.Fatalf("reset fen = %q", payload.State.FEN)
	}
}

func TestRoutesServeHealthz(t *testing.T) {
	srv := NewServer(game.NewPosition(), 2)
	ts := httptest.NewServer(srv.routes())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("healthz: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("healthz status = %d", resp.StatusCode)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	srv := NewServer(game.NewPosition(), 2)
	req := httptest.NewRequest(http.MethodGet, "/api/move", nil)
	rr := httptest.NewRecorder()
	srv.handleMove(rr, req)
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rr.Code)
	}
}
