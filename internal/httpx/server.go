package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"chesskit/internal/engine"
	"chesskit/internal/game"
)

// Server wires the HTTP layer to the rules engine. It owns the current
// position; every handler works on a snapshot taken under gameMu.
type Server struct {
	gameMu sync.Mutex
	pos    game.Position
	depth  int
	srvMu  sync.Mutex
	srv    *http.Server
}

const (
	maxJSONBodyBytes int64 = 1 << 20
	apiCSP                 = "default-src 'none'; frame-ancestors 'none'; base-uri 'none'"
)

// NewServer builds a Server starting from the given position. depth is
// the search depth used when /api/engine-move does not override it.
func NewServer(start game.Position, depth int) *Server {
	return &Server{pos: start, depth: depth}
}

// Listen starts the HTTP server.
func (s *Server) Listen(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 16,
	}

	s.srvMu.Lock()
	s.srv = srv
	s.srvMu.Unlock()
	defer func() {
		s.srvMu.Lock()
		s.srv = nil
		s.srvMu.Unlock()
	}()

	log.Printf("HTTP listening on %s", addr)
	err := srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close attempts a graceful shutdown of the HTTP server.
func (s *Server) Close(ctx context.Context) error {
	s.srvMu.Lock()
	srv := s.srv
	s.srvMu.Unlock()
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/state", s.withJSON(s.handleState))
	mux.HandleFunc("/api/move", s.withJSON(s.handleMove))
	mux.HandleFunc("/api/engine-move", s.withJSON(s.handleEngineMove))
	mux.HandleFunc("/api/import", s.withJSON(s.handleImport))
	mux.HandleFunc("/api/reset", s.withJSON(s.handleReset))

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// GameState is the JSON shape every endpoint answers with.
type GameState struct {
	FEN        string     `json:"fen"`
	Turn       game.Color `json:"turn"`
	Castling   string     `json:"castling"`
	EnPassant  string     `json:"enPassant"`
	Halfmove   int        `json:"halfmove"`
	Fullmove   int        `json:"fullmove"`
	Status     string     `json:"status"`
	Loser      string     `json:"loser,omitempty"`
	InCheck    bool       `json:"inCheck"`
	LegalMoves []string   `json:"legalMoves"`
}

// snapshot renders the position; the caller holds gameMu.
func snapshot(p *game.Position) GameState {
	status, loser := p.Status()
	moves := p.LegalMoves()
	coords := make([]string, 0, len(moves))
	for _, m := range moves {
		coords = append(coords, m.String())
	}
	st := GameState{
		FEN:        p.FEN(),
		Turn:       p.SideToMove(),
		Castling:   p.Castling().String(),
		EnPassant:  p.EnPassant().String(),
		Halfmove:   p.HalfmoveClock(),
		Fullmove:   p.FullmoveNumber(),
		Status:     status.String(),
		InCheck:    p.InCheck(p.SideToMove()),
		LegalMoves: coords,
	}
	if status == game.StatusCheckmate {
		st.Loser = loser.String()
	}
	return st
}

// ---- JSON helpers ----

func (s *Server) withJSON(h func(http.ResponseWriter, *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		applyAPISecurityHeaders(w.Header())
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		if r.Body != nil && r.Body != http.NoBody {
			r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
		}
		h(w, r)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	writeJSON(w, map[string]string{"error": msg})
}

func applyAPISecurityHeaders(h http.Header) {
	h.Set("Content-Security-Policy", apiCSP)
	h.Set("Cross-Origin-Opener-Policy", "same-origin")
	h.Set("Cross-Origin-Embedder-Policy", "require-corp")
}

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

// ---- API: state ----

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.gameMu.Lock()
	state := snapshot(&s.pos)
	s.gameMu.Unlock()
	writeJSON(w, map[string]any{"state": state})
}

// ---- API: move ----

type moveBody struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Promotion string `json:"promotion"`
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	defer r.Body.Close()
	var body moveBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		if isBodyTooLarge(err) {
			writeError(w, http.StatusRequestEntityTooLarge, "request too large")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	from, ok := game.CoordToSquare(strings.ToLower(strings.TrimSpace(body.From)))
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid from square")
		return
	}
	to, ok := game.CoordToSquare(strings.ToLower(strings.TrimSpace(body.To)))
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid to square")
		return
	}
	promotion := game.Queen
	if raw := strings.TrimSpace(body.Promotion); raw != "" {
		pt, ok := game.ParsePromotionPiece(raw)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid promotion choice")
			return
		}
		promotion = pt
	}

	s.gameMu.Lock()
	defer s.gameMu.Unlock()

	if status, _ := s.pos.Status(); status.Terminal() {
		writeError(w, http.StatusConflict, game.ErrGameOver.Error())
		return
	}
	m, err := s.pos.MoveFor(from, to, promotion)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	s.pos = s.pos.Apply(m)
	writeJSON(w, map[string]any{"state": snapshot(&s.pos), "move": m.String()})
}

// ---- API: engine move ----

type engineMoveBody struct {
	Depth *int `json:"depth"`
}

func (s *Server) handleEngineMove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	defer r.Body.Close()
	depth := s.depth
	var body engineMoveBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		if isBodyTooLarge(err) {
			writeError(w, http.StatusRequestEntityTooLarge, "request too large")
			return
		}
		// An empty body keeps the configured depth.
		if !errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}
	}
	if body.Depth != nil {
		if *body.Depth < 0 {
			writeError(w, http.StatusBadRequest, "invalid depth")
			return
		}
		depth = *body.Depth
	}

	s.gameMu.Lock()
	defer s.gameMu.Unlock()

	m, ok := engine.SelectMove(&s.pos, depth)
	if !ok {
		writeError(w, http.StatusConflict, game.ErrGameOver.Error())
		return
	}
	s.pos = s.pos.Apply(m)
	writeJSON(w, map[string]any{"state": snapshot(&s.pos), "move": m.String()})
}

// ---- API: import ----

type importBody struct {
	FEN string `json:"fen"`
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	defer r.Body.Close()
	var body importBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		if isBodyTooLarge(err) {
			writeError(w, http.StatusRequestEntityTooLarge, "request too large")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	pos, err := game.ParseFEN(body.FEN)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.gameMu.Lock()
	s.pos = pos
	state := snapshot(&s.pos)
	s.gameMu.Unlock()
	writeJSON(w, map[string]any{"state": state})
}

// ---- API: reset ----

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if r.Body != nil {
		r.Body.Close()
	}
	s.gameMu.Lock()
	s.pos = game.NewPosition()
	state := snapshot(&s.pos)
	s.gameMu.Unlock()
	writeJSON(w, map[string]any{"state": state})
}
