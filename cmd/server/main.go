package main

import (
	"flag"
	"log"
	"os"
	"strconv"
	"strings"

	"chesskit/internal/game"
	"chesskit/internal/httpx"
)

func main() {
	addr := flag.String("addr", getenv("CHESS_ADDR", ":8080"), "listen address")
	depth := flag.Int("depth", getint("CHESS_DEPTH", 3), "default search depth for engine moves (0 = random)")
	fen := flag.String("fen", getenv("CHESS_FEN", ""), "starting position as FEN (default: standard start)")
	flag.Parse()

	if *depth < 0 {
		log.Fatalf("invalid depth %d", *depth)
	}

	pos := game.NewPosition()
	if strings.TrimSpace(*fen) != "" {
		parsed, err := game.ParseFEN(*fen)
		if err != nil {
			log.Fatalf("starting fen: %v", err)
		}
		pos = parsed
	}
	log.Printf("Starting position: %s (engine depth %d)", pos.FEN(), *depth)

	srv := httpx.NewServer(pos, *depth)
	if err := srv.Listen(*addr); err != nil {
		log.Fatal(err)
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getint(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return def
}
