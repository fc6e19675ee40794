package game

import "testing"

func TestStatusClassification(t *testing.T) {
	cases := []struct {
		name   string
		fen    string
		status Status
		loser  Color
	}{
		{
			name:   "start is ongoing",
			fen:    StartFEN,
			status: StatusOngoing,
		},
		{
			name:   "fools mate",
			fen:    "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3",
			status: StatusCheckmate,
			loser:  White,
		},
		{
			name:   "back rank mate",
			fen:    "R5k1/5ppp/8/8/8/8/8/K7 b - - 0 1",
			status: StatusCheckmate,
			loser:  Black,
		},
		{
			name:   "queen stalemate",
			fen:    "7k/5K2/6Q1/8/8/8/8/8 b - - 0 1",
			status: StatusStalemate,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := mustParseFEN(t, tc.fen)
			status, loser := p.Status()
			if status != tc.status {
				t.Fatalf("status = %s, want %s:\n%s", status, tc.status, &p)
			}
			if status == StatusCheckmate && loser != tc.loser {
				t.Fatalf("loser = %s, want %s", loser, tc.loser)
			}
		})
	}
}

func TestStatusIsPure(t *testing.T) {
	p := mustParseFEN(t, "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	before := p.FEN()
	for i := 0; i < 3; i++ {
		if status, _ := p.Status(); status != StatusCheckmate {
			t.Fatalf("call %d: status = %s", i, status)
		}
	}
	if p.FEN() != before {
		t.Fatalf("Status mutated the position")
	}
}

func TestInCheck(t *testing.T) {
	p := mustParseFEN(t, "4k3/8/8/8/8/8/4r3/4K3 w - - 0 1")
	if !p.InCheck(White) {
		t.Fatalf("white should be in check from the e2 rook")
	}
	if p.InCheck(Black) {
		t.Fatalf("black is not in check")
	}
	if status, _ := p.Status(); status != StatusOngoing {
		t.Fatalf("check with escapes classified as %s", status)
	}
}

func TestFiftyMoveClockDoesNotTerminate(t *testing.T) {
	p := mustParseFEN(t, "4k3/8/8/8/8/8/8/R3K3 w - - 120 80")
	if status, _ := p.Status(); status != StatusOngoing {
		t.Fatalf("high halfmove clock flipped status to %s", status)
	}
}
