package settlement

import (
	"math"
	"testing"

	"github.com/homegamehq/homegame/internal/models"
)

func gameWithProfits(profits map[string]float64) *models.Game {
	g := &models.Game{ID: "game-1", IsCompleted: true}
	for id, profit := range profits {
		buyIn := 100.0
		g.Players = append(g.Players, models.GamePlayer{
			PlayerID:     id,
			BuyIn:        buyIn,
			CashOut:      buyIn + profit,
			Profit:       profit,
			HasOptedIn:   true,
			HasCashedOut: true,
		})
	}
	return g
}

func findSettlement(ss []*models.Settlement, from, to string) *models.Settlement {
	for _, s := range ss {
		if s.FromPlayerID == from && s.ToPlayerID == to {
			return s
		}
	}
	return nil
}

// netFor is the player's position reconstructed from the settlement list:
// received minus paid.
func netFor(ss []*models.Settlement, playerID string) float64 {
	var net float64
	for _, s := range ss {
		if s.ToPlayerID == playerID {
			net += s.Amount
		}
		if s.FromPlayerID == playerID {
			net -= s.Amount
		}
	}
	return net
}

func TestGenerateSingleWinner(t *testing.T) {
	// Buy-ins $100 x3, cash-outs $250/$50/$0. Profits +150/-50/-100.
	// Each loser pays the sole winner their full loss.
	g := gameWithProfits(map[string]float64{
		"alice": 150,
		"bob":   -50,
		"carol": -100,
	})

	ss := Generate(g)
	if len(ss) != 2 {
		t.Fatalf("expected 2 settlements, got %d", len(ss))
	}

	bobPays := findSettlement(ss, "bob", "alice")
	if bobPays == nil || bobPays.Amount != 50 {
		t.Errorf("bob->alice = %+v, want $50", bobPays)
	}
	carolPays := findSettlement(ss, "carol", "alice")
	if carolPays == nil || carolPays.Amount != 100 {
		t.Errorf("carol->alice = %+v, want $100", carolPays)
	}

	var total float64
	for _, s := range ss {
		total += s.Amount
	}
	if total != 150 {
		t.Errorf("total settled = %v, want 150 (total winner profit)", total)
	}
}

func TestGenerateTwoWinnersOneLoser(t *testing.T) {
	// Buy-ins $100 x3, cash-outs $0/$150/$150. Loser -100, winners +50 each.
	// The loss splits proportionally: $50 to each winner.
	g := gameWithProfits(map[string]float64{
		"alice": -100,
		"bob":   50,
		"carol": 50,
	})

	ss := Generate(g)
	if len(ss) != 2 {
		t.Fatalf("expected 2 settlements, got %d", len(ss))
	}
	for _, winner := range []string{"bob", "carol"} {
		s := findSettlement(ss, "alice", winner)
		if s == nil || s.Amount != 50 {
			t.Errorf("alice->%s = %+v, want $50", winner, s)
		}
	}
}

func TestGenerateBalancedGame(t *testing.T) {
	g := gameWithProfits(map[string]float64{"alice": 0, "bob": 0, "carol": 0})
	if ss := Generate(g); len(ss) != 0 {
		t.Errorf("balanced game should yield no settlements, got %d", len(ss))
	}
}

func TestGenerateSinglePlayer(t *testing.T) {
	g := gameWithProfits(map[string]float64{"alice": -100})
	if ss := Generate(g); len(ss) != 0 {
		t.Errorf("single-player game should yield no settlements, got %d", len(ss))
	}
}

func TestGenerateEmptyGame(t *testing.T) {
	g := &models.Game{ID: "game-1"}
	if ss := Generate(g); len(ss) != 0 {
		t.Errorf("empty game should yield no settlements, got %d", len(ss))
	}
}

func TestGenerateSettlementFields(t *testing.T) {
	g := gameWithProfits(map[string]float64{"alice": 100, "bob": -100})
	ss := Generate(g)
	if len(ss) != 1 {
		t.Fatalf("expected 1 settlement, got %d", len(ss))
	}
	s := ss[0]
	if s.ID == "" {
		t.Error("expected generated ID")
	}
	if s.GameID != "game-1" {
		t.Errorf("game id = %q, want game-1", s.GameID)
	}
	if s.IsPaid || s.PaidAt != 0 {
		t.Error("settlements must be created unpaid")
	}
	if s.CreatedAt == 0 {
		t.Error("expected CreatedAt to be set")
	}
}

func TestGenerateConservation(t *testing.T) {
	// For every player, received minus paid must reconstruct their profit
	// within one cent per loser.
	tests := []struct {
		name    string
		profits map[string]float64
	}{
		{"two losers one winner", map[string]float64{"a": 150, "b": -50, "c": -100}},
		{"uneven proportional shares", map[string]float64{"a": 100, "b": 33.34, "c": -66.67, "d": -66.67}},
		{"many small losses", map[string]float64{"a": 10, "b": -3.33, "c": -3.33, "d": -3.34}},
		{"rounding pressure", map[string]float64{"a": 33.33, "b": 33.33, "c": 33.34, "d": -100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := gameWithProfits(tt.profits)
			ss := Generate(g)

			var losers int
			for _, p := range tt.profits {
				if p < 0 {
					losers++
				}
			}
			tolerance := 0.01 * float64(losers)

			for id, profit := range tt.profits {
				if profit == 0 {
					continue
				}
				net := netFor(ss, id)
				if math.Abs(net-profit) > tolerance+1e-9 {
					t.Errorf("%s: reconstructed net = %v, profit = %v (tolerance %v)", id, net, profit, tolerance)
				}
			}
		})
	}
}

func TestGenerateProportionalSplit(t *testing.T) {
	// Winners +100 and +50; loser -90 splits 2:1 -> $60 and $30.
	g := gameWithProfits(map[string]float64{
		"big":   100,
		"small": 50,
		"loser": -90,
	})
	ss := Generate(g)
	if len(ss) != 2 {
		t.Fatalf("expected 2 settlements, got %d", len(ss))
	}
	if s := findSettlement(ss, "loser", "big"); s == nil || s.Amount != 60 {
		t.Errorf("loser->big = %+v, want $60", s)
	}
	if s := findSettlement(ss, "loser", "small"); s == nil || s.Amount != 30 {
		t.Errorf("loser->small = %+v, want $30", s)
	}
}
