package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/homegamehq/homegame/internal/models"
	"github.com/homegamehq/homegame/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	tempDir, err := os.MkdirTemp("", "homegame-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testGame(groupID string) *models.Game {
	now := time.Now().Unix()
	return &models.Game{
		GroupID:      groupID,
		Date:         now,
		Stakes:       "$0.25/$0.50",
		DefaultBuyIn: 100,
		StartTime:    now,
		Players: []models.GamePlayer{
			{PlayerID: "alice", BuyIn: 100, Profit: -100, HasOptedIn: true, OptedInAt: now},
			{PlayerID: "bob", BuyIn: 100, Profit: -100, HasOptedIn: true, OptedInAt: now},
		},
	}
}

func TestSQLiteStoreGames(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateGame generates ID and roundtrips", func(t *testing.T) {
		game := testGame("group-1")
		if err := store.CreateGame(ctx, game); err != nil {
			t.Fatalf("CreateGame failed: %v", err)
		}
		if game.ID == "" {
			t.Error("Expected game ID to be generated")
		}

		got, err := store.GetGame(ctx, game.ID)
		if err != nil {
			t.Fatalf("GetGame failed: %v", err)
		}
		if got.Stakes != "$0.25/$0.50" || got.DefaultBuyIn != 100 {
			t.Errorf("unexpected game fields: %+v", got)
		}
		if len(got.Players) != 2 {
			t.Fatalf("expected 2 players, got %d", len(got.Players))
		}
		if got.Players[0].PlayerID != "alice" || got.Players[1].PlayerID != "bob" {
			t.Errorf("player order not preserved: %+v", got.Players)
		}
	})

	t.Run("GetGame missing returns ErrNotFound", func(t *testing.T) {
		_, err := store.GetGame(ctx, "nope")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("MutateGame persists player changes", func(t *testing.T) {
		game := testGame("group-1")
		if err := store.CreateGame(ctx, game); err != nil {
			t.Fatalf("CreateGame failed: %v", err)
		}

		_, err := store.MutateGame(ctx, game.ID, func(g *models.Game) (*storage.GameMutation, error) {
			g.Players[0].RebuyAmount = 50
			g.Players[0].Rebuys = 1
			g.Players[0].Profit = -150
			return &storage.GameMutation{}, nil
		})
		if err != nil {
			t.Fatalf("MutateGame failed: %v", err)
		}

		got, err := store.GetGame(ctx, game.ID)
		if err != nil {
			t.Fatalf("GetGame failed: %v", err)
		}
		if got.Players[0].RebuyAmount != 50 || got.Players[0].Rebuys != 1 {
			t.Errorf("rebuy not persisted: %+v", got.Players[0])
		}
	})

	t.Run("MutateGame with nil mutation persists nothing", func(t *testing.T) {
		game := testGame("group-1")
		if err := store.CreateGame(ctx, game); err != nil {
			t.Fatalf("CreateGame failed: %v", err)
		}

		_, err := store.MutateGame(ctx, game.ID, func(g *models.Game) (*storage.GameMutation, error) {
			g.Players[0].BuyIn = 999
			return nil, nil
		})
		if err != nil {
			t.Fatalf("MutateGame failed: %v", err)
		}

		got, _ := store.GetGame(ctx, game.ID)
		if got.Players[0].BuyIn != 100 {
			t.Errorf("nil mutation must not persist, buy-in = %v", got.Players[0].BuyIn)
		}
	})

	t.Run("MutateGame callback error rolls back", func(t *testing.T) {
		game := testGame("group-1")
		if err := store.CreateGame(ctx, game); err != nil {
			t.Fatalf("CreateGame failed: %v", err)
		}

		wantErr := errors.New("domain rejected")
		_, err := store.MutateGame(ctx, game.ID, func(g *models.Game) (*storage.GameMutation, error) {
			g.Players[0].BuyIn = 999
			return nil, wantErr
		})
		if !errors.Is(err, wantErr) {
			t.Fatalf("err = %v, want callback error", err)
		}

		got, _ := store.GetGame(ctx, game.ID)
		if got.Players[0].BuyIn != 100 {
			t.Errorf("failed mutation must roll back, buy-in = %v", got.Players[0].BuyIn)
		}
	})

	t.Run("completion inserts settlements exactly once", func(t *testing.T) {
		game := testGame("group-1")
		if err := store.CreateGame(ctx, game); err != nil {
			t.Fatalf("CreateGame failed: %v", err)
		}

		complete := func() error {
			_, err := store.MutateGame(ctx, game.ID, func(g *models.Game) (*storage.GameMutation, error) {
				g.IsCompleted = true
				g.EndTime = time.Now().Unix()
				return &storage.GameMutation{
					Completed: true,
					Settlements: []*models.Settlement{{
						ID:           uuid.New().String(),
						GameID:       g.ID,
						FromPlayerID: "bob",
						ToPlayerID:   "alice",
						Amount:       100,
						CreatedAt:    time.Now().Unix(),
					}},
				}, nil
			})
			return err
		}

		if err := complete(); err != nil {
			t.Fatalf("first completion failed: %v", err)
		}
		if err := complete(); err != nil {
			t.Fatalf("second completion failed: %v", err)
		}

		got, err := store.GetGame(ctx, game.ID)
		if err != nil {
			t.Fatalf("GetGame failed: %v", err)
		}
		if !got.IsCompleted {
			t.Error("expected game to be completed")
		}

		settlements, err := store.ListSettlementsByGame(ctx, game.ID)
		if err != nil {
			t.Fatalf("ListSettlementsByGame failed: %v", err)
		}
		if len(settlements) != 1 {
			t.Errorf("expected exactly 1 settlement despite double completion, got %d", len(settlements))
		}
	})

	t.Run("ListGamesByPlayer finds participation", func(t *testing.T) {
		store := newTestStore(t)
		game := testGame("group-2")
		if err := store.CreateGame(ctx, game); err != nil {
			t.Fatalf("CreateGame failed: %v", err)
		}

		games, err := store.ListGamesByPlayer(ctx, "alice")
		if err != nil {
			t.Fatalf("ListGamesByPlayer failed: %v", err)
		}
		if len(games) != 1 || games[0].ID != game.ID {
			t.Errorf("unexpected games for alice: %d", len(games))
		}

		games, err = store.ListGamesByPlayer(ctx, "stranger")
		if err != nil {
			t.Fatalf("ListGamesByPlayer failed: %v", err)
		}
		if len(games) != 0 {
			t.Errorf("expected no games for stranger, got %d", len(games))
		}
	})
}

func TestSQLiteStoreSettlements(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	game := testGame("group-1")
	if err := store.CreateGame(ctx, game); err != nil {
		t.Fatalf("CreateGame failed: %v", err)
	}

	var settlementID string
	_, err := store.MutateGame(ctx, game.ID, func(g *models.Game) (*storage.GameMutation, error) {
		g.IsCompleted = true
		settlementID = uuid.New().String()
		return &storage.GameMutation{
			Completed: true,
			Settlements: []*models.Settlement{{
				ID: settlementID, GameID: g.ID,
				FromPlayerID: "bob", ToPlayerID: "alice",
				Amount: 42.50, CreatedAt: time.Now().Unix(),
			}},
		}, nil
	})
	if err != nil {
		t.Fatalf("completion failed: %v", err)
	}

	t.Run("toggle flips paid and paid_at", func(t *testing.T) {
		s, err := store.ToggleSettlementPaid(ctx, settlementID)
		if err != nil {
			t.Fatalf("ToggleSettlementPaid failed: %v", err)
		}
		if !s.IsPaid || s.PaidAt == 0 {
			t.Errorf("expected paid with timestamp, got %+v", s)
		}

		s, err = store.ToggleSettlementPaid(ctx, settlementID)
		if err != nil {
			t.Fatalf("second toggle failed: %v", err)
		}
		if s.IsPaid || s.PaidAt != 0 {
			t.Errorf("expected unpaid after double toggle, got %+v", s)
		}
	})

	t.Run("mark paid is one-way", func(t *testing.T) {
		s, err := store.MarkSettlementPaid(ctx, settlementID)
		if err != nil {
			t.Fatalf("MarkSettlementPaid failed: %v", err)
		}
		if !s.IsPaid {
			t.Error("expected paid")
		}
		paidAt := s.PaidAt

		s, err = store.MarkSettlementPaid(ctx, settlementID)
		if err != nil {
			t.Fatalf("repeat MarkSettlementPaid failed: %v", err)
		}
		if !s.IsPaid || s.PaidAt != paidAt {
			t.Errorf("repeat mark must keep state, got %+v", s)
		}
	})

	t.Run("unknown settlement returns ErrNotFound", func(t *testing.T) {
		if _, err := store.ToggleSettlementPaid(ctx, "nope"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("toggle err = %v, want ErrNotFound", err)
		}
		if _, err := store.GetSettlement(ctx, "nope"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("get err = %v, want ErrNotFound", err)
		}
	})

	t.Run("unpaid by player", func(t *testing.T) {
		list, err := store.ListUnpaidSettlementsByPlayer(ctx, "alice")
		if err != nil {
			t.Fatalf("ListUnpaidSettlementsByPlayer failed: %v", err)
		}
		// Settlement is currently paid (marked above).
		if len(list) != 0 {
			t.Errorf("expected no unpaid settlements, got %d", len(list))
		}

		if _, err := store.ToggleSettlementPaid(ctx, settlementID); err != nil {
			t.Fatalf("toggle failed: %v", err)
		}
		list, err = store.ListUnpaidSettlementsByPlayer(ctx, "alice")
		if err != nil {
			t.Fatalf("ListUnpaidSettlementsByPlayer failed: %v", err)
		}
		if len(list) != 1 {
			t.Errorf("expected 1 unpaid settlement, got %d", len(list))
		}
	})
}

func TestSQLiteStorePayments(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("missing record returns ErrNotFound", func(t *testing.T) {
		_, err := store.GetPlayerPayment(ctx, "game-1", "alice")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("toggle creates then flips", func(t *testing.T) {
		game := testGame("group-1")
		if err := store.CreateGame(ctx, game); err != nil {
			t.Fatalf("CreateGame failed: %v", err)
		}

		p, err := store.TogglePlayerPayment(ctx, game.ID, "alice")
		if err != nil {
			t.Fatalf("TogglePlayerPayment failed: %v", err)
		}
		if !p.IsPaid {
			t.Error("first toggle should create the record as paid")
		}

		p, err = store.TogglePlayerPayment(ctx, game.ID, "alice")
		if err != nil {
			t.Fatalf("second toggle failed: %v", err)
		}
		if p.IsPaid {
			t.Error("double toggle should return to unpaid")
		}
	})
}

func TestSQLiteStorePlayersAndGroups(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	player := models.NewPlayer("alice@example.com", "Alice Chen", "", "hash")
	if err := store.CreatePlayer(ctx, player); err != nil {
		t.Fatalf("CreatePlayer failed: %v", err)
	}

	got, err := store.GetPlayerByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("GetPlayerByEmail failed: %v", err)
	}
	if got.ID != player.ID || got.Initials != "AC" {
		t.Errorf("unexpected player: %+v", got)
	}

	group := &models.Group{Name: "Thursday Night", MemberIDs: []string{player.ID}}
	if err := store.CreateGroup(ctx, group); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	if group.InviteCode == "" {
		t.Error("expected invite code to be generated")
	}

	byCode, err := store.GetGroupByInviteCode(ctx, group.InviteCode)
	if err != nil {
		t.Fatalf("GetGroupByInviteCode failed: %v", err)
	}
	if byCode.ID != group.ID || len(byCode.MemberIDs) != 1 {
		t.Errorf("unexpected group: %+v", byCode)
	}

	if err := store.AddGroupMembers(ctx, group.ID, []string{"bob", "bob"}); err != nil {
		t.Fatalf("AddGroupMembers failed: %v", err)
	}
	byCode, _ = store.GetGroup(ctx, group.ID)
	if len(byCode.MemberIDs) != 2 {
		t.Errorf("expected 2 members after duplicate add, got %d", len(byCode.MemberIDs))
	}
}
