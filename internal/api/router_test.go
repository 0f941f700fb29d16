package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/homegamehq/homegame/internal/auth"
	"github.com/homegamehq/homegame/internal/service"
	"github.com/homegamehq/homegame/internal/storage/sqlite"
)

type testAPI struct {
	server *httptest.Server
	token  string
}

func setupTestAPI(t *testing.T) *testAPI {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "homegame-api-test-*")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	jwtManager := auth.NewJWTManager("test-secret-key-for-tests-only", time.Hour)
	authenticator := auth.NewPasswordAuthenticator(store)

	svcs := Services{
		Auth:        service.NewAuthService(authenticator, jwtManager, logger),
		Groups:      service.NewGroupService(store, logger),
		Games:       service.NewGameService(store, logger, nil),
		Settlements: service.NewSettlementService(store, logger),
		Payments:    service.NewPaymentService(store, logger),
		Balances:    service.NewBalanceService(store, logger),
	}

	server := httptest.NewServer(NewRouter(svcs, jwtManager, logger, nil, nil))
	t.Cleanup(server.Close)

	return &testAPI{server: server}
}

// do sends a JSON request, decodes the envelope's data into out (when out is
// non-nil) and returns the status code.
func (a *testAPI) do(t *testing.T, method, path string, body any, out any) int {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, a.server.URL+path, reqBody)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < http.StatusBadRequest {
		var envelope struct {
			Data json.RawMessage `json:"data"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
		require.NoError(t, json.Unmarshal(envelope.Data, out))
	}
	return resp.StatusCode
}

func (a *testAPI) register(t *testing.T, email, name string) playerResponse {
	t.Helper()
	var session sessionResponse
	status := a.do(t, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email":    email,
		"name":     name,
		"password": "secret-pw-1",
	}, &session)
	require.Equal(t, http.StatusCreated, status)
	a.token = session.Token
	return session.Player
}

func TestAuthEndpoints(t *testing.T) {
	a := setupTestAPI(t)

	player := a.register(t, "alice@example.com", "Alice Chen")
	require.NotEmpty(t, player.ID)
	require.Equal(t, "AC", player.Initials)

	t.Run("duplicate email conflicts", func(t *testing.T) {
		status := a.do(t, http.MethodPost, "/api/v1/auth/register", map[string]string{
			"email":    "alice@example.com",
			"name":     "Other Alice",
			"password": "secret-pw-2",
		}, nil)
		require.Equal(t, http.StatusConflict, status)
	})

	t.Run("login round trip", func(t *testing.T) {
		var session sessionResponse
		status := a.do(t, http.MethodPost, "/api/v1/auth/login", map[string]string{
			"email":    "alice@example.com",
			"password": "secret-pw-1",
		}, &session)
		require.Equal(t, http.StatusOK, status)
		require.Equal(t, player.ID, session.Player.ID)
		require.NotEmpty(t, session.Token)
	})

	t.Run("wrong password unauthorized", func(t *testing.T) {
		status := a.do(t, http.MethodPost, "/api/v1/auth/login", map[string]string{
			"email":    "alice@example.com",
			"password": "wrong-password",
		}, nil)
		require.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("invalid email rejected", func(t *testing.T) {
		status := a.do(t, http.MethodPost, "/api/v1/auth/register", map[string]string{
			"email":    "not-an-email",
			"name":     "X",
			"password": "secret-pw-1",
		}, nil)
		require.Equal(t, http.StatusBadRequest, status)
	})
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	a := setupTestAPI(t)

	status := a.do(t, http.MethodGet, "/api/v1/players/me/balance", nil, nil)
	require.Equal(t, http.StatusUnauthorized, status)

	a.token = "garbage"
	status = a.do(t, http.MethodGet, "/api/v1/players/me/balance", nil, nil)
	require.Equal(t, http.StatusUnauthorized, status)
}

func TestHealthz(t *testing.T) {
	a := setupTestAPI(t)
	status := a.do(t, http.MethodGet, "/healthz", nil, nil)
	require.Equal(t, http.StatusOK, status)
}

// TestGameFlow walks a full session over HTTP: group, game, opt-ins, rebuys,
// cash-outs, auto-completion, settlements and payments.
func TestGameFlow(t *testing.T) {
	a := setupTestAPI(t)
	alice := a.register(t, "alice@example.com", "Alice Chen")
	aliceToken := a.token
	bob := a.register(t, "bob@example.com", "Bob Diaz")
	a.token = aliceToken

	var group groupResponse
	status := a.do(t, http.MethodPost, "/api/v1/groups", map[string]string{"name": "Thursday Night"}, &group)
	require.Equal(t, http.StatusCreated, status)
	require.NotEmpty(t, group.InviteCode)

	var game gameResponse
	status = a.do(t, http.MethodPost, "/api/v1/games", map[string]any{
		"group_id":       group.ID,
		"stakes":         "$0.25/$0.50",
		"default_buy_in": 100,
		"bank_person_id": alice.ID,
	}, &game)
	require.Equal(t, http.StatusCreated, status)

	gamePath := "/api/v1/games/" + game.ID

	// Alice opts in with the default buy-in, bob with an explicit one.
	status = a.do(t, http.MethodPost, gamePath+"/players", map[string]any{}, &game)
	require.Equal(t, http.StatusOK, status)
	status = a.do(t, http.MethodPost, gamePath+"/players", map[string]any{
		"player_id": bob.ID,
		"buy_in":    100,
	}, &game)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, game.Players, 2)
	require.Equal(t, 100.0, game.Players[0].BuyIn)

	t.Run("rebuy updates profit", func(t *testing.T) {
		status := a.do(t, http.MethodPost, fmt.Sprintf("%s/players/%s/rebuys", gamePath, bob.ID),
			map[string]any{"amount": 50}, &game)
		require.Equal(t, http.StatusOK, status)
		require.Equal(t, -150.0, game.Players[1].Profit)
	})

	t.Run("rebuy for unknown player is 404", func(t *testing.T) {
		status := a.do(t, http.MethodPost, gamePath+"/players/stranger/rebuys",
			map[string]any{"amount": 50}, nil)
		require.Equal(t, http.StatusNotFound, status)
	})

	t.Run("negative cash-out is 400", func(t *testing.T) {
		status := a.do(t, http.MethodPost, fmt.Sprintf("%s/players/%s/cashout", gamePath, alice.ID),
			map[string]any{"amount": -1}, nil)
		require.Equal(t, http.StatusBadRequest, status)
	})

	// 250 on the table: alice 100, bob 150. Alice takes 200, bob 50.
	var completed completeResponse
	status = a.do(t, http.MethodPost, fmt.Sprintf("%s/players/%s/cashout", gamePath, alice.ID),
		map[string]any{"amount": 200}, &completed)
	require.Equal(t, http.StatusOK, status)
	require.False(t, completed.Game.IsCompleted)

	status = a.do(t, http.MethodPost, fmt.Sprintf("%s/players/%s/cashout", gamePath, bob.ID),
		map[string]any{"amount": 50}, &completed)
	require.Equal(t, http.StatusOK, status)
	require.True(t, completed.Game.IsCompleted)
	require.Len(t, completed.Settlements, 1)
	require.Equal(t, bob.ID, completed.Settlements[0].FromPlayerID)
	require.Equal(t, alice.ID, completed.Settlements[0].ToPlayerID)
	require.InDelta(t, 100, completed.Settlements[0].Amount, 0.001)

	t.Run("mutations after completion conflict", func(t *testing.T) {
		status := a.do(t, http.MethodPost, gamePath+"/players", map[string]any{"buy_in": 100}, nil)
		require.Equal(t, http.StatusConflict, status)
	})

	t.Run("repeat completion reports already completed", func(t *testing.T) {
		var res completeResponse
		status := a.do(t, http.MethodPost, gamePath+"/complete", nil, &res)
		require.Equal(t, http.StatusOK, status)
		require.True(t, res.AlreadyCompleted)
		require.Len(t, res.Settlements, 1)
	})

	t.Run("summary balances", func(t *testing.T) {
		var summary summaryResponse
		status := a.do(t, http.MethodGet, gamePath+"/summary", nil, &summary)
		require.Equal(t, http.StatusOK, status)
		require.True(t, summary.Balanced)
		require.InDelta(t, 250, summary.TotalBuyIns, 0.001)
		require.InDelta(t, 250, summary.TotalCashOuts, 0.001)
	})

	settlementID := completed.Settlements[0].ID

	t.Run("settlement toggle", func(t *testing.T) {
		var s settlementResponse
		status := a.do(t, http.MethodPost, "/api/v1/settlements/"+settlementID+"/toggle", nil, &s)
		require.Equal(t, http.StatusOK, status)
		require.True(t, s.IsPaid)

		status = a.do(t, http.MethodPost, "/api/v1/settlements/"+settlementID+"/toggle", nil, &s)
		require.Equal(t, http.StatusOK, status)
		require.False(t, s.IsPaid)
	})

	t.Run("settlement preview", func(t *testing.T) {
		var preview []settlementResponse
		status := a.do(t, http.MethodGet, gamePath+"/settlements/preview", nil, &preview)
		require.Equal(t, http.StatusOK, status)
		require.Len(t, preview, 1)
	})

	t.Run("payment toggle", func(t *testing.T) {
		var p paymentResponse
		status := a.do(t, http.MethodGet, fmt.Sprintf("%s/payments/%s", gamePath, bob.ID), nil, &p)
		require.Equal(t, http.StatusOK, status)
		require.False(t, p.IsPaid)

		status = a.do(t, http.MethodPost, fmt.Sprintf("%s/payments/%s/toggle", gamePath, bob.ID), nil, &p)
		require.Equal(t, http.StatusOK, status)
		require.True(t, p.IsPaid)
	})

	t.Run("balance reflects completed game", func(t *testing.T) {
		var b balanceResponse
		status := a.do(t, http.MethodGet, "/api/v1/players/me/balance", nil, &b)
		require.Equal(t, http.StatusOK, status)
		require.InDelta(t, 100, b.TotalProfit, 0.001)
		require.Equal(t, b.TotalProfit, b.NetBalance)
		require.Equal(t, 1, b.GamesPlayed)
	})

	t.Run("group games list", func(t *testing.T) {
		var games []gameResponse
		status := a.do(t, http.MethodGet, "/api/v1/groups/"+group.ID+"/games", nil, &games)
		require.Equal(t, http.StatusOK, status)
		require.Len(t, games, 1)
	})

	t.Run("unknown game is 404", func(t *testing.T) {
		status := a.do(t, http.MethodGet, "/api/v1/games/nope", nil, nil)
		require.Equal(t, http.StatusNotFound, status)
	})
}

func TestJoinGroupByInviteCode(t *testing.T) {
	a := setupTestAPI(t)
	a.register(t, "alice@example.com", "Alice Chen")

	var group groupResponse
	status := a.do(t, http.MethodPost, "/api/v1/groups", map[string]string{"name": "Home Game"}, &group)
	require.Equal(t, http.StatusCreated, status)

	bob := a.register(t, "bob@example.com", "Bob Diaz")

	var joined groupResponse
	status = a.do(t, http.MethodPost, "/api/v1/groups/join",
		map[string]string{"invite_code": group.InviteCode}, &joined)
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, joined.MemberIDs, bob.ID)

	t.Run("unknown invite code is 404", func(t *testing.T) {
		status := a.do(t, http.MethodPost, "/api/v1/groups/join",
			map[string]string{"invite_code": "NOPE99"}, nil)
		require.Equal(t, http.StatusNotFound, status)
	})
}
