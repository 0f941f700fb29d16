package api

import "github.com/homegamehq/homegame/internal/models"

// Wire representations live here, separate from the domain models, so the
// domain can change shape without silently changing the API.

type playerResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Initials  string `json:"initials"`
	Email     string `json:"email"`
	CreatedAt int64  `json:"created_at"`
}

func toPlayerResponse(p *models.Player) playerResponse {
	return playerResponse{
		ID:        p.ID,
		Name:      p.Name,
		Initials:  p.Initials,
		Email:     p.Email,
		CreatedAt: p.CreatedAt,
	}
}

type sessionResponse struct {
	Player playerResponse `json:"player"`
	Token  string         `json:"token"`
}

type groupResponse struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	InviteCode string   `json:"invite_code"`
	MemberIDs  []string `json:"member_ids"`
	CreatedAt  int64    `json:"created_at"`
}

func toGroupResponse(g *models.Group) groupResponse {
	return groupResponse{
		ID:         g.ID,
		Name:       g.Name,
		InviteCode: g.InviteCode,
		MemberIDs:  g.MemberIDs,
		CreatedAt:  g.CreatedAt,
	}
}

type gamePlayerResponse struct {
	PlayerID     string  `json:"player_id"`
	BuyIn        float64 `json:"buy_in"`
	RebuyAmount  float64 `json:"rebuy_amount"`
	Rebuys       int     `json:"rebuys"`
	CashOut      float64 `json:"cash_out"`
	Profit       float64 `json:"profit"`
	HasCashedOut bool    `json:"has_cashed_out"`
	OptedInAt    int64   `json:"opted_in_at"`
	CashedOutAt  int64   `json:"cashed_out_at,omitempty"`
}

type gameResponse struct {
	ID           string               `json:"id"`
	GroupID      string               `json:"group_id"`
	Date         int64                `json:"date"`
	Stakes       string               `json:"stakes"`
	DefaultBuyIn float64              `json:"default_buy_in"`
	BankPersonID string               `json:"bank_person_id,omitempty"`
	IsCompleted  bool                 `json:"is_completed"`
	StartTime    int64                `json:"start_time"`
	EndTime      int64                `json:"end_time,omitempty"`
	Duration     int64                `json:"duration,omitempty"`
	Players      []gamePlayerResponse `json:"players"`
}

func toGameResponse(g *models.Game) gameResponse {
	resp := gameResponse{
		ID:           g.ID,
		GroupID:      g.GroupID,
		Date:         g.Date,
		Stakes:       g.Stakes,
		DefaultBuyIn: g.DefaultBuyIn,
		BankPersonID: g.BankPersonID,
		IsCompleted:  g.IsCompleted,
		StartTime:    g.StartTime,
		EndTime:      g.EndTime,
		Duration:     g.Duration,
		Players:      make([]gamePlayerResponse, 0, len(g.Players)),
	}
	for i := range g.Players {
		p := &g.Players[i]
		resp.Players = append(resp.Players, gamePlayerResponse{
			PlayerID:     p.PlayerID,
			BuyIn:        p.BuyIn,
			RebuyAmount:  p.RebuyAmount,
			Rebuys:       p.Rebuys,
			CashOut:      p.CashOut,
			Profit:       p.Profit,
			HasCashedOut: p.HasCashedOut,
			OptedInAt:    p.OptedInAt,
			CashedOutAt:  p.CashedOutAt,
		})
	}
	return resp
}

func toGameListResponse(games []*models.Game) []gameResponse {
	resp := make([]gameResponse, 0, len(games))
	for _, g := range games {
		resp = append(resp, toGameResponse(g))
	}
	return resp
}

type playerResultResponse struct {
	PlayerID     string  `json:"player_id"`
	Invested     float64 `json:"invested"`
	CashOut      float64 `json:"cash_out"`
	Profit       float64 `json:"profit"`
	HasCashedOut bool    `json:"has_cashed_out"`
}

type summaryResponse struct {
	GameID        string                 `json:"game_id"`
	IsCompleted   bool                   `json:"is_completed"`
	TotalBuyIns   float64                `json:"total_buy_ins"`
	TotalCashOuts float64                `json:"total_cash_outs"`
	Balanced      bool                   `json:"balanced"`
	Players       []playerResultResponse `json:"players"`
}

func toSummaryResponse(s models.GameSummary) summaryResponse {
	resp := summaryResponse{
		GameID:        s.GameID,
		IsCompleted:   s.IsCompleted,
		TotalBuyIns:   s.TotalBuyIns,
		TotalCashOuts: s.TotalCashOuts,
		Balanced:      s.Balanced,
		Players:       make([]playerResultResponse, 0, len(s.Players)),
	}
	for _, p := range s.Players {
		resp.Players = append(resp.Players, playerResultResponse(p))
	}
	return resp
}

type settlementResponse struct {
	ID           string  `json:"id"`
	GameID       string  `json:"game_id"`
	FromPlayerID string  `json:"from_player_id"`
	ToPlayerID   string  `json:"to_player_id"`
	Amount       float64 `json:"amount"`
	IsPaid       bool    `json:"is_paid"`
	CreatedAt    int64   `json:"created_at"`
	PaidAt       int64   `json:"paid_at,omitempty"`
}

func toSettlementResponse(s *models.Settlement) settlementResponse {
	return settlementResponse{
		ID:           s.ID,
		GameID:       s.GameID,
		FromPlayerID: s.FromPlayerID,
		ToPlayerID:   s.ToPlayerID,
		Amount:       s.Amount,
		IsPaid:       s.IsPaid,
		CreatedAt:    s.CreatedAt,
		PaidAt:       s.PaidAt,
	}
}

func toSettlementListResponse(settlements []*models.Settlement) []settlementResponse {
	resp := make([]settlementResponse, 0, len(settlements))
	for _, s := range settlements {
		resp = append(resp, toSettlementResponse(s))
	}
	return resp
}

type completeResponse struct {
	Game             gameResponse         `json:"game"`
	AlreadyCompleted bool                 `json:"already_completed"`
	Unbalanced       bool                 `json:"unbalanced,omitempty"`
	Settlements      []settlementResponse `json:"settlements"`
}

type paymentResponse struct {
	GameID    string `json:"game_id"`
	PlayerID  string `json:"player_id"`
	IsPaid    bool   `json:"is_paid"`
	UpdatedAt int64  `json:"updated_at,omitempty"`
}

func toPaymentResponse(p *models.PlayerPayment) paymentResponse {
	return paymentResponse(*p)
}

type balanceResponse struct {
	TotalProfit  float64 `json:"total_profit"`
	TotalLoss    float64 `json:"total_loss"`
	OwedByOthers float64 `json:"owed_by_others"`
	OwesToOthers float64 `json:"owes_to_others"`
	NetBalance   float64 `json:"net_balance"`
	GamesPlayed  int     `json:"games_played"`
}

func toBalanceResponse(b *models.PlayerBalance) balanceResponse {
	return balanceResponse(*b)
}
