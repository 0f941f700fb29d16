// Package models defines the core domain records for the home-game ledger.
//
// # Model Overview
//
//   - Player: a registered account; referenced by id everywhere else
//   - Group: a named set of player ids with an invite code
//   - Game: one poker session, the central mutable aggregate
//   - GamePlayer: one player's participation in a game (buy-in, rebuys, cash-out)
//   - Settlement: a directed debt computed when a game completes
//   - PlayerPayment: an informal per-(game, player) "we're square" flag
//   - PlayerBalance: derived totals, recomputed on every query, never persisted
//
// # Design Principles
//
// 1. **Derived money is never stored independently**: GamePlayer.Profit is
// always recomputed from CashOut, BuyIn and RebuyAmount by every mutation.
// 2. **Completion freezes the aggregate**: once Game.IsCompleted is true the
// player list and all per-player amounts are immutable. The state machine in
// internal/game enforces this, not the storage layer.
// 3. **Avoid circular references**: relationships use id strings, not pointers.
package models
