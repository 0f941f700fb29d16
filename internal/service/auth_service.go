package service

import (
	"context"
	"log/slog"

	"github.com/homegamehq/homegame/internal/auth"
	"github.com/homegamehq/homegame/internal/models"
)

// AuthService handles registration and login, pairing the pluggable
// authenticator with JWT session tokens.
type AuthService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	logger        *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager, logger *slog.Logger) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		logger:        logger,
	}
}

// Register creates a new player account and returns it with a session token.
func (s *AuthService) Register(ctx context.Context, email, name, password string) (*models.Player, string, error) {
	player, err := s.authenticator.Register(ctx, email, name, password)
	if err != nil {
		s.logger.Warn("Registration failed", "email", email, "error", err)
		return nil, "", err
	}

	token, err := s.jwtManager.Generate(player)
	if err != nil {
		s.logger.Error("Failed to generate token", "player_id", player.ID, "error", err)
		return nil, "", err
	}

	s.logger.Info("Player registered", "player_id", player.ID, "email", player.Email)
	return player, token, nil
}

// Login authenticates a player and returns them with a session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.Player, string, error) {
	player, err := s.authenticator.Authenticate(ctx, email, password)
	if err != nil {
		s.logger.Warn("Login failed", "email", email, "error", err)
		return nil, "", err
	}

	token, err := s.jwtManager.Generate(player)
	if err != nil {
		s.logger.Error("Failed to generate token", "player_id", player.ID, "error", err)
		return nil, "", err
	}

	s.logger.Info("Player logged in", "player_id", player.ID, "email", player.Email)
	return player, token, nil
}
