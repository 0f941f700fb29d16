package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/homegamehq/homegame/internal/models"
	"github.com/homegamehq/homegame/internal/storage"
)

// GroupService manages groups and membership.
type GroupService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store, logger *slog.Logger) *GroupService {
	return &GroupService{store: store, logger: logger}
}

// Create creates a new group with the creator as its first member. The invite
// code is generated by the store.
func (s *GroupService) Create(ctx context.Context, name, creatorID string) (*models.Group, error) {
	group := &models.Group{
		Name:      name,
		MemberIDs: []string{creatorID},
	}
	if err := s.store.CreateGroup(ctx, group); err != nil {
		s.logger.Error("CreateGroup failed", "name", name, "error", err)
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	s.logger.Info("Group created", "group_id", group.ID, "name", group.Name)
	return group, nil
}

// Get retrieves a group by ID.
func (s *GroupService) Get(ctx context.Context, groupID string) (*models.Group, error) {
	return s.store.GetGroup(ctx, groupID)
}

// Join adds the player to the group matching the invite code and returns the
// group with its refreshed member list. Joining a group twice is a no-op.
func (s *GroupService) Join(ctx context.Context, inviteCode, playerID string) (*models.Group, error) {
	group, err := s.store.GetGroupByInviteCode(ctx, inviteCode)
	if err != nil {
		return nil, err
	}

	if !group.HasMember(playerID) {
		if err := s.store.AddGroupMembers(ctx, group.ID, []string{playerID}); err != nil {
			return nil, fmt.Errorf("failed to add group member: %w", err)
		}
		group.MemberIDs = append(group.MemberIDs, playerID)
		s.logger.Info("Player joined group", "group_id", group.ID, "player_id", playerID)
	}

	return group, nil
}
