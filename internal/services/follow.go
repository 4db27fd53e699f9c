package services

import (
	"context"
	"fmt"
	"time"

	"fetenahub-backend/internal/models"
)

// FollowService handles follow-graph business logic
type FollowService struct {
	followRepo FollowRepository
	userRepo   UserRepository
}

// NewFollowService creates a new follow service
func NewFollowService(followRepo FollowRepository, userRepo UserRepository) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// Follow creates a follow edge from the caller to the target user. Repeating
// the request is a no-op.
func (s *FollowService) Follow(ctx context.Context, followerTelegramID, targetUserID string) error {
	follower, err := s.userRepo.GetByTelegramID(ctx, followerTelegramID)
	if err != nil {
		return err
	}

	if follower.ID == targetUserID {
		return ErrSelfFollow
	}

	// Target must exist; a dangling edge would corrupt the feed query.
	if _, err := s.userRepo.GetByID(ctx, targetUserID); err != nil {
		return err
	}

	follow := &models.Follow{
		FollowerID:  follower.ID,
		FollowingID: targetUserID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.followRepo.Create(ctx, follow); err != nil {
		return fmt.Errorf("failed to follow: %w", err)
	}
	return nil
}

// Unfollow removes the follow edge from the caller to the target user
func (s *FollowService) Unfollow(ctx context.Context, followerTelegramID, targetUserID string) error {
	follower, err := s.userRepo.GetByTelegramID(ctx, followerTelegramID)
	if err != nil {
		return err
	}
	return s.followRepo.Delete(ctx, follower.ID, targetUserID)
}
