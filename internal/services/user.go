package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"fetenahub-backend/internal/auth"
	"fetenahub-backend/internal/models"
	"fetenahub-backend/internal/repository"

	"github.com/google/uuid"
)

// UserService handles user-related business logic
type UserService struct {
	userRepo   UserRepository
	followRepo FollowRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo UserRepository, followRepo FollowRepository) *UserService {
	return &UserService{
		userRepo:   userRepo,
		followRepo: followRepo,
	}
}

// VerifyAuth resolves a verified Telegram identity to a local user, creating
// the user on first sight and refreshing the avatar when it changed.
func (s *UserService) VerifyAuth(ctx context.Context, tgUser auth.TelegramUser) (*models.User, error) {
	telegramID := strconv.FormatInt(tgUser.ID, 10)

	user, err := s.userRepo.GetByTelegramID(ctx, telegramID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("failed to look up user: %w", err)
		}

		username := tgUser.Username
		if username == "" {
			username = "user_" + lastN(telegramID, 6)
		}

		user = &models.User{
			ID:         uuid.New().String(),
			TelegramID: telegramID,
			Username:   username,
			Bio:        "",
			AvatarURL:  tgUser.PhotoURL,
			CreatedAt:  time.Now().UTC(),
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		return user, nil
	}

	if tgUser.PhotoURL != "" && user.AvatarURL != tgUser.PhotoURL {
		if err := s.userRepo.UpdateAvatar(ctx, user.ID, tgUser.PhotoURL); err != nil {
			return nil, fmt.Errorf("failed to update avatar: %w", err)
		}
		user.AvatarURL = tgUser.PhotoURL
	}
	return user, nil
}

// GetProfile returns the caller's own profile with follow counts
func (s *UserService) GetProfile(ctx context.Context, telegramID string) (*models.User, error) {
	user, err := s.userRepo.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	if err := s.attachCounts(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetProfileByID returns another user's profile with follow counts and
// whether the viewer follows them.
func (s *UserService) GetProfileByID(ctx context.Context, viewerTelegramID, userID string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	viewer, err := s.userRepo.GetByTelegramID(ctx, viewerTelegramID)
	if err != nil {
		return nil, err
	}

	if err := s.attachCounts(ctx, user); err != nil {
		return nil, err
	}

	isFollowing, err := s.followRepo.Exists(ctx, viewer.ID, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check follow: %w", err)
	}
	user.IsFollowing = &isFollowing
	return user, nil
}

// UpdateProfileRequest carries a partial profile update; nil fields are left
// unchanged.
type UpdateProfileRequest struct {
	Username  *string `json:"username"`
	Bio       *string `json:"bio"`
	AvatarURL *string `json:"avatar_url"`
}

// UpdateProfile applies a partial update to the caller's profile
func (s *UserService) UpdateProfile(ctx context.Context, telegramID string, req UpdateProfileRequest) (*models.User, error) {
	user, err := s.userRepo.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.AvatarURL != nil {
		user.AvatarURL = *req.AvatarURL
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) attachCounts(ctx context.Context, user *models.User) error {
	followers, err := s.userRepo.CountFollowers(ctx, user.ID)
	if err != nil {
		return err
	}
	following, err := s.userRepo.CountFollowing(ctx, user.ID)
	if err != nil {
		return err
	}
	user.FollowersCount = followers
	user.FollowingCount = following
	return nil
}

// lastN returns the last n characters of s, or s itself when shorter.
func lastN(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
