package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/foodbook/backend/internal/models"
	"github.com/foodbook/backend/internal/types"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrSelfFollow   = errors.New("cannot follow yourself")
)

// ProfileService handles user profile and follow operations
type ProfileService struct {
	db *gorm.DB
}

// NewProfileService creates a new ProfileService instance
func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

// GetProfile retrieves a user's profile
func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// GetProfileByUsername retrieves a profile by its username
func (s *ProfileService) GetProfileByUsername(ctx context.Context, username string) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile updates the caller's profile fields
func (s *ProfileService) UpdateProfile(ctx context.Context, userID uuid.UUID, firstName, lastName, bio, profileImageURL *string) (*models.UserProfile, error) {
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if firstName != nil {
		profile.FirstName = *firstName
	}
	if lastName != nil {
		profile.LastName = *lastName
	}
	if bio != nil {
		profile.Bio = *bio
	}
	if profileImageURL != nil {
		profile.ProfileImageURL = *profileImageURL
	}

	if err := s.db.WithContext(ctx).Save(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

// Follow makes the caller a follower of the named user. Following twice
// is a no-op.
func (s *ProfileService) Follow(ctx context.Context, followerID uuid.UUID, username string) error {
	target, err := s.GetProfileByUsername(ctx, username)
	if err != nil {
		return err
	}
	if target.UserID == followerID {
		return ErrSelfFollow
	}

	follow := models.UserFollow{FollowerID: followerID, FolloweeID: target.UserID}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "follower_id"}, {Name: "followee_id"}},
		DoNothing: true,
	}).Create(&follow).Error
}

// Unfollow removes the follow edge if present.
func (s *ProfileService) Unfollow(ctx context.Context, followerID uuid.UUID, username string) error {
	target, err := s.GetProfileByUsername(ctx, username)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, target.UserID).
		Delete(&models.UserFollow{}).Error
}

// Followers lists the users following the named user.
func (s *ProfileService) Followers(ctx context.Context, username string) ([]types.UserRef, error) {
	target, err := s.GetProfileByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.userRefs(ctx, "follower_id", "followee_id", target.UserID)
}

// Following lists the users the named user follows.
func (s *ProfileService) Following(ctx context.Context, username string) ([]types.UserRef, error) {
	target, err := s.GetProfileByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.userRefs(ctx, "followee_id", "follower_id", target.UserID)
}

func (s *ProfileService) userRefs(ctx context.Context, selectCol, whereCol string, userID uuid.UUID) ([]types.UserRef, error) {
	var follows []models.UserFollow
	if err := s.db.WithContext(ctx).Where(whereCol+" = ?", userID).Find(&follows).Error; err != nil {
		return nil, err
	}
	if len(follows) == 0 {
		return []types.UserRef{}, nil
	}

	ids := make([]uuid.UUID, 0, len(follows))
	for _, f := range follows {
		if selectCol == "follower_id" {
			ids = append(ids, f.FollowerID)
		} else {
			ids = append(ids, f.FolloweeID)
		}
	}

	var profiles []models.UserProfile
	if err := s.db.WithContext(ctx).Where("user_id IN ?", ids).Find(&profiles).Error; err != nil {
		return nil, err
	}

	refs := make([]types.UserRef, 0, len(profiles))
	for _, p := range profiles {
		refs = append(refs, types.UserRef{ID: p.UserID, Username: p.Username})
	}
	return refs, nil
}

// FollowerCount returns how many users follow the given user.
func (s *ProfileService) FollowerCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.UserFollow{}).
		Where("followee_id = ?", userID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CreatorSummary builds the creator block attached to recipe payloads.
// An absent profile yields an empty summary rather than an error.
func (s *ProfileService) CreatorSummary(ctx context.Context, userID uuid.UUID) (types.CreatorSummary, error) {
	summary := types.CreatorSummary{ID: userID}

	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return summary, nil
		}
		return summary, err
	}

	count, err := s.FollowerCount(ctx, userID)
	if err != nil {
		return summary, err
	}

	summary.FirstName = profile.FirstName
	summary.LastName = profile.LastName
	summary.ProfileImageURL = profile.ProfileImageURL
	summary.FollowersCount = count
	return summary, nil
}
