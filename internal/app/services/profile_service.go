package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/studyhub/internal/app/gateway"
	"github.com/yigit/studyhub/internal/app/models"
	"github.com/yigit/studyhub/internal/app/workspace"
	"github.com/yigit/studyhub/internal/pkg/apperrors"
	"github.com/yigit/studyhub/internal/pkg/filestorage"
)

// ProfileService handles the profile and the social graph
type ProfileService interface {
	UpdateProfile(ctx context.Context, w *workspace.Workspace, patch workspace.ProfilePatch) (models.User, error)
	UploadProfilePicture(ctx context.Context, w *workspace.Workspace, file *multipart.FileHeader) (models.User, error)
	GetUser(ctx context.Context, userID string) (*models.User, error)
	Follow(ctx context.Context, w *workspace.Workspace, userID, fallbackName string) (models.Follow, error)
	Unfollow(ctx context.Context, w *workspace.Workspace, userID string) bool
}

type profileServiceImpl struct {
	gateway  gateway.Gateway
	registry *workspace.Registry
	storage  filestorage.FileStorage
	logger   zerolog.Logger
}

// NewProfileService creates a new ProfileService
func NewProfileService(gw gateway.Gateway, registry *workspace.Registry, storage filestorage.FileStorage, logger zerolog.Logger) ProfileService {
	return &profileServiceImpl{
		gateway:  gw,
		registry: registry,
		storage:  storage,
		logger:   logger,
	}
}

// UpdateProfile writes the patched row to the identity backend before
// applying the patch to the workspace. A failed write leaves the profile,
// activity log and notifications unchanged.
func (s *profileServiceImpl) UpdateProfile(ctx context.Context, w *workspace.Workspace, patch workspace.ProfilePatch) (models.User, error) {
	candidate, err := w.PreviewProfile(patch)
	if err != nil {
		return models.User{}, err
	}

	if err := s.gateway.UpdateProfile(ctx, &candidate); err != nil {
		s.logger.Error().Err(err).Str("user_id", candidate.ID).Msg("Failed to persist profile")
		return models.User{}, fmt.Errorf("persist profile: %w", err)
	}
	return w.UpdateProfile(patch)
}

// UploadProfilePicture stores an image and points the profile at it
func (s *profileServiceImpl) UploadProfilePicture(ctx context.Context, w *workspace.Workspace, file *multipart.FileHeader) (models.User, error) {
	if err := requireImage(file); err != nil {
		return models.User{}, err
	}

	url, err := s.storage.SaveFileWithPath(file, "profile_pictures/"+w.OwnerID())
	if err != nil {
		return models.User{}, fmt.Errorf("error uploading file: %w", err)
	}

	previous, _ := w.Profile()
	updated, err := s.UpdateProfile(ctx, w, workspace.ProfilePatch{ProfilePicture: &url})
	if err != nil {
		_ = s.storage.DeleteFile(url)
		return models.User{}, err
	}

	if previous.ProfilePicture != nil && *previous.ProfilePicture != url {
		if err := s.storage.DeleteFile(*previous.ProfilePicture); err != nil {
			s.logger.Warn().Err(err).Str("user_id", w.OwnerID()).Msg("Failed to delete old profile picture")
		}
	}
	return updated, nil
}

// GetUser returns another user's profile row
func (s *profileServiceImpl) GetUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.gateway.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.NewResourceNotFoundError("user not found")
		}
		return nil, err
	}
	return user, nil
}

// Follow makes the workspace owner follow userID. The target's follower
// count changes only in its own open workspace.
func (s *profileServiceImpl) Follow(ctx context.Context, w *workspace.Workspace, userID, fallbackName string) (models.Follow, error) {
	if userID == w.OwnerID() {
		return models.Follow{}, apperrors.NewBadRequestError("you cannot follow yourself")
	}

	target := models.User{ID: userID, Name: fallbackName}
	if user, err := s.gateway.GetProfile(ctx, userID); err == nil {
		target = *user
	} else if !errors.Is(err, apperrors.ErrUserNotFound) {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("Failed to load followed profile")
	}

	already := w.IsFollowing(userID)
	follow := w.Follow(target)
	if !already {
		s.adjustFollowers(userID, 1)
	}
	return follow, nil
}

// Unfollow removes the follow, if any
func (s *profileServiceImpl) Unfollow(_ context.Context, w *workspace.Workspace, userID string) bool {
	removed := w.Unfollow(userID)
	if removed {
		s.adjustFollowers(userID, -1)
	}
	return removed
}

func (s *profileServiceImpl) adjustFollowers(userID string, delta int) {
	if s.registry == nil {
		return
	}
	if target, err := s.registry.Get(userID); err == nil {
		target.AdjustFollowers(delta)
	}
}

func requireImage(file *multipart.FileHeader) error {
	if file == nil {
		return apperrors.NewBadRequestError("file is required")
	}
	if contentType := file.Header.Get("Content-Type"); !strings.HasPrefix(contentType, "image/") {
		return apperrors.NewBadRequestError(fmt.Sprintf("file is not an image: %s", contentType))
	}
	return nil
}
