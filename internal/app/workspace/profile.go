package workspace

import (
	"time"

	"github.com/yigit/studyhub/internal/app/models"
	"github.com/yigit/studyhub/internal/pkg/collection"
	"github.com/yigit/studyhub/internal/pkg/notification"
)

// ProfilePatch carries the editable profile fields. Nil fields are left as is.
type ProfilePatch struct {
	Name              string
	ProfilePicture    *string
	Bio               *string
	Education         *string
	Location          *string
	ProfileVisibility models.ProfileVisibility
}

// Profile returns the owner's profile and whether it has been loaded from the
// identity backend.
func (w *Workspace) Profile() (models.User, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.profile, w.profileLoaded
}

// ProfileLoaded reports whether the profile has been hydrated.
func (w *Workspace) ProfileLoaded() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.profileLoaded
}

// SetProfile installs the profile row fetched from the identity backend.
func (w *Workspace) SetProfile(user models.User) {
	w.mu.Lock()
	defer w.mu.Unlock()

	user.ID = w.ownerID
	w.profile = user
	w.profileLoaded = true
}

// PreviewProfile returns the profile with patch applied without changing
// the workspace.
func (w *Workspace) PreviewProfile(patch ProfilePatch) (models.User, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	return patch.applyTo(w.profile)
}

// UpdateProfile shallow-merges patch into the profile.
func (w *Workspace) UpdateProfile(patch ProfilePatch) (models.User, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	merged, err := patch.applyTo(w.profile)
	if err != nil {
		return w.profile, err
	}
	w.profile = merged
	w.recordActivity(models.ActivityProfileUpdate, "Updated profile", merged.Name, merged.ID)
	w.notify(notification.KindSuccess, "Profile Updated", "Your profile changes have been saved.")
	return merged, nil
}

func (p ProfilePatch) applyTo(current models.User) (models.User, error) {
	return collection.MergePatch(current, models.User{
		Name:              p.Name,
		ProfilePicture:    p.ProfilePicture,
		Bio:               p.Bio,
		Education:         p.Education,
		Location:          p.Location,
		ProfileVisibility: p.ProfileVisibility,
	})
}

// Follow records that the owner follows target and bumps the following counter.
// Following someone twice returns the existing record.
func (w *Workspace) Follow(target models.User) models.Follow {
	w.mu.Lock()
	defer w.mu.Unlock()

	if existing, ok := w.findFollowLocked(target.ID); ok {
		return existing
	}
	follow := w.follows.Create(func(id string, now time.Time) models.Follow {
		return models.Follow{
			ID:           id,
			FollowerID:   w.ownerID,
			FolloweeID:   target.ID,
			FolloweeName: target.Name,
			CreatedAt:    now,
		}
	})
	w.profile.Following++
	w.recordActivity(models.ActivityFollow, "Followed "+target.Name, "", target.ID)
	w.notify(notification.KindSuccess, "Following", "You are now following "+target.Name+".")
	w.metrics.EntityCreated("follow")
	return follow
}

// Unfollow drops the follow record for followeeID. Unknown ids only notify.
func (w *Workspace) Unfollow(followeeID string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	existing, ok := w.findFollowLocked(followeeID)
	if ok {
		w.follows.Delete(existing.ID)
		if w.profile.Following > 0 {
			w.profile.Following--
		}
		w.metrics.EntityDeleted("follow")
	}
	w.notify(notification.KindInfo, "Unfollowed", "You are no longer following this user.")
	return ok
}

// IsFollowing reports whether the owner follows userID.
func (w *Workspace) IsFollowing(userID string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	_, ok := w.findFollowLocked(userID)
	return ok
}

// Follows lists the users the owner follows, newest first.
func (w *Workspace) Follows() []models.Follow {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.follows.Items()
}

// AdjustFollowers changes the owner's follower counter by delta, never below zero.
func (w *Workspace) AdjustFollowers(delta int) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.profile.Followers += delta
	if w.profile.Followers < 0 {
		w.profile.Followers = 0
	}
}

func (w *Workspace) findFollowLocked(followeeID string) (models.Follow, bool) {
	matches := w.follows.Filter(func(f models.Follow) bool { return f.FolloweeID == followeeID })
	if len(matches) == 0 {
		return models.Follow{}, false
	}
	return matches[0], true
}
