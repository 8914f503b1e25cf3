package workspace

import (
	"time"

	"github.com/yigit/studyhub/internal/app/models"
	"github.com/yigit/studyhub/internal/pkg/apperrors"
	"github.com/yigit/studyhub/internal/pkg/collection"
	"github.com/yigit/studyhub/internal/pkg/notification"
)

// CommunityDraft is a community as submitted by the create form.
type CommunityDraft struct {
	Name        string
	Description string
	PosterURL   *string
	IsPrivate   bool
	Tags        []string
}

// CreateCommunity creates a community. The creator joins it immediately.
func (w *Workspace) CreateCommunity(d CommunityDraft) models.Community {
	w.mu.Lock()
	defer w.mu.Unlock()

	created := w.communities.Create(func(id string, now time.Time) models.Community {
		return models.Community{
			ID:          id,
			Name:        d.Name,
			Description: d.Description,
			PosterURL:   d.PosterURL,
			CreatorID:   w.ownerID,
			MemberCount: 1,
			IsPrivate:   d.IsPrivate,
			Tags:        cloneStrings(d.Tags),
			CreatedDate: now,
		}
	})
	w.memberships.Join(w.ownerID, created.ID)
	return w.withMembership(created)
}

// Communities lists communities matching q, newest first, with IsMember
// computed for the owner.
func (w *Workspace) Communities(q collection.Query[models.Community]) []models.Community {
	w.mu.Lock()
	defer w.mu.Unlock()

	items := w.communities.Items()
	for i := range items {
		items[i] = w.withMembership(items[i])
	}
	return q.Apply(items)
}

// Community returns a single community.
func (w *Workspace) Community(id string) (models.Community, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	c, ok := w.communities.Find(id)
	if !ok {
		return models.Community{}, apperrors.ErrCommunityNotFound
	}
	return w.withMembership(c), nil
}

// DeleteCommunity removes a community. Its posts are kept.
func (w *Workspace) DeleteCommunity(id string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.communities.Delete(id)
}

// JoinCommunity adds the owner to a community. Joining twice is a no-op.
func (w *Workspace) JoinCommunity(id string) (models.Community, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	c, ok := w.communities.Find(id)
	if !ok {
		return models.Community{}, apperrors.ErrCommunityNotFound
	}
	if !w.memberships.Join(w.ownerID, id) {
		return w.withMembership(c), nil
	}

	c, _ = w.communities.Update(id, func(c models.Community) models.Community {
		c.MemberCount++
		return c
	})
	w.recordActivity(models.ActivityCommunityJoin, "Joined a community", c.Name, c.ID)
	w.notify(notification.KindSuccess, "Joined Community", "Welcome to \""+c.Name+"\".")
	return w.withMembership(c), nil
}

// LeaveCommunity removes the owner from a community. Leaving a community the
// owner is not in is a no-op.
func (w *Workspace) LeaveCommunity(id string) (models.Community, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	c, ok := w.communities.Find(id)
	if !ok {
		return models.Community{}, apperrors.ErrCommunityNotFound
	}
	if !w.memberships.Leave(w.ownerID, id) {
		return w.withMembership(c), nil
	}

	c, _ = w.communities.Update(id, func(c models.Community) models.Community {
		if c.MemberCount > 0 {
			c.MemberCount--
		}
		return c
	})
	w.notify(notification.KindInfo, "Left Community", "You have left \""+c.Name+"\".")
	return w.withMembership(c), nil
}

// Members lists the ids of users who joined a community.
func (w *Workspace) Members(id string) ([]string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.communities.Find(id); !ok {
		return nil, apperrors.ErrCommunityNotFound
	}
	return w.memberships.Members(id), nil
}

func (w *Workspace) withMembership(c models.Community) models.Community {
	c.IsMember = w.memberships.IsMember(w.ownerID, c.ID)
	return c
}
