package workspace

import (
	"time"

	"github.com/yigit/studyhub/internal/app/models"
	"github.com/yigit/studyhub/internal/pkg/apperrors"
)

// CreatePost publishes a post to a community feed.
func (w *Workspace) CreatePost(communityID, content string) (models.Post, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.communities.Find(communityID); !ok {
		return models.Post{}, apperrors.ErrCommunityNotFound
	}
	return w.posts.Create(func(id string, now time.Time) models.Post {
		return models.Post{
			ID:          id,
			CommunityID: communityID,
			AuthorID:    w.ownerID,
			AuthorName:  w.profile.Name,
			Content:     content,
			CreatedDate: now,
		}
	}), nil
}

// Posts lists the posts of a community, newest first. Posts of a deleted
// community stay reachable by its id.
func (w *Workspace) Posts(communityID string) []models.Post {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.posts.Filter(func(p models.Post) bool { return p.CommunityID == communityID })
}

// DeletePost removes a post. Missing ids are ignored.
func (w *Workspace) DeletePost(id string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.posts.Delete(id)
}
