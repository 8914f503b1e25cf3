package workspace

import (
	"time"

	"github.com/yigit/studyhub/internal/app/models"
	"github.com/yigit/studyhub/internal/pkg/apperrors"
	"github.com/yigit/studyhub/internal/pkg/collection"
)

// InfovidDraft is an infovid as submitted by the upload form.
type InfovidDraft struct {
	Title        string
	Description  string
	VideoURL     string
	ThumbnailURL string
	Duration     int
	Tags         []string
	Subject      string
}

// CreateInfovid uploads an infovid created by the owner.
func (w *Workspace) CreateInfovid(d InfovidDraft) models.VideoReel {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.infovids.Create(func(id string, now time.Time) models.VideoReel {
		return models.VideoReel{
			ID:           id,
			Title:        d.Title,
			Description:  d.Description,
			VideoURL:     d.VideoURL,
			ThumbnailURL: d.ThumbnailURL,
			CreatorID:    w.ownerID,
			CreatorName:  w.profile.Name,
			Duration:     d.Duration,
			Tags:         cloneStrings(d.Tags),
			Subject:      d.Subject,
			CreatedDate:  now,
		}
	})
}

// Infovids lists infovids matching q, newest first.
func (w *Workspace) Infovids(q collection.Query[models.VideoReel]) []models.VideoReel {
	w.mu.Lock()
	defer w.mu.Unlock()

	return q.Apply(w.infovids.Items())
}

// Infovid returns a single infovid.
func (w *Workspace) Infovid(id string) (models.VideoReel, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	v, ok := w.infovids.Find(id)
	if !ok {
		return models.VideoReel{}, apperrors.ErrInfovidNotFound
	}
	return v, nil
}

// DeleteInfovid removes an infovid. Missing ids are ignored.
func (w *Workspace) DeleteInfovid(id string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.infovids.Delete(id)
}
