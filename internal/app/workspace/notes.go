package workspace

import (
	"time"

	"github.com/yigit/studyhub/internal/app/models"
	"github.com/yigit/studyhub/internal/pkg/apperrors"
	"github.com/yigit/studyhub/internal/pkg/collection"
)

// NoteDraft is a note as submitted by the upload form.
type NoteDraft struct {
	Title     string
	Summary   string
	Content   string
	Tags      []string
	FileType  string
	IsPublic  bool
	PosterURL *string
}

// CreateNote uploads a note owned by the workspace owner.
func (w *Workspace) CreateNote(d NoteDraft) models.Note {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.notes.Create(func(id string, now time.Time) models.Note {
		return models.Note{
			ID:         id,
			Title:      d.Title,
			Summary:    d.Summary,
			Content:    d.Content,
			Tags:       cloneStrings(d.Tags),
			UploadDate: now,
			FileType:   d.FileType,
			UserID:     w.ownerID,
			UserName:   w.profile.Name,
			IsPublic:   d.IsPublic,
			PosterURL:  d.PosterURL,
		}
	})
}

// Notes lists notes matching q, newest first.
func (w *Workspace) Notes(q collection.Query[models.Note]) []models.Note {
	w.mu.Lock()
	defer w.mu.Unlock()

	return q.Apply(w.notes.Items())
}

// Note returns a single note.
func (w *Workspace) Note(id string) (models.Note, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	note, ok := w.notes.Find(id)
	if !ok {
		return models.Note{}, apperrors.ErrNoteNotFound
	}
	return note, nil
}

// SetNotePoster attaches an uploaded poster image to a note.
func (w *Workspace) SetNotePoster(id, posterURL string) (models.Note, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	note, ok, err := w.notes.Merge(id, models.Note{PosterURL: &posterURL})
	if !ok {
		return models.Note{}, apperrors.ErrNoteNotFound
	}
	return note, err
}

// DeleteNote removes a note. Missing ids are ignored.
func (w *Workspace) DeleteNote(id string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.notes.Delete(id)
}

func cloneStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
