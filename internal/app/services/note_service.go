package services

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/rs/zerolog"
	"github.com/yigit/studyhub/internal/app/models"
	"github.com/yigit/studyhub/internal/app/workspace"
	"github.com/yigit/studyhub/internal/pkg/filestorage"
)

// NoteService handles note poster uploads
type NoteService interface {
	UploadPoster(ctx context.Context, w *workspace.Workspace, noteID string, file *multipart.FileHeader) (models.Note, error)
}

type noteServiceImpl struct {
	storage filestorage.FileStorage
	logger  zerolog.Logger
}

// NewNoteService creates a new NoteService
func NewNoteService(storage filestorage.FileStorage, logger zerolog.Logger) NoteService {
	return &noteServiceImpl{storage: storage, logger: logger}
}

// UploadPoster stores an image and sets it as the note's poster. The
// previous poster is removed from storage.
func (s *noteServiceImpl) UploadPoster(_ context.Context, w *workspace.Workspace, noteID string, file *multipart.FileHeader) (models.Note, error) {
	if err := requireImage(file); err != nil {
		return models.Note{}, err
	}
	current, err := w.Note(noteID)
	if err != nil {
		return models.Note{}, err
	}

	url, err := s.storage.SaveFileWithPath(file, "notes/"+w.OwnerID())
	if err != nil {
		return models.Note{}, fmt.Errorf("error uploading file: %w", err)
	}

	updated, err := w.SetNotePoster(noteID, url)
	if err != nil {
		// the note was deleted while the upload was running
		_ = s.storage.DeleteFile(url)
		return models.Note{}, err
	}

	if current.PosterURL != nil && *current.PosterURL != url {
		if err := s.storage.DeleteFile(*current.PosterURL); err != nil {
			s.logger.Warn().Err(err).Str("note_id", noteID).Msg("Failed to delete old poster")
		}
	}
	return updated, nil
}
