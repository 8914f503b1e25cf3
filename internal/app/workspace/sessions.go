package workspace

import (
	"time"

	"github.com/yigit/studyhub/internal/app/models"
	"github.com/yigit/studyhub/internal/pkg/apperrors"
	"github.com/yigit/studyhub/internal/pkg/collection"
)

// StudySessionDraft is a study session as submitted by the schedule form.
type StudySessionDraft struct {
	Title           string
	Description     string
	ScheduledTime   time.Time
	Duration        int
	MaxParticipants int
	Subject         string
	MeetingURL      *string
	IsPublic        bool
	Tags            []string
	PosterURL       *string
}

// CreateSession schedules a study session hosted by the owner, who is also
// its first participant.
func (w *Workspace) CreateSession(d StudySessionDraft) models.StudySession {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.sessions.Create(func(id string, now time.Time) models.StudySession {
		return models.StudySession{
			ID:              id,
			Title:           d.Title,
			Description:     d.Description,
			HostID:          w.ownerID,
			HostName:        w.profile.Name,
			Participants:    []models.User{w.profile},
			ScheduledTime:   d.ScheduledTime,
			Duration:        d.Duration,
			IsActive:        !d.ScheduledTime.After(now),
			MaxParticipants: d.MaxParticipants,
			Subject:         d.Subject,
			MeetingURL:      d.MeetingURL,
			IsPublic:        d.IsPublic,
			Tags:            cloneStrings(d.Tags),
			PosterURL:       d.PosterURL,
		}
	})
}

// Sessions lists study sessions matching q, newest first.
func (w *Workspace) Sessions(q collection.Query[models.StudySession]) []models.StudySession {
	w.mu.Lock()
	defer w.mu.Unlock()

	return q.Apply(w.sessions.Items())
}

// Session returns a single study session.
func (w *Workspace) Session(id string) (models.StudySession, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	s, ok := w.sessions.Find(id)
	if !ok {
		return models.StudySession{}, apperrors.ErrStudySessionNotFound
	}
	return s, nil
}

// DeleteSession removes a study session. Missing ids are ignored.
func (w *Workspace) DeleteSession(id string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.sessions.Delete(id)
}
