package dto

import (
	"time"

	"github.com/yigit/studyhub/internal/app/models"
	"github.com/yigit/studyhub/internal/app/workspace"
	"github.com/yigit/studyhub/internal/pkg/navigation"
	"github.com/yigit/studyhub/internal/pkg/notification"
)

// CreateNoteRequest represents the note upload form
type CreateNoteRequest struct {
	Title     string   `json:"title" binding:"required"`
	Summary   string   `json:"summary"`
	Content   string   `json:"content"`
	Tags      []string `json:"tags"`
	FileType  string   `json:"fileType"`
	IsPublic  bool     `json:"isPublic"`
	PosterURL *string  `json:"posterUrl"`
}

// Draft converts the request into a workspace draft.
func (r CreateNoteRequest) Draft() workspace.NoteDraft {
	return workspace.NoteDraft{
		Title:     r.Title,
		Summary:   r.Summary,
		Content:   r.Content,
		Tags:      r.Tags,
		FileType:  r.FileType,
		IsPublic:  r.IsPublic,
		PosterURL: r.PosterURL,
	}
}

// CardRequest is one flashcard in a deck form
type CardRequest struct {
	Question string `json:"question" binding:"required"`
	Answer   string `json:"answer" binding:"required"`
}

// CreateFlipCardSetRequest represents the flashcard deck form
type CreateFlipCardSetRequest struct {
	Title    string        `json:"title" binding:"required"`
	Cards    []CardRequest `json:"cards" binding:"dive"`
	Tags     []string      `json:"tags"`
	IsPublic bool          `json:"isPublic"`
}

// Draft converts the request into a workspace draft.
func (r CreateFlipCardSetRequest) Draft() workspace.FlipCardSetDraft {
	cards := make([]workspace.CardDraft, 0, len(r.Cards))
	for _, c := range r.Cards {
		cards = append(cards, workspace.CardDraft{Question: c.Question, Answer: c.Answer})
	}
	return workspace.FlipCardSetDraft{Title: r.Title, Cards: cards, Tags: r.Tags, IsPublic: r.IsPublic}
}

// CreateCommunityRequest represents community creation data
type CreateCommunityRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	PosterURL   *string  `json:"posterUrl"`
	IsPrivate   bool     `json:"isPrivate"`
	Tags        []string `json:"tags"`
}

// Draft converts the request into a workspace draft.
func (r CreateCommunityRequest) Draft() workspace.CommunityDraft {
	return workspace.CommunityDraft{
		Name:        r.Name,
		Description: r.Description,
		PosterURL:   r.PosterURL,
		IsPrivate:   r.IsPrivate,
		Tags:        r.Tags,
	}
}

// CreatePostRequest represents a community feed post
type CreatePostRequest struct {
	Content string `json:"content" binding:"required"`
}

// CreateSessionRequest represents the study session scheduling form
type CreateSessionRequest struct {
	Title           string    `json:"title" binding:"required"`
	Description     string    `json:"description"`
	ScheduledTime   time.Time `json:"scheduledTime" binding:"required"`
	Duration        int       `json:"duration" binding:"min=0"`
	MaxParticipants int       `json:"maxParticipants" binding:"min=0"`
	Subject         string    `json:"subject"`
	MeetingURL      *string   `json:"meetingUrl"`
	IsPublic        bool      `json:"isPublic"`
	Tags            []string  `json:"tags"`
	PosterURL       *string   `json:"posterUrl"`
}

// Draft converts the request into a workspace draft.
func (r CreateSessionRequest) Draft() workspace.StudySessionDraft {
	return workspace.StudySessionDraft{
		Title:           r.Title,
		Description:     r.Description,
		ScheduledTime:   r.ScheduledTime,
		Duration:        r.Duration,
		MaxParticipants: r.MaxParticipants,
		Subject:         r.Subject,
		MeetingURL:      r.MeetingURL,
		IsPublic:        r.IsPublic,
		Tags:            r.Tags,
		PosterURL:       r.PosterURL,
	}
}

// CreateInfovidRequest represents the infovid upload form
type CreateInfovidRequest struct {
	Title        string   `json:"title" binding:"required"`
	Description  string   `json:"description"`
	VideoURL     string   `json:"videoUrl" binding:"required"`
	ThumbnailURL string   `json:"thumbnailUrl"`
	Duration     int      `json:"duration" binding:"min=0"`
	Tags         []string `json:"tags"`
	Subject      string   `json:"subject"`
}

// Draft converts the request into a workspace draft.
func (r CreateInfovidRequest) Draft() workspace.InfovidDraft {
	return workspace.InfovidDraft{
		Title:        r.Title,
		Description:  r.Description,
		VideoURL:     r.VideoURL,
		ThumbnailURL: r.ThumbnailURL,
		Duration:     r.Duration,
		Tags:         r.Tags,
		Subject:      r.Subject,
	}
}

// CreateCourseRequest represents the course store listing form
type CreateCourseRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Price       float64  `json:"price" binding:"min=0"`
	Subject     string   `json:"subject"`
	Tags        []string `json:"tags"`
	IsPublished bool     `json:"isPublished"`
}

// Draft converts the request into a workspace draft.
func (r CreateCourseRequest) Draft() workspace.CourseDraft {
	return workspace.CourseDraft{
		Title:       r.Title,
		Description: r.Description,
		Price:       r.Price,
		Subject:     r.Subject,
		Tags:        r.Tags,
		IsPublished: r.IsPublished,
	}
}

// ParticipantRequest names a chat participant
type ParticipantRequest struct {
	ID   string `json:"id" binding:"required"`
	Name string `json:"name"`
}

// CreateChatRequest opens a conversation
type CreateChatRequest struct {
	Name         string               `json:"name"`
	Type         models.ChatType      `json:"type" binding:"omitempty,oneof=direct group"`
	Participants []ParticipantRequest `json:"participants" binding:"required,min=1,dive"`
}

// Draft converts the request into a workspace draft.
func (r CreateChatRequest) Draft() workspace.ChatDraft {
	participants := make([]models.User, 0, len(r.Participants))
	for _, p := range r.Participants {
		participants = append(participants, models.User{ID: p.ID, Name: p.Name})
	}
	return workspace.ChatDraft{Name: r.Name, Type: r.Type, Participants: participants}
}

// SendMessageRequest appends a message to a chat
type SendMessageRequest struct {
	Content          string                   `json:"content" binding:"required"`
	AttachedResource *models.AttachedResource `json:"attachedResource"`
}

// Draft converts the request into a workspace draft.
func (r SendMessageRequest) Draft() workspace.MessageDraft {
	return workspace.MessageDraft{Content: r.Content, AttachedResource: r.AttachedResource}
}

// UpdateProfileRequest represents the profile form. Empty fields keep their
// current value.
type UpdateProfileRequest struct {
	Name              string                   `json:"name"`
	ProfilePicture    *string                  `json:"profilePicture"`
	Bio               *string                  `json:"bio"`
	Education         *string                  `json:"education"`
	Location          *string                  `json:"location"`
	ProfileVisibility models.ProfileVisibility `json:"profileVisibility" binding:"omitempty,oneof=public private"`
}

// Patch converts the request into a profile patch.
func (r UpdateProfileRequest) Patch() workspace.ProfilePatch {
	return workspace.ProfilePatch{
		Name:              r.Name,
		ProfilePicture:    r.ProfilePicture,
		Bio:               r.Bio,
		Education:         r.Education,
		Location:          r.Location,
		ProfileVisibility: r.ProfileVisibility,
	}
}

// FollowRequest carries the display name of the user being followed
type FollowRequest struct {
	Name string `json:"name"`
}

// NotifyRequest pushes a notification from the client
type NotifyRequest struct {
	Type    string `json:"type" binding:"required"`
	Title   string `json:"title" binding:"required"`
	Message string `json:"message"`
}

// NavigateRequest pushes a view onto the navigation stack
type NavigateRequest struct {
	View string `json:"view" binding:"required"`
}

// ToastResponse is the notification currently shown as a toast, if any.
type ToastResponse struct {
	Toast *notification.Notification `json:"toast"`
}

// ViewResponse is the screen the router resolved for the current state.
type ViewResponse struct {
	Screen        string              `json:"screen"`
	View          string              `json:"view"`
	Authenticated bool                `json:"authenticated"`
	ProfileLoaded bool                `json:"profileLoaded"`
	Navigation    navigation.Snapshot `json:"navigation"`
}
