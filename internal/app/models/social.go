package models

import "time"

// Follow records that the workspace owner follows another user.
type Follow struct {
	ID           string    `json:"id"`
	FollowerID   string    `json:"followerId"`
	FolloweeID   string    `json:"followeeId"`
	FolloweeName string    `json:"followeeName"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (f Follow) EntityID() string { return f.ID }

// ActivityType names what a RecentActivity entry describes.
type ActivityType string

const (
	ActivityNoteUpload      ActivityType = "note_upload"
	ActivityFlashcardCreate ActivityType = "flashcard_create"
	ActivityCommunityCreate ActivityType = "community_create"
	ActivityCommunityJoin   ActivityType = "community_join"
	ActivitySessionCreate   ActivityType = "session_create"
	ActivityInfovidUpload   ActivityType = "infovid_upload"
	ActivityCourseCreate    ActivityType = "course_create"
	ActivityCoursePurchase  ActivityType = "course_purchase"
	ActivityPostCreate      ActivityType = "post_create"
	ActivityFollow          ActivityType = "follow"
	ActivityProfileUpdate   ActivityType = "profile_update"
)

// RecentActivity is a log entry derived from a user action.
type RecentActivity struct {
	ID          string       `json:"id"`
	Type        ActivityType `json:"type"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Timestamp   time.Time    `json:"timestamp"`
	RelatedID   string       `json:"relatedId,omitempty"`
}

func (a RecentActivity) EntityID() string { return a.ID }

func (a RecentActivity) SearchFields() []string {
	return []string{a.Title, a.Description, string(a.Type)}
}
