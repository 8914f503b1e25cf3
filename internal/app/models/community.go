package models

import "time"

// Community is a study group users can join.
type Community struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	PosterURL   *string   `json:"posterUrl,omitempty"`
	CreatorID   string    `json:"creatorId"`
	MemberCount int       `json:"memberCount"`
	IsPrivate   bool      `json:"isPrivate"`
	Tags        []string  `json:"tags"`
	CreatedDate time.Time `json:"createdDate"`
	// IsMember is computed for the viewing user and never stored.
	IsMember bool `json:"isMember"`
}

func (c Community) EntityID() string { return c.ID }

func (c Community) SearchFields() []string {
	return append([]string{c.Name, c.Description}, c.Tags...)
}

// Post is a message published to a community feed.
type Post struct {
	ID          string    `json:"id"`
	CommunityID string    `json:"communityId"`
	AuthorID    string    `json:"authorId"`
	AuthorName  string    `json:"authorName"`
	Content     string    `json:"content"`
	CreatedDate time.Time `json:"createdDate"`
	Likes       int       `json:"likes"`
}

func (p Post) EntityID() string { return p.ID }

func (p Post) SearchFields() []string {
	return []string{p.Content, p.AuthorName}
}

// StudySession is a scheduled group study meeting.
type StudySession struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	HostID          string    `json:"hostId"`
	HostName        string    `json:"hostName"`
	Participants    []User    `json:"participants"`
	ScheduledTime   time.Time `json:"scheduledTime"`
	Duration        int       `json:"duration"` // minutes
	IsActive        bool      `json:"isActive"`
	MaxParticipants int       `json:"maxParticipants"`
	Subject         string    `json:"subject"`
	MeetingURL      *string   `json:"meetingUrl,omitempty"`
	IsPublic        bool      `json:"isPublic"`
	Tags            []string  `json:"tags"`
	PosterURL       *string   `json:"posterUrl,omitempty"`
}

func (s StudySession) EntityID() string { return s.ID }

func (s StudySession) SearchFields() []string {
	return append([]string{s.Title, s.Description, s.Subject, s.HostName}, s.Tags...)
}
