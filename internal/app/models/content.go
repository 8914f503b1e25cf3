package models

import "time"

// Note is an uploaded set of study notes.
type Note struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Summary    string    `json:"summary"`
	Content    string    `json:"content"`
	Tags       []string  `json:"tags"`
	UploadDate time.Time `json:"uploadDate"`
	FileType   string    `json:"fileType"`
	UserID     string    `json:"userId"`
	UserName   string    `json:"userName"`
	IsPublic   bool      `json:"isPublic"`
	Saves      int       `json:"saves"`
	PosterURL  *string   `json:"posterUrl,omitempty"`
}

func (n Note) EntityID() string { return n.ID }

func (n Note) SearchFields() []string {
	return append([]string{n.Title, n.Summary, n.UserName}, n.Tags...)
}

// FlipCard is a single question and answer pair.
type FlipCard struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// FlipCardSet is a deck of flashcards. Cards have no lifecycle of their own.
type FlipCardSet struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Cards       []FlipCard `json:"cards"`
	CreatedDate time.Time  `json:"createdDate"`
	UserID      string     `json:"userId"`
	IsPublic    bool       `json:"isPublic"`
	Saves       int        `json:"saves"`
	Tags        []string   `json:"tags"`
}

func (s FlipCardSet) EntityID() string { return s.ID }

func (s FlipCardSet) SearchFields() []string {
	return append([]string{s.Title}, s.Tags...)
}

// VideoReel is a short educational video, shown as an infovid.
type VideoReel struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	VideoURL     string    `json:"videoUrl"`
	ThumbnailURL string    `json:"thumbnailUrl"`
	CreatorID    string    `json:"creatorId"`
	CreatorName  string    `json:"creatorName"`
	Duration     int       `json:"duration"` // seconds
	Views        int       `json:"views"`
	Likes        int       `json:"likes"`
	Tags         []string  `json:"tags"`
	Subject      string    `json:"subject"`
	CreatedDate  time.Time `json:"createdDate"`
	IsLiked      bool      `json:"isLiked"`
}

func (v VideoReel) EntityID() string { return v.ID }

func (v VideoReel) SearchFields() []string {
	return append([]string{v.Title, v.Description, v.CreatorName, v.Subject}, v.Tags...)
}
