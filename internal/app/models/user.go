package models

import "time"

// ProfileVisibility controls who can see a user's profile.
type ProfileVisibility string

const (
	VisibilityPublic  ProfileVisibility = "public"
	VisibilityPrivate ProfileVisibility = "private"
)

// User defines the user model based on the 'users' table
type User struct {
	ID                string            `json:"id" db:"id" example:"01JNE4S8W0M6Y1Q5R7T9V2X4Z6"`
	Name              string            `json:"name" db:"name" example:"Ada Lovelace"`
	Email             string            `json:"email" db:"email" example:"ada@uni.edu"`
	ProfilePicture    *string           `json:"profilePicture,omitempty" db:"profile_picture"`
	Bio               *string           `json:"bio,omitempty" db:"bio"`
	Education         *string           `json:"education,omitempty" db:"education"`
	Location          *string           `json:"location,omitempty" db:"location"`
	Followers         int               `json:"followers" db:"followers"`
	Following         int               `json:"following" db:"following"`
	ProfileVisibility ProfileVisibility `json:"profileVisibility" db:"profile_visibility"`
	JoinDate          time.Time         `json:"joinDate" db:"join_date"`
	CreatedAt         time.Time         `json:"createdAt" db:"created_at"`
}

// EntityID implements collection.Entity.
func (u User) EntityID() string { return u.ID }

// SearchFields implements collection.Searchable.
func (u User) SearchFields() []string {
	return []string{u.Name, u.Email, deref(u.Education), deref(u.Location)}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
