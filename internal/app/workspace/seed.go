package workspace

import (
	"github.com/yigit/studyhub/internal/app/models"
	"github.com/yigit/studyhub/internal/pkg/navigation"
)

// SeedData is the sample content a fresh workspace starts with. Slices are
// newest first.
type SeedData struct {
	Notes       []models.Note
	FlipCards   []models.FlipCardSet
	Communities []models.Community
	Posts       []models.Post
	Sessions    []models.StudySession
	Infovids    []models.VideoReel
	Courses     []models.Course
	Chats       []models.Chat
	Activities  []models.RecentActivity
	// Joined lists community ids the owner starts out as a member of.
	Joined []string
}

// Seeder produces sample content for a workspace owner.
type Seeder func(owner models.User) SeedData

// Load replaces every content collection with data without emitting
// activities or notifications. The queue and navigation are reset.
func (w *Workspace) Load(data SeedData) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.notes.Reset(data.Notes...)
	w.flashcards.Reset(data.FlipCards...)
	w.communities.Reset(data.Communities...)
	w.posts.Reset(data.Posts...)
	w.sessions.Reset(data.Sessions...)
	w.infovids.Reset(data.Infovids...)
	w.courses.Reset(data.Courses...)
	w.chats.Reset(data.Chats...)
	w.activities.Reset(data.Activities...)
	w.purchases.Clear()
	w.follows.Clear()
	w.notifications.ClearAll()
	w.nav.Reset(navigation.Home)

	for _, id := range data.Joined {
		w.memberships.Join(w.ownerID, id)
	}
}

// Counts reports the size of each collection, keyed by feature.
func (w *Workspace) Counts() map[string]int {
	w.mu.Lock()
	defer w.mu.Unlock()

	return map[string]int{
		"notes":         w.notes.Len(),
		"flashcards":    w.flashcards.Len(),
		"communities":   w.communities.Len(),
		"posts":         w.posts.Len(),
		"sessions":      w.sessions.Len(),
		"infovids":      w.infovids.Len(),
		"courses":       w.courses.Len(),
		"purchases":     w.purchases.Len(),
		"chats":         w.chats.Len(),
		"follows":       w.follows.Len(),
		"activities":    w.activities.Len(),
		"notifications": w.notifications.Len(),
	}
}
