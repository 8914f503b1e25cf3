// Package seed builds the sample content a freshly opened workspace starts
// with.
package seed

import (
	"time"

	"github.com/yigit/studyhub/internal/app/models"
	"github.com/yigit/studyhub/internal/app/workspace"
	"github.com/yigit/studyhub/internal/pkg/idgen"
)

// Generator produces sample data for workspace owners.
type Generator struct {
	ids idgen.Generator
	now func() time.Time
}

// NewGenerator creates a Generator. Nil arguments fall back to ULIDs and the
// wall clock.
func NewGenerator(ids idgen.Generator, now func() time.Time) *Generator {
	if ids == nil {
		ids = idgen.NewULIDGenerator()
	}
	if now == nil {
		now = time.Now
	}
	return &Generator{ids: ids, now: now}
}

// Seeder adapts the generator to the workspace registry.
func (g *Generator) Seeder() workspace.Seeder {
	return g.Sample
}

// Sample returns the sample content for owner. Every collection is newest
// first and the owner starts as a member of the first community.
func (g *Generator) Sample(owner models.User) workspace.SeedData {
	now := g.now()
	ago := func(d time.Duration) time.Time { return now.Add(-d) }
	day := 24 * time.Hour

	tutor := models.User{ID: g.ids.NewID(), Name: "Maya Chen", Email: "maya@studyhub.app", ProfileVisibility: models.VisibilityPublic}
	peer := models.User{ID: g.ids.NewID(), Name: "Jonas Weber", Email: "jonas@studyhub.app", ProfileVisibility: models.VisibilityPublic}

	notes := []models.Note{
		{
			ID: g.ids.NewID(), Title: "Organic Chemistry Reactions", Summary: "Substitution and elimination cheat sheet",
			Content: "SN1 favours tertiary carbons, SN2 favours primary ones.", Tags: []string{"chemistry", "exam"},
			UploadDate: ago(2 * day), FileType: "pdf", UserID: tutor.ID, UserName: tutor.Name, IsPublic: true, Saves: 42,
		},
		{
			ID: g.ids.NewID(), Title: "Linear Algebra Basics", Summary: "Vectors, matrices and eigenvalues",
			Content: "A square matrix is invertible iff its determinant is non-zero.", Tags: []string{"math"},
			UploadDate: ago(5 * day), FileType: "pdf", UserID: peer.ID, UserName: peer.Name, IsPublic: true, Saves: 17,
		},
	}

	flashcards := []models.FlipCardSet{
		{
			ID: g.ids.NewID(), Title: "Biology: Cell Structure", CreatedDate: ago(day), UserID: tutor.ID, IsPublic: true, Saves: 23,
			Tags: []string{"biology"},
			Cards: []models.FlipCard{
				{ID: g.ids.NewID(), Question: "Powerhouse of the cell?", Answer: "Mitochondria"},
				{ID: g.ids.NewID(), Question: "Where is DNA stored?", Answer: "In the nucleus"},
			},
		},
		{
			ID: g.ids.NewID(), Title: "Spanish Vocabulary", CreatedDate: ago(4 * day), UserID: peer.ID, IsPublic: true, Saves: 8,
			Tags: []string{"language"},
			Cards: []models.FlipCard{
				{ID: g.ids.NewID(), Question: "la biblioteca", Answer: "the library"},
			},
		},
	}

	communities := []models.Community{
		{
			ID: g.ids.NewID(), Name: "Pre-Med Study Group", Description: "Daily MCAT practice and peer review",
			CreatorID: tutor.ID, MemberCount: 128, Tags: []string{"medicine", "mcat"}, CreatedDate: ago(30 * day),
		},
		{
			ID: g.ids.NewID(), Name: "CS Algorithms Club", Description: "Weekly problem sets and mock interviews",
			CreatorID: peer.ID, MemberCount: 64, Tags: []string{"computer science"}, CreatedDate: ago(60 * day),
		},
	}

	posts := []models.Post{
		{
			ID: g.ids.NewID(), CommunityID: communities[0].ID, AuthorID: tutor.ID, AuthorName: tutor.Name,
			Content: "Practice exam tonight at 8pm, bring your questions.", CreatedDate: ago(3 * time.Hour), Likes: 12,
		},
		{
			ID: g.ids.NewID(), CommunityID: communities[1].ID, AuthorID: peer.ID, AuthorName: peer.Name,
			Content: "This week's set is on dynamic programming.", CreatedDate: ago(day), Likes: 5,
		},
	}

	meeting := "https://meet.studyhub.app/calc-review"
	sessions := []models.StudySession{
		{
			ID: g.ids.NewID(), Title: "Calculus Final Review", Description: "Integration techniques and series",
			HostID: tutor.ID, HostName: tutor.Name, Participants: []models.User{tutor, peer},
			ScheduledTime: now.Add(2 * day), Duration: 90, MaxParticipants: 20, Subject: "Mathematics",
			MeetingURL: &meeting, IsPublic: true, Tags: []string{"math", "exam"},
		},
		{
			ID: g.ids.NewID(), Title: "Physics Problem Solving", Description: "Kinematics drills",
			HostID: peer.ID, HostName: peer.Name, Participants: []models.User{peer},
			ScheduledTime: ago(time.Hour), Duration: 60, IsActive: true, MaxParticipants: 10, Subject: "Physics",
			IsPublic: true, Tags: []string{"physics"},
		},
	}

	infovids := []models.VideoReel{
		{
			ID: g.ids.NewID(), Title: "Photosynthesis in 60 Seconds", Description: "Light and dark reactions at a glance",
			VideoURL: "https://cdn.studyhub.app/videos/photosynthesis.mp4", ThumbnailURL: "https://cdn.studyhub.app/thumbs/photosynthesis.jpg",
			CreatorID: tutor.ID, CreatorName: tutor.Name, Duration: 60, Views: 1520, Likes: 210,
			Tags: []string{"biology"}, Subject: "Biology", CreatedDate: ago(6 * time.Hour),
		},
		{
			ID: g.ids.NewID(), Title: "The Chain Rule", Description: "Derivatives of composite functions",
			VideoURL: "https://cdn.studyhub.app/videos/chain-rule.mp4", ThumbnailURL: "https://cdn.studyhub.app/thumbs/chain-rule.jpg",
			CreatorID: peer.ID, CreatorName: peer.Name, Duration: 45, Views: 860, Likes: 97,
			Tags: []string{"math"}, Subject: "Mathematics", CreatedDate: ago(3 * day),
		},
	}

	courses := []models.Course{
		{
			ID: g.ids.NewID(), Title: "Complete MCAT Preparation", Description: "Twelve weeks of guided review",
			InstructorID: tutor.ID, InstructorName: tutor.Name, Price: 49.99, Subject: "Medicine",
			Enrollments: 340, Rating: 4.8, Reviews: 96, CreatedDate: ago(90 * day), IsPublished: true, Tags: []string{"mcat"},
		},
		{
			ID: g.ids.NewID(), Title: "Intro to Python", Description: "Programming from zero",
			InstructorID: peer.ID, InstructorName: peer.Name, Price: 19.99, Subject: "Computer Science",
			Enrollments: 1210, Rating: 4.6, Reviews: 311, CreatedDate: ago(120 * day), IsPublished: true, Tags: []string{"programming"},
		},
	}

	chats := []models.Chat{
		{
			ID: g.ids.NewID(), Participants: []models.User{owner, tutor}, Type: models.ChatDirect, LastActivity: ago(20 * time.Minute),
			Messages: []models.ChatMessage{
				{ID: g.ids.NewID(), SenderID: tutor.ID, SenderName: tutor.Name, Content: "Did you get the reaction notes?", Timestamp: ago(30 * time.Minute)},
				{
					ID: g.ids.NewID(), SenderID: tutor.ID, SenderName: tutor.Name, Content: "Here they are.", Timestamp: ago(20 * time.Minute),
					AttachedResource: &models.AttachedResource{Type: "note", ID: notes[0].ID, Title: notes[0].Title},
				},
			},
		},
		{
			ID: g.ids.NewID(), Name: "Calculus Study Group", Participants: []models.User{owner, tutor, peer}, Type: models.ChatGroup,
			LastActivity: ago(2 * time.Hour),
			Messages: []models.ChatMessage{
				{ID: g.ids.NewID(), SenderID: peer.ID, SenderName: peer.Name, Content: "See everyone at the review session.", Timestamp: ago(2 * time.Hour)},
			},
		},
	}

	activities := []models.RecentActivity{
		{
			ID: g.ids.NewID(), Type: models.ActivityCommunityJoin, Title: "Joined Pre-Med Study Group",
			Description: "You joined a community", Timestamp: ago(time.Hour), RelatedID: communities[0].ID,
		},
	}

	return workspace.SeedData{
		Notes:       notes,
		FlipCards:   flashcards,
		Communities: communities,
		Posts:       posts,
		Sessions:    sessions,
		Infovids:    infovids,
		Courses:     courses,
		Chats:       chats,
		Activities:  activities,
		Joined:      []string{communities[0].ID},
	}
}
