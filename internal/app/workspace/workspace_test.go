package workspace

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/studyhub/internal/app/models"
	"github.com/yigit/studyhub/internal/pkg/apperrors"
	"github.com/yigit/studyhub/internal/pkg/collection"
	"github.com/yigit/studyhub/internal/pkg/notification"
)

type sequenceIDs struct {
	mu sync.Mutex
	n  int
}

func (s *sequenceIDs) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("id-%04d", s.n)
}

var testNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func newTestWorkspace(t *testing.T, opts ...func(*Options)) *Workspace {
	t.Helper()
	o := Options{
		IDs:   &sequenceIDs{},
		Clock: func() time.Time { return testNow },
	}
	for _, opt := range opts {
		opt(&o)
	}
	w := New("user-1", o)
	w.SetProfile(models.User{ID: "user-1", Name: "Ada", Email: "ada@uni.edu"})
	return w
}

func noteIDs(notes []models.Note) []string {
	out := make([]string, 0, len(notes))
	for _, n := range notes {
		out = append(out, n.ID)
	}
	return out
}

func TestWorkspace_CreateNoteEndToEnd(t *testing.T) {
	w := newTestWorkspace(t)
	w.Load(SeedData{Notes: []models.Note{{ID: "seed-1", Title: "Physics"}}})
	before := w.Notes(collection.Query[models.Note]{})

	note := w.CreateNote(NoteDraft{Title: "Calc Notes", IsPublic: false, Tags: []string{"math"}})

	notes := w.Notes(collection.Query[models.Note]{})
	require.Len(t, notes, len(before)+1)
	assert.Equal(t, note, notes[0])
	assert.False(t, notes[0].IsPublic)
	assert.NotContains(t, noteIDs(before), note.ID)
	assert.Equal(t, "user-1", note.UserID)
	assert.Equal(t, "Ada", note.UserName)
	assert.Equal(t, testNow, note.UploadDate)

	activities := w.Activities(collection.Query[models.RecentActivity]{})
	require.NotEmpty(t, activities)
	assert.Equal(t, models.ActivityNoteUpload, activities[0].Type)
	assert.Equal(t, note.ID, activities[0].RelatedID)

	queue := w.Notifications()
	require.NotEmpty(t, queue)
	assert.Equal(t, notification.KindSuccess, queue[0].Kind)
	assert.Equal(t, "Note Uploaded", queue[0].Title)
}

func TestWorkspace_DeleteNote(t *testing.T) {
	w := newTestWorkspace(t)
	w.Load(SeedData{Notes: []models.Note{{ID: "a"}, {ID: "b"}}})

	assert.True(t, w.DeleteNote("a"))
	assert.Equal(t, []string{"b"}, noteIDs(w.Notes(collection.Query[models.Note]{})))

	assert.False(t, w.DeleteNote("missing"))
	assert.Equal(t, []string{"b"}, noteIDs(w.Notes(collection.Query[models.Note]{})))

	queue := w.Notifications()
	require.Len(t, queue, 2)
	for _, n := range queue {
		assert.Equal(t, notification.KindInfo, n.Kind)
		assert.Equal(t, "Note Deleted", n.Title)
	}
	assert.Empty(t, w.Activities(collection.Query[models.RecentActivity]{}), "deletes leave no activity")
}

func TestWorkspace_CreateAnnouncements(t *testing.T) {
	tests := []struct {
		name     string
		create   func(w *Workspace) string
		delete   func(w *Workspace, id string) bool
		activity models.ActivityType
		created  string
		deleted  string
	}{
		{
			name:     "flashcards",
			create:   func(w *Workspace) string { return w.CreateFlipCardSet(FlipCardSetDraft{Title: "Bio"}).ID },
			delete:   (*Workspace).DeleteFlipCardSet,
			activity: models.ActivityFlashcardCreate,
			created:  "Flashcards Created",
			deleted:  "Flashcards Deleted",
		},
		{
			name:     "community",
			create:   func(w *Workspace) string { return w.CreateCommunity(CommunityDraft{Name: "Chess"}).ID },
			delete:   (*Workspace).DeleteCommunity,
			activity: models.ActivityCommunityCreate,
			created:  "Community Created",
			deleted:  "Community Deleted",
		},
		{
			name: "study session",
			create: func(w *Workspace) string {
				return w.CreateSession(StudySessionDraft{Title: "Exam prep", ScheduledTime: testNow.Add(time.Hour)}).ID
			},
			delete:   (*Workspace).DeleteSession,
			activity: models.ActivitySessionCreate,
			created:  "Study Session Scheduled",
			deleted:  "Study Session Deleted",
		},
		{
			name:     "infovid",
			create:   func(w *Workspace) string { return w.CreateInfovid(InfovidDraft{Title: "Mitosis"}).ID },
			delete:   (*Workspace).DeleteInfovid,
			activity: models.ActivityInfovidUpload,
			created:  "Infovid Uploaded",
			deleted:  "Infovid Deleted",
		},
		{
			name:     "course",
			create:   func(w *Workspace) string { return w.CreateCourse(CourseDraft{Title: "Go 101", Price: 10}).ID },
			delete:   (*Workspace).DeleteCourse,
			activity: models.ActivityCourseCreate,
			created:  "Course Created",
			deleted:  "Course Deleted",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorkspace(t)

			id := tt.create(w)

			activities := w.Activities(collection.Query[models.RecentActivity]{})
			require.Len(t, activities, 1)
			assert.Equal(t, tt.activity, activities[0].Type)
			assert.Equal(t, id, activities[0].RelatedID)
			assert.Equal(t, tt.created, w.Notifications()[0].Title)

			assert.True(t, tt.delete(w, id))
			assert.Equal(t, tt.deleted, w.Notifications()[0].Title)
			assert.Equal(t, notification.KindInfo, w.Notifications()[0].Kind)
		})
	}
}

func TestWorkspace_FlipCardsGetOwnIDs(t *testing.T) {
	w := newTestWorkspace(t)

	set := w.CreateFlipCardSet(FlipCardSetDraft{
		Title: "Capitals",
		Cards: []CardDraft{{Question: "France?", Answer: "Paris"}, {Question: "Peru?", Answer: "Lima"}},
	})

	require.Len(t, set.Cards, 2)
	assert.NotEqual(t, set.Cards[0].ID, set.Cards[1].ID)
	assert.NotEqual(t, set.ID, set.Cards[0].ID)
	got, err := w.FlipCardSet(set.ID)
	require.NoError(t, err)
	assert.Equal(t, set, got)
}

func TestWorkspace_NotFoundReads(t *testing.T) {
	w := newTestWorkspace(t)

	_, err := w.Note("x")
	assert.ErrorIs(t, err, apperrors.ErrNoteNotFound)
	_, err = w.Community("x")
	assert.ErrorIs(t, err, apperrors.ErrCommunityNotFound)
	_, err = w.Session("x")
	assert.ErrorIs(t, err, apperrors.ErrStudySessionNotFound)
	_, err = w.Infovid("x")
	assert.ErrorIs(t, err, apperrors.ErrInfovidNotFound)
	_, err = w.Course("x")
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
	_, err = w.Chat("x")
	assert.ErrorIs(t, err, apperrors.ErrChatNotFound)
	_, err = w.SetNotePoster("x", "/uploads/p.png")
	assert.ErrorIs(t, err, apperrors.ErrNoteNotFound)
}

func TestWorkspace_SetNotePosterReplacesPoster(t *testing.T) {
	w := newTestWorkspace(t)
	note := w.CreateNote(NoteDraft{Title: "Calc Notes", Summary: "Limits"})

	first, err := w.SetNotePoster(note.ID, "/uploads/first.png")
	require.NoError(t, err)
	second, err := w.SetNotePoster(note.ID, "/uploads/second.png")
	require.NoError(t, err)

	require.NotNil(t, first.PosterURL)
	assert.Equal(t, "/uploads/first.png", *first.PosterURL)
	require.NotNil(t, second.PosterURL)
	assert.Equal(t, "/uploads/second.png", *second.PosterURL)
	assert.Equal(t, "Calc Notes", second.Title)
	assert.Equal(t, "Limits", second.Summary)
}

func TestWorkspace_CommunityMembershipIsPerUser(t *testing.T) {
	shared := NewMemberships()
	withShared := func(o *Options) { o.Memberships = shared }
	seed := SeedData{Communities: []models.Community{{ID: "chess", Name: "Chess Club", MemberCount: 4}}}

	alice := newTestWorkspace(t, withShared)
	alice.Load(seed)
	bob := New("user-2", Options{IDs: &sequenceIDs{}, Memberships: shared})
	bob.Load(seed)

	joined, err := alice.JoinCommunity("chess")
	require.NoError(t, err)
	assert.True(t, joined.IsMember)
	assert.Equal(t, 5, joined.MemberCount)

	forBob, err := bob.Community("chess")
	require.NoError(t, err)
	assert.False(t, forBob.IsMember)
	assert.Equal(t, []string{"user-1"}, shared.Members("chess"))

	again, err := alice.JoinCommunity("chess")
	require.NoError(t, err)
	assert.Equal(t, 5, again.MemberCount, "joining twice does not count twice")

	left, err := alice.LeaveCommunity("chess")
	require.NoError(t, err)
	assert.False(t, left.IsMember)
	assert.Equal(t, 4, left.MemberCount)
	assert.Equal(t, "Left Community", alice.Notifications()[0].Title)

	_, err = alice.JoinCommunity("missing")
	assert.ErrorIs(t, err, apperrors.ErrCommunityNotFound)
}

func TestWorkspace_CreateCommunityJoinsCreator(t *testing.T) {
	w := newTestWorkspace(t)

	c := w.CreateCommunity(CommunityDraft{Name: "Robotics", IsPrivate: true})

	assert.True(t, c.IsMember)
	assert.Equal(t, 1, c.MemberCount)
	assert.Equal(t, "user-1", c.CreatorID)
	members, err := w.Members(c.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"user-1"}, members)
}

func TestWorkspace_DeleteCommunityKeepsPosts(t *testing.T) {
	w := newTestWorkspace(t)
	c := w.CreateCommunity(CommunityDraft{Name: "Robotics"})
	post, err := w.CreatePost(c.ID, "First meetup on Friday")
	require.NoError(t, err)
	assert.Equal(t, "Post Published", w.Notifications()[0].Title)

	w.DeleteCommunity(c.ID)

	assert.Equal(t, []models.Post{post}, w.Posts(c.ID))
	_, err = w.CreatePost(c.ID, "orphan")
	assert.ErrorIs(t, err, apperrors.ErrCommunityNotFound)
}

func TestWorkspace_PurchaseCourse(t *testing.T) {
	w := newTestWorkspace(t)
	first := w.CreateCourse(CourseDraft{Title: "Algorithms", Price: 30})
	second := w.CreateCourse(CourseDraft{Title: "Databases", Price: 20})

	p1, err := w.PurchaseCourse(first.ID)
	require.NoError(t, err)
	p2, err := w.PurchaseCourse(second.ID)
	require.NoError(t, err)

	assert.Equal(t, []models.Purchase{p1, p2}, w.Purchases(), "purchases keep purchase order")
	assert.Equal(t, "Algorithms", p1.CourseName)
	assert.Equal(t, 30.0, p1.Price)

	course, err := w.Course(first.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, course.Enrollments)

	activities := w.Activities(collection.Query[models.RecentActivity]{})
	assert.Equal(t, models.ActivityCoursePurchase, activities[0].Type)
	assert.Equal(t, "Course Purchased", w.Notifications()[0].Title)

	_, err = w.PurchaseCourse("missing")
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
	assert.Len(t, w.Purchases(), 2)
}

func TestWorkspace_Chat(t *testing.T) {
	var delivered []models.ChatMessage
	w := newTestWorkspace(t, func(o *Options) {
		o.OnMessage = func(ownerID, chatID string, msg models.ChatMessage) {
			assert.Equal(t, "user-1", ownerID)
			delivered = append(delivered, msg)
		}
	})

	chat := w.CreateChat(ChatDraft{Participants: []models.User{{ID: "user-2", Name: "Grace"}}})
	assert.Equal(t, models.ChatDirect, chat.Type)
	require.Len(t, chat.Participants, 2)
	assert.Equal(t, "Chat Created", w.Notifications()[0].Title)
	queued := len(w.Notifications())

	msg, err := w.SendMessage(chat.ID, MessageDraft{Content: "hi"})
	require.NoError(t, err)

	got, err := w.Chat(chat.ID)
	require.NoError(t, err)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, msg, got.Messages[0])
	assert.Equal(t, "Ada", msg.SenderName)
	assert.Equal(t, []models.ChatMessage{msg}, delivered)
	assert.Len(t, w.Notifications(), queued, "messages do not notify")
	assert.Empty(t, chat.Messages, "returned chats are snapshots")

	_, err = w.SendMessage("missing", MessageDraft{Content: "hi"})
	assert.ErrorIs(t, err, apperrors.ErrChatNotFound)
	assert.Len(t, delivered, 1)
}

func TestWorkspace_GroupChatType(t *testing.T) {
	w := newTestWorkspace(t)

	chat := w.CreateChat(ChatDraft{Name: "Study group", Participants: []models.User{{ID: "a"}, {ID: "b"}, {ID: "user-1"}}})

	assert.Equal(t, models.ChatGroup, chat.Type)
	assert.Len(t, chat.Participants, 3)
}

func TestWorkspace_FollowCounters(t *testing.T) {
	w := newTestWorkspace(t)
	grace := models.User{ID: "user-2", Name: "Grace"}

	first := w.Follow(grace)
	second := w.Follow(grace)

	assert.Equal(t, first, second)
	profile, _ := w.Profile()
	assert.Equal(t, 1, profile.Following)
	assert.True(t, w.IsFollowing("user-2"))
	assert.Equal(t, "Following", w.Notifications()[0].Title)
	assert.Equal(t, models.ActivityFollow, w.Activities(collection.Query[models.RecentActivity]{})[0].Type)

	assert.True(t, w.Unfollow("user-2"))
	assert.False(t, w.Unfollow("user-2"))
	profile, _ = w.Profile()
	assert.Equal(t, 0, profile.Following)
	assert.Equal(t, "Unfollowed", w.Notifications()[0].Title)

	w.AdjustFollowers(-3)
	profile, _ = w.Profile()
	assert.Equal(t, 0, profile.Followers)
}

func TestWorkspace_UpdateProfileMerges(t *testing.T) {
	w := newTestWorkspace(t)
	bio := "Math major"

	updated, err := w.UpdateProfile(ProfilePatch{Bio: &bio})
	require.NoError(t, err)

	assert.Equal(t, "Ada", updated.Name)
	assert.Equal(t, "ada@uni.edu", updated.Email)
	require.NotNil(t, updated.Bio)
	assert.Equal(t, bio, *updated.Bio)
	assert.Equal(t, models.ActivityProfileUpdate, w.Activities(collection.Query[models.RecentActivity]{})[0].Type)
	assert.Equal(t, "Profile Updated", w.Notifications()[0].Title)
}

func TestWorkspace_UpdateProfileLeavesEarlierCopiesAlone(t *testing.T) {
	w := newTestWorkspace(t)
	firstBio := "first bio"
	_, err := w.UpdateProfile(ProfilePatch{Bio: &firstBio})
	require.NoError(t, err)

	snapshot, _ := w.Profile()
	chat := w.CreateChat(ChatDraft{Name: "Study group"})

	secondBio := "second bio"
	_, err = w.UpdateProfile(ProfilePatch{Bio: &secondBio})
	require.NoError(t, err)

	require.NotNil(t, snapshot.Bio)
	assert.Equal(t, "first bio", *snapshot.Bio)
	stored, err := w.Chat(chat.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Participants[0].Bio)
	assert.Equal(t, "first bio", *stored.Participants[0].Bio)
	assert.Equal(t, "first bio", firstBio)

	empty := ""
	cleared, err := w.UpdateProfile(ProfilePatch{Bio: &empty})
	require.NoError(t, err)
	require.NotNil(t, cleared.Bio)
	assert.Empty(t, *cleared.Bio)
}

func TestWorkspace_PreviewProfileDoesNotCommit(t *testing.T) {
	w := newTestWorkspace(t)
	bio := "Physics"

	preview, err := w.PreviewProfile(ProfilePatch{Bio: &bio})
	require.NoError(t, err)
	require.NotNil(t, preview.Bio)
	assert.Equal(t, "Physics", *preview.Bio)

	current, _ := w.Profile()
	assert.Nil(t, current.Bio)
	assert.Empty(t, w.Activities(collection.Query[models.RecentActivity]{}))
	assert.Empty(t, w.Notifications())
}

func TestWorkspace_ActivitiesAndNotifications(t *testing.T) {
	w := newTestWorkspace(t)
	w.CreateNote(NoteDraft{Title: "a"})
	w.CreateNote(NoteDraft{Title: "b"})

	activities := w.Activities(collection.Query[models.RecentActivity]{})
	require.Len(t, activities, 2)
	assert.True(t, w.DeleteActivity(activities[0].ID))
	assert.Len(t, w.Activities(collection.Query[models.RecentActivity]{}), 1)
	w.ClearActivities()
	assert.Empty(t, w.Activities(collection.Query[models.RecentActivity]{}))

	queue := w.Notifications()
	require.Len(t, queue, 2)
	toast, ok := w.Toast(testNow.Add(time.Second))
	require.True(t, ok)
	assert.Equal(t, queue[0], toast)

	assert.True(t, w.DismissNotification(queue[1].ID))
	assert.Len(t, w.Notifications(), 1)
	w.ClearNotifications()
	assert.Empty(t, w.Notifications())
}

func TestWorkspace_Navigation(t *testing.T) {
	w := newTestWorkspace(t)

	snap := w.Navigate("notes")
	assert.Equal(t, "notes", snap.Current)
	assert.Equal(t, []string{"home", "notes"}, snap.History)

	snap, moved := w.Back()
	assert.True(t, moved)
	assert.Equal(t, "home", snap.Current)

	_, moved = w.Back()
	assert.False(t, moved)
}

func TestWorkspace_QueryFilters(t *testing.T) {
	w := newTestWorkspace(t)
	w.CreateNote(NoteDraft{Title: "Calculus", Tags: []string{"math"}, IsPublic: true})
	w.CreateNote(NoteDraft{Title: "Poetry", Tags: []string{"literature"}})

	public := w.Notes(collection.Query[models.Note]{Match: func(n models.Note) bool { return n.IsPublic }})
	require.Len(t, public, 1)
	assert.Equal(t, "Calculus", public[0].Title)

	found := w.Notes(collection.Query[models.Note]{Search: "LITER"})
	require.Len(t, found, 1)
	assert.Equal(t, "Poetry", found[0].Title)
}

func TestWorkspace_ConcurrentCreatesStayUnique(t *testing.T) {
	w := New("user-1", Options{})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			w.CreateNote(NoteDraft{Title: fmt.Sprintf("note %d", i)})
		}(i)
	}
	wg.Wait()

	notes := w.Notes(collection.Query[models.Note]{})
	require.Len(t, notes, 20)
	seen := map[string]bool{}
	for _, n := range notes {
		assert.False(t, seen[n.ID])
		seen[n.ID] = true
	}
	assert.Equal(t, 20, w.Counts()["activities"])
	assert.Equal(t, 20, w.Counts()["notifications"])
}
