// Package workspace holds the per-user root owner of every content collection,
// the notification queue and the navigation history.
package workspace

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/studyhub/internal/app/models"
	"github.com/yigit/studyhub/internal/pkg/collection"
	"github.com/yigit/studyhub/internal/pkg/idgen"
	"github.com/yigit/studyhub/internal/pkg/navigation"
	"github.com/yigit/studyhub/internal/pkg/notification"
)

// Recorder receives counters for entity lifecycle events.
type Recorder interface {
	EntityCreated(kind string)
	EntityDeleted(kind string)
	NotificationPushed(kind notification.Kind)
}

type noopRecorder struct{}

func (noopRecorder) EntityCreated(string) {}
func (noopRecorder) EntityDeleted(string) {}
func (noopRecorder) NotificationPushed(notification.Kind) {}

// MessageListener is told about every chat message appended to a workspace.
type MessageListener func(ownerID, chatID string, msg models.ChatMessage)

// Options configures a Workspace.
type Options struct {
	IDs         idgen.Generator
	Clock       func() time.Time
	ToastTTL    time.Duration
	Logger      *zerolog.Logger
	Metrics     Recorder
	Memberships *Memberships
	OnMessage   MessageListener
}

func (o *Options) withDefaults() {
	if o.IDs == nil {
		o.IDs = idgen.NewULIDGenerator()
	}
	if o.Clock == nil {
		o.Clock = time.Now
	}
	if o.Metrics == nil {
		o.Metrics = noopRecorder{}
	}
	if o.Logger == nil {
		nop := zerolog.Nop()
		o.Logger = &nop
	}
	if o.Memberships == nil {
		o.Memberships = NewMemberships()
	}
}

// Workspace is the single owner of one user's in-memory state. Every exported
// method takes the workspace lock, so each operation is atomic with respect
// to the others.
type Workspace struct {
	mu sync.Mutex

	ownerID       string
	profile       models.User
	profileLoaded bool

	ids         idgen.Generator
	now         func() time.Time
	log         zerolog.Logger
	metrics     Recorder
	memberships *Memberships
	onMessage   MessageListener

	notes       *collection.Manager[models.Note]
	flashcards  *collection.Manager[models.FlipCardSet]
	communities *collection.Manager[models.Community]
	posts       *collection.Manager[models.Post]
	sessions    *collection.Manager[models.StudySession]
	infovids    *collection.Manager[models.VideoReel]
	courses     *collection.Manager[models.Course]
	purchases   *collection.Manager[models.Purchase]
	chats       *collection.Manager[models.Chat]
	follows     *collection.Manager[models.Follow]
	activities  *collection.Manager[models.RecentActivity]

	notifications *notification.Queue
	nav           *navigation.Stack
}

// New creates an empty workspace for ownerID. The profile is a placeholder
// until SetProfile is called.
func New(ownerID string, opts Options) *Workspace {
	opts.withDefaults()

	w := &Workspace{
		ownerID:     ownerID,
		profile:     models.User{ID: ownerID, ProfileVisibility: models.VisibilityPublic},
		ids:         opts.IDs,
		now:         opts.Clock,
		log:         opts.Logger.With().Str("workspace", ownerID).Logger(),
		metrics:     opts.Metrics,
		memberships: opts.Memberships,
		onMessage:   opts.OnMessage,
		nav:         navigation.New(navigation.Home),
	}
	w.notifications = notification.NewQueue(opts.IDs,
		notification.WithClock(opts.Clock),
		notification.WithTTL(opts.ToastTTL),
	)

	w.notes = newManager(w, hooksFor(w, "note", announcement[models.Note]{
		activity:     models.ActivityNoteUpload,
		activityText: func(n models.Note) (string, string) { return "Uploaded a note", n.Title },
		created:      "Note Uploaded",
		createdText:  func(n models.Note) string { return "\"" + n.Title + "\" has been uploaded." },
		deleted:      "Note Deleted",
		deletedText:  "The note has been removed.",
	}))
	w.flashcards = newManager(w, hooksFor(w, "flashcard_set", announcement[models.FlipCardSet]{
		activity:     models.ActivityFlashcardCreate,
		activityText: func(s models.FlipCardSet) (string, string) { return "Created flashcards", s.Title },
		created:      "Flashcards Created",
		createdText:  func(s models.FlipCardSet) string { return "\"" + s.Title + "\" is ready to study." },
		deleted:      "Flashcards Deleted",
		deletedText:  "The flashcard set has been removed.",
	}))
	w.communities = newManager(w, hooksFor(w, "community", announcement[models.Community]{
		activity:     models.ActivityCommunityCreate,
		activityText: func(c models.Community) (string, string) { return "Created a community", c.Name },
		created:      "Community Created",
		createdText:  func(c models.Community) string { return "\"" + c.Name + "\" is live." },
		deleted:      "Community Deleted",
		deletedText:  "The community has been removed.",
	}))
	w.posts = newManager(w, hooksFor(w, "post", announcement[models.Post]{
		activity:     models.ActivityPostCreate,
		activityText: func(p models.Post) (string, string) { return "Published a post", excerpt(p.Content) },
		created:      "Post Published",
		createdText:  func(models.Post) string { return "Your post is live." },
		deleted:      "Post Deleted",
		deletedText:  "The post has been removed.",
	}))
	w.sessions = newManager(w, hooksFor(w, "study_session", announcement[models.StudySession]{
		activity:     models.ActivitySessionCreate,
		activityText: func(s models.StudySession) (string, string) { return "Scheduled a study session", s.Title },
		created:      "Study Session Scheduled",
		createdText: func(s models.StudySession) string {
			return "\"" + s.Title + "\" starts " + s.ScheduledTime.Format("Jan 2, 15:04") + "."
		},
		deleted:     "Study Session Deleted",
		deletedText: "The study session has been removed.",
	}))
	w.infovids = newManager(w, hooksFor(w, "infovid", announcement[models.VideoReel]{
		activity:     models.ActivityInfovidUpload,
		activityText: func(v models.VideoReel) (string, string) { return "Uploaded an infovid", v.Title },
		created:      "Infovid Uploaded",
		createdText:  func(v models.VideoReel) string { return "\"" + v.Title + "\" has been uploaded." },
		deleted:      "Infovid Deleted",
		deletedText:  "The infovid has been removed.",
	}))
	w.courses = newManager(w, hooksFor(w, "course", announcement[models.Course]{
		activity:     models.ActivityCourseCreate,
		activityText: func(c models.Course) (string, string) { return "Created a course", c.Title },
		created:      "Course Created",
		createdText:  func(c models.Course) string { return "\"" + c.Title + "\" is in the store." },
		deleted:      "Course Deleted",
		deletedText:  "The course has been removed.",
	}))
	w.chats = newManager(w, collection.Hooks[models.Chat]{
		OnCreate: func(c models.Chat) {
			w.metrics.EntityCreated("chat")
			w.notify(notification.KindSuccess, "Chat Created", "Say hello!")
		},
		OnDelete: func(string, bool) {
			w.metrics.EntityDeleted("chat")
			w.notify(notification.KindInfo, "Chat Deleted", "The conversation has been removed.")
		},
	})
	w.purchases = newManager[models.Purchase](w, collection.Hooks[models.Purchase]{})
	w.follows = newManager[models.Follow](w, collection.Hooks[models.Follow]{})
	w.activities = newManager[models.RecentActivity](w, collection.Hooks[models.RecentActivity]{})

	return w
}

func newManager[T collection.Entity](w *Workspace, hooks collection.Hooks[T]) *collection.Manager[T] {
	return collection.NewManager[T](w.ids,
		collection.WithClock[T](w.now),
		collection.WithHooks(hooks),
	)
}

// announcement describes the side effects of creating and deleting one kind
// of entity.
type announcement[T collection.Entity] struct {
	activity     models.ActivityType
	activityText func(T) (title, description string)
	created      string
	createdText  func(T) string
	deleted      string
	deletedText  string
}

func hooksFor[T collection.Entity](w *Workspace, kind string, a announcement[T]) collection.Hooks[T] {
	return collection.Hooks[T]{
		OnCreate: func(created T) {
			title, description := a.activityText(created)
			w.recordActivity(a.activity, title, description, created.EntityID())
			w.notify(notification.KindSuccess, a.created, a.createdText(created))
			w.metrics.EntityCreated(kind)
		},
		OnDelete: func(id string, removed bool) {
			w.notify(notification.KindInfo, a.deleted, a.deletedText)
			if removed {
				w.metrics.EntityDeleted(kind)
			}
			w.log.Debug().Str("kind", kind).Str("id", id).Bool("removed", removed).Msg("Entity deleted")
		},
	}
}

// recordActivity and notify expect the lock to be held.
func (w *Workspace) recordActivity(kind models.ActivityType, title, description, relatedID string) models.RecentActivity {
	return w.activities.Create(func(id string, now time.Time) models.RecentActivity {
		return models.RecentActivity{
			ID:          id,
			Type:        kind,
			Title:       title,
			Description: description,
			Timestamp:   now,
			RelatedID:   relatedID,
		}
	})
}

func (w *Workspace) notify(kind notification.Kind, title, message string) notification.Notification {
	n := w.notifications.Push(kind, title, message)
	w.metrics.NotificationPushed(kind)
	return n
}

// OwnerID returns the id of the user this workspace belongs to.
func (w *Workspace) OwnerID() string {
	return w.ownerID
}

func excerpt(s string) string {
	const limit = 60
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit]) + "..."
}
