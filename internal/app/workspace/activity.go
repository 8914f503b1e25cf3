package workspace

import (
	"time"

	"github.com/yigit/studyhub/internal/app/models"
	"github.com/yigit/studyhub/internal/pkg/collection"
	"github.com/yigit/studyhub/internal/pkg/navigation"
	"github.com/yigit/studyhub/internal/pkg/notification"
)

// Activities lists the activity log matching q, newest first.
func (w *Workspace) Activities(q collection.Query[models.RecentActivity]) []models.RecentActivity {
	w.mu.Lock()
	defer w.mu.Unlock()

	return q.Apply(w.activities.Items())
}

// DeleteActivity removes one log entry.
func (w *Workspace) DeleteActivity(id string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.activities.Delete(id)
}

// ClearActivities empties the activity log.
func (w *Workspace) ClearActivities() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.activities.Clear()
}

// Notifications lists queued notifications, newest first.
func (w *Workspace) Notifications() []notification.Notification {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.notifications.List()
}

// Notify pushes a notification that is not tied to a collection change.
func (w *Workspace) Notify(kind notification.Kind, title, message string) notification.Notification {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.notify(kind, title, message)
}

// DismissNotification removes one notification.
func (w *Workspace) DismissNotification(id string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.notifications.Dismiss(id)
}

// ClearNotifications empties the notification queue.
func (w *Workspace) ClearNotifications() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.notifications.ClearAll()
}

// Toast returns the newest notification if it is still fresh at now.
func (w *Workspace) Toast(now time.Time) (notification.Notification, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.notifications.Toast(now)
}

// Navigate pushes view onto the navigation history.
func (w *Workspace) Navigate(view string) navigation.Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.nav.Push(view)
	return w.nav.Snapshot()
}

// Back returns to the previous view when there is one.
func (w *Workspace) Back() (navigation.Snapshot, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	moved := w.nav.Back()
	return w.nav.Snapshot(), moved
}

// Navigation returns the current navigation state.
func (w *Workspace) Navigation() navigation.Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.nav.Snapshot()
}
