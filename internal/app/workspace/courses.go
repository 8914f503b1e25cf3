package workspace

import (
	"time"

	"github.com/yigit/studyhub/internal/app/models"
	"github.com/yigit/studyhub/internal/pkg/apperrors"
	"github.com/yigit/studyhub/internal/pkg/collection"
	"github.com/yigit/studyhub/internal/pkg/notification"
)

// CourseDraft is a course as submitted by the store's create form.
type CourseDraft struct {
	Title       string
	Description string
	Price       float64
	Subject     string
	Tags        []string
	IsPublished bool
}

// CreateCourse adds a course taught by the owner to the store.
func (w *Workspace) CreateCourse(d CourseDraft) models.Course {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.courses.Create(func(id string, now time.Time) models.Course {
		return models.Course{
			ID:             id,
			Title:          d.Title,
			Description:    d.Description,
			InstructorID:   w.ownerID,
			InstructorName: w.profile.Name,
			Price:          d.Price,
			Subject:        d.Subject,
			CreatedDate:    now,
			IsPublished:    d.IsPublished,
			Tags:           cloneStrings(d.Tags),
		}
	})
}

// Courses lists store courses matching q, newest first.
func (w *Workspace) Courses(q collection.Query[models.Course]) []models.Course {
	w.mu.Lock()
	defer w.mu.Unlock()

	return q.Apply(w.courses.Items())
}

// Course returns a single course.
func (w *Workspace) Course(id string) (models.Course, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	c, ok := w.courses.Find(id)
	if !ok {
		return models.Course{}, apperrors.ErrCourseNotFound
	}
	return c, nil
}

// DeleteCourse removes a course. Earlier purchases are kept.
func (w *Workspace) DeleteCourse(id string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.courses.Delete(id)
}

// PurchaseCourse appends a purchase of the course and counts the enrollment.
// There is no refund path.
func (w *Workspace) PurchaseCourse(courseID string) (models.Purchase, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	course, ok := w.courses.Update(courseID, func(c models.Course) models.Course {
		c.Enrollments++
		return c
	})
	if !ok {
		return models.Purchase{}, apperrors.ErrCourseNotFound
	}

	purchase := w.purchases.Append(func(id string, now time.Time) models.Purchase {
		return models.Purchase{
			ID:          id,
			CourseID:    course.ID,
			CourseName:  course.Title,
			Price:       course.Price,
			PurchasedAt: now,
		}
	})
	w.recordActivity(models.ActivityCoursePurchase, "Purchased a course", course.Title, course.ID)
	w.notify(notification.KindSuccess, "Course Purchased", "You now have access to \""+course.Title+"\".")
	w.metrics.EntityCreated("purchase")
	return purchase, nil
}

// Purchases lists purchases in the order they were made.
func (w *Workspace) Purchases() []models.Purchase {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.purchases.Items()
}
