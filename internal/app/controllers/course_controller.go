package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yigit/studyhub/internal/app/models"
	"github.com/yigit/studyhub/internal/app/models/dto"
	"github.com/yigit/studyhub/internal/middleware"
)

// CourseController handles the course store
type CourseController struct{}

// NewCourseController creates a new CourseController
func NewCourseController() *CourseController {
	return &CourseController{}
}

// ListCourses handles GET /courses with ?q= search and ?subject= filter
func (c *CourseController) ListCourses(ctx *gin.Context) {
	w, ok := workspaceOf(ctx)
	if !ok {
		return
	}
	respondList(ctx, w.Courses(listQuery(ctx, "subject", func(subject string, course models.Course) bool {
		return strings.EqualFold(course.Subject, subject)
	})))
}

// CreateCourse handles the store listing form
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	w, ok := workspaceOf(ctx)
	if !ok {
		return
	}
	var req dto.CreateCourseRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(w.CreateCourse(req.Draft())))
}

// GetCourse returns one course
func (c *CourseController) GetCourse(ctx *gin.Context) {
	w, ok := workspaceOf(ctx)
	if !ok {
		return
	}
	course, err := w.Course(ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(course))
}

// DeleteCourse removes a course; missing ids are a no-op
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	w, ok := workspaceOf(ctx)
	if !ok {
		return
	}
	id := ctx.Param("id")
	respondDeleted(ctx, id, w.DeleteCourse(id))
}

// PurchaseCourse appends a purchase of the course
func (c *CourseController) PurchaseCourse(ctx *gin.Context) {
	w, ok := workspaceOf(ctx)
	if !ok {
		return
	}
	purchase, err := w.PurchaseCourse(ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(purchase))
}

// ListPurchases returns the purchase log in purchase order
func (c *CourseController) ListPurchases(ctx *gin.Context) {
	w, ok := workspaceOf(ctx)
	if !ok {
		return
	}
	respondList(ctx, w.Purchases())
}
