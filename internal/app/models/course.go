package models

import "time"

// Course is an item in the course store.
type Course struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	InstructorID   string    `json:"instructorId"`
	InstructorName string    `json:"instructorName"`
	Price          float64   `json:"price"`
	Subject        string    `json:"subject"`
	Enrollments    int       `json:"enrollments"`
	Rating         float64   `json:"rating"`
	Reviews        int       `json:"reviews"`
	CreatedDate    time.Time `json:"createdDate"`
	IsPublished    bool      `json:"isPublished"`
	Tags           []string  `json:"tags"`
}

func (c Course) EntityID() string { return c.ID }

func (c Course) SearchFields() []string {
	return append([]string{c.Title, c.Description, c.InstructorName, c.Subject}, c.Tags...)
}

// Purchase records a bought course. Purchases are append-only.
type Purchase struct {
	ID          string    `json:"id"`
	CourseID    string    `json:"courseId"`
	CourseName  string    `json:"courseName"`
	Price       float64   `json:"price"`
	PurchasedAt time.Time `json:"purchasedAt"`
}

func (p Purchase) EntityID() string { return p.ID }
