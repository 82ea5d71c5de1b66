package types

import "time"

// Course groups topics under a subject and difficulty level.
type Course struct {
	ID          string          `json:"id" bson:"_id,omitempty"`
	Title       string          `json:"title" bson:"title"`
	Description string          `json:"description,omitempty" bson:"description,omitempty"`
	Subject     string          `json:"subject,omitempty" bson:"subject,omitempty"`
	Difficulty  DifficultyLevel `json:"difficulty,omitempty" bson:"difficulty,omitempty"`

	// CreatedBy is the id of the instructor who owns the course.
	CreatedBy string `json:"createdBy" bson:"createdBy"`

	// Published gates visibility in student-facing listings.
	Published bool `json:"published" bson:"published"`

	CreatedDate      time.Time `json:"createdDate" bson:"createdDate"`
	LastModifiedDate time.Time `json:"lastModifiedDate" bson:"lastModifiedDate"`
}

// Topic is a unit of study within a course.
type Topic struct {
	ID          string `json:"id" bson:"_id,omitempty"`
	Name        string `json:"name" bson:"name"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`

	// CourseID references the parent course. The reference is checked
	// at the service boundary, not by the store.
	CourseID string `json:"courseId" bson:"courseId"`

	CreatedDate      time.Time `json:"createdDate" bson:"createdDate"`
	LastModifiedDate time.Time `json:"lastModifiedDate" bson:"lastModifiedDate"`
}
