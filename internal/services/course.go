package services

import (
	"context"
	"strings"

	"github.com/its-platform/apiserver/types"
)

// CourseRepository defines persistence operations for courses.
type CourseRepository interface {
	GetByID(ctx context.Context, id string) (types.Course, error)
	List(ctx context.Context) ([]types.Course, error)
	ListByCreatedBy(ctx context.Context, userID string) ([]types.Course, error)
	ListBySubject(ctx context.Context, subject string) ([]types.Course, error)
	ListByDifficulty(ctx context.Context, level types.DifficultyLevel) ([]types.Course, error)
	ListPublished(ctx context.Context) ([]types.Course, error)
	ListPublishedBySubjectAndDifficulty(ctx context.Context, subject string, level types.DifficultyLevel) ([]types.Course, error)
	SearchByTitle(ctx context.Context, query string) ([]types.Course, error)
	Create(ctx context.Context, course types.Course) (types.Course, error)
	Update(ctx context.Context, course types.Course) (types.Course, error)
	Delete(ctx context.Context, id string) error
}

// CourseService implements course authoring and catalog queries.
type CourseService struct {
	courses CourseRepository
}

func NewCourseService(courses CourseRepository) *CourseService {
	return &CourseService{courses: courses}
}

// CourseInput is the course create and update request body.
type CourseInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Subject     string `json:"subject"`
	Difficulty  string `json:"difficulty"`
	Published   bool   `json:"published"`
}

// Validate collects the failed constraints of the course body.
func (in CourseInput) Validate() error {
	var fields []FieldError
	title := strings.TrimSpace(in.Title)
	if title == "" {
		fields = append(fields, FieldError{Field: "title", Message: "title is required"})
	} else if len(title) > titleMaxLen {
		fields = append(fields, FieldError{Field: "title", Message: "Title must not exceed 200 characters"})
	}
	return validationError(fields)
}

// Create stores a new course owned by the creating user.
func (s *CourseService) Create(ctx context.Context, in CourseInput, creatorID string) (types.Course, error) {
	if err := in.Validate(); err != nil {
		return types.Course{}, err
	}

	course := types.Course{
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Subject:     strings.TrimSpace(in.Subject),
		CreatedBy:   creatorID,
		Published:   in.Published,
	}
	if level, ok := types.ParseDifficultyLevel(in.Difficulty); ok {
		course.Difficulty = level
	}

	return s.courses.Create(ctx, course)
}

// Update overwrites the mutable fields of a course. Only the owning
// instructor or an admin may update.
func (s *CourseService) Update(ctx context.Context, id string, in CourseInput, userID string, role types.UserRole) (types.Course, error) {
	if err := in.Validate(); err != nil {
		return types.Course{}, err
	}

	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		return types.Course{}, err
	}
	if !canModify(course.CreatedBy, userID, role) {
		return types.Course{}, ErrForbidden
	}

	course.Title = strings.TrimSpace(in.Title)
	course.Description = in.Description
	course.Subject = strings.TrimSpace(in.Subject)
	course.Published = in.Published
	if level, ok := types.ParseDifficultyLevel(in.Difficulty); ok {
		course.Difficulty = level
	}

	return s.courses.Update(ctx, course)
}

// Delete removes a course. Topics and materials under it are not
// cascaded. Only the owning instructor or an admin may delete.
func (s *CourseService) Delete(ctx context.Context, id string, userID string, role types.UserRole) error {
	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !canModify(course.CreatedBy, userID, role) {
		return ErrForbidden
	}
	return s.courses.Delete(ctx, id)
}

func (s *CourseService) GetByID(ctx context.Context, id string) (types.Course, error) {
	return s.courses.GetByID(ctx, id)
}

func (s *CourseService) GetAll(ctx context.Context) ([]types.Course, error) {
	return s.courses.List(ctx)
}

// GetPublished lists the student-facing course catalog.
func (s *CourseService) GetPublished(ctx context.Context) ([]types.Course, error) {
	return s.courses.ListPublished(ctx)
}

// GetByCreator lists every course owned by the given user, published
// or not.
func (s *CourseService) GetByCreator(ctx context.Context, userID string) ([]types.Course, error) {
	return s.courses.ListByCreatedBy(ctx, userID)
}

func (s *CourseService) GetBySubject(ctx context.Context, subject string) ([]types.Course, error) {
	return s.courses.ListBySubject(ctx, subject)
}

// GetByDifficulty lists courses at the given level. An unknown level
// fails validation rather than matching nothing.
func (s *CourseService) GetByDifficulty(ctx context.Context, raw string) ([]types.Course, error) {
	level, ok := types.ParseDifficultyLevel(raw)
	if !ok {
		return nil, validationError([]FieldError{{Field: "level", Message: "unknown difficulty level"}})
	}
	return s.courses.ListByDifficulty(ctx, level)
}

// GetPublishedBySubjectAndDifficulty narrows the published catalog by
// both subject and difficulty.
func (s *CourseService) GetPublishedBySubjectAndDifficulty(ctx context.Context, subject, raw string) ([]types.Course, error) {
	level, ok := types.ParseDifficultyLevel(raw)
	if !ok {
		return nil, validationError([]FieldError{{Field: "level", Message: "unknown difficulty level"}})
	}
	return s.courses.ListPublishedBySubjectAndDifficulty(ctx, subject, level)
}

// Search is a case-insensitive substring search over course titles.
func (s *CourseService) Search(ctx context.Context, query string) ([]types.Course, error) {
	return s.courses.SearchByTitle(ctx, query)
}

// canModify is the shared ownership check: admins always pass,
// instructors only for records they created.
func canModify(createdBy, userID string, role types.UserRole) bool {
	if role.CanManageUsers() {
		return true
	}
	return role.CanCreateContent() && createdBy == userID
}
