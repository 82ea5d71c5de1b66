package services

import (
	"context"
	"strings"

	"github.com/its-platform/apiserver/internal/store"
	"github.com/its-platform/apiserver/types"
)

// TopicRepository defines persistence operations for topics.
type TopicRepository interface {
	GetByID(ctx context.Context, id string) (types.Topic, error)
	List(ctx context.Context) ([]types.Topic, error)
	ListByCourseID(ctx context.Context, courseID string) ([]types.Topic, error)
	SearchByName(ctx context.Context, query string) ([]types.Topic, error)
	Create(ctx context.Context, topic types.Topic) (types.Topic, error)
	Update(ctx context.Context, topic types.Topic) (types.Topic, error)
	Delete(ctx context.Context, id string) error
}

// TopicService implements topic authoring within courses.
type TopicService struct {
	topics  TopicRepository
	courses CourseRepository
}

func NewTopicService(topics TopicRepository, courses CourseRepository) *TopicService {
	return &TopicService{topics: topics, courses: courses}
}

// TopicInput is the topic create and update request body.
type TopicInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	CourseID    string `json:"courseId"`
}

// Validate collects the failed constraints of the topic body.
func (in TopicInput) Validate() error {
	var fields []FieldError
	if strings.TrimSpace(in.Name) == "" {
		fields = append(fields, FieldError{Field: "name", Message: "name is required"})
	}
	if strings.TrimSpace(in.CourseID) == "" {
		fields = append(fields, FieldError{Field: "courseId", Message: "course id is required"})
	}
	return validationError(fields)
}

// Create stores a new topic under an existing course. The course
// owner check applies: instructors may only add topics to their own
// courses.
func (s *TopicService) Create(ctx context.Context, in TopicInput, userID string, role types.UserRole) (types.Topic, error) {
	if err := in.Validate(); err != nil {
		return types.Topic{}, err
	}

	course, err := s.courses.GetByID(ctx, strings.TrimSpace(in.CourseID))
	if err != nil {
		if err == store.ErrNotFound {
			return types.Topic{}, validationError([]FieldError{{Field: "courseId", Message: "course does not exist"}})
		}
		return types.Topic{}, err
	}
	if !canModify(course.CreatedBy, userID, role) {
		return types.Topic{}, ErrForbidden
	}

	return s.topics.Create(ctx, types.Topic{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		CourseID:    course.ID,
	})
}

// Update overwrites the mutable fields of a topic. Moving a topic to
// another course revalidates the target course reference.
func (s *TopicService) Update(ctx context.Context, id string, in TopicInput, userID string, role types.UserRole) (types.Topic, error) {
	if err := in.Validate(); err != nil {
		return types.Topic{}, err
	}

	topic, err := s.topics.GetByID(ctx, id)
	if err != nil {
		return types.Topic{}, err
	}

	course, err := s.courses.GetByID(ctx, strings.TrimSpace(in.CourseID))
	if err != nil {
		if err == store.ErrNotFound {
			return types.Topic{}, validationError([]FieldError{{Field: "courseId", Message: "course does not exist"}})
		}
		return types.Topic{}, err
	}
	if !canModify(course.CreatedBy, userID, role) {
		return types.Topic{}, ErrForbidden
	}

	topic.Name = strings.TrimSpace(in.Name)
	topic.Description = in.Description
	topic.CourseID = course.ID

	return s.topics.Update(ctx, topic)
}

// Delete removes a topic. Materials under it are not cascaded.
func (s *TopicService) Delete(ctx context.Context, id string, userID string, role types.UserRole) error {
	topic, err := s.topics.GetByID(ctx, id)
	if err != nil {
		return err
	}

	course, err := s.courses.GetByID(ctx, topic.CourseID)
	if err != nil && err != store.ErrNotFound {
		return err
	}
	// An orphaned topic (parent course already deleted) is removable
	// by any content author.
	if err == nil && !canModify(course.CreatedBy, userID, role) {
		return ErrForbidden
	}

	return s.topics.Delete(ctx, id)
}

func (s *TopicService) GetByID(ctx context.Context, id string) (types.Topic, error) {
	return s.topics.GetByID(ctx, id)
}

func (s *TopicService) GetAll(ctx context.Context) ([]types.Topic, error) {
	return s.topics.List(ctx)
}

// GetByCourse lists the topics of a course.
func (s *TopicService) GetByCourse(ctx context.Context, courseID string) ([]types.Topic, error) {
	return s.topics.ListByCourseID(ctx, courseID)
}

// Search is a case-insensitive substring search over topic names.
func (s *TopicService) Search(ctx context.Context, query string) ([]types.Topic, error) {
	return s.topics.SearchByName(ctx, query)
}
