package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/its-platform/apiserver/internal/events"
	"github.com/its-platform/apiserver/internal/storage"
	"github.com/its-platform/apiserver/types"
)

// MaterialRepository defines persistence operations for learning
// materials.
type MaterialRepository interface {
	GetByID(ctx context.Context, id string) (types.LearningMaterial, error)
	List(ctx context.Context) ([]types.LearningMaterial, error)
	ListPublishedByTopicID(ctx context.Context, topicID string) ([]types.LearningMaterial, error)
	ListByCreatedBy(ctx context.Context, userID string) ([]types.LearningMaterial, error)
	ListByType(ctx context.Context, contentType types.ContentType) ([]types.LearningMaterial, error)
	SearchByTitle(ctx context.Context, query string) ([]types.LearningMaterial, error)
	Create(ctx context.Context, material types.LearningMaterial) (types.LearningMaterial, error)
	ApplyUpdate(ctx context.Context, id string, upd types.MaterialUpdate) (types.LearningMaterial, error)
	Delete(ctx context.Context, id string) error
}

// HistoryRepository defines persistence operations for content-history
// snapshots.
type HistoryRepository interface {
	Create(ctx context.Context, history types.ContentHistory) (types.ContentHistory, error)
	ListByMaterialIDDesc(ctx context.Context, materialID string) ([]types.ContentHistory, error)
	ListByChangedBy(ctx context.Context, userID string) ([]types.ContentHistory, error)
}

// ContentService implements learning-material authoring: CRUD with an
// append-only version history, file uploads, and search.
type ContentService struct {
	materials MaterialRepository
	history   HistoryRepository
	uploads   *storage.Storage
	publisher *events.Publisher
}

func NewContentService(materials MaterialRepository, history HistoryRepository, uploads *storage.Storage, publisher *events.Publisher) *ContentService {
	return &ContentService{
		materials: materials,
		history:   history,
		uploads:   uploads,
		publisher: publisher,
	}
}

const titleMaxLen = 200

// MaterialInput is the material create request body.
type MaterialInput struct {
	Title      string   `json:"title"`
	Type       string   `json:"type"`
	Format     string   `json:"format"`
	Content    string   `json:"content"`
	TopicID    string   `json:"topicId"`
	FilePath   string   `json:"filePath"`
	MimeType   string   `json:"mimeType"`
	FileSize   int64    `json:"fileSize"`
	Difficulty string   `json:"difficulty"`
	Tags       []string `json:"tags"`
	Published  bool     `json:"published"`
}

// Validate collects the failed constraints of the create body.
func (in MaterialInput) Validate() error {
	var fields []FieldError
	title := strings.TrimSpace(in.Title)
	if title == "" {
		fields = append(fields, FieldError{Field: "title", Message: "title is required"})
	} else if len(title) > titleMaxLen {
		fields = append(fields, FieldError{Field: "title", Message: "Title must not exceed 200 characters"})
	}
	if strings.TrimSpace(in.Type) == "" {
		fields = append(fields, FieldError{Field: "type", Message: "content type is required"})
	}
	if strings.TrimSpace(in.TopicID) == "" {
		fields = append(fields, FieldError{Field: "topicId", Message: "topic id is required"})
	}
	return validationError(fields)
}

// MaterialUpdateInput is the material update request body. Absent
// format, difficulty, and tags keep their stored values.
type MaterialUpdateInput struct {
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Published  bool     `json:"published"`
	Format     string   `json:"format"`
	Difficulty string   `json:"difficulty"`
	Tags       []string `json:"tags"`
}

func (in MaterialUpdateInput) Validate() error {
	var fields []FieldError
	title := strings.TrimSpace(in.Title)
	if title == "" {
		fields = append(fields, FieldError{Field: "title", Message: "title is required"})
	} else if len(title) > titleMaxLen {
		fields = append(fields, FieldError{Field: "title", Message: "Title must not exceed 200 characters"})
	}
	return validationError(fields)
}

// Create stores a new material and records history version 1 for it.
func (s *ContentService) Create(ctx context.Context, in MaterialInput, creatorID string) (types.LearningMaterial, error) {
	if err := in.Validate(); err != nil {
		return types.LearningMaterial{}, err
	}

	material := types.LearningMaterial{
		Title:     strings.TrimSpace(in.Title),
		Type:      types.ParseContentType(in.Type),
		Content:   in.Content,
		TopicID:   strings.TrimSpace(in.TopicID),
		CreatedBy: creatorID,
		FilePath:  in.FilePath,
		MimeType:  in.MimeType,
		FileSize:  in.FileSize,
		Tags:      in.Tags,
		Published: in.Published,
	}
	if in.Format != "" {
		material.Format = types.ParseFileFormat(in.Format)
	}
	if level, ok := types.ParseDifficultyLevel(in.Difficulty); ok {
		material.Difficulty = level
	}

	created, err := s.materials.Create(ctx, material)
	if err != nil {
		return types.LearningMaterial{}, err
	}

	if err := s.recordHistory(ctx, created, "Content created", creatorID); err != nil {
		return types.LearningMaterial{}, err
	}
	s.publisher.Publish(ctx, events.ContentEvent{
		Action:     events.ActionCreated,
		MaterialID: created.ID,
		Title:      created.Title,
		Version:    created.Version,
		ActorID:    creatorID,
		OccurredAt: time.Now(),
	})
	return created, nil
}

// Update overwrites the mutable fields of a material, advances its
// version, and records a history snapshot at the new version. Only the
// owning instructor or an admin may update.
func (s *ContentService) Update(ctx context.Context, id string, in MaterialUpdateInput, userID string, role types.UserRole) (types.LearningMaterial, error) {
	if err := in.Validate(); err != nil {
		return types.LearningMaterial{}, err
	}

	allowed, err := s.CanUserModifyContent(ctx, id, userID, role)
	if err != nil {
		return types.LearningMaterial{}, err
	}
	if !allowed {
		return types.LearningMaterial{}, ErrForbidden
	}

	upd := types.MaterialUpdate{
		Title:     strings.TrimSpace(in.Title),
		Content:   in.Content,
		Published: in.Published,
		Tags:      in.Tags,
	}
	if in.Format != "" {
		upd.Format = types.ParseFileFormat(in.Format)
	}
	if level, ok := types.ParseDifficultyLevel(in.Difficulty); ok {
		upd.Difficulty = level
	}

	updated, err := s.materials.ApplyUpdate(ctx, id, upd)
	if err != nil {
		return types.LearningMaterial{}, err
	}

	if err := s.recordHistory(ctx, updated, "Content updated", userID); err != nil {
		return types.LearningMaterial{}, err
	}
	s.publisher.Publish(ctx, events.ContentEvent{
		Action:     events.ActionUpdated,
		MaterialID: updated.ID,
		Title:      updated.Title,
		Version:    updated.Version,
		ActorID:    userID,
		OccurredAt: time.Now(),
	})
	return updated, nil
}

// Delete removes a material. Its history snapshots are retained as an
// audit trail. Only the owning instructor or an admin may delete.
func (s *ContentService) Delete(ctx context.Context, id string, userID string, role types.UserRole) error {
	material, err := s.materials.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !role.CanManageUsers() && !(role.CanCreateContent() && material.CreatedBy == userID) {
		return ErrForbidden
	}

	if err := s.materials.Delete(ctx, id); err != nil {
		return err
	}

	s.publisher.Publish(ctx, events.ContentEvent{
		Action:     events.ActionDeleted,
		MaterialID: material.ID,
		Title:      material.Title,
		Version:    material.Version,
		ActorID:    userID,
		OccurredAt: time.Now(),
	})
	return nil
}

func (s *ContentService) GetByID(ctx context.Context, id string) (types.LearningMaterial, error) {
	return s.materials.GetByID(ctx, id)
}

func (s *ContentService) GetAll(ctx context.Context) ([]types.LearningMaterial, error) {
	return s.materials.List(ctx)
}

// GetPublishedByTopic lists the published materials of a topic.
func (s *ContentService) GetPublishedByTopic(ctx context.Context, topicID string) ([]types.LearningMaterial, error) {
	return s.materials.ListPublishedByTopicID(ctx, topicID)
}

// GetByCreator lists every material authored by the given user,
// published or not.
func (s *ContentService) GetByCreator(ctx context.Context, userID string) ([]types.LearningMaterial, error) {
	return s.materials.ListByCreatedBy(ctx, userID)
}

func (s *ContentService) GetByType(ctx context.Context, contentType types.ContentType) ([]types.LearningMaterial, error) {
	return s.materials.ListByType(ctx, contentType)
}

// Search is a case-insensitive substring search over material titles.
func (s *ContentService) Search(ctx context.Context, query string) ([]types.LearningMaterial, error) {
	return s.materials.SearchByTitle(ctx, query)
}

// GetHistory returns a material's snapshots, newest version first.
func (s *ContentService) GetHistory(ctx context.Context, materialID string) ([]types.ContentHistory, error) {
	return s.history.ListByMaterialIDDesc(ctx, materialID)
}

// GetHistoryByUser returns the snapshots recorded for a user's edits.
func (s *ContentService) GetHistoryByUser(ctx context.Context, userID string) ([]types.ContentHistory, error) {
	return s.history.ListByChangedBy(ctx, userID)
}

// UploadFile stores an uploaded file and returns its resolved
// location. Storage failures surface as ErrUploadFailed with the I/O
// cause attached for the log line.
func (s *ContentService) UploadFile(ctx context.Context, filename string, r io.Reader, size int64, contentType string) (string, error) {
	location, err := s.uploads.SaveUpload(ctx, filename, r, size, contentType)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	return location, nil
}

// CanUserModifyContent reports whether the user may update or delete
// the material: admins always may, instructors only for materials they
// created. A missing material is never modifiable.
func (s *ContentService) CanUserModifyContent(ctx context.Context, contentID, userID string, role types.UserRole) (bool, error) {
	material, err := s.materials.GetByID(ctx, contentID)
	if err != nil {
		return false, err
	}
	if role.CanManageUsers() {
		return true, nil
	}
	return role.CanCreateContent() && material.CreatedBy == userID, nil
}

// recordHistory appends a snapshot at the material's current version.
// A failed write surfaces to the caller: the version counter has
// already advanced, so a missing snapshot would hole the 1..n range
// with no repair path.
func (s *ContentService) recordHistory(ctx context.Context, material types.LearningMaterial, description, userID string) error {
	_, err := s.history.Create(ctx, types.ContentHistory{
		MaterialID:        material.ID,
		Title:             material.Title,
		Content:           material.Content,
		ChangeDescription: description,
		ChangedBy:         userID,
		Version:           material.Version,
	})
	return err
}
