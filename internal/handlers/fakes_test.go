package handlers

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/its-platform/apiserver/internal/store"
	"github.com/its-platform/apiserver/types"
)

// Compact in-memory repositories backing the router tests. The
// handler tests run requests serially, so no locking is needed.

type memUserRepo struct {
	users map[string]types.User
	seq   int
}

func newMemUserRepo() *memUserRepo { return &memUserRepo{users: map[string]types.User{}} }

func (m *memUserRepo) GetByID(_ context.Context, id string) (types.User, error) {
	user, ok := m.users[id]
	if !ok {
		return types.User{}, store.ErrNotFound
	}
	return user, nil
}

func (m *memUserRepo) GetByEmail(_ context.Context, email string) (types.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (m *memUserRepo) GetActiveByEmail(_ context.Context, email string) (types.User, error) {
	for _, user := range m.users {
		if user.Email == email && user.Active {
			return user, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (m *memUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, user := range m.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *memUserRepo) Create(_ context.Context, user types.User) (types.User, error) {
	for _, existing := range m.users {
		if existing.Email == user.Email {
			return types.User{}, store.ErrDuplicateKey
		}
	}
	m.seq++
	user.ID = fmt.Sprintf("user-%d", m.seq)
	user.CreatedDate = time.Now()
	user.LastModifiedDate = user.CreatedDate
	m.users[user.ID] = user
	return user, nil
}

func (m *memUserRepo) Update(_ context.Context, user types.User) (types.User, error) {
	if _, ok := m.users[user.ID]; !ok {
		return types.User{}, store.ErrNotFound
	}
	m.users[user.ID] = user
	return user, nil
}

type memCourseRepo struct {
	courses map[string]types.Course
	seq     int
}

func newMemCourseRepo() *memCourseRepo { return &memCourseRepo{courses: map[string]types.Course{}} }

func (m *memCourseRepo) GetByID(_ context.Context, id string) (types.Course, error) {
	course, ok := m.courses[id]
	if !ok {
		return types.Course{}, store.ErrNotFound
	}
	return course, nil
}

func (m *memCourseRepo) List(_ context.Context) ([]types.Course, error) {
	return m.filter(func(types.Course) bool { return true }), nil
}

func (m *memCourseRepo) ListByCreatedBy(_ context.Context, userID string) ([]types.Course, error) {
	return m.filter(func(c types.Course) bool { return c.CreatedBy == userID }), nil
}

func (m *memCourseRepo) ListBySubject(_ context.Context, subject string) ([]types.Course, error) {
	return m.filter(func(c types.Course) bool { return c.Subject == subject }), nil
}

func (m *memCourseRepo) ListByDifficulty(_ context.Context, level types.DifficultyLevel) ([]types.Course, error) {
	return m.filter(func(c types.Course) bool { return c.Difficulty == level }), nil
}

func (m *memCourseRepo) ListPublished(_ context.Context) ([]types.Course, error) {
	return m.filter(func(c types.Course) bool { return c.Published }), nil
}

func (m *memCourseRepo) ListPublishedBySubjectAndDifficulty(_ context.Context, subject string, level types.DifficultyLevel) ([]types.Course, error) {
	return m.filter(func(c types.Course) bool {
		return c.Published && c.Subject == subject && c.Difficulty == level
	}), nil
}

func (m *memCourseRepo) SearchByTitle(_ context.Context, query string) ([]types.Course, error) {
	needle := strings.ToLower(query)
	return m.filter(func(c types.Course) bool {
		return strings.Contains(strings.ToLower(c.Title), needle)
	}), nil
}

func (m *memCourseRepo) Create(_ context.Context, course types.Course) (types.Course, error) {
	m.seq++
	course.ID = fmt.Sprintf("course-%d", m.seq)
	course.CreatedDate = time.Now()
	course.LastModifiedDate = course.CreatedDate
	m.courses[course.ID] = course
	return course, nil
}

func (m *memCourseRepo) Update(_ context.Context, course types.Course) (types.Course, error) {
	if _, ok := m.courses[course.ID]; !ok {
		return types.Course{}, store.ErrNotFound
	}
	m.courses[course.ID] = course
	return course, nil
}

func (m *memCourseRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.courses[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.courses, id)
	return nil
}

func (m *memCourseRepo) filter(keep func(types.Course) bool) []types.Course {
	result := []types.Course{}
	for _, course := range m.courses {
		if keep(course) {
			result = append(result, course)
		}
	}
	return result
}

type memTopicRepo struct {
	topics map[string]types.Topic
	seq    int
}

func newMemTopicRepo() *memTopicRepo { return &memTopicRepo{topics: map[string]types.Topic{}} }

func (m *memTopicRepo) GetByID(_ context.Context, id string) (types.Topic, error) {
	topic, ok := m.topics[id]
	if !ok {
		return types.Topic{}, store.ErrNotFound
	}
	return topic, nil
}

func (m *memTopicRepo) List(_ context.Context) ([]types.Topic, error) {
	return m.filter(func(types.Topic) bool { return true }), nil
}

func (m *memTopicRepo) ListByCourseID(_ context.Context, courseID string) ([]types.Topic, error) {
	return m.filter(func(t types.Topic) bool { return t.CourseID == courseID }), nil
}

func (m *memTopicRepo) SearchByName(_ context.Context, query string) ([]types.Topic, error) {
	needle := strings.ToLower(query)
	return m.filter(func(t types.Topic) bool {
		return strings.Contains(strings.ToLower(t.Name), needle)
	}), nil
}

func (m *memTopicRepo) Create(_ context.Context, topic types.Topic) (types.Topic, error) {
	m.seq++
	topic.ID = fmt.Sprintf("topic-%d", m.seq)
	topic.CreatedDate = time.Now()
	topic.LastModifiedDate = topic.CreatedDate
	m.topics[topic.ID] = topic
	return topic, nil
}

func (m *memTopicRepo) Update(_ context.Context, topic types.Topic) (types.Topic, error) {
	if _, ok := m.topics[topic.ID]; !ok {
		return types.Topic{}, store.ErrNotFound
	}
	m.topics[topic.ID] = topic
	return topic, nil
}

func (m *memTopicRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.topics[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.topics, id)
	return nil
}

func (m *memTopicRepo) filter(keep func(types.Topic) bool) []types.Topic {
	result := []types.Topic{}
	for _, topic := range m.topics {
		if keep(topic) {
			result = append(result, topic)
		}
	}
	return result
}

type memMaterialRepo struct {
	materials map[string]types.LearningMaterial
	seq       int
}

func newMemMaterialRepo() *memMaterialRepo {
	return &memMaterialRepo{materials: map[string]types.LearningMaterial{}}
}

func (m *memMaterialRepo) GetByID(_ context.Context, id string) (types.LearningMaterial, error) {
	material, ok := m.materials[id]
	if !ok {
		return types.LearningMaterial{}, store.ErrNotFound
	}
	return material, nil
}

func (m *memMaterialRepo) List(_ context.Context) ([]types.LearningMaterial, error) {
	return m.filter(func(types.LearningMaterial) bool { return true }), nil
}

func (m *memMaterialRepo) ListPublishedByTopicID(_ context.Context, topicID string) ([]types.LearningMaterial, error) {
	return m.filter(func(lm types.LearningMaterial) bool {
		return lm.TopicID == topicID && lm.Published
	}), nil
}

func (m *memMaterialRepo) ListByCreatedBy(_ context.Context, userID string) ([]types.LearningMaterial, error) {
	return m.filter(func(lm types.LearningMaterial) bool { return lm.CreatedBy == userID }), nil
}

func (m *memMaterialRepo) ListByType(_ context.Context, contentType types.ContentType) ([]types.LearningMaterial, error) {
	return m.filter(func(lm types.LearningMaterial) bool { return lm.Type == contentType }), nil
}

func (m *memMaterialRepo) SearchByTitle(_ context.Context, query string) ([]types.LearningMaterial, error) {
	needle := strings.ToLower(query)
	return m.filter(func(lm types.LearningMaterial) bool {
		return strings.Contains(strings.ToLower(lm.Title), needle)
	}), nil
}

func (m *memMaterialRepo) Create(_ context.Context, material types.LearningMaterial) (types.LearningMaterial, error) {
	m.seq++
	material.ID = fmt.Sprintf("material-%d", m.seq)
	material.Version = 1
	material.CreatedDate = time.Now()
	material.LastModifiedDate = material.CreatedDate
	m.materials[material.ID] = material
	return material, nil
}

func (m *memMaterialRepo) ApplyUpdate(_ context.Context, id string, upd types.MaterialUpdate) (types.LearningMaterial, error) {
	material, ok := m.materials[id]
	if !ok {
		return types.LearningMaterial{}, store.ErrNotFound
	}
	material.Title = upd.Title
	material.Content = upd.Content
	material.Published = upd.Published
	if upd.Format != "" {
		material.Format = upd.Format
	}
	if upd.Difficulty != "" {
		material.Difficulty = upd.Difficulty
	}
	if upd.Tags != nil {
		material.Tags = upd.Tags
	}
	material.Version++
	material.LastModifiedDate = time.Now()
	m.materials[id] = material
	return material, nil
}

func (m *memMaterialRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.materials[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.materials, id)
	return nil
}

func (m *memMaterialRepo) filter(keep func(types.LearningMaterial) bool) []types.LearningMaterial {
	result := []types.LearningMaterial{}
	for _, material := range m.materials {
		if keep(material) {
			result = append(result, material)
		}
	}
	return result
}

type memHistoryRepo struct {
	rows []types.ContentHistory
	seq  int
}

func newMemHistoryRepo() *memHistoryRepo { return &memHistoryRepo{} }

func (m *memHistoryRepo) Create(_ context.Context, history types.ContentHistory) (types.ContentHistory, error) {
	m.seq++
	history.ID = fmt.Sprintf("history-%d", m.seq)
	history.ChangeDate = time.Now()
	m.rows = append(m.rows, history)
	return history, nil
}

func (m *memHistoryRepo) ListByMaterialIDDesc(_ context.Context, materialID string) ([]types.ContentHistory, error) {
	result := []types.ContentHistory{}
	for _, row := range m.rows {
		if row.MaterialID == materialID {
			result = append(result, row)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Version > result[j].Version })
	return result, nil
}

func (m *memHistoryRepo) ListByChangedBy(_ context.Context, userID string) ([]types.ContentHistory, error) {
	result := []types.ContentHistory{}
	for _, row := range m.rows {
		if row.ChangedBy == userID {
			result = append(result, row)
		}
	}
	return result, nil
}
