package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/its-platform/apiserver/internal/store"
	"github.com/its-platform/apiserver/types"
)

// In-memory repository fakes used across the service tests.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]types.User
	seq   int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]types.User{}}
}

func (f *fakeUserRepo) nextID() string {
	f.seq++
	return fmt.Sprintf("user-%d", f.seq)
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (types.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return types.User{}, store.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (types.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (f *fakeUserRepo) GetActiveByEmail(_ context.Context, email string) (types.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == email && user.Active {
			return user, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (f *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) Create(_ context.Context, user types.User) (types.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return types.User{}, store.ErrDuplicateKey
		}
	}
	user.ID = f.nextID()
	now := time.Now()
	user.CreatedDate = now
	user.LastModifiedDate = now
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeUserRepo) Update(_ context.Context, user types.User) (types.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.ID]; !ok {
		return types.User{}, store.ErrNotFound
	}
	user.LastModifiedDate = time.Now()
	f.users[user.ID] = user
	return user, nil
}

type fakeMaterialRepo struct {
	mu        sync.Mutex
	materials map[string]types.LearningMaterial
	seq       int
}

func newFakeMaterialRepo() *fakeMaterialRepo {
	return &fakeMaterialRepo{materials: map[string]types.LearningMaterial{}}
}

func (f *fakeMaterialRepo) GetByID(_ context.Context, id string) (types.LearningMaterial, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	material, ok := f.materials[id]
	if !ok {
		return types.LearningMaterial{}, store.ErrNotFound
	}
	return material, nil
}

func (f *fakeMaterialRepo) List(_ context.Context) ([]types.LearningMaterial, error) {
	return f.filter(func(types.LearningMaterial) bool { return true }), nil
}

func (f *fakeMaterialRepo) ListPublishedByTopicID(_ context.Context, topicID string) ([]types.LearningMaterial, error) {
	return f.filter(func(m types.LearningMaterial) bool {
		return m.TopicID == topicID && m.Published
	}), nil
}

func (f *fakeMaterialRepo) ListByCreatedBy(_ context.Context, userID string) ([]types.LearningMaterial, error) {
	return f.filter(func(m types.LearningMaterial) bool { return m.CreatedBy == userID }), nil
}

func (f *fakeMaterialRepo) ListByType(_ context.Context, contentType types.ContentType) ([]types.LearningMaterial, error) {
	return f.filter(func(m types.LearningMaterial) bool { return m.Type == contentType }), nil
}

func (f *fakeMaterialRepo) SearchByTitle(_ context.Context, query string) ([]types.LearningMaterial, error) {
	needle := strings.ToLower(query)
	return f.filter(func(m types.LearningMaterial) bool {
		return strings.Contains(strings.ToLower(m.Title), needle)
	}), nil
}

func (f *fakeMaterialRepo) Create(_ context.Context, material types.LearningMaterial) (types.LearningMaterial, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	material.ID = fmt.Sprintf("material-%d", f.seq)
	material.Version = 1
	now := time.Now()
	material.CreatedDate = now
	material.LastModifiedDate = now
	f.materials[material.ID] = material
	return material, nil
}

func (f *fakeMaterialRepo) ApplyUpdate(_ context.Context, id string, upd types.MaterialUpdate) (types.LearningMaterial, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	material, ok := f.materials[id]
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
	f.materials[id] = material
	return material, nil
}

func (f *fakeMaterialRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.materials[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.materials, id)
	return nil
}

func (f *fakeMaterialRepo) filter(keep func(types.LearningMaterial) bool) []types.LearningMaterial {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := []types.LearningMaterial{}
	for _, material := range f.materials {
		if keep(material) {
			result = append(result, material)
		}
	}
	return result
}

type fakeHistoryRepo struct {
	mu   sync.Mutex
	rows []types.ContentHistory
	seq  int
}

func newFakeHistoryRepo() *fakeHistoryRepo {
	return &fakeHistoryRepo{}
}

func (f *fakeHistoryRepo) Create(_ context.Context, history types.ContentHistory) (types.ContentHistory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	history.ID = fmt.Sprintf("history-%d", f.seq)
	history.ChangeDate = time.Now()
	f.rows = append(f.rows, history)
	return history, nil
}

func (f *fakeHistoryRepo) ListByMaterialIDDesc(_ context.Context, materialID string) ([]types.ContentHistory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := []types.ContentHistory{}
	for _, row := range f.rows {
		if row.MaterialID == materialID {
			result = append(result, row)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Version > result[j].Version })
	return result, nil
}

func (f *fakeHistoryRepo) ListByChangedBy(_ context.Context, userID string) ([]types.ContentHistory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := []types.ContentHistory{}
	for _, row := range f.rows {
		if row.ChangedBy == userID {
			result = append(result, row)
		}
	}
	return result, nil
}

type fakeCourseRepo struct {
	mu      sync.Mutex
	courses map[string]types.Course
	seq     int
}

func newFakeCourseRepo() *fakeCourseRepo {
	return &fakeCourseRepo{courses: map[string]types.Course{}}
}

func (f *fakeCourseRepo) GetByID(_ context.Context, id string) (types.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	course, ok := f.courses[id]
	if !ok {
		return types.Course{}, store.ErrNotFound
	}
	return course, nil
}

func (f *fakeCourseRepo) List(_ context.Context) ([]types.Course, error) {
	return f.filter(func(types.Course) bool { return true }), nil
}

func (f *fakeCourseRepo) ListByCreatedBy(_ context.Context, userID string) ([]types.Course, error) {
	return f.filter(func(c types.Course) bool { return c.CreatedBy == userID }), nil
}

func (f *fakeCourseRepo) ListBySubject(_ context.Context, subject string) ([]types.Course, error) {
	return f.filter(func(c types.Course) bool { return c.Subject == subject }), nil
}

func (f *fakeCourseRepo) ListByDifficulty(_ context.Context, level types.DifficultyLevel) ([]types.Course, error) {
	return f.filter(func(c types.Course) bool { return c.Difficulty == level }), nil
}

func (f *fakeCourseRepo) ListPublished(_ context.Context) ([]types.Course, error) {
	return f.filter(func(c types.Course) bool { return c.Published }), nil
}

func (f *fakeCourseRepo) ListPublishedBySubjectAndDifficulty(_ context.Context, subject string, level types.DifficultyLevel) ([]types.Course, error) {
	return f.filter(func(c types.Course) bool {
		return c.Published && c.Subject == subject && c.Difficulty == level
	}), nil
}

func (f *fakeCourseRepo) SearchByTitle(_ context.Context, query string) ([]types.Course, error) {
	needle := strings.ToLower(query)
	return f.filter(func(c types.Course) bool {
		return strings.Contains(strings.ToLower(c.Title), needle)
	}), nil
}

func (f *fakeCourseRepo) Create(_ context.Context, course types.Course) (types.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	course.ID = fmt.Sprintf("course-%d", f.seq)
	now := time.Now()
	course.CreatedDate = now
	course.LastModifiedDate = now
	f.courses[course.ID] = course
	return course, nil
}

func (f *fakeCourseRepo) Update(_ context.Context, course types.Course) (types.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.courses[course.ID]; !ok {
		return types.Course{}, store.ErrNotFound
	}
	course.LastModifiedDate = time.Now()
	f.courses[course.ID] = course
	return course, nil
}

func (f *fakeCourseRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.courses[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.courses, id)
	return nil
}

func (f *fakeCourseRepo) filter(keep func(types.Course) bool) []types.Course {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := []types.Course{}
	for _, course := range f.courses {
		if keep(course) {
			result = append(result, course)
		}
	}
	return result
}

type fakeTopicRepo struct {
	mu     sync.Mutex
	topics map[string]types.Topic
	seq    int
}

func newFakeTopicRepo() *fakeTopicRepo {
	return &fakeTopicRepo{topics: map[string]types.Topic{}}
}

func (f *fakeTopicRepo) GetByID(_ context.Context, id string) (types.Topic, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	topic, ok := f.topics[id]
	if !ok {
		return types.Topic{}, store.ErrNotFound
	}
	return topic, nil
}

func (f *fakeTopicRepo) List(_ context.Context) ([]types.Topic, error) {
	return f.filter(func(types.Topic) bool { return true }), nil
}

func (f *fakeTopicRepo) ListByCourseID(_ context.Context, courseID string) ([]types.Topic, error) {
	return f.filter(func(t types.Topic) bool { return t.CourseID == courseID }), nil
}

func (f *fakeTopicRepo) SearchByName(_ context.Context, query string) ([]types.Topic, error) {
	needle := strings.ToLower(query)
	return f.filter(func(t types.Topic) bool {
		return strings.Contains(strings.ToLower(t.Name), needle)
	}), nil
}

func (f *fakeTopicRepo) Create(_ context.Context, topic types.Topic) (types.Topic, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	topic.ID = fmt.Sprintf("topic-%d", f.seq)
	now := time.Now()
	topic.CreatedDate = now
	topic.LastModifiedDate = now
	f.topics[topic.ID] = topic
	return topic, nil
}

func (f *fakeTopicRepo) Update(_ context.Context, topic types.Topic) (types.Topic, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.topics[topic.ID]; !ok {
		return types.Topic{}, store.ErrNotFound
	}
	topic.LastModifiedDate = time.Now()
	f.topics[topic.ID] = topic
	return topic, nil
}

func (f *fakeTopicRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.topics[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.topics, id)
	return nil
}

func (f *fakeTopicRepo) filter(keep func(types.Topic) bool) []types.Topic {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := []types.Topic{}
	for _, topic := range f.topics {
		if keep(topic) {
			result = append(result, topic)
		}
	}
	return result
}
