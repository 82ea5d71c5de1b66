package services

import (
	"context"
	"testing"

	"github.com/its-platform/apiserver/internal/store"
	"github.com/its-platform/apiserver/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTopicFixture(t *testing.T) (*TopicService, types.Course) {
	t.Helper()
	courses := newFakeCourseRepo()
	courseSvc := NewCourseService(courses)

	course, err := courseSvc.Create(context.Background(), courseInput("C1"), "user-1")
	require.NoError(t, err)

	return NewTopicService(newFakeTopicRepo(), courses), course
}

func TestCreateTopicUnderCourse(t *testing.T) {
	svc, course := newTopicFixture(t)
	ctx := context.Background()

	topic, err := svc.Create(ctx, TopicInput{Name: "t1", CourseID: course.ID}, "user-1", types.RoleInstructor)
	require.NoError(t, err)
	assert.Equal(t, course.ID, topic.CourseID)
	assert.NotEmpty(t, topic.ID)

	listed, err := svc.GetByCourse(ctx, course.ID)
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestCreateTopicRejectsMissingCourse(t *testing.T) {
	svc, _ := newTopicFixture(t)

	_, err := svc.Create(context.Background(), TopicInput{Name: "t1", CourseID: "missing"}, "user-1", types.RoleInstructor)
	var validation *ValidationError
	assert.ErrorAs(t, err, &validation)
}

func TestCreateTopicOnForeignCourseForbidden(t *testing.T) {
	svc, course := newTopicFixture(t)

	_, err := svc.Create(context.Background(), TopicInput{Name: "t1", CourseID: course.ID}, "user-2", types.RoleInstructor)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestTopicValidation(t *testing.T) {
	svc, course := newTopicFixture(t)
	ctx := context.Background()

	var validation *ValidationError
	_, err := svc.Create(ctx, TopicInput{Name: "", CourseID: course.ID}, "user-1", types.RoleInstructor)
	assert.ErrorAs(t, err, &validation)

	_, err = svc.Create(ctx, TopicInput{Name: "t1", CourseID: ""}, "user-1", types.RoleInstructor)
	assert.ErrorAs(t, err, &validation)
}

func TestUpdateAndDeleteTopic(t *testing.T) {
	svc, course := newTopicFixture(t)
	ctx := context.Background()

	topic, err := svc.Create(ctx, TopicInput{Name: "t1", CourseID: course.ID}, "user-1", types.RoleInstructor)
	require.NoError(t, err)

	updated, err := svc.Update(ctx, topic.ID, TopicInput{Name: "t1 renamed", CourseID: course.ID}, "user-1", types.RoleInstructor)
	require.NoError(t, err)
	assert.Equal(t, "t1 renamed", updated.Name)

	err = svc.Delete(ctx, topic.ID, "user-2", types.RoleInstructor)
	assert.ErrorIs(t, err, ErrForbidden)

	err = svc.Delete(ctx, topic.ID, "user-1", types.RoleInstructor)
	require.NoError(t, err)

	_, err = svc.GetByID(ctx, topic.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestTopicSearch(t *testing.T) {
	svc, course := newTopicFixture(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, TopicInput{Name: "Linear Algebra", CourseID: course.ID}, "user-1", types.RoleInstructor)
	require.NoError(t, err)
	_, err = svc.Create(ctx, TopicInput{Name: "Probability", CourseID: course.ID}, "user-1", types.RoleInstructor)
	require.NoError(t, err)

	found, err := svc.Search(ctx, "algebra")
	require.NoError(t, err)
	assert.Len(t, found, 1)

	all, err := svc.Search(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
