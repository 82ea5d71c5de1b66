package types

import "strings"

// UserRole is the authorization level of a user account.
type UserRole string

const (
	RoleStudent    UserRole = "STUDENT"
	RoleInstructor UserRole = "INSTRUCTOR"
	RoleAdmin      UserRole = "ADMIN"
)

// UserRoles lists every role in declaration order.
func UserRoles() []UserRole {
	return []UserRole{RoleStudent, RoleInstructor, RoleAdmin}
}

// ParseUserRole resolves a role string case-insensitively.
// Unrecognized values fall back to STUDENT.
func ParseUserRole(raw string) UserRole {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case string(RoleInstructor):
		return RoleInstructor
	case string(RoleAdmin):
		return RoleAdmin
	default:
		return RoleStudent
	}
}

// CanCreateContent reports whether the role may author courses,
// topics, and learning materials.
func (r UserRole) CanCreateContent() bool {
	return r == RoleInstructor || r == RoleAdmin
}

// CanManageUsers reports whether the role may administer accounts.
func (r UserRole) CanManageUsers() bool {
	return r == RoleAdmin
}

// ContentType classifies a learning material.
type ContentType string

const (
	ContentLecture    ContentType = "LECTURE"
	ContentVideo      ContentType = "VIDEO"
	ContentQuiz       ContentType = "QUIZ"
	ContentExercise   ContentType = "EXERCISE"
	ContentReading    ContentType = "READING"
	ContentAssignment ContentType = "ASSIGNMENT"
)

// ContentTypes lists every content type in declaration order.
func ContentTypes() []ContentType {
	return []ContentType{
		ContentLecture,
		ContentVideo,
		ContentQuiz,
		ContentExercise,
		ContentReading,
		ContentAssignment,
	}
}

// ParseContentType resolves a type string case-insensitively, treating
// spaces as underscores. Unrecognized values fall back to LECTURE.
func ParseContentType(raw string) ContentType {
	normalized := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(raw), " ", "_"))
	for _, ct := range ContentTypes() {
		if normalized == string(ct) {
			return ct
		}
	}
	return ContentLecture
}

// RequiresFileUpload reports whether materials of this type are backed
// by an uploaded file rather than inline content.
func (c ContentType) RequiresFileUpload() bool {
	return c == ContentVideo
}

// SupportsInlineContent reports whether the material content field may
// carry the payload directly.
func (c ContentType) SupportsInlineContent() bool {
	return c != ContentVideo
}

// DifficultyLevel grades courses and materials.
type DifficultyLevel string

const (
	DifficultyBeginner     DifficultyLevel = "BEGINNER"
	DifficultyIntermediate DifficultyLevel = "INTERMEDIATE"
	DifficultyAdvanced     DifficultyLevel = "ADVANCED"
	DifficultyExpert       DifficultyLevel = "EXPERT"
)

// DifficultyLevels lists every level in ascending order.
func DifficultyLevels() []DifficultyLevel {
	return []DifficultyLevel{
		DifficultyBeginner,
		DifficultyIntermediate,
		DifficultyAdvanced,
		DifficultyExpert,
	}
}

// ParseDifficultyLevel resolves a level string case-insensitively.
// The second return is false when the value is not a known level.
func ParseDifficultyLevel(raw string) (DifficultyLevel, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(raw))
	for _, level := range DifficultyLevels() {
		if normalized == string(level) {
			return level, true
		}
	}
	return "", false
}
