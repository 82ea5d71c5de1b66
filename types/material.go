package types

import "time"

// LearningMaterial is a single piece of learning content attached to
// a topic. Content may be inline text, a URL, or a server-local file
// path depending on the content type.
type LearningMaterial struct {
	// ID is the store-assigned identifier of the material.
	ID string `json:"id" bson:"_id,omitempty"`

	// Title names the material. Non-empty, at most 200 characters.
	Title string `json:"title" bson:"title"`

	// Type classifies the material.
	Type ContentType `json:"type" bson:"type"`

	// Format is the concrete file format for uploaded materials.
	Format FileFormat `json:"format,omitempty" bson:"format,omitempty"`

	// Content carries the payload: text, a URL, or a file path.
	Content string `json:"content,omitempty" bson:"content,omitempty"`

	// TopicID references the topic the material belongs to.
	TopicID string `json:"topicId" bson:"topicId"`

	// CreatedBy is the id of the instructor who authored the material.
	CreatedBy string `json:"createdBy" bson:"createdBy"`

	// FilePath, MimeType, and FileSize describe an uploaded file
	// backing the material, when one exists.
	FilePath string `json:"filePath,omitempty" bson:"filePath,omitempty"`
	MimeType string `json:"mimeType,omitempty" bson:"mimeType,omitempty"`
	FileSize int64  `json:"fileSize,omitempty" bson:"fileSize,omitempty"`

	Difficulty DifficultyLevel `json:"difficulty,omitempty" bson:"difficulty,omitempty"`
	Tags       []string        `json:"tags,omitempty" bson:"tags,omitempty"`

	// Published gates visibility in topic-scoped listings.
	Published bool `json:"published" bson:"published"`

	// Version is the edit counter backing history numbering. It is
	// advanced atomically by the store; version 1 is creation.
	Version int `json:"version" bson:"version"`

	CreatedDate      time.Time `json:"createdDate" bson:"createdDate"`
	LastModifiedDate time.Time `json:"lastModifiedDate" bson:"lastModifiedDate"`
}

// MaterialUpdate carries the mutable fields of a material edit.
// Empty Format/Difficulty and nil Tags leave the stored values
// untouched.
type MaterialUpdate struct {
	Title      string
	Content    string
	Published  bool
	Format     FileFormat
	Difficulty DifficultyLevel
	Tags       []string
}

// ContentHistory is one snapshot in a material's edit history.
// For every material the versions form the contiguous range 1..n.
type ContentHistory struct {
	ID string `json:"id" bson:"_id,omitempty"`

	// MaterialID references the material the snapshot belongs to.
	// History rows outlive the material; deletion does not cascade.
	MaterialID string `json:"materialId" bson:"materialId"`

	// Title and Content snapshot the material state after the edit.
	Title   string `json:"title" bson:"title"`
	Content string `json:"content,omitempty" bson:"content,omitempty"`

	ChangeDescription string `json:"changeDescription" bson:"changeDescription"`

	// ChangedBy is the id of the user who made the edit.
	ChangedBy string `json:"changedBy" bson:"changedBy"`

	ChangeDate time.Time `json:"changeDate" bson:"changeDate"`

	// Version is the monotonic per-material edit counter, starting
	// at 1 for "Content created".
	Version int `json:"version" bson:"version"`
}
