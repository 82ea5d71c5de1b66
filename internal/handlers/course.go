package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/its-platform/apiserver/internal/services"
	"github.com/its-platform/apiserver/types"
	"go.uber.org/zap"
)

// CourseHandler provides course catalog and authoring endpoints.
type CourseHandler struct {
	courses *services.CourseService
	logger  *zap.Logger
}

func NewCourseHandler(courses *services.CourseService, logger *zap.Logger) *CourseHandler {
	return &CourseHandler{courses: courses, logger: logger}
}

// CourseRouter registers course routes on the given router.
func CourseRouter(r chi.Router, courses *services.CourseService, requireAuth func(http.Handler) http.Handler, logger *zap.Logger) {
	handler := NewCourseHandler(courses, logger)
	requireAuthor := RequireRole(types.RoleInstructor, types.RoleAdmin)

	r.Use(requireAuth)

	r.Get("/", handler.List)
	r.Get("/published", handler.Published)
	r.Get("/difficulty-levels", handler.DifficultyLevels)
	r.Get("/difficulty/{level}", handler.ByDifficulty)
	r.Get("/subject/{subject}", handler.BySubject)
	r.Get("/search", handler.Search)
	r.Get("/my-courses", handler.MyCourses)
	r.Get("/{id}", handler.Get)

	r.With(requireAuthor).Post("/", handler.Create)
	r.With(requireAuthor).Put("/{id}", handler.Update)
	r.With(requireAuthor).Delete("/{id}", handler.Delete)
}

// Create stores a new course owned by the caller.
func (h *CourseHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var in services.CourseInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	course, err := h.courses.Create(r.Context(), in, principal.UserID)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, course)
}

// Update overwrites a course's mutable fields.
func (h *CourseHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var in services.CourseInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	course, err := h.courses.Update(r.Context(), chi.URLParam(r, "id"), in, principal.UserID, principal.Role)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, course)
}

// Delete removes a course.
func (h *CourseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.courses.Delete(r.Context(), chi.URLParam(r, "id"), principal.UserID, principal.Role); err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "course deleted"})
}

func (h *CourseHandler) Get(w http.ResponseWriter, r *http.Request) {
	course, err := h.courses.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, course)
}

func (h *CourseHandler) List(w http.ResponseWriter, r *http.Request) {
	courses, err := h.courses.GetAll(r.Context())
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, courses)
}

// Published lists the student-facing course catalog.
func (h *CourseHandler) Published(w http.ResponseWriter, r *http.Request) {
	courses, err := h.courses.GetPublished(r.Context())
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, courses)
}

func (h *CourseHandler) ByDifficulty(w http.ResponseWriter, r *http.Request) {
	courses, err := h.courses.GetByDifficulty(r.Context(), chi.URLParam(r, "level"))
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, courses)
}

// BySubject lists courses for a subject. A difficulty query parameter
// narrows the result to the published catalog at that level.
func (h *CourseHandler) BySubject(w http.ResponseWriter, r *http.Request) {
	subject := chi.URLParam(r, "subject")

	var courses []types.Course
	var err error
	if level := r.URL.Query().Get("difficulty"); level != "" {
		courses, err = h.courses.GetPublishedBySubjectAndDifficulty(r.Context(), subject, level)
	} else {
		courses, err = h.courses.GetBySubject(r.Context(), subject)
	}
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, courses)
}

// Search looks up courses by title substring.
func (h *CourseHandler) Search(w http.ResponseWriter, r *http.Request) {
	courses, err := h.courses.Search(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, courses)
}

// MyCourses lists the caller's courses, published or not.
func (h *CourseHandler) MyCourses(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	courses, err := h.courses.GetByCreator(r.Context(), principal.UserID)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, courses)
}

// DifficultyLevels returns the difficulty level names in ascending
// order.
func (h *CourseHandler) DifficultyLevels(w http.ResponseWriter, r *http.Request) {
	levels := make([]string, 0, len(types.DifficultyLevels()))
	for _, level := range types.DifficultyLevels() {
		levels = append(levels, string(level))
	}
	writeJSON(w, http.StatusOK, levels)
}
