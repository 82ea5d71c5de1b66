package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/its-platform/apiserver/internal/services"
	"github.com/its-platform/apiserver/types"
	"go.uber.org/zap"
)

// TopicHandler provides topic endpoints.
type TopicHandler struct {
	topics *services.TopicService
	logger *zap.Logger
}

func NewTopicHandler(topics *services.TopicService, logger *zap.Logger) *TopicHandler {
	return &TopicHandler{topics: topics, logger: logger}
}

// TopicRouter registers topic routes on the given router.
func TopicRouter(r chi.Router, topics *services.TopicService, requireAuth func(http.Handler) http.Handler, logger *zap.Logger) {
	handler := NewTopicHandler(topics, logger)
	requireAuthor := RequireRole(types.RoleInstructor, types.RoleAdmin)

	r.Use(requireAuth)

	r.Get("/", handler.List)
	r.Get("/search", handler.Search)
	r.Get("/course/{courseId}", handler.ByCourse)
	r.Get("/{id}", handler.Get)

	r.With(requireAuthor).Post("/", handler.Create)
	r.With(requireAuthor).Put("/{id}", handler.Update)
	r.With(requireAuthor).Delete("/{id}", handler.Delete)
}

// Create stores a new topic under an existing course.
func (h *TopicHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var in services.TopicInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	topic, err := h.topics.Create(r.Context(), in, principal.UserID, principal.Role)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, topic)
}

// Update overwrites a topic's mutable fields.
func (h *TopicHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var in services.TopicInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	topic, err := h.topics.Update(r.Context(), chi.URLParam(r, "id"), in, principal.UserID, principal.Role)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, topic)
}

// Delete removes a topic.
func (h *TopicHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.topics.Delete(r.Context(), chi.URLParam(r, "id"), principal.UserID, principal.Role); err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "topic deleted"})
}

func (h *TopicHandler) Get(w http.ResponseWriter, r *http.Request) {
	topic, err := h.topics.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, topic)
}

func (h *TopicHandler) List(w http.ResponseWriter, r *http.Request) {
	topics, err := h.topics.GetAll(r.Context())
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, topics)
}

// ByCourse lists the topics of a course.
func (h *TopicHandler) ByCourse(w http.ResponseWriter, r *http.Request) {
	topics, err := h.topics.GetByCourse(r.Context(), chi.URLParam(r, "courseId"))
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, topics)
}

// Search looks up topics by name substring.
func (h *TopicHandler) Search(w http.ResponseWriter, r *http.Request) {
	topics, err := h.topics.Search(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, topics)
}
