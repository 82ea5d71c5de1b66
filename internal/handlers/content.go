package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/its-platform/apiserver/internal/services"
	"github.com/its-platform/apiserver/types"
	"go.uber.org/zap"
)

// maxUploadBytes caps multipart upload memory buffering.
const maxUploadBytes = 32 << 20

// ContentHandler provides learning-material endpoints.
type ContentHandler struct {
	content *services.ContentService
	logger  *zap.Logger
}

func NewContentHandler(content *services.ContentService, logger *zap.Logger) *ContentHandler {
	return &ContentHandler{content: content, logger: logger}
}

// ContentRouter registers material routes on the given router. Every
// route requires authentication; writes additionally require the
// instructor or admin role.
func ContentRouter(r chi.Router, content *services.ContentService, requireAuth func(http.Handler) http.Handler, logger *zap.Logger) {
	handler := NewContentHandler(content, logger)
	requireAuthor := RequireRole(types.RoleInstructor, types.RoleAdmin)

	r.Use(requireAuth)

	r.Get("/", handler.List)
	r.Get("/categories", handler.Categories)
	r.Get("/search", handler.Search)
	r.Get("/my-content", handler.MyContent)
	r.Get("/topic/{topicId}", handler.ByTopic)
	r.Get("/type/{type}", handler.ByType)
	r.Get("/{id}", handler.Get)
	r.Get("/{id}/history", handler.History)

	r.With(requireAuthor).Post("/", handler.Create)
	r.With(requireAuthor).Post("/upload", handler.Upload)
	r.With(requireAuthor).Put("/{id}", handler.Update)
	r.With(requireAuthor).Delete("/{id}", handler.Delete)
}

// Create stores a new material authored by the caller.
func (h *ContentHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var in services.MaterialInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	material, err := h.content.Create(r.Context(), in, principal.UserID)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, material)
}

// Update overwrites a material's mutable fields and advances its
// version.
func (h *ContentHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var in services.MaterialUpdateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	material, err := h.content.Update(r.Context(), chi.URLParam(r, "id"), in, principal.UserID, principal.Role)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, material)
}

// Delete removes a material; its history is retained.
func (h *ContentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.content.Delete(r.Context(), chi.URLParam(r, "id"), principal.UserID, principal.Role); err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "content deleted"})
}

func (h *ContentHandler) Get(w http.ResponseWriter, r *http.Request) {
	material, err := h.content.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, material)
}

func (h *ContentHandler) List(w http.ResponseWriter, r *http.Request) {
	materials, err := h.content.GetAll(r.Context())
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, materials)
}

// ByTopic lists the published materials of a topic.
func (h *ContentHandler) ByTopic(w http.ResponseWriter, r *http.Request) {
	materials, err := h.content.GetPublishedByTopic(r.Context(), chi.URLParam(r, "topicId"))
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, materials)
}

func (h *ContentHandler) ByType(w http.ResponseWriter, r *http.Request) {
	contentType := types.ParseContentType(chi.URLParam(r, "type"))
	materials, err := h.content.GetByType(r.Context(), contentType)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, materials)
}

// MyContent lists the caller's materials, published or not.
func (h *ContentHandler) MyContent(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	materials, err := h.content.GetByCreator(r.Context(), principal.UserID)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, materials)
}

// Search looks up materials by title substring. An empty query
// returns every material.
func (h *ContentHandler) Search(w http.ResponseWriter, r *http.Request) {
	materials, err := h.content.Search(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, materials)
}

// History returns a material's snapshots, newest version first.
func (h *ContentHandler) History(w http.ResponseWriter, r *http.Request) {
	history, err := h.content.GetHistory(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, history)
}

// Categories returns the content type names.
func (h *ContentHandler) Categories(w http.ResponseWriter, r *http.Request) {
	names := make([]string, 0, len(types.ContentTypes()))
	for _, ct := range types.ContentTypes() {
		names = append(names, string(ct))
	}
	writeJSON(w, http.StatusOK, names)
}

// Upload stores a multipart file and returns its resolved location.
func (h *ContentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	location, err := h.content.UploadFile(r.Context(), header.Filename, file, header.Size, header.Header.Get("Content-Type"))
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, location)
}
