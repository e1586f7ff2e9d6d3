package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/cloudshelf/internal/server/models"
)

type fileResponse struct {
	ID         string    `json:"id"`
	Filename   string    `json:"filename"`
	Tags       []string  `json:"tags"`
	ViewCount  int64     `json:"viewCount"`
	UploadedAt time.Time `json:"uploadedAt"`
}

func toFileResponse(f *models.File) fileResponse {
	return fileResponse{
		ID:         f.PublicID,
		Filename:   f.Filename,
		Tags:       f.Tags,
		ViewCount:  f.ViewCount,
		UploadedAt: f.UploadedAt,
	}
}

// handleUpload (POST /api/v1/files/upload) accepts a multipart body with a
// "file" part and repeated "tags" fields. The whole request is capped at the
// configured byte ceiling before any object-store traffic happens.
func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		h.respondWithError(w, http.StatusUnauthorized, "invalid access token")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.UploadMaxBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.respondWithError(w, http.StatusRequestEntityTooLarge, "file too large")
			return
		}
		h.respondWithError(w, http.StatusBadRequest, "invalid multipart payload")
		return
	}

	part, header, err := r.FormFile("file")
	if err != nil {
		h.respondWithError(w, http.StatusBadRequest, "missing file part")
		return
	}
	defer part.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	tags := r.MultipartForm.Value["tags"]

	file, err := h.fileService.Upload(r.Context(), userID, header.Filename, contentType, part, tags)
	if err != nil {
		h.respondWithServiceError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusCreated, toFileResponse(file))
}

// handleUserFiles (GET /api/v1/files/user-files) lists the caller's files,
// most recently uploaded first.
func (h *Handler) handleUserFiles(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		h.respondWithError(w, http.StatusUnauthorized, "invalid access token")
		return
	}

	list, err := h.fileService.List(r.Context(), userID)
	if err != nil {
		h.respondWithServiceError(w, err)
		return
	}

	out := make([]fileResponse, 0, len(list))
	for _, f := range list {
		out = append(out, toFileResponse(f))
	}
	h.respondWithJSON(w, http.StatusOK, out)
}

// handleDeleteFile (DELETE /api/v1/files/{fileID}) answers 200 whether the
// row was removed, absent, or owned by someone else. Existence of other
// users' files must not leak through this path.
func (h *Handler) handleDeleteFile(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		h.respondWithError(w, http.StatusUnauthorized, "invalid access token")
		return
	}
	fileID := chi.URLParam(r, "fileID")

	if err := h.fileService.Delete(r.Context(), userID, fileID); err != nil {
		h.respondWithServiceError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, map[string]string{"message": "file deleted"})
}

// handleServePublic (GET /api/v1/files/public/{fileID}) is deliberately
// unauthenticated: a valid public id is the sharing capability. The view
// counter is bumped and the caller is redirected to the object URL.
func (h *Handler) handleServePublic(w http.ResponseWriter, r *http.Request) {
	fileID := chi.URLParam(r, "fileID")

	url, err := h.fileService.ServePublic(r.Context(), fileID)
	if err != nil {
		h.respondWithServiceError(w, err)
		return
	}

	http.Redirect(w, r, url, http.StatusFound)
}
