package http

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/workforceone/fieldops-backend-go/internal/handler/http/response"
	"github.com/workforceone/fieldops-backend-go/internal/pkg/storage"
)

const maxUploadSize = 10 << 20 // 10 MiB

var allowedUploadExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

type UploadHandler interface {
	UploadPhoto(w http.ResponseWriter, r *http.Request)
}

type UploadHandlerImpl struct {
	fileStorage storage.FileStorage
}

func NewUploadHandler(fileStorage storage.FileStorage) UploadHandler {
	return &UploadHandlerImpl{fileStorage: fileStorage}
}

// UploadPhoto accepts a multipart image and returns its public URL. Clients
// attach the returned URL to incident reports.
func (h *UploadHandlerImpl) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		response.BadRequest(w, "File too large or malformed multipart body", nil)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "file field is required", nil)
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	contentType, ok := allowedUploadExtensions[ext]
	if !ok {
		response.BadRequest(w, fmt.Sprintf("unsupported file extension %q", ext), nil)
		return
	}

	path := fmt.Sprintf("incident-photos/%s%s", uuid.NewString(), ext)
	storedPath, err := h.fileStorage.Upload(r.Context(), file, path, contentType)
	if err != nil {
		response.InternalServerError(w, "Failed to store file")
		return
	}

	url, err := h.fileStorage.GetURL(r.Context(), storedPath, 24*time.Hour)
	if err != nil {
		response.InternalServerError(w, "Failed to resolve file URL")
		return
	}

	response.Created(w, "File uploaded successfully", map[string]string{
		"path": storedPath,
		"url":  url,
	})
}
