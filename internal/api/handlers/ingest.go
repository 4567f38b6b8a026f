package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cloo-solutions/veriflow/internal/api"
	"github.com/cloo-solutions/veriflow/internal/service"
)

// maxUploadMemory bounds the in-memory portion of multipart parsing;
// larger parts spill to temp files.
const maxUploadMemory = 32 << 20

type IngestService interface {
	Ingest(ctx context.Context, input service.IngestInput) (*service.IngestResult, error)
}

type IngestHandler struct {
	svc IngestService
}

func NewIngestHandler(svc IngestService) *IngestHandler {
	return &IngestHandler{svc: svc}
}

type IngestResponse struct {
	Status        string `json:"status"`
	Message       string `json:"message"`
	ChunksCreated int    `json:"chunks_created"`
}

func (h *IngestHandler) BuildKnowledgeBase(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	htmlHeaders := r.MultipartForm.File["html_file"]
	if len(htmlHeaders) == 0 {
		api.Error(w, http.StatusBadRequest, "html_file is required")
		return
	}

	htmlFile, err := htmlHeaders[0].Open()
	if err != nil {
		api.Error(w, http.StatusBadRequest, "could not read html_file")
		return
	}
	defer htmlFile.Close()

	input := service.IngestInput{
		HTML: service.UploadedFile{
			Name:   htmlHeaders[0].Filename,
			Reader: htmlFile,
		},
	}
	for _, fh := range r.MultipartForm.File["files"] {
		f, err := fh.Open()
		if err != nil {
			api.Error(w, http.StatusBadRequest, fmt.Sprintf("could not read upload %s", fh.Filename))
			return
		}
		defer f.Close()
		input.Files = append(input.Files, service.UploadedFile{
			Name:   fh.Filename,
			Reader: f,
		})
	}

	result, err := h.svc.Ingest(r.Context(), input)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.JSON(w, http.StatusOK, IngestResponse{
		Status:        "success",
		Message:       fmt.Sprintf("Processed %d files.", result.FilesProcessed),
		ChunksCreated: result.ChunksCreated,
	})
}
