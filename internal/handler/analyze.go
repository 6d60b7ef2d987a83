package handler

import (
	"io"
	"log/slog"
	"net/http"

	"papertrail/internal/config"
	"papertrail/internal/domain/models"
	"papertrail/internal/httputil"
	"papertrail/internal/service/analysis"
)

// AnalyzeHandler handles document analysis HTTP requests
type AnalyzeHandler struct {
	service *analysis.Service
	logger  *slog.Logger
}

// NewAnalyzeHandler creates a new analysis handler
func NewAnalyzeHandler(service *analysis.Service, logger *slog.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{
		service: service,
		logger:  logger,
	}
}

// Analyze runs the full pipeline over the uploaded pages and returns the
// result without persisting anything.
// POST /api/documents/analyze
//
// Multipart form fields:
//
//	kind          "image" or "other"
//	detect_events "true" to run event detection
//	pages         one file per page
func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(config.MaxUploadBytes); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid multipart body")
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	req := &analysis.AnalyzeRequest{
		Kind:         models.InputKind(r.FormValue("kind")),
		DetectEvents: r.FormValue("detect_events") == "true",
	}

	for _, header := range r.MultipartForm.File["pages"] {
		file, err := header.Open()
		if err != nil {
			httputil.RespondError(w, http.StatusBadRequest, "Unreadable page upload")
			return
		}
		data, err := io.ReadAll(file)
		_ = file.Close()
		if err != nil {
			httputil.RespondError(w, http.StatusBadRequest, "Unreadable page upload")
			return
		}

		mediaType := header.Header.Get("Content-Type")
		if mediaType == "" {
			mediaType = http.DetectContentType(data)
		}
		req.Pages = append(req.Pages, models.Page{Data: data, MediaType: mediaType})
	}

	result, err := h.service.Analyze(r.Context(), req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, newAnalyzeResponse(result))
}
