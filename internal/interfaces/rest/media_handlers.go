package rest

import (
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"studio-backend/internal/service/media"
	"studio-backend/internal/vimeo"
	apperrors "studio-backend/pkg/errors"
)

// maxImageBytes caps multipart image uploads.
const maxImageBytes = 10 << 20

// MediaHandler serves the platform, upload and banner endpoints.
type MediaHandler struct {
	service *media.Service
	logger  *zap.Logger
}

// NewMediaHandler creates the media handler.
func NewMediaHandler(service *media.Service, logger *zap.Logger) *MediaHandler {
	return &MediaHandler{service: service, logger: logger}
}

// GetPlatformVideo handles GET /vimeo/video/{videoID}.
func (h *MediaHandler) GetPlatformVideo(w http.ResponseWriter, r *http.Request) {
	video, err := h.service.PlatformVideo(r.Context(), chi.URLParam(r, "videoID"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, video)
}

// GetPlatformTotal handles GET /vimeo/videos/total.
func (h *MediaHandler) GetPlatformTotal(w http.ResponseWriter, r *http.Request) {
	total, err := h.service.PlatformTotal(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"total": total})
}

type platformVideoUpdateRequest struct {
	VideoURI    string  `json:"PK" validate:"required"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// UpdatePlatformVideo handles PUT /vimeo/video.
func (h *MediaHandler) UpdatePlatformVideo(w http.ResponseWriter, r *http.Request) {
	var req platformVideoUpdateRequest
	if err := decode(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	videoID := strings.TrimPrefix(req.VideoURI, "/videos/")
	if err := h.service.UpdatePlatformVideo(r.Context(), videoID, req.Name, req.Description); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// ListMergedVideos handles POST /vimeo/videos. The all query flag keeps
// records present on only one side, for the admin view.
func (h *MediaHandler) ListMergedVideos(w http.ResponseWriter, r *http.Request) {
	var req videoFilterRequest
	if err := decode(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	includeUnmatched := r.URL.Query().Get("all") == "true"

	videos, err := h.service.MergedVideos(r.Context(), req.filter(), includeUnmatched)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, videos)
}

// GetVideoTable handles GET /admin/videos/table.
func (h *MediaHandler) GetVideoTable(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.VideoTable(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// GetTranscodeStatus handles GET /upload/transcode/{videoID}.
func (h *MediaHandler) GetTranscodeStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.service.TranscodeStatus(r.Context(), chi.URLParam(r, "videoID"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"transcode_status": status})
}

type uploadStartRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Size        int64  `json:"size" validate:"required"`
	User        string `json:"user" validate:"required"`
}

// StartUpload handles POST /upload.
func (h *MediaHandler) StartUpload(w http.ResponseWriter, r *http.Request) {
	var req uploadStartRequest
	if err := decode(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	upload, err := h.service.StartUpload(r.Context(), vimeo.UploadRequest{
		Name:        req.Name,
		Description: req.Description,
		Size:        req.Size,
	}, req.User)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, upload)
}

type uploadStatusCreateRequest struct {
	URI      string `json:"uri" validate:"required"`
	Name     string `json:"name"`
	Filename string `json:"filename"`
	Status   string `json:"status" validate:"required"`
	User     string `json:"user" validate:"required"`
}

type uploadStatusUpdateRequest struct {
	URI       string `json:"uri" validate:"required"`
	Timestamp string `json:"timestamp" validate:"required"`
	Status    string `json:"status" validate:"required"`
}

// ListUploadStatuses handles GET /upload/status, today's records only.
func (h *MediaHandler) ListUploadStatuses(w http.ResponseWriter, r *http.Request) {
	statuses, err := h.service.UploadStatusesToday(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, statuses)
}

// CreateUploadStatus handles POST /upload/status.
func (h *MediaHandler) CreateUploadStatus(w http.ResponseWriter, r *http.Request) {
	var req uploadStatusCreateRequest
	if err := decode(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	record, err := h.service.RecordUploadStatus(r.Context(), req.URI, req.Name, req.Filename, req.Status, req.User)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{
		"uri":       record.PK,
		"timestamp": record.SK,
		"status":    record.Status,
	})
}

// UpdateUploadStatus handles PUT /upload/status.
func (h *MediaHandler) UpdateUploadStatus(w http.ResponseWriter, r *http.Request) {
	var req uploadStatusUpdateRequest
	if err := decode(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	if err := h.service.UpdateUploadStatus(r.Context(), req.URI, req.Timestamp, req.Status); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"uri":       req.URI,
		"timestamp": req.Timestamp,
		"status":    req.Status,
	})
}

// UploadThumbnail handles POST /upload/thumbnail/{videoID} with a
// multipart image field.
func (h *MediaHandler) UploadThumbnail(w http.ResponseWriter, r *http.Request) {
	image, contentType, _, err := readImage(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if err := h.service.UploadThumbnail(r.Context(), chi.URLParam(r, "videoID"), image, contentType); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "uploaded"})
}

type bannerCreateRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Link        string `json:"link"`
	Note        string `json:"note"`
	User        string `json:"user" validate:"required"`
}

type bannerUpdateRequest struct {
	BannerID    string  `json:"PK" validate:"required"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
	Link        *string `json:"link"`
	Note        *string `json:"note"`
	Invalid     *bool   `json:"invalid"`
	User        string  `json:"user" validate:"required"`
}

// ListBanners handles GET /banners?active=true.
func (h *MediaHandler) ListBanners(w http.ResponseWriter, r *http.Request) {
	includeInvalid := r.URL.Query().Get("active") == "true"
	banners, err := h.service.Banners(r.Context(), includeInvalid)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, banners)
}

// CreateBanner handles POST /banner.
func (h *MediaHandler) CreateBanner(w http.ResponseWriter, r *http.Request) {
	var req bannerCreateRequest
	if err := decode(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	banner, err := h.service.CreateBanner(r.Context(), media.BannerCreate(req))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, banner)
}

// UpdateBanner handles PUT /banner.
func (h *MediaHandler) UpdateBanner(w http.ResponseWriter, r *http.Request) {
	var req bannerUpdateRequest
	if err := decode(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	err := h.service.UpdateBanner(r.Context(), media.BannerUpdate{
		BannerID:    req.BannerID,
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		Link:        req.Link,
		Note:        req.Note,
		Invalid:     req.Invalid,
		User:        req.User,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// UploadBannerImage handles POST /banner/image with a multipart image
// field, returning the stored image's public URL.
func (h *MediaHandler) UploadBannerImage(w http.ResponseWriter, r *http.Request) {
	image, contentType, filename, err := readImage(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	url, err := h.service.StoreBannerImage(r.Context(), filename, image, contentType)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}

func readImage(r *http.Request) (data []byte, contentType, filename string, err error) {
	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		return nil, "", "", apperrors.NewValidation("invalid multipart body")
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		return nil, "", "", apperrors.NewValidation("image field is required")
	}
	defer file.Close()

	data, err = io.ReadAll(io.LimitReader(file, maxImageBytes))
	if err != nil {
		return nil, "", "", apperrors.NewValidation("failed to read image")
	}
	return data, header.Header.Get("Content-Type"), header.Filename, nil
}
