package rest

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"studio-backend/internal/service/community"
)

const defaultHistoryLimit = 20

// CommunityHandler serves the thread, like, favorite and history
// endpoints.
type CommunityHandler struct {
	service *community.Service
	logger  *zap.Logger
}

// NewCommunityHandler creates the community handler.
func NewCommunityHandler(service *community.Service, logger *zap.Logger) *CommunityHandler {
	return &CommunityHandler{service: service, logger: logger}
}

type threadCreateRequest struct {
	VideoURI string `json:"video" validate:"required"`
	Parent   string `json:"thread"`
	Body     string `json:"body" validate:"required"`
	User     string `json:"user" validate:"required"`
}

type threadUpdateRequest struct {
	VideoURI string `json:"video" validate:"required"`
	ThreadID string `json:"id" validate:"required"`
	Body     string `json:"body"`
	Invalid  *bool  `json:"invalid"`
}

// ListThreads handles GET /threads/{videoID}.
func (h *CommunityHandler) ListThreads(w http.ResponseWriter, r *http.Request) {
	threads, err := h.service.Threads(r.Context(), chi.URLParam(r, "videoID"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, threads)
}

// CreateThread handles POST /thread.
func (h *CommunityHandler) CreateThread(w http.ResponseWriter, r *http.Request) {
	var req threadCreateRequest
	if err := decode(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	thread, err := h.service.CreateThread(r.Context(), community.ThreadCreate(req))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, thread)
}

// UpdateThread handles PUT /thread.
func (h *CommunityHandler) UpdateThread(w http.ResponseWriter, r *http.Request) {
	var req threadUpdateRequest
	if err := decode(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	err := h.service.UpdateThread(r.Context(), community.ThreadUpdate{
		VideoURI: req.VideoURI,
		ThreadID: req.ThreadID,
		Body:     req.Body,
		Invalid:  req.Invalid,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

type likeCreateRequest struct {
	VideoURI string `json:"video" validate:"required"`
	User     string `json:"user" validate:"required"`
	Like     bool   `json:"like"`
}

type likeDeleteRequest struct {
	VideoURI string `json:"video" validate:"required"`
	LikeID   string `json:"id" validate:"required"`
}

// ListLikes handles GET /likes/{videoID}.
func (h *CommunityHandler) ListLikes(w http.ResponseWriter, r *http.Request) {
	likes, err := h.service.Likes(r.Context(), chi.URLParam(r, "videoID"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, likes)
}

// CreateLike handles POST /like.
func (h *CommunityHandler) CreateLike(w http.ResponseWriter, r *http.Request) {
	var req likeCreateRequest
	if err := decode(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	like, err := h.service.CreateLike(r.Context(), community.LikeCreate(req))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, like)
}

// DeleteLike handles DELETE /like.
func (h *CommunityHandler) DeleteLike(w http.ResponseWriter, r *http.Request) {
	var req likeDeleteRequest
	if err := decode(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	if err := h.service.DeleteLike(r.Context(), req.VideoURI, req.LikeID); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

type favoriteRequest struct {
	UserID   string `json:"user" validate:"required"`
	VideoURI string `json:"video" validate:"required"`
}

// ListFavorites handles GET /favorites/{userID}.
func (h *CommunityHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	favorites, err := h.service.Favorites(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, favorites)
}

// AddFavorite handles POST /favorite.
func (h *CommunityHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	var req favoriteRequest
	if err := decode(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	favorite, err := h.service.AddFavorite(r.Context(), req.UserID, req.VideoURI)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, favorite)
}

// RemoveFavorite handles DELETE /favorite.
func (h *CommunityHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	var req favoriteRequest
	if err := decode(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	if err := h.service.RemoveFavorite(r.Context(), req.UserID, req.VideoURI); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

type historyCreateRequest struct {
	UserID     string  `json:"user" validate:"required"`
	VideoURI   string  `json:"video" validate:"required"`
	CreatedAt  string  `json:"createdAt"`
	Parse      float64 `json:"parse"`
	FinishedAt string  `json:"finishedAt"`
	Referrer   string  `json:"referrer"`
}

// ListHistories handles GET /histories/{userID}?limit=N.
func (h *CommunityHandler) ListHistories(w http.ResponseWriter, r *http.Request) {
	limit := int32(defaultHistoryLimit)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 32); err == nil && parsed > 0 {
			limit = int32(parsed)
		}
	}

	histories, err := h.service.Histories(r.Context(), chi.URLParam(r, "userID"), limit)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, histories)
}

// ListHistoriesToday handles GET /histories/today.
func (h *CommunityHandler) ListHistoriesToday(w http.ResponseWriter, r *http.Request) {
	histories, err := h.service.HistoriesToday(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, histories)
}

// CreateHistory handles POST /history.
func (h *CommunityHandler) CreateHistory(w http.ResponseWriter, r *http.Request) {
	var req historyCreateRequest
	if err := decode(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	history, err := h.service.CreateHistory(r.Context(), community.HistoryCreate(req))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, history)
}
