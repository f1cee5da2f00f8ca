package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"studio-backend/internal/repository/ddb"
	"studio-backend/internal/service/catalog"
	"studio-backend/internal/table"
)

// CatalogHandler serves the video, tag, category, learning-path and user
// endpoints.
type CatalogHandler struct {
	service *catalog.Service
	logger  *zap.Logger
}

// NewCatalogHandler creates the catalog handler.
func NewCatalogHandler(service *catalog.Service, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{service: service, logger: logger}
}

type videoFilterRequest struct {
	CategoryID     string `json:"categoryId"`
	TagID          string `json:"tagId"`
	LearningPathID string `json:"learningPathId"`
	Name           string `json:"name"`
}

func (f videoFilterRequest) filter() ddb.VideoFilter {
	return ddb.VideoFilter{
		CategoryID:     f.CategoryID,
		TagID:          f.TagID,
		LearningPathID: f.LearningPathID,
		Name:           f.Name,
	}
}

type videoCreateRequest struct {
	URI         string   `json:"PK" validate:"required"`
	Description string   `json:"description"`
	Note        string   `json:"note"`
	CategoryID  string   `json:"categoryId"`
	TagIDs      []string `json:"tagIds"`
	User        string   `json:"user" validate:"required"`

	PlatformURI *string `json:"uri"`
	Thumbnail   *string `json:"thumbnail"`
	Plays       *int    `json:"plays"`
	Name        *string `json:"name"`
	Duration    *int    `json:"duration"`
	HTML        *string `json:"html"`
}

type videoUpdateRequest struct {
	URI         string   `json:"PK" validate:"required"`
	Description *string  `json:"description"`
	Note        *string  `json:"note"`
	Invalid     *bool    `json:"invalid"`
	CategoryID  *string  `json:"categoryId"`
	TagIDs      []string `json:"tagIds"`
	User        string   `json:"user" validate:"required"`

	PlatformURI *string `json:"uri"`
	Thumbnail   *string `json:"thumbnail"`
	Plays       *int    `json:"plays"`
	Name        *string `json:"name"`
	Duration    *int    `json:"duration"`
	HTML        *string `json:"html"`
}

// GetVideo handles GET /video/{videoID}.
func (h *CatalogHandler) GetVideo(w http.ResponseWriter, r *http.Request) {
	video, err := h.service.Video(r.Context(), chi.URLParam(r, "videoID"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, video)
}

// ListVideos handles POST /videos. The filter travels in the body; the
// open query flag hides invalidated videos.
func (h *CatalogHandler) ListVideos(w http.ResponseWriter, r *http.Request) {
	var req videoFilterRequest
	if err := decode(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	openOnly := r.URL.Query().Get("open") != "false"

	videos, err := h.service.Videos(r.Context(), req.filter(), openOnly)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, videos)
}

// CreateVideo handles POST /video.
func (h *CatalogHandler) CreateVideo(w http.ResponseWriter, r *http.Request) {
	var req videoCreateRequest
	if err := decode(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	video, err := h.service.CreateVideo(r.Context(), catalog.VideoCreate{
		URI:         req.URI,
		Description: req.Description,
		Note:        req.Note,
		CategoryID:  req.CategoryID,
		TagIDs:      req.TagIDs,
		User:        req.User,
		PlatformURI: req.PlatformURI,
		Thumbnail:   req.Thumbnail,
		Plays:       req.Plays,
		Name:        req.Name,
		Duration:    req.Duration,
		HTML:        req.HTML,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, video)
}

// UpdateVideo handles PUT /video.
func (h *CatalogHandler) UpdateVideo(w http.ResponseWriter, r *http.Request) {
	var req videoUpdateRequest
	if err := decode(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	err := h.service.UpdateVideo(r.Context(), catalog.VideoUpdate{
		URI:         req.URI,
		Description: req.Description,
		Note:        req.Note,
		Invalid:     req.Invalid,
		CategoryID:  req.CategoryID,
		TagIDs:      req.TagIDs,
		User:        req.User,
		PlatformURI: req.PlatformURI,
		Thumbnail:   req.Thumbnail,
		Plays:       req.Plays,
		Name:        req.Name,
		Duration:    req.Duration,
		HTML:        req.HTML,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

type tagCreateRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Note        string `json:"note"`
	User        string `json:"user" validate:"required"`
}

type tagUpdateRequest struct {
	TagID       string  `json:"PK" validate:"required"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Note        *string `json:"note"`
	Invalid     *bool   `json:"invalid"`
	User        string  `json:"user" validate:"required"`
}

type tagDeleteRequest struct {
	TagID string `json:"PK" validate:"required"`
	User  string `json:"user" validate:"required"`
}

// GetTag handles GET /tag/{tagID}.
func (h *CatalogHandler) GetTag(w http.ResponseWriter, r *http.Request) {
	tag, err := h.service.Tag(r.Context(), chi.URLParam(r, "tagID"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, tag)
}

// ListTags handles GET /tags.
func (h *CatalogHandler) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.service.Tags(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, tags)
}

// CreateTag handles POST /tag.
func (h *CatalogHandler) CreateTag(w http.ResponseWriter, r *http.Request) {
	var req tagCreateRequest
	if err := decode(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	tag, err := h.service.CreateTag(r.Context(), catalog.TagCreate(req))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, tag)
}

// UpdateTag handles PUT /tag.
func (h *CatalogHandler) UpdateTag(w http.ResponseWriter, r *http.Request) {
	var req tagUpdateRequest
	if err := decode(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	err := h.service.UpdateTag(r.Context(), catalog.TagUpdate{
		TagID:       req.TagID,
		Name:        req.Name,
		Description: req.Description,
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

// DeleteTag handles DELETE /tag.
func (h *CatalogHandler) DeleteTag(w http.ResponseWriter, r *http.Request) {
	var req tagDeleteRequest
	if err := decode(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	if err := h.service.DeleteTag(r.Context(), req.TagID, req.User); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

type categoryCreateRequest struct {
	Name        string `json:"name" validate:"required"`
	ParentID    string `json:"parentId" validate:"required"`
	Description string `json:"description"`
	Note        string `json:"note"`
	User        string `json:"user" validate:"required"`
}

type categoryUpdateRequest struct {
	CategoryID  string  `json:"PK" validate:"required"`
	Name        *string `json:"name"`
	ParentID    *string `json:"parentId"`
	Description *string `json:"description"`
	Note        *string `json:"note"`
	Invalid     *bool   `json:"invalid"`
	User        string  `json:"user" validate:"required"`
}

// ListCategories handles GET /categories.
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.Categories(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

// CreateCategory handles POST /category.
func (h *CatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryCreateRequest
	if err := decode(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	category, err := h.service.CreateCategory(r.Context(), catalog.CategoryCreate(req))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, category)
}

// UpdateCategory handles PUT /category.
func (h *CatalogHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryUpdateRequest
	if err := decode(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	err := h.service.UpdateCategory(r.Context(), catalog.CategoryUpdate{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		ParentID:    req.ParentID,
		Description: req.Description,
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

// DeleteCategory handles DELETE /category/{categoryID}.
func (h *CatalogHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteCategory(r.Context(), chi.URLParam(r, "categoryID")); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

type pathCreateRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Note        string `json:"note"`
	User        string `json:"user" validate:"required"`
}

type pathUpdateRequest struct {
	PathID      string             `json:"PK" validate:"required"`
	Name        *string            `json:"name"`
	Description *string            `json:"description"`
	Note        *string            `json:"note"`
	Invalid     *bool              `json:"invalid"`
	Videos      []table.VideoOrder `json:"videos"`
	User        string             `json:"user" validate:"required"`
}

type pathDeleteRequest struct {
	PathID string `json:"PK" validate:"required"`
	User   string `json:"user" validate:"required"`
}

// GetLearningPath handles GET /path/{pathID}.
func (h *CatalogHandler) GetLearningPath(w http.ResponseWriter, r *http.Request) {
	path, err := h.service.LearningPath(r.Context(), chi.URLParam(r, "pathID"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, path)
}

// ListLearningPaths handles GET /paths.
func (h *CatalogHandler) ListLearningPaths(w http.ResponseWriter, r *http.Request) {
	paths, err := h.service.LearningPaths(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, paths)
}

// CreateLearningPath handles POST /path.
func (h *CatalogHandler) CreateLearningPath(w http.ResponseWriter, r *http.Request) {
	var req pathCreateRequest
	if err := decode(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	path, err := h.service.CreateLearningPath(r.Context(), catalog.PathCreate(req))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, path)
}

// UpdateLearningPath handles PUT /path.
func (h *CatalogHandler) UpdateLearningPath(w http.ResponseWriter, r *http.Request) {
	var req pathUpdateRequest
	if err := decode(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	err := h.service.UpdateLearningPath(r.Context(), ddb.PathUpdate{
		PathID:      req.PathID,
		Name:        req.Name,
		Description: req.Description,
		Note:        req.Note,
		Invalid:     req.Invalid,
		Videos:      req.Videos,
		User:        req.User,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// DeleteLearningPath handles DELETE /path.
func (h *CatalogHandler) DeleteLearningPath(w http.ResponseWriter, r *http.Request) {
	var req pathDeleteRequest
	if err := decode(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	if err := h.service.DeleteLearningPath(r.Context(), req.PathID, req.User); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

type orderRequest struct {
	PathID   string `json:"PK" validate:"required"`
	VideoURI string `json:"uri" validate:"required"`
}

// GetOrder handles POST /order: the (path, video) key travels in the body.
func (h *CatalogHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if err := decode(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	order, err := h.service.Order(r.Context(), req.PathID, req.VideoURI)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// ListOrders handles GET /orders/{pathID}.
func (h *CatalogHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.Orders(r.Context(), chi.URLParam(r, "pathID"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

type userUpsertRequest struct {
	UserID string `json:"PK" validate:"required"`
	Name   string `json:"name"`
	Image  string `json:"image"`
}

type userUpdateRequest struct {
	UserID string  `json:"PK" validate:"required"`
	Name   *string `json:"name"`
	Image  *string `json:"image"`
	ACL    *string `json:"acl"`
}

// GetUser handles GET /user/{userID}.
func (h *CatalogHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.User(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// ListUsers handles GET /users.
func (h *CatalogHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.Users(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// UpsertUser handles POST /user, the login touchpoint.
func (h *CatalogHandler) UpsertUser(w http.ResponseWriter, r *http.Request) {
	var req userUpsertRequest
	if err := decode(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	user, err := h.service.UpsertUser(r.Context(), catalog.UserUpsert(req))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// UpdateUser handles PUT /user.
func (h *CatalogHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req userUpdateRequest
	if err := decode(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	err := h.service.UpdateUser(r.Context(), catalog.UserUpdate{
		UserID: req.UserID,
		Name:   req.Name,
		Image:  req.Image,
		ACL:    req.ACL,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// LoginCount handles GET /users/logins/today.
func (h *CatalogHandler) LoginCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.LoginCountToday(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"count": count})
}
