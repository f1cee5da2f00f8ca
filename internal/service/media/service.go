// Package media handles everything that touches bytes outside the table:
// the video platform (listing, uploads, transcoding, thumbnails), the
// merged views built from platform plus database state, and banner images
// in object storage.
package media

import (
	"context"

	"go.uber.org/zap"

	"studio-backend/internal/merge"
	"studio-backend/internal/repository/ddb"
	"studio-backend/internal/storage"
	"studio-backend/internal/table"
	"studio-backend/internal/vimeo"
)

// Platform is the slice of the platform client the service uses.
type Platform interface {
	Video(ctx context.Context, videoID string) (vimeo.Video, error)
	Videos(ctx context.Context) (vimeo.VideoList, error)
	Total(ctx context.Context) (int, error)
	UpdateVideo(ctx context.Context, videoID string, name, description *string) error
	TranscodeStatus(ctx context.Context, videoID string) (string, error)
	CreateUpload(ctx context.Context, req vimeo.UploadRequest) (vimeo.Upload, error)
	UploadThumbnail(ctx context.Context, videoID string, image []byte, contentType string) error
}

// Images is the slice of the image store the service uses.
type Images interface {
	Put(ctx context.Context, key string, image []byte, contentType string) (string, error)
}

// Service exposes the media operations.
type Service struct {
	repo     *ddb.Repository
	platform Platform
	images   Images
	logger   *zap.Logger
}

// NewService creates the media service.
func NewService(repo *ddb.Repository, platform Platform, images Images, logger *zap.Logger) *Service {
	return &Service{
		repo:     repo,
		platform: platform,
		images:   images,
		logger:   logger,
	}
}

// PlatformVideo fetches one video's live platform state.
func (s *Service) PlatformVideo(ctx context.Context, videoID string) (vimeo.Video, error) {
	return s.platform.Video(ctx, videoID)
}

// PlatformTotal reports the account's video count on the platform.
func (s *Service) PlatformTotal(ctx context.Context) (int, error) {
	return s.platform.Total(ctx)
}

// UpdatePlatformVideo pushes a title or description change to the
// platform. The database copy catches up on the next merge.
func (s *Service) UpdatePlatformVideo(ctx context.Context, videoID string, name, description *string) error {
	return s.platform.UpdateVideo(ctx, videoID, name, description)
}

// MergedVideos joins the database records with the platform listing.
// Viewers (includeUnmatched false) see only videos both sides agree on;
// the admin view keeps one-sided records so drift is visible.
func (s *Service) MergedVideos(ctx context.Context, filter ddb.VideoFilter, includeUnmatched bool) ([]table.Video, error) {
	stored, err := s.repo.Videos(ctx, filter, !includeUnmatched)
	if err != nil {
		return nil, err
	}
	listing, err := s.platform.Videos(ctx)
	if err != nil {
		return nil, err
	}
	return merge.Videos(stored, listing.Videos, includeUnmatched), nil
}

// VideoTable builds the admin video table: the merged listing with every
// reference resolved to display names.
func (s *Service) VideoTable(ctx context.Context) ([]merge.VideoRow, error) {
	videos, err := s.MergedVideos(ctx, ddb.VideoFilter{}, true)
	if err != nil {
		return nil, err
	}
	categories, err := s.repo.Categories(ctx)
	if err != nil {
		return nil, err
	}
	tags, err := s.repo.Tags(ctx)
	if err != nil {
		return nil, err
	}
	paths, err := s.repo.LearningPaths(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.repo.Users(ctx)
	if err != nil {
		return nil, err
	}
	return merge.VideoTable(videos, categories, tags, paths, users), nil
}

// TranscodeStatus reports a video's transcoding state on the platform.
func (s *Service) TranscodeStatus(ctx context.Context, videoID string) (string, error) {
	return s.platform.TranscodeStatus(ctx, videoID)
}

// UploadThumbnail replaces a video's thumbnail on the platform.
func (s *Service) UploadThumbnail(ctx context.Context, videoID string, image []byte, contentType string) error {
	return s.platform.UploadThumbnail(ctx, videoID, image, contentType)
}

// StartUpload registers a resumable upload on the platform and records
// its initial status so the dashboard can follow the transcode.
func (s *Service) StartUpload(ctx context.Context, req vimeo.UploadRequest, user string) (vimeo.Upload, error) {
	upload, err := s.platform.CreateUpload(ctx, req)
	if err != nil {
		return vimeo.Upload{}, err
	}

	now := table.Timestamp()
	status := table.UploadStatus{
		PK:          upload.URI,
		SK:          now,
		ID:          upload.URI,
		IndexKey:    table.KindStatus,
		CreatedAt:   now,
		CreatedUser: user,
		Name:        req.Name,
		Filename:    req.Name,
		Status:      "uploading",
	}
	item, err := table.MarshalRecord(status)
	if err != nil {
		return vimeo.Upload{}, err
	}
	if err := s.repo.PutItem(ctx, item); err != nil {
		return vimeo.Upload{}, err
	}

	s.logger.Info("upload started", zap.String("uri", upload.URI), zap.String("user", user))
	return upload, nil
}

// RecordUploadStatus writes one upload-status record.
func (s *Service) RecordUploadStatus(ctx context.Context, uri, name, filename, status, user string) (table.UploadStatus, error) {
	now := table.Timestamp()
	record := table.UploadStatus{
		PK:          uri,
		SK:          now,
		ID:          uri,
		IndexKey:    table.KindStatus,
		CreatedAt:   now,
		CreatedUser: user,
		Name:        name,
		Filename:    filename,
		Status:      status,
	}
	item, err := table.MarshalRecord(record)
	if err != nil {
		return table.UploadStatus{}, err
	}
	if err := s.repo.PutItem(ctx, item); err != nil {
		return table.UploadStatus{}, err
	}
	return record, nil
}

// UpdateUploadStatus moves one upload-status record to a new state.
func (s *Service) UpdateUploadStatus(ctx context.Context, uri, timestamp, status string) error {
	ub := ddb.NewUpdateBuilder().SetString("status", &status)
	return s.repo.UpdateItem(ctx, table.StatusKey(uri, timestamp), ub)
}

// UploadStatusesToday lists today's upload-status records.
func (s *Service) UploadStatusesToday(ctx context.Context) ([]table.UploadStatus, error) {
	return s.repo.UploadStatusesToday(ctx, table.Today())
}

// Banners lists banner records.
func (s *Service) Banners(ctx context.Context, includeInvalid bool) ([]table.Banner, error) {
	return s.repo.Banners(ctx, includeInvalid)
}

// BannerCreate describes a new banner; Image is the stored image's URL.
type BannerCreate struct {
	Name        string
	Description string
	Image       string
	Link        string
	Note        string
	User        string
}

// BannerUpdate is a partial banner update; nil fields are left untouched.
type BannerUpdate struct {
	BannerID    string
	Name        *string
	Description *string
	Image       *string
	Link        *string
	Note        *string
	Invalid     *bool
	User        string
}

// CreateBanner writes a new banner record.
func (s *Service) CreateBanner(ctx context.Context, req BannerCreate) (table.Banner, error) {
	now := table.Timestamp()
	id := table.NewID("B")
	banner := table.Banner{
		PK:          id,
		SK:          id,
		IndexKey:    table.KindBanner,
		CreatedAt:   now,
		CreatedUser: req.User,
		UpdatedAt:   now,
		UpdatedUser: req.User,
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		Link:        req.Link,
		Note:        req.Note,
	}
	item, err := table.MarshalRecord(banner)
	if err != nil {
		return table.Banner{}, err
	}
	if err := s.repo.PutItem(ctx, item); err != nil {
		return table.Banner{}, err
	}
	s.logger.Info("banner created", zap.String("id", id))
	return banner, nil
}

// UpdateBanner applies a partial update to one banner record.
func (s *Service) UpdateBanner(ctx context.Context, req BannerUpdate) error {
	ub := ddb.NewAuditedUpdate(table.Timestamp(), req.User).
		SetString("name", req.Name).
		SetString("description", req.Description).
		SetString("image", req.Image).
		SetString("link", req.Link).
		SetString("note", req.Note).
		SetBool("invalid", req.Invalid)
	return s.repo.UpdateItem(ctx, table.KeyFor(req.BannerID), ub)
}

// StoreBannerImage persists an uploaded banner image and returns its
// public URL.
func (s *Service) StoreBannerImage(ctx context.Context, filename string, image []byte, contentType string) (string, error) {
	key := storage.ImageKey(filename, table.Timestamp())
	return s.images.Put(ctx, key, image, contentType)
}
