package catalog

import (
	"context"

	"go.uber.org/zap"

	"studio-backend/internal/repository/ddb"
	"studio-backend/internal/table"
)

// VideoCreate registers a platform video in the database. TagIDs may be
// empty; the video joins learning paths later through path updates, never
// at creation.
type VideoCreate struct {
	URI         string
	Description string
	Note        string
	CategoryID  string
	TagIDs      []string
	User        string

	PlatformURI *string
	Thumbnail   *string
	Plays       *int
	Name        *string
	Duration    *int
	HTML        *string
}

// VideoUpdate is a partial video update; nil fields are left untouched.
type VideoUpdate struct {
	URI         string
	Description *string
	Note        *string
	Invalid     *bool
	CategoryID  *string
	TagIDs      []string
	User        string

	PlatformURI *string
	Thumbnail   *string
	Plays       *int
	Name        *string
	Duration    *int
	HTML        *string
}

// Video fetches one video record.
func (s *Service) Video(ctx context.Context, videoID string) (table.Video, error) {
	return s.repo.Video(ctx, table.VideoURI(videoID))
}

// Videos lists video records. openOnly hides invalidated videos, which is
// what viewers get; the admin side passes false.
func (s *Service) Videos(ctx context.Context, filter ddb.VideoFilter, openOnly bool) ([]table.Video, error) {
	return s.repo.Videos(ctx, filter, openOnly)
}

// CreateVideo writes a new video record keyed by its platform URI.
func (s *Service) CreateVideo(ctx context.Context, req VideoCreate) (table.Video, error) {
	now := table.Timestamp()
	video := table.Video{
		PK:              req.URI,
		SK:              req.URI,
		IndexKey:        table.KindVideo,
		CreatedAt:       now,
		CreatedUser:     req.User,
		UpdatedAt:       now,
		UpdatedUser:     req.User,
		Invalid:         false,
		Note:            req.Note,
		Description:     req.Description,
		CategoryID:      req.CategoryID,
		TagIDs:          req.TagIDs,
		LearningPathIDs: table.Sentinel(),
	}
	if req.PlatformURI != nil {
		video.URI = *req.PlatformURI
	}
	if req.Thumbnail != nil {
		video.Thumbnail = *req.Thumbnail
	}
	if req.Plays != nil {
		video.Plays = *req.Plays
	}
	if req.Name != nil {
		video.Name = *req.Name
	}
	if req.Duration != nil {
		video.Duration = *req.Duration
	}
	if req.HTML != nil {
		video.HTML = *req.HTML
	}

	item, err := table.MarshalVideo(video)
	if err != nil {
		return table.Video{}, err
	}
	if err := s.repo.PutItem(ctx, item); err != nil {
		return table.Video{}, err
	}
	s.logger.Info("video created", zap.String("uri", req.URI), zap.String("user", req.User))
	return video, nil
}

// UpdateVideo applies a partial update to one video record.
func (s *Service) UpdateVideo(ctx context.Context, req VideoUpdate) error {
	ub := ddb.NewAuditedUpdate(table.Timestamp(), req.User).
		SetString("description", req.Description).
		SetString("note", req.Note).
		SetBool("invalid", req.Invalid).
		SetString("categoryId", req.CategoryID).
		SetStringSet("tagIds", req.TagIDs).
		SetString("uri", req.PlatformURI).
		SetString("thumbnail", req.Thumbnail).
		SetInt("plays", req.Plays).
		SetString("name", req.Name).
		SetInt("duration", req.Duration).
		SetString("html", req.HTML)
	return s.repo.UpdateItem(ctx, table.KeyFor(req.URI), ub)
}
