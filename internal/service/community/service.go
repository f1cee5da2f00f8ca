// Package community implements viewer-generated state: comment threads,
// likes, favorites and watch histories.
package community

import (
	"context"

	"go.uber.org/zap"

	"studio-backend/internal/repository/ddb"
	"studio-backend/internal/table"
	apperrors "studio-backend/pkg/errors"
)

// Service exposes the community operations. Every record hangs off the
// video's or the user's partition; nothing here needs a transaction.
type Service struct {
	repo   *ddb.Repository
	logger *zap.Logger
}

// NewService creates the community service.
func NewService(repo *ddb.Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// ThreadCreate describes a new comment. Parent is the parent thread's
// creation timestamp when the comment is a reply, empty for a new thread.
type ThreadCreate struct {
	VideoURI string
	Parent   string
	Body     string
	User     string
}

// ThreadUpdate edits a comment's body or hides it. Exactly one of Body
// and Invalid is applied; a comment is never deleted, only hidden.
type ThreadUpdate struct {
	VideoURI string
	ThreadID string
	Body     string
	Invalid  *bool
}

// Threads lists the visible comments under one video.
func (s *Service) Threads(ctx context.Context, videoID string) ([]table.Thread, error) {
	return s.repo.ThreadsByVideo(ctx, table.VideoURI(videoID))
}

// CreateThread posts a comment. A reply's sort key is prefixed with its
// parent's creation timestamp so replies group under the parent.
func (s *Service) CreateThread(ctx context.Context, req ThreadCreate) (table.Thread, error) {
	now := table.Timestamp()
	createdAt := now
	if req.Parent != "" {
		createdAt = req.Parent
	}

	thread := table.Thread{
		PK:          req.VideoURI,
		SK:          table.ThreadToken(req.Parent, now),
		IndexKey:    table.KindThread,
		CreatedAt:   createdAt,
		CreatedUser: req.User,
		Body:        req.Body,
		Invalid:     false,
	}
	item, err := table.MarshalRecord(thread)
	if err != nil {
		return table.Thread{}, err
	}
	if err := s.repo.PutItem(ctx, item); err != nil {
		return table.Thread{}, err
	}
	return thread, nil
}

// UpdateThread edits or hides one comment.
func (s *Service) UpdateThread(ctx context.Context, req ThreadUpdate) error {
	key := table.ThreadKey(req.VideoURI, req.ThreadID)
	if req.Body != "" {
		ub := ddb.NewUpdateBuilder().SetString("body", &req.Body)
		return s.repo.UpdateItem(ctx, key, ub)
	}
	if req.Invalid == nil {
		return apperrors.NewValidation("either body or invalid must be set")
	}
	ub := ddb.NewUpdateBuilder().SetBool("invalid", req.Invalid)
	return s.repo.UpdateItem(ctx, key, ub)
}

// LikeCreate describes a like or dislike on one video.
type LikeCreate struct {
	VideoURI string
	User     string
	Like     bool
}

// Likes lists the like records under one video.
func (s *Service) Likes(ctx context.Context, videoID string) ([]table.Like, error) {
	return s.repo.LikesByVideo(ctx, table.VideoURI(videoID))
}

// CreateLike records a like or dislike.
func (s *Service) CreateLike(ctx context.Context, req LikeCreate) (table.Like, error) {
	like := table.Like{
		PK:          req.VideoURI,
		SK:          table.NewID("like"),
		IndexKey:    table.KindLike,
		CreatedAt:   table.Timestamp(),
		CreatedUser: req.User,
		Like:        req.Like,
	}
	item, err := table.MarshalRecord(like)
	if err != nil {
		return table.Like{}, err
	}
	if err := s.repo.PutItem(ctx, item); err != nil {
		return table.Like{}, err
	}
	return like, nil
}

// DeleteLike withdraws a like or dislike.
func (s *Service) DeleteLike(ctx context.Context, videoURI, likeID string) error {
	return s.repo.DeleteItem(ctx, table.LikeKey(videoURI, likeID))
}

// Favorites lists one user's favorited videos.
func (s *Service) Favorites(ctx context.Context, userID string) ([]table.Favorite, error) {
	return s.repo.FavoritesByUser(ctx, userID)
}

// AddFavorite marks a video as one user's favorite. Re-adding an existing
// favorite overwrites it, which is harmless.
func (s *Service) AddFavorite(ctx context.Context, userID, videoURI string) (table.Favorite, error) {
	favorite := table.Favorite{
		PK:        userID,
		SK:        videoURI,
		IndexKey:  table.KindFavorite,
		CreatedAt: table.Timestamp(),
	}
	item, err := table.MarshalRecord(favorite)
	if err != nil {
		return table.Favorite{}, err
	}
	if err := s.repo.PutItem(ctx, item); err != nil {
		return table.Favorite{}, err
	}
	return favorite, nil
}

// RemoveFavorite withdraws a favorite.
func (s *Service) RemoveFavorite(ctx context.Context, userID, videoURI string) error {
	return s.repo.DeleteItem(ctx, table.FavoriteKey(userID, videoURI))
}

// HistoryCreate describes one watch event. CreatedAt comes from the
// player so the event carries the playback clock, not the server's.
type HistoryCreate struct {
	UserID     string
	VideoURI   string
	CreatedAt  string
	Parse      float64
	FinishedAt string
	Referrer   string
}

// Histories lists one user's most recent watch events, newest first.
func (s *Service) Histories(ctx context.Context, userID string, limit int32) ([]table.History, error) {
	return s.repo.HistoriesByUser(ctx, userID, limit)
}

// HistoriesToday lists today's watch events across all users, for the
// admin dashboard.
func (s *Service) HistoriesToday(ctx context.Context) ([]table.History, error) {
	return s.repo.HistoriesToday(ctx, table.Today())
}

// CreateHistory appends one watch event.
func (s *Service) CreateHistory(ctx context.Context, req HistoryCreate) (table.History, error) {
	history := table.History{
		PK:         req.UserID,
		SK:         table.NewID("H"),
		IndexKey:   table.KindHistory,
		CreatedAt:  req.CreatedAt,
		VideoURI:   req.VideoURI,
		Parse:      req.Parse,
		FinishedAt: req.FinishedAt,
		Referrer:   req.Referrer,
	}
	if history.CreatedAt == "" {
		history.CreatedAt = table.Timestamp()
	}
	item, err := table.MarshalRecord(history)
	if err != nil {
		return table.History{}, err
	}
	if err := s.repo.PutItem(ctx, item); err != nil {
		return table.History{}, err
	}
	return history, nil
}
