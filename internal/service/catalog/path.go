package catalog

import (
	"context"

	"go.uber.org/zap"

	"studio-backend/internal/merge"
	"studio-backend/internal/repository/ddb"
	"studio-backend/internal/table"
)

// PathCreate describes a new learning path. Membership is attached
// afterwards through UpdateLearningPath.
type PathCreate struct {
	Name        string
	Description string
	Note        string
	User        string
}

// LearningPath fetches one path with its playback ordering attached.
func (s *Service) LearningPath(ctx context.Context, pathID string) (table.LearningPath, error) {
	path, err := s.repo.LearningPath(ctx, pathID)
	if err != nil {
		return table.LearningPath{}, err
	}
	orders, err := s.repo.OrdersByPath(ctx, pathID)
	if err != nil {
		return table.LearningPath{}, err
	}
	merged := merge.PathsWithOrders([]table.LearningPath{path}, orders)
	return merged[0], nil
}

// LearningPaths lists all paths with their playback orderings attached.
func (s *Service) LearningPaths(ctx context.Context) ([]table.LearningPath, error) {
	paths, err := s.repo.LearningPaths(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := s.repo.Orders(ctx)
	if err != nil {
		return nil, err
	}
	return merge.PathsWithOrders(paths, orders), nil
}

// Order fetches one playback-order record.
func (s *Service) Order(ctx context.Context, pathID, videoURI string) (table.Order, error) {
	return s.repo.Order(ctx, pathID, videoURI)
}

// Orders lists a path's playback-order records sorted by position.
func (s *Service) Orders(ctx context.Context, pathID string) ([]table.Order, error) {
	return s.repo.OrdersByPath(ctx, pathID)
}

// CreateLearningPath writes a new path record with no members.
func (s *Service) CreateLearningPath(ctx context.Context, req PathCreate) (table.LearningPath, error) {
	now := table.Timestamp()
	id := table.NewID("L")
	path := table.LearningPath{
		PK:          id,
		SK:          id,
		IndexKey:    table.KindLearningPath,
		CreatedAt:   now,
		CreatedUser: req.User,
		UpdatedAt:   now,
		UpdatedUser: req.User,
		Name:        req.Name,
		Description: req.Description,
		Note:        req.Note,
	}
	item, err := table.MarshalRecord(path)
	if err != nil {
		return table.LearningPath{}, err
	}
	if err := s.repo.PutItem(ctx, item); err != nil {
		return table.LearningPath{}, err
	}
	s.logger.Info("learning path created", zap.String("id", id), zap.String("name", req.Name))
	return path, nil
}

// UpdateLearningPath applies a path update atomically: its own fields,
// the back-references on videos joining or leaving, and the order records
// carrying the playback positions all move in one transaction.
func (s *Service) UpdateLearningPath(ctx context.Context, req ddb.PathUpdate) error {
	plan, err := s.planner.PlanPathUpdate(ctx, req)
	if err != nil {
		return err
	}
	if err := s.repo.ExecuteTransaction(ctx, plan); err != nil {
		return err
	}
	s.logger.Info("learning path updated", zap.String("id", req.PathID), zap.Int("items", len(plan)))
	return nil
}

// DeleteLearningPath removes a path, its back-references and its order
// records, atomically.
func (s *Service) DeleteLearningPath(ctx context.Context, pathID, user string) error {
	plan, err := s.planner.PlanPathDelete(ctx, pathID, user)
	if err != nil {
		return err
	}
	if err := s.repo.ExecuteTransaction(ctx, plan); err != nil {
		return err
	}
	s.logger.Info("learning path deleted", zap.String("id", pathID), zap.Int("items", len(plan)))
	return nil
}
