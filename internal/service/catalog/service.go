// Package catalog implements the curated side of the library: videos and
// the tags, categories and learning paths that organize them, plus the
// user records mutations are audited against.
package catalog

import (
	"go.uber.org/zap"

	"studio-backend/internal/repository/ddb"
)

// Service exposes the catalog operations. Multi-entity mutations go
// through the planner and commit as one transaction.
type Service struct {
	repo    *ddb.Repository
	planner *ddb.Planner
	logger  *zap.Logger
}

// NewService creates the catalog service.
func NewService(repo *ddb.Repository, planner *ddb.Planner, logger *zap.Logger) *Service {
	return &Service{
		repo:    repo,
		planner: planner,
		logger:  logger,
	}
}
