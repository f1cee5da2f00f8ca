package catalog

import (
	"context"

	"go.uber.org/zap"

	"studio-backend/internal/merge"
	"studio-backend/internal/repository/ddb"
	"studio-backend/internal/table"
)

// CategoryCreate describes a new category. ParentID is the parent
// category's ID, or the root marker for a top-level category.
type CategoryCreate struct {
	Name        string
	ParentID    string
	Description string
	Note        string
	User        string
}

// CategoryUpdate is a partial category update; nil fields are left
// untouched.
type CategoryUpdate struct {
	CategoryID  string
	Name        *string
	ParentID    *string
	Description *string
	Note        *string
	Invalid     *bool
	User        string
}

// Category fetches one category record.
func (s *Service) Category(ctx context.Context, categoryID string) (table.Category, error) {
	return s.repo.Category(ctx, categoryID)
}

// Categories lists all categories with parent names resolved.
func (s *Service) Categories(ctx context.Context) ([]table.Category, error) {
	categories, err := s.repo.Categories(ctx)
	if err != nil {
		return nil, err
	}
	return merge.Categories(categories), nil
}

// CreateCategory writes a new category record.
func (s *Service) CreateCategory(ctx context.Context, req CategoryCreate) (table.Category, error) {
	now := table.Timestamp()
	id := table.NewID("C")
	category := table.Category{
		PK:          id,
		SK:          id,
		IndexKey:    table.KindCategory,
		CreatedAt:   now,
		CreatedUser: req.User,
		UpdatedAt:   now,
		UpdatedUser: req.User,
		Name:        req.Name,
		ParentID:    req.ParentID,
		Description: req.Description,
		Note:        req.Note,
	}
	item, err := table.MarshalRecord(category)
	if err != nil {
		return table.Category{}, err
	}
	if err := s.repo.PutItem(ctx, item); err != nil {
		return table.Category{}, err
	}
	s.logger.Info("category created", zap.String("id", id), zap.String("name", req.Name))
	return category, nil
}

// UpdateCategory applies a partial update to one category record.
func (s *Service) UpdateCategory(ctx context.Context, req CategoryUpdate) error {
	ub := ddb.NewAuditedUpdate(table.Timestamp(), req.User).
		SetString("name", req.Name).
		SetString("parentId", req.ParentID).
		SetString("description", req.Description).
		SetString("note", req.Note).
		SetBool("invalid", req.Invalid)
	return s.repo.UpdateItem(ctx, table.KeyFor(req.CategoryID), ub)
}

// DeleteCategory removes a category. The delete is refused while any
// video still references it.
func (s *Service) DeleteCategory(ctx context.Context, categoryID string) error {
	if err := s.planner.CheckCategoryDeletable(ctx, categoryID); err != nil {
		return err
	}
	if err := s.repo.DeleteItem(ctx, table.KeyFor(categoryID)); err != nil {
		return err
	}
	s.logger.Info("category deleted", zap.String("id", categoryID))
	return nil
}
