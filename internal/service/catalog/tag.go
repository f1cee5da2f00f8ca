package catalog

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"studio-backend/internal/repository/ddb"
	"studio-backend/internal/table"
	apperrors "studio-backend/pkg/errors"
)

// TagCreate describes a new tag.
type TagCreate struct {
	Name        string
	Description string
	Note        string
	User        string
}

// TagUpdate is a partial tag update; nil fields are left untouched.
type TagUpdate struct {
	TagID       string
	Name        *string
	Description *string
	Note        *string
	Invalid     *bool
	User        string
}

// Tag fetches one tag record.
func (s *Service) Tag(ctx context.Context, tagID string) (table.Tag, error) {
	return s.repo.Tag(ctx, tagID)
}

// Tags lists all tag records.
func (s *Service) Tags(ctx context.Context) ([]table.Tag, error) {
	return s.repo.Tags(ctx)
}

// CreateTag writes a new tag. Names are unique; the check reads the
// current listing before the write, so two simultaneous creates of the
// same name can still race past each other. Tolerable for a
// low-frequency admin operation.
func (s *Service) CreateTag(ctx context.Context, req TagCreate) (table.Tag, error) {
	existing, err := s.repo.Tags(ctx)
	if err != nil {
		return table.Tag{}, err
	}
	for _, tag := range existing {
		if tag.Name == req.Name {
			return table.Tag{}, apperrors.NewConstraintViolation(
				fmt.Sprintf("tag name %q already exists", req.Name))
		}
	}

	now := table.Timestamp()
	id := table.NewID("T")
	tag := table.Tag{
		PK:          id,
		SK:          id,
		IndexKey:    table.KindTag,
		CreatedAt:   now,
		CreatedUser: req.User,
		UpdatedAt:   now,
		UpdatedUser: req.User,
		Name:        req.Name,
		Description: req.Description,
		Note:        req.Note,
	}
	item, err := table.MarshalRecord(tag)
	if err != nil {
		return table.Tag{}, err
	}
	if err := s.repo.PutItem(ctx, item); err != nil {
		return table.Tag{}, err
	}
	s.logger.Info("tag created", zap.String("id", id), zap.String("name", req.Name))
	return tag, nil
}

// UpdateTag applies a partial update to one tag record.
func (s *Service) UpdateTag(ctx context.Context, req TagUpdate) error {
	ub := ddb.NewAuditedUpdate(table.Timestamp(), req.User).
		SetString("name", req.Name).
		SetString("description", req.Description).
		SetString("note", req.Note).
		SetBool("invalid", req.Invalid)
	return s.repo.UpdateItem(ctx, table.KeyFor(req.TagID), ub)
}

// DeleteTag removes a tag and strips it from every video that carries it,
// atomically.
func (s *Service) DeleteTag(ctx context.Context, tagID, user string) error {
	plan, err := s.planner.PlanTagDelete(ctx, tagID, user)
	if err != nil {
		return err
	}
	if err := s.repo.ExecuteTransaction(ctx, plan); err != nil {
		return err
	}
	s.logger.Info("tag deleted", zap.String("id", tagID), zap.Int("items", len(plan)))
	return nil
}
