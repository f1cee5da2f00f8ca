package catalog

import (
	"context"

	"go.uber.org/zap"

	"studio-backend/internal/repository/ddb"
	"studio-backend/internal/table"
)

// UserUpsert records a login: a first login creates the user record, a
// repeat login refreshes its timestamp.
type UserUpsert struct {
	UserID string
	Name   string
	Image  string
}

// UserUpdate is a partial user update; nil fields are left untouched.
type UserUpdate struct {
	UserID string
	Name   *string
	Image  *string
	ACL    *string
}

// User fetches one user record.
func (s *Service) User(ctx context.Context, userID string) (table.User, error) {
	return s.repo.User(ctx, userID)
}

// Users lists all user records.
func (s *Service) Users(ctx context.Context) ([]table.User, error) {
	return s.repo.Users(ctx)
}

// UpsertUser creates the user on first login with the default role, and
// on later logins refreshes the timestamp the daily login counter reads.
func (s *Service) UpsertUser(ctx context.Context, req UserUpsert) (table.User, error) {
	now := table.Timestamp()

	existing, found, err := s.repo.TryGetItem(ctx, table.KeyFor(req.UserID))
	if err != nil {
		return table.User{}, err
	}
	if found {
		ub := ddb.NewUpdateBuilder().SetString("createdAt", &now)
		if err := s.repo.UpdateItem(ctx, table.KeyFor(req.UserID), ub); err != nil {
			return table.User{}, err
		}
		user, err := table.UnmarshalRecord[table.User](existing)
		if err != nil {
			return table.User{}, err
		}
		user.CreatedAt = now
		return user, nil
	}

	user := table.User{
		PK:        req.UserID,
		SK:        req.UserID,
		IndexKey:  table.KindUser,
		CreatedAt: now,
		UpdatedAt: now,
		Name:      req.Name,
		Image:     req.Image,
		ACL:       "user",
	}
	item, err := table.MarshalRecord(user)
	if err != nil {
		return table.User{}, err
	}
	if err := s.repo.PutItem(ctx, item); err != nil {
		return table.User{}, err
	}
	s.logger.Info("user created", zap.String("id", req.UserID))
	return user, nil
}

// UpdateUser applies a partial update to one user record.
func (s *Service) UpdateUser(ctx context.Context, req UserUpdate) error {
	ub := ddb.NewUpdateBuilder().
		SetString("name", req.Name).
		SetString("image", req.Image).
		SetString("acl", req.ACL)
	return s.repo.UpdateItem(ctx, table.KeyFor(req.UserID), ub)
}

// LoginCountToday reports how many users logged in today.
func (s *Service) LoginCountToday(ctx context.Context) (int, error) {
	users, err := s.repo.UsersToday(ctx, table.Today())
	if err != nil {
		return 0, err
	}
	return len(users), nil
}
