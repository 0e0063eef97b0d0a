package db

import (
	"context"

	"github.com/shandysiswandi/dinebite/internal/identity/entity"
	"github.com/shandysiswandi/dinebite/internal/pkg/sqlc"
)

// GetUserByEmail returns goerror.ErrNotFound when no account has email.
func (s *DB) GetUserByEmail(ctx context.Context, email string) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByEmail")
	defer func() { s.endSpan(span, err) }()

	result, err := s.query.GetIdentityUserByEmail(ctx, email)
	if err != nil {
		return nil, s.mapError(err)
	}

	return toUser(result), nil
}

// GetUserByID returns goerror.ErrNotFound when id is unknown.
func (s *DB) GetUserByID(ctx context.Context, id int64) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByID")
	defer func() { s.endSpan(span, err) }()

	result, err := s.query.GetIdentityUserByID(ctx, id)
	if err != nil {
		return nil, s.mapError(err)
	}

	return toUser(result), nil
}

func (s *DB) GetUserLoginInfo(ctx context.Context, email string) (_ *entity.UserLoginInfo, err error) {
	ctx, span := s.startSpan(ctx, "GetUserLoginInfo")
	defer func() { s.endSpan(span, err) }()

	result, err := s.query.GetIdentityUserLoginInfo(ctx, email)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &entity.UserLoginInfo{
		ID:       result.ID,
		Email:    result.Email,
		Status:   result.Status,
		Password: result.Password,
	}, nil
}

// NewUser inserts the account and its credential in one transaction.
func (s *DB) NewUser(ctx context.Context, user entity.NewUser, hash string) (err error) {
	ctx, span := s.startSpan(ctx, "NewUser")
	defer func() { s.endSpan(span, err) }()

	return s.inTx(ctx, func(q *sqlc.Queries) error {
		if err := q.CreateIdentityUser(ctx, sqlc.CreateIdentityUserParams{
			ID:       user.ID,
			Email:    user.Email,
			FullName: user.FullName,
			Status:   user.Status,
		}); err != nil {
			return err
		}

		return q.UpsertIdentityUserCredential(ctx, sqlc.UpsertIdentityUserCredentialParams{
			UserID:   user.ID,
			Password: hash,
		})
	})
}

func toUser(u sqlc.IdentityUser) *entity.User {
	return &entity.User{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Status:    u.Status,
		CreatedAt: u.CreatedAt.Time,
	}
}
