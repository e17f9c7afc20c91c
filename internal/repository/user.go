package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/templui/goalnote/internal/apperror"
	"github.com/templui/goalnote/internal/model"
)

// UserRepository is the one unscoped repository: users are the owners.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	ByID(ctx context.Context, id int64) (*model.User, error)
	ByEmail(ctx context.Context, email string) (*model.User, error)
	Delete(ctx context.Context, id int64) error
}

type userRepository struct {
	db sqlx.ExtContext
}

func NewUserRepository(db sqlx.ExtContext) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	query := r.db.Rebind(`INSERT INTO users (email, name, password_hash, created_at, updated_at)
	                      VALUES (?, ?, ?, ?, ?) RETURNING id`)

	err := sqlx.GetContext(ctx, r.db, &user.ID, query,
		user.Email,
		user.Name,
		user.PasswordHash,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		err = translate(err)
		if apperror.KindOf(err) == apperror.KindConflict {
			return ErrDuplicateEmail
		}
		return err
	}

	return nil
}

func (r *userRepository) ByID(ctx context.Context, id int64) (*model.User, error) {
	user := &model.User{}
	query := r.db.Rebind(`SELECT * FROM users WHERE id = ?`)

	err := sqlx.GetContext(ctx, r.db, user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, translate(err)
	}

	return user, nil
}

func (r *userRepository) ByEmail(ctx context.Context, email string) (*model.User, error) {
	user := &model.User{}
	query := r.db.Rebind(`SELECT * FROM users WHERE email = ?`)

	err := sqlx.GetContext(ctx, r.db, user, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, translate(err)
	}

	return user, nil
}

func (r *userRepository) Delete(ctx context.Context, id int64) error {
	query := r.db.Rebind(`DELETE FROM users WHERE id = ?`)

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return translate(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return translate(err)
	}

	if rows == 0 {
		return ErrUserNotFound
	}

	return nil
}
