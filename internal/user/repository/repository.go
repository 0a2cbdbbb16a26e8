package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"postboard/internal/common/constants"
	"postboard/internal/common/db"
	commonerrors "postboard/internal/common/errors"
	"postboard/internal/user/domain"
)

type Repository interface {
	Create(ctx context.Context, user domain.User) error
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindByID(ctx context.Context, id domain.ID) (domain.User, error)
	UpdateProfile(ctx context.Context, id domain.ID, profile domain.Profile) error
}

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) Create(ctx context.Context, user domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DBQueryTimeout)
	defer cancel()

	start := time.Now()
	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO users (id, username, email, password_hash, image, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		string(user.ID),
		user.Username,
		user.Email,
		user.PasswordHash,
		user.Image,
		user.CreatedAt,
	)
	if err != nil {
		if db.IsUniqueViolation(err) {
			db.MeasureQueryDuration("create user", start)
			return commonerrors.ErrEmailAlreadyExists
		}
		return db.HandleExecError(err, "create user", start)
	}
	db.MeasureQueryDuration("create user", start)
	return nil
}

func (r *PgRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DBQueryTimeout)
	defer cancel()

	start := time.Now()
	row := r.pool.QueryRow(
		ctx,
		`SELECT id, username, email, password_hash, image, created_at
		 FROM users WHERE email = $1`,
		email,
	)

	var user domain.User
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.Image, &user.CreatedAt)
	if err != nil {
		return domain.User{}, db.HandleQueryError(err, commonerrors.ErrUserNotFound, "find user by email", start)
	}
	db.MeasureQueryDuration("find user by email", start)
	return user, nil
}

func (r *PgRepository) FindByID(ctx context.Context, id domain.ID) (domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DBQueryTimeout)
	defer cancel()

	start := time.Now()
	row := r.pool.QueryRow(
		ctx,
		`SELECT id, username, email, password_hash, image, created_at
		 FROM users WHERE id = $1`,
		string(id),
	)

	var user domain.User
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.Image, &user.CreatedAt)
	if err != nil {
		return domain.User{}, db.HandleQueryError(err, commonerrors.ErrUserNotFound, "find user by id", start)
	}
	db.MeasureQueryDuration("find user by id", start)
	return user, nil
}

// UpdateProfile rewrites the mutable profile columns inside a transaction.
// A concurrent registration or update taking the same email surfaces as
// ErrEmailAlreadyExists through the unique constraint.
func (r *PgRepository) UpdateProfile(ctx context.Context, id domain.ID, profile domain.Profile) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DBQueryTimeout)
	defer cancel()

	start := time.Now()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return db.HandleExecError(err, "update user profile", start)
	}
	defer tx.Rollback(ctx)

	res, err := tx.Exec(
		ctx,
		`UPDATE users SET username = $2, email = $3, image = $4 WHERE id = $1`,
		string(id),
		profile.Username,
		profile.Email,
		profile.Image,
	)
	if err != nil {
		if db.IsUniqueViolation(err) {
			db.MeasureQueryDuration("update user profile", start)
			return commonerrors.ErrEmailAlreadyExists
		}
		return db.HandleExecError(err, "update user profile", start)
	}
	if res.RowsAffected() == 0 {
		db.MeasureQueryDuration("update user profile", start)
		return commonerrors.ErrUserNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return db.HandleExecError(err, "update user profile", start)
	}
	db.MeasureQueryDuration("update user profile", start)
	return nil
}
