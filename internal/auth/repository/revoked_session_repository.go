package repository

import (
	"context"
	"errors"
	"time"

	pgx "github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"postboard/internal/common/constants"
	"postboard/internal/common/db"
)

type RevokedSessionRepository interface {
	Revoke(ctx context.Context, jti string, userID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
	DeleteExpired(ctx context.Context) (int64, error)
}

type PgRevokedSessionRepository struct {
	pool *pgxpool.Pool
}

func NewPgRevokedSessionRepository(pool *pgxpool.Pool) *PgRevokedSessionRepository {
	return &PgRevokedSessionRepository{pool: pool}
}

func (r *PgRevokedSessionRepository) Revoke(ctx context.Context, jti string, userID string, expiresAt time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DBQueryTimeout)
	defer cancel()

	start := time.Now()
	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO revoked_sessions (jti, user_id, expires_at, revoked_at)
		 VALUES ($1, $2, $3, NOW())
		 ON CONFLICT (jti) DO NOTHING`,
		jti,
		userID,
		expiresAt,
	)
	return db.HandleExecError(err, "revoke session", start)
}

func (r *PgRevokedSessionRepository) IsRevoked(ctx context.Context, jti string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DBQueryTimeout)
	defer cancel()

	start := time.Now()
	row := r.pool.QueryRow(
		ctx,
		`SELECT EXISTS(
			SELECT 1 FROM revoked_sessions
			WHERE jti = $1 AND expires_at > NOW()
		)`,
		jti,
	)

	var exists bool
	if err := row.Scan(&exists); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			db.MeasureQueryDuration("check revoked session", start)
			return false, nil
		}
		return false, db.HandleQueryError(err, nil, "check revoked session", start)
	}
	db.MeasureQueryDuration("check revoked session", start)
	return exists, nil
}

func (r *PgRevokedSessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DBQueryTimeout)
	defer cancel()

	start := time.Now()
	res, err := r.pool.Exec(
		ctx,
		`DELETE FROM revoked_sessions WHERE expires_at < NOW()`,
	)
	if err != nil {
		return 0, db.HandleExecError(err, "delete expired revoked sessions", start)
	}
	db.MeasureQueryDuration("delete expired revoked sessions", start)
	return res.RowsAffected(), nil
}
