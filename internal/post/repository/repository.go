package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"postboard/internal/common/constants"
	"postboard/internal/common/db"
	"postboard/internal/post/domain"
)

type Repository interface {
	Create(ctx context.Context, post domain.Post) error
	ListAllDesc(ctx context.Context) ([]domain.Post, error)
}

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) Create(ctx context.Context, post domain.Post) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DBQueryTimeout)
	defer cancel()

	start := time.Now()
	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO posts (id, title, author, description, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		string(post.ID),
		post.Title,
		post.Author,
		post.Description,
		post.CreatedAt,
	)
	if err != nil {
		return db.HandleExecError(err, "create post", start)
	}
	db.MeasureQueryDuration("create post", start)
	return nil
}

// ListAllDesc returns every post, newest first. The seq tie-break keeps
// posts sharing a created_at timestamp in reverse insertion order.
func (r *PgRepository) ListAllDesc(ctx context.Context) ([]domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DBQueryTimeout)
	defer cancel()

	start := time.Now()
	rows, err := r.pool.Query(
		ctx,
		`SELECT id, title, author, description, created_at
		 FROM posts ORDER BY created_at DESC, seq DESC`,
	)
	if err != nil {
		return nil, db.HandleQueryError(err, nil, "list posts", start)
	}
	defer rows.Close()

	posts := make([]domain.Post, 0)
	for rows.Next() {
		var post domain.Post
		if err := rows.Scan(&post.ID, &post.Title, &post.Author, &post.Description, &post.CreatedAt); err != nil {
			return nil, db.HandleQueryError(err, nil, "list posts", start)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, db.HandleQueryError(err, nil, "list posts", start)
	}
	db.MeasureQueryDuration("list posts", start)
	return posts, nil
}
