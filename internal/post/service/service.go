package service

import (
	"context"
	"strings"

	"postboard/internal/common/clock"
	"postboard/internal/common/crypto"
	commonerrors "postboard/internal/common/errors"
	"postboard/internal/common/logger"
	"postboard/internal/observability/metrics"
	"postboard/internal/post/domain"
	"postboard/internal/post/repository"
)

type Service struct {
	repo        repository.Repository
	idGenerator crypto.IDGenerator
	clock       clock.Clock
	log         *logger.Logger
}

func NewService(
	repo repository.Repository,
	idGenerator crypto.IDGenerator,
	clk clock.Clock,
	log *logger.Logger,
) *Service {
	return &Service{
		repo:        repo,
		idGenerator: idGenerator,
		clock:       clk,
		log:         log,
	}
}

type CreateInput struct {
	Title       string
	Author      string
	Description string
}

// Create stamps the creation time server-side; the submitted form never
// carries a timestamp.
func (s *Service) Create(ctx context.Context, input CreateInput) (domain.Post, error) {
	if strings.TrimSpace(input.Title) == "" ||
		strings.TrimSpace(input.Author) == "" ||
		strings.TrimSpace(input.Description) == "" {
		s.log.WithFields(ctx, logger.Fields{
			"action": "create_post_validation_failed",
		}).Warn("create post failed: empty field")
		return domain.Post{}, commonerrors.ErrEmptyPostField
	}

	id, err := s.idGenerator.NewID()
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"action": "create_post_id_generation_failed",
		}).Errorf("create post failed: id generation error: %v", err)
		return domain.Post{}, err
	}

	post := domain.Post{
		ID:          domain.ID(id),
		Title:       input.Title,
		Author:      input.Author,
		Description: input.Description,
		CreatedAt:   s.clock.Now(),
	}

	if err := s.repo.Create(ctx, post); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"post_id": id,
			"action":  "create_post_failed",
		}).Errorf("create post failed: %v", err)
		return domain.Post{}, commonerrors.ErrDatabaseError.WithCause(err)
	}

	metrics.PostsCreatedTotal.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"post_id": id,
		"action":  "create_post_success",
	}).Info("post created")

	return post, nil
}

// List returns all posts newest first.
func (s *Service) List(ctx context.Context) ([]domain.Post, error) {
	posts, err := s.repo.ListAllDesc(ctx)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"action": "list_posts_failed",
		}).Errorf("list posts failed: %v", err)
		return nil, commonerrors.ErrDatabaseError.WithCause(err)
	}

	metrics.PostListingsTotal.Inc()
	return posts, nil
}
