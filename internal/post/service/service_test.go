package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"postboard/internal/common/clock"
	commoncrypto "postboard/internal/common/crypto"
	commonerrors "postboard/internal/common/errors"
	"postboard/internal/common/logger"
	"postboard/internal/post/domain"
)

type mockPostRepo struct {
	createFunc      func(ctx context.Context, post domain.Post) error
	listAllDescFunc func(ctx context.Context) ([]domain.Post, error)
}

func (m *mockPostRepo) Create(ctx context.Context, post domain.Post) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, post)
	}
	return nil
}

func (m *mockPostRepo) ListAllDesc(ctx context.Context) ([]domain.Post, error) {
	if m.listAllDescFunc != nil {
		return m.listAllDescFunc(ctx)
	}
	return nil, nil
}

func newTestService(repo *mockPostRepo, clk clock.Clock) *Service {
	log, _ := logger.New("", "test", "info")
	return NewService(repo, commoncrypto.NewUUIDGenerator(), clk, log)
}

func TestCreate_StampsServerTime(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clk := clock.NewMockClock(now)

	var stored domain.Post
	repo := &mockPostRepo{
		createFunc: func(ctx context.Context, post domain.Post) error {
			stored = post
			return nil
		},
	}
	svc := newTestService(repo, clk)

	post, err := svc.Create(context.Background(), CreateInput{
		Title:       "First",
		Author:      "alice",
		Description: "hello",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if !post.CreatedAt.Equal(now) {
		t.Errorf("expected creation time %v, got %v", now, post.CreatedAt)
	}
	if stored.ID == "" {
		t.Error("expected a generated id")
	}
	if stored.Author != "alice" {
		t.Errorf("author changed: %q", stored.Author)
	}
}

func TestCreate_EmptyFieldRejected(t *testing.T) {
	repo := &mockPostRepo{
		createFunc: func(ctx context.Context, post domain.Post) error {
			t.Error("repository must not be reached for an invalid post")
			return nil
		},
	}
	svc := newTestService(repo, clock.NewMockClock(time.Now()))

	cases := []CreateInput{
		{Title: "", Author: "a", Description: "d"},
		{Title: "t", Author: "", Description: "d"},
		{Title: "t", Author: "a", Description: ""},
		{Title: "   ", Author: "a", Description: "d"},
	}
	for _, input := range cases {
		if _, err := svc.Create(context.Background(), input); !errors.Is(err, commonerrors.ErrEmptyPostField) {
			t.Errorf("input %+v: expected ErrEmptyPostField, got %v", input, err)
		}
	}
}

func TestList_PreservesRepositoryOrder(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ordered := []domain.Post{
		{ID: "c", Title: "C", CreatedAt: base.Add(2 * time.Minute)},
		{ID: "b", Title: "B", CreatedAt: base.Add(time.Minute)},
		{ID: "a", Title: "A", CreatedAt: base},
	}
	repo := &mockPostRepo{
		listAllDescFunc: func(ctx context.Context) ([]domain.Post, error) {
			return ordered, nil
		},
	}
	svc := newTestService(repo, clock.NewMockClock(base))

	posts, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(posts) != 3 {
		t.Fatalf("expected 3 posts, got %d", len(posts))
	}
	for i, want := range []string{"c", "b", "a"} {
		if string(posts[i].ID) != want {
			t.Errorf("position %d: expected %q, got %q", i, want, posts[i].ID)
		}
	}
}

func TestList_RepositoryError(t *testing.T) {
	repo := &mockPostRepo{
		listAllDescFunc: func(ctx context.Context) ([]domain.Post, error) {
			return nil, errors.New("connection lost")
		},
	}
	svc := newTestService(repo, clock.NewMockClock(time.Now()))

	if _, err := svc.List(context.Background()); !errors.Is(err, commonerrors.ErrDatabaseError) {
		t.Fatalf("expected ErrDatabaseError, got %v", err)
	}
}
