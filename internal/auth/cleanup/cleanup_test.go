package cleanup

import (
	"context"
	"errors"
	"testing"
	"time"

	"postboard/internal/common/logger"
)

type mockDeleter struct {
	deleteExpiredFunc func(ctx context.Context) (int64, error)
}

func (m *mockDeleter) DeleteExpired(ctx context.Context) (int64, error) {
	if m.deleteExpiredFunc != nil {
		return m.deleteExpiredFunc(ctx)
	}
	return 0, nil
}

func TestStartCleanup_StopsOnCancel(t *testing.T) {
	repo := &mockDeleter{
		deleteExpiredFunc: func(ctx context.Context) (int64, error) {
			return 3, nil
		},
	}

	log, _ := logger.New("", "test", "info")
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		startCleanup(ctx, repo, log)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("cleanup goroutine did not stop after cancel")
	}
}

func TestStartCleanup_SurvivesErrors(t *testing.T) {
	repo := &mockDeleter{
		deleteExpiredFunc: func(ctx context.Context) (int64, error) {
			return 0, errors.New("cleanup error")
		},
	}

	log, _ := logger.New("", "test", "info")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		startCleanup(ctx, repo, log)
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("cleanup goroutine did not stop after cancel")
	}
}
