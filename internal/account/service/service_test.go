package service

import (
	"context"
	"errors"
	"testing"

	commonerrors "postboard/internal/common/errors"
	"postboard/internal/common/logger"
	userdomain "postboard/internal/user/domain"
)

type mockUserRepo struct {
	createFunc        func(ctx context.Context, user userdomain.User) error
	findByEmailFunc   func(ctx context.Context, email string) (userdomain.User, error)
	findByIDFunc      func(ctx context.Context, id userdomain.ID) (userdomain.User, error)
	updateProfileFunc func(ctx context.Context, id userdomain.ID, profile userdomain.Profile) error
}

func (m *mockUserRepo) Create(ctx context.Context, user userdomain.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	return nil
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (userdomain.User, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return userdomain.User{}, commonerrors.ErrUserNotFound
}

func (m *mockUserRepo) FindByID(ctx context.Context, id userdomain.ID) (userdomain.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return userdomain.User{}, commonerrors.ErrUserNotFound
}

func (m *mockUserRepo) UpdateProfile(ctx context.Context, id userdomain.ID, profile userdomain.Profile) error {
	if m.updateProfileFunc != nil {
		return m.updateProfileFunc(ctx, id, profile)
	}
	return nil
}

type mockPictureStore struct {
	saveFunc func(data []byte, originalFilename string) (string, error)
}

func (m *mockPictureStore) Save(data []byte, originalFilename string) (string, error) {
	if m.saveFunc != nil {
		return m.saveFunc(data, originalFilename)
	}
	return "deadbeefdeadbeef.jpg", nil
}

func newTestService(users *mockUserRepo, pictures *mockPictureStore) *Service {
	log, _ := logger.New("", "test", "info")
	return NewService(users, pictures, log)
}

func existingUser() userdomain.User {
	return userdomain.User{
		ID:       "user-1",
		Username: "alice",
		Email:    "alice@example.com",
		Image:    "default.jpg",
	}
}

func TestUpdate_WithoutPictureKeepsImage(t *testing.T) {
	var saved userdomain.Profile
	users := &mockUserRepo{
		updateProfileFunc: func(ctx context.Context, id userdomain.ID, profile userdomain.Profile) error {
			saved = profile
			return nil
		},
	}
	pictures := &mockPictureStore{
		saveFunc: func(data []byte, originalFilename string) (string, error) {
			t.Error("picture store must not be touched without an upload")
			return "", nil
		},
	}
	svc := newTestService(users, pictures)

	updated, err := svc.Update(context.Background(), existingUser(), UpdateInput{
		Username: "alice2",
		Email:    "alice@example.com",
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	if saved.Image != "default.jpg" {
		t.Errorf("expected image reference kept, got %q", saved.Image)
	}
	if updated.Username != "alice2" {
		t.Errorf("expected username updated, got %q", updated.Username)
	}
}

func TestUpdate_WithPictureStoresAndReferences(t *testing.T) {
	var saved userdomain.Profile
	users := &mockUserRepo{
		updateProfileFunc: func(ctx context.Context, id userdomain.ID, profile userdomain.Profile) error {
			saved = profile
			return nil
		},
	}
	pictureSaved := false
	pictures := &mockPictureStore{
		saveFunc: func(data []byte, originalFilename string) (string, error) {
			pictureSaved = true
			return "cafebabecafebabe.png", nil
		},
	}
	svc := newTestService(users, pictures)

	updated, err := svc.Update(context.Background(), existingUser(), UpdateInput{
		Username:        "alice",
		Email:           "alice@example.com",
		PictureData:     []byte("png bytes"),
		PictureFilename: "new.png",
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	if !pictureSaved {
		t.Fatal("picture was not stored")
	}
	if saved.Image != "cafebabecafebabe.png" {
		t.Errorf("expected new picture referenced, got %q", saved.Image)
	}
	if updated.Image != "cafebabecafebabe.png" {
		t.Errorf("returned user carries old image %q", updated.Image)
	}
}

func TestUpdate_PictureSaveFailureLeavesProfileUntouched(t *testing.T) {
	users := &mockUserRepo{
		updateProfileFunc: func(ctx context.Context, id userdomain.ID, profile userdomain.Profile) error {
			t.Error("profile must not be updated when the picture write fails")
			return nil
		},
	}
	pictures := &mockPictureStore{
		saveFunc: func(data []byte, originalFilename string) (string, error) {
			return "", errors.New("disk full")
		},
	}
	svc := newTestService(users, pictures)

	_, err := svc.Update(context.Background(), existingUser(), UpdateInput{
		Username:        "alice",
		Email:           "alice@example.com",
		PictureData:     []byte("png bytes"),
		PictureFilename: "new.png",
	})
	if !errors.Is(err, commonerrors.ErrInternalError) {
		t.Fatalf("expected ErrInternalError, got %v", err)
	}
}

func TestUpdate_DuplicateEmail(t *testing.T) {
	users := &mockUserRepo{
		updateProfileFunc: func(ctx context.Context, id userdomain.ID, profile userdomain.Profile) error {
			return commonerrors.ErrEmailAlreadyExists
		},
	}
	svc := newTestService(users, &mockPictureStore{})

	_, err := svc.Update(context.Background(), existingUser(), UpdateInput{
		Username: "alice",
		Email:    "taken@example.com",
	})
	if !errors.Is(err, commonerrors.ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}
