package service

import (
	"context"
	"errors"

	"postboard/internal/account/storage"
	commonerrors "postboard/internal/common/errors"
	"postboard/internal/common/logger"
	"postboard/internal/observability/metrics"
	userdomain "postboard/internal/user/domain"
	userrepo "postboard/internal/user/repository"
)

type Service struct {
	userRepo userrepo.Repository
	pictures storage.PictureStore
	log      *logger.Logger
}

func NewService(
	userRepo userrepo.Repository,
	pictures storage.PictureStore,
	log *logger.Logger,
) *Service {
	return &Service{
		userRepo: userRepo,
		pictures: pictures,
		log:      log,
	}
}

type UpdateInput struct {
	Username string
	Email    string

	// PictureData is empty when the form carried no file; the existing
	// picture reference is kept.
	PictureData     []byte
	PictureFilename string
}

// Update rewrites the user's profile. When a picture is supplied, the
// file is written to disk before the database reference moves to it, so
// a failed write leaves the old picture in place.
func (s *Service) Update(ctx context.Context, user userdomain.User, input UpdateInput) (userdomain.User, error) {
	image := user.Image
	if len(input.PictureData) > 0 {
		filename, err := s.pictures.Save(input.PictureData, input.PictureFilename)
		if err != nil {
			if errors.Is(err, commonerrors.ErrPictureTooLarge) {
				s.log.WithFields(ctx, logger.Fields{
					"user_id": string(user.ID),
					"action":  "account_update_picture_too_large",
				}).Warn("account update failed: picture too large")
				return userdomain.User{}, err
			}
			s.log.WithFields(ctx, logger.Fields{
				"user_id": string(user.ID),
				"action":  "account_update_picture_save_failed",
			}).Errorf("account update failed: picture save error: %v", err)
			return userdomain.User{}, commonerrors.ErrInternalError.WithCause(err)
		}
		image = filename
	}

	profile := userdomain.Profile{
		Username: input.Username,
		Email:    input.Email,
		Image:    image,
	}

	if err := s.userRepo.UpdateProfile(ctx, user.ID, profile); err != nil {
		if errors.Is(err, commonerrors.ErrEmailAlreadyExists) {
			s.log.WithFields(ctx, logger.Fields{
				"user_id": string(user.ID),
				"action":  "account_update_email_exists",
			}).Warn("account update failed: email already registered")
			return userdomain.User{}, err
		}
		if errors.Is(err, commonerrors.ErrUserNotFound) {
			return userdomain.User{}, err
		}
		s.log.WithFields(ctx, logger.Fields{
			"user_id": string(user.ID),
			"action":  "account_update_failed",
		}).Errorf("account update failed: %v", err)
		return userdomain.User{}, commonerrors.ErrDatabaseError.WithCause(err)
	}

	metrics.AccountUpdatesTotal.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"user_id": string(user.ID),
		"action":  "account_update_success",
	}).Info("account updated")

	user.Username = profile.Username
	user.Email = profile.Email
	user.Image = profile.Image
	return user, nil
}
