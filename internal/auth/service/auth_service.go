package service

import (
	"context"
	"errors"
	"time"

	authrepo "postboard/internal/auth/repository"
	"postboard/internal/auth/session"
	"postboard/internal/common/clock"
	"postboard/internal/common/constants"
	commoncrypto "postboard/internal/common/crypto"
	commonerrors "postboard/internal/common/errors"
	"postboard/internal/common/logger"
	"postboard/internal/observability/metrics"
	userdomain "postboard/internal/user/domain"
	userrepo "postboard/internal/user/repository"
)

type AuthService struct {
	userRepo    userrepo.Repository
	revokedRepo authrepo.RevokedSessionRepository
	codec       *session.Codec
	hasher      commoncrypto.PasswordHasher
	idGenerator commoncrypto.IDGenerator
	clock       clock.Clock
	log         *logger.Logger
}

func NewAuthService(
	userRepo userrepo.Repository,
	revokedRepo authrepo.RevokedSessionRepository,
	codec *session.Codec,
	hasher commoncrypto.PasswordHasher,
	idGenerator commoncrypto.IDGenerator,
	clk clock.Clock,
	log *logger.Logger,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		revokedRepo: revokedRepo,
		codec:       codec,
		hasher:      hasher,
		idGenerator: idGenerator,
		clock:       clk,
		log:         log,
	}
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

type SessionResult struct {
	Token     string
	ExpiresAt time.Time
	User      userdomain.User
}

// Register creates the account but does not sign the user in; the caller
// sends them to the login page.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (userdomain.User, error) {
	s.log.WithFields(ctx, logger.Fields{
		"email":  input.Email,
		"action": "register_attempt",
	}).Info("register attempt")

	if _, err := s.userRepo.FindByEmail(ctx, input.Email); err == nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "register_email_exists",
		}).Warn("register failed: email already registered")
		metrics.RegistrationsDuplicateEmail.Inc()
		return userdomain.User{}, commonerrors.ErrEmailAlreadyExists
	} else if !errors.Is(err, commonerrors.ErrUserNotFound) {
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "register_lookup_failed",
		}).Errorf("register failed: %v", err)
		return userdomain.User{}, commonerrors.ErrDatabaseError.WithCause(err)
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "register_hash_failed",
		}).Errorf("register failed: password hash error: %v", err)
		return userdomain.User{}, err
	}

	id, err := s.idGenerator.NewID()
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "register_id_generation_failed",
		}).Errorf("register failed: id generation error: %v", err)
		return userdomain.User{}, err
	}

	user := userdomain.User{
		ID:           userdomain.ID(id),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		Image:        constants.DefaultProfilePicture,
		CreatedAt:    s.clock.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// A registration racing this one past the FindByEmail check
		// lands here through the unique constraint.
		if errors.Is(err, commonerrors.ErrEmailAlreadyExists) {
			s.log.WithFields(ctx, logger.Fields{
				"email":  input.Email,
				"action": "register_email_exists",
			}).Warn("register failed: email already registered")
			metrics.RegistrationsDuplicateEmail.Inc()
			return userdomain.User{}, commonerrors.ErrEmailAlreadyExists
		}
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "register_create_failed",
		}).Errorf("register failed: %v", err)
		return userdomain.User{}, commonerrors.ErrDatabaseError.WithCause(err)
	}

	metrics.RegistrationsTotal.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"email":   user.Email,
		"user_id": string(user.ID),
		"action":  "register_success",
	}).Info("register success")

	return user, nil
}

// Login verifies credentials and issues a session token. Unknown email
// and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (SessionResult, error) {
	s.log.WithFields(ctx, logger.Fields{
		"email":  input.Email,
		"action": "login_attempt",
	}).Info("login attempt")

	user, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, commonerrors.ErrUserNotFound) {
			s.log.WithFields(ctx, logger.Fields{
				"email":  input.Email,
				"action": "login_user_not_found",
			}).Warn("login failed: not found")
			metrics.LoginsFailed.Inc()
			return SessionResult{}, commonerrors.ErrInvalidCredentials
		}
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "login_fetch_failed",
		}).Errorf("login failed: %v", err)
		return SessionResult{}, commonerrors.ErrDatabaseError.WithCause(err)
	}

	if err := s.hasher.Compare(user.PasswordHash, input.Password); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "login_invalid_password",
		}).Warn("login failed: invalid password")
		metrics.LoginsFailed.Inc()
		return SessionResult{}, commonerrors.ErrInvalidCredentials
	}

	token, claims, err := s.codec.Issue(string(user.ID), user.Username)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":   input.Email,
			"user_id": string(user.ID),
			"action":  "login_token_issue_failed",
		}).Errorf("login failed: token issue error: %v", err)
		return SessionResult{}, err
	}

	metrics.LoginsTotal.Inc()
	metrics.SessionsIssued.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"email":   user.Email,
		"user_id": string(user.ID),
		"action":  "login_success",
	}).Info("login success")

	return SessionResult{
		Token:     token,
		ExpiresAt: claims.ExpireAt,
		User:      user,
	}, nil
}

// Logout revokes the session's jti so a replayed copy of the token no
// longer authenticates.
func (s *AuthService) Logout(ctx context.Context, claims session.Claims) error {
	if claims.JTI == "" {
		return nil
	}

	if err := s.revokedRepo.Revoke(ctx, claims.JTI, claims.UserID, claims.ExpireAt); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"jti":     claims.JTI,
			"user_id": claims.UserID,
			"action":  "logout_revoke_failed",
		}).Errorf("logout failed: %v", err)
		return commonerrors.ErrDatabaseError.WithCause(err)
	}

	metrics.SessionsRevoked.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"jti":     claims.JTI,
		"user_id": claims.UserID,
		"action":  "session_revoked",
	}).Info("session revoked")
	return nil
}
