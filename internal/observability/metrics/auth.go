package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RegistrationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "registrations_total",
			Help: "Total number of successful registrations",
		},
	)

	RegistrationsDuplicateEmail = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "registrations_duplicate_email_total",
			Help: "Total number of registrations rejected for an existing email",
		},
	)

	LoginsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "logins_total",
			Help: "Total number of successful logins",
		},
	)

	LoginsFailed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "logins_failed_total",
			Help: "Total number of failed login attempts",
		},
	)

	SessionsIssued = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sessions_issued_total",
			Help: "Total number of session tokens issued",
		},
	)

	SessionsRevoked = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sessions_revoked_total",
			Help: "Total number of session tokens revoked",
		},
	)

	RevokedSessionsCleanupDeleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "revoked_sessions_cleanup_deleted_total",
			Help: "Total number of expired revoked sessions deleted during cleanup",
		},
	)

	AccountUpdatesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "account_updates_total",
			Help: "Total number of successful account updates",
		},
	)

	ProfilePicturesStored = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "profile_pictures_stored_total",
			Help: "Total number of profile pictures written to storage",
		},
	)
)
