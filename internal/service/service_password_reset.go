package service

import (
	"context"

	"github.com/MKhiriev/go-job-tracker/internal/logger"
	"github.com/MKhiriev/go-job-tracker/models"
)

// logPasswordResetNotifier records that a reset was issued. It never logs
// the token itself.
type logPasswordResetNotifier struct {
	logger *logger.Logger
}

func NewLogPasswordResetNotifier(logger *logger.Logger) PasswordResetNotifier {
	return &logPasswordResetNotifier{logger: logger}
}

func (n *logPasswordResetNotifier) NotifyPasswordReset(ctx context.Context, user models.User, token models.Token) error {
	event := logger.FromContext(ctx).Info().Int64("user_id", user.UserID)
	if token.Token != nil {
		if exp, err := token.Claims.GetExpirationTime(); err == nil && exp != nil {
			event = event.Time("expires_at", exp.Time)
		}
	}
	event.Msg("password reset token issued")

	return nil
}
