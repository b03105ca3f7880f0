package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-job-tracker/internal/logger"
	"github.com/MKhiriev/go-job-tracker/internal/utils"
	"github.com/MKhiriev/go-job-tracker/models"
)

func TestLogPasswordResetNotifier_NeverLogsToken(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewLoggerWithWriter("test", &buf)
	ctx := log.WithContext(context.Background())

	token, err := utils.GenerateJWTToken(utils.TokenParams{
		Issuer:   "go-job-tracker",
		UserID:   12,
		Purpose:  models.PurposePasswordReset,
		Duration: time.Minute,
		SignKey:  "key",
	})
	require.NoError(t, err)

	notifier := NewLogPasswordResetNotifier(logger.Nop())
	require.NoError(t, notifier.NotifyPasswordReset(ctx, models.User{UserID: 12}, token))

	out := buf.String()
	assert.Contains(t, out, `"user_id":12`)
	assert.Contains(t, out, "expires_at")
	assert.NotContains(t, out, token.SignedString)
}
