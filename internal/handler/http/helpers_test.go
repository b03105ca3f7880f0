package http

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-job-tracker/internal/config"
	"github.com/MKhiriev/go-job-tracker/internal/logger"
	"github.com/MKhiriev/go-job-tracker/internal/mock"
	"github.com/MKhiriev/go-job-tracker/internal/service"
	"github.com/MKhiriev/go-job-tracker/models"
)

const (
	testUserID = int64(7)
	testToken  = "signed.session.token"
	testJobID  = "0192f1a4-7c3e-7b8a-9d2e-3f4a5b6c7d8e"
)

type testMocks struct {
	auth        *mock.MockAuthService
	jobs        *mock.MockJobService
	attachments *mock.MockAttachmentService
	appInfo     *mock.MockAppInfoService
}

func newTestHandler(t *testing.T, cfg config.Server) (*Handler, testMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	m := testMocks{
		auth:        mock.NewMockAuthService(ctrl),
		jobs:        mock.NewMockJobService(ctrl),
		attachments: mock.NewMockAttachmentService(ctrl),
		appInfo:     mock.NewMockAppInfoService(ctrl),
	}

	services := &service.Services{
		AuthService:       m.auth,
		JobService:        m.jobs,
		AttachmentService: m.attachments,
		AppInfoService:    m.appInfo,
	}
	return NewHandler(services, cfg, logger.Nop()), m
}

// newTestClient serves h through a real listener and returns a resty client
// pointed at it.
func newTestClient(t *testing.T, h *Handler) *resty.Client {
	t.Helper()

	srv := httptest.NewServer(h.Init())
	t.Cleanup(srv.Close)

	return resty.New().
		SetBaseURL(srv.URL).
		SetTimeout(5 * time.Second)
}

// expectAuthenticated makes the bearer token resolve to testUserID.
func expectAuthenticated(m testMocks) {
	m.auth.EXPECT().ParseToken(gomock.Any(), testToken).Return(models.Token{UserID: testUserID}, nil).AnyTimes()
}

func decodeBody[T any](t *testing.T, body []byte) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(body, &v), "body: %s", body)
	return v
}
