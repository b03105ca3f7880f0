package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-job-tracker/internal/config"
	"github.com/MKhiriev/go-job-tracker/internal/service"
	"github.com/MKhiriev/go-job-tracker/internal/utils"
	"github.com/MKhiriev/go-job-tracker/models"
)

func TestGetTokenFromAuthHeader(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		wantToken string
		wantErr   error
	}{
		{name: "bearer token", header: "Bearer abc.def.ghi", wantToken: "abc.def.ghi"},
		{name: "lower case scheme", header: "bearer abc", wantToken: "abc"},
		{name: "extra spaces around token", header: "Bearer   abc  ", wantToken: "abc"},
		{name: "empty header", header: "", wantErr: ErrEmptyAuthorizationHeader},
		{name: "token only", header: "abc.def.ghi", wantErr: ErrInvalidAuthorizationHeader},
		{name: "basic scheme", header: "Basic dXNlcjpwYXNz", wantErr: ErrInvalidAuthorizationHeader},
		{name: "scheme without token", header: "Bearer ", wantErr: ErrEmptyToken},
		{name: "scheme only", header: "Bearer", wantErr: ErrInvalidAuthorizationHeader},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := getTokenFromAuthHeader(tt.header)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, token)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantToken, token)
		})
	}
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		parseErr   error
		wantStatus int
		wantKind   string
	}{
		{name: "valid token", header: "Bearer good", wantStatus: http.StatusNoContent},
		{name: "missing header", wantStatus: http.StatusUnauthorized, wantKind: KindUnauthenticated},
		{name: "malformed header", header: "Token good", wantStatus: http.StatusUnauthorized, wantKind: KindInvalidToken},
		{name: "expired token", header: "Bearer good", parseErr: service.ErrTokenIsExpired, wantStatus: http.StatusUnauthorized, wantKind: KindExpiredToken},
		{name: "invalid token", header: "Bearer good", parseErr: service.ErrTokenIsInvalid, wantStatus: http.StatusUnauthorized, wantKind: KindInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newTestHandler(t, config.Server{})
			if tt.header == "Bearer good" {
				token := models.Token{UserID: testUserID}
				if tt.parseErr != nil {
					token = models.Token{}
				}
				m.auth.EXPECT().ParseToken(gomock.Any(), "good").Return(token, tt.parseErr)
			}

			var gotUserID int64
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUserID, _ = utils.GetUserIDFromContext(r.Context())
				w.WriteHeader(http.StatusNoContent)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/jobs", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			h.auth(next).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantKind == "" {
				assert.Equal(t, testUserID, gotUserID)
				return
			}
			body := decodeBody[models.Envelope](t, rr.Body.Bytes())
			assert.Equal(t, tt.wantKind, body.ErrorKind)
			assert.Zero(t, gotUserID)
		})
	}
}
