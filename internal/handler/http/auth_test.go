// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-job-tracker/internal/app"
	"github.com/MKhiriev/go-job-tracker/internal/config"
	"github.com/MKhiriev/go-job-tracker/internal/service"
	"github.com/MKhiriev/go-job-tracker/internal/store"
	"github.com/MKhiriev/go-job-tracker/internal/validators"
	"github.com/MKhiriev/go-job-tracker/models"
)

func TestRegister(t *testing.T) {
	req := models.RegisterRequest{Name: "Ann", Email: "ann@example.com", Password: "secret1"}
	user := models.User{UserID: testUserID, Name: "Ann", Email: "ann@example.com", PasswordHash: "$2a$10$hash"}

	tests := []struct {
		name       string
		setup      func(m testMocks)
		wantStatus int
		wantKind   string
		wantMsg    string
	}{
		{
			name: "registered",
			setup: func(m testMocks) {
				m.auth.EXPECT().RegisterUser(gomock.Any(), req).Return(user, nil)
				m.auth.EXPECT().CreateToken(gomock.Any(), user).Return(models.Token{SignedString: testToken}, nil)
			},
			wantStatus: http.StatusCreated,
			wantMsg:    app.MsgUserRegistered,
		},
		{
			name: "duplicate email",
			setup: func(m testMocks) {
				m.auth.EXPECT().RegisterUser(gomock.Any(), req).Return(models.User{}, store.ErrEmailAlreadyExists)
			},
			wantStatus: http.StatusBadRequest,
			wantKind:   KindDuplicateIdentity,
			wantMsg:    app.MsgEmailTaken,
		},
		{
			name: "missing fields",
			setup: func(m testMocks) {
				m.auth.EXPECT().RegisterUser(gomock.Any(), req).
					Return(models.User{}, &validators.InputError{Message: validators.MsgRegisterFieldsRequired})
			},
			wantStatus: http.StatusBadRequest,
			wantKind:   KindInvalidInput,
			wantMsg:    validators.MsgRegisterFieldsRequired,
		},
		{
			name: "token creation fails",
			setup: func(m testMocks) {
				m.auth.EXPECT().RegisterUser(gomock.Any(), req).Return(user, nil)
				m.auth.EXPECT().CreateToken(gomock.Any(), user).Return(models.Token{}, service.ErrTokenCreationFailed)
			},
			wantStatus: http.StatusInternalServerError,
			wantKind:   KindServerFault,
			wantMsg:    app.MsgServerFault,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newTestHandler(t, config.Server{})
			tt.setup(m)
			client := newTestClient(t, h)

			resp, err := client.R().SetBody(req).Post("/api/auth/register")
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode())

			body := decodeBody[models.AuthResponse](t, resp.Body())
			assert.Equal(t, tt.wantKind == "", body.Success)
			assert.Equal(t, tt.wantKind, body.ErrorKind)
			assert.Equal(t, tt.wantMsg, body.Message)

			if tt.wantKind == "" {
				assert.Equal(t, testToken, body.Token)
				require.NotNil(t, body.User)
				assert.Equal(t, testUserID, body.User.UserID)
				assert.NotContains(t, string(resp.Body()), "$2a$10$hash")
			}
		})
	}
}

func TestRegister_MalformedBody(t *testing.T) {
	h, _ := newTestHandler(t, config.Server{})
	client := newTestClient(t, h)

	resp, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(`{"name":`).
		Post("/api/auth/register")
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode())
	body := decodeBody[models.Envelope](t, resp.Body())
	assert.Equal(t, KindInvalidInput, body.ErrorKind)
	assert.Equal(t, app.MsgInvalidBody, body.Message)
}

func TestLogin(t *testing.T) {
	credentials := models.Credentials{Email: "ann@example.com", Password: "secret1"}
	user := models.User{UserID: testUserID, Email: "ann@example.com"}

	t.Run("success", func(t *testing.T) {
		h, m := newTestHandler(t, config.Server{})
		m.auth.EXPECT().Login(gomock.Any(), credentials).Return(user, nil)
		m.auth.EXPECT().CreateToken(gomock.Any(), user).Return(models.Token{SignedString: testToken}, nil)
		client := newTestClient(t, h)

		resp, err := client.R().SetBody(credentials).Post("/api/auth/login")
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode())
		body := decodeBody[models.AuthResponse](t, resp.Body())
		assert.True(t, body.Success)
		assert.Equal(t, app.MsgLoginSuccessful, body.Message)
		assert.Equal(t, testToken, body.Token)
	})

	t.Run("invalid credentials are uniform", func(t *testing.T) {
		h, m := newTestHandler(t, config.Server{})
		m.auth.EXPECT().Login(gomock.Any(), credentials).Return(models.User{}, service.ErrInvalidCredentials)
		client := newTestClient(t, h)

		resp, err := client.R().SetBody(credentials).Post("/api/auth/login")
		require.NoError(t, err)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode())
		body := decodeBody[models.Envelope](t, resp.Body())
		assert.False(t, body.Success)
		assert.Equal(t, KindInvalidCredentials, body.ErrorKind)
		assert.Equal(t, app.MsgInvalidCredentials, body.Message)
	})

	t.Run("empty body is validated", func(t *testing.T) {
		h, m := newTestHandler(t, config.Server{})
		m.auth.EXPECT().Login(gomock.Any(), models.Credentials{}).
			Return(models.User{}, &validators.InputError{Message: validators.MsgLoginFieldsRequired})
		client := newTestClient(t, h)

		resp, err := client.R().Post("/api/auth/login")
		require.NoError(t, err)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode())
		body := decodeBody[models.Envelope](t, resp.Body())
		assert.Equal(t, validators.MsgLoginFieldsRequired, body.Message)
	})
}

func TestForgotPassword(t *testing.T) {
	req := models.ForgotPasswordRequest{Email: "nobody@example.com"}

	h, m := newTestHandler(t, config.Server{})
	m.auth.EXPECT().ForgotPassword(gomock.Any(), req).Return(nil)
	client := newTestClient(t, h)

	resp, err := client.R().SetBody(req).Post("/api/auth/forgot-password")
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode())
	body := decodeBody[models.Envelope](t, resp.Body())
	assert.True(t, body.Success)
	assert.Equal(t, app.MsgPasswordResetSent, body.Message)
}

func TestMe(t *testing.T) {
	t.Run("returns the authenticated user", func(t *testing.T) {
		h, m := newTestHandler(t, config.Server{})
		expectAuthenticated(m)
		m.auth.EXPECT().GetUser(gomock.Any(), testUserID).Return(models.User{UserID: testUserID, Name: "Ann"}, nil)
		client := newTestClient(t, h)

		resp, err := client.R().SetAuthToken(testToken).Get("/api/auth/me")
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode())
		body := decodeBody[models.UserResponse](t, resp.Body())
		require.NotNil(t, body.User)
		assert.Equal(t, "Ann", body.User.Name)
	})

	t.Run("without token", func(t *testing.T) {
		h, _ := newTestHandler(t, config.Server{})
		client := newTestClient(t, h)

		resp, err := client.R().Get("/api/auth/me")
		require.NoError(t, err)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode())
		body := decodeBody[models.Envelope](t, resp.Body())
		assert.Equal(t, KindUnauthenticated, body.ErrorKind)
	})

	t.Run("user no longer exists", func(t *testing.T) {
		h, m := newTestHandler(t, config.Server{})
		expectAuthenticated(m)
		m.auth.EXPECT().GetUser(gomock.Any(), testUserID).Return(models.User{}, store.ErrNoUserWasFound)
		client := newTestClient(t, h)

		resp, err := client.R().SetAuthToken(testToken).Get("/api/auth/me")
		require.NoError(t, err)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode())
		body := decodeBody[models.Envelope](t, resp.Body())
		assert.Equal(t, KindUnauthenticated, body.ErrorKind)
		assert.Equal(t, app.MsgNotAuthenticated, body.Message)
	})
}

func TestUploadProfilePhoto(t *testing.T) {
	photo := []byte("\x89PNG\r\n\x1a\nfake image")
	ref := models.AttachmentRef{Field: models.AttachmentProfilePhoto, Key: "profile-photos/a.png", Size: int64(len(photo)), ContentType: "image/png"}

	t.Run("stored and linked", func(t *testing.T) {
		h, m := newTestHandler(t, config.Server{})
		expectAuthenticated(m)
		m.attachments.EXPECT().Store(gomock.Any(), models.AttachmentProfilePhoto, "me.png", gomock.Any()).Return(ref, nil)
		m.auth.EXPECT().UpdateProfilePhoto(gomock.Any(), testUserID, ref).
			Return(models.User{UserID: testUserID, ProfilePhoto: ref.Key}, nil)
		client := newTestClient(t, h)

		resp, err := client.R().
			SetAuthToken(testToken).
			SetFileReader("profilePhoto", "me.png", bytes.NewReader(photo)).
			Post("/api/auth/upload-profile")
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode())
		body := decodeBody[models.UserResponse](t, resp.Body())
		assert.Equal(t, app.MsgProfilePhotoUploaded, body.Message)
		require.NotNil(t, body.User)
		assert.Equal(t, ref.Key, body.User.ProfilePhoto)
	})

	t.Run("no file", func(t *testing.T) {
		h, m := newTestHandler(t, config.Server{})
		expectAuthenticated(m)
		client := newTestClient(t, h)

		resp, err := client.R().
			SetAuthToken(testToken).
			SetFormData(map[string]string{"name": "Ann"}).
			Post("/api/auth/upload-profile")
		require.NoError(t, err)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode())
		body := decodeBody[models.Envelope](t, resp.Body())
		assert.Equal(t, app.MsgSelectFile, body.Message)
	})

	t.Run("not an image", func(t *testing.T) {
		h, m := newTestHandler(t, config.Server{})
		expectAuthenticated(m)
		m.attachments.EXPECT().Store(gomock.Any(), models.AttachmentProfilePhoto, "me.txt", gomock.Any()).
			Return(models.AttachmentRef{}, service.ErrAttachmentType)
		client := newTestClient(t, h)

		resp, err := client.R().
			SetAuthToken(testToken).
			SetFileReader("profilePhoto", "me.txt", bytes.NewReader([]byte("plain text"))).
			Post("/api/auth/upload-profile")
		require.NoError(t, err)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode())
		body := decodeBody[models.Envelope](t, resp.Body())
		assert.Equal(t, KindInvalidInput, body.ErrorKind)
		assert.Equal(t, app.MsgPhotoMustBeImage, body.Message)
	})

	t.Run("unexpected file field", func(t *testing.T) {
		h, m := newTestHandler(t, config.Server{})
		expectAuthenticated(m)
		client := newTestClient(t, h)

		resp, err := client.R().
			SetAuthToken(testToken).
			SetFileReader("resume", "cv.pdf", bytes.NewReader([]byte("%PDF-1.4"))).
			Post("/api/auth/upload-profile")
		require.NoError(t, err)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode())
		body := decodeBody[models.Envelope](t, resp.Body())
		assert.Equal(t, app.MsgUnexpectedFile, body.Message)
	})

	t.Run("stored file is discarded when linking fails", func(t *testing.T) {
		h, m := newTestHandler(t, config.Server{})
		expectAuthenticated(m)
		m.attachments.EXPECT().Store(gomock.Any(), models.AttachmentProfilePhoto, "me.png", gomock.Any()).Return(ref, nil)
		m.auth.EXPECT().UpdateProfilePhoto(gomock.Any(), testUserID, ref).Return(models.User{}, errors.New("db down"))
		m.attachments.EXPECT().Discard(gomock.Any(), ref)
		client := newTestClient(t, h)

		resp, err := client.R().
			SetAuthToken(testToken).
			SetFileReader("profilePhoto", "me.png", bytes.NewReader(photo)).
			Post("/api/auth/upload-profile")
		require.NoError(t, err)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode())
		body := decodeBody[models.Envelope](t, resp.Body())
		assert.Equal(t, app.MsgServerFault, body.Message)
		assert.NotContains(t, string(resp.Body()), "db down")
	})

	t.Run("account deleted after token was issued", func(t *testing.T) {
		h, m := newTestHandler(t, config.Server{})
		expectAuthenticated(m)
		m.attachments.EXPECT().Store(gomock.Any(), models.AttachmentProfilePhoto, "me.png", gomock.Any()).Return(ref, nil)
		m.auth.EXPECT().UpdateProfilePhoto(gomock.Any(), testUserID, ref).Return(models.User{}, store.ErrNoUserWasFound)
		m.attachments.EXPECT().Discard(gomock.Any(), ref)
		client := newTestClient(t, h)

		resp, err := client.R().
			SetAuthToken(testToken).
			SetFileReader("profilePhoto", "me.png", bytes.NewReader(photo)).
			Post("/api/auth/upload-profile")
		require.NoError(t, err)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode())
		body := decodeBody[models.Envelope](t, resp.Body())
		assert.Equal(t, KindUnauthenticated, body.ErrorKind)
	})
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	h, m := newTestHandler(t, config.Server{})
	unknown := models.Credentials{Email: "nobody@example.com", Password: "secret1"}
	wrongPassword := models.Credentials{Email: "ann@example.com", Password: "wrong"}
	m.auth.EXPECT().Login(gomock.Any(), unknown).Return(models.User{}, service.ErrInvalidCredentials)
	m.auth.EXPECT().Login(gomock.Any(), wrongPassword).Return(models.User{}, service.ErrInvalidCredentials)
	client := newTestClient(t, h)

	first, err := client.R().SetBody(unknown).Post("/api/auth/login")
	require.NoError(t, err)
	second, err := client.R().SetBody(wrongPassword).Post("/api/auth/login")
	require.NoError(t, err)

	assert.Equal(t, first.StatusCode(), second.StatusCode())
	assert.Equal(t, first.Body(), second.Body())
}
