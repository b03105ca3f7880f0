package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-job-tracker/internal/app"
	"github.com/MKhiriev/go-job-tracker/internal/logger"
	"github.com/MKhiriev/go-job-tracker/internal/service"
	"github.com/MKhiriev/go-job-tracker/internal/store"
	"github.com/MKhiriev/go-job-tracker/internal/utils"
	"github.com/MKhiriev/go-job-tracker/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	registeredUser, err := h.services.AuthService.RegisterUser(ctx, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, registeredUser)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Int64("id", registeredUser.UserID).Msg("user registered")

	utils.WriteJSON(w, models.AuthResponse{
		Envelope: models.Envelope{Success: true, Message: app.MsgUserRegistered},
		Token:    token.SignedString,
		User:     &registeredUser,
	}, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var credentials models.Credentials
	if err := decodeJSON(w, r, &credentials); err != nil {
		writeError(w, r, err)
		return
	}

	foundUser, err := h.services.AuthService.Login(ctx, credentials)
	if err != nil {
		writeError(w, r, err)
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, foundUser)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Debug().Int64("id", foundUser.UserID).Msg("user successfully logged in")

	utils.WriteJSON(w, models.AuthResponse{
		Envelope: models.Envelope{Success: true, Message: app.MsgLoginSuccessful},
		Token:    token.SignedString,
		User:     &foundUser,
	}, http.StatusOK)
}

// forgotPassword answers the same way whether or not the email is registered.
func (h *Handler) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ForgotPasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.services.AuthService.ForgotPassword(r.Context(), req); err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.Envelope{Success: true, Message: app.MsgPasswordResetSent}, http.StatusOK)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.services.AuthService.GetUser(r.Context(), userID)
	if err != nil {
		writeError(w, r, subjectError(err))
		return
	}

	utils.WriteJSON(w, models.UserResponse{
		Envelope: models.Envelope{Success: true},
		User:     &user,
	}, http.StatusOK)
}

func (h *Handler) uploadProfilePhoto(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := userIDFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if !isMultipart(r) {
		writeError(w, r, service.ErrAttachmentMissing)
		return
	}

	form, err := parseMultipart(w, r, models.AttachmentProfilePhoto)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer form.RemoveAll()

	refs, err := h.storeUploads(ctx, form, models.AttachmentProfilePhoto)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if len(refs) == 0 {
		writeError(w, r, service.ErrAttachmentMissing)
		return
	}

	user, err := h.services.AuthService.UpdateProfilePhoto(ctx, userID, refs[0])
	if err != nil {
		h.discardUploads(ctx, refs)
		writeError(w, r, subjectError(err))
		return
	}

	utils.WriteJSON(w, models.UserResponse{
		Envelope: models.Envelope{Success: true, Message: app.MsgProfilePhotoUploaded},
		User:     &user,
	}, http.StatusOK)
}

// subjectError turns a missing user behind an authenticated request into an
// authentication failure; the token outlived its account.
func subjectError(err error) error {
	if errors.Is(err, store.ErrNoUserWasFound) {
		return fmt.Errorf("%w: %w", ErrUnknownTokenSubject, err)
	}
	return err
}
