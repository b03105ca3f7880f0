// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/go-job-tracker/internal/config"
	"github.com/MKhiriev/go-job-tracker/internal/logger"
	"github.com/MKhiriev/go-job-tracker/internal/store"
	"github.com/MKhiriev/go-job-tracker/internal/utils"
	"github.com/MKhiriev/go-job-tracker/internal/validators"
	"github.com/MKhiriev/go-job-tracker/models"
)

// dummyPassword is hashed once per service so logins for unknown emails
// spend the same bcrypt work as logins with a wrong password.
const dummyPassword = "job-tracker-dummy-password"

// authService is the concrete implementation of AuthService.
// It handles registration, credential verification, password reset tokens
// and the JWT session lifecycle on top of a UserRepository.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// attachments removes replaced profile photos.
	attachments AttachmentService

	// notifier receives password reset tokens.
	notifier PasswordResetNotifier

	validator validators.Validator

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a session token remains valid.
	tokenDuration time.Duration

	// resetTokenDuration controls how long a password reset token remains valid.
	resetTokenDuration time.Duration

	bcryptCost int
	dummyHash  []byte

	now func() time.Time

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given UserRepository
// and populated with security parameters from cfg. A bcrypt cost outside the
// library bounds falls back to bcrypt.DefaultCost.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(
	userRepository store.UserRepository,
	attachments AttachmentService,
	notifier PasswordResetNotifier,
	cfg config.App,
	logger *logger.Logger,
) AuthService {
	cost := cfg.BcryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	dummyHash, err := bcrypt.GenerateFromPassword([]byte(dummyPassword), cost)
	if err != nil {
		logger.Err(err).Str("func", "NewAuthService").Msg("error hashing dummy password")
	}

	return &authService{
		userRepository:     userRepository,
		attachments:        attachments,
		notifier:           notifier,
		validator:          validators.NewAuthValidator(),
		tokenSignKey:       cfg.TokenSignKey,
		tokenIssuer:        cfg.TokenIssuer,
		tokenDuration:      cfg.TokenDuration,
		resetTokenDuration: cfg.ResetTokenDuration,
		bcryptCost:         cost,
		dummyHash:          dummyHash,
		now:                func() time.Time { return time.Now().UTC() },
		logger:             logger,
	}
}

// RegisterUser creates a new user account.
//
// Name and email are trimmed and the email lower-cased before validation.
// The password is stored as a bcrypt hash.
//
// Returns the persisted user (with a server-assigned UserID) or:
//   - *validators.InputError if name, email or password is missing.
//   - *validators.ValidationError if a field breaks its shape rules.
//   - store.ErrEmailAlreadyExists (wrapped) if the email is taken.
func (a *authService) RegisterUser(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	req.Name = strings.TrimSpace(req.Name)
	req.Email = normalizeEmail(req.Email)

	if err := a.validator.Validate(ctx, req); err != nil {
		log.Debug().Err(err).Msg("invalid registration data provided")
		return models.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), a.bcryptCost)
	if err != nil {
		log.Err(err).Str("func", "*authService.RegisterUser").Msg("error hashing password")
		return models.User{}, fmt.Errorf("error hashing password: %w", err)
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		CreatedAt:    a.now(),
	})
	if err != nil {
		log.Err(err).Str("email", req.Email).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registeredUser, nil
}

// Login authenticates an existing user.
//
// Unknown emails and wrong passwords both yield ErrInvalidCredentials. For an
// unknown email one comparison against a dummy hash is still performed.
func (a *authService) Login(ctx context.Context, credentials models.Credentials) (models.User, error) {
	log := logger.FromContext(ctx)

	credentials.Email = normalizeEmail(credentials.Email)
	if err := a.validator.Validate(ctx, credentials); err != nil {
		return models.User{}, err
	}

	foundUser, err := a.userRepository.FindUserByEmail(ctx, credentials.Email)
	if errors.Is(err, store.ErrNoUserWasFound) {
		bcrypt.CompareHashAndPassword(a.dummyHash, []byte(credentials.Password))
		log.Info().Msg("login for unknown email")
		return models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		log.Err(err).Msg("user search by email failed")
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(foundUser.PasswordHash), []byte(credentials.Password)); err != nil {
		log.Info().Int64("id", foundUser.UserID).Msg("wrong password")
		return models.User{}, ErrInvalidCredentials
	}

	return foundUser, nil
}

// CreateToken issues a signed session JWT for the given user.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	return a.createToken(user.UserID, models.PurposeSession, a.tokenDuration)
}

// ParseToken validates a raw session JWT. Expired tokens yield
// ErrTokenIsExpired, every other rejection ErrTokenIsInvalid.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer, models.PurposeSession)
	if errors.Is(err, utils.ErrTokenExpired) {
		return models.Token{}, ErrTokenIsExpired
	}
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Msg("token rejected")
		return models.Token{}, ErrTokenIsInvalid
	}

	return token, nil
}

// ForgotPassword mints a reset token for a registered email and hands it to
// the notifier. Unknown emails succeed silently, and so does a failed
// delivery, so the outcome never tells a caller whether an email exists.
func (a *authService) ForgotPassword(ctx context.Context, req models.ForgotPasswordRequest) error {
	log := logger.FromContext(ctx)

	req.Email = normalizeEmail(req.Email)
	if err := a.validator.Validate(ctx, req); err != nil {
		return err
	}

	user, err := a.userRepository.FindUserByEmail(ctx, req.Email)
	if errors.Is(err, store.ErrNoUserWasFound) {
		log.Info().Msg("password reset requested for unknown email")
		return nil
	}
	if err != nil {
		log.Err(err).Msg("user search by email failed")
		return fmt.Errorf("user search by email failed: %w", err)
	}

	token, err := a.createToken(user.UserID, models.PurposePasswordReset, a.resetTokenDuration)
	if err != nil {
		return err
	}

	if err = a.notifier.NotifyPasswordReset(ctx, user, token); err != nil {
		log.Err(err).Int64("id", user.UserID).Msg("error sending password reset")
	}

	return nil
}

func (a *authService) GetUser(ctx context.Context, userID int64) (models.User, error) {
	user, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return models.User{}, fmt.Errorf("error getting user: %w", err)
	}
	return user, nil
}

// UpdateProfilePhoto links a stored photo to the account and removes the
// previous one once the new key is saved.
func (a *authService) UpdateProfilePhoto(ctx context.Context, userID int64, photo models.AttachmentRef) (models.User, error) {
	if photo.Field != models.AttachmentProfilePhoto || photo.Key == "" {
		return models.User{}, ErrInvalidDataProvided
	}

	current, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return models.User{}, fmt.Errorf("error getting user: %w", err)
	}

	updated, err := a.userRepository.UpdateProfilePhoto(ctx, userID, photo.Key)
	if err != nil {
		return models.User{}, fmt.Errorf("error updating profile photo: %w", err)
	}

	if current.ProfilePhoto != "" && current.ProfilePhoto != photo.Key {
		a.attachments.Discard(ctx, models.AttachmentRef{Field: models.AttachmentProfilePhoto, Key: current.ProfilePhoto})
	}

	return updated, nil
}

func (a *authService) createToken(userID int64, purpose models.TokenPurpose, duration time.Duration) (models.Token, error) {
	token, err := utils.GenerateJWTToken(utils.TokenParams{
		Issuer:   a.tokenIssuer,
		UserID:   userID,
		Purpose:  purpose,
		Duration: duration,
		SignKey:  a.tokenSignKey,
	})
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
