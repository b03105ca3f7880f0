package utils

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/MKhiriev/go-job-tracker/models"
	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenExpired is returned for a well-formed, correctly signed token
	// whose exp claim is in the past.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid covers every other reason a token is rejected.
	ErrTokenInvalid = errors.New("token invalid")
	// ErrTokenPurpose is returned when a valid token was minted for another use.
	ErrTokenPurpose = errors.New("token purpose mismatch")
)

// TokenParams are the inputs of GenerateJWTToken. All fields are required.
type TokenParams struct {
	Issuer   string
	UserID   int64
	Purpose  models.TokenPurpose
	Duration time.Duration
	SignKey  string
}

// GenerateJWTToken creates a signed HMAC-SHA256 JWT.
//
// The token carries the standard claims iss, sub (the user id as a decimal
// string), iat and exp, plus the private "pur" claim holding the purpose.
//
//	token, err := utils.GenerateJWTToken(utils.TokenParams{
//	    Issuer: "go-job-tracker", UserID: 42, Purpose: models.PurposeSession,
//	    Duration: time.Hour, SignKey: "secret",
//	})
func GenerateJWTToken(params TokenParams) (models.Token, error) {
	if params.Issuer == "" || params.Duration <= 0 || params.SignKey == "" || params.Purpose == "" {
		return models.Token{}, errors.New("invalid params for generating JWT Token")
	}

	now := time.Now()
	claims := &models.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    params.Issuer,
			Subject:   strconv.FormatInt(params.UserID, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(params.Duration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Purpose: params.Purpose,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(params.SignKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	return models.Token{
		Token:        token,
		SignedString: tokenString,
		UserID:       params.UserID,
		Purpose:      params.Purpose,
	}, nil
}

// ValidateAndParseJWTToken verifies signature (HS256 only), issuer, expiry and
// purpose of tokenString and extracts the user id from the subject.
//
// The returned error wraps ErrTokenExpired, ErrTokenPurpose or ErrTokenInvalid.
func ValidateAndParseJWTToken(tokenString, tokenSignKey, tokenIssuer string, purpose models.TokenPurpose) (models.Token, error) {
	claims := &models.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.Token{}, fmt.Errorf("%w: %w", ErrTokenExpired, err)
		}
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}

	if claims.Purpose != purpose {
		return models.Token{}, fmt.Errorf("%w: expected %q, got %q", ErrTokenPurpose, purpose, claims.Purpose)
	}

	userIDStr, err := token.Claims.GetSubject()
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: error getting subject from token: %w", ErrTokenInvalid, err)
	}
	if userIDStr == "" {
		return models.Token{}, fmt.Errorf("%w: empty subject", ErrTokenInvalid)
	}

	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil || userID <= 0 {
		return models.Token{}, fmt.Errorf("%w: subject %q is not a user id", ErrTokenInvalid, userIDStr)
	}

	return models.Token{Token: token, SignedString: tokenString, UserID: userID, Purpose: claims.Purpose}, nil
}
