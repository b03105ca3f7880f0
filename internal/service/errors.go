package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrInvalidCredentials  = errors.New("invalid credentials")

	ErrTokenCreationFailed = errors.New("token creation failed")
	ErrTokenIsExpired      = errors.New("token is expired")
	ErrTokenIsInvalid      = errors.New("token is invalid")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")

	ErrAttachmentMissing      = errors.New("no file was uploaded")
	ErrAttachmentTooLarge     = errors.New("file too large")
	ErrAttachmentType         = errors.New("file type is not allowed")
	ErrUnknownAttachmentField = errors.New("unknown attachment field")
)
