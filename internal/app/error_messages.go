// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the client-facing message strings of the job tracker
// API.
//
// Success messages go into the "message" field of success envelopes; the
// rest describe failures. Per-field validation messages live with their
// rules in internal/validators.
package app

// Success messages.
const (
	MsgUserRegistered       = "User registered successfully"
	MsgLoginSuccessful      = "Login successful"
	MsgPasswordResetSent    = "Password reset instructions have been sent to your email address"
	MsgProfilePhotoUploaded = "Profile photo uploaded successfully"
	MsgJobCreated           = "Job application created successfully"
	MsgJobUpdated           = "Job application updated successfully"
	MsgJobDeleted           = "Job application deleted successfully"
)

// Failure messages.
const (
	// MsgInvalidCredentials is shared by unknown emails and wrong passwords.
	MsgInvalidCredentials = "Invalid credentials"

	MsgUserNotFound     = "User not found"
	MsgJobNotFound      = "Job not found"
	MsgRouteNotFound    = "Route not found"
	MsgEmailTaken       = "User already exists"
	MsgValidationFailed = "Validation failed"
	MsgInvalidBody      = "Invalid request body"

	MsgNotAuthenticated = "Not authorized to access this route"
	MsgInvalidToken     = "Invalid token"
	MsgTokenExpired     = "Token expired"

	MsgSelectFile        = "Please select a file to upload"
	MsgFileTooLarge      = "File too large"
	MsgPhotoMustBeImage  = "Profile photo must be an image file"
	MsgResumeMustBeDoc   = "Resume must be a PDF or DOC file"
	MsgUnexpectedFile    = "Unexpected file field"
	MsgTooManyRequests   = "Too many requests, please try again later"
	MsgServiceOverloaded = "The server took too long to respond"

	// MsgServerFault never carries detail; the cause is logged instead.
	MsgServerFault = "Server error"
)
