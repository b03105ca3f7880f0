// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"strings"
	"time"
)

// JobStatus is the lifecycle stage of a job application.
type JobStatus string

const (
	StatusApplied   JobStatus = "Applied"
	StatusInterview JobStatus = "Interview"
	StatusOffer     JobStatus = "Offer"
	StatusRejected  JobStatus = "Rejected"
	StatusAccepted  JobStatus = "Accepted"
)

// StatusFilterAll disables the status filter of a job listing.
const StatusFilterAll = "all"

// JobStatuses lists every accepted JobStatus in display order.
var JobStatuses = []JobStatus{
	StatusApplied,
	StatusInterview,
	StatusOffer,
	StatusRejected,
	StatusAccepted,
}

// IsValid reports whether s is one of JobStatuses.
func (s JobStatus) IsValid() bool {
	for _, status := range JobStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Job is a single job application owned by exactly one user.
type Job struct {
	// ID is the server-generated UUIDv7 of the record.
	ID string `json:"id"`

	// UserID is the owner. It is bound from the authenticated identity at
	// creation and never changes.
	UserID int64 `json:"user"`

	Position        string    `json:"position"`
	Company         string    `json:"company"`
	ApplicationDate time.Time `json:"applicationDate"`
	JobLink         string    `json:"jobLink"`
	Status          JobStatus `json:"status"`
	Notes           string    `json:"notes"`

	// Resume and ProfilePhoto hold attachment storage keys, never file bytes.
	Resume       string `json:"resume"`
	ProfilePhoto string `json:"profilePhoto"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the name of the database table
// associated with the Job model.
func (j Job) TableName() string {
	return "jobs"
}

// Field names of JobInput as they appear on the wire. They are used as keys of
// validation errors and to scope partial validation.
const (
	FieldPosition        = "position"
	FieldCompany         = "company"
	FieldApplicationDate = "applicationDate"
	FieldJobLink         = "jobLink"
	FieldStatus          = "status"
	FieldNotes           = "notes"
)

// JobInput is the client-supplied part of a job. A nil field was not
// supplied: create treats it as empty/default, update leaves the stored
// value untouched. There is intentionally no owner field.
type JobInput struct {
	Position        *string `json:"position,omitempty"`
	Company         *string `json:"company,omitempty"`
	ApplicationDate *string `json:"applicationDate,omitempty"`
	JobLink         *string `json:"jobLink,omitempty"`
	Status          *string `json:"status,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

// Supplied returns the wire names of the fields present in the input.
func (in JobInput) Supplied() []string {
	fields := make([]string, 0, 6)
	if in.Position != nil {
		fields = append(fields, FieldPosition)
	}
	if in.Company != nil {
		fields = append(fields, FieldCompany)
	}
	if in.ApplicationDate != nil {
		fields = append(fields, FieldApplicationDate)
	}
	if in.JobLink != nil {
		fields = append(fields, FieldJobLink)
	}
	if in.Status != nil {
		fields = append(fields, FieldStatus)
	}
	if in.Notes != nil {
		fields = append(fields, FieldNotes)
	}
	return fields
}

// Normalize trims surrounding whitespace of every supplied text field.
func (in JobInput) Normalize() JobInput {
	trim := func(s *string) *string {
		if s == nil {
			return nil
		}
		v := strings.TrimSpace(*s)
		return &v
	}

	return JobInput{
		Position:        trim(in.Position),
		Company:         trim(in.Company),
		ApplicationDate: trim(in.ApplicationDate),
		JobLink:         trim(in.JobLink),
		Status:          trim(in.Status),
		Notes:           in.Notes,
	}
}

// applicationDateLayouts are tried in order when parsing ApplicationDate.
var applicationDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04",
	time.DateOnly,
}

// ParseApplicationDate parses the date formats accepted for applicationDate:
// RFC 3339, the HTML datetime-local layout and YYYY-MM-DD. The result is UTC.
func ParseApplicationDate(value string) (time.Time, bool) {
	for _, layout := range applicationDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// JobUpdate describes a partial update of a single job.
// Only non-nil fields are written.
type JobUpdate struct {
	// ID is the unique identifier of the record to update. Required.
	ID string

	// UserID is the owner of the record. Required for data isolation.
	UserID int64

	Position        *string
	Company         *string
	ApplicationDate *time.Time
	JobLink         *string
	Status          *JobStatus
	Notes           *string
	Resume          *string
	ProfilePhoto    *string
}

// IsEmpty reports whether the update would not change any column.
func (u JobUpdate) IsEmpty() bool {
	return u.Position == nil && u.Company == nil && u.ApplicationDate == nil &&
		u.JobLink == nil && u.Status == nil && u.Notes == nil &&
		u.Resume == nil && u.ProfilePhoto == nil
}
