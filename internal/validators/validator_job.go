package validators

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-job-tracker/models"
	"github.com/go-playground/validator/v10"
)

// jobRules mirrors models.JobInput with absent values flattened to "".
type jobRules struct {
	Position        string `json:"position" validate:"required,max=100"`
	Company         string `json:"company" validate:"required,max=100"`
	ApplicationDate string `json:"applicationDate" validate:"required,jobdate"`
	JobLink         string `json:"jobLink" validate:"omitempty,joblink"`
	Status          string `json:"status" validate:"required,jobstatus"`
	Notes           string `json:"notes" validate:"max=1000"`
}

// jobRuleFields maps wire names to jobRules struct field names.
var jobRuleFields = map[string]string{
	models.FieldPosition:        "Position",
	models.FieldCompany:         "Company",
	models.FieldApplicationDate: "ApplicationDate",
	models.FieldJobLink:         "JobLink",
	models.FieldStatus:          "Status",
	models.FieldNotes:           "Notes",
}

var jobMessages = map[string]map[string]string{
	models.FieldPosition: {
		"required": "Please provide a position title",
		"max":      "Position title cannot exceed 100 characters",
	},
	models.FieldCompany: {
		"required": "Please provide a company name",
		"max":      "Company name cannot exceed 100 characters",
	},
	models.FieldApplicationDate: {
		"required": "Please provide an application date",
		"jobdate":  "Application date must be YYYY-MM-DD or an RFC 3339 timestamp",
	},
	models.FieldJobLink: {
		"joblink": "Please provide a valid URL",
	},
	models.FieldStatus: {
		"required":  "Please provide a status",
		"jobstatus": "Status must be one of Applied, Interview, Offer, Rejected, Accepted",
	},
	models.FieldNotes: {
		"max": "Notes cannot exceed 1000 characters",
	},
}

// JobValidator validates models.JobInput.
type JobValidator struct {
	validate *validator.Validate
}

func NewJobValidator() Validator {
	return &JobValidator{validate: newValidate()}
}

// Validate checks a models.JobInput. With no fields every rule applies, so an
// absent required field fails. With fields only those are checked, which is
// how partial updates re-validate just the supplied values.
func (v *JobValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.JobInput:
		return v.validateJobInput(ctx, value, fields...)
	case *models.JobInput:
		return v.validateJobInput(ctx, *value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *JobValidator) validateJobInput(ctx context.Context, input models.JobInput, fields ...string) error {
	deref := func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	}
	rules := jobRules{
		Position:        deref(input.Position),
		Company:         deref(input.Company),
		ApplicationDate: deref(input.ApplicationDate),
		JobLink:         deref(input.JobLink),
		Status:          deref(input.Status),
		Notes:           deref(input.Notes),
	}

	var err error
	if len(fields) == 0 {
		err = v.validate.StructCtx(ctx, rules)
	} else {
		names := make([]string, 0, len(fields))
		for _, f := range fields {
			name, ok := jobRuleFields[f]
			if !ok {
				return fmt.Errorf("%w: %s", ErrUnknownField, f)
			}
			names = append(names, name)
		}
		err = v.validate.StructPartialCtx(ctx, rules, names...)
	}

	return toValidationError(err, jobMessages)
}

// toValidationError converts the result of a struct validation into a
// *ValidationError, looking messages up by wire field name and tag.
func toValidationError(err error, messages map[string]map[string]string) error {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	return &ValidationError{Fields: fieldMessages(verrs, func(fe validator.FieldError) string {
		if msg, ok := messages[fe.Field()][fe.Tag()]; ok {
			return msg
		}
		return fmt.Sprintf("%s is invalid", fe.Field())
	})}
}
