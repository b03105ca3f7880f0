package validators

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/MKhiriev/go-job-tracker/models"
	"github.com/go-playground/validator/v10"
)

// jobLinkPattern accepts http(s) URLs with a host and a 1-6 character TLD.
var jobLinkPattern = regexp.MustCompile(`^https?://(www\.)?[-a-zA-Z0-9@:%._\+~#=]{1,256}\.[a-zA-Z0-9()]{1,6}\b([-a-zA-Z0-9()@:%_\+.~#?&//=]*)$`)

// newValidate returns a validator that names fields by their json tag and
// knows the custom tags joblink, jobdate and jobstatus.
func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	// the tags are fixed and the functions are valid, so registration cannot fail
	_ = v.RegisterValidation("joblink", func(fl validator.FieldLevel) bool {
		return jobLinkPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("jobdate", func(fl validator.FieldLevel) bool {
		_, ok := models.ParseApplicationDate(fl.Field().String())
		return ok
	})
	_ = v.RegisterValidation("jobstatus", func(fl validator.FieldLevel) bool {
		return models.JobStatus(fl.Field().String()).IsValid()
	})

	return v
}

// fieldMessages converts validator errors into per-field messages using
// messageFor. Unknown tags fall back to a generic text.
func fieldMessages(errs validator.ValidationErrors, messageFor func(validator.FieldError) string) map[string]string {
	fields := make(map[string]string, len(errs))
	for _, fe := range errs {
		if _, seen := fields[fe.Field()]; seen {
			continue
		}
		fields[fe.Field()] = messageFor(fe)
	}
	return fields
}
